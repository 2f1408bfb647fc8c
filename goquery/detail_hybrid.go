package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

var _ carscrape.DetailEmitter = (*DetailHybrid)(nil)

// DetailHybrid recognizes detail pages that pair a vehicle JSON-LD block
// with HTML spec tables: the structured data supplies the core fields and
// the tables fill the gaps (mileage, fuel, transmission).
type DetailHybrid struct{}

// NewDetailHybrid creates a new DetailHybrid template.
func NewDetailHybrid() *DetailHybrid {
	return &DetailHybrid{}
}

// Descriptor returns the template's registered identity.
func (t *DetailHybrid) Descriptor() carscrape.TemplateDescriptor {
	return carscrape.TemplateDescriptor{
		Name:         "detail_hybrid_json_html",
		Category:     carscrape.CategoryDetail,
		Capabilities: []carscrape.Capability{carscrape.CapEmitDetail},
	}
}

// Probe scores the co-occurrence of a vehicle JSON-LD node and spec
// markup, which is the signature this template exists for, plus a smaller
// signal for a price meta tag.
func (t *DetailHybrid) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}

	sig := probeDetailSignals(doc)
	var score float64
	if sig.jsonldVehicle && sig.specs {
		score += 3
	}
	if sig.priceMeta {
		score += 1
	}
	return probeDetail(score, func() carscrape.RawFields { return t.extract(doc) }), nil
}

// EmitDetail returns the raw extracted fields for a detail page.
func (t *DetailHybrid) EmitDetail(content, pageURL string) (carscrape.RawFields, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	return t.extract(doc), nil
}

func (t *DetailHybrid) extract(doc *goquery.Document) carscrape.RawFields {
	fields := carscrape.RawFields{}
	if node, ok := vehicleNode(ExtractJSONLD(doc)); ok {
		fields = jsonldVehicleFields(node)
	}

	// Every table on the page contributes to the spec sheet.
	if specs := tableSpecs(doc, false); len(specs) > 0 {
		fields["specs"] = specs
		promoteSpecs(fields, specs)
	}

	return fields
}
