package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

var _ carscrape.DetailEmitter = (*DetailJSONLD)(nil)

// DetailJSONLD recognizes detail pages that embed a schema.org
// Vehicle/Car JSON-LD block and extracts the record from it. When the
// block is present but useless it falls back to vehicle microdata, then
// to Open Graph / product meta tags.
type DetailJSONLD struct{}

// NewDetailJSONLD creates a new DetailJSONLD template.
func NewDetailJSONLD() *DetailJSONLD {
	return &DetailJSONLD{}
}

// Descriptor returns the template's registered identity.
func (t *DetailJSONLD) Descriptor() carscrape.TemplateDescriptor {
	return carscrape.TemplateDescriptor{
		Name:         "detail_jsonld_vehicle",
		Category:     carscrape.CategoryDetail,
		Capabilities: []carscrape.Capability{carscrape.CapEmitDetail},
	}
}

// Probe scores two signals: a vehicle-typed JSON-LD node and a product
// price meta tag.
func (t *DetailJSONLD) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}

	sig := probeDetailSignals(doc)
	var score float64
	if sig.jsonldVehicle {
		score += 2
	}
	if sig.priceMeta {
		score += 2
	}
	return probeDetail(score, func() carscrape.RawFields { return t.extract(doc) }), nil
}

// EmitDetail returns the raw extracted fields for a detail page.
func (t *DetailJSONLD) EmitDetail(content, pageURL string) (carscrape.RawFields, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	return t.extract(doc), nil
}

func (t *DetailJSONLD) extract(doc *goquery.Document) carscrape.RawFields {
	if node, ok := vehicleNode(ExtractJSONLD(doc)); ok {
		fields := jsonldVehicleFields(node)
		if hasCore(fields) {
			return fields
		}
	}

	if fields, ok := ExtractMicrodata(doc); ok && hasCore(fields) {
		return fields
	}

	meta := ExtractMeta(doc)
	if meta.Price != "" || meta.Title != "" {
		return metaFields(meta)
	}

	return carscrape.RawFields{}
}

// hasCore reports whether an extraction recovered at least one of the
// fields that make a record worth keeping.
func hasCore(fields carscrape.RawFields) bool {
	for _, key := range []string{"name", "brand", "price"} {
		if _, ok := fields.Text(key); ok {
			return true
		}
	}
	return false
}
