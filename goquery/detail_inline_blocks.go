package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

var _ carscrape.DetailEmitter = (*DetailInlineBlocks)(nil)

// DetailInlineBlocks recognizes detail pages whose specs live in inline
// label/value structures: definition lists, .label/.value pairs, and
// .spec-row blocks. It falls back to vehicle microdata and meta tags when
// no inline structure yields anything.
type DetailInlineBlocks struct{}

// NewDetailInlineBlocks creates a new DetailInlineBlocks template.
func NewDetailInlineBlocks() *DetailInlineBlocks {
	return &DetailInlineBlocks{}
}

// Descriptor returns the template's registered identity.
func (t *DetailInlineBlocks) Descriptor() carscrape.TemplateDescriptor {
	return carscrape.TemplateDescriptor{
		Name:         "detail_inline_html_blocks",
		Category:     carscrape.CategoryDetail,
		Capabilities: []carscrape.Capability{carscrape.CapEmitDetail},
	}
}

// Probe scores a year token in the page title, vehicle microdata, and any
// spec markup.
func (t *DetailInlineBlocks) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}

	sig := probeDetailSignals(doc)
	var score float64
	if sig.titleYear {
		score += 2
	}
	if sig.microdata {
		score += 2
	}
	if sig.specs {
		score += 1
	}
	return probeDetail(score, func() carscrape.RawFields { return t.extract(doc) }), nil
}

// EmitDetail returns the raw extracted fields for a detail page.
func (t *DetailInlineBlocks) EmitDetail(content, pageURL string) (carscrape.RawFields, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	return t.extract(doc), nil
}

func (t *DetailInlineBlocks) extract(doc *goquery.Document) carscrape.RawFields {
	fields := carscrape.RawFields{}
	specs := map[string]string{}

	// dl/dt/dd pairs.
	doc.Find("dl dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.Next()
		if !dd.Is("dd") {
			return
		}
		addSpec(specs, nodeText(dt), nodeText(dd))
	})

	// .label followed by a .value sibling, or a .value under the same
	// parent.
	doc.Find(".label").Each(func(_ int, label *goquery.Selection) {
		value := label.Next()
		if !value.HasClass("value") {
			value = label.Parent().Find(".value").First()
		}
		addSpec(specs, nodeText(label), nodeText(value))
	})

	// .spec-row blocks with a heading cell and a value cell.
	doc.Find(".spec-row").Each(func(_ int, row *goquery.Selection) {
		heading := row.Find(".spec, th").First()
		value := row.Find(".value, td").First()
		addSpec(specs, nodeText(heading), nodeText(value))
	})

	if len(specs) > 0 {
		fields["specs"] = specs
		promoteSpecs(fields, specs)
	} else {
		// Nothing inline: structured-data fallbacks.
		if micro, ok := ExtractMicrodata(doc); ok && hasCore(micro) {
			fields = micro
		} else if meta := ExtractMeta(doc); meta.Price != "" || meta.Title != "" {
			fields = metaFields(meta)
		}
	}

	if title := nodeText(doc.Find("h1").First()); title != "" {
		if _, ok := fields["name"]; !ok {
			fields["name"] = title
		}
	}

	// The description block's inner HTML travels raw so a downstream
	// converter can turn it into markdown.
	desc := doc.Find(".description, #description, .vehicle-description").First()
	if desc.Length() > 0 {
		if html, err := desc.Html(); err == nil && html != "" {
			fields["description_html"] = html
		}
	}

	return fields
}

func addSpec(specs map[string]string, key, value string) {
	nk := normalizeKey(key)
	if nk != "" && value != "" {
		specs[nk] = value
	}
}
