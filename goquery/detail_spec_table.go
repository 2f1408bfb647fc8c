package goquery

import (
	"github.com/fwojciec/carscrape"
)

var _ carscrape.DetailEmitter = (*DetailSpecTable)(nil)

// DetailSpecTable is the lowest-signal detail template: it reads the first
// spec table on the page into a key/value spec sheet. It only wins when
// nothing with structured data matched.
type DetailSpecTable struct{}

// NewDetailSpecTable creates a new DetailSpecTable template.
func NewDetailSpecTable() *DetailSpecTable {
	return &DetailSpecTable{}
}

// Descriptor returns the template's registered identity.
func (t *DetailSpecTable) Descriptor() carscrape.TemplateDescriptor {
	return carscrape.TemplateDescriptor{
		Name:         "detail_html_spec_table",
		Category:     carscrape.CategoryDetail,
		Capabilities: []carscrape.Capability{carscrape.CapEmitDetail},
	}
}

// Probe scores a single weak signal: the presence of a table.
func (t *DetailSpecTable) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}

	var score float64
	if doc.Find("table").Length() > 0 {
		score = 1
	}
	return probeDetail(score, func() carscrape.RawFields {
		fields := carscrape.RawFields{}
		if specs := tableSpecs(doc, true); len(specs) > 0 {
			fields["specs"] = specs
			promoteSpecs(fields, specs)
		}
		return fields
	}), nil
}

// EmitDetail returns the raw extracted fields for a detail page.
func (t *DetailSpecTable) EmitDetail(content, pageURL string) (carscrape.RawFields, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	fields := carscrape.RawFields{}
	if specs := tableSpecs(doc, true); len(specs) > 0 {
		fields["specs"] = specs
		promoteSpecs(fields, specs)
	}
	return fields, nil
}
