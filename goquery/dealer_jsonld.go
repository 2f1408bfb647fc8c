package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

var _ carscrape.DealerEmitter = (*DealerJSONLD)(nil)

// DealerJSONLD extracts site-level dealer information from an
// Organization or AutomotiveBusiness JSON-LD block. Pages without the
// block still yield contact details through tel:/mailto: anchors and the
// page heading, but only the structured block scores a match.
type DealerJSONLD struct{}

// NewDealerJSONLD creates a new DealerJSONLD template.
func NewDealerJSONLD() *DealerJSONLD {
	return &DealerJSONLD{}
}

// Descriptor returns the template's registered identity.
func (t *DealerJSONLD) Descriptor() carscrape.TemplateDescriptor {
	return carscrape.TemplateDescriptor{
		Name:         "dealer_info_jsonld",
		Category:     carscrape.CategoryDealer,
		Capabilities: []carscrape.Capability{carscrape.CapEmitDealer},
	}
}

// Probe scores only the structured-data signal. Contact anchors alone are
// too common to classify a page as the dealer page.
func (t *DealerJSONLD) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}

	node, ok := organizationNode(ExtractJSONLD(doc))
	if !ok {
		return carscrape.ProbeResult{}, nil
	}
	return carscrape.ProbeResult{Score: 3, Fields: t.fromNode(node)}, nil
}

// EmitDealer returns the raw extracted dealer-entity fields.
func (t *DealerJSONLD) EmitDealer(content, pageURL string) (carscrape.RawFields, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}

	if node, ok := organizationNode(ExtractJSONLD(doc)); ok {
		return t.fromNode(node), nil
	}
	return t.fromContactMarkup(doc), nil
}

func (t *DealerJSONLD) fromNode(node map[string]any) carscrape.RawFields {
	fields := carscrape.RawFields{}
	setText(fields, "name", jsonldText(node["name"]))
	setText(fields, "telephone", firstNonEmpty(
		jsonldText(node["telephone"]),
		jsonldText(node["phone"]),
	))
	setText(fields, "email", jsonldText(node["email"]))
	setText(fields, "address", postalAddress(node["address"]))
	fields["raw"] = node
	return fields
}

// fromContactMarkup recovers contact details from common page-level
// markup when no structured block exists.
func (t *DealerJSONLD) fromContactMarkup(doc *goquery.Document) carscrape.RawFields {
	fields := carscrape.RawFields{}
	setText(fields, "name", nodeText(doc.Find("h1").First()))
	setText(fields, "telephone", nodeText(doc.Find(`a[href^="tel:"]`).First()))
	setText(fields, "email", nodeText(doc.Find(`a[href^="mailto:"]`).First()))
	return fields
}

// organizationNode returns the first Organization-typed JSON-LD node.
func organizationNode(nodes []map[string]any) (map[string]any, bool) {
	for _, node := range nodes {
		if isOrganizationNode(node) {
			return node, true
		}
	}
	return nil, false
}

// postalAddress joins the parts of a schema.org PostalAddress into a
// single comma-separated line. String addresses pass through.
func postalAddress(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		var parts []string
		for _, key := range []string{
			"streetAddress", "addressLocality", "addressRegion",
			"postalCode", "addressCountry",
		} {
			if part := jsonldText(t[key]); part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
