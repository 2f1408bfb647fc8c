package goquery

import (
	"github.com/fwojciec/carscrape"
)

var _ carscrape.URLEmitter = (*ListingULLI)(nil)

// ListingULLI recognizes listing pages that render their stock as a plain
// unordered list, one vehicle per <li>.
type ListingULLI struct{}

// NewListingULLI creates a new ListingULLI template.
func NewListingULLI() *ListingULLI {
	return &ListingULLI{}
}

// Descriptor returns the template's registered identity.
func (t *ListingULLI) Descriptor() carscrape.TemplateDescriptor {
	return listingDescriptor("listing_ul_li")
}

// Probe scores the page by the number of list-item links found.
func (t *ListingULLI) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	urls, err := t.EmitURLs(content, pageURL)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}
	return probeListing(urls), nil
}

// EmitURLs returns the detail-page URLs found in stock-list items.
func (t *ListingULLI) EmitURLs(content, pageURL string) ([]string, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	return selectorURLs(doc, pageURL,
		"ul.vehicle-list li", "ul.stock-list li",
		"ul.listings li", "ul.results li", "ol.results li",
	), nil
}
