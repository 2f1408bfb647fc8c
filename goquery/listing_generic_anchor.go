package goquery

import (
	"github.com/fwojciec/carscrape"
)

var _ carscrape.URLEmitter = (*ListingGenericAnchor)(nil)

// ListingGenericAnchor is the lowest-signal listing template: it collects
// anchors whose path looks like a vehicle detail page (/used, /car,
// /vehicle, /stock). It catches listings with no semantic markup at all.
type ListingGenericAnchor struct{}

// NewListingGenericAnchor creates a new ListingGenericAnchor template.
func NewListingGenericAnchor() *ListingGenericAnchor {
	return &ListingGenericAnchor{}
}

// Descriptor returns the template's registered identity.
func (t *ListingGenericAnchor) Descriptor() carscrape.TemplateDescriptor {
	return listingDescriptor("listing_generic_anchor")
}

// Probe scores the page by the number of vehicle-path anchors found.
func (t *ListingGenericAnchor) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	urls, err := t.EmitURLs(content, pageURL)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}
	return probeListing(urls), nil
}

// EmitURLs returns anchors whose href matches a vehicle-path pattern.
func (t *ListingGenericAnchor) EmitURLs(content, pageURL string) ([]string, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	return selectorURLs(doc, pageURL,
		`a[href*="/used"]`, `a[href*="/car"]`,
		`a[href*="/vehicle"]`, `a[href*="/stock"]`,
	), nil
}
