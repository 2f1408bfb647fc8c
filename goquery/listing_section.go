package goquery

import (
	"github.com/fwojciec/carscrape"
)

var _ carscrape.URLEmitter = (*ListingSection)(nil)

// ListingSection recognizes listing pages that wrap their results in a
// <section class="results-..."> container.
type ListingSection struct{}

// NewListingSection creates a new ListingSection template.
func NewListingSection() *ListingSection {
	return &ListingSection{}
}

// Descriptor returns the template's registered identity.
func (t *ListingSection) Descriptor() carscrape.TemplateDescriptor {
	return listingDescriptor("listing_section")
}

// Probe scores the page by the number of links found inside results
// sections.
func (t *ListingSection) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	urls, err := t.EmitURLs(content, pageURL)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}
	return probeListing(urls), nil
}

// EmitURLs returns every anchor inside a results section.
func (t *ListingSection) EmitURLs(content, pageURL string) ([]string, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	return selectorURLs(doc, pageURL,
		"section.results-vehicleresults a[href]",
		"section.results a[href]",
		"section.listings a[href]",
	), nil
}
