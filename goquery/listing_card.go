package goquery

import (
	"github.com/fwojciec/carscrape"
)

var _ carscrape.URLEmitter = (*ListingCard)(nil)

// ListingCard recognizes card-based listing pages, where each vehicle is
// wrapped in a card element like <div class="vehicle-card">.
type ListingCard struct{}

// NewListingCard creates a new ListingCard template.
func NewListingCard() *ListingCard {
	return &ListingCard{}
}

// Descriptor returns the template's registered identity.
func (t *ListingCard) Descriptor() carscrape.TemplateDescriptor {
	return listingDescriptor("listing_card")
}

// Probe scores the page by the number of card links found.
func (t *ListingCard) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	urls, err := t.EmitURLs(content, pageURL)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}
	return probeListing(urls), nil
}

// EmitURLs returns the detail-page URLs found in card elements.
func (t *ListingCard) EmitURLs(content, pageURL string) ([]string, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	return selectorURLs(doc, pageURL,
		".vehicle-card", ".car-card", ".listing-card",
		`div.stocklist-vehicle a.vehicleLink[href]`,
	), nil
}
