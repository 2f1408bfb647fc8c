package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

var _ carscrape.URLEmitter = (*ListingImageGrid)(nil)

// ListingImageGrid recognizes image-first grid listings, where each
// vehicle leads with a linked photo inside a container like
// <div class="listing__image">. Pages without those containers still
// match through photos wrapped in anchors.
type ListingImageGrid struct{}

// NewListingImageGrid creates a new ListingImageGrid template.
func NewListingImageGrid() *ListingImageGrid {
	return &ListingImageGrid{}
}

// Descriptor returns the template's registered identity.
func (t *ListingImageGrid) Descriptor() carscrape.TemplateDescriptor {
	return listingDescriptor("listing_image_grid")
}

// Probe scores the page by the number of grid links found.
func (t *ListingImageGrid) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	urls, err := t.EmitURLs(content, pageURL)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}
	return probeListing(urls), nil
}

// EmitURLs returns the detail-page URLs found in image containers,
// falling back to any image wrapped in an anchor.
func (t *ListingImageGrid) EmitURLs(content, pageURL string) ([]string, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}

	urls := selectorURLs(doc, pageURL,
		"div.listing__image", "div.listing-image", "div.image",
		`div.stocklist-vehicle a.vehicleLink[href]`,
	)

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		parent := img.ParentsFiltered("a[href]").First()
		if parent.Length() == 0 {
			return
		}
		if u := anchorURL(parent, pageURL); u != "" {
			urls = append(urls, u)
		}
	})

	return dedupe(urls), nil
}
