package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

// selectorURLs collects detail-page URLs from every element matching the
// selector. Elements that are not anchors contribute the first anchor they
// contain. Results are resolved against pageURL and deduplicated.
func selectorURLs(doc *goquery.Document, pageURL string, selectors ...string) []string {
	var urls []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if u := anchorURL(sel, pageURL); u != "" {
				urls = append(urls, u)
			}
		})
	}
	return dedupe(urls)
}

// probeListing converts extracted URLs into a probe result. A listing's
// raw score is its URL count; the detector caps and normalizes it.
func probeListing(urls []string) carscrape.ProbeResult {
	if len(urls) == 0 {
		return carscrape.ProbeResult{}
	}
	return carscrape.ProbeResult{Score: float64(len(urls)), URLs: urls}
}

// listingDescriptor builds the descriptor shared by all listing templates.
func listingDescriptor(name string) carscrape.TemplateDescriptor {
	return carscrape.TemplateDescriptor{
		Name:         name,
		Category:     carscrape.CategoryListing,
		Capabilities: []carscrape.Capability{carscrape.CapEmitURLs},
	}
}
