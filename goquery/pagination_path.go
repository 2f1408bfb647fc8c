package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

var _ carscrape.NextPageEmitter = (*PaginationPath)(nil)

var pagePathRe = regexp.MustCompile(`(?i)/page/(\d+)`)

// PaginationPath recognizes path-segment pagination (/used-cars/page/2).
// It prefers an explicit rel=next link, then any anchor whose path
// carries a /page/N segment.
type PaginationPath struct{}

// NewPaginationPath creates a new PaginationPath template.
func NewPaginationPath() *PaginationPath {
	return &PaginationPath{}
}

// Descriptor returns the template's registered identity.
func (t *PaginationPath) Descriptor() carscrape.TemplateDescriptor {
	return carscrape.TemplateDescriptor{
		Name:         "pagination_path",
		Category:     carscrape.CategoryPagination,
		Capabilities: []carscrape.Capability{carscrape.CapEmitNextPage},
	}
}

// Probe scores a discovered next-page link.
func (t *PaginationPath) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	next, err := t.EmitNextPage(content, pageURL)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}
	if next == "" {
		return carscrape.ProbeResult{}, nil
	}
	return carscrape.ProbeResult{Score: 2, NextPage: next}, nil
}

// EmitNextPage returns the next-page URL, or "" if none was found.
func (t *PaginationPath) EmitNextPage(content, pageURL string) (string, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return "", err
	}

	if next := relNextHref(doc, pageURL); next != "" {
		return next, nil
	}

	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if pagePathRe.MatchString(href) {
			next = resolveHref(pageURL, href)
			return false
		}
		return true
	})
	return next, nil
}
