package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

var _ carscrape.NextPageEmitter = (*PaginationQuery)(nil)

// PaginationQuery recognizes query-parameter pagination (?page=2). It
// prefers an explicit rel=next link, then any anchor carrying a page
// parameter, and as a last resort increments the page parameter of the
// current URL.
type PaginationQuery struct{}

// NewPaginationQuery creates a new PaginationQuery template.
func NewPaginationQuery() *PaginationQuery {
	return &PaginationQuery{}
}

// Descriptor returns the template's registered identity.
func (t *PaginationQuery) Descriptor() carscrape.TemplateDescriptor {
	return carscrape.TemplateDescriptor{
		Name:         "pagination_query",
		Category:     carscrape.CategoryPagination,
		Capabilities: []carscrape.Capability{carscrape.CapEmitNextPage},
	}
}

// Probe scores an anchor-based discovery above the URL-increment
// fallback, which only proves the current URL is paginated.
func (t *PaginationQuery) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return carscrape.ProbeResult{}, err
	}

	if next := t.fromAnchors(doc, pageURL); next != "" {
		return carscrape.ProbeResult{Score: 2, NextPage: next}, nil
	}
	if next := incrementPageParam(pageURL); next != "" {
		return carscrape.ProbeResult{Score: 1, NextPage: next}, nil
	}
	return carscrape.ProbeResult{}, nil
}

// EmitNextPage returns the next-page URL, or "" if none was found.
func (t *PaginationQuery) EmitNextPage(content, pageURL string) (string, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return "", err
	}
	if next := t.fromAnchors(doc, pageURL); next != "" {
		return next, nil
	}
	return incrementPageParam(pageURL), nil
}

func (t *PaginationQuery) fromAnchors(doc *goquery.Document, pageURL string) string {
	if next := relNextHref(doc, pageURL); next != "" {
		return next
	}

	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(href, "?page=") || strings.Contains(href, "&page=") {
			next = resolveHref(pageURL, href)
			return false
		}
		return true
	})
	return next
}

// relNextHref returns the resolved href of the first anchor whose rel
// attribute contains "next".
func relNextHref(doc *goquery.Document, pageURL string) string {
	var next string
	doc.Find("a[rel]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		rel, _ := a.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "next") {
			return true
		}
		if href, ok := a.Attr("href"); ok && href != "" {
			next = resolveHref(pageURL, href)
			return false
		}
		return true
	})
	return next
}

// incrementPageParam bumps the numeric page parameter of the current URL.
// Returns "" when the URL has no parseable page parameter.
func incrementPageParam(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	cur, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		return ""
	}
	q.Set("page", strconv.Itoa(cur+1))
	u.RawQuery = q.Encode()
	return u.String()
}
