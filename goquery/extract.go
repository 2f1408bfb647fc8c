// Package goquery implements the structural page templates and their
// extraction strategies on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

var (
	keyCleanRe   = regexp.MustCompile(`[^a-z0-9]+`)
	underscoreRe = regexp.MustCompile(`__+`)
	yearTokenRe  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// parseDocument parses raw HTML into a goquery document.
func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, carscrape.Errorf(carscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// normalizeKey converts a spec-sheet heading into a canonical key:
// lowercase alphanumeric with single underscores ("Fuel Type" -> "fuel_type").
func normalizeKey(k string) string {
	k = keyCleanRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(k)), "_")
	k = underscoreRe.ReplaceAllString(k, "_")
	return strings.Trim(k, "_")
}

// anchorURL returns the href of the selection if it is an anchor, or the
// href of the first anchor inside it, resolved against pageURL.
func anchorURL(sel *goquery.Selection, pageURL string) string {
	a := sel
	if !sel.Is("a") {
		a = sel.Find("a[href]").First()
	}
	href, ok := a.Attr("href")
	if !ok || href == "" || isNonHTTPLink(href) {
		return ""
	}
	return resolveHref(pageURL, href)
}

// resolveHref resolves href against pageURL. Returns href unchanged when the
// page URL cannot be parsed, and "" when the href itself is unparseable.
func resolveHref(pageURL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil || pageURL == "" {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink reports whether a href points outside the HTTP space
// (javascript:, mailto:, tel:, data:) and should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// dedupe removes duplicate URLs preserving first-occurrence order.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// nodeText extracts normalized whitespace-trimmed text from a selection,
// collapsing runs of whitespace that goquery preserves from the source.
func nodeText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// hasSpecMarkup reports whether the document carries any of the inline
// spec-sheet structures (tables, definition lists, label/value pairs).
func hasSpecMarkup(doc *goquery.Document) bool {
	if doc.Find("table").Length() > 0 {
		return true
	}
	if doc.Find(".spec-row").Length() > 0 || doc.Find(".spec").Length() > 0 {
		return true
	}
	if doc.Find("dl").Length() > 0 {
		return true
	}
	return doc.Find(".label").Length() > 0 && doc.Find(".value").Length() > 0
}
