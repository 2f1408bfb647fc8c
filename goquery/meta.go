package goquery

import (
	"github.com/PuerkitoBio/goquery"
)

// MetaValues holds the basic page fields recoverable from Open Graph and
// product meta tags. It serves as a low-confidence fallback for detail
// templates when explicit structured data is missing.
type MetaValues struct {
	Title       string
	Price       string
	Currency    string
	Description string
}

// ExtractMeta reads Open Graph and product meta tags, falling back to the
// document title.
func ExtractMeta(doc *goquery.Document) MetaValues {
	return MetaValues{
		Title:       firstNonEmpty(metaProperty(doc, "og:title"), metaName(doc, "title"), nodeText(doc.Find("title").First())),
		Price:       firstNonEmpty(metaProperty(doc, "product:price:amount"), metaName(doc, "price")),
		Currency:    firstNonEmpty(metaProperty(doc, "product:price:currency"), metaName(doc, "currency")),
		Description: firstNonEmpty(metaProperty(doc, "og:description"), metaName(doc, "description")),
	}
}

func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return content
}

func metaName(doc *goquery.Document, name string) string {
	content, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return content
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
