package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

// ExtractMicrodata finds the first itemscope whose itemtype names a vehicle
// and extracts its common itemprops. The bool result is false when the page
// carries no vehicle microdata; that is the no-match case, not an error.
func ExtractMicrodata(doc *goquery.Document) (carscrape.RawFields, bool) {
	fields := carscrape.RawFields{}
	found := false

	doc.Find("[itemscope]").EachWithBreak(func(_ int, scope *goquery.Selection) bool {
		itemtype, _ := scope.Attr("itemtype")
		if !strings.Contains(strings.ToLower(itemtype), "vehicle") {
			return true
		}

		for _, prop := range []string{"name", "brand", "model", "description", "price"} {
			node := scope.Find(`[itemprop="` + prop + `"]`).First()
			if node.Length() == 0 {
				continue
			}
			if text := nodeText(node); text != "" {
				fields[prop] = text
			}
		}

		// Price is often carried on a meta tag's content attribute.
		if content, ok := scope.Find(`meta[itemprop="price"]`).First().Attr("content"); ok && content != "" {
			fields["price"] = content
		}

		found = true
		return false
	})

	if !found {
		return nil, false
	}
	return fields, true
}
