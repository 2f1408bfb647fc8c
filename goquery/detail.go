package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape"
)

// detailSignals are the structural features detail probes score against.
type detailSignals struct {
	jsonldVehicle bool
	specs         bool
	table         bool
	titleYear     bool
	priceMeta     bool
	microdata     bool
}

func probeDetailSignals(doc *goquery.Document) detailSignals {
	nodes := ExtractJSONLD(doc)
	_, hasVehicle := vehicleNode(nodes)
	meta := ExtractMeta(doc)
	_, hasMicrodata := ExtractMicrodata(doc)

	return detailSignals{
		jsonldVehicle: hasVehicle,
		specs:         hasSpecMarkup(doc),
		table:         doc.Find("table").Length() > 0,
		titleYear:     yearTokenRe.MatchString(meta.Title),
		priceMeta:     meta.Price != "",
		microdata:     hasMicrodata,
	}
}

// setText stores a non-empty value under key, leaving absent keys missing
// rather than empty.
func setText(fields carscrape.RawFields, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fields[key] = value
	}
}

// jsonldVehicleFields maps a vehicle-typed JSON-LD node to raw fields.
// The source node is preserved under "raw" for audit.
func jsonldVehicleFields(node map[string]any) carscrape.RawFields {
	fields := carscrape.RawFields{}
	setText(fields, "name", jsonldText(node["name"]))
	setText(fields, "brand", firstNonEmpty(
		jsonldText(node["brand"]),
		jsonldText(node["manufacturer"]),
		jsonldText(node["make"]),
	))
	setText(fields, "model", firstNonEmpty(
		jsonldText(node["model"]),
		jsonldText(node["vehicleModel"]),
	))
	setText(fields, "description", jsonldText(node["description"]))
	setText(fields, "year", firstNonEmpty(
		jsonldText(node["vehicleModelYear"]),
		jsonldText(node["year"]),
		jsonldText(node["modelYear"]),
	))

	offer := firstOffer(node)
	if offer != nil {
		setText(fields, "price", jsonldText(offer["price"]))
		setText(fields, "currency", jsonldText(offer["priceCurrency"]))
	}
	if _, ok := fields["price"]; !ok {
		setText(fields, "price", jsonldText(node["price"]))
	}

	fields["raw"] = node
	return fields
}

// metaFields maps meta-tag values to raw fields. The page title stands in
// for the listing name so year extraction can fall back to it.
func metaFields(meta MetaValues) carscrape.RawFields {
	fields := carscrape.RawFields{}
	setText(fields, "name", meta.Title)
	setText(fields, "price", meta.Price)
	setText(fields, "currency", meta.Currency)
	setText(fields, "description", meta.Description)
	return fields
}

// tableSpecs converts spec-table rows (heading cell + value cell) into a
// normalized key/value mapping. With firstOnly it reads only the first
// table on the page.
func tableSpecs(doc *goquery.Document, firstOnly bool) map[string]string {
	tables := doc.Find("table")
	if firstOnly {
		tables = tables.First()
	}

	specs := map[string]string{}
	tables.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		key := normalizeKey(nodeText(cells.Eq(0)))
		val := nodeText(cells.Eq(1))
		if key != "" && val != "" {
			specs[key] = val
		}
	})
	return specs
}

// promoteSpecs lifts well-known spec-sheet entries to top-level fields
// without overwriting values a higher-confidence source already set.
// Keys are visited in sorted order so promotion is deterministic.
func promoteSpecs(fields carscrape.RawFields, specs map[string]string) {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	promote := func(target, key string) {
		if _, ok := fields[target]; !ok {
			fields[target] = specs[key]
		}
	}
	for _, key := range keys {
		switch {
		case strings.Contains(key, "mileage"):
			promote("mileage", key)
		case strings.Contains(key, "fuel"):
			promote("fuel", key)
		case strings.Contains(key, "transmission"):
			promote("transmission", key)
		}
	}
}

// probeDetail builds the probe result shared by every detail template:
// zero score means no payload, a positive score carries the extraction.
func probeDetail(score float64, extract func() carscrape.RawFields) carscrape.ProbeResult {
	if score <= 0 {
		return carscrape.ProbeResult{}
	}
	return carscrape.ProbeResult{Score: score, Fields: extract()}
}
