package carscrape

import (
	"fmt"
	"net/url"
	"strings"
)

// Assemble merges a detection's raw payload into the category's canonical
// output shape. Only detail-category templates ever produce rows shaped
// like DetailRecord; the other categories get a pass-through with shape
// validation (URLs are resolved against the page URL before being
// returned).
//
// Returns EINVALID when called with an unmatched detection.
func Assemble(det *Detection, pageURL string) (*Result, error) {
	if det == nil || !det.Matched() {
		return nil, Errorf(EINVALID, "cannot assemble an unmatched detection")
	}

	desc := det.Template.Descriptor()
	res := &Result{
		Template: desc.Name,
		Category: desc.Category,
	}

	switch desc.Category {
	case CategoryDetail:
		res.Detail, res.Issues = AssembleDetail(det.Result.Fields)
	case CategoryListing:
		res.URLs = ResolveURLs(pageURL, det.Result.URLs)
	case CategoryPagination:
		if next := resolveAgainst(pageURL, det.Result.NextPage); next != "" {
			res.NextPage = &next
		}
	case CategoryDealer:
		res.Dealer = assembleDealer(det.Result.Fields)
	default:
		return nil, Errorf(EINTERNAL, "template %q has unknown category %q", desc.Name, desc.Category)
	}

	return res, nil
}

// AssembleDetail runs every raw field of interest through its matching
// normalizer and fills every canonical key, using nil for keys the template
// never populated. Unparseable fields stay absent and are reported as
// issues; assembly itself never fails.
func AssembleDetail(fields RawFields) (*DetailRecord, []NormalizationIssue) {
	rec := &DetailRecord{}
	var issues []NormalizationIssue

	if raw, ok := firstText(fields, "brand", "make"); ok {
		if brand, brandOK := NormalizeBrand(raw); brandOK {
			rec.Brand = &brand
		}
	}

	if model, ok := firstText(fields, "model"); ok {
		rec.Model = &model
	}

	if raw, ok := firstText(fields, "year"); ok {
		if year, yearOK := NormalizeYear(raw); yearOK {
			rec.Year = &year
		} else {
			issues = append(issues, NormalizationIssue{
				Field:  "year",
				Raw:    raw,
				Reason: "no plausible 4-digit year token",
			})
		}
	} else if name, nameOK := fields.Text("name"); nameOK {
		// Listings routinely lead the title with the registration year.
		if year, yearOK := NormalizeYear(name); yearOK {
			rec.Year = &year
		}
	}

	if raw, ok := firstText(fields, "price", "price_raw"); ok {
		rec.PriceRaw = &raw
		if amount, currency, priceOK := NormalizePrice(raw); priceOK {
			rec.PriceValue = &amount
			if currency != "" {
				rec.Currency = &currency
			}
		} else {
			issues = append(issues, NormalizationIssue{
				Field:  "price",
				Raw:    raw,
				Reason: "no numeric token",
			})
		}
	}
	if rec.Currency == nil {
		if currency, ok := fields.Text("currency"); ok {
			currency = strings.ToUpper(currency)
			rec.Currency = &currency
		}
	}

	if raw, ok := firstText(fields, "mileage", "miles"); ok {
		if value, unit, mileageOK := NormalizeMileage(raw); mileageOK {
			rec.MileageValue = &value
			if unit != "" {
				rec.MileageUnit = &unit
			}
		} else {
			issues = append(issues, NormalizationIssue{
				Field:  "mileage",
				Raw:    raw,
				Reason: "no numeric token",
			})
		}
	}

	if fuel, ok := firstText(fields, "fuel", "fuel_type"); ok {
		rec.Fuel = &fuel
	}
	if transmission, ok := firstText(fields, "transmission", "gearbox"); ok {
		rec.Transmission = &transmission
	}
	if description, ok := fields.Text("description"); ok {
		rec.Description = &description
	}

	rec.Raw = rawSnapshot(fields)

	return rec, issues
}

// ResolveURLs validates extracted URLs and resolves them against the page
// URL, dropping anything unparseable or non-HTTP and deduplicating while
// preserving order.
func ResolveURLs(pageURL string, urls []string) []string {
	seen := make(map[string]bool, len(urls))
	resolved := make([]string, 0, len(urls))
	for _, u := range urls {
		abs := resolveAgainst(pageURL, u)
		if abs == "" || seen[abs] {
			continue
		}
		seen[abs] = true
		resolved = append(resolved, abs)
	}
	return resolved
}

// resolveAgainst resolves ref against base and returns "" unless the result
// is an absolute http(s) URL. An empty base admits only already-absolute
// refs.
func resolveAgainst(base, ref string) string {
	if strings.TrimSpace(ref) == "" {
		return ""
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != "" {
		baseURL, err := url.Parse(base)
		if err == nil {
			refURL = baseURL.ResolveReference(refURL)
		}
	}
	if refURL.Scheme != "http" && refURL.Scheme != "https" {
		return ""
	}
	if refURL.Host == "" {
		return ""
	}
	return refURL.String()
}

// assembleDealer maps raw dealer fields into a DealerRecord.
func assembleDealer(fields RawFields) *DealerRecord {
	rec := &DealerRecord{}
	if name, ok := fields.Text("name"); ok {
		rec.Name = &name
	}
	if tel, ok := firstText(fields, "telephone", "phone"); ok {
		rec.Telephone = &tel
	}
	if email, ok := fields.Text("email"); ok {
		rec.Email = &email
	}
	if address, ok := fields.Text("address"); ok {
		rec.Address = &address
	}
	rec.Raw = rawSnapshot(fields)
	return rec
}

// firstText returns the first non-empty value among the given top-level
// keys, falling back to the spec-sheet mapping under the same keys.
func firstText(fields RawFields, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := fields.Text(k); ok {
			return v, true
		}
	}
	return fields.Spec(keys...)
}

// rawSnapshot returns the template's structured-data snapshot for audit.
// Templates that captured a source object expose it under "raw"; otherwise
// the whole intermediate mapping is kept.
func rawSnapshot(fields RawFields) map[string]any {
	if fields == nil {
		return map[string]any{}
	}
	if raw, ok := fields["raw"].(map[string]any); ok {
		return raw
	}
	snapshot := make(map[string]any, len(fields))
	for k, v := range fields {
		snapshot[k] = v
	}
	return snapshot
}

// coerceText converts a raw extracted value to a trimmed string. Numeric
// values (common in structured-data blocks) are formatted; everything else
// is rejected.
func coerceText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", t), "0"), ".0"), true
	case int:
		return fmt.Sprintf("%d", t), true
	}
	return "", false
}
