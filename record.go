package carscrape

// DetailRecord is the canonical normalized output for a vehicle detail page.
// Absent data is represented by nil pointers, never by key omission: every
// key is always present when the record is marshalled to JSON, with null for
// absent values. Downstream schema validation depends on this.
type DetailRecord struct {
	Brand        *string        `json:"brand"`
	Model        *string        `json:"model"`
	Year         *int           `json:"year"`
	PriceValue   *float64       `json:"price_value"`
	PriceRaw     *string        `json:"price_raw"`
	Currency     *string        `json:"currency"`
	MileageValue *int           `json:"mileage_value"`
	MileageUnit  *string        `json:"mileage_unit"`
	Fuel         *string        `json:"fuel"`
	Transmission *string        `json:"transmission"`
	Description  *string        `json:"description"`
	Raw          map[string]any `json:"raw"`
}

// DealerRecord holds site-level dealer-entity fields.
type DealerRecord struct {
	Name      *string        `json:"name"`
	Telephone *string        `json:"telephone"`
	Email     *string        `json:"email"`
	Address   *string        `json:"address"`
	Raw       map[string]any `json:"raw"`
}

// NormalizationIssue annotates a raw field a normalizer could not
// confidently coerce. Issues are accumulated per record and surfaced as
// data alongside a best-effort result, never as control flow.
type NormalizationIssue struct {
	Field  string `json:"field"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// Result is the assembled output for a classified page. Exactly one of the
// category payloads is populated, matching Category.
type Result struct {
	Template string   `json:"template"`
	Category Category `json:"category"`

	// Detail and Issues are set for CategoryDetail pages.
	Detail *DetailRecord        `json:"detail,omitempty"`
	Issues []NormalizationIssue `json:"issues,omitempty"`

	// URLs is set for CategoryListing pages.
	URLs []string `json:"urls,omitempty"`

	// NextPage is set for CategoryPagination pages; nil when no next page
	// could be resolved.
	NextPage *string `json:"next_page,omitempty"`

	// Dealer is set for CategoryDealer pages.
	Dealer *DealerRecord `json:"dealer,omitempty"`
}
