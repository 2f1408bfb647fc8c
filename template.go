package carscrape

// Category classifies a structural template by the kind of page it
// recognizes.
type Category string

// Template categories.
const (
	CategoryListing    Category = "listing"
	CategoryDetail     Category = "detail"
	CategoryPagination Category = "pagination"
	CategoryDealer     Category = "dealer"
)

// Capability names an operation a template implements. A template's
// descriptor must declare every capability its category requires, and the
// registry verifies the declaration against the emitter interfaces the
// template actually implements.
type Capability string

// Template capabilities.
const (
	CapEmitURLs     Capability = "emits_urls"
	CapEmitNextPage Capability = "emits_next_page"
	CapEmitDetail   Capability = "emits_detail_row"
	CapEmitDealer   Capability = "emits_dealer_row"
)

// TemplateDescriptor is the identity of a registered template.
type TemplateDescriptor struct {
	Name         string
	Category     Category
	Capabilities []Capability
}

// Has reports whether the descriptor declares the capability.
func (d TemplateDescriptor) Has(c Capability) bool {
	for _, cap := range d.Capabilities {
		if cap == c {
			return true
		}
	}
	return false
}

// RawFields is the intermediate field mapping produced by a template's
// extraction. Unlike DetailRecord, keys the template could not populate are
// simply missing from this mapping.
type RawFields map[string]any

// Text returns the value for key coerced to a trimmed string.
// The bool result is false if the key is absent or empty.
func (f RawFields) Text(key string) (string, bool) {
	return coerceText(f[key])
}

// Specs returns the nested spec-sheet mapping, if the template produced one.
func (f RawFields) Specs() map[string]string {
	if specs, ok := f["specs"].(map[string]string); ok {
		return specs
	}
	return nil
}

// Spec returns the value for a spec-sheet key, trying each given key in
// order.
func (f RawFields) Spec(keys ...string) (string, bool) {
	specs := f.Specs()
	for _, k := range keys {
		if v, ok := coerceText(specs[k]); ok {
			return v, true
		}
	}
	return "", false
}

// ProbeResult is what a template's probe returns: a raw non-negative score
// plus the would-be payload, so that selection can reuse the probe's work
// instead of re-extracting after the winner is chosen.
type ProbeResult struct {
	// Score is the template's raw score. Raw scores are NOT comparable
	// across categories; the detector normalizes them before comparison.
	Score float64

	// URLs is the extracted listing payload (listing templates only).
	URLs []string

	// Fields is the extracted detail or dealer payload.
	Fields RawFields

	// NextPage is the discovered next-page URL (pagination templates only).
	NextPage string
}

// Template is a structural page recognizer. Implementations must be
// stateless: Probe is side-effect-free and safe for concurrent use.
type Template interface {
	// Descriptor returns the template's registered identity.
	Descriptor() TemplateDescriptor

	// Probe scores the page for this template. Raw page content and the
	// page URL (used only for link resolution) are supplied by the caller.
	Probe(content, pageURL string) (ProbeResult, error)
}

// URLEmitter is implemented by listing templates.
type URLEmitter interface {
	Template

	// EmitURLs returns the detail-page URLs found on a listing page,
	// resolved against pageURL.
	EmitURLs(content, pageURL string) ([]string, error)
}

// DetailEmitter is implemented by detail templates.
type DetailEmitter interface {
	Template

	// EmitDetail returns the raw extracted fields for a detail page.
	EmitDetail(content, pageURL string) (RawFields, error)
}

// NextPageEmitter is implemented by pagination templates.
type NextPageEmitter interface {
	Template

	// EmitNextPage returns the next-page URL, or "" if none was found.
	EmitNextPage(content, pageURL string) (string, error)
}

// DealerEmitter is implemented by dealer templates.
type DealerEmitter interface {
	Template

	// EmitDealer returns the raw extracted dealer-entity fields.
	EmitDealer(content, pageURL string) (RawFields, error)
}
