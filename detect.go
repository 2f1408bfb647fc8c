package carscrape

// scoreScale is the common scale every raw probe score is mapped onto
// before comparison. Raw scores are not comparable across categories by
// construction: detail probes score on a small fixed-point structural
// scale while listing probes score on an unbounded URL count.
const scoreScale = 10.0

// Per-category raw-score ceilings used for normalization. The listing cap
// stops a page yielding thousands of anchors from auto-winning over a
// strong structural detail match.
const (
	detailScoreMax     = 6.0
	listingURLCap      = 50.0
	paginationScoreMax = 10.0
	dealerScoreMax     = 10.0
)

// categoryPriority orders categories for tie-breaks. A correctly identified
// detail page is the most valuable signal to preserve.
func categoryPriority(c Category) int {
	switch c {
	case CategoryDetail:
		return 3
	case CategoryDealer:
		return 2
	case CategoryPagination:
		return 1
	case CategoryListing:
		return 0
	}
	return -1
}

// ProbeFailure records a template whose probe returned an error or
// panicked. Failures are contained at the detector boundary and scored as
// zero; one broken template never aborts detection of the rest.
type ProbeFailure struct {
	Template string
	Err      error
}

// Candidate is an ephemeral scoring record produced during detection. It is
// created fresh per detection call and discarded once the winner is
// selected.
type Candidate struct {
	Template Template
	Category Category
	RawScore float64
	Score    float64
	Result   ProbeResult
}

// Detection is the outcome of a detection call. Template is nil when no
// template matched.
type Detection struct {
	Template Template
	Category Category
	Score    float64

	// Result is the winning probe's payload, reused by the assembler.
	Result ProbeResult

	// Failures lists templates whose probes crashed during this call.
	Failures []ProbeFailure
}

// Matched reports whether a template was selected.
func (d *Detection) Matched() bool {
	return d.Template != nil
}

// TemplateDetector selects the best-matching structural template for a
// page. Detection never fails: a page that matches nothing yields an
// unmatched Detection.
type TemplateDetector interface {
	Detect(content, pageURL string) *Detection
}

// Detector scores every registered template and picks the single best match
// under a cross-category-comparable scoring rule. Detection is a pure,
// synchronous computation over in-memory text; a Detector is safe for
// concurrent use.
type Detector struct {
	registry *Registry
}

// Ensure Detector implements TemplateDetector at compile time.
var _ TemplateDetector = (*Detector)(nil)

// NewDetector creates a Detector over a validated registry.
func NewDetector(registry *Registry) *Detector {
	return &Detector{registry: registry}
}

// Detect probes every registered template, normalizes raw scores per
// category onto a common scale, and selects the highest-scoring candidate.
// Ties are broken by category priority (detail > dealer > pagination >
// listing), then by registration order. A zero score from every candidate
// yields an unmatched Detection.
func (d *Detector) Detect(content, pageURL string) *Detection {
	det := &Detection{}
	if content == "" {
		return det
	}

	var candidates []Candidate
	for _, tpl := range d.registry.All() {
		result, err := probe(tpl, content, pageURL)
		if err != nil {
			det.Failures = append(det.Failures, ProbeFailure{
				Template: tpl.Descriptor().Name,
				Err:      err,
			})
			continue
		}

		desc := tpl.Descriptor()
		score := normalizeScore(desc.Category, result.Score)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{
			Template: tpl,
			Category: desc.Category,
			RawScore: result.Score,
			Score:    score,
			Result:   result,
		})
	}

	if len(candidates) == 0 {
		return det
	}

	// Candidates are in registration order, so strict comparisons keep the
	// earliest entry on exact ties.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		} else if c.Score == best.Score && categoryPriority(c.Category) > categoryPriority(best.Category) {
			best = c
		}
	}

	det.Template = best.Template
	det.Category = best.Category
	det.Score = best.Score
	det.Result = best.Result
	return det
}

// probe invokes a template's probe, converting panics into errors so that
// one broken template cannot abort detection.
func probe(tpl Template, content, pageURL string) (result ProbeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Errorf(EINTERNAL, "probe panic in template %q: %v", tpl.Descriptor().Name, r)
		}
	}()
	return tpl.Probe(content, pageURL)
}

// normalizeScore maps a raw category score onto [0, scoreScale]. Listing
// scores are URL counts capped at listingURLCap; the fixed-point categories
// rescale linearly against their known maximum.
func normalizeScore(c Category, raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	switch c {
	case CategoryDetail:
		return min(raw, detailScoreMax) / detailScoreMax * scoreScale
	case CategoryListing:
		return min(raw, listingURLCap) / listingURLCap * scoreScale
	case CategoryPagination:
		return min(raw, paginationScoreMax) / paginationScoreMax * scoreScale
	case CategoryDealer:
		return min(raw, dealerScoreMax) / dealerScoreMax * scoreScale
	}
	return 0
}
