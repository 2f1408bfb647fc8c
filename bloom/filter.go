// Package bloom provides probabilistic URL dedupe for the crawl frontier.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks URLs the crawler has already queued or visited. It can
// report false positives (a URL wrongly considered seen, so a page may be
// skipped) but never false negatives, which keeps the frontier from
// re-crawling pages at the cost of occasionally missing one.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Seen reports whether the URL might have been added before.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}

// Add marks a URL as seen. It returns false if the URL was possibly seen
// already, so callers can use it as a single test-and-add step when
// deciding whether to queue.
func (f *Filter) Add(url string) bool {
	return !f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
