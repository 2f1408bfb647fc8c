// Package crawl orchestrates site crawling: a priority frontier, per-domain
// rate limiting, and the engine that turns classified pages into stored
// vehicle and dealer records.
package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/bloom"
)

// Compile-time interface verification.
var _ carscrape.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with a priority queue and Bloom
// filter deduplication. Detail-page URLs are popped before listing pages
// and further pagination, so vehicle rows appear early in a crawl.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *urlHeap
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &urlHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a URL to the frontier.
// Returns false if the URL has already been seen. Fragments are stripped
// first, so URLs differing only by fragment are duplicates.
func (f *Frontier) Push(u carscrape.DiscoveredURL) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	u.URL = stripFragment(u.URL)
	if !f.seen.Add(u.URL) {
		return false
	}

	heap.Push(f.queue, u)
	return true
}

// Pop returns the next URL by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (carscrape.DiscoveredURL, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return carscrape.DiscoveredURL{}, false
	}
	u, _ := heap.Pop(f.queue).(carscrape.DiscoveredURL)
	return u, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
// Fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Seen(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// urlHeap implements heap.Interface for the DiscoveredURL priority queue.
// Higher priority URLs are popped first.
type urlHeap []carscrape.DiscoveredURL

func (h urlHeap) Len() int { return len(h) }

// Less returns true if i has higher priority than j (max-heap).
func (h urlHeap) Less(i, j int) bool {
	return h[i].Priority > h[j].Priority
}

func (h urlHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *urlHeap) Push(x any) {
	u, _ := x.(carscrape.DiscoveredURL)
	*h = append(*h, u)
}

func (h *urlHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
