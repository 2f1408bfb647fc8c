package carscrape

import "context"

// CrawlPriority represents crawl priority (higher = more important).
type CrawlPriority int

// Crawl priority levels. Detail-page candidates are processed before
// further pagination so that rows are produced early.
const (
	PriorityNextPage CrawlPriority = 20
	PriorityListing  CrawlPriority = 50
	PriorityDetail   CrawlPriority = 100
	PrioritySeed     CrawlPriority = 110
)

// DiscoveredURL represents a URL queued for crawling with priority
// metadata.
type DiscoveredURL struct {
	URL      string
	Priority CrawlPriority
	Source   string // "seed", "listing", "pagination", "sitemap"
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a URL to the frontier.
	// Returns false if the URL has already been seen.
	Push(u DiscoveredURL) bool

	// Pop returns the next URL by priority.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredURL, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers candidate page URLs from a site's sitemap, used
// to seed the crawl frontier for sites that publish stock sitemaps.
type SitemapService interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
