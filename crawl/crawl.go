package crawl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/carscrape"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing and crawl safety limits.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01

	// DefaultMaxPages bounds a crawl to prevent runaway walks of
	// badly-paginated sites.
	DefaultMaxPages = 1000

	// DefaultConcurrency is the number of pages fetched in parallel.
	DefaultConcurrency = 5
)

// Crawler walks a dealer site from a seed URL. Every fetched page goes
// through template detection; listing pages feed the frontier with detail
// URLs, pagination pages extend the walk, and detail and dealer pages
// become stored records.
type Crawler struct {
	Detector    carscrape.TemplateDetector
	Fetcher     carscrape.Fetcher
	Converter   carscrape.Converter
	Vehicles    carscrape.VehicleService
	Dealers     carscrape.DealerService
	Sitemaps    carscrape.SitemapService
	RateLimiter carscrape.DomainLimiter

	Concurrency int
	MaxPages    int
}

// Result summarizes a crawl.
type Result struct {
	Pages    int // pages fetched and classified
	Vehicles int // vehicle records stored
	Dealers  int // dealer records stored
	Issues   int // normalization issues across all detail pages
	NoMatch  int // pages no template matched
	Failed   int // pages that could not be fetched or stored
}

// pageOutcome is the outcome of fetching and classifying one URL.
type pageOutcome struct {
	url     string
	content string
	res     *carscrape.Result
	issues  int
	noMatch bool
	err     error
}

// Crawl walks the site rooted at seedURL until the frontier is exhausted
// or MaxPages is reached. When a SitemapService is configured, its URLs
// seed the frontier alongside the seed page.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (*Result, error) {
	if _, err := url.Parse(seedURL); err != nil {
		return nil, carscrape.Errorf(carscrape.EINVALID, "invalid seed URL: %v", err)
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(carscrape.DiscoveredURL{
		URL:      seedURL,
		Priority: carscrape.PrioritySeed,
		Source:   "seed",
	})

	if c.Sitemaps != nil {
		urls, err := c.Sitemaps.DiscoverURLs(ctx, seedURL)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery: %w", err)
		}
		for _, u := range urls {
			frontier.Push(carscrape.DiscoveredURL{
				URL:      u,
				Priority: carscrape.PriorityDetail,
				Source:   "sitemap",
			})
		}
	}

	var result Result
	for frontier.Len() > 0 && result.Pages < maxPages {
		if err := ctx.Err(); err != nil {
			return &result, err
		}

		// Pop the next wave, bounded by both worker count and the
		// remaining page budget.
		var batch []carscrape.DiscoveredURL
		for len(batch) < concurrency && result.Pages+len(batch) < maxPages {
			u, ok := frontier.Pop()
			if !ok {
				break
			}
			batch = append(batch, u)
		}

		outcomes := make([]pageOutcome, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, u := range batch {
			g.Go(func() error {
				outcomes[i] = c.processPage(gctx, u.URL)
				return nil
			})
		}
		_ = g.Wait()

		for _, out := range outcomes {
			result.Pages++
			c.collect(ctx, out, frontier, &result)
		}
	}

	return &result, nil
}

// processPage fetches a URL and classifies it. Store operations happen in
// the collection phase so database writes stay sequential.
func (c *Crawler) processPage(ctx context.Context, pageURL string) pageOutcome {
	out := pageOutcome{url: pageURL}

	if c.RateLimiter != nil {
		host := ""
		if u, err := url.Parse(pageURL); err == nil {
			host = u.Host
		}
		if err := c.RateLimiter.Wait(ctx, host); err != nil {
			out.err = err
			return out
		}
	}

	content, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		out.err = err
		return out
	}
	out.content = content

	det := c.Detector.Detect(content, pageURL)
	if !det.Matched() {
		out.noMatch = true
		return out
	}

	c.convertDescription(det)

	res, err := carscrape.Assemble(det, pageURL)
	if err != nil {
		out.err = err
		return out
	}
	out.res = res
	out.issues = len(res.Issues)
	return out
}

// convertDescription turns a captured description_html block into
// markdown before assembly, when a converter is configured and the
// template did not already produce a plain description.
func (c *Crawler) convertDescription(det *carscrape.Detection) {
	if c.Converter == nil || det.Category != carscrape.CategoryDetail {
		return
	}
	fields := det.Result.Fields
	if fields == nil {
		return
	}
	if _, ok := fields.Text("description"); ok {
		return
	}
	html, ok := fields["description_html"].(string)
	if !ok {
		return
	}
	if md, err := c.Converter.Convert(html); err == nil && md != "" {
		fields["description"] = md
	}
}

// collect feeds one page's outcome into the frontier, the stores, and the
// crawl totals.
func (c *Crawler) collect(ctx context.Context, out pageOutcome, frontier *Frontier, result *Result) {
	switch {
	case out.err != nil:
		result.Failed++
		return
	case out.noMatch:
		result.NoMatch++
		return
	}

	result.Issues += out.issues

	switch out.res.Category {
	case carscrape.CategoryDetail:
		vehicle := &carscrape.Vehicle{
			SourceURL:   out.url,
			Template:    out.res.Template,
			Record:      *out.res.Detail,
			ContentHash: contentHash(out.content),
		}
		if err := c.Vehicles.CreateVehicle(ctx, vehicle); err != nil {
			result.Failed++
			return
		}
		result.Vehicles++

	case carscrape.CategoryListing:
		for _, u := range out.res.URLs {
			frontier.Push(carscrape.DiscoveredURL{
				URL:      u,
				Priority: carscrape.PriorityDetail,
				Source:   "listing",
			})
		}

	case carscrape.CategoryPagination:
		if out.res.NextPage != nil {
			frontier.Push(carscrape.DiscoveredURL{
				URL:      *out.res.NextPage,
				Priority: carscrape.PriorityNextPage,
				Source:   "pagination",
			})
		}

	case carscrape.CategoryDealer:
		dealer := &carscrape.Dealer{
			SourceURL: out.url,
			Template:  out.res.Template,
			Record:    *out.res.Dealer,
		}
		if err := c.Dealers.CreateDealer(ctx, dealer); err != nil {
			result.Failed++
			return
		}
		result.Dealers++
	}
}

// contentHash fingerprints fetched page content for storage-level dedupe.
func contentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
