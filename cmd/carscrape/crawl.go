package main

import (
	"fmt"
	stdslog "log/slog"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/crawl"
	"github.com/fwojciec/carscrape/htmltomarkdown"
	carhttp "github.com/fwojciec/carscrape/http"
	"github.com/fwojciec/carscrape/rod"
	carslog "github.com/fwojciec/carscrape/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	var fetcher carscrape.Fetcher
	if c.Render {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = carhttp.NewFetcher()
	}
	defer fetcher.Close()

	detector := deps.Detector
	var sitemaps carscrape.SitemapService
	if c.Sitemap {
		sitemaps = carhttp.NewSitemapService(nil)
	}

	if c.Verbose {
		logger := stdslog.New(stdslog.NewTextHandler(deps.Stderr, nil))
		fetcher = carslog.NewLoggingFetcher(fetcher, logger)
		detector = carslog.NewLoggingDetector(detector, logger)
		if sitemaps != nil {
			sitemaps = carslog.NewLoggingSitemapService(sitemaps, logger)
		}
	}

	crawler := &crawl.Crawler{
		Detector:    detector,
		Fetcher:     fetcher,
		Converter:   htmltomarkdown.NewConverter(),
		Vehicles:    deps.Vehicles,
		Dealers:     deps.Dealers,
		Sitemaps:    sitemaps,
		RateLimiter: crawl.NewDomainLimiter(c.Rate),
		Concurrency: c.Concurrency,
		MaxPages:    c.MaxPages,
	}

	result, err := crawler.Crawl(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages: %d vehicles, %d dealers (%d unmatched, %d failed, %d field issues)\n",
		result.Pages, result.Vehicles, result.Dealers, result.NoMatch, result.Failed, result.Issues)
	return nil
}
