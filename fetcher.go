package carscrape

import "context"

// Fetcher retrieves page content from a URL. Implementations hide the
// transport: plain HTTP for static dealer sites, a rendering browser for
// sites that inject their stock list client-side. The core never fetches;
// it only consumes decoded page text.
type Fetcher interface {
	// Fetch retrieves the page content at url.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Converter transforms an HTML fragment into plain renderable text.
// The crawl engine uses it on description blocks captured as markup before
// records are assembled.
type Converter interface {
	Convert(html string) (string, error)
}
