package goquery_test

import (
	"testing"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingCard(t *testing.T) {
	t.Parallel()

	t.Run("extracts the first link of each card", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="vehicle-card"><a href="/car/1">2019 VW Golf</a><a href="/car/1/gallery">Photos</a></div>
<div class="vehicle-card"><a href="/car/2">2017 Ford Fiesta</a></div>
<div class="listing-card"><a href="/car/3">2016 BMW 320d</a></div>
</body></html>`

		urls, err := goquery.NewListingCard().EmitURLs(html, "https://example.com/stock")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/car/1",
			"https://example.com/car/2",
			"https://example.com/car/3",
		}, urls)
	})

	t.Run("probe score is the URL count", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="car-card"><a href="/car/1">one</a></div>
<div class="car-card"><a href="/car/2">two</a></div>
</body></html>`

		res, err := goquery.NewListingCard().Probe(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, 2.0, res.Score)
		assert.Len(t, res.URLs, 2)
	})

	t.Run("scores zero without cards", func(t *testing.T) {
		t.Parallel()

		res, err := goquery.NewListingCard().Probe(`<html><body><a href="/about">About</a></body></html>`, "https://example.com/")

		require.NoError(t, err)
		assert.Zero(t, res.Score)
	})
}

func TestListingImageGrid(t *testing.T) {
	t.Parallel()

	t.Run("extracts links from image containers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="listing__image"><a href="/car/1"><img src="1.jpg"></a></div>
<div class="listing__image"><a href="/car/2"><img src="2.jpg"></a></div>
</body></html>`

		urls, err := goquery.NewListingImageGrid().EmitURLs(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/car/1",
			"https://example.com/car/2",
		}, urls)
	})

	t.Run("falls back to images wrapped in anchors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/car/9"><img src="9.jpg"></a>
<img src="logo.png">
</body></html>`

		urls, err := goquery.NewListingImageGrid().EmitURLs(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/car/9"}, urls)
	})
}

func TestListingULLI(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<ul class="stock-list">
	<li><a href="/car/1">2019 VW Golf</a></li>
	<li><a href="/car/2">2017 Ford Fiesta</a></li>
</ul>
<ul class="nav"><li><a href="/about">About</a></li></ul>
</body></html>`

	urls, err := goquery.NewListingULLI().EmitURLs(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/car/1",
		"https://example.com/car/2",
	}, urls)
}

func TestListingGenericAnchor(t *testing.T) {
	t.Parallel()

	t.Run("collects vehicle-path anchors only", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/used/vw-golf-2019">2019 VW Golf</a>
<a href="/vehicle/1234">2017 Ford Fiesta</a>
<a href="/about-us">About</a>
</body></html>`

		urls, err := goquery.NewListingGenericAnchor().EmitURLs(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/used/vw-golf-2019",
			"https://example.com/vehicle/1234",
		}, urls)
	})

	t.Run("deduplicates repeated anchors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/used/vw-golf-2019"><img src="1.jpg"></a>
<a href="/used/vw-golf-2019">2019 VW Golf</a>
</body></html>`

		urls, err := goquery.NewListingGenericAnchor().EmitURLs(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/used/vw-golf-2019"}, urls)
	})
}

func TestListingSection(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<section class="results">
	<a href="/car/1">2019 VW Golf</a>
	<a href="/car/2">2017 Ford Fiesta</a>
</section>
<footer><a href="/terms">Terms</a></footer>
</body></html>`

	urls, err := goquery.NewListingSection().EmitURLs(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/car/1",
		"https://example.com/car/2",
	}, urls)
}

var (
	_ carscrape.URLEmitter = (*goquery.ListingCard)(nil)
	_ carscrape.URLEmitter = (*goquery.ListingImageGrid)(nil)
	_ carscrape.URLEmitter = (*goquery.ListingULLI)(nil)
	_ carscrape.URLEmitter = (*goquery.ListingGenericAnchor)(nil)
	_ carscrape.URLEmitter = (*goquery.ListingSection)(nil)
)
