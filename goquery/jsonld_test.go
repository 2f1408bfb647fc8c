package goquery_test

import (
	"strings"
	"testing"

	pbgoquery "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *pbgoquery.Document {
	t.Helper()
	doc, err := pbgoquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractJSONLD(t *testing.T) {
	t.Parallel()

	t.Run("extracts objects from multiple script blocks", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">{"@type": "Vehicle", "name": "2019 VW Golf"}</script>
<script type="application/ld+json">{"@type": "Organization", "name": "Smith Motors"}</script>
</head><body></body></html>`

		nodes := goquery.ExtractJSONLD(parseHTML(t, html))

		require.Len(t, nodes, 2)
		assert.Equal(t, "2019 VW Golf", nodes[0]["name"])
		assert.Equal(t, "Smith Motors", nodes[1]["name"])
	})

	t.Run("flattens graph containers and top-level arrays", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">{"@context": "https://schema.org", "@graph": [
	{"@type": "WebPage", "name": "Stock"},
	{"@type": "Car", "name": "2017 Ford Fiesta"}
]}</script>
<script type="application/ld+json">[{"@type": "BreadcrumbList"}, {"@type": "Vehicle"}]</script>
</head><body></body></html>`

		nodes := goquery.ExtractJSONLD(parseHTML(t, html))

		require.Len(t, nodes, 4)
		assert.Equal(t, "2017 Ford Fiesta", nodes[1]["name"])
	})

	t.Run("skips malformed blocks without dropping valid ones", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">{not json at all</script>
<script type="application/ld+json">{"@type": "Vehicle", "name": "2019 VW Golf"}</script>
</head><body></body></html>`

		nodes := goquery.ExtractJSONLD(parseHTML(t, html))

		require.Len(t, nodes, 1)
		assert.Equal(t, "2019 VW Golf", nodes[0]["name"])
	})

	t.Run("returns nil for a page without structured data", func(t *testing.T) {
		t.Parallel()

		nodes := goquery.ExtractJSONLD(parseHTML(t, `<html><body><p>hello</p></body></html>`))

		assert.Nil(t, nodes)
	})
}

func TestExtractMeta(t *testing.T) {
	t.Parallel()

	t.Run("prefers open graph over the document title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<title>Dealer Site</title>
<meta property="og:title" content="2019 VW Golf 1.6 TDI">
<meta property="product:price:amount" content="4995">
<meta property="product:price:currency" content="GBP">
<meta property="og:description" content="One owner from new.">
</head><body></body></html>`

		meta := goquery.ExtractMeta(parseHTML(t, html))

		assert.Equal(t, "2019 VW Golf 1.6 TDI", meta.Title)
		assert.Equal(t, "4995", meta.Price)
		assert.Equal(t, "GBP", meta.Currency)
		assert.Equal(t, "One owner from new.", meta.Description)
	})

	t.Run("falls back to the document title", func(t *testing.T) {
		t.Parallel()

		meta := goquery.ExtractMeta(parseHTML(t, `<html><head><title>2017 Ford Fiesta</title></head><body></body></html>`))

		assert.Equal(t, "2017 Ford Fiesta", meta.Title)
		assert.Empty(t, meta.Price)
	})
}

func TestExtractMicrodata(t *testing.T) {
	t.Parallel()

	t.Run("extracts itemprops from a vehicle itemscope", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div itemscope itemtype="https://schema.org/Vehicle">
	<span itemprop="name">2016 BMW 320d</span>
	<span itemprop="brand">BMW</span>
	<meta itemprop="price" content="10995">
</div>
</body></html>`

		fields, ok := goquery.ExtractMicrodata(parseHTML(t, html))

		require.True(t, ok)
		name, _ := fields.Text("name")
		assert.Equal(t, "2016 BMW 320d", name)
		price, _ := fields.Text("price")
		assert.Equal(t, "10995", price)
	})

	t.Run("ignores non-vehicle itemscopes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div itemscope itemtype="https://schema.org/Organization">
	<span itemprop="name">Smith Motors</span>
</div>
</body></html>`

		_, ok := goquery.ExtractMicrodata(parseHTML(t, html))

		assert.False(t, ok)
	})
}
