package goquery_test

import (
	"testing"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationQuery(t *testing.T) {
	t.Parallel()

	t.Run("prefers rel=next", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="?page=9">9</a>
<a rel="next" href="?page=3">Next</a>
</body></html>`

		res, err := goquery.NewPaginationQuery().Probe(html, "https://example.com/stock")

		require.NoError(t, err)
		assert.Equal(t, 2.0, res.Score)
		assert.Equal(t, "https://example.com/stock?page=3", res.NextPage)
	})

	t.Run("finds any page-parameter anchor", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/stock?page=2">2</a></body></html>`

		next, err := goquery.NewPaginationQuery().EmitNextPage(html, "https://example.com/stock")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/stock?page=2", next)
	})

	t.Run("increments the current page parameter as a last resort", func(t *testing.T) {
		t.Parallel()

		res, err := goquery.NewPaginationQuery().Probe(`<html><body></body></html>`, "https://example.com/stock?page=4")

		require.NoError(t, err)
		assert.Equal(t, 1.0, res.Score)
		assert.Equal(t, "https://example.com/stock?page=5", res.NextPage)
	})

	t.Run("scores zero with no pagination evidence", func(t *testing.T) {
		t.Parallel()

		res, err := goquery.NewPaginationQuery().Probe(`<html><body></body></html>`, "https://example.com/stock")

		require.NoError(t, err)
		assert.Zero(t, res.Score)
		assert.Empty(t, res.NextPage)
	})
}

func TestPaginationPath(t *testing.T) {
	t.Parallel()

	t.Run("finds path-segment pagination links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/used-cars/page/2">Next page</a></body></html>`

		res, err := goquery.NewPaginationPath().Probe(html, "https://example.com/used-cars")

		require.NoError(t, err)
		assert.Equal(t, 2.0, res.Score)
		assert.Equal(t, "https://example.com/used-cars/page/2", res.NextPage)
	})

	t.Run("prefers rel=next", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/used-cars/page/9">9</a>
<a rel="next" href="/used-cars/page/3">Next</a>
</body></html>`

		next, err := goquery.NewPaginationPath().EmitNextPage(html, "https://example.com/used-cars")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/used-cars/page/3", next)
	})

	t.Run("scores zero without page segments", func(t *testing.T) {
		t.Parallel()

		res, err := goquery.NewPaginationPath().Probe(`<html><body><a href="/stock?page=2">2</a></body></html>`, "https://example.com/")

		require.NoError(t, err)
		assert.Zero(t, res.Score)
	})
}

var (
	_ carscrape.NextPageEmitter = (*goquery.PaginationQuery)(nil)
	_ carscrape.NextPageEmitter = (*goquery.PaginationPath)(nil)
)
