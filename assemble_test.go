package carscrape_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/carscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleDetail(t *testing.T) {
	t.Parallel()

	t.Run("normalizes a fully populated field mapping", func(t *testing.T) {
		t.Parallel()

		fields := carscrape.RawFields{
			"brand":        "VW",
			"model":        "Golf",
			"year":         "2019",
			"price":        "£4,995",
			"mileage":      "45,230 miles",
			"fuel":         "Diesel",
			"transmission": "Manual",
			"description":  "One owner from new.",
		}

		rec, issues := carscrape.AssembleDetail(fields)

		assert.Empty(t, issues)
		require.NotNil(t, rec.Brand)
		assert.Equal(t, "Volkswagen", *rec.Brand)
		require.NotNil(t, rec.Model)
		assert.Equal(t, "Golf", *rec.Model)
		require.NotNil(t, rec.Year)
		assert.Equal(t, 2019, *rec.Year)
		require.NotNil(t, rec.PriceValue)
		assert.Equal(t, 4995.0, *rec.PriceValue)
		require.NotNil(t, rec.PriceRaw)
		assert.Equal(t, "£4,995", *rec.PriceRaw)
		require.NotNil(t, rec.Currency)
		assert.Equal(t, "GBP", *rec.Currency)
		require.NotNil(t, rec.MileageValue)
		assert.Equal(t, 45230, *rec.MileageValue)
		require.NotNil(t, rec.MileageUnit)
		assert.Equal(t, "mi", *rec.MileageUnit)
		require.NotNil(t, rec.Fuel)
		assert.Equal(t, "Diesel", *rec.Fuel)
		require.NotNil(t, rec.Transmission)
		assert.Equal(t, "Manual", *rec.Transmission)
		require.NotNil(t, rec.Description)
		assert.Equal(t, "One owner from new.", *rec.Description)
	})

	t.Run("marshals every canonical key even when nothing was populated", func(t *testing.T) {
		t.Parallel()

		rec, _ := carscrape.AssembleDetail(carscrape.RawFields{})

		data, err := json.Marshal(rec)
		require.NoError(t, err)

		var keys map[string]any
		require.NoError(t, json.Unmarshal(data, &keys))

		for _, key := range []string{
			"brand", "model", "year", "price_value", "price_raw", "currency",
			"mileage_value", "mileage_unit", "fuel", "transmission",
			"description", "raw",
		} {
			assert.Contains(t, keys, key, "canonical key %q must always be present", key)
		}
		assert.Len(t, keys, 12)
	})

	t.Run("reports unparseable price as issue not failure", func(t *testing.T) {
		t.Parallel()

		rec, issues := carscrape.AssembleDetail(carscrape.RawFields{"price": "n/a"})

		assert.Nil(t, rec.PriceValue)
		assert.Nil(t, rec.Currency)
		require.NotNil(t, rec.PriceRaw)
		assert.Equal(t, "n/a", *rec.PriceRaw)
		require.Len(t, issues, 1)
		assert.Equal(t, "price", issues[0].Field)
		assert.Equal(t, "n/a", issues[0].Raw)
	})

	t.Run("reports unparseable mileage as issue", func(t *testing.T) {
		t.Parallel()

		rec, issues := carscrape.AssembleDetail(carscrape.RawFields{"mileage": "low mileage"})

		assert.Nil(t, rec.MileageValue)
		assert.Nil(t, rec.MileageUnit)
		require.Len(t, issues, 1)
		assert.Equal(t, "mileage", issues[0].Field)
	})

	t.Run("falls back to the listing title for the year", func(t *testing.T) {
		t.Parallel()

		rec, issues := carscrape.AssembleDetail(carscrape.RawFields{
			"name": "2017 Ford Fiesta 1.0 EcoBoost",
		})

		assert.Empty(t, issues)
		require.NotNil(t, rec.Year)
		assert.Equal(t, 2017, *rec.Year)
	})

	t.Run("fills gaps from the spec-sheet mapping", func(t *testing.T) {
		t.Parallel()

		rec, issues := carscrape.AssembleDetail(carscrape.RawFields{
			"specs": map[string]string{
				"make":         "ford",
				"mileage":      "38,500 mi",
				"fuel":         "Petrol",
				"transmission": "Automatic",
			},
		})

		assert.Empty(t, issues)
		require.NotNil(t, rec.Brand)
		assert.Equal(t, "Ford", *rec.Brand)
		require.NotNil(t, rec.MileageValue)
		assert.Equal(t, 38500, *rec.MileageValue)
		require.NotNil(t, rec.Fuel)
		assert.Equal(t, "Petrol", *rec.Fuel)
		require.NotNil(t, rec.Transmission)
		assert.Equal(t, "Automatic", *rec.Transmission)
	})

	t.Run("uses the captured structured-data snapshot for audit", func(t *testing.T) {
		t.Parallel()

		raw := map[string]any{"@type": "Vehicle", "name": "2019 VW Golf"}
		rec, _ := carscrape.AssembleDetail(carscrape.RawFields{"raw": raw})

		assert.Equal(t, raw, rec.Raw)
	})

	t.Run("explicit currency field fills in when the price has no symbol", func(t *testing.T) {
		t.Parallel()

		rec, issues := carscrape.AssembleDetail(carscrape.RawFields{
			"price":    "7495",
			"currency": "gbp",
		})

		assert.Empty(t, issues)
		require.NotNil(t, rec.PriceValue)
		assert.Equal(t, 7495.0, *rec.PriceValue)
		require.NotNil(t, rec.Currency)
		assert.Equal(t, "GBP", *rec.Currency)
	})
}

func TestResolveURLs(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative URLs against the page URL", func(t *testing.T) {
		t.Parallel()

		urls := carscrape.ResolveURLs("https://example.com/stock/", []string{
			"/car/1",
			"car/2",
			"https://example.com/car/3",
		})

		assert.Equal(t, []string{
			"https://example.com/car/1",
			"https://example.com/stock/car/2",
			"https://example.com/car/3",
		}, urls)
	})

	t.Run("deduplicates preserving order", func(t *testing.T) {
		t.Parallel()

		urls := carscrape.ResolveURLs("https://example.com/", []string{
			"/car/1", "/car/2", "/car/1",
		})

		assert.Equal(t, []string{
			"https://example.com/car/1",
			"https://example.com/car/2",
		}, urls)
	})

	t.Run("drops non-http and unresolvable links", func(t *testing.T) {
		t.Parallel()

		urls := carscrape.ResolveURLs("", []string{
			"mailto:sales@example.com",
			"javascript:void(0)",
			"/relative/without/base",
			"https://example.com/car/1",
		})

		assert.Equal(t, []string{"https://example.com/car/1"}, urls)
	})
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	t.Run("rejects an unmatched detection", func(t *testing.T) {
		t.Parallel()

		_, err := carscrape.Assemble(&carscrape.Detection{}, "https://example.com")

		require.Error(t, err)
		assert.Equal(t, carscrape.EINVALID, carscrape.ErrorCode(err))
	})

	t.Run("assembles a listing payload into resolved URLs", func(t *testing.T) {
		t.Parallel()

		tpl := stubTemplate("listing_x", carscrape.CategoryListing, carscrape.CapEmitURLs)
		det := &carscrape.Detection{
			Template: tpl,
			Category: carscrape.CategoryListing,
			Score:    5,
			Result:   carscrape.ProbeResult{URLs: []string{"/car/1"}},
		}

		res, err := carscrape.Assemble(det, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, carscrape.CategoryListing, res.Category)
		assert.Equal(t, []string{"https://example.com/car/1"}, res.URLs)
		assert.Nil(t, res.Detail, "only detail templates produce detail records")
	})

	t.Run("assembles a pagination payload into an absolute next page", func(t *testing.T) {
		t.Parallel()

		tpl := stubTemplate("pagination_x", carscrape.CategoryPagination, carscrape.CapEmitNextPage)
		det := &carscrape.Detection{
			Template: tpl,
			Category: carscrape.CategoryPagination,
			Score:    2,
			Result:   carscrape.ProbeResult{NextPage: "?page=2"},
		}

		res, err := carscrape.Assemble(det, "https://example.com/stock")

		require.NoError(t, err)
		require.NotNil(t, res.NextPage)
		assert.Equal(t, "https://example.com/stock?page=2", *res.NextPage)
	})

	t.Run("assembles a dealer payload", func(t *testing.T) {
		t.Parallel()

		tpl := stubTemplate("dealer_x", carscrape.CategoryDealer, carscrape.CapEmitDealer)
		det := &carscrape.Detection{
			Template: tpl,
			Category: carscrape.CategoryDealer,
			Score:    3,
			Result: carscrape.ProbeResult{Fields: carscrape.RawFields{
				"name":      "Smith Motors",
				"telephone": "01234 567890",
				"email":     "sales@smithmotors.example",
			}},
		}

		res, err := carscrape.Assemble(det, "https://smithmotors.example")

		require.NoError(t, err)
		require.NotNil(t, res.Dealer)
		require.NotNil(t, res.Dealer.Name)
		assert.Equal(t, "Smith Motors", *res.Dealer.Name)
		require.NotNil(t, res.Dealer.Telephone)
		assert.Equal(t, "01234 567890", *res.Dealer.Telephone)
	})
}
