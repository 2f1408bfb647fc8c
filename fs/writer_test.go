package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string     { return &s }
func intptr(i int) *int           { return &i }
func floatptr(f float64) *float64 { return &f }

func TestWriteVehiclesCSV(t *testing.T) {
	t.Parallel()

	t.Run("writes one row per vehicle with empty cells for absent values", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "vehicles.csv")
		scraped := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		vehicles := []*carscrape.Vehicle{
			{
				SourceURL: "https://example.com/car/1",
				Template:  "detail_jsonld_vehicle",
				Record: carscrape.DetailRecord{
					Brand:        strptr("Ford"),
					Model:        strptr("Fiesta"),
					Year:         intptr(2017),
					PriceValue:   floatptr(7495),
					PriceRaw:     strptr("£7,495"),
					Currency:     strptr("GBP"),
					MileageValue: intptr(38500),
					MileageUnit:  strptr("mi"),
					Fuel:         strptr("Petrol"),
					Transmission: strptr("Manual"),
				},
				ScrapedAt: scraped,
			},
			{
				SourceURL: "https://example.com/car/2",
				Template:  "detail_html_spec_table",
				Record:    carscrape.DetailRecord{},
				ScrapedAt: scraped,
			},
		}

		require.NoError(t, fs.WriteVehiclesCSV(path, vehicles))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		out := string(content)
		assert.Contains(t, out, "source_url,template,brand,model,year,price_value,price_raw,currency,mileage_value,mileage_unit,fuel,transmission,description,scraped_at")
		assert.Contains(t, out, `https://example.com/car/1,detail_jsonld_vehicle,Ford,Fiesta,2017,7495,"£7,495",GBP,38500,mi,Petrol,Manual,,2026-08-01T12:00:00Z`)
		assert.Contains(t, out, "https://example.com/car/2,detail_html_spec_table,,,,,,,,,,,,2026-08-01T12:00:00Z")
	})
}

func TestWriteDealersCSV(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates rows by name and telephone", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "dealers.csv")
		scraped := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		dealers := []*carscrape.Dealer{
			{
				SourceURL: "https://example.com/contact",
				Template:  "dealer_info_jsonld",
				Record: carscrape.DealerRecord{
					Name:      strptr("Hilltop Motors"),
					Telephone: strptr("01234 567890"),
				},
				ScrapedAt: scraped,
			},
			{
				SourceURL: "https://example.com/about",
				Template:  "dealer_info_jsonld",
				Record: carscrape.DealerRecord{
					Name:      strptr("Hilltop Motors"),
					Telephone: strptr("01234 567890"),
				},
				ScrapedAt: scraped,
			},
			{
				SourceURL: "https://other.example.com/contact",
				Template:  "dealer_info_jsonld",
				Record: carscrape.DealerRecord{
					Name:      strptr("Valley Cars"),
					Telephone: strptr("09876 543210"),
				},
				ScrapedAt: scraped,
			},
		}

		require.NoError(t, fs.WriteDealersCSV(path, dealers))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		out := string(content)
		assert.Equal(t, 1, strings.Count(out, "Hilltop Motors"))
		assert.Contains(t, out, "Valley Cars")
	})
}
