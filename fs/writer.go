package fs

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/fwojciec/carscrape"
)

// vehicleHeader is the canonical CSV column order: provenance first, then
// the normalized record keys in schema order.
var vehicleHeader = []string{
	"source_url", "template", "brand", "model", "year",
	"price_value", "price_raw", "currency",
	"mileage_value", "mileage_unit",
	"fuel", "transmission", "description", "scraped_at",
}

var dealerHeader = []string{
	"source_url", "template", "name", "telephone", "email", "address", "scraped_at",
}

// WriteVehiclesCSV writes vehicles to path as CSV, one row per vehicle.
// Absent record values become empty cells.
func WriteVehiclesCSV(path string, vehicles []*carscrape.Vehicle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(vehicleHeader); err != nil {
		return err
	}
	for _, v := range vehicles {
		row := []string{
			v.SourceURL,
			v.Template,
			stringCell(v.Record.Brand),
			stringCell(v.Record.Model),
			intCell(v.Record.Year),
			floatCell(v.Record.PriceValue),
			stringCell(v.Record.PriceRaw),
			stringCell(v.Record.Currency),
			intCell(v.Record.MileageValue),
			stringCell(v.Record.MileageUnit),
			stringCell(v.Record.Fuel),
			stringCell(v.Record.Transmission),
			stringCell(v.Record.Description),
			v.ScrapedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteDealersCSV writes dealers to path as CSV. Rows are deduplicated by
// (name, telephone) so one site yields one row no matter how many pages
// mentioned the dealer.
func WriteDealersCSV(path string, dealers []*carscrape.Dealer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dealerHeader); err != nil {
		return err
	}
	seen := make(map[string]bool, len(dealers))
	for _, d := range dealers {
		key := stringCell(d.Record.Name) + "\x00" + stringCell(d.Record.Telephone)
		if seen[key] {
			continue
		}
		seen[key] = true
		row := []string{
			d.SourceURL,
			d.Template,
			stringCell(d.Record.Name),
			stringCell(d.Record.Telephone),
			stringCell(d.Record.Email),
			stringCell(d.Record.Address),
			d.ScrapedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func stringCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
