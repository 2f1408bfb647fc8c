package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/carscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ carscrape.DealerService = (*DealerService)(nil)

// DealerService implements carscrape.DealerService using SQLite.
type DealerService struct {
	db *DB
}

// NewDealerService creates a new DealerService.
func NewDealerService(db *DB) *DealerService {
	return &DealerService{db: db}
}

// CreateDealer creates a dealer record. A dealer with the same name and
// telephone as an existing row is the same entity seen on another page, so
// the insert is a no-op.
func (s *DealerService) CreateDealer(ctx context.Context, d *carscrape.Dealer) error {
	if err := d.Validate(); err != nil {
		return err
	}

	record, err := json.Marshal(d.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	d.ID = uuid.New().String()
	d.ScrapedAt = time.Now().UTC()

	name := ""
	if d.Record.Name != nil {
		name = *d.Record.Name
	}
	telephone := ""
	if d.Record.Telephone != nil {
		telephone = *d.Record.Telephone
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dealers (id, source_url, template, name, telephone, record, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, telephone) DO NOTHING
	`, d.ID, d.SourceURL, d.Template, name, telephone, string(record),
		d.ScrapedAt.Format(time.RFC3339))
	return err
}

// FindDealers retrieves all stored dealers, newest first.
func (s *DealerService) FindDealers(ctx context.Context) ([]*carscrape.Dealer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, template, record, scraped_at
		FROM dealers
		ORDER BY scraped_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dealers []*carscrape.Dealer
	for rows.Next() {
		var d carscrape.Dealer
		var record, scrapedAt string

		if err := rows.Scan(&d.ID, &d.SourceURL, &d.Template, &record, &scrapedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(record), &d.Record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		d.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
		if err != nil {
			return nil, err
		}
		dealers = append(dealers, &d)
	}
	return dealers, rows.Err()
}
