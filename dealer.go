package carscrape

import (
	"context"
	"time"
)

// Dealer is a stored site-level dealer entity. Dealers are deduplicated by
// (name, telephone): one row per site, not one per page that mentions it.
type Dealer struct {
	ID        string       `json:"id"`
	SourceURL string       `json:"sourceUrl"`
	Template  string       `json:"template"`
	Record    DealerRecord `json:"record"`
	ScrapedAt time.Time    `json:"scrapedAt"`
}

// Validate returns an error if the dealer contains invalid fields.
func (d *Dealer) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "dealer source URL required")
	}
	return nil
}

// DealerService represents a service for managing stored dealers.
type DealerService interface {
	// CreateDealer creates a dealer record unless an entry with the same
	// name and telephone already exists, in which case it is a no-op.
	CreateDealer(ctx context.Context, d *Dealer) error

	// FindDealers retrieves all stored dealers, newest first.
	FindDealers(ctx context.Context) ([]*Dealer, error)
}
