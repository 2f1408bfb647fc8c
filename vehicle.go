package carscrape

import (
	"context"
	"time"
)

// Vehicle is a stored canonical detail record plus scrape provenance.
type Vehicle struct {
	ID          string       `json:"id"`
	SourceURL   string       `json:"sourceUrl"`
	Template    string       `json:"template"`
	Record      DetailRecord `json:"record"`
	ContentHash string       `json:"contentHash"`
	ScrapedAt   time.Time    `json:"scrapedAt"`
}

// Validate returns an error if the vehicle contains invalid fields.
func (v *Vehicle) Validate() error {
	if v.SourceURL == "" {
		return Errorf(EINVALID, "vehicle source URL required")
	}
	if v.Template == "" {
		return Errorf(EINVALID, "vehicle template required")
	}
	return nil
}

// VehicleFilter represents a filter for FindVehicles.
type VehicleFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Brand     *string `json:"brand"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// VehicleService represents a service for managing stored vehicles.
type VehicleService interface {
	// CreateVehicle creates a new vehicle record.
	CreateVehicle(ctx context.Context, v *Vehicle) error

	// FindVehicleByID retrieves a vehicle by ID.
	// Returns ENOTFOUND if the vehicle does not exist.
	FindVehicleByID(ctx context.Context, id string) (*Vehicle, error)

	// FindVehicles retrieves vehicles matching the filter, newest first.
	FindVehicles(ctx context.Context, filter VehicleFilter) ([]*Vehicle, error)

	// DeleteVehicle permanently removes a vehicle.
	// Returns ENOTFOUND if the vehicle does not exist.
	DeleteVehicle(ctx context.Context, id string) error
}
