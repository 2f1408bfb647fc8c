package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/carscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ carscrape.VehicleService = (*VehicleService)(nil)

// VehicleService implements carscrape.VehicleService using SQLite.
type VehicleService struct {
	db *DB
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(db *DB) *VehicleService {
	return &VehicleService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateVehicle creates a new vehicle record. Re-scraping the same URL with
// unchanged content refreshes the timestamp instead of inserting a second
// row; changed content replaces the stored record in place.
func (s *VehicleService) CreateVehicle(ctx context.Context, v *carscrape.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}

	record, err := json.Marshal(v.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if v.ContentHash == "" {
		v.ContentHash = hashContent(string(record))
	}
	v.ScrapedAt = time.Now().UTC()

	brand := ""
	if v.Record.Brand != nil {
		brand = *v.Record.Brand
	}

	var existingID, existingHash string
	err = s.db.QueryRowContext(ctx, `
		SELECT id, content_hash FROM vehicles WHERE source_url = ?
	`, v.SourceURL).Scan(&existingID, &existingHash)
	switch {
	case err == sql.ErrNoRows:
		v.ID = uuid.New().String()
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO vehicles (id, source_url, template, brand, record, content_hash, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, v.ID, v.SourceURL, v.Template, brand, string(record), v.ContentHash,
			v.ScrapedAt.Format(time.RFC3339))
		return err
	case err != nil:
		return err
	}

	v.ID = existingID
	if existingHash == v.ContentHash {
		_, err = s.db.ExecContext(ctx, `
			UPDATE vehicles SET scraped_at = ? WHERE id = ?
		`, v.ScrapedAt.Format(time.RFC3339), v.ID)
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE vehicles
		SET template = ?, brand = ?, record = ?, content_hash = ?, scraped_at = ?
		WHERE id = ?
	`, v.Template, brand, string(record), v.ContentHash,
		v.ScrapedAt.Format(time.RFC3339), v.ID)
	return err
}

// FindVehicleByID retrieves a vehicle by ID.
func (s *VehicleService) FindVehicleByID(ctx context.Context, id string) (*carscrape.Vehicle, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, template, record, content_hash, scraped_at
		FROM vehicles
		WHERE id = ?
	`, id)

	v, err := scanVehicle(row.Scan)
	if err == sql.ErrNoRows {
		return nil, carscrape.Errorf(carscrape.ENOTFOUND, "vehicle not found")
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// FindVehicles retrieves vehicles matching the filter, newest first.
func (s *VehicleService) FindVehicles(ctx context.Context, filter carscrape.VehicleFilter) ([]*carscrape.Vehicle, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, template, record, content_hash, scraped_at FROM vehicles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Brand != nil {
		query.WriteString(" AND brand = ?")
		args = append(args, *filter.Brand)
	}

	query.WriteString(" ORDER BY scraped_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*carscrape.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// DeleteVehicle permanently removes a vehicle.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return carscrape.Errorf(carscrape.ENOTFOUND, "vehicle not found")
	}
	return nil
}

// scanVehicle scans one vehicle row and unmarshals its record JSON.
func scanVehicle(scan func(dest ...any) error) (*carscrape.Vehicle, error) {
	var v carscrape.Vehicle
	var record, scrapedAt string

	if err := scan(&v.ID, &v.SourceURL, &v.Template, &record, &v.ContentHash, &scrapedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(record), &v.Record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	var err error
	v.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
	if err != nil {
		return nil, err
	}
	return &v, nil
}
