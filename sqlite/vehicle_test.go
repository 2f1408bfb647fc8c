package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func testVehicle(url string) *carscrape.Vehicle {
	return &carscrape.Vehicle{
		SourceURL: url,
		Template:  "detail_jsonld_vehicle",
		Record: carscrape.DetailRecord{
			Brand: strptr("Ford"),
			Model: strptr("Fiesta"),
			Year:  intptr(2017),
		},
	}
}

func TestVehicleService_CreateVehicle(t *testing.T) {
	t.Parallel()

	t.Run("creates vehicle with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)
		ctx := context.Background()

		v := testVehicle("https://example.com/car/1")
		require.NoError(t, svc.CreateVehicle(ctx, v))

		assert.NotEmpty(t, v.ID)
		assert.NotEmpty(t, v.ContentHash)
		assert.False(t, v.ScrapedAt.IsZero())
	})

	t.Run("returns EINVALID for vehicle without source URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)

		err := svc.CreateVehicle(context.Background(), &carscrape.Vehicle{Template: "detail_jsonld_vehicle"})
		require.Error(t, err)
		assert.Equal(t, carscrape.EINVALID, carscrape.ErrorCode(err))
	})

	t.Run("re-scraping unchanged content does not create a second row", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)
		ctx := context.Background()

		first := testVehicle("https://example.com/car/1")
		require.NoError(t, svc.CreateVehicle(ctx, first))

		second := testVehicle("https://example.com/car/1")
		require.NoError(t, svc.CreateVehicle(ctx, second))

		assert.Equal(t, first.ID, second.ID)

		vehicles, err := svc.FindVehicles(ctx, carscrape.VehicleFilter{})
		require.NoError(t, err)
		assert.Len(t, vehicles, 1)
	})

	t.Run("re-scraping changed content replaces the stored record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)
		ctx := context.Background()

		first := testVehicle("https://example.com/car/1")
		require.NoError(t, svc.CreateVehicle(ctx, first))

		updated := testVehicle("https://example.com/car/1")
		updated.Record.Year = intptr(2018)
		require.NoError(t, svc.CreateVehicle(ctx, updated))

		vehicles, err := svc.FindVehicles(ctx, carscrape.VehicleFilter{})
		require.NoError(t, err)
		require.Len(t, vehicles, 1)
		require.NotNil(t, vehicles[0].Record.Year)
		assert.Equal(t, 2018, *vehicles[0].Record.Year)
	})
}

func TestVehicleService_FindVehicleByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the full record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)
		ctx := context.Background()

		v := testVehicle("https://example.com/car/1")
		v.Record.Raw = map[string]any{"name": "2017 Ford Fiesta"}
		require.NoError(t, svc.CreateVehicle(ctx, v))

		got, err := svc.FindVehicleByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, v.SourceURL, got.SourceURL)
		require.NotNil(t, got.Record.Brand)
		assert.Equal(t, "Ford", *got.Record.Brand)
		assert.Equal(t, "2017 Ford Fiesta", got.Record.Raw["name"])
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)

		_, err := svc.FindVehicleByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, carscrape.ENOTFOUND, carscrape.ErrorCode(err))
	})
}

func TestVehicleService_FindVehicles(t *testing.T) {
	t.Parallel()

	t.Run("filters by brand", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)
		ctx := context.Background()

		ford := testVehicle("https://example.com/car/1")
		require.NoError(t, svc.CreateVehicle(ctx, ford))

		audi := testVehicle("https://example.com/car/2")
		audi.Record.Brand = strptr("Audi")
		require.NoError(t, svc.CreateVehicle(ctx, audi))

		vehicles, err := svc.FindVehicles(ctx, carscrape.VehicleFilter{Brand: strptr("Audi")})
		require.NoError(t, err)
		require.Len(t, vehicles, 1)
		assert.Equal(t, "https://example.com/car/2", vehicles[0].SourceURL)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)
		ctx := context.Background()

		for _, u := range []string{
			"https://example.com/car/1",
			"https://example.com/car/2",
			"https://example.com/car/3",
		} {
			require.NoError(t, svc.CreateVehicle(ctx, testVehicle(u)))
		}

		vehicles, err := svc.FindVehicles(ctx, carscrape.VehicleFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, vehicles, 2)

		vehicles, err = svc.FindVehicles(ctx, carscrape.VehicleFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, vehicles, 1)
	})
}

func TestVehicleService_DeleteVehicle(t *testing.T) {
	t.Parallel()

	t.Run("removes the vehicle", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)
		ctx := context.Background()

		v := testVehicle("https://example.com/car/1")
		require.NoError(t, svc.CreateVehicle(ctx, v))
		require.NoError(t, svc.DeleteVehicle(ctx, v.ID))

		_, err := svc.FindVehicleByID(ctx, v.ID)
		assert.Equal(t, carscrape.ENOTFOUND, carscrape.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewVehicleService(db)

		err := svc.DeleteVehicle(context.Background(), "no-such-id")
		assert.Equal(t, carscrape.ENOTFOUND, carscrape.ErrorCode(err))
	})
}
