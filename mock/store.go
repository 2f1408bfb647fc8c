package mock

import (
	"context"

	"github.com/fwojciec/carscrape"
)

var _ carscrape.VehicleService = (*VehicleService)(nil)

// VehicleService is a mock implementation of carscrape.VehicleService.
type VehicleService struct {
	CreateVehicleFn   func(ctx context.Context, v *carscrape.Vehicle) error
	FindVehicleByIDFn func(ctx context.Context, id string) (*carscrape.Vehicle, error)
	FindVehiclesFn    func(ctx context.Context, filter carscrape.VehicleFilter) ([]*carscrape.Vehicle, error)
	DeleteVehicleFn   func(ctx context.Context, id string) error
}

func (s *VehicleService) CreateVehicle(ctx context.Context, v *carscrape.Vehicle) error {
	return s.CreateVehicleFn(ctx, v)
}

func (s *VehicleService) FindVehicleByID(ctx context.Context, id string) (*carscrape.Vehicle, error) {
	return s.FindVehicleByIDFn(ctx, id)
}

func (s *VehicleService) FindVehicles(ctx context.Context, filter carscrape.VehicleFilter) ([]*carscrape.Vehicle, error) {
	return s.FindVehiclesFn(ctx, filter)
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	return s.DeleteVehicleFn(ctx, id)
}

var _ carscrape.DealerService = (*DealerService)(nil)

// DealerService is a mock implementation of carscrape.DealerService.
type DealerService struct {
	CreateDealerFn func(ctx context.Context, d *carscrape.Dealer) error
	FindDealersFn  func(ctx context.Context) ([]*carscrape.Dealer, error)
}

func (s *DealerService) CreateDealer(ctx context.Context, d *carscrape.Dealer) error {
	return s.CreateDealerFn(ctx, d)
}

func (s *DealerService) FindDealers(ctx context.Context) ([]*carscrape.Dealer, error) {
	return s.FindDealersFn(ctx)
}
