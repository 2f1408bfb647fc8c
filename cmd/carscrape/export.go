package main

import (
	"fmt"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if c.Vehicles == "" && c.Dealers == "" {
		return fmt.Errorf("nothing to export: pass --vehicles and/or --dealers with an output path")
	}

	if c.Vehicles != "" {
		vehicles, err := deps.Vehicles.FindVehicles(deps.Ctx, carscrape.VehicleFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", carscrape.ErrorMessage(err))
			return err
		}
		if err := fs.WriteVehiclesCSV(c.Vehicles, vehicles); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d vehicles to %s\n", len(vehicles), c.Vehicles)
	}

	if c.Dealers != "" {
		dealers, err := deps.Dealers.FindDealers(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", carscrape.ErrorMessage(err))
			return err
		}
		if err := fs.WriteDealersCSV(c.Dealers, dealers); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d dealers to %s\n", len(dealers), c.Dealers)
	}

	return nil
}
