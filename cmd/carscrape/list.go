package main

import (
	"fmt"

	"github.com/fwojciec/carscrape"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := carscrape.VehicleFilter{Limit: c.Limit}
	if c.Brand != "" {
		filter.Brand = &c.Brand
	}

	vehicles, err := deps.Vehicles.FindVehicles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carscrape.ErrorMessage(err))
		return err
	}

	if len(vehicles) == 0 {
		fmt.Fprintln(deps.Stdout, "No vehicles found. Use 'carscrape crawl' to scrape a site.")
		return nil
	}

	for _, v := range vehicles {
		fmt.Fprintf(deps.Stdout, "%s  %s %s %s  %s  %s\n",
			v.ID,
			orDash(textOfInt(v.Record.Year)),
			orDash(textOf(v.Record.Brand)),
			orDash(textOf(v.Record.Model)),
			orDash(textOf(v.Record.PriceRaw)),
			v.SourceURL,
		)
	}
	return nil
}

// Run executes the dealers command.
func (c *DealersCmd) Run(deps *Dependencies) error {
	dealers, err := deps.Dealers.FindDealers(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carscrape.ErrorMessage(err))
		return err
	}

	if len(dealers) == 0 {
		fmt.Fprintln(deps.Stdout, "No dealers found.")
		return nil
	}

	for _, d := range dealers {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			d.ID,
			orDash(textOf(d.Record.Name)),
			orDash(textOf(d.Record.Telephone)),
			d.SourceURL,
		)
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Vehicles.DeleteVehicle(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carscrape.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted vehicle %s\n", c.ID)
	return nil
}

func textOf(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func textOfInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
