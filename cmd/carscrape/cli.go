package main

import (
	"context"
	"io"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Vehicles carscrape.VehicleService
	Dealers  carscrape.DealerService
	Detector carscrape.TemplateDetector
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl   CrawlCmd   `cmd:"" help:"Crawl a dealer site and store vehicle and dealer records"`
	Scan    ScanCmd    `cmd:"" help:"Classify saved HTML sample files"`
	List    ListCmd    `cmd:"" help:"List stored vehicles"`
	Dealers DealersCmd `cmd:"" help:"List stored dealers"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored vehicle"`
	Export  ExportCmd  `cmd:"" help:"Export stored records to CSV"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string  `arg:"" help:"Seed URL, usually the stock listing page"`
	Render      bool    `short:"r" help:"Render pages in a headless browser before classification"`
	Sitemap     bool    `short:"s" help:"Seed the frontier from the site's sitemap"`
	Concurrency int     `short:"c" default:"5" help:"Concurrent fetch limit"`
	Rate        float64 `default:"1" help:"Requests per second per domain"`
	MaxPages    int     `default:"1000" help:"Stop after this many pages"`
	Verbose     bool    `short:"v" help:"Log each fetch and classification"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Dir  string `arg:"" help:"Directory of saved .html sample pages"`
	URL  string `default:"https://example.com/" help:"Page URL relative links resolve against"`
	JSON bool   `help:"Print full assembled records as JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Brand string `help:"Filter by normalized brand"`
	Limit int    `default:"50" help:"Maximum rows to print"`
}

// DealersCmd is the "dealers" subcommand.
type DealersCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Vehicle ID"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Vehicles string `help:"Write vehicles CSV to this path" type:"path"`
	Dealers  string `help:"Write dealers CSV to this path" type:"path"`
}
