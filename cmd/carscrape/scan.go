package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/carscrape"
	"github.com/fwojciec/carscrape/fs"
	"github.com/fwojciec/carscrape/htmltomarkdown"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	scanner := &fs.Scanner{
		Detector:  deps.Detector,
		Converter: htmltomarkdown.NewConverter(),
	}

	outcomes, err := scanner.ScanDir(deps.Ctx, c.Dir, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carscrape.ErrorMessage(err))
		return err
	}

	for _, out := range outcomes {
		name := filepath.Base(out.Path)
		if out.NoMatch {
			fmt.Fprintf(deps.Stdout, "%s  (no match)\n", name)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", name, out.Result.Category, out.Result.Template)
		if c.JSON {
			encoded, err := json.MarshalIndent(out.Result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, string(encoded))
		}
	}
	return nil
}
