// Package fs provides filesystem-backed pieces: a scanner that classifies
// saved sample pages and CSV export of stored records.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/carscrape"
)

// ScanOutcome is the classification result for one sample file.
type ScanOutcome struct {
	Path    string
	Result  *carscrape.Result
	NoMatch bool
}

// Scanner classifies saved HTML sample files against the template registry.
// It exists for offline work on captured pages: tuning templates against a
// directory of samples without touching the network.
type Scanner struct {
	Detector  carscrape.TemplateDetector
	Converter carscrape.Converter
}

// ScanDir classifies every .html file directly under dir, in name order.
// pageURL is the URL relative link extraction resolves against; samples
// saved from the same site share it.
func (s *Scanner) ScanDir(ctx context.Context, dir, pageURL string) ([]ScanOutcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, carscrape.Errorf(carscrape.EINVALID, "cannot read sample dir: %v", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".html" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	outcomes := make([]ScanOutcome, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		out, err := s.ScanFile(p, pageURL)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// ScanFile classifies a single saved page.
func (s *Scanner) ScanFile(path, pageURL string) (ScanOutcome, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ScanOutcome{}, carscrape.Errorf(carscrape.EINVALID, "cannot read sample: %v", err)
	}

	out := ScanOutcome{Path: path}
	det := s.Detector.Detect(string(content), pageURL)
	if !det.Matched() {
		out.NoMatch = true
		return out, nil
	}

	s.convertDescription(det)

	res, err := carscrape.Assemble(det, pageURL)
	if err != nil {
		return ScanOutcome{}, err
	}
	out.Result = res
	return out, nil
}

func (s *Scanner) convertDescription(det *carscrape.Detection) {
	if s.Converter == nil || det.Category != carscrape.CategoryDetail || det.Result.Fields == nil {
		return
	}
	if _, ok := det.Result.Fields.Text("description"); ok {
		return
	}
	html, ok := det.Result.Fields["description_html"].(string)
	if !ok {
		return
	}
	if md, err := s.Converter.Convert(html); err == nil && md != "" {
		det.Result.Fields["description"] = md
	}
}
