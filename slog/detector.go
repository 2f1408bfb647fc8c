// Package slog provides logging decorators for carscrape services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/carscrape"
)

// Ensure LoggingDetector implements carscrape.TemplateDetector.
var _ carscrape.TemplateDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a TemplateDetector with logging for each
// classification, including probes that panicked during the call.
type LoggingDetector struct {
	next   carscrape.TemplateDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next carscrape.TemplateDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the outcome.
func (d *LoggingDetector) Detect(content, pageURL string) *carscrape.Detection {
	begin := time.Now()
	det := d.next.Detect(content, pageURL)

	template := "(none)"
	category := "(none)"
	if det.Matched() {
		desc := det.Template.Descriptor()
		template = desc.Name
		category = string(desc.Category)
	}
	d.logger.Info("template detection",
		"url", pageURL,
		"template", template,
		"category", category,
		"score", det.Score,
		"duration", time.Since(begin),
	)
	for _, f := range det.Failures {
		d.logger.Warn("template probe failed",
			"url", pageURL,
			"template", f.Template,
			"err", f.Err,
		)
	}
	return det
}
