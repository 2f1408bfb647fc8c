package mock

import "github.com/fwojciec/carscrape"

var _ carscrape.TemplateDetector = (*Detector)(nil)

// Detector is a mock implementation of carscrape.TemplateDetector.
type Detector struct {
	DetectFn func(content, pageURL string) *carscrape.Detection
}

func (d *Detector) Detect(content, pageURL string) *carscrape.Detection {
	return d.DetectFn(content, pageURL)
}
