package mock

import "github.com/fwojciec/carscrape"

var _ carscrape.Template = (*Template)(nil)
var _ carscrape.URLEmitter = (*Template)(nil)
var _ carscrape.DetailEmitter = (*Template)(nil)
var _ carscrape.NextPageEmitter = (*Template)(nil)
var _ carscrape.DealerEmitter = (*Template)(nil)

// Template is a mock implementation of carscrape.Template that also
// satisfies every emitter interface. Unset emitter funcs return zero
// values, so a mock declaring only some capabilities still passes registry
// validation.
type Template struct {
	DescriptorFn   func() carscrape.TemplateDescriptor
	ProbeFn        func(content, pageURL string) (carscrape.ProbeResult, error)
	EmitURLsFn     func(content, pageURL string) ([]string, error)
	EmitDetailFn   func(content, pageURL string) (carscrape.RawFields, error)
	EmitNextPageFn func(content, pageURL string) (string, error)
	EmitDealerFn   func(content, pageURL string) (carscrape.RawFields, error)
}

func (t *Template) Descriptor() carscrape.TemplateDescriptor {
	return t.DescriptorFn()
}

func (t *Template) Probe(content, pageURL string) (carscrape.ProbeResult, error) {
	return t.ProbeFn(content, pageURL)
}

func (t *Template) EmitURLs(content, pageURL string) ([]string, error) {
	if t.EmitURLsFn == nil {
		return nil, nil
	}
	return t.EmitURLsFn(content, pageURL)
}

func (t *Template) EmitDetail(content, pageURL string) (carscrape.RawFields, error) {
	if t.EmitDetailFn == nil {
		return nil, nil
	}
	return t.EmitDetailFn(content, pageURL)
}

func (t *Template) EmitNextPage(content, pageURL string) (string, error) {
	if t.EmitNextPageFn == nil {
		return "", nil
	}
	return t.EmitNextPageFn(content, pageURL)
}

func (t *Template) EmitDealer(content, pageURL string) (carscrape.RawFields, error) {
	if t.EmitDealerFn == nil {
		return nil, nil
	}
	return t.EmitDealerFn(content, pageURL)
}
