package goquery

import (
	"github.com/fwojciec/carscrape"
)

// Templates returns the full structural template set in authoritative
// registration order: detail templates first, then listings, pagination,
// and the dealer template. The order matters — it is the final tie-break
// when detection scores are equal.
func Templates() []carscrape.Template {
	return []carscrape.Template{
		NewDetailHybrid(),
		NewDetailJSONLD(),
		NewDetailInlineBlocks(),
		NewDetailSpecTable(),
		NewListingImageGrid(),
		NewListingCard(),
		NewListingULLI(),
		NewListingGenericAnchor(),
		NewListingSection(),
		NewPaginationQuery(),
		NewPaginationPath(),
		NewDealerJSONLD(),
	}
}

// NewRegistry builds the registry over the full template set.
func NewRegistry() (*carscrape.Registry, error) {
	return carscrape.NewRegistry(Templates()...)
}
