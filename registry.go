package carscrape

// RegistrySize is the fixed number of structural templates. The registry is
// closed by design: detection semantics assume this exact, finite set.
const RegistrySize = 12

// Registry holds the structural templates in registration order. It is
// immutable after construction and safe for unsynchronized concurrent reads.
// Construction must complete before any detection call is issued.
type Registry struct {
	templates []Template
	byName    map[string]Template
}

// NewRegistry builds a validated Registry from templates in registration
// order. Order matters: detection ties fall back to registration order,
// earlier entries preferred.
//
// Construction fails with EINTERNAL if any registry invariant is violated:
// exactly RegistrySize templates, unique names, category and capability set
// in agreement, and every declared capability backed by the matching emitter
// interface. Callers must treat such a failure as fatal at startup.
func NewRegistry(templates ...Template) (*Registry, error) {
	if len(templates) != RegistrySize {
		return nil, Errorf(EINTERNAL, "registry requires exactly %d templates, got %d", RegistrySize, len(templates))
	}

	byName := make(map[string]Template, len(templates))
	for _, tpl := range templates {
		desc := tpl.Descriptor()
		if desc.Name == "" {
			return nil, Errorf(EINTERNAL, "template with empty name in registry")
		}
		if _, ok := byName[desc.Name]; ok {
			return nil, Errorf(EINTERNAL, "duplicate template name %q", desc.Name)
		}
		if err := validateDescriptor(tpl, desc); err != nil {
			return nil, err
		}
		byName[desc.Name] = tpl
	}

	return &Registry{
		templates: templates,
		byName:    byName,
	}, nil
}

// Lookup returns the template registered under name.
// Returns ENOTFOUND if no such template exists.
func (r *Registry) Lookup(name string) (Template, error) {
	tpl, ok := r.byName[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "unknown template %q", name)
	}
	return tpl, nil
}

// All returns the templates in registration order.
// The returned slice must not be modified.
func (r *Registry) All() []Template {
	return r.templates
}

// validateDescriptor enforces the classification-safety invariant: a
// template's category and capability set must never disagree, and each
// capability must be backed by the corresponding emitter interface.
func validateDescriptor(tpl Template, desc TemplateDescriptor) error {
	switch desc.Category {
	case CategoryDetail:
		if !desc.Has(CapEmitDetail) {
			return Errorf(EINTERNAL, "detail template %q must declare %s", desc.Name, CapEmitDetail)
		}
		if desc.Has(CapEmitURLs) {
			return Errorf(EINTERNAL, "detail template %q must not declare %s", desc.Name, CapEmitURLs)
		}
	case CategoryListing:
		if !desc.Has(CapEmitURLs) {
			return Errorf(EINTERNAL, "listing template %q must declare %s", desc.Name, CapEmitURLs)
		}
		if desc.Has(CapEmitDetail) {
			return Errorf(EINTERNAL, "listing template %q must not declare %s", desc.Name, CapEmitDetail)
		}
	case CategoryPagination:
		if !desc.Has(CapEmitNextPage) {
			return Errorf(EINTERNAL, "pagination template %q must declare %s", desc.Name, CapEmitNextPage)
		}
	case CategoryDealer:
		if !desc.Has(CapEmitDealer) {
			return Errorf(EINTERNAL, "dealer template %q must declare %s", desc.Name, CapEmitDealer)
		}
	default:
		return Errorf(EINTERNAL, "template %q has unknown category %q", desc.Name, desc.Category)
	}

	for _, c := range desc.Capabilities {
		var ok bool
		switch c {
		case CapEmitURLs:
			_, ok = tpl.(URLEmitter)
		case CapEmitDetail:
			_, ok = tpl.(DetailEmitter)
		case CapEmitNextPage:
			_, ok = tpl.(NextPageEmitter)
		case CapEmitDealer:
			_, ok = tpl.(DealerEmitter)
		default:
			return Errorf(EINTERNAL, "template %q declares unknown capability %q", desc.Name, c)
		}
		if !ok {
			return Errorf(EINTERNAL, "template %q declares %s but does not implement it", desc.Name, c)
		}
	}

	return nil
}
