package catalog

import (
	"fmt"

	"MovieSync/internal/ports"
)

// Registry keeps a mapping from catalog names to their implementations.
type Registry struct {
	catalogs map[string]ports.Catalog
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{catalogs: map[string]ports.Catalog{}}
}

// Register adds or replaces a catalog implementation.
func (r *Registry) Register(name string, catalog ports.Catalog) {
	if r.catalogs == nil {
		r.catalogs = map[string]ports.Catalog{}
	}
	r.catalogs[name] = catalog
}

// Resolve returns a catalog by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.Catalog, error) {
	if catalog, ok := r.catalogs[name]; ok {
		return catalog, nil
	}
	return nil, fmt.Errorf("catalog %s is not registered", name)
}
