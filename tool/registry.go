package tool

import "sync"

// Registry maps tool names to descriptors. Lookup order is irrelevant but
// registration order is preserved for schema export, so the capability list a
// model sees is stable across calls. A registry grows only: there is no
// unregister and no silent overwrite.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Descriptor)}
}

// Register adds a descriptor. A name collision with an existing entry is
// rejected with *DuplicateNameError.
func (r *Registry) Register(d *Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[d.name]; exists {
		return &DuplicateNameError{Name: d.name}
	}
	r.entries[d.name] = d
	r.order = append(r.order, d.name)
	return nil
}

// Lookup returns the descriptor registered under name, or *NotFoundError.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return d, nil
}

// ExportSchemas returns the advertisement for every registered tool in
// registration order.
func (r *Registry) ExportSchemas() []Export {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exports := make([]Export, 0, len(r.order))
	for _, name := range r.order {
		exports = append(exports, r.entries[name].Export())
	}
	return exports
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
