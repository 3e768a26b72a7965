package store

import (
	"sort"
	"strings"
	"sync"
)

// Registry hands out named shared stores so sibling surfaces can observe the
// same slice without reaching for package-level globals. Callers create one
// registry per application and inject it.
type Registry struct {
	mu     sync.Mutex
	stores map[string]Store
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]Store)}
}

// Shared returns the store registered under name, creating an empty in-memory
// store on first use.
func (r *Registry) Shared(name string) Store {
	key := strings.TrimSpace(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stores == nil {
		r.stores = make(map[string]Store)
	}
	if s, ok := r.stores[key]; ok {
		return s
	}
	s := NewMemory(State{})
	r.stores[key] = s
	return s
}

// Attach registers an existing store under name, replacing any previous one.
func (r *Registry) Attach(name string, s Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stores == nil {
		r.stores = make(map[string]Store)
	}
	r.stores[strings.TrimSpace(name)] = s
}

// Names lists the registered slice names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.stores))
	for name := range r.stores {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
