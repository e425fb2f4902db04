package criteria

import (
	"sort"
	"sync"

	"github.com/friendsofgo/errors"
)

// Registry maps names to filter schemas. It is used by tools that pick a
// filter type at runtime, such as the command line client.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register adds schema under its own name. Registering a name twice is an error.
func (r *Registry) Register(schema *Schema) error {
	if schema == nil || schema.Name() == "" {
		return errors.New("criteria: cannot register an unnamed schema")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[schema.Name()]; exists {
		return errors.Errorf("criteria: schema %q already registered", schema.Name())
	}
	r.schemas[schema.Name()] = schema
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(schemas ...*Schema) *Registry {
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[name]
	return s, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
