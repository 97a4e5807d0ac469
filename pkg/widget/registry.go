package widget

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/goliatone/go-formwidgets/pkg/schema"
)

// Definition couples everything the registry knows about a widget type: the
// schema its props must satisfy, the resolver for its output values, and the
// factory that builds the interactive control.
type Definition struct {
	Type   string
	Props  *schema.Schema
	Output Resolver
	New    Factory
}

// Registry stores widget definitions by type name, providing discovery and
// duplication safeguards.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]Definition),
	}
}

// Register adds a definition by its Type. Duplicate types return an error.
func (r *Registry) Register(def Definition) error {
	if def.Type == "" {
		return fmt.Errorf("widget: definition type is required")
	}
	if def.New == nil {
		return fmt.Errorf("widget: definition %q needs a factory", def.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Type]; exists {
		return fmt.Errorf("widget: type %q already registered", def.Type)
	}

	r.defs[def.Type] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get retrieves a definition by type name.
func (r *Registry) Get(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("widget: type %q not registered", name)
	}
	return def, nil
}

// MustGet panics if the type is missing.
func (r *Registry) MustGet(name string) Definition {
	def, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return def
}

// List returns the sorted registered type names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a type is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.defs[name]
	return ok
}

// Suggest returns the registered type closest to name, or "" when nothing is
// close enough to be a plausible typo.
func (r *Registry) Suggest(name string) string {
	best := ""
	bestRatio := 0.4
	for _, candidate := range r.List() {
		dist := levenshtein.ComputeDistance(name, candidate)
		maxlen := len(candidate)
		if len(name) > maxlen {
			maxlen = len(name)
		}
		if maxlen == 0 {
			continue
		}
		ratio := float64(dist) / float64(maxlen)
		if ratio < bestRatio {
			best = candidate
			bestRatio = ratio
		}
	}
	return best
}
