package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/lixenwraith/simplega/genetic"
)

// ErrUnknownLandscape is returned when no factory is registered under a name
var ErrUnknownLandscape = errors.New("unknown fitness landscape")

// Registry maps landscape names to fitness function factories
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Default returns a registry holding the built-in landscapes
func Default() *Registry {
	r := NewRegistry()
	r.factories[NameSchafferF6] = newSchafferF6
	r.factories[NameOneMax] = newOneMax
	return r
}

// Register adds a factory under name
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" || factory == nil {
		return fmt.Errorf("%w: landscape registration needs a name and a factory", genetic.ErrInvalidArgument)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("landscape %q already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// Create builds the named fitness function for genotypes of geneCount genes
func (r *Registry) Create(name string, geneCount int) (genetic.FitnessFunction, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownLandscape, name, r.Names())
	}

	fn, err := factory(geneCount)
	if err != nil {
		return nil, fmt.Errorf("landscape %q: %w", name, err)
	}
	return fn, nil
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
