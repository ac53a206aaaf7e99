package options

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-workflow-view/pkg/handler"
)

// Factory builds a dispatcher for one request from its configuration map.
type Factory func(config map[string]any) (*handler.Dispatcher, error)

// DefaultFactory builds a plain dispatcher via handler.NewFromConfig.
func DefaultFactory(config map[string]any) (*handler.Dispatcher, error) {
	return handler.NewFromConfig(config)
}

// Registry stores dispatcher factories by handler name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("options: handler name is required")
	}
	if factory == nil {
		return fmt.Errorf("options: factory for %q is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("options: handler %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Get retrieves a factory by name.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, &RuntimeError{Handler: name, Reason: "no factory registered"}
	}
	return factory, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}

// Build resolves the options and factory for name and constructs a
// dispatcher bound to carrier. Handlers without a registered factory fall
// back to DefaultFactory.
func (r *Registry) Build(opts ModuleOptions, name string, carrier handler.Carrier) (*handler.Dispatcher, error) {
	config, err := opts.HandlerConfig(name, carrier)
	if err != nil {
		return nil, err
	}
	factory := Factory(DefaultFactory)
	if r != nil && r.Has(name) {
		factory, err = r.Get(name)
		if err != nil {
			return nil, err
		}
	}
	return factory(config)
}
