package render

import (
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

// Registry stores renderers by name and by the media type they produce.
// Names are matched case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	byMedia   map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		byMedia:   make(map[string]string),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
// The first renderer registered for a media type owns it.
func (r *Registry) Register(renderer Renderer) error {
	name, err := rendererName(renderer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.store(name, renderer)
	return nil
}

// Replace registers renderer, swapping out any renderer of the same name.
func (r *Registry) Replace(renderer Renderer) error {
	name, err := rendererName(renderer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.renderers[name]; ok {
		if media := mediaType(previous.ContentType()); r.byMedia[media] == name {
			delete(r.byMedia, media)
		}
	}
	r.store(name, renderer)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[normaliseName(name)]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// ForMediaType returns the name of the renderer producing mediaType.
// Parameters such as charset are ignored.
func (r *Registry) ForMediaType(media string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byMedia[mediaType(media)]
	return name, ok
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[normaliseName(name)]
	return ok
}

// store expects r.mu to be held for writing.
func (r *Registry) store(name string, renderer Renderer) {
	r.renderers[name] = renderer
	media := mediaType(renderer.ContentType())
	if media == "" {
		return
	}
	if _, taken := r.byMedia[media]; !taken {
		r.byMedia[media] = name
	}
}

func rendererName(renderer Renderer) (string, error) {
	if renderer == nil {
		return "", fmt.Errorf("render: renderer is required")
	}
	name := normaliseName(renderer.Name())
	if name == "" {
		return "", fmt.Errorf("render: renderer name is required")
	}
	return name, nil
}

func normaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func mediaType(contentType string) string {
	media, _, err := mime.ParseMediaType(strings.TrimSpace(contentType))
	if err != nil {
		return ""
	}
	return media
}
