package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-workflow-view/pkg/render/template"
	"github.com/goliatone/go-workflow-view/pkg/view"
)

// HTML renderer identifiers.
const (
	HTMLRendererName = "html"
	ContentTypeHTML  = "text/html; charset=utf-8"
)

const maxDepth = 32

// HTMLOption customises the HTML renderer.
type HTMLOption func(*HTMLRenderer)

// WithLayout wraps non-terminal root views in the named layout template. The
// rendered root is exposed to the layout under view.DefaultCaptureTo.
func WithLayout(name string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.layout = strings.TrimSpace(name)
	}
}

// WithSanitizer filters captured child output through policy before it is
// handed to the parent template.
func WithSanitizer(policy *bluemonday.Policy) HTMLOption {
	return func(r *HTMLRenderer) {
		r.policy = policy
	}
}

// WithUGCSanitizer is WithSanitizer using bluemonday's user generated
// content policy.
func WithUGCSanitizer() HTMLOption {
	return WithSanitizer(bluemonday.UGCPolicy())
}

// HTMLRenderer renders a view tree through a template engine. Children are
// rendered first and captured into their parent's variables.
type HTMLRenderer struct {
	engine template.TemplateRenderer
	layout string
	policy *bluemonday.Policy
}

// NewHTMLRenderer constructs a renderer backed by engine.
func NewHTMLRenderer(engine template.TemplateRenderer, options ...HTMLOption) (*HTMLRenderer, error) {
	if engine == nil {
		return nil, errors.New("render: template engine is required")
	}
	r := &HTMLRenderer{engine: engine}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Name implements Renderer.
func (r *HTMLRenderer) Name() string { return HTMLRendererName }

// ContentType implements Renderer.
func (r *HTMLRenderer) ContentType() string { return ContentTypeHTML }

// Render implements Renderer.
func (r *HTMLRenderer) Render(ctx context.Context, vm *view.ViewModel) ([]byte, error) {
	if vm == nil {
		return nil, errors.New("render: view model is required")
	}
	body, err := r.renderTree(ctx, vm, 0)
	if err != nil {
		return nil, err
	}
	if vm.Terminal() || r.layout == "" {
		return []byte(body), nil
	}

	data := make(map[string]any, len(vm.Variables())+1)
	for key, value := range vm.Variables() {
		data[key] = value
	}
	data[view.DefaultCaptureTo] = body
	wrapped, err := r.engine.RenderTemplate(r.layout, data)
	if err != nil {
		return nil, fmt.Errorf("render: layout %q: %w", r.layout, err)
	}
	return []byte(wrapped), nil
}

func (r *HTMLRenderer) renderTree(ctx context.Context, vm *view.ViewModel, depth int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if depth > maxDepth {
		return "", fmt.Errorf("render: view tree deeper than %d levels", maxDepth)
	}
	if vm.Template() == "" {
		return "", errors.New("render: view has no template")
	}

	data := make(map[string]any, len(vm.Variables())+vm.Len())
	for key, value := range vm.Variables() {
		data[key] = value
	}
	for _, child := range vm.Children() {
		capture := child.CaptureTo()
		if capture == "" {
			continue
		}
		markup, err := r.renderTree(ctx, child, depth+1)
		if err != nil {
			return "", err
		}
		if r.policy != nil {
			markup = r.policy.Sanitize(markup)
		}
		if child.IsAppend() {
			if previous, ok := data[capture].(string); ok {
				markup = previous + markup
			}
		}
		data[capture] = markup
	}

	out, err := r.engine.RenderTemplate(vm.Template(), data)
	if err != nil {
		return "", fmt.Errorf("render: template %q: %w", vm.Template(), err)
	}
	return out, nil
}
