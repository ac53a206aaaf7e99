package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-workflow-view/pkg/view"
)

// JSON renderer identifiers.
const (
	JSONRendererName = "json"
	ContentTypeJSON  = "application/json"
)

// JSONRenderer serialises the variable tree of a view model. Children are
// nested under their capture names; appending children collect into a list.
type JSONRenderer struct {
	indent string
}

// JSONOption customises the JSON renderer.
type JSONOption func(*JSONRenderer)

// WithIndent pretty-prints the payload using indent.
func WithIndent(indent string) JSONOption {
	return func(r *JSONRenderer) {
		r.indent = indent
	}
}

// NewJSONRenderer constructs a JSON renderer.
func NewJSONRenderer(options ...JSONOption) *JSONRenderer {
	r := &JSONRenderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name implements Renderer.
func (r *JSONRenderer) Name() string { return JSONRendererName }

// ContentType implements Renderer.
func (r *JSONRenderer) ContentType() string { return ContentTypeJSON }

// Render implements Renderer.
func (r *JSONRenderer) Render(ctx context.Context, vm *view.ViewModel) ([]byte, error) {
	if vm == nil {
		return nil, errors.New("render: view model is required")
	}
	tree, err := jsonTree(ctx, vm, 0)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if r.indent != "" {
		payload, err = json.MarshalIndent(tree, "", r.indent)
	} else {
		payload, err = json.Marshal(tree)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode json: %w", err)
	}
	return payload, nil
}

func jsonTree(ctx context.Context, vm *view.ViewModel, depth int) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("render: view tree deeper than %d levels", maxDepth)
	}

	out := make(map[string]any, len(vm.Variables())+vm.Len())
	for key, value := range vm.Variables() {
		out[key] = value
	}
	for _, child := range vm.Children() {
		capture := child.CaptureTo()
		if capture == "" {
			continue
		}
		subtree, err := jsonTree(ctx, child, depth+1)
		if err != nil {
			return nil, err
		}
		if !child.IsAppend() {
			out[capture] = subtree
			continue
		}
		switch existing := out[capture].(type) {
		case nil:
			out[capture] = []any{subtree}
		case []any:
			out[capture] = append(existing, subtree)
		default:
			out[capture] = []any{existing, subtree}
		}
	}
	return out, nil
}
