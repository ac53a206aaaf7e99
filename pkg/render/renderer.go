package render

import (
	"context"

	"github.com/goliatone/go-workflow-view/pkg/view"
)

// Renderer turns a populated view model into a response body.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, vm *view.ViewModel) ([]byte, error)
}
