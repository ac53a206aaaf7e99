// Package workflowview plugs workflow view handlers into an MVC dispatch
// lifecycle. The root package re-exports the pieces most callers need; the
// pkg/ subpackages hold the implementations.
package workflowview

import (
	"context"

	"github.com/goliatone/go-workflow-view/pkg/event"
	"github.com/goliatone/go-workflow-view/pkg/handler"
	"github.com/goliatone/go-workflow-view/pkg/view"
)

// ViewModel aliases view.ViewModel.
type ViewModel = view.ViewModel

// Result aliases view.Result.
type Result = view.Result

// Dispatcher aliases handler.Dispatcher.
type Dispatcher = handler.Dispatcher

// ConfigurationError aliases handler.ConfigurationError.
type ConfigurationError = handler.ConfigurationError

// Phase names re-exported for listeners that bind by name.
const (
	PhaseBootstrap       = event.Bootstrap
	PhaseTemplateResolve = event.TemplateResolve
	PhaseDispatch        = event.Dispatch
)

// NewDispatcher exposes handler.New from the module root.
func NewDispatcher(options ...handler.Option) (*handler.Dispatcher, error) {
	return handler.New(options...)
}

// NewDispatcherFromConfig exposes handler.NewFromConfig from the module root.
func NewDispatcherFromConfig(config any, options ...handler.Option) (*handler.Dispatcher, error) {
	return handler.NewFromConfig(config, options...)
}

// Run builds a dispatcher for carrier, attaches dispatch as its DISPATCH
// listener and runs it once. It is the shortest path for callers with a
// single result producer.
func Run(ctx context.Context, carrier handler.Carrier, wf handler.Context, dispatch event.Listener, options ...handler.Option) (*view.ViewModel, error) {
	d, err := handler.New(append([]handler.Option{handler.WithCarrier(carrier)}, options...)...)
	if err != nil {
		return nil, err
	}
	if dispatch != nil {
		d.OnDispatch(dispatch)
	}
	return d.Run(ctx, wf)
}
