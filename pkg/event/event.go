package event

import (
	"context"

	"github.com/goliatone/go-workflow-view/pkg/view"
)

// Event is handed to every listener of a phase.
type Event struct {
	name    string
	target  any
	params  map[string]any
	stopped bool
}

// NewEvent builds an event for the named phase.
func NewEvent(name string, target any, params map[string]any) *Event {
	if params == nil {
		params = make(map[string]any)
	}
	return &Event{name: name, target: target, params: params}
}

// Name returns the phase name.
func (e *Event) Name() string { return e.name }

// Target returns the opaque workflow context the phase was fired with.
func (e *Event) Target() any { return e.target }

// Params returns the shared parameter bag.
func (e *Event) Params() map[string]any { return e.params }

// Param returns a single parameter.
func (e *Event) Param(name string) (any, bool) {
	value, ok := e.params[name]
	return value, ok
}

// SetParam stores a parameter visible to later listeners of the same phase.
func (e *Event) SetParam(name string, value any) {
	e.params[name] = value
}

// StopPropagation prevents listeners after the current one from running.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether a listener halted the phase.
func (e *Event) PropagationStopped() bool { return e.stopped }

// Listener handles a phase. Listeners that have nothing to contribute return
// a nil Result.
type Listener func(ctx context.Context, e *Event) (view.Result, error)

// Responses collects listener return values in firing order.
type Responses struct {
	values  []view.Result
	stopped bool
}

// Len returns how many listeners ran.
func (r *Responses) Len() int {
	if r == nil {
		return 0
	}
	return len(r.values)
}

// Last returns the most recent non-nil value, or nil when no listener
// produced one.
func (r *Responses) Last() view.Result {
	if r == nil {
		return nil
	}
	for i := len(r.values) - 1; i >= 0; i-- {
		if r.values[i] != nil {
			return r.values[i]
		}
	}
	return nil
}

// First returns the earliest non-nil value.
func (r *Responses) First() view.Result {
	if r == nil {
		return nil
	}
	for _, value := range r.values {
		if value != nil {
			return value
		}
	}
	return nil
}

// Stopped reports whether propagation was halted.
func (r *Responses) Stopped() bool {
	return r != nil && r.stopped
}
