package mvc

import (
	"net/http"

	"github.com/goliatone/go-workflow-view/pkg/handler"
	"github.com/goliatone/go-workflow-view/pkg/view"
)

// Event is the MVC lifecycle event for one request. It owns the outbound
// view model and records the result the dispatcher declares.
type Event struct {
	request   *http.Request
	viewModel *view.ViewModel
	result    *view.ViewModel
	params    map[string]string
}

var _ handler.Carrier = (*Event)(nil)

// NewEvent builds an event with a fresh, empty view model.
func NewEvent(r *http.Request, params map[string]string) *Event {
	copied := make(map[string]string, len(params))
	for key, value := range params {
		copied[key] = value
	}
	return &Event{
		request:   r,
		viewModel: view.New(nil, nil),
		params:    copied,
	}
}

// Request returns the inbound request, if any.
func (e *Event) Request() *http.Request { return e.request }

// ViewModel implements handler.Carrier.
func (e *Event) ViewModel() *view.ViewModel { return e.viewModel }

// SetViewModel swaps the outbound view model before dispatch.
func (e *Event) SetViewModel(vm *view.ViewModel) { e.viewModel = vm }

// SetResult implements handler.Carrier.
func (e *Event) SetResult(result *view.ViewModel) { e.result = result }

// Result returns the view model declared by the dispatcher, nil before Run.
func (e *Event) Result() *view.ViewModel { return e.result }

// Param returns a route parameter.
func (e *Event) Param(name string) string { return e.params[name] }

// Params returns a copy of the route parameters.
func (e *Event) Params() map[string]string {
	out := make(map[string]string, len(e.params))
	for key, value := range e.params {
		out[key] = value
	}
	return out
}
