package handler

import (
	"reflect"

	"github.com/goliatone/go-workflow-view/pkg/event"
	"github.com/goliatone/go-workflow-view/pkg/view"
)

// Context is the opaque workflow token threaded through every phase. The
// dispatcher never inspects it.
type Context any

// ActionContext is a ready-made Context describing a workflow action.
type ActionContext struct {
	Manager  string
	Workflow string
	Action   string
	EntryID  string
	Inputs   map[string]any
}

// Carrier is the MVC lifecycle event the dispatcher reads its outbound view
// model from and reports the final result to.
type Carrier interface {
	ViewModel() *view.ViewModel
	SetResult(result *view.ViewModel)
}

// Event parameter names set by Run on every phase.
const (
	ParamCarrier   = "mvcEvent"
	ParamViewModel = "viewModel"
)

// ViewModelFrom returns the outbound view model attached to a phase event.
func ViewModelFrom(e *event.Event) *view.ViewModel {
	if e == nil {
		return nil
	}
	vm, _ := e.Params()[ParamViewModel].(*view.ViewModel)
	return vm
}

// CarrierFrom returns the MVC event attached to a phase event.
func CarrierFrom(e *event.Event) Carrier {
	if e == nil {
		return nil
	}
	carrier, _ := e.Params()[ParamCarrier].(Carrier)
	return carrier
}

// isNilCarrier reports whether c is nil or an interface wrapping a nil
// pointer, map, slice, func or channel.
func isNilCarrier(c Carrier) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// sameCarrier compares carriers by identity without panicking on
// uncomparable dynamic types.
func sameCarrier(a, b Carrier) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
