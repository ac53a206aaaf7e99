package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-workflow-view/pkg/event"
	"github.com/goliatone/go-workflow-view/pkg/view"
)

// DefaultListenerPriority places the dispatcher's own listeners after every
// listener attached with event.DefaultPriority.
const DefaultListenerPriority = -100

// Dispatcher runs the three view phases for one MVC event.
type Dispatcher struct {
	template         string
	carrier          Carrier
	events           *event.Manager
	logger           zerolog.Logger
	defaultsAttached bool
}

// New constructs a dispatcher. WithCarrier is mandatory; without it a
// *ConfigurationError is returned.
func New(options ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}

	if d.carrier == nil {
		return nil, &ConfigurationError{Key: ConfigKeyCarrier, Reason: "carrier not found"}
	}
	if isNilCarrier(d.carrier) {
		return nil, &ConfigurationError{Key: ConfigKeyCarrier, Reason: fmt.Sprintf("carrier is a nil %T", d.carrier)}
	}
	if d.events == nil {
		d.events = event.NewManager(event.WithLogger(d.logger))
	}
	d.AttachDefaultListeners()
	return d, nil
}

// Template returns the configured template name.
func (d *Dispatcher) Template() string {
	return d.template
}

// Carrier returns the MVC event the dispatcher populates.
func (d *Dispatcher) Carrier() Carrier {
	return d.carrier
}

// EventManager exposes the manager so callers can attach their own
// listeners before Run.
func (d *Dispatcher) EventManager() *event.Manager {
	return d.events
}

// AttachDefaultListeners binds Bootstrap, TemplateResolve and Dispatch at
// DefaultListenerPriority. Subsequent calls are no-ops.
func (d *Dispatcher) AttachDefaultListeners() {
	if d.defaultsAttached {
		return
	}
	d.events.Attach(event.Bootstrap, d.Bootstrap, DefaultListenerPriority)
	d.events.Attach(event.TemplateResolve, d.TemplateResolve, DefaultListenerPriority)
	d.events.Attach(event.Dispatch, d.Dispatch, DefaultListenerPriority)
	d.defaultsAttached = true
}

// OnBootstrap attaches a caller listener to BOOTSTRAP.
func (d *Dispatcher) OnBootstrap(listener event.Listener) event.ListenerID {
	return d.events.Attach(event.Bootstrap, listener, event.DefaultPriority)
}

// OnTemplateResolve attaches a caller listener to TEMPLATE_RESOLVE.
func (d *Dispatcher) OnTemplateResolve(listener event.Listener) event.ListenerID {
	return d.events.Attach(event.TemplateResolve, listener, event.DefaultPriority)
}

// OnDispatch attaches a caller listener to DISPATCH.
func (d *Dispatcher) OnDispatch(listener event.Listener) event.ListenerID {
	return d.events.Attach(event.Dispatch, listener, event.DefaultPriority)
}

// Bootstrap is the built-in BOOTSTRAP listener. It has nothing to set up.
func (d *Dispatcher) Bootstrap(context.Context, *event.Event) (view.Result, error) {
	return nil, nil
}

// TemplateResolve applies the configured template and marks the outbound
// view terminal. Without a template it leaves the view alone. On a shared
// manager it only acts on runs started by this dispatcher.
func (d *Dispatcher) TemplateResolve(_ context.Context, e *event.Event) (view.Result, error) {
	if d.template == "" || !d.owns(e) {
		return nil, nil
	}
	vm := ViewModelFrom(e)
	if vm == nil {
		vm = d.carrier.ViewModel()
	}
	if vm == nil {
		return nil, errors.New("handler: carrier has no view model")
	}
	vm.SetTemplate(d.template).SetTerminal(true)
	return nil, nil
}

// owns reports whether e belongs to a run of this dispatcher. Events fired
// outside Run carry no carrier and are treated as owned.
func (d *Dispatcher) owns(e *event.Event) bool {
	carrier := CarrierFrom(e)
	return carrier == nil || sameCarrier(carrier, d.carrier)
}

// Dispatch is the built-in DISPATCH listener. It contributes no result.
func (d *Dispatcher) Dispatch(context.Context, *event.Event) (view.Result, error) {
	return nil, nil
}

// Run fires BOOTSTRAP, TEMPLATE_RESOLVE and DISPATCH in that order, folds
// the last dispatch result into the carrier's view model and reports it back
// as the carrier's result. The first listener error aborts the run.
func (d *Dispatcher) Run(ctx context.Context, c Context) (*view.ViewModel, error) {
	if ctx == nil {
		return nil, errors.New("handler: context is required")
	}
	vm := d.carrier.ViewModel()
	if vm == nil {
		return nil, errors.New("handler: carrier has no view model")
	}

	logger := d.logger.With().Str("template", d.template).Logger()

	var result view.Result
	for _, phase := range event.Phases() {
		params := map[string]any{
			ParamCarrier:   d.carrier,
			ParamViewModel: vm,
		}
		responses, err := d.events.Trigger(ctx, phase, c, params)
		if err != nil {
			logger.Debug().Str("phase", phase).Err(err).Msg("phase aborted")
			return nil, &PhaseError{Phase: phase, Err: err}
		}
		if phase == event.Dispatch {
			result = responses.Last()
		}
	}

	if result == nil {
		result = view.VariablesResult{}
	}
	if err := view.Populate(result, vm); err != nil {
		return nil, err
	}
	d.carrier.SetResult(vm)

	logger.Debug().
		Str("resolved_template", vm.Template()).
		Bool("terminal", vm.Terminal()).
		Int("children", vm.Len()).
		Msg("view populated")
	return vm, nil
}
