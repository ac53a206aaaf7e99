package mvc

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-workflow-view/pkg/handler"
	"github.com/goliatone/go-workflow-view/pkg/options"
	"github.com/goliatone/go-workflow-view/pkg/render"
)

// RequestIDHeader carries the id each response is logged under.
const RequestIDHeader = "X-Request-Id"

// ContextFunc derives the workflow context for a request.
type ContextFunc func(r *http.Request, name string) handler.Context

// SetupFunc runs against each freshly built dispatcher, typically to attach
// request-scoped listeners.
type SetupFunc func(r *http.Request, d *handler.Dispatcher)

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithFactories supplies dispatcher factories; unregistered handlers use
// options.DefaultFactory.
func WithFactories(registry *options.Registry) HandlerOption {
	return func(h *Handler) {
		h.factories = registry
	}
}

// WithRenderers supplies the renderer registry.
func WithRenderers(registry *render.Registry) HandlerOption {
	return func(h *Handler) {
		h.renderers = registry
	}
}

// WithDefaultRenderer names the renderer used when the client does not ask
// for JSON.
func WithDefaultRenderer(name string) HandlerOption {
	return func(h *Handler) {
		h.defaultRenderer = name
	}
}

// WithContextFunc overrides how the workflow context is derived.
func WithContextFunc(fn ContextFunc) HandlerOption {
	return func(h *Handler) {
		h.contextFn = fn
	}
}

// WithSetup registers functions run on every dispatcher before Run.
func WithSetup(fns ...SetupFunc) HandlerOption {
	return func(h *Handler) {
		h.setup = append(h.setup, fns...)
	}
}

// WithLogger injects the request logger.
func WithLogger(logger zerolog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// Handler serves one configured workflow view handler over HTTP.
type Handler struct {
	name            string
	options         options.ModuleOptions
	factories       *options.Registry
	renderers       *render.Registry
	defaultRenderer string
	contextFn       ContextFunc
	setup           []SetupFunc
	logger          zerolog.Logger
}

// NewHandler builds an http.Handler for the named handler in opts.
func NewHandler(name string, opts options.ModuleOptions, handlerOptions ...HandlerOption) (*Handler, error) {
	if _, err := opts.Handler(name); err != nil {
		return nil, err
	}

	h := &Handler{
		name:            name,
		options:         opts,
		defaultRenderer: render.HTMLRendererName,
		contextFn:       DefaultContext,
		logger:          zerolog.Nop(),
	}
	for _, opt := range handlerOptions {
		if opt != nil {
			opt(h)
		}
	}

	if h.factories == nil {
		h.factories = options.NewRegistry()
	}
	if h.renderers == nil {
		return nil, fmt.Errorf("mvc: renderer registry is required")
	}
	if !h.renderers.Has(h.defaultRenderer) {
		return nil, fmt.Errorf("mvc: default renderer %q not registered", h.defaultRenderer)
	}
	return h, nil
}

// DefaultContext describes the request as an ActionContext named after the
// handler, with the query string as inputs.
func DefaultContext(r *http.Request, name string) handler.Context {
	inputs := make(map[string]any)
	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			inputs[key] = values[0]
			continue
		}
		inputs[key] = values
	}
	return handler.ActionContext{
		Action:  name,
		EntryID: r.URL.Query().Get("entry"),
		Inputs:  inputs,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With().Str("request_id", requestID).Str("handler", h.name).Logger()
	w.Header().Set(RequestIDHeader, requestID)

	evt := NewEvent(r, nil)
	d, err := h.factories.Build(h.options, h.name, evt)
	if err != nil {
		logger.Error().Err(err).Msg("build dispatcher")
		writeError(w)
		return
	}
	for _, fn := range h.setup {
		fn(r, d)
	}

	vm, err := d.Run(r.Context(), h.contextFn(r, h.name))
	if err != nil {
		logger.Error().Err(err).Msg("dispatch failed")
		writeError(w)
		return
	}

	name := render.Negotiate(h.renderers, r.Header.Get("Accept"), h.defaultRenderer)
	renderer, err := h.renderers.Get(name)
	if err != nil {
		logger.Error().Err(err).Msg("resolve renderer")
		writeError(w)
		return
	}
	body, err := renderer.Render(r.Context(), vm)
	if err != nil {
		logger.Error().Err(err).Str("renderer", name).Msg("render failed")
		writeError(w)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Warn().Err(err).Msg("write response")
		return
	}
	logger.Debug().Str("renderer", name).Str("template", vm.Template()).Msg("served")
}

func writeError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
