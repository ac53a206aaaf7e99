package handler

import (
	"fmt"
	"iter"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-workflow-view/pkg/event"
)

// Configuration keys recognised by NewFromConfig.
const (
	ConfigKeyTemplate = "template"
	ConfigKeyCarrier  = "mvcEvent"
)

// Config is the typed form of the configuration map.
type Config struct {
	Template string
	Carrier  Carrier
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithTemplate forces TEMPLATE_RESOLVE to set name on the outbound view and
// mark it terminal.
func WithTemplate(name string) Option {
	return func(d *Dispatcher) {
		d.template = strings.TrimSpace(name)
	}
}

// WithCarrier supplies the mandatory MVC event.
func WithCarrier(carrier Carrier) Option {
	return func(d *Dispatcher) {
		d.carrier = carrier
	}
}

// WithEventManager injects an event manager, possibly shared between
// dispatchers. The built-in listeners are attached to it during construction
// and only act on runs of the dispatcher that attached them.
func WithEventManager(manager *event.Manager) Option {
	return func(d *Dispatcher) {
		d.events = manager
	}
}

// WithLogger injects a logger for phase tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewFromConfig builds a dispatcher from a loosely typed configuration: nil,
// a map[string]any, a Config, or an iter.Seq2[string, any]. Options passed
// after the configuration win over configured values.
func NewFromConfig(config any, options ...Option) (*Dispatcher, error) {
	values, err := normalizeConfig(config)
	if err != nil {
		return nil, err
	}

	var fromConfig []Option
	if raw, ok := values[ConfigKeyTemplate]; ok && raw != nil {
		name, ok := raw.(string)
		if !ok {
			return nil, &ConfigurationError{
				Key:    ConfigKeyTemplate,
				Reason: fmt.Sprintf("expects a string, got %T", raw),
			}
		}
		fromConfig = append(fromConfig, WithTemplate(name))
	}

	raw, ok := values[ConfigKeyCarrier]
	if !ok || raw == nil {
		return nil, &ConfigurationError{Key: ConfigKeyCarrier, Reason: "carrier not found"}
	}
	carrier, ok := raw.(Carrier)
	if !ok {
		return nil, &ConfigurationError{
			Key:    ConfigKeyCarrier,
			Reason: fmt.Sprintf("expects a handler.Carrier, got %T", raw),
		}
	}
	fromConfig = append(fromConfig, WithCarrier(carrier))

	return New(append(fromConfig, options...)...)
}

func normalizeConfig(config any) (map[string]any, error) {
	switch v := config.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case Config:
		return configToMap(v), nil
	case *Config:
		if v == nil {
			return map[string]any{}, nil
		}
		return configToMap(*v), nil
	case iter.Seq2[string, any]:
		out := make(map[string]any)
		for key, value := range v {
			out[key] = value
		}
		return out, nil
	default:
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("expects a map or iterable config, got %T", config),
		}
	}
}

func configToMap(cfg Config) map[string]any {
	out := make(map[string]any, 2)
	if cfg.Template != "" {
		out[ConfigKeyTemplate] = cfg.Template
	}
	if cfg.Carrier != nil {
		out[ConfigKeyCarrier] = cfg.Carrier
	}
	return out
}
