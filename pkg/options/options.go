package options

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-workflow-view/pkg/handler"
)

// HandlerOptions configures a single workflow view handler.
type HandlerOptions struct {
	Template string         `json:"template" yaml:"template" toml:"template"`
	Extra    map[string]any `json:"extra,omitempty" yaml:"extra,omitempty" toml:"extra,omitempty"`
}

// ModuleOptions groups handler options by handler name.
type ModuleOptions struct {
	Handlers map[string]HandlerOptions `json:"handlers" yaml:"handlers" toml:"handlers"`
}

// Load reads and parses an options document from fsys.
func Load(fsys fs.FS, name string) (ModuleOptions, error) {
	if fsys == nil {
		return ModuleOptions{}, fmt.Errorf("options: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return ModuleOptions{}, fmt.Errorf("options: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes an options document. TOML is used for .toml sources; other
// sources are tried as JSON, then YAML.
func Parse(data []byte, source string) (ModuleOptions, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ModuleOptions{}, fmt.Errorf("options: file %s is empty", source)
	}

	var opts ModuleOptions
	switch strings.ToLower(path.Ext(source)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &opts); err != nil {
			return ModuleOptions{}, fmt.Errorf("options: parse %s: %w", source, err)
		}
	default:
		if err := json.Unmarshal(data, &opts); err != nil {
			opts = ModuleOptions{}
			if err := yaml.Unmarshal(data, &opts); err != nil {
				return ModuleOptions{}, fmt.Errorf("options: parse %s: invalid JSON or YAML", source)
			}
		}
	}
	return opts.normalise(source)
}

func (o ModuleOptions) normalise(source string) (ModuleOptions, error) {
	out := ModuleOptions{Handlers: make(map[string]HandlerOptions, len(o.Handlers))}
	for rawName, cfg := range o.Handlers {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return ModuleOptions{}, fmt.Errorf("options: %s declares a handler with an empty name", source)
		}
		if _, exists := out.Handlers[name]; exists {
			return ModuleOptions{}, fmt.Errorf("options: %s declares handler %q twice", source, name)
		}
		cfg.Template = strings.TrimSpace(cfg.Template)
		out.Handlers[name] = cfg
	}
	return out, nil
}

// Names returns the configured handler names, sorted.
func (o ModuleOptions) Names() []string {
	names := make([]string, 0, len(o.Handlers))
	for name := range o.Handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handler returns the options for name.
func (o ModuleOptions) Handler(name string) (HandlerOptions, error) {
	cfg, ok := o.Handlers[name]
	if !ok {
		return HandlerOptions{}, &RuntimeError{Handler: name, Reason: "not configured"}
	}
	return cfg, nil
}

// HandlerConfig builds the configuration map handler.NewFromConfig expects,
// binding the handler's options to carrier.
func (o ModuleOptions) HandlerConfig(name string, carrier handler.Carrier) (map[string]any, error) {
	cfg, err := o.Handler(name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(cfg.Extra)+2)
	for key, value := range cfg.Extra {
		out[key] = value
	}
	if cfg.Template != "" {
		out[handler.ConfigKeyTemplate] = cfg.Template
	}
	if carrier != nil {
		out[handler.ConfigKeyCarrier] = carrier
	}
	return out, nil
}
