package gotemplate

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-workflow-view/pkg/render/template"
)

// Engine names accepted by NewNamed.
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "go-template"
)

// NewGoTemplate builds a renderer backed by go-template's own engine. It
// takes the same options as New: loaders and extension are translated to
// go-template options, then filters and global data are applied through
// the renderer.
func NewGoTemplate(options ...Option) (template.TemplateRenderer, error) {
	cfg := newConfig(options)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var native []gotemplatepkg.Option
	if cfg.baseDir != "" {
		native = append(native, gotemplatepkg.WithBaseDir(cfg.baseDir))
	}
	if cfg.templates != nil {
		native = append(native, gotemplatepkg.WithFS(cfg.templates))
	}
	native = append(native, gotemplatepkg.WithExtension(cfg.extension))
	native = append(native, cfg.native...)

	renderer, err := gotemplatepkg.NewRenderer(native...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: create go-template renderer: %w", err)
	}

	if len(cfg.globalData) > 0 {
		if err := renderer.GlobalContext(cfg.globalData); err != nil {
			return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
		}
	}
	for name, fn := range cfg.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := renderer.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}
	return renderer, nil
}

// NewNamed builds the engine called name: EnginePongo2 (also the default
// for an empty name) or EngineGoTemplate.
func NewNamed(name string, options ...Option) (template.TemplateRenderer, error) {
	switch name {
	case "", EnginePongo2:
		return New(options...)
	case EngineGoTemplate:
		return NewGoTemplate(options...)
	default:
		return nil, fmt.Errorf("gotemplate: unknown engine %q", name)
	}
}
