package handler

import (
	"context"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-workflow-view/pkg/event"
	"github.com/goliatone/go-workflow-view/pkg/view"
)

// ThemeListenerPriority runs theme aliasing after the dispatcher's own
// template resolution.
const ThemeListenerPriority = DefaultListenerPriority - 100

// ThemeTemplateListener returns a TEMPLATE_RESOLVE listener that treats the
// outbound template name as a theme template key. When the selected theme
// (variant overrides first, then the manifest) maps the key to a path, the
// view's template is rewritten to that path.
func ThemeTemplateListener(selector theme.ThemeSelector, themeName, variant string) event.Listener {
	return func(_ context.Context, e *event.Event) (view.Result, error) {
		if selector == nil {
			return nil, nil
		}
		vm := ViewModelFrom(e)
		if vm == nil || strings.TrimSpace(vm.Template()) == "" {
			return nil, nil
		}

		selection, err := selector.Select(themeName, variant)
		if err != nil {
			return nil, fmt.Errorf("handler: select theme %q/%q: %w", themeName, variant, err)
		}
		if path, ok := themeTemplate(selection, vm.Template()); ok {
			vm.SetTemplate(path)
		}
		return nil, nil
	}
}

// AttachTheme binds ThemeTemplateListener to the dispatcher's manager. Like
// the built-in listeners it ignores runs of other dispatchers sharing the
// manager.
func (d *Dispatcher) AttachTheme(selector theme.ThemeSelector, themeName, variant string) event.ListenerID {
	listener := ThemeTemplateListener(selector, themeName, variant)
	return d.events.Attach(event.TemplateResolve, func(ctx context.Context, e *event.Event) (view.Result, error) {
		if !d.owns(e) {
			return nil, nil
		}
		return listener(ctx, e)
	}, ThemeListenerPriority)
}

func themeTemplate(selection *theme.Selection, key string) (string, bool) {
	if selection == nil || selection.Manifest == nil {
		return "", false
	}
	manifest := selection.Manifest
	if selection.Variant != "" {
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			if path := strings.TrimSpace(variant.Templates[key]); path != "" {
				return path, true
			}
		}
	}
	if path := strings.TrimSpace(manifest.Templates[key]); path != "" {
		return path, true
	}
	return "", false
}
