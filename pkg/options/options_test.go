package options

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-workflow-view/pkg/handler"
	"github.com/goliatone/go-workflow-view/pkg/testsupport"
)

func TestLoad_Formats(t *testing.T) {
	for _, name := range []string{"handlers.yaml", "handlers.json", "handlers.toml"} {
		t.Run(name, func(t *testing.T) {
			opts, err := Load(os.DirFS("testdata"), name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			cfg, err := opts.Handler("approve")
			if err != nil {
				t.Fatalf("handler: %v", err)
			}
			if cfg.Template != "workflow/approve" {
				t.Fatalf("template: want workflow/approve, got %q", cfg.Template)
			}
		})
	}
}

func TestParse_YAMLNormalisesTemplates(t *testing.T) {
	data, err := os.ReadFile("testdata/handlers.yaml")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	opts, err := Parse(data, "handlers.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"approve", "history", "reject"}, opts.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	reject := opts.Handlers["reject"]
	if reject.Template != "workflow/reject" {
		t.Fatalf("expected trimmed template, got %q", reject.Template)
	}
	if reject.Extra["layout"] != "admin" {
		t.Fatalf("expected extra layout, got %v", reject.Extra)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		data   string
		source string
	}{
		"empty":        {"   ", "a.yaml"},
		"garbage":      {"handlers: [unterminated", "a.yaml"},
		"bad toml":     {"handlers = ", "a.toml"},
		"blank handle": {`{"handlers": {" ": {}}}`, "a.json"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data), tc.source); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(fstest.MapFS{}, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(nil, "x"); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
}

func TestHandlerConfig(t *testing.T) {
	opts := ModuleOptions{Handlers: map[string]HandlerOptions{
		"reject": {Template: "workflow/reject", Extra: map[string]any{"layout": "admin"}},
	}}
	carrier := testsupport.NewCarrier(nil)

	cfg, err := opts.HandlerConfig("reject", carrier)
	if err != nil {
		t.Fatalf("handler config: %v", err)
	}
	if cfg[handler.ConfigKeyTemplate] != "workflow/reject" || cfg["layout"] != "admin" {
		t.Fatalf("unexpected config: %v", cfg)
	}
	if cfg[handler.ConfigKeyCarrier] != handler.Carrier(carrier) {
		t.Fatalf("carrier not bound")
	}

	_, err = opts.HandlerConfig("missing", carrier)
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Handler != "missing" || !errors.Is(err, ErrRuntime) {
		t.Fatalf("expected runtime error, got %v", err)
	}
}

func TestRegistry_BuildUsesFactoryOrDefault(t *testing.T) {
	opts := ModuleOptions{Handlers: map[string]HandlerOptions{
		"approve": {Template: "workflow/approve"},
		"custom":  {Template: "workflow/custom"},
	}}
	registry := NewRegistry()
	var built []string
	registry.MustRegister("custom", func(config map[string]any) (*handler.Dispatcher, error) {
		built = append(built, config[handler.ConfigKeyTemplate].(string))
		return handler.NewFromConfig(config)
	})

	for _, name := range []string{"approve", "custom"} {
		carrier := testsupport.NewCarrier(nil)
		d, err := registry.Build(opts, name, carrier)
		if err != nil {
			t.Fatalf("build %s: %v", name, err)
		}
		vm, err := d.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("run %s: %v", name, err)
		}
		if vm.Template() != "workflow/"+name || !vm.Terminal() {
			t.Fatalf("%s: unexpected template %q", name, vm.Template())
		}
		if results := carrier.Results(); len(results) != 1 || results[0] != vm {
			t.Fatalf("%s: expected the carrier result to be published once", name)
		}
	}
	if diff := cmp.Diff([]string{"workflow/custom"}, built); diff != "" {
		t.Fatalf("factory calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Errors(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("", DefaultFactory); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := registry.Register("a", nil); err == nil {
		t.Fatalf("expected error for nil factory")
	}
	registry.MustRegister("a", DefaultFactory)
	if err := registry.Register("a", DefaultFactory); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := registry.Get("b"); !errors.Is(err, ErrRuntime) {
		t.Fatalf("expected runtime error for missing factory, got %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
