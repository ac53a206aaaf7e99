package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-workflow-view/pkg/event"
	"github.com/goliatone/go-workflow-view/pkg/handler"
	"github.com/goliatone/go-workflow-view/pkg/mvc"
	"github.com/goliatone/go-workflow-view/pkg/options"
	"github.com/goliatone/go-workflow-view/pkg/render"
	"github.com/goliatone/go-workflow-view/pkg/render/template/gotemplate"
	"github.com/goliatone/go-workflow-view/pkg/view"
)

type renderFlags struct {
	data          string
	output        string
	asJSON        bool
	sanitize      bool
	entryID       string
	engine        string
	themeManifest string
	themeName     string
	variant       string
}

func newRenderCommand(v *viper.Viper, deps Deps) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [handler]",
		Short: "Run a handler's phases and render the resulting view",
		Long: `Render runs BOOTSTRAP, TEMPLATE_RESOLVE and DISPATCH for the named handler.
The dispatch result is read from --data (a YAML or JSON mapping). When no
handler is given you are prompted to pick one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, v, deps, flags, args)
		},
	}
	cmd.Flags().StringVarP(&flags.data, "data", "d", "", "YAML or JSON file returned by the DISPATCH phase")
	cmd.Flags().StringVar(&flags.output, "output", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "render the view tree as JSON")
	cmd.Flags().BoolVar(&flags.sanitize, "sanitize", false, "sanitize captured child output")
	cmd.Flags().StringVar(&flags.entryID, "entry", "", "workflow entry id passed to listeners")
	cmd.Flags().StringVar(&flags.engine, "engine", gotemplate.EnginePongo2, "template engine (pongo2 or go-template)")
	cmd.Flags().StringVar(&flags.themeManifest, "theme-manifest", "", "theme manifest (YAML or JSON) mapping template keys to paths")
	cmd.Flags().StringVar(&flags.themeName, "theme", "", "theme name (defaults to the manifest's)")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "theme variant, e.g. dark")
	return cmd
}

func runRender(cmd *cobra.Command, v *viper.Viper, deps Deps, flags *renderFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(v, cmd)

	opts, err := loadOptions(v.GetString(keyOptions))
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = deps.Prompter.Select(ctx, "Handler", opts.Names())
		if err != nil {
			return err
		}
	}

	data, err := loadData(flags.data)
	if err != nil {
		return err
	}

	carrier := mvc.NewEvent(nil, nil)
	registry := options.NewRegistry()
	err = registry.Register(name, func(config map[string]any) (*handler.Dispatcher, error) {
		return handler.NewFromConfig(config, handler.WithLogger(logger))
	})
	if err != nil {
		return err
	}
	d, err := registry.Build(opts, name, carrier)
	if err != nil {
		return err
	}
	if flags.themeManifest != "" {
		selector, err := loadThemeSelector(flags.themeManifest)
		if err != nil {
			return err
		}
		d.AttachTheme(selector, flags.themeName, flags.variant)
	}
	if data != nil {
		d.OnDispatch(func(context.Context, *event.Event) (view.Result, error) {
			return view.FromVariables(data), nil
		})
	}

	vm, err := d.Run(ctx, handler.ActionContext{
		Action:  name,
		EntryID: flags.entryID,
		Inputs:  data,
	})
	if err != nil {
		return err
	}

	renderer, err := newRenderer(v, flags)
	if err != nil {
		return err
	}
	body, err := renderer.Render(ctx, vm)
	if err != nil {
		return err
	}

	logger.Debug().Str("handler", name).Str("renderer", renderer.Name()).Str("template", vm.Template()).Msg("rendered")
	return writeOutput(cmd.OutOrStdout(), flags.output, body)
}

func loadOptions(path string) (options.ModuleOptions, error) {
	if path == "" {
		return options.ModuleOptions{}, fmt.Errorf("cli: options file is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return options.ModuleOptions{}, fmt.Errorf("cli: resolve %s: %w", path, err)
	}
	return options.Load(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

func loadThemeSelector(path string) (theme.ThemeSelector, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cli: resolve %s: %w", path, err)
	}
	manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
	if err != nil {
		return nil, fmt.Errorf("cli: load theme: %w", err)
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("cli: register theme %q: %w", manifest.Name, err)
	}
	return theme.Selector{Registry: registry, DefaultTheme: manifest.Name}, nil
}

func loadData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: read data: %w", err)
	}
	data := make(map[string]any)
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("cli: parse data %s: %w", path, err)
	}
	return data, nil
}

func newRenderer(v *viper.Viper, flags *renderFlags) (render.Renderer, error) {
	if flags.asJSON {
		return render.NewJSONRenderer(render.WithIndent("  ")), nil
	}
	engine, err := gotemplate.NewNamed(flags.engine, gotemplate.WithBaseDir(v.GetString(keyTemplates)))
	if err != nil {
		return nil, err
	}
	htmlOptions := []render.HTMLOption{render.WithLayout(v.GetString(keyLayout))}
	if flags.sanitize {
		htmlOptions = append(htmlOptions, render.WithUGCSanitizer())
	}
	html, err := render.NewHTMLRenderer(engine, htmlOptions...)
	if err != nil {
		return nil, err
	}
	return html, nil
}

func writeOutput(stdout io.Writer, path string, body []byte) error {
	if path == "" {
		_, err := stdout.Write(body)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cli: create output dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("cli: write output: %w", err)
	}
	return nil
}
