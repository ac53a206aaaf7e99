// Package cli implements the workflow-view command line tool: it loads
// handler options, runs a dispatcher for one handler and renders the result.
package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-workflow-view/internal/logging"
)

// Config keys shared by flags, the config file and WFVIEW_* env vars.
const (
	keyConfig    = "config"
	keyLogLevel  = "log_level"
	keyOptions   = "options"
	keyTemplates = "templates"
	keyLayout    = "layout"
)

const appName = "workflow-view"

// Deps are the collaborators the commands use; tests swap them out.
type Deps struct {
	Out      io.Writer
	Err      io.Writer
	Prompter Prompter
}

// NewRootCommand builds the command tree backed by its own viper instance.
func NewRootCommand(deps Deps) *cobra.Command {
	v := viper.New()
	if deps.Prompter == nil {
		deps.Prompter = surveyPrompter{}
	}

	root := &cobra.Command{
		Use:   appName,
		Short: "Run workflow view handlers and render their output",
		Long: `workflow-view runs the BOOTSTRAP, TEMPLATE_RESOLVE and DISPATCH phases
for a configured handler and renders the populated view model.

Handlers are declared in an options file (YAML, JSON or TOML):

  handlers:
    approve:
      template: workflow/approve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfig(v)
		},
	}
	if deps.Out != nil {
		root.SetOut(deps.Out)
	}
	if deps.Err != nil {
		root.SetErr(deps.Err)
	}

	flags := root.PersistentFlags()
	flags.StringP(keyConfig, "c", "", "config file (default is ./workflow-view.yaml)")
	flags.String("log-level", "info", "log level (trace/debug/info/warn/error/off)")
	flags.StringP(keyOptions, "o", "handlers.yaml", "handler options file")
	flags.StringP(keyTemplates, "t", "templates", "template directory")
	flags.String(keyLayout, "", "layout template wrapped around non-terminal views")

	_ = v.BindPFlag(keyConfig, flags.Lookup(keyConfig))
	_ = v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(keyOptions, flags.Lookup(keyOptions))
	_ = v.BindPFlag(keyTemplates, flags.Lookup(keyTemplates))
	_ = v.BindPFlag(keyLayout, flags.Lookup(keyLayout))

	root.AddCommand(
		newRenderCommand(v, deps),
		newListCommand(v),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand(Deps{}).Execute()
}

func loadConfig(v *viper.Viper) error {
	explicit := v.GetString(keyConfig)
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WFVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func newLogger(v *viper.Viper, cmd *cobra.Command) zerolog.Logger {
	return logging.New(appName, cmd.ErrOrStderr(), v.GetString(keyLogLevel))
}
