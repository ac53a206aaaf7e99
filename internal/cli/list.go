package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	templateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newListCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured handlers and their templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v.GetString(keyOptions))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			names := opts.Names()
			if len(names) == 0 {
				_, err := fmt.Fprintln(out, mutedStyle.Render("no handlers configured"))
				return err
			}
			for _, name := range names {
				h, _ := opts.Handler(name)
				tmpl := templateStyle.Render(h.Template)
				if h.Template == "" {
					tmpl = mutedStyle.Render("(no template)")
				}
				if _, err := fmt.Fprintf(out, "%s  %s\n", nameStyle.Render(name), tmpl); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
