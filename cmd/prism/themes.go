package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/odvcencio/prism/pkg/ui/design"
	"github.com/odvcencio/prism/pkg/ui/theme"
)

var swatchTokens = []string{"primary", "secondary", "accent", "success", "warning", "error"}

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes; the active one is starred",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			active, err := a.theme(nil)
			if err != nil {
				return err
			}
			r := lipgloss.NewRenderer(out)

			for _, name := range a.registry.Names() {
				t, err := a.registry.Get(name)
				if err != nil {
					return err
				}
				marker := " "
				if name == active.Name {
					marker = "*"
				}
				mode := "light"
				if t.Dark() {
					mode = "dark"
				}
				fmt.Fprintf(out, "%s %-12s %-5s %s\n", marker, name, mode, swatches(r, t))
			}
			return nil
		},
	}
}

func swatches(r *lipgloss.Renderer, t *theme.Theme) string {
	var b strings.Builder
	for _, token := range swatchTokens {
		c, err := t.Color(token)
		if err != nil {
			continue
		}
		b.WriteString(r.NewStyle().Background(design.TerminalColor(c)).Render("  "))
	}
	return b.String()
}
