package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/odvcencio/prism/pkg/ui/design"
)

func newDesignCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "design [theme]",
		Short: "Show every shade of a theme's seeds in light and dark mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, seeds, err := a.seeds(args)
			if err != nil {
				return err
			}

			seeds.Dark = false
			light, err := design.New(seeds)
			if err != nil {
				return err
			}
			seeds.Dark = true
			dark, err := design.New(seeds)
			if err != nil {
				return err
			}

			if width <= 0 {
				width = terminalWidth(os.Stdout, 80)
			}
			a.logger.Debug("showing design", "theme", name, "width", width)

			r := lipgloss.NewRenderer(cmd.OutOrStdout())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), design.ShowDesign(r, light, dark, width))
			return err
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "table width (default: terminal width)")
	return cmd
}
