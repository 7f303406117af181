package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/prism/pkg/ui/design"
)

func newPaletteCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "palette [theme]",
		Short: "Print every generated color of a theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format, "yaml", "json")
			if err != nil {
				return err
			}
			t, err := a.theme(args)
			if err != nil {
				return err
			}
			return writePalette(cmd.OutOrStdout(), t.Palette, outFormat)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

// writePalette writes the palette in generation order for YAML. JSON keys
// come out sorted.
func writePalette(w io.Writer, p design.Palette, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range p.Keys() {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: p[name], Style: yaml.DoubleQuotedStyle},
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
