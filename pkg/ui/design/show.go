package design

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/odvcencio/prism/pkg/ui/color"
)

// ShowDesign renders every shade of a light and a dark system side by side:
// one padded block per shade, labeled with its $token name, drawn in the
// shade with readable contrast text. width is the total table width.
func ShowDesign(r *lipgloss.Renderer, light, dark *ColorSystem, width int) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	column := max(width/2, 1)

	header := r.NewStyle().Width(column).Align(lipgloss.Center).Bold(true)
	heading := lipgloss.JoinHorizontal(lipgloss.Top,
		header.Render("Light"),
		header.Render("Dark"),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		shadeColumn(r, light, column),
		shadeColumn(r, dark, column),
	)
	return lipgloss.JoinVertical(lipgloss.Left, heading, body)
}

func shadeColumn(r *lipgloss.Renderer, cs *ColorSystem, width int) string {
	palette := cs.Generate()
	names := ShadeNames()
	blocks := make([]string, 0, len(names))

	for _, name := range names {
		bg, err := palette.Color(name)
		if err != nil {
			continue
		}
		bg = bg.WithAlpha(1)
		fg := bg.Add(bg.ContrastText(0.9))

		block := r.NewStyle().
			Padding(1).
			Width(width).
			Align(lipgloss.Center).
			Foreground(TerminalColor(fg)).
			Background(TerminalColor(bg))
		blocks = append(blocks, block.Render("$"+name))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// TerminalColor converts a color for lipgloss. Palette entries map to their
// index; the terminal default and transparent colors map to no color.
func TerminalColor(c color.Color) lipgloss.TerminalColor {
	if c.IsTransparent() {
		return lipgloss.NoColor{}
	}
	if index, ok := c.ANSI(); ok {
		if index < 0 {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(strconv.Itoa(index))
	}
	return lipgloss.Color(c.Hex6())
}
