// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/prism/pkg/ui/backend"
	"github.com/odvcencio/prism/pkg/ui/color"
	"github.com/odvcencio/prism/pkg/ui/style"
)

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen tcell.Screen
}

// New creates a new tcell backend.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return b.screen.Init()
}

// Fini cleans up the backend.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, st style.Style) {
	b.screen.SetContent(x, y, mainc, comb, ConvertStyle(st))
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// ConvertStyle maps a style onto tcell. The foreground is composited over
// the background first, since terminals have no alpha.
func ConvertStyle(s style.Style) tcell.Style {
	fg, bg := s.RenderColors()
	ts := tcell.StyleDefault.
		Foreground(ConvertColor(fg)).
		Background(ConvertColor(bg))

	if s.Bold.Enabled() {
		ts = ts.Bold(true)
	}
	if s.Dim.Enabled() {
		ts = ts.Dim(true)
	}
	if s.Italic.Enabled() {
		ts = ts.Italic(true)
	}
	if s.Underline.Enabled() {
		ts = ts.Underline(true)
	}
	if s.Strike.Enabled() {
		ts = ts.StrikeThrough(true)
	}
	if s.Link != "" {
		ts = ts.Url(s.Link)
	}
	return ts
}

// ConvertColor maps a color onto tcell. Transparent colors and the ANSI
// default become the terminal default.
func ConvertColor(c color.Color) tcell.Color {
	if index, ok := c.ANSI(); ok {
		if index < 0 {
			return tcell.ColorDefault
		}
		return tcell.PaletteColor(index)
	}
	if c.IsTransparent() {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

var _ backend.Backend = (*Backend)(nil)
