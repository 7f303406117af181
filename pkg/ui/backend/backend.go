// Package backend defines the terminal surfaces strips are flushed to.
// tcell drives real terminals; the simulation backend backs screen tests.
package backend

import "github.com/odvcencio/prism/pkg/ui/style"

// Backend is a terminal that owns its own output.
type Backend interface {
	RenderTarget

	// Init enters the alternate screen and raw mode.
	Init() error

	// Fini restores the terminal.
	Fini()

	// Show synchronizes the internal buffer to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// Sync forces a full redraw on the next Show.
	Sync()
}

// RenderTarget is the subset of Backend that cells are written to.
type RenderTarget interface {
	Size() (width, height int)

	// SetContent writes one cell. comb holds the grapheme's remaining runes
	// and may be nil.
	SetContent(x, y int, mainc rune, comb []rune, st style.Style)
}

// SubTarget is a clipped, offset view of a RenderTarget.
type SubTarget struct {
	parent  RenderTarget
	offsetX int
	offsetY int
	width   int
	height  int
}

// NewSubTarget creates a sub-region of a RenderTarget.
func NewSubTarget(parent RenderTarget, x, y, w, h int) *SubTarget {
	return &SubTarget{
		parent:  parent,
		offsetX: x,
		offsetY: y,
		width:   w,
		height:  h,
	}
}

// Size returns the sub-target dimensions.
func (s *SubTarget) Size() (width, height int) {
	return s.width, s.height
}

// SetContent sets content with coordinates relative to the sub-target.
func (s *SubTarget) SetContent(x, y int, mainc rune, comb []rune, st style.Style) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.parent.SetContent(s.offsetX+x, s.offsetY+y, mainc, comb, st)
}

// SplitGrapheme returns the first rune of a grapheme cluster and the runes
// that combine with it. An empty grapheme is a space.
func SplitGrapheme(g string) (mainc rune, comb []rune) {
	if g == "" {
		return ' ', nil
	}
	runes := []rune(g)
	if len(runes) > 1 {
		comb = runes[1:]
	}
	return runes[0], comb
}
