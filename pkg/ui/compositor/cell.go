// Package compositor paints strips into a double-buffered cell screen and
// flushes only the cells that changed since the last frame to a backend.
package compositor

import "github.com/odvcencio/prism/pkg/ui/style"

// Cell is a single character cell on screen.
type Cell struct {
	Grapheme string
	Width    uint8 // 1 for most, 2 for wide characters, 0 for a continuation
	Style    style.Style
}

// EmptyCell returns a blank cell with no style.
func EmptyCell() Cell {
	return Cell{Grapheme: " ", Width: 1}
}

// Empty returns true if the cell is a space with no style.
func (c Cell) Empty() bool {
	return c == EmptyCell()
}

// Continuation reports whether the cell is the trailing half of a wide
// character.
func (c Cell) Continuation() bool {
	return c.Width == 0
}
