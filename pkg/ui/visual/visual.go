// Package visual defines what it takes for content to be painted into a
// rectangular region: rendering to fixed-width strips and answering the
// width/height negotiation layout asks of it.
package visual

import (
	"github.com/odvcencio/prism/pkg/ui/strip"
	"github.com/odvcencio/prism/pkg/ui/style"
)

// DefaultTabSize is used when RenderOptions.TabSize is zero.
const DefaultTabSize = 8

// Justify aligns rows narrower than the render width.
type Justify uint8

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
	// JustifyFull stretches the gaps between words on every wrapped row
	// except the last row of a paragraph.
	JustifyFull
)

// Overflow decides what happens to a row wider than the render width.
type Overflow uint8

const (
	// OverflowFold hard-wraps words that do not fit on a row of their own.
	OverflowFold Overflow = iota
	// OverflowCrop cuts the row at the render width.
	OverflowCrop
	// OverflowEllipsis cuts the row and marks the cut with "…".
	OverflowEllipsis
)

// RenderOptions configure a single render.
type RenderOptions struct {
	// Height is the exact number of rows to produce. Zero means as many as
	// the content needs.
	Height int
	// BaseStyle is composed under every cell, including padding.
	BaseStyle style.Style
	Justify   Justify
	Overflow  Overflow
	// NoWrap keeps each line on one row and applies Overflow to it.
	NoWrap  bool
	TabSize int
}

func (o RenderOptions) tabSize() int {
	if o.TabSize <= 0 {
		return DefaultTabSize
	}
	return o.TabSize
}

// Visual is anything that can be rendered into strips.
type Visual interface {
	// RenderStrips returns rows that are each exactly width cells.
	RenderStrips(width int, opts RenderOptions) []strip.Strip
	// OptimalWidth is the width that needs no wrapping and wastes no space.
	OptimalWidth(tabSize int) int
	// MinimalWidth is the smallest width that keeps every word whole.
	MinimalWidth(tabSize int) int
	// Height is the number of rows needed at width.
	Height(width int) int
}

// Textualizer is implemented by values that know how to present themselves
// as a Visual.
type Textualizer interface {
	Textualize() Visual
}

// Textualize finds a Visual for obj through its Textualize method. It
// returns false when obj has no such method or the method returns nil.
// Implementations must tolerate a nil receiver.
func Textualize(obj any) (Visual, bool) {
	t, ok := obj.(Textualizer)
	if !ok {
		return nil, false
	}
	v := t.Textualize()
	if v == nil {
		return nil, false
	}
	return v, true
}

// Visualize is Textualize that also admits Visual values and plain strings.
func Visualize(obj any) (Visual, bool) {
	switch v := obj.(type) {
	case nil:
		return nil, false
	case Textualizer:
		return Textualize(v)
	case Visual:
		return v, true
	case string:
		return NewContent(v), true
	case []byte:
		return NewContent(string(v)), true
	}
	return nil, false
}

// Render is a convenience that renders v at width with default options.
func Render(v Visual, width int, base style.Style) []strip.Strip {
	return v.RenderStrips(width, RenderOptions{BaseStyle: base})
}
