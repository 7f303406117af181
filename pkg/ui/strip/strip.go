// Package strip holds the row type visuals render into: an ordered run of
// styled segments whose cell length is known.
package strip

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/odvcencio/prism/pkg/ui/style"
)

// Segment is a run of text in one style.
type Segment struct {
	Text  string
	Style style.Style
}

// CellLength returns the number of terminal cells the segment occupies.
func (s Segment) CellLength() int {
	return Width(s.Text)
}

// Strip is one terminal row. Strips are immutable.
type Strip struct {
	segments []Segment
	length   int
}

// Width returns the cell width of text.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// New builds a strip from segments. Empty segments are dropped.
func New(segments ...Segment) Strip {
	s := Strip{segments: make([]Segment, 0, len(segments))}
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		s.segments = append(s.segments, seg)
		s.length += seg.CellLength()
	}
	return s
}

// Blank returns a strip of width spaces.
func Blank(width int, st style.Style) Strip {
	if width <= 0 {
		return Strip{}
	}
	return Strip{
		segments: []Segment{{Text: strings.Repeat(" ", width), Style: st}},
		length:   width,
	}
}

// CellLength returns the total width in cells.
func (s Strip) CellLength() int {
	return s.length
}

// Text returns the plain text of the strip.
func (s Strip) Text() string {
	var b strings.Builder
	for _, seg := range s.segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Segments returns a copy of the segments.
func (s Strip) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Cell is one grapheme positioned on the row.
type Cell struct {
	X        int
	Grapheme string
	Width    int
	Style    style.Style
}

// Cells calls fn for every grapheme, left to right. Iteration stops when fn
// returns false.
func (s Strip) Cells(fn func(Cell) bool) {
	x := 0
	for _, seg := range s.segments {
		rest := seg.Text
		state := -1
		for rest != "" {
			var cluster string
			cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
			w := Width(cluster)
			if !fn(Cell{X: x, Grapheme: cluster, Width: w, Style: seg.Style}) {
				return
			}
			x += w
		}
	}
}

// Crop keeps cells in [start, end). A wide character cut by either edge is
// replaced by spaces in its style.
func (s Strip) Crop(start, end int) Strip {
	start = max(start, 0)
	end = min(end, s.length)
	if start >= end {
		return Strip{}
	}
	if start == 0 && end == s.length {
		return s
	}

	var (
		out  []Segment
		text strings.Builder
		cur  style.Style
	)
	flush := func() {
		if text.Len() > 0 {
			out = append(out, Segment{Text: text.String(), Style: cur})
			text.Reset()
		}
	}

	s.Cells(func(c Cell) bool {
		if c.X >= end {
			return false
		}
		right := c.X + c.Width
		if right <= start {
			return true
		}
		if c.Style != cur {
			flush()
			cur = c.Style
		}
		switch {
		case c.X < start:
			text.WriteString(strings.Repeat(" ", right-start))
		case right > end:
			text.WriteString(strings.Repeat(" ", end-c.X))
		default:
			text.WriteString(c.Grapheme)
		}
		return true
	})
	flush()

	return New(out...)
}

// Extend pads the strip with spaces up to width.
func (s Strip) Extend(width int, st style.Style) Strip {
	if s.length >= width {
		return s
	}
	segments := append(s.Segments(), Segment{Text: strings.Repeat(" ", width-s.length), Style: st})
	return Strip{segments: segments, length: width}
}

// AdjustCellLength pads or crops the strip to exactly width cells.
func (s Strip) AdjustCellLength(width int, st style.Style) Strip {
	if s.length > width {
		return s.Crop(0, width)
	}
	return s.Extend(width, st)
}

// ApplyBase paints every segment over base, so transparent parts show it.
func (s Strip) ApplyBase(base style.Style) Strip {
	if base.IsZero() {
		return s
	}
	out := Strip{segments: make([]Segment, len(s.segments)), length: s.length}
	for i, seg := range s.segments {
		out.segments[i] = Segment{Text: seg.Text, Style: style.Combine(base, seg.Style)}
	}
	return out
}

// Simplify merges adjacent segments that share a style.
func (s Strip) Simplify() Strip {
	if len(s.segments) < 2 {
		return s
	}
	out := Strip{segments: make([]Segment, 0, len(s.segments)), length: s.length}
	for _, seg := range s.segments {
		if n := len(out.segments); n > 0 && out.segments[n-1].Style == seg.Style {
			out.segments[n-1].Text += seg.Text
			continue
		}
		out.segments = append(out.segments, seg)
	}
	return out
}

// Join concatenates strips.
func Join(strips ...Strip) Strip {
	var segments []Segment
	for _, s := range strips {
		segments = append(segments, s.segments...)
	}
	return New(segments...)
}
