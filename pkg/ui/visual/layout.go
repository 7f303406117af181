package visual

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/odvcencio/prism/pkg/ui/strip"
	"github.com/odvcencio/prism/pkg/ui/style"
)

const ellipsis = "…"

// glyph is one grapheme cluster after tab expansion.
type glyph struct {
	text  string
	width int
	style style.Style
	space bool
}

// word is a run of glyphs between two line-break opportunities, trailing
// whitespace included.
type word struct {
	glyphs []glyph
}

func (w word) width() int {
	return glyphWidth(w.glyphs)
}

// contentWidth ignores trailing whitespace, which may hang past the edge.
func (w word) contentWidth() int {
	return glyphWidth(trimTrailingSpace(w.glyphs))
}

type line struct {
	words []word
}

func (l line) glyphs() []glyph {
	var out []glyph
	for _, w := range l.words {
		out = append(out, w.glyphs...)
	}
	return out
}

func (l line) width() int {
	total := 0
	for _, w := range l.words {
		total += w.width()
	}
	return total
}

type row struct {
	glyphs []glyph
	// last marks the final row of a line; full justification skips it.
	last bool
}

// layoutLine segments text[start:end] into words of styled glyphs. Tabs
// expand to the next multiple of tabSize.
func (c Content) layoutLine(start, end, tabSize int) line {
	var (
		words  []word
		col    int
		offset = start
		rest   = c.text[start:end]
		state  = -1
	)

	for rest != "" {
		var segment string
		segment, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)

		var w word
		graphemes := -1
		for segment != "" {
			var cluster string
			cluster, segment, _, graphemes = uniseg.FirstGraphemeClusterInString(segment, graphemes)
			st := c.styleAt(offset)
			offset += len(cluster)

			if cluster == "\t" {
				n := tabSize - col%tabSize
				for range n {
					w.glyphs = append(w.glyphs, glyph{text: " ", width: 1, style: st, space: true})
				}
				col += n
				continue
			}

			width := strip.Width(cluster)
			w.glyphs = append(w.glyphs, glyph{text: cluster, width: width, style: st, space: cluster == " "})
			col += width
		}
		words = append(words, w)
	}
	return line{words: words}
}

// wrap breaks the line into rows no wider than width. Words too long for a
// row are folded when overflow is OverflowFold and left whole otherwise.
func (l line) wrap(width int, overflow Overflow, noWrap bool) []row {
	if noWrap || len(l.words) == 0 {
		return []row{{glyphs: l.glyphs(), last: true}}
	}

	var (
		rows []row
		cur  []glyph
		used int
	)
	push := func() {
		rows = append(rows, row{glyphs: trimTrailingSpace(cur)})
		cur, used = nil, 0
	}

	for _, w := range l.words {
		content := w.contentWidth()
		if used+content <= width {
			cur = append(cur, w.glyphs...)
			used += w.width()
			continue
		}
		if len(cur) > 0 {
			push()
		}
		if content <= width || overflow != OverflowFold {
			cur = append(cur, w.glyphs...)
			used = w.width()
			continue
		}
		for _, g := range w.glyphs {
			if !g.space && len(cur) > 0 && used+g.width > width {
				push()
			}
			cur = append(cur, g)
			used += g.width
		}
	}
	if used > width {
		cur = trimTrailingSpace(cur)
	}
	return append(rows, row{glyphs: cur, last: true})
}

// render turns the row into a strip of exactly width cells.
func (r row) render(width int, opts RenderOptions) strip.Strip {
	glyphs := r.glyphs
	used := glyphWidth(glyphs)

	var s strip.Strip
	switch {
	case used > width && opts.Overflow == OverflowEllipsis:
		s = withEllipsis(glyphs, width)
	case used > width:
		s = toStrip(glyphs).Crop(0, width)
	default:
		switch opts.Justify {
		case JustifyCenter:
			s = strip.Join(strip.Blank((width-used)/2, style.Style{}), toStrip(glyphs))
		case JustifyRight:
			s = strip.Join(strip.Blank(width-used, style.Style{}), toStrip(glyphs))
		case JustifyFull:
			if !r.last {
				glyphs = justifyFull(glyphs, width-used)
			}
			s = toStrip(glyphs)
		default:
			s = toStrip(glyphs)
		}
	}

	return s.AdjustCellLength(width, style.Style{}).ApplyBase(opts.BaseStyle).Simplify()
}

func withEllipsis(glyphs []glyph, width int) strip.Strip {
	ew := strip.Width(ellipsis)
	if ew <= 0 || ew > width {
		return toStrip(glyphs).Crop(0, width)
	}

	keep := width - ew
	var last style.Style
	x := 0
	for _, g := range glyphs {
		if x >= keep {
			break
		}
		last = g.style
		x += g.width
	}
	return strip.Join(
		toStrip(glyphs).Crop(0, keep),
		strip.New(strip.Segment{Text: ellipsis, Style: last}),
	)
}

// justifyFull spreads extra cells over the interior gaps between words,
// giving any remainder to the rightmost gaps.
func justifyFull(glyphs []glyph, extra int) []glyph {
	if extra <= 0 {
		return glyphs
	}

	var gaps []int
	seenWord := false
	for i, g := range glyphs {
		if !g.space {
			seenWord = true
			continue
		}
		if seenWord && (i == 0 || !glyphs[i-1].space) {
			gaps = append(gaps, i)
		}
	}
	// a gap only counts if a word follows it
	for len(gaps) > 0 && !hasWordAfter(glyphs, gaps[len(gaps)-1]) {
		gaps = gaps[:len(gaps)-1]
	}
	if len(gaps) == 0 {
		return glyphs
	}

	per, rem := extra/len(gaps), extra%len(gaps)
	out := make([]glyph, 0, len(glyphs)+extra)
	gap := 0
	for i, g := range glyphs {
		if gap < len(gaps) && gaps[gap] == i {
			n := per
			if gap >= len(gaps)-rem {
				n++
			}
			for range n {
				out = append(out, g)
			}
			gap++
		}
		out = append(out, g)
	}
	return out
}

func hasWordAfter(glyphs []glyph, i int) bool {
	for _, g := range glyphs[i:] {
		if !g.space {
			return true
		}
	}
	return false
}

func toStrip(glyphs []glyph) strip.Strip {
	var (
		segments []strip.Segment
		text     strings.Builder
		cur      style.Style
	)
	for i, g := range glyphs {
		if i > 0 && g.style != cur {
			segments = append(segments, strip.Segment{Text: text.String(), Style: cur})
			text.Reset()
		}
		cur = g.style
		text.WriteString(g.text)
	}
	if text.Len() > 0 {
		segments = append(segments, strip.Segment{Text: text.String(), Style: cur})
	}
	return strip.New(segments...)
}

func trimTrailingSpace(glyphs []glyph) []glyph {
	end := len(glyphs)
	for end > 0 && glyphs[end-1].space {
		end--
	}
	return glyphs[:end]
}

func glyphWidth(glyphs []glyph) int {
	total := 0
	for _, g := range glyphs {
		total += g.width
	}
	return total
}
