package visual

import (
	"strings"

	"github.com/odvcencio/prism/pkg/ui/strip"
	"github.com/odvcencio/prism/pkg/ui/style"
)

// Span styles the bytes [Start, End) of a Content's text.
type Span struct {
	Start, End int
	Style      style.Style
}

// Content is text with styled spans. Later spans paint over earlier ones.
// Content values are immutable; Stylize and Append return new values.
type Content struct {
	text  string
	spans []Span
}

// NewContent returns unstyled content.
func NewContent(text string) Content {
	return Content{text: text}
}

// Styled returns content styled as a whole.
func Styled(text string, st style.Style) Content {
	return NewContent(text).Stylize(0, len(text), st)
}

// Text returns the plain text.
func (c Content) Text() string {
	return c.text
}

// Spans returns a copy of the spans.
func (c Content) Spans() []Span {
	out := make([]Span, len(c.spans))
	copy(out, c.spans)
	return out
}

// Stylize applies st to the byte range [start, end), clamped to the text.
func (c Content) Stylize(start, end int, st style.Style) Content {
	start = max(start, 0)
	end = min(end, len(c.text))
	if start >= end || st.IsZero() {
		return c
	}
	spans := make([]Span, len(c.spans), len(c.spans)+1)
	copy(spans, c.spans)
	return Content{text: c.text, spans: append(spans, Span{Start: start, End: end, Style: st})}
}

// Append returns content with text added in st.
func (c Content) Append(text string, st style.Style) Content {
	offset := len(c.text)
	out := Content{text: c.text + text, spans: c.Spans()}
	return out.Stylize(offset, offset+len(text), st)
}

// Slice returns the content of bytes [start, end), clamped to the text, with
// spans cut to match.
func (c Content) Slice(start, end int) Content {
	start = max(start, 0)
	end = min(end, len(c.text))
	if start >= end {
		return Content{}
	}
	var spans []Span
	for _, s := range c.spans {
		a, b := max(s.Start, start), min(s.End, end)
		if a < b {
			spans = append(spans, Span{Start: a - start, End: b - start, Style: s.Style})
		}
	}
	return Content{text: c.text[start:end], spans: spans}
}

// Concat joins contents end to end.
func Concat(parts ...Content) Content {
	var (
		b     strings.Builder
		spans []Span
	)
	for _, p := range parts {
		offset := b.Len()
		b.WriteString(p.text)
		for _, s := range p.spans {
			spans = append(spans, Span{Start: s.Start + offset, End: s.End + offset, Style: s.Style})
		}
	}
	return Content{text: b.String(), spans: spans}
}

// Textualize lets Content be passed anywhere a Textualizer is accepted.
func (c Content) Textualize() Visual {
	return c
}

// RenderStrips implements Visual.
func (c Content) RenderStrips(width int, opts RenderOptions) []strip.Strip {
	if width <= 0 {
		if opts.Height > 0 {
			return make([]strip.Strip, opts.Height)
		}
		return nil
	}

	var rows []strip.Strip
	for _, line := range c.lines(opts.tabSize()) {
		for _, r := range line.wrap(width, opts.Overflow, opts.NoWrap) {
			rows = append(rows, r.render(width, opts))
		}
	}

	if opts.Height > 0 {
		if len(rows) > opts.Height {
			rows = rows[:opts.Height]
		}
		for len(rows) < opts.Height {
			rows = append(rows, strip.Blank(width, opts.BaseStyle))
		}
	}
	return rows
}

// OptimalWidth implements Visual: the widest line after tab expansion.
func (c Content) OptimalWidth(tabSize int) int {
	widest := 0
	for _, line := range c.lines(normalizeTab(tabSize)) {
		widest = max(widest, line.width())
	}
	return widest
}

// MinimalWidth implements Visual: the widest word.
func (c Content) MinimalWidth(tabSize int) int {
	widest := 0
	for _, line := range c.lines(normalizeTab(tabSize)) {
		for _, w := range line.words {
			widest = max(widest, w.contentWidth())
		}
	}
	return widest
}

// Height implements Visual. Widths below one are treated as one.
func (c Content) Height(width int) int {
	width = max(width, 1)
	rows := 0
	for _, line := range c.lines(DefaultTabSize) {
		rows += len(line.wrap(width, OverflowFold, false))
	}
	return rows
}

// styleAt folds every span covering byte offset i.
func (c Content) styleAt(i int) style.Style {
	var out style.Style
	for _, sp := range c.spans {
		if i >= sp.Start && i < sp.End {
			out = style.Combine(out, sp.Style)
		}
	}
	return out
}

func (c Content) lines(tabSize int) []line {
	var out []line
	offset := 0
	for {
		end := strings.IndexByte(c.text[offset:], '\n')
		if end < 0 {
			out = append(out, c.layoutLine(offset, len(c.text), tabSize))
			return out
		}
		lineEnd := offset + end
		trimmed := lineEnd
		if trimmed > offset && c.text[trimmed-1] == '\r' {
			trimmed--
		}
		out = append(out, c.layoutLine(offset, trimmed, tabSize))
		offset = lineEnd + 1
	}
}

func normalizeTab(tabSize int) int {
	if tabSize <= 0 {
		return DefaultTabSize
	}
	return tabSize
}
