// Package style defines the immutable per-cell rendering attributes and the
// order-sensitive composition used to layer them.
package style

import (
	"strings"

	"github.com/odvcencio/prism/pkg/ui/color"
)

// Flag is a tri-state text attribute. Unset inherits from whatever the
// style is composed onto.
type Flag uint8

const (
	Unset Flag = iota
	On
	Off
)

// FlagOf converts a bool to a set Flag.
func FlagOf(v bool) Flag {
	if v {
		return On
	}
	return Off
}

// IsSet reports whether the flag overrides what lies beneath it.
func (f Flag) IsSet() bool {
	return f != Unset
}

// Enabled reports whether the attribute is on. Unset counts as off.
func (f Flag) Enabled() bool {
	return f == On
}

func (f Flag) over(under Flag) Flag {
	if f != Unset {
		return f
	}
	return under
}

// Style is a value type. Two styles compare equal with == when every field
// matches; metadata compares by identity.
type Style struct {
	Background color.Color
	Foreground color.Color

	Bold      Flag
	Dim       Flag
	Italic    Flag
	Underline Flag
	Strike    Flag

	Link string

	meta *Meta
}

// New returns the empty style: transparent colors, every attribute unset.
func New() Style {
	return Style{}
}

// WithBackground returns a copy with the background set.
func (s Style) WithBackground(c color.Color) Style {
	s.Background = c
	return s
}

// WithForeground returns a copy with the foreground set.
func (s Style) WithForeground(c color.Color) Style {
	s.Foreground = c
	return s
}

func (s Style) WithBold(v bool) Style {
	s.Bold = FlagOf(v)
	return s
}

func (s Style) WithDim(v bool) Style {
	s.Dim = FlagOf(v)
	return s
}

func (s Style) WithItalic(v bool) Style {
	s.Italic = FlagOf(v)
	return s
}

func (s Style) WithUnderline(v bool) Style {
	s.Underline = FlagOf(v)
	return s
}

func (s Style) WithStrike(v bool) Style {
	s.Strike = FlagOf(v)
	return s
}

// WithLink returns a copy carrying a hyperlink target.
func (s Style) WithLink(url string) Style {
	s.Link = url
	return s
}

// WithMeta returns a copy carrying metadata. A nil meta clears it.
func (s Style) WithMeta(m *Meta) Style {
	s.meta = m
	return s
}

// Meta returns the attached metadata, or nil.
func (s Style) Meta() *Meta {
	return s.meta
}

// IsZero reports whether s is the empty style.
func (s Style) IsZero() bool {
	return s == Style{}
}

// WithoutColor keeps attributes, link and metadata but resets both colors to
// transparent, for overlays that must not carry their own colors.
func (s Style) WithoutColor() Style {
	s.Background = color.Transparent
	s.Foreground = color.Transparent
	return s
}

// RenderColors returns the colors a terminal should draw. The foreground is
// composited over the background so translucent text reads correctly. A
// transparent foreground stays transparent (terminal default).
func (s Style) RenderColors() (fg, bg color.Color) {
	bg = s.Background
	if s.Foreground.IsTransparent() {
		return color.Transparent, bg
	}
	if bg.IsTransparent() {
		return s.Foreground, bg
	}
	return bg.Add(s.Foreground), bg
}

// combine paints b over a without consulting any cache.
func combine(a, b Style) Style {
	out := Style{
		Background: a.Background.Add(b.Background),
		Foreground: a.Foreground,
		Bold:       b.Bold.over(a.Bold),
		Dim:        b.Dim.over(a.Dim),
		Italic:     b.Italic.over(a.Italic),
		Underline:  b.Underline.over(a.Underline),
		Strike:     b.Strike.over(a.Strike),
		Link:       a.Link,
		meta:       a.meta,
	}
	if !b.Foreground.IsTransparent() {
		out.Foreground = b.Foreground
	}
	if b.Link != "" {
		out.Link = b.Link
	}
	if b.meta != nil {
		out.meta = b.meta
	}
	return out
}

// String renders the style in the same markup Parse accepts.
func (s Style) String() string {
	var parts []string
	flags := []struct {
		name string
		f    Flag
	}{
		{"bold", s.Bold},
		{"dim", s.Dim},
		{"italic", s.Italic},
		{"underline", s.Underline},
		{"strike", s.Strike},
	}
	for _, fl := range flags {
		switch fl.f {
		case On:
			parts = append(parts, fl.name)
		case Off:
			parts = append(parts, "not "+fl.name)
		}
	}
	if !s.Foreground.IsTransparent() {
		parts = append(parts, s.Foreground.Hex())
	}
	if !s.Background.IsTransparent() {
		parts = append(parts, "on "+s.Background.Hex())
	}
	if s.Link != "" {
		parts = append(parts, "link="+s.Link)
	}
	return strings.Join(parts, " ")
}
