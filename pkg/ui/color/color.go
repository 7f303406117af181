// Package color implements the immutable color value used by prism's styles
// and palettes: parsing, perceptual lightness shifts, blending and "over"
// alpha compositing. Colors that name a terminal palette entry (ANSI) carry
// no usable RGB and pass through every blending operation unchanged.
package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with normalized channels, or a fixed terminal
// palette entry. The zero value is fully transparent black.
type Color struct {
	R, G, B float64 // 0..1, may overshoot before Clamped
	A       float64 // 0..1

	ansi  int8
	fixed bool
}

// Predefined colors.
var (
	White       = RGB(255, 255, 255)
	Black       = RGB(0, 0, 0)
	Transparent = Color{}
	ANSIDefault = ANSIColor(-1)
)

// RGB creates an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// RGBA creates a color from 8-bit channels and an alpha in 0..1.
func RGBA(r, g, b uint8, a float64) Color {
	c := RGB(r, g, b)
	c.A = clamp01(a)
	return c
}

// FromNormalized creates a color from normalized channels.
func FromNormalized(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ANSIColor creates a fixed palette color. Index -1 is the terminal default,
// 0-15 the standard and bright colors. Any other index is the default.
func ANSIColor(index int) Color {
	if index < -1 || index >= len(ansiNames) {
		index = -1
	}
	return Color{A: 1, ansi: int8(index), fixed: true}
}

// ANSI returns the palette index and true if this is a fixed palette color.
func (c Color) ANSI() (int, bool) {
	if !c.fixed {
		return 0, false
	}
	return int(c.ansi), true
}

// IsFixed reports whether the color is a terminal palette entry.
func (c Color) IsFixed() bool {
	return c.fixed
}

// IsTransparent reports whether painting this color changes nothing.
func (c Color) IsTransparent() bool {
	return !c.fixed && c.A <= 0
}

// RGB8 returns the clamped 8-bit channels.
func (c Color) RGB8() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

// WithAlpha returns a copy with a different alpha.
func (c Color) WithAlpha(a float64) Color {
	if c.fixed {
		return c
	}
	c.A = clamp01(a)
	return c
}

// Clamped projects channels and alpha back into 0..1.
func (c Color) Clamped() Color {
	if c.fixed {
		return c
	}
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Brightness returns perceived brightness in 0..1 (Rec. 601 luma).
func (c Color) Brightness() float64 {
	return (299*clamp01(c.R) + 587*clamp01(c.G) + 114*clamp01(c.B)) / 1000
}

// Lighten shifts CIE-Lab lightness by delta (L on a 0..1 scale). Negative
// values darken. The result is clamped into gamut; alpha is kept.
func (c Color) Lighten(delta float64) Color {
	if c.fixed || delta == 0 {
		return c
	}
	l, a, b := c.colorful().Lab()
	out := colorful.Lab(clamp01(l+delta), a, b).Clamped()
	return Color{R: out.R, G: out.G, B: out.B, A: c.A}
}

// Darken is Lighten(-delta).
func (c Color) Darken(delta float64) Color {
	return c.Lighten(-delta)
}

// Blend interpolates toward dest by factor, interpolating alpha too.
func (c Color) Blend(dest Color, factor float64) Color {
	if c.fixed {
		return c
	}
	if dest.fixed {
		return dest
	}
	if factor <= 0 {
		return c
	}
	if factor >= 1 {
		return dest
	}
	return c.mix(dest, factor, c.A+(dest.A-c.A)*factor)
}

// BlendAlpha interpolates toward dest by factor and sets the result's alpha.
func (c Color) BlendAlpha(dest Color, factor, alpha float64) Color {
	if c.fixed {
		return c
	}
	if dest.fixed {
		return dest
	}
	if factor <= 0 {
		return c.WithAlpha(alpha)
	}
	if factor >= 1 {
		return dest.WithAlpha(alpha)
	}
	return c.mix(dest, factor, alpha)
}

func (c Color) mix(dest Color, factor, alpha float64) Color {
	return Color{
		R: c.R + (dest.R-c.R)*factor,
		G: c.G + (dest.G-c.G)*factor,
		B: c.B + (dest.B-c.B)*factor,
		A: alpha,
	}
}

// Add paints over on top of c ("over" compositing) and returns the visible
// result. A fully transparent over leaves c untouched.
func (c Color) Add(over Color) Color {
	if over.fixed {
		return over
	}
	if over.A <= 0 {
		return c
	}
	if over.A >= 1 {
		return over
	}
	if c.fixed {
		// palette entries have no RGB to mix with
		return c
	}

	a := over.A + c.A*(1-over.A)
	if a <= 0 {
		return Transparent
	}
	under := c.A * (1 - over.A)
	mix := func(top, bottom float64) float64 {
		return (top*over.A + bottom*under) / a
	}
	return Color{R: mix(over.R, c.R), G: mix(over.G, c.G), B: mix(over.B, c.B), A: a}
}

// Inverse returns the color with inverted perceptual lightness.
func (c Color) Inverse() Color {
	if c.fixed {
		return c
	}
	l, a, b := c.colorful().Lab()
	out := colorful.Lab(1-l, a, b).Clamped()
	return Color{R: out.R, G: out.G, B: out.B, A: c.A}
}

// ContrastText returns white or black, whichever reads better on c, at the
// given alpha. Palette colors get the terminal default.
func (c Color) ContrastText(alpha float64) Color {
	if c.fixed {
		return ANSIDefault
	}
	if c.Brightness() < 0.5 {
		return White.WithAlpha(alpha)
	}
	return Black.WithAlpha(alpha)
}

// Hex returns #RRGGBB, or #RRGGBBAA when not opaque. Palette colors return
// their token name (ansi_red, ansi_default, ...).
func (c Color) Hex() string {
	if c.fixed {
		return ANSIName(int(c.ansi))
	}
	r, g, b := c.RGB8()
	// alpha truncates; the epsilon keeps parsed bytes stable
	alpha := int(clamp01(c.A)*255 + 1e-9)
	if alpha >= 255 {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, alpha)
}

// Hex6 returns #RRGGBB ignoring alpha.
func (c Color) Hex6() string {
	if c.fixed {
		return ANSIName(int(c.ansi))
	}
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
