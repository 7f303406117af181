package design

import (
	"maps"
	"slices"
	"strconv"

	"github.com/odvcencio/prism/pkg/ui/color"
)

// NumberOfShades is how many darker and lighter steps each color gets.
const NumberOfShades = 3

// Palette maps token names to a hex color, an ANSI token or an
// "auto N%" contrast token.
type Palette map[string]string

// colorNames lists the generated base colors in output order.
var colorNames = []string{
	"primary",
	"secondary",
	"primary-background",
	"secondary-background",
	"background",
	"foreground",
	"panel",
	"boost",
	"surface",
	"warning",
	"error",
	"success",
	"accent",
}

// darkShaded colors use the background-blend progression in dark mode.
var darkShaded = map[string]bool{
	"primary-background":   true,
	"secondary-background": true,
}

var derivedNames = []string{
	"text",
	"text-muted",
	"text-disabled",
	"highlight-cursor",
	"highlight-cursor-blurred",
	"border",
	"border-blurred",
	"highlight-hover",
	"surface-active",
}

// Shade is one step of a color's lightness scale.
type Shade struct {
	Suffix string
	Delta  float64
}

// Shades returns the seven (suffix, delta) steps from -darken-3 to
// -lighten-3 for a spread. Step n shifts lightness by n*spread/2.
func Shades(spread float64) []Shade {
	step := spread / 2
	out := make([]Shade, 0, 2*NumberOfShades+1)
	for n := -NumberOfShades; n <= NumberOfShades; n++ {
		var suffix string
		switch {
		case n < 0:
			suffix = "-darken-" + strconv.Itoa(-n)
		case n > 0:
			suffix = "-lighten-" + strconv.Itoa(n)
		}
		out = append(out, Shade{Suffix: suffix, Delta: float64(n) * step})
	}
	return out
}

// ColorNames returns the base color names in generation order.
func ColorNames() []string {
	return slices.Clone(colorNames)
}

// ShadeNames returns every shade token in generation order.
func ShadeNames() []string {
	shades := Shades(DefaultLuminositySpread)
	out := make([]string, 0, len(colorNames)*len(shades))
	for _, name := range colorNames {
		for _, s := range shades {
			out = append(out, name+s.Suffix)
		}
	}
	return out
}

// DerivedNames returns the semantic tokens that follow the shades.
func DerivedNames() []string {
	return slices.Clone(derivedNames)
}

// Generate produces the full palette. It is a pure function of the seeds:
// repeated calls return equal palettes.
func (cs *ColorSystem) Generate() Palette {
	r := cs.resolve()
	base := map[string]color.Color{
		"primary":              r.primary,
		"secondary":            r.secondary,
		"primary-background":   r.primary,
		"secondary-background": r.secondary,
		"background":           r.background,
		"foreground":           r.foreground,
		"panel":                r.panel,
		"boost":                r.boost,
		"surface":              r.surface,
		"warning":              r.warning,
		"error":                r.errorColor,
		"success":              r.success,
		"accent":               r.accent,
	}

	shades := Shades(cs.spread)
	out := make(Palette, len(colorNames)*len(shades)+len(derivedNames))

	for _, name := range colorNames {
		c := base[name]
		for _, s := range shades {
			out[name+s.Suffix] = cs.shade(name, c, r.background, s.Delta)
		}
	}

	text := [...]string{"auto 87%", "auto 60%", "auto 38%"}
	if r.foreground.IsFixed() {
		text = [...]string{"ansi_default", "ansi_default", "ansi_default"}
	}
	out["text"] = text[0]
	out["text-muted"] = text[1]
	out["text-disabled"] = text[2]

	out["highlight-cursor"] = r.accent.Hex()
	out["highlight-cursor-blurred"] = r.accent.WithAlpha(0.3).Hex()
	out["border"] = r.accent.Hex()
	out["border-blurred"] = r.surface.Hex()
	out["highlight-hover"] = r.boost.WithAlpha(0.05).Hex()
	// divisor kept at 3.5: lands between surface and surface-lighten-1
	out["surface-active"] = r.surface.Lighten(cs.spread / 3.5).Hex()

	return out
}

func (cs *ColorSystem) shade(name string, c, background color.Color, delta float64) string {
	switch {
	case c.IsFixed():
		return c.Hex()
	case cs.dark && darkShaded[name]:
		muted := background.BlendAlpha(c, 0.15, 1)
		return muted.BlendAlpha(color.White, cs.spread+delta, 1).Clamped().Hex()
	default:
		return c.Lighten(delta).Hex()
	}
}

// Keys returns the palette's tokens: generated tokens in generation order,
// then any others sorted.
func (p Palette) Keys() []string {
	out := make([]string, 0, len(p))
	known := make(map[string]bool, len(p))
	for _, name := range append(ShadeNames(), derivedNames...) {
		if _, ok := p[name]; ok {
			out = append(out, name)
			known[name] = true
		}
	}
	var extra []string
	for name := range maps.Keys(p) {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// Color parses a palette entry. Contrast tokens ("auto N%") are not colors
// and fail; resolve them against a background instead.
func (p Palette) Color(name string) (color.Color, error) {
	return color.Parse(p[name])
}
