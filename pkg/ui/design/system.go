// Package design turns a few seed colors into a complete, graduated palette.
package design

import (
	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/ui/color"
)

const (
	// DefaultLuminositySpread is the lightness range between the darkest and
	// lightest generated shade.
	DefaultLuminositySpread = 0.15
	// DefaultTextAlpha is the opacity of body text.
	DefaultTextAlpha = 0.95
)

// Built-in backgrounds used when a theme leaves them unset.
var (
	DefaultDarkBackground  = color.MustParse("#1e1e1e")
	DefaultDarkSurface     = color.MustParse("#272727")
	DefaultLightBackground = color.MustParse("#efefef")
	DefaultLightSurface    = color.MustParse("#f5f5f5")
)

// Seeds are the textual inputs a theme is defined by. Only Primary is
// required.
type Seeds struct {
	Primary    string `yaml:"primary" json:"primary"`
	Secondary  string `yaml:"secondary,omitempty" json:"secondary,omitempty"`
	Warning    string `yaml:"warning,omitempty" json:"warning,omitempty"`
	Error      string `yaml:"error,omitempty" json:"error,omitempty"`
	Success    string `yaml:"success,omitempty" json:"success,omitempty"`
	Accent     string `yaml:"accent,omitempty" json:"accent,omitempty"`
	Foreground string `yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	Surface    string `yaml:"surface,omitempty" json:"surface,omitempty"`
	Panel      string `yaml:"panel,omitempty" json:"panel,omitempty"`
	Boost      string `yaml:"boost,omitempty" json:"boost,omitempty"`

	Dark bool `yaml:"dark" json:"dark"`

	// LuminositySpread defaults to DefaultLuminositySpread when zero.
	LuminositySpread float64 `yaml:"luminosity_spread,omitempty" json:"luminosity_spread,omitempty"`
	// TextAlpha defaults to DefaultTextAlpha when zero.
	TextAlpha float64 `yaml:"text_alpha,omitempty" json:"text_alpha,omitempty"`
}

// ColorSystem holds parsed seeds. Optional colors stay nil until Generate
// resolves them through their fallbacks.
type ColorSystem struct {
	primary    color.Color
	secondary  *color.Color
	warning    *color.Color
	errorColor *color.Color
	success    *color.Color
	accent     *color.Color
	foreground *color.Color
	background *color.Color
	surface    *color.Color
	panel      *color.Color
	boost      *color.Color

	dark      bool
	spread    float64
	textAlpha float64
}

// New parses every seed. The first seed that fails to parse is reported,
// with the seed name in the error context.
func New(seeds Seeds) (*ColorSystem, error) {
	primary, err := color.Parse(seeds.Primary)
	if err != nil {
		return nil, seedError(err, "primary", seeds.Primary)
	}

	cs := &ColorSystem{
		primary:   primary,
		dark:      seeds.Dark,
		spread:    seeds.LuminositySpread,
		textAlpha: seeds.TextAlpha,
	}
	if cs.spread == 0 {
		cs.spread = DefaultLuminositySpread
	}
	if cs.textAlpha == 0 {
		cs.textAlpha = DefaultTextAlpha
	}

	optional := []struct {
		name string
		spec string
		dst  **color.Color
	}{
		{"secondary", seeds.Secondary, &cs.secondary},
		{"warning", seeds.Warning, &cs.warning},
		{"error", seeds.Error, &cs.errorColor},
		{"success", seeds.Success, &cs.success},
		{"accent", seeds.Accent, &cs.accent},
		{"foreground", seeds.Foreground, &cs.foreground},
		{"background", seeds.Background, &cs.background},
		{"surface", seeds.Surface, &cs.surface},
		{"panel", seeds.Panel, &cs.panel},
		{"boost", seeds.Boost, &cs.boost},
	}
	for _, o := range optional {
		if o.spec == "" {
			continue
		}
		c, err := color.Parse(o.spec)
		if err != nil {
			return nil, seedError(err, o.name, o.spec)
		}
		*o.dst = &c
	}
	return cs, nil
}

// MustNew is New for built-in themes.
func MustNew(seeds Seeds) *ColorSystem {
	cs, err := New(seeds)
	if err != nil {
		panic(err)
	}
	return cs
}

func seedError(err error, name, spec string) error {
	return errors.Wrap(err, errors.ErrCodeInvalidColor, "invalid "+name+" color").
		WithContext("seed", name).
		WithContext("value", spec)
}

// Dark reports whether the system describes a dark theme.
func (cs *ColorSystem) Dark() bool { return cs.dark }

// LuminositySpread returns the shade spread in use.
func (cs *ColorSystem) LuminositySpread() float64 { return cs.spread }

// TextAlpha returns the body text opacity.
func (cs *ColorSystem) TextAlpha() float64 { return cs.textAlpha }

// Primary returns the primary seed.
func (cs *ColorSystem) Primary() color.Color { return cs.primary }

// resolved is the full set of base colors after fallbacks.
type resolved struct {
	primary, secondary, warning, errorColor, success, accent color.Color
	foreground, background, surface, panel, boost            color.Color
}

func or(c *color.Color, fallback color.Color) color.Color {
	if c != nil {
		return *c
	}
	return fallback
}

// resolve applies the fallback chain. Order matters: later fallbacks read
// earlier results.
func (cs *ColorSystem) resolve() resolved {
	var r resolved
	r.primary = cs.primary
	r.secondary = or(cs.secondary, r.primary)
	r.warning = or(cs.warning, r.primary)
	r.errorColor = or(cs.errorColor, r.secondary)
	r.success = or(cs.success, r.secondary)
	r.accent = or(cs.accent, r.primary)

	if cs.dark {
		r.background = or(cs.background, DefaultDarkBackground)
		r.surface = or(cs.surface, DefaultDarkSurface)
	} else {
		r.background = or(cs.background, DefaultLightBackground)
		r.surface = or(cs.surface, DefaultLightSurface)
	}

	r.foreground = or(cs.foreground, r.background.Inverse())
	r.boost = or(cs.boost, r.background.ContrastText(1).WithAlpha(0.04))

	if cs.panel != nil {
		r.panel = *cs.panel
	} else {
		r.panel = r.surface.BlendAlpha(r.primary, 0.1, 1)
		if cs.dark {
			r.panel = r.panel.Add(r.boost)
		}
	}
	return r
}
