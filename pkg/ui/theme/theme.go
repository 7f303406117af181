// Package theme turns a generated palette into the named styles widgets
// paint with.
package theme

import (
	"strconv"
	"strings"

	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/ui/color"
	"github.com/odvcencio/prism/pkg/ui/design"
	"github.com/odvcencio/prism/pkg/ui/style"
	"github.com/odvcencio/prism/pkg/ui/visual"
)

// Theme is a named color system with its palette resolved into styles.
type Theme struct {
	Name    string
	System  *design.ColorSystem
	Palette design.Palette
	Styles  Styles
}

// Styles defines the visual language widgets draw with.
type Styles struct {
	// Canvas layers
	Background    style.Style
	Surface       style.Style
	Panel         style.Style
	SurfaceActive style.Style

	// Text hierarchy
	Text         style.Style
	TextMuted    style.Style
	TextDisabled style.Style

	// Accent colors
	Primary   style.Style
	Secondary style.Style
	Accent    style.Style

	// Semantic colors
	Warning style.Style
	Error   style.Style
	Success style.Style

	// UI elements
	Border        style.Style
	BorderBlurred style.Style
	Cursor        style.Style
	CursorBlurred style.Style
	Hover         style.Style
}

// New generates the palette for cs and resolves the theme's styles.
func New(name string, cs *design.ColorSystem) (*Theme, error) {
	t := &Theme{Name: name, System: cs, Palette: cs.Generate()}

	r := resolver{palette: t.Palette}
	bg := r.color("background", color.Transparent)
	surface := r.color("surface", bg)
	panel := r.color("panel", bg)
	cursor := r.color("highlight-cursor", bg)

	t.Styles = Styles{
		Background:    style.New().WithBackground(bg).WithForeground(r.color("text", bg)),
		Surface:       style.New().WithBackground(surface).WithForeground(r.color("text", surface)),
		Panel:         style.New().WithBackground(panel).WithForeground(r.color("text", panel)),
		SurfaceActive: style.New().WithBackground(r.color("surface-active", bg)),

		Text:         style.New().WithForeground(r.color("text", bg)),
		TextMuted:    style.New().WithForeground(r.color("text-muted", bg)),
		TextDisabled: style.New().WithForeground(r.color("text-disabled", bg)),

		Primary:   style.New().WithForeground(r.color("primary", bg)),
		Secondary: style.New().WithForeground(r.color("secondary", bg)),
		Accent:    style.New().WithForeground(r.color("accent", bg)),

		Warning: style.New().WithForeground(r.color("warning", bg)),
		Error:   style.New().WithForeground(r.color("error", bg)),
		Success: style.New().WithForeground(r.color("success", bg)),

		Border:        style.New().WithForeground(r.color("border", bg)),
		BorderBlurred: style.New().WithForeground(r.color("border-blurred", bg)),
		Cursor: style.New().
			WithBackground(cursor).
			WithForeground(cursor.ContrastText(cs.TextAlpha())).
			WithBold(true),
		CursorBlurred: style.New().WithBackground(r.color("highlight-cursor-blurred", bg)),
		Hover:         style.New().WithBackground(r.color("highlight-hover", bg)),
	}
	if r.err != nil {
		return nil, errors.Wrap(r.err, errors.ErrCodeInvalidColor, "resolve theme palette").
			WithContext("theme", name)
	}
	return t, nil
}

// FromSeeds builds a theme straight from seed colors.
func FromSeeds(name string, seeds design.Seeds) (*Theme, error) {
	cs, err := design.New(seeds)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidColor, "invalid theme seeds").
			WithContext("theme", name)
	}
	return New(name, cs)
}

// Dark reports whether the theme is dark.
func (t *Theme) Dark() bool {
	return t.System.Dark()
}

// Color resolves a palette token against the theme background.
func (t *Theme) Color(token string) (color.Color, error) {
	value, ok := t.Palette[token]
	if !ok {
		return color.Color{}, errors.Newf(errors.ErrCodeInvalidInput, "unknown palette token %q", token).
			WithContext("theme", t.Name)
	}
	bg, err := color.Parse(t.Palette["background"])
	if err != nil {
		return color.Color{}, err
	}
	return ResolveToken(value, bg)
}

// SyntaxTheme derives code highlighting styles from the palette. Dark themes
// use lighter shades so code reads on the surface.
func (t *Theme) SyntaxTheme() visual.SyntaxTheme {
	shade := "-darken-1"
	if t.Dark() {
		shade = "-lighten-2"
	}
	r := resolver{palette: t.Palette}
	surface := r.color("surface", color.Transparent)
	fg := func(token string) style.Style {
		c := r.color(token+shade, surface)
		return style.New().WithForeground(c)
	}

	return visual.SyntaxTheme{
		Background:  style.New().WithBackground(surface),
		Default:     t.Styles.Text,
		Keyword:     fg("accent").WithBold(true),
		TypeName:    fg("secondary"),
		Function:    fg("primary"),
		String:      fg("success"),
		Number:      fg("warning"),
		Comment:     t.Styles.TextMuted.WithItalic(true),
		Operator:    t.Styles.TextMuted,
		Punctuation: t.Styles.TextMuted,
		Builtin:     fg("secondary"),
		Variable:    t.Styles.Text,
		Attribute:   fg("primary"),
		Tag:         fg("accent"),
		Error:       fg("error").WithBold(true),
	}
}

// ResolveToken converts a palette value to a color. "auto N%" picks black
// or white text for background at N% opacity.
func ResolveToken(value string, background color.Color) (color.Color, error) {
	value = strings.TrimSpace(value)
	if rest, ok := strings.CutPrefix(value, "auto"); ok {
		alpha := 1.0
		if pct := strings.TrimSpace(rest); pct != "" {
			n, err := strconv.ParseFloat(strings.TrimSuffix(pct, "%"), 64)
			if err != nil || !strings.HasSuffix(pct, "%") {
				return color.Color{}, errors.Newf(errors.ErrCodeInvalidColor, "invalid auto color %q", value).
					WithRemediation("use 'auto' or 'auto N%' such as 'auto 87%'")
			}
			alpha = n / 100
		}
		return background.ContrastText(alpha), nil
	}
	return color.Parse(value)
}

// resolver resolves palette tokens, remembering the first failure.
type resolver struct {
	palette design.Palette
	err     error
}

func (r *resolver) color(token string, background color.Color) color.Color {
	c, err := ResolveToken(r.palette[token], background)
	if err != nil {
		if r.err == nil {
			r.err = errors.Wrap(err, errors.ErrCodeInvalidColor, "palette token "+token)
		}
		return color.Transparent
	}
	return c
}
