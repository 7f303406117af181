package design

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/ui/color"
)

func TestShades(t *testing.T) {
	shades := Shades(0.15)
	require.Len(t, shades, 7)

	assert.Equal(t, "-darken-3", shades[0].Suffix)
	assert.InDelta(t, -0.225, shades[0].Delta, 1e-12)
	assert.Equal(t, Shade{Suffix: "", Delta: 0}, shades[3])
	assert.Equal(t, "-lighten-1", shades[4].Suffix)
	assert.InDelta(t, 0.075, shades[4].Delta, 1e-12)
	assert.Equal(t, "-lighten-3", shades[6].Suffix)
}

func TestShadeNames(t *testing.T) {
	names := ShadeNames()
	assert.Len(t, names, 13*7)
	assert.Equal(t, "primary-darken-3", names[0])
	assert.Equal(t, "primary", names[3])
	assert.Equal(t, "accent-lighten-3", names[len(names)-1])
	assert.Contains(t, names, "secondary-background-darken-2")
	assert.Contains(t, names, "foreground")
	assert.Len(t, ColorNames(), 13)
	assert.Len(t, DerivedNames(), 9)
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, dark := range []bool{false, true} {
		cs := MustNew(Seeds{Primary: "#004578", Secondary: "#ffa62b", Dark: dark})
		first := cs.Generate()
		second := cs.Generate()
		assert.Equal(t, first, second)
		assert.Len(t, first, 13*7+9)

		again := MustNew(Seeds{Primary: "#004578", Secondary: "#ffa62b", Dark: dark}).Generate()
		assert.Equal(t, first, again)
	}
}

func TestGenerate_LightDefaults(t *testing.T) {
	cs := MustNew(Seeds{Primary: "#004578"})
	p := cs.Generate()

	assert.Equal(t, "#EFEFEF", p["background"])
	assert.Equal(t, "#004578", p["primary"])
	assert.Equal(t, "#F5F5F5", p["surface"])
	assert.Equal(t, "#004578", p["secondary"], "secondary falls back to primary")
	assert.Equal(t, "#004578", p["error"], "error falls back to secondary")
	assert.Equal(t, "#004578", p["highlight-cursor"])
	assert.Equal(t, "#004578", p["border"])
	assert.Equal(t, "#F5F5F5", p["border-blurred"])
	assert.Equal(t, "auto 87%", p["text"])
	assert.Equal(t, "auto 60%", p["text-muted"])
	assert.Equal(t, "auto 38%", p["text-disabled"])

	assert.Equal(t, "#0000000A", p["boost"], "light boost is black at 4%")
	assert.Equal(t, "#0000000C", p["highlight-hover"])
	assert.Equal(t, "#0045784C", p["highlight-cursor-blurred"])

	primary := color.MustParse("#004578")
	surface := color.MustParse("#f5f5f5")
	assert.Equal(t, primary.Lighten(-0.15).Hex(), p["primary-darken-2"])
	assert.Equal(t, primary.Lighten(0.225).Hex(), p["primary-lighten-3"])
	assert.Equal(t, primary.Lighten(0.075).Hex(), p["primary-background-lighten-1"], "light mode uses the plain lighten")
	assert.Equal(t, surface.BlendAlpha(primary, 0.1, 1).Hex(), p["panel"])
	assert.Equal(t, surface.Lighten(0.15/3.5).Hex(), p["surface-active"])

	fg, err := p.Color("foreground")
	require.NoError(t, err)
	assert.Less(t, fg.Brightness(), 0.2, "foreground defaults to the inverse of a light background")
}

func TestGenerate_DarkBackgroundShades(t *testing.T) {
	cs := MustNew(Seeds{Primary: "#004578", Dark: true})
	p := cs.Generate()

	assert.Equal(t, "#1E1E1E", p["background"])
	assert.Equal(t, "#272727", p["surface"])
	assert.Equal(t, "#FFFFFF0A", p["boost"])

	primary := color.MustParse("#004578")
	background := color.MustParse("#1e1e1e")

	plain := primary.Lighten(-0.075).Hex()
	want := background.BlendAlpha(primary, 0.15, 1).BlendAlpha(color.White, 0.15-0.075, 1).Clamped().Hex()

	assert.Equal(t, want, p["primary-background-darken-1"])
	assert.NotEqual(t, plain, p["primary-background-darken-1"])
	assert.Equal(t, plain, p["primary-darken-1"], "ordinary colors still use lighten in dark mode")

	// panel gets boost layered on top in dark mode
	surface := color.MustParse("#272727")
	boost := color.White.WithAlpha(0.04)
	assert.Equal(t, surface.BlendAlpha(primary, 0.1, 1).Add(boost).Hex(), p["panel"])
}

func TestGenerate_FixedPalette(t *testing.T) {
	cs := MustNew(Seeds{Primary: "ansi_blue", Foreground: "ansi_default", Dark: true})
	p := cs.Generate()

	for _, s := range Shades(0.15) {
		assert.Equal(t, "ansi_blue", p["primary"+s.Suffix])
		assert.Equal(t, "ansi_blue", p["primary-background"+s.Suffix])
		assert.Equal(t, "ansi_blue", p["accent"+s.Suffix])
	}
	assert.Equal(t, "ansi_default", p["text"])
	assert.Equal(t, "ansi_default", p["text-muted"])
	assert.Equal(t, "ansi_default", p["text-disabled"])
	assert.Equal(t, "ansi_blue", p["border"])
	assert.Len(t, p, 100)
}

func TestGenerate_CustomSpread(t *testing.T) {
	cs := MustNew(Seeds{Primary: "#336699", LuminositySpread: 0.3})
	p := cs.Generate()
	assert.Equal(t, color.MustParse("#336699").Lighten(0.15).Hex(), p["primary-lighten-1"])
	assert.InDelta(t, 0.3, cs.LuminositySpread(), 1e-12)
	assert.InDelta(t, DefaultTextAlpha, cs.TextAlpha(), 1e-12)
}

func TestNew_InvalidSeed(t *testing.T) {
	_, err := New(Seeds{Primary: "#004578", Warning: "bogus"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidColor))
	assert.True(t, color.IsInvalidColor(err))

	perr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "warning", perr.Context["seed"])
	assert.Equal(t, "bogus", perr.Context["value"])

	_, err = New(Seeds{})
	require.Error(t, err, "primary is required")

	assert.Panics(t, func() { MustNew(Seeds{Primary: "nope"}) })
}

func TestPalette_Keys(t *testing.T) {
	p := MustNew(Seeds{Primary: "#004578"}).Generate()
	keys := p.Keys()
	require.Len(t, keys, 100)
	assert.Equal(t, "primary-darken-3", keys[0])
	assert.Equal(t, "text", keys[91])
	assert.Equal(t, "surface-active", keys[99])

	p["zz-custom"] = "#000000"
	p["aa-custom"] = "#ffffff"
	keys = p.Keys()
	assert.Equal(t, []string{"aa-custom", "zz-custom"}, keys[100:])
}

func TestPalette_Color(t *testing.T) {
	p := MustNew(Seeds{Primary: "#004578"}).Generate()
	c, err := p.Color("primary")
	require.NoError(t, err)
	assert.Equal(t, "#004578", c.Hex())

	_, err = p.Color("text")
	assert.Error(t, err, "contrast tokens are not colors")
}

func TestShowDesign(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	light := MustNew(Seeds{Primary: "#004578"})
	dark := MustNew(Seeds{Primary: "#004578", Dark: true})

	out := ShowDesign(r, light, dark, 100)
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "Light")
	assert.Contains(t, lines[0], "Dark")
	assert.Contains(t, out, "$primary-darken-3")
	assert.Contains(t, out, "$secondary-background-lighten-3")
	assert.Equal(t, 2, strings.Count(out, "$accent-lighten-3"), "one block per column")
	assert.Len(t, lines, 1+len(ShadeNames())*3)
	for i, line := range lines {
		assert.Equal(t, 100, lipgloss.Width(line), "line %d", i)
	}
}

func TestShowDesign_FixedPalette(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	light := MustNew(Seeds{Primary: "ansi_red"})
	dark := MustNew(Seeds{Primary: "ansi_red", Background: "ansi_default", Dark: true})

	out := ShowDesign(r, light, dark, 80)
	assert.Contains(t, out, "$primary")
}
