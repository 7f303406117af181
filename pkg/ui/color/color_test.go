package color

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelTolerance = 2.0 / 255

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		hex  string
	}{
		{"#004578", "#004578"},
		{"#abc", "#AABBCC"},
		{"#ABCDEF", "#ABCDEF"},
		{"#11223380", "#11223380"},
		{"#fff8", "#FFFFFF88"},
		{"  teal ", "#008080"},
		{"CornflowerBlue", "#6495ED"},
		{"transparent", "#00000000"},
		{"ansi_red", "ansi_red"},
		{"ansi_bright_white", "ansi_bright_white"},
		{"ansi_default", "ansi_default"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, c.Hex())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, spec := range []string{"", "#12", "#12345", "#gggggg", "notacolor", "ansi_purple", "rgb(1,2,3)"} {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			require.Error(t, err)
			assert.True(t, IsInvalidColor(err), "error should carry the invalid color code: %v", err)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.NotPanics(t, func() { MustParse("#000") })
}

func TestANSI(t *testing.T) {
	c := MustParse("ansi_blue")
	index, ok := c.ANSI()
	assert.True(t, ok)
	assert.Equal(t, 4, index)

	index, ok = ANSIDefault.ANSI()
	assert.True(t, ok)
	assert.Equal(t, -1, index)

	_, ok = White.ANSI()
	assert.False(t, ok)

	assert.Len(t, ANSITokens(), 17)

	for _, out := range []int{-2, 16, 127, 200} {
		index, ok := ANSIColor(out).ANSI()
		assert.True(t, ok)
		assert.Equal(t, -1, index, "ANSIColor(%d)", out)
		assert.Equal(t, "ansi_default", ANSIColor(out).Hex())
	}
}

func TestFixedPaletteIsOpaqueToBlending(t *testing.T) {
	fixed := []Color{MustParse("ansi_green"), ANSIDefault, ANSIColor(13)}
	other := MustParse("#336699")

	for _, c := range fixed {
		t.Run(c.Hex(), func(t *testing.T) {
			want := c.Hex()
			ops := map[string]Color{
				"lighten":    c.Lighten(0.2),
				"darken":     c.Darken(0.2),
				"blend":      c.Blend(other, 0.5),
				"blendAlpha": c.BlendAlpha(other, 0.5, 0.3),
				"withAlpha":  c.WithAlpha(0.1),
				"inverse":    c.Inverse(),
				"clamped":    c.Clamped(),
				"addSemi":    c.Add(other.WithAlpha(0.5)),
			}
			for name, got := range ops {
				assert.Equal(t, want, got.Hex(), name)
			}
			assert.Equal(t, want, c.Hex6())
		})
	}
}

func TestLighten(t *testing.T) {
	base := MustParse("#336699")

	assert.Equal(t, base, base.Lighten(0), "zero delta must be exact")

	lighter := base.Lighten(0.1)
	darker := base.Lighten(-0.1)
	assert.Greater(t, lighter.Brightness(), base.Brightness())
	assert.Less(t, darker.Brightness(), base.Brightness())
	assert.Equal(t, base.A, lighter.A)

	assert.GreaterOrEqual(t, base.Lighten(5).Brightness(), lighter.Brightness())
	assert.LessOrEqual(t, base.Lighten(-5).Brightness(), darker.Brightness())
}

func TestLighten_ComposesAdditively(t *testing.T) {
	colors := []string{"#808080", "#336699", "#996633", "#4a7a4a", "#6b5b95"}
	deltas := [][2]float64{{0.05, 0.05}, {-0.05, 0.1}, {0.075, -0.075}, {-0.03, -0.04}}

	for _, spec := range colors {
		c := MustParse(spec)
		for _, d := range deltas {
			twice := c.Lighten(d[0]).Lighten(d[1])
			once := c.Lighten(d[0] + d[1])
			assert.InDelta(t, once.R, twice.R, channelTolerance, "%s %v red", spec, d)
			assert.InDelta(t, once.G, twice.G, channelTolerance, "%s %v green", spec, d)
			assert.InDelta(t, once.B, twice.B, channelTolerance, "%s %v blue", spec, d)
		}
	}
}

func TestBlend(t *testing.T) {
	black := Black
	white := White

	assert.Equal(t, black, black.Blend(white, 0))
	assert.Equal(t, white, black.Blend(white, 1))
	assert.Equal(t, white, black.Blend(white, 1.5))

	mid := black.Blend(white, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-9)
	assert.InDelta(t, 1.0, mid.A, 1e-9)

	halfAlpha := black.Blend(white.WithAlpha(0), 0.5)
	assert.InDelta(t, 0.5, halfAlpha.A, 1e-9)

	overridden := black.BlendAlpha(white, 0.25, 0.4)
	assert.InDelta(t, 0.25, overridden.R, 1e-9)
	assert.InDelta(t, 0.4, overridden.A, 1e-9)

	assert.InDelta(t, 0.4, black.BlendAlpha(white, 0, 0.4).A, 1e-9)

	fixedDest := MustParse("ansi_red")
	assert.Equal(t, fixedDest, black.Blend(fixedDest, 0.3))
}

func TestAdd(t *testing.T) {
	base := MustParse("#204060")

	t.Run("transparent over is identity", func(t *testing.T) {
		assert.Equal(t, base, base.Add(Transparent))
		assert.Equal(t, base, base.Add(White.WithAlpha(0)))
	})

	t.Run("opaque over replaces", func(t *testing.T) {
		assert.Equal(t, White, base.Add(White))
	})

	t.Run("translucent over opaque", func(t *testing.T) {
		got := base.Add(White.WithAlpha(0.25))
		want := base.BlendAlpha(White, 0.25, 1)
		assert.InDelta(t, want.R, got.R, 1e-12)
		assert.InDelta(t, want.G, got.G, 1e-12)
		assert.InDelta(t, want.B, got.B, 1e-12)
		assert.InDelta(t, 1.0, got.A, 1e-12)
	})

	t.Run("translucent over translucent", func(t *testing.T) {
		under := MustParse("#FF000080")
		over := MustParse("#0000FF80")
		got := under.Add(over)
		a := over.A + under.A*(1-over.A)
		assert.InDelta(t, a, got.A, 1e-12)
		assert.InDelta(t, under.A*(1-over.A)/a, got.R, 1e-12)
		assert.InDelta(t, over.A/a, got.B, 1e-12)
	})

	t.Run("both transparent", func(t *testing.T) {
		assert.True(t, Transparent.Add(Transparent).IsTransparent())
	})

	t.Run("fixed over wins", func(t *testing.T) {
		fixed := MustParse("ansi_cyan")
		assert.Equal(t, fixed, base.Add(fixed))
	})
}

func TestInverse(t *testing.T) {
	light := MustParse("#efefef")
	inv := light.Inverse()
	assert.Less(t, inv.Brightness(), 0.2)

	dark := MustParse("#1e1e1e")
	assert.Greater(t, dark.Inverse().Brightness(), 0.8)

	half := MustParse("#336699").WithAlpha(0.5)
	assert.InDelta(t, 0.5, half.Inverse().A, 1e-12)
}

func TestContrastText(t *testing.T) {
	assert.Equal(t, White.WithAlpha(0.9), MustParse("#101010").ContrastText(0.9))
	assert.Equal(t, Black.WithAlpha(0.9), MustParse("#f0f0f0").ContrastText(0.9))
	assert.Equal(t, ANSIDefault, MustParse("ansi_black").ContrastText(1))
}

func TestClamped(t *testing.T) {
	c := FromNormalized(1.3, -0.2, 0.5, 1.7).Clamped()
	assert.Equal(t, 1.0, c.R)
	assert.Equal(t, 0.0, c.G)
	assert.Equal(t, 0.5, c.B)
	assert.Equal(t, 1.0, c.A)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#FF8040", RGB(255, 128, 64).Hex())
	assert.Equal(t, "#FF80400A", RGB(255, 128, 64).WithAlpha(0.04).Hex())
	assert.Equal(t, "#FF8040", RGB(255, 128, 64).WithAlpha(0.04).Hex6())
	assert.Equal(t, "#FFFFFF", FromNormalized(1.2, 1.5, 2, 1).Hex())
	assert.Equal(t, RGB(1, 2, 3).Hex(), RGB(1, 2, 3).String())

	// alpha bytes truncate rather than round
	assert.Equal(t, "#0000000C", Black.WithAlpha(0.05).Hex())
	assert.Equal(t, "#0045784C", MustParse("#004578").WithAlpha(0.3).Hex())
	assert.Equal(t, "#FFFFFF80", MustParse("#ffffff80").Hex())
}

func TestHexRoundTrip(t *testing.T) {
	for _, spec := range []string{"#000000", "#7F7F7F", "#12345678", "#FFFFFF00"} {
		c := MustParse(spec)
		again := MustParse(c.Hex())
		assert.Equal(t, c.Hex(), again.Hex())
	}
}

func TestBrightness(t *testing.T) {
	assert.InDelta(t, 1.0, White.Brightness(), 1e-12)
	assert.InDelta(t, 0.0, Black.Brightness(), 1e-12)
	assert.False(t, math.IsNaN(FromNormalized(math.NaN(), 0, 0, 1).Brightness()))
}
