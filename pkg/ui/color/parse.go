package color

import (
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/odvcencio/prism/pkg/errors"
)

var ansiNames = [...]string{
	"ansi_black",
	"ansi_red",
	"ansi_green",
	"ansi_yellow",
	"ansi_blue",
	"ansi_magenta",
	"ansi_cyan",
	"ansi_white",
	"ansi_bright_black",
	"ansi_bright_red",
	"ansi_bright_green",
	"ansi_bright_yellow",
	"ansi_bright_blue",
	"ansi_bright_magenta",
	"ansi_bright_cyan",
	"ansi_bright_white",
}

const ansiDefaultName = "ansi_default"

// ANSIName returns the token for a palette index.
func ANSIName(index int) string {
	if index >= 0 && index < len(ansiNames) {
		return ansiNames[index]
	}
	return ansiDefaultName
}

// ANSITokens lists every accepted palette token, default first.
func ANSITokens() []string {
	tokens := make([]string, 0, len(ansiNames)+1)
	tokens = append(tokens, ansiDefaultName)
	return append(tokens, ansiNames[:]...)
}

func lookupANSI(token string) (int, bool) {
	if token == ansiDefaultName {
		return -1, true
	}
	for i, name := range ansiNames {
		if name == token {
			return i, true
		}
	}
	return 0, false
}

// Parse reads a color specification: #rgb, #rgba, #rrggbb, #rrggbbaa, a CSS
// color name, "transparent", or an ANSI palette token such as ansi_red.
func Parse(spec string) (Color, error) {
	token := strings.ToLower(strings.TrimSpace(spec))

	switch {
	case token == "":
		return Color{}, invalid(spec, "empty color")
	case strings.HasPrefix(token, "#"):
		if c, ok := parseHex(token[1:]); ok {
			return c, nil
		}
		return Color{}, invalid(spec, "malformed hex color")
	case token == "transparent":
		return Transparent, nil
	case strings.HasPrefix(token, "ansi_"):
		if index, ok := lookupANSI(token); ok {
			return ANSIColor(index), nil
		}
		return Color{}, invalid(spec, "unknown ANSI color")
	}

	if rgba, ok := colornames.Map[token]; ok {
		return RGB(rgba.R, rgba.G, rgba.B), nil
	}
	return Color{}, invalid(spec, "unrecognized color")
}

// MustParse is Parse for package-level values; it panics on bad input.
func MustParse(spec string) Color {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// IsInvalidColor reports whether err came from a failed Parse.
func IsInvalidColor(err error) bool {
	return errors.IsCode(err, errors.ErrCodeInvalidColor)
}

func invalid(spec, reason string) error {
	return errors.Newf(errors.ErrCodeInvalidColor, "%s %q", reason, spec).
		WithContext("spec", spec).
		WithRemediation(
			"use #rgb, #rgba, #rrggbb or #rrggbbaa",
			"use a CSS color name such as 'teal'",
			"use an ANSI token such as 'ansi_red' or 'ansi_default'",
		)
}

func parseHex(digits string) (Color, bool) {
	switch len(digits) {
	case 3, 4:
		expanded := make([]byte, 0, len(digits)*2)
		for i := 0; i < len(digits); i++ {
			expanded = append(expanded, digits[i], digits[i])
		}
		digits = string(expanded)
	case 6, 8:
	default:
		return Color{}, false
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, false
	}

	if len(digits) == 6 {
		return RGB(uint8(value>>16), uint8(value>>8), uint8(value)), true
	}
	return RGBA(uint8(value>>24), uint8(value>>16), uint8(value>>8), float64(uint8(value))/255), true
}
