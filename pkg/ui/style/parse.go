package style

import (
	"strings"

	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/ui/color"
)

// Parse reads style markup such as "bold not italic #ffffff on ansi_blue".
// Words are attribute names (optionally preceded by "not"), a foreground
// color, "on" followed by a background color, or link=URL.
func Parse(markup string) (Style, error) {
	var s Style
	words := strings.Fields(markup)

	for i := 0; i < len(words); i++ {
		word := strings.ToLower(words[i])

		switch {
		case word == "not":
			if i+1 >= len(words) {
				return Style{}, styleValue(markup, "'not' must precede an attribute")
			}
			i++
			if !setFlag(&s, strings.ToLower(words[i]), Off) {
				return Style{}, styleValue(markup, "unknown attribute "+words[i])
			}
		case word == "on":
			if i+1 >= len(words) {
				return Style{}, styleValue(markup, "'on' must precede a background color")
			}
			i++
			c, err := color.Parse(words[i])
			if err != nil {
				return Style{}, errors.Wrap(err, errors.ErrCodeStyleValue, "invalid background").
					WithContext("markup", markup)
			}
			s.Background = c
		case strings.HasPrefix(word, "link="):
			s.Link = words[i][len("link="):]
		case setFlag(&s, word, On):
		default:
			c, err := color.Parse(word)
			if err != nil {
				return Style{}, errors.Wrap(err, errors.ErrCodeStyleValue, "invalid foreground").
					WithContext("markup", markup)
			}
			s.Foreground = c
		}
	}
	return s, nil
}

// MustParse is Parse for package-level values.
func MustParse(markup string) Style {
	s, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return s
}

func setFlag(s *Style, name string, f Flag) bool {
	switch name {
	case "bold", "b":
		s.Bold = f
	case "dim", "d":
		s.Dim = f
	case "italic", "i":
		s.Italic = f
	case "underline", "u":
		s.Underline = f
	case "strike", "s":
		s.Strike = f
	default:
		return false
	}
	return true
}

func styleValue(markup, reason string) error {
	return errors.New(errors.ErrCodeStyleValue, reason).WithContext("markup", markup)
}
