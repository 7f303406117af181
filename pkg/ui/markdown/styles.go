package markdown

import (
	"github.com/odvcencio/prism/pkg/ui/style"
	"github.com/odvcencio/prism/pkg/ui/theme"
)

// StyleConfig holds the styles used for each markdown element.
type StyleConfig struct {
	Text     style.Style
	Headings [6]style.Style

	Bold          style.Style
	Italic        style.Style
	Strikethrough style.Style
	Code          style.Style
	Link          style.Style
	LinkURL       style.Style

	ListBullet       style.Style
	ListNumber       style.Style
	Blockquote       style.Style
	BlockquoteBorder style.Style
	CodeBlockBorder  style.Style
	CodeBlockLang    style.Style
	HorizontalRule   style.Style

	TableHeader style.Style
	TableCell   style.Style
	TableBorder style.Style
}

// StylesFromTheme derives markdown styles from a theme.
func StylesFromTheme(t *theme.Theme) StyleConfig {
	s := t.Styles
	bold := style.New().WithBold(true)

	return StyleConfig{
		Text: s.Text,
		Headings: [6]style.Style{
			s.Primary.WithBold(true).WithUnderline(true),
			s.Primary.WithBold(true),
			s.Secondary.WithBold(true),
			style.Combine(s.Text, bold),
			style.Combine(s.Text, bold),
			style.Combine(s.TextMuted, bold),
		},
		Bold:             bold,
		Italic:           style.New().WithItalic(true),
		Strikethrough:    style.New().WithStrike(true),
		Code:             s.Accent.WithBackground(s.Panel.Background),
		Link:             s.Primary.WithUnderline(true),
		LinkURL:          s.TextMuted,
		ListBullet:       s.Accent,
		ListNumber:       s.Accent,
		Blockquote:       s.TextMuted.WithItalic(true),
		BlockquoteBorder: s.Border,
		CodeBlockBorder:  s.Border,
		CodeBlockLang:    s.TextMuted.WithBold(true),
		HorizontalRule:   s.TextMuted,
		TableHeader:      style.Combine(s.Text, bold),
		TableCell:        s.Text,
		TableBorder:      s.TextMuted,
	}
}

func (c *StyleConfig) heading(level int) style.Style {
	return c.Headings[min(max(level, 1), len(c.Headings))-1]
}
