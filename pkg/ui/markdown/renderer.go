// Package markdown renders CommonMark (with GitHub extensions) into a
// styled visual.
package markdown

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/odvcencio/prism/pkg/ui/strip"
	"github.com/odvcencio/prism/pkg/ui/style"
	"github.com/odvcencio/prism/pkg/ui/theme"
	"github.com/odvcencio/prism/pkg/ui/visual"
)

const (
	bullet    = "• "
	ruleWidth = 32
)

// Renderer turns markdown source into a Markdown visual.
type Renderer struct {
	md     goldmark.Markdown
	cfg    StyleConfig
	syntax visual.SyntaxTheme
}

// NewRenderer creates a renderer styled by t.
func NewRenderer(t *theme.Theme) *Renderer {
	return NewRendererWithConfig(StylesFromTheme(t), t.SyntaxTheme())
}

// NewRendererWithConfig creates a renderer from explicit styles.
func NewRendererWithConfig(cfg StyleConfig, syntax visual.SyntaxTheme) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Renderer{md: md, cfg: cfg, syntax: syntax}
}

// Render parses source and lays it out as lines of styled content.
func (r *Renderer) Render(source string) Markdown {
	src := []byte(source)
	root := r.md.Parser().Parse(text.NewReader(src))

	state := &renderState{cfg: &r.cfg, syntax: r.syntax, source: src, base: r.cfg.Text}
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		state.renderBlock(node, false)
	}
	state.flushLine(false)
	state.trimTrailingBlankLines()

	parts := make([]visual.Content, 0, 2*len(state.lines))
	for i, line := range state.lines {
		if i > 0 {
			parts = append(parts, visual.NewContent("\n"))
		}
		parts = append(parts, line)
	}
	return Markdown{content: visual.Concat(parts...)}
}

// Markdown is rendered markdown. It implements visual.Visual; long lines
// soft-wrap.
type Markdown struct {
	content visual.Content
}

// Content returns the styled text.
func (m Markdown) Content() visual.Content {
	return m.content
}

func (m Markdown) RenderStrips(width int, opts visual.RenderOptions) []strip.Strip {
	return m.content.RenderStrips(width, opts)
}

func (m Markdown) OptimalWidth(tabSize int) int {
	return m.content.OptimalWidth(tabSize)
}

func (m Markdown) MinimalWidth(tabSize int) int {
	return m.content.MinimalWidth(tabSize)
}

func (m Markdown) Height(width int) int {
	return m.content.Height(width)
}

// prefixPart is drawn at the start of every line inside a block. List
// bullets show once, then hang as spaces.
type prefixPart struct {
	first, rest visual.Content
	used        bool
}

type renderState struct {
	cfg    *StyleConfig
	syntax visual.SyntaxTheme
	source []byte
	base   style.Style

	lines   []visual.Content
	current visual.Content
	prefix  []*prefixPart
}

func (s *renderState) appendText(text string, st style.Style) {
	if text == "" {
		return
	}
	s.current = s.current.Append(text, st)
}

func (s *renderState) flushLine(force bool) {
	if s.current.Text() == "" && !force {
		return
	}
	parts := make([]visual.Content, 0, len(s.prefix)+1)
	for _, p := range s.prefix {
		if p.used {
			parts = append(parts, p.rest)
			continue
		}
		parts = append(parts, p.first)
		p.used = true
	}
	s.lines = append(s.lines, visual.Concat(append(parts, s.current)...))
	s.current = visual.Content{}
}

func (s *renderState) lastBlank() bool {
	return len(s.lines) > 0 && s.lines[len(s.lines)-1].Text() == ""
}

func (s *renderState) addSpacer() {
	if len(s.lines) == 0 || s.lastBlank() {
		return
	}
	s.lines = append(s.lines, visual.Content{})
}

func (s *renderState) trimTrailingBlankLines() {
	for s.lastBlank() {
		s.lines = s.lines[:len(s.lines)-1]
	}
}

func (s *renderState) withPrefix(p *prefixPart, fn func()) {
	s.prefix = append(s.prefix, p)
	fn()
	s.prefix = s.prefix[:len(s.prefix)-1]
}

func (s *renderState) withBase(base style.Style, fn func()) {
	prev := s.base
	s.base = base
	fn()
	s.base = prev
}

func (s *renderState) renderBlock(node ast.Node, tight bool) {
	switch n := node.(type) {
	case *ast.Paragraph:
		s.renderInlineChildren(n, s.base)
		s.flushLine(false)
		if !tight {
			s.addSpacer()
		}

	case *ast.TextBlock:
		s.renderInlineChildren(n, s.base)
		s.flushLine(false)

	case *ast.Heading:
		s.flushLine(false)
		s.renderInlineChildren(n, style.Combine(s.base, s.cfg.heading(n.Level)))
		s.flushLine(false)
		s.addSpacer()

	case *ast.Blockquote:
		bar := visual.Styled("│ ", s.cfg.BlockquoteBorder)
		s.withPrefix(&prefixPart{first: bar, rest: bar}, func() {
			s.withBase(style.Combine(s.base, s.cfg.Blockquote), func() {
				for child := n.FirstChild(); child != nil; child = child.NextSibling() {
					s.renderBlock(child, tight)
				}
			})
		})
		s.addSpacer()

	case *ast.List:
		s.renderList(n)
		if !tight {
			s.addSpacer()
		}

	case *ast.FencedCodeBlock:
		language := ""
		if n.Info != nil {
			language = string(n.Language(s.source))
		}
		s.renderCodeBlock(n, language)
		s.addSpacer()

	case *ast.CodeBlock:
		s.renderCodeBlock(n, "")
		s.addSpacer()

	case *ast.ThematicBreak:
		s.flushLine(false)
		s.appendText(strings.Repeat("─", ruleWidth), s.cfg.HorizontalRule)
		s.flushLine(true)
		s.addSpacer()

	case *extast.Table:
		s.renderTable(n)
		s.addSpacer()

	case *ast.HTMLBlock:
		// raw HTML has no terminal rendering

	default:
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			s.renderBlock(child, tight)
		}
	}
}

func (s *renderState) renderList(list *ast.List) {
	index := list.Start
	if index == 0 {
		index = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker, markerStyle := bullet, s.cfg.ListBullet
		if list.IsOrdered() {
			marker, markerStyle = fmt.Sprintf("%d. ", index), s.cfg.ListNumber
		}
		p := &prefixPart{
			first: visual.Styled(marker, markerStyle),
			rest:  visual.NewContent(strings.Repeat(" ", runewidth.StringWidth(marker))),
		}
		s.withPrefix(p, func() {
			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				s.renderBlock(child, list.IsTight)
			}
			if !p.used {
				s.flushLine(true)
			}
		})
		index++
		if !list.IsTight {
			s.addSpacer()
		}
	}
}

func (s *renderState) renderCodeBlock(n ast.Node, language string) {
	s.flushLine(false)

	var code strings.Builder
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		code.Write(seg.Value(s.source))
	}

	bar := visual.Styled("│ ", s.cfg.CodeBlockBorder)
	s.withPrefix(&prefixPart{first: bar, rest: bar}, func() {
		if language != "" {
			s.appendText(language, s.cfg.CodeBlockLang)
			s.flushLine(true)
		}

		highlighted := visual.NewSyntax(code.String(), language, s.syntax).Content()
		body := highlighted.Text()
		for start := 0; start <= len(body); {
			end := strings.IndexByte(body[start:], '\n')
			if end < 0 {
				end = len(body)
			} else {
				end += start
			}
			s.current = onBackground(highlighted.Slice(start, end), s.syntax.Background)
			s.flushLine(true)
			start = end + 1
		}
	})
}

// onBackground puts bg under every span of c.
func onBackground(c visual.Content, bg style.Style) visual.Content {
	out := visual.Styled(c.Text(), bg)
	for _, sp := range c.Spans() {
		out = out.Stylize(sp.Start, sp.End, sp.Style)
	}
	return out
}

func (s *renderState) renderTable(table *extast.Table) {
	s.flushLine(false)

	var (
		rows   [][]string
		widths []int
	)
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			i := len(cells)
			text := collectPlainText(cell, s.source)
			cells = append(cells, text)
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(text))
		}
		rows = append(rows, cells)
	}

	for r, cells := range rows {
		cellStyle := s.cfg.TableCell
		if r == 0 {
			cellStyle = s.cfg.TableHeader
		}
		for i, w := range widths {
			if i > 0 {
				s.appendText(" │ ", s.cfg.TableBorder)
			}
			var text string
			if i < len(cells) {
				text = cells[i]
			}
			s.appendText(align(text, w, alignment(table, i)), cellStyle)
		}
		s.flushLine(true)

		if r == 0 {
			for i, w := range widths {
				if i > 0 {
					s.appendText("─┼─", s.cfg.TableBorder)
				}
				s.appendText(strings.Repeat("─", w), s.cfg.TableBorder)
			}
			s.flushLine(true)
		}
	}
}

func alignment(table *extast.Table, column int) extast.Alignment {
	if column < len(table.Alignments) {
		return table.Alignments[column]
	}
	return extast.AlignNone
}

func align(text string, width int, a extast.Alignment) string {
	pad := width - runewidth.StringWidth(text)
	if pad <= 0 {
		return text
	}
	switch a {
	case extast.AlignRight:
		return strings.Repeat(" ", pad) + text
	case extast.AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}

func (s *renderState) renderInlineChildren(node ast.Node, st style.Style) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		s.renderInline(child, st)
	}
}

func (s *renderState) renderInline(node ast.Node, st style.Style) {
	switch n := node.(type) {
	case *ast.Text:
		s.appendText(string(n.Segment.Value(s.source)), st)
		if n.SoftLineBreak() {
			s.appendText(" ", st)
		}
		if n.HardLineBreak() {
			s.flushLine(true)
		}

	case *ast.String:
		s.appendText(string(n.Value), st)

	case *ast.CodeSpan:
		s.appendText(collectPlainText(n, s.source), style.Combine(st, s.cfg.Code))

	case *ast.Emphasis:
		inline := s.cfg.Italic
		if n.Level >= 2 {
			inline = s.cfg.Bold
		}
		s.renderInlineChildren(n, style.Combine(st, inline))

	case *extast.Strikethrough:
		s.renderInlineChildren(n, style.Combine(st, s.cfg.Strikethrough))

	case *ast.Link:
		dest := string(n.Destination)
		s.renderInlineChildren(n, style.Combine(st, s.cfg.Link).WithLink(dest))
		if dest != "" && dest != collectPlainText(n, s.source) {
			s.appendText(" ("+dest+")", s.cfg.LinkURL)
		}

	case *ast.AutoLink:
		url := string(n.URL(s.source))
		s.appendText(url, style.Combine(st, s.cfg.Link).WithLink(url))

	case *ast.Image:
		s.renderInlineChildren(n, style.Combine(st, s.cfg.Link))
		if dest := string(n.Destination); dest != "" {
			s.appendText(" ("+dest+")", s.cfg.LinkURL)
		}

	case *extast.TaskCheckBox:
		box := "[ ] "
		if n.IsChecked {
			box = "[x] "
		}
		s.appendText(box, s.cfg.ListBullet)

	case *ast.RawHTML:

	default:
		s.renderInlineChildren(node, st)
	}
}

func collectPlainText(node ast.Node, source []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			walk(child)
		}
	}
	walk(node)
	return b.String()
}
