package visual

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/odvcencio/prism/pkg/ui/color"
	"github.com/odvcencio/prism/pkg/ui/strip"
	"github.com/odvcencio/prism/pkg/ui/style"
)

// SyntaxTheme maps token categories to styles.
type SyntaxTheme struct {
	Background  style.Style
	Default     style.Style
	Keyword     style.Style
	TypeName    style.Style
	Function    style.Style
	String      style.Style
	Number      style.Style
	Comment     style.Style
	Operator    style.Style
	Punctuation style.Style
	Builtin     style.Style
	Variable    style.Style
	Attribute   style.Style
	Tag         style.Style
	Error       style.Style
}

// DefaultSyntaxTheme uses the terminal's own palette, so it reads on any
// background.
func DefaultSyntaxTheme() SyntaxTheme {
	fg := func(index int) style.Style {
		return style.New().WithForeground(color.ANSIColor(index))
	}
	return SyntaxTheme{
		Keyword:     fg(5).WithBold(true),
		TypeName:    fg(6),
		Function:    fg(4),
		String:      fg(2),
		Number:      fg(3),
		Comment:     fg(8).WithItalic(true),
		Operator:    fg(7),
		Punctuation: fg(8),
		Builtin:     fg(6),
		Attribute:   fg(4),
		Tag:         fg(5),
		Error:       fg(1).WithBold(true),
	}
}

// StyleFor returns the style for a token type.
func (t SyntaxTheme) StyleFor(ttype chroma.TokenType) style.Style {
	if ttype == chroma.Error {
		return t.Error
	}
	switch {
	case ttype.InCategory(chroma.Comment):
		return t.Comment
	case ttype.InCategory(chroma.Keyword):
		return t.Keyword
	case ttype.InCategory(chroma.LiteralString):
		return t.String
	case ttype.InCategory(chroma.LiteralNumber):
		return t.Number
	case ttype.InCategory(chroma.Operator):
		return t.Operator
	case ttype.InCategory(chroma.Punctuation):
		return t.Punctuation
	case ttype.InCategory(chroma.Name):
		switch ttype {
		case chroma.NameFunction, chroma.NameFunctionMagic:
			return t.Function
		case chroma.NameClass, chroma.NameNamespace:
			return t.TypeName
		case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
			return t.Builtin
		case chroma.NameVariable, chroma.NameVariableClass, chroma.NameVariableGlobal, chroma.NameVariableInstance, chroma.NameVariableMagic:
			return t.Variable
		case chroma.NameTag:
			return t.Tag
		case chroma.NameAttribute:
			return t.Attribute
		case chroma.NameConstant:
			return t.Number
		}
	}
	return t.Default
}

// Syntax is highlighted source code. It does not wrap unless asked to.
type Syntax struct {
	content  Content
	language string
	theme    SyntaxTheme
	wrap     bool
}

// NewSyntax highlights code. An unknown language is guessed from the code,
// then falls back to plain text.
func NewSyntax(code, language string, theme SyntaxTheme) Syntax {
	code = strings.TrimSuffix(code, "\n")

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	name := lexer.Config().Name
	lexer = chroma.Coalesce(lexer)

	s := Syntax{language: name, theme: theme}

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		s.content = Styled(code, theme.Default)
		return s
	}

	var text strings.Builder
	var spans []Span
	for token := iter(); token != chroma.EOF; token = iter() {
		if token.Value == "" {
			continue
		}
		st := theme.StyleFor(token.Type)
		start := text.Len()
		text.WriteString(token.Value)
		if st.IsZero() {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].End == start && spans[n-1].Style == st {
			spans[n-1].End = text.Len()
			continue
		}
		spans = append(spans, Span{Start: start, End: text.Len(), Style: st})
	}

	// the lexer may add a final newline of its own
	out := text.String()
	if len(out) > len(code) {
		out = out[:len(code)]
		for i := range spans {
			spans[i].End = min(spans[i].End, len(out))
		}
	}
	s.content = Content{text: out, spans: spans}
	return s
}

// Language returns the name of the lexer that was used.
func (s Syntax) Language() string {
	return s.language
}

// Content returns the highlighted text.
func (s Syntax) Content() Content {
	return s.content
}

// WithWrap returns a copy that soft-wraps long lines.
func (s Syntax) WithWrap(wrap bool) Syntax {
	s.wrap = wrap
	return s
}

// RenderStrips implements Visual. The theme background sits between the
// base style and the code.
func (s Syntax) RenderStrips(width int, opts RenderOptions) []strip.Strip {
	opts.BaseStyle = style.Combine(opts.BaseStyle, s.theme.Background)
	if !s.wrap {
		opts.NoWrap = true
	}
	return s.content.RenderStrips(width, opts)
}

func (s Syntax) OptimalWidth(tabSize int) int {
	return s.content.OptimalWidth(tabSize)
}

// MinimalWidth implements Visual. Unwrapped code needs its full width.
func (s Syntax) MinimalWidth(tabSize int) int {
	if !s.wrap {
		return s.content.OptimalWidth(tabSize)
	}
	return s.content.MinimalWidth(tabSize)
}

func (s Syntax) Height(width int) int {
	if !s.wrap {
		return strings.Count(s.content.text, "\n") + 1
	}
	return s.content.Height(width)
}
