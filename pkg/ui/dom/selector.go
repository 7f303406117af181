package dom

import (
	"strings"
	"unicode"

	"github.com/odvcencio/prism/pkg/errors"
)

type combinator uint8

const (
	descendant combinator = iota
	child
)

// compound is a selector without combinators, such as Button#ok.primary.
type compound struct {
	universal bool
	typeName  string
	id        string
	classes   []string
}

func (c compound) matches(n *Node) bool {
	if c.typeName != "" && c.typeName != n.Type {
		return false
	}
	if c.id != "" && c.id != n.ID {
		return false
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	return true
}

type step struct {
	compound
	// how this step relates to the one before it
	combinator combinator
}

// Selector is a parsed selector. Commas separate alternatives.
type Selector struct {
	raw          string
	alternatives [][]step
}

// ParseSelector parses #id, .class, Type, *, compound forms such as
// #a.b.c, the descendant combinator (space), the child combinator (>) and
// comma-separated groups.
func ParseSelector(s string) (Selector, error) {
	sel := Selector{raw: s}
	for _, part := range strings.Split(s, ",") {
		steps, err := parseComplex(part)
		if err != nil {
			return Selector{}, errors.Wrap(err, errors.ErrCodeInvalidSelector, "invalid selector").
				WithContext("selector", s)
		}
		sel.alternatives = append(sel.alternatives, steps)
	}
	return sel, nil
}

// MustParseSelector panics on invalid input.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the selector as written.
func (s Selector) String() string {
	return s.raw
}

// Matches reports whether n matches any alternative.
func (s Selector) Matches(n *Node) bool {
	for _, steps := range s.alternatives {
		if matchFrom(steps, len(steps)-1, n) {
			return true
		}
	}
	return false
}

// matchFrom matches right to left, backtracking over ancestors for the
// descendant combinator.
func matchFrom(steps []step, i int, n *Node) bool {
	if n == nil || !steps[i].matches(n) {
		return false
	}
	if i == 0 {
		return true
	}
	if steps[i].combinator == child {
		return matchFrom(steps, i-1, n.parent)
	}
	for p := n.parent; p != nil; p = p.parent {
		if matchFrom(steps, i-1, p) {
			return true
		}
	}
	return false
}

func parseComplex(s string) ([]step, error) {
	var steps []step
	pending, sawChild := descendant, false

	fields := strings.Fields(strings.ReplaceAll(s, ">", " > "))
	if len(fields) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSelector, "empty selector")
	}

	for _, field := range fields {
		if field == ">" {
			if len(steps) == 0 || sawChild {
				return nil, errors.New(errors.ErrCodeInvalidSelector, "misplaced '>'")
			}
			pending, sawChild = child, true
			continue
		}
		c, err := parseCompound(field)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{compound: c, combinator: pending})
		pending, sawChild = descendant, false
	}
	if sawChild {
		return nil, errors.New(errors.ErrCodeInvalidSelector, "selector ends with '>'")
	}
	return steps, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0

	if s[0] == '*' {
		c.universal = true
		i = 1
	} else if isNameChar(rune(s[0])) {
		end := scanName(s, 0)
		c.typeName = s[:end]
		i = end
	}

	for i < len(s) {
		prefix := s[i]
		if prefix != '#' && prefix != '.' {
			return compound{}, errors.Newf(errors.ErrCodeInvalidSelector, "unexpected %q in %q", prefix, s)
		}
		end := scanName(s, i+1)
		if end == i+1 {
			return compound{}, errors.Newf(errors.ErrCodeInvalidSelector, "missing name after %q in %q", prefix, s)
		}
		name := s[i+1 : end]
		if prefix == '#' {
			if c.id != "" && c.id != name {
				return compound{}, errors.Newf(errors.ErrCodeInvalidSelector, "two ids in %q", s)
			}
			c.id = name
		} else {
			c.classes = append(c.classes, name)
		}
		i = end
	}
	return c, nil
}

func scanName(s string, start int) int {
	for i, r := range s[start:] {
		if !isNameChar(r) {
			return start + i
		}
	}
	return len(s)
}

func isNameChar(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
