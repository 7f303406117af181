// Package dom is a minimal node tree that styles are resolved against:
// nodes carry an id, classes and an inline style, and can be queried with
// selectors.
package dom

import (
	"slices"

	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/ui/style"
	"github.com/odvcencio/prism/pkg/ui/visual"
)

// Display values.
const (
	DisplayBlock = "block"
	DisplayNone  = "none"
)

// Node is an element of the tree. Nodes are not safe for concurrent
// mutation.
type Node struct {
	Type  string
	ID    string
	Text  string
	Style style.Style

	classes  []string
	display  string
	parent   *Node
	children []*Node
}

// NewNode creates a displayed node.
func NewNode(typeName string) *Node {
	return &Node{Type: typeName, display: DisplayBlock}
}

// WithID sets the id and returns n.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithText sets the text and returns n.
func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

// WithStyle sets the inline style and returns n.
func (n *Node) WithStyle(st style.Style) *Node {
	n.Style = st
	return n
}

// AddClass adds classes not already present.
func (n *Node) AddClass(classes ...string) *Node {
	for _, c := range classes {
		if !n.HasClass(c) {
			n.classes = append(n.classes, c)
		}
	}
	return n
}

// RemoveClass removes a class.
func (n *Node) RemoveClass(class string) *Node {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool { return c == class })
	return n
}

// HasClass reports whether n has class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Classes returns a copy of the classes.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// AddChild appends children, detaching them from any previous parent.
func (n *Node) AddChild(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil {
			c.parent.removeChild(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

func (n *Node) removeChild(c *Node) {
	n.children = slices.DeleteFunc(n.children, func(x *Node) bool { return x == c })
	c.parent = nil
}

// Parent returns the parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the immediate children.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Walk visits the descendants of n in document order. Returning false
// stops the walk.
func (n *Node) Walk(fn func(*Node) bool) {
	n.walk(fn)
}

func (n *Node) walk(fn func(*Node) bool) bool {
	for _, c := range n.children {
		if !fn(c) || !c.walk(fn) {
			return false
		}
	}
	return true
}

// GetChild returns the first immediate child matching selector.
// Grandchildren are never considered.
func (n *Node) GetChild(selector string) (*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	for _, c := range n.children {
		if sel.Matches(c) {
			return c, nil
		}
	}
	return nil, noMatch(n, selector)
}

// Query returns every descendant matching selector, in document order.
func (n *Node) Query(selector string) ([]*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	var out []*Node
	n.Walk(func(c *Node) bool {
		if sel.Matches(c) {
			out = append(out, c)
		}
		return true
	})
	return out, nil
}

// QueryOne returns the first descendant matching selector.
func (n *Node) QueryOne(selector string) (*Node, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	var found *Node
	n.Walk(func(c *Node) bool {
		if sel.Matches(c) {
			found = c
			return false
		}
		return true
	})
	if found == nil {
		return nil, noMatch(n, selector)
	}
	return found, nil
}

func noMatch(n *Node, selector string) error {
	return errors.Newf(errors.ErrCodeNoMatchingNodes, "no nodes match %q", selector).
		WithContext("selector", selector).
		WithContext("node", n.ID)
}

// IsNoMatchingNodes reports whether err means a query found nothing.
func IsNoMatchingNodes(err error) bool {
	return errors.IsCode(err, errors.ErrCodeNoMatchingNodes)
}

// Ancestors returns the chain from the root down to n, inclusive.
func (n *Node) Ancestors() []*Node {
	var chain []*Node
	for p := n; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	slices.Reverse(chain)
	return chain
}

// ResolvedStyle folds inline styles from the root down to n, so nearer
// nodes paint over their ancestors.
func (n *Node) ResolvedStyle() style.Style {
	chain := n.Ancestors()
	styles := make([]style.Style, len(chain))
	for i, p := range chain {
		styles[i] = p.Style
	}
	return style.Fold(styles...)
}

// Display reports whether the node is displayed.
func (n *Node) Display() bool {
	return n.display != DisplayNone
}

// DisplayValue returns "block" or "none".
func (n *Node) DisplayValue() string {
	if n.display == "" {
		return DisplayBlock
	}
	return n.display
}

// SetDisplay accepts a bool or "block"/"none".
func (n *Node) SetDisplay(v any) error {
	switch v := v.(type) {
	case bool:
		if v {
			n.display = DisplayBlock
		} else {
			n.display = DisplayNone
		}
		return nil
	case string:
		if v == DisplayBlock || v == DisplayNone {
			n.display = v
			return nil
		}
	}
	return errors.Newf(errors.ErrCodeStyleValue, "invalid display value %v", v).
		WithRemediation("use true, false, 'block' or 'none'")
}

// Textualize renders the node's text in its resolved style. Hidden and nil
// nodes have no visual.
func (n *Node) Textualize() visual.Visual {
	if n == nil || !n.Display() {
		return nil
	}
	return visual.Styled(n.Text, n.ResolvedStyle())
}
