package markup

import (
	"fmt"
	"strings"
)

// Position locates a node within its source file. Lines and columns are 1-based.
type Position struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Start returns the start position formatted as "line:col"
func (p Position) Start() string {
	return fmt.Sprintf("%d:%d", p.StartLine, p.StartCol)
}

// End returns the end position formatted as "line:col"
func (p Position) End() string {
	return fmt.Sprintf("%d:%d", p.EndLine, p.EndCol)
}

// Node represents one node of a parsed JSX tree
type Node interface {
	Pos() Position
	node()
}

// Element represents a JSX element with a tag name, attributes and children.
// StartByte/EndByte record the source span the element was parsed from;
// synthesized elements leave them zero.
type Element struct {
	Tag         string
	Attributes  []*Attribute
	Children    []Node
	SelfClosing bool
	StartByte   int
	EndByte     int
	Position    Position
}

func (e *Element) Pos() Position { return e.Position }
func (e *Element) node()         {}

// Attr retrieves an attribute by name, or nil when absent
func (e *Element) Attr(name string) *Attribute {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// SetAttr sets a string-valued attribute, replacing an existing attribute
// of the same name in place rather than appending a duplicate. A previously
// bare attribute becomes a valued one.
func (e *Element) SetAttr(name, value string) {
	if attr := e.Attr(name); attr != nil {
		attr.Value = value
		attr.IsExpr = false
		attr.Bare = false
		attr.Expr = nil
		return
	}
	e.Attributes = append(e.Attributes, &Attribute{Name: name, Value: value})
}

// SetAttrExpr sets an expression-valued attribute from raw expression text,
// replacing an existing attribute of the same name in place
func (e *Element) SetAttrExpr(name, raw string) {
	if attr := e.Attr(name); attr != nil {
		attr.Value = raw
		attr.IsExpr = true
		attr.Bare = false
		attr.Expr = nil
		return
	}
	e.Attributes = append(e.Attributes, &Attribute{Name: name, Value: raw, IsExpr: true})
}

// TextRun represents literal text content between elements
type TextRun struct {
	Text     string
	Position Position
}

func (t *TextRun) Pos() Position { return t.Position }
func (t *TextRun) node()         {}

// IsWhitespace reports whether the run contains no visible content
func (t *TextRun) IsWhitespace() bool {
	return strings.TrimSpace(t.Text) == ""
}

// ExpressionSlot represents an embedded {expression} child. StartByte is the
// source offset of the first byte of Raw; it anchors the splicing of markup
// trees embedded in the expression back into the raw text when rendering.
type ExpressionSlot struct {
	Expr      Expr
	Raw       string
	StartByte int
	Position  Position
}

func (s *ExpressionSlot) Pos() Position { return s.Position }
func (s *ExpressionSlot) node()         {}

// Fragment represents a <>…</> grouping with no wrapping tag
type Fragment struct {
	Children  []Node
	StartByte int
	EndByte   int
	Position  Position
}

func (f *Fragment) Pos() Position { return f.Position }
func (f *Fragment) node()         {}

// Attribute represents one key-value attribute on an element's opening tag.
// Value holds either a quoted string value or, when IsExpr is set, the raw
// text of a {…} expression. Bare attributes carry neither.
type Attribute struct {
	Name     string
	Value    string
	IsExpr   bool
	Bare     bool
	Expr     Expr
	Position Position
}
