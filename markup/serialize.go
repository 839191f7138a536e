package markup

import (
	"sort"
	"strings"
)

// Render converts a markup tree back to JSX source text. Rendering is
// deterministic: attribute order and raw expression text are preserved, so
// rendering an unchanged tree reproduces the same bytes on every run.
func Render(node Node) string {
	builder := &strings.Builder{}
	renderNode(builder, node)
	return builder.String()
}

func renderNode(builder *strings.Builder, node Node) {
	switch actual := node.(type) {
	case *Element:
		renderElement(builder, actual)
	case *TextRun:
		builder.WriteString(actual.Text)
	case *ExpressionSlot:
		renderSlot(builder, actual)
	case *Fragment:
		builder.WriteString("<>")
		for _, child := range actual.Children {
			renderNode(builder, child)
		}
		builder.WriteString("</>")
	}
}

// renderSlot emits a {…} child. The raw expression text is kept verbatim
// except over the spans of markup trees embedded in the expression (map
// callback returns); those re-render from their possibly mutated model so
// attribute changes inside a loop body reach the output.
func renderSlot(builder *strings.Builder, slot *ExpressionSlot) {
	builder.WriteString("{")
	trees := embeddedTrees(slot.Expr)
	cursor := 0
	for _, tree := range trees {
		start := treeSpanStart(tree) - slot.StartByte
		end := treeSpanEnd(tree) - slot.StartByte
		if start < cursor || end < start || end > len(slot.Raw) {
			continue
		}
		builder.WriteString(slot.Raw[cursor:start])
		renderNode(builder, tree)
		cursor = end
	}
	builder.WriteString(slot.Raw[cursor:])
	builder.WriteString("}")
}

// embeddedTrees collects the outermost markup trees embedded in an
// expression, in source order. Trees nested inside a collected tree render
// through it, so the walk never descends into return trees.
func embeddedTrees(e Expr) []Node {
	var trees []Node
	var walk func(Expr)
	walk = func(e Expr) {
		switch actual := e.(type) {
		case *Func:
			for _, ret := range actual.Returns {
				switch ret.(type) {
				case *Element, *Fragment:
					if treeSpanEnd(ret) > treeSpanStart(ret) {
						trees = append(trees, ret)
					}
				}
			}
		case *Member:
			walk(actual.Object)
		case *Index:
			walk(actual.Object)
			walk(actual.Key)
		case *Call:
			walk(actual.Callee)
			for _, arg := range actual.Args {
				walk(arg)
			}
		case *ObjectLit:
			for _, prop := range actual.Props {
				walk(prop.Value)
			}
		case *ArrayLit:
			for _, elem := range actual.Elems {
				walk(elem)
			}
		case *Binary:
			walk(actual.Left)
			walk(actual.Right)
		case *Conditional:
			walk(actual.Test)
			walk(actual.Consequent)
			walk(actual.Alternate)
		case *Assertion:
			walk(actual.Inner)
		}
	}
	walk(e)
	sort.SliceStable(trees, func(i, j int) bool {
		return treeSpanStart(trees[i]) < treeSpanStart(trees[j])
	})
	return trees
}

func treeSpanStart(node Node) int {
	switch actual := node.(type) {
	case *Element:
		return actual.StartByte
	case *Fragment:
		return actual.StartByte
	}
	return 0
}

func treeSpanEnd(node Node) int {
	switch actual := node.(type) {
	case *Element:
		return actual.EndByte
	case *Fragment:
		return actual.EndByte
	}
	return 0
}

func renderElement(builder *strings.Builder, element *Element) {
	builder.WriteString("<")
	builder.WriteString(element.Tag)
	for _, attr := range element.Attributes {
		builder.WriteString(" ")
		renderAttribute(builder, attr)
	}
	if element.SelfClosing && len(element.Children) == 0 {
		builder.WriteString(" />")
		return
	}
	builder.WriteString(">")
	for _, child := range element.Children {
		renderNode(builder, child)
	}
	builder.WriteString("</")
	builder.WriteString(element.Tag)
	builder.WriteString(">")
}

func renderAttribute(builder *strings.Builder, attr *Attribute) {
	builder.WriteString(attr.Name)
	if attr.Bare {
		return
	}
	if attr.IsExpr {
		builder.WriteString("={")
		builder.WriteString(attr.Value)
		builder.WriteString("}")
		return
	}
	// JSX string attributes have no escape sequences, so pick the quote
	// character the value does not contain
	quote := `"`
	if strings.Contains(attr.Value, `"`) {
		quote = "'"
	}
	builder.WriteString("=")
	builder.WriteString(quote)
	builder.WriteString(attr.Value)
	builder.WriteString(quote)
}
