package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/jsxmark/markup"
)

// convertFactoryCall normalizes the legacy element-factory construction form
// (createElement / React.createElement calls) into the same Element tree the
// JSX form produces, so the annotator never special-cases calls. Calls that
// do not match the factory shape yield nil.
func (c *converter) convertFactoryCall(node *sitter.Node) markup.Node {
	if node.Type() != "call_expression" {
		return nil
	}
	if !isFactoryCallee(node.ChildByFieldName("function"), c.src) {
		return nil
	}
	argumentsNode := node.ChildByFieldName("arguments")
	if argumentsNode == nil || argumentsNode.NamedChildCount() == 0 {
		return nil
	}

	element := &markup.Element{
		StartByte: int(node.StartByte()),
		EndByte:   int(node.EndByte()),
		Position:  position(node),
	}
	tagNode := unwrapNode(argumentsNode.NamedChild(0))
	switch tagNode.Type() {
	case "string":
		element.Tag = stripQuotes(c.content(tagNode))
	case "identifier", "member_expression":
		element.Tag = c.content(tagNode)
	default:
		return nil
	}

	if argumentsNode.NamedChildCount() > 1 {
		c.factoryProps(unwrapNode(argumentsNode.NamedChild(1)), element)
	}
	for j := uint32(2); j < argumentsNode.NamedChildCount(); j++ {
		if child := c.factoryChild(argumentsNode.NamedChild(int(j))); child != nil {
			element.Children = append(element.Children, child)
		}
	}
	if len(element.Children) == 0 {
		element.SelfClosing = true
	}
	return element
}

// isFactoryCallee matches a bare createElement identifier or a member access
// ending in .createElement (React.createElement and aliased namespaces)
func isFactoryCallee(calleeNode *sitter.Node, src []byte) bool {
	if calleeNode == nil {
		return false
	}
	switch calleeNode.Type() {
	case "identifier":
		return calleeNode.Content(src) == "createElement"
	case "member_expression":
		propertyNode := calleeNode.ChildByFieldName("property")
		return propertyNode != nil && propertyNode.Content(src) == "createElement"
	}
	return false
}

// factoryProps maps a props object literal onto element attributes. A null
// or unresolvable props argument contributes nothing.
func (c *converter) factoryProps(propsNode *sitter.Node, element *markup.Element) {
	if propsNode.Type() != "object" {
		return
	}
	for j := uint32(0); j < propsNode.NamedChildCount(); j++ {
		pairNode := propsNode.NamedChild(int(j))
		if pairNode.Type() != "pair" {
			continue
		}
		keyNode := pairNode.ChildByFieldName("key")
		valueNode := pairNode.ChildByFieldName("value")
		if keyNode == nil || valueNode == nil {
			continue
		}
		name := c.content(keyNode)
		if keyNode.Type() == "string" {
			name = stripQuotes(name)
		}
		attr := &markup.Attribute{Name: name, Position: position(pairNode)}
		if valueNode.Type() == "string" {
			attr.Value = stripQuotes(c.content(valueNode))
		} else {
			attr.IsExpr = true
			attr.Value = c.content(valueNode)
			attr.Expr = c.convertExpr(valueNode)
		}
		element.Attributes = append(element.Attributes, attr)
	}
}

// factoryChild converts one child argument of a factory call
func (c *converter) factoryChild(node *sitter.Node) markup.Node {
	node = unwrapNode(node)
	switch node.Type() {
	case "string":
		return &markup.TextRun{Text: stripQuotes(c.content(node)), Position: position(node)}
	case "call_expression":
		if nested := c.convertFactoryCall(node); nested != nil {
			return nested
		}
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return c.convertMarkup(node)
	}
	return &markup.ExpressionSlot{
		Expr:      c.convertExpr(node),
		Raw:       c.content(node),
		StartByte: int(node.StartByte()),
		Position:  position(node),
	}
}
