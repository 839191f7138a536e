package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/jsxmark/markup"
)

// converter builds markup nodes and expressions from tree-sitter nodes
type converter struct {
	src []byte
}

func (c *converter) content(node *sitter.Node) string {
	return node.Content(c.src)
}

// convertMarkup converts a jsx_element, jsx_self_closing_element,
// jsx_fragment, jsx_text or jsx_expression node into the markup model
func (c *converter) convertMarkup(node *sitter.Node) markup.Node {
	switch node.Type() {
	case "jsx_element":
		return c.convertJSXElement(node)
	case "jsx_self_closing_element":
		return c.convertSelfClosing(node)
	case "jsx_fragment":
		fragment := &markup.Fragment{
			StartByte: int(node.StartByte()),
			EndByte:   int(node.EndByte()),
			Position:  position(node),
		}
		for j := uint32(0); j < node.NamedChildCount(); j++ {
			if child := c.convertMarkup(node.NamedChild(int(j))); child != nil {
				fragment.Children = append(fragment.Children, child)
			}
		}
		return fragment
	case "jsx_text", "html_character_reference":
		return &markup.TextRun{Text: c.content(node), Position: position(node)}
	case "jsx_expression":
		return c.convertSlot(node)
	}
	return nil
}

func (c *converter) convertJSXElement(node *sitter.Node) *markup.Element {
	element := &markup.Element{
		StartByte: int(node.StartByte()),
		EndByte:   int(node.EndByte()),
		Position:  position(node),
	}
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		childNode := node.NamedChild(int(j))
		switch childNode.Type() {
		case "jsx_opening_element":
			if nameNode := childNode.ChildByFieldName("name"); nameNode != nil {
				element.Tag = c.content(nameNode)
			}
			c.convertAttributes(childNode, element)
		case "jsx_closing_element":
			// tag already known from the opening element
		default:
			if child := c.convertMarkup(childNode); child != nil {
				element.Children = append(element.Children, child)
			}
		}
	}
	return element
}

func (c *converter) convertSelfClosing(node *sitter.Node) *markup.Element {
	element := &markup.Element{
		SelfClosing: true,
		StartByte:   int(node.StartByte()),
		EndByte:     int(node.EndByte()),
		Position:    position(node),
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		element.Tag = c.content(nameNode)
	}
	c.convertAttributes(node, element)
	return element
}

func (c *converter) convertAttributes(openingNode *sitter.Node, element *markup.Element) {
	for j := uint32(0); j < openingNode.NamedChildCount(); j++ {
		attrNode := openingNode.NamedChild(int(j))
		if attrNode.Type() != "jsx_attribute" {
			continue
		}
		attr := &markup.Attribute{Position: position(attrNode)}
		for k := uint32(0); k < attrNode.NamedChildCount(); k++ {
			valueNode := attrNode.NamedChild(int(k))
			switch valueNode.Type() {
			case "property_identifier", "jsx_namespace_name", "identifier":
				if attr.Name == "" {
					attr.Name = c.content(valueNode)
				}
			case "string":
				attr.Value = stripQuotes(c.content(valueNode))
			case "jsx_expression":
				attr.IsExpr = true
				if inner := firstNamedChild(valueNode); inner != nil {
					attr.Value = c.content(inner)
					attr.Expr = c.convertExpr(inner)
				}
			}
		}
		if !attr.IsExpr && attr.Value == "" && attrValueless(attrNode) {
			attr.Bare = true
		}
		element.Attributes = append(element.Attributes, attr)
	}
}

// attrValueless reports whether a jsx_attribute has no value part at all
func attrValueless(attrNode *sitter.Node) bool {
	return attrNode.NamedChildCount() == 1
}

func (c *converter) convertSlot(node *sitter.Node) *markup.ExpressionSlot {
	slot := &markup.ExpressionSlot{Position: position(node)}
	if inner := firstNamedChild(node); inner != nil {
		slot.Raw = c.content(inner)
		slot.StartByte = int(inner.StartByte())
		slot.Expr = c.convertExpr(inner)
	} else {
		// {/* comment */} or an empty expression container
		slot.Raw = strings.Trim(c.content(node), "{}")
	}
	return slot
}

// convertExpr builds the structured expression model. Forms the engine has
// no use for degrade to RawExpr, keeping their source text for re-emission.
func (c *converter) convertExpr(node *sitter.Node) markup.Expr {
	if node == nil {
		return nil
	}
	base := c.base(node)
	switch node.Type() {
	case "identifier":
		return &markup.Ident{Name: c.content(node), ExprBase: base}
	case "member_expression":
		member := &markup.Member{ExprBase: base}
		member.Object = c.convertExpr(node.ChildByFieldName("object"))
		if propertyNode := node.ChildByFieldName("property"); propertyNode != nil {
			member.Property = c.content(propertyNode)
		}
		member.Optional = strings.Contains(c.content(node), "?.")
		return member
	case "subscript_expression":
		return &markup.Index{
			Object:   c.convertExpr(node.ChildByFieldName("object")),
			Key:      c.convertExpr(node.ChildByFieldName("index")),
			ExprBase: base,
		}
	case "call_expression":
		call := &markup.Call{ExprBase: base}
		call.Callee = c.convertExpr(node.ChildByFieldName("function"))
		if argumentsNode := node.ChildByFieldName("arguments"); argumentsNode != nil {
			for j := uint32(0); j < argumentsNode.NamedChildCount(); j++ {
				call.Args = append(call.Args, c.convertExpr(argumentsNode.NamedChild(int(j))))
			}
		}
		return call
	case "arrow_function", "function", "function_expression":
		return c.convertFunc(node)
	case "string":
		return &markup.StringLit{Value: stripQuotes(c.content(node)), ExprBase: base}
	case "number":
		return &markup.NumberLit{Value: c.content(node), ExprBase: base}
	case "object":
		return c.convertObject(node)
	case "array":
		array := &markup.ArrayLit{ExprBase: base}
		for j := uint32(0); j < node.NamedChildCount(); j++ {
			array.Elems = append(array.Elems, c.convertExpr(node.NamedChild(int(j))))
		}
		return array
	case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
		return &markup.Assertion{Inner: c.convertExpr(firstNamedChild(node)), ExprBase: base}
	case "binary_expression":
		return &markup.Binary{
			Left:     c.convertExpr(node.ChildByFieldName("left")),
			Right:    c.convertExpr(node.ChildByFieldName("right")),
			ExprBase: base,
		}
	case "ternary_expression":
		return &markup.Conditional{
			Test:       c.convertExpr(node.ChildByFieldName("condition")),
			Consequent: c.convertExpr(node.ChildByFieldName("consequence")),
			Alternate:  c.convertExpr(node.ChildByFieldName("alternative")),
			ExprBase:   base,
		}
	}
	return markup.NewRawExpr(c.content(node), position(node))
}

func (c *converter) convertObject(node *sitter.Node) *markup.ObjectLit {
	object := &markup.ObjectLit{ExprBase: c.base(node)}
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		propNode := node.NamedChild(int(j))
		switch propNode.Type() {
		case "pair":
			prop := &markup.Prop{Position: position(propNode)}
			if keyNode := propNode.ChildByFieldName("key"); keyNode != nil {
				switch keyNode.Type() {
				case "property_identifier", "number":
					prop.Key = c.content(keyNode)
				case "string":
					prop.Key = stripQuotes(c.content(keyNode))
				default:
					prop.Key = c.content(keyNode)
					prop.Computed = true
				}
			}
			prop.Value = c.convertExpr(propNode.ChildByFieldName("value"))
			object.Props = append(object.Props, prop)
		case "shorthand_property_identifier":
			name := c.content(propNode)
			object.Props = append(object.Props, &markup.Prop{
				Key:      name,
				Value:    &markup.Ident{Name: name, ExprBase: c.base(propNode)},
				Position: position(propNode),
			})
		}
	}
	return object
}

func (c *converter) convertFunc(node *sitter.Node) *markup.Func {
	function := &markup.Func{ExprBase: c.base(node)}
	if parameterNode := node.ChildByFieldName("parameter"); parameterNode != nil {
		// single-identifier arrow parameter without parentheses
		function.Params = append(function.Params, c.convertParam(parameterNode))
	} else if parametersNode := node.ChildByFieldName("parameters"); parametersNode != nil {
		for j := uint32(0); j < parametersNode.NamedChildCount(); j++ {
			if param := c.convertParam(parametersNode.NamedChild(int(j))); param != nil {
				function.Params = append(function.Params, param)
			}
		}
	}
	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		function.Returns = c.collectReturns(bodyNode)
	}
	return function
}

// convertParam collects the names a parameter pattern binds, keeping enough
// structure to map each name back onto the value the callback receives
func (c *converter) convertParam(node *sitter.Node) *markup.Param {
	switch node.Type() {
	case "required_parameter", "optional_parameter":
		// TSX wraps the pattern together with its type annotation
		if patternNode := node.ChildByFieldName("pattern"); patternNode != nil {
			return c.convertParam(patternNode)
		}
		return nil
	case "identifier":
		return &markup.Param{Name: c.content(node), Position: position(node)}
	case "assignment_pattern":
		// default value: the bound names come from the left side
		if leftNode := node.ChildByFieldName("left"); leftNode != nil {
			return c.convertParam(leftNode)
		}
		return nil
	case "rest_pattern":
		param := &markup.Param{Position: position(node)}
		if inner := firstNamedChild(node); inner != nil && inner.Type() == "identifier" {
			param.Bound = append(param.Bound, markup.BoundName{Name: c.content(inner), Index: -1, Rest: true})
		}
		return param
	case "object_pattern":
		param := &markup.Param{Position: position(node)}
		for j := uint32(0); j < node.NamedChildCount(); j++ {
			entryNode := node.NamedChild(int(j))
			switch entryNode.Type() {
			case "shorthand_property_identifier_pattern":
				name := c.content(entryNode)
				param.Bound = append(param.Bound, markup.BoundName{Name: name, Property: name, Index: -1})
			case "pair_pattern":
				keyNode := entryNode.ChildByFieldName("key")
				valueNode := entryNode.ChildByFieldName("value")
				if keyNode == nil || valueNode == nil {
					continue
				}
				key := c.content(keyNode)
				if keyNode.Type() == "string" {
					key = stripQuotes(key)
				}
				for _, name := range c.patternNames(valueNode) {
					param.Bound = append(param.Bound, markup.BoundName{Name: name, Property: key, Index: -1})
				}
			case "object_assignment_pattern":
				if leftNode := entryNode.ChildByFieldName("left"); leftNode != nil && leftNode.Type() == "shorthand_property_identifier_pattern" {
					name := c.content(leftNode)
					param.Bound = append(param.Bound, markup.BoundName{Name: name, Property: name, Index: -1})
				}
			case "rest_pattern":
				if inner := firstNamedChild(entryNode); inner != nil && inner.Type() == "identifier" {
					param.Bound = append(param.Bound, markup.BoundName{Name: c.content(inner), Index: -1, Rest: true})
				}
			}
		}
		return param
	case "array_pattern":
		param := &markup.Param{Position: position(node)}
		for j := uint32(0); j < node.NamedChildCount(); j++ {
			entryNode := node.NamedChild(int(j))
			switch entryNode.Type() {
			case "identifier":
				param.Bound = append(param.Bound, markup.BoundName{Name: c.content(entryNode), Index: int(j)})
			case "assignment_pattern":
				if leftNode := entryNode.ChildByFieldName("left"); leftNode != nil && leftNode.Type() == "identifier" {
					param.Bound = append(param.Bound, markup.BoundName{Name: c.content(leftNode), Index: int(j)})
				}
			case "rest_pattern":
				if inner := firstNamedChild(entryNode); inner != nil && inner.Type() == "identifier" {
					param.Bound = append(param.Bound, markup.BoundName{Name: c.content(inner), Index: int(j), Rest: true})
				}
			}
		}
		return param
	}
	return nil
}

// patternNames flattens nested destructuring values down to bound names
func (c *converter) patternNames(node *sitter.Node) []string {
	switch node.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []string{c.content(node)}
	case "assignment_pattern":
		if leftNode := node.ChildByFieldName("left"); leftNode != nil {
			return c.patternNames(leftNode)
		}
	case "object_pattern", "array_pattern":
		var names []string
		if param := c.convertParam(node); param != nil {
			names = param.Names()
		}
		return names
	}
	return nil
}

// collectReturns finds the markup nodes a function body yields: a direct
// expression body, or return statements anywhere in a block body outside
// nested functions
func (c *converter) collectReturns(bodyNode *sitter.Node) []markup.Node {
	if bodyNode.Type() != "statement_block" {
		if returned := c.convertReturned(bodyNode); returned != nil {
			return []markup.Node{returned}
		}
		return nil
	}
	var returns []markup.Node
	walkNode(bodyNode, func(node *sitter.Node) bool {
		if isFunctionNode(node.Type()) {
			return false
		}
		if node.Type() == "return_statement" {
			if value := firstNamedChild(node); value != nil {
				if returned := c.convertReturned(value); returned != nil {
					returns = append(returns, returned)
				}
			}
			return false
		}
		return true
	})
	return returns
}

// convertReturned converts a returned expression into markup when it is JSX
// or a recognized element-factory call, unwrapping value-preserving wrappers
func (c *converter) convertReturned(node *sitter.Node) markup.Node {
	node = unwrapNode(node)
	switch node.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return c.convertMarkup(node)
	case "call_expression":
		return c.convertFactoryCall(node)
	}
	return nil
}

// unwrapNode strips parentheses and type assertions down to the value node
func unwrapNode(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			inner := firstNamedChild(node)
			if inner == nil {
				return node
			}
			node = inner
		default:
			return node
		}
	}
	return node
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node.NamedChildCount() == 0 {
		return nil
	}
	return node.NamedChild(0)
}

func stripQuotes(value string) string {
	return strings.Trim(value, "'\"`")
}

func (c *converter) base(node *sitter.Node) markup.ExprBase {
	return markup.NewExprBase(c.content(node), position(node))
}
