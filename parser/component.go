package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/jsxmark/markup"
)

// discoverComponents walks top-level declarations and collects every
// definition that yields markup: named function declarations and variables
// bound to arrow/function expressions, the same two shapes the surrounding
// ecosystem uses for components
func discoverComponents(rootNode *sitter.Node, src []byte, conv *converter, module *Scope) []*Component {
	var components []*Component
	for j := uint32(0); j < rootNode.NamedChildCount(); j++ {
		childNode := rootNode.NamedChild(int(j))
		if childNode.Type() == "export_statement" {
			if declaration := childNode.ChildByFieldName("declaration"); declaration != nil {
				childNode = declaration
			}
		}
		switch childNode.Type() {
		case "function_declaration":
			if component := functionComponent(childNode, src, conv, module); component != nil {
				components = append(components, component)
			}
		case "lexical_declaration", "variable_declaration":
			if component := arrowComponent(childNode, src, conv, module); component != nil {
				components = append(components, component)
			}
		}
	}
	return components
}

// functionComponent builds a component from a named function declaration.
// Definitions with no resolvable returned markup are skipped, not errors.
func functionComponent(node *sitter.Node, src []byte, conv *converter, module *Scope) *Component {
	nameNode := node.ChildByFieldName("name")
	bodyNode := node.ChildByFieldName("body")
	if nameNode == nil || bodyNode == nil {
		return nil
	}
	roots := findRoots(bodyNode, conv)
	if len(roots) == 0 {
		return nil
	}
	return &Component{
		Name:  nameNode.Content(src),
		Scope: collectScope(bodyNode, src, conv, module),
		Roots: roots,
	}
}

// arrowComponent builds a component from `const Name = () => …` or
// `const Name = function() {…}` declarations
func arrowComponent(node *sitter.Node, src []byte, conv *converter, module *Scope) *Component {
	var declaratorNode *sitter.Node
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		if child := node.NamedChild(int(j)); child.Type() == "variable_declarator" {
			declaratorNode = child
			break
		}
	}
	if declaratorNode == nil {
		return nil
	}
	nameNode := declaratorNode.ChildByFieldName("name")
	valueNode := declaratorNode.ChildByFieldName("value")
	if nameNode == nil || nameNode.Type() != "identifier" || valueNode == nil {
		return nil
	}
	if !isFunctionNode(valueNode.Type()) {
		return nil
	}
	bodyNode := valueNode.ChildByFieldName("body")
	if bodyNode == nil {
		return nil
	}
	roots := findRoots(bodyNode, conv)
	if len(roots) == 0 {
		return nil
	}
	scope := module
	if bodyNode.Type() == "statement_block" {
		scope = collectScope(bodyNode, src, conv, module)
	}
	return &Component{
		Name:  nameNode.Content(src),
		Scope: scope,
		Roots: roots,
	}
}

// findRoots locates the markup trees a component body returns together with
// the source spans they occupy: a direct expression body, or every return
// statement found by a full-body scan outside nested functions
func findRoots(bodyNode *sitter.Node, conv *converter) []*Root {
	if bodyNode.Type() != "statement_block" {
		return rootFrom(bodyNode, conv)
	}
	var roots []*Root
	walkNode(bodyNode, func(node *sitter.Node) bool {
		if isFunctionNode(node.Type()) {
			return false
		}
		if node.Type() == "return_statement" {
			if value := firstNamedChild(node); value != nil {
				roots = append(roots, rootFrom(value, conv)...)
			}
			return false
		}
		return true
	})
	return roots
}

func rootFrom(node *sitter.Node, conv *converter) []*Root {
	node = unwrapNode(node)
	var tree markup.Node
	switch node.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		tree = conv.convertMarkup(node)
	case "call_expression":
		tree = conv.convertFactoryCall(node)
	}
	if tree == nil {
		return nil
	}
	return []*Root{{
		Node:      tree,
		StartByte: int(node.StartByte()),
		EndByte:   int(node.EndByte()),
	}}
}
