package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/jsxmark/markup"
)

// Binding records the declaration site of one variable: its initializer
// expression (nil when declared without one) and whether the variable is
// ever reassigned after declaration
type Binding struct {
	Name       string
	Init       markup.Expr
	Reassigned bool
}

// Scope is a chain of name-to-binding maps mirroring lexical scoping
type Scope struct {
	parent   *Scope
	bindings map[string]*Binding
}

// NewScope creates a scope nested in parent (parent may be nil)
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, bindings: make(map[string]*Binding)}
}

// Lookup resolves a name through the scope chain, innermost first
func (s *Scope) Lookup(name string) *Binding {
	for scope := s; scope != nil; scope = scope.parent {
		if binding, ok := scope.bindings[name]; ok {
			return binding
		}
	}
	return nil
}

func (s *Scope) add(binding *Binding) {
	s.bindings[binding.Name] = binding
}

// collectModuleScope gathers top-level variable declarations and marks the
// ones the file reassigns anywhere. Reassignment detection is name-based and
// conservative: a shadowed name assigned in a nested scope still marks the
// module binding.
func collectModuleScope(rootNode *sitter.Node, src []byte, conv *converter) *Scope {
	scope := NewScope(nil)
	for j := uint32(0); j < rootNode.NamedChildCount(); j++ {
		childNode := rootNode.NamedChild(int(j))
		if childNode.Type() == "export_statement" {
			if declaration := childNode.ChildByFieldName("declaration"); declaration != nil {
				childNode = declaration
			}
		}
		collectDeclarations(childNode, src, conv, scope)
	}
	markReassigned(rootNode, src, scope)
	return scope
}

// collectScope gathers variable declarations within a function body (a
// statement block) into a scope nested in parent. Nested function bodies are
// not descended into; their declarations are not visible to the component.
func collectScope(bodyNode *sitter.Node, src []byte, conv *converter, parent *Scope) *Scope {
	scope := NewScope(parent)
	walkNode(bodyNode, func(node *sitter.Node) bool {
		if isFunctionNode(node.Type()) {
			return false
		}
		collectDeclarations(node, src, conv, scope)
		return true
	})
	markReassigned(bodyNode, src, scope)
	return scope
}

func collectDeclarations(node *sitter.Node, src []byte, conv *converter, scope *Scope) {
	if node.Type() != "lexical_declaration" && node.Type() != "variable_declaration" {
		return
	}
	for k := uint32(0); k < node.NamedChildCount(); k++ {
		declaratorNode := node.NamedChild(int(k))
		if declaratorNode.Type() != "variable_declarator" {
			continue
		}
		nameNode := declaratorNode.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "identifier" {
			continue
		}
		binding := &Binding{Name: nameNode.Content(src)}
		if valueNode := declaratorNode.ChildByFieldName("value"); valueNode != nil {
			binding.Init = conv.convertExpr(valueNode)
		}
		scope.add(binding)
	}
}

// markReassigned flags scope bindings whose name is the target of an
// assignment or update expression anywhere under node
func markReassigned(node *sitter.Node, src []byte, scope *Scope) {
	walkNode(node, func(current *sitter.Node) bool {
		var targetNode *sitter.Node
		switch current.Type() {
		case "assignment_expression", "augmented_assignment_expression":
			targetNode = current.ChildByFieldName("left")
		case "update_expression":
			targetNode = current.ChildByFieldName("argument")
		default:
			return true
		}
		if targetNode != nil && targetNode.Type() == "identifier" {
			if binding, ok := scope.bindings[targetNode.Content(src)]; ok {
				binding.Reassigned = true
			}
		}
		return true
	})
}

// walkNode visits node and all its named descendants; returning false from
// fn prunes the branch
func walkNode(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		walkNode(node.NamedChild(int(j)), fn)
	}
}

func isFunctionNode(nodeType string) bool {
	switch nodeType {
	case "arrow_function", "function", "function_expression", "function_declaration", "method_definition", "generator_function", "generator_function_declaration":
		return true
	}
	return false
}
