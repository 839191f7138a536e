// Package parser turns JSX/TSX source into the mutable markup model the
// annotation engine operates on. It uses tree-sitter grammars to parse the
// source, discovers component definitions, locates the markup trees they
// return and collects the variable bindings visible to each component.
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/viant/jsxmark/markup"
)

// Parser parses JSX/TSX source files into component definitions
type Parser struct{}

// New creates a new Parser
func New() *Parser {
	return &Parser{}
}

// File holds the parse result for one source file
type File struct {
	Path       string
	Source     []byte
	Components []*Component
	Module     *Scope
}

// Component is one component definition: a named function declaration or a
// variable bound to an arrow/function expression, whose body returns JSX
type Component struct {
	Name  string
	Scope *Scope
	Roots []*Root
}

// Root is one markup tree a component returns, together with the byte range
// of the original source it was parsed from
type Root struct {
	Node      markup.Node
	StartByte int
	EndByte   int
}

// ParseFile parses a JSX/TSX source file
func (p *Parser) ParseFile(filename string) (*File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return p.ParseSource(src, filename)
}

// ParseSource parses JSX/TSX source from a byte slice. The filename is used
// for grammar selection and carried into the parse result.
func (p *Parser) ParseSource(src []byte, filename string) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(filename))

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	rootNode := tree.RootNode()
	conv := &converter{src: src}

	aFile := &File{
		Path:   filename,
		Source: src,
		Module: collectModuleScope(rootNode, src, conv),
	}
	aFile.Components = discoverComponents(rootNode, src, conv, aFile.Module)
	return aFile, nil
}

// languageFor selects the grammar by file extension: the TSX grammar for
// TypeScript sources, the javascript grammar (which includes JSX) otherwise
func languageFor(filename string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".tsx":
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// position converts tree-sitter's 0-based points to 1-based line/column
func position(node *sitter.Node) markup.Position {
	start := node.StartPoint()
	end := node.EndPoint()
	return markup.Position{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}
