package annotator

import (
	"github.com/viant/jsxmark/markup"
	"github.com/viant/jsxmark/parser"
)

// Annotator walks component definitions and writes traceability attributes
// onto the markup trees they return. All mutation is in place; attributes
// that already exist are replaced, never duplicated, so annotating an
// already-annotated tree is idempotent.
type Annotator struct {
	config *Config
}

// New creates an Annotator with the provided configuration
func New(config *Config) *Annotator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Annotator{config: config}
}

// AnnotateFile annotates every component of a parsed file. A missing
// filename or a skip-listed one leaves the trees untouched.
func (a *Annotator) AnnotateFile(file *parser.File) {
	if a.config.Filename == "" || a.config.Skipped() {
		return
	}
	// one context for the whole file: the identifier counter and used-id
	// set span components, so two identically shaped components cannot
	// synthesize the same id
	ctx := newContext(a.config.Filename)
	for _, component := range file.Components {
		a.annotateComponent(component, ctx)
	}
}

// annotateComponent runs the static root/descent pass and then the loop
// pass, sharing one context so identifiers cannot collide between passes
func (a *Annotator) annotateComponent(component *parser.Component, ctx *Context) {
	for _, root := range component.Roots {
		for _, element := range rootElements(root.Node) {
			a.annotateRoot(element, component.Name, ctx)
		}
	}
	a.annotateLoops(component, ctx)
}

// rootElements resolves the element(s) a returned tree contributes as
// component roots: a fragment makes each of its element children a root
func rootElements(node markup.Node) []*markup.Element {
	switch actual := node.(type) {
	case *markup.Element:
		return []*markup.Element{actual}
	case *markup.Fragment:
		var elements []*markup.Element
		for _, child := range actual.Children {
			if element, ok := child.(*markup.Element); ok {
				elements = append(elements, element)
			}
		}
		return elements
	}
	return nil
}

// annotateRoot writes root-level metadata, overwriting any stale values
// from a previous compile, then descends into the children
func (a *Annotator) annotateRoot(element *markup.Element, componentName string, ctx *Context) {
	element.SetAttr(AttrComponentFile, a.config.Filename)
	element.SetAttr(AttrComponentName, componentName)
	assignID(element, ctx, "")
	ctx.push(element.Tag)
	a.annotateChildren(element, markup.IsComposedComponent(element.Tag), ctx)
	ctx.pop()
}

// annotateChildren visits each child of parent, assigning ownership
// metadata to native elements and selectively wrapping bare content.
//
// wrap controls whether bare text/expression children are wrap-tagged: it
// is enabled under composed components, whose bare children are content
// authored here and handed across a component boundary, and disabled under
// native elements, whose own text needs no individual tagging.
//
// The children list is rebuilt rather than mutated during iteration.
func (a *Annotator) annotateChildren(parent *markup.Element, wrap bool, ctx *Context) {
	bridged := markup.IsBridged(parent, a.config.bridgeTag())
	rebuilt := make([]markup.Node, 0, len(parent.Children))
	for _, child := range parent.Children {
		switch actual := child.(type) {
		case *markup.Element:
			if markup.IsComposedComponent(actual.Tag) {
				// composed components own their metadata; only descend
				ctx.push(actual.Tag)
				a.annotateChildren(actual, true, ctx)
				ctx.pop()
			} else {
				if !bridged {
					actual.SetAttr(AttrRenderedBy, a.config.Filename)
					assignID(actual, ctx, "")
				}
				ctx.push(actual.Tag)
				a.annotateChildren(actual, false, ctx)
				ctx.pop()
			}
			rebuilt = append(rebuilt, actual)
		case *markup.TextRun:
			if wrap && !bridged && !actual.IsWhitespace() {
				rebuilt = append(rebuilt, a.wrapBare(actual, ctx))
			} else {
				rebuilt = append(rebuilt, actual)
			}
		case *markup.ExpressionSlot:
			if wrap && !bridged && wrappableSlot(actual) {
				rebuilt = append(rebuilt, a.wrapBare(actual, ctx))
			} else {
				rebuilt = append(rebuilt, actual)
			}
		default:
			rebuilt = append(rebuilt, child)
		}
	}
	parent.Children = rebuilt
}

// wrappableSlot reports whether an expression child should be wrap-tagged:
// single identifiers only, and never the pass-through children reference
func wrappableSlot(slot *markup.ExpressionSlot) bool {
	ident, ok := markup.Unwrap(slot.Expr).(*markup.Ident)
	if !ok {
		return false
	}
	return ident.Name != childrenIdent
}

// wrapBare replaces a bare text/expression child with a layout-neutral span
// carrying the ownership metadata the content would otherwise lose when it
// crosses into another component
func (a *Annotator) wrapBare(child markup.Node, ctx *Context) *markup.Element {
	span := &markup.Element{Tag: "span", Position: child.Pos()}
	span.SetAttrExpr("style", "{display: 'contents'}")
	span.SetAttr(AttrRenderedBy, a.config.Filename)
	assignID(span, ctx, "")
	span.Children = []markup.Node{child}
	return span
}
