package annotator

import (
	"encoding/json"
	"strings"

	"github.com/viant/jsxmark/access"
	"github.com/viant/jsxmark/markup"
	"github.com/viant/jsxmark/parser"
)

// loopInfo is the resolved shape of one collection.map(callback) call whose
// collection traces back to a literal array in the same file
type loopInfo struct {
	collection string
	array      *markup.ArrayLit
	// prefixes maps each callback-bound item name onto the segments that
	// reach its value inside one array element; rest bindings are present
	// in names but carry no resolvable prefix
	prefixes map[string][]access.Segment
	names    map[string]bool
	rest     map[string]bool
	index    string
}

// annotateLoops performs the second pass: it locates rendered .map calls
// over literal arrays and threads per-iteration identifiers plus resolved
// source locations onto the loop-dependent elements the callback returns
func (a *Annotator) annotateLoops(component *parser.Component, ctx *Context) {
	for _, root := range component.Roots {
		markup.Walk(root.Node, func(node markup.Node) bool {
			slot, ok := node.(*markup.ExpressionSlot)
			if !ok || slot.Expr == nil {
				return true
			}
			markup.WalkExpr(slot.Expr, func(expr markup.Expr) bool {
				if call, ok := expr.(*markup.Call); ok {
					a.annotateMapCall(call, component, ctx)
				}
				return true
			})
			return true
		})
	}
}

// annotateMapCall processes one candidate call expression. Anything that is
// not a map over a local literal array is silently left alone: dynamic
// sources have no literal backing to point at.
func (a *Annotator) annotateMapCall(call *markup.Call, component *parser.Component, ctx *Context) {
	loop, callback := a.resolveLoop(call, component)
	if loop == nil {
		return
	}
	for _, ret := range callback.Returns {
		for _, element := range rootElements(ret) {
			if ctx.visited[element] {
				continue
			}
			ctx.visited[element] = true
			if !referencesAny(element, loop.names) {
				continue
			}
			suffix := loopSuffix(element, loop.index)
			assignID(element, ctx, suffix)
			a.resolveSources(element, loop)
			a.annotateLoopChildren(element, loop, suffix, ctx)
		}
	}
}

// resolveLoop verifies the call shape (<identifier>.map(callback)) and the
// collection binding (local, unreassigned, initialized to a literal array)
func (a *Annotator) resolveLoop(call *markup.Call, component *parser.Component) (*loopInfo, *markup.Func) {
	member, ok := markup.Unwrap(call.Callee).(*markup.Member)
	if !ok || member.Property != "map" {
		return nil, nil
	}
	ident, ok := markup.Unwrap(member.Object).(*markup.Ident)
	if !ok {
		return nil, nil
	}
	if len(call.Args) == 0 {
		return nil, nil
	}
	callback, ok := markup.Unwrap(call.Args[0]).(*markup.Func)
	if !ok || len(callback.Params) == 0 {
		return nil, nil
	}
	binding := component.Scope.Lookup(ident.Name)
	if binding == nil || binding.Reassigned || binding.Init == nil {
		return nil, nil
	}
	array, ok := markup.Unwrap(binding.Init).(*markup.ArrayLit)
	if !ok {
		return nil, nil
	}

	loop := &loopInfo{
		collection: ident.Name,
		array:      array,
		prefixes:   make(map[string][]access.Segment),
		names:      make(map[string]bool),
		rest:       make(map[string]bool),
	}
	item := callback.Params[0]
	if item.Name != "" {
		loop.names[item.Name] = true
		loop.prefixes[item.Name] = nil
	}
	for _, bound := range item.Bound {
		loop.names[bound.Name] = true
		switch {
		case bound.Rest:
			loop.rest[bound.Name] = true
		case bound.Property != "":
			loop.prefixes[bound.Name] = []access.Segment{{Kind: access.SegmentProperty, Property: bound.Property}}
		case bound.Index >= 0:
			loop.prefixes[bound.Name] = []access.Segment{{Kind: access.SegmentIndex, Index: bound.Index}}
		}
	}
	if len(callback.Params) > 1 {
		loop.index = callback.Params[1].Name
	}
	return loop, callback
}

// annotateLoopChildren recurses into native descendants, threading the
// per-iteration suffix onto every loop-dependent element. Nested composed
// components are excluded; they own their own metadata.
func (a *Annotator) annotateLoopChildren(parent *markup.Element, loop *loopInfo, suffix string, ctx *Context) {
	for _, child := range parent.Children {
		element, ok := child.(*markup.Element)
		if !ok || markup.IsComposedComponent(element.Tag) {
			continue
		}
		if referencesAny(element, loop.names) {
			assignID(element, ctx, suffix)
			a.resolveSources(element, loop)
		}
		a.annotateLoopChildren(element, loop, suffix, ctx)
	}
}

// resolveSources emits data-children-source for the first child expression
// that resolves to a literal field (first match wins when several loop-bound
// expressions share the element) and, independently, data-img-source for a
// src attribute expression
func (a *Annotator) resolveSources(element *markup.Element, loop *loopInfo) {
	for _, child := range element.Children {
		slot, ok := child.(*markup.ExpressionSlot)
		if !ok {
			continue
		}
		if segments, ok := loop.itemSegments(slot.Expr); ok {
			if a.writeSource(element, AttrChildrenSource, segments, loop) {
				break
			}
		}
	}
	if attr := element.Attr("src"); attr != nil && attr.IsExpr && attr.Expr != nil {
		if segments, ok := loop.itemSegments(attr.Expr); ok {
			a.writeSource(element, AttrImgSource, segments, loop)
		}
	}
}

// itemSegments extracts a property-access path rooted at one of the
// callback's bound item names and rebases it onto one array element
func (l *loopInfo) itemSegments(expr markup.Expr) ([]access.Segment, bool) {
	path := access.Extract(expr)
	if path == nil || !l.names[path.Base] || l.rest[path.Base] {
		return nil, false
	}
	prefix := l.prefixes[path.Base]
	return append(append([]access.Segment{}, prefix...), path.Segments...), true
}

// writeSource resolves the segments against every element of the literal
// array. All elements must resolve; a partial result writes nothing. The
// attribute value is one static descriptor when a single element (or no
// iteration index) leaves nothing to disambiguate, and otherwise a runtime
// expression indexing an embedded descriptor array with the loop index.
// With several elements but no index variable, the first element's
// descriptor stands for every iteration; its accessor keeps the explicit
// [0] so a consumer can tell which element it was resolved against.
func (a *Annotator) writeSource(element *markup.Element, name string, segments []access.Segment, loop *loopInfo) bool {
	descriptors := make([]string, 0, len(loop.array.Elems))
	for i, elem := range loop.array.Elems {
		location := access.ResolveLocation(a.config.Filename, elem, segments)
		if location == nil {
			return false
		}
		indexed := append([]access.Segment{{Kind: access.SegmentIndex, Index: i}}, segments...)
		location.Accessor = access.Accessor(loop.collection, indexed)
		encoded, err := json.Marshal(location)
		if err != nil {
			return false
		}
		descriptors = append(descriptors, string(encoded))
	}
	if len(descriptors) == 0 {
		return false
	}
	if len(descriptors) == 1 || loop.index == "" {
		element.SetAttr(name, descriptors[0])
		return true
	}
	element.SetAttrExpr(name, "["+strings.Join(descriptors, ", ")+"]["+loop.index+"]")
	return true
}

// loopSuffix picks the per-iteration id suffix expression: the element's
// key attribute expression when present, else the loop's index parameter
func loopSuffix(element *markup.Element, indexName string) string {
	if attr := element.Attr("key"); attr != nil && attr.IsExpr && strings.TrimSpace(attr.Value) != "" {
		return attr.Value
	}
	return indexName
}

// referencesAny reports whether the element's subtree references any of the
// given names, in attribute expressions or child expression slots. Unmodeled
// expression forms fall back to a token scan of their raw source.
func referencesAny(element *markup.Element, names map[string]bool) bool {
	found := false
	markup.Walk(element, func(node markup.Node) bool {
		if found {
			return false
		}
		switch actual := node.(type) {
		case *markup.Element:
			for _, attr := range actual.Attributes {
				if attr.IsExpr && exprReferences(attr.Expr, attr.Value, names) {
					found = true
					return false
				}
			}
		case *markup.ExpressionSlot:
			if exprReferences(actual.Expr, actual.Raw, names) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func exprReferences(expr markup.Expr, raw string, names map[string]bool) bool {
	found := false
	if expr != nil {
		markup.WalkExpr(expr, func(e markup.Expr) bool {
			if found {
				return false
			}
			switch actual := e.(type) {
			case *markup.Ident:
				if names[actual.Name] {
					found = true
					return false
				}
			case *markup.RawExpr:
				if rawReferences(actual.Source(), names) {
					found = true
					return false
				}
			}
			return true
		})
		return found
	}
	return rawReferences(raw, names)
}

// rawReferences scans unmodeled source text for a whole-token occurrence of
// any name
func rawReferences(raw string, names map[string]bool) bool {
	for name := range names {
		offset := 0
		for {
			i := strings.Index(raw[offset:], name)
			if i < 0 {
				break
			}
			start := offset + i
			end := start + len(name)
			if !identChar(byteAt(raw, start-1)) && !identChar(byteAt(raw, end)) {
				return true
			}
			offset = end
		}
	}
	return false
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func identChar(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
