// Package access statically resolves chains of property and index accesses
// back to the literal structures that define their values. Resolution is
// deliberately narrow: literal keys and literal initializers resolve, a
// runtime index variable stops resolution at its containing array, and
// anything else dynamic yields no result rather than a guess.
package access

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/jsxmark/markup"
)

// SegmentKind discriminates the three path segment forms
type SegmentKind int

const (
	// SegmentProperty is a literal property key
	SegmentProperty SegmentKind = iota
	// SegmentIndex is a literal numeric index
	SegmentIndex
	// SegmentVariable is a runtime index variable; static resolution stops
	// at the containing array but the name is kept for accessor rendering
	SegmentVariable
)

// Segment is one step of a property-access path
type Segment struct {
	Kind     SegmentKind
	Property string
	Index    int
	Variable string
}

// Path is an ordered list of segments rooted at a simple variable name
type Path struct {
	Base     string
	Segments []Segment
}

// Extract determines whether expr is a chain of static property/index
// accesses rooted at a simple name. A lone identifier yields an empty path.
// An identifier subscript (a runtime index variable) yields a variable
// segment; any other computed key fails the whole extraction: the result is
// nil, never a partial path.
func Extract(expr markup.Expr) *Path {
	expr = markup.Unwrap(expr)
	switch actual := expr.(type) {
	case *markup.Ident:
		return &Path{Base: actual.Name}
	case *markup.Member:
		parent := Extract(actual.Object)
		if parent == nil || actual.Property == "" {
			return nil
		}
		parent.Segments = append(parent.Segments, Segment{Kind: SegmentProperty, Property: actual.Property})
		return parent
	case *markup.Index:
		parent := Extract(actual.Object)
		if parent == nil {
			return nil
		}
		segment, ok := keySegment(actual.Key)
		if !ok {
			return nil
		}
		parent.Segments = append(parent.Segments, segment)
		return parent
	}
	return nil
}

// keySegment maps a subscript key onto a segment. Literal keys resolve
// fully; a plain identifier key becomes a variable segment, which stops
// static resolution at the containing array but keeps the name for the
// accessor string. Anything else fails.
func keySegment(key markup.Expr) (Segment, bool) {
	switch actual := markup.Unwrap(key).(type) {
	case *markup.StringLit:
		return Segment{Kind: SegmentProperty, Property: actual.Value}, true
	case *markup.NumberLit:
		index, err := strconv.Atoi(actual.Value)
		if err != nil {
			return Segment{}, false
		}
		return Segment{Kind: SegmentIndex, Index: index}, true
	case *markup.Ident:
		return Segment{Kind: SegmentVariable, Variable: actual.Name}, true
	}
	return Segment{}, false
}

// Accessor renders the path as a human-readable access string rooted at
// base, e.g. faqs[0].image or faqs[index].question
func Accessor(base string, segments []Segment) string {
	builder := &strings.Builder{}
	builder.WriteString(base)
	for _, segment := range segments {
		switch segment.Kind {
		case SegmentProperty:
			if isIdentLike(segment.Property) {
				builder.WriteString(".")
				builder.WriteString(segment.Property)
			} else {
				fmt.Fprintf(builder, "[%q]", segment.Property)
			}
		case SegmentIndex:
			fmt.Fprintf(builder, "[%d]", segment.Index)
		case SegmentVariable:
			fmt.Fprintf(builder, "[%s]", segment.Variable)
		}
	}
	return builder.String()
}

func isIdentLike(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		alpha := r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !alpha && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}
