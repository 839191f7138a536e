package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/jsxmark/markup"
)

func ident(name string) *markup.Ident {
	return &markup.Ident{Name: name, ExprBase: markup.NewExprBase(name, markup.Position{})}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		expr     markup.Expr
		expected *Path
	}{
		{
			name:     "lone identifier yields empty path",
			expr:     ident("faq"),
			expected: &Path{Base: "faq"},
		},
		{
			name: "member chain",
			expr: &markup.Member{
				Object:   &markup.Member{Object: ident("item"), Property: "meta"},
				Property: "title",
			},
			expected: &Path{Base: "item", Segments: []Segment{
				{Kind: SegmentProperty, Property: "meta"},
				{Kind: SegmentProperty, Property: "title"},
			}},
		},
		{
			name: "optional member access",
			expr: &markup.Member{Object: ident("item"), Property: "image", Optional: true},
			expected: &Path{Base: "item", Segments: []Segment{
				{Kind: SegmentProperty, Property: "image"},
			}},
		},
		{
			name: "string subscript becomes property",
			expr: &markup.Index{Object: ident("row"), Key: &markup.StringLit{Value: "name"}},
			expected: &Path{Base: "row", Segments: []Segment{
				{Kind: SegmentProperty, Property: "name"},
			}},
		},
		{
			name: "numeric subscript becomes index",
			expr: &markup.Index{Object: ident("rows"), Key: &markup.NumberLit{Value: "2"}},
			expected: &Path{Base: "rows", Segments: []Segment{
				{Kind: SegmentIndex, Index: 2},
			}},
		},
		{
			name: "identifier subscript becomes a variable segment",
			expr: &markup.Index{Object: ident("rows"), Key: ident("i")},
			expected: &Path{Base: "rows", Segments: []Segment{
				{Kind: SegmentVariable, Variable: "i"},
			}},
		},
		{
			name: "variable segment keeps the rest of the chain",
			expr: &markup.Member{
				Object:   &markup.Index{Object: ident("rows"), Key: ident("i")},
				Property: "name",
			},
			expected: &Path{Base: "rows", Segments: []Segment{
				{Kind: SegmentVariable, Variable: "i"},
				{Kind: SegmentProperty, Property: "name"},
			}},
		},
		{
			name: "computed non-identifier key fails the whole path",
			expr: &markup.Index{
				Object: ident("rows"),
				Key:    &markup.Member{Object: ident("state"), Property: "cursor"},
			},
			expected: nil,
		},
		{
			name: "non-literal key deep in the chain fails everything",
			expr: &markup.Member{
				Object: &markup.Index{
					Object: ident("rows"),
					Key:    &markup.Call{Callee: ident("pick")},
				},
				Property: "name",
			},
			expected: nil,
		},
		{
			name:     "call expression is not an access chain",
			expr:     &markup.Call{Callee: ident("load")},
			expected: nil,
		},
		{
			name: "assertion wrappers are unwrapped",
			expr: &markup.Assertion{Inner: &markup.Member{Object: ident("item"), Property: "name"}},
			expected: &Path{Base: "item", Segments: []Segment{
				{Kind: SegmentProperty, Property: "name"},
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Extract(tc.expr))
		})
	}
}

func TestAccessor(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		segments []Segment
		expected string
	}{
		{
			name: "dotted properties",
			base: "faqs",
			segments: []Segment{
				{Kind: SegmentIndex, Index: 0},
				{Kind: SegmentProperty, Property: "image"},
			},
			expected: "faqs[0].image",
		},
		{
			name: "runtime variable index",
			base: "faqs",
			segments: []Segment{
				{Kind: SegmentVariable, Variable: "index"},
				{Kind: SegmentProperty, Property: "question"},
			},
			expected: "faqs[index].question",
		},
		{
			name: "non-identifier property uses bracket form",
			base: "rows",
			segments: []Segment{
				{Kind: SegmentProperty, Property: "first name"},
			},
			expected: `rows["first name"]`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Accessor(tc.base, tc.segments))
		})
	}
}

func TestResolveLocation(t *testing.T) {
	// { question: 'What?', tags: ['a', 'b'] } with hand-assigned positions
	question := &markup.StringLit{Value: "What?", ExprBase: markup.NewExprBase("'What?'", markup.Position{StartLine: 2, StartCol: 13, EndLine: 2, EndCol: 20})}
	tagA := &markup.StringLit{Value: "a", ExprBase: markup.NewExprBase("'a'", markup.Position{StartLine: 3, StartCol: 10, EndLine: 3, EndCol: 13})}
	tags := &markup.ArrayLit{Elems: []markup.Expr{tagA}, ExprBase: markup.NewExprBase("['a']", markup.Position{StartLine: 3, StartCol: 9, EndLine: 3, EndCol: 14})}
	object := &markup.ObjectLit{Props: []*markup.Prop{
		{Key: "question", Value: question},
		{Key: "tags", Value: tags},
	}}

	tests := []struct {
		name     string
		segments []Segment
		expected *Location
	}{
		{
			name:     "property resolves to value location",
			segments: []Segment{{Kind: SegmentProperty, Property: "question"}},
			expected: &Location{File: "faq.jsx", Start: "2:13", End: "2:20"},
		},
		{
			name: "property then index",
			segments: []Segment{
				{Kind: SegmentProperty, Property: "tags"},
				{Kind: SegmentIndex, Index: 0},
			},
			expected: &Location{File: "faq.jsx", Start: "3:10", End: "3:13"},
		},
		{
			name:     "missing key fails",
			segments: []Segment{{Kind: SegmentProperty, Property: "answer"}},
			expected: nil,
		},
		{
			name: "index out of range fails",
			segments: []Segment{
				{Kind: SegmentProperty, Property: "tags"},
				{Kind: SegmentIndex, Index: 5},
			},
			expected: nil,
		},
		{
			name: "shape mismatch fails",
			segments: []Segment{
				{Kind: SegmentProperty, Property: "question"},
				{Kind: SegmentProperty, Property: "nested"},
			},
			expected: nil,
		},
		{
			name: "variable segment stops at the containing array",
			segments: []Segment{
				{Kind: SegmentProperty, Property: "tags"},
				{Kind: SegmentVariable, Variable: "i"},
			},
			expected: &Location{File: "faq.jsx", Start: "3:9", End: "3:14"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveLocation("faq.jsx", object, tc.segments))
		})
	}
}
