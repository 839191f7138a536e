package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			name:     "self closing element",
			node:     &Element{Tag: "img", SelfClosing: true},
			expected: "<img />",
		},
		{
			name: "element with string attribute",
			node: &Element{
				Tag:        "div",
				Attributes: []*Attribute{{Name: "className", Value: "card"}},
				Children:   []Node{&TextRun{Text: "hello"}},
			},
			expected: `<div className="card">hello</div>`,
		},
		{
			name: "expression attribute",
			node: &Element{
				Tag:         "img",
				Attributes:  []*Attribute{{Name: "src", Value: "item.image", IsExpr: true}},
				SelfClosing: true,
			},
			expected: "<img src={item.image} />",
		},
		{
			name: "string attribute containing quotes switches quote char",
			node: &Element{
				Tag:         "div",
				Attributes:  []*Attribute{{Name: "data-info", Value: `{"file":"a.jsx"}`}},
				SelfClosing: true,
			},
			expected: `<div data-info='{"file":"a.jsx"}' />`,
		},
		{
			name: "bare attribute",
			node: &Element{
				Tag:         "input",
				Attributes:  []*Attribute{{Name: "disabled", Bare: true}},
				SelfClosing: true,
			},
			expected: "<input disabled />",
		},
		{
			name: "expression slot child",
			node: &Element{
				Tag:      "span",
				Children: []Node{&ExpressionSlot{Raw: "user.name"}},
			},
			expected: "<span>{user.name}</span>",
		},
		{
			name: "fragment",
			node: &Fragment{Children: []Node{
				&Element{Tag: "a", SelfClosing: true},
				&TextRun{Text: " "},
				&Element{Tag: "b", SelfClosing: true},
			}},
			expected: "<><a /> <b /></>",
		},
		{
			name:     "empty non self closing element",
			node:     &Element{Tag: "div"},
			expected: "<div></div>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Render(tc.node))
		})
	}
}

func TestRender_SplicesEmbeddedTrees(t *testing.T) {
	raw := "items.map((item) => <li>{item.label}</li>)"
	offset := 100
	li := &Element{
		Tag:       "li",
		StartByte: offset + 20,
		EndByte:   offset + len(raw) - 1,
		Children:  []Node{&ExpressionSlot{Raw: "item.label"}},
	}
	slot := &ExpressionSlot{
		Expr: &Call{
			Callee: NewRawExpr("items.map", Position{}),
			Args:   []Expr{&Func{Returns: []Node{li}}},
		},
		Raw:       raw,
		StartByte: offset,
	}

	assert.Equal(t, "{"+raw+"}", Render(slot), "unchanged trees reproduce the raw text")

	li.SetAttr("data-mark", "1")
	assert.Equal(t, `{items.map((item) => <li data-mark="1">{item.label}</li>)}`, Render(slot),
		"mutations inside the embedded tree reach the output")
}

func TestElement_SetAttr(t *testing.T) {
	element := &Element{Tag: "div", Attributes: []*Attribute{
		{Name: "id", Value: "old"},
		{Name: "className", Value: "card"},
	}}

	element.SetAttr("id", "new")
	assert.Len(t, element.Attributes, 2, "replacement must not duplicate the attribute")
	assert.Equal(t, "new", element.Attr("id").Value)
	assert.Equal(t, "id", element.Attributes[0].Name, "replacement keeps attribute order")

	element.SetAttrExpr("id", "`a-${i}`")
	assert.Len(t, element.Attributes, 2)
	assert.True(t, element.Attr("id").IsExpr)

	element.SetAttr("title", "added")
	assert.Len(t, element.Attributes, 3)
}

func TestElement_SetAttr_BareBecomesValued(t *testing.T) {
	element := &Element{Tag: "div", Attributes: []*Attribute{
		{Name: "data-editor-id", Bare: true},
	}}

	element.SetAttr("data-editor-id", "abc123def456")
	assert.Equal(t, `<div data-editor-id="abc123def456"></div>`, Render(element))

	element.Attr("data-editor-id").Bare = true
	element.SetAttrExpr("data-editor-id", "`abc123def456-${i}`")
	assert.Equal(t, "<div data-editor-id={`abc123def456-${i}`}></div>", Render(element))
}
