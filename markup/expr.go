package markup

// Expr represents a JavaScript expression embedded in a JSX tree. Every
// expression keeps the raw source slice it was parsed from so it can be
// re-emitted losslessly.
type Expr interface {
	Pos() Position
	Source() string
	expr()
}

// ExprBase carries the raw source slice and position shared by every
// expression form
type ExprBase struct {
	Raw      string
	Position Position
}

// NewExprBase creates the shared expression base
func NewExprBase(raw string, pos Position) ExprBase {
	return ExprBase{Raw: raw, Position: pos}
}

func (b ExprBase) Pos() Position  { return b.Position }
func (b ExprBase) Source() string { return b.Raw }
func (b ExprBase) expr()          {}

// Ident is a simple variable reference
type Ident struct {
	ExprBase
	Name string
}

// Member is a dot property access, e.g. item.title or item?.title
type Member struct {
	ExprBase
	Object   Expr
	Property string
	Optional bool
}

// Index is a bracketed subscript access, e.g. items[0] or row["name"]
type Index struct {
	ExprBase
	Object Expr
	Key    Expr
}

// Call is a function invocation
type Call struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// BoundName is one name introduced by a function parameter pattern
type BoundName struct {
	Name     string
	Property string // object-pattern key the name was bound from, "" otherwise
	Index    int    // array-pattern position, -1 otherwise
	Rest     bool
}

// Param is one function parameter: either a plain identifier (Name set) or
// a destructuring pattern (Bound set)
type Param struct {
	Name     string
	Bound    []BoundName
	Position Position
}

// Names returns every name the parameter introduces into the callback scope
func (p *Param) Names() []string {
	if p.Name != "" {
		return []string{p.Name}
	}
	names := make([]string, 0, len(p.Bound))
	for _, bound := range p.Bound {
		names = append(names, bound.Name)
	}
	return names
}

// Func is an arrow function or function expression. Returns holds the JSX
// trees the function body returns, when any.
type Func struct {
	ExprBase
	Params  []*Param
	Returns []Node
}

// StringLit is a string literal with quotes stripped
type StringLit struct {
	ExprBase
	Value string
}

// NumberLit is a numeric literal kept in its raw form
type NumberLit struct {
	ExprBase
	Value string
}

// Prop is one key-value entry of an object literal
type Prop struct {
	Key      string
	Computed bool
	Value    Expr
	Position Position
}

// ObjectLit is an object literal initializer
type ObjectLit struct {
	ExprBase
	Props []*Prop
}

// Prop retrieves a non-computed property by key, or nil
func (o *ObjectLit) Prop(key string) *Prop {
	for _, prop := range o.Props {
		if !prop.Computed && prop.Key == key {
			return prop
		}
	}
	return nil
}

// ArrayLit is an array literal initializer
type ArrayLit struct {
	ExprBase
	Elems []Expr
}

// Binary is a two-operand expression; only its operand structure is modeled
type Binary struct {
	ExprBase
	Left  Expr
	Right Expr
}

// Conditional is a ternary expression
type Conditional struct {
	ExprBase
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

// Assertion wraps an expression whose value is unchanged by its syntax:
// parentheses, `as`/`satisfies` type assertions and non-null assertions
type Assertion struct {
	ExprBase
	Inner Expr
}

// RawExpr is any expression form the converter does not model structurally
type RawExpr struct {
	ExprBase
}

// NewRawExpr creates an unmodeled expression from raw source text
func NewRawExpr(raw string, pos Position) *RawExpr {
	return &RawExpr{ExprBase{Raw: raw, Position: pos}}
}

// Unwrap strips assertion and parenthesization wrappers
func Unwrap(e Expr) Expr {
	for {
		wrapper, ok := e.(*Assertion)
		if !ok || wrapper.Inner == nil {
			return e
		}
		e = wrapper.Inner
	}
}

// WalkExpr visits e and every structurally modeled sub-expression, including
// markup returned by function expressions. Visiting stops for a branch when
// fn returns false.
func WalkExpr(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch actual := e.(type) {
	case *Member:
		WalkExpr(actual.Object, fn)
	case *Index:
		WalkExpr(actual.Object, fn)
		WalkExpr(actual.Key, fn)
	case *Call:
		WalkExpr(actual.Callee, fn)
		for _, arg := range actual.Args {
			WalkExpr(arg, fn)
		}
	case *Func:
		for _, ret := range actual.Returns {
			Walk(ret, func(node Node) bool {
				if slot, ok := node.(*ExpressionSlot); ok {
					WalkExpr(slot.Expr, fn)
				}
				return true
			})
		}
	case *ObjectLit:
		for _, prop := range actual.Props {
			WalkExpr(prop.Value, fn)
		}
	case *ArrayLit:
		for _, elem := range actual.Elems {
			WalkExpr(elem, fn)
		}
	case *Binary:
		WalkExpr(actual.Left, fn)
		WalkExpr(actual.Right, fn)
	case *Conditional:
		WalkExpr(actual.Test, fn)
		WalkExpr(actual.Consequent, fn)
		WalkExpr(actual.Alternate, fn)
	case *Assertion:
		WalkExpr(actual.Inner, fn)
	}
}

// Walk visits node and all its descendants in document order. Visiting stops
// for a branch when fn returns false.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch actual := node.(type) {
	case *Element:
		for _, child := range actual.Children {
			Walk(child, fn)
		}
	case *Fragment:
		for _, child := range actual.Children {
			Walk(child, fn)
		}
	}
}
