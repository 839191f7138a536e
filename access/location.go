package access

import (
	"github.com/viant/jsxmark/markup"
)

// Location describes where a resolved literal value lives in its defining
// file. Start and End are "line:col" with 1-based lines and columns.
type Location struct {
	File     string `json:"file"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Accessor string `json:"accessor,omitempty"`
}

// ResolveLocation walks a literal object/array expression following the
// segment list and returns the location of the value the path lands on. It
// fails (nil) the moment a segment does not match the literal's actual
// shape: a missing key, an index out of range or a non-literal value. A
// variable segment stops resolution at the current node, which cannot be
// narrowed further statically.
func ResolveLocation(file string, candidate markup.Expr, segments []Segment) *Location {
	current := markup.Unwrap(candidate)
	if current == nil {
		return nil
	}
	for _, segment := range segments {
		switch segment.Kind {
		case SegmentProperty:
			object, ok := current.(*markup.ObjectLit)
			if !ok {
				return nil
			}
			prop := object.Prop(segment.Property)
			if prop == nil || prop.Value == nil {
				return nil
			}
			current = markup.Unwrap(prop.Value)
		case SegmentIndex:
			array, ok := current.(*markup.ArrayLit)
			if !ok || segment.Index < 0 || segment.Index >= len(array.Elems) {
				return nil
			}
			current = markup.Unwrap(array.Elems[segment.Index])
		case SegmentVariable:
			pos := current.Pos()
			return &Location{File: file, Start: pos.Start(), End: pos.End()}
		}
		if current == nil {
			return nil
		}
	}
	pos := current.Pos()
	return &Location{File: file, Start: pos.Start(), End: pos.End()}
}
