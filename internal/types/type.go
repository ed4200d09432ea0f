// Package types defines Mini-Lang's static type descriptors and runtime
// values.
package types

import "fmt"

// Kind is the tag of a Type descriptor.
type Kind uint8

const (
	Int Kind = iota
	Float
	Bool
	String
	ArrayKind
	Void
)

// Type is a tagged variant: Int | Float | Bool | String |
// Array(element, size) | Void. Array element and size are only set when
// Kind == ArrayKind; Size is -1 when the size is unknown/unspecified
// (e.g. a parameter array type, or an expression's inferred array type
// before the analyzer has fixed its length).
type Type struct {
	Kind    Kind
	Elem    *Type
	Size    int
}

// NoSize marks an array type whose size is not fixed (a parameter
// declared "int[]", or an expression type before length is known).
const NoSize = -1

var (
	TInt    = &Type{Kind: Int}
	TFloat  = &Type{Kind: Float}
	TBool   = &Type{Kind: Bool}
	TString = &Type{Kind: String}
	TVoid   = &Type{Kind: Void}
)

// Array returns an Array(elem, size) type descriptor.
func Array(elem *Type, size int) *Type {
	return &Type{Kind: ArrayKind, Elem: elem, Size: size}
}

// IsNumeric reports whether t is Int or Float.
func (t *Type) IsNumeric() bool {
	return t != nil && (t.Kind == Int || t.Kind == Float)
}

// Equal reports whether two type descriptors denote the same type.
// Array sizes participate in equality only when both are fixed and
// differ; an unspecified size (NoSize) matches any size, which is what
// lets an unsized array-typed parameter accept any fixed-size argument.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind != ArrayKind {
		return true
	}
	if t.Size != NoSize && other.Size != NoSize && t.Size != other.Size {
		return false
	}
	return t.Elem.Equal(other.Elem)
}

// AssignableTo reports whether a value of type t may be assigned/passed
// where a value of type target is expected, allowing exactly one implicit
// widening: Int -> Float (spec §4.3).
func (t *Type) AssignableTo(target *Type) bool {
	if t.Equal(target) {
		return true
	}
	if t.Kind == Int && target.Kind == Float {
		return true
	}
	return false
}

// String renders the type the way Mini-Lang source would spell it.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Void:
		return "void"
	case ArrayKind:
		if t.Size == NoSize {
			return fmt.Sprintf("%s[]", t.Elem)
		}
		return fmt.Sprintf("%s[%d]", t.Elem, t.Size)
	default:
		return "<invalid type>"
	}
}
