package types

import (
	"fmt"
	"strconv"
)

// ValueKind is the runtime tag of a Value.
type ValueKind uint8

const (
	VInt ValueKind = iota
	VFloat
	VBool
	VString
	VArray
	VUnit
)

// Value is a Mini-Lang runtime value: a tagged union over
// Int | Float | Bool | String | Array | Unit (spec §3), mirroring the
// reference toolchain's tagged-struct Value pattern rather than boxing
// every value behind interface{}.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
	arr  []Value
	elem *Type // element type, set only when kind == VArray
}

// Unit is the value of a Void-returning function that falls off the end
// without a Return (spec §4.4).
func Unit() Value { return Value{kind: VUnit} }

// IntVal constructs an Int value.
func IntVal(i int64) Value { return Value{kind: VInt, i: i} }

// FloatVal constructs a Float value.
func FloatVal(f float64) Value { return Value{kind: VFloat, f: f} }

// BoolVal constructs a Bool value.
func BoolVal(b bool) Value { return Value{kind: VBool, b: b} }

// StringVal constructs a String value.
func StringVal(s string) Value { return Value{kind: VString, s: s} }

// ArrayVal constructs an Array value. The slice is taken as-is; callers
// that need value-copy semantics (spec §4.4/§5) must clone it first via
// Value.Clone.
func ArrayVal(elem *Type, elems []Value) Value {
	return Value{kind: VArray, elem: elem, arr: elems}
}

// Kind returns the value's runtime tag.
func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Int() int64       { return v.i }
func (v Value) Float() float64   { return v.f }
func (v Value) Bool() bool       { return v.b }
func (v Value) Str() string      { return v.s }
func (v Value) Elems() []Value   { return v.arr }
func (v Value) ElemType() *Type  { return v.elem }
func (v Value) Len() int         { return len(v.arr) }

// Clone returns an independent copy: scalars are returned as-is (value
// types already), arrays are deep-copied so the callee observes its own
// copy (spec §4.4 call semantics, §5 "assigning an array to a new binding
// copies it" — see DESIGN.md Open Question 5).
func (v Value) Clone() Value {
	if v.kind != VArray {
		return v
	}
	cp := make([]Value, len(v.arr))
	for i, e := range v.arr {
		cp[i] = e.Clone()
	}
	return Value{kind: VArray, elem: v.elem, arr: cp}
}

// String renders the value the way spec §6 requires print() to: ints in
// base 10, floats with a decimal point, bools lower-case, strings as
// their literal characters. Arrays are rendered for debug purposes only
// (print(array) is rejected earlier, at semantic analysis).
func (v Value) String() string {
	switch v.kind {
	case VInt:
		return strconv.FormatInt(v.i, 10)
	case VFloat:
		return formatFloat(v.f)
	case VBool:
		if v.b {
			return "true"
		}
		return "false"
	case VString:
		return v.s
	case VArray:
		out := "["
		for i, e := range v.arr {
			if i > 0 {
				out += ", "
			}
			out += e.String()
		}
		return out + "]"
	default:
		return ""
	}
}

// formatFloat renders a float with the shortest round-trip decimal
// representation that still always contains a decimal point (spec §6).
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i, c := range s {
		if c == '.' {
			return s
		}
		if c == 'e' || c == 'E' {
			return s[:i] + ".0" + s[i:]
		}
	}
	return s + ".0"
}

// GoString supports %#v-style debug printing in tests.
func (v Value) GoString() string {
	return fmt.Sprintf("Value(%s)", v.String())
}
