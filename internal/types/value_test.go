package types

import (
	"math"
	"testing"
)

func TestValueConstructors(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind ValueKind
	}{
		{"Unit", Unit(), VUnit},
		{"IntVal(0)", IntVal(0), VInt},
		{"IntVal(42)", IntVal(42), VInt},
		{"IntVal(-3)", IntVal(-3), VInt},
		{"FloatVal(3.14)", FloatVal(3.14), VFloat},
		{"BoolVal(true)", BoolVal(true), VBool},
		{"BoolVal(false)", BoolVal(false), VBool},
		{"StringVal empty", StringVal(""), VString},
		{"StringVal hello", StringVal("hello"), VString},
		{"ArrayVal empty", ArrayVal(TInt, nil), VArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
		})
	}
}

func TestValueAccessors(t *testing.T) {
	if got := IntVal(42).Int(); got != 42 {
		t.Errorf("Int() = %d, want 42", got)
	}
	if got := FloatVal(2.5).Float(); got != 2.5 {
		t.Errorf("Float() = %v, want 2.5", got)
	}
	if got := BoolVal(true).Bool(); !got {
		t.Error("Bool() = false, want true")
	}
	if got := StringVal("hi").Str(); got != "hi" {
		t.Errorf("Str() = %q, want %q", got, "hi")
	}
	arr := ArrayVal(TInt, []Value{IntVal(1), IntVal(2), IntVal(3)})
	if got := arr.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := arr.ElemType(); got != TInt {
		t.Errorf("ElemType() = %v, want TInt", got)
	}
}

func TestValueCloneScalarIsNoop(t *testing.T) {
	v := IntVal(7)
	cp := v.Clone()
	if cp.Int() != 7 {
		t.Fatalf("Clone() of a scalar changed the value: got %d", cp.Int())
	}
}

func TestValueCloneArrayIsDeep(t *testing.T) {
	original := ArrayVal(TInt, []Value{IntVal(1), IntVal(2), IntVal(3)})
	clone := original.Clone()

	// Mutate the clone's backing slice directly, the way addr() does for
	// an index-assignment, and confirm the original is unaffected.
	clone.Elems()[0] = IntVal(99)

	if original.Elems()[0].Int() != 1 {
		t.Fatalf("mutating the clone mutated the original: got %d", original.Elems()[0].Int())
	}
	if clone.Elems()[0].Int() != 99 {
		t.Fatalf("clone mutation did not take: got %d", clone.Elems()[0].Int())
	}
}

func TestValueCloneIsRecursive(t *testing.T) {
	inner := ArrayVal(TInt, []Value{IntVal(1), IntVal(2)})
	outer := ArrayVal(Array(TInt, 2), []Value{inner, inner})
	clone := outer.Clone()

	clone.Elems()[0].Elems()[0] = IntVal(100)

	if outer.Elems()[0].Elems()[0].Int() != 1 {
		t.Fatalf("nested clone aliased the original's inner array")
	}
	if outer.Elems()[1].Elems()[0].Int() != 1 {
		t.Fatalf("cloning one element leaked into a sibling sharing the same backing array")
	}
}

func TestValueStringFormatting(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"positive int", IntVal(42), "42"},
		{"negative int", IntVal(-7), "-7"},
		{"zero int", IntVal(0), "0"},
		{"bool true", BoolVal(true), "true"},
		{"bool false", BoolVal(false), "false"},
		{"string", StringVal("hello"), "hello"},
		{"empty string", StringVal(""), ""},
		{"integral float keeps decimal point", FloatVal(3), "3.0"},
		{"fractional float", FloatVal(2.5), "2.5"},
		{"array", ArrayVal(TInt, []Value{IntVal(1), IntVal(2)}), "[1, 2]"},
		{"empty array", ArrayVal(TInt, nil), "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatFloatAlwaysHasDecimalPoint(t *testing.T) {
	tests := []float64{0, 1, -1, 100, 0.001, 1e20, math.Pi}
	for _, f := range tests {
		s := formatFloat(f)
		hasPoint := false
		for _, c := range s {
			if c == '.' {
				hasPoint = true
				break
			}
		}
		if !hasPoint {
			t.Errorf("formatFloat(%v) = %q, missing a decimal point", f, s)
		}
	}
}
