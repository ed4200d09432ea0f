package interp

import "github.com/mlang-run/minilang/internal/types"

// zeroValue returns the type's default value (spec §4.4: "Variables are
// initialized to the type's default").
func zeroValue(t *types.Type) types.Value {
	switch t.Kind {
	case types.Int:
		return types.IntVal(0)
	case types.Float:
		return types.FloatVal(0)
	case types.Bool:
		return types.BoolVal(false)
	case types.String:
		return types.StringVal("")
	case types.ArrayKind:
		n := t.Size
		if n < 0 {
			n = 0
		}
		elems := make([]types.Value, n)
		for i := range elems {
			elems[i] = zeroValue(t.Elem)
		}
		return types.ArrayVal(t.Elem, elems)
	default:
		return types.Unit()
	}
}
