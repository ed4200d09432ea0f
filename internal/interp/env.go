package interp

import "github.com/mlang-run/minilang/internal/types"

// env is one runtime instance of a lexical scope: a flat slice of values
// indexed by slot (spec §9's "(scope_index, slot_index)" design — the
// interpreter never looks a variable up by name). scopeIndex identifies
// which static scope (from the analyzer's scope arena) this instance
// corresponds to; a function call or loop iteration may create several
// live instances of the same static scope over a program's run.
type env struct {
	scopeIndex int
	slots      []types.Value
}

// find walks the active scope stack from innermost to outermost looking
// for the instance matching scopeIndex. Because the interpreter enters
// and leaves scopes in exactly the same nesting pattern the analyzer did,
// the instance for any symbol still in scope is always present.
func find(scopes []*env, scopeIndex int) *env {
	for i := len(scopes) - 1; i >= 0; i-- {
		if scopes[i].scopeIndex == scopeIndex {
			return scopes[i]
		}
	}
	return nil
}
