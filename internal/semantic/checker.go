package semantic

import (
	"github.com/mlang-run/minilang/internal/ast"
	"github.com/mlang-run/minilang/internal/types"
)

// checkMustReturn verifies that every control-flow path through a
// value-returning function executes a Return (spec §4.3: "a simple
// structural must-return analysis on blocks"). Void functions are exempt:
// falling off the end is equivalent to a bare Return.
func checkMustReturn(fn *ast.FunctionDecl, errs *ErrorList) {
	if fn.ReturnType.Kind == types.Void {
		return
	}
	if !blockMustReturn(fn.Body) {
		errs.Add(fn.NamePos, "function '%s' does not return a value on every path", fn.Name)
	}
}

// blockMustReturn reports whether b is guaranteed to execute a Return on
// every path: a block must-returns iff its last statement must-returns.
func blockMustReturn(b *ast.Block) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	return stmtMustReturn(b.Stmts[len(b.Stmts)-1])
}

// stmtMustReturn reports whether s is guaranteed to return: a Return
// always does; an If must-returns iff both branches do; a nested Block
// must-returns iff its last statement does; every other statement does not.
func stmtMustReturn(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.Return:
		return true
	case *ast.If:
		return n.Else != nil && blockMustReturn(n.Then) && blockMustReturn(n.Else)
	case *ast.Block:
		return blockMustReturn(n)
	default:
		return false
	}
}
