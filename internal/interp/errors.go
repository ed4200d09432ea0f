// Package interp is Mini-Lang's tree-walking interpreter: it executes a
// semantically-valid, annotated AST directly, maintaining an activation
// stack of call frames and a runtime array of scope environments that
// mirrors the lexical scope tree the analyzer built (spec §4.4).
package interp

import (
	"fmt"

	"github.com/mlang-run/minilang/internal/diag"
	"github.com/mlang-run/minilang/internal/token"
	"github.com/mlang-run/minilang/internal/types"
)

// Error is a runtime error with source position (spec §4.4/§7:
// "Runtime error at line L, column C: message").
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Runtime error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Kind satisfies diag.Diagnostic.
func (e *Error) Kind() diag.Kind { return diag.Runtime }

var _ diag.Diagnostic = (*Error)(nil)

func newError(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// returnSignal carries a function's return value up through exec's normal
// error-return plumbing, the same way the reference toolchain's VM package
// threads its ErrReturn sentinel through bytecode execution — except here
// it also carries the value, since tree-walking has no value stack to
// stash it on.
type returnSignal struct {
	Value types.Value
}

func (r *returnSignal) Error() string { return "return" }
