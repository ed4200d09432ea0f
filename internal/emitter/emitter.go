// Package emitter defines the contract for translating an annotated
// Mini-Lang AST to equivalent source in a target scripting language.
// No implementation ships here: emission is an out-of-scope external
// collaborator (spec §1); this package exists so a driver has a
// documented extension point to hold one to.
package emitter

import (
	"io"

	"github.com/mlang-run/minilang/internal/ast"
)

// Emitter produces equivalent source in a target scripting language from
// a semantically-valid Mini-Lang AST.
type Emitter interface {
	Emit(prog *ast.Program, w io.Writer) error
}
