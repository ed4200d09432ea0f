// Package semantic implements Mini-Lang's semantic analyzer: a hierarchical
// symbol table, type checking with one implicit numeric widening, array-shape
// validation, and function signature / return-path checks (spec §4.3).
package semantic

import (
	"fmt"
	"strings"

	"github.com/mlang-run/minilang/internal/diag"
	"github.com/mlang-run/minilang/internal/token"
)

// Error is a semantic error with source location (spec §4.3/§7:
// "SemanticError{line, column, message}").
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Semantic error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Kind satisfies diag.Diagnostic.
func (e *Error) Kind() diag.Kind { return diag.Semantic }

var _ diag.Diagnostic = (*Error)(nil)

// ErrorList collects every error found during analysis. Unlike the parser,
// the analyzer does not abort on the first error (spec §4.3: "The analyzer
// accumulates all diagnostics before failing").
type ErrorList []*Error

// Add appends a formatted error to the list.
func (el *ErrorList) Add(pos token.Position, format string, args ...any) {
	*el = append(*el, &Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Err returns el as an error, or nil if el is empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		var sb strings.Builder
		sb.WriteString(el[0].Error())
		for _, e := range el[1:] {
			sb.WriteByte('\n')
			sb.WriteString(e.Error())
		}
		return sb.String()
	}
}
