// Package parser implements a recursive-descent parser that turns a
// Mini-Lang token stream into an AST (spec §4.2).
package parser

import (
	"fmt"

	"github.com/mlang-run/minilang/internal/diag"
	"github.com/mlang-run/minilang/internal/token"
)

// ParseError is a syntax error with source position (spec §4.2:
// "ParserError{line, column, expected, found}").
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Syntactic error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Kind satisfies diag.Diagnostic.
func (e *ParseError) Kind() diag.Kind { return diag.Syntactic }

var _ diag.Diagnostic = (*ParseError)(nil)

// ErrorList collects ParseErrors. The parser does not attempt recovery
// (spec §4.2: "the first syntactic error aborts parsing"), so in practice
// this never holds more than one entry; it keeps the same shape as the
// semantic analyzer's batched diagnostics for a uniform Err() contract.
type ErrorList []*ParseError

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Err returns el as an error, or nil if el is empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
