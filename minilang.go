// Package minilang compiles and interprets Mini-Lang programs: a small
// statically-typed imperative language with integers, floats, booleans,
// strings, fixed-size typed arrays, first-order functions, block scope,
// and standard control flow.
package minilang

import (
	"io"

	"github.com/mlang-run/minilang/internal/lexer"
	"github.com/mlang-run/minilang/internal/parser"
	"github.com/mlang-run/minilang/internal/semantic"
)

// Version is the minilang module version string.
const Version = "0.1.0"

// Compile parses and semantically analyzes a Mini-Lang program, returning
// a Program ready for repeated execution via Program.Run.
func Compile(source string) (*Program, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		switch e := err.(type) {
		case *lexer.Error:
			return nil, &ParseError{Line: e.Pos.Line, Column: e.Pos.Column, Message: e.Message}
		case *parser.ParseError:
			return nil, &ParseError{Line: e.Pos.Line, Column: e.Pos.Column, Message: e.Message}
		case parser.ErrorList:
			if len(e) > 0 {
				return nil, &ParseError{Line: e[0].Pos.Line, Column: e[0].Pos.Column, Message: e[0].Message}
			}
			return nil, &ParseError{Message: e.Error()}
		default:
			return nil, &ParseError{Message: err.Error()}
		}
	}

	result, err := semantic.Resolve(prog)
	if err != nil {
		if el, ok := err.(semantic.ErrorList); ok && len(el) > 0 {
			return nil, &SemanticError{
				Line:    el[0].Pos.Line,
				Column:  el[0].Pos.Column,
				Message: el[0].Message,
				Count:   len(el),
			}
		}
		return nil, &SemanticError{Message: err.Error(), Count: 1}
	}

	return &Program{ast: prog, result: result, source: source}, nil
}

// MustCompile is like Compile but panics if the program cannot be
// compiled. It simplifies initialization of global program variables.
func MustCompile(source string) *Program {
	prog, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return prog
}

// Run is a convenience function for one-off execution: it compiles source
// and runs it, returning the captured output.
func Run(source string, stdin io.Reader) (string, error) {
	prog, err := Compile(source)
	if err != nil {
		return "", err
	}
	return prog.Run(&Config{Stdin: stdin})
}

// Exec compiles and runs source, writing output directly to w instead of
// capturing and returning it.
func Exec(source string, stdin io.Reader, w io.Writer) error {
	prog, err := Compile(source)
	if err != nil {
		return err
	}
	_, err = prog.Run(&Config{Stdin: stdin, Stdout: w})
	return err
}
