package minilang

import (
	"bytes"
	"io"

	"github.com/mlang-run/minilang/internal/ast"
	"github.com/mlang-run/minilang/internal/interp"
	"github.com/mlang-run/minilang/internal/semantic"
)

// Program is a parsed and semantically-validated Mini-Lang program ready
// for interpretation.
type Program struct {
	ast    *ast.Program
	result *semantic.Result
	source string
}

// Source returns the original Mini-Lang source text.
func (p *Program) Source() string { return p.source }

// Run interprets the program, reading input() calls from config.Stdin and
// writing print()/input()-prompt output to config.Stdout. If config is nil
// or config.Stdout is nil, output is captured and returned as a string.
func (p *Program) Run(config *Config) (string, error) {
	if config == nil {
		config = &Config{}
	}
	config.applyDefaults()

	var buf *bytes.Buffer
	var out io.Writer
	if config.Stdout == nil {
		buf = &bytes.Buffer{}
		out = buf
	} else {
		out = config.Stdout
	}

	ip := interp.New(p.result, out, config.Stdin)
	err := ip.Run(p.ast)
	if err != nil {
		if re, ok := err.(*interp.Error); ok {
			return bufString(buf), &RuntimeError{Line: re.Pos.Line, Column: re.Pos.Column, Message: re.Message}
		}
		return bufString(buf), &RuntimeError{Message: err.Error()}
	}
	return bufString(buf), nil
}

func bufString(buf *bytes.Buffer) string {
	if buf == nil {
		return ""
	}
	return buf.String()
}
