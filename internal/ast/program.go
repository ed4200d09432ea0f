package ast

import (
	"github.com/mlang-run/minilang/internal/token"
	"github.com/mlang-run/minilang/internal/types"
)

// Program is the top-level AST node: a sequence of function declarations
// and/or top-level statements (spec §3: "Program(top_level: Vec<Decl|Stmt>)").
type Program struct {
	TopLevel []Node // each element is a Decl or a Stmt
	StartPos token.Position
	EndPos   token.Position
}

func (p *Program) Pos() token.Position { return p.StartPos }
func (p *Program) End() token.Position { return p.EndPos }

// Functions returns the top-level function declarations, in source order.
func (p *Program) Functions() []*FunctionDecl {
	var fns []*FunctionDecl
	for _, n := range p.TopLevel {
		if fn, ok := n.(*FunctionDecl); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Param is one function parameter: a declared type and a name.
type Param struct {
	Type *types.Type
	Name string
}

// FunctionDecl is "function NAME(params) [: type] block" (spec §3).
// ReturnType is types.TVoid when no return-type annotation is present.
type FunctionDecl struct {
	BaseDecl
	Name       string
	Params     []Param
	ReturnType *types.Type
	Body       *Block
	NamePos    token.Position
	Symbol     *Symbol
}

var (
	_ Node = (*Program)(nil)
	_ Decl = (*FunctionDecl)(nil)
)
