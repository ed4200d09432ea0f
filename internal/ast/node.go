// Package ast defines the abstract syntax tree for Mini-Lang programs.
//
// The tree is a closed sum: Expr, Stmt, and Decl are marker interfaces
// with unexported marker methods, so only this package can implement
// them. Every consumer (resolver, checker, interpreter) dispatches on the
// concrete node type with a type-switch rather than a virtual method per
// operation — this is the idiomatic Go rendition of "closed tagged union,
// exhaustive match" (see DESIGN.md, Open Question 1).
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── IntLit, FloatLit, BoolLit, StringLit - literals
//	│   ├── Identifier, ArrayLit - references/construction
//	│   ├── Unary, Binary, Coerce - operations
//	│   ├── Index, Call, Assign - lvalue-producing / call
//	├── Stmt (interface) - statements that perform actions
//	│   ├── VarDecl, ExprStmt, Print - basic
//	│   ├── If, While, For - control flow
//	│   ├── Return, Block - other
//	└── FunctionDecl, Program - top-level structures
package ast

import "github.com/mlang-run/minilang/internal/token"

// Node is implemented by every AST node and provides source span
// information for diagnostics.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is the interface for top-level declarations.
type Decl interface {
	Node
	declNode()
}

// BaseExpr provides shared span-tracking fields for expression nodes.
type BaseExpr struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// BaseStmt provides shared span-tracking fields for statement nodes.
type BaseStmt struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseStmt) Pos() token.Position { return b.StartPos }
func (b *BaseStmt) End() token.Position { return b.EndPos }
func (b *BaseStmt) stmtNode()           {}

// BaseDecl provides shared span-tracking fields for declaration nodes.
type BaseDecl struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseDecl) Pos() token.Position { return b.StartPos }
func (b *BaseDecl) End() token.Position { return b.EndPos }
func (b *BaseDecl) declNode()           {}

// IsLValue reports whether e can appear on the left of "=": a bare
// identifier or an index expression (spec: LValue ::= Identifier | Index).
func IsLValue(e Expr) bool {
	switch e.(type) {
	case *Identifier, *Index:
		return true
	default:
		return false
	}
}

// MakeBaseExpr builds a BaseExpr spanning [start, end).
func MakeBaseExpr(start, end token.Position) BaseExpr {
	return BaseExpr{StartPos: start, EndPos: end}
}

// MakeBaseStmt builds a BaseStmt spanning [start, end).
func MakeBaseStmt(start, end token.Position) BaseStmt {
	return BaseStmt{StartPos: start, EndPos: end}
}

// MakeBaseDecl builds a BaseDecl spanning [start, end).
func MakeBaseDecl(start, end token.Position) BaseDecl {
	return BaseDecl{StartPos: start, EndPos: end}
}
