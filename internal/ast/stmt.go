package ast

import "github.com/mlang-run/minilang/internal/types"

// VarDecl declares a variable, with an optional initializer. Declaring an
// unsized array with no initializer is rejected by the semantic analyzer
// (spec §4.4).
type VarDecl struct {
	BaseStmt
	DeclaredType *types.Type
	Name         string
	Initializer  Expr // nil if absent
	Symbol       *Symbol
}

// ExprStmt is an expression evaluated for effect. Assignment statements
// are ExprStmt wrapping an *Assign (spec §3); bare expression-statements
// are accepted per spec §9's open-question resolution and simply discard
// their value.
type ExprStmt struct {
	BaseStmt
	X Expr
}

// Print writes one value followed by a newline to stdout (spec §4.4/§6).
type Print struct {
	BaseStmt
	X Expr
}

// Block is a sequence of statements forming its own lexical scope.
// ScopeIndex is the arena index of the scope the semantic analyzer pushed
// for this block (spec §9's (scope_index, slot_index) model); it is
// filled in by the resolver and used by the interpreter to size the
// matching runtime environment without any string lookups.
type Block struct {
	BaseStmt
	Stmts      []Stmt
	ScopeIndex int
}

// If is "if (Cond) Then [else Else]". Else is nil when absent.
type If struct {
	BaseStmt
	Cond Expr
	Then *Block
	Else *Block
}

// While is "while (Cond) Body".
type While struct {
	BaseStmt
	Cond Expr
	Body *Block
}

// For is "for (Init; Cond; Step) Body". Init is either a *VarDecl or an
// *ExprStmt (spec grammar: var_decl | expr); both are Stmt.
type For struct {
	BaseStmt
	Init Stmt
	Cond Expr
	Step Expr
	Body *Block
}

// Return is "return [Value] ;". Value is nil for a bare return (spec:
// Return without value requires the enclosing function's return type to
// be Void).
type Return struct {
	BaseStmt
	Value Expr
}

func (*VarDecl) stmtNode()  {}
func (*ExprStmt) stmtNode() {}
func (*Print) stmtNode()    {}
func (*Block) stmtNode()    {}
func (*If) stmtNode()       {}
func (*While) stmtNode()    {}
func (*For) stmtNode()      {}
func (*Return) stmtNode()   {}
