package ast

import "github.com/mlang-run/minilang/internal/types"

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	Neg UnaryOp = iota // -x
	Not                // not x
)

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	LogAnd
	LogOr
)

// IntLit is an integer literal.
type IntLit struct {
	BaseExpr
	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	BaseExpr
	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	BaseExpr
	Value bool
}

// StringLit is a string literal (decoded payload, no surrounding quotes).
type StringLit struct {
	BaseExpr
	Value string
}

// Identifier references a variable, or names the callee of a Call.
// ResolvedType and Symbol are filled in by the semantic analyzer.
type Identifier struct {
	BaseExpr
	Name         string
	ResolvedType *types.Type
	Symbol       *Symbol
}

// ArrayLit is an array literal: "[" expr {"," expr} "]".
type ArrayLit struct {
	BaseExpr
	Elements     []Expr
	ResolvedType *types.Type // Array(T, len(Elements)) once analyzed
}

// Unary is a unary expression: "not" operand or "-" operand.
type Unary struct {
	BaseExpr
	Op           UnaryOp
	Operand      Expr
	ResolvedType *types.Type
}

// Binary is a binary expression.
type Binary struct {
	BaseExpr
	Op           BinaryOp
	Left, Right  Expr
	ResolvedType *types.Type
}

// Coerce marks an implicit Int->Float widening the semantic analyzer
// inserted at a specific site (spec §9 "implicit numeric widening": never
// let it happen silently at the interpreter). Inner keeps its own Int
// ResolvedType; Coerce's own type is always Float.
type Coerce struct {
	BaseExpr
	Inner Expr
}

// Index is an array-indexing expression; also usable, via IsLValue, as an
// assignment target.
type Index struct {
	BaseExpr
	Target       Expr
	IndexExpr    Expr
	ResolvedType *types.Type // element type
}

// Call is a named-callee function call (no call-of-expression, spec §4.2).
type Call struct {
	BaseExpr
	Callee       string
	Args         []Expr
	ResolvedType *types.Type
	Func         *FunctionDecl // resolved target, set by the analyzer
}

// Input is "input(Prompt)": writes Prompt to stdout (no newline), flushes,
// and reads one line from stdin (spec §4.4/§6). Prompt must be String;
// the expression's type is always String.
type Input struct {
	BaseExpr
	Prompt Expr
}

// Assign is "target = value" where target is an Identifier or Index
// (spec's LValue grammar). A bare assignment statement is an ExprStmt
// wrapping one of these (spec §3).
type Assign struct {
	BaseExpr
	Target       Expr // *Identifier or *Index
	Value        Expr
	ResolvedType *types.Type
}

func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*BoolLit) exprNode()    {}
func (*StringLit) exprNode()  {}
func (*Identifier) exprNode() {}
func (*ArrayLit) exprNode()   {}
func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Coerce) exprNode()     {}
func (*Index) exprNode()      {}
func (*Call) exprNode()       {}
func (*Input) exprNode()      {}
func (*Assign) exprNode()     {}

// ExprType returns e's resolved type. Valid only after semantic analysis.
func ExprType(e Expr) *types.Type {
	switch n := e.(type) {
	case *IntLit:
		return types.TInt
	case *FloatLit:
		return types.TFloat
	case *BoolLit:
		return types.TBool
	case *StringLit:
		return types.TString
	case *Identifier:
		return n.ResolvedType
	case *ArrayLit:
		return n.ResolvedType
	case *Unary:
		return n.ResolvedType
	case *Binary:
		return n.ResolvedType
	case *Coerce:
		return types.TFloat
	case *Index:
		return n.ResolvedType
	case *Call:
		return n.ResolvedType
	case *Input:
		return types.TString
	case *Assign:
		return n.ResolvedType
	default:
		return nil
	}
}
