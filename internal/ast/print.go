package ast

import (
	"fmt"
	"strings"
)

// Dump renders prog as an indented tree, one node per line. This backs
// the CLI's "--ast" flag; it is a debug aid, not the full ASCII-art AST
// renderer that spec.md explicitly keeps out of scope for this module —
// that renderer is an external collaborator this package exposes enough
// structure for, nothing more (see DESIGN.md).
func Dump(prog *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	for _, n := range prog.TopLevel {
		dumpNode(&sb, n, 1)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpNode(sb *strings.Builder, n Node, depth int) {
	switch x := n.(type) {
	case *FunctionDecl:
		indent(sb, depth)
		fmt.Fprintf(sb, "FunctionDecl %s -> %s\n", x.Name, x.ReturnType)
		for _, p := range x.Params {
			indent(sb, depth+1)
			fmt.Fprintf(sb, "Param %s %s\n", p.Type, p.Name)
		}
		dumpNode(sb, x.Body, depth+1)

	case *Block:
		indent(sb, depth)
		sb.WriteString("Block\n")
		for _, s := range x.Stmts {
			dumpNode(sb, s, depth+1)
		}

	case *VarDecl:
		indent(sb, depth)
		fmt.Fprintf(sb, "VarDecl %s %s\n", x.DeclaredType, x.Name)
		if x.Initializer != nil {
			dumpNode(sb, x.Initializer, depth+1)
		}

	case *ExprStmt:
		indent(sb, depth)
		sb.WriteString("ExprStmt\n")
		dumpNode(sb, x.X, depth+1)

	case *Print:
		indent(sb, depth)
		sb.WriteString("Print\n")
		dumpNode(sb, x.X, depth+1)

	case *If:
		indent(sb, depth)
		sb.WriteString("If\n")
		dumpNode(sb, x.Cond, depth+1)
		dumpNode(sb, x.Then, depth+1)
		if x.Else != nil {
			dumpNode(sb, x.Else, depth+1)
		}

	case *While:
		indent(sb, depth)
		sb.WriteString("While\n")
		dumpNode(sb, x.Cond, depth+1)
		dumpNode(sb, x.Body, depth+1)

	case *For:
		indent(sb, depth)
		sb.WriteString("For\n")
		if x.Init != nil {
			dumpNode(sb, x.Init, depth+1)
		}
		if x.Cond != nil {
			dumpNode(sb, x.Cond, depth+1)
		}
		if x.Step != nil {
			dumpNode(sb, x.Step, depth+1)
		}
		dumpNode(sb, x.Body, depth+1)

	case *Return:
		indent(sb, depth)
		sb.WriteString("Return\n")
		if x.Value != nil {
			dumpNode(sb, x.Value, depth+1)
		}

	case *IntLit:
		indent(sb, depth)
		fmt.Fprintf(sb, "IntLit %d\n", x.Value)
	case *FloatLit:
		indent(sb, depth)
		fmt.Fprintf(sb, "FloatLit %g\n", x.Value)
	case *BoolLit:
		indent(sb, depth)
		fmt.Fprintf(sb, "BoolLit %v\n", x.Value)
	case *StringLit:
		indent(sb, depth)
		fmt.Fprintf(sb, "StringLit %q\n", x.Value)
	case *Identifier:
		indent(sb, depth)
		fmt.Fprintf(sb, "Identifier %s\n", x.Name)
	case *ArrayLit:
		indent(sb, depth)
		sb.WriteString("ArrayLit\n")
		for _, e := range x.Elements {
			dumpNode(sb, e, depth+1)
		}
	case *Unary:
		indent(sb, depth)
		fmt.Fprintf(sb, "Unary %s\n", unaryOpName(x.Op))
		dumpNode(sb, x.Operand, depth+1)
	case *Binary:
		indent(sb, depth)
		fmt.Fprintf(sb, "Binary %s\n", binaryOpName(x.Op))
		dumpNode(sb, x.Left, depth+1)
		dumpNode(sb, x.Right, depth+1)
	case *Coerce:
		indent(sb, depth)
		sb.WriteString("Coerce Int->Float\n")
		dumpNode(sb, x.Inner, depth+1)
	case *Index:
		indent(sb, depth)
		sb.WriteString("Index\n")
		dumpNode(sb, x.Target, depth+1)
		dumpNode(sb, x.IndexExpr, depth+1)
	case *Call:
		indent(sb, depth)
		fmt.Fprintf(sb, "Call %s\n", x.Callee)
		for _, a := range x.Args {
			dumpNode(sb, a, depth+1)
		}
	case *Input:
		indent(sb, depth)
		sb.WriteString("Input\n")
		dumpNode(sb, x.Prompt, depth+1)
	case *Assign:
		indent(sb, depth)
		sb.WriteString("Assign\n")
		dumpNode(sb, x.Target, depth+1)
		dumpNode(sb, x.Value, depth+1)

	default:
		indent(sb, depth)
		fmt.Fprintf(sb, "<unknown node %T>\n", x)
	}
}

func unaryOpName(op UnaryOp) string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "not"
	default:
		return "?"
	}
}

func binaryOpName(op BinaryOp) string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Eq:
		return "=="
	case Ne:
		return "!="
	case LogAnd:
		return "and"
	case LogOr:
		return "or"
	default:
		return "?"
	}
}
