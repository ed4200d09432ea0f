package interp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mlang-run/minilang/internal/ast"
	"github.com/mlang-run/minilang/internal/semantic"
	"github.com/mlang-run/minilang/internal/types"
)

// Interpreter executes a resolved Program. It owns the standard streams
// and the runtime scope stack; it holds no other mutable package-level
// state (spec §9: "Global module state... There is none in the core").
type Interpreter struct {
	tables []*semantic.SymbolTable
	global *env
	scopes []*env

	out *bufio.Writer
	in  *bufio.Reader
}

// New creates an Interpreter over the scope arena produced by a successful
// semantic.Resolve, writing print/input-prompt output to out and reading
// input() lines from in.
func New(result *semantic.Result, out io.Writer, in io.Reader) *Interpreter {
	ip := &Interpreter{
		tables: result.Scopes,
		out:    bufio.NewWriter(out),
		in:     bufio.NewReader(in),
	}
	ip.global = &env{
		scopeIndex: result.Global.Index(),
		slots:      make([]types.Value, len(result.Global.Names())),
	}
	ip.scopes = []*env{ip.global}
	return ip
}

// Run executes prog's top-level statements in source order, skipping
// function declarations (those execute only when called). It flushes
// output before returning, even on error.
func (ip *Interpreter) Run(prog *ast.Program) error {
	defer ip.out.Flush()
	for _, n := range prog.TopLevel {
		stmt, ok := n.(ast.Stmt)
		if !ok {
			continue // a *ast.FunctionDecl; already registered by analysis
		}
		if err := ip.execStmt(stmt); err != nil {
			if _, isReturn := err.(*returnSignal); isReturn {
				return newError(stmt.Pos(), "return outside function")
			}
			return err
		}
	}
	return nil
}

func (ip *Interpreter) pushScope(idx int) *env {
	e := &env{scopeIndex: idx, slots: make([]types.Value, len(ip.tables[idx].Names()))}
	ip.scopes = append(ip.scopes, e)
	return e
}

func (ip *Interpreter) popScope() {
	ip.scopes = ip.scopes[:len(ip.scopes)-1]
}

func (ip *Interpreter) slot(sym *ast.Symbol) *types.Value {
	e := find(ip.scopes, sym.ScopeIndex)
	return &e.slots[sym.SlotIndex]
}

// execBlock pushes b's runtime scope, runs its statements, and pops it.
func (ip *Interpreter) execBlock(b *ast.Block) error {
	ip.pushScope(b.ScopeIndex)
	defer ip.popScope()
	for _, stmt := range b.Stmts {
		if err := ip.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) execStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.VarDecl:
		return ip.execVarDecl(n)
	case *ast.ExprStmt:
		_, err := ip.evalExpr(n.X)
		return err
	case *ast.Print:
		return ip.execPrint(n)
	case *ast.Block:
		return ip.execBlock(n)
	case *ast.If:
		return ip.execIf(n)
	case *ast.While:
		return ip.execWhile(n)
	case *ast.For:
		return ip.execFor(n)
	case *ast.Return:
		return ip.execReturn(n)
	}
	return nil
}

func (ip *Interpreter) execVarDecl(v *ast.VarDecl) error {
	var val types.Value
	if v.Initializer != nil {
		var err error
		val, err = ip.evalExpr(v.Initializer)
		if err != nil {
			return err
		}
	} else {
		val = zeroValue(v.DeclaredType)
	}
	*ip.slot(v.Symbol) = val.Clone()
	return nil
}

func (ip *Interpreter) execPrint(p *ast.Print) error {
	v, err := ip.evalExpr(p.X)
	if err != nil {
		return err
	}
	fmt.Fprintln(ip.out, v.String())
	return nil
}

func (ip *Interpreter) execIf(n *ast.If) error {
	cond, err := ip.evalExpr(n.Cond)
	if err != nil {
		return err
	}
	if cond.Bool() {
		return ip.execBlock(n.Then)
	}
	if n.Else != nil {
		return ip.execBlock(n.Else)
	}
	return nil
}

func (ip *Interpreter) execWhile(n *ast.While) error {
	for {
		cond, err := ip.evalExpr(n.Cond)
		if err != nil {
			return err
		}
		if !cond.Bool() {
			return nil
		}
		if err := ip.execBlock(n.Body); err != nil {
			return err
		}
	}
}

func (ip *Interpreter) execFor(n *ast.For) error {
	ip.pushScope(n.Body.ScopeIndex)
	defer ip.popScope()

	if n.Init != nil {
		if err := ip.execStmt(n.Init); err != nil {
			return err
		}
	}
	for {
		if n.Cond != nil {
			cond, err := ip.evalExpr(n.Cond)
			if err != nil {
				return err
			}
			if !cond.Bool() {
				return nil
			}
		}
		for _, stmt := range n.Body.Stmts {
			if err := ip.execStmt(stmt); err != nil {
				return err
			}
		}
		if n.Step != nil {
			if _, err := ip.evalExpr(n.Step); err != nil {
				return err
			}
		}
	}
}

func (ip *Interpreter) execReturn(n *ast.Return) error {
	if n.Value == nil {
		return &returnSignal{Value: types.Unit()}
	}
	v, err := ip.evalExpr(n.Value)
	if err != nil {
		return err
	}
	return &returnSignal{Value: v}
}

// evalExpr evaluates e to a runtime value, post-order (spec §4.4).
func (ip *Interpreter) evalExpr(e ast.Expr) (types.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return types.IntVal(n.Value), nil
	case *ast.FloatLit:
		return types.FloatVal(n.Value), nil
	case *ast.BoolLit:
		return types.BoolVal(n.Value), nil
	case *ast.StringLit:
		return types.StringVal(n.Value), nil
	case *ast.Identifier:
		return *ip.slot(n.Symbol), nil
	case *ast.ArrayLit:
		return ip.evalArrayLit(n)
	case *ast.Unary:
		return ip.evalUnary(n)
	case *ast.Binary:
		return ip.evalBinary(n)
	case *ast.Coerce:
		inner, err := ip.evalExpr(n.Inner)
		if err != nil {
			return types.Value{}, err
		}
		return types.FloatVal(float64(inner.Int())), nil
	case *ast.Index:
		v, err := ip.addr(n)
		if err != nil {
			return types.Value{}, err
		}
		return *v, nil
	case *ast.Call:
		return ip.evalCall(n)
	case *ast.Input:
		return ip.evalInput(n)
	case *ast.Assign:
		return ip.evalAssign(n)
	}
	return types.Value{}, newError(e.Pos(), "internal error: unhandled expression")
}

func (ip *Interpreter) evalArrayLit(n *ast.ArrayLit) (types.Value, error) {
	elems := make([]types.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := ip.evalExpr(el)
		if err != nil {
			return types.Value{}, err
		}
		elems[i] = v
	}
	return types.ArrayVal(n.ResolvedType.Elem, elems), nil
}

func (ip *Interpreter) evalUnary(n *ast.Unary) (types.Value, error) {
	v, err := ip.evalExpr(n.Operand)
	if err != nil {
		return types.Value{}, err
	}
	switch n.Op {
	case ast.Not:
		return types.BoolVal(!v.Bool()), nil
	case ast.Neg:
		if v.Kind() == types.VFloat {
			return types.FloatVal(-v.Float()), nil
		}
		return types.IntVal(-v.Int()), nil
	}
	return types.Value{}, newError(n.Pos(), "internal error: unhandled unary operator")
}

func (ip *Interpreter) evalBinary(n *ast.Binary) (types.Value, error) {
	// Short-circuit: the right operand is evaluated only when it can
	// still change the result (spec §4.4/§8 invariant 5).
	if n.Op == ast.LogAnd {
		l, err := ip.evalExpr(n.Left)
		if err != nil {
			return types.Value{}, err
		}
		if !l.Bool() {
			return types.BoolVal(false), nil
		}
		r, err := ip.evalExpr(n.Right)
		if err != nil {
			return types.Value{}, err
		}
		return types.BoolVal(r.Bool()), nil
	}
	if n.Op == ast.LogOr {
		l, err := ip.evalExpr(n.Left)
		if err != nil {
			return types.Value{}, err
		}
		if l.Bool() {
			return types.BoolVal(true), nil
		}
		r, err := ip.evalExpr(n.Right)
		if err != nil {
			return types.Value{}, err
		}
		return types.BoolVal(r.Bool()), nil
	}

	l, err := ip.evalExpr(n.Left)
	if err != nil {
		return types.Value{}, err
	}
	r, err := ip.evalExpr(n.Right)
	if err != nil {
		return types.Value{}, err
	}

	switch n.Op {
	case ast.Add:
		if l.Kind() == types.VString {
			return types.StringVal(l.Str() + r.Str()), nil
		}
		return ip.arith(n, l, r, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	case ast.Sub:
		return ip.arith(n, l, r, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case ast.Mul:
		return ip.arith(n, l, r, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case ast.Div:
		return ip.div(n, l, r)
	case ast.Mod:
		return ip.mod(n, l, r)
	case ast.Lt:
		return ip.compare(l, r, func(c int) bool { return c < 0 }), nil
	case ast.Le:
		return ip.compare(l, r, func(c int) bool { return c <= 0 }), nil
	case ast.Gt:
		return ip.compare(l, r, func(c int) bool { return c > 0 }), nil
	case ast.Ge:
		return ip.compare(l, r, func(c int) bool { return c >= 0 }), nil
	case ast.Eq:
		return types.BoolVal(valuesEqual(l, r)), nil
	case ast.Ne:
		return types.BoolVal(!valuesEqual(l, r)), nil
	}
	return types.Value{}, newError(n.Pos(), "internal error: unhandled binary operator")
}

func (ip *Interpreter) arith(n *ast.Binary, l, r types.Value, onInt func(a, b int64) int64, onFloat func(a, b float64) float64) (types.Value, error) {
	if l.Kind() == types.VFloat || r.Kind() == types.VFloat {
		return types.FloatVal(onFloat(l.Float(), r.Float())), nil
	}
	return types.IntVal(onInt(l.Int(), r.Int())), nil
}

func (ip *Interpreter) div(n *ast.Binary, l, r types.Value) (types.Value, error) {
	if l.Kind() == types.VFloat || r.Kind() == types.VFloat {
		return types.FloatVal(l.Float() / r.Float()), nil
	}
	if r.Int() == 0 {
		return types.Value{}, newError(n.Pos(), "division by zero")
	}
	return types.IntVal(l.Int() / r.Int()), nil
}

func (ip *Interpreter) mod(n *ast.Binary, l, r types.Value) (types.Value, error) {
	if l.Kind() == types.VFloat || r.Kind() == types.VFloat {
		return types.FloatVal(floatMod(l.Float(), r.Float())), nil
	}
	if r.Int() == 0 {
		return types.Value{}, newError(n.Pos(), "modulo by zero")
	}
	return types.IntVal(l.Int() % r.Int()), nil
}

func (ip *Interpreter) compare(l, r types.Value, pred func(int) bool) types.Value {
	if l.Kind() == types.VString {
		return types.BoolVal(pred(strings.Compare(l.Str(), r.Str())))
	}
	var lf, rf float64
	if l.Kind() == types.VFloat || r.Kind() == types.VFloat {
		lf, rf = l.Float(), r.Float()
	} else {
		return types.BoolVal(pred(compareInt(l.Int(), r.Int())))
	}
	return types.BoolVal(pred(compareFloat(lf, rf)))
}

func valuesEqual(l, r types.Value) bool {
	switch l.Kind() {
	case types.VBool:
		return l.Bool() == r.Bool()
	case types.VString:
		return l.Str() == r.Str()
	case types.VFloat, types.VInt:
		if l.Kind() == types.VFloat || r.Kind() == types.VFloat {
			return l.Float() == r.Float()
		}
		return l.Int() == r.Int()
	default:
		return false
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (ip *Interpreter) evalCall(n *ast.Call) (types.Value, error) {
	args := make([]types.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ip.evalExpr(a)
		if err != nil {
			return types.Value{}, err
		}
		args[i] = v.Clone()
	}

	fn := n.Func
	saved := ip.scopes
	ip.scopes = []*env{ip.global}
	frame := ip.pushScope(fn.Body.ScopeIndex)
	for i, v := range args {
		frame.slots[i] = v
	}

	result := types.Unit()
	var callErr error
	for _, stmt := range fn.Body.Stmts {
		err := ip.execStmt(stmt)
		if err != nil {
			if rs, ok := err.(*returnSignal); ok {
				result = rs.Value
			} else {
				callErr = err
			}
			break
		}
	}

	ip.popScope()
	ip.scopes = saved
	return result, callErr
}

func (ip *Interpreter) evalInput(n *ast.Input) (types.Value, error) {
	prompt, err := ip.evalExpr(n.Prompt)
	if err != nil {
		return types.Value{}, err
	}
	ip.out.WriteString(prompt.Str())
	ip.out.Flush()

	line, err := ip.in.ReadString('\n')
	if err != nil && line == "" {
		return types.Value{}, newError(n.Pos(), "unexpected end of input")
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return types.StringVal(line), nil
}

func (ip *Interpreter) evalAssign(n *ast.Assign) (types.Value, error) {
	addr, err := ip.addr(n.Target)
	if err != nil {
		return types.Value{}, err
	}
	val, err := ip.evalExpr(n.Value)
	if err != nil {
		return types.Value{}, err
	}
	*addr = val.Clone()
	return *addr, nil
}

// addr resolves e (an Identifier or Index) to a pointer into the owning
// array's backing storage or variable slot, so Assign and Index share one
// bounds-checked path to the underlying value (spec §4.4: "Assign to an
// index writes in place").
func (ip *Interpreter) addr(e ast.Expr) (*types.Value, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return ip.slot(n.Symbol), nil
	case *ast.Index:
		target, err := ip.addr(n.Target)
		if err != nil {
			return nil, err
		}
		idxVal, err := ip.evalExpr(n.IndexExpr)
		if err != nil {
			return nil, err
		}
		idx := int(idxVal.Int())
		elems := target.Elems()
		if idx < 0 || idx >= len(elems) {
			return nil, newError(n.Pos(), "index %d out of bounds for array of length %d", idx, len(elems))
		}
		return &elems[idx], nil
	}
	return nil, newError(e.Pos(), "invalid assignment target")
}

// floatMod computes a's remainder from b the way Mini-Lang defines it for
// two floats: Go's math.Mod, which preserves the sign of the dividend.
// Unlike integer %, float %-by-zero is not a runtime error: it follows
// IEEE-754 and produces NaN, since the type carries no notion of overflow.
func floatMod(a, b float64) float64 {
	return math.Mod(a, b)
}
