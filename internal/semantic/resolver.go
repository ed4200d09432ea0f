package semantic

import (
	"github.com/mlang-run/minilang/internal/ast"
	"github.com/mlang-run/minilang/internal/token"
	"github.com/mlang-run/minilang/internal/types"
)

// Result is the product of a successful Resolve: the scope arena (for a
// --symbols dump) and the program scope itself.
type Result struct {
	Scopes []*SymbolTable
	Global *SymbolTable
}

// Resolver walks a parsed Program building the scope tree, annotating every
// Expr with its resolved type, and binding every Identifier/Call to a
// Symbol (spec §4.3). It accumulates diagnostics rather than aborting on
// the first error, then runs a separate must-return pass (checker.go) once
// resolution succeeds.
type Resolver struct {
	scopes  []*SymbolTable
	current *SymbolTable
	errors  ErrorList

	inFunc     bool
	returnType *types.Type
	funcName   string
}

// NewResolver creates a Resolver with a fresh, empty program scope.
func NewResolver() *Resolver {
	r := &Resolver{}
	r.current = r.pushScope(nil)
	return r
}

func (r *Resolver) pushScope(parent *SymbolTable) *SymbolTable {
	st := newSymbolTable(parent, len(r.scopes))
	r.scopes = append(r.scopes, st)
	return st
}

func (r *Resolver) enterScope() {
	r.current = r.pushScope(r.current)
}

func (r *Resolver) leaveScope() {
	r.current = r.current.Parent()
}

// Resolve analyzes prog and returns the scope arena, or a non-nil
// ErrorList (as error) if analysis found any diagnostics.
func Resolve(prog *ast.Program) (*Result, error) {
	r := NewResolver()
	global := r.current

	r.collectFunctions(prog)
	for _, n := range prog.TopLevel {
		switch node := n.(type) {
		case *ast.FunctionDecl:
			r.resolveFunction(node)
		case ast.Stmt:
			r.resolveStmt(node)
		}
	}

	if err := r.errors.Err(); err != nil {
		return nil, err
	}

	var checkErrs ErrorList
	for _, fn := range prog.Functions() {
		checkMustReturn(fn, &checkErrs)
	}
	if err := checkErrs.Err(); err != nil {
		return nil, err
	}

	return &Result{Scopes: r.scopes, Global: global}, nil
}

// collectFunctions is the pre-pass that gives every function mutual and
// forward visibility (spec §4.3: "One pre-pass collects all `function`
// declarations into the program scope").
func (r *Resolver) collectFunctions(prog *ast.Program) {
	for _, n := range prog.TopLevel {
		fn, ok := n.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		sym := r.current.DefineFunction(fn)
		if sym == nil {
			r.errors.Add(fn.NamePos, "duplicate declaration of '%s'", fn.Name)
			continue
		}
		fn.Symbol = sym
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDecl) {
	outerFunc, outerRet, outerName := r.inFunc, r.returnType, r.funcName
	r.inFunc, r.returnType, r.funcName = true, fn.ReturnType, fn.Name

	// A function body gets exactly one scope covering params and body
	// (spec §4.3: "function bodies additionally bind parameters").
	r.enterScope()
	fn.Body.ScopeIndex = r.current.Index()
	seen := make(map[string]bool)
	for i := range fn.Params {
		p := &fn.Params[i]
		if seen[p.Name] {
			r.errors.Add(fn.NamePos, "duplicate parameter '%s'", p.Name)
			continue
		}
		seen[p.Name] = true
		r.current.Define(p.Name, p.Type, true)
	}
	for _, stmt := range fn.Body.Stmts {
		r.resolveStmt(stmt)
	}
	r.leaveScope()

	r.inFunc, r.returnType, r.funcName = outerFunc, outerRet, outerName
}

func (r *Resolver) resolveBlock(b *ast.Block) {
	r.enterScope()
	b.ScopeIndex = r.current.Index()
	for _, stmt := range b.Stmts {
		r.resolveStmt(stmt)
	}
	r.leaveScope()
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		r.resolveVarDecl(n)
	case *ast.ExprStmt:
		r.resolveExpr(n.X)
	case *ast.Print:
		r.resolvePrint(n)
	case *ast.Block:
		r.resolveBlock(n)
	case *ast.If:
		r.resolveIf(n)
	case *ast.While:
		r.resolveWhile(n)
	case *ast.For:
		r.resolveFor(n)
	case *ast.Return:
		r.resolveReturn(n)
	}
}

func (r *Resolver) resolveVarDecl(v *ast.VarDecl) {
	if v.DeclaredType.Kind == types.ArrayKind && v.DeclaredType.Size == types.NoSize && v.Initializer == nil {
		r.errors.Add(v.Pos(), "array '%s' needs a size or an initializer", v.Name)
	}
	if v.DeclaredType.Kind == types.ArrayKind && v.DeclaredType.Size < types.NoSize {
		r.errors.Add(v.Pos(), "invalid array size %d for '%s'", v.DeclaredType.Size, v.Name)
	}

	if v.Initializer != nil {
		v.Initializer = r.resolveAssignable(v.Initializer, v.DeclaredType, v.Pos())
		if v.DeclaredType.Kind == types.ArrayKind {
			if lit, ok := v.Initializer.(*ast.ArrayLit); ok {
				n := len(lit.Elements)
				if v.DeclaredType.Size != types.NoSize && v.DeclaredType.Size != n {
					r.errors.Add(v.Pos(), "array '%s' declared with size %d but initialized with %d elements", v.Name, v.DeclaredType.Size, n)
				} else if v.DeclaredType.Size == types.NoSize {
					v.DeclaredType = types.Array(v.DeclaredType.Elem, n)
				}
			}
		}
	}

	sym := r.current.Define(v.Name, v.DeclaredType, false)
	if sym == nil {
		r.errors.Add(v.Pos(), "duplicate declaration of '%s'", v.Name)
		return
	}
	v.Symbol = sym
}

func (r *Resolver) resolvePrint(p *ast.Print) {
	t := r.resolveExpr(p.X)
	if t != nil && t.Kind == types.ArrayKind {
		r.errors.Add(p.X.Pos(), "cannot print an array value")
	}
}

func (r *Resolver) resolveIf(n *ast.If) {
	r.requireBool(n.Cond, "if condition")
	r.resolveBlock(n.Then)
	if n.Else != nil {
		r.resolveBlock(n.Else)
	}
}

func (r *Resolver) resolveWhile(n *ast.While) {
	r.requireBool(n.Cond, "while condition")
	r.resolveBlock(n.Body)
}

func (r *Resolver) resolveFor(n *ast.For) {
	r.enterScope()
	n.Body.ScopeIndex = r.current.Index()
	if n.Init != nil {
		r.resolveStmt(n.Init)
	}
	if n.Cond != nil {
		r.requireBool(n.Cond, "for condition")
	}
	if n.Step != nil {
		r.resolveExpr(n.Step)
	}
	for _, stmt := range n.Body.Stmts {
		r.resolveStmt(stmt)
	}
	r.leaveScope()
}

func (r *Resolver) resolveReturn(n *ast.Return) {
	if !r.inFunc {
		r.errors.Add(n.Pos(), "return outside function")
		return
	}
	if n.Value == nil {
		if r.returnType.Kind != types.Void {
			r.errors.Add(n.Pos(), "missing return value in function '%s' returning %s", r.funcName, r.returnType)
		}
		return
	}
	n.Value = r.resolveAssignable(n.Value, r.returnType, n.Pos())
}

func (r *Resolver) requireBool(e ast.Expr, what string) {
	t := r.resolveExpr(e)
	if t != nil && t.Kind != types.Bool {
		r.errors.Add(e.Pos(), "%s must be bool, got %s", what, t)
	}
}

// resolveAssignable resolves value, then either wraps it in a Coerce (when
// an Int->Float widening is needed and target accepts it) or reports a
// type-mismatch diagnostic at pos. Returns the (possibly wrapped) node.
func (r *Resolver) resolveAssignable(value ast.Expr, target *types.Type, pos token.Position) ast.Expr {
	t := r.resolveExpr(value)
	if t == nil || target == nil {
		return value
	}
	if t.Equal(target) {
		return value
	}
	if t.Kind == types.Int && target.Kind == types.Float {
		return &ast.Coerce{BaseExpr: ast.MakeBaseExpr(value.Pos(), value.End()), Inner: value}
	}
	r.errors.Add(pos, "cannot assign %s to %s", t, target)
	return value
}

// resolveExpr annotates e (and its subtree) with resolved types and
// returns e's resolved type, or nil if e could not be typed.
func (r *Resolver) resolveExpr(e ast.Expr) *types.Type {
	switch n := e.(type) {
	case *ast.IntLit:
		return types.TInt
	case *ast.FloatLit:
		return types.TFloat
	case *ast.BoolLit:
		return types.TBool
	case *ast.StringLit:
		return types.TString
	case *ast.Identifier:
		sym, ok := r.current.Lookup(n.Name)
		if !ok || sym.IsFunction {
			r.errors.Add(n.Pos(), "undeclared name '%s'", n.Name)
			return nil
		}
		n.Symbol = sym
		n.ResolvedType = sym.Type
		return sym.Type
	case *ast.ArrayLit:
		return r.resolveArrayLit(n)
	case *ast.Unary:
		return r.resolveUnary(n)
	case *ast.Binary:
		return r.resolveBinary(n)
	case *ast.Coerce:
		r.resolveExpr(n.Inner)
		return types.TFloat
	case *ast.Index:
		return r.resolveIndex(n)
	case *ast.Call:
		return r.resolveCall(n)
	case *ast.Input:
		t := r.resolveExpr(n.Prompt)
		if t != nil && t.Kind != types.String {
			r.errors.Add(n.Prompt.Pos(), "input prompt must be string, got %s", t)
		}
		return types.TString
	case *ast.Assign:
		return r.resolveAssign(n)
	}
	return nil
}

func (r *Resolver) resolveArrayLit(n *ast.ArrayLit) *types.Type {
	var elemType *types.Type
	for i, elem := range n.Elements {
		t := r.resolveExpr(elem)
		if t == nil {
			continue
		}
		if elemType == nil {
			elemType = t
			continue
		}
		if t.Equal(elemType) {
			continue
		}
		if t.Kind == types.Int && elemType.Kind == types.Float {
			n.Elements[i] = &ast.Coerce{BaseExpr: ast.MakeBaseExpr(elem.Pos(), elem.End()), Inner: elem}
			continue
		}
		if t.Kind == types.Float && elemType.Kind == types.Int {
			for j := 0; j < i; j++ {
				if ast.ExprType(n.Elements[j]) != nil && ast.ExprType(n.Elements[j]).Kind == types.Int {
					n.Elements[j] = &ast.Coerce{BaseExpr: ast.MakeBaseExpr(n.Elements[j].Pos(), n.Elements[j].End()), Inner: n.Elements[j]}
				}
			}
			elemType = types.TFloat
			continue
		}
		r.errors.Add(elem.Pos(), "array element type %s does not match %s", t, elemType)
	}
	if elemType == nil {
		elemType = types.TInt
	}
	n.ResolvedType = types.Array(elemType, len(n.Elements))
	return n.ResolvedType
}

func (r *Resolver) resolveUnary(n *ast.Unary) *types.Type {
	t := r.resolveExpr(n.Operand)
	if t == nil {
		return nil
	}
	switch n.Op {
	case ast.Not:
		if t.Kind != types.Bool {
			r.errors.Add(n.Pos(), "operand of 'not' must be bool, got %s", t)
			return nil
		}
		n.ResolvedType = types.TBool
	case ast.Neg:
		if !t.IsNumeric() {
			r.errors.Add(n.Pos(), "operand of unary '-' must be numeric, got %s", t)
			return nil
		}
		n.ResolvedType = t
	}
	return n.ResolvedType
}

func (r *Resolver) resolveBinary(n *ast.Binary) *types.Type {
	lt := r.resolveExpr(n.Left)
	rt := r.resolveExpr(n.Right)
	if lt == nil || rt == nil {
		return nil
	}

	switch n.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod:
		if n.Op == ast.Add && lt.Kind == types.String && rt.Kind == types.String {
			n.ResolvedType = types.TString
			return n.ResolvedType
		}
		if !lt.IsNumeric() || !rt.IsNumeric() {
			r.errors.Add(n.Pos(), "operands of arithmetic operator must be numeric, got %s and %s", lt, rt)
			return nil
		}
		n.ResolvedType = r.widenArith(n, lt, rt)
		return n.ResolvedType

	case ast.Lt, ast.Le, ast.Gt, ast.Ge:
		if lt.Kind == types.String && rt.Kind == types.String {
			n.ResolvedType = types.TBool
			return n.ResolvedType
		}
		if !lt.IsNumeric() || !rt.IsNumeric() {
			r.errors.Add(n.Pos(), "operands of comparison must be numeric or string, got %s and %s", lt, rt)
			return nil
		}
		r.widenArith(n, lt, rt)
		n.ResolvedType = types.TBool
		return n.ResolvedType

	case ast.Eq, ast.Ne:
		if lt.Kind == types.ArrayKind || rt.Kind == types.ArrayKind {
			r.errors.Add(n.Pos(), "cannot compare array values")
			return nil
		}
		if !lt.Equal(rt) {
			if lt.IsNumeric() && rt.IsNumeric() {
				r.widenArith(n, lt, rt)
			} else {
				r.errors.Add(n.Pos(), "cannot compare %s and %s", lt, rt)
				return nil
			}
		}
		n.ResolvedType = types.TBool
		return n.ResolvedType

	case ast.LogAnd, ast.LogOr:
		if lt.Kind != types.Bool || rt.Kind != types.Bool {
			r.errors.Add(n.Pos(), "operands of logical operator must be bool, got %s and %s", lt, rt)
			return nil
		}
		n.ResolvedType = types.TBool
		return n.ResolvedType
	}
	return nil
}

// widenArith inserts a Coerce on whichever side of n is Int when the other
// side is Float, and returns the result type (Int if neither needed
// widening, Float otherwise).
func (r *Resolver) widenArith(n *ast.Binary, lt, rt *types.Type) *types.Type {
	if lt.Kind == types.Float || rt.Kind == types.Float {
		if lt.Kind == types.Int {
			n.Left = &ast.Coerce{BaseExpr: ast.MakeBaseExpr(n.Left.Pos(), n.Left.End()), Inner: n.Left}
		}
		if rt.Kind == types.Int {
			n.Right = &ast.Coerce{BaseExpr: ast.MakeBaseExpr(n.Right.Pos(), n.Right.End()), Inner: n.Right}
		}
		return types.TFloat
	}
	return types.TInt
}

func (r *Resolver) resolveIndex(n *ast.Index) *types.Type {
	tt := r.resolveExpr(n.Target)
	it := r.resolveExpr(n.IndexExpr)
	if tt == nil {
		return nil
	}
	if tt.Kind != types.ArrayKind {
		r.errors.Add(n.Target.Pos(), "cannot index non-array type %s", tt)
		return nil
	}
	if it != nil && it.Kind != types.Int {
		r.errors.Add(n.IndexExpr.Pos(), "array index must be int, got %s", it)
	}
	n.ResolvedType = tt.Elem
	return n.ResolvedType
}

func (r *Resolver) resolveCall(n *ast.Call) *types.Type {
	sym, ok := r.current.Lookup(n.Callee)
	if !ok || !sym.IsFunction {
		r.errors.Add(n.Pos(), "undeclared function '%s'", n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
		return nil
	}
	fn := sym.Func
	n.Func = fn

	if len(n.Args) != len(fn.Params) {
		r.errors.Add(n.Pos(), "function '%s' expects %d argument(s), got %d", n.Callee, len(fn.Params), len(n.Args))
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
		n.ResolvedType = fn.ReturnType
		return n.ResolvedType
	}

	for i := range n.Args {
		n.Args[i] = r.resolveAssignable(n.Args[i], fn.Params[i].Type, n.Args[i].Pos())
	}
	n.ResolvedType = fn.ReturnType
	return n.ResolvedType
}

func (r *Resolver) resolveAssign(n *ast.Assign) *types.Type {
	tt := r.resolveExpr(n.Target)
	if !ast.IsLValue(n.Target) {
		r.errors.Add(n.Pos(), "invalid assignment target")
	}
	if tt == nil {
		r.resolveExpr(n.Value)
		return nil
	}

	n.Value = r.resolveAssignable(n.Value, tt, n.Pos())

	if tt.Kind == types.ArrayKind {
		if lit, ok := n.Value.(*ast.ArrayLit); ok && tt.Size != types.NoSize && len(lit.Elements) != tt.Size {
			r.errors.Add(n.Pos(), "array assignment size mismatch: target has size %d, value has %d", tt.Size, len(lit.Elements))
		}
	}

	n.ResolvedType = tt
	return tt
}
