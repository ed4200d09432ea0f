package parser

import (
	"fmt"
	"strconv"

	"github.com/mlang-run/minilang/internal/ast"
	"github.com/mlang-run/minilang/internal/lexer"
	"github.com/mlang-run/minilang/internal/token"
	"github.com/mlang-run/minilang/internal/types"
)

// Parser is a recursive-descent parser with one token of lookahead
// (spec §4.2).
type Parser struct {
	lex    *lexer.Lexer
	tok    lexer.Token
	lexErr error
	errors ErrorList

	funcDepth int // >0 while parsing a function body
}

// Parse parses a Mini-Lang program from source text.
func Parse(src string) (*ast.Program, error) {
	return ParseBytes([]byte(src))
}

// ParseBytes parses a Mini-Lang program from a byte slice.
func ParseBytes(src []byte) (*ast.Program, error) {
	p := &Parser{lex: lexer.New(src)}
	p.next()

	prog := p.parseProgram()

	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (ast.Expr, error) {
	p := &Parser{lex: lexer.New([]byte(src))}
	p.next()

	expr := p.parseExpr()

	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token, latching the first lexical error.
// Once a lexical error has occurred the current token is pinned to EOF so
// that parsing unwinds without scanning past the bad byte.
func (p *Parser) next() {
	if p.lexErr != nil {
		return
	}
	tok, err := p.lex.Next()
	if err != nil {
		p.lexErr = err
		p.tok = lexer.Token{Type: token.EOF}
		return
	}
	p.tok = tok
}

// failed reports whether parsing has already hit a lexical or syntactic
// error. Recovery is not attempted (spec §4.2), so every loop in this
// parser uses failed() to stop making further progress once it is true.
func (p *Parser) failed() bool {
	return p.lexErr != nil || len(p.errors) > 0
}

// error records a syntax error at pos.
func (p *Parser) error(pos token.Position, msg string) {
	if p.failed() {
		return
	}
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: msg})
}

// errorf records a formatted syntax error at the current token.
func (p *Parser) errorf(format string, args ...any) {
	p.error(p.tok.Pos, fmt.Sprintf(format, args...))
}

// expect checks that the current token has kind tok and advances past it,
// recording an error otherwise. Returns the position of the token that was
// (or should have been) consumed.
func (p *Parser) expect(tok token.Token) token.Position {
	pos := p.tok.Pos
	if p.tok.Type != tok {
		p.errorf("expected %s, found %s", tokenDesc(tok), p.tokenDesc())
		return pos
	}
	p.next()
	return pos
}

// tokenDesc describes the current token for an error message.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.IDENTIFIER, token.INT_LITERAL, token.FLOAT_LITERAL,
		token.STRING_LITERAL, token.BOOL_LITERAL:
		return "'" + p.tok.Value + "'"
	default:
		return tokenDesc(p.tok.Type)
	}
}

// tokenDesc describes a token kind for an error message: punctuation and
// keywords are quoted verbatim, the rest get a plain English name.
func tokenDesc(t token.Token) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENTIFIER:
		return "identifier"
	case token.INT_LITERAL, token.FLOAT_LITERAL, token.STRING_LITERAL, token.BOOL_LITERAL:
		return "literal"
	default:
		return "'" + t.String() + "'"
	}
}

// -----------------------------------------------------------------------------
// Program / declarations
// -----------------------------------------------------------------------------

// parseProgram parses "program ::= { decl_or_stmt }".
func (p *Parser) parseProgram() *ast.Program {
	startPos := p.tok.Pos
	prog := &ast.Program{StartPos: startPos}

	for p.tok.Type != token.EOF && !p.failed() {
		if p.tok.Type == token.FUNCTION {
			if fn := p.parseFunctionDecl(); fn != nil {
				prog.TopLevel = append(prog.TopLevel, fn)
			}
		} else {
			if stmt := p.parseStmt(); stmt != nil {
				prog.TopLevel = append(prog.TopLevel, stmt)
			}
		}
	}

	prog.EndPos = p.tok.Pos
	return prog
}

// parseFunctionDecl parses
// "func_decl ::= 'function' IDENT '(' [params] ')' [':' type] block".
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	startPos := p.tok.Pos
	p.expect(token.FUNCTION)

	name := p.tok.Value
	namePos := p.tok.Pos
	p.expect(token.IDENTIFIER)
	if p.failed() {
		return nil
	}

	p.expect(token.LPAREN)
	var params []ast.Param
	for p.tok.Type != token.RPAREN && !p.failed() {
		if len(params) > 0 {
			p.expect(token.COMMA)
		}
		ty := p.parseType()
		pname := p.tok.Value
		p.expect(token.IDENTIFIER)
		params = append(params, ast.Param{Type: ty, Name: pname})
	}
	p.expect(token.RPAREN)

	returnType := types.TVoid
	if p.tok.Type == token.COLON {
		p.next()
		returnType = p.parseType()
	}
	if p.failed() {
		return nil
	}

	p.funcDepth++
	body := p.parseBlock()
	p.funcDepth--

	return &ast.FunctionDecl{
		BaseDecl:   ast.MakeBaseDecl(startPos, p.tok.Pos),
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		NamePos:    namePos,
	}
}

// parseType parses
// "type ::= ('int'|'float'|'bool'|'string') ['[' [INT_LIT] ']']
//        |  'array' '<' type '>' ['[' [INT_LIT] ']']"
//
// Both spellings of a fixed-size array are accepted and denote the same
// type (spec §9 open question).
func (p *Parser) parseType() *types.Type {
	var t *types.Type

	switch p.tok.Type {
	case token.INT:
		t = types.TInt
		p.next()
	case token.FLOAT:
		t = types.TFloat
		p.next()
	case token.BOOL:
		t = types.TBool
		p.next()
	case token.STRING:
		t = types.TString
		p.next()
	case token.ARRAY:
		p.next()
		p.expect(token.LESS)
		elem := p.parseType()
		p.expect(token.GREATER)
		t = types.Array(elem, types.NoSize)
	default:
		p.errorf("expected a type, found %s", p.tokenDesc())
		return types.TVoid
	}

	if p.tok.Type == token.LBRACKET {
		p.next()
		size := types.NoSize
		if p.tok.Type == token.INT_LITERAL {
			n, _ := strconv.Atoi(p.tok.Value)
			size = n
			p.next()
		}
		p.expect(token.RBRACKET)
		if t.Kind == types.ArrayKind {
			t = types.Array(t.Elem, size)
		} else {
			t = types.Array(t, size)
		}
	}
	return t
}

// parseBlock parses "block ::= '{' { stmt } '}'".
func (p *Parser) parseBlock() *ast.Block {
	startPos := p.tok.Pos
	p.expect(token.LBRACE)

	var stmts []ast.Stmt
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF && !p.failed() {
		stmt := p.parseStmt()
		if stmt == nil {
			break
		}
		stmts = append(stmts, stmt)
	}

	endPos := p.tok.Pos
	p.expect(token.RBRACE)

	return &ast.Block{
		BaseStmt: ast.MakeBaseStmt(startPos, endPos),
		Stmts:    stmts,
	}
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *Parser) parseStmt() ast.Stmt {
	startPos := p.tok.Pos

	switch p.tok.Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	default:
		if p.tok.Type.IsTypeKeyword() {
			return p.parseVarDeclStmt()
		}
		return p.parseExprStmt(startPos)
	}
}

// parseVarDeclStmt parses "var_decl ::= type IDENT ['=' expr]" followed by
// the ';' that the stmt rule requires.
func (p *Parser) parseVarDeclStmt() ast.Stmt {
	startPos := p.tok.Pos
	ty := p.parseType()

	name := p.tok.Value
	p.expect(token.IDENTIFIER)

	var init ast.Expr
	if p.tok.Type == token.ASSIGN {
		p.next()
		init = p.parseExpr()
	}

	endPos := p.tok.Pos
	p.expect(token.SEMICOLON)

	return &ast.VarDecl{
		BaseStmt:     ast.MakeBaseStmt(startPos, endPos),
		DeclaredType: ty,
		Name:         name,
		Initializer:  init,
	}
}

// parseExprStmt parses a bare expression statement (spec §9: accepted,
// evaluates and discards its value) or an assignment statement — both are
// an ExprStmt wrapping whatever parseExpr produced.
func (p *Parser) parseExprStmt(startPos token.Position) ast.Stmt {
	expr := p.parseExpr()
	endPos := p.tok.Pos
	p.expect(token.SEMICOLON)
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, endPos),
		X:        expr,
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	startPos := p.tok.Pos
	p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseBlock()

	var els *ast.Block
	if p.tok.Type == token.ELSE {
		p.next()
		if p.tok.Type == token.IF {
			// else-if: wrap the nested If in a one-statement Block so
			// If.Else stays a *Block like every other branch.
			nestedPos := p.tok.Pos
			nested := p.parseIfStmt()
			els = &ast.Block{
				BaseStmt: ast.MakeBaseStmt(nestedPos, nested.End()),
				Stmts:    []ast.Stmt{nested},
			}
		} else {
			els = p.parseBlock()
		}
	}

	return &ast.If{
		BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	startPos := p.tok.Pos
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseBlock()

	return &ast.While{
		BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos),
		Cond:     cond,
		Body:     body,
	}
}

// parseForStmt parses
// "for_stmt ::= 'for' '(' (var_decl | expr) ';' expr ';' expr ')' block".
func (p *Parser) parseForStmt() ast.Stmt {
	startPos := p.tok.Pos
	p.expect(token.FOR)
	p.expect(token.LPAREN)

	initPos := p.tok.Pos
	var init ast.Stmt
	if p.tok.Type.IsTypeKeyword() {
		ty := p.parseType()
		name := p.tok.Value
		p.expect(token.IDENTIFIER)
		var val ast.Expr
		if p.tok.Type == token.ASSIGN {
			p.next()
			val = p.parseExpr()
		}
		init = &ast.VarDecl{
			BaseStmt:     ast.MakeBaseStmt(initPos, p.tok.Pos),
			DeclaredType: ty,
			Name:         name,
			Initializer:  val,
		}
	} else {
		expr := p.parseExpr()
		init = &ast.ExprStmt{
			BaseStmt: ast.MakeBaseStmt(initPos, p.tok.Pos),
			X:        expr,
		}
	}
	p.expect(token.SEMICOLON)

	cond := p.parseExpr()
	p.expect(token.SEMICOLON)

	step := p.parseExpr()
	p.expect(token.RPAREN)

	body := p.parseBlock()

	return &ast.For{
		BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos),
		Init:     init,
		Cond:     cond,
		Step:     step,
		Body:     body,
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	startPos := p.tok.Pos
	p.expect(token.RETURN)

	var value ast.Expr
	if p.tok.Type != token.SEMICOLON {
		value = p.parseExpr()
	}

	endPos := p.tok.Pos
	p.expect(token.SEMICOLON)

	return &ast.Return{
		BaseStmt: ast.MakeBaseStmt(startPos, endPos),
		Value:    value,
	}
}

// parsePrintStmt parses "print_stmt ::= 'print' '(' expr ')'" followed by
// the ';' that the stmt rule requires.
func (p *Parser) parsePrintStmt() ast.Stmt {
	startPos := p.tok.Pos
	p.expect(token.PRINT)
	p.expect(token.LPAREN)
	x := p.parseExpr()
	p.expect(token.RPAREN)

	endPos := p.tok.Pos
	p.expect(token.SEMICOLON)

	return &ast.Print{
		BaseStmt: ast.MakeBaseStmt(startPos, endPos),
		X:        x,
	}
}

// -----------------------------------------------------------------------------
// Expressions: one parse function per precedence level (spec §4.2 table).
// -----------------------------------------------------------------------------

var (
	orOps  = map[token.Token]ast.BinaryOp{token.OR: ast.LogOr}
	andOps = map[token.Token]ast.BinaryOp{token.AND: ast.LogAnd}
	eqOps  = map[token.Token]ast.BinaryOp{token.EQUALS: ast.Eq, token.NOT_EQUALS: ast.Ne}
	cmpOps = map[token.Token]ast.BinaryOp{
		token.LESS: ast.Lt, token.LTE: ast.Le, token.GREATER: ast.Gt, token.GTE: ast.Ge,
	}
	addOps = map[token.Token]ast.BinaryOp{token.ADD: ast.Add, token.SUB: ast.Sub}
	mulOps = map[token.Token]ast.BinaryOp{token.MUL: ast.Mul, token.DIV: ast.Div, token.MOD: ast.Mod}
)

// parseExpr is the entry point for the whole expression grammar, level 1
// (assignment, right-associative) down to level 9 (postfix).
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

// parseAssign is level 1: '=', right-associative. The Assign node is only
// constructed when the left side is a valid l-value (spec §4.2).
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseOr()
	if left == nil {
		return nil
	}

	if p.tok.Type == token.ASSIGN {
		eqPos := p.tok.Pos
		p.next()
		right := p.parseAssign()
		if right == nil {
			return left
		}
		if !ast.IsLValue(left) {
			p.error(eqPos, "invalid assignment target")
			return left
		}
		return &ast.Assign{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Target:   left,
			Value:    right,
		}
	}
	return left
}

func (p *Parser) parseOr() ast.Expr         { return p.parseBinaryLeft(p.parseAnd, orOps) }
func (p *Parser) parseAnd() ast.Expr        { return p.parseBinaryLeft(p.parseEquality, andOps) }
func (p *Parser) parseEquality() ast.Expr   { return p.parseBinaryLeft(p.parseComparison, eqOps) }
func (p *Parser) parseComparison() ast.Expr { return p.parseBinaryLeft(p.parseAdditive, cmpOps) }
func (p *Parser) parseAdditive() ast.Expr   { return p.parseBinaryLeft(p.parseMultiplicative, addOps) }
func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryLeft(p.parseUnary, mulOps)
}

// parseBinaryLeft implements one left-associative binary precedence level:
// parse the next-higher level, then fold in a run of same-level operators.
func (p *Parser) parseBinaryLeft(higher func() ast.Expr, ops map[token.Token]ast.BinaryOp) ast.Expr {
	expr := higher()
	if expr == nil {
		return nil
	}

	for !p.failed() {
		op, ok := ops[p.tok.Type]
		if !ok {
			return expr
		}
		p.next()
		right := higher()
		if right == nil {
			return expr
		}
		expr = &ast.Binary{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Op:       op,
			Left:     expr,
			Right:    right,
		}
	}
	return expr
}

// parseUnary is level 8: unary 'not' and '-', right-associative.
func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Type {
	case token.NOT:
		startPos := p.tok.Pos
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Unary{
			BaseExpr: ast.MakeBaseExpr(startPos, operand.End()),
			Op:       ast.Not,
			Operand:  operand,
		}
	case token.SUB:
		startPos := p.tok.Pos
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Unary{
			BaseExpr: ast.MakeBaseExpr(startPos, operand.End()),
			Op:       ast.Neg,
			Operand:  operand,
		}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix is level 9: indexing, left-associative. Calls are handled
// inside parsePrimary since a callee must be a bare name (spec §4.2: "no
// call-of-expression"); a call's *result* can still be indexed here.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for p.tok.Type == token.LBRACKET && !p.failed() {
		p.next()
		idx := p.parseExpr()
		endPos := p.tok.Pos
		p.expect(token.RBRACKET)
		expr = &ast.Index{
			BaseExpr:  ast.MakeBaseExpr(expr.Pos(), endPos),
			Target:    expr,
			IndexExpr: idx,
		}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	startPos := p.tok.Pos

	switch p.tok.Type {
	case token.INT_LITERAL:
		v, _ := strconv.ParseInt(p.tok.Value, 10, 64)
		p.next()
		return &ast.IntLit{BaseExpr: ast.MakeBaseExpr(startPos, p.tok.Pos), Value: v}

	case token.FLOAT_LITERAL:
		v, _ := strconv.ParseFloat(p.tok.Value, 64)
		p.next()
		return &ast.FloatLit{BaseExpr: ast.MakeBaseExpr(startPos, p.tok.Pos), Value: v}

	case token.BOOL_LITERAL:
		v := p.tok.Value == "true"
		p.next()
		return &ast.BoolLit{BaseExpr: ast.MakeBaseExpr(startPos, p.tok.Pos), Value: v}

	case token.STRING_LITERAL:
		v := p.tok.Value
		p.next()
		return &ast.StringLit{BaseExpr: ast.MakeBaseExpr(startPos, p.tok.Pos), Value: v}

	case token.LBRACKET:
		return p.parseArrayLit(startPos)

	case token.LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return expr

	case token.INPUT:
		p.next()
		p.expect(token.LPAREN)
		prompt := p.parseExpr()
		endPos := p.tok.Pos
		p.expect(token.RPAREN)
		return &ast.Input{BaseExpr: ast.MakeBaseExpr(startPos, endPos), Prompt: prompt}

	case token.IDENTIFIER:
		name := p.tok.Value
		p.next()
		if p.tok.Type == token.LPAREN {
			return p.parseCall(name, startPos)
		}
		return &ast.Identifier{BaseExpr: ast.MakeBaseExpr(startPos, p.tok.Pos), Name: name}

	default:
		p.errorf("unexpected %s", p.tokenDesc())
		p.next()
		return nil
	}
}

// parseCall parses "IDENT '(' [expr {',' expr}] ')'" once the identifier
// and the following '(' have already been recognized as a call.
func (p *Parser) parseCall(name string, startPos token.Position) ast.Expr {
	p.expect(token.LPAREN)

	var args []ast.Expr
	for p.tok.Type != token.RPAREN && !p.failed() {
		if len(args) > 0 {
			p.expect(token.COMMA)
		}
		arg := p.parseExpr()
		if arg == nil {
			break
		}
		args = append(args, arg)
	}

	endPos := p.tok.Pos
	p.expect(token.RPAREN)

	return &ast.Call{
		BaseExpr: ast.MakeBaseExpr(startPos, endPos),
		Callee:   name,
		Args:     args,
	}
}

// parseArrayLit parses "'[' [expr {',' expr}] ']'".
func (p *Parser) parseArrayLit(startPos token.Position) ast.Expr {
	p.expect(token.LBRACKET)

	var elems []ast.Expr
	for p.tok.Type != token.RBRACKET && !p.failed() {
		if len(elems) > 0 {
			p.expect(token.COMMA)
		}
		e := p.parseExpr()
		if e == nil {
			break
		}
		elems = append(elems, e)
	}

	endPos := p.tok.Pos
	p.expect(token.RBRACKET)

	return &ast.ArrayLit{
		BaseExpr: ast.MakeBaseExpr(startPos, endPos),
		Elements: elems,
	}
}
