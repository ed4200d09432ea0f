// Package lexer tokenizes Mini-Lang source code (spec §4.1).
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/mlang-run/minilang/internal/diag"
	"github.com/mlang-run/minilang/internal/token"
)

// Lexer tokenizes Mini-Lang source text.
type Lexer struct {
	src     []byte
	ch      byte
	offset  int
	pos     token.Position
	nextPos token.Position
}

// New creates a Lexer over src.
func New(src []byte) *Lexer {
	l := &Lexer{
		src:     src,
		nextPos: token.Position{Line: 1, Column: 1},
	}
	l.next()
	return l
}

// NewFromString creates a Lexer over a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Token is one scanned token: kind, position, and literal text (decoded
// payload for strings, source text otherwise).
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Error is a lexical error (spec §4.1: "LexicalError{line, column,
// message}; no tokens are returned").
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Lexical error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Kind satisfies diag.Diagnostic.
func (e *Error) Kind() diag.Kind { return diag.Lexical }

var _ diag.Diagnostic = (*Error)(nil)

// Scan tokenizes the entire source, returning the token list (terminated
// by one EOF) or the first lexical error encountered. Lexing does not
// attempt recovery (spec §4.1).
func Scan(src string) ([]Token, error) {
	l := NewFromString(src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// Next scans and returns the next token, or a lexical error.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespaceAndComments()

	pos := l.pos
	if l.ch == 0 {
		return Token{Type: token.EOF, Pos: pos}, nil
	}

	switch l.ch {
	case '+':
		l.next()
		return Token{Type: token.ADD, Pos: pos, Value: "+"}, nil
	case '-':
		l.next()
		return Token{Type: token.SUB, Pos: pos, Value: "-"}, nil
	case '*':
		l.next()
		return Token{Type: token.MUL, Pos: pos, Value: "*"}, nil
	case '/':
		l.next()
		return Token{Type: token.DIV, Pos: pos, Value: "/"}, nil
	case '%':
		l.next()
		return Token{Type: token.MOD, Pos: pos, Value: "%"}, nil
	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.EQUALS, Pos: pos, Value: "=="}, nil
		}
		return Token{Type: token.ASSIGN, Pos: pos, Value: "="}, nil
	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.NOT_EQUALS, Pos: pos, Value: "!="}, nil
		}
		return Token{}, &Error{Pos: pos, Message: "unexpected character '!'"}
	case '<':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.LTE, Pos: pos, Value: "<="}, nil
		}
		return Token{Type: token.LESS, Pos: pos, Value: "<"}, nil
	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.GTE, Pos: pos, Value: ">="}, nil
		}
		return Token{Type: token.GREATER, Pos: pos, Value: ">"}, nil
	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}, nil
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}, nil
	case '{':
		l.next()
		return Token{Type: token.LBRACE, Pos: pos, Value: "{"}, nil
	case '}':
		l.next()
		return Token{Type: token.RBRACE, Pos: pos, Value: "}"}, nil
	case '[':
		l.next()
		return Token{Type: token.LBRACKET, Pos: pos, Value: "["}, nil
	case ']':
		l.next()
		return Token{Type: token.RBRACKET, Pos: pos, Value: "]"}, nil
	case ',':
		l.next()
		return Token{Type: token.COMMA, Pos: pos, Value: ","}, nil
	case ';':
		l.next()
		return Token{Type: token.SEMICOLON, Pos: pos, Value: ";"}, nil
	case ':':
		l.next()
		return Token{Type: token.COLON, Pos: pos, Value: ":"}, nil
	case '"', '\'':
		return l.scanString(pos)
	default:
		if isDigit(l.ch) {
			return l.scanNumber(pos), nil
		}
		if isIdentStart(l.ch) {
			return l.scanIdent(pos), nil
		}
		ch, _ := utf8.DecodeRune(l.src[pos.Offset:])
		l.next()
		return Token{}, &Error{Pos: pos, Message: fmt.Sprintf("unexpected character %q", ch)}
	}
}

func (l *Lexer) scanString(pos token.Position) (Token, error) {
	quote := l.ch
	l.next()

	var sb []byte
	for l.ch != 0 && l.ch != quote && l.ch != '\n' {
		if l.ch == '\\' {
			l.next()
			switch l.ch {
			case 'n':
				sb = append(sb, '\n')
			case 't':
				sb = append(sb, '\t')
			case '\\':
				sb = append(sb, '\\')
			case '"':
				sb = append(sb, '"')
			case '\'':
				sb = append(sb, '\'')
			default:
				return Token{}, &Error{Pos: l.pos, Message: fmt.Sprintf("unknown escape sequence '\\%c'", l.ch)}
			}
			l.next()
		} else {
			sb = append(sb, l.src[l.pos.Offset:l.offset]...)
			l.next()
		}
	}

	if l.ch != quote {
		return Token{}, &Error{Pos: pos, Message: "unterminated string literal"}
	}
	l.next()

	return Token{Type: token.STRING_LITERAL, Pos: pos, Value: string(sb)}, nil
}

func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset
	for isDigit(l.ch) {
		l.next()
	}
	isFloat := false
	if l.ch == '.' && l.offset < len(l.src) && isDigit(l.src[l.offset]) {
		isFloat = true
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}
	kind := token.INT_LITERAL
	if isFloat {
		kind = token.FLOAT_LITERAL
	}
	return Token{Type: kind, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentContinue(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.endOffset()])
	switch name {
	case "true":
		return Token{Type: token.BOOL_LITERAL, Pos: pos, Value: "true"}
	case "false":
		return Token{Type: token.BOOL_LITERAL, Pos: pos, Value: "false"}
	default:
		return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
	}
}

// endOffset returns the correct end offset for slicing l.src. At EOF,
// l.pos is not advanced, so len(l.src) must be used instead.
func (l *Lexer) endOffset() int {
	if l.ch == 0 {
		return len(l.src)
	}
	return l.pos.Offset
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.next()
		}
		if l.ch == '#' {
			for l.ch != 0 && l.ch != '\n' {
				l.next()
			}
			continue
		}
		return
	}
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}

	l.pos = l.nextPos

	if l.src[l.offset] >= utf8.RuneSelf {
		r, size := utf8.DecodeRune(l.src[l.offset:])
		l.offset += size
		l.nextPos.Column++
		l.nextPos.Offset = l.offset
		if r == '\n' {
			l.nextPos.Line++
			l.nextPos.Column = 1
		}
		// Every non-ASCII code point is represented by utf8.RuneSelf, which
		// no ASCII class matches and which is never taken for end of input.
		l.ch = utf8.RuneSelf
		return
	}

	l.ch = l.src[l.offset]
	l.offset++
	l.nextPos.Column++
	l.nextPos.Offset = l.offset

	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
