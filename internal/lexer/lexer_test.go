// Package lexer tests Mini-Lang source tokenization.
package lexer

import (
	"testing"

	"github.com/mlang-run/minilang/internal/token"
)

func TestScanBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Token
	}{
		{"+", []token.Token{token.ADD, token.EOF}},
		{"-", []token.Token{token.SUB, token.EOF}},
		{"*", []token.Token{token.MUL, token.EOF}},
		{"%", []token.Token{token.MOD, token.EOF}},
		{"=", []token.Token{token.ASSIGN, token.EOF}},
		{"==", []token.Token{token.EQUALS, token.EOF}},
		{"!=", []token.Token{token.NOT_EQUALS, token.EOF}},
		{"<", []token.Token{token.LESS, token.EOF}},
		{"<=", []token.Token{token.LTE, token.EOF}},
		{">", []token.Token{token.GREATER, token.EOF}},
		{">=", []token.Token{token.GTE, token.EOF}},
		{"( ) { } [ ] , ; :", []token.Token{
			token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
			token.LBRACKET, token.RBRACKET, token.COMMA, token.SEMICOLON, token.COLON,
			token.EOF,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("Scan(%q) error: %v", tt.input, err)
			}
			if len(toks) != len(tt.expected) {
				t.Fatalf("Scan(%q) = %d tokens, want %d", tt.input, len(toks), len(tt.expected))
			}
			for i, want := range tt.expected {
				if toks[i].Type != want {
					t.Errorf("token %d: got %v, want %v", i, toks[i].Type, want)
				}
			}
		})
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, err := Scan("int x if while for function return print input and or not true false y_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Token{
		token.INT, token.IDENTIFIER, token.IF, token.WHILE, token.FOR,
		token.FUNCTION, token.RETURN, token.PRINT, token.INPUT,
		token.AND, token.OR, token.NOT, token.BOOL_LITERAL, token.BOOL_LITERAL,
		token.IDENTIFIER, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestScanNumbers(t *testing.T) {
	toks, err := Scan("123 3.14 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.INT_LITERAL || toks[0].Value != "123" {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Type != token.FLOAT_LITERAL || toks[1].Value != "3.14" {
		t.Errorf("got %+v", toks[1])
	}
	if toks[2].Type != token.INT_LITERAL || toks[2].Value != "0" {
		t.Errorf("got %+v", toks[2])
	}
}

func TestScanStrings(t *testing.T) {
	toks, err := Scan(`"hello\nworld" 'single'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Value != "hello\nworld" {
		t.Errorf("got %q", toks[0].Value)
	}
	if toks[1].Value != "single" {
		t.Errorf("got %q", toks[1].Value)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := Scan(`"unterminated`)
	if err == nil {
		t.Fatalf("expected a lexical error")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	_, err := Scan("@")
	if err == nil {
		t.Fatalf("expected a lexical error")
	}
}

func TestScanComment(t *testing.T) {
	toks, err := Scan("x # this is a comment\ny")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (x, y, EOF)", len(toks))
	}
}

func TestPositions(t *testing.T) {
	toks, err := Scan("x\ny")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Errorf("got %+v", toks[0].Pos)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 1 {
		t.Errorf("got %+v", toks[1].Pos)
	}
}
