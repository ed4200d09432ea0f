package parser

import "testing"

// FuzzParser feeds random input through Parse, which must never panic —
// only return an AST or a *parser.ParseError / parser.ErrorList.
func FuzzParser(f *testing.F) {
	seeds := []string{
		"",
		"function f() {}",
		"function f(int a) { return a; }",
		"function f(int a, int b): int { return a + b; }",
		"function max(int a, int b): int { if (a > b) { return a; } else { return b; } }",
		`print("hello");`,
		"print(42);",
		"print(3.14);",
		"print(a + b);",
		"print(a - b);",
		"print(a * b);",
		"print(a / b);",
		"print(a % b);",
		"print(a == b);",
		"print(a != b);",
		"print(a < b);",
		"print(a <= b);",
		"print(a > b);",
		"print(a >= b);",
		"print(a and b);",
		"print(a or b);",
		"print(not a);",
		"print(-a);",
		"int x = 1;",
		"x = 1;",
		"int[5] a = [1,2,3,4,5];",
		"print(a[i]);",
		"a[i] = 1;",
		"if (x) { print(x); }",
		"if (x) { print(x); } else { print(1); }",
		"while (x) { x = x - 1; }",
		"for (int i = 0; i < 10; i = i + 1) { print(i); }",
		"return;",
		"return 1;",
		"string s = input(\"prompt: \");",
		"bool b = true;",
		"bool b = false;",
		"float f = 1.5;",

		"{",
		"function f(",
		"if () print(1);",
		"int x = ;",
		"function f(int a, int a) {}",
		"return",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		const maxLen = 10000
		if len(src) > maxLen {
			return
		}
		_, _ = Parse(src)
		_, _ = ParseExpr(src)
	})
}
