package interp

import (
	"strings"
	"testing"

	"github.com/mlang-run/minilang/internal/parser"
	"github.com/mlang-run/minilang/internal/semantic"
)

func runCode(t *testing.T, code, stdin string) (string, error) {
	t.Helper()
	prog, err := parser.Parse(code)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	res, err := semantic.Resolve(prog)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	var out strings.Builder
	ip := New(res, &out, strings.NewReader(stdin))
	runErr := ip.Run(prog)
	return out.String(), runErr
}

func TestHelloWorld(t *testing.T) {
	out, err := runCode(t, `print("Hello, World!");`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello, World!\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRecursiveFactorial(t *testing.T) {
	code := `
function fact(int n): int {
    if (n <= 1) {
        return 1;
    } else {
        return n * fact(n - 1);
    }
}
print("Fatorial de 5:");
print(fact(5));
`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Fatorial de 5:\n120\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFibonacciLoop(t *testing.T) {
	code := `
int a = 0;
int b = 1;
for (int i = 0; i < 10; i = i + 1) {
    print(a);
    int next = a + b;
    a = b;
    b = next;
}
`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "0\n1\n1\n2\n3\n5\n8\n13\n21\n34\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestArrayIndexAndMutate(t *testing.T) {
	code := `
int[5] a = [1,2,3,4,5];
print(a[0]);
print(a[2]);
a[2] = 10;
print(a[2]);
`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n3\n10\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFunctionLocalShadowing(t *testing.T) {
	code := `
int x = 10;
function f() {
    int x = 20;
    print(x);
}
f();
print(x);
`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "20\n10\n" {
		t.Fatalf("got %q", out)
	}
}

func TestShortCircuitAnd(t *testing.T) {
	code := `
function sideEffect(): bool {
    print("called");
    return true;
}
if (false and sideEffect()) {
    print("unreachable");
}
`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("right operand of 'and' was evaluated, got %q", out)
	}
}

func TestShortCircuitOr(t *testing.T) {
	code := `
function sideEffect(): bool {
    print("called");
    return true;
}
if (true or sideEffect()) {
    print("reached");
}
`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "reached\n" {
		t.Fatalf("right operand of 'or' was evaluated, got %q", out)
	}
}

func TestArrayIndexOutOfBounds(t *testing.T) {
	code := "int[3] a=[1,2,3];\nprint(a[5]);"
	_, err := runCode(t, code, "")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	want := "Runtime error at line 2, column 7: index 5 out of bounds for array of length 3"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestBlockScopeNotVisibleAfter(t *testing.T) {
	// A variable declared inside a block must not leak into the parser's
	// or analyzer's view of the outer scope; this is enforced at analysis
	// time rather than at runtime, so here we only check that redeclaring
	// the name after the block still runs.
	code := `
if (true) {
    int y = 5;
    print(y);
}
int y = 6;
print(y);
`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "5\n6\n" {
		t.Fatalf("got %q", out)
	}
}

func TestIntDivisionByZero(t *testing.T) {
	code := `int x = 1 / 0;`
	_, err := runCode(t, code, "")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestFloatDivisionByZeroDoesNotError(t *testing.T) {
	code := `float x = 1.0 / 0.0; print(x);`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "+Inf.0\n" {
		t.Fatalf("got %q", out)
	}
}

func TestInputReadsLine(t *testing.T) {
	code := `string name = input("name: "); print(name);`
	out, err := runCode(t, code, "Ada\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "name: Ada\n" {
		t.Fatalf("got %q", out)
	}
}

func TestIntToFloatWideningInArithmetic(t *testing.T) {
	code := `float x = 1; float y = x + 2; print(y);`
	out, err := runCode(t, code, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "3.0\n" {
		t.Fatalf("got %q", out)
	}
}
