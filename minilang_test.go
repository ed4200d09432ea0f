package minilang

import (
	"strings"
	"testing"
)

func TestRunHelloWorld(t *testing.T) {
	out, err := Run(`print("Hello, World!");`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello, World!\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunFactorial(t *testing.T) {
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
	out, err := Run(code, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Fatorial de 5:\n120\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCompileSyntaxError(t *testing.T) {
	_, err := Compile(`print("missing semicolon")`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if !strings.Contains(pe.Error(), "Syntactic error") {
		t.Fatalf("got %q", pe.Error())
	}
}

func TestCompileUndeclaredIdentifier(t *testing.T) {
	_, err := Compile(`print(y);`)
	if err == nil {
		t.Fatal("expected a semantic error")
	}
	se, ok := err.(*SemanticError)
	if !ok {
		t.Fatalf("got %T, want *SemanticError", err)
	}
	if !strings.Contains(se.Error(), "undeclared name 'y'") {
		t.Fatalf("got %q", se.Error())
	}
}

func TestRunRuntimeBoundsError(t *testing.T) {
	out, err := Run("int[3] a=[1,2,3];\nprint(a[5]);", nil)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("got %T, want *RuntimeError", err)
	}
	want := "Runtime error at line 2, column 7: index 5 out of bounds for array of length 3"
	if re.Error() != want {
		t.Fatalf("got %q, want %q", re.Error(), want)
	}
	if out != "" {
		t.Fatalf("expected no output before the error, got %q", out)
	}
}

func TestMustCompilePanicsOnError(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected MustCompile to panic")
		}
	}()
	MustCompile(`print(`)
}

func TestExecWritesToProvidedWriter(t *testing.T) {
	var sb strings.Builder
	if err := Exec(`print("piped");`, nil, &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.String() != "piped\n" {
		t.Fatalf("got %q", sb.String())
	}
}
