package semantic

import (
	"strings"
	"testing"

	"github.com/mlang-run/minilang/internal/ast"
	"github.com/mlang-run/minilang/internal/parser"
)

func resolveCode(t *testing.T, code string) (*ast.Program, *Result, error) {
	t.Helper()
	prog, err := parser.Parse(code)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	res, err := Resolve(prog)
	return prog, res, err
}

func expectError(t *testing.T, code, substr string) {
	t.Helper()
	_, _, err := resolveCode(t, code)
	if err == nil {
		t.Fatalf("expected an error containing %q, got none", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error = %q, want substring %q", err.Error(), substr)
	}
}

func TestResolveUndeclaredIdentifier(t *testing.T) {
	expectError(t, `print(y);`, "undeclared name 'y'")
}

func TestResolveDuplicateDeclarationSameScope(t *testing.T) {
	expectError(t, `int x = 1; int x = 2;`, "duplicate declaration of 'x'")
}

func TestResolveShadowingInNestedScopeAllowed(t *testing.T) {
	_, _, err := resolveCode(t, `int x = 1; { int x = 2; print(x); } print(x);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveIntToFloatCoercion(t *testing.T) {
	prog, _, err := resolveCode(t, `float x = 1;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := prog.TopLevel[0].(*ast.VarDecl)
	if _, ok := decl.Initializer.(*ast.Coerce); !ok {
		t.Errorf("initializer = %#v, want Coerce", decl.Initializer)
	}
}

func TestResolveArraySizeMismatch(t *testing.T) {
	expectError(t, `int[3] a = [1, 2];`, "declared with size 3 but initialized with 2")
}

func TestResolveArrayWithoutSizeOrInitializer(t *testing.T) {
	expectError(t, `int[] a;`, "needs a size or an initializer")
}

func TestResolveMissingReturnPath(t *testing.T) {
	expectError(t, `function f(): int { int x = 1; }`, "does not return a value on every path")
}

func TestResolveReturnOnAllBranches(t *testing.T) {
	_, _, err := resolveCode(t, `
	function f(int x): int {
		if (x > 0) {
			return 1;
		} else {
			return 0;
		}
	}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveForwardFunctionReference(t *testing.T) {
	_, _, err := resolveCode(t, `
	function main_entry(): int {
		return helper();
	}
	function helper(): int {
		return 42;
	}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveCallArityMismatch(t *testing.T) {
	expectError(t, `
	function add(int a, int b): int { return a + b; }
	print(add(1));
	`, "expects 2 argument(s), got 1")
}

func TestResolveCallArgumentWidening(t *testing.T) {
	prog, _, err := resolveCode(t, `
	function f(float x): float { return x; }
	print(f(1));
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := prog.TopLevel[1].(*ast.Print).X.(*ast.Call)
	if _, ok := call.Args[0].(*ast.Coerce); !ok {
		t.Errorf("argument = %#v, want Coerce", call.Args[0])
	}
}

func TestResolveTypeMismatchAssign(t *testing.T) {
	expectError(t, `string s = "a"; s = 1;`, "cannot assign")
}

func TestResolveArrayEqualityRejected(t *testing.T) {
	expectError(t, `int[2] a = [1,2]; int[2] b = [1,2]; print(a == b);`, "cannot compare array")
}

func TestResolvePrintArrayRejected(t *testing.T) {
	expectError(t, `int[2] a = [1,2]; print(a);`, "cannot print an array")
}

func TestResolveIfConditionMustBeBool(t *testing.T) {
	expectError(t, `if (1) { print(1); }`, "if condition must be bool")
}

func TestResolveReturnOutsideFunction(t *testing.T) {
	expectError(t, `return 1;`, "return outside function")
}

func TestResolveIndexNonArray(t *testing.T) {
	expectError(t, `int x = 1; print(x[0]);`, "cannot index non-array")
}

func TestResolveLogicalOperandsMustBeBool(t *testing.T) {
	expectError(t, `print(1 and 2);`, "operands of logical operator must be bool")
}
