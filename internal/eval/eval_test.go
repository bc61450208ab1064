package eval

import (
	"testing"

	"tnac/internal/compiler"
	"tnac/internal/ir"
	"tnac/internal/parser"
	"tnac/internal/sema"
	"tnac/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	symtab := sema.NewTable()
	p := parser.New("test", src, symtab)
	root := p.Parse()
	if len(p.Errors) != 0 {
		t.Fatalf("parse errors for %q: %v", src, p.Errors)
	}
	builder := ir.NewBuilder()
	store := value.NewStore()
	c := compiler.New(builder, symtab, store)
	fn := c.CompileModule(root)
	if len(c.Errors()) != 0 {
		t.Fatalf("compile errors for %q: %v", src, c.Errors())
	}
	ev := New(store, builder.Constants())
	v, err := ev.Call(fn, nil)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v
}

func TestArithmeticEval(t *testing.T) {
	v := run(t, "1 + 2 * 3")
	if v.Type() != value.TInt || v.AsInt() != 7 {
		t.Fatalf("expected Int(7), got %s", v.String())
	}
}

func TestVariableAndAssignment(t *testing.T) {
	v := run(t, "x = 1 : x = x + 41 : x")
	if v.Type() != value.TInt || v.AsInt() != 42 {
		t.Fatalf("expected Int(42), got %s", v.String())
	}
}

func TestShortConditionalEval(t *testing.T) {
	v := run(t, "{ 3 > 1 } -> { 10, 20 }")
	if v.Type() != value.TInt || v.AsInt() != 10 {
		t.Fatalf("expected Int(10), got %s", v.String())
	}
}

func TestFunctionCallEval(t *testing.T) {
	v := run(t, "add(a, b) a + b ; : add(20, 22)")
	if v.Type() != value.TInt || v.AsInt() != 42 {
		t.Fatalf("expected Int(42), got %s", v.String())
	}
}

func TestArrayLiteralEval(t *testing.T) {
	v := run(t, "[1, 2, 3]")
	if v.Type() != value.TArray || v.AsArray().Len() != 3 {
		t.Fatalf("expected a 3-element array, got %s", v.String())
	}
	if v.AsArray().At(1).AsInt() != 2 {
		t.Fatalf("expected element 1 to be 2, got %s", v.AsArray().At(1).String())
	}
}

func TestLogicalShortCircuitEval(t *testing.T) {
	v := run(t, "_false && 1")
	if v.Type() != value.TBool || v.AsBool() != false {
		t.Fatalf("expected Bool(false) from short-circuited &&, got %s", v.String())
	}
}

func TestArrayAsCallableEval(t *testing.T) {
	v := run(t, "double(x) x * 2 ; : fns = [double, double] : fns(21)")
	if v.Type() != value.TArray || v.AsArray().Len() != 2 {
		t.Fatalf("expected a 2-element array of results, got %s", v.String())
	}
	if v.AsArray().At(0).AsInt() != 42 || v.AsArray().At(1).AsInt() != 42 {
		t.Fatalf("expected [42, 42], got %s", v.String())
	}
}

func TestArrayAsCallableSkipsNonCallables(t *testing.T) {
	v := run(t, "double(x) x * 2 ; : fns = [double, 1, double] : fns(5)")
	if v.Type() != value.TArray || v.AsArray().Len() != 2 {
		t.Fatalf("expected non-callable element 1 to be skipped, got %s", v.String())
	}
}

func TestUndefinedIdentifierIsCompileError(t *testing.T) {
	symtab := sema.NewTable()
	p := parser.New("test", "undeclared_name + 1", symtab)
	root := p.Parse()
	builder := ir.NewBuilder()
	c := compiler.New(builder, symtab, value.NewStore())
	c.CompileModule(root)
	if len(c.Errors()) == 0 {
		t.Fatalf("expected a compile error referencing the undefined identifier")
	}
}
