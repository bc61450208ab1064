package parser

import (
	"testing"

	"tnac/internal/ast"
	"tnac/internal/sema"
)

func parse(t *testing.T, src string) *ast.Root {
	t.Helper()
	p := New("test", src, sema.NewTable())
	root := p.Parse()
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors)
	}
	return root
}

func TestArithmeticPrecedence(t *testing.T) {
	root := parse(t, "1 + 2 * 3")
	if len(root.Exprs) != 1 {
		t.Fatalf("expected one top-level expr, got %d", len(root.Exprs))
	}
	bin, ok := root.Exprs[0].(*ast.Binary)
	if !ok || bin.Op != ast.BAdd {
		t.Fatalf("expected top-level '+', got %#v", root.Exprs[0])
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.BMul {
		t.Fatalf("expected '*' nested under '+', got %#v", bin.Right)
	}
}

func TestVarDeclVsReassignment(t *testing.T) {
	root := parse(t, "x = 1 : x = 2")
	if len(root.Exprs) != 2 {
		t.Fatalf("expected two top-level exprs, got %d", len(root.Exprs))
	}
	if _, ok := root.Exprs[0].(*ast.DeclExpr); !ok {
		t.Fatalf("expected first 'x = 1' to be a declaration, got %#v", root.Exprs[0])
	}
	if _, ok := root.Exprs[1].(*ast.Assign); !ok {
		t.Fatalf("expected second 'x = 2' to be a plain assignment, got %#v", root.Exprs[1])
	}
}

func TestFunctionDecl(t *testing.T) {
	root := parse(t, "add(a, b) a + b")
	decl, ok := root.Exprs[0].(*ast.DeclExpr)
	if !ok {
		t.Fatalf("expected a DeclExpr, got %#v", root.Exprs[0])
	}
	fn, ok := decl.Decl.(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected a FuncDecl, got %#v", decl.Decl)
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %#v", fn)
	}
}

func TestShortConditional(t *testing.T) {
	root := parse(t, "{ x > 0 } -> { 1, 2 }")
	cond, ok := root.Exprs[0].(*ast.Cond)
	if !ok {
		t.Fatalf("expected a Cond, got %#v", root.Exprs[0])
	}
	if cond.Short == nil {
		t.Fatalf("expected short-form condition")
	}
}

func TestPatternConditional(t *testing.T) {
	root := parse(t, "{ x } -> { 1 } -> 'one' { default } -> 'other'")
	cond, ok := root.Exprs[0].(*ast.Cond)
	if !ok {
		t.Fatalf("expected a Cond, got %#v", root.Exprs[0])
	}
	if len(cond.Patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(cond.Patterns))
	}
	if cond.Patterns[1].Guard.MKind != ast.MDefault {
		t.Fatalf("expected second pattern to be the default guard")
	}
}

func TestArrayLiteralAndCallatRootLevel(t *testing.T) {
	root := parse(t, "f([1, 2, 3])")
	call, ok := root.Exprs[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected a Call, got %#v", root.Exprs[0])
	}
	if _, ok := call.Args[0].(*ast.Array); !ok {
		t.Fatalf("expected array literal argument, got %#v", call.Args[0])
	}
}

func TestInvalidTokenProducesErrorNode(t *testing.T) {
	p := New("test", ")", sema.NewTable())
	root := p.Parse()
	if len(p.Errors) == 0 {
		t.Fatalf("expected a recorded error for a stray ')'")
	}
	if _, ok := root.Exprs[0].(*ast.Error); !ok {
		t.Fatalf("expected an Error node, got %#v", root.Exprs[0])
	}
}
