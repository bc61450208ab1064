package sema

import "testing"

func TestScopeSymmetry(t *testing.T) {
	tbl := NewTable()
	tbl.OpenScope(Function)
	tbl.OpenScope(Block)
	tbl.CloseScope()
	tbl.CloseScope()
	if tbl.Current().Kind != Global {
		t.Fatalf("after matched open/close, expected Global scope, got %s", tbl.Current().Kind)
	}
}

func TestVariableHiddenAcrossFunctionBoundary(t *testing.T) {
	tbl := NewTable()
	tbl.AddVariable("a")
	tbl.OpenScope(Function)
	if _, ok := tbl.Lookup("a"); ok {
		t.Fatalf("variable from enclosing scope must be hidden across a function boundary")
	}
}

func TestFunctionSymbolLeaksOutward(t *testing.T) {
	tbl := NewTable()
	tbl.AddFunction("f")
	tbl.OpenScope(Function)
	if _, ok := tbl.Lookup("f"); !ok {
		t.Fatalf("function symbols must remain visible across a function boundary")
	}
}

func TestRedefinitionWithIncompatibleKind(t *testing.T) {
	tbl := NewTable()
	tbl.AddVariable("x")
	_, err := tbl.AddFunction("x")
	if err == nil {
		t.Fatalf("expected redefinition error for incompatible kind")
	}
}

func TestSameKindInsertionIsIdempotent(t *testing.T) {
	tbl := NewTable()
	s1, err1 := tbl.AddVariable("x")
	s2, err2 := tbl.AddVariable("x")
	if err1 != nil || err2 != nil {
		t.Fatalf("same-kind re-insertion should not error: %v, %v", err1, err2)
	}
	if s1 != s2 {
		t.Fatalf("same-kind re-insertion should return the existing symbol")
	}
}

func TestParameterRedefinitionAlwaysFails(t *testing.T) {
	tbl := NewTable()
	tbl.AddParameter("p", 0)
	_, err := tbl.AddParameter("p", 1)
	if err == nil {
		t.Fatalf("expected param_redef error on duplicate parameter name")
	}
}

func TestSymbolsFiltersByKindAndDedupsByInnermostScope(t *testing.T) {
	tbl := NewTable()
	tbl.AddVariable("x")
	tbl.AddFunction("f")
	tbl.OpenScope(Block)
	tbl.AddVariable("x") // shadows the outer x
	tbl.AddVariable("y")

	vars := tbl.Symbols(SymVariable)
	if len(vars) != 2 {
		t.Fatalf("expected 2 visible variables (x shadowed once, y), got %d: %v", len(vars), vars)
	}
	names := map[string]bool{}
	for _, s := range vars {
		names[s.Name] = true
	}
	if !names["x"] || !names["y"] {
		t.Fatalf("expected x and y among visible variables, got %v", vars)
	}

	funcs := tbl.Symbols(SymFunction)
	if len(funcs) != 1 || funcs[0].Name != "f" {
		t.Fatalf("expected only function f, got %v", funcs)
	}
}
