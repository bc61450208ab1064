// Package sema implements tnac's semantic analyser: scope
// open/close, symbol interning, and name resolution.
//
// Grounded in spec.md §3/§4.3 and
// original_source/tnac_front/src/sema/sema.cpp +
// tnac_front/include/sema/sym/sym_table.hpp; the RAII scope-guard
// idiom from the C++ original becomes an explicit OpenScope/CloseScope
// pair that the parser and compiler call symmetrically around each
// function or module body (spec.md §8 invariant 6).
package sema

import "fmt"

type ScopeKind uint8

const (
	Global ScopeKind = iota
	Module
	Function
	Block
)

func (k ScopeKind) String() string {
	switch k {
	case Global:
		return "Global"
	case Module:
		return "Module"
	case Function:
		return "Function"
	case Block:
		return "Block"
	}
	return "?"
}

type SymbolKind uint8

const (
	SymVariable SymbolKind = iota
	SymParameter
	SymFunction
	SymModule
	SymScopeRef
	SymDeferred
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "Variable"
	case SymParameter:
		return "Parameter"
	case SymFunction:
		return "Function"
	case SymModule:
		return "Module"
	case SymScopeRef:
		return "ScopeRef"
	case SymDeferred:
		return "Deferred"
	}
	return "?"
}

// Symbol is an interned name with its kind and owning scope.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Scope *Scope
	// Aux carries kind-specific payload: parameter index for
	// Parameter, pointer to the aliased Scope for ScopeRef, etc. Left
	// as interface{} so ir/compiler can stash their own bookkeeping
	// (e.g. the IR function a Function symbol names) without sema
	// needing to know about IR types.
	Aux interface{}
}

// Scope is one level of lexical nesting.
type Scope struct {
	Kind    ScopeKind
	Parent  *Scope
	Depth   int
	symbols map[string]*Symbol
}

func newScope(kind ScopeKind, parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	return &Scope{Kind: kind, Parent: parent, Depth: depth, symbols: make(map[string]*Symbol)}
}

// Table is the semantic analyser's state: a stack of open scopes.
type Table struct {
	current *Scope
	root    *Scope
}

func NewTable() *Table {
	g := newScope(Global, nil)
	return &Table{current: g, root: g}
}

func (t *Table) Current() *Scope { return t.current }

// OpenScope pushes a new scope of the given kind as a child of the
// current one.
func (t *Table) OpenScope(kind ScopeKind) *Scope {
	t.current = newScope(kind, t.current)
	return t.current
}

// CloseScope pops the current scope back to its parent. Calling it
// more times than OpenScope was called is a programming error in the
// parser and panics, surfacing the bug immediately rather than
// silently corrupting the scope stack.
func (t *Table) CloseScope() {
	if t.current.Parent == nil {
		panic("sema: CloseScope called on the global scope")
	}
	t.current = t.current.Parent
}

// Redefinition is returned by the Add* family when a name already
// exists in the current scope with an incompatible kind, or (for
// parameters) with any kind at all.
type Redefinition struct {
	Name     string
	Existing *Symbol
}

func (e *Redefinition) Error() string {
	return fmt.Sprintf("redefinition of %q (existing kind %s)", e.Name, e.Existing.Kind)
}

// insert is the common path for every Add* method: same-kind lookups
// in the current scope are idempotent (return the existing symbol,
// nil error); a different-kind clash fails fast.
func (t *Table) insert(name string, kind SymbolKind, aux interface{}) (*Symbol, error) {
	if existing, ok := t.current.symbols[name]; ok {
		if existing.Kind == kind {
			return existing, nil
		}
		return existing, &Redefinition{Name: name, Existing: existing}
	}
	sym := &Symbol{Name: name, Kind: kind, Scope: t.current, Aux: aux}
	t.current.symbols[name] = sym
	return sym, nil
}

func (t *Table) AddVariable(name string) (*Symbol, error) { return t.insert(name, SymVariable, nil) }

func (t *Table) AddParameter(name string, index int) (*Symbol, error) {
	if existing, ok := t.current.symbols[name]; ok {
		return existing, &Redefinition{Name: name, Existing: existing} // params never merge, even same-kind
	}
	return t.insert(name, SymParameter, index)
}

func (t *Table) AddFunction(name string) (*Symbol, error) { return t.insert(name, SymFunction, nil) }
func (t *Table) AddModule(name string) (*Symbol, error)   { return t.insert(name, SymModule, nil) }

func (t *Table) AddScopeRef(name string, target *Scope) (*Symbol, error) {
	return t.insert(name, SymScopeRef, target)
}

func (t *Table) AddDeferred(name string) (*Symbol, error) { return t.insert(name, SymDeferred, nil) }

// Lookup walks the enclosing scope chain. Crossing a Function boundary
// hides Variable/Parameter symbols (they are not free variables) but
// lets Function/Module/ScopeRef symbols leak outward, matching
// spec.md §3.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	crossedFunction := false
	for s := t.current; s != nil; s = s.Parent {
		if sym, ok := s.symbols[name]; ok {
			if crossedFunction && (sym.Kind == SymVariable || sym.Kind == SymParameter) {
				// keep walking past this scope's binding; it's hidden
			} else {
				return sym, true
			}
		}
		if s.Kind == Function {
			crossedFunction = true
		}
	}
	return nil, false
}

// ScopedLookup only considers the current scope.
func (t *Table) ScopedLookup(name string) (*Symbol, bool) {
	sym, ok := t.current.symbols[name]
	return sym, ok
}

// Symbols lists every symbol reachable from the current scope (walking
// up through parents) whose kind is in kinds, deduplicated by name with
// the innermost-scope binding winning. Used by the #vars/#funcs/#modules
// commands (spec.md §6) to report what's currently in view.
func (t *Table) Symbols(kinds ...SymbolKind) []*Symbol {
	want := make(map[SymbolKind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	seen := make(map[string]bool)
	var out []*Symbol
	for s := t.current; s != nil; s = s.Parent {
		for name, sym := range s.symbols {
			if seen[name] || !want[sym.Kind] {
				continue
			}
			seen[name] = true
			out = append(out, sym)
		}
	}
	return out
}
