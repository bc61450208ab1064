// Package ast defines the tnac abstract syntax tree: a tagged node
// hierarchy with parent links and validity propagation.
//
// The visitor-dispatch shape (a Kind enum driving a type switch, one
// visit method per node) follows the teacher's internal/parser/ast.go
// Expr/ExprVisitor pair; tnac's node set, parent links, and validity
// propagation are new, grounded in spec.md §3 and
// original_source/tnac_lib/include/parser/ast/ast_base.hpp.
package ast

import "tnac/internal/token"

// Kind tags every node variant.
type Kind uint8

const (
	KLiteral Kind = iota
	KIdentifier
	KUnary
	KBinary
	KAssign
	KParen
	KAbs
	KTyped // constructor call: _int(x), _cplx(a,b), ...
	KCall
	KArray
	KResult
	KRet
	KMatcher
	KPattern
	KCond
	KCondShort
	KDot
	KDeclExpr
	KVarDecl
	KParamDecl
	KFuncDecl
	KScope
	KModuleDef
	KImportDir
	KRoot
	KError
)

// Node is the common interface every AST node satisfies. Kind, Parent
// and Valid are uniform; Accept drives visitor dispatch.
type Node interface {
	Kind() Kind
	Parent() Node
	setParent(Node)
	Valid() bool
	Loc() token.Location
	Accept(v Visitor) interface{}
}

// base is embedded by every concrete node type; it implements the
// Node plumbing (parent link, validity flag, location) so each
// concrete type only has to implement Kind()/Accept().
type base struct {
	parent Node
	loc    token.Location
	valid  bool
}

func (b *base) Parent() Node        { return b.parent }
func (b *base) setParent(p Node)    { b.parent = p }
func (b *base) Valid() bool         { return b.valid }
func (b *base) Loc() token.Location { return b.loc }

// Attach wires child as a descendant of parent, recording the parent
// link and propagating invalidity upward immediately (invariant 3 in
// spec.md §8: validity propagates as soon as the defect exists, so a
// parent never has to re-scan its subtree later).
func Attach(parent, child Node) {
	if child == nil {
		return
	}
	child.setParent(parent)
	if !child.Valid() {
		Invalidate(parent)
	}
}

// Invalidate marks n and every ancestor of n as invalid.
func Invalidate(n Node) {
	for n != nil {
		if v, ok := n.(interface{ markInvalid() }); ok {
			if !n.Valid() {
				return // already invalid; ancestors already marked
			}
			v.markInvalid()
		}
		n = n.Parent()
	}
}

func (b *base) markInvalid() { b.valid = false }

func newBase(loc token.Location) base { return base{loc: loc, valid: true} }

// Visitor dispatches over every concrete node kind.
type Visitor interface {
	VisitLiteral(*Literal) interface{}
	VisitIdentifier(*Identifier) interface{}
	VisitUnary(*Unary) interface{}
	VisitBinary(*Binary) interface{}
	VisitAssign(*Assign) interface{}
	VisitParen(*Paren) interface{}
	VisitAbs(*Abs) interface{}
	VisitTyped(*Typed) interface{}
	VisitCall(*Call) interface{}
	VisitArray(*Array) interface{}
	VisitResult(*Result) interface{}
	VisitRet(*Ret) interface{}
	VisitMatcher(*Matcher) interface{}
	VisitPattern(*Pattern) interface{}
	VisitCond(*Cond) interface{}
	VisitCondShort(*CondShort) interface{}
	VisitDot(*Dot) interface{}
	VisitDeclExpr(*DeclExpr) interface{}
	VisitVarDecl(*VarDecl) interface{}
	VisitParamDecl(*ParamDecl) interface{}
	VisitFuncDecl(*FuncDecl) interface{}
	VisitScope(*Scope) interface{}
	VisitModuleDef(*ModuleDef) interface{}
	VisitImportDir(*ImportDir) interface{}
	VisitRoot(*Root) interface{}
	VisitError(*Error) interface{}
}

// ---- literal / identifier ----

// LiteralKind distinguishes the tagged-union spelling a Literal carries.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitI     // imaginary unit literal `_i`
	LitPi    // `_pi`
	LitE     // `_e`
	LitString
)

type Literal struct {
	base
	LitKind LiteralKind
	Tok     token.Token
	// IntBase records which base the source used (2, 8, 10, 16) for
	// IntKind literals; irrelevant otherwise.
	IntBase int
}

func NewLiteral(tok token.Token, kind LiteralKind, base_ int) *Literal {
	return &Literal{base: newBase(tok.Loc), LitKind: kind, Tok: tok, IntBase: base_}
}
func (n *Literal) Kind() Kind                 { return KLiteral }
func (n *Literal) Accept(v Visitor) interface{} { return v.VisitLiteral(n) }

type Identifier struct {
	base
	Name string
}

func NewIdentifier(tok token.Token) *Identifier {
	return &Identifier{base: newBase(tok.Loc), Name: tok.Value}
}
func (n *Identifier) Kind() Kind                 { return KIdentifier }
func (n *Identifier) Accept(v Visitor) interface{} { return v.VisitIdentifier(n) }

// ---- operators ----

type UnaryOp uint8

const (
	UPlus UnaryOp = iota
	UNeg
	UBNeg // bitwise not (~)
	ULNot // logical not (!)
	UQuest
)

type Unary struct {
	base
	Op      UnaryOp
	Operand Node
}

func NewUnary(loc token.Location, op UnaryOp, operand Node) *Unary {
	n := &Unary{base: newBase(loc), Op: op}
	Attach(n, operand)
	n.Operand = operand
	return n
}
func (n *Unary) Kind() Kind                 { return KUnary }
func (n *Unary) Accept(v Visitor) interface{} { return v.VisitUnary(n) }

type BinaryOp uint8

const (
	BAdd BinaryOp = iota
	BSub
	BMul
	BDiv
	BMod
	BPow
	BRoot
	BAnd
	BOr
	BXor
	BCmpE
	BCmpL
	BCmpLE
	BCmpNE
	BCmpG
	BCmpGE
	BLogAnd
	BLogOr
)

type Binary struct {
	base
	Op          BinaryOp
	Left, Right Node
}

func NewBinary(loc token.Location, op BinaryOp, left, right Node) *Binary {
	n := &Binary{base: newBase(loc), Op: op}
	Attach(n, left)
	Attach(n, right)
	n.Left, n.Right = left, right
	return n
}
func (n *Binary) Kind() Kind                 { return KBinary }
func (n *Binary) Accept(v Visitor) interface{} { return v.VisitBinary(n) }

type Assign struct {
	base
	Target *Identifier
	Value  Node
}

func NewAssign(loc token.Location, target *Identifier, value Node) *Assign {
	n := &Assign{base: newBase(loc), Target: target}
	Attach(n, target)
	Attach(n, value)
	n.Value = value
	return n
}
func (n *Assign) Kind() Kind                 { return KAssign }
func (n *Assign) Accept(v Visitor) interface{} { return v.VisitAssign(n) }

type Paren struct {
	base
	Inner Node
}

func NewParen(loc token.Location, inner Node) *Paren {
	n := &Paren{base: newBase(loc)}
	Attach(n, inner)
	n.Inner = inner
	return n
}
func (n *Paren) Kind() Kind                 { return KParen }
func (n *Paren) Accept(v Visitor) interface{} { return v.VisitParen(n) }

// Abs is the `| expr |` absolute-value form.
type Abs struct {
	base
	Inner Node
}

func NewAbs(loc token.Location, inner Node) *Abs {
	n := &Abs{base: newBase(loc)}
	Attach(n, inner)
	n.Inner = inner
	return n
}
func (n *Abs) Kind() Kind                 { return KAbs }
func (n *Abs) Accept(v Visitor) interface{} { return v.VisitAbs(n) }

// Typed is a type-constructor call: `_int(x)`, `_cplx(a, b)`, etc.
type TypeName uint8

const (
	TBool TypeName = iota
	TInt
	TFloat
	TFraction
	TComplex
)

type Typed struct {
	base
	Type TypeName
	Args []Node
}

func NewTyped(loc token.Location, ty TypeName, args []Node) *Typed {
	n := &Typed{base: newBase(loc), Type: ty, Args: args}
	for _, a := range args {
		Attach(n, a)
	}
	return n
}
func (n *Typed) Kind() Kind                 { return KTyped }
func (n *Typed) Accept(v Visitor) interface{} { return v.VisitTyped(n) }

type Call struct {
	base
	Callee Node
	Args   []Node
}

func NewCall(loc token.Location, callee Node, args []Node) *Call {
	n := &Call{base: newBase(loc), Callee: callee, Args: args}
	Attach(n, callee)
	for _, a := range args {
		Attach(n, a)
	}
	return n
}
func (n *Call) Kind() Kind                 { return KCall }
func (n *Call) Accept(v Visitor) interface{} { return v.VisitCall(n) }

type Array struct {
	base
	Elems []Node
}

func NewArray(loc token.Location, elems []Node) *Array {
	n := &Array{base: newBase(loc), Elems: elems}
	for _, e := range elems {
		Attach(n, e)
	}
	return n
}
func (n *Array) Kind() Kind                 { return KArray }
func (n *Array) Accept(v Visitor) interface{} { return v.VisitArray(n) }

// Result refers to `_result`, the implicit value of the last
// evaluated top-level expression.
type Result struct{ base }

func NewResult(loc token.Location) *Result {
	n := &Result{base: newBase(loc)}
	return n
}
func (n *Result) Kind() Kind                 { return KResult }
func (n *Result) Accept(v Visitor) interface{} { return v.VisitResult(n) }

type Ret struct {
	base
	Value Node // may be nil
}

func NewRet(loc token.Location, value Node) *Ret {
	n := &Ret{base: newBase(loc)}
	if value != nil {
		Attach(n, value)
	}
	n.Value = value
	return n
}
func (n *Ret) Kind() Kind                 { return KRet }
func (n *Ret) Accept(v Visitor) interface{} { return v.VisitRet(n) }

// ---- conditionals / pattern matching ----

// MatcherKind distinguishes a pattern's guard.
type MatcherKind uint8

const (
	MDefault MatcherKind = iota // bare `default`
	MUnaryOp                   // a unary-op guard, e.g. `!`
	MRelExpr                   // optional rel-op then expr; implicit op is ==
)

type Matcher struct {
	base
	MKind MatcherKind
	RelOp BinaryOp // the rel-op for MRelExpr; for MUnaryOp, the UnaryOp converted to BinaryOp
	Expr  Node     // nil for MDefault
}

func NewMatcher(loc token.Location, kind MatcherKind, relOp BinaryOp, expr Node) *Matcher {
	n := &Matcher{base: newBase(loc), MKind: kind, RelOp: relOp}
	if expr != nil {
		Attach(n, expr)
	}
	n.Expr = expr
	return n
}
func (n *Matcher) Kind() Kind                 { return KMatcher }
func (n *Matcher) Accept(v Visitor) interface{} { return v.VisitMatcher(n) }

// Pattern is a matcher guarding a body (expression list).
type Pattern struct {
	base
	Guard *Matcher
	Body  []Node
}

func NewPattern(loc token.Location, guard *Matcher, body []Node) *Pattern {
	n := &Pattern{base: newBase(loc), Guard: guard, Body: body}
	Attach(n, guard)
	for _, b := range body {
		Attach(n, b)
	}
	return n
}
func (n *Pattern) Kind() Kind                 { return KPattern }
func (n *Pattern) Accept(v Visitor) interface{} { return v.VisitPattern(n) }

// Cond is `{ selector } -> (short | pattern...)`.
type Cond struct {
	base
	Selector Node
	Short    *CondShort // non-nil when the `-> { true, false }` short form is used
	Patterns []*Pattern
}

func NewCond(loc token.Location, selector Node, short *CondShort, patterns []*Pattern) *Cond {
	n := &Cond{base: newBase(loc), Selector: selector, Short: short, Patterns: patterns}
	Attach(n, selector)
	if short != nil {
		Attach(n, short)
	}
	for _, p := range patterns {
		Attach(n, p)
	}
	return n
}
func (n *Cond) Kind() Kind                 { return KCond }
func (n *Cond) Accept(v Visitor) interface{} { return v.VisitCond(n) }

// CondShort is the `{ true, false }` short conditional body; either
// branch may be omitted.
type CondShort struct {
	base
	True, False Node
}

func NewCondShort(loc token.Location, t, f Node) *CondShort {
	n := &CondShort{base: newBase(loc), True: t, False: f}
	if t != nil {
		Attach(n, t)
	}
	if f != nil {
		Attach(n, f)
	}
	return n
}
func (n *CondShort) Kind() Kind                 { return KCondShort }
func (n *CondShort) Accept(v Visitor) interface{} { return v.VisitCondShort(n) }

// Dot is a dynamic member access / call: `source.name`.
type Dot struct {
	base
	Source Node
	Name   string
}

func NewDot(loc token.Location, source Node, name string) *Dot {
	n := &Dot{base: newBase(loc), Source: source, Name: name}
	Attach(n, source)
	return n
}
func (n *Dot) Kind() Kind                 { return KDot }
func (n *Dot) Accept(v Visitor) interface{} { return v.VisitDot(n) }

// ---- declarations ----

// DeclExpr wraps a declaration appearing in expression position,
// matching the grammar rule `expr ::= decl | assign`.
type DeclExpr struct {
	base
	Decl Node // *VarDecl or *FuncDecl
}

func NewDeclExpr(loc token.Location, decl Node) *DeclExpr {
	n := &DeclExpr{base: newBase(loc), Decl: decl}
	Attach(n, decl)
	return n
}
func (n *DeclExpr) Kind() Kind                 { return KDeclExpr }
func (n *DeclExpr) Accept(v Visitor) interface{} { return v.VisitDeclExpr(n) }

type VarDecl struct {
	base
	Name string
	Init Node
}

func NewVarDecl(loc token.Location, name string, init Node) *VarDecl {
	n := &VarDecl{base: newBase(loc), Name: name, Init: init}
	Attach(n, init)
	return n
}
func (n *VarDecl) Kind() Kind                 { return KVarDecl }
func (n *VarDecl) Accept(v Visitor) interface{} { return v.VisitVarDecl(n) }

type ParamDecl struct {
	base
	Name  string
	Index int
}

func NewParamDecl(loc token.Location, name string, index int) *ParamDecl {
	return &ParamDecl{base: newBase(loc), Name: name, Index: index}
}
func (n *ParamDecl) Kind() Kind                 { return KParamDecl }
func (n *ParamDecl) Accept(v Visitor) interface{} { return v.VisitParamDecl(n) }

type FuncDecl struct {
	base
	Name   string
	Params []*ParamDecl
	Body   *Scope
}

func NewFuncDecl(loc token.Location, name string, params []*ParamDecl, body *Scope) *FuncDecl {
	n := &FuncDecl{base: newBase(loc), Name: name, Params: params, Body: body}
	for _, p := range params {
		Attach(n, p)
	}
	Attach(n, body)
	return n
}
func (n *FuncDecl) Kind() Kind                 { return KFuncDecl }
func (n *FuncDecl) Accept(v Visitor) interface{} { return v.VisitFuncDecl(n) }

// Scope owns an ordered list of child expressions, one per statement
// in a `{ ... }` block.
type Scope struct {
	base
	Exprs []Node
}

func NewScope(loc token.Location, exprs []Node) *Scope {
	n := &Scope{base: newBase(loc), Exprs: exprs}
	for _, e := range exprs {
		Attach(n, e)
	}
	return n
}
func (n *Scope) Kind() Kind                 { return KScope }
func (n *Scope) Accept(v Visitor) interface{} { return v.VisitScope(n) }

type ModuleDef struct {
	base
	Name string
	Body *Scope
}

func NewModuleDef(loc token.Location, name string, body *Scope) *ModuleDef {
	n := &ModuleDef{base: newBase(loc), Name: name, Body: body}
	Attach(n, body)
	return n
}
func (n *ModuleDef) Kind() Kind                 { return KModuleDef }
func (n *ModuleDef) Accept(v Visitor) interface{} { return v.VisitModuleDef(n) }

type ImportDir struct {
	base
	Path string
}

func NewImportDir(loc token.Location, path string) *ImportDir {
	return &ImportDir{base: newBase(loc), Path: path}
}
func (n *ImportDir) Kind() Kind                 { return KImportDir }
func (n *ImportDir) Accept(v Visitor) interface{} { return v.VisitImportDir(n) }

// Root is the whole-file top-level node: an ordered sequence of
// top-level expressions/declarations.
type Root struct {
	base
	Exprs []Node
}

func NewRoot(exprs []Node) *Root {
	n := &Root{base: base{valid: true}}
	for _, e := range exprs {
		Attach(n, e)
	}
	n.Exprs = exprs
	return n
}
func (n *Root) Kind() Kind                 { return KRoot }
func (n *Root) Accept(v Visitor) interface{} { return v.VisitRoot(n) }

// Error is a structured error node synthesised by the parser's
// recovery logic; it carries the diagnostic text and is itself
// invalid, so attaching it to any parent invalidates the whole chain
// of ancestors (spec.md §8 invariant 3).
type Error struct {
	base
	Message string
	Tok     token.Token
}

func NewError(loc token.Location, message string, tok token.Token) *Error {
	n := &Error{base: newBase(loc), Message: message, Tok: tok}
	n.valid = false
	return n
}
func (n *Error) Kind() Kind                 { return KError }
func (n *Error) Accept(v Visitor) interface{} { return v.VisitError(n) }
