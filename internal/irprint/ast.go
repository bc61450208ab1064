// Package irprint implements the two external pretty-printers spec.md
// §1 calls out as adapters around the core: a textual AST dumper and a
// textual IR/CFG dumper, plus (internal/irprint/llvm.go) an optional
// LLVM-IR rendering of a compiled function. None of this participates
// in compilation or evaluation; it only reads the already-built AST/IR
// graphs.
//
// The indented-node-per-line dump style is grounded in how the
// teacher's internal/debugger package renders bytecode for `sentra
// debug` (offset-prefixed, one instruction per line); generalized here
// from a flat bytecode listing to a recursive AST walk and a
// block-structured IR walk.
package irprint

import (
	"fmt"
	"strings"

	"tnac/internal/ast"
)

// AST renders node as an indented tree, one node per line, via an
// ast.Visitor walk. It never mutates the tree and tolerates invalid
// (error) nodes, printing their diagnostic text inline.
func AST(node ast.Node) string {
	p := &astPrinter{}
	p.visit(node)
	return p.sb.String()
}

type astPrinter struct {
	sb    strings.Builder
	depth int
}

func (p *astPrinter) line(format string, args ...interface{}) {
	p.sb.WriteString(strings.Repeat("  ", p.depth))
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *astPrinter) visit(n ast.Node) {
	if n == nil {
		return
	}
	p.depth++
	defer func() { p.depth-- }()
	n.Accept(p)
}

func (p *astPrinter) VisitLiteral(n *ast.Literal) interface{} {
	p.line("Literal(%s) %q", litKindName(n.LitKind), n.Tok.Value)
	return nil
}
func (p *astPrinter) VisitIdentifier(n *ast.Identifier) interface{} {
	p.line("Identifier %q", n.Name)
	return nil
}
func (p *astPrinter) VisitUnary(n *ast.Unary) interface{} {
	p.line("Unary %s", unaryOpName(n.Op))
	p.visit(n.Operand)
	return nil
}
func (p *astPrinter) VisitBinary(n *ast.Binary) interface{} {
	p.line("Binary %s", binaryOpName(n.Op))
	p.visit(n.Left)
	p.visit(n.Right)
	return nil
}
func (p *astPrinter) VisitAssign(n *ast.Assign) interface{} {
	p.line("Assign")
	p.visit(n.Target)
	p.visit(n.Value)
	return nil
}
func (p *astPrinter) VisitParen(n *ast.Paren) interface{} {
	p.line("Paren")
	p.visit(n.Inner)
	return nil
}
func (p *astPrinter) VisitAbs(n *ast.Abs) interface{} {
	p.line("Abs")
	p.visit(n.Inner)
	return nil
}
func (p *astPrinter) VisitTyped(n *ast.Typed) interface{} {
	p.line("Typed %s", typeName(n.Type))
	for _, a := range n.Args {
		p.visit(a)
	}
	return nil
}
func (p *astPrinter) VisitCall(n *ast.Call) interface{} {
	p.line("Call")
	p.visit(n.Callee)
	for _, a := range n.Args {
		p.visit(a)
	}
	return nil
}
func (p *astPrinter) VisitArray(n *ast.Array) interface{} {
	p.line("Array len=%d", len(n.Elems))
	for _, e := range n.Elems {
		p.visit(e)
	}
	return nil
}
func (p *astPrinter) VisitResult(n *ast.Result) interface{} {
	p.line("Result")
	return nil
}
func (p *astPrinter) VisitRet(n *ast.Ret) interface{} {
	p.line("Ret")
	p.visit(n.Value)
	return nil
}
func (p *astPrinter) VisitMatcher(n *ast.Matcher) interface{} {
	p.line("Matcher %s", matcherKindName(n.MKind))
	p.visit(n.Expr)
	return nil
}
func (p *astPrinter) VisitPattern(n *ast.Pattern) interface{} {
	p.line("Pattern")
	p.visit(n.Guard)
	for _, b := range n.Body {
		p.visit(b)
	}
	return nil
}
func (p *astPrinter) VisitCond(n *ast.Cond) interface{} {
	p.line("Cond")
	p.visit(n.Selector)
	if n.Short != nil {
		p.visit(n.Short)
	}
	for _, pat := range n.Patterns {
		p.visit(pat)
	}
	return nil
}
func (p *astPrinter) VisitCondShort(n *ast.CondShort) interface{} {
	p.line("CondShort")
	p.visit(n.True)
	p.visit(n.False)
	return nil
}
func (p *astPrinter) VisitDot(n *ast.Dot) interface{} {
	p.line("Dot %q", n.Name)
	p.visit(n.Source)
	return nil
}
func (p *astPrinter) VisitDeclExpr(n *ast.DeclExpr) interface{} {
	p.line("DeclExpr")
	p.visit(n.Decl)
	return nil
}
func (p *astPrinter) VisitVarDecl(n *ast.VarDecl) interface{} {
	p.line("VarDecl %q", n.Name)
	p.visit(n.Init)
	return nil
}
func (p *astPrinter) VisitParamDecl(n *ast.ParamDecl) interface{} {
	p.line("ParamDecl %q idx=%d", n.Name, n.Index)
	return nil
}
func (p *astPrinter) VisitFuncDecl(n *ast.FuncDecl) interface{} {
	name := n.Name
	if name == "" {
		name = "<anon>"
	}
	p.line("FuncDecl %q", name)
	for _, prm := range n.Params {
		p.visit(prm)
	}
	p.visit(n.Body)
	return nil
}
func (p *astPrinter) VisitScope(n *ast.Scope) interface{} {
	p.line("Scope")
	for _, e := range n.Exprs {
		p.visit(e)
	}
	return nil
}
func (p *astPrinter) VisitModuleDef(n *ast.ModuleDef) interface{} {
	p.line("ModuleDef %q", n.Name)
	p.visit(n.Body)
	return nil
}
func (p *astPrinter) VisitImportDir(n *ast.ImportDir) interface{} {
	p.line("ImportDir %q", n.Path)
	return nil
}
func (p *astPrinter) VisitRoot(n *ast.Root) interface{} {
	p.line("Root")
	for _, e := range n.Exprs {
		p.visit(e)
	}
	return nil
}
func (p *astPrinter) VisitError(n *ast.Error) interface{} {
	p.line("Error %q at %s", n.Message, n.Loc())
	return nil
}

func litKindName(k ast.LiteralKind) string {
	switch k {
	case ast.LitInt:
		return "int"
	case ast.LitFloat:
		return "float"
	case ast.LitBool:
		return "bool"
	case ast.LitI:
		return "i"
	case ast.LitPi:
		return "pi"
	case ast.LitE:
		return "e"
	case ast.LitString:
		return "string"
	}
	return "?"
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.UPlus:
		return "+"
	case ast.UNeg:
		return "-"
	case ast.UBNeg:
		return "~"
	case ast.ULNot:
		return "!"
	case ast.UQuest:
		return "?"
	}
	return "?"
}

func binaryOpName(op ast.BinaryOp) string {
	switch op {
	case ast.BAdd:
		return "+"
	case ast.BSub:
		return "-"
	case ast.BMul:
		return "*"
	case ast.BDiv:
		return "/"
	case ast.BMod:
		return "%"
	case ast.BPow:
		return "**"
	case ast.BRoot:
		return "//"
	case ast.BAnd:
		return "&"
	case ast.BOr:
		return "|"
	case ast.BXor:
		return "^"
	case ast.BCmpE:
		return "=="
	case ast.BCmpL:
		return "<"
	case ast.BCmpLE:
		return "<="
	case ast.BCmpNE:
		return "!="
	case ast.BCmpG:
		return ">"
	case ast.BCmpGE:
		return ">="
	case ast.BLogAnd:
		return "&&"
	case ast.BLogOr:
		return "||"
	}
	return "?"
}

func typeName(t ast.TypeName) string {
	switch t {
	case ast.TBool:
		return "_bool"
	case ast.TInt:
		return "_int"
	case ast.TFloat:
		return "_flt"
	case ast.TFraction:
		return "_frac"
	case ast.TComplex:
		return "_cplx"
	}
	return "?"
}

func matcherKindName(k ast.MatcherKind) string {
	switch k {
	case ast.MDefault:
		return "default"
	case ast.MUnaryOp:
		return "unary-op"
	case ast.MRelExpr:
		return "rel-expr"
	}
	return "?"
}
