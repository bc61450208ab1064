// Package compiler lowers a tnac AST into the register-based IR
// defined by internal/ir, driving an operand stack and folding
// constant sub-expressions at compile time.
//
// The operand-stack-plus-context shape (current function/block, a
// register/name index, a "have I already loaded this" store tracker)
// follows the teacher's internal/compregister/compiler.go Compiler
// struct; the lowering rules themselves are grounded in spec.md §4.5.
package compiler

import (
	"fmt"

	"tnac/internal/ast"
	"tnac/internal/ir"
	"tnac/internal/sema"
	"tnac/internal/value"
)

// operand is what the compiler's stack holds: either a folded
// compile-time value, or a live IR register produced by an emitted
// instruction.
type operand struct {
	isValue bool
	val     value.Value
	reg     *ir.VReg
}

func valueOperand(v value.Value) operand { return operand{isValue: true, val: v} }
func regOperand(r *ir.VReg) operand      { return operand{reg: r} }

// context tracks the function/block currently being lowered into.
type context struct {
	fn          *ir.Function
	block       *ir.BasicBlock
	regIndex    int
	storeTracker map[string]*ir.VReg // identifier name -> last-loaded register, CSE-avoidance
}

// Compiler is the AST -> IR driving visitor.
type Compiler struct {
	b       *ir.Builder
	sema    *sema.Table
	stack   []operand
	ctxs    []*context
	store   *value.Store
	errors  []error
	nextFn  int
	varRegs map[*ast.VarDecl]*ir.VReg
	symRegs map[*sema.Symbol]*ir.VReg
}

func New(builder *ir.Builder, symtab *sema.Table, store *value.Store) *Compiler {
	return &Compiler{
		b:       builder,
		sema:    symtab,
		store:   store,
		varRegs: make(map[*ast.VarDecl]*ir.VReg),
		symRegs: make(map[*sema.Symbol]*ir.VReg),
	}
}

func (c *Compiler) Errors() []error { return c.errors }

func (c *Compiler) errorf(format string, args ...interface{}) {
	c.errors = append(c.errors, fmt.Errorf(format, args...))
}

func (c *Compiler) ctx() *context { return c.ctxs[len(c.ctxs)-1] }

func (c *Compiler) pushCtx(fn *ir.Function, block *ir.BasicBlock) {
	c.ctxs = append(c.ctxs, &context{fn: fn, block: block, storeTracker: make(map[string]*ir.VReg)})
}

func (c *Compiler) popCtx() { c.ctxs = c.ctxs[:len(c.ctxs)-1] }

func (c *Compiler) push(op operand) { c.stack = append(c.stack, op) }

func (c *Compiler) pop() operand {
	n := len(c.stack) - 1
	op := c.stack[n]
	c.stack = c.stack[:n]
	return op
}

// hasValues reports whether the top n stack slots are all folded
// compile-time values (enabling constant folding), per spec.md §4.5.
func (c *Compiler) hasValues(n int) bool {
	if len(c.stack) < n {
		return false
	}
	for _, op := range c.stack[len(c.stack)-n:] {
		if !op.isValue {
			return false
		}
	}
	return true
}

func (c *Compiler) toOperand(op operand) ir.Operand {
	if op.isValue {
		return ir.ValueOperand(op.val)
	}
	return ir.RegOperand(op.reg)
}

// CompileModule lowers a whole root into a top-level "module" function
// and returns it; interned constants stay on the builder
// (ir.Builder.Constants).
func (c *Compiler) CompileModule(root *ast.Root) *ir.Function {
	fn := c.b.MakeFunction("<module>", "<module>", nil, 0)
	c.pushCtx(fn, fn.Entry)
	defer c.popCtx()
	last := valueOperand(value.UndefV())
	for _, e := range root.Exprs {
		e.Accept(c)
		if len(c.stack) > 0 {
			last = c.pop()
		}
	}
	c.terminateIfOpen(ir.OpRet, []ir.Operand{c.toOperand(last)})
	return fn
}

// terminateIfOpen appends a terminator to the current block if it does
// not already end in one, satisfying spec.md §4.5 guarantee (1): every
// block ends in a terminator.
func (c *Compiler) terminateIfOpen(op ir.Opcode, operands []ir.Operand) {
	blk := c.ctx().block
	if blk.Terminator() != nil {
		return
	}
	c.b.AddInstruction(blk, op, operands, false, nil)
}

// ---- literals / identifiers ----

func (c *Compiler) VisitLiteral(n *ast.Literal) interface{} {
	c.push(valueOperand(foldLiteral(n)))
	return nil
}

func foldLiteral(n *ast.Literal) value.Value {
	switch n.LitKind {
	case ast.LitBool:
		return value.Bool(n.Tok.Value == "_true")
	case ast.LitInt:
		return parseInt(n.Tok.Value, n.IntBase)
	case ast.LitFloat:
		return parseFloat(n.Tok.Value)
	case ast.LitPi:
		return value.Float(3.141592653589793)
	case ast.LitE:
		return value.Float(2.718281828459045)
	case ast.LitI:
		return value.Cplx(0, 1)
	}
	return value.UndefV()
}

func (c *Compiler) VisitIdentifier(n *ast.Identifier) interface{} {
	sym, ok := c.sema.Lookup(n.Name)
	if !ok {
		c.errorf("undefined identifier %q", n.Name)
		c.push(valueOperand(value.UndefV()))
		return nil
	}
	if sym.Kind == sema.SymFunction {
		fn, _ := sym.Aux.(*ir.Function)
		c.push(valueOperand(value.Func(&ir.FuncValue{Fn: fn})))
		return nil
	}
	// CSE-avoidance: reuse a prior Load in this context if one exists.
	if reg, ok := c.ctx().storeTracker[n.Name]; ok {
		c.push(regOperand(reg))
		return nil
	}
	var srcReg *ir.VReg
	if r, ok := c.symRegs[sym]; ok {
		srcReg = r
	}
	var operands []ir.Operand
	if sym.Kind == sema.SymParameter {
		idx, _ := sym.Aux.(int)
		operands = []ir.Operand{ir.ParamOperand(ir.FuncParam(idx))}
	} else if srcReg != nil {
		operands = []ir.Operand{ir.RegOperand(srcReg)}
	} else {
		c.push(valueOperand(value.UndefV()))
		return nil
	}
	instr := c.b.AddInstruction(c.ctx().block, ir.OpLoad, operands, true, nil)
	c.ctx().storeTracker[n.Name] = instr.Result
	c.push(regOperand(instr.Result))
	return nil
}

// ---- unary / binary ----

var astToValUnary = map[ast.UnaryOp]value.UnaryOp{
	ast.UPlus: value.UPlus, ast.UNeg: value.UNeg, ast.UBNeg: value.UBNeg, ast.ULNot: value.ULNot,
}
var astToValBinary = map[ast.BinaryOp]value.BinaryOp{
	ast.BAdd: value.BAdd, ast.BSub: value.BSub, ast.BMul: value.BMul, ast.BDiv: value.BDiv,
	ast.BMod: value.BMod, ast.BPow: value.BPow, ast.BRoot: value.BRoot,
	ast.BAnd: value.BAnd, ast.BOr: value.BOr, ast.BXor: value.BXor,
	ast.BCmpE: value.BCmpE, ast.BCmpL: value.BCmpL, ast.BCmpLE: value.BCmpLE,
	ast.BCmpNE: value.BCmpNE, ast.BCmpG: value.BCmpG, ast.BCmpGE: value.BCmpGE,
}
var astToIROpUnary = map[ast.UnaryOp]ir.Opcode{
	ast.UPlus: ir.OpPlus, ast.UNeg: ir.OpNeg, ast.UBNeg: ir.OpBNeg, ast.ULNot: ir.OpCmpNot,
}
var astToIROpBinary = map[ast.BinaryOp]ir.Opcode{
	ast.BAdd: ir.OpAdd, ast.BSub: ir.OpSub, ast.BMul: ir.OpMul, ast.BDiv: ir.OpDiv,
	ast.BMod: ir.OpMod, ast.BPow: ir.OpPow, ast.BRoot: ir.OpRoot,
	ast.BAnd: ir.OpAnd, ast.BOr: ir.OpOr, ast.BXor: ir.OpXor,
	ast.BCmpE: ir.OpCmpE, ast.BCmpL: ir.OpCmpL, ast.BCmpLE: ir.OpCmpLE,
	ast.BCmpNE: ir.OpCmpNE, ast.BCmpG: ir.OpCmpG, ast.BCmpGE: ir.OpCmpGE,
}

func (c *Compiler) VisitUnary(n *ast.Unary) interface{} {
	n.Operand.Accept(c)
	operand := c.pop()
	if operand.isValue {
		c.push(valueOperand(value.Unary(astToValUnary[n.Op], operand.val)))
		return nil
	}
	instr := c.b.AddInstruction(c.ctx().block, astToIROpUnary[n.Op], []ir.Operand{c.toOperand(operand)}, true, nil)
	c.push(regOperand(instr.Result))
	return nil
}

func (c *Compiler) VisitBinary(n *ast.Binary) interface{} {
	if n.Op == ast.BLogAnd || n.Op == ast.BLogOr {
		return c.compileShortCircuit(n)
	}
	n.Left.Accept(c)
	n.Right.Accept(c)
	if c.hasValues(2) {
		r, l := c.pop(), c.pop()
		c.push(valueOperand(value.Binary(astToValBinary[n.Op], l.val, r.val)))
		return nil
	}
	r, l := c.pop(), c.pop()
	instr := c.b.AddInstruction(c.ctx().block, astToIROpBinary[n.Op], []ir.Operand{c.toOperand(l), c.toOperand(r)}, true, nil)
	c.push(regOperand(instr.Result))
	return nil
}

// compileShortCircuit lowers && / || either by folding (if the left
// side is a known boolean) or by splitting into rhs/end blocks with a
// conditional Jump and a Phi merge, per spec.md §4.5.
func (c *Compiler) compileShortCircuit(n *ast.Binary) interface{} {
	n.Left.Accept(c)
	left := c.pop()
	if left.isValue {
		truthy := left.val.AsBool()
		short := (n.Op == ast.BLogAnd && !truthy) || (n.Op == ast.BLogOr && truthy)
		if short {
			c.push(valueOperand(value.Bool(truthy)))
			return nil
		}
		n.Right.Accept(c)
		return nil
	}
	fn := c.ctx().fn
	rhsBlk := c.b.AddBlock(fn, "sc.rhs")
	endBlk := c.b.AddBlock(fn, "sc.end")
	startBlk := c.ctx().block

	c.b.AddInstruction(startBlk, ir.OpJump, []ir.Operand{
		c.toOperand(left), ir.BlockOperand(rhsBlk), ir.BlockOperand(endBlk),
	}, false, nil)
	edgeShort := c.b.MakeEdge(startBlk, endBlk, c.toOperand(left))

	c.ctx().block = rhsBlk
	n.Right.Accept(c)
	rhsVal := c.pop()
	c.b.AddInstruction(rhsBlk, ir.OpJump, []ir.Operand{ir.BlockOperand(endBlk)}, false, nil)
	edgeRhs := c.b.MakeEdge(rhsBlk, endBlk, c.toOperand(rhsVal))

	c.ctx().block = endBlk
	phi := c.b.SynthPhi(endBlk)
	phi.Operands = []ir.Operand{ir.EdgeOperand(edgeShort), ir.EdgeOperand(edgeRhs)}
	c.push(regOperand(phi.Result))
	return nil
}

// ---- assignment / declarations ----

func (c *Compiler) VisitAssign(n *ast.Assign) interface{} {
	n.Value.Accept(c)
	rhs := c.pop()
	sym, ok := c.sema.Lookup(n.Target.Name)
	if !ok {
		c.errorf("undefined identifier %q", n.Target.Name)
		c.push(valueOperand(value.UndefV()))
		return nil
	}
	reg, ok := c.symRegs[sym]
	if !ok {
		c.errorf("cannot assign to %q: no storage allocated", n.Target.Name)
		c.push(rhs)
		return nil
	}
	c.b.AddInstruction(c.ctx().block, ir.OpStore, []ir.Operand{c.toOperand(rhs), ir.RegOperand(reg)}, false, nil)
	delete(c.ctx().storeTracker, n.Target.Name) // invalidate cached load
	c.push(rhs)
	return nil
}

func (c *Compiler) VisitVarDecl(n *ast.VarDecl) interface{} {
	allocInstr := c.b.AddVar(c.ctx().fn)
	sym, err := c.sema.AddVariable(n.Name)
	if err != nil {
		c.errorf("%s", err)
	}
	c.symRegs[sym] = allocInstr.Result
	n.Init.Accept(c)
	init := c.pop()
	c.b.AddInstruction(c.ctx().block, ir.OpStore, []ir.Operand{c.toOperand(init), ir.RegOperand(allocInstr.Result)}, false, nil)
	c.push(init)
	return nil
}

func (c *Compiler) VisitDeclExpr(n *ast.DeclExpr) interface{} {
	n.Decl.Accept(c)
	return nil
}

func (c *Compiler) VisitParamDecl(n *ast.ParamDecl) interface{} { return nil }

func (c *Compiler) VisitFuncDecl(n *ast.FuncDecl) interface{} {
	c.nextFn++
	entityID := fmt.Sprintf("%s#%d", n.Name, c.nextFn)
	parentFn := c.ctx().fn
	fn := c.b.MakeFunction(entityID, n.Name, parentFn, len(n.Params))
	sym, err := c.sema.AddFunction(n.Name)
	if err != nil {
		c.errorf("%s", err)
	}
	sym.Aux = fn

	c.sema.OpenScope(sema.Function)
	c.pushCtx(fn, fn.Entry)
	for _, p := range n.Params {
		psym, perr := c.sema.AddParameter(p.Name, p.Index)
		if perr != nil {
			c.errorf("%s", perr)
			continue
		}
		allocInstr := c.b.AddVar(fn)
		c.symRegs[psym] = allocInstr.Result
		loadInstr := c.b.AddInstruction(fn.Entry, ir.OpLoad, []ir.Operand{ir.ParamOperand(ir.FuncParam(p.Index))}, true, nil)
		c.b.AddInstruction(fn.Entry, ir.OpStore, []ir.Operand{ir.RegOperand(loadInstr.Result), ir.RegOperand(allocInstr.Result)}, false, nil)
	}
	for _, e := range n.Body.Exprs {
		e.Accept(c)
		if len(c.stack) > 0 {
			last := c.pop()
			if e == n.Body.Exprs[len(n.Body.Exprs)-1] {
				c.terminateIfOpen(ir.OpRet, []ir.Operand{c.toOperand(last)})
			}
		}
	}
	c.terminateIfOpen(ir.OpRet, []ir.Operand{ir.ValueOperand(value.UndefV())})
	c.popCtx()
	c.sema.CloseScope()

	c.push(valueOperand(value.UndefV())) // function declarations have no expression value
	return nil
}

func (c *Compiler) VisitRet(n *ast.Ret) interface{} {
	var op ir.Operand
	if n.Value != nil {
		n.Value.Accept(c)
		op = c.toOperand(c.pop())
	} else {
		op = ir.ValueOperand(value.UndefV())
	}
	c.b.AddInstruction(c.ctx().block, ir.OpRet, []ir.Operand{op}, false, nil)
	c.push(valueOperand(value.UndefV()))
	return nil
}

// ---- compound expressions ----

func (c *Compiler) VisitParen(n *ast.Paren) interface{} {
	n.Inner.Accept(c)
	return nil
}

func (c *Compiler) VisitAbs(n *ast.Abs) interface{} {
	n.Inner.Accept(c)
	inner := c.pop()
	if inner.isValue {
		c.push(valueOperand(value.Unary(value.UAbs, inner.val)))
		return nil
	}
	instr := c.b.AddInstruction(c.ctx().block, ir.OpAbs, []ir.Operand{c.toOperand(inner)}, true, nil)
	c.push(regOperand(instr.Result))
	return nil
}

func (c *Compiler) VisitTyped(n *ast.Typed) interface{} {
	vals := make([]ir.Operand, len(n.Args))
	allValues := true
	argVals := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		a.Accept(c)
		op := c.pop()
		vals[i] = c.toOperand(op)
		if !op.isValue {
			allValues = false
		} else {
			argVals[i] = op.val
		}
	}
	opc := typedOpcode(n.Type)
	if allValues {
		c.push(valueOperand(constructFold(n.Type, argVals)))
		return nil
	}
	instr := c.b.AddInstruction(c.ctx().block, opc, vals, true, nil)
	c.push(regOperand(instr.Result))
	return nil
}

func typedOpcode(t ast.TypeName) ir.Opcode {
	switch t {
	case ast.TBool:
		return ir.OpBool
	case ast.TInt:
		return ir.OpInt
	case ast.TFloat:
		return ir.OpFloat
	case ast.TFraction:
		return ir.OpFrac
	case ast.TComplex:
		return ir.OpCplx
	}
	return ir.OpInt
}

func constructFold(t ast.TypeName, args []value.Value) value.Value {
	switch t {
	case ast.TBool:
		return value.ConstructBool(args)
	case ast.TInt:
		return value.ConstructInt(args)
	case ast.TFloat:
		return value.ConstructFloat(args)
	case ast.TFraction:
		return value.ConstructFraction(args)
	case ast.TComplex:
		return value.ConstructComplex(args)
	}
	return value.UndefV()
}

func (c *Compiler) VisitCall(n *ast.Call) interface{} {
	n.Callee.Accept(c)
	callee := c.pop()
	operands := []ir.Operand{c.toOperand(callee)}
	for _, a := range n.Args {
		a.Accept(c)
		operands = append(operands, c.toOperand(c.pop()))
	}
	instr := c.b.AddInstruction(c.ctx().block, ir.OpCall, operands, true, nil)
	c.push(regOperand(instr.Result))
	return nil
}

func (c *Compiler) VisitArray(n *ast.Array) interface{} {
	arrInstr := c.b.AddArray(c.ctx().block, uint64(len(n.Elems)), nil)
	for _, e := range n.Elems {
		e.Accept(c)
		elem := c.pop()
		c.b.AddInstruction(c.ctx().block, ir.OpAppend, []ir.Operand{ir.RegOperand(arrInstr.Result), c.toOperand(elem)}, false, nil)
	}
	c.push(regOperand(arrInstr.Result))
	return nil
}

func (c *Compiler) VisitResult(n *ast.Result) interface{} {
	instr := c.b.AddInstruction(c.ctx().block, ir.OpLoad, []ir.Operand{ir.NameOperand("_result")}, true, nil)
	c.push(regOperand(instr.Result))
	return nil
}

func (c *Compiler) VisitDot(n *ast.Dot) interface{} {
	n.Source.Accept(c)
	src := c.pop()
	instr := c.b.AddInstruction(c.ctx().block, ir.OpDynBind, []ir.Operand{c.toOperand(src), ir.NameOperand(n.Name)}, true, nil)
	c.push(regOperand(instr.Result))
	return nil
}

// VisitCond lowers `{ selector } -> short|patterns` into a then/else/
// end diamond (short form) or a chain of guarded jumps (pattern form),
// with one Phi per forwarded value at the join, per spec.md §4.5.
func (c *Compiler) VisitCond(n *ast.Cond) interface{} {
	n.Selector.Accept(c)
	sel := c.pop()

	fn := c.ctx().fn
	endBlk := c.b.AddBlock(fn, "cond.end")

	if n.Short != nil {
		thenBlk := c.b.AddBlock(fn, "cond.then")
		elseBlk := c.b.AddBlock(fn, "cond.else")
		startBlk := c.ctx().block
		c.b.AddInstruction(startBlk, ir.OpJump, []ir.Operand{c.toOperand(sel), ir.BlockOperand(thenBlk), ir.BlockOperand(elseBlk)}, false, nil)

		c.ctx().block = thenBlk
		var thenVal operand = valueOperand(value.UndefV())
		if n.Short.True != nil {
			n.Short.True.Accept(c)
			thenVal = c.pop()
		}
		c.b.AddInstruction(thenBlk, ir.OpJump, []ir.Operand{ir.BlockOperand(endBlk)}, false, nil)
		thenEdge := c.b.MakeEdge(thenBlk, endBlk, c.toOperand(thenVal))

		c.ctx().block = elseBlk
		var elseVal operand = valueOperand(value.UndefV())
		if n.Short.False != nil {
			n.Short.False.Accept(c)
			elseVal = c.pop()
		}
		c.b.AddInstruction(elseBlk, ir.OpJump, []ir.Operand{ir.BlockOperand(endBlk)}, false, nil)
		elseEdge := c.b.MakeEdge(elseBlk, endBlk, c.toOperand(elseVal))

		c.ctx().block = endBlk
		phi := c.b.SynthPhi(endBlk)
		phi.Operands = []ir.Operand{ir.EdgeOperand(thenEdge), ir.EdgeOperand(elseEdge)}
		c.push(regOperand(phi.Result))
		return nil
	}

	// Pattern chain: each pattern's guard compiles to a comparison
	// against sel (bare expression patterns implicitly use ==); a
	// match jumps straight to its body then to endBlk.
	var edges []*ir.Edge
	cur := c.ctx().block
	for _, pat := range n.Patterns {
		bodyBlk := c.b.AddBlock(fn, "cond.body")
		nextBlk := c.b.AddBlock(fn, "cond.next")

		c.ctx().block = cur
		guardVal := c.compileMatcher(pat.Guard, sel)
		c.b.AddInstruction(cur, ir.OpJump, []ir.Operand{c.toOperand(guardVal), ir.BlockOperand(bodyBlk), ir.BlockOperand(nextBlk)}, false, nil)

		c.ctx().block = bodyBlk
		var bodyVal operand = valueOperand(value.UndefV())
		for _, e := range pat.Body {
			e.Accept(c)
			bodyVal = c.pop()
		}
		c.b.AddInstruction(bodyBlk, ir.OpJump, []ir.Operand{ir.BlockOperand(endBlk)}, false, nil)
		edges = append(edges, c.b.MakeEdge(bodyBlk, endBlk, c.toOperand(bodyVal)))

		cur = nextBlk
	}
	// fall-through: no pattern matched
	c.b.AddInstruction(cur, ir.OpJump, []ir.Operand{ir.BlockOperand(endBlk)}, false, nil)
	edges = append(edges, c.b.MakeEdge(cur, endBlk, ir.ValueOperand(value.UndefV())))

	c.ctx().block = endBlk
	phi := c.b.SynthPhi(endBlk)
	for _, e := range edges {
		phi.Operands = append(phi.Operands, ir.EdgeOperand(e))
	}
	c.push(regOperand(phi.Result))
	return nil
}

// compileMatcher evaluates a pattern guard against the selector value,
// returning a boolean operand.
func (c *Compiler) compileMatcher(m *ast.Matcher, sel operand) operand {
	switch m.MKind {
	case ast.MDefault:
		return valueOperand(value.Bool(true))
	case ast.MUnaryOp:
		m.Expr.Accept(c)
		rhs := c.pop()
		if sel.isValue && rhs.isValue {
			return valueOperand(value.Unary(astToValUnary[ast.UnaryOp(m.RelOp)], rhs.val))
		}
		instr := c.b.AddInstruction(c.ctx().block, astToIROpUnary[ast.UnaryOp(m.RelOp)], []ir.Operand{c.toOperand(rhs)}, true, nil)
		return regOperand(instr.Result)
	default: // MRelExpr: rel-op? expr, implicit op is ==
		m.Expr.Accept(c)
		rhs := c.pop()
		if sel.isValue && rhs.isValue {
			return valueOperand(value.Binary(astToValBinary[m.RelOp], sel.val, rhs.val))
		}
		instr := c.b.AddInstruction(c.ctx().block, astToIROpBinary[m.RelOp], []ir.Operand{c.toOperand(sel), c.toOperand(rhs)}, true, nil)
		return regOperand(instr.Result)
	}
}

func (c *Compiler) VisitCondShort(n *ast.CondShort) interface{} { return nil }
func (c *Compiler) VisitMatcher(n *ast.Matcher) interface{}     { return nil }
func (c *Compiler) VisitPattern(n *ast.Pattern) interface{}     { return nil }

func (c *Compiler) VisitScope(n *ast.Scope) interface{} {
	var last operand = valueOperand(value.UndefV())
	for _, e := range n.Exprs {
		e.Accept(c)
		last = c.pop()
	}
	c.push(last)
	return nil
}

func (c *Compiler) VisitModuleDef(n *ast.ModuleDef) interface{} {
	sym, err := c.sema.AddModule(n.Name)
	if err != nil {
		c.errorf("%s", err)
	}
	fn := c.b.MakeFunction("module:"+n.Name, n.Name, c.ctx().fn, 0)
	sym.Aux = fn
	c.sema.OpenScope(sema.Module)
	c.pushCtx(fn, fn.Entry)
	for _, e := range n.Body.Exprs {
		e.Accept(c)
		c.pop()
	}
	c.terminateIfOpen(ir.OpRet, []ir.Operand{ir.ValueOperand(value.UndefV())})
	c.popCtx()
	c.sema.CloseScope()
	c.push(valueOperand(value.UndefV()))
	return nil
}

func (c *Compiler) VisitImportDir(n *ast.ImportDir) interface{} {
	c.push(valueOperand(value.UndefV()))
	return nil
}

func (c *Compiler) VisitRoot(n *ast.Root) interface{} { return nil }

func (c *Compiler) VisitError(n *ast.Error) interface{} {
	c.errorf("compile error at %s: %s", n.Loc(), n.Message)
	c.push(valueOperand(value.UndefV()))
	return nil
}
