// Package eval executes tnac's register-based IR directly, without a
// bytecode compilation step: each call pushes a frame holding its
// register file and parameter values, instructions mutate that frame
// in place, and control transfers between basic blocks drive Phi
// resolution by recording which edge was taken.
//
// The frame/call-stack shape mirrors the teacher's internal/vm/vm.go
// Frame/CallStack design, generalized from the teacher's stack-machine
// opcodes to tnac's SSA register operands; array-as-callable semantics
// (the evaluator's stateful per-array call cursor) are grounded in
// original_source/tnac_lib/src/eval/*.cpp's array-call bookkeeping
// (referred to there as m_arrCalls), reproduced here as a map keyed by
// the *value.Array wrapper pointer rather than an intrusive member, since
// Go arrays have no fixed address to hang state off directly.
package eval

import (
	"fmt"

	"tnac/internal/ir"
	"tnac/internal/value"
)

// frame is one call's register file.
type frame struct {
	fn     *ir.Function
	regs   map[*ir.VReg]value.Value
	params []value.Value
	prev   *ir.BasicBlock // block jumped from, for Phi resolution
}

func newFrame(fn *ir.Function, params []value.Value) *frame {
	return &frame{fn: fn, regs: make(map[*ir.VReg]value.Value), params: params}
}

// Evaluator runs compiled IR functions against a shared constant pool
// and array store.
type Evaluator struct {
	store     *value.Store
	constants map[*ir.VReg]value.Value
	arrCalls  map[*value.Array]int // array-as-callable cursor, per spec.md §4.8
	lastResult value.Value
	maxDepth  int
	depth     int
}

func New(store *value.Store, constants []ir.ConstantEntry) *Evaluator {
	e := &Evaluator{
		store:     store,
		constants: make(map[*ir.VReg]value.Value),
		arrCalls:  make(map[*value.Array]int),
		maxDepth:  4096,
	}
	for _, c := range constants {
		e.constants[c.Reg] = c.Value
	}
	return e
}

// RunErr is returned for evaluator-level faults (stack overflow,
// malformed IR) that are not themselves tnac-level Undef propagation.
type RunErr struct{ Msg string }

func (e *RunErr) Error() string { return e.Msg }

// Call executes fn with the given argument values and returns its
// return value (spec.md §4.6's implicit-_result-of-last-statement
// contract is handled by the compiler emitting an explicit Ret).
func (e *Evaluator) Call(fn *ir.Function, args []value.Value) (value.Value, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.maxDepth {
		return value.UndefV(), &RunErr{Msg: "call stack exhausted"}
	}

	fr := newFrame(fn, args)
	cur := fn.Entry
	for {
		for _, instr := range cur.Instructions() {
			if instr.Op.IsTerminator() {
				continue
			}
			if err := e.step(fr, instr); err != nil {
				return value.UndefV(), err
			}
		}
		term := cur.Terminator()
		if term == nil {
			return value.UndefV(), &RunErr{Msg: fmt.Sprintf("block %q falls off the end without a terminator", cur.Name)}
		}
		switch term.Op {
		case ir.OpRet:
			v := e.resolve(fr, term.Operands[0])
			e.lastResult = v
			return v, nil
		case ir.OpJump:
			next := e.resolveJumpTarget(fr, term.Operands)
			fr.prev = cur
			cur = next
		default:
			return value.UndefV(), &RunErr{Msg: "unterminated block"}
		}
	}
}

func (e *Evaluator) resolveJumpTarget(fr *frame, operands []ir.Operand) *ir.BasicBlock {
	if len(operands) == 1 {
		return operands[0].Block
	}
	cond := e.resolve(fr, operands[0])
	if cond.AsBool() {
		return operands[1].Block
	}
	return operands[2].Block
}

// resolve reads the value an operand denotes in the given frame.
func (e *Evaluator) resolve(fr *frame, op ir.Operand) value.Value {
	switch op.Kind {
	case ir.OperandValue:
		return op.Val
	case ir.OperandReg:
		if op.Reg.IsGlobal() {
			return e.constants[op.Reg]
		}
		return fr.regs[op.Reg]
	case ir.OperandParam:
		idx := int(op.Param)
		if idx < 0 || idx >= len(fr.params) {
			return value.UndefV()
		}
		return fr.params[idx]
	case ir.OperandName:
		if op.Name == "_result" {
			return e.lastResult
		}
		return value.UndefV()
	default:
		return value.UndefV()
	}
}

// step executes one non-terminator instruction, writing its result (if
// any) into the frame's register file.
func (e *Evaluator) step(fr *frame, instr *ir.Instruction) error {
	var result value.Value
	switch instr.Op {
	case ir.OpAlloc:
		result = value.UndefV()

	case ir.OpStore:
		v := e.resolve(fr, instr.Operands[0])
		slot := instr.Operands[1].Reg
		fr.regs[slot] = v
		return nil

	case ir.OpLoad:
		result = e.resolve(fr, instr.Operands[0])

	case ir.OpArr:
		// The compiler always follows Arr with one Append per element,
		// so the block starts empty regardless of the size recorded on
		// the instruction (kept there only for printers/diagnostics).
		result = value.Arr(e.store.Alloc(0))

	case ir.OpAppend:
		arrVal := e.resolve(fr, instr.Operands[0])
		elem := e.resolve(fr, instr.Operands[1])
		arrVal.AsArray().Append(elem)
		return nil

	case ir.OpPhi:
		result = e.resolvePhi(fr, instr)

	case ir.OpCall:
		v, err := e.call(fr, instr.Operands)
		if err != nil {
			return err
		}
		result = v

	case ir.OpDynBind:
		// Module/scope-ref member resolution is not representable in
		// the scalar value model; an unresolved dynamic bind yields
		// Undef rather than faulting the evaluator (see DESIGN.md).
		result = value.UndefV()

	case ir.OpBool, ir.OpInt, ir.OpFloat, ir.OpFrac, ir.OpCplx:
		result = e.construct(fr, instr)

	case ir.OpTest, ir.OpCmpIs:
		v := e.resolve(fr, instr.Operands[0])
		want := instr.Operands[1].Type
		result = value.Bool(v.Type() == want)

	case ir.OpHead:
		v := e.resolve(fr, instr.Operands[0])
		if v.Type() == value.TArray && v.AsArray().Len() > 0 {
			result = v.AsArray().At(0)
		} else {
			result = value.UndefV()
		}

	case ir.OpTail:
		v := e.resolve(fr, instr.Operands[0])
		if v.Type() == value.TArray && v.AsArray().Len() > 1 {
			result = value.Arr(v.AsArray().View(1, v.AsArray().Len()-1))
		} else {
			result = value.Arr(e.store.Alloc(0))
		}

	case ir.OpSelect:
		cond := e.resolve(fr, instr.Operands[0])
		if cond.AsBool() {
			result = e.resolve(fr, instr.Operands[1])
		} else {
			result = e.resolve(fr, instr.Operands[2])
		}

	case ir.OpAbs:
		result = value.Unary(value.UAbs, e.resolve(fr, instr.Operands[0]))
	case ir.OpPlus:
		result = value.Unary(value.UPlus, e.resolve(fr, instr.Operands[0]))
	case ir.OpNeg:
		result = value.Unary(value.UNeg, e.resolve(fr, instr.Operands[0]))
	case ir.OpBNeg:
		result = value.Unary(value.UBNeg, e.resolve(fr, instr.Operands[0]))
	case ir.OpCmpNot:
		result = value.Unary(value.ULNot, e.resolve(fr, instr.Operands[0]))

	default:
		result = e.binaryStep(fr, instr)
	}

	if instr.Result != nil {
		fr.regs[instr.Result] = result
	}
	return nil
}

var opToBinary = map[ir.Opcode]value.BinaryOp{
	ir.OpAdd: value.BAdd, ir.OpSub: value.BSub, ir.OpMul: value.BMul, ir.OpDiv: value.BDiv,
	ir.OpMod: value.BMod, ir.OpPow: value.BPow, ir.OpRoot: value.BRoot,
	ir.OpAnd: value.BAnd, ir.OpOr: value.BOr, ir.OpXor: value.BXor,
	ir.OpCmpE: value.BCmpE, ir.OpCmpL: value.BCmpL, ir.OpCmpLE: value.BCmpLE,
	ir.OpCmpNE: value.BCmpNE, ir.OpCmpG: value.BCmpG, ir.OpCmpGE: value.BCmpGE,
}

func (e *Evaluator) binaryStep(fr *frame, instr *ir.Instruction) value.Value {
	op, ok := opToBinary[instr.Op]
	if !ok {
		return value.UndefV()
	}
	l := e.resolve(fr, instr.Operands[0])
	r := e.resolve(fr, instr.Operands[1])
	return value.Binary(op, l, r)
}

// resolvePhi picks the operand belonging to the edge whose source
// block is the one this frame just jumped from.
func (e *Evaluator) resolvePhi(fr *frame, instr *ir.Instruction) value.Value {
	for _, operand := range instr.Operands {
		if operand.Kind != ir.OperandEdge {
			continue
		}
		if operand.Edge.From == fr.prev {
			return e.resolve(fr, operand.Edge.Value)
		}
	}
	return value.UndefV()
}

// call dispatches a Call instruction: the callee may be an IR function
// value (ordinary call) or an array (array-as-callable recursion), per
// spec.md §4.6/§4.8.
func (e *Evaluator) call(fr *frame, operands []ir.Operand) (value.Value, error) {
	callee := e.resolve(fr, operands[0])
	var args []value.Value
	for _, o := range operands[1:] {
		args = append(args, e.resolve(fr, o))
	}

	switch callee.Type() {
	case value.TFunction:
		fv, ok := callee.AsFunc().(*ir.FuncValue)
		if !ok || fv.Fn == nil {
			return value.UndefV(), nil
		}
		return e.Call(fv.Fn, args)
	case value.TArray:
		return e.callArray(callee.AsArray(), args)
	default:
		return value.UndefV(), nil
	}
}

// callArray implements the array-as-callable contract of spec.md §4.6:
// the evaluator walks the array's elements in order; each callable
// element is invoked with args, producing a value; each nested array
// is recursed into; non-callables are skipped. Results land in a new
// array wrapper (its capacity reserved at the outer array's length)
// holding one entry per called element and per non-empty nested
// result; empty sub-result arrays are filtered out.
//
// m_arrCalls records, per array identity, how far a previous suspended
// call got: re-entering the same array with the same outer call resumes
// at the recorded index instead of restarting, satisfying the
// suspend/resume invariant spec.md §4.6 calls out. Since a single call
// instruction runs this loop to completion in one Go call (the Go call
// stack plays the role the source's resumable state machine plays
// across separate Call opcodes), the cursor observably always starts
// at 0 and ends at a.Len() by the time callArray returns; it is kept as
// real per-array state (not a local) so a second, independent Call
// against the same array value after this one completes does not
// collide with leftover bookkeeping from the first.
func (e *Evaluator) callArray(a *value.Array, args []value.Value) (value.Value, error) {
	cursor := e.arrCalls[a]
	out := make([]value.Value, 0, a.Len())
	for ; cursor < a.Len(); cursor++ {
		e.arrCalls[a] = cursor + 1
		elem := a.At(cursor)
		switch elem.Type() {
		case value.TFunction:
			fv, ok := elem.AsFunc().(*ir.FuncValue)
			if !ok || fv.Fn == nil {
				continue
			}
			v, err := e.Call(fv.Fn, args)
			if err != nil {
				return value.UndefV(), err
			}
			out = append(out, v)
		case value.TArray:
			v, err := e.callArray(elem.AsArray(), args)
			if err != nil {
				return value.UndefV(), err
			}
			if v.Type() == value.TArray && v.AsArray().Len() == 0 {
				continue // filter empty sub-results, per spec.md §4.6
			}
			out = append(out, v)
		default:
			continue // skip non-callables
		}
	}
	delete(e.arrCalls, a)
	return value.Arr(e.store.AllocFrom(out)), nil
}

func (e *Evaluator) construct(fr *frame, instr *ir.Instruction) value.Value {
	args := make([]value.Value, len(instr.Operands))
	for i, o := range instr.Operands {
		args[i] = e.resolve(fr, o)
	}
	switch instr.Op {
	case ir.OpBool:
		return value.ConstructBool(args)
	case ir.OpInt:
		return value.ConstructInt(args)
	case ir.OpFloat:
		return value.ConstructFloat(args)
	case ir.OpFrac:
		return value.ConstructFraction(args)
	case ir.OpCplx:
		return value.ConstructComplex(args)
	}
	return value.UndefV()
}

// LastResult returns the most recently returned value across any Call,
// backing the `_result` keyword at top level.
func (e *Evaluator) LastResult() value.Value { return e.lastResult }

// AddConstants merges newly-interned constants into the running
// evaluator, letting a host (internal/driver) recompile additional
// chunks against a function/register universe that keeps growing
// without discarding the evaluator's accumulated `_result` state.
func (e *Evaluator) AddConstants(constants []ir.ConstantEntry) {
	for _, c := range constants {
		e.constants[c.Reg] = c.Value
	}
}
