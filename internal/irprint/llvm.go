// LLVM lowers a compiled tnac function to a textual LLVM-IR module, a
// second pretty-printer alongside Function's native CFG dumper. It
// covers the purely-arithmetic fragment of the IR (float64 loads,
// arithmetic, comparisons, and the block/branch/return skeleton)
// since LLVM's static type system has no counterpart for tnac's
// dynamic type-id tag; every other opcode (Store, Phi, Call, DynBind,
// the array and type-constructor opcodes) emits no LLVM instruction,
// and any result register it defines reads as a 0.0 constant (see
// DESIGN.md — this dumper
// is diagnostic tooling, not a code generation backend, so a partial
// instruction mapping doesn't compromise the evaluator's correctness).
//
// Grounded in the one dependency the teacher's go.mod lists but never
// imports (github.com/llir/llvm), in the same spirit as
// other_examples/ AST-to-LLVM-IR lowering passes retrieved for this
// spec: a builder visits each basic block once, in order, threading a
// register-to-LLVM-value map exactly the way this package's own
// ir.Builder threads register identity through the native IR.
package irprint

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	tnacir "tnac/internal/ir"
	tnacvalue "tnac/internal/value"
)

// LLVM renders fn as a textual LLVM-IR module (one LLVM function per
// tnac function, one LLVM basic block per tnac basic block).
func LLVM(fn *tnacir.Function) string {
	m := ir.NewModule()
	lowerFunction(m, fn)
	return m.String()
}

func lowerFunction(m *ir.Module, fn *tnacir.Function) *ir.Func {
	params := make([]*ir.Param, fn.NumParams)
	for i := range params {
		params[i] = ir.NewParam(fmt.Sprintf("p%d", i), types.Double)
	}
	name := fn.Name
	if name == "" {
		name = "anon"
	}
	lf := m.NewFunc(sanitizeName(name), types.Double, params...)

	blocks := make(map[*tnacir.BasicBlock]*ir.Block, len(fn.Blocks))
	for _, b := range fn.Blocks {
		blocks[b] = lf.NewBlock(b.Name)
	}
	regs := make(map[*tnacir.VReg]value.Value)

	for _, b := range fn.Blocks {
		lb := blocks[b]
		for _, instr := range b.Instructions() {
			lowerInstruction(lb, instr, regs, blocks, params)
		}
		if lb.Term == nil {
			lb.NewRet(constant.NewFloat(types.Double, 0))
		}
	}
	return lf
}

func sanitizeName(s string) string {
	return strings.NewReplacer("<", "_", ">", "_", ":", "_", "#", "_").Replace(s)
}

func lowerOperand(o tnacir.Operand, regs map[*tnacir.VReg]value.Value, blocks map[*tnacir.BasicBlock]*ir.Block, params []*ir.Param) value.Value {
	switch o.Kind {
	case tnacir.OperandValue:
		return constant.NewFloat(types.Double, operandFloat(o.Val))
	case tnacir.OperandReg:
		if v, ok := regs[o.Reg]; ok {
			return v
		}
		return constant.NewFloat(types.Double, 0)
	case tnacir.OperandParam:
		idx := int(o.Param)
		if idx >= 0 && idx < len(params) {
			return params[idx]
		}
		return constant.NewFloat(types.Double, 0)
	default:
		return constant.NewFloat(types.Double, 0)
	}
}

func operandFloat(v tnacvalue.Value) float64 {
	switch v.Type() {
	case tnacvalue.TInt:
		return float64(v.AsInt())
	case tnacvalue.TFloat:
		return v.AsFloat()
	case tnacvalue.TBool:
		if v.AsBool() {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func lowerInstruction(lb *ir.Block, instr *tnacir.Instruction, regs map[*tnacir.VReg]value.Value, blocks map[*tnacir.BasicBlock]*ir.Block, params []*ir.Param) {
	operand := func(i int) value.Value { return lowerOperand(instr.Operands[i], regs, blocks, params) }

	switch instr.Op {
	case tnacir.OpAdd:
		regs[instr.Result] = lb.NewFAdd(operand(0), operand(1))
	case tnacir.OpSub:
		regs[instr.Result] = lb.NewFSub(operand(0), operand(1))
	case tnacir.OpMul:
		regs[instr.Result] = lb.NewFMul(operand(0), operand(1))
	case tnacir.OpDiv:
		regs[instr.Result] = lb.NewFDiv(operand(0), operand(1))
	case tnacir.OpMod:
		regs[instr.Result] = lb.NewFRem(operand(0), operand(1))
	case tnacir.OpNeg:
		regs[instr.Result] = lb.NewFNeg(operand(0))
	case tnacir.OpCmpE:
		regs[instr.Result] = lb.NewFCmp(enum.FPredOEQ, operand(0), operand(1))
	case tnacir.OpCmpNE:
		regs[instr.Result] = lb.NewFCmp(enum.FPredONE, operand(0), operand(1))
	case tnacir.OpCmpL:
		regs[instr.Result] = lb.NewFCmp(enum.FPredOLT, operand(0), operand(1))
	case tnacir.OpCmpLE:
		regs[instr.Result] = lb.NewFCmp(enum.FPredOLE, operand(0), operand(1))
	case tnacir.OpCmpG:
		regs[instr.Result] = lb.NewFCmp(enum.FPredOGT, operand(0), operand(1))
	case tnacir.OpCmpGE:
		regs[instr.Result] = lb.NewFCmp(enum.FPredOGE, operand(0), operand(1))
	case tnacir.OpLoad:
		regs[instr.Result] = operand(0)
	case tnacir.OpJump:
		lowerJump(lb, instr, blocks, regs, params)
	case tnacir.OpRet:
		lb.NewRet(operand(0))
	default:
		// Call, DynBind, array/type-constructor opcodes: no static LLVM
		// type to lower into, see package doc.
		if instr.Result != nil {
			regs[instr.Result] = constant.NewFloat(types.Double, 0)
		}
	}
}

func lowerJump(lb *ir.Block, instr *tnacir.Instruction, blocks map[*tnacir.BasicBlock]*ir.Block, regs map[*tnacir.VReg]value.Value, params []*ir.Param) {
	if len(instr.Operands) == 1 {
		target := blocks[instr.Operands[0].Block]
		lb.NewBr(target)
		return
	}
	cond := lowerOperand(instr.Operands[0], regs, blocks, params)
	condBool := lb.NewFCmp(enum.FPredONE, cond, constant.NewFloat(types.Double, 0))
	thenB := blocks[instr.Operands[1].Block]
	elseB := blocks[instr.Operands[2].Block]
	lb.NewCondBr(condBool, thenB, elseB)
}
