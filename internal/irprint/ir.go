package irprint

import (
	"fmt"
	"strings"

	"tnac/internal/ir"
)

// Function renders fn and (recursively) its children as a textual CFG
// dump: one function header, then one line per basic block, then one
// indented line per instruction, operands rendered by their kind.
// Register names fall back to a stable `%rN` numbering so the dump is
// deterministic across runs even for anonymous local registers.
func Function(fn *ir.Function) string {
	var sb strings.Builder
	names := map[*ir.VReg]string{}
	dumpFunction(&sb, fn, names, 0)
	return sb.String()
}

func dumpFunction(sb *strings.Builder, fn *ir.Function, names map[*ir.VReg]string, depth int) {
	indent := strings.Repeat("  ", depth)
	loose := ""
	if fn.Loose {
		loose = " (loose)"
	}
	fmt.Fprintf(sb, "%sfunction %s(%d params)%s {\n", indent, fn.Name, fn.NumParams, loose)
	for _, b := range fn.Blocks {
		dumpBlock(sb, b, names, depth+1)
	}
	fmt.Fprintf(sb, "%s}\n", indent)
	for _, child := range fn.Children {
		dumpFunction(sb, child, names, depth)
	}
}

func dumpBlock(sb *strings.Builder, b *ir.BasicBlock, names map[*ir.VReg]string, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s:\n", indent, b.Name)
	for _, instr := range b.Instructions() {
		fmt.Fprintf(sb, "%s  %s\n", indent, dumpInstruction(instr, names))
	}
}

func regName(r *ir.VReg, names map[*ir.VReg]string) string {
	if r == nil {
		return "<nil>"
	}
	if r.IsNamed() {
		return "%" + r.Name
	}
	if n, ok := names[r]; ok {
		return n
	}
	n := fmt.Sprintf("%%r%d", r.ID())
	names[r] = n
	return n
}

func dumpInstruction(instr *ir.Instruction, names map[*ir.VReg]string) string {
	var sb strings.Builder
	if instr.Result != nil {
		fmt.Fprintf(&sb, "%s = ", regName(instr.Result, names))
	}
	sb.WriteString(instr.Op.String())
	for _, o := range instr.Operands {
		sb.WriteByte(' ')
		sb.WriteString(dumpOperand(o, names))
	}
	return sb.String()
}

func dumpOperand(o ir.Operand, names map[*ir.VReg]string) string {
	switch o.Kind {
	case ir.OperandValue:
		return o.Val.String()
	case ir.OperandBlock:
		if o.Block == nil {
			return "<nil-block>"
		}
		return "@" + o.Block.Name
	case ir.OperandReg:
		return regName(o.Reg, names)
	case ir.OperandEdge:
		from := "?"
		if o.Edge.From != nil {
			from = o.Edge.From.Name
		}
		return fmt.Sprintf("[%s: %s]", from, dumpOperand(o.Edge.Value, names))
	case ir.OperandParam:
		return fmt.Sprintf("param(%d)", o.Param)
	case ir.OperandIndex:
		return fmt.Sprintf("#%d", o.Index)
	case ir.OperandName:
		return o.Name
	case ir.OperandType:
		return o.Type.String()
	}
	return "?"
}
