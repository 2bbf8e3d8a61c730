package hdlsim

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the unit as textual assembly (spec.md §4.4, "Textual
// assembly"). The format is deterministic: given the same graph it always
// produces byte-identical output, which makes it suitable for golden-file
// tests.
func (u *Unit) String() string {
	var b strings.Builder
	p := &printer{b: &b, names: map[Value]string{}}
	p.printUnit(u)
	return b.String()
}

// printer assigns deterministic, human-readable names to unnamed values
// (%0, %1, ... in order of first appearance) and writes the textual
// rendering of a unit's signature and body.
type printer struct {
	b     *strings.Builder
	names map[Value]string
	next  int
}

func (p *printer) nameOf(v Value) string {
	if n := v.Name(); n != "" {
		return "%" + n
	}
	if n, ok := p.names[v]; ok {
		return n
	}
	n := "%" + strconv.Itoa(p.next)
	p.next++
	p.names[v] = n
	return n
}

func (p *printer) printUnit(u *Unit) {
	fmt.Fprintf(p.b, "%s %s(", u.kind.String(), unitName(u))
	for i, in := range u.inputs {
		if i > 0 {
			p.b.WriteString(", ")
		}
		fmt.Fprintf(p.b, "%s %s", in.Type().String(), p.nameOf(in))
	}
	p.b.WriteString(") -> (")
	switch u.kind {
	case UnitFunction:
		p.b.WriteString(u.resultType.String())
	default:
		for i, out := range u.outputs {
			if i > 0 {
				p.b.WriteString(", ")
			}
			fmt.Fprintf(p.b, "%s %s", out.Type().String(), p.nameOf(out))
		}
	}
	p.b.WriteString(") {\n")

	switch u.kind {
	case UnitEntity:
		for _, inst := range u.Insts() {
			p.printInst(inst, "  ")
		}
	default:
		for _, blk := range u.Blocks() {
			fmt.Fprintf(p.b, "%s:\n", blockLabel(blk))
			for _, inst := range blk.Insts() {
				p.printInst(inst, "  ")
			}
		}
	}
	p.b.WriteString("}\n")
}

func unitName(u *Unit) string {
	if u.Name() != "" {
		return "@" + u.Name()
	}
	return "@<anon>"
}

func blockLabel(b *Block) string {
	if b.Name() != "" {
		return b.Name()
	}
	return "<block>"
}

func (p *printer) printInst(inst *Inst, indent string) {
	p.b.WriteString(indent)
	// Branch, Drive, Ret and Instance are void-typed and print with no
	// result name; every other op assigns a value.
	hasResult := inst.op != OpBranch && inst.op != OpDrive && inst.op != OpRet && inst.op != OpInstance
	if hasResult {
		fmt.Fprintf(p.b, "%s = ", p.nameOf(inst))
	}
	switch inst.op {
	case OpBinary:
		fmt.Fprintf(p.b, "%s %s %s, %s\n", inst.BinaryOp().String(), inst.Type().String(), p.operandName(inst, 0), p.operandName(inst, 1))
	case OpUnary:
		fmt.Fprintf(p.b, "%s %s %s\n", inst.UnaryOp().String(), inst.Type().String(), p.operandName(inst, 0))
	case OpCompare:
		fmt.Fprintf(p.b, "cmp.%s %s, %s\n", inst.CompareOp().String(), p.operandName(inst, 0), p.operandName(inst, 1))
	case OpBranch:
		if inst.IsConditional() {
			tgts := inst.Targets()
			fmt.Fprintf(p.b, "br %s, label %s, label %s\n", p.operandName(inst, 0), blockLabel(tgts[0]), blockLabel(tgts[1]))
		} else {
			tgts := inst.Targets()
			fmt.Fprintf(p.b, "br label %s\n", blockLabel(tgts[0]))
		}
	case OpDrive:
		fmt.Fprintf(p.b, "drive %s, %s\n", p.operandName(inst, 0), p.operandName(inst, 1))
	case OpSignal:
		fmt.Fprintf(p.b, "sig %s %s\n", inst.Type().String(), p.operandName(inst, 0))
	case OpRet:
		if v := inst.RetValue(); v != nil {
			fmt.Fprintf(p.b, "ret %s %s\n", v.Type().String(), p.nameOf(v))
		} else {
			p.b.WriteString("ret void\n")
		}
	case OpCall:
		fmt.Fprintf(p.b, "call %s %s(", inst.Type().String(), unitName(inst.Callee()))
		for i, a := range inst.Args() {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(p.nameOf(a))
		}
		p.b.WriteString(")\n")
	case OpInstance:
		fmt.Fprintf(p.b, "instance %s(", unitName(inst.Component()))
		for i, v := range inst.InstanceInputs() {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(p.nameOf(v))
		}
		p.b.WriteString(") -> (")
		for i, v := range inst.InstanceOutputs() {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(p.nameOf(v))
		}
		p.b.WriteString(")\n")
	case OpExtractValue:
		fmt.Fprintf(p.b, "extractvalue %s, %d\n", p.nameOf(inst.Aggregate()), inst.FieldIndex())
	case OpInsertValue:
		fmt.Fprintf(p.b, "insertvalue %s, %d, %s\n", p.nameOf(inst.Aggregate()), inst.FieldIndex(), p.nameOf(inst.Elem()))
	case OpReg:
		fmt.Fprintf(p.b, "reg %s, clock %s, data %s, init %s\n", inst.Type().String(), p.nameOf(inst.Clock()), p.nameOf(inst.Data()), p.nameOf(inst.RegInit()))
	}
}

// operandName renders operand n of inst, using a Const's literal form
// rather than an assigned name where applicable.
func (p *printer) operandName(inst *Inst, n int) string {
	v := inst.Operand(n)
	if c, ok := v.(*Const); ok {
		return constLiteral(c)
	}
	return p.nameOf(v)
}

func constLiteral(c *Const) string {
	switch c.Payload() {
	case ConstInt:
		return strconv.FormatUint(c.Int().Uint64(), 10)
	case ConstLogic:
		return "\"" + c.Logic().String() + "\""
	default:
		return "null"
	}
}
