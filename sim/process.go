package sim

import (
	"github.com/db47h/hdlsim/bits"
)

// State is a Process's position in the state machine described by
// spec.md §4.6 ("Process state machine").
type State uint8

const (
	// Ready processes are runnable immediately.
	Ready State = iota
	// Running is the transient state a process is in while the kernel is
	// actually executing its instructions.
	Running
	// Suspended is part of the state set but is never entered by this
	// VM: Run returns only once the process blocks in WaitTime or
	// WaitInputs, or when its watchdog trips.
	Suspended
	// WaitTime processes are blocked until a specific future Time.
	WaitTime
	// WaitInputs processes are blocked until one of their declared input
	// signals changes value.
	WaitInputs
	// Stopped processes will never run again.
	Stopped
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case WaitTime:
		return "wait-time"
	case WaitInputs:
		return "wait-inputs"
	case Stopped:
		return "stopped"
	default:
		return "?"
	}
}

// Process is one running instance of a Program: its register file,
// program counter and current scheduling state (spec.md §4.6,
// "Process"). Reaching the end of the program's instruction stream loops
// back to instruction zero, the same way a hardware description
// language's process body re-executes from the top every time it wakes —
// there is no explicit halt instruction.
type Process struct {
	Name string

	prog   *Program
	regs   []bits.Logic
	pc     int
	state  State
	wakeAt Time
}

// NewProcess returns a new process ready to execute prog, starting at
// instruction zero.
func NewProcess(name string, prog *Program) *Process {
	regs := make([]bits.Logic, prog.NumRegs)
	copy(regs, prog.InitRegs)
	return &Process{Name: name, prog: prog, regs: regs, state: Ready}
}

// State reports the process's current scheduling state.
func (p *Process) State() State { return p.state }

// WakeTime returns the time a WaitTime process is blocked until. It is
// meaningless in any other state.
func (p *Process) WakeTime() Time { return p.wakeAt }

// Program returns the process's compiled body.
func (p *Process) Program() *Program { return p.prog }

// Run executes instructions until the process blocks (WaitTime or
// WaitInputs) or the watchdog limit of maxSteps plain instructions is
// reached within this call, whichever happens first. It returns the
// number of instructions executed and, if the watchdog tripped, a
// non-nil error (spec.md §6, "Error handling": a runaway zero-delay
// loop must be diagnosable, not hang the simulator).
func (p *Process) Run(now Time, q *EventQueue, maxSteps int) (int, error) {
	p.state = Running
	steps := 0
	for {
		if steps >= maxSteps {
			return steps, errWatchdog
		}
		if p.pc >= len(p.prog.Code) {
			p.pc = 0
		}
		inst := p.prog.Code[p.pc]
		p.pc++
		steps++
		switch inst.Op {
		case Input:
			sig := p.prog.Inputs[inst.B.Index()]
			p.prog.store(p.regs, inst.A, sig.Value().Clone())
		case Output:
			sig := p.prog.Outputs[inst.B.Index()]
			v := p.prog.resolve(p.regs, inst.A)
			delay := p.prog.resolve(p.regs, inst.C)
			ps := int64(bits.UnsignedFromLogic(delay).Uint64())
			q.Stage(now.Plus(ps), sig, v, bits.AllOnes(sig.Width()))
		case Move:
			v := p.prog.resolve(p.regs, inst.B)
			p.prog.store(p.regs, inst.A, v)
		case OpWaitTime:
			delay := p.prog.resolve(p.regs, inst.B)
			ps := int64(bits.UnsignedFromLogic(delay).Uint64())
			p.wakeAt = now.Plus(ps)
			p.state = WaitTime
			return steps, nil
		case OpWaitInputs:
			p.state = WaitInputs
			return steps, nil
		case UnaryLogic:
			b := p.prog.resolve(p.regs, inst.B)
			p.prog.store(p.regs, inst.A, execUnary(UnaryLogicOp(inst.SubOp), b))
		case BinaryLogic:
			b := p.prog.resolve(p.regs, inst.B)
			c := p.prog.resolve(p.regs, inst.C)
			p.prog.store(p.regs, inst.A, execBinaryLogic(BinaryLogicOp(inst.SubOp), b, c))
		case BinaryArith:
			b := p.prog.resolve(p.regs, inst.B)
			c := p.prog.resolve(p.regs, inst.C)
			p.prog.store(p.regs, inst.A, execBinaryArith(BinaryArithOp(inst.SubOp), b, c))
		}
	}
}

func execUnary(op UnaryLogicOp, a bits.Logic) bits.Logic {
	switch op {
	case VMNot:
		return bits.LogicNot(a)
	default:
		panic("sim: unknown UnaryLogic sub-op")
	}
}

func execBinaryLogic(op BinaryLogicOp, a, b bits.Logic) bits.Logic {
	switch op {
	case VMAnd:
		return bits.LogicAnd(a, b)
	case VMOr:
		return bits.LogicOr(a, b)
	case VMXor:
		return bits.LogicXor(a, b)
	default:
		panic("sim: unknown BinaryLogic sub-op")
	}
}

// execBinaryArith performs a width-matched unsigned arithmetic op over
// two Logic operands. Per spec.md §4.6, if either operand has any
// partially-defined lane the result is all-X rather than a spurious
// numeric answer.
func execBinaryArith(op BinaryArithOp, a, b bits.Logic) bits.Logic {
	if !a.IsFullyDefined() || !b.IsFullyDefined() {
		return bits.NewLogic(a.Width(), bits.CodeX)
	}
	ua, ub := bits.UnsignedFromLogic(a), bits.UnsignedFromLogic(b)
	var r bits.Unsigned
	switch op {
	case VMAdd:
		r = bits.Add(ua, ub)
	case VMSub:
		r = bits.Sub(ua, ub)
	case VMMul:
		r = bits.Mul(ua, ub)
	case VMUdiv:
		r = bits.Udiv(ua, ub)
	default:
		panic("sim: unknown BinaryArith sub-op")
	}
	return r.ToLogic()
}
