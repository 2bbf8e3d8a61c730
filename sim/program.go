package sim

import "github.com/db47h/hdlsim/bits"

// constFlag marks a 16-bit operand address as indexing the constants
// pool rather than a register (spec.md §4.6, "Process VM": "the high bit
// of a 16-bit address selects the constants pool").
const constFlag uint16 = 0x8000

// Addr is a 16-bit register or constant address. Addresses with the high
// bit set index Program.Consts; the rest index the process's register
// file.
type Addr uint16

// IsConst reports whether a addresses the constants pool.
func (a Addr) IsConst() bool { return a&Addr(constFlag) != 0 }

// Index returns a's index within whichever pool it addresses.
func (a Addr) Index() int { return int(a &^ Addr(constFlag)) }

// ConstAddr returns the address of constants-pool slot i.
func ConstAddr(i int) Addr { return Addr(uint16(i) | constFlag) }

// RegAddr returns the address of register i.
func RegAddr(i int) Addr { return Addr(uint16(i)) }

// Op identifies a VM instruction (spec.md §4.6, "Process VM" instruction
// set).
type Op uint8

const (
	// Input copies the current value of Inputs[B] into register A.
	Input Op = iota
	// Output stages a write of register/constant A onto Outputs[B] with
	// mask Outputs[B]'s full width, to take effect Delay (register or
	// constant C, a picosecond count) time units from now: the next
	// delta cycle at the same instant if Delay resolves to zero,
	// otherwise a fresh delta chain at now+Delay.
	Output
	// Move copies B into A (B may be a register or a constant; A must be
	// a register).
	Move
	// OpWaitTime suspends the process until Delay (a register or constant
	// holding a picosecond count) has elapsed.
	OpWaitTime
	// OpWaitInputs suspends the process until any signal in Inputs changes.
	OpWaitInputs
	// UnaryLogic applies SubOp (a bits.LogicNot-style unary op) to B and
	// stores the result in A.
	UnaryLogic
	// BinaryLogic applies SubOp (and/or/xor) to B and C and stores the
	// result in A.
	BinaryLogic
	// BinaryArith applies SubOp (add/sub/mul/udiv) to B and C, interpreted
	// as Unsigned values, and stores the result (converted back to
	// Logic) in A. Per spec.md §4.6: if every lane of both operands is
	// fully defined the arithmetic is performed and the result written;
	// otherwise every lane of A is set to X.
	BinaryArith
)

// UnaryLogicOp mirrors bits' unary logic operations for the VM's
// UnaryLogic instruction.
type UnaryLogicOp uint8

const (
	VMNot UnaryLogicOp = iota
)

// BinaryLogicOp mirrors bits' binary logic operations for the VM's
// BinaryLogic instruction.
type BinaryLogicOp uint8

const (
	VMAnd BinaryLogicOp = iota
	VMOr
	VMXor
)

// BinaryArithOp mirrors bits' unsigned arithmetic operations for the
// VM's BinaryArith instruction.
type BinaryArithOp uint8

const (
	VMAdd BinaryArithOp = iota
	VMSub
	VMMul
	VMUdiv
)

// Instr is one VM instruction. Not every field is meaningful for every
// Op; see the Op constants above for the operand layout of each.
type Instr struct {
	Op    Op
	SubOp uint8
	A, B, C Addr
}

// Program is the compiled body of a Process: a flat instruction stream
// plus its constants pool and its I/O schedule (spec.md §4.6,
// "Program"). A Program has no notion of simulation time or of other
// processes; it is pure bytecode run by a Process.
type Program struct {
	Consts  []bits.Logic
	Code    []Instr
	Inputs  []*Signal
	Outputs []*Signal
	NumRegs int

	// InitRegs seeds the register file at process creation, indexed the
	// same way RegAddr is. Registers beyond len(InitRegs) start as a
	// zero-width Logic value, which is only safe if the program's first
	// write to them is a Move/Input/UnaryLogic/BinaryLogic/BinaryArith
	// rather than a read — programs that carry state across wakeups
	// (e.g. an edge-detecting latch) must set InitRegs for that state.
	InitRegs []bits.Logic
}

// resolve returns the current value addressed by a within p and regs.
func (p *Program) resolve(regs []bits.Logic, a Addr) bits.Logic {
	if a.IsConst() {
		return p.Consts[a.Index()]
	}
	return regs[a.Index()]
}

// store writes v into the register addressed by a. Storing to a constant
// address is a programming error (the compiler that emits Programs must
// never do it).
func (p *Program) store(regs []bits.Logic, a Addr, v bits.Logic) {
	if a.IsConst() {
		panic("sim: VM instruction writes to a constant address")
	}
	regs[a.Index()] = v
}
