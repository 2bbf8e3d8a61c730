package hdlsim

import (
	"github.com/db47h/hdlsim/types"
)

// InstOp identifies the operation an instruction performs (spec.md §4.3,
// "Instructions"). A single Inst struct represents every variant; Op plus
// the instruction's type and operand list fully determine its meaning, the
// same way the teacher's hwsim parts are all plain structs dispatched on a
// Socket pin map rather than on a type hierarchy.
type InstOp uint8

const (
	// OpBinary performs a binary logic or arithmetic operation; the exact
	// sub-operation is recorded in Inst.SubOp.
	OpBinary InstOp = iota
	// OpUnary performs a unary logic operation (currently only logical
	// negation); the sub-operation is recorded in Inst.SubOp.
	OpUnary
	// OpCompare performs an equality, unsigned or signed comparison; the
	// sub-operation is recorded in Inst.SubOp.
	OpCompare
	// OpBranch transfers control to one of one or two target blocks,
	// optionally conditioned on a boolean operand. Process/Function only.
	OpBranch
	// OpDrive is a continuous assignment: it declares that a signal
	// always reads as some other value's current value. Entity-only.
	// Nothing in this module turns it into a running sim.Comb.
	OpDrive
	// OpSignal declares a named, typed simulation signal. Entity-only.
	OpSignal
	// OpRet returns from a Function, optionally with a value.
	OpRet
	// OpCall invokes a Function with argument values, yielding a result.
	OpCall
	// OpInstance instantiates a component (Entity or Process) as a
	// sub-unit, wiring its inputs and outputs to local signals. Entity-only.
	OpInstance
	// OpExtractValue extracts one field of an aggregate (Struct or Array)
	// operand.
	OpExtractValue
	// OpInsertValue returns a copy of an aggregate operand with one field
	// replaced.
	OpInsertValue
	// OpReg is a clocked storage cell: on each clock edge it latches its
	// data input and exposes the previously latched value as its result.
	// Used in Entity bodies (EntityBuilder.Reg).
	OpReg
)

func (op InstOp) String() string {
	switch op {
	case OpBinary:
		return "binary"
	case OpUnary:
		return "unary"
	case OpCompare:
		return "compare"
	case OpBranch:
		return "br"
	case OpDrive:
		return "drive"
	case OpSignal:
		return "sig"
	case OpRet:
		return "ret"
	case OpCall:
		return "call"
	case OpInstance:
		return "inst"
	case OpExtractValue:
		return "extractvalue"
	case OpInsertValue:
		return "insertvalue"
	case OpReg:
		return "reg"
	default:
		return "?"
	}
}

// BinaryOp selects the sub-operation of an OpBinary instruction.
type BinaryOp uint8

const (
	BinAnd BinaryOp = iota
	BinOr
	BinXor
	BinAdd
	BinSub
	BinMul
	BinUdiv
	BinUrem
	BinSdiv
	BinSrem
	BinLsl
	BinLsr
	BinAsr
)

func (op BinaryOp) String() string {
	return [...]string{
		"and", "or", "xor", "add", "sub", "mul", "udiv",
		"urem", "sdiv", "srem", "lsl", "lsr", "asr",
	}[op]
}

// UnaryOp selects the sub-operation of an OpUnary instruction.
type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota
)

func (op UnaryOp) String() string { return "not" }

// CompareOp selects the sub-operation of an OpCompare instruction. Compares
// always yield an i1 (logic1, in the boolean sense) result.
type CompareOp uint8

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpUlt
	CmpUle
	CmpUgt
	CmpUge
	CmpSlt
	CmpSle
	CmpSgt
	CmpSge
)

func (op CompareOp) String() string {
	return [...]string{
		"eq", "ne", "ult", "ule", "ugt", "uge",
		"slt", "sle", "sgt", "sge",
	}[op]
}

// Inst is an IR instruction. It is a Value in its own right (its result),
// owns a numbered list of operand Uses, and is a member of exactly one
// owner list: either a Block's instruction list (Process/Function bodies)
// or an Entity's instruction list directly.
type Inst struct {
	base
	op    InstOp
	subOp uint8

	operands []*Use

	// OpBranch: whether operands[0] is the condition. If false the branch
	// is unconditional and targets operands[0] only.
	conditional bool

	// OpExtractValue/OpInsertValue: the aggregate field/element index.
	fieldIndex int

	// OpInstance: component.Inputs() length, i.e. the split point between
	// input and output operands that follow the component operand.
	numInputs int

	// Container membership.
	parentBlock *Block
	parentUnit  *Unit // set only for instructions owned directly by an Entity
	prev, next  *Inst
}

// Kind reports that this value is an instruction result.
func (i *Inst) Kind() ValueKind { return InstKind }

// Op returns the instruction's operation.
func (i *Inst) Op() InstOp { return i.op }

// BinaryOp returns the sub-operation of an OpBinary instruction.
func (i *Inst) BinaryOp() BinaryOp {
	mustOp(i, OpBinary)
	return BinaryOp(i.subOp)
}

// UnaryOp returns the sub-operation of an OpUnary instruction.
func (i *Inst) UnaryOp() UnaryOp {
	mustOp(i, OpUnary)
	return UnaryOp(i.subOp)
}

// CompareOp returns the sub-operation of an OpCompare instruction.
func (i *Inst) CompareOp() CompareOp {
	mustOp(i, OpCompare)
	return CompareOp(i.subOp)
}

func mustOp(i *Inst, want InstOp) {
	if i.op != want {
		panic("hdlsim: instruction accessor called on wrong Op")
	}
}

// NumOperands returns the number of operand Uses.
func (i *Inst) NumOperands() int { return len(i.operands) }

// Operand returns the value referenced by operand n.
func (i *Inst) Operand(n int) Value { return i.operands[n].Value() }

// SetOperand rewrites operand n in place: it unrefs the old value,
// unregisters its back-edge, then refs and registers v.
func (i *Inst) SetOperand(n int, v Value) { i.operands[n].retarget(v) }

// Block returns the block this instruction belongs to, or nil if it is
// owned directly by an Entity or is unlinked.
func (i *Inst) Block() *Block { return i.parentBlock }

// ParentUnit returns the Entity that owns this instruction directly (for
// entity-body instructions that are never inside a Block), or nil.
func (i *Inst) ParentUnit() *Unit { return i.parentUnit }

func newInst(t *types.Type, op InstOp, subOp uint8, operands []Value) *Inst {
	inst := &Inst{op: op, subOp: subOp}
	inst.base = newBase(t, "", inst.dispose)
	inst.operands = make([]*Use, len(operands))
	for idx, v := range operands {
		inst.operands[idx] = newUse(inst, idx, v)
	}
	return inst
}

// dispose is the instruction's disposal callback (spec.md §4.3, "Use
// management"): release the instruction's own operand Uses, dropping the
// back-edges they hold into the operands, and unref each operand.
func (i *Inst) dispose() {
	if i.parentBlock != nil || i.parentUnit != nil {
		panic("hdlsim: disposing an instruction that still has a parent")
	}
	for _, u := range i.operands {
		u.release()
	}
	i.operands = nil
}

// NewBinary builds a binary logic/arithmetic instruction. a and b must
// have the same type, which is also the result type.
func NewBinary(op BinaryOp, a, b Value) *Inst {
	if !types.Equal(a.Type(), b.Type()) {
		panic("hdlsim: NewBinary operand type mismatch")
	}
	return newInst(a.Type(), OpBinary, uint8(op), []Value{a, b})
}

// NewUnary builds a unary logic instruction over a.
func NewUnary(op UnaryOp, a Value) *Inst {
	return newInst(a.Type(), OpUnary, uint8(op), []Value{a})
}

// NewCompare builds a comparison instruction. a and b must have the same
// type; the result type is a one-bit Logic value.
func NewCompare(ctx *types.Context, op CompareOp, a, b Value) *Inst {
	if !types.Equal(a.Type(), b.Type()) {
		panic("hdlsim: NewCompare operand type mismatch")
	}
	return newInst(resultLogic1(ctx), OpCompare, uint8(op), []Value{a, b})
}

func resultLogic1(ctx *types.Context) *types.Type {
	if ctx != nil {
		return ctx.Logic(1)
	}
	return types.LogicType(1)
}

// NewBranch builds an unconditional branch to dst.
func NewBranch(dst *Block) *Inst {
	inst := newInst(types.VoidType(), OpBranch, 0, []Value{dst})
	inst.conditional = false
	return inst
}

// NewCondBranch builds a conditional branch: to ifTrue when cond is
// logical 1, to ifFalse otherwise.
func NewCondBranch(cond Value, ifTrue, ifFalse *Block) *Inst {
	inst := newInst(types.VoidType(), OpBranch, 0, []Value{cond, ifTrue, ifFalse})
	inst.conditional = true
	return inst
}

// IsConditional reports whether a branch instruction is conditional.
func (i *Inst) IsConditional() bool {
	mustOp(i, OpBranch)
	return i.conditional
}

// Cond returns the condition operand of a conditional branch.
func (i *Inst) Cond() Value {
	mustOp(i, OpBranch)
	if !i.conditional {
		panic("hdlsim: Cond called on an unconditional branch")
	}
	return i.operands[0].Value()
}

// Targets returns the branch's target blocks: one for an unconditional
// branch, two (ifTrue, ifFalse) for a conditional one.
func (i *Inst) Targets() []*Block {
	mustOp(i, OpBranch)
	if !i.conditional {
		return []*Block{i.operands[0].Value().(*Block)}
	}
	return []*Block{i.operands[1].Value().(*Block), i.operands[2].Value().(*Block)}
}

// NewSignal declares a named simulation signal of type t inside an Entity.
// init is the signal's initial value constant.
func NewSignal(t *types.Type, init Value) *Inst {
	if !types.Equal(t, init.Type()) {
		panic("hdlsim: NewSignal init type mismatch")
	}
	return newInst(t, OpSignal, 0, []Value{init})
}

// Init returns the initial-value operand of an OpSignal instruction.
func (i *Inst) Init() Value {
	mustOp(i, OpSignal)
	return i.operands[0].Value()
}

// NewDrive builds a drive instruction: a continuous assignment of value
// onto the signal referenced by sig. It is IR only: nothing in this
// module turns it into a sim.Comb. value and sig must have the same
// type.
func NewDrive(sig, value Value) *Inst {
	if !types.Equal(sig.Type(), value.Type()) {
		panic("hdlsim: NewDrive sig/value type mismatch")
	}
	return newInst(types.VoidType(), OpDrive, 0, []Value{sig, value})
}

// Signal returns the target signal operand of an OpDrive instruction.
func (i *Inst) Signal() Value {
	mustOp(i, OpDrive)
	return i.operands[0].Value()
}

// DriveValue returns the value operand of an OpDrive instruction.
func (i *Inst) DriveValue() Value {
	mustOp(i, OpDrive)
	return i.operands[1].Value()
}

// NewRet builds a return instruction. value may be nil for a Function
// returning void.
func NewRet(value Value) *Inst {
	if value == nil {
		return newInst(types.VoidType(), OpRet, 0, nil)
	}
	return newInst(types.VoidType(), OpRet, 0, []Value{value})
}

// RetValue returns the returned value, or nil for a void return.
func (i *Inst) RetValue() Value {
	mustOp(i, OpRet)
	if len(i.operands) == 0 {
		return nil
	}
	return i.operands[0].Value()
}

// NewCall builds a call to fn with the given arguments. fn's result type
// becomes the call's result type.
func NewCall(fn *Unit, args []Value) *Inst {
	if fn.kind != UnitFunction {
		panic("hdlsim: NewCall target is not a Function")
	}
	operands := make([]Value, 0, len(args)+1)
	operands = append(operands, fn)
	operands = append(operands, args...)
	return newInst(fn.resultType, OpCall, 0, operands)
}

// Callee returns the called Function.
func (i *Inst) Callee() *Unit {
	mustOp(i, OpCall)
	return i.operands[0].Value().(*Unit)
}

// Args returns the call's argument values.
func (i *Inst) Args() []Value {
	mustOp(i, OpCall)
	out := make([]Value, len(i.operands)-1)
	for n := 1; n < len(i.operands); n++ {
		out[n-1] = i.operands[n].Value()
	}
	return out
}

// NewInstance instantiates comp (an Entity or a Process) inside the
// enclosing Entity, wiring ins to comp's inputs and outs to comp's
// outputs, in order. len(ins) and len(outs) must match comp's signature.
func NewInstance(comp *Unit, ins, outs []Value) *Inst {
	if comp.kind != UnitEntity && comp.kind != UnitProcess {
		panic("hdlsim: NewInstance target must be an entity or a process")
	}
	if len(ins) != len(comp.inputs) || len(outs) != len(comp.outputs) {
		panic("hdlsim: NewInstance argument count mismatch")
	}
	operands := make([]Value, 0, 1+len(ins)+len(outs))
	operands = append(operands, comp)
	operands = append(operands, ins...)
	operands = append(operands, outs...)
	inst := newInst(types.VoidType(), OpInstance, 0, operands)
	inst.numInputs = len(ins)
	return inst
}

// Component returns the instantiated unit.
func (i *Inst) Component() *Unit {
	mustOp(i, OpInstance)
	return i.operands[0].Value().(*Unit)
}

// InstanceInputs returns the signals wired to the instance's inputs.
func (i *Inst) InstanceInputs() []Value {
	mustOp(i, OpInstance)
	out := make([]Value, i.numInputs)
	for n := 0; n < i.numInputs; n++ {
		out[n] = i.operands[1+n].Value()
	}
	return out
}

// InstanceOutputs returns the signals wired to the instance's outputs.
func (i *Inst) InstanceOutputs() []Value {
	mustOp(i, OpInstance)
	start := 1 + i.numInputs
	out := make([]Value, len(i.operands)-start)
	for n := start; n < len(i.operands); n++ {
		out[n-start] = i.operands[n].Value()
	}
	return out
}

// NewExtractValue extracts field index from an aggregate (Struct or
// Array) value agg.
func NewExtractValue(agg Value, index int) *Inst {
	t := agg.Type()
	var resultType *types.Type
	switch t.Kind() {
	case types.Struct:
		fs := t.Fields()
		if index < 0 || index >= len(fs) {
			panic("hdlsim: ExtractValue index out of range")
		}
		resultType = fs[index]
	case types.Array:
		if index < 0 || index >= t.Width() {
			panic("hdlsim: ExtractValue index out of range")
		}
		resultType = t.Elem()
	default:
		panic("hdlsim: ExtractValue on a non-aggregate type")
	}
	inst := newInst(resultType, OpExtractValue, 0, []Value{agg})
	inst.fieldIndex = index
	return inst
}

// NewInsertValue returns a copy of the aggregate agg with field index
// replaced by elem.
func NewInsertValue(agg Value, index int, elem Value) *Inst {
	t := agg.Type()
	switch t.Kind() {
	case types.Struct:
		fs := t.Fields()
		if index < 0 || index >= len(fs) {
			panic("hdlsim: InsertValue index out of range")
		}
		if !types.Equal(fs[index], elem.Type()) {
			panic("hdlsim: InsertValue element type mismatch")
		}
	case types.Array:
		if index < 0 || index >= t.Width() {
			panic("hdlsim: InsertValue index out of range")
		}
		if !types.Equal(t.Elem(), elem.Type()) {
			panic("hdlsim: InsertValue element type mismatch")
		}
	default:
		panic("hdlsim: InsertValue on a non-aggregate type")
	}
	inst := newInst(t, OpInsertValue, 0, []Value{agg, elem})
	inst.fieldIndex = index
	return inst
}

// FieldIndex returns the aggregate field/element index of an
// OpExtractValue or OpInsertValue instruction.
func (i *Inst) FieldIndex() int {
	if i.op != OpExtractValue && i.op != OpInsertValue {
		panic("hdlsim: FieldIndex called on neither ExtractValue nor InsertValue")
	}
	return i.fieldIndex
}

// Aggregate returns the aggregate operand of an ExtractValue/InsertValue
// instruction.
func (i *Inst) Aggregate() Value {
	if i.op != OpExtractValue && i.op != OpInsertValue {
		panic("hdlsim: Aggregate called on neither ExtractValue nor InsertValue")
	}
	return i.operands[0].Value()
}

// Elem returns the replacement-element operand of an InsertValue
// instruction.
func (i *Inst) Elem() Value {
	mustOp(i, OpInsertValue)
	return i.operands[1].Value()
}

// NewReg builds a clocked register: on each rising edge of clk it latches
// data and its result becomes the previously latched value. init is the
// reset/initial value.
func NewReg(clk, data, init Value) *Inst {
	if !types.Equal(data.Type(), init.Type()) {
		panic("hdlsim: NewReg data/init type mismatch")
	}
	return newInst(data.Type(), OpReg, 0, []Value{clk, data, init})
}

// Clock returns the clock operand of an OpReg instruction.
func (i *Inst) Clock() Value {
	mustOp(i, OpReg)
	return i.operands[0].Value()
}

// Data returns the data operand of an OpReg instruction.
func (i *Inst) Data() Value {
	mustOp(i, OpReg)
	return i.operands[1].Value()
}

// RegInit returns the reset-value operand of an OpReg instruction.
func (i *Inst) RegInit() Value {
	mustOp(i, OpReg)
	return i.operands[2].Value()
}
