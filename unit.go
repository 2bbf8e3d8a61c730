package hdlsim

import "github.com/db47h/hdlsim/types"

// UnitKindTag distinguishes the three kinds of units.
type UnitKindTag uint8

const (
	// UnitEntity is a structural, declarative unit: it owns an unordered
	// list of instructions (signals, instances, combinational logic) with
	// no control flow.
	UnitEntity UnitKindTag = iota
	// UnitProcess is a behavioral unit: it owns an ordered list of Blocks
	// executed by the process VM, driven by a simulation kernel.
	UnitProcess
	// UnitFunction is a pure, non-simulation unit: it owns an ordered list
	// of Blocks and returns a value, callable from a Process or another
	// Function via OpCall.
	UnitFunction
)

func (k UnitKindTag) String() string {
	switch k {
	case UnitEntity:
		return "entity"
	case UnitProcess:
		return "process"
	case UnitFunction:
		return "function"
	default:
		return "?"
	}
}

// Unit is an Entity, a Process or a Function (spec.md §3, "Unit"). A Unit
// is itself a Value (so it can be instantiated as an operand of
// OpInstance or called via OpCall) and owns its parameters and body.
type Unit struct {
	base
	kind UnitKindTag

	inputs  []*Param
	outputs []*Param

	// resultType is the return type of a Function (Void for one that
	// returns nothing); unused for Entity/Process.
	resultType *types.Type

	// Entity body: unordered instruction list, same linkage shape as
	// Block's but rooted directly in the unit.
	instHead, instTail *Inst

	// Process/Function body: ordered list of blocks. The first block, if
	// any, is the entry block.
	blockHead, blockTail *Block
}

// Kind reports that this value is a unit.
func (u *Unit) Kind() ValueKind { return UnitKind }

// UnitKind reports which of Entity, Process or Function u is.
func (u *Unit) UnitKind() UnitKindTag { return u.kind }

// NewEntity returns a new, empty Entity unit with the given input and
// output parameter names and types.
func NewEntity(name string, ins, outs []ParamSpec) *Unit {
	u := newUnit(name, UnitEntity, ins, outs)
	u.base = newBase(componentType(ins, outs), name, u.dispose)
	u.bindParams(ins, outs)
	return u
}

// NewProcess returns a new, empty Process unit.
func NewProcess(name string, ins, outs []ParamSpec) *Unit {
	u := newUnit(name, UnitProcess, ins, outs)
	u.base = newBase(componentType(ins, outs), name, u.dispose)
	u.bindParams(ins, outs)
	return u
}

// NewFunction returns a new, empty Function unit returning values of type
// resultType (use types.VoidType() for a function with no return value).
func NewFunction(name string, ins []ParamSpec, resultType *types.Type) *Unit {
	u := newUnit(name, UnitFunction, ins, nil)
	u.resultType = resultType
	u.base = newBase(componentType(ins, nil), name, u.dispose)
	u.bindParams(ins, nil)
	return u
}

// ParamSpec describes a parameter to be created by NewEntity/NewProcess/
// NewFunction: a name and a type. (Named ParamSpec rather than Param to keep
// the constructor-argument DTO distinct from the *Param graph node it
// produces.)
type ParamSpec struct {
	Name string
	Type *types.Type
}

func newUnit(_ string, kind UnitKindTag, _, _ []ParamSpec) *Unit {
	return &Unit{kind: kind}
}

func componentType(ins, outs []ParamSpec) *types.Type {
	is := make([]*types.Type, len(ins))
	for i, p := range ins {
		is[i] = p.Type
	}
	os := make([]*types.Type, len(outs))
	for i, p := range outs {
		os[i] = p.Type
	}
	return types.ComponentType(is, os)
}

func (u *Unit) bindParams(ins, outs []ParamSpec) {
	u.inputs = make([]*Param, len(ins))
	for i, p := range ins {
		u.inputs[i] = newParam(u, p.Type, p.Name, ParamIn, i)
	}
	u.outputs = make([]*Param, len(outs))
	for i, p := range outs {
		u.outputs[i] = newParam(u, p.Type, p.Name, ParamOut, i)
	}
}

func (u *Unit) dispose() {
	for _, p := range u.inputs {
		Unref(p)
	}
	for _, p := range u.outputs {
		Unref(p)
	}
	for i := u.instHead; i != nil; {
		next := i.next
		i.prev, i.next = nil, nil
		i.parentUnit = nil
		Unref(i)
		i = next
	}
	u.instHead, u.instTail = nil, nil
	for b := u.blockHead; b != nil; {
		next := b.next
		b.prev, b.next = nil, nil
		b.owner = nil
		Unref(b)
		b = next
	}
	u.blockHead, u.blockTail = nil, nil
}

// Inputs returns the unit's input parameters, in order.
func (u *Unit) Inputs() []*Param { return u.inputs }

// Outputs returns the unit's output parameters, in order.
func (u *Unit) Outputs() []*Param { return u.outputs }

// ResultType returns a Function's return type. It panics for a
// non-Function unit.
func (u *Unit) ResultType() *types.Type {
	if u.kind != UnitFunction {
		panic("hdlsim: ResultType called on a non-function unit")
	}
	return u.resultType
}

// AppendInst appends inst to an Entity's body instruction list. It panics
// if u is not an Entity.
func (u *Unit) AppendInst(inst *Inst) {
	if u.kind != UnitEntity {
		panic("hdlsim: AppendInst called on a non-entity unit")
	}
	linkInst(inst)
	inst.parentUnit = u
	Ref(inst)
	inst.prev = u.instTail
	inst.next = nil
	if u.instTail != nil {
		u.instTail.next = inst
	} else {
		u.instHead = inst
	}
	u.instTail = inst
}

// RemoveInst detaches inst from an Entity's body instruction list.
func (u *Unit) RemoveInst(inst *Inst) {
	if inst.parentUnit != u {
		panic("hdlsim: RemoveInst: instruction not owned by this unit")
	}
	if inst.prev != nil {
		inst.prev.next = inst.next
	} else {
		u.instHead = inst.next
	}
	if inst.next != nil {
		inst.next.prev = inst.prev
	} else {
		u.instTail = inst.prev
	}
	inst.prev, inst.next = nil, nil
	inst.parentUnit = nil
	Unref(inst)
}

// Insts returns a snapshot slice of an Entity's body instructions.
func (u *Unit) Insts() []*Inst {
	var out []*Inst
	for i := u.instHead; i != nil; i = i.next {
		out = append(out, i)
	}
	return out
}

// AppendBlock appends blk to a Process or Function's ordered block list.
// The first appended block becomes the entry block.
func (u *Unit) AppendBlock(blk *Block) {
	if u.kind == UnitEntity {
		panic("hdlsim: AppendBlock called on an entity unit")
	}
	if blk.owner != nil {
		panic("hdlsim: block already has an owner")
	}
	blk.owner = u
	Ref(blk)
	blk.prev = u.blockTail
	blk.next = nil
	if u.blockTail != nil {
		u.blockTail.next = blk
	} else {
		u.blockHead = blk
	}
	u.blockTail = blk
}

// RemoveBlock detaches blk from its owner's block list.
func (u *Unit) RemoveBlock(blk *Block) {
	if blk.owner != u {
		panic("hdlsim: RemoveBlock: block not owned by this unit")
	}
	if blk.prev != nil {
		blk.prev.next = blk.next
	} else {
		u.blockHead = blk.next
	}
	if blk.next != nil {
		blk.next.prev = blk.prev
	} else {
		u.blockTail = blk.prev
	}
	blk.prev, blk.next = nil, nil
	blk.owner = nil
	Unref(blk)
}

// Blocks returns a snapshot slice of the unit's blocks, in order.
func (u *Unit) Blocks() []*Block {
	var out []*Block
	for b := u.blockHead; b != nil; b = b.next {
		out = append(out, b)
	}
	return out
}

// Entry returns the unit's entry block (its first block), or nil if it
// has none yet.
func (u *Unit) Entry() *Block { return u.blockHead }
