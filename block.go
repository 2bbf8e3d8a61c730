package hdlsim

import "github.com/db47h/hdlsim/types"

// Block is a basic block: an ordered, owned list of instructions ending in
// a terminator (a Branch or a Ret), belonging to exactly one Process or
// Function (spec.md §3, "Basic blocks"). A Block is itself a Value of
// Label type so it can be referenced as a branch target.
type Block struct {
	base
	instHead, instTail *Inst
	owner              *Unit
	prev, next         *Block
}

// Kind reports that this value is a basic block.
func (b *Block) Kind() ValueKind { return BlockKind }

// NewBlock returns a new, unowned block with the given name.
func NewBlock(name string) *Block {
	blk := &Block{}
	blk.base = newBase(types.LabelType(), name, blk.dispose)
	return blk
}

func (b *Block) dispose() {
	if b.owner != nil {
		panic("hdlsim: disposing a block that still has an owner")
	}
	for i := b.instHead; i != nil; {
		next := i.next
		i.prev, i.next = nil, nil
		i.parentBlock = nil
		Unref(i)
		i = next
	}
	b.instHead, b.instTail = nil, nil
}

// Owner returns the Process or Function this block belongs to, or nil.
func (b *Block) Owner() *Unit { return b.owner }

// FirstInst returns the block's first instruction, or nil if empty.
func (b *Block) FirstInst() *Inst { return b.instHead }

// LastInst returns the block's last instruction, or nil if empty.
func (b *Block) LastInst() *Inst { return b.instTail }

// Terminator returns the block's terminator instruction (its last
// instruction, which must be an OpBranch or OpRet), or nil if the block is
// empty or not yet terminated.
func (b *Block) Terminator() *Inst {
	last := b.instTail
	if last == nil {
		return nil
	}
	if last.op != OpBranch && last.op != OpRet {
		return nil
	}
	return last
}

// Insts returns a snapshot slice of the block's instructions in order.
func (b *Block) Insts() []*Inst {
	var out []*Inst
	for i := b.instHead; i != nil; i = i.next {
		out = append(out, i)
	}
	return out
}

// AppendInst appends inst to the end of the block, taking ownership of it
// (refs it and sets its parent). inst must not already have a parent.
func (b *Block) AppendInst(inst *Inst) {
	linkInst(inst)
	inst.parentBlock = b
	Ref(inst)
	inst.prev = b.instTail
	inst.next = nil
	if b.instTail != nil {
		b.instTail.next = inst
	} else {
		b.instHead = inst
	}
	b.instTail = inst
}

// PrependInst inserts inst at the start of the block.
func (b *Block) PrependInst(inst *Inst) {
	linkInst(inst)
	inst.parentBlock = b
	Ref(inst)
	inst.next = b.instHead
	inst.prev = nil
	if b.instHead != nil {
		b.instHead.prev = inst
	} else {
		b.instTail = inst
	}
	b.instHead = inst
}

// InsertInstBefore inserts inst immediately before mark, which must
// already belong to b.
func (b *Block) InsertInstBefore(mark, inst *Inst) {
	if mark.parentBlock != b {
		panic("hdlsim: InsertInstBefore: mark is not in this block")
	}
	linkInst(inst)
	inst.parentBlock = b
	Ref(inst)
	inst.prev = mark.prev
	inst.next = mark
	if mark.prev != nil {
		mark.prev.next = inst
	} else {
		b.instHead = inst
	}
	mark.prev = inst
}

func linkInst(inst *Inst) {
	if inst.parentBlock != nil || inst.parentUnit != nil {
		panic("hdlsim: instruction already has a parent")
	}
}

// RemoveInst detaches inst from the block's instruction list and unrefs
// the parent's ownership reference. It does not touch inst's own operand
// Uses; if that unref drops inst's reference count to zero, disposal
// releases them (spec.md §4.3, "Use management").
func (b *Block) RemoveInst(inst *Inst) {
	if inst.parentBlock != b {
		panic("hdlsim: RemoveInst: instruction not owned by this block")
	}
	if inst.prev != nil {
		inst.prev.next = inst.next
	} else {
		b.instHead = inst.next
	}
	if inst.next != nil {
		inst.next.prev = inst.prev
	} else {
		b.instTail = inst.prev
	}
	inst.prev, inst.next = nil, nil
	inst.parentBlock = nil
	Unref(inst)
}
