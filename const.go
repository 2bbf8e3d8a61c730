package hdlsim

import (
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/types"
)

// ConstPayload distinguishes the payload carried by a Const value.
type ConstPayload uint8

const (
	// ConstInt holds an arbitrary-width unsigned magnitude.
	ConstInt ConstPayload = iota
	// ConstLogic holds a nine-valued logic vector.
	ConstLogic
	// ConstNull holds the single null value of a pointer or component type.
	ConstNull
)

// Const is a constant IR value: an integer, a logic vector or a typed null
// (spec.md §3, "Constants").
type Const struct {
	base
	payload ConstPayload
	i       bits.Unsigned
	l       bits.Logic
}

// Kind reports that this value is a constant.
func (c *Const) Kind() ValueKind { return ConstKind }

// Payload reports which kind of constant this is (integer, logic or null).
func (c *Const) Payload() ConstPayload { return c.payload }

// Int returns the integer magnitude of an integer constant. It panics if c
// is not a ConstInt.
func (c *Const) Int() bits.Unsigned {
	if c.payload != ConstInt {
		panic("hdlsim: Const.Int on a non-integer constant")
	}
	return c.i
}

// Logic returns the logic vector of a logic constant. It panics if c is
// not a ConstLogic.
func (c *Const) Logic() bits.Logic {
	if c.payload != ConstLogic {
		panic("hdlsim: Const.Logic on a non-logic constant")
	}
	return c.l
}

// NewConstInt returns a new, unowned integer constant of type t (which
// must be an Int type of the same width as v).
func NewConstInt(t *types.Type, v bits.Unsigned) *Const {
	if t.Kind() != types.Int || t.Width() != v.Width() {
		panic("hdlsim: NewConstInt type/width mismatch")
	}
	c := &Const{payload: ConstInt, i: v}
	c.base = newBase(t, "", nil)
	return c
}

// NewConstLogic returns a new, unowned logic constant of type t (which
// must be a Logic type of the same width as v).
func NewConstLogic(t *types.Type, v bits.Logic) *Const {
	if t.Kind() != types.Logic || t.Width() != v.Width() {
		panic("hdlsim: NewConstLogic type/width mismatch")
	}
	c := &Const{payload: ConstLogic, l: v}
	c.base = newBase(t, "", nil)
	return c
}

// NewConstNull returns the null/zero constant of type t. For Pointer and
// Component types this is the usual null reference; for every other type
// (including Struct and Array) it is a generic placeholder zero value,
// useful as the base aggregate fed into a chain of InsertValue
// instructions that build up a struct or array one field at a time.
func NewConstNull(t *types.Type) *Const {
	c := &Const{payload: ConstNull}
	c.base = newBase(t, "", nil)
	return c
}
