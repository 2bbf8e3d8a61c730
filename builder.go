package hdlsim

import (
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/types"
	"github.com/pkg/errors"
)

// EntityBuilder assembles an Entity's body from named signals and
// instances, the same way the teacher's Chip function assembles a part
// from named pins: every wire is identified by name, connection mistakes
// (duplicate names, unknown names, type mismatches) are caught and
// reported through an accumulated error rather than a panic, and the
// finished graph is handed back only once the whole thing type-checks.
type EntityBuilder struct {
	unit *Unit
	vals map[string]Value
	err  error
}

// NewEntityBuilder starts building an entity named name with the given
// input and output signature.
func NewEntityBuilder(name string, ins, outs []ParamSpec) *EntityBuilder {
	u := NewEntity(name, ins, outs)
	b := &EntityBuilder{unit: u, vals: make(map[string]Value)}
	for _, p := range u.inputs {
		b.vals[p.Name()] = p
	}
	for _, p := range u.outputs {
		b.vals[p.Name()] = p
	}
	return b
}

func (b *EntityBuilder) fail(err error) { b.err = errors.Wrap(err, b.unit.Name()) }

// Signal declares a new signal named name, of type t, initialized to
// init, and makes it available by name to later Gate/Compare/Reg/Drive/
// Not/Instance calls.
func (b *EntityBuilder) Signal(name string, t *types.Type, init Value) *EntityBuilder {
	if b.err != nil {
		return b
	}
	if _, dup := b.vals[name]; dup {
		b.fail(errors.Errorf("signal %q redeclared", name))
		return b
	}
	s := NewSignal(t, init)
	s.SetName(name)
	b.unit.AppendInst(s)
	b.vals[name] = s
	return b
}

// ConstInt binds name to an integer constant of width bits holding v.
func (b *EntityBuilder) ConstInt(name string, width int, v uint64) *EntityBuilder {
	if b.err != nil {
		return b
	}
	c := NewConstInt(types.IntType(width), bits.UnsignedFromUint64(width, v))
	b.vals[name] = c
	return b
}

// ConstLogic binds name to a logic constant holding the literal l (e.g.
// "10XZ", lane 0 rightmost, per bits.ParseLogic).
func (b *EntityBuilder) ConstLogic(name, l string) *EntityBuilder {
	if b.err != nil {
		return b
	}
	lv := bits.ParseLogic(l)
	c := NewConstLogic(types.LogicType(lv.Width()), lv)
	b.vals[name] = c
	return b
}

// resolve looks up a value bound by name, failing the build if it is
// unknown.
func (b *EntityBuilder) resolve(name string) Value {
	v, ok := b.vals[name]
	if !ok {
		b.fail(errors.Errorf("undefined signal %q", name))
		return nil
	}
	return v
}

// Gate appends a binary logic/arithmetic instruction over the named
// operands and binds its result to result.
func (b *EntityBuilder) Gate(result string, op BinaryOp, a, c string) *EntityBuilder {
	if b.err != nil {
		return b
	}
	av, cv := b.resolve(a), b.resolve(c)
	if b.err != nil {
		return b
	}
	inst := NewBinary(op, av, cv)
	inst.SetName(result)
	b.unit.AppendInst(inst)
	b.vals[result] = inst
	return b
}

// Compare appends a comparison instruction over the named operands and
// binds its one-bit logic result to result.
func (b *EntityBuilder) Compare(result string, op CompareOp, a, c string) *EntityBuilder {
	if b.err != nil {
		return b
	}
	av, cv := b.resolve(a), b.resolve(c)
	if b.err != nil {
		return b
	}
	inst := NewCompare(nil, op, av, cv)
	inst.SetName(result)
	b.unit.AppendInst(inst)
	b.vals[result] = inst
	return b
}

// Reg appends a clocked register over the named clock, data and init
// operands and binds its result (the previously latched value) to
// result.
func (b *EntityBuilder) Reg(result, clk, data, init string) *EntityBuilder {
	if b.err != nil {
		return b
	}
	clkV, dataV, initV := b.resolve(clk), b.resolve(data), b.resolve(init)
	if b.err != nil {
		return b
	}
	inst := NewReg(clkV, dataV, initV)
	inst.SetName(result)
	b.unit.AppendInst(inst)
	b.vals[result] = inst
	return b
}

// Drive appends a continuous-assignment instruction wiring the named
// value onto the named signal. Unlike Gate/Compare/Reg it binds no
// result: sig must already be a declared Signal, and Drive is how an
// entity says "sig always reads as value" rather than naming a new
// intermediate.
func (b *EntityBuilder) Drive(sig, value string) *EntityBuilder {
	if b.err != nil {
		return b
	}
	sigV, valueV := b.resolve(sig), b.resolve(value)
	if b.err != nil {
		return b
	}
	inst := NewDrive(sigV, valueV)
	b.unit.AppendInst(inst)
	return b
}

// Not appends a unary-not instruction over a and binds its result to
// result.
func (b *EntityBuilder) Not(result, a string) *EntityBuilder {
	if b.err != nil {
		return b
	}
	av := b.resolve(a)
	if b.err != nil {
		return b
	}
	inst := NewUnary(UnaryNot, av)
	inst.SetName(result)
	b.unit.AppendInst(inst)
	b.vals[result] = inst
	return b
}

// Instance wires comp into the entity being built: ins and outs name the
// already-bound signals to connect to comp's inputs and outputs, in
// order.
func (b *EntityBuilder) Instance(comp *Unit, ins, outs []string) *EntityBuilder {
	if b.err != nil {
		return b
	}
	if len(ins) != len(comp.inputs) {
		b.fail(errors.Errorf("instance of %s: got %d inputs, want %d", comp.Name(), len(ins), len(comp.inputs)))
		return b
	}
	if len(outs) != len(comp.outputs) {
		b.fail(errors.Errorf("instance of %s: got %d outputs, want %d", comp.Name(), len(outs), len(comp.outputs)))
		return b
	}
	inVals := make([]Value, len(ins))
	for i, n := range ins {
		inVals[i] = b.resolve(n)
	}
	outVals := make([]Value, len(outs))
	for i, n := range outs {
		outVals[i] = b.resolve(n)
	}
	if b.err != nil {
		return b
	}
	for i, v := range inVals {
		if !types.Equal(v.Type(), comp.inputs[i].Type()) {
			b.fail(errors.Errorf("instance of %s: input %d type mismatch", comp.Name(), i))
			return b
		}
	}
	for i, v := range outVals {
		if !types.Equal(v.Type(), comp.outputs[i].Type()) {
			b.fail(errors.Errorf("instance of %s: output %d type mismatch", comp.Name(), i))
			return b
		}
	}
	inst := NewInstance(comp, inVals, outVals)
	b.unit.AppendInst(inst)
	return b
}

// Build finishes construction and returns the assembled entity, or the
// first error encountered while building it.
func (b *EntityBuilder) Build() (*Unit, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.unit, nil
}
