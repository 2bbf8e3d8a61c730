// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	hdlsim "github.com/db47h/hdlsim"
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/sim"
	"github.com/db47h/hdlsim/types"
)

// BufferGate returns a width-bits entity that continuously drives out
// with in, unchanged — the degenerate gate every wiring diagram needs
// somewhere to fan a signal out to a name without also inverting or
// combining it.
//
//	Inputs: in[width]
//	Outputs: out[width]
//	Function: out = in
func BufferGate(width int) (*hdlsim.Unit, error) {
	lt := types.LogicType(width)
	return hdlsim.NewEntityBuilder("BUF", []hdlsim.ParamSpec{
		{Name: "in", Type: lt},
	}, []hdlsim.ParamSpec{
		{Name: "out", Type: lt},
	}).
		Drive("out", "in").
		Build()
}

// NotGate returns a width-bits NOT entity.
//
//	Inputs: in[width]
//	Outputs: out[width]
//	Function: out = !in
func NotGate(width int) (*hdlsim.Unit, error) {
	lt := types.LogicType(width)
	return hdlsim.NewEntityBuilder("NOT", []hdlsim.ParamSpec{
		{Name: "in", Type: lt},
	}, []hdlsim.ParamSpec{
		{Name: "out", Type: lt},
	}).
		Not("out", "in").
		Build()
}

func newGateEntity(name string, width int, op hdlsim.BinaryOp) (*hdlsim.Unit, error) {
	lt := types.LogicType(width)
	return hdlsim.NewEntityBuilder(name, []hdlsim.ParamSpec{
		{Name: "a", Type: lt},
		{Name: "b", Type: lt},
	}, []hdlsim.ParamSpec{
		{Name: "out", Type: lt},
	}).
		Gate("out", op, "a", "b").
		Build()
}

// AndGate returns a width-bits AND entity (out = a & b).
func AndGate(width int) (*hdlsim.Unit, error) { return newGateEntity("AND", width, hdlsim.BinAnd) }

// OrGate returns a width-bits OR entity (out = a | b).
func OrGate(width int) (*hdlsim.Unit, error) { return newGateEntity("OR", width, hdlsim.BinOr) }

// XorGate returns a width-bits XOR entity (out = a ^ b).
func XorGate(width int) (*hdlsim.Unit, error) { return newGateEntity("XOR", width, hdlsim.BinXor) }

func newInvertedGateEntity(name string, width int, op hdlsim.BinaryOp) (*hdlsim.Unit, error) {
	lt := types.LogicType(width)
	return hdlsim.NewEntityBuilder(name, []hdlsim.ParamSpec{
		{Name: "a", Type: lt},
		{Name: "b", Type: lt},
	}, []hdlsim.ParamSpec{
		{Name: "out", Type: lt},
	}).
		Gate("w", op, "a", "b").
		Not("out", "w").
		Build()
}

// NandGate returns a width-bits NAND entity (out = !(a & b)).
func NandGate(width int) (*hdlsim.Unit, error) {
	return newInvertedGateEntity("NAND", width, hdlsim.BinAnd)
}

// NorGate returns a width-bits NOR entity (out = !(a | b)).
func NorGate(width int) (*hdlsim.Unit, error) {
	return newInvertedGateEntity("NOR", width, hdlsim.BinOr)
}

// XnorGate returns a width-bits XNOR entity (out = !(a ^ b)).
func XnorGate(width int) (*hdlsim.Unit, error) {
	return newInvertedGateEntity("XNOR", width, hdlsim.BinXor)
}

// BufComb wires a runtime buffer driver, the sim.Comb counterpart of
// BufferGate's OpDrive.
func BufComb(in, out *sim.Signal) *sim.Comb {
	return &sim.Comb{
		Name:        "BUF",
		Sensitivity: []*sim.Signal{in},
		Target:      out,
		Eval:        func() bits.Logic { return in.Value() },
	}
}

// NotComb wires a runtime NOT driver: out is recomputed from in every
// time in changes, the sim.Comb counterpart of NotGate and of hwlib's
// notGate.Mount closure.
func NotComb(name string, in, out *sim.Signal) *sim.Comb {
	return &sim.Comb{
		Name:        name,
		Sensitivity: []*sim.Signal{in},
		Target:      out,
		Eval:        func() bits.Logic { return bits.LogicNot(in.Value()) },
	}
}

// GateComb wires a runtime two-input driver: out is recomputed from a
// and b via fn every time either changes.
func GateComb(name string, fn func(a, b bits.Logic) bits.Logic, a, b, out *sim.Signal) *sim.Comb {
	return &sim.Comb{
		Name:        name,
		Sensitivity: []*sim.Signal{a, b},
		Target:      out,
		Eval:        func() bits.Logic { return fn(a.Value(), b.Value()) },
	}
}

func invert(fn func(a, b bits.Logic) bits.Logic) func(a, b bits.Logic) bits.Logic {
	return func(a, b bits.Logic) bits.Logic { return bits.LogicNot(fn(a, b)) }
}

// AndComb wires a runtime AND driver.
func AndComb(a, b, out *sim.Signal) *sim.Comb { return GateComb("AND", bits.LogicAnd, a, b, out) }

// NandComb wires a runtime NAND driver.
func NandComb(a, b, out *sim.Signal) *sim.Comb {
	return GateComb("NAND", invert(bits.LogicAnd), a, b, out)
}

// OrComb wires a runtime OR driver.
func OrComb(a, b, out *sim.Signal) *sim.Comb { return GateComb("OR", bits.LogicOr, a, b, out) }

// NorComb wires a runtime NOR driver.
func NorComb(a, b, out *sim.Signal) *sim.Comb {
	return GateComb("NOR", invert(bits.LogicOr), a, b, out)
}

// XorComb wires a runtime XOR driver.
func XorComb(a, b, out *sim.Signal) *sim.Comb { return GateComb("XOR", bits.LogicXor, a, b, out) }

// XnorComb wires a runtime XNOR driver.
func XnorComb(a, b, out *sim.Signal) *sim.Comb {
	return GateComb("XNOR", invert(bits.LogicXor), a, b, out)
}
