// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/sim"
)

// register indices for the DFF program below.
const (
	dffClk = iota
	dffPrev
	dffNotPrev
	dffRising
	dffNotRising
	dffIn
	dffNew
	dffKeep
	dffOut
	dffNumRegs
)

// DFFProgram compiles a rising-edge data flip-flop into a sim.Program:
// whenever clk or in changes, out latches in at the instant clk makes a
// 0-to-1 transition and otherwise holds its previous value. The process
// VM has no conditional branch, so the edge select is computed
// arithmetically (out = (rising & in) | (!rising & out)) rather than
// with a data-dependent jump — the same trick DFFProcess relies on. in,
// out and clk must all be single-bit signals; wider registers are built
// bit-by-bit with DFFBus, the same way hwlib composes its single-bit
// parts into N-bit buses.
func DFFProgram(clk, in, out *sim.Signal) *sim.Program {
	if clk.Width() != 1 || in.Width() != 1 || out.Width() != 1 {
		panic("lib: DFFProgram requires single-bit clk, in and out signals")
	}
	width := in.Width()
	zero := bits.NewLogic(width, bits.Code0)
	zeroClk := bits.NewLogic(clk.Width(), bits.Code0)
	initRegs := make([]bits.Logic, dffNumRegs)
	initRegs[dffPrev] = zeroClk
	initRegs[dffOut] = zero.Clone()
	return &sim.Program{
		Consts:   []bits.Logic{bits.NewLogic(64, bits.Code0)},
		Inputs:   []*sim.Signal{clk, in},
		Outputs:  []*sim.Signal{out},
		NumRegs:  dffNumRegs,
		InitRegs: initRegs,
		Code: []sim.Instr{
			{Op: sim.OpWaitInputs},
			{Op: sim.Input, A: sim.RegAddr(dffClk), B: sim.Addr(0)},
			{Op: sim.UnaryLogic, SubOp: uint8(sim.VMNot), A: sim.RegAddr(dffNotPrev), B: sim.RegAddr(dffPrev)},
			{Op: sim.BinaryLogic, SubOp: uint8(sim.VMAnd), A: sim.RegAddr(dffRising), B: sim.RegAddr(dffClk), C: sim.RegAddr(dffNotPrev)},
			{Op: sim.UnaryLogic, SubOp: uint8(sim.VMNot), A: sim.RegAddr(dffNotRising), B: sim.RegAddr(dffRising)},
			{Op: sim.Input, A: sim.RegAddr(dffIn), B: sim.Addr(1)},
			{Op: sim.BinaryLogic, SubOp: uint8(sim.VMAnd), A: sim.RegAddr(dffNew), B: sim.RegAddr(dffRising), C: sim.RegAddr(dffIn)},
			{Op: sim.BinaryLogic, SubOp: uint8(sim.VMAnd), A: sim.RegAddr(dffKeep), B: sim.RegAddr(dffNotRising), C: sim.RegAddr(dffOut)},
			{Op: sim.BinaryLogic, SubOp: uint8(sim.VMOr), A: sim.RegAddr(dffOut), B: sim.RegAddr(dffNew), C: sim.RegAddr(dffKeep)},
			{Op: sim.Output, A: sim.RegAddr(dffOut), B: sim.Addr(0), C: sim.ConstAddr(0)},
			{Op: sim.Move, A: sim.RegAddr(dffPrev), B: sim.RegAddr(dffClk)},
		},
	}
}

// DFFProcess returns a running process implementing DFFProgram. Each
// time it blocks in WaitInputs the kernel adds it to the waiters of clk
// and in, so it wakes on either signal's change; a Kernel.RegisterInput
// call for those signals is optional.
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the clock cycle bounded by clk's rising edges.
func DFFProcess(name string, clk, in, out *sim.Signal) *sim.Process {
	return sim.NewProcess(name, DFFProgram(clk, in, out))
}

// DFFBus returns one DFFProcess per bit of in/out, all clocked by the
// same clk signal — the sim-level equivalent of composing an N-bit
// register out of N single-bit DFFs the way hwlib's bus() helper wires
// up its N-bits parts. in, out and clk must all have matching bit-bus
// lengths (clk may be a single shared signal repeated, or one clock per
// bit for independently-clocked lanes).
func DFFBus(name string, clk []*sim.Signal, in, out []*sim.Signal) []*sim.Process {
	if len(in) != len(out) || len(clk) != len(in) {
		panic("lib: DFFBus requires clk, in and out of equal length")
	}
	procs := make([]*sim.Process, len(in))
	for i := range in {
		procs[i] = DFFProcess(name, clk[i], in[i], out[i])
	}
	return procs
}
