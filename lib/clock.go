// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/sim"
)

// ClockProgram compiles a free-running clock generator into a
// sim.Program: clk inverts itself every halfPeriodPS picoseconds,
// forever, the reusable form of the toggle-and-WaitTime loop every
// testbench needs to drive a register under test (spec.md §8 scenario
// S1), the same role the teacher's Circuit.Tick/Tock pair plays when
// called directly from a test loop rather than compiled into the
// circuit itself.
func ClockProgram(clk *sim.Signal, halfPeriodPS int64) *sim.Program {
	if clk.Width() != 1 {
		panic("lib: ClockProgram requires a single-bit clk signal")
	}
	return &sim.Program{
		Consts: []bits.Logic{
			bits.UnsignedFromUint64(64, uint64(halfPeriodPS)).ToLogic(),
			bits.UnsignedFromUint64(64, 0).ToLogic(),
		},
		Inputs:  []*sim.Signal{clk},
		Outputs: []*sim.Signal{clk},
		NumRegs: 1,
		Code: []sim.Instr{
			{Op: sim.Input, A: sim.RegAddr(0), B: sim.Addr(0)},
			{Op: sim.UnaryLogic, SubOp: uint8(sim.VMNot), A: sim.RegAddr(0), B: sim.RegAddr(0)},
			{Op: sim.Output, A: sim.RegAddr(0), B: sim.Addr(0), C: sim.ConstAddr(1)},
			{Op: sim.OpWaitTime, B: sim.ConstAddr(0)},
		},
	}
}

// ClockProcess returns a running process implementing ClockProgram.
//
//	Outputs: clk
//	Function: clk toggles every halfPeriodPS picoseconds, starting from clk's current value.
func ClockProcess(name string, clk *sim.Signal, halfPeriodPS int64) *sim.Process {
	return sim.NewProcess(name, ClockProgram(clk, halfPeriodPS))
}
