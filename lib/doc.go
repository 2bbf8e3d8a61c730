// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lib provides a library of reusable parts, adapted from
// hwlib's boolean gate/DFF/mux/adder set to this module's nine-valued
// logic and event-driven simulation model. A part comes in one or both
// of two forms: a structural Entity built with hdlsim.EntityBuilder (for
// composing into a larger IR graph and printing), and a runtime
// constructor that wires the function directly onto live sim.Signal
// values (a sim.Comb for combinational parts, a sim.Process for clocked
// ones) — the direct counterpart of hwlib's PartSpec.Mount closures over
// a Socket, now over a Signal. The gates have both forms; the mux,
// demux, adder, DFF and clock have only the runtime form, and
// RegisterEntity only the Entity form.
package lib
