// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/sim"
)

// MuxComb wires a runtime multiplexer: out follows b while lane 0 of sel
// is '1' and a for any other code there (including X, U, Z and H),
// re-evaluating whenever any of the three inputs changes (the sim.Comb
// counterpart of hwlib's mux PartSpec).
//
//	Function: if sel[0] == '1' { out = b } else { out = a }
func MuxComb(sel, a, b, out *sim.Signal) *sim.Comb {
	return &sim.Comb{
		Name:        "MUX",
		Sensitivity: []*sim.Signal{sel, a, b},
		Target:      out,
		Eval: func() bits.Logic {
			if sel.Value().Get(0) == bits.Code1 {
				return b.Value()
			}
			return a.Value()
		},
	}
}

// DMuxComb wires a runtime demultiplexer: outB carries in and outA is
// held low while lane 0 of sel is '1'; for any other code there, outA
// carries in and outB is held low. It is returned as two independent
// Combs, one per output, since a sim.Comb only ever drives a single
// target signal.
//
//	Function: if sel[0] == '1' { a = 0; b = in } else { a = in; b = 0 }
func DMuxComb(sel, in, outA, outB *sim.Signal) [2]*sim.Comb {
	low := bits.NewLogic(in.Width(), bits.Code0)
	return [2]*sim.Comb{
		{
			Name:        "DMUX.a",
			Sensitivity: []*sim.Signal{sel, in},
			Target:      outA,
			Eval: func() bits.Logic {
				if sel.Value().Get(0) == bits.Code1 {
					return low
				}
				return in.Value()
			},
		},
		{
			Name:        "DMUX.b",
			Sensitivity: []*sim.Signal{sel, in},
			Target:      outB,
			Eval: func() bits.Logic {
				if sel.Value().Get(0) == bits.Code1 {
					return in.Value()
				}
				return low
			},
		},
	}
}
