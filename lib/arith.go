// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/sim"
)

// AdderComb wires a runtime N-bits adder: sum and carry are recomputed
// from a and b via unsigned addition every time either input changes,
// the sim.Comb counterpart of hwlib's AdderN. sum has the width of a
// and b; carry is a single bit. bits.Add wraps modulo 2^width rather
// than widening, so the sum is computed one bit wider than the operands
// to recover the carry out, which limits this adder to operand widths
// of 63 bits or less (Unsigned.Uint64 only exposes the low 64 bits).
//
//	Function: sum = lsbs(a + b), carry = msb(a + b)
func AdderComb(a, b, sum, carry *sim.Signal) [2]*sim.Comb {
	width := a.Width()
	widened := func() bits.Logic {
		ua := bits.UnsignedFromLogic(a.Value())
		ub := bits.UnsignedFromLogic(b.Value())
		uaExt := bits.UnsignedFromUint64(width+1, ua.Uint64())
		ubExt := bits.UnsignedFromUint64(width+1, ub.Uint64())
		return bits.Add(uaExt, ubExt).ToLogic()
	}
	return [2]*sim.Comb{
		{
			Name:        "ADDER.sum",
			Sensitivity: []*sim.Signal{a, b},
			Target:      sum,
			Eval: func() bits.Logic {
				l := widened()
				r := bits.NewLogic(width, bits.Code0)
				for i := 0; i < width; i++ {
					r.Set(i, l.Get(i))
				}
				return r
			},
		},
		{
			Name:        "ADDER.carry",
			Sensitivity: []*sim.Signal{a, b},
			Target:      carry,
			Eval: func() bits.Logic {
				return bits.NewLogic(1, widened().Get(width))
			},
		},
	}
}
