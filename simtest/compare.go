// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest

import (
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/sim"
)

// ComparePair drives two independent wirings of the same logical part
// with identical input vectors and fails the test at the first output
// mismatch. It is the sim.Kernel-driven analogue of hwtest.ComparePart:
// where that helper ticks a shared hwsim.Circuit and compares two
// boolean pins per trial, this one steps two independent sim.Kernels to
// quiescence and compares sim.Signal values after each vector, so it
// works across kernels built from entirely different Comb/Process
// wirings as long as their input and output signal lists line up
// positionally.
//
// Both wirings are driven all-Code0, then all-Code1, then trials random
// vectors, exactly mirroring hwtest.ComparePart's fixed corners-then-
// random-vectors coverage.
func ComparePair(t *testing.T, trials int, k1, k2 *sim.Kernel, ins1, ins2, outs1, outs2 []*sim.Signal) {
	t.Helper()
	if len(ins1) != len(ins2) {
		t.Fatalf("simtest: input count mismatch: %d vs %d", len(ins1), len(ins2))
	}
	if len(outs1) != len(outs2) {
		t.Fatalf("simtest: output count mismatch: %d vs %d", len(outs1), len(outs2))
	}

	run := func(v1, v2 Vector) {
		Apply(t, k1, v1)
		Apply(t, k2, v2)
		for i := range outs1 {
			a, b := outs1[i].Value(), outs2[i].Value()
			if a.String() != b.String() {
				t.Fatalf("simtest: output %d mismatch: %s != %s", i, a.String(), b.String())
			}
		}
	}

	pair := func(c bits.Code) (Vector, Vector) {
		return UniformVector(ins1, c), UniformVector(ins2, c)
	}
	v1, v2 := pair(bits.Code0)
	run(v1, v2)
	v1, v2 = pair(bits.Code1)
	run(v1, v2)

	for i := 0; i < trials; i++ {
		v1 = RandomVector(ins1)
		v2 = make(Vector, len(ins2))
		for j, s := range ins2 {
			v2[s] = v1[ins1[j]]
		}
		run(v1, v2)
	}
}
