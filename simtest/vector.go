// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest

import (
	"math/rand"
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/sim"
)

// Vector is one simultaneous assignment of definite values to a set of
// input signals, applied to a Kernel in a single delta cycle.
type Vector map[*sim.Signal]bits.Logic

// RandomLogic returns a width-bits value with every lane independently
// set to Code0 or Code1, the bus-valued generalization of hwtest's
// single-bit randBool coin flip.
func RandomLogic(width int) bits.Logic {
	l := bits.NewLogic(width, bits.Code0)
	for i := 0; i < width; i++ {
		if rand.Int63()&(1<<62) != 0 {
			l.Set(i, bits.Code1)
		}
	}
	return l
}

// RandomVector returns a Vector assigning every signal in ins an
// independent RandomLogic value of its own width.
func RandomVector(ins []*sim.Signal) Vector {
	v := make(Vector, len(ins))
	for _, s := range ins {
		v[s] = RandomLogic(s.Width())
	}
	return v
}

// UniformVector returns a Vector assigning every signal in ins the
// single-code fill value c (e.g. all-Code0 or all-Code1), used to cover
// the all-low and all-high corners the way hwtest.ComparePart always
// tries before moving on to random vectors.
func UniformVector(ins []*sim.Signal, c bits.Code) Vector {
	v := make(Vector, len(ins))
	for _, s := range ins {
		v[s] = bits.NewLogic(s.Width(), c)
	}
	return v
}

// Apply stages every assignment in v onto k at its current time, commits
// it as a single delta cycle, and steps k to quiescence before
// returning.
func Apply(t *testing.T, k *sim.Kernel, v Vector) {
	t.Helper()
	for sig, val := range v {
		k.Queue().Stage(k.Now(), sig, val, bits.AllOnes(sig.Width()))
	}
	k.Queue().Commit()
	for {
		more, err := k.Step()
		if err != nil {
			t.Fatalf("simtest: step: %v", err)
		}
		if !more {
			return
		}
	}
}
