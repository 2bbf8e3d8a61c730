package lib_test

import (
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/lib"
	"github.com/db47h/hdlsim/sim"
	"github.com/stretchr/testify/require"
)

func TestMuxCombTruthTable(t *testing.T) {
	cases := []struct {
		sel, a, b, want string
	}{
		{"0", "0", "1", "0"},
		{"0", "1", "0", "1"},
		{"1", "0", "1", "1"},
		{"1", "1", "0", "0"},
	}
	for _, c := range cases {
		sel := newSig(t, "sel", 1, "X")
		a := newSig(t, "a", 1, c.a)
		b := newSig(t, "b", 1, c.b)
		out := newSig(t, "out", 1, "X")
		k := sim.NewKernel(0, 0)
		k.AddComb(lib.MuxComb(sel, a, b, out))
		k.Queue().Stage(sim.Time{}, sel, bits.ParseLogic(c.sel), bits.AllOnes(1))
		k.Queue().Commit()
		settle(t, k)
		require.Equal(t, c.want, out.Value().String(), "sel=%s a=%s b=%s", c.sel, c.a, c.b)
	}
}

func TestDMuxCombTruthTable(t *testing.T) {
	cases := []struct {
		sel, in, wantA, wantB string
	}{
		{"0", "1", "1", "0"},
		{"1", "1", "0", "1"},
	}
	for _, c := range cases {
		sel := newSig(t, "sel", 1, "X")
		in := newSig(t, "in", 1, c.in)
		outA := newSig(t, "a", 1, "X")
		outB := newSig(t, "b", 1, "X")
		k := sim.NewKernel(0, 0)
		combs := lib.DMuxComb(sel, in, outA, outB)
		k.AddComb(combs[0])
		k.AddComb(combs[1])
		k.Queue().Stage(sim.Time{}, sel, bits.ParseLogic(c.sel), bits.AllOnes(1))
		k.Queue().Commit()
		settle(t, k)
		require.Equal(t, c.wantA, outA.Value().String(), "sel=%s in=%s a", c.sel, c.in)
		require.Equal(t, c.wantB, outB.Value().String(), "sel=%s in=%s b", c.sel, c.in)
	}
}
