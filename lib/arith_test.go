package lib_test

import (
	"strings"
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/lib"
	"github.com/db47h/hdlsim/sim"
	"github.com/stretchr/testify/require"
)

func TestAdderCombSumAndCarry(t *testing.T) {
	cases := []struct {
		width     int
		a, b      string
		wantSum   string
		wantCarry string
	}{
		{4, "0000", "0000", "0000", "0"},
		{4, "0001", "0001", "0010", "0"},
		{4, "1111", "0001", "0000", "1"}, // 15 + 1 wraps to 0 with carry out
		{4, "1111", "1111", "1110", "1"}, // 15 + 15 = 30 = 0b11110
		{8, "00001111", "00000001", "00010000", "0"},
		{8, "11111111", "11111111", "11111110", "1"},
	}
	for _, c := range cases {
		a := newSig(t, "a", c.width, c.a)
		b := newSig(t, "b", c.width, strings.Repeat("X", c.width))
		sum := newSig(t, "sum", c.width, strings.Repeat("X", c.width))
		carry := newSig(t, "carry", 1, "X")
		k := sim.NewKernel(0, 0)
		combs := lib.AdderComb(a, b, sum, carry)
		k.AddComb(combs[0])
		k.AddComb(combs[1])
		k.Queue().Stage(sim.Time{}, b, bits.ParseLogic(c.b), bits.AllOnes(c.width))
		k.Queue().Commit()
		settle(t, k)
		require.Equal(t, c.wantSum, sum.Value().String(), "a=%s b=%s sum", c.a, c.b)
		require.Equal(t, c.wantCarry, carry.Value().String(), "a=%s b=%s carry", c.a, c.b)
	}
}
