package bits_test

import (
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/stretchr/testify/require"
)

func TestUnsignedArithWraps(t *testing.T) {
	a := bits.UnsignedFromUint64(8, 250)
	b := bits.UnsignedFromUint64(8, 10)
	sum := bits.Add(a, b)
	require.Equal(t, uint64(4), sum.Uint64(), "250+10 mod 256 == 4")
}

func TestUnsignedSub(t *testing.T) {
	a := bits.UnsignedFromUint64(8, 2)
	b := bits.UnsignedFromUint64(8, 5)
	d := bits.Sub(a, b)
	require.Equal(t, uint64(253), d.Uint64(), "2-5 mod 256 == 253")
}

func TestUnsignedMul(t *testing.T) {
	a := bits.UnsignedFromUint64(16, 1000)
	b := bits.UnsignedFromUint64(16, 1000)
	m := bits.Mul(a, b)
	require.Equal(t, uint64(1000000)%(1<<16), m.Uint64())
}

func TestUnsignedMulWideSpill(t *testing.T) {
	a := bits.UnsignedFromUint64(128, 1)
	for i := 0; i < 64; i++ {
		a = bits.Add(a, a) // a = 2^64 after loop
	}
	b := bits.UnsignedFromUint64(128, 2)
	r := bits.Mul(a, b)
	require.Equal(t, uint64(0), r.Uint64(), "low 64 bits of 2^64 * 2 are zero")
}

func TestUnsignedUdiv(t *testing.T) {
	a := bits.UnsignedFromUint64(8, 100)
	b := bits.UnsignedFromUint64(8, 7)
	q := bits.Udiv(a, b)
	require.Equal(t, uint64(14), q.Uint64())
}

func TestUnsignedUdivByZero(t *testing.T) {
	a := bits.UnsignedFromUint64(4, 5)
	z := bits.NewUnsigned(4)
	q := bits.Udiv(a, z)
	require.Equal(t, uint64(0xF), q.Uint64())
}

func TestAdditionArithmeticScenarioS4(t *testing.T) {
	a := bits.ParseLogic("00000011")
	b := bits.ParseLogic("00000001")
	ua := bits.UnsignedFromLogic(a)
	ub := bits.UnsignedFromLogic(b)
	sum := bits.Add(ua, ub)
	require.Equal(t, "00000100", sum.ToLogic().String())
}
