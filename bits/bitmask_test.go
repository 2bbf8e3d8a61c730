package bits_test

import (
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/stretchr/testify/require"
)

func TestBitmaskInvOrAndXorIdentities(t *testing.T) {
	m := bits.NewBitmask(70) // exercise the spilled (>64 bit) path too
	m.Set(3, true)
	m.Set(69, true)

	require.True(t, bits.Equal(m.Inv().Inv(), m), "~~m == m")
	require.True(t, bits.Equal(bits.And(m, m), m), "m & m == m")
	require.True(t, bits.Equal(bits.Or(m, m), m), "m | m == m")
	require.True(t, bits.Or(m, m).IsAllZero() == m.IsAllZero())

	xorSelf := bits.Xor(m, m)
	require.True(t, xorSelf.IsAllZero(), "m ^ m is all-zero")
}

func TestBitmaskTailMasking(t *testing.T) {
	m := bits.NewBitmask(5)
	for i := 0; i < 5; i++ {
		m.Set(i, true)
	}
	require.True(t, m.IsAllOne())
	inv := m.Inv()
	require.True(t, inv.IsAllZero(), "complement of all-ones should mask off bits >= width")
}

func TestBitmaskGetSet(t *testing.T) {
	m := bits.NewBitmask(8)
	require.False(t, m.Get(4))
	m.Set(4, true)
	require.True(t, m.Get(4))
	m.Clear(4)
	require.False(t, m.Get(4))
}

func TestBitmaskPopCount(t *testing.T) {
	m := bits.NewBitmask(130)
	m.Set(0, true)
	m.Set(64, true)
	m.Set(129, true)
	require.Equal(t, 3, m.PopCount())
}

func TestAllOnesMatchesWidth(t *testing.T) {
	m := bits.AllOnes(13)
	require.True(t, m.IsAllOne())
	require.Equal(t, 13, m.PopCount())
}
