package bits_test

import (
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/stretchr/testify/require"
)

func TestLogicParseAndString(t *testing.T) {
	l := bits.ParseLogic("00000011")
	require.Equal(t, "00000011", l.String())
	require.Equal(t, bits.Code1, l.Get(0))
	require.Equal(t, bits.Code1, l.Get(1))
	require.Equal(t, bits.Code0, l.Get(2))
}

func TestLogicNineValuedAnd(t *testing.T) {
	require.Equal(t, bits.CodeX, andLane(t, bits.Code1, bits.CodeX))
	require.Equal(t, bits.Code0, andLane(t, bits.Code0, bits.CodeX), "0 AND X dominates to 0")
	require.Equal(t, bits.Code1, andLane(t, bits.Code1, bits.Code1))
	require.Equal(t, bits.Code0, andLane(t, bits.Code1, bits.Code0))
}

func andLane(t *testing.T, a, b bits.Code) bits.Code {
	t.Helper()
	la := bits.NewLogic(1, a)
	lb := bits.NewLogic(1, b)
	return bits.LogicAnd(la, lb).Get(0)
}

func TestLogicOrDominance(t *testing.T) {
	one := bits.NewLogic(1, bits.Code1)
	x := bits.NewLogic(1, bits.CodeX)
	require.Equal(t, bits.Code1, bits.LogicOr(one, x).Get(0))
}

func TestLogicNot(t *testing.T) {
	l := bits.ParseLogic("10")
	n := bits.LogicNot(l)
	require.Equal(t, "01", n.String())

	u := bits.NewLogic(1, bits.CodeU)
	require.Equal(t, bits.CodeX, bits.LogicNot(u).Get(0))
}

func TestLogicIsFullyDefined(t *testing.T) {
	require.True(t, bits.ParseLogic("0110").IsFullyDefined())
	require.False(t, bits.ParseLogic("01X0").IsFullyDefined())
	require.True(t, bits.ParseLogic("LH").IsFullyDefined())
}

func TestUnsignedFromLogicRoundTrip(t *testing.T) {
	l := bits.ParseLogic("00000011")
	u := bits.UnsignedFromLogic(l)
	require.Equal(t, uint64(3), u.Uint64())
	require.True(t, bits.LogicEqual(u.ToLogic(), l))
}

func TestUnsignedFromLogicPanicsOnUndefined(t *testing.T) {
	require.Panics(t, func() {
		bits.UnsignedFromLogic(bits.ParseLogic("0X"))
	})
}
