package lib_test

import (
	"testing"

	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/lib"
	"github.com/db47h/hdlsim/sim"
	"github.com/stretchr/testify/require"
)

func TestClockProcessTogglesOnSchedule(t *testing.T) {
	clk := newSig(t, "clk", 1, "0")
	k := sim.NewKernel(0, 0)
	k.AddProcess(lib.ClockProcess("clk", clk, 5))

	var toggles []int64
	k.Observe(sim.ObserverFunc(func(time sim.Time, sig *sim.Signal, old, new bits.Logic) {
		toggles = append(toggles, time.PS)
	}))

	for i := 0; i < 4; i++ {
		more, err := k.Step()
		require.NoError(t, err)
		require.True(t, more)
	}
	require.Equal(t, []int64{0, 5, 10, 15}, toggles)
}
