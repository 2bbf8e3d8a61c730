package lib_test

import (
	"testing"

	hdlsim "github.com/db47h/hdlsim"
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/lib"
	"github.com/db47h/hdlsim/sim"
	"github.com/db47h/hdlsim/types"
	"github.com/stretchr/testify/require"
)

func newSig(t *testing.T, name string, width int, init string) *sim.Signal {
	t.Helper()
	lt := types.LogicType(width)
	c := hdlsim.NewConstLogic(lt, bits.ParseLogic(init))
	def := hdlsim.NewSignal(lt, c)
	def.SetName(name)
	return sim.NewSignal(def)
}

// settle steps k until Step reports there is nothing left to do, so
// every comb and process reacting to the staged inputs has run.
func settle(t *testing.T, k *sim.Kernel) {
	t.Helper()
	for {
		more, err := k.Step()
		require.NoError(t, err)
		if !more {
			return
		}
	}
}

func TestGateCombTruthTables(t *testing.T) {
	cases := []struct {
		name       string
		build      func(a, b, out *sim.Signal) *sim.Comb
		a, b, want string
	}{
		{"AND-00", lib.AndComb, "0", "0", "0"},
		{"AND-11", lib.AndComb, "1", "1", "1"},
		{"AND-10", lib.AndComb, "1", "0", "0"},
		{"NAND-00", lib.NandComb, "0", "0", "1"},
		{"NAND-11", lib.NandComb, "1", "1", "0"},
		{"OR-00", lib.OrComb, "0", "0", "0"},
		{"OR-01", lib.OrComb, "0", "1", "1"},
		{"NOR-00", lib.NorComb, "0", "0", "1"},
		{"NOR-01", lib.NorComb, "0", "1", "0"},
		{"XOR-01", lib.XorComb, "0", "1", "1"},
		{"XOR-11", lib.XorComb, "1", "1", "0"},
		{"XNOR-01", lib.XnorComb, "0", "1", "0"},
		{"XNOR-11", lib.XnorComb, "1", "1", "1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// a and b start at X so staging their test-case values is
			// guaranteed to register as a change and trigger the comb.
			a := newSig(t, "a", 1, "X")
			b := newSig(t, "b", 1, "X")
			out := newSig(t, "out", 1, "X")
			k := sim.NewKernel(0, 0)
			k.AddComb(c.build(a, b, out))
			k.Queue().Stage(sim.Time{}, a, bits.ParseLogic(c.a), bits.AllOnes(1))
			k.Queue().Stage(sim.Time{}, b, bits.ParseLogic(c.b), bits.AllOnes(1))
			k.Queue().Commit()
			settle(t, k)
			require.Equal(t, c.want, out.Value().String())
		})
	}
}

func TestBufCombCopiesInput(t *testing.T) {
	in := newSig(t, "in", 4, "0000")
	out := newSig(t, "out", 4, "1111")
	k := sim.NewKernel(0, 0)
	k.AddComb(lib.BufComb(in, out))
	k.Queue().Stage(sim.Time{}, in, bits.ParseLogic("1010"), bits.AllOnes(4))
	k.Queue().Commit()
	settle(t, k)
	require.Equal(t, "1010", out.Value().String())
}

func TestBufferGateEntityDrivesOutFromIn(t *testing.T) {
	u, err := lib.BufferGate(4)
	require.NoError(t, err)
	require.Contains(t, u.String(), "drive")

	var drive *hdlsim.Inst
	for _, inst := range u.Insts() {
		if inst.Op() == hdlsim.OpDrive {
			drive = inst
		}
	}
	require.NotNil(t, drive, "BufferGate must contain a drive instruction")
	require.Equal(t, "out", drive.Signal().Name())
	require.Equal(t, "in", drive.DriveValue().Name())
}

func TestNotCombInverts(t *testing.T) {
	in := newSig(t, "in", 4, "0000")
	out := newSig(t, "out", 4, "1111")
	k := sim.NewKernel(0, 0)
	k.AddComb(lib.NotComb("NOT", in, out))
	k.Queue().Stage(sim.Time{}, in, bits.ParseLogic("1010"), bits.AllOnes(4))
	k.Queue().Commit()
	settle(t, k)
	require.Equal(t, "0101", out.Value().String())
}

func TestGateEntitiesBuildAndPrint(t *testing.T) {
	ctors := map[string]func(int) (*hdlsim.Unit, error){
		"BUF":  lib.BufferGate,
		"NOT":  lib.NotGate,
		"AND":  lib.AndGate,
		"NAND": lib.NandGate,
		"OR":   lib.OrGate,
		"NOR":  lib.NorGate,
		"XOR":  lib.XorGate,
		"XNOR": lib.XnorGate,
	}
	for name, ctor := range ctors {
		t.Run(name, func(t *testing.T) {
			u, err := ctor(8)
			require.NoError(t, err)
			require.Contains(t, u.String(), "entity @"+name)
		})
	}
}
