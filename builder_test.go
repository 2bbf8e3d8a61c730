package hdlsim_test

import (
	"strings"
	"testing"

	ir "github.com/db47h/hdlsim"
	"github.com/db47h/hdlsim/bits"
	"github.com/db47h/hdlsim/types"
	"github.com/stretchr/testify/require"
)

// buildAndGate builds a minimal combinational entity: out = a AND b.
func buildAndGate(t *testing.T) *ir.Unit {
	t.Helper()
	l1 := types.LogicType(1)
	u, err := ir.NewEntityBuilder("AND2", []ir.ParamSpec{
		{Name: "a", Type: l1},
		{Name: "b", Type: l1},
	}, []ir.ParamSpec{
		{Name: "out", Type: l1},
	}).
		Gate("out", ir.BinAnd, "a", "b").
		Build()
	require.NoError(t, err)
	return u
}

func TestEntityBuilderWiresSignalAndInstance(t *testing.T) {
	and2 := buildAndGate(t)
	l1 := types.LogicType(1)

	top, err := ir.NewEntityBuilder("TOP", []ir.ParamSpec{
		{Name: "x", Type: l1},
		{Name: "y", Type: l1},
	}, []ir.ParamSpec{
		{Name: "z", Type: l1},
	}).
		ConstLogic("zero", "0").
		Signal("w", l1, ir.NewConstLogic(l1, bits.ParseLogic("0"))).
		Instance(and2, []string{"x", "y"}, []string{"w"}).
		Gate("z", ir.BinXor, "w", "zero").
		Build()
	require.NoError(t, err)

	insts := top.Insts()
	require.Len(t, insts, 3) // signal, instance, xor — the const is not an instruction

	sig := insts[0]
	require.Equal(t, ir.OpSignal, sig.Op())
	inst := insts[1]
	require.Equal(t, ir.OpInstance, inst.Op())
	require.Same(t, and2, inst.Component())
	require.Equal(t, 2, len(inst.InstanceInputs()))
	require.Equal(t, []ir.Value{sig}, inst.InstanceOutputs())

	printed := top.String()
	require.Contains(t, printed, "entity @TOP")
	require.Contains(t, printed, "instance @AND2")
}

// TestReplaceUsesRewritesBothRolesOnSameInstance covers spec.md §8
// scenario S6: an instance whose input list and output list both name
// the same signal (q), so a single Value is referenced by two distinct
// operand slots of one instruction — once as an input, once as an
// output. ReplaceUses must rewrite both slots, not just the first Use
// it encounters.
func TestReplaceUsesRewritesBothRolesOnSameInstance(t *testing.T) {
	l1 := types.LogicType(1)
	comp := ir.NewEntity("GATED", []ir.ParamSpec{
		{Name: "ck", Type: l1},
		{Name: "e", Type: l1},
		{Name: "q", Type: l1},
	}, []ir.ParamSpec{
		{Name: "gck", Type: l1},
		{Name: "q", Type: l1},
	})

	top, err := ir.NewEntityBuilder("TOP", []ir.ParamSpec{
		{Name: "ck", Type: l1},
		{Name: "e", Type: l1},
	}, []ir.ParamSpec{
		{Name: "gck", Type: l1},
	}).
		Signal("q", l1, ir.NewConstLogic(l1, bits.ParseLogic("0"))).
		Instance(comp, []string{"ck", "e", "q"}, []string{"gck", "q"}).
		Build()
	require.NoError(t, err)

	var inst *ir.Inst
	var q ir.Value
	for _, i := range top.Insts() {
		if i.Op() == ir.OpSignal {
			q = i
		}
		if i.Op() == ir.OpInstance {
			inst = i
		}
	}
	require.NotNil(t, inst)
	require.NotNil(t, q)
	require.Same(t, q, inst.InstanceInputs()[2])
	require.Same(t, q, inst.InstanceOutputs()[1])
	require.Equal(t, 2, ir.NumUsers(q), "q should be referenced by exactly the two operand slots")

	repl := ir.NewConstLogic(l1, bits.ParseLogic("1"))
	ir.ReplaceUses(q, repl)

	require.False(t, ir.HasUsers(q))
	require.Same(t, repl, inst.InstanceInputs()[2])
	require.Same(t, repl, inst.InstanceOutputs()[1])
	require.Equal(t, 2, ir.NumUsers(repl))
}

// TestEntityBuilderWiresFullBinaryAndCompareOpSets covers spec.md §4.3's
// full Binary/Compare op tables (shift and signed-arithmetic variants
// included), not just the handful exercised by the gate library.
func TestEntityBuilderWiresFullBinaryAndCompareOpSets(t *testing.T) {
	l8 := types.LogicType(8)
	binOps := []ir.BinaryOp{
		ir.BinAnd, ir.BinOr, ir.BinXor, ir.BinAdd, ir.BinSub, ir.BinMul, ir.BinUdiv,
		ir.BinUrem, ir.BinSdiv, ir.BinSrem, ir.BinLsl, ir.BinLsr, ir.BinAsr,
	}
	for _, op := range binOps {
		u, err := ir.NewEntityBuilder("B", []ir.ParamSpec{
			{Name: "a", Type: l8}, {Name: "b", Type: l8},
		}, []ir.ParamSpec{{Name: "out", Type: l8}}).
			Gate("out", op, "a", "b").
			Build()
		require.NoError(t, err, "op %s", op)
		require.Contains(t, u.String(), op.String())
	}

	cmpOps := []ir.CompareOp{
		ir.CmpEq, ir.CmpNe, ir.CmpUlt, ir.CmpUle, ir.CmpUgt, ir.CmpUge,
		ir.CmpSlt, ir.CmpSle, ir.CmpSgt, ir.CmpSge,
	}
	for _, op := range cmpOps {
		u, err := ir.NewEntityBuilder("C", []ir.ParamSpec{
			{Name: "a", Type: l8}, {Name: "b", Type: l8},
		}, []ir.ParamSpec{{Name: "out", Type: types.LogicType(1)}}).
			Compare("out", op, "a", "b").
			Build()
		require.NoError(t, err, "op %s", op)
		require.Contains(t, u.String(), "cmp."+op.String())
	}
}

func TestEntityBuilderRejectsUnknownSignal(t *testing.T) {
	l1 := types.LogicType(1)
	_, err := ir.NewEntityBuilder("BAD", []ir.ParamSpec{{Name: "a", Type: l1}}, nil).
		Gate("out", ir.BinAnd, "a", "nope").
		Build()
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "nope"))
}

func TestEntityBuilderRejectsInstanceArity(t *testing.T) {
	and2 := buildAndGate(t)
	l1 := types.LogicType(1)
	_, err := ir.NewEntityBuilder("BAD2", []ir.ParamSpec{{Name: "a", Type: l1}}, nil).
		Instance(and2, []string{"a"}, nil).
		Build()
	require.Error(t, err)
}
