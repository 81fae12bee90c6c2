package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDecisionTreeMatchesTableDispatch confirms the branch-ordering hint
// is purely a dispatch-order optimization (§4.10): reordering it must
// never change what gets decoded.
func TestDecisionTreeMatchesTableDispatch(t *testing.T) {
	b := newDocBuilder().Int32("f", 42).Build()
	valueOff := 4 + 1 + len("f") + 1

	r1 := &Reader{buf: b, pos: valueOff}
	viaTable, err := parseValue(r1, TypeInt32, 0)
	require.NoError(t, err)

	r2 := &Reader{buf: b, pos: valueOff}
	viaTree, err := decisionTreeParseValue(r2, TypeInt32, 0, DefaultBranchOrder)
	require.NoError(t, err)

	require.Equal(t, viaTable, viaTree)
	require.Equal(t, r1.pos, r2.pos)
}

func TestDecisionTreeFallsBackWhenTagNotInOrder(t *testing.T) {
	b := newDocBuilder().Int32("f", 7).Build()
	valueOff := 4 + 1 + len("f") + 1
	r := &Reader{buf: b, pos: valueOff}

	v, err := decisionTreeParseValue(r, TypeInt32, 0, BranchOrder{TypeString, TypeDouble})
	require.NoError(t, err)
	require.Equal(t, int32(7), v.Int32())
}
