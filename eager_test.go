package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDocumentFactoriesAgree checks the document-factory selection
// invariant from §6.3: Document, EagerMap, and EagerSlice must
// produce identical logical values for the same bytes.
func TestDocumentFactoriesAgree(t *testing.T) {
	inner := newDocBuilder().String("name", "Bob").Int32("age", 25).Build()
	b := newDocBuilder().
		String("name", "Alice").
		Int32("age", 30).
		Bool("active", true).
		Doc("friend", inner).
		Build()

	lazy, err := Parse(b)
	require.NoError(t, err)

	eagerMap, err := DecodeEagerMap(b)
	require.NoError(t, err)

	eagerSlice, err := DecodeEagerSlice(b)
	require.NoError(t, err)

	name, err := lazy.GetString("name")
	require.NoError(t, err)
	require.Equal(t, "Alice", name)
	require.Equal(t, "Alice", eagerMap.Fields["name"])
	require.Equal(t, "Alice", eagerSlice.Pairs[0].Val)

	age, err := lazy.GetInt32("age")
	require.NoError(t, err)
	require.Equal(t, age, eagerMap.Fields["age"])

	friend, err := lazy.GetDocument("friend")
	require.NoError(t, err)
	friendName, err := friend.GetString("name")
	require.NoError(t, err)
	friendMap := eagerMap.Fields["friend"].(EagerMap)
	require.Equal(t, friendName, friendMap.Fields["name"])

	require.Equal(t, b, eagerMap.ToBson())
	require.Equal(t, b, eagerSlice.ToBson())
}

func TestEagerSlicePreservesOrder(t *testing.T) {
	b := newDocBuilder().String("z", "1").String("a", "2").String("m", "3").Build()
	s, err := DecodeEagerSlice(b)
	require.NoError(t, err)
	require.Equal(t, []string{"z", "a", "m"}, []string{s.Pairs[0].Key, s.Pairs[1].Key, s.Pairs[2].Key})
}

func TestEagerArrayDecodesToSlice(t *testing.T) {
	inner := newDocBuilder().Int32("0", 1).Int32("1", 2).Build()
	b := newDocBuilder().Array("nums", inner).Build()
	m, err := DecodeEagerMap(b)
	require.NoError(t, err)
	nums, ok := m.Fields["nums"].([]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{int32(1), int32(2)}, nums)
}
