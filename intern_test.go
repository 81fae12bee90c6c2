package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternFieldNameReturnsEqualStrings(t *testing.T) {
	a := internFieldName("someFieldName")
	b := internFieldName("someFieldName")
	require.Equal(t, a, b)
}

func TestInternFieldNameDistinctInputs(t *testing.T) {
	a := internFieldName("fieldA")
	b := internFieldName("fieldB")
	require.NotEqual(t, a, b)
}
