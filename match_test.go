package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldMatcherSmallAndLargeSets(t *testing.T) {
	small := newFieldMatcher([]string{"a", "b", "c"})
	require.True(t, small.Matches("b"))
	require.False(t, small.Matches("z"))

	var names []string
	for i := 0; i < smallSetThreshold+5; i++ {
		names = append(names, string(rune('a'+i)))
	}
	large := newFieldMatcher(names)
	require.True(t, large.Matches(names[0]))
	require.True(t, large.Matches(names[len(names)-1]))
	require.False(t, large.Matches("does-not-exist"))
}

// TestOrderedMatcherEquivalence is testable property #10: for any
// expected order, right or wrong, the ordered matcher returns the same
// matches as the unordered matcher.
func TestOrderedMatcherEquivalence(t *testing.T) {
	wanted := []string{"name", "email", "city"}
	candidates := []string{"_id", "name", "age", "email", "city", "extra"}

	unordered := newFieldMatcher(wanted)
	var unorderedResults []bool
	for _, c := range candidates {
		unorderedResults = append(unorderedResults, unordered.Matches(c))
	}

	for _, order := range [][]string{
		{"_id", "name", "age", "email", "city"}, // correct order
		{"name", "_id", "city", "email"},        // wrong order
		nil,                                     // no declared order at all
	} {
		ordered := newOrderedFieldMatcher(wanted, order)
		ordered.Reset()
		for i, c := range candidates {
			require.Equal(t, unorderedResults[i], ordered.Matches(c), "candidate %q under order %v", c, order)
		}
	}
}

// TestOrderedMatcherFastPath is S4: a document that follows the declared
// order entirely should hit the fast path for every wanted field and
// never fall back.
func TestOrderedMatcherFastPath(t *testing.T) {
	order := []string{"_id", "name", "age", "email", "city"}
	wanted := []string{"name", "email", "city"}
	m := newOrderedFieldMatcher(wanted, order)
	m.Reset()
	for _, c := range order {
		m.Matches(c)
	}
	// The document follows the declared order exactly, so every field
	// advances the cursor along the fast path; only the wanted ones count
	// as fast-path hits.
	require.Equal(t, len(wanted), m.FastHits())
	require.Zero(t, m.Fallbacks())
}

func TestOrderedMatcherResetClearsCounters(t *testing.T) {
	m := newOrderedFieldMatcher([]string{"a"}, []string{"a", "b"})
	m.Matches("a")
	m.Matches("b")
	require.NotZero(t, m.FastHits())
	m.Reset()
	require.Zero(t, m.FastHits())
	require.Zero(t, m.Fallbacks())
}
