package bson

// smallSetThreshold is the cutover point between the two unordered
// matcher representations described in spec §4.6: below it, a linear
// scan over interned names beats the overhead of a map; at or above it,
// the hash set wins.
const smallSetThreshold = 10

// fieldMatcher is the unordered matcher: built once from a target set,
// then asked "does this candidate name belong to the set?" once per field
// encountered during a partial parse.
type fieldMatcher struct {
	small []string // interned, used when len(small) < smallSetThreshold
	large map[string]struct{}
}

// newFieldMatcher builds a matcher over names. Every name is interned up
// front so Matches, which interns each candidate before comparing, can
// compare against the canonical names.
func newFieldMatcher(names []string) *fieldMatcher {
	m := &fieldMatcher{}
	if len(names) < smallSetThreshold {
		m.small = make([]string, len(names))
		for i, n := range names {
			m.small[i] = internFieldName(n)
		}
		return m
	}
	m.large = make(map[string]struct{}, len(names))
	for _, n := range names {
		m.large[internFieldName(n)] = struct{}{}
	}
	return m
}

// Matches reports whether candidate (not yet interned) is a wanted field.
func (m *fieldMatcher) Matches(candidate string) bool {
	interned := internFieldName(candidate)
	if m.large != nil {
		_, ok := m.large[interned]
		return ok
	}
	for _, n := range m.small {
		if n == interned {
			return true
		}
	}
	return false
}

// orderedFieldMatcher is the ordered matcher: it tracks a cursor through
// a declared or learned field order and takes an O(1) fast path whenever
// the document actually follows that order, falling back to the
// unordered matcher's hash lookup otherwise.
type orderedFieldMatcher struct {
	wanted       *fieldMatcher
	expectedOrder []string // interned

	cursor    int
	fastHits  int
	fallbacks int
}

// newOrderedFieldMatcher builds an ordered matcher over wanted, expecting
// fields to arrive in expectedOrder.
func newOrderedFieldMatcher(wanted []string, expectedOrder []string) *orderedFieldMatcher {
	order := make([]string, len(expectedOrder))
	for i, n := range expectedOrder {
		order[i] = internFieldName(n)
	}
	return &orderedFieldMatcher{
		wanted:        newFieldMatcher(wanted),
		expectedOrder: order,
	}
}

// Reset rewinds the cursor and clears the fast-path/fallback counters, to
// be called at the start of every document parse — the matcher state
// must never leak between documents.
func (m *orderedFieldMatcher) Reset() {
	m.cursor = 0
	m.fastHits = 0
	m.fallbacks = 0
}

// Matches reports whether candidate is wanted, advancing the internal
// cursor. Behavior is equivalent to the plain unordered matcher for any
// expected order, right or wrong — only FastHits/Fallbacks differ.
func (m *orderedFieldMatcher) Matches(candidate string) bool {
	interned := internFieldName(candidate)
	if m.cursor < len(m.expectedOrder) && m.expectedOrder[m.cursor] == interned {
		slot := m.cursor
		m.cursor++
		if m.wanted.Matches(m.expectedOrder[slot]) {
			m.fastHits++
			return true
		}
		return false
	}
	m.fallbacks++
	m.cursor++
	return m.wanted.Matches(interned)
}

// FastHits returns the number of wanted fields matched via the O(1)
// ordered fast path since the last Reset. Unwanted fields that follow
// the expected order advance the cursor but are not counted.
func (m *orderedFieldMatcher) FastHits() int { return m.fastHits }

// Fallbacks returns the number of candidates, wanted or not, that did not
// follow the expected order and went through the unordered hash-lookup
// fallback since the last Reset.
func (m *orderedFieldMatcher) Fallbacks() int { return m.fallbacks }
