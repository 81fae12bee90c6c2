package bson

import "sort"

// fieldEntry is one row of a document's field index: enough to re-locate
// and re-type a field's name and value without re-scanning the document.
type fieldEntry struct {
	nameOffset  int
	nameLength  int
	nameHash    uint32
	valueOffset int
	valueSize   int
	typ         Type
	// position is the field's rank in wire order, fixed at build time
	// before the index is sorted by hash. It addresses the parallel
	// cache slice and lets FieldNames recover wire order after sorting.
	position int
}

func (d *Document) nameBytes(e *fieldEntry) []byte {
	return d.buf[e.nameOffset : e.nameOffset+e.nameLength]
}

func (d *Document) nameEquals(e *fieldEntry, name string) bool {
	nb := d.nameBytes(e)
	if len(nb) != len(name) {
		return false
	}
	for i := 0; i < len(nb); i++ {
		if nb[i] != name[i] {
			return false
		}
	}
	return true
}

// buildIndex performs the one-pass scan described in spec §4.5: read the
// length, walk elements calling the skipper to size each value, hash each
// name, then sort by hash. It is idempotent via sync.Once at the call
// site (see ensureIndexed).
func (d *Document) buildIndex() error {
	var index []fieldEntry
	err := walkElements(d.buf, d.off, d.length, func(tag Type, name []byte, valueOff, valueSize int) error {
		nameOff := valueOff - len(name) - 1
		index = append(index, fieldEntry{
			nameOffset:  nameOff,
			nameLength:  len(name),
			nameHash:    fieldNameHash(name),
			valueOffset: valueOff,
			valueSize:   valueSize,
			typ:         tag,
			position:    len(index),
		})
		return nil
	})
	if err != nil {
		return err
	}

	sort.SliceStable(index, func(i, j int) bool { return index[i].nameHash < index[j].nameHash })

	d.index = index
	d.cache = make([]cacheSlot, len(index))
	return nil
}

type cacheSlot struct {
	has bool
	val Value
}

// ensureIndexed lazily builds the index exactly once. It is what makes
// child views (from GetDocument/GetArray) cost nothing beyond their own
// size_of until something actually reads from them.
func (d *Document) ensureIndexed() error {
	d.indexOnce.Do(func() {
		d.indexErr = d.buildIndex()
	})
	return d.indexErr
}

// lookup finds the field index entry for name via binary search on
// nameHash, breaking hash-collision ties with a linear probe over the
// contiguous run of equal hashes and a byte-wise name comparison.
func (d *Document) lookup(name string) (*fieldEntry, bool) {
	h := fieldNameHashString(name)
	n := len(d.index)
	i := sort.Search(n, func(i int) bool { return d.index[i].nameHash >= h })
	for j := i; j < n && d.index[j].nameHash == h; j++ {
		if d.nameEquals(&d.index[j], name) {
			return &d.index[j], true
		}
	}
	return nil, false
}
