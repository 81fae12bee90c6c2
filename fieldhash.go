package bson

import "github.com/cespare/xxhash/v2"

// fieldNameHash computes the stable 32-bit hash used to order and binary
// search the field index (spec: "the choice is an implementation detail
// but must be consistent between index build and field lookup"). xxhash is
// the only hashing library directly imported by more than one repo in this
// project's lineage, and it's already tuned for exactly this shape of
// input: short, ASCII-heavy keys hashed one at a time, not in bulk.
func fieldNameHash(name []byte) uint32 {
	return uint32(xxhash.Sum64(name))
}

func fieldNameHashString(name string) uint32 {
	return uint32(xxhash.Sum64String(name))
}
