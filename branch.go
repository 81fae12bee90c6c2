package bson

// BranchOrder is a declarative hint, attached to a parser implementation
// at build time: BSON tags listed in expected-frequency order (spec
// §4.10, §6.3 branch_order). A dense dispatch table — which is what
// codec.go's codecTable is — has no "order" to arrange, so parseValue
// ignores this; decisionTreeParseValue below is the generated-chain
// dispatcher the hint exists to steer. This is a microarchitectural
// choice only: both dispatchers produce identical values.
type BranchOrder []Type

// DefaultBranchOrder reflects a typical MongoDB document's type mix:
// strings, embedded documents, and object ids dominate; the deprecated
// types are rare.
var DefaultBranchOrder = BranchOrder{
	TypeString, TypeDocument, TypeObjectID, TypeInt32, TypeDouble, TypeBool,
	TypeArray, TypeDateTime, TypeInt64, TypeNull, TypeBinary, TypeRegexp,
	TypeTimestamp, TypeDecimal128, TypeJavascript, TypeSymbol, TypeUndefined,
	TypeDBPointer, TypeJavascriptScope, TypeMinKey, TypeMaxKey,
}

// decisionTreeParseValue dispatches tag via a chain of equality checks
// ordered by order, rather than codecTable's O(1) lookup. Reordering
// order only changes which tags are checked first; it never changes what
// gets returned, since every branch still calls through to the same
// codec registry entry.
func decisionTreeParseValue(r *Reader, tag Type, depth int, order BranchOrder) (Value, error) {
	for _, candidate := range order {
		if candidate != tag {
			continue
		}
		entry, ok := lookupCodec(tag)
		if !ok {
			return Value{}, &InvalidBsonTypeError{Tag: byte(tag), Position: r.pos}
		}
		return entry.parse(r, depth)
	}
	// tag wasn't in the declared order at all (e.g. a hint built for a
	// narrower schema than the document actually contains); fall back to
	// the table lookup so parsing still succeeds.
	return parseValue(r, tag, depth)
}
