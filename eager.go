package bson

// EagerMap and EagerSlice are the two alternative document factories from
// the configuration surface: where Document indexes lazily and decodes
// fields on demand, these decode a document fully, eagerly, in one pass —
// trading the cache/index machinery for a plain Go value a caller can
// range over or marshal with encoding/json without touching this package
// again. All three factories must agree on every field's decoded value;
// only when that decoding happens, and into what shape, differs.
//
// This is the teacher's own split (decodeMap/decodeSlice producing Map and
// Slice), generalized: scalar values decode into the same native Go types
// either way, embedded documents decode into EagerMap, and arrays decode
// into a plain []interface{} whose elements follow the same rules
// recursively — order preserved by construction, since both factories
// walk wire order and append.

// EagerMap is a document fully decoded into a Go map. Field order is not
// preserved; use EagerSlice when order matters.
type EagerMap struct {
	raw    []byte
	Fields map[string]interface{}
}

// EagerPair is one field of an EagerSlice, preserving wire order.
type EagerPair struct {
	Key string
	Val interface{}
}

// EagerSlice is a document fully decoded into an ordered list of pairs.
type EagerSlice struct {
	raw   []byte
	Pairs []EagerPair
}

// ToBson returns the original bytes this value was decoded from, the same
// zero-copy contract Document.ToBson honors, even though everything else
// about EagerMap is already materialized.
func (m EagerMap) ToBson() []byte { return m.raw }

// ToBson returns the original bytes this value was decoded from.
func (s EagerSlice) ToBson() []byte { return s.raw }

// DecodeEagerMap fully decodes b into an EagerMap. b is borrowed only for
// the lifetime of this call and for ToBson's return value; every decoded
// scalar is copied out.
func DecodeEagerMap(b []byte) (EagerMap, error) {
	fields := make(map[string]interface{})
	err := walkElements(b, 0, len(b), func(tag Type, name []byte, valueOff, valueSize int) error {
		v, err := nativeValue(b, tag, valueOff)
		if err != nil {
			return withField(err, string(name))
		}
		fields[string(name)] = v
		return nil
	})
	if err != nil {
		return EagerMap{}, err
	}
	return EagerMap{raw: b, Fields: fields}, nil
}

// DecodeEagerSlice fully decodes b into an order-preserving EagerSlice.
func DecodeEagerSlice(b []byte) (EagerSlice, error) {
	var pairs []EagerPair
	err := walkElements(b, 0, len(b), func(tag Type, name []byte, valueOff, valueSize int) error {
		v, err := nativeValue(b, tag, valueOff)
		if err != nil {
			return withField(err, string(name))
		}
		pairs = append(pairs, EagerPair{Key: string(name), Val: v})
		return nil
	})
	if err != nil {
		return EagerSlice{}, err
	}
	return EagerSlice{raw: b, Pairs: pairs}, nil
}

// decodeEagerArray decodes an array value's elements into a plain
// []interface{}, in wire order, recursing through nativeValue exactly
// like a document field would.
func decodeEagerArray(b []byte, off, length int) ([]interface{}, error) {
	var out []interface{}
	err := walkElements(b, off, length, func(tag Type, name []byte, valueOff, valueSize int) error {
		v, err := nativeValue(b, tag, valueOff)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// nativeValue decodes one value at valueOff into a native Go
// representation, recursing eagerly into documents and arrays. It uses
// its own per-tag switch over the Reader primitives (and sizeOfAt for
// nested frames) rather than the codec registry's parse functions, and
// never returns a lazy *Document — that's the whole point of this
// factory.
func nativeValue(buf []byte, tag Type, valueOff int) (interface{}, error) {
	r := &Reader{buf: buf, pos: valueOff}
	switch tag {
	case TypeDouble:
		return r.ReadF64LE()
	case TypeString:
		return readLengthPrefixedString(r)
	case TypeDocument:
		size, err := sizeOfAt(buf, tag, valueOff)
		if err != nil {
			return nil, err
		}
		return DecodeEagerMap(buf[valueOff : valueOff+size])
	case TypeArray:
		size, err := sizeOfAt(buf, tag, valueOff)
		if err != nil {
			return nil, err
		}
		return decodeEagerArray(buf, valueOff, size)
	case TypeBinary:
		l, err := r.ReadI32LE()
		if err != nil {
			return nil, err
		}
		subtype, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		data, err := r.ReadBytesOwned(int(l))
		if err != nil {
			return nil, err
		}
		return Binary{Subtype: subtype, Data: data}, nil
	case TypeUndefined, TypeNull:
		return nil, nil
	case TypeObjectID:
		b, err := r.ReadBytesOwned(12)
		if err != nil {
			return nil, err
		}
		var id ObjectID
		copy(id[:], b)
		return id, nil
	case TypeBool:
		b, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if b != 0x00 && b != 0x01 {
			return nil, &InvalidBooleanError{Byte: b, Position: valueOff}
		}
		return b == 0x01, nil
	case TypeDateTime:
		i, err := r.ReadI64LE()
		return DateTime(i), err
	case TypeRegexp:
		pattern, err := r.ReadCString()
		if err != nil {
			return nil, err
		}
		options, err := r.ReadCString()
		if err != nil {
			return nil, err
		}
		return Regexp{Pattern: pattern, Options: options}, nil
	case TypeDBPointer:
		ns, err := readLengthPrefixedString(r)
		if err != nil {
			return nil, err
		}
		b, err := r.ReadBytesOwned(12)
		if err != nil {
			return nil, err
		}
		var id ObjectID
		copy(id[:], b)
		return DBPointer{Namespace: ns, ObjectID: id}, nil
	case TypeJavascript:
		s, err := readLengthPrefixedString(r)
		return Javascript(s), err
	case TypeSymbol:
		s, err := readLengthPrefixedString(r)
		return Symbol(s), err
	case TypeJavascriptScope:
		start := r.pos
		totalLen, err := r.ReadI32LE()
		if err != nil {
			return nil, err
		}
		code, err := readLengthPrefixedString(r)
		if err != nil {
			return nil, err
		}
		scopeOff := r.pos
		scopeSize, err := sizeOfAt(buf, TypeDocument, scopeOff)
		if err != nil {
			return nil, err
		}
		scope, err := DecodeEagerMap(buf[scopeOff : scopeOff+scopeSize])
		if err != nil {
			return nil, err
		}
		if (scopeOff + scopeSize - start) != int(totalLen) {
			return nil, &FrameMismatchError{
				Position: start,
				Declared: totalLen,
				Actual:   int32(scopeOff + scopeSize - start),
				Boundary: "javascript-with-scope total_len",
			}
		}
		return JavascriptScope{Code: code, Scope: scope}, nil
	case TypeInt32:
		i, err := r.ReadI32LE()
		return i, err
	case TypeTimestamp:
		i, err := r.ReadU64LE()
		return Timestamp(i), err
	case TypeInt64:
		return r.ReadI64LE()
	case TypeDecimal128:
		b, err := r.ReadBytesOwned(16)
		if err != nil {
			return nil, err
		}
		var d Decimal128
		copy(d[:], b)
		return d, nil
	case TypeMinKey:
		return MinKey{}, nil
	case TypeMaxKey:
		return MaxKey{}, nil
	default:
		return nil, &InvalidBsonTypeError{Tag: byte(tag), Position: valueOff}
	}
}
