package bson

// codecEntry pairs a value parser with a size function for one wire type.
// Both close over nothing but the tag they're registered for; parse and
// sizeOfAt remain the single implementations, so the table below is a
// dispatch surface over them, not a second copy of the decoding logic.
type codecEntry struct {
	parse  func(r *Reader, depth int) (Value, error)
	sizeOf func(buf []byte, offset int) (int, error)
}

// codecTable is a dense, tag-indexed dispatch table, per the registry
// design: "a 256-entry table indexed directly by tag byte, not a map,
// since the tag space is small, fixed, and known at compile time." Most
// entries are nil; invalid or reserved tags fall through to
// InvalidBsonTypeError at lookup time.
var codecTable [256]codecEntry

func registerCodec(tag Type, parse func(r *Reader, depth int) (Value, error), sizeOf func(buf []byte, offset int) (int, error)) {
	codecTable[tag] = codecEntry{parse: parse, sizeOf: sizeOf}
}

func init() {
	fixed := func(tag Type, n int, build func(raw []byte) Value) func(r *Reader, depth int) (Value, error) {
		return func(r *Reader, depth int) (Value, error) {
			b, err := r.ReadBytes(n)
			if err != nil {
				return Value{}, err
			}
			return build(b), nil
		}
	}
	sizeN := func(n int) func(buf []byte, offset int) (int, error) {
		return func(buf []byte, offset int) (int, error) { return fixedSize(buf, offset, n) }
	}

	registerCodec(TypeDouble, func(r *Reader, depth int) (Value, error) {
		f, err := r.ReadF64LE()
		return Value{Type: TypeDouble, Float64: f}, err
	}, sizeN(8))

	registerCodec(TypeString, func(r *Reader, depth int) (Value, error) {
		s, err := readLengthPrefixedString(r)
		return Value{Type: TypeString, Str: s}, err
	}, func(buf []byte, offset int) (int, error) {
		l, err := readI32At(buf, offset)
		if err != nil {
			return 0, err
		}
		if l < 1 {
			return 0, &MalformedStringError{Position: offset, Length: l, Reason: "length < 1"}
		}
		return boundedInt(buf, offset, 4+int(l))
	})

	registerCodec(TypeDocument, func(r *Reader, depth int) (Value, error) {
		return parseNested(r, TypeDocument, depth)
	}, func(buf []byte, offset int) (int, error) {
		l, err := readI32At(buf, offset)
		if err != nil {
			return 0, err
		}
		if l < 5 {
			return 0, &FrameMismatchError{Position: offset, Declared: l, Boundary: "document too short"}
		}
		return boundedInt(buf, offset, int(l))
	})

	registerCodec(TypeArray, func(r *Reader, depth int) (Value, error) {
		return parseNested(r, TypeArray, depth)
	}, codecTable[TypeDocument].sizeOf)

	registerCodec(TypeBinary, func(r *Reader, depth int) (Value, error) {
		return parseBinary(r)
	}, func(buf []byte, offset int) (int, error) {
		l, err := readI32At(buf, offset)
		if err != nil {
			return 0, err
		}
		if l < 0 {
			return 0, &MalformedStringError{Position: offset, Length: l, Reason: "negative binary length"}
		}
		return boundedInt(buf, offset, 4+1+int(l))
	})

	registerCodec(TypeUndefined, func(r *Reader, depth int) (Value, error) {
		return Value{Type: TypeNull}, nil
	}, func(buf []byte, offset int) (int, error) { return 0, nil })

	registerCodec(TypeObjectID, fixed(TypeObjectID, 12, func(b []byte) Value {
		owned := make([]byte, 12)
		copy(owned, b)
		return Value{Type: TypeObjectID, Bytes: owned}
	}), sizeN(12))

	registerCodec(TypeBool, func(r *Reader, depth int) (Value, error) {
		b, err := r.ReadU8()
		if err != nil {
			return Value{}, err
		}
		if b != 0x00 && b != 0x01 {
			return Value{}, &InvalidBooleanError{Byte: b, Position: r.pos - 1}
		}
		return Value{Type: TypeBool, Int64: int64(b)}, nil
	}, sizeN(1))

	registerCodec(TypeDateTime, func(r *Reader, depth int) (Value, error) {
		i, err := r.ReadI64LE()
		return Value{Type: TypeDateTime, Int64: i}, err
	}, sizeN(8))

	registerCodec(TypeNull, func(r *Reader, depth int) (Value, error) {
		return Value{Type: TypeNull}, nil
	}, func(buf []byte, offset int) (int, error) { return 0, nil })

	registerCodec(TypeRegexp, func(r *Reader, depth int) (Value, error) {
		pattern, err := r.ReadCString()
		if err != nil {
			return Value{}, err
		}
		options, err := r.ReadCString()
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeRegexp, Str: pattern, Str2: options}, nil
	}, func(buf []byte, offset int) (int, error) {
		pEnd, err := cstringEnd(buf, offset)
		if err != nil {
			return 0, err
		}
		oEnd, err := cstringEnd(buf, pEnd+1)
		if err != nil {
			return 0, err
		}
		return (oEnd + 1) - offset, nil
	})

	registerCodec(TypeDBPointer, func(r *Reader, depth int) (Value, error) {
		ns, err := readLengthPrefixedString(r)
		if err != nil {
			return Value{}, err
		}
		id, err := r.ReadBytesOwned(12)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeDBPointer, Str: ns, Bytes: id}, nil
	}, func(buf []byte, offset int) (int, error) {
		l, err := readI32At(buf, offset)
		if err != nil {
			return 0, err
		}
		if l < 1 {
			return 0, &MalformedStringError{Position: offset, Length: l, Reason: "length < 1"}
		}
		return boundedInt(buf, offset, 4+int(l)+12)
	})

	registerCodec(TypeJavascript, func(r *Reader, depth int) (Value, error) {
		s, err := readLengthPrefixedString(r)
		return Value{Type: TypeJavascript, Str: s}, err
	}, codecTable[TypeString].sizeOf)

	registerCodec(TypeSymbol, func(r *Reader, depth int) (Value, error) {
		s, err := readLengthPrefixedString(r)
		return Value{Type: TypeSymbol, Str: s}, err
	}, codecTable[TypeString].sizeOf)

	registerCodec(TypeJavascriptScope, func(r *Reader, depth int) (Value, error) {
		return parseJavascriptScope(r, depth)
	}, func(buf []byte, offset int) (int, error) {
		l, err := readI32At(buf, offset)
		if err != nil {
			return 0, err
		}
		if l < 4+4+5 {
			return 0, &FrameMismatchError{Position: offset, Declared: l, Boundary: "code_w_s too short"}
		}
		return boundedInt(buf, offset, int(l))
	})

	registerCodec(TypeInt32, func(r *Reader, depth int) (Value, error) {
		i, err := r.ReadI32LE()
		return Value{Type: TypeInt32, Int64: int64(i)}, err
	}, sizeN(4))

	registerCodec(TypeTimestamp, func(r *Reader, depth int) (Value, error) {
		i, err := r.ReadU64LE()
		return Value{Type: TypeTimestamp, Int64: int64(i)}, err
	}, sizeN(8))

	registerCodec(TypeInt64, func(r *Reader, depth int) (Value, error) {
		i, err := r.ReadI64LE()
		return Value{Type: TypeInt64, Int64: i}, err
	}, sizeN(8))

	registerCodec(TypeDecimal128, fixed(TypeDecimal128, 16, func(b []byte) Value {
		owned := make([]byte, 16)
		copy(owned, b)
		return Value{Type: TypeDecimal128, Bytes: owned}
	}), sizeN(16))

	registerCodec(TypeMinKey, func(r *Reader, depth int) (Value, error) {
		return Value{Type: TypeMinKey}, nil
	}, func(buf []byte, offset int) (int, error) { return 0, nil })

	registerCodec(TypeMaxKey, func(r *Reader, depth int) (Value, error) {
		return Value{Type: TypeMaxKey}, nil
	}, func(buf []byte, offset int) (int, error) { return 0, nil })
}

// lookupCodec returns the registered entry for tag, or false if tag has no
// codec (an invalid or reserved type byte).
func lookupCodec(tag Type) (codecEntry, bool) {
	e := codecTable[tag]
	if e.parse == nil {
		return codecEntry{}, false
	}
	return e, true
}
