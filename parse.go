package bson

// maxNestingDepth bounds recursive document/array construction. Per the
// design notes this module chooses bounded recursion over an explicit
// work-stack: Go goroutine stacks grow on demand, so 64 levels is not a
// real limit in practice, but a document nested deeper than this is
// almost certainly hostile or corrupt input, not a legitimate shape.
const maxNestingDepth = 64

// parseValue decodes the value of type tag at r's current position,
// advancing the cursor past it. depth is the nesting depth of the
// enclosing document, used to bound recursive document/array parsing.
// It is a thin wrapper over the codec registry (codec.go): the registry
// entry's parse function is the only place the per-type decoding logic
// lives.
func parseValue(r *Reader, tag Type, depth int) (Value, error) {
	entry, ok := lookupCodec(tag)
	if !ok {
		return Value{}, &InvalidBsonTypeError{Tag: byte(tag), Position: r.pos}
	}
	return entry.parse(r, depth)
}

// readLengthPrefixedString reads a BSON string: an int32 byte count
// (including the trailing terminator), then that many bytes, the last of
// which must be 0x00.
func readLengthPrefixedString(r *Reader) (string, error) {
	start := r.pos
	l, err := r.ReadI32LE()
	if err != nil {
		return "", err
	}
	if l < 1 {
		return "", &MalformedStringError{Position: start, Length: l, Reason: "length < 1"}
	}
	b, err := r.ReadBytes(int(l))
	if err != nil {
		return "", err
	}
	if b[len(b)-1] != 0x00 {
		return "", &MalformedStringError{Position: start, Length: l, Reason: "missing trailing 0x00"}
	}
	return decodeASCIIFast(b[:len(b)-1]), nil
}

// decodeASCIIFast implements the optional ASCII fast path from the design
// notes: scan for a high bit; if none is set the bytes are valid ASCII (a
// subset of UTF-8) and can become a string with no validation pass. Mixed
// or non-ASCII content falls back to a plain conversion, which Go's
// runtime will also not revalidate — string(b) never fails, so this is
// purely about skipping the scan when it would find nothing, not about
// avoiding work that could error.
func decodeASCIIFast(b []byte) string {
	for _, c := range b {
		if c >= 0x80 {
			return string(b)
		}
	}
	return string(b)
}

// parseNested builds a child Document over the bytes of a nested document
// or array value. The child borrows the same backing buffer and indexes
// lazily on first access, not here.
func parseNested(r *Reader, tag Type, depth int) (Value, error) {
	if depth >= maxNestingDepth {
		return Value{}, &FrameMismatchError{Position: r.pos, Boundary: "max nesting depth exceeded"}
	}
	size, err := sizeOfAt(r.buf, tag, r.pos)
	if err != nil {
		return Value{}, err
	}
	off := r.pos
	if err := r.Skip(size); err != nil {
		return Value{}, err
	}
	child := &Document{buf: r.buf, off: off, length: size, depth: depth + 1}
	return Value{Type: tag, Doc: child}, nil
}

// parseJavascriptScope decodes a code_w_s element: total_len, then a
// string, then a scope document. total_len lets the skipper bypass all of
// this, but a full parse needs to walk through it.
func parseJavascriptScope(r *Reader, depth int) (Value, error) {
	start := r.pos
	totalLen, err := r.ReadI32LE()
	if err != nil {
		return Value{}, err
	}
	code, err := readLengthPrefixedString(r)
	if err != nil {
		return Value{}, err
	}
	scopeVal, err := parseNested(r, TypeDocument, depth)
	if err != nil {
		return Value{}, err
	}
	if r.pos-start != int(totalLen) {
		return Value{}, &FrameMismatchError{
			Position: start,
			Declared: totalLen,
			Actual:   int32(r.pos - start),
			Boundary: "javascript-with-scope total_len",
		}
	}
	return Value{Type: TypeJavascriptScope, Str: code, Doc: scopeVal.Doc}, nil
}

func parseBinary(r *Reader) (Value, error) {
	start := r.pos
	l, err := r.ReadI32LE()
	if err != nil {
		return Value{}, err
	}
	if l < 0 {
		return Value{}, &MalformedStringError{Position: start, Length: l, Reason: "negative binary length"}
	}
	subtype, err := r.ReadU8()
	if err != nil {
		return Value{}, err
	}
	b, err := r.ReadBytesOwned(int(l))
	if err != nil {
		return Value{}, err
	}
	return Value{Type: TypeBinary, Bytes: b, Subtype: subtype}, nil
}
