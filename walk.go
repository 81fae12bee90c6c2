package bson

// walkElements scans one document or array's elements in wire order,
// validating the frame exactly once, and calls fn for each element with
// its tag, name bytes, and value window. The index builder (index.go),
// the eager document factories (eager.go), and the homogeneous array
// fast path (array.go) all share this scan instead of each re-deriving
// their own notion of "where does the next element start" — sizeOfAt
// remains the only place that knows how big a value is; this only
// knows how to walk between them.
func walkElements(buf []byte, off, length int, fn func(tag Type, name []byte, valueOff, valueSize int) error) error {
	if length < 5 {
		return &FrameMismatchError{Position: off, Declared: int32(length), Boundary: "document shorter than minimum 5 bytes"}
	}
	if off+length > len(buf) {
		return &BufferUnderflowError{Position: off, Required: length, Available: len(buf) - off}
	}
	if buf[off+length-1] != 0x00 {
		return &FrameMismatchError{Position: off, Declared: int32(length), Boundary: "missing trailing 0x00"}
	}

	r := &Reader{buf: buf, pos: off}
	declared, err := r.ReadI32LE()
	if err != nil {
		return err
	}
	if int(declared) != length {
		return &FrameMismatchError{
			Position: off,
			Declared: declared,
			Actual:   int32(length),
			Boundary: "embedded length vs. window length",
		}
	}

	end := off + length - 1
	for r.pos != end {
		tagByte, err := r.ReadU8()
		if err != nil {
			return err
		}
		tag := Type(tagByte)
		nameOff := r.pos
		if err := r.SkipCString(); err != nil {
			return err
		}
		name := buf[nameOff : r.pos-1]
		valueOff := r.pos
		size, err := sizeOfAt(buf, tag, valueOff)
		if err != nil {
			return withField(err, string(name))
		}
		if err := r.Skip(size); err != nil {
			return err
		}
		if r.pos > end {
			return &FrameMismatchError{
				Position: valueOff,
				Declared: int32(length),
				Actual:   int32(r.pos - off),
				Boundary: "element overruns document terminator",
			}
		}
		if err := fn(tag, name, valueOff, size); err != nil {
			return err
		}
	}
	if r.pos != end {
		return &FrameMismatchError{Position: r.pos, Declared: int32(length), Boundary: "scan did not reach terminator"}
	}
	return nil
}
