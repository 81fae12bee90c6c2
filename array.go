package bson

// ArrayElementType names a uniform element type a caller can declare for
// an array field (spec §4.9, §6.3's array_element_type). ArrayElementAuto
// means "inspect the first element and use its tag," the auto-detect
// behavior the zero value is defined to mean.
type ArrayElementType int

const (
	ArrayElementAuto ArrayElementType = iota
	ArrayElementInt32
	ArrayElementInt64
	ArrayElementDouble
	ArrayElementString
	ArrayElementBool
)

func (t ArrayElementType) wireType() (Type, bool) {
	switch t {
	case ArrayElementInt32:
		return TypeInt32, true
	case ArrayElementInt64:
		return TypeInt64, true
	case ArrayElementDouble:
		return TypeDouble, true
	case ArrayElementString:
		return TypeString, true
	case ArrayElementBool:
		return TypeBool, true
	default:
		return 0, false
	}
}

// detectElementType inspects the array's first element and returns its
// tag, used when the caller passes ArrayElementAuto.
func detectElementType(d *Document) (Type, error) {
	var first Type
	seen := false
	err := walkElements(d.buf, d.off, d.length, func(tag Type, name []byte, valueOff, valueSize int) error {
		if !seen {
			first = tag
			seen = true
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if !seen {
		return 0, nil
	}
	return first, nil
}

// Int32Array decodes d (an array Document) as a contiguous []int32,
// verifying every element's tag is TypeInt32. It is byte-exact equivalent
// to decoding the same array through the generic indexed path.
func (d *Document) Int32Array() ([]int32, error) {
	var out []int32
	idx := 0
	err := walkElements(d.buf, d.off, d.length, func(tag Type, name []byte, valueOff, valueSize int) error {
		if tag != TypeInt32 {
			return &HeterogeneousArrayError{Index: idx, Expected: TypeInt32, Got: tag}
		}
		r := &Reader{buf: d.buf, pos: valueOff}
		v, err := r.ReadI32LE()
		if err != nil {
			return err
		}
		out = append(out, v)
		idx++
		return nil
	})
	return out, err
}

// Int64Array decodes d as a contiguous []int64, verifying every element's
// tag is TypeInt64.
func (d *Document) Int64Array() ([]int64, error) {
	var out []int64
	idx := 0
	err := walkElements(d.buf, d.off, d.length, func(tag Type, name []byte, valueOff, valueSize int) error {
		if tag != TypeInt64 {
			return &HeterogeneousArrayError{Index: idx, Expected: TypeInt64, Got: tag}
		}
		r := &Reader{buf: d.buf, pos: valueOff}
		v, err := r.ReadI64LE()
		if err != nil {
			return err
		}
		out = append(out, v)
		idx++
		return nil
	})
	return out, err
}

// DoubleArray decodes d as a contiguous []float64, verifying every
// element's tag is TypeDouble.
func (d *Document) DoubleArray() ([]float64, error) {
	var out []float64
	idx := 0
	err := walkElements(d.buf, d.off, d.length, func(tag Type, name []byte, valueOff, valueSize int) error {
		if tag != TypeDouble {
			return &HeterogeneousArrayError{Index: idx, Expected: TypeDouble, Got: tag}
		}
		r := &Reader{buf: d.buf, pos: valueOff}
		v, err := r.ReadF64LE()
		if err != nil {
			return err
		}
		out = append(out, v)
		idx++
		return nil
	})
	return out, err
}

// StringArray decodes d as a contiguous []string, verifying every
// element's tag is TypeString.
func (d *Document) StringArray() ([]string, error) {
	var out []string
	idx := 0
	err := walkElements(d.buf, d.off, d.length, func(tag Type, name []byte, valueOff, valueSize int) error {
		if tag != TypeString {
			return &HeterogeneousArrayError{Index: idx, Expected: TypeString, Got: tag}
		}
		r := &Reader{buf: d.buf, pos: valueOff}
		s, err := readLengthPrefixedString(r)
		if err != nil {
			return err
		}
		out = append(out, s)
		idx++
		return nil
	})
	return out, err
}

// BoolArray decodes d as a contiguous []bool, verifying every element's
// tag is TypeBool.
func (d *Document) BoolArray() ([]bool, error) {
	var out []bool
	idx := 0
	err := walkElements(d.buf, d.off, d.length, func(tag Type, name []byte, valueOff, valueSize int) error {
		if tag != TypeBool {
			return &HeterogeneousArrayError{Index: idx, Expected: TypeBool, Got: tag}
		}
		b := d.buf[valueOff]
		if b != 0x00 && b != 0x01 {
			return &InvalidBooleanError{Byte: b, Position: valueOff}
		}
		out = append(out, b == 0x01)
		idx++
		return nil
	})
	return out, err
}

// HomogeneousArray decodes d according to elemType, auto-detecting from
// the first element when elemType is ArrayElementAuto. The result is one
// of []int32, []int64, []float64, []string, or []bool.
func (d *Document) HomogeneousArray(elemType ArrayElementType) (interface{}, error) {
	want, explicit := elemType.wireType()
	if !explicit {
		detected, err := detectElementType(d)
		if err != nil {
			return nil, err
		}
		want = detected
	}
	switch want {
	case TypeInt32:
		return d.Int32Array()
	case TypeInt64:
		return d.Int64Array()
	case TypeDouble:
		return d.DoubleArray()
	case TypeString:
		return d.StringArray()
	case TypeBool:
		return d.BoolArray()
	default:
		return nil, &UnsupportedOperationError{Op: "HomogeneousArray", Type: want}
	}
}
