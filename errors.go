package bson

import (
	"fmt"

	"github.com/pkg/errors"
)

// BufferUnderflowError is returned when a read would cross the end of the
// underlying buffer.
type BufferUnderflowError struct {
	Position  int
	Required  int
	Available int
}

func (e *BufferUnderflowError) Error() string {
	return fmt.Sprintf("bson: buffer underflow at position %d: need %d bytes, have %d",
		e.Position, e.Required, e.Available)
}

// InvalidBsonTypeError is returned when a dispatched type tag has no parser.
type InvalidBsonTypeError struct {
	Tag      byte
	Position int
}

func (e *InvalidBsonTypeError) Error() string {
	return fmt.Sprintf("bson: invalid type 0x%02X at position %d", e.Tag, e.Position)
}

// InvalidBooleanError is returned when a boolean byte is outside {0,1}.
type InvalidBooleanError struct {
	Byte     byte
	Position int
}

func (e *InvalidBooleanError) Error() string {
	return fmt.Sprintf("bson: invalid boolean byte 0x%02X at position %d", e.Byte, e.Position)
}

// MalformedCStringError is returned when no terminator is found before the
// end of the buffer.
type MalformedCStringError struct {
	Start int
}

func (e *MalformedCStringError) Error() string {
	return fmt.Sprintf("bson: unterminated cstring starting at position %d", e.Start)
}

// MalformedStringError is returned when a length-prefixed string's length is
// less than 1, or its trailing byte is not 0x00.
type MalformedStringError struct {
	Position int
	Length   int32
	Reason   string
}

func (e *MalformedStringError) Error() string {
	return fmt.Sprintf("bson: malformed string at position %d (length %d): %s",
		e.Position, e.Length, e.Reason)
}

// FrameMismatchError is returned when a document or array's declared length
// contradicts the sum of its element sizes plus the trailing terminator.
type FrameMismatchError struct {
	Position int
	Declared int32
	Actual   int32
	Boundary string
}

func (e *FrameMismatchError) Error() string {
	return fmt.Sprintf("bson: frame mismatch at position %d: declared %d, actual %d (%s)",
		e.Position, e.Declared, e.Actual, e.Boundary)
}

// TypeMismatchError is returned when a typed getter is called against a
// field whose wire type does not match.
type TypeMismatchError struct {
	Field     string
	Requested Type
	Actual    Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("bson: field %q: requested type %s, actual type %s",
		e.Field, e.Requested, e.Actual)
}

// FieldNotFoundError is returned by a non-defaulting typed getter when the
// field is absent.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("bson: field %q not found", e.Field)
}

// HeterogeneousArrayError is returned by the homogeneous array fast path
// when an element's tag doesn't match the declared element type.
type HeterogeneousArrayError struct {
	Index    int
	Expected Type
	Got      Type
}

func (e *HeterogeneousArrayError) Error() string {
	return fmt.Sprintf("bson: heterogeneous array at element %d: expected %s, got %s",
		e.Index, e.Expected, e.Got)
}

// UnsupportedOperationError is returned when an operation has no defined
// behavior for a given type (e.g. ToJSON on a Timestamp).
type UnsupportedOperationError struct {
	Op   string
	Type Type
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("bson: %s unsupported for type %s", e.Op, e.Type)
}

// withField wraps an error with a `field "name"` prefix. Where nested
// decoding wraps at each level (the eager factories do), the outermost
// caller sees one prefix per level, outermost first, as in
// `field "a": field "b": ...`; the names are not joined into a single
// dot-separated path.
func withField(err error, field string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "field %q", field)
}
