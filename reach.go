package bson

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Reach descends a document through a dotted field path and assigns the
// final value into dst, coercing between BSON's wire types and a handful
// of natural Go representations. Supported coercions:
//
//	double              -> float64
//	string              -> string
//	binary              -> []byte
//	objectid            -> ObjectID, []byte
//	bool                -> bool
//	datetime            -> int64, time.Time
//	javascript, symbol  -> string
//	int32               -> int32, int64
//	timestamp           -> int64, time.Time
//	int64               -> int64
//
// Unlike the teacher's Map/Slice.Reach, which rewraps nested documents
// back into map/list form, Reach returns through child Document views at
// every intermediate step — the descent never copies or flattens
// anything, preserving the zero-copy contract the rest of this package
// holds to (this is the "breaking this compatibility bit consciously"
// choice the design notes call for).
//
// Reach reports (false, nil) if any path segment is absent, and an error
// only for a nil dst, malformed input, or a coercion mismatch.
func (d *Document) Reach(dst interface{}, dot ...string) (bool, error) {
	if dst == nil {
		return false, errors.New("bson: dst must not be nil")
	}
	if len(dot) == 0 {
		return false, nil
	}

	cur := d
	var final Value
	for i, name := range dot {
		v, ok, err := cur.Get(name)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if i == len(dot)-1 {
			final = v
			break
		}
		if v.Type != TypeDocument {
			return false, nil
		}
		cur = v.Doc
	}
	return assignValue(dst, final)
}

func assignError(dstrv reflect.Value, v Value) error {
	return fmt.Errorf("bson: cannot coerce %s into %s", v.Type, dstrv.Type())
}

// assignValue coerces v into dst, following the same indirect-and-
// allocate discipline as the teacher's assign/indirectAlloc: dst may be a
// pointer to a pointer, an interface, etc., and is dereferenced/allocated
// as needed before the final Set.
func assignValue(dst interface{}, v Value) (bool, error) {
	dstrv := indirectAlloc(reflect.ValueOf(dst))

	switch v.Type {
	case TypeDouble:
		if dstrv.Kind() != reflect.Float64 {
			return false, assignError(dstrv, v)
		}
		dstrv.SetFloat(v.Float64)
	case TypeString, TypeJavascript, TypeSymbol:
		if dstrv.Kind() != reflect.String {
			return false, assignError(dstrv, v)
		}
		dstrv.SetString(v.Str)
	case TypeBinary:
		if dstrv.Kind() != reflect.Slice || dstrv.Type().Elem().Kind() != reflect.Uint8 {
			return false, assignError(dstrv, v)
		}
		dstrv.SetBytes(v.Bytes)
	case TypeObjectID:
		id := v.ObjectIDValue()
		switch dstrv.Interface().(type) {
		case ObjectID:
			dstrv.Set(reflect.ValueOf(id))
		default:
			if dstrv.Kind() != reflect.Slice || dstrv.Type().Elem().Kind() != reflect.Uint8 {
				return false, assignError(dstrv, v)
			}
			dstrv.SetBytes(append([]byte(nil), id[:]...))
		}
	case TypeBool:
		if dstrv.Kind() != reflect.Bool {
			return false, assignError(dstrv, v)
		}
		dstrv.SetBool(v.Bool())
	case TypeDateTime:
		switch dstrv.Interface().(type) {
		case time.Time:
			// BSON datetime is milliseconds since epoch; Go time.Time
			// wants nanoseconds.
			dstrv.Set(reflect.ValueOf(time.Unix(0, v.Int64*int64(time.Millisecond))))
		default:
			if dstrv.Kind() != reflect.Int64 {
				return false, assignError(dstrv, v)
			}
			dstrv.SetInt(v.Int64)
		}
	case TypeNull, TypeUndefined, TypeMinKey, TypeMaxKey:
		// Nothing to assign.
	case TypeInt32:
		if dstrv.Kind() != reflect.Int32 && dstrv.Kind() != reflect.Int64 {
			return false, assignError(dstrv, v)
		}
		dstrv.SetInt(int64(v.Int32()))
	case TypeTimestamp:
		switch dstrv.Interface().(type) {
		case time.Time:
			dstrv.Set(reflect.ValueOf(time.Unix(int64(v.TimestampValue().Seconds()), 0)))
		default:
			if dstrv.Kind() != reflect.Int64 {
				return false, assignError(dstrv, v)
			}
			dstrv.SetInt(v.Int64)
		}
	case TypeInt64:
		if dstrv.Kind() != reflect.Int64 {
			return false, assignError(dstrv, v)
		}
		dstrv.SetInt(v.Int64)
	case TypeDecimal128:
		if dstrv.Kind() != reflect.Array || dstrv.Type() != reflect.TypeOf(Decimal128{}) {
			return false, assignError(dstrv, v)
		}
		dstrv.Set(reflect.ValueOf(v.Decimal128Value()))
	case TypeRegexp:
		if dstrv.Type() != reflect.TypeOf(Regexp{}) {
			return false, assignError(dstrv, v)
		}
		dstrv.Set(reflect.ValueOf(v.RegexpValue()))
	case TypeDBPointer:
		if dstrv.Type() != reflect.TypeOf(DBPointer{}) {
			return false, assignError(dstrv, v)
		}
		dstrv.Set(reflect.ValueOf(v.DBPointerValue()))
	case TypeDocument, TypeArray:
		if dstrv.Type() != reflect.TypeOf((*Document)(nil)) {
			return false, assignError(dstrv, v)
		}
		dstrv.Set(reflect.ValueOf(v.Doc))
	default:
		return false, assignError(dstrv, v)
	}
	return true, nil
}

// indirectAlloc dereferences pointers and interfaces, allocating through
// nil ones as needed, until it reaches a settable concrete value.
// Adapted from the teacher's misc.go helper of the same name; this
// version doesn't default a nil interface to a map, since this package
// has no single "default document shape" the way Map/Slice did.
func indirectAlloc(v reflect.Value) reflect.Value {
	for {
		switch v.Kind() {
		case reflect.Interface:
			if v.IsNil() {
				return v
			}
			v = v.Elem()
		case reflect.Ptr:
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		default:
			return v
		}
	}
}
