package bson

// Value is a decoded BSON value. It is a tagged union rather than an
// interface{}-boxed hierarchy of concrete types: Type discriminates which
// of the remaining fields are meaningful, so a dispatch on Type is a
// field read, not a vtable call or a type switch over a heap-allocated
// wrapper. Only one "arm" of the union is live at a time per the table
// below.
//
//	Type                Live fields
//	TypeDouble          Float64
//	TypeString          Str
//	TypeDocument        Doc
//	TypeArray           Doc (same indexed view, keys "0".."n-1")
//	TypeBinary          Bytes, Subtype
//	TypeUndefined       (none; decodes as Null per the wire compatibility rule)
//	TypeObjectID        Bytes (len 12)
//	TypeBool            Int64 (0 or 1)
//	TypeDateTime        Int64 (ms since epoch)
//	TypeNull            (none)
//	TypeRegexp          Str (pattern), Str2 (options)
//	TypeDBPointer       Str (namespace), Bytes (objectId, len 12)
//	TypeJavascript      Str
//	TypeSymbol          Str
//	TypeJavascriptScope Str (code), Doc (scope)
//	TypeInt32           Int64 (sign-extended)
//	TypeTimestamp       Int64 (raw packed uint64, see Timestamp)
//	TypeInt64           Int64
//	TypeDecimal128      Bytes (len 16)
//	TypeMinKey          (none)
//	TypeMaxKey          (none)
type Value struct {
	Type    Type
	Int64   int64
	Float64 float64
	Str     string
	Str2    string
	Bytes   []byte
	Subtype byte
	Doc     *Document
}

// Bool reports the value as a bool. Meaningful only when Type == TypeBool.
func (v Value) Bool() bool { return v.Int64 != 0 }

// Int32 reports the value narrowed to int32. Meaningful only when
// Type == TypeInt32.
func (v Value) Int32() int32 { return int32(v.Int64) }

// DateTime reports milliseconds since the Unix epoch. Meaningful only when
// Type == TypeDateTime.
func (v Value) DateTime() int64 { return v.Int64 }

// TimestampValue reinterprets Int64 as a packed Timestamp. Meaningful only
// when Type == TypeTimestamp.
func (v Value) TimestampValue() Timestamp { return Timestamp(uint64(v.Int64)) }

// ObjectIDValue copies Bytes into a fixed-size ObjectID. Meaningful only
// when Type == TypeObjectID.
func (v Value) ObjectIDValue() ObjectID {
	var id ObjectID
	copy(id[:], v.Bytes)
	return id
}

// RegexpValue reports the pattern/options pair. Meaningful only when
// Type == TypeRegexp.
func (v Value) RegexpValue() Regexp { return Regexp{Pattern: v.Str, Options: v.Str2} }

// DBPointerValue reports the namespace/objectId pair. Meaningful only when
// Type == TypeDBPointer.
func (v Value) DBPointerValue() DBPointer {
	var id ObjectID
	copy(id[:], v.Bytes)
	return DBPointer{Namespace: v.Str, ObjectID: id}
}

// Decimal128Value copies Bytes into a fixed-size Decimal128. Meaningful
// only when Type == TypeDecimal128.
func (v Value) Decimal128Value() Decimal128 {
	var d Decimal128
	copy(d[:], v.Bytes)
	return d
}
