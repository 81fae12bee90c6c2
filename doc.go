// Package bson implements a zero-copy, index-based, lazily-evaluating
// decoder for the BSON wire format (https://bsonspec.org/spec.html,
// revision 1.1).
//
// Parse builds an Document: an immutable view over the caller's byte
// slice that indexes field names on construction but defers decoding
// each value until it is actually asked for, and caches the result once
// decoded. Nested documents and arrays are returned as child views over
// the same backing buffer — nothing is copied unless a caller explicitly
// asks for an owned value.
//
// Three document factories produce the same logical fields from the same
// bytes: Document (this lazy indexed view, the default), EagerMap, and
// EagerSlice. See eager.go.
package bson

import (
	"encoding/json"
	"sync"
)

// Document is an immutable, zero-copy view over one BSON document's
// bytes. It borrows its backing buffer; the buffer must outlive the
// Document and any value read from it via ToBson or a byte-returning
// getter. A single Document's lazy cache is not safe for concurrent
// writers — construct on one goroutine, then either keep using it there
// or treat it as read-only once handed to others. Cache slots are read
// and written under cacheMu.
type Document struct {
	buf    []byte
	off    int
	length int
	depth  int

	indexOnce sync.Once
	indexErr  error
	index     []fieldEntry

	cacheMu sync.Mutex
	cache   []cacheSlot
}

// Parse builds an indexed Document view over b. b is borrowed, not
// copied: every Document, child view, and borrowed slice derived from it
// must not outlive b. Parse is O(n) in document length; no per-value
// parsing happens until a typed getter asks for that value.
func Parse(b []byte) (*Document, error) {
	d := &Document{buf: b, off: 0, length: len(b)}
	if err := d.ensureIndexed(); err != nil {
		return nil, err
	}
	return d, nil
}

// getEntry resolves name to its field entry, indexing the document on
// first use.
func (d *Document) getEntry(name string) (*fieldEntry, error) {
	if err := d.ensureIndexed(); err != nil {
		return nil, err
	}
	e, ok := d.lookup(name)
	if !ok {
		return nil, nil
	}
	return e, nil
}

// getValue resolves name to its decoded value, parsing and caching it on
// first access. It returns (value, found, error).
func (d *Document) getValue(name string) (Value, bool, error) {
	e, err := d.getEntry(name)
	if err != nil {
		return Value{}, false, err
	}
	if e == nil {
		return Value{}, false, nil
	}
	idx, err := d.entryIndex(e)
	if err != nil {
		return Value{}, false, err
	}

	d.cacheMu.Lock()
	slot := d.cache[idx]
	d.cacheMu.Unlock()
	if slot.has {
		return slot.val, true, nil
	}

	r := &Reader{buf: d.buf, pos: e.valueOffset}
	val, err := parseValue(r, e.typ, d.depth)
	if err != nil {
		return Value{}, false, withField(err, name)
	}

	d.cacheMu.Lock()
	d.cache[idx] = cacheSlot{has: true, val: val}
	d.cacheMu.Unlock()
	return val, true, nil
}

// entryIndex returns the cache slot for e. The index is sorted by hash,
// but the cache is addressed by wire order, so this is e's recorded
// wire-order position rather than its place in d.index.
func (d *Document) entryIndex(e *fieldEntry) (int, error) {
	return e.position, nil
}

// Contains reports whether name is present as a top-level field.
func (d *Document) Contains(name string) (bool, error) {
	e, err := d.getEntry(name)
	if err != nil {
		return false, err
	}
	return e != nil, nil
}

// TypeOf returns the wire type of name. The second result is false if
// name is absent.
func (d *Document) TypeOf(name string) (Type, bool, error) {
	e, err := d.getEntry(name)
	if err != nil {
		return 0, false, err
	}
	if e == nil {
		return 0, false, nil
	}
	return e.typ, true, nil
}

// IsNull reports whether name is present and decodes to Null (which
// includes the deprecated Undefined tag, per the wire-compatibility
// rule). Absent fields report false.
func (d *Document) IsNull(name string) (bool, error) {
	typ, ok, err := d.TypeOf(name)
	if err != nil || !ok {
		return false, err
	}
	return typ == TypeNull || typ == TypeUndefined, nil
}

// FieldNames returns every top-level field name, in wire order.
func (d *Document) FieldNames() ([]string, error) {
	if err := d.ensureIndexed(); err != nil {
		return nil, err
	}
	names := make([]string, len(d.index))
	for i := range d.index {
		names[d.index[i].position] = string(d.nameBytes(&d.index[i]))
	}
	return names, nil
}

// Size returns the number of top-level fields.
func (d *Document) Size() (int, error) {
	if err := d.ensureIndexed(); err != nil {
		return 0, err
	}
	return len(d.index), nil
}

// IsEmpty reports whether the document has zero top-level fields.
func (d *Document) IsEmpty() (bool, error) {
	n, err := d.Size()
	return n == 0, err
}

// ToBson returns the original byte range this Document was built from —
// the zero-copy contract and the round-trip law: Parse(b).ToBson()
// equals b for any well-formed b.
func (d *Document) ToBson() []byte {
	return d.buf[d.off : d.off+d.length]
}

func typeMismatch(name string, requested, actual Type) error {
	return &TypeMismatchError{Field: name, Requested: requested, Actual: actual}
}

// GetInt32 returns the int32 field name. Returns TypeMismatchError if the
// field exists with a different type, FieldNotFoundError if absent.
func (d *Document) GetInt32(name string) (int32, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeInt32 {
		return 0, typeMismatch(name, TypeInt32, v.Type)
	}
	return v.Int32(), nil
}

// GetInt32OrDefault returns def on absence or type mismatch.
func (d *Document) GetInt32OrDefault(name string, def int32) int32 {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeInt32 {
		return def
	}
	return v.Int32()
}

// GetInt64 returns the int64 field name.
func (d *Document) GetInt64(name string) (int64, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeInt64 {
		return 0, typeMismatch(name, TypeInt64, v.Type)
	}
	return v.Int64, nil
}

// GetInt64OrDefault returns def on absence or type mismatch.
func (d *Document) GetInt64OrDefault(name string, def int64) int64 {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeInt64 {
		return def
	}
	return v.Int64
}

// GetDouble returns the double field name.
func (d *Document) GetDouble(name string) (float64, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeDouble {
		return 0, typeMismatch(name, TypeDouble, v.Type)
	}
	return v.Float64, nil
}

// GetDoubleOrDefault returns def on absence or type mismatch.
func (d *Document) GetDoubleOrDefault(name string, def float64) float64 {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeDouble {
		return def
	}
	return v.Float64
}

// GetBool returns the bool field name.
func (d *Document) GetBool(name string) (bool, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeBool {
		return false, typeMismatch(name, TypeBool, v.Type)
	}
	return v.Bool(), nil
}

// GetBoolOrDefault returns def on absence or type mismatch.
func (d *Document) GetBoolOrDefault(name string, def bool) bool {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeBool {
		return def
	}
	return v.Bool()
}

// GetString returns the string field name.
func (d *Document) GetString(name string) (string, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeString {
		return "", typeMismatch(name, TypeString, v.Type)
	}
	return v.Str, nil
}

// GetStringOrDefault returns def on absence or type mismatch.
func (d *Document) GetStringOrDefault(name string, def string) string {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeString {
		return def
	}
	return v.Str
}

// GetDocument returns a child Document view of the embedded document
// field name. The child shares the same backing buffer.
func (d *Document) GetDocument(name string) (*Document, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeDocument {
		return nil, typeMismatch(name, TypeDocument, v.Type)
	}
	return v.Doc, nil
}

// GetDocumentOrDefault returns def on absence or type mismatch.
func (d *Document) GetDocumentOrDefault(name string, def *Document) *Document {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeDocument {
		return def
	}
	return v.Doc
}

// GetArray returns a child Document view of the array field name, keyed
// "0".."n-1" exactly like a document. Use the typed getters with those
// keys, or the homogeneous fast path (array.go), to read it as a sequence.
func (d *Document) GetArray(name string) (*Document, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeArray {
		return nil, typeMismatch(name, TypeArray, v.Type)
	}
	return v.Doc, nil
}

// GetArrayOrDefault returns def on absence or type mismatch.
func (d *Document) GetArrayOrDefault(name string, def *Document) *Document {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeArray {
		return def
	}
	return v.Doc
}

// GetObjectIDHex returns the 24-hex-digit rendering of an ObjectID field.
func (d *Document) GetObjectIDHex(name string) (string, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeObjectID {
		return "", typeMismatch(name, TypeObjectID, v.Type)
	}
	return v.ObjectIDValue().Hex(), nil
}

// GetObjectIDHexOrDefault returns def on absence or type mismatch.
func (d *Document) GetObjectIDHexOrDefault(name string, def string) string {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeObjectID {
		return def
	}
	return v.ObjectIDValue().Hex()
}

// GetDateTime returns the raw milliseconds-since-epoch of a datetime
// field.
func (d *Document) GetDateTime(name string) (int64, error) {
	v, ok, err := d.getValue(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &FieldNotFoundError{Field: name}
	}
	if v.Type != TypeDateTime {
		return 0, typeMismatch(name, TypeDateTime, v.Type)
	}
	return v.DateTime(), nil
}

// GetDateTimeOrDefault returns def on absence or type mismatch.
func (d *Document) GetDateTimeOrDefault(name string, def int64) int64 {
	v, ok, err := d.getValue(name)
	if err != nil || !ok || v.Type != TypeDateTime {
		return def
	}
	return v.DateTime()
}

// Get returns the raw decoded Value for name, regardless of type. Used
// by the Reach helper and by callers that want to type-switch on
// Value.Type themselves.
func (d *Document) Get(name string) (Value, bool, error) {
	return d.getValue(name)
}

// ToJSON renders the document as a JSON string, built through the public
// FieldNames/Get surface rather than by re-walking the raw bytes.
// Timestamp, Decimal128, Regexp, MinKey, and MaxKey have no natural JSON
// form; ToJSON fails with UnsupportedOperationError for them instead of
// emitting a placeholder, and applies that policy uniformly at every
// nesting depth.
func (d *Document) ToJSON() (string, error) {
	obj, err := d.jsonObject()
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// jsonObject converts d's fields into a plain map suitable for
// json.Marshal, recursing into nested documents and arrays.
func (d *Document) jsonObject() (map[string]interface{}, error) {
	names, err := d.FieldNames()
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(names))
	for _, name := range names {
		v, ok, err := d.getValue(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		jv, err := jsonValueOf(v)
		if err != nil {
			return nil, err
		}
		out[name] = jv
	}
	return out, nil
}

// jsonArray converts an array-typed child Document (keyed "0".."n-1")
// into a plain slice suitable for json.Marshal.
func (d *Document) jsonArray() ([]interface{}, error) {
	names, err := d.FieldNames()
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(names))
	for _, name := range names {
		v, ok, err := d.getValue(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		jv, err := jsonValueOf(v)
		if err != nil {
			return nil, err
		}
		out = append(out, jv)
	}
	return out, nil
}

// jsonValueOf maps one decoded Value onto its JSON representation.
// Timestamp, Decimal128, Regexp, MinKey, and MaxKey are rejected with
// UnsupportedOperationError — the failure policy ToJSON picked for types
// without a natural textual form (spec.md's to_json Open Question).
func jsonValueOf(v Value) (interface{}, error) {
	switch v.Type {
	case TypeDouble:
		return v.Float64, nil
	case TypeString, TypeJavascript, TypeSymbol:
		return v.Str, nil
	case TypeDocument:
		return v.Doc.jsonObject()
	case TypeArray:
		return v.Doc.jsonArray()
	case TypeBinary:
		return v.Bytes, nil
	case TypeObjectID:
		return v.ObjectIDValue().Hex(), nil
	case TypeBool:
		return v.Bool(), nil
	case TypeDateTime:
		return v.DateTime(), nil
	case TypeNull, TypeUndefined:
		return nil, nil
	case TypeDBPointer:
		p := v.DBPointerValue()
		return map[string]interface{}{"namespace": p.Namespace, "objectId": p.ObjectID.Hex()}, nil
	case TypeJavascriptScope:
		scope, err := v.Doc.jsonObject()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"code": v.Str, "scope": scope}, nil
	case TypeInt32:
		return v.Int32(), nil
	case TypeInt64:
		return v.Int64, nil
	case TypeTimestamp, TypeDecimal128, TypeRegexp, TypeMinKey, TypeMaxKey:
		return nil, &UnsupportedOperationError{Op: "ToJSON", Type: v.Type}
	default:
		return nil, &UnsupportedOperationError{Op: "ToJSON", Type: v.Type}
	}
}
