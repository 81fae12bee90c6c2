package bson

import (
	"bytes"
	"encoding/binary"
)

// docBuilder is a test-only BSON encoder, adapted from the teacher's
// encodeMap/encodeSlice (encode.go) but trimmed to a plain ordered
// builder: this package has no production encoder (the spec calls the
// encoder "deliberately absent"), so every fixture the test suite needs
// is built here instead, one field at a time, in the same
// length-prefix-then-backpatch style encodeMap used.
type docBuilder struct {
	buf *bytes.Buffer
}

func newDocBuilder() *docBuilder {
	buf := bytes.NewBuffer(make([]byte, 0, 64))
	buf.Write([]byte{0, 0, 0, 0}) // placeholder length, patched in Build
	return &docBuilder{buf: buf}
}

func (b *docBuilder) field(tag Type, name string) {
	b.buf.WriteByte(byte(tag))
	b.buf.WriteString(name)
	b.buf.WriteByte(0x00)
}

func (b *docBuilder) Double(name string, v float64) *docBuilder {
	b.field(TypeDouble, name)
	binary.Write(b.buf, binary.LittleEndian, v)
	return b
}

func (b *docBuilder) String(name string, v string) *docBuilder {
	b.field(TypeString, name)
	writeLenString(b.buf, v)
	return b
}

func (b *docBuilder) Doc(name string, inner []byte) *docBuilder {
	b.field(TypeDocument, name)
	b.buf.Write(inner)
	return b
}

func (b *docBuilder) Array(name string, inner []byte) *docBuilder {
	b.field(TypeArray, name)
	b.buf.Write(inner)
	return b
}

func (b *docBuilder) Binary(name string, subtype byte, data []byte) *docBuilder {
	b.field(TypeBinary, name)
	binary.Write(b.buf, binary.LittleEndian, int32(len(data)))
	b.buf.WriteByte(subtype)
	b.buf.Write(data)
	return b
}

func (b *docBuilder) Undefined(name string) *docBuilder {
	b.field(TypeUndefined, name)
	return b
}

func (b *docBuilder) ObjectID(name string, id [12]byte) *docBuilder {
	b.field(TypeObjectID, name)
	b.buf.Write(id[:])
	return b
}

func (b *docBuilder) Bool(name string, v bool) *docBuilder {
	b.field(TypeBool, name)
	if v {
		b.buf.WriteByte(0x01)
	} else {
		b.buf.WriteByte(0x00)
	}
	return b
}

func (b *docBuilder) DateTime(name string, ms int64) *docBuilder {
	b.field(TypeDateTime, name)
	binary.Write(b.buf, binary.LittleEndian, ms)
	return b
}

func (b *docBuilder) Null(name string) *docBuilder {
	b.field(TypeNull, name)
	return b
}

func (b *docBuilder) Regexp(name, pattern, options string) *docBuilder {
	b.field(TypeRegexp, name)
	b.buf.WriteString(pattern)
	b.buf.WriteByte(0x00)
	b.buf.WriteString(options)
	b.buf.WriteByte(0x00)
	return b
}

func (b *docBuilder) DBPointer(name, ns string, id [12]byte) *docBuilder {
	b.field(TypeDBPointer, name)
	writeLenString(b.buf, ns)
	b.buf.Write(id[:])
	return b
}

func (b *docBuilder) Javascript(name, code string) *docBuilder {
	b.field(TypeJavascript, name)
	writeLenString(b.buf, code)
	return b
}

func (b *docBuilder) Symbol(name, sym string) *docBuilder {
	b.field(TypeSymbol, name)
	writeLenString(b.buf, sym)
	return b
}

func (b *docBuilder) JavascriptScope(name, code string, scope []byte) *docBuilder {
	b.field(TypeJavascriptScope, name)
	inner := &bytes.Buffer{}
	writeLenString(inner, code)
	inner.Write(scope)
	binary.Write(b.buf, binary.LittleEndian, int32(4+inner.Len()))
	b.buf.Write(inner.Bytes())
	return b
}

func (b *docBuilder) Int32(name string, v int32) *docBuilder {
	b.field(TypeInt32, name)
	binary.Write(b.buf, binary.LittleEndian, v)
	return b
}

func (b *docBuilder) Timestamp(name string, v uint64) *docBuilder {
	b.field(TypeTimestamp, name)
	binary.Write(b.buf, binary.LittleEndian, v)
	return b
}

func (b *docBuilder) Int64(name string, v int64) *docBuilder {
	b.field(TypeInt64, name)
	binary.Write(b.buf, binary.LittleEndian, v)
	return b
}

func (b *docBuilder) Decimal128(name string, v [16]byte) *docBuilder {
	b.field(TypeDecimal128, name)
	b.buf.Write(v[:])
	return b
}

func (b *docBuilder) MinKey(name string) *docBuilder {
	b.field(TypeMinKey, name)
	return b
}

func (b *docBuilder) MaxKey(name string) *docBuilder {
	b.field(TypeMaxKey, name)
	return b
}

// Build finalizes the document: writes the terminating 0x00 and
// backpatches the length prefix, exactly like encodeMap's
// write-then-patch approach.
func (b *docBuilder) Build() []byte {
	b.buf.WriteByte(0x00)
	out := b.buf.Bytes()
	binary.LittleEndian.PutUint32(out, uint32(len(out)))
	return out
}

func writeLenString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, int32(len(s)+1))
	buf.WriteString(s)
	buf.WriteByte(0x00)
}
