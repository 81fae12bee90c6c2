package bson

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseMinimalStringAndInt(t *testing.T) {
	// S1: "name":"Alice", "age":30
	b := newDocBuilder().String("name", "Alice").Int32("age", 30).Build()

	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	name, err := d.GetString("name")
	if err != nil || name != "Alice" {
		t.Fatalf("name = %q, %v", name, err)
	}
	age, err := d.GetInt32("age")
	if err != nil || age != 30 {
		t.Fatalf("age = %d, %v", age, err)
	}
	size, err := d.Size()
	if err != nil || size != 2 {
		t.Fatalf("size = %d, %v", size, err)
	}
}

func TestParseNestedDocument(t *testing.T) {
	// S2: "user": {"name":"Bob", "age":25}
	inner := newDocBuilder().String("name", "Bob").Int32("age", 25).Build()
	b := newDocBuilder().Doc("user", inner).Build()

	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	user, err := d.GetDocument("user")
	if err != nil {
		t.Fatal(err)
	}
	name, err := user.GetString("name")
	if err != nil || name != "Bob" {
		t.Fatalf("user.name = %q, %v", name, err)
	}
	if string(user.ToBson()) != string(inner) {
		t.Fatalf("child ToBson mismatch")
	}
}

func TestRoundTrip(t *testing.T) {
	b := newDocBuilder().
		String("a", "hello").
		Int32("b", 7).
		Int64("c", -9001).
		Double("d", 3.5).
		Bool("e", true).
		Build()

	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	got := d.ToBson()
	if len(got) != len(b) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(b))
	}
	for i := range b {
		if got[i] != b[i] {
			t.Fatalf("byte %d differs: got %x want %x", i, got[i], b[i])
		}
	}
}

func TestFieldPresenceAndTypeOf(t *testing.T) {
	b := newDocBuilder().String("s", "x").Int32("i", 1).Build()
	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	names, err := d.FieldNames()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"s": true, "i": true}
	if len(names) != len(want) {
		t.Fatalf("field names = %v", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected field %q", n)
		}
		ok, err := d.Contains(n)
		if err != nil || !ok {
			t.Fatalf("Contains(%q) = %v, %v", n, ok, err)
		}
	}
	typ, ok, err := d.TypeOf("s")
	if err != nil || !ok || typ != TypeString {
		t.Fatalf("TypeOf(s) = %v, %v, %v", typ, ok, err)
	}
}

func TestIdempotentAccess(t *testing.T) {
	b := newDocBuilder().String("s", "repeat-me").Build()
	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	first, err := d.GetString("s")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := d.GetString("s")
		if err != nil || again != first {
			t.Fatalf("iteration %d: got %q, want %q (%v)", i, again, first, err)
		}
	}
}

func TestTypeMismatchAndFieldNotFound(t *testing.T) {
	b := newDocBuilder().String("s", "x").Build()
	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.GetInt32("s"); err == nil {
		t.Fatal("expected TypeMismatchError")
	} else if _, ok := err.(*TypeMismatchError); !ok {
		t.Fatalf("expected *TypeMismatchError, got %T", err)
	}
	if _, err := d.GetString("missing"); err == nil {
		t.Fatal("expected FieldNotFoundError")
	} else if _, ok := err.(*FieldNotFoundError); !ok {
		t.Fatalf("expected *FieldNotFoundError, got %T", err)
	}
	if got := d.GetInt32OrDefault("s", 42); got != 42 {
		t.Fatalf("GetInt32OrDefault = %d, want 42", got)
	}
}

func TestEmptyDocument(t *testing.T) {
	b := []byte{5, 0, 0, 0, 0}
	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	empty, err := d.IsEmpty()
	if err != nil || !empty {
		t.Fatalf("IsEmpty = %v, %v", empty, err)
	}
}

func TestMalformedTruncation(t *testing.T) {
	// S6: truncate a valid document by one byte.
	b := newDocBuilder().String("s", "value").Build()
	truncated := b[:len(b)-1]
	if _, err := Parse(truncated); err == nil {
		t.Fatal("expected an error parsing truncated input")
	}
}

func TestUndefinedDecodesAsNull(t *testing.T) {
	b := newDocBuilder().Undefined("u").Build()
	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	isNull, err := d.IsNull("u")
	if err != nil || !isNull {
		t.Fatalf("IsNull(u) = %v, %v", isNull, err)
	}
}

func TestGetObjectIDHex(t *testing.T) {
	var id [12]byte
	for i := range id {
		id[i] = byte(i)
	}
	b := newDocBuilder().ObjectID("_id", id).Build()
	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	hex, err := d.GetObjectIDHex("_id")
	if err != nil {
		t.Fatal(err)
	}
	if hex != "000102030405060708090a0b" {
		t.Fatalf("hex = %q", hex)
	}
}

func TestToJSON(t *testing.T) {
	inner := newDocBuilder().String("city", "NYC").Build()
	arr := newDocBuilder().Int32("0", 1).Int32("1", 2).Build()
	b := newDocBuilder().
		String("name", "Alice").
		Int32("age", 30).
		Bool("active", true).
		Null("nickname").
		Doc("address", inner).
		Array("scores", arr).
		Build()

	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	s, err := d.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("ToJSON produced invalid JSON %q: %v", s, err)
	}
	if decoded["name"] != "Alice" {
		t.Fatalf("name = %v", decoded["name"])
	}
	if decoded["nickname"] != nil {
		t.Fatalf("nickname = %v, want nil", decoded["nickname"])
	}
	addr, ok := decoded["address"].(map[string]interface{})
	if !ok || addr["city"] != "NYC" {
		t.Fatalf("address = %v", decoded["address"])
	}
	scores, ok := decoded["scores"].([]interface{})
	if !ok || len(scores) != 2 {
		t.Fatalf("scores = %v", decoded["scores"])
	}
}

func TestToJSONUnsupportedType(t *testing.T) {
	b := newDocBuilder().Timestamp("ts", 1).Build()
	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.ToJSON()
	if err == nil {
		t.Fatal("expected UnsupportedOperationError for Timestamp")
	}
	var unsupported *UnsupportedOperationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *UnsupportedOperationError", err)
	}
	if unsupported.Type != TypeTimestamp {
		t.Fatalf("unsupported.Type = %v", unsupported.Type)
	}
}
