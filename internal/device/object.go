package device

import (
	"errors"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI leaves HTML characters unescaped so payloads match what native
// JSON encoders on the device produce.
var jsonAPI = jsoniter.Config{EscapeHTML: false}.Froze()

// Setter is a JSON accumulator that accepts string fields.
type Setter interface {
	Set(key, value string)
}

// Object is an ordered JSON object of string fields. Keys serialize in
// insertion order; setting an existing key replaces its value in place.
// Invalid UTF-8 in keys and values is replaced with U+FFFD.
//
// The zero value is ready to use. Object is not safe for concurrent use.
type Object struct {
	keys   []string
	values map[string]string
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{}
}

// Set stores value under key.
func (o *Object) Set(key, value string) {
	key = strings.ToValidUTF8(key, "\uFFFD")
	value = strings.ToValidUTF8(value, "\uFFFD")
	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, key := range o.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(key)
		stream.WriteString(o.values[key])
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, fmt.Errorf("encode object: %w", stream.Error)
	}

	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// ErrTrailingData is returned when a JSON object is followed by anything
// other than whitespace.
var ErrTrailingData = errors.New("trailing data after JSON object")

// UnmarshalJSON implements json.Unmarshaler. Every field value must be a
// JSON string and nothing but whitespace may follow the object. Fields are
// appended to any already present.
func (o *Object) UnmarshalJSON(data []byte) error {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return fmt.Errorf("decode object: expected JSON object")
	}

	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		if it.WhatIsNext() != jsoniter.StringValue {
			it.ReportError("decode object", fmt.Sprintf("field %q is not a string", field))
			return false
		}
		o.Set(field, it.ReadString())
		return true
	})

	if iter.Error != nil {
		return fmt.Errorf("decode object: %w", iter.Error)
	}

	// At the end of input WhatIsNext reports InvalidValue with io.EOF.
	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue || !errors.Is(iter.Error, io.EOF) {
		return fmt.Errorf("decode object: %w", ErrTrailingData)
	}
	return nil
}

// FillIfNotEmpty writes alternating key/value pairs from kv into obj,
// skipping pairs whose value is empty. Pairs with an empty key are skipped
// as well. The remaining pairs are written in order. When kv is empty or
// has odd length nothing is written at all; a dangling key is not reported.
func FillIfNotEmpty(obj Setter, kv ...string) {
	if len(kv) == 0 || len(kv)%2 != 0 {
		return
	}
	for i := 0; i < len(kv); i += 2 {
		if kv[i] == "" || kv[i+1] == "" {
			continue
		}
		obj.Set(kv[i], kv[i+1])
	}
}
