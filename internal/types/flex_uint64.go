package types

import (
	"encoding/json"
	"reflect"
	"strconv"
)

// FlexUint64 is a uint64 that can be unmarshaled from either a JSON number or a JSON string.
// Set records whether the key was present at all, so a missing id can be told apart from 0.
// Values are limited to the signed 64-bit range, the widest id the SQL drivers bind.
type FlexUint64 struct {
	Value uint64
	Set   bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexUint64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	text := string(data)
	kind := "number " + text

	// Numbers are taken as written, strings are unquoted first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		text = s
		kind = "string"
	}

	val, err := strconv.ParseUint(text, 10, 63)
	if err != nil {
		// encoding/json fills in the field name on the way out
		return &json.UnmarshalTypeError{Value: kind, Type: reflect.TypeOf(uint64(0))}
	}
	*f = FlexUint64{Value: val, Set: true}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexUint64) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Uint64 converts FlexUint64 back to uint64.
func (f FlexUint64) Uint64() uint64 {
	return f.Value
}
