package converter

import (
	"encoding/json"
	"strconv"
	"strings"
)

// valueKind tags the dynamic type carried by a Value.
type valueKind int

const (
	valueInt valueKind = iota
	valueFloat
	valueString
)

// Value is a raw conversion input: a whole count for the numeric formats
// or a timecode string. A float arm exists only so boundary layers can
// carry one in for validation to reject; no conversion ever accepts it.
type Value struct {
	kind valueKind
	i    int64
	f    float64
	s    string
}

// IntValue wraps a whole number as a conversion input.
func IntValue(n int64) Value {
	return Value{kind: valueInt, i: n}
}

// FloatValue wraps a float as a conversion input. Validation always
// rejects it; the constructor exists so callers surface the rejection
// instead of silently truncating.
func FloatValue(f float64) Value {
	return Value{kind: valueFloat, f: f}
}

// StringValue wraps a string as a conversion input.
func StringValue(s string) Value {
	return Value{kind: valueString, s: s}
}

// String renders the raw value as it was supplied.
func (v Value) String() string {
	switch v.kind {
	case valueInt:
		return strconv.FormatInt(v.i, 10)
	case valueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// isFloat reports whether the value arrived as a float.
func (v Value) isFloat() bool {
	return v.kind == valueFloat
}

// whole parses the value as a whole number: ints pass through, strings
// are trimmed and parsed base 10.
func (v Value) whole() (int64, bool) {
	switch v.kind {
	case valueInt:
		return v.i, true
	case valueString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// MarshalJSON renders the value as the JSON type it was created from.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case valueInt:
		return json.Marshal(v.i)
	case valueFloat:
		return json.Marshal(v.f)
	default:
		return json.Marshal(v.s)
	}
}

// UnmarshalJSON keeps the wire distinction between whole numbers, floats
// and strings so validation can judge the raw type exactly as sent.
func (v *Value) UnmarshalJSON(b []byte) error {
	// Unmarshalling null into a string is a silent no-op, so catch it here.
	if string(b) == "null" {
		return errorf(KindInvalidInput, "input value must be a whole number or a string")
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		if n, err := num.Int64(); err == nil {
			*v = IntValue(n)
			return nil
		}
		if f, err := num.Float64(); err == nil {
			*v = FloatValue(f)
			return nil
		}
	}
	return errorf(KindInvalidInput, "input value must be a whole number or a string")
}
