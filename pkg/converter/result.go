package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Result maps each requested output format to its converted value: int64
// for frames, string for timecode, float64 for seconds. Iteration order is
// insertion order, with seconds always seeded ahead of the other formats.
type Result struct {
	order  []OutputFormat
	values map[OutputFormat]any
}

func newResult() *Result {
	return &Result{values: make(map[OutputFormat]any)}
}

// set records v under f. A repeated format overwrites in place and keeps
// its original position.
func (r *Result) set(f OutputFormat, v any) {
	if _, ok := r.values[f]; !ok {
		r.order = append(r.order, f)
	}
	r.values[f] = v
}

// Formats lists the result's formats in insertion order.
func (r *Result) Formats() []OutputFormat {
	out := make([]OutputFormat, len(r.order))
	copy(out, r.order)
	return out
}

// Value returns the converted value stored under f.
func (r *Result) Value(f OutputFormat) (any, bool) {
	v, ok := r.values[f]
	return v, ok
}

// Len returns the number of converted values.
func (r *Result) Len() int {
	return len(r.order)
}

// Frames returns the frame count, if frames were requested.
func (r *Result) Frames() (int64, bool) {
	v, ok := r.values[OutputFrames].(int64)
	return v, ok
}

// Timecode returns the timecode string, if timecode was requested.
func (r *Result) Timecode() (string, bool) {
	v, ok := r.values[OutputTimecode].(string)
	return v, ok
}

// Seconds returns the seconds value, if seconds were requested.
func (r *Result) Seconds() (float64, bool) {
	v, ok := r.values[OutputSeconds].(float64)
	return v, ok
}

// String renders the result in insertion order.
func (r *Result) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r.order {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", f, r.values[f])
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON emits the result as a JSON object in insertion order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(f))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[f])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
