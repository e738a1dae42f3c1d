package converter

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a conversion failure so callers can branch on the
// failure class while handling a single error type.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"      // float-typed input value
	KindMalformedNumber   ErrorKind = "malformed_number"   // input that does not parse as a whole number
	KindMalformedTimecode ErrorKind = "malformed_timecode" // timecode string that does not parse
	KindMissingParam      ErrorKind = "missing_param"      // format used without a parameter it requires
	KindDivideByZero      ErrorKind = "divide_by_zero"     // zero bpm, ticks per beat, or fps
	KindUnknownFormat     ErrorKind = "unknown_format"     // format name outside the accepted sets
)

// Error is the failure type returned by every operation in this package.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the failure kind carried by err, or an empty kind for
// errors that did not originate in this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// errorf builds an Error of the given kind.
func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapConversion relabels a failure from the conversion pipeline with a
// uniform prefix, preserving its kind.
func wrapConversion(err error) *Error {
	return &Error{Kind: KindOf(err), Message: "conversion failed: " + err.Error()}
}
