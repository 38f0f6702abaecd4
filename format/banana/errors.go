package banana

import (
	"fmt"
	"strings"

	"github.com/eluv-io/errors-go"
)

// Reason identifies the cause of a DecodeError.
type Reason uint8

const (
	// ReasonNoType: no byte of the input has the high bit set, i.e. the delimiter is missing.
	ReasonNoType Reason = iota + 1
	// ReasonEmpty: the input is empty.
	ReasonEmpty
	// ReasonUnknownType: the delimiter is neither a native type nor claimed by the active profile.
	ReasonUnknownType
	// ReasonOverflow: a magnitude exceeds the signed 32-bit range.
	ReasonOverflow
	// ReasonTooShort: a declared length exceeds the remaining input.
	ReasonTooShort
	// ReasonInvalid: the input is structurally malformed.
	ReasonInvalid
)

var reasonNames = map[Reason]string{
	ReasonNoType:      "no type",
	ReasonEmpty:       "empty",
	ReasonUnknownType: "unknown type",
	ReasonOverflow:    "overflow",
	ReasonTooShort:    "too short",
	ReasonInvalid:     "invalid",
}

func (r Reason) String() string {
	if n, ok := reasonNames[r]; ok {
		return n
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

// DecodeError is the error returned by all decoding operations of this package. Only the fields belonging to
// the error's Reason are set:
//
//	ReasonUnknownType  Delimiter
//	ReasonOverflow     Digits (a copy of the offending base-128 digits)
//	ReasonTooShort     Expected, Actual
//	ReasonInvalid      Message
type DecodeError struct {
	Reason    Reason
	Delimiter byte
	Digits    []byte
	Expected  int
	Actual    int
	Message   string
}

// Sentinel errors. errors.Is(err, ErrTooShort) is true for any DecodeError with ReasonTooShort, regardless of
// its payload.
var (
	ErrNoType      = &DecodeError{Reason: ReasonNoType}
	ErrEmpty       = &DecodeError{Reason: ReasonEmpty}
	ErrUnknownType = &DecodeError{Reason: ReasonUnknownType}
	ErrOverflow    = &DecodeError{Reason: ReasonOverflow}
	ErrTooShort    = &DecodeError{Reason: ReasonTooShort}
	ErrInvalid     = &DecodeError{Reason: ReasonInvalid}
)

// NoType returns the error for input without delimiter.
func NoType() *DecodeError {
	return &DecodeError{Reason: ReasonNoType}
}

// Empty returns the error for empty input.
func Empty() *DecodeError {
	return &DecodeError{Reason: ReasonEmpty}
}

// UnknownType returns the error for an unrecognized delimiter. Profiles return it to signal that a delimiter
// is not theirs.
func UnknownType(delimiter byte) *DecodeError {
	return &DecodeError{Reason: ReasonUnknownType, Delimiter: delimiter}
}

// Overflow returns the error for a magnitude that does not fit into 32 bits. The digits are copied.
func Overflow(digits []byte) *DecodeError {
	return &DecodeError{Reason: ReasonOverflow, Digits: append([]byte{}, digits...)}
}

// TooShort returns the error for a declared length exceeding the available bytes.
func TooShort(expected, actual int) *DecodeError {
	return &DecodeError{Reason: ReasonTooShort, Expected: expected, Actual: actual}
}

// Invalid returns the error for malformed input. The message is formatted with fmt.Sprintf if args are given.
func Invalid(msg string, args ...interface{}) *DecodeError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &DecodeError{Reason: ReasonInvalid, Message: msg}
}

func (e *DecodeError) Error() string {
	sb := strings.Builder{}
	sb.WriteString("banana decode: ")
	sb.WriteString(e.Reason.String())
	switch e.Reason {
	case ReasonUnknownType:
		_, _ = fmt.Fprintf(&sb, " 0x%02x", e.Delimiter)
	case ReasonOverflow:
		_, _ = fmt.Fprintf(&sb, " digits=% x", e.Digits)
	case ReasonTooShort:
		_, _ = fmt.Fprintf(&sb, " expected=%d actual=%d", e.Expected, e.Actual)
	case ReasonInvalid:
		if e.Message != "" {
			sb.WriteString(": ")
			sb.WriteString(e.Message)
		}
	}
	return sb.String()
}

// Is reports whether target is a DecodeError with the same reason.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t != nil && t.Reason == e.Reason
}

// AsDecodeError returns the DecodeError in err's chain, if any.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsUnknownType reports whether err is the "not mine" signal of a profile.
func IsUnknownType(err error) bool {
	de, ok := AsDecodeError(err)
	return ok && de.Reason == ReasonUnknownType
}
