package banana

import (
	"encoding/binary"
	"math"
)

// Delimiters of the native Banana types.
const (
	ListDelimiter    byte = 0x80
	IntDelimiter     byte = 0x81
	StringDelimiter  byte = 0x82
	NegIntDelimiter  byte = 0x83
	FloatDelimiter   byte = 0x84
	HighBit          byte = 0x80
	floatPayloadSize      = 8
)

const (
	// absMinInt32 is the magnitude of math.MinInt32, which does not fit into an int32.
	absMinInt32 uint32 = 1 << 31
	// posLimit: a partial positive result at or above this value overflows on the next digit.
	posLimit int32 = 1 << 24
	// negLimit: a partial negative result below this value overflows on the next digit. At exactly this
	// value, only a zero digit is allowed, yielding math.MinInt32.
	negLimit int32 = -1 << 24
)

// splitPreamble locates the delimiter of the element at the start of msg: the first byte with the high bit set.
// The bytes before it are returned as preamble. The returned preamble aliases msg.
func splitPreamble(msg []byte) (preamble []byte, delimiter byte, err error) {
	if len(msg) == 0 {
		return nil, 0, Empty()
	}
	for i, b := range msg {
		if b >= HighBit {
			return msg[:i], b, nil
		}
	}
	return nil, 0, NoType()
}

// decodePositive decodes base-128 digits (least significant first) into a non-negative int32.
func decodePositive(digits []byte) (int32, error) {
	var res int32
	for i := len(digits) - 1; i >= 0; i-- {
		if res >= posLimit {
			return 0, Overflow(digits)
		}
		res = res<<7 + int32(digits[i])
	}
	return res, nil
}

// decodeNegative decodes base-128 digits (least significant first) representing the magnitude of a negative
// number and returns the negative int32.
func decodeNegative(digits []byte) (int32, error) {
	var res int32
	for i := len(digits) - 1; i >= 0; i-- {
		b := digits[i]
		if res < negLimit || (res == negLimit && b != 0) {
			return 0, Overflow(digits)
		}
		res = res<<7 - int32(b)
	}
	return res, nil
}

// appendMagnitude appends the base-128 digits of u, least significant first.
func appendMagnitude(buf []byte, u uint32) []byte {
	for u > 127 {
		buf = append(buf, byte(u%128))
		u >>= 7
	}
	return append(buf, byte(u))
}

// magnitudeLen returns the number of digits appendMagnitude emits for u.
func magnitudeLen(u uint32) int {
	n := 1
	for u > 127 {
		u >>= 7
		n++
	}
	return n
}

// appendInt appends a complete integer element.
func appendInt(buf []byte, i int32) []byte {
	switch {
	case i >= 0:
		return append(appendMagnitude(buf, uint32(i)), IntDelimiter)
	case i == math.MinInt32:
		return append(appendMagnitude(buf, absMinInt32), NegIntDelimiter)
	default:
		return append(appendMagnitude(buf, uint32(-i)), NegIntDelimiter)
	}
}

// decodeString returns the payload of the string element starting at msg, whose preamble has already been
// split off. The payload aliases msg.
func decodeString(preamble, msg []byte) ([]byte, error) {
	l, err := decodePositive(preamble)
	if err != nil {
		return nil, err
	}
	start := len(preamble) + 1
	avail := len(msg) - start
	// compare as int64: start + l may overflow a 32-bit int
	if int64(l) > int64(avail) {
		return nil, TooShort(int(l), avail)
	}
	return msg[start : start+int(l)], nil
}

// appendString appends a complete string element.
func appendString(buf []byte, s []byte) []byte {
	buf = appendMagnitude(buf, uint32(len(s)))
	buf = append(buf, StringDelimiter)
	return append(buf, s...)
}

// decodeFloat decodes the float element starting at msg. The payload is the big-endian bit pattern of the
// double.
func decodeFloat(preamble, msg []byte) (float64, error) {
	if len(preamble) != 0 {
		return 0, Invalid("Float values must not have a length preamble, but got %v", preamble)
	}
	if len(msg) < 1+floatPayloadSize {
		return 0, TooShort(1+floatPayloadSize, len(msg))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(msg[1 : 1+floatPayloadSize])), nil
}

// appendFloat appends a complete float element.
func appendFloat(buf []byte, f float64) []byte {
	var payload [floatPayloadSize]byte
	binary.BigEndian.PutUint64(payload[:], math.Float64bits(f))
	buf = append(buf, FloatDelimiter)
	return append(buf, payload[:]...)
}
