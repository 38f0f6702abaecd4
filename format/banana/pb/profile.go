// Package pb implements the Perspective Broker profile of the Banana protocol. It adds a single delimiter, 0x87,
// whose one-byte preamble is an Opcode. PB tokens have no payload.
//
//	dec := pb.NewDecoder()
//	e, _ := dec.Decode([]byte{0x02, 0x80, 0x13, 0x87, 0x06, 0x81}) // [Version, 6]
package pb

import (
	"github.com/eluv-io/banana-go/format/banana"
)

// Delimiter is the delimiter claimed by the PB profile.
const Delimiter byte = 0x87

// tokenSize is the wire size of a PB token: the opcode byte and the delimiter.
const tokenSize = 2

// Profile is the Perspective Broker profile.
type Profile struct{}

var _ banana.Profile = Profile{}

// Decode decodes a PB token. Delimiters other than 0x87 are reported as banana.UnknownType.
func (Profile) Decode(delimiter byte, preamble, msg []byte) (banana.ExtensionValue, []byte, error) {
	if delimiter != Delimiter {
		return nil, nil, banana.UnknownType(delimiter)
	}
	if len(preamble) != 1 {
		return nil, nil, banana.Invalid(
			"PB element type 0x87 must be prefixed by exactly one byte (got %d)", len(preamble))
	}
	op := Opcode(preamble[0])
	if !op.IsValid() {
		return nil, nil, banana.Invalid("Unknown PB short identifier 0x%x", preamble[0])
	}
	return op, msg[tokenSize:], nil
}

// NewDecoder returns a banana decoder using the PB profile. Additional options are applied after the profile
// option.
func NewDecoder(opts ...banana.Option) *banana.Decoder {
	return banana.NewDecoder(append([]banana.Option{banana.OptProfile(Profile{})}, opts...)...)
}

// Token returns the element for the given opcode.
func Token(op Opcode) banana.Element {
	return banana.Extension{Value: op}
}

// AsOpcode returns the opcode of e if it is a PB token.
func AsOpcode(e banana.Element) (Opcode, bool) {
	return banana.ExtensionAs[Opcode](e)
}
