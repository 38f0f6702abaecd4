/*
Package banana implements the Banana wire format: a compact, self-describing, recursive binary serialization
used by the Perspective Broker RPC protocol.

Every element consists of an optional preamble, a single delimiter byte identifying the type (the first byte with
the high bit set) and, depending on the type, a payload:

	delimiter  type              preamble
	0x80       list              element count, required
	0x81       integer >= 0      magnitude, absent means 0
	0x82       byte string       byte length, followed by the bytes
	0x83       integer < 0       magnitude of the absolute value
	0x84       double            empty, followed by 8 big-endian bytes

Counts, lengths and magnitudes are written in base 128, least significant digit first. Integers are limited to
the signed 32-bit range.

A Profile extends the format with additional delimiters. The decoder asks its profile first and only falls back to
the native types when the profile answers with UnknownType. Values produced by a profile are wrapped in an
Extension element and encode themselves. See package pb for the Perspective Broker profile.

	e, err := banana.Decode([]byte{0x12, 0x34, 0x81}) // Integer(6674)
	bts := banana.Encode(banana.List{banana.Integer(1), banana.String("hello")})

Decoding requires the complete message in memory; the remainder returned by DecodeRemainder is a sub-slice of the
input.
*/
package banana
