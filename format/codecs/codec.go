package codecs

import (
	"io"
)

// Codec turns a byte stream into a stream of objects and back. Encoders and decoders are bound to a single
// stream and are not safe for concurrent use.
type Codec interface {
	Decoder(r io.Reader) Decoder
	Encoder(w io.Writer) Encoder
}

// Encoder writes each object passed to Encode to its stream.
type Encoder interface {
	Encode(obj interface{}) error
}

// Decoder reads the next object of its stream into obj, which must be a pointer. It returns io.EOF at the end
// of the stream.
type Decoder interface {
	Decode(obj interface{}) error
}

type CreateEncoderFn func(w io.Writer) Encoder
type CreateDecoderFn func(r io.Reader) Decoder

// NewCodec creates a Codec from encoder and decoder factories, e.g. to combine a Banana decoder with a custom
// encoder.
func NewCodec(enc CreateEncoderFn, dec CreateDecoderFn) Codec {
	return funcCodec{newEncoder: enc, newDecoder: dec}
}

type funcCodec struct {
	newEncoder CreateEncoderFn
	newDecoder CreateDecoderFn
}

func (c funcCodec) Decoder(r io.Reader) Decoder { return c.newDecoder(r) }
func (c funcCodec) Encoder(w io.Writer) Encoder { return c.newEncoder(w) }
