package codecs

import (
	"io"

	"github.com/eluv-io/errors-go"
)

// VersionedCodec is a Codec that writes a version number before each encoded object. On decoding, the version
// selects the target object.
type VersionedCodec interface {
	// VersionedDecoder wraps the given io.Reader and returns a decoder for versioned objects.
	VersionedDecoder(r io.Reader) VersionedDecoder

	// VersionedEncoder wraps the given io.Writer and returns an encoder for versioned objects.
	VersionedEncoder(w io.Writer) VersionedEncoder
}

// VersionedEncoder is an encoder that prefixes each encoded object with its version. The version is encoded with
// the same codec as the object.
type VersionedEncoder interface {
	// EncodeVersioned encodes the version and the given object and writes them to the underlying io.Writer.
	EncodeVersioned(version uint, obj interface{}) error
}

// VersionedDecoder decodes versioned objects from the underlying io.Reader.
type VersionedDecoder interface {
	// DecodeVersioned reads the version of the next object and passes it to the selector. The selector returns a
	// pointer to the target for that version, and the decoder decodes the object into it.
	DecodeVersioned(selector func(version uint) interface{}) (obj interface{}, version uint, err error)
}

////////////////////////////////////////////////////////////////////////////////

// NewVersionedCodec wraps the given codec into a VersionedCodec.
func NewVersionedCodec(codec Codec) VersionedCodec {
	return &versionedCodec{
		codec: codec,
	}
}

type versionedCodec struct {
	codec Codec
}

func (c *versionedCodec) VersionedEncoder(w io.Writer) VersionedEncoder {
	return newVersionedEncoder(c.codec.Encoder(w))
}

func (c *versionedCodec) VersionedDecoder(r io.Reader) VersionedDecoder {
	return newVersionedDecoder(c.codec.Decoder(r))
}

////////////////////////////////////////////////////////////////////////////////

func newVersionedEncoder(encoder Encoder) *versionedEncoder {
	return &versionedEncoder{
		encoder: encoder,
	}
}

type versionedEncoder struct {
	encoder          Encoder
	versionsDisabled bool
}

func (e *versionedEncoder) EncodeVersioned(version uint, obj interface{}) error {
	if !e.versionsDisabled {
		err := e.encoder.Encode(version)
		if err != nil {
			return errors.E("versionedEncoder.EncodeVersioned", err, "reason", "failed to write version", "version", version)
		}
	}
	return e.encoder.Encode(obj)
}

////////////////////////////////////////////////////////////////////////////////

func newVersionedDecoder(decoder Decoder) *versionedDecoder {
	return &versionedDecoder{
		decoder: decoder,
	}
}

type versionedDecoder struct {
	decoder          Decoder
	versionsDisabled bool
}

func (d *versionedDecoder) readVersion() (uint, error) {
	if d.versionsDisabled {
		return 0, nil
	}

	var version uint
	err := d.decoder.Decode(&version)
	if err == io.EOF {
		return 0, err
	}
	if err != nil {
		return 0, errors.E("versionedDecoder.readVersion", err, "reason", "failed to read version")
	}
	return version, nil
}

func (d *versionedDecoder) DecodeVersioned(selector func(version uint) interface{}) (obj interface{}, version uint, err error) {
	version, err = d.readVersion()
	if err != nil {
		return nil, 0, err
	}
	obj = selector(version)
	if obj == nil {
		return nil, version, errors.E("versionedDecoder.DecodeVersioned", errors.K.NotExist,
			"reason", "no target for version", "version", version)
	}
	err = d.decoder.Decode(obj)
	return obj, version, err
}
