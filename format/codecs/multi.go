package codecs

import (
	"bytes"
	"io"

	"github.com/eluv-io/errors-go"

	"github.com/eluv-io/banana-go/format/codecs/header"
)

////////////////////////////////////////////////////////////////////////////////

// MultiCodec is a Codec producing and consuming self-describing streams. The encoder writes a header before the
// first encoded object, the decoder reads the header and verifies that it matches its own:
//
//	HEADER|object1|object2|...
//
// Use a MuxCodec to support multiple codecs: it selects the decoder according to the header read from the
// stream.
//
// A MultiCodec optionally writes a version before each object. On decoding, the version is used to select the
// target object.
type MultiCodec interface {
	Header() header.Header
	Encoder(w io.Writer) Encoder
	Decoder(r io.Reader) Decoder
	VersionedEncoder(w io.Writer) VersionedEncoder
	VersionedDecoder(r io.Reader) VersionedMultiDecoder

	// DisableVersions returns a copy of this MultiCodec with versioning disabled: its VersionedEncoder ignores the
	// given version and its VersionedDecoder always reports version 0. This allows a MuxCodec to decode streams
	// that were written without versions.
	DisableVersions() MultiCodec
}

type VersionedMultiDecoder interface {
	// DecodeVersioned reads the version of the next object and passes it, together with the path of the codec, to
	// the selector. The selector returns a pointer to the target for that version and codec, and the decoder
	// decodes the object into it.
	DecodeVersioned(
		selector func(version uint, codec string) interface{},
	) (
		obj interface{},
		version uint,
		err error,
	)
}

////////////////////////////////////////////////////////////////////////////////

// NewMultiCodec creates a MultiCodec for the given codec, identified by path in the stream header.
func NewMultiCodec(codec Codec, path string) MultiCodec {
	return &multiCodec{
		codec:  codec,
		header: header.New(path),
	}
}

type multiCodec struct {
	codec           Codec
	header          header.Header
	disableVersions bool
}

func (m *multiCodec) Header() header.Header {
	return m.header
}

func (m *multiCodec) Encoder(w io.Writer) Encoder {
	return newMultiEncoder(w, m.codec.Encoder(w), m.header)
}

func (m *multiCodec) Decoder(r io.Reader) Decoder {
	return newMultiDecoder(r, m.codec.Decoder(r), m.header)
}

func (m *multiCodec) VersionedEncoder(w io.Writer) VersionedEncoder {
	enc := &versionedMultiEncoder{
		multiEncoder:     newMultiEncoder(w, nil, m.header),
		versionedEncoder: newVersionedEncoder(m.codec.Encoder(w)),
	}
	enc.versionedEncoder.versionsDisabled = m.disableVersions
	return enc
}

func (m *multiCodec) VersionedDecoder(r io.Reader) VersionedMultiDecoder {
	dec := &versionedMultiDecoder{
		multiDecoder:     newMultiDecoder(r, nil, m.header),
		versionedDecoder: newVersionedDecoder(m.codec.Decoder(r)),
	}
	dec.versionedDecoder.versionsDisabled = m.disableVersions
	return dec
}

func (m *multiCodec) DisableVersions() MultiCodec {
	clone := *m
	clone.disableVersions = true
	return &clone
}

////////////////////////////////////////////////////////////////////////////////

func newMultiEncoder(writer io.Writer, encoder Encoder, hdr header.Header) *multiEncoder {
	return &multiEncoder{
		writer:  writer,
		encoder: encoder,
		header:  hdr,
	}
}

type multiEncoder struct {
	writer        io.Writer
	encoder       Encoder
	header        header.Header
	headerWritten bool
}

func (e *multiEncoder) writeHeader() error {
	if e.headerWritten {
		return nil
	}
	err := header.WriteHeader(e.writer, e.header)
	if err != nil {
		return errors.E("multiEncoder.writeHeader", errors.K.IO, err, "codec", e.header.Path())
	}
	e.headerWritten = true
	return nil
}

func (e *multiEncoder) Encode(obj interface{}) error {
	err := e.writeHeader()
	if err == nil {
		err = e.encoder.Encode(obj)
	}
	return err
}

////////////////////////////////////////////////////////////////////////////////

type versionedMultiEncoder struct {
	*multiEncoder
	versionedEncoder *versionedEncoder
}

func (v *versionedMultiEncoder) EncodeVersioned(version uint, obj interface{}) error {
	err := v.writeHeader()
	if err == nil {
		err = v.versionedEncoder.EncodeVersioned(version, obj)
	}
	return err
}

////////////////////////////////////////////////////////////////////////////////

func newMultiDecoder(reader io.Reader, decoder Decoder, hdr header.Header) *multiDecoder {
	return &multiDecoder{
		reader:  reader,
		decoder: decoder,
		header:  hdr,
	}
}

type multiDecoder struct {
	reader     io.Reader
	decoder    Decoder
	header     header.Header
	headerRead bool
}

func (d *multiDecoder) readHeader() error {
	if d.headerRead {
		return nil
	}
	e := errors.Template("multiDecoder.readHeader", "expected", d.header.Path())
	hdr, err := header.ReadHeader(d.reader)
	switch {
	case err == io.EOF:
		return io.EOF
	case err == io.ErrUnexpectedEOF:
		return e(errors.K.IO, err, "reason", "truncated header")
	case err != nil:
		return e(errors.K.Invalid, err, "reason", "invalid header")
	case !bytes.Equal(hdr, d.header):
		return e(errors.K.Invalid, "reason", "invalid header", "actual", hdr.Path())
	}
	d.headerRead = true
	return nil
}

func (d *multiDecoder) Decode(obj interface{}) error {
	err := d.readHeader()
	if err == nil {
		err = d.decoder.Decode(obj)
	}
	return err
}

////////////////////////////////////////////////////////////////////////////////

type versionedMultiDecoder struct {
	*multiDecoder
	versionedDecoder *versionedDecoder
}

func (v *versionedMultiDecoder) DecodeVersioned(selector func(version uint, codec string) interface{}) (obj interface{}, version uint, err error) {
	err = v.readHeader()
	if err == nil {
		path := v.header.Path()
		obj, version, err = v.versionedDecoder.DecodeVersioned(func(version uint) interface{} {
			return selector(version, path)
		})
	}
	return obj, version, err
}
