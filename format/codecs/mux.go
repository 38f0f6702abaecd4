package codecs

import (
	"bytes"
	"io"

	"github.com/eluv-io/errors-go"

	"github.com/eluv-io/banana-go/format/codecs/header"
)

// MuxHeader is the header written by a MuxCodec in wrap mode in front of the header of the selected codec.
var MuxHeader = header.New("/multicodec")

var _ MultiCodec = (*MuxCodec)(nil)

// NewMuxCodec creates a MuxCodec for the given codecs. It encodes with the first codec.
func NewMuxCodec(codecs ...MultiCodec) *MuxCodec {
	return &MuxCodec{Codecs: codecs, Select: SelectFirst}
}

// SelectCodec is a function that selects the codec for encoding the given object.
type SelectCodec func(v interface{}, codecs []MultiCodec) MultiCodec

// SelectFirst is the default SelectCodec function. It selects the first codec.
func SelectFirst(_ interface{}, codecs []MultiCodec) MultiCodec {
	if len(codecs) == 0 {
		return nil
	}
	return codecs[0]
}

// MuxCodec is a MultiCodec that multiplexes between the given codecs. The codec for encoding is chosen with the
// Select function when the first object is encoded. The codec for decoding is chosen according to the header
// found at the beginning of the stream. All subsequent objects are encoded and decoded with the same codec.
//
// In wrap mode, the stream starts with MuxHeader, followed by the header of the chosen codec.
//
// Encoders and decoders of a MuxCodec are not safe for concurrent use.
type MuxCodec struct {
	Codecs []MultiCodec // codecs to use
	Select SelectCodec  // pick a codec for encoding, SelectFirst if nil
	Wrap   bool         // whether to write MuxHeader

	disableVersions bool
}

func (c *MuxCodec) Header() header.Header {
	return MuxHeader
}

func (c *MuxCodec) Encoder(w io.Writer) Encoder {
	return &muxEncoder{writer: w, mux: c}
}

func (c *MuxCodec) Decoder(r io.Reader) Decoder {
	return &muxDecoder{reader: r, mux: c}
}

func (c *MuxCodec) VersionedEncoder(w io.Writer) VersionedEncoder {
	return &muxEncoder{writer: w, mux: c}
}

func (c *MuxCodec) VersionedDecoder(r io.Reader) VersionedMultiDecoder {
	return &muxDecoder{reader: r, mux: c}
}

// DisableVersions returns a copy of this MuxCodec that disables versions on all its codecs.
func (c *MuxCodec) DisableVersions() MultiCodec {
	clone := *c
	clone.disableVersions = true
	return &clone
}

func (c *MuxCodec) codec(mc MultiCodec) MultiCodec {
	if c.disableVersions {
		return mc.DisableVersions()
	}
	return mc
}

func (c *MuxCodec) selectCodec(v interface{}) MultiCodec {
	sel := c.Select
	if sel == nil {
		sel = SelectFirst
	}
	mc := sel(v, c.Codecs)
	if mc == nil {
		return nil
	}
	return c.codec(mc)
}

func (c *MuxCodec) codecForHeader(hdr header.Header) MultiCodec {
	for _, mc := range c.Codecs {
		if bytes.Equal(hdr, mc.Header()) {
			return c.codec(mc)
		}
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////

type muxEncoder struct {
	writer io.Writer
	mux    *MuxCodec
	enc    Encoder
	venc   VersionedEncoder
}

func (m *muxEncoder) init(v interface{}, versioned bool) error {
	if m.enc != nil || m.venc != nil {
		return nil
	}
	codec := m.mux.selectCodec(v)
	if codec == nil {
		return errors.E("muxEncoder.init", errors.K.Invalid, "reason", "no suitable encoder")
	}
	if m.mux.Wrap {
		if err := header.WriteHeader(m.writer, MuxHeader); err != nil {
			return errors.E("muxEncoder.init", errors.K.IO, err)
		}
	}
	if versioned {
		m.venc = codec.VersionedEncoder(m.writer)
	} else {
		m.enc = codec.Encoder(m.writer)
	}
	if log.IsDebug() {
		log.Debug("mux encoder selected codec", "codec", codec.Header().Path())
	}
	return nil
}

func (m *muxEncoder) Encode(v interface{}) error {
	if err := m.init(v, false); err != nil {
		return err
	}
	if m.enc == nil {
		return errors.E("muxEncoder.Encode", errors.K.Invalid, "reason", "encoder used for versioned objects")
	}
	return m.enc.Encode(v)
}

func (m *muxEncoder) EncodeVersioned(version uint, v interface{}) error {
	if err := m.init(v, true); err != nil {
		return err
	}
	if m.venc == nil {
		return errors.E("muxEncoder.EncodeVersioned", errors.K.Invalid, "reason", "encoder used for unversioned objects")
	}
	return m.venc.EncodeVersioned(version, v)
}

////////////////////////////////////////////////////////////////////////////////

type muxDecoder struct {
	reader io.Reader
	mux    *MuxCodec
	dec    Decoder
	vdec   VersionedMultiDecoder
}

func (m *muxDecoder) init(versioned bool) error {
	if m.dec != nil || m.vdec != nil {
		return nil
	}
	e := errors.Template("muxDecoder.init")
	if m.mux.Wrap {
		if err := header.ConsumeHeader(m.reader, MuxHeader); err != nil {
			return e(errors.K.Invalid, err, "reason", "invalid mux header")
		}
	}

	hdr, err := header.ReadHeader(m.reader)
	if err == io.EOF {
		return err
	}
	if err != nil {
		return e(errors.K.Invalid, err, "reason", "invalid header")
	}

	codec := m.mux.codecForHeader(hdr)
	if codec == nil {
		return e(errors.K.Invalid, "reason", "no codec for header", "header", hdr.Path())
	}
	if log.IsDebug() {
		log.Debug("mux decoder selected codec", "codec", hdr.Path())
	}

	// put back the header consumed by the selected codec
	rdr := header.WrapHeaderReader(hdr, m.reader)
	if versioned {
		m.vdec = codec.VersionedDecoder(rdr)
	} else {
		m.dec = codec.Decoder(rdr)
	}
	return nil
}

func (m *muxDecoder) Decode(v interface{}) error {
	if err := m.init(false); err != nil {
		return err
	}
	if m.dec == nil {
		return errors.E("muxDecoder.Decode", errors.K.Invalid, "reason", "decoder used for versioned objects")
	}
	return m.dec.Decode(v)
}

func (m *muxDecoder) DecodeVersioned(selector func(version uint, codec string) interface{}) (interface{}, uint, error) {
	if err := m.init(true); err != nil {
		return nil, 0, err
	}
	if m.vdec == nil {
		return nil, 0, errors.E("muxDecoder.DecodeVersioned", errors.K.Invalid, "reason", "decoder used for unversioned objects")
	}
	return m.vdec.DecodeVersioned(selector)
}
