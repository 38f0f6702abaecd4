// Package envelope frames Banana messages for storage and transport. An envelope has the format
//
//	[uvarint size][multicodec header][message]
//
// where size is the length of header and message, and the header names the format of the message, e.g.
// "/banana" or "/banana-pb". Read loads a complete envelope into memory, so that its message can be decoded in one
// pass.
package envelope

import (
	"bytes"
	"io"
	"strings"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"

	"github.com/eluv-io/banana-go/format/banana"
	"github.com/eluv-io/banana-go/format/banana/pb"
	"github.com/eluv-io/banana-go/format/codecs"
	"github.com/eluv-io/banana-go/util/ioutil"
)

var log = elog.Get("/banana/envelope")

// DefaultSizeLimit is the size limit used by Read if none is given.
const DefaultSizeLimit int64 = 64 * 1024 * 1024

// maxFormatLen keeps the multicodec header length within a single byte.
const maxFormatLen = 125

const formatSymbols = "abcdefghijklmnopqrstuvwxyz1234567890-_"

// Write writes an envelope with the given message to w. The format defaults to "/banana"; a missing leading
// slash is added. Returns the number of bytes written.
func Write(w io.Writer, msg []byte, format ...string) (int64, error) {
	e := errors.Template("envelope.Write")

	f := ""
	if len(format) > 0 {
		f = strings.TrimSpace(format[0])
	}
	if f == "" {
		f = codecs.BananaMultiCodecPath
	} else if !strings.HasPrefix(f, "/") {
		f = "/" + f
	}
	if !isFormat(f) {
		return 0, e(errors.K.Invalid, "reason", "invalid format", "format", f)
	}

	hdr := multicodec.Header([]byte(f))
	buf := make([]byte, 0, varint.MaxLenUvarint63+len(hdr)+len(msg))
	buf = append(buf, varint.ToUvarint(uint64(len(hdr)+len(msg)))...)
	buf = append(buf, hdr...)
	buf = append(buf, msg...)

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), e(errors.K.IO, err)
	}
	return int64(n), nil
}

// Read reads one envelope from r and returns its message and format, and the size of the entire envelope. Read
// consumes exactly the bytes of the envelope. It fails with
//   - K.NotExist if r contains no envelope
//   - K.Invalid if the envelope size exceeds the size limit (DefaultSizeLimit if not specified) or the envelope
//     is malformed
//   - K.IO if reading fails
func Read(r io.Reader, sizeLimit ...int64) (msg []byte, format string, size int64, err error) {
	e := errors.Template("envelope.Read")

	limit := DefaultSizeLimit
	if len(sizeLimit) > 0 && sizeLimit[0] > 0 {
		limit = sizeLimit[0]
	}

	br := ioutil.NewByteReader(r)
	start := br.BytesCount
	sz, err := varint.ReadUvarint(br)
	switch {
	case err == io.EOF:
		return nil, "", 0, e(errors.K.NotExist, err, "reason", "envelope not found")
	case err == io.ErrUnexpectedEOF:
		return nil, "", 0, e(errors.K.Invalid, err, "reason", "truncated envelope size")
	case err == varint.ErrOverflow || err == varint.ErrNotMinimal:
		return nil, "", 0, e(errors.K.Invalid, err, "reason", "invalid envelope size")
	case err != nil:
		return nil, "", 0, e(errors.K.IO, err)
	case sz == 0:
		return nil, "", 0, e(errors.K.Invalid, "reason", "empty envelope")
	case sz > uint64(limit):
		return nil, "", 0, e(errors.K.Invalid, "reason", "envelope size exceeds limit", "size", sz, "size_limit", limit)
	}

	data := make([]byte, int(sz))
	_, err = io.ReadFull(br, data)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, "", 0, e(errors.K.Invalid, err, "reason", "truncated envelope", "size", sz)
	} else if err != nil {
		return nil, "", 0, e(errors.K.IO, err)
	}

	hdr, err := multicodec.ReadHeader(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, e(errors.K.Invalid, err, "reason", "invalid header")
	}
	format = string(multicodec.HeaderPath(hdr))
	if !isFormat(format) {
		return nil, "", 0, e(errors.K.Invalid, "reason", "invalid format", "format", format)
	}

	size = br.BytesCount - start
	if log.IsDebug() {
		log.Debug("read envelope", "format", format, "size", size)
	}
	return data[len(hdr):], format, size, nil
}

// WriteElement encodes the element and writes it as an envelope to w.
func WriteElement(w io.Writer, el banana.Element, format ...string) (int64, error) {
	return Write(w, banana.Encode(el), format...)
}

// ReadElement reads an envelope from r and decodes its message, which must consist of exactly one element. If dec
// is nil, the decoder is chosen according to the envelope's format: the PB profile for "/banana-pb", plain
// Banana otherwise.
func ReadElement(r io.Reader, dec *banana.Decoder, sizeLimit ...int64) (banana.Element, string, error) {
	msg, format, _, err := Read(r, sizeLimit...)
	if err != nil {
		return nil, "", err
	}
	if dec == nil {
		dec = DecoderFor(format)
	}

	el, rem, err := dec.DecodeRemainder(msg)
	if err != nil {
		return nil, format, errors.E("envelope.ReadElement", errors.K.Invalid, err, "format", format)
	}
	if len(rem) > 0 {
		return nil, format, errors.E("envelope.ReadElement", errors.K.Invalid,
			"reason", "trailing bytes in envelope",
			"format", format,
			"count", len(rem))
	}
	return el, format, nil
}

// DecoderFor returns the decoder for the given envelope format.
func DecoderFor(format string, opts ...banana.Option) *banana.Decoder {
	if format == codecs.PBMultiCodecPath {
		return pb.NewDecoder(opts...)
	}
	return banana.NewDecoder(opts...)
}

// Size returns the size of the envelope starting with the given bytes: the length of the size prefix plus the
// size it holds. Only the prefix needs to be present.
func Size(prefix []byte) (int64, error) {
	sz, n, err := varint.FromUvarint(prefix)
	if err != nil {
		return 0, errors.E("envelope.Size", errors.K.Invalid, err, "reason", "invalid envelope size")
	}
	return int64(sz) + int64(n), nil
}

func isFormat(s string) bool {
	if len(s) < 2 || len(s) > maxFormatLen || s[0] != '/' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune(formatSymbols, r) {
			return false
		}
	}
	return true
}
