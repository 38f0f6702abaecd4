package header

import (
	"bytes"
	"io"

	"github.com/eluv-io/errors-go"
)

var (
	ErrHeaderInvalid = errors.Str("codec header invalid")
	ErrMismatch      = errors.Str("codec header did not match")
	ErrTooLong       = errors.Str("codec header path too long")
)

// MaxPathLen is the maximum length of a header path. The length byte of the header counts the path and the
// terminating newline and must stay below 0x7f.
const MaxPathLen = 125

// Header is the header written by MultiCodecs in front of their encoded stream. It consists of
//   - a single byte with the length of the rest of the header
//   - the path of the codec, by convention starting with a slash, e.g. "/banana" or "/banana-pb"
//   - a terminating newline
//
// Create it with New(path).
type Header []byte

// Path returns the path of the header.
func (h Header) Path() string {
	return Path(h)
}

// String is an alias of Path.
func (h Header) String() string {
	return h.Path()
}

// New returns the header for the given path. It panics if the path is too long.
func New(path string) Header {
	h, err := NewNoPanic(path)
	if err != nil {
		panic(err)
	}
	return h
}

// NewNoPanic works like New but returns an error instead of panicking.
func NewNoPanic(path string) (Header, error) {
	if len(path) > MaxPathLen {
		return nil, ErrTooLong
	}
	l := len(path) + 1
	buf := make([]byte, 0, l+1)
	buf = append(buf, byte(l))
	buf = append(buf, path...)
	return append(buf, '\n'), nil
}

// Path returns the path of the given header, or an empty string if the header is malformed.
func Path(hdr Header) string {
	if len(hdr) < 2 {
		return ""
	}
	return string(bytes.TrimSuffix(hdr[1:], []byte{'\n'}))
}

// WriteHeader writes the header to the writer.
func WriteHeader(w io.Writer, hdr Header) error {
	_, err := w.Write(hdr)
	return err
}

// ReadHeader reads a header from the reader. It returns io.EOF if the reader is exhausted before the first
// byte, io.ErrUnexpectedEOF if it ends within the header and ErrHeaderInvalid if the header is malformed.
func ReadHeader(r io.Reader) (Header, error) {
	var lbuf [1]byte
	if _, err := io.ReadFull(r, lbuf[:]); err != nil {
		return nil, err
	}

	l := int(lbuf[0])
	if l < 2 || l > MaxPathLen+1 {
		return nil, ErrHeaderInvalid
	}

	buf := make([]byte, l+1)
	buf[0] = lbuf[0]
	if _, err := io.ReadFull(r, buf[1:]); err != nil {
		return nil, err
	}
	if buf[l] != '\n' {
		return nil, ErrHeaderInvalid
	}
	return buf, nil
}

// ConsumeHeader reads a header from the reader and returns ErrMismatch if it differs from the given header.
func ConsumeHeader(r io.Reader, hdr Header) error {
	actual := make([]byte, len(hdr))
	if _, err := io.ReadFull(r, actual); err != nil {
		return err
	}
	if !bytes.Equal(hdr, actual) {
		return ErrMismatch
	}
	return nil
}

// WrapHeaderReader returns a reader that yields the given header before the contents of r. It puts back a header
// that was read in order to select a codec.
func WrapHeaderReader(hdr Header, r io.Reader) io.Reader {
	return io.MultiReader(bytes.NewReader(hdr), r)
}
