package ioutil

import (
	"io"
)

var (
	_ io.Reader     = (*ByteReader)(nil)
	_ io.ByteReader = (*ByteReader)(nil)
)

// ByteReader adapts an io.Reader to io.ByteReader without reading ahead: each call to ReadByte reads exactly one
// byte from the underlying reader. It counts the bytes read through either method.
type ByteReader struct {
	io.Reader
	BytesCount int64
	one        [1]byte
}

// NewByteReader wraps the given reader. If r already is a *ByteReader, it is returned unchanged.
func NewByteReader(r io.Reader) *ByteReader {
	if br, ok := r.(*ByteReader); ok {
		return br
	}
	return &ByteReader{Reader: r}
}

func (b *ByteReader) Read(p []byte) (int, error) {
	n, err := b.Reader.Read(p)
	b.BytesCount += int64(n)
	return n, err
}

// ReadByte reads a single byte. It returns io.EOF if the underlying reader is exhausted.
func (b *ByteReader) ReadByte() (byte, error) {
	for {
		n, err := b.Reader.Read(b.one[:])
		if n == 1 {
			b.BytesCount++
			return b.one[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}
