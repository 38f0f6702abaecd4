package ioutil

import (
	"io"

	"github.com/eluv-io/errors-go"
)

var (
	_ io.Reader = (*FailingReader)(nil)
	_ io.Writer = (*FailingWriter)(nil)
)

// FailingReader is a test utility that fails after reading a given bytes count.
// See NewFailingReader.
type FailingReader struct {
	io.Reader
	failAt     int64
	bytesCount int64
	err        error
}

// NewFailingReader wraps the given io.Reader and fails after having read failAt bytes. The failure can be
// provided with the optional error parameter, otherwise an error of kind IO is returned.
func NewFailingReader(r io.Reader, failAt int64, err ...error) *FailingReader {
	res := &FailingReader{
		Reader: r,
		failAt: failAt,
	}
	if len(err) > 0 {
		res.err = err[0]
	}
	return res
}

func (r *FailingReader) fail() error {
	if r.err != nil {
		return r.err
	}
	return errors.E("FailingReader.Read", errors.K.IO, "reason", "failing reader", "fail_at", r.failAt)
}

func (r *FailingReader) Read(p []byte) (int, error) {
	remaining := r.failAt - r.bytesCount
	if remaining <= 0 {
		return 0, r.fail()
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := r.Reader.Read(p)
	r.bytesCount += int64(n)
	if err == nil && r.bytesCount >= r.failAt {
		err = r.fail()
	}
	return n, err
}

// FailingWriter is a test utility that accepts at most a given bytes count. A write that would exceed the limit
// writes nothing and fails.
type FailingWriter struct {
	Writer  io.Writer
	Limit   int
	Written int
	err     error
}

// NewFailingWriter wraps the given writer. The failure can be provided with the optional error parameter,
// otherwise an error of kind IO is returned.
func NewFailingWriter(w io.Writer, limit int, err ...error) *FailingWriter {
	res := &FailingWriter{
		Writer: w,
		Limit:  limit,
	}
	if len(err) > 0 {
		res.err = err[0]
	}
	return res
}

func (f *FailingWriter) Write(p []byte) (int, error) {
	if f.Written+len(p) > f.Limit {
		if f.err != nil {
			return 0, f.err
		}
		return 0, errors.E("FailingWriter.Write", errors.K.IO, "reason", "limit exceeded", "limit", f.Limit)
	}
	n, err := f.Writer.Write(p)
	f.Written += n
	return n, err
}
