package header

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		path    string
		wantErr error
	}{
		{path: "/banana"},
		{path: "/banana-pb"},
		{path: strings.Repeat("a", MaxPathLen)},
		{path: strings.Repeat("b", MaxPathLen+1), wantErr: ErrTooLong},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			hdr, err := NewNoPanic(test.path)
			if test.wantErr != nil {
				require.Equal(t, test.wantErr, err)
				require.Panics(t, func() { New(test.path) })
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.path, hdr.String())
			require.Equal(t, test.path, hdr.Path())
			require.Equal(t, len(test.path)+2, len(hdr))

			buf := &bytes.Buffer{}
			require.NoError(t, WriteHeader(buf, hdr))

			rhdr, err := ReadHeader(buf)
			require.NoError(t, err)
			require.Equal(t, hdr, rhdr)
		})
	}
}

func TestReadHeader(t *testing.T) {
	tests := []struct {
		name     string
		bts      []byte
		wantPath string
		wantErr  error
	}{
		{
			name:     "banana",
			bts:      []byte{8, '/', 'b', 'a', 'n', 'a', 'n', 'a', '\n'},
			wantPath: "/banana",
		},
		{
			name:     "longest",
			bts:      append(append([]byte{MaxPathLen + 1}, bytes.Repeat([]byte{'a'}, MaxPathLen)...), '\n'),
			wantPath: strings.Repeat("a", MaxPathLen),
		},
		{
			name:    "wrong length",
			bts:     []byte{3, '/', 'p', 'b', '\n'},
			wantErr: ErrHeaderInvalid,
		},
		{
			name:    "length too large",
			bts:     []byte{0x80, '/', 'p', 'b', '\n'},
			wantErr: ErrHeaderInvalid,
		},
		{
			name:    "truncated",
			bts:     []byte{9, '/', 'b', 'a', 'n', 'a', 'n', 'a', '\n'},
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "empty",
			bts:     []byte{},
			wantErr: io.EOF,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hdr, err := ReadHeader(bytes.NewReader(test.bts))
			if test.wantErr != nil {
				require.Equal(t, test.wantErr, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.wantPath, hdr.Path())
		})
	}
}

func TestConsumeHeader(t *testing.T) {
	hdr := New("/banana")

	require.NoError(t, ConsumeHeader(bytes.NewReader(hdr), hdr))
	require.Equal(t, ErrMismatch, ConsumeHeader(bytes.NewReader(New("/banana-pb")), hdr))
	require.Equal(t, io.ErrUnexpectedEOF, ConsumeHeader(bytes.NewReader(hdr[:3]), hdr))
}

func TestWrapHeaderReader(t *testing.T) {
	hdr := New("/banana")
	r := WrapHeaderReader(hdr, strings.NewReader("rest"))
	bts, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "\x08/banana\nrest", string(bts))
	require.Equal(t, "", Path(nil))
}
