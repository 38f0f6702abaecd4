package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/eluv-io/banana-go/format/banana"
	"github.com/eluv-io/banana-go/format/banana/pb"
	"github.com/eluv-io/banana-go/format/envelope"
)

var versionMsg = []byte{0x02, 0x80, 0x13, 0x87, 0x06, 0x81}

func dump(t *testing.T, in []byte, args ...string) (string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := run(args, bytes.NewReader(in), stdout, stderr)
	return stdout.String(), err
}

func TestOutputFormats(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--profile", "pb"}, "[Version, 6]\n"},
		{[]string{"--profile", "pb", "--output", "text"}, "[Version, 6]\n"},
		{[]string{"--profile", "pb", "-o", "json"}, "[\"Version\",6]\n"},
		{[]string{"--profile", "pb", "--output", "yaml"}, "---\n- Version\n- 6\n"},
	}
	for _, tt := range tests {
		t.Run(tt.args[len(tt.args)-1], func(t *testing.T) {
			out, err := dump(t, versionMsg, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestPlainValues(t *testing.T) {
	msg := banana.Encode(banana.List{banana.Integer(-3), banana.String("hello"), banana.Float(1.5)})

	out, err := dump(t, msg)
	require.NoError(t, err)
	require.Equal(t, "[-3, b\"hello\", 1.5]\n", out)

	out, err = dump(t, msg, "--output", "json")
	require.NoError(t, err)
	require.Equal(t, "[-3,\"hello\",1.5]\n", out)
}

func TestHexInput(t *testing.T) {
	out, err := dump(t, []byte("02 80\n13 87 06 81\n"), "--hex", "--profile", "pb")
	require.NoError(t, err)
	require.Equal(t, "[Version, 6]\n", out)

	out, err = dump(t, []byte("0x1234 81"), "--hex")
	require.NoError(t, err)
	require.Equal(t, "6674\n", out)

	_, err = dump(t, []byte("zz"), "--hex")
	require.Error(t, err)
	require.True(t, errors.IsKind(errors.K.Invalid, err))
}

func TestFileInput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "msg.bin")
	require.NoError(t, os.WriteFile(file, versionMsg, 0644))

	out, err := dump(t, nil, "--profile", "pb", file)
	require.NoError(t, err)
	require.Equal(t, "[Version, 6]\n", out)

	_, err = dump(t, nil, filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	require.True(t, errors.IsKind(errors.K.NotExist, err))
}

func TestEnvelopeInput(t *testing.T) {
	buf := &bytes.Buffer{}
	_, err := envelope.WriteElement(buf, banana.List{pb.Token(pb.Version), banana.Integer(6)}, "/banana-pb")
	require.NoError(t, err)
	_, err = envelope.WriteElement(buf, banana.String("abc"))
	require.NoError(t, err)

	// profile chosen by envelope format
	out, err := dump(t, buf.Bytes(), "--envelope")
	require.NoError(t, err)
	require.Equal(t, "[Version, 6]\nb\"abc\"\n", out)

	// explicit plain profile does not know PB tokens
	_, err = dump(t, buf.Bytes(), "--envelope", "--profile", "none")
	require.Error(t, err)
	require.True(t, banana.IsUnknownType(err))

	_, err = dump(t, nil, "--envelope")
	require.Error(t, err)
	require.True(t, errors.IsKind(errors.K.NotExist, err))
}

func TestDecodeOptions(t *testing.T) {
	_, err := dump(t, []byte{0x01, 0x81, 0x02})
	require.NoError(t, err)

	_, err = dump(t, []byte{0x01, 0x81, 0x02}, "--strict")
	require.Error(t, err)
	require.ErrorIs(t, err, banana.ErrInvalid)

	nested := []byte{0x01, 0x80, 0x01, 0x80, 0x01, 0x80, 0x00, 0x80}
	_, err = dump(t, nested, "--max-depth", "2")
	require.Error(t, err)
	require.ErrorIs(t, err, banana.ErrInvalid)

	out, err := dump(t, nested, "--max-depth", "0")
	require.NoError(t, err)
	require.Equal(t, "[[[[]]]]\n", out)
}

func TestArgErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--profile", "other"},
		{"--output", "xml"},
		{"--unknown"},
		{"a", "b"},
	} {
		_, err := dump(t, versionMsg, args...)
		require.Error(t, err, args)
		require.True(t, errors.IsKind(errors.K.Invalid, err), args)
	}

	// PB tokens need the PB profile
	_, err := dump(t, versionMsg)
	require.Error(t, err)
	require.True(t, banana.IsUnknownType(err))

	out, err := dump(t, nil, "--help")
	require.NoError(t, err)
	require.Empty(t, out)
}
