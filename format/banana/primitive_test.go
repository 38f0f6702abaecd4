package banana

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitPreamble(t *testing.T) {
	_, _, err := splitPreamble(nil)
	require.Equal(t, Empty(), err)

	_, _, err = splitPreamble([]byte{})
	require.Equal(t, Empty(), err)

	_, _, err = splitPreamble([]byte{0x01, 0x02, 0x7f})
	require.Equal(t, NoType(), err)

	msg := []byte{0x42, 0x24, 0x82, 0x01}
	preamble, delimiter, err := splitPreamble(msg)
	require.NoError(t, err)
	require.Equal(t, []byte{0x42, 0x24}, preamble)
	require.Equal(t, byte(0x82), delimiter)

	preamble, delimiter, err = splitPreamble([]byte{0xff, 0x01})
	require.NoError(t, err)
	require.Empty(t, preamble)
	require.Equal(t, byte(0xff), delimiter)
}

func TestDecodePositive(t *testing.T) {
	tests := []struct {
		digits  []byte
		want    int32
		wantErr bool
	}{
		{digits: nil, want: 0},
		{digits: []byte{0}, want: 0},
		{digits: []byte{0x0c}, want: 12},
		{digits: []byte{0x12, 0x34}, want: 6674},
		{digits: []byte{0x7f, 0x7f, 0x7f, 0x7f, 0x07}, want: math.MaxInt32},
		{digits: []byte{0x7f, 0x7f, 0x7f, 0x7f, 0x07, 0x00, 0x00}, want: math.MaxInt32},
		{digits: []byte{0x00, 0x00, 0x00, 0x00, 0x08}, wantErr: true},
		{digits: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("% x", tt.digits), func(t *testing.T) {
			res, err := decodePositive(tt.digits)
			if tt.wantErr {
				require.Equal(t, Overflow(tt.digits), err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, res)
		})
	}
}

func TestDecodeNegative(t *testing.T) {
	tests := []struct {
		digits  []byte
		want    int32
		wantErr bool
	}{
		{digits: nil, want: 0},
		{digits: []byte{0x01}, want: -1},
		{digits: []byte{0x12, 0x34}, want: -6674},
		{digits: []byte{0x7f, 0x7f, 0x7f, 0x7f, 0x07}, want: -math.MaxInt32},
		{digits: []byte{0x00, 0x00, 0x00, 0x00, 0x08}, want: math.MinInt32},
		{digits: []byte{0x01, 0x00, 0x00, 0x00, 0x08}, wantErr: true},
		{digits: []byte{0x00, 0x00, 0x00, 0x00, 0x09}, wantErr: true},
		{digits: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("% x", tt.digits), func(t *testing.T) {
			res, err := decodeNegative(tt.digits)
			if tt.wantErr {
				require.Equal(t, Overflow(tt.digits), err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, res)
		})
	}
}

func TestAppendMagnitude(t *testing.T) {
	tests := []struct {
		u    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x01}},
		{6674, []byte{0x12, 0x34}},
		{math.MaxInt32, []byte{0x7f, 0x7f, 0x7f, 0x7f, 0x07}},
		{absMinInt32, []byte{0x00, 0x00, 0x00, 0x00, 0x08}},
		{math.MaxUint32, []byte{0x7f, 0x7f, 0x7f, 0x7f, 0x0f}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.u), func(t *testing.T) {
			res := appendMagnitude(nil, tt.u)
			require.Equal(t, tt.want, res)
			require.Equal(t, len(tt.want), magnitudeLen(tt.u))
		})
	}
}

func TestMagnitudeRoundTrip(t *testing.T) {
	for _, i := range []int32{0, 1, 127, 128, 16383, 16384, 1 << 24, 1<<24 + 1, math.MaxInt32 - 1, math.MaxInt32} {
		res, err := decodePositive(appendMagnitude(nil, uint32(i)))
		require.NoError(t, err)
		require.Equal(t, i, res)

		res, err = decodeNegative(appendMagnitude(nil, uint32(i)))
		require.NoError(t, err)
		require.Equal(t, -i, res)
	}
}

func TestDecodeString(t *testing.T) {
	msg := []byte{0x03, 0x82, 'b', 'a', 'n', 'x'}
	s, err := decodeString(msg[:1], msg)
	require.NoError(t, err)
	require.Equal(t, []byte("ban"), s)

	msg = []byte{0x04, 0x82, 'b', 'a', 'n'}
	_, err = decodeString(msg[:1], msg)
	require.Equal(t, TooShort(4, 3), err)

	// length math.MaxInt32 must not wrap the end offset on 32-bit platforms
	msg = []byte{0x7f, 0x7f, 0x7f, 0x7f, 0x07, 0x82, 'a'}
	_, err = decodeString(msg[:5], msg)
	require.Equal(t, TooShort(math.MaxInt32, 1), err)

	msg = []byte{0x00, 0x00, 0x00, 0x00, 0x08, 0x82}
	_, err = decodeString(msg[:5], msg)
	require.Equal(t, Overflow(msg[:5]), err)
}

func TestDecodeFloat(t *testing.T) {
	msg := []byte{0x84, 0x3f, 0xf8, 0, 0, 0, 0, 0, 0}
	f, err := decodeFloat(nil, msg)
	require.NoError(t, err)
	require.Equal(t, 1.5, f)

	_, err = decodeFloat(nil, msg[:3])
	require.Equal(t, TooShort(9, 3), err)

	_, err = decodeFloat([]byte{0x01}, append([]byte{0x01}, msg...))
	require.True(t, ErrInvalid.Is(err))

	require.Equal(t, msg, appendFloat(nil, 1.5))
	require.Equal(t, []byte{0x84, 0x40, 0x37, 0, 0, 0, 0, 0, 0}, appendFloat(nil, 23))
}

func TestAppendInt(t *testing.T) {
	require.Equal(t, []byte{0x0c, 0x81}, appendInt(nil, 12))
	require.Equal(t, []byte{0x00, 0x81}, appendInt(nil, 0))
	require.Equal(t, []byte{0x12, 0x34, 0x83}, appendInt(nil, -6674))
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x08, 0x83}, appendInt(nil, math.MinInt32))
	require.Equal(t, []byte{0x7f, 0x7f, 0x7f, 0x7f, 0x07, 0x81}, appendInt(nil, math.MaxInt32))
}
