package banana_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/eluv-io/banana-go/format/banana"
)

func TestFromValue(t *testing.T) {
	tests := []struct {
		v    interface{}
		want banana.Element
	}{
		{1, banana.Integer(1)},
		{int8(-1), banana.Integer(-1)},
		{int16(300), banana.Integer(300)},
		{int32(math.MinInt32), banana.Integer(math.MinInt32)},
		{int64(math.MaxInt32), banana.Integer(math.MaxInt32)},
		{uint(7), banana.Integer(7)},
		{uint8(255), banana.Integer(255)},
		{uint16(65535), banana.Integer(65535)},
		{uint32(math.MaxInt32), banana.Integer(math.MaxInt32)},
		{uint64(12), banana.Integer(12)},
		{"hello", banana.String("hello")},
		{[]byte{0xff}, banana.String{0xff}},
		{float32(1.5), banana.Float(1.5)},
		{2.25, banana.Float(2.25)},
		{banana.Integer(3), banana.Integer(3)},
		{some(1), banana.Extension{Value: some(1)}},
		{[]banana.Element{banana.Integer(1)}, banana.List{banana.Integer(1)}},
		{[]interface{}{1, "a", []interface{}{2.5}}, banana.List{banana.Integer(1), banana.String("a"), banana.List{banana.Float(2.5)}}},
		{[]interface{}{}, banana.List{}},
		{name("abc"), banana.String("abc")},
		{count(-4), banana.Integer(-4)},
		{blob{1, 2}, banana.String{1, 2}},
		{[]int{1, 2}, banana.List{banana.Integer(1), banana.Integer(2)}},
		{[]string{"a"}, banana.List{banana.String("a")}},
		{ptr(5), banana.Integer(5)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T %v", tt.v, tt.v), func(t *testing.T) {
			e, err := banana.FromValue(tt.v)
			require.NoError(t, err)
			require.Equal(t, tt.want, e)
		})
	}
}

func TestFromValueErrors(t *testing.T) {
	tests := []interface{}{
		nil,
		true,
		int64(math.MaxInt32 + 1),
		int64(math.MinInt32 - 1),
		uint32(math.MaxInt32 + 1),
		uint64(math.MaxUint64),
		map[string]interface{}{"a": 1},
		[]interface{}{1, struct{}{}},
		[]int64{1, math.MaxInt64},
		(*int)(nil),
		[2]int{1, 2},
	}
	for _, v := range tests {
		t.Run(fmt.Sprintf("%T %v", v, v), func(t *testing.T) {
			_, err := banana.FromValue(v)
			require.Error(t, err)
			require.True(t, errors.IsKind(errors.K.Invalid, err))
		})
	}
}

type name string

type count int16

type blob []byte

func ptr(i int) *int { return &i }

func TestToValue(t *testing.T) {
	e := banana.List{
		banana.Integer(-3),
		banana.String("text"),
		banana.String{0xff, 0xfe},
		banana.Float(0.5),
		banana.List{},
		banana.Extension{Value: some(9)},
	}
	require.Equal(t, []interface{}{
		-3,
		"text",
		[]byte{0xff, 0xfe},
		0.5,
		[]interface{}{},
		some(9),
	}, banana.ToValue(e))

	back, err := banana.FromValue(banana.ToValue(e))
	require.NoError(t, err)
	require.Equal(t, e, back)
}
