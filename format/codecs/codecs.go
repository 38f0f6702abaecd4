package codecs

import (
	"fmt"
	"io"
	"reflect"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"

	"github.com/eluv-io/banana-go/format/banana"
	"github.com/eluv-io/banana-go/format/banana/pb"
)

var log = elog.Get("/banana/codecs")

var (
	BananaCodec = NewBananaCodec(banana.None{})
	PBCodec     = NewBananaCodec(pb.Profile{})

	BananaMultiCodecPath = "/banana"
	PBMultiCodecPath     = "/banana-pb"

	BananaMultiCodec = NewMultiCodec(BananaCodec, BananaMultiCodecPath)
	PBMultiCodec     = NewMultiCodec(PBCodec, PBMultiCodecPath)
	// BananaMuxCodec encodes plain Banana and decodes both plain Banana and Banana with the PB profile.
	BananaMuxCodec = NewMuxCodec(BananaMultiCodec, PBMultiCodec)
)

// NewBananaCodec creates a streaming Codec for the Banana format using the given profile for decoding.
//
// The encoder accepts elements and any Go value supported by banana.FromValue and writes one element per call to
// Encode. The decoder reads the entire input into memory the first time Decode is called and then decodes one
// element per call, returning io.EOF once the input is exhausted. The decode target must be a pointer to
//   - banana.Element or any of the element types
//   - interface{}, receiving the result of banana.ToValue
//   - a type of the profile's extension values
//   - an integer, string, byte slice or float kind matching the element
//   - a slice of any of the above for lists
func NewBananaCodec(profile banana.Profile, opts ...banana.Option) Codec {
	// banana.Decoder is stateless, so all streams share one
	dec := banana.NewDecoder(append([]banana.Option{banana.OptProfile(profile)}, opts...)...)
	return NewCodec(
		func(w io.Writer) Encoder {
			return &bananaEncoder{writer: w}
		},
		func(r io.Reader) Decoder {
			return &bananaDecoder{reader: r, decoder: dec}
		},
	)
}

type bananaEncoder struct {
	writer io.Writer
	buf    []byte
}

func (e *bananaEncoder) Encode(obj interface{}) error {
	el, err := banana.FromValue(obj)
	if err != nil {
		return errors.E("bananaEncoder.Encode", errors.K.Invalid, err)
	}
	e.buf = banana.Append(e.buf[:0], el)
	if _, err = e.writer.Write(e.buf); err != nil {
		return errors.E("bananaEncoder.Encode", errors.K.IO, err, "reason", "failed to write element")
	}
	return nil
}

type bananaDecoder struct {
	reader  io.Reader
	decoder *banana.Decoder
	buf     []byte
	loaded  bool
	offset  int
}

func (d *bananaDecoder) Decode(obj interface{}) error {
	e := errors.Template("bananaDecoder.Decode")
	if !d.loaded {
		bts, err := io.ReadAll(d.reader)
		if err != nil {
			return e(errors.K.IO, err, "reason", "failed to read input")
		}
		d.buf = bts
		d.loaded = true
		if log.IsDebug() {
			log.Debug("loaded input", "size", len(bts))
		}
	}
	if len(d.buf) == 0 {
		return io.EOF
	}

	el, rem, err := d.decoder.DecodeRemainder(d.buf)
	if err != nil {
		return e(errors.K.Invalid, err, "offset", d.offset)
	}
	d.offset += len(d.buf) - len(rem)
	d.buf = rem

	return assign(el, obj)
}

// assign stores the element in the value pointed to by obj.
func assign(el banana.Element, obj interface{}) error {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.E("bananaDecoder.Decode", errors.K.Invalid,
			"reason", "target must be a non-nil pointer",
			"target", fmt.Sprintf("%T", obj))
	}
	return assignValue(el, rv.Elem())
}

func assignValue(el banana.Element, target reflect.Value) error {
	tt := target.Type()
	mismatch := func() error {
		return errors.E("bananaDecoder.Decode", errors.K.Invalid,
			"reason", "element does not match target",
			"element", el.Kind().String(),
			"target", tt.String())
	}

	if tt.Kind() == reflect.Interface && tt.NumMethod() == 0 {
		v := banana.ToValue(el)
		if v == nil {
			target.Set(reflect.Zero(tt))
		} else {
			target.Set(reflect.ValueOf(v))
		}
		return nil
	}
	if reflect.TypeOf(el).AssignableTo(tt) {
		target.Set(reflect.ValueOf(el))
		return nil
	}

	switch t := el.(type) {
	case banana.Integer:
		switch tt.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if target.OverflowInt(int64(t)) {
				return mismatch()
			}
			target.SetInt(int64(t))
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if t < 0 || target.OverflowUint(uint64(t)) {
				return mismatch()
			}
			target.SetUint(uint64(t))
			return nil
		}
	case banana.String:
		switch {
		case tt.Kind() == reflect.String:
			target.SetString(string(t))
			return nil
		case tt.Kind() == reflect.Slice && tt.Elem().Kind() == reflect.Uint8:
			target.SetBytes(append([]byte{}, t...))
			return nil
		}
	case banana.Float:
		switch tt.Kind() {
		case reflect.Float32, reflect.Float64:
			if target.OverflowFloat(float64(t)) {
				return mismatch()
			}
			target.SetFloat(float64(t))
			return nil
		}
	case banana.List:
		if tt.Kind() == reflect.Slice {
			s := reflect.MakeSlice(tt, len(t), len(t))
			for i, child := range t {
				if err := assignValue(child, s.Index(i)); err != nil {
					return errors.E("bananaDecoder.Decode", errors.K.Invalid, err, "index", i)
				}
			}
			target.Set(s)
			return nil
		}
	case banana.Extension:
		if t.Value != nil && reflect.TypeOf(t.Value).AssignableTo(tt) {
			target.Set(reflect.ValueOf(t.Value))
			return nil
		}
	}
	return mismatch()
}
