package banana

import (
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/eluv-io/errors-go"
)

// FromValue converts a Go value to an element:
//
//	Element                          the element itself
//	ExtensionValue                   Extension
//	int, int8...int64, uint...uint64 Integer (must fit into an int32)
//	string, []byte                   String
//	float32, float64                 Float
//	[]interface{}, []Element         List (converted recursively)
//
// Named types and other slices are converted according to their underlying kind, and non-nil pointers are
// dereferenced. Any other type results in an error.
func FromValue(v interface{}) (Element, error) {
	e := errors.Template("banana.FromValue", errors.K.Invalid)
	switch t := v.(type) {
	case Element:
		return t, nil
	case ExtensionValue:
		return Extension{Value: t}, nil
	case int:
		return fromInt64(int64(t))
	case int8:
		return Integer(t), nil
	case int16:
		return Integer(t), nil
	case int32:
		return Integer(t), nil
	case int64:
		return fromInt64(t)
	case uint:
		return fromUint64(uint64(t))
	case uint8:
		return Integer(t), nil
	case uint16:
		return Integer(t), nil
	case uint32:
		return fromUint64(uint64(t))
	case uint64:
		return fromUint64(t)
	case string:
		return String(t), nil
	case []byte:
		return String(append([]byte{}, t...)), nil
	case float32:
		return Float(t), nil
	case float64:
		return Float(t), nil
	case []Element:
		return List(t), nil
	case []interface{}:
		l := make(List, len(t))
		for i, child := range t {
			c, err := FromValue(child)
			if err != nil {
				return nil, e(err, "index", i)
			}
			l[i] = c
		}
		return l, nil
	case nil:
		return nil, e("reason", "nil value")
	}
	return fromReflect(v)
}

func fromReflect(v interface{}) (Element, error) {
	e := errors.Template("banana.FromValue", errors.K.Invalid)
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint64(rv.Uint())
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, e("reason", "nil value", "type", fmt.Sprintf("%T", v))
		}
		return FromValue(rv.Elem().Interface())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(append([]byte{}, rv.Bytes()...)), nil
		}
		l := make(List, rv.Len())
		for i := range l {
			c, err := FromValue(rv.Index(i).Interface())
			if err != nil {
				return nil, e(err, "index", i)
			}
			l[i] = c
		}
		return l, nil
	}
	return nil, e("reason", "unsupported type",
		"type", fmt.Sprintf("%T", v),
		"value_dump", spew.Sdump(v))
}

func fromInt64(i int64) (Element, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return nil, errors.E("banana.FromValue", errors.K.Invalid, "reason", "integer out of int32 range", "value", i)
	}
	return Integer(i), nil
}

func fromUint64(u uint64) (Element, error) {
	if u > math.MaxInt32 {
		return nil, errors.E("banana.FromValue", errors.K.Invalid, "reason", "integer out of int32 range", "value", u)
	}
	return Integer(u), nil
}

// ToValue converts an element to a Go value: Integer to int, String to string if it is valid UTF-8 or []byte
// otherwise, Float to float64, List to []interface{} and Extension to its ExtensionValue.
func ToValue(e Element) interface{} {
	switch t := e.(type) {
	case Integer:
		return int(t)
	case String:
		if utf8.Valid(t) {
			return string(t)
		}
		return []byte(t)
	case Float:
		return float64(t)
	case List:
		res := make([]interface{}, len(t))
		for i, child := range t {
			res[i] = ToValue(child)
		}
		return res
	case Extension:
		return t.Value
	}
	return nil
}
