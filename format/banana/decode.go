package banana

import (
	elog "github.com/eluv-io/log-go"
	"github.com/gammazero/deque"
)

var log = elog.Get("/banana")

// Decoder decodes Banana elements, consulting its profile before the native types. A Decoder holds no mutable
// state and may be used concurrently.
type Decoder struct {
	options
}

// NewDecoder creates a decoder configured with the given options. Without options, it decodes plain Banana.
func NewDecoder(opts ...Option) *Decoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Decoder{options: o}
}

var plain = NewDecoder()

// Decode decodes the plain Banana element at the start of msg. Trailing bytes are ignored.
func Decode(msg []byte) (Element, error) {
	return plain.Decode(msg)
}

// DecodeRemainder decodes the plain Banana element at the start of msg and returns it together with the bytes
// following it.
func DecodeRemainder(msg []byte) (Element, []byte, error) {
	return plain.DecodeRemainder(msg)
}

// Profile returns the decoder's profile.
func (d *Decoder) Profile() Profile {
	return d.profile
}

// Decode decodes the element at the start of msg. Bytes following the element are ignored, unless the decoder
// was created with OptStrict.
func (d *Decoder) Decode(msg []byte) (Element, error) {
	e, rem, err := d.DecodeRemainder(msg)
	if err != nil {
		return nil, err
	}
	if len(rem) > 0 {
		if d.strict {
			return nil, Invalid("%d trailing bytes after element", len(rem))
		}
		if log.IsDebug() {
			log.Debug("ignoring trailing bytes", "count", len(rem), "total", len(msg))
		}
	}
	return e, nil
}

// pending is a list whose children are still being decoded.
type pending struct {
	items List
	count int
}

// DecodeRemainder decodes the element at the start of msg and returns it together with the remaining bytes,
// which are a suffix of msg. The first error encountered aborts decoding.
//
// Lists are decoded without recursion: partially decoded lists are kept on an explicit stack, limited by the
// maximum depth option.
func (d *Decoder) DecodeRemainder(msg []byte) (Element, []byte, error) {
	var stack *deque.Deque
	rem := msg
	for {
		e, count, next, err := d.decodeOne(rem)
		if err != nil {
			return nil, nil, err
		}
		rem = next

		if e == nil {
			// list header
			depth := 1
			if stack != nil {
				depth += stack.Len()
			}
			if d.maxDepth > 0 && depth > d.maxDepth {
				return nil, nil, Invalid("list nesting exceeds maximum depth %d", d.maxDepth)
			}
			if count == 0 {
				e = List{}
			} else {
				if stack == nil {
					stack = deque.New()
				}
				capacity := count
				if capacity > len(rem) {
					capacity = len(rem)
				}
				stack.PushBack(&pending{items: make(List, 0, capacity), count: count})
				continue
			}
		}

		// complete element: attach it to the innermost pending list, closing lists as they fill up
		for {
			if stack == nil || stack.Len() == 0 {
				return e, rem, nil
			}
			top := stack.Back().(*pending)
			top.items = append(top.items, e)
			if len(top.items) < top.count {
				break
			}
			stack.PopBack()
			e = top.items
		}
	}
}

// decodeOne decodes the element at the start of msg, except for lists: for a list, it returns a nil element and
// the declared count, and the remainder starts at the first child.
func (d *Decoder) decodeOne(msg []byte) (Element, int, []byte, error) {
	preamble, delimiter, err := splitPreamble(msg)
	if err != nil {
		return nil, 0, nil, err
	}

	ext, rest, err := d.profile.Decode(delimiter, preamble, msg)
	switch {
	case err == nil:
		if ext == nil {
			return nil, 0, nil, Invalid("profile returned no value for delimiter 0x%02x", delimiter)
		}
		return Extension{Value: ext}, 0, rest, nil
	case !IsUnknownType(err):
		return nil, 0, nil, err
	}

	after := msg[len(preamble)+1:]
	switch delimiter {
	case IntDelimiter:
		i, err := decodePositive(preamble)
		if err != nil {
			return nil, 0, nil, err
		}
		return Integer(i), 0, after, nil
	case NegIntDelimiter:
		i, err := decodeNegative(preamble)
		if err != nil {
			return nil, 0, nil, err
		}
		return Integer(i), 0, after, nil
	case StringDelimiter:
		s, err := decodeString(preamble, msg)
		if err != nil {
			return nil, 0, nil, err
		}
		rest = after[len(s):]
		if !d.zeroCopy {
			s = append([]byte{}, s...)
		}
		return String(s), 0, rest, nil
	case FloatDelimiter:
		f, err := decodeFloat(preamble, msg)
		if err != nil {
			return nil, 0, nil, err
		}
		return Float(f), 0, msg[1+floatPayloadSize:], nil
	case ListDelimiter:
		if len(preamble) == 0 {
			return nil, 0, nil, Invalid("List without a length")
		}
		n, err := decodePositive(preamble)
		if err != nil {
			return nil, 0, nil, err
		}
		if d.maxListLen > 0 && int(n) > d.maxListLen {
			return nil, 0, nil, Invalid("list length %d exceeds maximum %d", n, d.maxListLen)
		}
		return nil, int(n), after, nil
	}
	return nil, 0, nil, UnknownType(delimiter)
}
