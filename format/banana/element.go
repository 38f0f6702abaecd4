package banana

// Kind is the variant of an Element.
type Kind uint8

const (
	KindInteger Kind = iota + 1
	KindString
	KindFloat
	KindList
	KindExtension
)

var kindNames = map[Kind]string{
	KindInteger:   "integer",
	KindString:    "string",
	KindFloat:     "float",
	KindList:      "list",
	KindExtension: "extension",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Element is a Banana value. It is one of Integer, String, Float, List or Extension - no other implementations
// exist.
//
// Elements are values: they are built once (by decoding or directly for encoding) and not modified afterwards.
// A List owns its children; nil children are not allowed.
type Element interface {
	// Kind returns the variant of this element.
	Kind() Kind
	// String returns a human readable representation of the element.
	String() string

	appendBanana(buf []byte) []byte
}

// ExtensionValue is a value produced by a Profile. The core treats it as opaque and only asks it to encode
// itself: AppendBanana appends the complete wire representation of the value, including the profile's
// delimiter, and returns the extended buffer.
type ExtensionValue interface {
	AppendBanana(buf []byte) []byte
}

// ExtensionSizer is implemented by extension values that know the size of their wire representation.
// EncodedLen uses it instead of encoding the value.
type ExtensionSizer interface {
	EncodedLen() int
}

// Integer is a signed 32-bit integer, encoded with delimiter 0x81 if non-negative and 0x83 otherwise.
type Integer int32

// String is a byte string (not necessarily UTF-8), delimiter 0x82.
type String []byte

// Float is an IEEE-754 double, delimiter 0x84.
type Float float64

// List is an ordered list of elements, delimiter 0x80.
type List []Element

// Extension wraps a value defined by a Profile.
type Extension struct {
	Value ExtensionValue
}

func (Integer) Kind() Kind   { return KindInteger }
func (String) Kind() Kind    { return KindString }
func (Float) Kind() Kind     { return KindFloat }
func (List) Kind() Kind      { return KindList }
func (Extension) Kind() Kind { return KindExtension }

// ExtensionAs returns the extension value of e as type T. It returns false if e is not an Extension or its
// value is not a T.
func ExtensionAs[T ExtensionValue](e Element) (T, bool) {
	var zero T
	ext, ok := e.(Extension)
	if !ok {
		return zero, false
	}
	t, ok := ext.Value.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
