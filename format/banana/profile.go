package banana

// Profile is an extension of the Banana protocol. A decoder consults its profile first for every element, before
// trying the native types.
//
// Decode is called with the delimiter of the element, its preamble (the bytes before the delimiter) and msg,
// which holds all remaining bytes starting at the preamble. If the profile recognizes the delimiter, it validates
// the preamble, returns its value and the bytes following the element (a suffix of msg), or fails with an Invalid
// error. If it does not recognize the delimiter, it must return UnknownType(delimiter): the decoder then falls
// back to the native types. Any other error aborts decoding.
//
// Profiles must not modify msg or retain preamble or msg beyond the call, unless the returned value is meant to
// alias the input.
type Profile interface {
	Decode(delimiter byte, preamble, msg []byte) (ExtensionValue, []byte, error)
}

// ProfileFunc adapts a function to the Profile interface.
type ProfileFunc func(delimiter byte, preamble, msg []byte) (ExtensionValue, []byte, error)

func (f ProfileFunc) Decode(delimiter byte, preamble, msg []byte) (ExtensionValue, []byte, error) {
	return f(delimiter, preamble, msg)
}

// None is the trivial profile: it claims no delimiter and never produces extension values, resulting in plain
// Banana.
type None struct{}

func (None) Decode(delimiter byte, _, _ []byte) (ExtensionValue, []byte, error) {
	return nil, nil, UnknownType(delimiter)
}
