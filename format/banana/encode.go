package banana

// Encode returns the wire representation of e in a newly allocated buffer.
func Encode(e Element) []byte {
	return Append(make([]byte, 0, EncodedLen(e)), e)
}

// Append appends the wire representation of e to buf and returns the extended buffer.
func Append(buf []byte, e Element) []byte {
	return e.appendBanana(buf)
}

// EncodedLen returns the size of the wire representation of e. Extension values implementing ExtensionSizer
// report their own size, others are measured by encoding them.
func EncodedLen(e Element) int {
	switch v := e.(type) {
	case Integer:
		if v >= 0 {
			return magnitudeLen(uint32(v)) + 1
		}
		return magnitudeLen(uint32(-int64(v))) + 1
	case String:
		return magnitudeLen(uint32(len(v))) + 1 + len(v)
	case Float:
		return 1 + floatPayloadSize
	case List:
		n := magnitudeLen(uint32(len(v))) + 1
		for _, child := range v {
			n += EncodedLen(child)
		}
		return n
	case Extension:
		if sz, ok := v.Value.(ExtensionSizer); ok {
			return sz.EncodedLen()
		}
		return len(v.Value.AppendBanana(nil))
	}
	return 0
}

func (i Integer) appendBanana(buf []byte) []byte {
	return appendInt(buf, int32(i))
}

func (s String) appendBanana(buf []byte) []byte {
	return appendString(buf, s)
}

func (f Float) appendBanana(buf []byte) []byte {
	return appendFloat(buf, float64(f))
}

func (l List) appendBanana(buf []byte) []byte {
	buf = appendMagnitude(buf, uint32(len(l)))
	buf = append(buf, ListDelimiter)
	for _, child := range l {
		buf = child.appendBanana(buf)
	}
	return buf
}

func (x Extension) appendBanana(buf []byte) []byte {
	return x.Value.AppendBanana(buf)
}
