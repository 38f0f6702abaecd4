package banana

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// String returns b"..." if s is valid UTF-8, the list of byte values otherwise.
func (s String) String() string {
	if utf8.Valid(s) {
		return `b"` + string(s) + `"`
	}
	sb := strings.Builder{}
	sb.WriteByte('[')
	for i, b := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}
	sb.WriteByte(']')
	return sb.String()
}

// String returns the shortest decimal representation of f, and "inf", "-inf" or "NaN" for the special values.
func (f Float) String() string {
	switch {
	case math.IsInf(float64(f), 1):
		return "inf"
	case math.IsInf(float64(f), -1):
		return "-inf"
	case math.IsNaN(float64(f)):
		return "NaN"
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func (l List) String() string {
	sb := strings.Builder{}
	sb.WriteByte('[')
	for i, child := range l {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(child.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (x Extension) String() string {
	return fmt.Sprint(x.Value)
}
