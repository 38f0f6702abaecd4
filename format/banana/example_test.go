package banana_test

import (
	"fmt"

	"github.com/eluv-io/banana-go/format/banana"
)

func ExampleDecode() {
	e, err := banana.Decode([]byte{2, 0x80, 0x01, 0x81, 0x05, 0x82, 'h', 'e', 'l', 'l', 'o'})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(e)

	_, err = banana.Decode([]byte{0x04, 0x82, 'b', 'a', 'n'})
	fmt.Println(err)

	// Output:
	// [1, b"hello"]
	// banana decode: too short expected=4 actual=3
}

func ExampleEncode() {
	bts := banana.Encode(banana.List{banana.Integer(-6674), banana.Float(1.5)})
	fmt.Printf("% x\n", bts)

	// Output:
	// 02 80 12 34 83 84 3f f8 00 00 00 00 00 00
}

func ExampleDecoder_DecodeRemainder() {
	dec := banana.NewDecoder(banana.OptMaxDepth(8))
	rem := []byte{0x01, 0x81, 0x00, 0x80, 0x03, 0x82, 'a', 'b', 'c'}
	for len(rem) > 0 {
		var e banana.Element
		var err error
		e, rem, err = dec.DecodeRemainder(rem)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(e.Kind(), e)
	}

	// Output:
	// integer 1
	// list []
	// string b"abc"
}
