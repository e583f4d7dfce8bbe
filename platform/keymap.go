package platform

/*
Key Mappings:

	Keypad       Keyboard
	+-+-+-+-+    +-+-+-+-+
	|1|2|3|C|    |1|2|3|4|
	+-+-+-+-+    +-+-+-+-+
	|4|5|6|D|    |Q|W|E|R|
	+-+-+-+-+ => +-+-+-+-+
	|7|8|9|E|    |A|S|D|F|
	+-+-+-+-+    +-+-+-+-+
	|A|0|B|F|    |Z|X|C|V|
	+-+-+-+-+    +-+-+-+-+
*/
var layout = map[rune]byte{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// KeyFor maps a keyboard character onto the keypad. Upper case letters map
// like lower case.
func KeyFor(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	k, ok := layout[r]
	return k, ok
}
