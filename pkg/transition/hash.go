package transition

import "unicode/utf16"

// Hash returns the djb2-xor hash of s computed over its UTF-16 code units
// from last to first, the same value browsers produce for rule names.
func Hash(s string) uint32 {
	units := utf16.Encode([]rune(s))
	h := int32(5381)
	for i := len(units) - 1; i >= 0; i-- {
		h = (h<<5 - h) ^ int32(units[i])
	}
	return uint32(h)
}
