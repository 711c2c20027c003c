package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. An empty needle matches at 0, as with
// bytes.Index.
//
// Candidates are found by searching for the needle's rarest byte with
// Memchr, then verified in full.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab")) // 4
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, offset := RareByte(needle)
	at := offset
	for at < len(haystack) {
		i := Memchr(haystack[at:], rare)
		if i < 0 {
			return -1
		}
		candidate := at + i - offset
		if candidate+len(needle) > len(haystack) {
			return -1
		}
		if bytes.Equal(haystack[candidate:candidate+len(needle)], needle) {
			return candidate
		}
		at += i + 1
	}
	return -1
}
