package simd

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o') // 4
func Memchr(haystack []byte, needle byte) int {
	if vectorIndexByte {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

// Memchr2 returns the index of the first byte of haystack equal to needle1
// or needle2, or -1.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if len(haystack) < smallInput {
		for i, b := range haystack {
			if b == needle1 || b == needle2 {
				return i
			}
		}
		return -1
	}

	m1, m2 := broadcast(needle1), broadcast(needle2)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if found := zeroBytes(chunk^m1) | zeroBytes(chunk^m2); found != 0 {
			return i + bits.TrailingZeros64(found)/8
		}
	}
	for ; i < len(haystack); i++ {
		if b := haystack[i]; b == needle1 || b == needle2 {
			return i
		}
	}
	return -1
}

// Memchr3 returns the index of the first byte of haystack equal to any of
// the three needles, or -1.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	if len(haystack) < smallInput {
		for i, b := range haystack {
			if b == needle1 || b == needle2 || b == needle3 {
				return i
			}
		}
		return -1
	}

	m1, m2, m3 := broadcast(needle1), broadcast(needle2), broadcast(needle3)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		found := zeroBytes(chunk^m1) | zeroBytes(chunk^m2) | zeroBytes(chunk^m3)
		if found != 0 {
			return i + bits.TrailingZeros64(found)/8
		}
	}
	for ; i < len(haystack); i++ {
		if b := haystack[i]; b == needle1 || b == needle2 || b == needle3 {
			return i
		}
	}
	return -1
}

func memchrSWAR(haystack []byte, needle byte) int {
	if len(haystack) < smallInput {
		for i, b := range haystack {
			if b == needle {
				return i
			}
		}
		return -1
	}

	m := broadcast(needle)
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if found := zeroBytes(chunk ^ m); found != 0 {
			// the lowest set bit marks the first equal byte
			return i + bits.TrailingZeros64(found)/8
		}
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}
