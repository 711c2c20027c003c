// Package conv provides checked integer narrowing used by the automata.
//
// State identifiers and slot indexes are stored as uint32 to keep tables
// compact. The compiler bounds program size long before these limits, so an
// overflow here is a programming error and panics.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct where int is 32 bits wide
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Int64ToInt converts n to int.
// Panics if n does not fit the platform int.
func Int64ToInt(n int64) int {
	if n > math.MaxInt || n < math.MinInt {
		panic("integer overflow: int64 value out of int range")
	}
	return int(n)
}

// ClampInt64 converts n to int, saturating at the platform limits.
func ClampInt64(n int64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	if n < math.MinInt {
		return math.MinInt
	}
	return int(n)
}
