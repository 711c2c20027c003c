// Package simd provides the byte search kernels used by the prefilters.
//
// Every kernel has a portable SWAR (SIMD Within A Register) implementation
// that inspects 8 bytes per step with uint64 arithmetic. Where the Go runtime
// already ships a vectorized single byte search for the running CPU, Memchr
// dispatches to it instead. The choice is made once at package
// initialization from golang.org/x/sys/cpu feature flags.
package simd

import "golang.org/x/sys/cpu"

// vectorIndexByte is true when bytes.IndexByte is backed by vector
// instructions on this CPU.
var vectorIndexByte = cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD || cpu.PPC64.IsPOWER8 || cpu.S390X.HasVX

// smallInput is the length below which the kernels fall back to a plain loop.
const smallInput = 8

const (
	lo8 = uint64(0x0101010101010101)
	hi8 = uint64(0x8080808080808080)
)

// broadcast replicates b into every byte of a uint64.
func broadcast(b byte) uint64 {
	return uint64(b) * lo8
}

// zeroBytes sets the high bit of every byte of the result whose byte in v is
// zero. Bits above the first zero byte may be spurious, so only the lowest
// set bit is reliable.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// Kernel names the implementation Memchr dispatches to.
func Kernel() string {
	if vectorIndexByte {
		return "vector"
	}
	return "swar"
}
