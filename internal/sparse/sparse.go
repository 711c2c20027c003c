// Package sparse provides the sparse set used to track NFA states during
// simulation and determinization.
//
// A sparse set supports O(1) insertion, membership testing and clearing
// while remembering insertion order. Insertion order matters: the PikeVM
// relies on it for thread priority and the lazy DFA relies on it to build
// canonical state keys.
package sparse

import "github.com/coregx/re2/internal/conv"

// SparseSet is a set of uint32 values drawn from [0, capacity).
//
// The dense slice holds the values in insertion order; the sparse slice maps
// a value to its index in dense. Neither slice needs to be zeroed on Clear.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates a sparse set able to hold values below capacity.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Resize changes the capacity and clears the set.
func (s *SparseSet) Resize(capacity uint32) {
	if int(capacity) == len(s.sparse) {
		s.Clear()
		return
	}
	s.sparse = make([]uint32, capacity)
	s.dense = make([]uint32, 0, capacity)
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = conv.IntToUint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the elements in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
