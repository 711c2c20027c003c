package lazy

import (
	"encoding/binary"
	"fmt"

	"github.com/coregx/re2/nfa"
)

// StateID identifies a DFA state within one Cache.
type StateID uint32

// Special state constants
const (
	// InvalidState marks a transition that has not been computed yet
	InvalidState StateID = 0xFFFFFFFF
)

// State is a determinized set of NFA states at some position.
//
// nfaStates holds only the states that need input or context to make
// progress: ByteRange and Sparse states, Match states, and Look states whose
// assertion could not be decided yet because it depends on the next byte.
//
// Match reporting is delayed by one byte. A state reached by consuming the
// byte at position p carries in matches the patterns that matched at p, since
// end-of-line and word boundary assertions at p are only known once the byte
// at p has been seen.
type State struct {
	id StateID

	// nfaStates is sorted, so equal sets compare equal
	nfaStates []nfa.StateID

	// kind is the look-behind context; always StartNonWord when the NFA has
	// no assertions
	kind StartKind

	// matches holds the sorted pattern ordinals that matched one byte back
	matches []int

	// transitions is indexed by byte class; the last entry is end of input.
	// InvalidState means not computed yet.
	transitions []StateID
}

// ID returns the state's identifier
func (s *State) ID() StateID {
	return s.id
}

// IsMatch returns true if some pattern matched one byte before this state
func (s *State) IsMatch() bool {
	return len(s.matches) > 0
}

// Matches returns the pattern ordinals that matched one byte back
func (s *State) Matches() []int {
	return s.matches
}

// IsDead reports whether no NFA state is left, so no further match is
// possible.
func (s *State) IsDead() bool {
	return len(s.nfaStates) == 0
}

// NFAStates returns the NFA states represented by this DFA state
func (s *State) NFAStates() []nfa.StateID {
	return s.nfaStates
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("DFAState(id=%d, kind=%s, matches=%v, nfaStates=%v)",
		s.id, s.kind, s.matches, s.nfaStates)
}

// memoryUsage estimates the heap size of the state, key included.
func (s *State) memoryUsage(keyLen int) int {
	const overhead = 96
	return overhead + keyLen + 4*len(s.nfaStates) + 8*len(s.matches) + 4*len(s.transitions)
}

// stateKey encodes everything that makes two states distinct.
func stateKey(buf []byte, kind StartKind, matches []int, nfaStates []nfa.StateID) []byte {
	buf = append(buf[:0], byte(kind))
	buf = binary.AppendUvarint(buf, uint64(len(matches)))
	for _, m := range matches {
		buf = binary.AppendUvarint(buf, uint64(m))
	}
	for _, sid := range nfaStates {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(sid))
	}
	return buf
}

// stateSet collects NFA states during determinization without duplicates.
type stateSet struct {
	seen  []bool
	items []nfa.StateID
}

func newStateSet(capacity int) *stateSet {
	return &stateSet{seen: make([]bool, capacity)}
}

func (ss *stateSet) insert(id nfa.StateID) bool {
	if ss.seen[id] {
		return false
	}
	ss.seen[id] = true
	ss.items = append(ss.items, id)
	return true
}

func (ss *stateSet) clear() {
	for _, id := range ss.items {
		ss.seen[id] = false
	}
	ss.items = ss.items[:0]
}
