// Package nfa provides a byte-oriented Thompson NFA and the PikeVM that
// simulates it.
//
// The NFA is compiled from regexp/syntax trees. Every transition consumes a
// single byte, so UTF-8 code point classes are lowered into byte-sequence
// automata and Latin-1 patterns become one byte per code point. Zero-width
// assertions are explicit Look states and capture boundaries are explicit
// Capture states that record a slot.
//
// An NFA may hold several patterns at once. Each pattern ends in its own
// Match state carrying the pattern's ordinal, which is how the pattern set
// matcher learns which members matched.
package nfa

import (
	"fmt"
)

// StateID uniquely identifies an NFA state.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF

	// FailState represents a dead/failure state (no transitions)
	FailState StateID = 0xFFFFFFFE
)

// StateKind identifies the type of NFA state and determines which fields are valid.
type StateKind uint8

const (
	// StateMatch is an accepting state for one pattern
	StateMatch StateKind = iota

	// StateByteRange consumes one byte in [lo, hi]
	StateByteRange

	// StateSparse consumes one byte from a list of disjoint ranges
	StateSparse

	// StateSplit is an epsilon transition to two states; left has priority
	StateSplit

	// StateEpsilon is an epsilon transition to one state
	StateEpsilon

	// StateCapture records the current position into a capture slot
	StateCapture

	// StateLook is a zero-width assertion
	StateLook

	// StateFail never matches
	StateFail
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteRange:
		return "ByteRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateCapture:
		return "Capture"
	case StateLook:
		return "Look"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// ByteRange
	lo, hi byte

	// target for ByteRange, Epsilon, Capture and Look
	next StateID

	// Sparse: disjoint ranges sorted by Lo
	transitions []Transition

	// Split
	left, right StateID

	// Capture: slot 2*group opens the group, 2*group+1 closes it
	slot uint32

	// Look
	look Look

	// Match
	pattern int
}

// Transition represents a byte range and target state for sparse transitions.
type Transition struct {
	Lo   byte    // inclusive lower bound
	Hi   byte    // inclusive upper bound
	Next StateID // target state
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.kind == StateMatch
}

// ByteRange returns the byte range for ByteRange states.
// Returns (0, 0, InvalidState) for other kinds.
func (s *State) ByteRange() (lo, hi byte, next StateID) {
	if s.kind == StateByteRange {
		return s.lo, s.hi, s.next
	}
	return 0, 0, InvalidState
}

// Split returns the two target states for Split states.
// Returns (InvalidState, InvalidState) for other kinds.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the target state for Epsilon states.
// Returns InvalidState for other kinds.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// Transitions returns the list of transitions for Sparse states.
// Returns nil for other kinds.
func (s *State) Transitions() []Transition {
	if s.kind == StateSparse {
		return s.transitions
	}
	return nil
}

// Capture returns the slot and target of a Capture state.
// Returns (0, InvalidState) for other kinds.
func (s *State) Capture() (slot uint32, next StateID) {
	if s.kind == StateCapture {
		return s.slot, s.next
	}
	return 0, InvalidState
}

// Look returns the assertion and target of a Look state.
// Returns (0, InvalidState) for other kinds.
func (s *State) Look() (look Look, next StateID) {
	if s.kind == StateLook {
		return s.look, s.next
	}
	return 0, InvalidState
}

// Pattern returns the pattern ordinal of a Match state, or -1.
func (s *State) Pattern() int {
	if s.kind == StateMatch {
		return s.pattern
	}
	return -1
}

// Step returns the target reached by consuming b, or InvalidState when this
// state does not consume b. Only ByteRange and Sparse states consume input.
func (s *State) Step(b byte) StateID {
	switch s.kind {
	case StateByteRange:
		if s.lo <= b && b <= s.hi {
			return s.next
		}
	case StateSparse:
		for _, t := range s.transitions {
			if b < t.Lo {
				break
			}
			if b <= t.Hi {
				return t.Next
			}
		}
	}
	return InvalidState
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match pattern=%d)", s.id, s.pattern)
	case StateByteRange:
		if s.lo == s.hi {
			return fmt.Sprintf("State(%d, ByteRange %#02x -> %d)", s.id, s.lo, s.next)
		}
		return fmt.Sprintf("State(%d, ByteRange [%#02x-%#02x] -> %d)", s.id, s.lo, s.hi, s.next)
	case StateSparse:
		return fmt.Sprintf("State(%d, Sparse %d transitions)", s.id, len(s.transitions))
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	case StateCapture:
		return fmt.Sprintf("State(%d, Capture slot=%d -> %d)", s.id, s.slot, s.next)
	case StateLook:
		return fmt.Sprintf("State(%d, Look %s -> %d)", s.id, s.look, s.next)
	case StateFail:
		return fmt.Sprintf("State(%d, Fail)", s.id)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA represents a compiled Thompson NFA.
// An NFA is immutable after Build and safe to share between goroutines.
type NFA struct {
	states []State

	// startAnchored runs the pattern(s) from the current position only.
	startAnchored StateID

	// startUnanchored is a non-greedy any-byte loop in front of startAnchored.
	startUnanchored StateID

	// utf8 is false for Latin-1 programs
	utf8 bool

	// patternCount is the number of patterns; Match states carry 0..patternCount-1
	patternCount int

	// captureCount counts group 0 (the whole match) plus explicit groups.
	// Zero when the program was built without capture states.
	captureCount int

	// captureNames[i] is the name of group i, "" when unnamed
	captureNames []string

	// looks is the union of all assertions used by Look states
	looks LookSet

	byteClasses ByteClasses
}

// StartAnchored returns the start state for anchored searches
func (n *NFA) StartAnchored() StateID {
	return n.startAnchored
}

// StartUnanchored returns the start state for unanchored searches
func (n *NFA) StartUnanchored() StateID {
	return n.startUnanchored
}

// Start returns the anchored or unanchored start state.
func (n *NFA) Start(anchored bool) StateID {
	if anchored {
		return n.startAnchored
	}
	return n.startUnanchored
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// IsUTF8 returns true if byte sequences are matched as UTF-8
func (n *NFA) IsUTF8() bool {
	return n.utf8
}

// PatternCount returns the number of patterns in the NFA
func (n *NFA) PatternCount() int {
	return n.patternCount
}

// CaptureCount returns the number of capture groups including group 0.
// For a pattern like "(a)(b)" this returns 3.
func (n *NFA) CaptureCount() int {
	return n.captureCount
}

// SubexpNames returns the names of capture groups.
// Index 0 is always "" (the entire match).
func (n *NFA) SubexpNames() []string {
	names := make([]string, n.captureCount)
	copy(names, n.captureNames)
	return names
}

// LookSet returns the assertions used anywhere in the program.
func (n *NFA) LookSet() LookSet {
	return n.looks
}

// ByteClasses returns the byte equivalence classes for this NFA.
func (n *NFA) ByteClasses() *ByteClasses {
	return &n.byteClasses
}

// MemoryUsage estimates the heap size of the program in bytes.
func (n *NFA) MemoryUsage() int {
	return estimateMemory(n.states)
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, startAnchored: %d, startUnanchored: %d, patterns: %d, utf8: %v}",
		len(n.states), n.startAnchored, n.startUnanchored, n.patternCount, n.utf8)
}

const (
	stateBytes      = 16
	transitionBytes = 8
)

func estimateMemory(states []State) int {
	total := len(states) * stateBytes
	for i := range states {
		total += len(states[i].transitions) * transitionBytes
	}
	return total
}
