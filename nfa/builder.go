package nfa

import (
	"fmt"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
type Builder struct {
	states          []State
	startAnchored   StateID
	startUnanchored StateID
	byteClassSet    *ByteClassSet
	looks           LookSet

	// memory is the running estimate of the program size in bytes
	memory int

	// memoryLimit is the budget in bytes; 0 means unlimited
	memoryLimit int
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states:          make([]State, 0, capacity),
		startAnchored:   InvalidState,
		startUnanchored: InvalidState,
		byteClassSet:    NewByteClassSet(),
	}
}

// SetMemoryLimit sets the program budget in bytes. Zero disables the limit.
func (b *Builder) SetMemoryLimit(limit int) {
	b.memoryLimit = limit
}

// OverLimit reports whether the program has outgrown its budget.
func (b *Builder) OverLimit() bool {
	return b.memoryLimit > 0 && b.memory > b.memoryLimit
}

// MemoryUsage returns the estimated program size in bytes.
func (b *Builder) MemoryUsage() int {
	return b.memory
}

func (b *Builder) add(s State) StateID {
	id := StateID(len(b.states))
	s.id = id
	b.states = append(b.states, s)
	b.memory += stateBytes + len(s.transitions)*transitionBytes
	return id
}

// AddMatch adds a match (accepting) state for the given pattern ordinal
func (b *Builder) AddMatch(pattern int) StateID {
	return b.add(State{kind: StateMatch, pattern: pattern})
}

// AddByteRange adds a state that transitions on a single byte or byte range [lo, hi].
// For a single byte, set lo == hi.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	b.byteClassSet.SetRange(lo, hi)
	return b.add(State{kind: StateByteRange, lo: lo, hi: hi, next: next})
}

// AddSparse adds a state with multiple byte range transitions (character class).
// The ranges must be sorted and disjoint. The slice is copied.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	for _, tr := range transitions {
		b.byteClassSet.SetRange(tr.Lo, tr.Hi)
	}
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	return b.add(State{kind: StateSparse, transitions: trans})
}

// AddSplit adds a state with epsilon transitions to two states.
// The left branch has priority over the right branch.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{kind: StateSplit, left: left, right: right})
}

// AddEpsilon adds a state with a single epsilon transition (no input consumed)
func (b *Builder) AddEpsilon(next StateID) StateID {
	return b.add(State{kind: StateEpsilon, next: next})
}

// AddFail adds a dead state with no transitions
func (b *Builder) AddFail() StateID {
	return b.add(State{kind: StateFail})
}

// AddCapture adds a capture boundary state recording the position into slot.
// Slot 2*i opens group i and slot 2*i+1 closes it.
func (b *Builder) AddCapture(slot uint32, next StateID) StateID {
	return b.add(State{kind: StateCapture, slot: slot, next: next})
}

// AddLook adds a zero-width assertion state.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	b.looks = b.looks.Insert(look)
	return b.add(State{kind: StateLook, look: look, next: next})
}

// Patch updates a state's target. This is used during compilation to handle
// forward references (e.g., loops, alternations).
// This only works for states with a single 'next' target.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	switch s.kind {
	case StateByteRange, StateEpsilon, StateCapture, StateLook:
		s.next = target
		return nil
	case StateSparse:
		for i := range s.transitions {
			s.transitions[i].Next = target
		}
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// PatchSplit updates the left and right targets of a Split state
func (b *Builder) PatchSplit(stateID StateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{
			Message: fmt.Sprintf("expected Split state, got %s", s.kind),
			StateID: stateID,
		}
	}

	s.left = left
	s.right = right
	return nil
}

// SetStarts sets separate anchored and unanchored start states
func (b *Builder) SetStarts(anchored, unanchored StateID) {
	b.startAnchored = anchored
	b.startUnanchored = unanchored
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed: both start states are set
// and every state reference points at an existing state.
func (b *Builder) Validate() error {
	for _, start := range []StateID{b.startAnchored, b.startUnanchored} {
		if start == InvalidState {
			return &BuildError{Message: "start state not set", StateID: InvalidState}
		}
		if int(start) >= len(b.states) {
			return &BuildError{Message: "start state out of bounds", StateID: start}
		}
	}

	valid := func(id StateID) bool {
		return int(id) < len(b.states)
	}
	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateByteRange, StateEpsilon, StateCapture, StateLook:
			if !valid(s.next) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", s.next),
					StateID: id,
				}
			}
		case StateSplit:
			if !valid(s.left) || !valid(s.right) {
				return &BuildError{
					Message: fmt.Sprintf("invalid split targets %d, %d", s.left, s.right),
					StateID: id,
				}
			}
		case StateSparse:
			for j, t := range s.transitions {
				if !valid(t.Next) {
					return &BuildError{
						Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next),
						StateID: id,
					}
				}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if !b.looks.IsEmpty() {
		b.byteClassSet.SetLookBoundaries()
	}

	nfa := &NFA{
		states:          b.states,
		startAnchored:   b.startAnchored,
		startUnanchored: b.startUnanchored,
		utf8:            true,
		patternCount:    1,
		looks:           b.looks,
		byteClasses:     b.byteClassSet.ByteClasses(),
	}

	for _, opt := range opts {
		opt(nfa)
	}

	return nfa, nil
}

// BuildOption is a functional option for configuring the built NFA
type BuildOption func(*NFA)

// WithUTF8 sets whether byte sequences are matched as UTF-8
func WithUTF8(utf8 bool) BuildOption {
	return func(n *NFA) {
		n.utf8 = utf8
	}
}

// WithPatternCount sets the number of patterns in the NFA
func WithPatternCount(count int) BuildOption {
	return func(n *NFA) {
		n.patternCount = count
	}
}

// WithCaptureCount sets the number of capture groups including group 0
func WithCaptureCount(count int) BuildOption {
	return func(n *NFA) {
		n.captureCount = count
	}
}

// WithCaptureNames sets the names of capture groups.
// Index 0 should be "" (entire match); unnamed groups are "".
func WithCaptureNames(names []string) BuildOption {
	return func(n *NFA) {
		if len(names) > 0 {
			n.captureNames = make([]string, len(names))
			copy(n.captureNames, names)
		}
	}
}
