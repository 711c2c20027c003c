package lazy

import (
	"github.com/coregx/re2/nfa"
)

// StartKind is the look-behind context of a DFA state: what the byte before
// the current position tells the assertions.
//
// Two states with the same NFA states but different contexts are different
// DFA states, since ^, (?m:^) and \b may resolve differently.
type StartKind uint8

const (
	// StartNonWord - previous byte was a non-word byte other than \n
	StartNonWord StartKind = iota

	// StartWord - previous byte was a word character [a-zA-Z0-9_]
	StartWord

	// StartText - at the very beginning of the haystack
	StartText

	// StartLineLF - previous byte was \n
	StartLineLF

	// startKindCount is the number of start kinds (not exported)
	startKindCount
)

// String returns a human-readable representation of the StartKind
func (k StartKind) String() string {
	switch k {
	case StartNonWord:
		return "NonWord"
	case StartWord:
		return "Word"
	case StartText:
		return "Text"
	case StartLineLF:
		return "LineLF"
	default:
		return "Unknown"
	}
}

// kindOfByte returns the context left behind by consuming b.
func kindOfByte(b byte) StartKind {
	switch {
	case b == '\n':
		return StartLineLF
	case nfa.IsWordByte(b):
		return StartWord
	default:
		return StartNonWord
	}
}

// kindAt returns the context at position pos of haystack.
func kindAt(haystack []byte, pos int) StartKind {
	if pos == 0 {
		return StartText
	}
	return kindOfByte(haystack[pos-1])
}

// prevByte returns a byte standing for the context, or nfa.TextEdge.
func (k StartKind) prevByte() int {
	switch k {
	case StartText:
		return nfa.TextEdge
	case StartLineLF:
		return '\n'
	case StartWord:
		return 'a'
	default:
		return ' '
	}
}

// startTable caches start states per (anchored, kind). It is reset whenever
// the owning cache is cleared.
type startTable struct {
	states [2][startKindCount]StateID
}

func (st *startTable) reset() {
	for i := range st.states {
		for j := range st.states[i] {
			st.states[i][j] = InvalidState
		}
	}
}

func (st *startTable) get(kind StartKind, anchored bool) StateID {
	return st.states[anchoredIndex(anchored)][kind]
}

func (st *startTable) set(kind StartKind, anchored bool, id StateID) {
	st.states[anchoredIndex(anchored)][kind] = id
}

func anchoredIndex(anchored bool) int {
	if anchored {
		return 1
	}
	return 0
}
