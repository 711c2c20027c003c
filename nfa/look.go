package nfa

import "strings"

// Look is a zero-width assertion. Each assertion is a distinct bit so sets of
// assertions fit in a LookSet.
type Look uint8

const (
	// LookStartText is \A, or ^ outside multi-line mode
	LookStartText Look = 1 << iota

	// LookEndText is \z, or $ outside multi-line mode
	LookEndText

	// LookStartLine is multi-line ^: start of text or after \n
	LookStartLine

	// LookEndLine is multi-line $: end of text or before \n
	LookEndLine

	// LookWordBoundary is \b (ASCII word characters)
	LookWordBoundary

	// LookNoWordBoundary is \B
	LookNoWordBoundary
)

// String returns the assertion in pattern syntax.
func (l Look) String() string {
	switch l {
	case LookStartText:
		return `\A`
	case LookEndText:
		return `\z`
	case LookStartLine:
		return `(?m:^)`
	case LookEndLine:
		return `(?m:$)`
	case LookWordBoundary:
		return `\b`
	case LookNoWordBoundary:
		return `\B`
	default:
		return "Look(?)"
	}
}

// LookSet is a bitset of assertions.
type LookSet uint8

// Contains reports whether look is in the set.
func (s LookSet) Contains(look Look) bool {
	return s&LookSet(look) != 0
}

// Insert returns the set with look added.
func (s LookSet) Insert(look Look) LookSet {
	return s | LookSet(look)
}

// IsEmpty reports whether no assertion is in the set.
func (s LookSet) IsEmpty() bool {
	return s == 0
}

// String lists the assertions in the set.
func (s LookSet) String() string {
	var parts []string
	for l := LookStartText; l <= LookNoWordBoundary; l <<= 1 {
		if s.Contains(l) {
			parts = append(parts, l.String())
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// TextEdge stands in for the missing byte before the start or after the end
// of the text when computing assertions.
const TextEdge = -1

// IsWordByte reports whether b is an ASCII word character [0-9A-Za-z_].
func IsWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

// LooksBetween returns the assertions that hold between the byte prev and the
// byte next. Either may be TextEdge.
func LooksBetween(prev, next int) LookSet {
	var s LookSet
	if prev == TextEdge {
		s = s.Insert(LookStartText).Insert(LookStartLine)
	} else if prev == '\n' {
		s = s.Insert(LookStartLine)
	}
	if next == TextEdge {
		s = s.Insert(LookEndText).Insert(LookEndLine)
	} else if next == '\n' {
		s = s.Insert(LookEndLine)
	}
	prevWord := prev != TextEdge && IsWordByte(byte(prev))
	nextWord := next != TextEdge && IsWordByte(byte(next))
	if prevWord != nextWord {
		s = s.Insert(LookWordBoundary)
	} else {
		s = s.Insert(LookNoWordBoundary)
	}
	return s
}

// LooksAt returns the assertions that hold at position at of haystack.
// The whole haystack is context: bytes outside any search window still
// decide line and word boundaries.
func LooksAt(haystack []byte, at int) LookSet {
	prev, next := TextEdge, TextEdge
	if at > 0 {
		prev = int(haystack[at-1])
	}
	if at < len(haystack) {
		next = int(haystack[at])
	}
	return LooksBetween(prev, next)
}
