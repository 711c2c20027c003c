package re2

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/re2/simd"
)

// MatchResult holds the groups of one successful match.
//
// Group 0 is the whole match. A group that did not take part in the match
// is unset. The byte-slice views (Group, Groups, Captures, Named) also
// report an empty group other than group 0 as nil; Span keeps the
// distinction.
type MatchResult struct {
	re    *Regexp
	text  []byte
	slots []int
}

func newMatchResult(re *Regexp, text []byte, slots []int) *MatchResult {
	return &MatchResult{re: re, text: text, slots: slots}
}

// Len returns the number of groups held, group 0 included.
func (m *MatchResult) Len() int {
	return len(m.slots) / 2
}

// Size is Len.
func (m *MatchResult) Size() int {
	return m.Len()
}

// Span returns the byte offsets of group i. ok is false when the group is
// unset or out of range.
func (m *MatchResult) Span(i int) (begin, end int, ok bool) {
	if i < 0 || i >= m.Len() || m.slots[2*i] < 0 {
		return -1, -1, false
	}
	return m.slots[2*i], m.slots[2*i+1], true
}

// Begin returns the character offset where group i starts, -1 when unset.
// Characters are runes for UTF-8 patterns and bytes for Latin-1 ones.
func (m *MatchResult) Begin(i int) int {
	begin, _, ok := m.Span(i)
	if !ok {
		return -1
	}
	return m.chars(begin)
}

// End returns the character offset where group i ends, -1 when unset.
func (m *MatchResult) End(i int) int {
	_, end, ok := m.Span(i)
	if !ok {
		return -1
	}
	return m.chars(end)
}

func (m *MatchResult) chars(offset int) int {
	if !m.re.options.UTF8 || simd.IsASCII(m.text[:offset]) {
		return offset
	}
	return utf8.RuneCount(m.text[:offset])
}

// Group returns the text of group i, nil when unset, empty (for i > 0) or
// out of range.
func (m *MatchResult) Group(i int) []byte {
	begin, end, ok := m.Span(i)
	if !ok || (i > 0 && begin == end) {
		return nil
	}
	if begin == end {
		return []byte{}
	}
	return m.text[begin:end]
}

// GroupString is Group as a string; ok is false where Group returns nil.
func (m *MatchResult) GroupString(i int) (string, bool) {
	g := m.Group(i)
	if g == nil {
		return "", false
	}
	return string(g), true
}

// Named returns the text of the group called name, or nil.
func (m *MatchResult) Named(name string) []byte {
	i, ok := m.re.engine.NamedGroups()[name]
	if !ok {
		return nil
	}
	return m.Group(i)
}

// NamedCaptures returns the text of every named group held.
func (m *MatchResult) NamedCaptures() map[string][]byte {
	out := make(map[string][]byte)
	for name, i := range m.re.engine.NamedGroups() {
		if i < m.Len() {
			out[name] = m.Group(i)
		}
	}
	return out
}

// Groups returns the text of every group, group 0 first.
func (m *MatchResult) Groups() [][]byte {
	out := make([][]byte, m.Len())
	for i := range out {
		out[i] = m.Group(i)
	}
	return out
}

// Captures returns the text of groups 1 and up.
func (m *MatchResult) Captures() [][]byte {
	return m.Groups()[1:]
}

// Deconstruct is Captures.
func (m *MatchResult) Deconstruct() [][]byte {
	return m.Captures()
}

// ValuesAt returns the text of the groups at the given indexes.
func (m *MatchResult) ValuesAt(indexes ...int) [][]byte {
	out := make([][]byte, len(indexes))
	for i, index := range indexes {
		out[i] = m.Group(index)
	}
	return out
}

// PreMatch returns the text before the match.
func (m *MatchResult) PreMatch() []byte {
	return m.text[:m.slots[0]]
}

// PostMatch returns the text after the match.
func (m *MatchResult) PostMatch() []byte {
	return m.text[m.slots[1]:]
}

// Text returns the text that was matched against.
func (m *MatchResult) Text() []byte {
	return m.text
}

// Regexp returns the pattern that matched.
func (m *MatchResult) Regexp() *Regexp {
	return m.re
}

// String returns the whole match.
func (m *MatchResult) String() string {
	return string(m.text[m.slots[0]:m.slots[1]])
}

// Inspect returns a debugging representation such as
// #<MatchData "1234 " 1:"1234" 2:nil>.
func (m *MatchResult) Inspect() string {
	var b strings.Builder
	b.WriteString("#<MatchData")
	for i := 0; i < m.Len(); i++ {
		b.WriteByte(' ')
		if i > 0 {
			b.WriteString(strconv.Itoa(i))
			b.WriteByte(':')
		}
		if g := m.Group(i); g != nil {
			b.WriteString(strconv.Quote(string(g)))
		} else {
			b.WriteString("nil")
		}
	}
	b.WriteByte('>')
	return b.String()
}
