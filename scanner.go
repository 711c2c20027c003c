package re2

import (
	"iter"
	"unicode/utf8"

	"github.com/coregx/re2/nfa"
)

// Scanner steps through the non-overlapping matches of a pattern in a
// fixed text.
//
// After a match the scan resumes at its end. After an empty match it
// resumes one character further, so a scan always makes progress; once
// that steps past the end of the text the scanner is exhausted.
//
// A Scanner is not safe for concurrent use.
type Scanner struct {
	re   *Regexp
	text []byte
	pos  int

	// eof is set once a match reached the end of the text
	eof       bool
	exhausted bool
}

// Scan returns a scanner over text positioned at its start.
func (r *Regexp) Scan(text []byte) *Scanner {
	return &Scanner{re: r, text: text}
}

// ScanString is Scan on a string.
func (r *Regexp) ScanString(text string) *Scanner {
	return r.Scan([]byte(text))
}

// Scan returns the groups of the next match, group 0 excluded, with empty
// and unset groups as nil. ok is false once the scanner is exhausted.
func (s *Scanner) Scan() (groups [][]byte, ok bool) {
	m := s.next()
	if m == nil {
		return nil, false
	}
	return m.Captures(), true
}

// All returns an iterator over the remaining matches' groups.
//
// Example:
//
//	for groups := range re.ScanString("a=1 b=2").All() {
//	    fmt.Printf("%s\n", groups[0])
//	}
func (s *Scanner) All() iter.Seq[[][]byte] {
	return func(yield func([][]byte) bool) {
		for {
			groups, ok := s.Scan()
			if !ok || !yield(groups) {
				return
			}
		}
	}
}

// next finds the next match and advances past it.
func (s *Scanner) next() *MatchResult {
	if s.exhausted {
		return nil
	}
	engine := s.re.engine
	if engine == nil || s.pos > len(s.text) {
		s.exhausted = true
		return nil
	}

	slots := make([]int, 2*(engine.NumCaptures()+1))
	if !engine.Search(nfa.Input{Haystack: s.text, Start: s.pos, End: len(s.text)}, slots) {
		s.exhausted = true
		return nil
	}

	start, end := slots[0], slots[1]
	s.pos = end
	if start == end {
		s.pos += s.charLen(end)
	}
	if s.pos >= len(s.text) {
		s.eof = true
		s.exhausted = s.pos > len(s.text)
	}
	return newMatchResult(s.re, s.text, slots)
}

// charLen is the length of the character at offset, 1 at the end of text.
func (s *Scanner) charLen(offset int) int {
	if !s.re.options.UTF8 || offset >= len(s.text) {
		return 1
	}
	_, size := utf8.DecodeRune(s.text[offset:])
	return size
}

// Rewind moves the scanner back to the start of the text.
func (s *Scanner) Rewind() {
	s.pos = 0
	s.eof = false
	s.exhausted = false
}

// EOF reports whether a match has consumed the text up to its end.
func (s *Scanner) EOF() bool {
	return s.eof
}

// Pos returns the byte offset where the next scan starts.
func (s *Scanner) Pos() int {
	return s.pos
}

// Text returns the scanned text.
func (s *Scanner) Text() []byte {
	return s.text
}

// Regexp returns the pattern being scanned for.
func (s *Scanner) Regexp() *Regexp {
	return s.re
}
