// Package literal extracts literal byte sequences from regex patterns.
//
// The primary use case is prefilter optimization: when every match of a
// pattern must begin with one of a few literals (e.g., "foo" or "bar" for
// /(foo|bar)\d+/), a search can skip straight to the next occurrence of one of
// them before running an automaton.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that may begin a match
//   - A Seq is a set of alternative literals, or the infinite set when
//     nothing useful is known
package literal

import (
	"bytes"
	"slices"
)

// Literal represents a literal byte sequence extracted from a regex pattern.
// The Complete flag indicates whether the literal covers the whole match of
// the sub-pattern it came from (true) or only its beginning (false).
//
// Example:
//   - Pattern /hello/ → Literal{[]byte("hello"), true}
//   - Pattern /hello.*world/ → Literal{[]byte("hello"), false}
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal represents the entire match.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals that every match begins with.
//
// An infinite Seq carries no information: matches may begin with anything.
// A finite Seq with no literals means the pattern cannot match at all.
type Seq struct {
	literals []Literal
	infinite bool
}

// NewSeq creates a new finite sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// NewInfiniteSeq returns the sequence that matches anything.
func NewInfiniteSeq() *Seq {
	return &Seq{infinite: true}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Literals returns the literals of a finite sequence.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// IsFinite returns true if the sequence is a known, finite set of literals.
func (s *Seq) IsFinite() bool {
	return s != nil && !s.infinite
}

// IsEmpty returns true for a finite sequence without literals. Such a
// pattern never matches.
func (s *Seq) IsEmpty() bool {
	return s.IsFinite() && len(s.literals) == 0
}

// IsExact reports whether every literal is complete.
func (s *Seq) IsExact() bool {
	if !s.IsFinite() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// HasEmpty reports whether some literal is empty. Such a sequence does not
// narrow down where a match can start.
func (s *Seq) HasEmpty() bool {
	for _, lit := range s.Literals() {
		if len(lit.Bytes) == 0 {
			return true
		}
	}
	return false
}

// MakeInexact marks every literal incomplete.
func (s *Seq) MakeInexact() {
	for i := range s.Literals() {
		s.literals[i].Complete = false
	}
}

// MinLen returns the length of the shortest literal, or 0 for an empty or
// infinite sequence.
func (s *Seq) MinLen() int {
	if !s.IsFinite() || len(s.literals) == 0 {
		return 0
	}
	n := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		n = min(n, len(lit.Bytes))
	}
	return n
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{Bytes: bytes.Clone(lit.Bytes), Complete: lit.Complete}
	}
	return &Seq{literals: cloned, infinite: s.infinite}
}

// Union adds the literals of other. The union with an infinite sequence is
// infinite.
func (s *Seq) Union(other *Seq) {
	if !other.IsFinite() {
		s.literals = nil
		s.infinite = true
		return
	}
	if s.infinite {
		return
	}
	s.literals = append(s.literals, other.literals...)
}

// Cross extends every complete literal of s with every literal of other;
// incomplete literals of s are kept as they are. Crossing with an infinite
// sequence makes every literal incomplete.
func (s *Seq) Cross(other *Seq) {
	if s.infinite {
		return
	}
	if !other.IsFinite() {
		s.MakeInexact()
		return
	}

	out := make([]Literal, 0, len(s.literals)*max(1, len(other.literals)))
	for _, lit := range s.literals {
		if !lit.Complete {
			out = append(out, lit)
			continue
		}
		for _, o := range other.literals {
			b := make([]byte, 0, len(lit.Bytes)+len(o.Bytes))
			b = append(append(b, lit.Bytes...), o.Bytes...)
			out = append(out, Literal{Bytes: b, Complete: o.Complete})
		}
	}
	s.literals = out
}

// CrossSize returns how many literals Cross(other) would produce.
func (s *Seq) CrossSize(other *Seq) int {
	if !s.IsFinite() || !other.IsFinite() {
		return s.Len()
	}
	n := 0
	for _, lit := range s.literals {
		if lit.Complete {
			n += len(other.literals)
		} else {
			n++
		}
	}
	return n
}

// Truncate cuts literals longer than n bytes, marking them incomplete.
func (s *Seq) Truncate(n int) {
	for i := range s.Literals() {
		if len(s.literals[i].Bytes) > n {
			s.literals[i].Bytes = s.literals[i].Bytes[:n]
			s.literals[i].Complete = false
		}
	}
}

// Dedup removes duplicate literals. A literal present as both complete and
// incomplete is kept once, incomplete.
func (s *Seq) Dedup() {
	if !s.IsFinite() {
		return
	}
	seen := make(map[string]int, len(s.literals))
	kept := s.literals[:0]
	for _, lit := range s.literals {
		if i, ok := seen[string(lit.Bytes)]; ok {
			kept[i].Complete = kept[i].Complete && lit.Complete
			continue
		}
		seen[string(lit.Bytes)] = len(kept)
		kept = append(kept, lit)
	}
	s.literals = kept
}

// Minimize removes redundant literals from the sequence.
//
// For prefix matching, a literal L is redundant if there exists a shorter literal S
// that is a prefix of L: any position where L occurs is already found by S.
// Completeness is not preserved for the survivors.
func (s *Seq) Minimize() {
	if !s.IsFinite() || len(s.literals) == 0 {
		return
	}
	s.Dedup()
	slices.SortStableFunc(s.literals, func(a, b Literal) int {
		return len(a.Bytes) - len(b.Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(current.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest common prefix of all literals in the sequence.
// If the sequence is empty, infinite or has no common prefix, returns an empty slice.
func (s *Seq) LongestCommonPrefix() []byte {
	if !s.IsFinite() || len(s.literals) == 0 {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(lit.Bytes) && prefix[n] == lit.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
		if n == 0 {
			break
		}
	}
	return bytes.Clone(prefix)
}

// Strings returns the literals as strings.
func (s *Seq) Strings() []string {
	out := make([]string, 0, s.Len())
	for _, lit := range s.Literals() {
		out = append(out, string(lit.Bytes))
	}
	return out
}
