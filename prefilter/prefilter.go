// Package prefilter finds candidate match positions from the literals every
// match of a pattern must begin with.
//
// A prefilter lets a search skip straight to the first position where a
// match could start instead of feeding every byte to an automaton. The
// strategy is chosen from the extracted prefix literals:
//   - one single-byte literal → Memchr
//   - two or three single-byte literals → Memchr2/Memchr3
//   - one longer literal → Memmem
//   - several literals → Aho-Corasick automaton
//
// Example usage:
//
//	re, _ := syntax.Parse("(hello|world)", syntax.Perl)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
//	pf := prefilter.Build(prefixes)
//	pos := pf.Find([]byte("foo hello bar world baz"), 0) // 4
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/re2/literal"
	"github.com/coregx/re2/simd"
)

// Prefilter is used to quickly find candidate match positions before running
// the full regex engine.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or after
	// start, or -1 if no candidate is found.
	//
	// A candidate is a position where one of the literals begins. It does
	// not guarantee a full match unless IsComplete reports true.
	Find(haystack []byte, start int) int

	// IsComplete returns true if the literals are the whole language of the
	// pattern, so that finding one of them inside the search window decides
	// whether the pattern matches. Callers must still account for
	// assertions, which literals cannot express.
	IsComplete() bool

	// HeapBytes returns an estimate of the memory held by the prefilter.
	HeapBytes() int
}

// Build returns a prefilter for the given prefix literals, or nil when the
// literals cannot narrow down a search: the sequence is infinite, empty, or
// contains the empty literal.
func Build(prefixes *literal.Seq) Prefilter {
	if !prefixes.IsFinite() || prefixes.IsEmpty() || prefixes.HasEmpty() {
		return nil
	}

	seq := prefixes.Clone()
	complete := seq.IsExact()
	// a literal with a shorter literal as its prefix adds no new candidates
	seq.Minimize()
	lits := seq.Literals()

	if seq.MinLen() == 1 && len(lits) <= 3 && allSingleBytes(lits) {
		needles := make([]byte, len(lits))
		for i, lit := range lits {
			needles[i] = lit.Bytes[0]
		}
		return &byteSetPrefilter{needles: needles, complete: complete}
	}
	if len(lits) == 1 {
		return &memmemPrefilter{needle: lits[0].Bytes, complete: complete}
	}
	return newAhoCorasickPrefilter(lits, complete)
}

func allSingleBytes(lits []literal.Literal) bool {
	for _, lit := range lits {
		if len(lit.Bytes) != 1 {
			return false
		}
	}
	return true
}

// byteSetPrefilter searches for one of up to three bytes.
type byteSetPrefilter struct {
	needles  []byte
	complete bool
}

func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	var pos int
	switch h := haystack[start:]; len(p.needles) {
	case 1:
		pos = simd.Memchr(h, p.needles[0])
	case 2:
		pos = simd.Memchr2(h, p.needles[0], p.needles[1])
	default:
		pos = simd.Memchr3(h, p.needles[0], p.needles[1], p.needles[2])
	}
	if pos < 0 {
		return -1
	}
	return start + pos
}

func (p *byteSetPrefilter) IsComplete() bool {
	return p.complete
}

func (p *byteSetPrefilter) HeapBytes() int {
	return len(p.needles)
}

// memmemPrefilter searches for a single literal.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start+len(p.needle) > len(haystack) {
		return -1
	}
	pos := simd.Memmem(haystack[start:], p.needle)
	if pos < 0 {
		return -1
	}
	return start + pos
}

func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

// ahoCorasickPrefilter searches for many literals at once. The automaton
// reports the occurrence that ends first, which need not be the one that
// starts first: for {abcd, bc} on "abcd" it reports bc at 1.
type ahoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
	complete  bool
	size      int
	maxLen    int
}

// newAhoCorasickPrefilter returns nil if the automaton cannot be built.
func newAhoCorasickPrefilter(lits []literal.Literal, complete bool) Prefilter {
	builder := ahocorasick.NewBuilder()
	size, maxLen := 0, 0
	for _, lit := range lits {
		builder.AddPattern(lit.Bytes)
		size += len(lit.Bytes)
		maxLen = max(maxLen, len(lit.Bytes))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{automaton: auto, complete: complete, size: size, maxLen: maxLen}
}

// Find returns the leftmost occurrence. Every occurrence ends at or after
// the first reported end, so the leftmost one starts no earlier than
// m.End-maxLen; the positions up to m.Start are checked one by one.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	for at := max(start, m.End-p.maxLen); at < m.Start; at++ {
		if p.automaton.FindAt(haystack[:min(len(haystack), at+p.maxLen)], at) != nil {
			return at
		}
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes is a rough estimate: one trie node per literal byte.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	const nodeSize = 64
	return p.size * nodeSize
}
