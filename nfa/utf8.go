package nfa

import "unicode/utf8"

// byteRange is an inclusive range of byte values.
type byteRange struct {
	lo, hi byte
}

// utf8Sequence is a sequence of byte ranges, one per encoded byte. The set of
// byte strings it matches is exactly the UTF-8 encoding of a code point range.
type utf8Sequence []byteRange

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// utf8Sequences splits the code point range [lo, hi] into byte-range
// sequences. Surrogates are skipped since they have no valid encoding.
// Sequences come out in increasing code point order, so equal prefixes are
// adjacent.
func utf8Sequences(lo, hi rune) []utf8Sequence {
	var out []utf8Sequence
	var split func(lo, hi rune)
	split = func(lo, hi rune) {
		if lo > hi {
			return
		}
		if lo <= surrogateMax && hi >= surrogateMin {
			if lo < surrogateMin {
				split(lo, surrogateMin-1)
			}
			if hi > surrogateMax {
				split(surrogateMax+1, hi)
			}
			return
		}

		// Both ends must encode to the same length.
		for _, limit := range []rune{0x7F, 0x7FF, 0xFFFF} {
			if lo <= limit && hi > limit {
				split(lo, limit)
				split(limit+1, hi)
				return
			}
		}

		if hi <= 0x7F {
			out = append(out, utf8Sequence{{byte(lo), byte(hi)}})
			return
		}

		// Below the highest byte, each continuation position must either
		// share a prefix or cover the full 0x80-0xBF span.
		n := utf8.RuneLen(lo)
		for i := 1; i < n; i++ {
			m := rune(1)<<(6*i) - 1
			if lo&^m != hi&^m {
				if lo&m != 0 {
					split(lo, lo|m)
					split((lo|m)+1, hi)
					return
				}
				if hi&m != m {
					split(lo, (hi&^m)-1)
					split(hi&^m, hi)
					return
				}
			}
		}

		var a, b [utf8.UTFMax]byte
		utf8.EncodeRune(a[:], lo)
		utf8.EncodeRune(b[:], hi)
		seq := make(utf8Sequence, n)
		for i := 0; i < n; i++ {
			seq[i] = byteRange{a[i], b[i]}
		}
		out = append(out, seq)
	}
	split(lo, hi)
	return out
}

// utf8Trie merges sequences with common leading ranges so a class compiles
// into a shared prefix tree instead of one branch per sequence.
type utf8Trie struct {
	edges []utf8Edge
}

type utf8Edge struct {
	r     byteRange
	child *utf8Trie // nil on the last byte of a sequence
}

// insert adds seq. Sequences must arrive in the order utf8Sequences emits
// them; only the last edge at each level is a merge candidate.
func (t *utf8Trie) insert(seq utf8Sequence) {
	node := t
	for i, r := range seq {
		last := i == len(seq)-1
		if n := len(node.edges); n > 0 {
			e := &node.edges[n-1]
			if e.r == r && !last && e.child != nil {
				node = e.child
				continue
			}
		}
		if last {
			node.edges = append(node.edges, utf8Edge{r: r})
			return
		}
		child := &utf8Trie{}
		node.edges = append(node.edges, utf8Edge{r: r, child: child})
		node = child
	}
}
