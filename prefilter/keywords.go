package prefilter

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/coregx/re2/literal"
)

// KeywordFilter narrows a pattern set down to the patterns that can match a
// text. A pattern whose matches all begin with one of a finite set of
// literals (its keywords) can only match a text that contains one of them.
// Patterns without keywords are always candidates; patterns whose literal
// set is empty never match and are never candidates.
//
// KeywordFilter is safe for concurrent use.
type KeywordFilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	owners   [][]int // keyword index -> pattern ordinals
	always   []int
	patterns int
}

// NewKeywordFilter builds a filter from the prefix literals of each pattern,
// indexed by pattern ordinal. It returns nil when no pattern has keywords,
// since such a filter would never exclude anything.
func NewKeywordFilter(prefixes []*literal.Seq) *KeywordFilter {
	f := &KeywordFilter{patterns: len(prefixes)}
	index := make(map[string]int)
	for ord, seq := range prefixes {
		switch {
		case !seq.IsFinite() || seq.HasEmpty():
			f.always = append(f.always, ord)
			continue
		case seq.IsEmpty():
			continue
		}
		for _, kw := range seq.Strings() {
			i, ok := index[kw]
			if !ok {
				i = len(f.keywords)
				index[kw] = i
				f.keywords = append(f.keywords, kw)
				f.owners = append(f.owners, nil)
			}
			if n := len(f.owners[i]); n == 0 || f.owners[i][n-1] != ord {
				f.owners[i] = append(f.owners[i], ord)
			}
		}
	}
	if len(f.keywords) == 0 && len(f.always) == len(prefixes) {
		return nil
	}
	if len(f.keywords) > 0 {
		f.matcher = ahocorasick.NewStringMatcher(f.keywords)
	}
	return f
}

// Candidates marks in found the patterns that may match text and returns how
// many there are. found must have one entry per pattern; it is cleared first.
func (f *KeywordFilter) Candidates(text []byte, found []bool) int {
	clear(found)
	n := 0
	for _, ord := range f.always {
		found[ord] = true
		n++
	}
	if f.matcher == nil {
		return n
	}
	for _, hit := range f.matcher.MatchThreadSafe(text) {
		for _, ord := range f.owners[hit] {
			if !found[ord] {
				found[ord] = true
				n++
			}
		}
	}
	return n
}

// Keywords returns the distinct keywords of the filter.
func (f *KeywordFilter) Keywords() []string {
	return f.keywords
}

// PatternCount returns the number of patterns the filter was built for.
func (f *KeywordFilter) PatternCount() int {
	return f.patterns
}
