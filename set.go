package re2

import (
	"regexp/syntax"
	"unicode/utf8"

	"github.com/coregx/re2/meta"
	"github.com/coregx/re2/nfa"
)

// maxAddError bounds the length of an Add diagnostic.
const maxAddError = 99

// Set matches many patterns against a text at once and reports which of
// them match.
//
// A Set is built in two phases: Add patterns, then Compile. Building must
// happen in one goroutine. After Compile, Match is safe for concurrent use.
//
// Example:
//
//	set, _ := re2.NewSet(re2.Unanchored, re2.DefaultOptions())
//	set.Add("abc")
//	set.Add("def")
//	set.Compile()
//	ids, _ := set.MatchString("abcdef", re2.SetMatchOptions{})
//	// ids == []int{0, 1}
type Set struct {
	anchor   Anchor
	options  Options
	patterns []string
	res      []*syntax.Regexp

	// engine is set by Compile
	engine *meta.SetEngine
}

// SetMatchOptions describes one Set.Match call.
type SetMatchOptions struct {
	// NoError makes matching an uncompiled set report no match instead of
	// ErrSetNotCompiled.
	NoError bool
}

// NewSet returns an empty set whose patterns are matched with anchor.
func NewSet(anchor Anchor, opts Options) (*Set, error) {
	if !anchor.valid() {
		return nil, &ArgumentError{Message: errBadAnchor}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Set{anchor: anchor, options: opts}, nil
}

// Add parses pattern and adds it to the set, returning its ordinal. A
// rejected pattern leaves the set as it was and returns an *ArgumentError
// wrapping the *Error.
func (s *Set) Add(pattern string) (int, error) {
	if s.engine != nil {
		return -1, ErrSetCompiled
	}
	re, err := meta.Parse(pattern, s.options.syntax())
	if err != nil {
		perr := newError(pattern, err)
		return -1, &ArgumentError{Message: truncate("str rejected by Set.Add(): "+perr.Message, maxAddError), Err: perr}
	}
	s.patterns = append(s.patterns, pattern)
	s.res = append(s.res, re)
	return len(s.res) - 1, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Compile builds the joint automaton. An empty set compiles and never
// matches. Compiling twice is a no-op.
func (s *Set) Compile() error {
	if s.engine != nil {
		return nil
	}
	engine, err := meta.CompileSet(s.res, s.options.syntax(), s.options.config())
	if err != nil {
		perr := newError("", err)
		logCompileError(s.options, "<set>", perr)
		return perr
	}
	s.engine = engine
	return nil
}

// Compiled reports whether Compile succeeded.
func (s *Set) Compiled() bool {
	return s.engine != nil
}

// Match returns the ordinals of the patterns matching text, ascending; an
// empty slice when none does.
func (s *Set) Match(text []byte, opts SetMatchOptions) ([]int, error) {
	if s.engine == nil {
		if opts.NoError {
			return []int{}, nil
		}
		return nil, ErrSetNotCompiled
	}
	in := nfa.NewInput(text)
	in.Anchored = s.anchor != Unanchored
	in.AnchorEnd = s.anchor == AnchorBoth
	return s.engine.Matches(in), nil
}

// MatchString is Match on a string.
func (s *Set) MatchString(text string, opts SetMatchOptions) ([]int, error) {
	return s.Match([]byte(text), opts)
}

// Size returns the number of patterns added.
func (s *Set) Size() int {
	return len(s.patterns)
}

// Len is Size.
func (s *Set) Len() int {
	return s.Size()
}

// Anchor returns the anchoring of the set.
func (s *Set) Anchor() Anchor {
	return s.anchor
}

// Pattern returns the source of the pattern with ordinal i; ok is false
// when no such pattern was added.
func (s *Set) Pattern(i int) (pattern string, ok bool) {
	if i < 0 || i >= len(s.patterns) {
		return "", false
	}
	return s.patterns[i], true
}
