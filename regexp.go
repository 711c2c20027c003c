package re2

import (
	"maps"

	"github.com/coregx/re2/meta"
	"github.com/coregx/re2/nfa"
)

// Regexp is a compiled pattern.
//
// A Regexp is built even when its pattern is invalid: Ok reports false, the
// diagnostics stay queryable through Error, ErrorArg and ErrorCode, and
// every match reports no match. Use Compile to get an error instead.
//
// A Regexp is safe for concurrent use by multiple goroutines.
//
// Example:
//
//	re := re2.MustCompile(`(\w+)@(\w+)\.com`)
//	if m := re.FindString("mail bob@example.com"); m != nil {
//	    fmt.Println(m.GroupString(1))
//	}
type Regexp struct {
	pattern string
	options Options

	// engine is nil when the pattern is invalid
	engine *meta.Engine
	err    *Error
}

// New compiles pattern with opts. It never fails: an invalid pattern gives
// a Regexp whose Ok is false. Failures are logged when opts.LogErrors is
// set.
func New(pattern string, opts Options) *Regexp {
	re := &Regexp{pattern: pattern, options: opts}
	if err := opts.Validate(); err != nil {
		re.err = &Error{Pattern: pattern, Code: ErrorPatternTooLarge, Message: err.Error(), Err: err}
		logCompileError(opts, pattern, re.err)
		return re
	}
	engine, err := meta.Compile(pattern, opts.syntax(), opts.config())
	if err != nil {
		re.err = newError(pattern, err)
		logCompileError(opts, pattern, re.err)
		return re
	}
	re.engine = engine
	return re
}

// Compile compiles pattern with the default options. Errors are *Error.
//
// Example:
//
//	re, err := re2.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regexp, error) {
	return CompileOptions(pattern, DefaultOptions().WithLogErrors(false))
}

// CompileOptions compiles pattern with opts. Errors are *Error.
func CompileOptions(pattern string, opts Options) (*Regexp, error) {
	re := New(pattern, opts)
	if re.err != nil {
		return nil, re.err
	}
	return re, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic("re2: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// Ok reports whether the pattern compiled.
func (r *Regexp) Ok() bool {
	return r.err == nil
}

// Err returns the compile error as *Error, or nil.
func (r *Regexp) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Error returns the diagnostic of an invalid pattern, or "".
func (r *Regexp) Error() string {
	if r.err == nil {
		return ""
	}
	return r.err.Message
}

// ErrorArg returns the offending part of an invalid pattern, or "".
func (r *Regexp) ErrorArg() string {
	if r.err == nil {
		return ""
	}
	return r.err.Arg
}

// ErrorCode returns the error code, NoError for a valid pattern.
func (r *Regexp) ErrorCode() ErrorCode {
	if r.err == nil {
		return NoError
	}
	return r.err.Code
}

// Pattern returns the source text.
func (r *Regexp) Pattern() string {
	return r.pattern
}

// String returns the source text.
func (r *Regexp) String() string {
	return r.pattern
}

// Inspect returns a debugging representation, #<RE2::Regexp /pattern/>.
func (r *Regexp) Inspect() string {
	return "#<RE2::Regexp /" + r.pattern + "/>"
}

// Options returns the options the pattern was compiled with.
func (r *Regexp) Options() Options {
	return r.options
}

// UTF8 reports whether text is read as UTF-8 rather than Latin-1.
func (r *Regexp) UTF8() bool { return r.options.UTF8 }

// PosixSyntax reports whether the pattern uses the POSIX egrep dialect.
func (r *Regexp) PosixSyntax() bool { return r.options.PosixSyntax }

// LongestMatch reports leftmost-longest matching.
func (r *Regexp) LongestMatch() bool { return r.options.LongestMatch }

// LogErrors reports whether compile failures were logged.
func (r *Regexp) LogErrors() bool { return r.options.LogErrors }

// MaxMem returns the memory budget in bytes.
func (r *Regexp) MaxMem() int64 { return int64(r.options.MaxMem) }

// Literal reports whether the pattern is matched literally.
func (r *Regexp) Literal() bool { return r.options.Literal }

// NeverNL reports whether matches never contain a newline.
func (r *Regexp) NeverNL() bool { return r.options.NeverNL }

// DotNL reports whether . matches a newline.
func (r *Regexp) DotNL() bool { return r.options.DotNL }

// NeverCapture reports whether groups were parsed as non-capturing.
func (r *Regexp) NeverCapture() bool { return r.options.NeverCapture }

// CaseSensitive reports case-sensitive matching.
func (r *Regexp) CaseSensitive() bool { return r.options.CaseSensitive }

// CaseInsensitive is the negation of CaseSensitive.
func (r *Regexp) CaseInsensitive() bool { return !r.options.CaseSensitive }

// PerlClasses reports whether \d, \s and \w are allowed in the POSIX dialect.
func (r *Regexp) PerlClasses() bool { return r.options.PerlClasses }

// WordBoundary reports whether \b and \B are allowed in the POSIX dialect.
func (r *Regexp) WordBoundary() bool { return r.options.WordBoundary }

// OneLine reports whether ^ and $ match only at text boundaries in the
// POSIX dialect.
func (r *Regexp) OneLine() bool { return r.options.OneLine }

// ProgramSize returns the size of the compiled program, -1 when invalid.
func (r *Regexp) ProgramSize() int {
	if r.engine == nil {
		return -1
	}
	return r.engine.ProgramSize()
}

// NumberOfCapturingGroups returns the number of capturing groups, -1 when
// invalid.
func (r *Regexp) NumberOfCapturingGroups() int {
	if r.engine == nil {
		return -1
	}
	return r.engine.NumCaptures()
}

// NamedCapturingGroups returns the group index of every named group. The
// map is a copy.
func (r *Regexp) NamedCapturingGroups() map[string]int {
	if r.engine == nil {
		return map[string]int{}
	}
	return maps.Clone(r.engine.NamedGroups())
}

// EndOfText as MatchOptions.End means the end of the text.
const EndOfText = -1

// AllSubmatches as MatchOptions.Submatches requests every group.
const AllSubmatches = -1

// MatchOptions describes one match call.
type MatchOptions struct {
	// Start is the byte offset where the window starts.
	Start int

	// End is the byte offset where the window ends, EndOfText for the end
	// of the text. An End past the text is clamped to it.
	End int

	// Anchor restricts the match to the window start or the whole window.
	Anchor Anchor

	// Submatches is the number of groups to extract, AllSubmatches for
	// every group. Zero asks only whether there is a match.
	Submatches int
}

// DefaultMatchOptions returns an unanchored search of the whole text that
// extracts every group.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{End: EndOfText, Submatches: AllSubmatches}
}

// ResultKind tells what a Result holds.
type ResultKind uint8

const (
	// ResultNoMatch is a failed match that asked for submatches.
	ResultNoMatch ResultKind = iota

	// ResultBool is the answer to a match that asked for no submatches.
	ResultBool

	// ResultMatch holds the groups of a successful match.
	ResultMatch
)

// Result is the outcome of Regexp.Match.
type Result struct {
	Kind ResultKind

	// Matched is the answer of a ResultBool; it is also true for a
	// ResultMatch.
	Matched bool

	// Match is set for ResultMatch.
	Match *MatchResult
}

// IsMatch reports whether the match succeeded.
func (r Result) IsMatch() bool {
	return r.Matched
}

// Match matches r against text as described by opts.
//
// Invalid arguments are an *ArgumentError. An invalid pattern never
// matches. With opts.Submatches zero the result is a ResultBool and no
// capture state is tracked at all. AllSubmatches on a pattern without
// groups still yields a ResultMatch holding the whole match.
func (r *Regexp) Match(text []byte, opts MatchOptions) (Result, error) {
	in, n, err := r.input(text, opts)
	if err != nil {
		return Result{}, err
	}
	if opts.Submatches == 0 {
		return Result{Kind: ResultBool, Matched: r.engine != nil && r.engine.IsMatch(in)}, nil
	}
	if r.engine == nil {
		return Result{Kind: ResultNoMatch}, nil
	}
	slots := make([]int, 2*(n+1))
	if !r.engine.Search(in, slots) {
		return Result{Kind: ResultNoMatch}, nil
	}
	return Result{Kind: ResultMatch, Matched: true, Match: newMatchResult(r, text, slots)}, nil
}

// MatchString is like Match on a string.
func (r *Regexp) MatchString(text string, opts MatchOptions) (Result, error) {
	return r.Match([]byte(text), opts)
}

// input validates opts and returns the search input plus the number of
// groups to extract.
func (r *Regexp) input(text []byte, opts MatchOptions) (nfa.Input, int, error) {
	if opts.Start < 0 {
		return nfa.Input{}, 0, &ArgumentError{Message: "startpos should be >= 0"}
	}
	end := opts.End
	if end == EndOfText {
		end = len(text)
	} else if end < 0 {
		return nfa.Input{}, 0, &ArgumentError{Message: "endpos should be >= 0"}
	}
	if opts.Start > end {
		return nfa.Input{}, 0, &ArgumentError{Message: "startpos should be <= endpos"}
	}
	if opts.Submatches < AllSubmatches {
		return nfa.Input{}, 0, &ArgumentError{Message: "number of matches should be >= 0"}
	}
	if !opts.Anchor.valid() {
		return nfa.Input{}, 0, &ArgumentError{Message: errBadAnchor}
	}

	n := opts.Submatches
	if n == AllSubmatches {
		n = max(r.NumberOfCapturingGroups(), 0)
	}
	// a start past the text leaves Start > End: no match
	in := nfa.Input{
		Haystack:  text,
		Start:     opts.Start,
		End:       min(end, len(text)),
		Anchored:  opts.Anchor != Unanchored,
		AnchorEnd: opts.Anchor == AnchorBoth,
	}
	return in, n, nil
}

// Matches reports whether text contains a match.
func (r *Regexp) Matches(text []byte) bool {
	return r.engine != nil && r.engine.IsMatch(nfa.NewInput(text))
}

// MatchesString reports whether text contains a match.
func (r *Regexp) MatchesString(text string) bool {
	return r.Matches([]byte(text))
}

// PartialMatch reports whether text contains a match.
func (r *Regexp) PartialMatch(text string) bool {
	return r.MatchesString(text)
}

// FullMatch reports whether the whole of text matches.
func (r *Regexp) FullMatch(text string) bool {
	if r.engine == nil {
		return false
	}
	in := nfa.NewInput([]byte(text))
	in.Anchored = true
	in.AnchorEnd = true
	return r.engine.IsMatch(in)
}

// PartialMatch reports whether text contains a match of pattern, compiled
// with the default options. An invalid pattern never matches.
func PartialMatch(text, pattern string) bool {
	return New(pattern, DefaultOptions()).PartialMatch(text)
}

// FullMatch reports whether the whole of text matches pattern, compiled
// with the default options. An invalid pattern never matches.
func FullMatch(text, pattern string) bool {
	return New(pattern, DefaultOptions()).FullMatch(text)
}

// Find returns the first match in text with all its groups, or nil.
func (r *Regexp) Find(text []byte) *MatchResult {
	if r.engine == nil {
		return nil
	}
	slots := make([]int, 2*(r.engine.NumCaptures()+1))
	if !r.engine.Search(nfa.NewInput(text), slots) {
		return nil
	}
	return newMatchResult(r, text, slots)
}

// FindString is like Find on a string.
func (r *Regexp) FindString(text string) *MatchResult {
	return r.Find([]byte(text))
}

// FindAll returns every non-overlapping match in text, stepping as a
// Scanner does.
func (r *Regexp) FindAll(text []byte) []*MatchResult {
	var out []*MatchResult
	s := r.Scan(text)
	for {
		m := s.next()
		if m == nil {
			return out
		}
		out = append(out, m)
	}
}

// FindAllString is like FindAll on a string.
func (r *Regexp) FindAllString(text string) []*MatchResult {
	return r.FindAll([]byte(text))
}
