package meta

import (
	"errors"
	"regexp/syntax"
	"strings"
)

// Syntax selects the pattern dialect and how it is read.
type Syntax struct {
	// UTF8 reads the pattern and the text as UTF-8. When false both are
	// Latin-1: every byte is the code point of the same value.
	UTF8 bool

	// Posix restricts the pattern to the POSIX egrep dialect.
	Posix bool

	// Literal treats the whole pattern as a literal string.
	Literal bool

	// NeverNL keeps matches from ever containing a newline.
	NeverNL bool

	// DotNL lets . match a newline.
	DotNL bool

	// NeverCapture parses every group as non-capturing.
	NeverCapture bool

	// CaseSensitive disables case folding.
	CaseSensitive bool

	// PerlClasses allows \d \s \w and their negations in the POSIX dialect.
	PerlClasses bool

	// WordBoundary allows \b and \B in the POSIX dialect.
	WordBoundary bool

	// OneLine anchors ^ and $ at text boundaries only in the POSIX dialect.
	// The Perl dialect always does so unless (?m) is set.
	OneLine bool
}

// DefaultSyntax returns the Perl dialect over UTF-8, case sensitive.
func DefaultSyntax() Syntax {
	return Syntax{UTF8: true, CaseSensitive: true}
}

// Flags returns the regexp/syntax parse flags for s.
func (s Syntax) Flags() syntax.Flags {
	flags := syntax.ClassNL
	if s.Posix {
		if s.OneLine {
			flags |= syntax.OneLine
		}
		if s.PerlClasses || s.WordBoundary {
			// the remaining Perl extensions are rejected by checkPosix
			flags |= syntax.PerlX
		}
	} else {
		flags |= syntax.OneLine | syntax.PerlX | syntax.UnicodeGroups
	}
	if s.Literal {
		flags |= syntax.Literal
	}
	if !s.CaseSensitive {
		flags |= syntax.FoldCase
	}
	if s.DotNL {
		flags |= syntax.DotNL
	}
	return flags
}

// ErrorCode classifies pattern errors.
type ErrorCode int

// Error codes, numbered as RE2 numbers them.
const (
	NoError ErrorCode = iota
	ErrorInternal
	ErrorBadEscape
	ErrorBadCharClass
	ErrorBadCharRange
	ErrorMissingBracket
	ErrorMissingParen
	ErrorUnexpectedParen
	ErrorTrailingBackslash
	ErrorRepeatArgument
	ErrorRepeatSize
	ErrorRepeatOp
	ErrorBadPerlOp
	ErrorBadUTF8
	ErrorBadNamedCapture
	ErrorPatternTooLarge
)

var errorTexts = [...]string{
	NoError:                "no error",
	ErrorInternal:          "unexpected error",
	ErrorBadEscape:         "invalid escape sequence",
	ErrorBadCharClass:      "invalid character class",
	ErrorBadCharRange:      "invalid character class range",
	ErrorMissingBracket:    "missing ]",
	ErrorMissingParen:      "missing )",
	ErrorUnexpectedParen:   "unexpected )",
	ErrorTrailingBackslash: "trailing \\",
	ErrorRepeatArgument:    "no argument for repetition operator",
	ErrorRepeatSize:        "invalid repetition size",
	ErrorRepeatOp:          "bad repetition operator",
	ErrorBadPerlOp:         "invalid perl operator",
	ErrorBadUTF8:           "invalid UTF-8",
	ErrorBadNamedCapture:   "invalid named capture group",
	ErrorPatternTooLarge:   "pattern too large - compile failed",
}

// String returns the diagnostic text of the code.
func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(errorTexts) {
		return errorTexts[c]
	}
	return errorTexts[ErrorInternal]
}

// ParseError is a pattern that failed to compile.
type ParseError struct {
	Code ErrorCode

	// Arg is the offending part of the pattern, if known
	Arg string

	// Err is the underlying error, if any
	Err error
}

// Error returns "<text>: <arg>", or the text alone without an arg.
func (e *ParseError) Error() string {
	if e.Arg == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Arg
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

var syntaxCodes = map[syntax.ErrorCode]ErrorCode{
	syntax.ErrInternalError:         ErrorInternal,
	syntax.ErrInvalidCharClass:      ErrorBadCharClass,
	syntax.ErrInvalidCharRange:      ErrorBadCharRange,
	syntax.ErrInvalidEscape:         ErrorBadEscape,
	syntax.ErrInvalidNamedCapture:   ErrorBadNamedCapture,
	syntax.ErrInvalidPerlOp:         ErrorBadPerlOp,
	syntax.ErrInvalidRepeatOp:       ErrorRepeatOp,
	syntax.ErrInvalidRepeatSize:     ErrorRepeatSize,
	syntax.ErrInvalidUTF8:           ErrorBadUTF8,
	syntax.ErrMissingBracket:        ErrorMissingBracket,
	syntax.ErrMissingParen:          ErrorMissingParen,
	syntax.ErrMissingRepeatArgument: ErrorRepeatArgument,
	syntax.ErrTrailingBackslash:     ErrorTrailingBackslash,
	syntax.ErrUnexpectedParen:       ErrorUnexpectedParen,
	syntax.ErrNestingDepth:          ErrorPatternTooLarge,
	syntax.ErrLarge:                 ErrorPatternTooLarge,
}

// Parse parses pattern according to s. Errors are *ParseError.
//
// In Latin-1 mode every byte of pattern is read as one code point, so a
// pattern need not be valid UTF-8.
func Parse(pattern string, s Syntax) (*syntax.Regexp, error) {
	if !s.UTF8 {
		pattern = latin1ToUTF8(pattern)
	}
	if s.Posix && !s.Literal {
		if err := checkPosix(pattern, s); err != nil {
			return nil, s.localize(err)
		}
	}

	re, err := syntax.Parse(pattern, s.Flags())
	if err != nil {
		var serr *syntax.Error
		if !errors.As(err, &serr) {
			return nil, &ParseError{Code: ErrorInternal, Err: err}
		}
		code, ok := syntaxCodes[serr.Code]
		if !ok {
			code = ErrorInternal
		}
		return nil, s.localize(&ParseError{Code: code, Arg: serr.Expr, Err: err})
	}

	if s.NeverCapture {
		re = stripCaptures(re)
	}
	if s.NeverNL {
		re = removeNewlines(re)
	}
	return re, nil
}

// localize turns the arg of a Latin-1 pattern back into pattern bytes.
func (s Syntax) localize(err *ParseError) *ParseError {
	if !s.UTF8 {
		err.Arg = utf8ToLatin1(err.Arg)
	}
	return err
}

func latin1ToUTF8(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		b.WriteRune(rune(s[i]))
	}
	return b.String()
}

func utf8ToLatin1(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		// every rune came from a single pattern byte
		b = append(b, byte(r))
	}
	return string(b)
}

// checkPosix rejects the Perl extensions the POSIX dialect does not allow.
// The parser runs with PerlX enabled when Perl classes or word boundaries
// are allowed, so everything else PerlX would accept is caught here.
func checkPosix(p string, s Syntax) *ParseError {
	inClass := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		var next byte
		if i+1 < len(p) {
			next = p[i+1]
		}

		switch {
		case c == '\\':
			if i+1 >= len(p) {
				// left to the parser: trailing backslash
				return nil
			}
			i++
			switch next {
			case 'd', 'D', 's', 'S', 'w', 'W':
				if !s.PerlClasses {
					return &ParseError{Code: ErrorBadEscape, Arg: p[i-1 : i+1]}
				}
			case 'b', 'B':
				if !s.WordBoundary && !inClass {
					return &ParseError{Code: ErrorBadEscape, Arg: p[i-1 : i+1]}
				}
			case 'A', 'z', 'C', 'Q', 'E', 'p', 'P':
				return &ParseError{Code: ErrorBadEscape, Arg: p[i-1 : i+1]}
			}

		case inClass:
			if c == '[' && next == ':' {
				if end := strings.Index(p[i+2:], ":]"); end >= 0 {
					i += end + 3
				}
			} else if c == ']' {
				inClass = false
			}

		case c == '[':
			inClass = true
			if next == '^' {
				i++
			}
			// a leading ] is a literal
			if i+1 < len(p) && p[i+1] == ']' {
				i++
			}

		case c == '(' && next == '?':
			return &ParseError{Code: ErrorRepeatArgument, Arg: "?"}

		case (c == '*' || c == '+' || c == '?' || c == '}') && next == '?':
			return &ParseError{Code: ErrorRepeatOp, Arg: p[i : i+2]}
		}
	}
	return nil
}

// stripCaptures replaces every capture group by its contents.
func stripCaptures(re *syntax.Regexp) *syntax.Regexp {
	for re.Op == syntax.OpCapture {
		re = re.Sub[0]
	}
	for i, sub := range re.Sub {
		re.Sub[i] = stripCaptures(sub)
	}
	return re
}

// removeNewlines rewrites re so that no match contains '\n'.
func removeNewlines(re *syntax.Regexp) *syntax.Regexp {
	switch re.Op {
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			if r == '\n' {
				return &syntax.Regexp{Op: syntax.OpNoMatch, Flags: re.Flags}
			}
		}
	case syntax.OpCharClass:
		re.Rune = withoutNewline(re.Rune)
		if len(re.Rune) == 0 {
			return &syntax.Regexp{Op: syntax.OpNoMatch, Flags: re.Flags}
		}
	case syntax.OpAnyChar:
		re.Op = syntax.OpAnyCharNotNL
	}
	for i, sub := range re.Sub {
		re.Sub[i] = removeNewlines(sub)
	}
	return re
}

// withoutNewline removes '\n' from sorted class ranges.
func withoutNewline(ranges []rune) []rune {
	out := make([]rune, 0, len(ranges)+2)
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo > '\n' || hi < '\n' {
			out = append(out, lo, hi)
			continue
		}
		if lo < '\n' {
			out = append(out, lo, '\n'-1)
		}
		if hi > '\n' {
			out = append(out, '\n'+1, hi)
		}
	}
	return out
}
