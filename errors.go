package re2

import (
	"errors"

	"github.com/coregx/re2/meta"
)

// ErrorCode classifies pattern errors. The values are numbered as RE2
// numbers them.
type ErrorCode = meta.ErrorCode

// Error codes reported by Regexp.ErrorCode.
const (
	NoError                = meta.NoError
	ErrorInternal          = meta.ErrorInternal
	ErrorBadEscape         = meta.ErrorBadEscape
	ErrorBadCharClass      = meta.ErrorBadCharClass
	ErrorBadCharRange      = meta.ErrorBadCharRange
	ErrorMissingBracket    = meta.ErrorMissingBracket
	ErrorMissingParen      = meta.ErrorMissingParen
	ErrorUnexpectedParen   = meta.ErrorUnexpectedParen
	ErrorTrailingBackslash = meta.ErrorTrailingBackslash
	ErrorRepeatArgument    = meta.ErrorRepeatArgument
	ErrorRepeatSize        = meta.ErrorRepeatSize
	ErrorRepeatOp          = meta.ErrorRepeatOp
	ErrorBadPerlOp         = meta.ErrorBadPerlOp
	ErrorBadUTF8           = meta.ErrorBadUTF8
	ErrorBadNamedCapture   = meta.ErrorBadNamedCapture
	ErrorPatternTooLarge   = meta.ErrorPatternTooLarge
)

// Error describes a pattern that failed to compile.
type Error struct {
	// Pattern is the source text.
	Pattern string

	// Code classifies the failure.
	Code ErrorCode

	// Arg is the offending part of the pattern, if known.
	Arg string

	// Message is the diagnostic, e.g. "missing ): wo(o".
	Message string

	// Err is the underlying error.
	Err error
}

// Error returns the diagnostic.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds the diagnostic of a failed compile of pattern.
func newError(pattern string, err error) *Error {
	var perr *meta.ParseError
	if errors.As(err, &perr) {
		return &Error{Pattern: pattern, Code: perr.Code, Arg: perr.Arg, Message: perr.Error(), Err: err}
	}
	return &Error{Pattern: pattern, Code: ErrorInternal, Message: err.Error(), Err: err}
}

// ArgumentError reports an invalid argument to a match or set call.
type ArgumentError struct {
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// TypeError reports a value of the wrong type, e.g. in an option map.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return e.Message
}

// SetMatchError reports a set that cannot be matched.
type SetMatchError struct {
	Message string
}

func (e *SetMatchError) Error() string {
	return e.Message
}

// RewriteError reports an invalid rewrite string.
type RewriteError struct {
	Rewrite string
	Message string
}

func (e *RewriteError) Error() string {
	return e.Message
}

var (
	// ErrSetCompiled is returned by Set.Add after Set.Compile.
	ErrSetCompiled = errors.New("re2: Set.Add() called after compiling")

	// ErrSetNotCompiled is returned by Set.Match before Set.Compile.
	ErrSetNotCompiled = &SetMatchError{Message: "re2: Set.Match() called before compiling"}
)

const errBadAnchor = "anchor should be one of: unanchored, anchor_start, anchor_both"
