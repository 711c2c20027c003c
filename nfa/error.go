package nfa

import (
	"errors"
	"fmt"
)

var (
	// ErrTooLarge means the program outgrew CompilerConfig.MemoryLimit.
	ErrTooLarge = errors.New("pattern too large - compile failed")

	// ErrTooComplex means the parse tree nests past MaxRecursionDepth.
	ErrTooComplex = errors.New("pattern too complex")

	// ErrUnsupported means the parse tree holds an op with no lowering.
	ErrUnsupported = errors.New("unsupported regex operation")

	ErrInvalidConfig = errors.New("invalid compiler configuration")
)

// CompileError carries the pattern a compilation failed on, when known.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pattern == "" {
		return "compiling program: " + e.Err.Error()
	}
	return fmt.Sprintf("compiling %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// BuildError is returned by Builder.Build for a malformed program.
// StateID is InvalidState when no single state is to blame.
type BuildError struct {
	Message string
	StateID StateID
}

func (e *BuildError) Error() string {
	if e.StateID == InvalidState {
		return "building program: " + e.Message
	}
	return fmt.Sprintf("building program: state %d: %s", e.StateID, e.Message)
}
