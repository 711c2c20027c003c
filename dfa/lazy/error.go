package lazy

import "fmt"

// ErrorKind tells the two DFA failure modes apart under errors.Is.
type ErrorKind uint8

const (
	// CacheFull: the search ran out of cache clears and gave up.
	CacheFull ErrorKind = iota
	// InvalidConfig: Config.Validate or the pattern rejected the build.
	InvalidConfig
)

var kindNames = [...]string{CacheFull: "CacheFull", InvalidConfig: "InvalidConfig"}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("UnknownErrorKind(%d)", k)
}

var (
	// ErrCacheFull leaves the query unanswered; callers fall back to the
	// PikeVM.
	ErrCacheFull = &DFAError{Kind: CacheFull, Message: "state cache exhausted"}

	ErrInvalidConfig = &DFAError{Kind: InvalidConfig, Message: "invalid DFA configuration"}
)

// DFAError is a DFA failure. Two DFAErrors match under errors.Is when
// their kinds agree.
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *DFAError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *DFAError) Unwrap() error { return e.Cause }

func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	return ok && t.Kind == e.Kind
}
