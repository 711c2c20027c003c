package re2

import (
	"fmt"
	"math"
	"sort"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"

	"github.com/coregx/re2/meta"
)

// DefaultMaxMem is the default memory budget of a pattern.
const DefaultMaxMem = 8 * datasize.MB

// Options configures how a pattern is parsed and matched.
//
// The zero value is not useful; start from DefaultOptions. Options can be
// read from YAML with the snake_case keys of the tags below, and max_mem
// accepts sizes such as "8MB".
type Options struct {
	// UTF8 reads pattern and text as UTF-8; otherwise as Latin-1.
	UTF8 bool `yaml:"utf8"`

	// PosixSyntax restricts patterns to the POSIX egrep dialect.
	PosixSyntax bool `yaml:"posix_syntax"`

	// LongestMatch selects leftmost-longest instead of leftmost-first
	// matches.
	LongestMatch bool `yaml:"longest_match"`

	// LogErrors logs failed compiles.
	LogErrors bool `yaml:"log_errors"`

	// MaxMem is the memory budget of the compiled program and its DFA
	// cache.
	MaxMem datasize.ByteSize `yaml:"max_mem"`

	// Literal treats the pattern as a literal string.
	Literal bool `yaml:"literal"`

	// NeverNL never matches a newline, even one written in the pattern.
	NeverNL bool `yaml:"never_nl"`

	// DotNL lets . match a newline.
	DotNL bool `yaml:"dot_nl"`

	// NeverCapture parses every group as non-capturing.
	NeverCapture bool `yaml:"never_capture"`

	// CaseSensitive disables case folding.
	CaseSensitive bool `yaml:"case_sensitive"`

	// PerlClasses allows \d \s \w in the POSIX dialect.
	PerlClasses bool `yaml:"perl_classes"`

	// WordBoundary allows \b \B in the POSIX dialect.
	WordBoundary bool `yaml:"word_boundary"`

	// OneLine makes ^ and $ match only at text boundaries in the POSIX
	// dialect.
	OneLine bool `yaml:"one_line"`

	// Logger receives compile failures when LogErrors is set. Nil means the
	// package logger.
	Logger log.Logger `yaml:"-"`
}

// DefaultOptions returns the Perl dialect over UTF-8, case sensitive, with
// errors logged and an 8 MiB budget.
func DefaultOptions() Options {
	return Options{
		UTF8:          true,
		LogErrors:     true,
		MaxMem:        DefaultMaxMem,
		CaseSensitive: true,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.MaxMem == 0 {
		return &ArgumentError{Message: "max_mem should be > 0"}
	}
	return nil
}

// WithUTF8 returns a copy of o reading UTF-8 (true) or Latin-1 (false).
func (o Options) WithUTF8(utf8 bool) Options {
	o.UTF8 = utf8
	return o
}

// WithPosixSyntax returns a copy of o with the POSIX dialect selected.
func (o Options) WithPosixSyntax(posix bool) Options {
	o.PosixSyntax = posix
	return o
}

// WithLongestMatch returns a copy of o with leftmost-longest matching.
func (o Options) WithLongestMatch(longest bool) Options {
	o.LongestMatch = longest
	return o
}

// WithLogErrors returns a copy of o with compile failures logged or not.
func (o Options) WithLogErrors(logErrors bool) Options {
	o.LogErrors = logErrors
	return o
}

// WithMaxMem returns a copy of o with the memory budget set.
func (o Options) WithMaxMem(size datasize.ByteSize) Options {
	o.MaxMem = size
	return o
}

// WithLiteral returns a copy of o treating patterns as literals.
func (o Options) WithLiteral(literal bool) Options {
	o.Literal = literal
	return o
}

// WithNeverNL returns a copy of o that never matches newlines.
func (o Options) WithNeverNL(neverNL bool) Options {
	o.NeverNL = neverNL
	return o
}

// WithDotNL returns a copy of o where . matches newlines.
func (o Options) WithDotNL(dotNL bool) Options {
	o.DotNL = dotNL
	return o
}

// WithNeverCapture returns a copy of o without capturing groups.
func (o Options) WithNeverCapture(neverCapture bool) Options {
	o.NeverCapture = neverCapture
	return o
}

// WithCaseSensitive returns a copy of o with case folding off (true) or on.
func (o Options) WithCaseSensitive(caseSensitive bool) Options {
	o.CaseSensitive = caseSensitive
	return o
}

// WithPerlClasses returns a copy of o allowing Perl classes in POSIX mode.
func (o Options) WithPerlClasses(perlClasses bool) Options {
	o.PerlClasses = perlClasses
	return o
}

// WithWordBoundary returns a copy of o allowing \b \B in POSIX mode.
func (o Options) WithWordBoundary(wordBoundary bool) Options {
	o.WordBoundary = wordBoundary
	return o
}

// WithOneLine returns a copy of o where POSIX ^ and $ are text anchors.
func (o Options) WithOneLine(oneLine bool) Options {
	o.OneLine = oneLine
	return o
}

// WithLogger returns a copy of o logging to logger.
func (o Options) WithLogger(logger log.Logger) Options {
	o.Logger = logger
	return o
}

// OptionsFromMap builds options from a map keyed like the YAML tags, e.g.
// {"case_sensitive": false, "max_mem": "1MB"}. Keys missing from m keep
// their defaults. Unknown keys are an error, and wrongly typed values are a
// *TypeError.
func OptionsFromMap(m map[string]any) (Options, error) {
	o := DefaultOptions()

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := m[key]
		if key == "max_mem" {
			size, err := parseMaxMem(value)
			if err != nil {
				return Options{}, err
			}
			o.MaxMem = size
			continue
		}

		field := o.flag(key)
		if field == nil {
			return Options{}, fmt.Errorf("re2: unknown option %q", key)
		}
		b, ok := value.(bool)
		if !ok {
			return Options{}, &TypeError{Message: fmt.Sprintf("wrong argument type %T for %s (expected true or false)", value, key)}
		}
		*field = b
	}
	return o, o.Validate()
}

// flag returns the boolean option named key, or nil.
func (o *Options) flag(key string) *bool {
	switch key {
	case "utf8":
		return &o.UTF8
	case "posix_syntax":
		return &o.PosixSyntax
	case "longest_match":
		return &o.LongestMatch
	case "log_errors":
		return &o.LogErrors
	case "literal":
		return &o.Literal
	case "never_nl":
		return &o.NeverNL
	case "dot_nl":
		return &o.DotNL
	case "never_capture":
		return &o.NeverCapture
	case "case_sensitive":
		return &o.CaseSensitive
	case "perl_classes":
		return &o.PerlClasses
	case "word_boundary":
		return &o.WordBoundary
	case "one_line":
		return &o.OneLine
	}
	return nil
}

func parseMaxMem(value any) (datasize.ByteSize, error) {
	switch v := value.(type) {
	case datasize.ByteSize:
		return v, nil
	case int:
		if v < 0 {
			return 0, &ArgumentError{Message: "max_mem should be > 0"}
		}
		return datasize.ByteSize(v), nil
	case int64:
		if v < 0 {
			return 0, &ArgumentError{Message: "max_mem should be > 0"}
		}
		return datasize.ByteSize(v), nil
	case uint64:
		return datasize.ByteSize(v), nil
	case string:
		size, err := datasize.ParseString(v)
		if err != nil {
			return 0, &ArgumentError{Message: fmt.Sprintf("invalid max_mem %q", v), Err: err}
		}
		return size, nil
	}
	return 0, &TypeError{Message: fmt.Sprintf("wrong argument type %T for max_mem (expected Integer or size)", value)}
}

func (o Options) syntax() meta.Syntax {
	return meta.Syntax{
		UTF8:          o.UTF8,
		Posix:         o.PosixSyntax,
		Literal:       o.Literal,
		NeverNL:       o.NeverNL,
		DotNL:         o.DotNL,
		NeverCapture:  o.NeverCapture,
		CaseSensitive: o.CaseSensitive,
		PerlClasses:   o.PerlClasses,
		WordBoundary:  o.WordBoundary,
		OneLine:       o.OneLine,
	}
}

func (o Options) config() meta.Config {
	maxMemory := math.MaxInt
	if o.MaxMem.Bytes() < uint64(math.MaxInt) {
		maxMemory = int(o.MaxMem.Bytes())
	}
	return meta.DefaultConfig().
		WithMaxMemory(maxMemory).
		WithLongest(o.LongestMatch)
}

func (o Options) logger() log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger
}
