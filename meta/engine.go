package meta

import (
	"errors"
	"regexp/syntax"
	"sync/atomic"

	"github.com/coregx/re2/dfa/lazy"
	"github.com/coregx/re2/literal"
	"github.com/coregx/re2/nfa"
	"github.com/coregx/re2/prefilter"
)

// Engine is a compiled pattern ready for searching.
//
// Boolean searches run the lazy DFA, which carries no capture state at all.
// Span and capture searches first ask the DFA whether a match exists and
// only then run the PikeVM with capture slots. Either path falls back to the
// PikeVM when the DFA cache is exhausted.
//
// Thread safety: an Engine is safe for concurrent use. Per-search state
// comes from a pool.
type Engine struct {
	nfa    *nfa.NFA
	pikevm *nfa.PikeVM

	// dfa runs over a program compiled without capture states; nil when
	// disabled
	dfa *lazy.DFA

	prefilter prefilter.Prefilter

	// complete is set when finding a prefilter literal decides a boolean
	// search on its own
	complete bool

	syntax Syntax
	config Config
	names  map[string]int
	pool   *searchStatePool
	stats  Stats
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// NFASearches counts PikeVM searches
	NFASearches uint64

	// DFASearches counts lazy DFA searches
	DFASearches uint64

	// PrefilterRejects counts searches the prefilter answered with no match
	PrefilterRejects uint64

	// PrefilterSkips counts searches whose start the prefilter moved forward
	PrefilterSkips uint64

	// DFACacheFull counts DFA searches that fell back to the PikeVM
	DFACacheFull uint64
}

// Compile parses pattern with s and compiles it.
//
// Errors are *ParseError for bad patterns, including patterns whose program
// exceeds the memory budget, and *ConfigError for a bad config.
//
// Example:
//
//	engine, err := meta.Compile(`(\w+)@(\w+)\.com`, meta.DefaultSyntax(), meta.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	slots := make([]int, 6)
//	if engine.Search(nfa.NewInput([]byte("mail bob@example.com")), slots) {
//	    // slots[2:4] bounds "bob"
//	}
func Compile(pattern string, s Syntax, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	re, err := Parse(pattern, s)
	if err != nil {
		return nil, err
	}
	return CompileRegexp(re, s, config)
}

// CompileRegexp compiles an already parsed pattern. s must be the syntax the
// pattern was parsed with.
func CompileRegexp(re *syntax.Regexp, s Syntax, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compilerConfig := nfa.CompilerConfig{
		UTF8:              s.UTF8,
		Captures:          true,
		MaxRecursionDepth: config.MaxRecursionDepth,
		MemoryLimit:       config.programBudget(),
	}
	program, err := nfa.NewCompiler(compilerConfig).CompileRegexp(re)
	if err != nil {
		return nil, compileError(err)
	}

	e := &Engine{
		nfa:    program,
		pikevm: nfa.NewPikeVMWithConfig(program, nfa.PikeVMConfig{Longest: config.Longest}),
		syntax: s,
		config: config,
		names:  make(map[string]int),
	}
	for i, name := range program.SubexpNames() {
		if name != "" {
			e.names[name] = i
		}
	}

	if config.EnableDFA {
		compilerConfig.Captures = false
		bare, err := nfa.NewCompiler(compilerConfig).CompileRegexp(re)
		if err != nil {
			return nil, compileError(err)
		}
		e.dfa, err = lazy.New(bare, lazy.Config{
			MaxMemory:      config.cacheBudget(),
			MaxCacheClears: config.MaxCacheClears,
		})
		if err != nil {
			return nil, err
		}
	}

	if config.EnablePrefilter {
		e.prefilter = prefilter.Build(extractor(s).ExtractPrefixes(re))
		e.complete = e.prefilter != nil && e.prefilter.IsComplete() && program.LookSet().IsEmpty()
	}

	e.pool = newSearchStatePool(e.newSearchState)
	return e, nil
}

func (e *Engine) newSearchState() *searchState {
	st := &searchState{
		pikevm:  e.pikevm.NewState(),
		tracker: prefilter.NewTracker(e.prefilter),
		slots:   make([]int, 2),
	}
	if e.dfa != nil {
		st.dfaCache = e.dfa.NewCache()
	}
	return st
}

func extractor(s Syntax) *literal.Extractor {
	config := literal.DefaultConfig()
	config.Latin1 = !s.UTF8
	return literal.New(config)
}

// compileError turns an NFA compilation failure into a pattern error.
func compileError(err error) error {
	if errors.Is(err, nfa.ErrTooLarge) || errors.Is(err, nfa.ErrTooComplex) {
		return &ParseError{Code: ErrorPatternTooLarge, Err: err}
	}
	return &ParseError{Code: ErrorInternal, Err: err}
}

// IsMatch reports whether in contains a match. No capture state is tracked.
func (e *Engine) IsMatch(in nfa.Input) bool {
	st := e.pool.get()
	defer e.pool.put(st)

	filtered, ok := e.advance(st, &in)
	if !ok {
		return false
	}
	if filtered && e.complete && !in.AnchorEnd {
		st.tracker.ConfirmMatch()
		return true
	}

	matched := e.isMatch(st, in)
	if filtered && matched {
		st.tracker.ConfirmMatch()
	}
	return matched
}

func (e *Engine) isMatch(st *searchState, in nfa.Input) bool {
	if e.dfa != nil {
		atomic.AddUint64(&e.stats.DFASearches, 1)
		matched, err := e.dfa.IsMatch(st.dfaCache, in)
		if err == nil {
			return matched
		}
		atomic.AddUint64(&e.stats.DFACacheFull, 1)
	}
	atomic.AddUint64(&e.stats.NFASearches, 1)
	return e.pikevm.IsMatch(st.pikevm, in)
}

// Search finds the first match in in and writes its capture slots to slots:
// slots[2*i] and slots[2*i+1] bound group i, -1 marks an unset group. Slots
// beyond the pattern's groups are set to -1, and a short slots receives
// only the leading groups.
func (e *Engine) Search(in nfa.Input, slots []int) bool {
	for i := range slots {
		slots[i] = -1
	}
	st := e.pool.get()
	defer e.pool.put(st)

	filtered, ok := e.advance(st, &in)
	if !ok {
		return false
	}
	// the DFA rejects non-matching input without any capture bookkeeping
	if e.dfa != nil {
		atomic.AddUint64(&e.stats.DFASearches, 1)
		matched, err := e.dfa.IsMatch(st.dfaCache, in)
		if err != nil {
			atomic.AddUint64(&e.stats.DFACacheFull, 1)
		} else if !matched {
			return false
		}
	}

	atomic.AddUint64(&e.stats.NFASearches, 1)
	matched := e.pikevm.Search(st.pikevm, in, slots)
	if filtered && matched {
		st.tracker.ConfirmMatch()
	}
	return matched
}

// Find returns the span of the first match in in.
func (e *Engine) Find(in nfa.Input) (start, end int, ok bool) {
	var slots [2]int
	if !e.Search(in, slots[:]) {
		return -1, -1, false
	}
	return slots[0], slots[1], true
}

// advance moves in.Start forward to the first prefilter candidate. filtered
// reports whether the prefilter ran; ok is false when it found no candidate,
// so no match exists.
func (e *Engine) advance(st *searchState, in *nfa.Input) (filtered, ok bool) {
	if in.Anchored || !st.tracker.IsActive() {
		return false, true
	}
	if in.Start > in.End || in.End > len(in.Haystack) {
		return false, true
	}
	at := st.tracker.Find(in.Haystack[:in.End], in.Start)
	if at < 0 {
		atomic.AddUint64(&e.stats.PrefilterRejects, 1)
		return true, false
	}
	if at > in.Start {
		atomic.AddUint64(&e.stats.PrefilterSkips, 1)
		in.Start = at
	}
	return true, true
}

// NFA returns the program with capture states.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// ProgramSize returns the number of states of the program.
func (e *Engine) ProgramSize() int {
	return e.nfa.States()
}

// NumCaptures returns the number of capturing groups, not counting the
// implicit group 0.
func (e *Engine) NumCaptures() int {
	return e.nfa.CaptureCount() - 1
}

// SubexpNames returns the group names indexed by group; unnamed groups and
// group 0 have empty names.
func (e *Engine) SubexpNames() []string {
	return e.nfa.SubexpNames()
}

// NamedGroups returns the index of every named group. The map must not be
// modified.
func (e *Engine) NamedGroups() map[string]int {
	return e.names
}

// Syntax returns the syntax the pattern was parsed with.
func (e *Engine) Syntax() Syntax {
	return e.syntax
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// HasPrefilter reports whether searches start with a literal prefilter.
func (e *Engine) HasPrefilter() bool {
	return e.prefilter != nil
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		NFASearches:      atomic.LoadUint64(&e.stats.NFASearches),
		DFASearches:      atomic.LoadUint64(&e.stats.DFASearches),
		PrefilterRejects: atomic.LoadUint64(&e.stats.PrefilterRejects),
		PrefilterSkips:   atomic.LoadUint64(&e.stats.PrefilterSkips),
		DFACacheFull:     atomic.LoadUint64(&e.stats.DFACacheFull),
	}
}

// ResetStats zeroes the execution statistics.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.NFASearches, 0)
	atomic.StoreUint64(&e.stats.DFASearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterRejects, 0)
	atomic.StoreUint64(&e.stats.PrefilterSkips, 0)
	atomic.StoreUint64(&e.stats.DFACacheFull, 0)
}
