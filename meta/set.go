package meta

import (
	"regexp/syntax"
	"sync/atomic"

	"github.com/coregx/re2/dfa/lazy"
	"github.com/coregx/re2/literal"
	"github.com/coregx/re2/nfa"
	"github.com/coregx/re2/prefilter"
)

// SetEngine matches a group of patterns at once and reports which of them
// match.
//
// All patterns are compiled into one program whose Match states carry the
// pattern ordinal, so a single pass of the lazy DFA answers for every
// pattern. When every pattern starts with a required literal a keyword
// filter rules patterns out before any automaton runs.
//
// Thread safety: a SetEngine is safe for concurrent use.
type SetEngine struct {
	nfa    *nfa.NFA
	pikevm *nfa.PikeVM
	dfa    *lazy.DFA
	filter *prefilter.KeywordFilter
	pool   *searchStatePool
	stats  Stats
}

// CompileSet compiles the parsed patterns res, all parsed with s, into one
// engine. An empty res is allowed and never matches.
func CompileSet(res []*syntax.Regexp, s Syntax, config Config) (*SetEngine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		UTF8:              s.UTF8,
		MaxRecursionDepth: config.MaxRecursionDepth,
		MemoryLimit:       config.programBudget(),
	})
	program, err := compiler.CompileSet(res)
	if err != nil {
		return nil, compileError(err)
	}

	e := &SetEngine{
		nfa:    program,
		pikevm: nfa.NewPikeVM(program),
	}
	if config.EnableDFA {
		e.dfa, err = lazy.New(program, lazy.Config{
			MaxMemory:      config.cacheBudget(),
			MaxCacheClears: config.MaxCacheClears,
		})
		if err != nil {
			return nil, err
		}
	}

	if config.EnablePrefilter && len(res) > 0 {
		e.filter = keywordFilter(res, s)
	}
	e.pool = newSearchStatePool(e.newSearchState)
	return e, nil
}

// keywordFilter returns a filter over the prefix literals of res, or nil
// when some pattern can match without starting with a literal.
func keywordFilter(res []*syntax.Regexp, s Syntax) *prefilter.KeywordFilter {
	ext := extractor(s)
	seqs := make([]*literal.Seq, len(res))
	for i, re := range res {
		seq := ext.ExtractPrefixes(re)
		if !seq.IsFinite() || seq.HasEmpty() {
			return nil
		}
		seqs[i] = seq
	}
	return prefilter.NewKeywordFilter(seqs)
}

func (e *SetEngine) newSearchState() *searchState {
	st := &searchState{
		pikevm: e.pikevm.NewState(),
		found:  make([]bool, e.nfa.PatternCount()),
	}
	if e.dfa != nil {
		st.dfaCache = e.dfa.NewCache()
	}
	return st
}

// PatternCount returns the number of patterns in the set.
func (e *SetEngine) PatternCount() int {
	return e.nfa.PatternCount()
}

// ProgramSize returns the number of states of the joint program.
func (e *SetEngine) ProgramSize() int {
	return e.nfa.States()
}

// HasFilter reports whether a keyword filter runs before the automaton.
func (e *SetEngine) HasFilter() bool {
	return e.filter != nil
}

// WhichMatches marks found[i] for every pattern i matching in and returns
// how many patterns matched. found must have PatternCount entries.
func (e *SetEngine) WhichMatches(in nfa.Input, found []bool) int {
	for i := range found {
		found[i] = false
	}
	if len(found) == 0 || in.Start > in.End || in.End > len(in.Haystack) {
		return 0
	}

	st := e.pool.get()
	defer e.pool.put(st)

	if e.filter != nil {
		// keywords anywhere in the window are necessary, not sufficient
		if e.filter.Candidates(in.Haystack[in.Start:in.End], st.found) == 0 {
			atomic.AddUint64(&e.stats.PrefilterRejects, 1)
			return 0
		}
	}

	if e.dfa != nil {
		atomic.AddUint64(&e.stats.DFASearches, 1)
		n, err := e.dfa.WhichMatches(st.dfaCache, in, found)
		if err == nil {
			return n
		}
		atomic.AddUint64(&e.stats.DFACacheFull, 1)
	}
	atomic.AddUint64(&e.stats.NFASearches, 1)
	return e.pikevm.WhichMatches(st.pikevm, in, found)
}

// Matches returns the ordinals of the patterns matching in, ascending.
func (e *SetEngine) Matches(in nfa.Input) []int {
	found := make([]bool, e.PatternCount())
	n := e.WhichMatches(in, found)
	out := make([]int, 0, n)
	for i, ok := range found {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// Stats returns a snapshot of the execution statistics.
func (e *SetEngine) Stats() Stats {
	return Stats{
		NFASearches:      atomic.LoadUint64(&e.stats.NFASearches),
		DFASearches:      atomic.LoadUint64(&e.stats.DFASearches),
		PrefilterRejects: atomic.LoadUint64(&e.stats.PrefilterRejects),
		DFACacheFull:     atomic.LoadUint64(&e.stats.DFACacheFull),
	}
}
