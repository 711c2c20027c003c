package meta

import (
	"sync"

	"github.com/coregx/re2/dfa/lazy"
	"github.com/coregx/re2/nfa"
	"github.com/coregx/re2/prefilter"
)

// searchState holds per-search mutable state so that one compiled engine
// can serve concurrent searches. States are obtained from a sync.Pool.
//
// Thread safety: each goroutine must use its own searchState.
type searchState struct {
	pikevm *nfa.PikeVMState

	// dfaCache is nil when the DFA is disabled. The cache keeps its states
	// across searches of the same engine.
	dfaCache *lazy.Cache

	// tracker retires the prefilter for this state once it stops paying
	// off; nil without a prefilter
	tracker *prefilter.Tracker

	// slots is scratch space for searches that only need the overall span
	slots []int

	// found is scratch space for set searches
	found []bool
}

// searchStatePool manages a pool of searchState instances for thread-safe
// reuse, following the stdlib regexp pattern.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool(newState func() *searchState) *searchStatePool {
	p := &searchStatePool{}
	p.pool.New = func() any {
		return newState()
	}
	return p
}

func (p *searchStatePool) get() *searchState {
	return p.pool.Get().(*searchState)
}

func (p *searchStatePool) put(state *searchState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}
