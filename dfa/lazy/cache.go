package lazy

import (
	"github.com/coregx/re2/internal/conv"
	"github.com/coregx/re2/nfa"
)

// Cache holds the determinized states of one DFA for one search at a time.
//
// Thread safety: a Cache is not safe for concurrent use. Pool caches and give
// each goroutine its own.
//
// Memory management:
//   - States are never evicted individually (no LRU overhead)
//   - When the budget is exceeded the cache is cleared entirely and the
//     search continues, rebuilding states on demand
//   - After too many clears the search gives up with ErrCacheFull
type Cache struct {
	states []*State
	index  map[string]StateID
	starts startTable

	// memory is the running estimate of cache size in bytes
	memory int

	// clearCount tracks how many times the cache has been cleared during
	// the current search
	clearCount int

	// scratch space for determinization
	closure *stateSet
	next    *stateSet
	stack   []nfa.StateID
	estack  []nfa.StateID
	core    []nfa.StateID
	matches []int
	key     []byte
}

func newCache(states int) *Cache {
	c := &Cache{
		index:   make(map[string]StateID),
		closure: newStateSet(states),
		next:    newStateSet(states),
	}
	c.starts.reset()
	return c
}

// Size returns the current number of states in the cache
func (c *Cache) Size() int {
	return len(c.states)
}

// MemoryUsage returns the estimated size of the cached states in bytes
func (c *Cache) MemoryUsage() int {
	return c.memory
}

// ClearCount returns how many times the cache has been cleared during the
// current search.
func (c *Cache) ClearCount() int {
	return c.clearCount
}

// Reset drops every state and the clear counter. Called at the start of
// each new search to give the DFA a fresh budget.
func (c *Cache) Reset() {
	c.clear()
	c.clearCount = 0
}

// clear removes all states but keeps the allocated memory for reuse. Every
// previously returned StateID becomes stale.
func (c *Cache) clear() {
	clear(c.index)
	for i := range c.states {
		c.states[i] = nil
	}
	c.states = c.states[:0]
	c.starts.reset()
	c.memory = 0
}

func (c *Cache) state(id StateID) *State {
	return c.states[id]
}

// lookup returns the state with the given contents, adding it if needed.
// nfaStates and matches are copied.
func (c *Cache) lookup(kind StartKind, matches []int, nfaStates []nfa.StateID, stride int) (StateID, bool) {
	c.key = stateKey(c.key, kind, matches, nfaStates)
	if id, ok := c.index[string(c.key)]; ok {
		return id, true
	}

	s := &State{
		id:          StateID(conv.IntToUint32(len(c.states))),
		kind:        kind,
		nfaStates:   append([]nfa.StateID(nil), nfaStates...),
		transitions: make([]StateID, stride),
	}
	if len(matches) > 0 {
		s.matches = append([]int(nil), matches...)
	}
	for i := range s.transitions {
		s.transitions[i] = InvalidState
	}
	key := string(c.key)
	c.index[key] = s.id
	c.states = append(c.states, s)
	c.memory += s.memoryUsage(len(key))
	return s.id, false
}
