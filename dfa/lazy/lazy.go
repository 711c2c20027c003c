// Package lazy implements a Lazy DFA (Deterministic Finite Automaton) engine
// for regex matching.
//
// The Lazy DFA constructs DFA states on-demand during matching, rather than
// building the complete DFA upfront. This provides:
//   - Fast matching: one table lookup per input byte once states are cached
//   - Bounded memory: states live in a per-search cache with a byte budget
//   - Graceful degradation: ErrCacheFull tells the caller to use the PikeVM
//
// The DFA answers yes/no questions only: whether the input matches, and which
// patterns of a multi-pattern NFA match. Match positions and submatches are
// left to the PikeVM.
//
// Example usage:
//
//	d, err := lazy.New(program, lazy.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	cache := d.NewCache()
//	matched, err := d.IsMatch(cache, nfa.NewInput([]byte("test foo123 end")))
//	if errors.Is(err, lazy.ErrCacheFull) {
//	    // answer with the PikeVM instead
//	}
package lazy

import (
	"slices"

	"github.com/coregx/re2/nfa"
)

// DFA is a Lazy DFA engine that performs on-demand determinization.
//
// Thread safety: a DFA is immutable and may be shared. All mutable state
// lives in Cache, one per goroutine.
type DFA struct {
	nfa    *nfa.NFA
	config Config

	// byteClasses maps bytes to equivalence classes for alphabet reduction.
	// Bytes in the same class have identical transitions in all DFA states.
	byteClasses *nfa.ByteClasses

	// representatives holds one byte per class
	representatives []byte

	// alphabetLen is the number of byte classes; class alphabetLen is the
	// end of input
	alphabetLen int

	// hasLooks is false when no state depends on context, so the look-behind
	// kind can be ignored and fewer states are built
	hasLooks bool
}

// New creates a lazy DFA over the given NFA.
func New(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	classes := n.ByteClasses()
	return &DFA{
		nfa:             n,
		config:          config,
		byteClasses:     classes,
		representatives: classes.Representatives(),
		alphabetLen:     classes.AlphabetLen(),
		hasLooks:        !n.LookSet().IsEmpty(),
	}, nil
}

// NFA returns the source automaton.
func (d *DFA) NFA() *nfa.NFA {
	return d.nfa
}

// Config returns the DFA configuration.
func (d *DFA) Config() Config {
	return d.config
}

// NewCache allocates an empty state cache for this DFA.
func (d *DFA) NewCache() *Cache {
	return newCache(d.nfa.States())
}

// IsMatch reports whether the input contains a match. It stops at the first
// match position unless in.AnchorEnd requires the match to end at in.End.
//
// ErrCacheFull means the answer is unknown.
func (d *DFA) IsMatch(c *Cache, in nfa.Input) (bool, error) {
	if in.Start > in.End || in.End > len(in.Haystack) {
		return false, nil
	}
	c.clearCount = 0

	id, err := d.startState(c, in)
	if err != nil {
		return false, err
	}
	h := in.Haystack
	for p := in.Start; p < in.End; p++ {
		id, err = d.next(c, id, int(d.byteClasses.Get(h[p])))
		if err != nil {
			return false, err
		}
		s := c.state(id)
		if !in.AnchorEnd && s.IsMatch() {
			return true, nil
		}
		if s.IsDead() {
			return false, nil
		}
	}

	id, err = d.next(c, id, d.endClass(in))
	if err != nil {
		return false, err
	}
	return c.state(id).IsMatch(), nil
}

// WhichMatches marks found[i] for every pattern i that matches the input and
// returns the number of patterns found. With in.AnchorEnd only matches
// ending at in.End count.
//
// ErrCacheFull means the answer is unknown.
func (d *DFA) WhichMatches(c *Cache, in nfa.Input, found []bool) (int, error) {
	for i := range found {
		found[i] = false
	}
	if in.Start > in.End || in.End > len(in.Haystack) {
		return 0, nil
	}
	c.clearCount = 0

	count := 0
	record := func(s *State) {
		for _, m := range s.matches {
			if m < len(found) && !found[m] {
				found[m] = true
				count++
			}
		}
	}

	id, err := d.startState(c, in)
	if err != nil {
		return 0, err
	}
	h := in.Haystack
	for p := in.Start; p < in.End; p++ {
		id, err = d.next(c, id, int(d.byteClasses.Get(h[p])))
		if err != nil {
			return 0, err
		}
		s := c.state(id)
		if !in.AnchorEnd {
			record(s)
			if count == len(found) {
				return count, nil
			}
		}
		if s.IsDead() {
			return count, nil
		}
	}

	id, err = d.next(c, id, d.endClass(in))
	if err != nil {
		return 0, err
	}
	record(c.state(id))
	return count, nil
}

// endClass is the transition that reports matches at in.End: the class of
// the byte after the window when there is one, so assertions see it, or the
// end of input class.
func (d *DFA) endClass(in nfa.Input) int {
	if in.End < len(in.Haystack) {
		return int(d.byteClasses.Get(in.Haystack[in.End]))
	}
	return d.alphabetLen
}

func (d *DFA) startState(c *Cache, in nfa.Input) (StateID, error) {
	kind := StartNonWord
	if d.hasLooks {
		kind = kindAt(in.Haystack, in.Start)
	}
	if id := c.starts.get(kind, in.Anchored); id != InvalidState {
		return id, nil
	}

	c.next.clear()
	c.core = c.core[:0]
	d.epsilonClosure(c, d.nfa.Start(in.Anchored))
	slices.Sort(c.core)
	id, err := d.add(c, kind, nil)
	if err != nil {
		return InvalidState, err
	}
	c.starts.set(kind, in.Anchored, id)
	return id, nil
}

// next returns the state reached from id on the given byte class, computing
// and caching it on first use.
func (d *DFA) next(c *Cache, id StateID, class int) (StateID, error) {
	s := c.state(id)
	if t := s.transitions[class]; t != InvalidState {
		return t, nil
	}

	b := nfa.TextEdge
	kind := StartNonWord
	if class < d.alphabetLen {
		rep := d.representatives[class]
		b = int(rep)
		if d.hasLooks {
			kind = kindOfByte(rep)
		}
	}

	c.closure.clear()
	c.next.clear()
	c.core = c.core[:0]
	c.matches = c.matches[:0]
	d.resolve(c, s, nfa.LooksBetween(s.kind.prevByte(), b), b)

	slices.Sort(c.matches)
	c.matches = slices.Compact(c.matches)
	slices.Sort(c.core)

	before := c.clearCount
	t, err := d.add(c, kind, c.matches)
	if err != nil {
		return InvalidState, err
	}
	if c.clearCount == before {
		s.transitions[class] = t
	}
	return t, nil
}

// add interns the state made of c.core, clearing the cache when it outgrows
// its budget.
func (d *DFA) add(c *Cache, kind StartKind, matches []int) (StateID, error) {
	stride := d.alphabetLen + 1
	id, existed := c.lookup(kind, matches, c.core, stride)
	if existed || c.memory <= d.config.MaxMemory || len(c.states) == 1 {
		return id, nil
	}

	c.clear()
	c.clearCount++
	if c.clearCount > d.config.MaxCacheClears {
		return InvalidState, ErrCacheFull
	}
	id, _ = c.lookup(kind, matches, c.core, stride)
	return id, nil
}

// resolve decides the pending assertions of s with looks, collects the
// patterns that match before byte b, and steps the byte-consuming states
// over b into c.core. b is nfa.TextEdge at the end of input.
func (d *DFA) resolve(c *Cache, s *State, looks nfa.LookSet, b int) {
	c.stack = append(c.stack[:0], s.nfaStates...)
	for len(c.stack) > 0 {
		id := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		if !c.closure.insert(id) {
			continue
		}

		st := d.nfa.State(id)
		switch st.Kind() {
		case nfa.StateMatch:
			c.matches = append(c.matches, st.Pattern())
		case nfa.StateByteRange, nfa.StateSparse:
			if b == nfa.TextEdge {
				continue
			}
			if t := st.Step(byte(b)); t != nfa.InvalidState {
				d.epsilonClosure(c, t)
			}
		case nfa.StateLook:
			if look, next := st.Look(); looks.Contains(look) {
				c.stack = append(c.stack, next)
			}
		case nfa.StateEpsilon:
			c.stack = append(c.stack, st.Epsilon())
		case nfa.StateSplit:
			left, right := st.Split()
			c.stack = append(c.stack, right, left)
		case nfa.StateCapture:
			_, next := st.Capture()
			c.stack = append(c.stack, next)
		}
	}
}

// epsilonClosure adds to c.core the states reachable from sid without
// consuming input. Assertions are not crossed; Look states stay pending
// until the next byte is known.
func (d *DFA) epsilonClosure(c *Cache, sid nfa.StateID) {
	c.estack = append(c.estack[:0], sid)
	for len(c.estack) > 0 {
		id := c.estack[len(c.estack)-1]
		c.estack = c.estack[:len(c.estack)-1]
		if !c.next.insert(id) {
			continue
		}

		st := d.nfa.State(id)
		switch st.Kind() {
		case nfa.StateMatch, nfa.StateByteRange, nfa.StateSparse, nfa.StateLook:
			c.core = append(c.core, id)
		case nfa.StateEpsilon:
			c.estack = append(c.estack, st.Epsilon())
		case nfa.StateSplit:
			left, right := st.Split()
			c.estack = append(c.estack, right, left)
		case nfa.StateCapture:
			_, next := st.Capture()
			c.estack = append(c.estack, next)
		}
	}
}
