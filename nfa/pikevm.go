package nfa

import (
	"github.com/coregx/re2/internal/conv"
	"github.com/coregx/re2/internal/sparse"
)

// Input describes one search: the haystack plus the window [Start, End) that
// a match must lie in. Bytes outside the window are still visible to
// assertions, so ^, $ and \b see the whole haystack.
type Input struct {
	Haystack []byte
	Start    int
	End      int

	// Anchored requires the match to begin at Start
	Anchored bool

	// AnchorEnd requires the match to end at End
	AnchorEnd bool
}

// NewInput returns an unanchored input covering the whole haystack.
func NewInput(haystack []byte) Input {
	return Input{Haystack: haystack, End: len(haystack)}
}

// PikeVMConfig selects the match semantics of a PikeVM.
type PikeVMConfig struct {
	// Longest selects leftmost-longest semantics: among matches starting at
	// the leftmost position the longest wins. Otherwise the match of the
	// highest priority thread wins (leftmost-first).
	Longest bool
}

// PikeVM simulates an NFA in lockstep over the input, one thread per NFA
// state. Each step is linear in the number of states, so a search runs in
// O(len(input) * states) time whatever the pattern.
//
// Thread safety: a PikeVM is immutable after creation. All mutable search
// memory lives in PikeVMState, which callers pool and never share between
// goroutines.
type PikeVM struct {
	nfa     *NFA
	longest bool

	// stride is the number of slots tracked per thread
	stride int
}

// NewPikeVM creates a leftmost-first PikeVM for the given NFA.
func NewPikeVM(nfa *NFA) *PikeVM {
	return NewPikeVMWithConfig(nfa, PikeVMConfig{})
}

// NewPikeVMWithConfig creates a PikeVM with explicit semantics.
func NewPikeVMWithConfig(nfa *NFA, config PikeVMConfig) *PikeVM {
	return &PikeVM{
		nfa:     nfa,
		longest: config.Longest,
		stride:  2 * nfa.CaptureCount(),
	}
}

// NFA returns the simulated automaton.
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// SlotCount returns the number of capture slots a search can fill.
func (p *PikeVM) SlotCount() int {
	return p.stride
}

// threadList is the set of live threads for one position. Thread priority
// is insertion order.
type threadList struct {
	set   *sparse.SparseSet
	slots []int
}

func newThreadList(states, stride int) threadList {
	return threadList{
		set:   sparse.NewSparseSet(conv.IntToUint32(states)),
		slots: make([]int, states*stride),
	}
}

const (
	frameExplore = iota
	frameRestore
)

// frame is an entry of the explicit epsilon closure stack. Restore frames
// undo a capture write once the branch below it has been explored.
type frame struct {
	kind uint8
	sid  StateID
	slot uint32
	val  int
}

// PikeVMState holds mutable per-search state for PikeVM.
// This struct should be pooled (via sync.Pool) for concurrent usage.
type PikeVMState struct {
	curr, next threadList
	stack      []frame
	scratch    []int
	best       []int
}

// NewState allocates search memory sized for this PikeVM's NFA.
func (p *PikeVM) NewState() *PikeVMState {
	n := p.nfa.States()
	return &PikeVMState{
		curr:    newThreadList(n, p.stride),
		next:    newThreadList(n, p.stride),
		stack:   make([]frame, 0, 16),
		scratch: make([]int, p.stride),
		best:    make([]int, p.stride),
	}
}

// IsMatch reports whether the input contains any match. It stops at the
// first match state reached and does not track capture positions.
func (p *PikeVM) IsMatch(st *PikeVMState, in Input) bool {
	return p.search(st, in, nil, true)
}

// Search finds the match selected by the configured semantics and writes its
// capture slots into slots. Slot 2*i and 2*i+1 bound group i; unset slots
// are -1. Extra slots beyond SlotCount are set to -1.
func (p *PikeVM) Search(st *PikeVMState, in Input, slots []int) bool {
	return p.search(st, in, slots, false)
}

func (p *PikeVM) search(st *PikeVMState, in Input, slots []int, earliest bool) bool {
	for i := range slots {
		slots[i] = -1
	}
	if in.Start > in.End || in.End > len(in.Haystack) {
		return false
	}

	h := in.Haystack
	curr, next := &st.curr, &st.next
	curr.set.Clear()
	next.set.Clear()
	for i := range st.best {
		st.best[i] = -1
	}

	start := p.nfa.StartAnchored()
	matched := false
	bestStart, bestEnd := -1, -1
	for pos := in.Start; pos <= in.End; pos++ {
		if !matched && (!in.Anchored || pos == in.Start) {
			for i := range st.scratch {
				st.scratch[i] = -1
			}
			p.closure(st, curr, start, pos, LooksAt(h, pos))
		}
		if curr.set.IsEmpty() {
			break
		}

		var looksNext LookSet
		if pos < in.End {
			looksNext = LooksAt(h, pos+1)
		}

	step:
		for _, v := range curr.set.Values() {
			sid := StateID(v)
			s := &p.nfa.states[sid]
			tslots := curr.slots[int(sid)*p.stride : int(sid+1)*p.stride]
			switch s.kind {
			case StateMatch:
				if in.AnchorEnd && pos != in.End {
					continue
				}
				if earliest {
					return true
				}
				if !p.longest {
					copy(st.best, tslots)
					matched = true
					// lower priority threads cannot produce a preferred match
					break step
				}
				if p.stride == 0 {
					matched = true
					continue
				}
				if !matched || tslots[0] < bestStart || (tslots[0] == bestStart && pos > bestEnd) {
					copy(st.best, tslots)
					bestStart, bestEnd = tslots[0], pos
					matched = true
				}
			case StateByteRange, StateSparse:
				if pos >= in.End {
					continue
				}
				if p.longest && matched && p.stride > 0 && tslots[0] > bestStart {
					continue
				}
				target := s.Step(h[pos])
				if target == InvalidState {
					continue
				}
				copy(st.scratch, tslots)
				p.closure(st, next, target, pos+1, looksNext)
			}
		}

		curr, next = next, curr
		next.set.Clear()
	}

	if matched {
		copy(slots, st.best)
	}
	return matched
}

// closure adds sid and every state reachable from it through epsilon moves
// to list, in priority order. st.scratch holds the slots of the thread that
// reached sid; it is restored on return.
func (p *PikeVM) closure(st *PikeVMState, list *threadList, sid StateID, pos int, looks LookSet) {
	st.stack = append(st.stack[:0], frame{kind: frameExplore, sid: sid})
	for len(st.stack) > 0 {
		f := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		if f.kind == frameRestore {
			st.scratch[f.slot] = f.val
			continue
		}

		id := f.sid
		for list.set.Insert(uint32(id)) {
			s := &p.nfa.states[id]
			switch s.kind {
			case StateMatch, StateByteRange, StateSparse:
				copy(list.slots[int(id)*p.stride:int(id+1)*p.stride], st.scratch)
			case StateEpsilon:
				id = s.next
				continue
			case StateSplit:
				st.stack = append(st.stack, frame{kind: frameExplore, sid: s.right})
				id = s.left
				continue
			case StateCapture:
				if int(s.slot) < p.stride {
					st.stack = append(st.stack, frame{kind: frameRestore, slot: s.slot, val: st.scratch[s.slot]})
					st.scratch[s.slot] = pos
				}
				id = s.next
				continue
			case StateLook:
				if looks.Contains(s.look) {
					id = s.next
					continue
				}
			}
			break
		}
	}
}

// WhichMatches marks found[i] for every pattern i with a match in the input
// and returns how many patterns matched. Unlike Search it never stops at the
// first match, except once every pattern has been found.
func (p *PikeVM) WhichMatches(st *PikeVMState, in Input, found []bool) int {
	for i := range found {
		found[i] = false
	}
	if in.Start > in.End || in.End > len(in.Haystack) {
		return 0
	}

	h := in.Haystack
	curr, next := &st.curr, &st.next
	curr.set.Clear()
	next.set.Clear()
	for i := range st.scratch {
		st.scratch[i] = -1
	}

	count := 0
	p.closure(st, curr, p.nfa.Start(in.Anchored), in.Start, LooksAt(h, in.Start))
	for pos := in.Start; pos <= in.End && !curr.set.IsEmpty(); pos++ {
		var looksNext LookSet
		if pos < in.End {
			looksNext = LooksAt(h, pos+1)
		}
		for _, v := range curr.set.Values() {
			s := &p.nfa.states[v]
			switch s.kind {
			case StateMatch:
				if in.AnchorEnd && pos != in.End {
					continue
				}
				if s.pattern < len(found) && !found[s.pattern] {
					found[s.pattern] = true
					count++
					if count == len(found) {
						return count
					}
				}
			case StateByteRange, StateSparse:
				if pos >= in.End {
					continue
				}
				if target := s.Step(h[pos]); target != InvalidState {
					p.closure(st, next, target, pos+1, looksNext)
				}
			}
		}
		curr, next = next, curr
		next.set.Clear()
	}
	return count
}
