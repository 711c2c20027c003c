package nfa

// utf8SuffixCache deduplicates the byte range states of compiled classes.
//
// Multi-byte sequences mostly end in the same continuation ranges, so
// sibling trie branches would otherwise each get their own copy of states
// like [80-BF] -> next. Two range states with the same bounds and target
// are interchangeable, and class states are never patched, so one can
// stand for all.
type utf8SuffixCache struct {
	states map[utf8SuffixKey]StateID
}

type utf8SuffixKey struct {
	next   StateID
	lo, hi byte
}

func newUTF8SuffixCache() *utf8SuffixCache {
	return &utf8SuffixCache{states: make(map[utf8SuffixKey]StateID)}
}

// clear forgets every state; it must run whenever the builder changes.
func (c *utf8SuffixCache) clear() {
	clear(c.states)
}

// getOrAdd returns a state matching [lo, hi] then moving to next, adding
// one to b only when no equal state was cached.
func (c *utf8SuffixCache) getOrAdd(b *Builder, lo, hi byte, next StateID) StateID {
	key := utf8SuffixKey{next: next, lo: lo, hi: hi}
	if id, ok := c.states[key]; ok {
		return id
	}
	id := b.AddByteRange(lo, hi, next)
	c.states[key] = id
	return id
}
