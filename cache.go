package re2

import (
	"encoding/binary"

	lru "github.com/hashicorp/golang-lru/v2"
	"lukechampine.com/blake3"
)

// Cache holds compiled patterns, evicting the least recently used ones.
//
// Entries are keyed by a digest of the pattern and its options; the
// Options.Logger is not part of the key. Invalid patterns are cached like
// valid ones. A Cache is safe for concurrent use.
type Cache struct {
	lru *lru.Cache[[32]byte, *Regexp]
}

// NewCache returns a cache of at most size patterns.
func NewCache(size int) (*Cache, error) {
	l, err := lru.New[[32]byte, *Regexp](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Get returns the pattern compiled with opts, compiling it on a miss.
func (c *Cache) Get(pattern string, opts Options) *Regexp {
	key := cacheKey(pattern, opts)
	if re, ok := c.lru.Get(key); ok {
		return re
	}
	re := New(pattern, opts)
	c.lru.Add(key, re)
	return re
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.lru.Purge()
}

func cacheKey(pattern string, opts Options) [32]byte {
	var flags uint16
	for i, set := range []bool{
		opts.UTF8, opts.PosixSyntax, opts.LongestMatch, opts.LogErrors,
		opts.Literal, opts.NeverNL, opts.DotNL, opts.NeverCapture,
		opts.CaseSensitive, opts.PerlClasses, opts.WordBoundary, opts.OneLine,
	} {
		if set {
			flags |= 1 << i
		}
	}

	buf := make([]byte, 0, len(pattern)+16)
	buf = binary.LittleEndian.AppendUint16(buf, flags)
	buf = binary.LittleEndian.AppendUint64(buf, opts.MaxMem.Bytes())
	buf = append(buf, pattern...)
	return blake3.Sum256(buf)
}
