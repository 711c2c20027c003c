package prefilter

// Tracker wraps a Prefilter and retires it once its candidates stop paying
// off.
//
// A candidate is confirmed when the search started from it finds a match.
// Searches that follow an unconfirmed candidate did the prefilter scan and
// the full scan, so a prefilter that keeps producing unconfirmed candidates
// only adds work. Once the ratio of confirms to candidates drops below the
// configured minimum the tracker stops reporting candidates and callers fall
// back to plain automaton search.
//
// A Tracker is not safe for concurrent use. Keep one per pooled search state.
//
// Example usage:
//
//	tracker := prefilter.NewTracker(pf)
//	if tracker.IsActive() {
//	    if at := tracker.Find(haystack, start); at < 0 {
//	        return false
//	    } else {
//	        start = at
//	    }
//	}
//	if search(haystack, start) {
//	    tracker.ConfirmMatch()
//	}
type Tracker struct {
	inner  Prefilter
	config TrackerConfig

	candidates     uint64
	confirms       uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness, in candidates.
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of confirms to
	// candidates.
	// Default: 0.1
	MinEfficiency float64

	// WarmupPeriod is the number of candidates seen before the first check.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker with the default configuration.
// Returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
// Returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	if config.CheckInterval == 0 {
		config.CheckInterval = 1
	}
	return &Tracker{inner: inner, config: config, active: true}
}

// Find returns the next candidate position, or -1 if there is none. Callers
// must check IsActive first: a retired tracker reports no candidates.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.check()
	}
	return pos
}

// ConfirmMatch records that the last candidate led to a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive returns true while the prefilter is in use.
func (t *Tracker) IsActive() bool {
	return t != nil && t.active
}

// IsComplete delegates to the wrapped prefilter.
func (t *Tracker) IsComplete() bool {
	return t.inner.IsComplete()
}

// HeapBytes delegates to the wrapped prefilter.
func (t *Tracker) HeapBytes() int {
	return t.inner.HeapBytes()
}

// Stats returns the current tracking statistics.
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	if t.candidates > 0 {
		efficiency = float64(t.confirms) / float64(t.candidates)
	}
	return t.candidates, t.confirms, efficiency, t.active
}

// Reset clears the statistics and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

// Inner returns the wrapped prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

func (t *Tracker) check() {
	if t.candidates < t.config.WarmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.config.CheckInterval {
		return
	}
	t.lastCheckpoint = t.candidates
	if float64(t.confirms)/float64(t.candidates) < t.config.MinEfficiency {
		t.active = false
	}
}
