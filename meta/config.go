// Package meta builds and runs the matching engines behind a compiled
// pattern.
//
// An Engine coordinates three searchers over one parsed pattern:
//   - Prefilter: literal search that skips to the first position where a
//     match could start (optional)
//   - Lazy DFA: answers yes/no questions without tracking any capture state
//   - PikeVM: finds match spans and capture groups; also the fallback when
//     the DFA cache is exhausted
//
// SetEngine does the same for a group of patterns compiled into one
// automaton, answering which of them match.
package meta

import "fmt"

// Config controls engine construction and resource limits.
//
// Example:
//
//	config := meta.DefaultConfig().WithMaxMemory(1 << 20)
//	engine, err := meta.Compile(`\d+`, meta.DefaultSyntax(), config)
type Config struct {
	// EnableDFA enables the lazy DFA for boolean searches and as a rejection
	// test before capture searches. When false only the PikeVM runs.
	// Default: true
	EnableDFA bool

	// EnablePrefilter enables literal prefilters.
	// Default: true
	EnablePrefilter bool

	// Longest selects leftmost-longest instead of leftmost-first matches.
	// Default: false
	Longest bool

	// MaxMemory is the budget in bytes for the compiled program and the DFA
	// cache. Two thirds go to the program, the rest to each DFA cache.
	// Default: 8 MiB
	MaxMemory int

	// MaxCacheClears is how often one search may clear a full DFA cache
	// before it gives up on the DFA.
	// Default: 5
	MaxCacheClears int

	// MaxRecursionDepth limits recursion during NFA compilation.
	// Default: 1000
	MaxRecursionDepth int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableDFA:         true,
		EnablePrefilter:   true,
		MaxMemory:         8 << 20,
		MaxCacheClears:    5,
		MaxRecursionDepth: 1000,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxMemory <= 0 {
		return &ConfigError{Field: "MaxMemory", Message: "must be > 0"}
	}
	if c.MaxCacheClears < 0 {
		return &ConfigError{Field: "MaxCacheClears", Message: "must be >= 0"}
	}
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 10_000 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be between 10 and 10,000"}
	}
	return nil
}

// WithLongest returns a copy of c with leftmost-longest semantics set.
func (c Config) WithLongest(longest bool) Config {
	c.Longest = longest
	return c
}

// WithMaxMemory returns a copy of c with the memory budget set.
func (c Config) WithMaxMemory(bytes int) Config {
	c.MaxMemory = bytes
	return c
}

// WithDFA returns a copy of c with the lazy DFA enabled or disabled.
func (c Config) WithDFA(enabled bool) Config {
	c.EnableDFA = enabled
	return c
}

// WithPrefilter returns a copy of c with prefilters enabled or disabled.
func (c Config) WithPrefilter(enabled bool) Config {
	c.EnablePrefilter = enabled
	return c
}

// programBudget is the share of MaxMemory for the NFA.
func (c Config) programBudget() int {
	return c.MaxMemory - c.MaxMemory/3
}

// cacheBudget is the share of MaxMemory for one DFA cache.
func (c Config) cacheBudget() int {
	return max(1, c.MaxMemory/3)
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("re2: invalid config: %s: %s", e.Field, e.Message)
}
