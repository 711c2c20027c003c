package lazy

// Config configures the behavior of the Lazy DFA engine.
//
// The configuration bounds the memory a single search may spend on
// determinized states. Larger caches give better hit rates on complex
// patterns; once a search exhausts its budget too often it gives up and the
// caller falls back to the PikeVM.
type Config struct {
	// MaxMemory is the state cache budget in bytes for one search.
	// When the cache outgrows it, the cache is cleared and rebuilt on demand.
	//
	// Default: 2 MiB
	MaxMemory int

	// MaxCacheClears is how many times one search may clear its cache
	// before it returns ErrCacheFull.
	//
	// Default: 5
	MaxCacheClears int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxMemory:      2 << 20,
		MaxCacheClears: 5,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxMemory <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxMemory must be > 0",
		}
	}

	if c.MaxCacheClears < 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxCacheClears must be >= 0",
		}
	}

	return nil
}

// WithMaxMemory returns a new config with the specified cache budget
func (c Config) WithMaxMemory(bytes int) Config {
	c.MaxMemory = bytes
	return c
}

// WithMaxCacheClears returns a new config with the specified clear limit
func (c Config) WithMaxCacheClears(limit int) Config {
	c.MaxCacheClears = limit
	return c
}
