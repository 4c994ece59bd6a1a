package mregexp

// Config controls compilation.
type Config struct {
	// MaxNodes bounds the arena of a compiled pattern. Patterns that need
	// more nodes fail with FailedAlloc. Zero or negative means no limit.
	MaxNodes int

	// Prefilter enables skipping start positions that cannot begin a match,
	// using the literals every match must start with.
	Prefilter bool
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		MaxNodes:  1 << 20,
		Prefilter: true,
	}
}
