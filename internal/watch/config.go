package watch

import "time"

// Config controls which paths trigger a regeneration.
type Config struct {
	// DebounceWindow is the quiet period before a batch is flushed.
	DebounceWindow time.Duration
	// Patterns select relevant files, matched against paths relative to the root.
	Patterns []string
	// IgnorePatterns drop paths, matched against paths relative to the root.
	IgnorePatterns []string
}

// DefaultConfig watches C++ sources and headers and ignores hidden and
// build output directories.
func DefaultConfig() Config {
	return Config{
		DebounceWindow: 300 * time.Millisecond,
		Patterns:       []string{"**/*.{cpp,h,hpp}"},
		IgnorePatterns: []string{
			"**/.*/**",
			"**/Build/**",
			"**/Binaries/**",
		},
	}
}
