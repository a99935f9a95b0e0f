package graph

// Config controls which declarations the inspectors record. It is captured
// once per run and never mutated afterwards.
type Config struct {
	IncludePrivate bool // Keep single-leading-underscore names as subjects
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() *Config {
	return &Config{}
}
