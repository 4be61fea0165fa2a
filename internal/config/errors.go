package config

import "errors"

// Configuration errors.
// These are returned by Config.Validate and ResolveProvider so callers can
// tell configuration problems apart with errors.Is.
var (
	// ErrNoProvider is returned when none of OLLAMA_MODEL, ANTHROPIC_API_KEY
	// or OPENAI_API_KEY is set.
	ErrNoProvider = errors.New("no API key or Ollama model found: set OLLAMA_MODEL, ANTHROPIC_API_KEY or OPENAI_API_KEY")

	// ErrEmptyFfufPath is returned when --ffuf-path is set to an empty string.
	ErrEmptyFfufPath = errors.New("invalid ffuf path: must not be empty")

	// ErrNegativeMaxExtensions is returned when --max-extensions is negative.
	ErrNegativeMaxExtensions = errors.New("invalid max extensions: must be zero or positive")

	// ErrInvalidProbeTimeout is returned when the probe timeout is not positive.
	ErrInvalidProbeTimeout = errors.New("invalid probe timeout: must be positive")

	// ErrInvalidModelTimeout is returned when the model timeout is not positive.
	ErrInvalidModelTimeout = errors.New("invalid model timeout: must be positive")

	// ErrInvalidCacheTTL is returned when the cache TTL is negative.
	// Use 0 to never reuse a suggestion.
	ErrInvalidCacheTTL = errors.New("invalid cache ttl: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
