package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultFfufPath is resolved through PATH when ffuf is launched.
	DefaultFfufPath = "ffuf"

	// DefaultMaxExtensions keeps the ffuf request count manageable:
	// every extension multiplies the number of requests by one wordlist.
	DefaultMaxExtensions = 4

	// DefaultProbeTimeout bounds the single header probe request.
	DefaultProbeTimeout = 10 * time.Second

	// DefaultModelTimeout bounds one completion call. Local models on
	// modest hardware can take tens of seconds to answer.
	DefaultModelTimeout = 60 * time.Second

	// DefaultCacheTTL is how long a stored suggestion is reused for the
	// same URL, provider and model.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultMaxBodySize limits how much of the probe response body is read
	// for technology detection.
	DefaultMaxBodySize = 1024 * 1024 // 1MB

	// DefaultUserAgent identifies the probe request in target logs.
	DefaultUserAgent = "ffufai/1.0 (+https://github.com/nao1215/ffufai)"

	// DefaultOllamaHost is the address of a local Ollama server.
	DefaultOllamaHost = "http://localhost:11434"

	// DefaultAnthropicBaseURL is the Anthropic API endpoint.
	DefaultAnthropicBaseURL = "https://api.anthropic.com"

	// DefaultAnthropicModel is the model used with ANTHROPIC_API_KEY.
	DefaultAnthropicModel = "claude-sonnet-4-5"

	// DefaultOpenAIBaseURL is the OpenAI API endpoint.
	DefaultOpenAIBaseURL = "https://api.openai.com"

	// DefaultOpenAIModel is the model used with OPENAI_API_KEY.
	DefaultOpenAIModel = "gpt-4o"

	// AppName is the application name used for XDG directory paths.
	AppName = "ffufai"
)

// Config holds all configuration options for ffufai.
// It is populated from defaults, then the config file, then CLI flags,
// and passed down explicitly. Nothing reads the environment after startup.
type Config struct {
	// FfufPath is the ffuf executable. A bare name is looked up in PATH.
	FfufPath string

	// MaxExtensions caps the number of suggested extensions.
	// Zero disables the model call entirely.
	MaxExtensions int

	// ProbeTimeout is the timeout of the header probe request.
	ProbeTimeout time.Duration

	// ModelTimeout is the timeout of one completion call.
	ModelTimeout time.Duration

	// UserAgent is sent with the probe request unless the user passes
	// their own User-Agent to ffuf with -H.
	UserAgent string

	// MaxBodySize is the number of body bytes read by the probe.
	MaxBodySize int64

	// OllamaHost is the base URL of the local Ollama server.
	// OLLAMA_HOST overrides it.
	OllamaHost string

	// AnthropicModel and AnthropicBaseURL configure the Anthropic provider.
	AnthropicModel   string
	AnthropicBaseURL string

	// OpenAIModel and OpenAIBaseURL configure the OpenAI provider.
	OpenAIModel   string
	OpenAIBaseURL string

	// CacheTTL is the lifetime of a cached suggestion.
	CacheTTL time.Duration

	// UseCache enables suggestion cache lookups. Suggestions are recorded
	// in the history regardless.
	UseCache bool

	// Verbose enables debug logging.
	Verbose bool

	// DryRun prints the ffuf command instead of running it.
	DryRun bool

	// ConfigFilePath is the explicit --ffufai-config path, if any.
	ConfigFilePath string

	// DBDir is the directory of the suggestion database.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		FfufPath:         DefaultFfufPath,
		MaxExtensions:    DefaultMaxExtensions,
		ProbeTimeout:     DefaultProbeTimeout,
		ModelTimeout:     DefaultModelTimeout,
		UserAgent:        DefaultUserAgent,
		MaxBodySize:      DefaultMaxBodySize,
		OllamaHost:       DefaultOllamaHost,
		AnthropicModel:   DefaultAnthropicModel,
		AnthropicBaseURL: DefaultAnthropicBaseURL,
		OpenAIModel:      DefaultOpenAIModel,
		OpenAIBaseURL:    DefaultOpenAIBaseURL,
		CacheTTL:         DefaultCacheTTL,
		UseCache:         true,
		DBDir:            XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for ffufai.
// On Linux: ~/.local/share/ffufai
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for ffufai.
// On Linux: ~/.config/ffufai
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.FfufPath == "" {
		return ErrEmptyFfufPath
	}

	// Zero is allowed and means "no suggestions"
	if c.MaxExtensions < 0 {
		return ErrNegativeMaxExtensions
	}

	if c.ProbeTimeout <= 0 {
		return ErrInvalidProbeTimeout
	}

	if c.ModelTimeout <= 0 {
		return ErrInvalidModelTimeout
	}

	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
