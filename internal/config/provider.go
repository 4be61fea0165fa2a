package config

import (
	"strings"
)

// Environment variables consulted when resolving the provider.
const (
	EnvOllamaModel     = "OLLAMA_MODEL"
	EnvOllamaHost      = "OLLAMA_HOST"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
)

// ProviderKind identifies one of the supported model backends.
type ProviderKind int

const (
	// ProviderOllama is a local Ollama server.
	ProviderOllama ProviderKind = iota + 1

	// ProviderAnthropic is the Anthropic Messages API.
	ProviderAnthropic

	// ProviderOpenAI is the OpenAI Chat Completions API.
	ProviderOpenAI
)

// String returns the provider name used in logs and history.
func (k ProviderKind) String() string {
	switch k {
	case ProviderOllama:
		return "ollama"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderOpenAI:
		return "openai"
	default:
		return "unknown"
	}
}

// Provider is the backend selected for this process.
// It is resolved once at startup and never changes afterwards.
type Provider struct {
	// Kind is the backend type.
	Kind ProviderKind

	// Model is the model name sent to the backend.
	Model string

	// BaseURL is the backend endpoint without a trailing slash.
	BaseURL string

	// APIKey is empty for Ollama.
	APIKey string
}

// ResolveProvider selects the model backend from the environment.
// The precedence is fixed: OLLAMA_MODEL, then ANTHROPIC_API_KEY, then
// OPENAI_API_KEY. It returns ErrNoProvider when none is set, before any
// network activity takes place.
//
// getenv is usually os.Getenv; tests pass a map lookup.
func (c *Config) ResolveProvider(getenv func(string) string) (Provider, error) {
	if model := strings.TrimSpace(getenv(EnvOllamaModel)); model != "" {
		host := c.OllamaHost
		if envHost := strings.TrimSpace(getenv(EnvOllamaHost)); envHost != "" {
			host = envHost
		}
		return Provider{
			Kind:    ProviderOllama,
			Model:   model,
			BaseURL: normalizeBaseURL(host),
		}, nil
	}

	if key := strings.TrimSpace(getenv(EnvAnthropicAPIKey)); key != "" {
		return Provider{
			Kind:    ProviderAnthropic,
			Model:   c.AnthropicModel,
			BaseURL: normalizeBaseURL(c.AnthropicBaseURL),
			APIKey:  key,
		}, nil
	}

	if key := strings.TrimSpace(getenv(EnvOpenAIAPIKey)); key != "" {
		return Provider{
			Kind:    ProviderOpenAI,
			Model:   c.OpenAIModel,
			BaseURL: normalizeBaseURL(c.OpenAIBaseURL),
			APIKey:  key,
		}, nil
	}

	return Provider{}, ErrNoProvider
}

// normalizeBaseURL adds a scheme to bare "host:port" values (the usual
// OLLAMA_HOST form) and drops a trailing slash.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return raw
}
