package config

import "time"

// ProviderSettings holds per-provider overrides in the config file.
type ProviderSettings struct {
	// Model overrides the default model name.
	Model string `yaml:"model,omitempty"`

	// BaseURL overrides the API endpoint, e.g. for a compatible gateway.
	BaseURL string `yaml:"baseURL,omitempty"`
}

// OllamaSettings holds the local server settings in the config file.
type OllamaSettings struct {
	// Host is the Ollama base URL. OLLAMA_HOST still takes precedence.
	Host string `yaml:"host,omitempty"`
}

// File represents the structure of the .ffufai configuration file.
// Every field is optional; unset fields keep the built-in defaults.
type File struct {
	FfufPath      string           `yaml:"ffufPath,omitempty"`
	MaxExtensions *int             `yaml:"maxExtensions,omitempty"`
	ProbeTimeout  time.Duration    `yaml:"probeTimeout,omitempty"`
	ModelTimeout  time.Duration    `yaml:"modelTimeout,omitempty"`
	CacheTTL      *time.Duration   `yaml:"cacheTTL,omitempty"`
	UserAgent     string           `yaml:"userAgent,omitempty"`
	MaxBodySize   int64            `yaml:"maxBodySize,omitempty"`
	Ollama        OllamaSettings   `yaml:"ollama,omitempty"`
	Anthropic     ProviderSettings `yaml:"anthropic,omitempty"`
	OpenAI        ProviderSettings `yaml:"openai,omitempty"`
}

// Apply copies the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.FfufPath != "" {
		cfg.FfufPath = f.FfufPath
	}
	if f.MaxExtensions != nil {
		cfg.MaxExtensions = *f.MaxExtensions
	}
	if f.ProbeTimeout != 0 {
		cfg.ProbeTimeout = f.ProbeTimeout
	}
	if f.ModelTimeout != 0 {
		cfg.ModelTimeout = f.ModelTimeout
	}
	if f.CacheTTL != nil {
		cfg.CacheTTL = *f.CacheTTL
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.MaxBodySize != 0 {
		cfg.MaxBodySize = f.MaxBodySize
	}
	if f.Ollama.Host != "" {
		cfg.OllamaHost = f.Ollama.Host
	}
	if f.Anthropic.Model != "" {
		cfg.AnthropicModel = f.Anthropic.Model
	}
	if f.Anthropic.BaseURL != "" {
		cfg.AnthropicBaseURL = f.Anthropic.BaseURL
	}
	if f.OpenAI.Model != "" {
		cfg.OpenAIModel = f.OpenAI.Model
	}
	if f.OpenAI.BaseURL != "" {
		cfg.OpenAIBaseURL = f.OpenAI.BaseURL
	}
}
