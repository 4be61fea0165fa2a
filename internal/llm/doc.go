// Package llm talks to the language model backends that suggest extensions.
//
// Three backends are supported, each through its vendor's Go client: a
// local Ollama server (github.com/ollama/ollama/api), the Anthropic
// Messages API (github.com/anthropics/anthropic-sdk-go) and the OpenAI Chat
// Completions API (github.com/openai/openai-go). Exactly one is chosen per
// process (see config.ResolveProvider) and each request is a single
// non-streaming completion without retries.
//
// Non-2xx answers are reported as *APIError whatever the backend.
package llm
