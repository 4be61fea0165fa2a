package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/nao1215/ffufai/internal/config"
)

// Ollama is a local Ollama server reached through /api/generate.
type Ollama struct {
	backend
	client *api.Client
}

func newOllama(b backend, p config.Provider, httpClient *http.Client) (*Ollama, error) {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", p.BaseURL, err)
	}
	return &Ollama{backend: b, client: api.NewClient(base, httpClient)}, nil
}

// Complete implements Completer.
func (o *Ollama) Complete(ctx context.Context, system, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		System: system,
		Prompt: prompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			return "", &APIError{
				Provider:   o.provider,
				StatusCode: statusErr.StatusCode,
				Message:    truncate(statusErr.ErrorMessage, maxMessageSize),
			}
		}
		return "", fmt.Errorf("%s request failed: %w", o.provider, err)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
