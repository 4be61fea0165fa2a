package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/nao1215/ffufai/internal/config"
)

// anthropicMaxTokens is plenty for a short comma-separated list.
const anthropicMaxTokens = 256

// Anthropic is the Anthropic Messages API.
type Anthropic struct {
	backend
	client anthropic.Client
}

func newAnthropic(b backend, p config.Provider, httpClient *http.Client) *Anthropic {
	return &Anthropic{
		backend: b,
		client: anthropic.NewClient(
			option.WithAPIKey(p.APIKey),
			option.WithBaseURL(p.BaseURL+"/"),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
	}
}

// Complete implements Completer.
func (a *Anthropic) Complete(ctx context.Context, system, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", newAPIError(a.provider, apiErr.StatusCode, apiErr.RawJSON())
		}
		return "", fmt.Errorf("%s request failed: %w", a.provider, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
