package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nao1215/ffufai/internal/config"
)

// OpenAI is the OpenAI Chat Completions API.
type OpenAI struct {
	backend
	client openai.Client
}

func newOpenAI(b backend, p config.Provider, httpClient *http.Client) *OpenAI {
	return &OpenAI{
		backend: b,
		client: openai.NewClient(
			option.WithAPIKey(p.APIKey),
			option.WithBaseURL(p.BaseURL+"/v1/"),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
	}
}

// Complete implements Completer.
func (o *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: messages,
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", newAPIError(o.provider, apiErr.StatusCode, apiErr.RawJSON())
		}
		return "", fmt.Errorf("%s request failed: %w", o.provider, err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
