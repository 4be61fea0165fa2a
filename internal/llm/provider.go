package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nao1215/ffufai/internal/config"
)

// Completer sends one prompt to a model and returns its text reply.
type Completer interface {
	// Complete returns the model's reply to prompt under the given system
	// instructions.
	Complete(ctx context.Context, system, prompt string) (string, error)

	// Name returns the provider name for logs and history.
	Name() string

	// Model returns the model name in use.
	Model() string
}

// Option configures a Completer created by New.
type Option func(*options)

type options struct {
	client  *http.Client
	timeout time.Duration
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithTimeout bounds every completion request.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// backend holds the naming shared by every Completer.
type backend struct {
	provider string
	model    string
}

// Name returns the provider name.
func (b *backend) Name() string {
	return b.provider
}

// Model returns the model name.
func (b *backend) Model() string {
	return b.model
}

// New creates the Completer for the resolved provider.
// The SDK clients never retry: a failed call is reported at once.
func New(p config.Provider, opts ...Option) (Completer, error) {
	o := &options{
		timeout: config.DefaultModelTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.client == nil {
		o.client = &http.Client{Timeout: o.timeout}
	}

	b := backend{provider: p.Kind.String(), model: p.Model}

	switch p.Kind {
	case config.ProviderOllama:
		return newOllama(b, p, o.client)
	case config.ProviderAnthropic:
		return newAnthropic(b, p, o.client), nil
	case config.ProviderOpenAI:
		return newOpenAI(b, p, o.client), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownProvider, p.Kind)
	}
}
