package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/ffufai/internal/llm"
	"github.com/nao1215/ffufai/internal/model"
)

// Result is the outcome of Suggest.
type Result struct {
	// Extensions holds at most the configured number of entries.
	Extensions model.Extensions

	// Cached is true when Extensions came from the store.
	Cached bool

	// Provider and Model name the backend in use.
	Provider string
	Model    string
}

// Advisor asks a model for extensions, optionally through a cache.
type Advisor struct {
	completer llm.Completer
	max       int
	store     Store
	ttl       time.Duration
	lookup    bool
	logger    *slog.Logger
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithStore records suggestions in store and reuses entries younger than ttl.
func WithStore(store Store, ttl time.Duration) Option {
	return func(a *Advisor) {
		a.store = store
		a.ttl = ttl
	}
}

// WithCacheLookup enables or disables reading from the store.
// Suggestions are still recorded when lookup is disabled.
func WithCacheLookup(enabled bool) Option {
	return func(a *Advisor) {
		a.lookup = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Advisor) {
		a.logger = logger
	}
}

// New creates an Advisor that returns at most limit extensions.
func New(completer llm.Completer, limit int, opts ...Option) *Advisor {
	a := &Advisor{
		completer: completer,
		max:       limit,
		lookup:    true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Suggest returns extensions for url.
//
// A limit of zero returns an empty list without contacting the model. A model
// failure is returned wrapped in ErrModelCall. A reply without any usable
// token is not an error: it is logged and an empty list is returned.
// Store failures are logged and otherwise ignored.
func (a *Advisor) Suggest(ctx context.Context, url string, fp *model.Fingerprint) (*Result, error) {
	result := &Result{
		Extensions: model.Extensions{},
		Provider:   a.completer.Name(),
		Model:      a.completer.Model(),
	}
	if a.max <= 0 {
		a.logger.Debug("max extensions is zero, skipping model call")
		return result, nil
	}

	key := CacheKey(result.Provider, result.Model, url, a.max)

	if cached := a.lookupCache(ctx, key); cached != nil {
		result.Extensions = cached.Extensions.Truncate(a.max)
		result.Cached = true
		a.record(ctx, key, url, result)
		return result, nil
	}

	reply, err := a.completer.Complete(ctx, SystemPrompt, BuildPrompt(url, fp, a.max))
	if errors.Is(err, llm.ErrEmptyCompletion) {
		reply, err = "", nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModelCall, result.Provider, err)
	}
	a.logger.Debug("model replied", "provider", result.Provider, "model", result.Model, "reply", reply)

	result.Extensions = ParseExtensions(reply, a.max)
	if len(result.Extensions) == 0 {
		a.logger.Warn("model reply contained no extensions", "reply", reply)
		return result, nil
	}

	a.record(ctx, key, url, result)
	return result, nil
}

func (a *Advisor) lookupCache(ctx context.Context, key string) *model.Suggestion {
	if a.store == nil || !a.lookup {
		return nil
	}
	s, err := a.store.LookupSuggestion(ctx, key, a.ttl)
	if err != nil {
		a.logger.Warn("suggestion cache lookup failed", "error", err)
		return nil
	}
	if s == nil || len(s.Extensions) == 0 {
		return nil
	}
	a.logger.Debug("using cached suggestion", "id", s.ID, "created", s.CreatedAt)
	return s
}

func (a *Advisor) record(ctx context.Context, key, url string, result *Result) {
	if a.store == nil {
		return
	}
	s := &model.Suggestion{
		CacheKey:   key,
		URL:        url,
		Provider:   result.Provider,
		Model:      result.Model,
		Extensions: result.Extensions,
		Cached:     result.Cached,
	}
	if _, err := a.store.SaveSuggestion(ctx, s); err != nil {
		a.logger.Warn("failed to record suggestion", "error", err)
	}
}
