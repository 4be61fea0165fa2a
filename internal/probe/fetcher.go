package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/ffufai/internal/model"
)

// Prober returns a fingerprint for a URL. Implementations never fail;
// problems are logged and reported as an empty fingerprint.
type Prober interface {
	Fetch(ctx context.Context, rawURL string) *model.Fingerprint
}

// Fetcher performs the header probe with a single GET request.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	timeout     time.Duration
	headers     map[string]string
	cookie      string
	proxyURL    string
	detector    Detector
	logger      *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout of the probe request.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// WithUserAgent sets the default User-Agent header.
// A User-Agent passed with WithHeaders wins.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits how much of the body is read for detection.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithHeaders adds headers to the probe request, typically ffuf's -H values.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithCookie adds a raw Cookie header, typically ffuf's -b value.
func WithCookie(cookie string) Option {
	return func(f *Fetcher) {
		f.cookie = cookie
	}
}

// WithProxy routes the probe through an http://, https:// or socks5:// proxy,
// typically ffuf's -x value.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) {
		f.proxyURL = proxyURL
	}
}

// WithDetector sets the technology detector. Nil disables detection.
func WithDetector(d Detector) Option {
	return func(f *Fetcher) {
		f.detector = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client. The proxy option is ignored
// when a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// New creates a Fetcher. It fails only when the proxy URL is unusable;
// callers should then skip the probe rather than bypass the proxy.
func New(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		maxBodySize: 1024 * 1024,
		timeout:     10 * time.Second,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	if f.client == nil {
		transport, err := newTransport(f.proxyURL)
		if err != nil {
			return nil, err
		}
		f.client = &http.Client{
			Transport: transport,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	return f, nil
}

// Fetch probes rawURL and returns its fingerprint.
// No retries are made; the request is bounded by the configured timeout.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) *model.Fingerprint {
	fp, err := f.fetch(ctx, rawURL)
	if err != nil {
		f.logger.Warn("error fetching headers, continuing without them", "url", rawURL, "error", err)
		return model.NewEmptyFingerprint(rawURL)
	}
	return fp
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (*model.Fingerprint, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	f.applyHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	fp := &model.Fingerprint{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Headers:    model.NewHeaderSet(resp.Header),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		// Headers are what matters; a truncated body only weakens detection.
		f.logger.Debug("failed to read probe body", "url", rawURL, "error", err)
	}

	fp.Title = extractTitle(resp.Header.Get("Content-Type"), body)
	if f.detector != nil {
		fp.Technologies = f.detector.Detect(resp.Header, body)
	}

	f.logger.Debug("probe completed",
		"url", rawURL,
		"status", resp.StatusCode,
		"headers", len(fp.Headers),
		"technologies", fp.Technologies,
	)

	return fp, nil
}

// applyHeaders adds the default User-Agent and the user's ffuf headers and
// cookie to the first request only. On redirects net/http copies them on,
// dropping Authorization and Cookie when the target host changes.
func (f *Fetcher) applyHeaders(req *http.Request) {
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	for key, value := range f.headers {
		if http.CanonicalHeaderKey(key) == "Host" {
			req.Host = value
			continue
		}
		req.Header.Set(key, value)
	}
	if f.cookie != "" {
		if existing := req.Header.Get("Cookie"); existing != "" {
			req.Header.Set("Cookie", existing+"; "+f.cookie)
		} else {
			req.Header.Set("Cookie", f.cookie)
		}
	}
}

// Noop is a Prober that never touches the network.
// It is used when the probe cannot be set up safely.
type Noop struct{}

// Fetch returns an empty fingerprint.
func (Noop) Fetch(_ context.Context, rawURL string) *model.Fingerprint {
	return model.NewEmptyFingerprint(rawURL)
}
