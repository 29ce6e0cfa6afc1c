package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/nao1215/docscore/internal/config"
)

// Fetcher downloads documentation pages with retry and backoff.
// A Fetcher is safe for concurrent use.
type Fetcher struct {
	// client performs the HTTP requests. Per-request deadlines come from
	// the context passed to Fetch.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxRetries is the number of retries after the first attempt.
	maxRetries int

	// backoffBase is the delay before the first retry. Each further retry
	// doubles it, up to backoffMax.
	backoffBase time.Duration
	backoffMax  time.Duration

	// minContentLength is the minimum visible text length of a page.
	minContentLength int

	// maxBodySize limits the bytes read from a response. 0 means unlimited.
	maxBodySize int64

	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		if n >= 0 {
			f.maxRetries = n
		}
	}
}

// WithBackoff sets the first retry delay and the delay cap.
func WithBackoff(base, maxDelay time.Duration) Option {
	return func(f *Fetcher) {
		f.backoffBase = base
		f.backoffMax = maxDelay
	}
}

// WithMinContentLength sets the minimum visible text length.
func WithMinContentLength(n int) Option {
	return func(f *Fetcher) {
		f.minContentLength = n
	}
}

// WithMaxBodySize sets the maximum number of body bytes read.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher with the default retry policy.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:           &http.Client{},
		userAgent:        config.DefaultUserAgent,
		maxRetries:       config.DefaultMaxRetries,
		backoffBase:      config.DefaultBackoffBase,
		backoffMax:       config.DefaultBackoffMax,
		minContentLength: config.DefaultMinContentLength,
		maxBodySize:      config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// NewFromConfig creates a Fetcher from the fetch settings in cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) *Fetcher {
	base := []Option{
		WithUserAgent(cfg.UserAgent),
		WithMaxRetries(cfg.MaxRetries),
		WithBackoff(cfg.BackoffBase, cfg.BackoffMax),
		WithMinContentLength(cfg.MinContentLength),
		WithMaxBodySize(cfg.MaxBodySize),
	}
	return New(append(base, opts...)...)
}

// Fetch downloads rawURL and returns the body of the first successful
// response. Transient failures are retried; the returned NetworkError
// carries the number of attempts and the last status code.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}

	var (
		lastErr    error
		lastStatus int
		attempts   int
	)

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.backoff(attempt - 1)
			f.logger.Debug("retrying fetch",
				"url", rawURL,
				"attempt", attempt+1,
				"delay", delay,
				"error", lastErr,
			)
			if err := sleep(ctx, delay); err != nil {
				return nil, &NetworkError{URL: rawURL, StatusCode: lastStatus, Attempts: attempts, Err: err}
			}
		}

		attempts++
		body, status, err := f.get(ctx, rawURL)
		if status != 0 {
			lastStatus = status
		}
		if err == nil {
			return f.checkContent(rawURL, body)
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(status) {
			break
		}
	}

	return nil, &NetworkError{URL: rawURL, StatusCode: lastStatus, Attempts: attempts, Err: lastErr}
}

// get performs a single request. status is 0 when no response arrived.
func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort
		return nil, resp.StatusCode, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var reader io.Reader = resp.Body
	if f.maxBodySize > 0 {
		reader = io.LimitReader(resp.Body, f.maxBodySize)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		// A truncated body is treated like a transport failure.
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// checkContent rejects pages whose visible text is below the minimum.
func (f *Fetcher) checkContent(rawURL string, body []byte) ([]byte, error) {
	if f.minContentLength <= 0 {
		return body, nil
	}
	if n := VisibleTextLength(body); n < f.minContentLength {
		return nil, &InsufficientContentError{URL: rawURL, Length: n, Minimum: f.minContentLength}
	}
	return body, nil
}

// backoff returns the delay before retry number n (0-based).
func (f *Fetcher) backoff(n int) time.Duration {
	delay := f.backoffBase
	for i := 0; i < n; i++ {
		delay *= 2
		if f.backoffMax > 0 && delay >= f.backoffMax {
			return f.backoffMax
		}
	}
	if f.backoffMax > 0 && delay > f.backoffMax {
		return f.backoffMax
	}
	return delay
}

// retryable reports whether a failed attempt with the given status may
// succeed on retry. Status 0 means a transport error.
func retryable(status int) bool {
	switch {
	case status == 0:
		return true
	case status >= 500:
		return true
	case status == http.StatusRequestTimeout,
		status == http.StatusTooEarly,
		status == http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// validateURL checks that rawURL is an absolute http or https URL.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
