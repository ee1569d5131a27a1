package adminclient

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gupshup/adminclient/internal/transport"
)

// clientConfig holds mutable state during Client construction.
type clientConfig struct {
	exec           *transport.Executor
	prefix         string
	timeout        time.Duration
	retryAttempts  int
	retryBaseDelay time.Duration
	maxConcurrent  int
	tokens         TokenSource
	logger         *slog.Logger
	authHandler    AuthHandler
}

// Option is a function that configures a [Client] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithHTTPClient], [WithTimeout], [WithRetryAttempts],
// [WithRetryBaseDelay], [WithMaxConcurrent], [WithTokenSource],
// [WithLogger], [WithAuthHandler], [WithPathPrefix].
type Option func(*clientConfig) error

// WithHTTPClient sets a custom *http.Client for all requests.
//
// Use this to control TLS configuration, proxies, or to inject a test
// transport. When not specified, the SDK builds a client with pooled
// connections and a cookie jar for session credentials.
//
// Returns an error if the client is nil.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *clientConfig) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		cfg.exec = transport.NewExecutorWithClient(client)
		return nil
	}
}

// WithTimeout sets the per-request timeout.
//
// The timeout applies to each individual attempt; a retried request gets a
// fresh timeout window per attempt. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithRetryAttempts sets the total attempt ceiling for retryable failures.
//
// A value of 1 disables retries entirely. Non-retryable failures
// (auth-required, permission-denied, validation, request-failed) are always
// attempted exactly once regardless of this setting. Defaults to 3.
//
// Returns an error if the value is less than 1.
func WithRetryAttempts(n int) Option {
	return func(cfg *clientConfig) error {
		if n < 1 {
			return errors.New("retry attempts must be at least 1")
		}
		cfg.retryAttempts = n
		return nil
	}
}

// WithRetryBaseDelay sets the base delay for linear retry backoff.
//
// The delay before retry n is base × n: with the default 1 second base,
// the pipeline waits 1s before the second attempt and 2s before the third.
//
// Returns an error if the duration is negative.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d < 0 {
			return errors.New("retry base delay cannot be negative")
		}
		cfg.retryBaseDelay = d
		return nil
	}
}

// WithMaxConcurrent sets the maximum number of simultaneous in-flight
// requests.
//
// Callers beyond the limit block in the concurrency gate until a slot
// frees or their context is cancelled. Each retry attempt re-acquires a
// slot, so a backing-off request does not starve other callers.
// Defaults to 5.
//
// Returns an error if the value is zero or negative.
func WithMaxConcurrent(n int) Option {
	return func(cfg *clientConfig) error {
		if n <= 0 {
			return errors.New("max concurrent must be positive")
		}
		cfg.maxConcurrent = n
		return nil
	}
}

// WithTokenSource sets the CSRF token source.
//
// Every request carries the current token in the X-CSRFToken header. Wrap
// a source with [CachedTokenSource] to tolerate server-side rotation
// without fetching on every call. When no source is configured, requests
// are sent without a CSRF header (useful against test servers).
func WithTokenSource(src TokenSource) Option {
	return func(cfg *clientConfig) error {
		if src == nil {
			return errors.New("token source cannot be nil")
		}
		cfg.tokens = src
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the client.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithAuthHandler registers a handler for authentication failures.
//
// The handler runs at most once per client lifetime, on the first request
// that fails with [KindAuthRequired]. See [AuthHandler] for the contract.
// Nil handlers are silently ignored.
func WithAuthHandler(h AuthHandler) Option {
	return func(cfg *clientConfig) error {
		cfg.authHandler = h
		return nil
	}
}

// WithPathPrefix overrides the admin API path prefix.
//
// Defaults to "/admin-panel/api/". Use this when the deployment mounts the
// admin panel under a non-standard path.
//
// Returns an error if the prefix is empty.
func WithPathPrefix(prefix string) Option {
	return func(cfg *clientConfig) error {
		if prefix == "" {
			return errors.New("path prefix cannot be empty")
		}
		cfg.prefix = prefix
		return nil
	}
}
