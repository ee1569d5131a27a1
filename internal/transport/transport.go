package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits to prevent resource exhaustion when many
// facade calls are issued against the same admin host
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// Response holds the result of a single HTTP request made by [Executor].
//
// Response captures the body (limited to 1MB), status code, latency, and
// any transport error. A non-nil Error means no usable HTTP response was
// received; a nil Error with a non-2xx StatusCode is a server-side failure
// that the caller classifies.
type Response struct {
	// Body contains the HTTP response body, limited to 1MB.
	Body []byte

	// StatusCode is the HTTP status code (e.g., 200, 403, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error contains any transport-level error (DNS, connect, timeout,
	// body read). nil indicates a complete HTTP exchange.
	Error error
}

// Executor is the HTTP client wrapper that performs single admin API calls.
//
// Executor uses per-request timeouts via context rather than a global
// client timeout, so each retry attempt gets a fresh timeout window. A
// cookie jar is attached so session cookies set by the admin backend are
// carried on subsequent requests, matching browser same-origin credential
// behaviour.
type Executor struct {
	httpClient *http.Client
}

// NewExecutor creates an [Executor] with pooled connections and a cookie jar.
//
// Connection pooling configuration:
//   - MaxIdleConns: 100 total idle connections
//   - MaxIdleConnsPerHost: 10 idle connections per host
//   - MaxConnsPerHost: 10 concurrent connections per host
//   - IdleConnTimeout: 60 seconds before closing idle connections
func NewExecutor() *Executor {
	// cookiejar.New only errors on invalid PublicSuffixList options; with
	// nil options it cannot fail
	jar, _ := cookiejar.New(nil)
	return &Executor{
		httpClient: &http.Client{
			Jar: jar,
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// NewExecutorWithClient creates an [Executor] backed by the provided
// *http.Client. Used when the embedding application needs to control TLS,
// proxies, or testing transports. The client is used as-is; no jar or
// transport configuration is applied.
func NewExecutorWithClient(client *http.Client) *Executor {
	return &Executor{httpClient: client}
}

// Do performs one HTTP request and returns a structured [Response].
//
// The timeout is applied via context cancellation, so a caller-supplied
// deadline shorter than timeout still wins. Response bodies are limited to
// 1MB. Do always returns a Response; transport errors are captured in the
// Error field rather than returned separately, which keeps the retry loop
// in the caller straightforward.
func (e *Executor) Do(ctx context.Context, method, url string, headers map[string]string, body []byte, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	limitedReader := io.LimitReader(resp.Body, maxResponseBodySize)
	respBody, err := io.ReadAll(limitedReader)
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{
		Body:       respBody,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close closes all idle connections in the executor's connection pool.
//
// Safe to call multiple times and on a nil receiver. After Close, the
// executor remains usable; new connections are established as needed.
func (e *Executor) Close() {
	if e == nil || e.httpClient == nil {
		return
	}
	if transport, ok := e.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
