package adminclient

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gupshup/adminclient/internal/transport"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 1 * time.Second
	defaultMaxConcurrent  = 5
	defaultPathPrefix     = "/admin-panel/api/"
)

// loginPathFragment marks a response redirect as an authentication
// failure: the backend answers unauthenticated AJAX calls with a redirect
// to the admin login page, regardless of HTTP status.
const loginPathFragment = "/login"

// AuthHandler is invoked when a request fails with [KindAuthRequired].
//
// The handler is called at most once per client lifetime, from the
// goroutine that observed the failure. It should be fast; typical
// implementations record the event and signal the application to
// re-authenticate. Any running [Poller] using the client has already
// stopped scheduling fetches by the time the handler runs.
type AuthHandler func(err *Error)

// Client is the typed facade over the GupShup admin panel API.
//
// Client is safe for concurrent use. Every facade method funnels through
// the shared pipeline: acquire a concurrency slot, perform the HTTP call,
// classify failures, and retry transient ones with linear backoff. Create
// a Client with [New] and inject it into consumers explicitly; the SDK
// keeps no package-level instance.
type Client struct {
	exec    *transport.Executor
	baseURL *url.URL
	prefix  string

	timeout        time.Duration
	retryAttempts  int
	retryBaseDelay time.Duration

	gate   *gate
	tokens TokenSource
	logger *slog.Logger

	authHandler AuthHandler
	authOnce    sync.Once

	// poller registration so auth-required failures can halt live updates
	pollerMu sync.Mutex
	pollers  []*Poller
}

// New creates a [Client] for the admin API at baseURL.
//
// baseURL is the scheme and host of the GupShup deployment, e.g.
// "https://gupshup.example.com". API paths are resolved under the admin
// API prefix (default "/admin-panel/api/").
//
// Defaults, overridable via options:
//   - Request timeout: 10 seconds
//   - Retry attempts: 3
//   - Retry base delay: 1 second (linear: delay before retry n is base×n)
//   - Max concurrent requests: 5
//
// Returns an error if baseURL is empty or not an absolute http(s) URL, or
// if any option is invalid.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https, got %q", parsed.Scheme)
	}

	cfg := &clientConfig{
		timeout:        defaultTimeout,
		retryAttempts:  defaultRetryAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
		maxConcurrent:  defaultMaxConcurrent,
		prefix:         defaultPathPrefix,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	exec := cfg.exec
	if exec == nil {
		exec = transport.NewExecutor()
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	prefix := cfg.prefix
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &Client{
		exec:           exec,
		baseURL:        parsed,
		prefix:         prefix,
		timeout:        cfg.timeout,
		retryAttempts:  cfg.retryAttempts,
		retryBaseDelay: cfg.retryBaseDelay,
		gate:           newGate(cfg.maxConcurrent),
		tokens:         cfg.tokens,
		logger:         logger,
		authHandler:    cfg.authHandler,
	}, nil
}

// BaseURL returns the configured base URL of the admin deployment.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// InFlight returns the number of requests currently holding a concurrency
// slot. Exposed for observability; the value is a snapshot and may be
// stale by the time it is read.
func (c *Client) InFlight() int {
	return int(c.gate.inFlight())
}

// Close releases idle connections held by the client's HTTP executor.
// The client remains usable after Close; new connections are established
// on demand.
func (c *Client) Close() {
	c.exec.Close()
}

// notifyAuthFailure stops all registered pollers and invokes the auth
// handler. The handler fires at most once per client lifetime; pollers
// are stopped on every auth failure so a poller started later still halts.
func (c *Client) notifyAuthFailure(err *Error) {
	c.pollerMu.Lock()
	pollers := make([]*Poller, len(c.pollers))
	copy(pollers, c.pollers)
	c.pollerMu.Unlock()

	for _, p := range pollers {
		// stopAsync: Stop blocks on in-flight fetch completion, and the
		// fetch that observed the auth failure may be the caller
		p.stopAsync()
	}

	c.authOnce.Do(func() {
		c.logger.Warn("authentication required", "error", err)
		if c.authHandler != nil {
			c.authHandler(err)
		}
	})
}

// registerPoller records a poller so auth failures can stop it.
func (c *Client) registerPoller(p *Poller) {
	c.pollerMu.Lock()
	defer c.pollerMu.Unlock()
	c.pollers = append(c.pollers, p)
}

// unregisterPoller removes a stopped poller from the registry.
func (c *Client) unregisterPoller(p *Poller) {
	c.pollerMu.Lock()
	defer c.pollerMu.Unlock()
	for i, registered := range c.pollers {
		if registered == p {
			c.pollers = append(c.pollers[:i], c.pollers[i+1:]...)
			return
		}
	}
}
