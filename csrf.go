package adminclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// defaultTokenTTL is how long a fetched CSRF token is reused before being
// re-read. Matches the rotation tolerance of the admin backend: tokens are
// valid for a session but may rotate, so re-reading every 5 minutes keeps
// a stale token window short without fetching per request.
const defaultTokenTTL = 5 * time.Minute

// TokenSource supplies the CSRF token attached to every admin API request.
//
// Implementations must be safe for concurrent use; the client may call
// Token from multiple goroutines at once.
type TokenSource interface {
	// Token returns the current CSRF token. An error aborts the request
	// that needed the token.
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a [TokenSource] that always yields tok.
//
// Use this when the token is obtained out of band, e.g. from a login flow
// handled by the embedding application.
func StaticTokenSource(tok string) TokenSource {
	return staticTokenSource(tok)
}

type staticTokenSource string

func (s staticTokenSource) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// TokenFunc adapts a plain function to the [TokenSource] interface.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements [TokenSource].
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// CachedTokenSource wraps src with time-based caching.
//
// The wrapped source is consulted at most once per TTL window; all
// requests issued within a window share the same token read-only. A ttl
// of zero uses the default of 5 minutes. Refreshes are single-flight: when
// the cache expires, one caller fetches while concurrent callers wait.
//
// A failed refresh is not cached; the next caller retries the source.
func CachedTokenSource(src TokenSource, ttl time.Duration) TokenSource {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &cachedTokenSource{src: src, ttl: ttl}
}

type cachedTokenSource struct {
	src TokenSource
	ttl time.Duration

	mu        sync.Mutex
	token     string
	fetchedAt time.Time
}

func (c *cachedTokenSource) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Since(c.fetchedAt) < c.ttl {
		return c.token, nil
	}

	token, err := c.src.Token(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.fetchedAt = time.Now()
	return token, nil
}

// csrfCookieName is the cookie the admin backend sets on the login page.
const csrfCookieName = "csrftoken"

// CookieTokenSource returns a [TokenSource] that fetches loginURL and
// reads the CSRF token from the response's cookie.
//
// This mirrors how the browser admin panel bootstraps its token from the
// rendered page. Wrap the result with [CachedTokenSource] so the login
// page is hit at most once per cache window:
//
//	src := adminclient.CachedTokenSource(
//	    adminclient.CookieTokenSource(httpClient, baseURL+"/admin-panel/login/"),
//	    0, // default 5 minutes
//	)
//
// A nil httpClient uses http.DefaultClient.
func CookieTokenSource(httpClient *http.Client, loginURL string) TokenSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return TokenFunc(func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, loginURL, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create token request: %w", err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return "", NewError(KindNetworkError, "failed to fetch CSRF token", err)
		}
		defer func() { _ = resp.Body.Close() }()

		for _, cookie := range resp.Cookies() {
			if cookie.Name == csrfCookieName {
				return cookie.Value, nil
			}
		}
		return "", NewError(KindRequestFailed, "no CSRF cookie in login page response", nil)
	})
}
