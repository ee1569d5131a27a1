package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// apiRequest describes one facade call before it enters the pipeline.
// The path is relative to the admin API prefix, e.g. "users/search/".
type apiRequest struct {
	method  string
	path    string
	query   url.Values
	body    any
	headers map[string]string
	raw     bool
}

// envelope is the admin API response wrapper. Every JSON endpoint answers
// with this shape; raw endpoints (CSV export) bypass it.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Redirect  string          `json:"redirect"`
	Timestamp string          `json:"timestamp"`
}

// do runs req through the full pipeline and returns the decoded envelope
// data. Transient failures are retried with linear backoff; each attempt
// acquires its own concurrency slot and gets a fresh timeout window, and
// no slot is held while backing off.
func (c *Client) do(ctx context.Context, req apiRequest) (json.RawMessage, error) {
	body, err := encodeBody(req.body)
	if err != nil {
		return nil, NewError(KindRequestFailed, "failed to encode request body", err)
	}

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		if attempt > 1 {
			// linear backoff: base × retry number
			delay := c.retryBaseDelay * time.Duration(attempt-1)
			if err := c.sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}

		data, err := c.attempt(ctx, req, body)
		attempts = attempt
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			break
		}
		if attempt < c.retryAttempts {
			c.logger.Warn("transient request failure, retrying",
				"method", req.method,
				"path", req.path,
				"attempt", attempt,
				"kind", KindOf(err).String(),
				"error", err,
			)
		}
	}

	return nil, c.finalize(lastErr, attempts)
}

// doRaw is like do but returns the raw response body without envelope
// decoding. Used by the export endpoint, which answers CSV as plain text.
func (c *Client) doRaw(ctx context.Context, req apiRequest) ([]byte, error) {
	req.raw = true
	data, err := c.do(ctx, req)
	return []byte(data), err
}

// attempt performs a single gated HTTP call and classifies its outcome.
func (c *Client) attempt(ctx context.Context, req apiRequest, body []byte) (json.RawMessage, error) {
	release, err := c.gate.acquire(ctx)
	if err != nil {
		return nil, NewError(KindNetworkError, "request cancelled while waiting for slot", err)
	}
	defer release()

	headers, err := c.buildHeaders(ctx, req.headers, body != nil)
	if err != nil {
		return nil, err
	}

	target := c.requestURL(req.path, req.query)
	resp := c.exec.Do(ctx, req.method, target, headers, body, c.timeout)

	c.logger.Debug("admin api request",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"latency_ms", resp.Latency.Milliseconds(),
	)

	if resp.Error != nil {
		return nil, NewError(KindNetworkError, "", resp.Error)
	}

	return classifyResponse(resp.StatusCode, resp.Body, req.raw)
}

// buildHeaders assembles the default header set and merges caller headers
// over it: callers can override any default, including the CSRF header.
func (c *Client) buildHeaders(ctx context.Context, extra map[string]string, hasBody bool) (map[string]string, error) {
	headers := map[string]string{
		"Accept":           "application/json",
		"X-Requested-With": "XMLHttpRequest",
		"X-Request-ID":     uuid.NewString(),
	}
	if hasBody {
		headers["Content-Type"] = "application/json"
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			if _, ok := classified(err); ok {
				return nil, err
			}
			return nil, NewError(KindRequestFailed, "failed to obtain CSRF token", err)
		}
		headers["X-CSRFToken"] = token
	}
	for key, value := range extra {
		headers[key] = value
	}
	return headers, nil
}

// requestURL joins the base URL, the admin API prefix, the relative path,
// and the encoded query. Empty query values must already be omitted by the
// facade method building the url.Values.
func (c *Client) requestURL(path string, query url.Values) string {
	ref := &url.URL{Path: c.prefix + path}
	target := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

// classifyResponse turns a completed HTTP exchange into data or a
// classified error. This is the single classification point: errors flow
// upward unchanged through the retry layer and facade methods.
func classifyResponse(status int, body []byte, raw bool) (json.RawMessage, error) {
	success := status >= 200 && status < 300

	if raw && success {
		return json.RawMessage(body), nil
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	// a redirect to the login page means the session is gone, regardless
	// of the HTTP status the middleware chose
	if decodeErr == nil && env.Redirect != "" && strings.Contains(env.Redirect, loginPathFragment) {
		err := NewError(KindAuthRequired, envelopeMessage(env), nil)
		err.StatusCode = status
		return nil, err
	}

	if !success {
		kind := ClassifyStatus(status)
		msg := ""
		if decodeErr == nil {
			msg = envelopeMessage(env)
		}
		if msg == "" {
			msg = http.StatusText(status)
		}
		err := NewError(kind, msg, nil)
		err.StatusCode = status
		return nil, err
	}

	if decodeErr != nil {
		err := NewError(KindRequestFailed, "invalid response envelope", decodeErr)
		err.StatusCode = status
		return nil, err
	}
	if !env.Success {
		err := NewError(KindRequestFailed, envelopeMessage(env), nil)
		err.StatusCode = status
		return nil, err
	}

	return env.Data, nil
}

// finalize stamps the attempt count on the surfaced error and fires the
// auth side effect when the session is gone.
func (c *Client) finalize(err error, attempts int) error {
	apiErr, ok := classified(err)
	if !ok {
		apiErr = NewError(KindRequestFailed, "", err)
	}
	apiErr.Attempts = attempts
	if apiErr.Kind == KindAuthRequired {
		c.notifyAuthFailure(apiErr)
	}
	return apiErr
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return NewError(KindNetworkError, "request cancelled during backoff", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// decode unmarshals envelope data into out, classifying decode failures.
func decode(data json.RawMessage, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return NewError(KindRequestFailed, "failed to decode response data", err)
	}
	return nil
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	return json.Marshal(body)
}

func envelopeMessage(env envelope) string {
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

// classified extracts a *Error from err without losing the concrete value.
func classified(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
