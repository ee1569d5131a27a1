package adminclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient builds a client against a test server with fast retries and
// a discarded logger. Options passed in override the test defaults.
func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()

	base := []Option{
		WithLogger(testLogger()),
		WithRetryBaseDelay(time.Millisecond),
	}
	client, err := New(baseURL, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

// okEnvelope wraps data in a successful response envelope.
func okEnvelope(data string) string {
	return `{"success": true, "data": ` + data + `, "timestamp": "2026-08-26T12:00:00Z"}`
}

// emptyLiveUpdates is a minimal live-updates payload for tests that only
// care about the request, not the response.
const emptyLiveUpdates = `{"timestamp": "2026-08-26T12:00:00Z", "notifications": [], "stats_updates": {}, "alerts": []}`

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"empty", ""},
		{"no scheme", "example.com"},
		{"wrong scheme", "ftp://example.com"},
		{"unparseable", "http://exa mple.com/%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.baseURL)
			if err == nil {
				t.Errorf("New(%q) expected error, got nil", tt.baseURL)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := New("https://gupshup.example.com")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", client.timeout)
	}
	if client.retryAttempts != 3 {
		t.Errorf("retryAttempts = %d, want 3", client.retryAttempts)
	}
	if client.retryBaseDelay != time.Second {
		t.Errorf("retryBaseDelay = %v, want 1s", client.retryBaseDelay)
	}
	if client.prefix != "/admin-panel/api/" {
		t.Errorf("prefix = %q, want %q", client.prefix, "/admin-panel/api/")
	}
	if client.InFlight() != 0 {
		t.Errorf("InFlight() = %d, want 0", client.InFlight())
	}
}

func TestNew_OptionError(t *testing.T) {
	_, err := New("https://example.com", WithTimeout(-1*time.Second))
	if err == nil {
		t.Error("New() with negative timeout expected error, got nil")
	}
}

func TestClient_DefaultHeaders(t *testing.T) {
	var captured http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		_, _ = w.Write([]byte(okEnvelope(emptyLiveUpdates)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithTokenSource(StaticTokenSource("tok-123")))

	_, err := client.FetchLiveUpdates(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("FetchLiveUpdates() error = %v", err)
	}

	if got := captured.Get("Accept"); got != "application/json" {
		t.Errorf("Accept = %q, want %q", got, "application/json")
	}
	if got := captured.Get("X-Requested-With"); got != "XMLHttpRequest" {
		t.Errorf("X-Requested-With = %q, want %q", got, "XMLHttpRequest")
	}
	if got := captured.Get("X-CSRFToken"); got != "tok-123" {
		t.Errorf("X-CSRFToken = %q, want %q", got, "tok-123")
	}
	if captured.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	// GET requests carry no body, so no Content-Type
	if got := captured.Get("Content-Type"); got != "" {
		t.Errorf("Content-Type = %q, want empty for GET", got)
	}
}

func TestClient_RequestIDUnique(t *testing.T) {
	var ids []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(okEnvelope(emptyLiveUpdates)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	for i := 0; i < 2; i++ {
		if _, err := client.FetchLiveUpdates(context.Background(), time.Time{}); err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}

	if len(ids) != 2 {
		t.Fatalf("captured %d request IDs, want 2", len(ids))
	}
	if ids[0] == ids[1] {
		t.Errorf("X-Request-ID repeated across requests: %q", ids[0])
	}
}

func TestClient_CallerHeaderOverride(t *testing.T) {
	var captured http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		_, _ = w.Write([]byte(okEnvelope(`{}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithTokenSource(StaticTokenSource("default-token")))

	_, err := client.do(context.Background(), apiRequest{
		method:  http.MethodGet,
		path:    "dashboard/stats/",
		headers: map[string]string{"X-CSRFToken": "override-token"},
	})
	if err != nil {
		t.Fatalf("do() error = %v", err)
	}

	if got := captured.Get("X-CSRFToken"); got != "override-token" {
		t.Errorf("X-CSRFToken = %q, want caller override %q", got, "override-token")
	}
}

func TestClient_PathPrefix(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(okEnvelope(emptyLiveUpdates)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithPathPrefix("/custom/api"))

	if _, err := client.FetchLiveUpdates(context.Background(), time.Time{}); err != nil {
		t.Fatalf("FetchLiveUpdates() error = %v", err)
	}

	if path != "/custom/api/live-updates/" {
		t.Errorf("request path = %q, want %q", path, "/custom/api/live-updates/")
	}
}

func TestClient_AuthHandlerFiresOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var calls atomic.Int64
	client := newTestClient(t, server.URL, WithAuthHandler(func(err *Error) {
		calls.Add(1)
	}))

	for i := 0; i < 3; i++ {
		_, err := client.FetchLiveUpdates(context.Background(), time.Time{})
		if KindOf(err) != KindAuthRequired {
			t.Fatalf("request %d: KindOf(err) = %v, want %v", i, KindOf(err), KindAuthRequired)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("auth handler called %d times, want 1", got)
	}
}

func TestClient_TokenSourceFailureAbortsRequest(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithTokenSource(TokenFunc(
		func(ctx context.Context) (string, error) {
			return "", NewError(KindRequestFailed, "token fetch failed", nil)
		},
	)))

	_, err := client.FetchLiveUpdates(context.Background(), time.Time{})
	if err == nil {
		t.Fatal("expected error from failing token source, got nil")
	}
	if requests.Load() != 0 {
		t.Errorf("server received %d requests, want 0 (token failure should abort)", requests.Load())
	}
}
