package adminclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDo_RetriesTransientFailures(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "dashboard/stats/"})
	if err == nil {
		t.Fatal("expected error from failing server, got nil")
	}

	if got := requests.Load(); got != 3 {
		t.Errorf("server received %d requests, want 3 (default retry attempts)", got)
	}

	apiErr, ok := classified(err)
	if !ok {
		t.Fatalf("error %v is not a classified *Error", err)
	}
	if apiErr.Kind != KindServerError {
		t.Errorf("Kind = %v, want %v", apiErr.Kind, KindServerError)
	}
	if apiErr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", apiErr.Attempts)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}

func TestDo_NoRetryOnNonRetryable(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind Kind
	}{
		{"validation", http.StatusBadRequest, KindValidation},
		{"auth required", http.StatusUnauthorized, KindAuthRequired},
		{"permission denied", http.StatusForbidden, KindPermissionDenied},
		{"not found", http.StatusNotFound, KindRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int64
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "x/"})
			if KindOf(err) != tt.wantKind {
				t.Errorf("KindOf(err) = %v, want %v", KindOf(err), tt.wantKind)
			}
			if got := requests.Load(); got != 1 {
				t.Errorf("server received %d requests, want exactly 1", got)
			}
		})
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(okEnvelope(`{"value": 42}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	data, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "x/"})
	if err != nil {
		t.Fatalf("do() error = %v", err)
	}
	if string(data) != `{"value": 42}` {
		t.Errorf("data = %s, want the envelope payload", data)
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("server received %d requests, want 3", got)
	}
}

func TestDo_RespectsAttemptCeiling(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithRetryAttempts(1))

	_, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "x/"})
	if KindOf(err) != KindRateLimited {
		t.Errorf("KindOf(err) = %v, want %v", KindOf(err), KindRateLimited)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("server received %d requests, want 1 (retries disabled)", got)
	}
}

func TestDo_LoginRedirectIsAuthRequired(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"status 200", http.StatusOK},
		{"status 403", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int64
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"success": false, "redirect": "/admin-panel/login/?next=/admin-panel/"}`))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "x/"})
			if KindOf(err) != KindAuthRequired {
				t.Errorf("KindOf(err) = %v, want %v", KindOf(err), KindAuthRequired)
			}
			if got := requests.Load(); got != 1 {
				t.Errorf("server received %d requests, want 1 (auth failures never retry)", got)
			}
		})
	}
}

func TestDo_EnvelopeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "something went wrong"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "x/"})
	apiErr, ok := classified(err)
	if !ok {
		t.Fatalf("error %v is not a classified *Error", err)
	}
	if apiErr.Kind != KindRequestFailed {
		t.Errorf("Kind = %v, want %v", apiErr.Kind, KindRequestFailed)
	}
	if apiErr.Message != "something went wrong" {
		t.Errorf("Message = %q, want server-provided message", apiErr.Message)
	}
}

func TestDo_InvalidEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "x/"})
	if KindOf(err) != KindRequestFailed {
		t.Errorf("KindOf(err) = %v, want %v", KindOf(err), KindRequestFailed)
	}
}

func TestDo_ErrorMessagePreference(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"envelope error field", `{"success": false, "error": "bad input"}`, "bad input"},
		{"envelope message field", `{"success": false, "message": "try later"}`, "try later"},
		{"non-json body falls back to status text", `oops`, "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "x/"})
			apiErr, ok := classified(err)
			if !ok {
				t.Fatalf("error %v is not a classified *Error", err)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithRetryBaseDelay(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.do(ctx, apiRequest{method: http.MethodGet, path: "x/"})
	if err == nil {
		t.Fatal("expected error after context cancellation, got nil")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("do() took %v, should abort backoff promptly on cancellation", elapsed)
	}
}

func TestClassifyResponse_RawMode(t *testing.T) {
	body := []byte("id,username\n1,amit\n")

	data, err := classifyResponse(http.StatusOK, body, true)
	if err != nil {
		t.Fatalf("classifyResponse() error = %v", err)
	}
	if string(data) != string(body) {
		t.Errorf("raw body = %q, want verbatim %q", data, body)
	}

	// raw mode still classifies failures
	_, err = classifyResponse(http.StatusInternalServerError, []byte("boom"), true)
	if KindOf(err) != KindServerError {
		t.Errorf("KindOf(err) = %v, want %v", KindOf(err), KindServerError)
	}
}

func TestDo_NetworkErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	// close immediately so every request fails at the transport level
	server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.do(context.Background(), apiRequest{method: http.MethodGet, path: "x/"})
	apiErr, ok := classified(err)
	if !ok {
		t.Fatalf("error %v is not a classified *Error", err)
	}
	if apiErr.Kind != KindNetworkError {
		t.Errorf("Kind = %v, want %v", apiErr.Kind, KindNetworkError)
	}
	if apiErr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3 (network errors retry)", apiErr.Attempts)
	}
}
