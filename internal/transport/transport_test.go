package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/http/httptrace"
	"testing"
	"time"
)

// TestExecutor_ConnectionReuse verifies that sequential requests to the same
// host reuse pooled connections, validating the keep-alive transport config.
func TestExecutor_ConnectionReuse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	exec := NewExecutor()

	var reusedCount int
	trace := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			if info.Reused {
				reusedCount++
			}
		},
	}

	const numRequests = 5

	for i := 0; i < numRequests; i++ {
		ctx := httptrace.WithClientTrace(context.Background(), trace)
		resp := exec.Do(ctx, http.MethodGet, server.URL, nil, nil, 5*time.Second)
		if resp.Error != nil {
			t.Fatalf("request %d failed: %v", i, resp.Error)
		}
	}

	// all requests after the first should reuse the connection; allow some
	// tolerance
	expectedMinReuse := numRequests - 2
	if reusedCount < expectedMinReuse {
		t.Errorf("expected at least %d reused connections, got %d out of %d requests",
			expectedMinReuse, reusedCount, numRequests)
	}
}

func TestExecutor_CapturesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	exec := NewExecutor()

	resp := exec.Do(context.Background(), http.MethodGet, server.URL, nil, nil, time.Second)
	if resp.Error != nil {
		t.Fatalf("Do() Error = %v, want nil (non-2xx is not a transport error)", resp.Error)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", resp.StatusCode)
	}
	if string(resp.Body) != `{"success": false}` {
		t.Errorf("Body = %q, want the response body", resp.Body)
	}
	if resp.Latency <= 0 {
		t.Errorf("Latency = %v, want positive", resp.Latency)
	}
}

func TestExecutor_SendsHeadersAndBody(t *testing.T) {
	var captured http.Header
	var receivedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	exec := NewExecutor()

	headers := map[string]string{
		"X-CSRFToken":  "tok",
		"Content-Type": "application/json",
	}
	resp := exec.Do(context.Background(), http.MethodPost, server.URL, headers, []byte(`{"a":1}`), time.Second)
	if resp.Error != nil {
		t.Fatalf("Do() error = %v", resp.Error)
	}

	if got := captured.Get("X-CSRFToken"); got != "tok" {
		t.Errorf("X-CSRFToken = %q, want %q", got, "tok")
	}
	if string(receivedBody) != `{"a":1}` {
		t.Errorf("server received body %q, want %q", receivedBody, `{"a":1}`)
	}
}

func TestExecutor_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	exec := NewExecutor()

	resp := exec.Do(context.Background(), http.MethodGet, server.URL, nil, nil, 20*time.Millisecond)
	if resp.Error == nil {
		t.Error("Do() with expired timeout expected transport error, got nil")
	}
}

func TestExecutor_CallerDeadlineWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	exec := NewExecutor()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	resp := exec.Do(ctx, http.MethodGet, server.URL, nil, nil, 10*time.Second)
	if resp.Error == nil {
		t.Error("Do() expected error from caller deadline, got nil")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Do() took %v, caller deadline should cut the request short", elapsed)
	}
}

func TestExecutor_CookiePersistence(t *testing.T) {
	var secondRequestCookie string
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc123", Path: "/"})
		} else {
			if c, err := r.Cookie("sessionid"); err == nil {
				secondRequestCookie = c.Value
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	exec := NewExecutor()

	for i := 0; i < 2; i++ {
		resp := exec.Do(context.Background(), http.MethodGet, server.URL, nil, nil, time.Second)
		if resp.Error != nil {
			t.Fatalf("request %d failed: %v", i, resp.Error)
		}
	}

	if secondRequestCookie != "abc123" {
		t.Errorf("second request sessionid = %q, want %q (jar should carry cookies)", secondRequestCookie, "abc123")
	}
}

// TestExecutor_Close verifies that Close() is safe to call and idempotent.
func TestExecutor_Close(t *testing.T) {
	exec := NewExecutor()

	// should not panic
	exec.Close()

	// calling Close multiple times should be safe (idempotent)
	exec.Close()
	exec.Close()
}

// TestExecutor_Close_NilExecutor verifies that Close() handles nil receiver safely.
func TestExecutor_Close_NilExecutor(t *testing.T) {
	var exec *Executor

	// should not panic on nil receiver
	exec.Close()
}

// TestExecutor_Close_RemainsUsable verifies that Close closes idle
// connections, but the executor remains usable for new requests.
func TestExecutor_Close_RemainsUsable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	exec := NewExecutor()

	// establish connections
	for i := 0; i < 5; i++ {
		resp := exec.Do(context.Background(), http.MethodGet, server.URL, nil, nil, time.Second)
		if resp.Error != nil {
			t.Fatalf("request %d failed: %v", i, resp.Error)
		}
	}

	// close idle connections
	exec.Close()

	// subsequent requests should still work (new connections established)
	resp := exec.Do(context.Background(), http.MethodGet, server.URL, nil, nil, time.Second)
	if resp.Error != nil {
		t.Errorf("request after Close failed: %v", resp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}
