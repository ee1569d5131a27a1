package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// mockCounters holds the live counters the mock server drifts over time.
type mockCounters struct {
	mu                sync.Mutex
	onlineUsers       int
	pendingModeration int
	activeWarnings    int
	activeAdmins      int
	lastDrift         time.Time
}

func (c *mockCounters) drift() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.lastDrift) < 5*time.Second {
		return
	}
	c.lastDrift = time.Now()
	c.onlineUsers += rand.Intn(21) - 10
	if c.onlineUsers < 0 {
		c.onlineUsers = 0
	}
	c.pendingModeration += rand.Intn(3) - 1
	if c.pendingModeration < 0 {
		c.pendingModeration = 0
	}
}

// NewMockAdminMux returns an http.Handler that mimics the admin panel API:
// the response envelope, the csrftoken login cookie, and a handful of
// endpoints with randomly drifting counters.
func NewMockAdminMux() *http.ServeMux {
	counters := &mockCounters{
		onlineUsers:       120,
		pendingModeration: 7,
		activeWarnings:    3,
		activeAdmins:      2,
		lastDrift:         time.Now(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/admin-panel/login/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:  "csrftoken",
			Value: fmt.Sprintf("mock-%d", rand.Int63()),
			Path:  "/",
		})
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintln(w, "<html><body>login</body></html>")
	})

	mux.HandleFunc("/admin-panel/api/dashboard/stats/", func(w http.ResponseWriter, r *http.Request) {
		counters.drift()
		counters.mu.Lock()
		data := map[string]any{
			"real_time": map[string]int{
				"users_online_now":   counters.onlineUsers,
				"posts_today":        340 + rand.Intn(20),
				"comments_today":     780 + rand.Intn(40),
				"likes_today":        2100 + rand.Intn(200),
				"pending_moderation": counters.pendingModeration,
				"active_warnings":    counters.activeWarnings,
				"active_bans":        5,
				"admin_sessions":     counters.activeAdmins,
			},
			"last_updated": time.Now().UTC().Format(time.RFC3339),
		}
		counters.mu.Unlock()
		writeEnvelope(w, data)
	})

	mux.HandleFunc("/admin-panel/api/live-updates/", func(w http.ResponseWriter, r *http.Request) {
		counters.drift()
		counters.mu.Lock()
		data := map[string]any{
			"notifications": []map[string]any{
				{
					"type":      "moderation",
					"message":   fmt.Sprintf("%d items awaiting review", counters.pendingModeration),
					"severity":  "info",
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				},
			},
			"stats_updates": map[string]int{
				"pending_moderation": counters.pendingModeration,
				"active_warnings":    counters.activeWarnings,
				"online_users":       counters.onlineUsers,
				"active_admins":      counters.activeAdmins,
			},
			"alerts": []map[string]any{},
		}
		counters.mu.Unlock()
		writeEnvelope(w, data)
	})

	mux.HandleFunc("/admin-panel/api/users/search/", func(w http.ResponseWriter, r *http.Request) {
		keyword := strings.ToLower(r.URL.Query().Get("keyword"))
		users := []map[string]any{
			{"id": 1, "username": "amit_sharma", "email": "amit@example.com", "full_name": "Amit Sharma",
				"is_active": true, "is_banned": false, "is_verified": true,
				"posts_count": 42, "followers_count": 310},
			{"id": 2, "username": "priya.k", "email": "priya@example.com", "full_name": "Priya Kapoor",
				"is_active": true, "is_banned": false, "is_verified": false,
				"posts_count": 7, "followers_count": 58},
			{"id": 3, "username": "spam_bot_99", "email": "bot@example.com", "full_name": "",
				"is_active": false, "is_banned": true, "is_verified": false,
				"posts_count": 900, "followers_count": 0},
		}
		matched := users[:0:0]
		for _, u := range users {
			if keyword == "" || strings.Contains(strings.ToLower(u["username"].(string)), keyword) {
				matched = append(matched, u)
			}
		}
		writeEnvelope(w, map[string]any{
			"items": matched,
			"pagination": map[string]any{
				"page": 1, "per_page": 20, "total_pages": 1,
				"total_items": len(matched), "has_next": false, "has_previous": false,
			},
		})
	})

	mux.HandleFunc("/admin-panel/api/moderation/queue/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{
			"items": []map[string]any{
				{"id": 101, "content_type": "post", "object_id": 5541, "author": "spam_bot_99",
					"flag_reason": "spam", "severity": "high", "status": "pending",
					"flagged_at": time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339)},
				{"id": 102, "content_type": "comment", "object_id": 8912, "author": "priya.k",
					"flag_reason": "reported by user", "severity": "low", "status": "pending",
					"flagged_at": time.Now().Add(-30 * time.Minute).UTC().Format(time.RFC3339)},
			},
			"pagination": map[string]any{
				"page": 1, "per_page": 20, "total_pages": 1,
				"total_items": 2, "has_next": false, "has_previous": false,
			},
		})
	})

	return mux
}

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// StartMockAdminServer runs the mock admin API on addr.
// Call this in a goroutine before creating the client.
func StartMockAdminServer(addr string) {
	if err := http.ListenAndServe(addr, NewMockAdminMux()); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
