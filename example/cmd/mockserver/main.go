// Standalone mock admin API for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	gupshup-admin stats -c example/config.yaml
//	gupshup-admin watch -c example/config.yaml
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"
)

func main() {
	fmt.Println("Mock admin API starting on :9999")
	fmt.Println("Counters drift every few seconds")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	var (
		mu                sync.Mutex
		onlineUsers       = 120
		pendingModeration = 7
		lastDrift         = time.Now()
	)

	drift := func() {
		mu.Lock()
		defer mu.Unlock()
		if time.Since(lastDrift) < 5*time.Second {
			return
		}
		lastDrift = time.Now()
		onlineUsers += rand.Intn(21) - 10
		if onlineUsers < 0 {
			onlineUsers = 0
		}
		pendingModeration += rand.Intn(3) - 1
		if pendingModeration < 0 {
			pendingModeration = 0
		}
	}

	http.HandleFunc("/admin-panel/login/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:  "csrftoken",
			Value: fmt.Sprintf("mock-%d", rand.Int63()),
			Path:  "/",
		})
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintln(w, "<html><body>login</body></html>")
	})

	http.HandleFunc("/admin-panel/api/dashboard/stats/", func(w http.ResponseWriter, r *http.Request) {
		drift()
		mu.Lock()
		data := map[string]any{
			"real_time": map[string]int{
				"users_online_now":   onlineUsers,
				"posts_today":        340 + rand.Intn(20),
				"comments_today":     780 + rand.Intn(40),
				"likes_today":        2100 + rand.Intn(200),
				"pending_moderation": pendingModeration,
				"active_warnings":    3,
				"active_bans":        5,
				"admin_sessions":     2,
			},
			"last_updated": time.Now().UTC().Format(time.RFC3339),
		}
		mu.Unlock()
		writeEnvelope(w, data)
	})

	http.HandleFunc("/admin-panel/api/live-updates/", func(w http.ResponseWriter, r *http.Request) {
		drift()
		mu.Lock()
		data := map[string]any{
			"notifications": []map[string]any{
				{
					"type":      "moderation",
					"message":   fmt.Sprintf("%d items awaiting review", pendingModeration),
					"severity":  "info",
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				},
			},
			"stats_updates": map[string]int{
				"pending_moderation": pendingModeration,
				"active_warnings":    3,
				"online_users":       onlineUsers,
				"active_admins":      2,
			},
			"alerts": []map[string]any{},
		}
		mu.Unlock()
		writeEnvelope(w, data)
	})

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
