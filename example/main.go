package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gupshup/adminclient"
)

func main() {
	// start mock admin API (see mock_server.go)
	go StartMockAdminServer(":9999")
	time.Sleep(100 * time.Millisecond)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client, err := adminclient.New("http://localhost:9999",
		adminclient.WithTokenSource(adminclient.StaticTokenSource("demo-token")),
		adminclient.WithLogger(logger),
		adminclient.WithAuthHandler(func(err *adminclient.Error) {
			logger.Warn("admin session expired, stopping", "error", err)
			os.Exit(1)
		}),
	)
	if err != nil {
		slog.Error("failed to create client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// one-shot calls through the facade
	stats, err := client.DashboardStats(ctx, adminclient.DashboardStatsParams{})
	if err != nil {
		slog.Error("dashboard stats failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("online now: %d, pending moderation: %d\n",
		stats.RealTime.UsersOnlineNow, stats.RealTime.PendingModeration)

	result, err := client.SearchUsers(ctx, adminclient.UserSearchFilters{Keyword: "amit"})
	if err != nil {
		slog.Error("user search failed", "error", err)
		os.Exit(1)
	}
	for _, user := range result.Items {
		fmt.Printf("found %s (%s)\n", user.Username, user.Email)
	}

	// live updates every 5 seconds until Ctrl+C
	poller, err := adminclient.NewPoller(client,
		adminclient.WithInterval(5*time.Second),
	)
	if err != nil {
		slog.Error("failed to create poller", "error", err)
		os.Exit(1)
	}

	err = poller.Start(ctx, func(updates adminclient.LiveUpdates) {
		fmt.Printf("[%s] online=%d moderation=%d\n",
			time.Now().Format("15:04:05"),
			updates.StatsUpdates.OnlineUsers,
			updates.StatsUpdates.PendingModeration,
		)
		for _, n := range updates.Notifications {
			fmt.Printf("    %s: %s\n", n.Severity, n.Message)
		}
	})
	if err != nil {
		slog.Error("failed to start poller", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Polling live updates every 5s. Press Ctrl+C to stop.")
	fmt.Println()

	<-ctx.Done()
	poller.Stop()
	fmt.Println("stopped")
}
