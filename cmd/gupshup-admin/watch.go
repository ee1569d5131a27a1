package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gupshup/adminclient"
	"github.com/gupshup/adminclient/config"
	"github.com/gupshup/adminclient/internal/store"
	"github.com/spf13/cobra"
)

// watchCmd follows live updates until interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow live dashboard updates",
	Long: `Poll the live-updates endpoint and print notifications and counter
changes as they arrive.

The poll interval comes from the config file (poll_interval, default 30s)
and backs off automatically while the server is unreachable. Runs until
interrupted (Ctrl+C) or the admin session expires.

Example:
  gupshup-admin watch -c config.yaml`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addConfigFlag(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	client, cfg, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	poller, err := config.BuildPoller(cfg, client)
	if err != nil {
		return fmt.Errorf("failed to create poller: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snapshots := store.NewMemoryStore()
	sub := snapshots.Subscribe()
	defer snapshots.Unsubscribe(sub)

	err = poller.Start(ctx, func(updates adminclient.LiveUpdates) {
		snapshots.Update(toSnapshot(updates))
	})
	if err != nil {
		return fmt.Errorf("failed to start poller: %w", err)
	}
	defer poller.Stop()

	logger.Info("watching live updates",
		"interval", cfg.PollInterval.Duration().String(),
	)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("stopped")
			return nil
		case snap := <-sub:
			printSnapshot(snap)
		}
	}
}

// toSnapshot converts an SDK payload to its storage representation.
func toSnapshot(updates adminclient.LiveUpdates) store.Snapshot {
	snap := store.Snapshot{
		ReceivedAt: time.Now(),
		Timestamp:  updates.Timestamp,
		Stats: store.Stats{
			PendingModeration: updates.StatsUpdates.PendingModeration,
			ActiveWarnings:    updates.StatsUpdates.ActiveWarnings,
			OnlineUsers:       updates.StatsUpdates.OnlineUsers,
			ActiveAdmins:      updates.StatsUpdates.ActiveAdmins,
		},
	}
	for _, n := range updates.Notifications {
		snap.Notifications = append(snap.Notifications, store.Notification{
			Type:      n.Type,
			Message:   n.Message,
			Severity:  n.Severity,
			Timestamp: n.Timestamp,
		})
	}
	for _, a := range updates.Alerts {
		snap.Alerts = append(snap.Alerts, store.Alert{
			Type:      a.Type,
			Message:   a.Message,
			ActionURL: a.ActionURL,
		})
	}
	return snap
}

func printSnapshot(snap store.Snapshot) {
	stamp := snap.ReceivedAt.Format("15:04:05")
	fmt.Printf("[%s] moderation=%d warnings=%d online=%d admins=%d\n",
		stamp,
		snap.Stats.PendingModeration,
		snap.Stats.ActiveWarnings,
		snap.Stats.OnlineUsers,
		snap.Stats.ActiveAdmins,
	)
	for _, n := range snap.Notifications {
		fmt.Printf("    %-8s %s\n", n.Severity, n.Message)
	}
	for _, a := range snap.Alerts {
		fmt.Printf("    ALERT: %s\n", a.Message)
	}
}
