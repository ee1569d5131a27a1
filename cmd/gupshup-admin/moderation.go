package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gupshup/adminclient"
	"github.com/spf13/cobra"
)

// moderationCmd lists the content moderation queue.
var moderationCmd = &cobra.Command{
	Use:   "moderation",
	Short: "List the content moderation queue",
	Long: `List the content moderation queue, ordered by severity then flag time.

Defaults to pending items; pass --status all to list every status.

Example:
  gupshup-admin moderation -c config.yaml
  gupshup-admin moderation -c config.yaml --severity critical`,
	RunE: runModeration,
}

func init() {
	rootCmd.AddCommand(moderationCmd)

	addConfigFlag(moderationCmd)
	moderationCmd.Flags().String("status", "", "item status (default: pending)")
	moderationCmd.Flags().String("content-type", "", "content type: post, comment (default: all)")
	moderationCmd.Flags().String("severity", "", "severity: low, medium, high, critical (default: all)")
	moderationCmd.Flags().Int("page", 0, "result page (default: 1)")
	moderationCmd.Flags().Int("per-page", 0, "page size (default: 20, max 100)")
}

func runModeration(cmd *cobra.Command, args []string) error {
	client, _, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	status, _ := cmd.Flags().GetString("status")
	contentType, _ := cmd.Flags().GetString("content-type")
	severity, _ := cmd.Flags().GetString("severity")
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")

	result, err := client.ModerationQueue(ctx, adminclient.ModerationQueueParams{
		Status:      status,
		ContentType: contentType,
		Severity:    severity,
		Page:        page,
		PerPage:     perPage,
	})
	if err != nil {
		return describeFailure(err)
	}

	fmt.Printf("%d items in queue (page %d of %d)\n",
		result.Pagination.TotalItems, result.Pagination.Page, result.Pagination.TotalPages)
	for _, item := range result.Items {
		fmt.Printf("  #%-6d %-8s %-8s %-10s by %-16s %s\n",
			item.ID, item.ContentType, item.Severity, item.Status, item.Author, item.FlagReason)
	}

	return nil
}
