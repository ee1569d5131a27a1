package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gupshup/adminclient"
	"github.com/spf13/cobra"
)

// searchCmd searches users through the admin API.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search users",
	Long: `Search users with admin filters.

Empty filters are omitted from the request; the server then applies its
own defaults (all statuses, page 1, 20 per page).

Example:
  gupshup-admin search -c config.yaml -k amit
  gupshup-admin search -c config.yaml --status banned --page 2`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addConfigFlag(searchCmd)
	searchCmd.Flags().StringP("keyword", "k", "", "match username, email, name, or phone")
	searchCmd.Flags().String("status", "", "account status: active, inactive, banned, verified")
	searchCmd.Flags().String("state", "", "filter by state/region")
	searchCmd.Flags().String("verified", "", "verification flag: true or false")
	searchCmd.Flags().Int("page", 0, "result page (server default: 1)")
	searchCmd.Flags().Int("per-page", 0, "page size (server default: 20, max 100)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, _, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	keyword, _ := cmd.Flags().GetString("keyword")
	status, _ := cmd.Flags().GetString("status")
	state, _ := cmd.Flags().GetString("state")
	verified, _ := cmd.Flags().GetString("verified")
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")

	result, err := client.SearchUsers(ctx, adminclient.UserSearchFilters{
		Keyword:  keyword,
		Status:   status,
		State:    state,
		Verified: verified,
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		return describeFailure(err)
	}

	fmt.Printf("Found %d users (page %d of %d)\n",
		result.Pagination.TotalItems, result.Pagination.Page, result.Pagination.TotalPages)
	for _, user := range result.Items {
		flags := ""
		if user.IsBanned {
			flags += " [banned]"
		}
		if !user.IsActive {
			flags += " [inactive]"
		}
		if user.IsVerified {
			flags += " [verified]"
		}
		fmt.Printf("  %6d  %-20s %-30s posts=%d followers=%d%s\n",
			user.ID, user.Username, user.Email, user.PostsCount, user.FollowersCount, flags)
	}

	return nil
}
