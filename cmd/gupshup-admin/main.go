// Package main is the entry point for the gupshup-admin CLI.
//
// The admin client can be used either as a library (SDK) or from this
// standalone binary with YAML configuration.
//
// Usage:
//
//	gupshup-admin stats -c config.yaml          # Dashboard statistics
//	gupshup-admin search -c config.yaml -k amit # Search users
//	gupshup-admin watch -c config.yaml          # Follow live updates
//	gupshup-admin export -c config.yaml --format csv
//	gupshup-admin validate -c config.yaml       # Validate configuration
//	gupshup-admin version                       # Show version info
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "gupshup-admin",
	Short: "Command-line client for the GupShup admin panel API",
	Long: `gupshup-admin is a command-line client for the GupShup admin panel API.

It wraps the admin endpoints (dashboard stats, user search, moderation
queue, bulk actions, data export, live updates) behind a resilient request
pipeline with retries, a concurrency limit, and CSRF handling.

Quick start:
  1. Create a config file (gupshup.yaml):
       base_url: https://gupshup.example.com
       csrf_token: ${GUPSHUP_CSRF_TOKEN}
  2. Run: gupshup-admin stats -c gupshup.yaml`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// addConfigFlag wires the shared --config flag onto a subcommand.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("config")
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this gupshup-admin binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gupshup-admin %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
