package main

import (
	"fmt"

	"github.com/gupshup/adminclient/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without making any requests.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a gupshup-admin configuration file without contacting the server.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  gupshup-admin validate -c config.yaml
  gupshup-admin validate --config /etc/gupshup/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	addConfigFlag(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Base URL:        %s\n", cfg.BaseURL)
	fmt.Printf("  Timeout:         %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Retry attempts:  %d\n", cfg.RetryAttempts)
	fmt.Printf("  Max concurrent:  %d\n", cfg.MaxConcurrent)
	fmt.Printf("  Poll interval:   %s (max %s)\n",
		cfg.PollInterval.Duration(), cfg.PollMaxInterval.Duration())

	return nil
}
