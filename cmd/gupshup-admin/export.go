package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gupshup/adminclient"
	"github.com/spf13/cobra"
)

// exportCmd exports admin data.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export admin data",
	Long: `Export admin data as JSON or CSV.

CSV exports are written to {type}_export.csv in the output directory;
JSON exports are printed to stdout.

Example:
  gupshup-admin export -c config.yaml --type users --format csv
  gupshup-admin export -c config.yaml --type analytics --days 90`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addConfigFlag(exportCmd)
	exportCmd.Flags().String("type", "", "export type: analytics, users, content, moderation (default: analytics)")
	exportCmd.Flags().String("format", "", "export format: json or csv (default: json)")
	exportCmd.Flags().Int("days", 0, "reporting window in days (default: 30)")
	exportCmd.Flags().String("out", ".", "output directory for CSV exports")
}

func runExport(cmd *cobra.Command, args []string) error {
	client, _, err := buildClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exportType, _ := cmd.Flags().GetString("type")
	format, _ := cmd.Flags().GetString("format")
	days, _ := cmd.Flags().GetInt("days")
	outDir, _ := cmd.Flags().GetString("out")

	params := adminclient.ExportParams{
		Type:   exportType,
		Format: format,
		Days:   days,
	}

	if format == adminclient.ExportFormatCSV {
		path, err := client.ExportToFile(ctx, params, outDir)
		if err != nil {
			return describeFailure(err)
		}
		fmt.Printf("Export written to %s\n", path)
		return nil
	}

	data, err := client.Export(ctx, params)
	if err != nil {
		return describeFailure(err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
