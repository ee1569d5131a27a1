package adminclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// Export formats accepted by the export endpoint.
const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
)

// Export data types accepted by the export endpoint.
const (
	ExportTypeAnalytics  = "analytics"
	ExportTypeUsers      = "users"
	ExportTypeContent    = "content"
	ExportTypeModeration = "moderation"
)

// ExportParams are the parameters for [Client.Export]. Zero values are
// omitted; the server defaults to a JSON analytics export over 30 days.
type ExportParams struct {
	Type   string
	Format string
	Days   int
}

// Export fetches an export of admin data.
//
// The response is returned as raw bytes: CSV exports are plain text and
// JSON exports are returned verbatim for the caller to process or store.
// Export performs no filesystem side effect; use [Client.ExportToFile] to
// materialise CSV downloads.
//
// GET export/
func (c *Client) Export(ctx context.Context, params ExportParams) ([]byte, error) {
	query := url.Values{}
	setNonEmpty(query, "type", params.Type)
	setNonEmpty(query, "format", params.Format)
	if params.Days > 0 {
		query.Set("days", strconv.Itoa(params.Days))
	}

	return c.doRaw(ctx, apiRequest{
		method: http.MethodGet,
		path:   "export/",
		query:  query,
	})
}

// ExportToFile fetches an export and, for CSV format, writes it to a file
// named {type}_export.csv under dir, returning the written path.
//
// For any other format the API call is still performed but nothing is
// written and the returned path is empty; this mirrors the admin panel,
// where only CSV exports trigger a browser download.
func (c *Client) ExportToFile(ctx context.Context, params ExportParams, dir string) (string, error) {
	data, err := c.Export(ctx, params)
	if err != nil {
		return "", err
	}

	if params.Format != ExportFormatCSV {
		return "", nil
	}

	exportType := params.Type
	if exportType == "" {
		exportType = ExportTypeAnalytics
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_export.csv", exportType))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
