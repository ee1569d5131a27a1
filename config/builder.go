package config

import (
	"log/slog"

	"github.com/gupshup/adminclient"
)

// BuildClient converts parsed configuration into an SDK client.
//
// When the config carries a CSRF token, it is installed as a static token
// source; otherwise the client bootstraps a token from the login page
// cookie, cached for the SDK's default rotation window.
func BuildClient(cfg *Config, logger *slog.Logger) (*adminclient.Client, error) {
	opts := []adminclient.Option{
		adminclient.WithTimeout(cfg.Timeout.Duration()),
		adminclient.WithRetryAttempts(cfg.RetryAttempts),
		adminclient.WithMaxConcurrent(cfg.MaxConcurrent),
	}
	if cfg.RetryBaseDelay.Duration() > 0 {
		opts = append(opts, adminclient.WithRetryBaseDelay(cfg.RetryBaseDelay.Duration()))
	}
	if cfg.PathPrefix != "" {
		opts = append(opts, adminclient.WithPathPrefix(cfg.PathPrefix))
	}
	if logger != nil {
		opts = append(opts, adminclient.WithLogger(logger))
	}

	if cfg.CSRFToken != "" {
		opts = append(opts, adminclient.WithTokenSource(
			adminclient.StaticTokenSource(cfg.CSRFToken),
		))
	} else {
		opts = append(opts, adminclient.WithTokenSource(
			adminclient.CachedTokenSource(
				adminclient.CookieTokenSource(nil, cfg.BaseURL+"/admin-panel/login/"),
				0,
			),
		))
	}

	return adminclient.New(cfg.BaseURL, opts...)
}

// BuildPoller converts parsed configuration into a live-update poller for
// the given client.
func BuildPoller(cfg *Config, client *adminclient.Client) (*adminclient.Poller, error) {
	return adminclient.NewPoller(client,
		adminclient.WithInterval(cfg.PollInterval.Duration()),
		adminclient.WithMaxInterval(cfg.PollMaxInterval.Duration()),
	)
}
