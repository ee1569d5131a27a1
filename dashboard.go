package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DashboardStatsParams are the parameters for [Client.DashboardStats].
// Zero values are omitted from the query; the server then applies its own
// defaults (7 days, cached).
type DashboardStatsParams struct {
	// Days is the reporting window in days. Server default: 7.
	Days int

	// Refresh bypasses the server-side cache when true.
	Refresh bool
}

// RealTimeStats are the live counters included with dashboard statistics.
type RealTimeStats struct {
	UsersOnlineNow    int `json:"users_online_now"`
	PostsToday        int `json:"posts_today"`
	CommentsToday     int `json:"comments_today"`
	LikesToday        int `json:"likes_today"`
	PendingModeration int `json:"pending_moderation"`
	ActiveWarnings    int `json:"active_warnings"`
	ActiveBans        int `json:"active_bans"`
	AdminSessions     int `json:"admin_sessions"`
}

// DashboardStats is the dashboard statistics payload.
//
// The analytics sections vary with the server's reporting configuration,
// so only the stable parts are typed; Raw preserves the complete payload
// for callers that render the full report.
type DashboardStats struct {
	RealTime    RealTimeStats `json:"real_time"`
	LastUpdated time.Time     `json:"last_updated"`

	// Raw is the complete payload, including the analytics sections.
	Raw json.RawMessage `json:"-"`
}

// DashboardStats fetches real-time dashboard statistics.
//
// GET dashboard/stats/
func (c *Client) DashboardStats(ctx context.Context, params DashboardStatsParams) (DashboardStats, error) {
	query := url.Values{}
	if params.Days > 0 {
		query.Set("days", strconv.Itoa(params.Days))
	}
	if params.Refresh {
		query.Set("refresh", "true")
	}

	data, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "dashboard/stats/",
		query:  query,
	})
	if err != nil {
		return DashboardStats{}, err
	}

	var stats DashboardStats
	if err := decode(data, &stats); err != nil {
		return DashboardStats{}, err
	}
	stats.Raw = data
	return stats, nil
}

// AnalyticsType selects which analytics report [Client.Analytics] fetches.
type AnalyticsType string

const (
	AnalyticsUserGrowth     AnalyticsType = "user_growth"
	AnalyticsContentMetrics AnalyticsType = "content_metrics"
	AnalyticsGeographic     AnalyticsType = "geographic"
	AnalyticsEngagement     AnalyticsType = "engagement"
	AnalyticsHashtags       AnalyticsType = "hashtags"
	AnalyticsViral          AnalyticsType = "viral"

	// AnalyticsComprehensive is the server default: a combined report of
	// all analytics sections.
	AnalyticsComprehensive AnalyticsType = "comprehensive"
)

// AnalyticsParams are the parameters for [Client.Analytics]. Zero values
// are omitted; the server defaults to a comprehensive report over 30 days.
type AnalyticsParams struct {
	Type AnalyticsType
	Days int
}

// Analytics fetches a detailed analytics report.
//
// The payload shape depends on the requested type, so the result is
// returned as raw JSON for the caller to interpret.
//
// GET analytics/
func (c *Client) Analytics(ctx context.Context, params AnalyticsParams) (json.RawMessage, error) {
	query := url.Values{}
	if params.Type != "" {
		query.Set("type", string(params.Type))
	}
	if params.Days > 0 {
		query.Set("days", strconv.Itoa(params.Days))
	}

	return c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "analytics/",
		query:  query,
	})
}
