package adminclient

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Notification is one event in a live-updates payload, typically a recent
// admin action.
type Notification struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// Alert is an attention-needed item in a live-updates payload, e.g.
// critical moderation backlog.
type Alert struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	ActionURL string `json:"action_url"`
}

// StatsUpdates are the live counters refreshed on every live-updates
// fetch.
type StatsUpdates struct {
	PendingModeration int `json:"pending_moderation"`
	ActiveWarnings    int `json:"active_warnings"`
	OnlineUsers       int `json:"online_users"`
	ActiveAdmins      int `json:"active_admins"`
}

// LiveUpdates is the payload of one live-updates fetch.
//
// Timestamp is the server time of the fetch; pass it back as lastUpdate on
// the next call so the server returns only newer notifications. The
// [Poller] does this automatically.
type LiveUpdates struct {
	Timestamp     time.Time      `json:"timestamp"`
	Notifications []Notification `json:"notifications"`
	StatsUpdates  StatsUpdates   `json:"stats_updates"`
	Alerts        []Alert        `json:"alerts"`
}

// FetchLiveUpdates fetches live dashboard updates.
//
// lastUpdate scopes notifications and alerts to events after that instant;
// the zero time omits the parameter, returning only current counters.
//
// GET live-updates/
func (c *Client) FetchLiveUpdates(ctx context.Context, lastUpdate time.Time) (LiveUpdates, error) {
	query := url.Values{}
	if !lastUpdate.IsZero() {
		query.Set("last_update", lastUpdate.Format(time.RFC3339Nano))
	}

	data, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "live-updates/",
		query:  query,
	})
	if err != nil {
		return LiveUpdates{}, err
	}

	var updates LiveUpdates
	if err := decode(data, &updates); err != nil {
		return LiveUpdates{}, err
	}
	return updates, nil
}
