package adminclient

import (
	"context"
	"net/http"
)

// Webhook event types accepted by the automation endpoint.
const (
	WebhookContentReported = "content_reported"
	WebhookSpamDetected    = "spam_detected"
)

// WebhookEvent is an automation trigger delivered to the admin backend,
// which auto-flags the referenced content into the moderation queue.
type WebhookEvent struct {
	EventType   string  `json:"event_type"`
	ContentType string  `json:"content_type"`
	ContentID   int64   `json:"content_id"`
	Reason      string  `json:"reason,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// SendWebhookEvent posts an automation event, e.g. from a spam detection
// pipeline. The endpoint is CSRF-exempt server-side, but the request still
// flows through the standard pipeline and carries the default headers.
//
// POST webhooks/automation/
func (c *Client) SendWebhookEvent(ctx context.Context, event WebhookEvent) error {
	_, err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "webhooks/automation/",
		body:   event,
	})
	return err
}
