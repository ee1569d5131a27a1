package adminclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ModerationAction is an action taken on a moderation queue item.
type ModerationAction string

const (
	ModerationApprove ModerationAction = "approve"
	ModerationDelete  ModerationAction = "delete"
	ModerationFlag    ModerationAction = "flag"
	ModerationIgnore  ModerationAction = "ignore"
)

// ModerationQueueParams are the filters for [Client.ModerationQueue].
//
// Unlike the search filters, the queue defaults are applied client-side so
// the issued request is explicit: status=pending, content_type=all,
// severity=all, page=1, per_page=20. Pass "all" for Status to list every
// status.
type ModerationQueueParams struct {
	Status      string
	ContentType string
	Severity    string
	Page        int
	PerPage     int
}

// ModerationItem is one entry in the moderation queue.
type ModerationItem struct {
	ID             int64      `json:"id"`
	ContentType    string     `json:"content_type"`
	ObjectID       int64      `json:"object_id"`
	Status         string     `json:"status"`
	Severity       string     `json:"severity"`
	FlagReason     string     `json:"flag_reason"`
	ContentPreview string     `json:"content_preview"`
	Author         string     `json:"author"`
	AuthorID       *int64     `json:"author_id"`
	FlaggedAt      *time.Time `json:"flagged_at"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	ReviewNotes    string     `json:"review_notes"`
}

// ModerationQueueResult is the paginated moderation queue.
type ModerationQueueResult struct {
	Items      []ModerationItem `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// ModerationQueue fetches the content moderation queue, ordered by
// severity then flag time.
//
// GET moderation/queue/
func (c *Client) ModerationQueue(ctx context.Context, params ModerationQueueParams) (ModerationQueueResult, error) {
	if params.Status == "" {
		params.Status = "pending"
	}
	if params.ContentType == "" {
		params.ContentType = "all"
	}
	if params.Severity == "" {
		params.Severity = "all"
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PerPage <= 0 {
		params.PerPage = 20
	}

	query := url.Values{}
	query.Set("status", params.Status)
	query.Set("content_type", params.ContentType)
	query.Set("severity", params.Severity)
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("per_page", strconv.Itoa(params.PerPage))

	data, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "moderation/queue/",
		query:  query,
	})
	if err != nil {
		return ModerationQueueResult{}, err
	}

	var result ModerationQueueResult
	if err := decode(data, &result); err != nil {
		return ModerationQueueResult{}, err
	}
	return result, nil
}

// ModerationResult is the outcome of a moderation action.
type ModerationResult struct {
	Message      string `json:"message"`
	ModerationID int64  `json:"moderation_id"`
	NewStatus    string `json:"new_status"`
}

// ModerateContent takes an action on a single moderation queue item.
// The reason is recorded in the item's review notes; empty reasons get a
// server-side default.
//
// POST moderation/queue/
func (c *Client) ModerateContent(ctx context.Context, moderationID int64, action ModerationAction, reason string) (ModerationResult, error) {
	body := map[string]any{
		"moderation_id": moderationID,
		"action":        string(action),
		"reason":        reason,
	}

	data, err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "moderation/queue/",
		body:   body,
	})
	if err != nil {
		return ModerationResult{}, err
	}

	var result ModerationResult
	if err := decode(data, &result); err != nil {
		return ModerationResult{}, err
	}
	return result, nil
}
