package adminclient

import (
	"context"
	"net/http"
)

// Bulk target types accepted by the bulk-actions endpoint.
const (
	BulkTargetUsers      = "users"
	BulkTargetPosts      = "posts"
	BulkTargetModeration = "moderation"
)

// BulkActionRequest is the body of a bulk-actions call.
//
// ActionType depends on TargetType: users accept ban, warn, activate,
// deactivate; posts accept delete, flag; moderation accepts approve,
// delete, ignore. Params carries the action-specific fields, e.g. ban_type
// and duration for bans.
type BulkActionRequest struct {
	ActionType string         `json:"action_type"`
	TargetType string         `json:"target_type"`
	TargetIDs  []int64        `json:"target_ids"`
	Params     map[string]any `json:"params"`
}

// BulkResult summarises a bulk action: per-target successes, failures, and
// the error messages for the failures.
type BulkResult struct {
	Processed  int      `json:"processed"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// BulkAction performs a bulk operation on users, posts, or moderation
// queue items. Prefer the typed wrappers ([Client.BulkBanUsers] etc.) for
// the common cases.
//
// POST bulk-actions/
func (c *Client) BulkAction(ctx context.Context, req BulkActionRequest) (BulkResult, error) {
	if req.Params == nil {
		req.Params = map[string]any{}
	}

	data, err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "bulk-actions/",
		body:   req,
	})
	if err != nil {
		return BulkResult{}, err
	}

	var result BulkResult
	if err := decode(data, &result); err != nil {
		return BulkResult{}, err
	}
	return result, nil
}

// BulkBanUsers bans the given users.
//
// banType is "temporary" or "permanent"; durationDays applies to temporary
// bans only. The public reason shown to banned users is left to the server
// default.
func (c *Client) BulkBanUsers(ctx context.Context, userIDs []int64, banType string, durationDays int, reason string) (BulkResult, error) {
	return c.BulkAction(ctx, BulkActionRequest{
		ActionType: "ban",
		TargetType: BulkTargetUsers,
		TargetIDs:  userIDs,
		Params: map[string]any{
			"ban_type":      banType,
			"duration":      durationDays,
			"reason":        reason,
			"public_reason": "",
		},
	})
}

// BulkWarnUsers issues a warning to the given users.
func (c *Client) BulkWarnUsers(ctx context.Context, userIDs []int64, warningType, severity, title, message string) (BulkResult, error) {
	return c.BulkAction(ctx, BulkActionRequest{
		ActionType: "warn",
		TargetType: BulkTargetUsers,
		TargetIDs:  userIDs,
		Params: map[string]any{
			"warning_type": warningType,
			"severity":     severity,
			"title":        title,
			"message":      message,
		},
	})
}

// BulkActivateUsers re-activates the given user accounts.
func (c *Client) BulkActivateUsers(ctx context.Context, userIDs []int64) (BulkResult, error) {
	return c.BulkAction(ctx, BulkActionRequest{
		ActionType: "activate",
		TargetType: BulkTargetUsers,
		TargetIDs:  userIDs,
	})
}

// BulkDeactivateUsers deactivates the given user accounts.
func (c *Client) BulkDeactivateUsers(ctx context.Context, userIDs []int64) (BulkResult, error) {
	return c.BulkAction(ctx, BulkActionRequest{
		ActionType: "deactivate",
		TargetType: BulkTargetUsers,
		TargetIDs:  userIDs,
	})
}

// BulkModerate applies a moderation action to multiple queue items.
func (c *Client) BulkModerate(ctx context.Context, moderationIDs []int64, action ModerationAction, reason string) (BulkResult, error) {
	return c.BulkAction(ctx, BulkActionRequest{
		ActionType: string(action),
		TargetType: BulkTargetModeration,
		TargetIDs:  moderationIDs,
		Params: map[string]any{
			"reason": reason,
		},
	})
}
