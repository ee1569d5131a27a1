package adminclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Pagination is the page metadata returned by list endpoints.
type Pagination struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// UserSearchFilters are the filters for [Client.SearchUsers].
//
// Empty values are omitted from the query entirely; the server applies its
// own defaults (all statuses, page 1, 20 per page).
type UserSearchFilters struct {
	// Keyword matches against username, email, name, and phone number.
	Keyword string

	// Status filters by account state: "active", "inactive", "banned",
	// or "verified". Empty means all.
	Status string

	// State filters by the user's self-reported state/region.
	State string

	// Verified filters by verification flag: "true" or "false".
	// Empty means both.
	Verified string

	// Page is the 1-based result page. Zero means server default (1).
	Page int

	// PerPage is the page size, capped server-side at 100.
	// Zero means server default (20).
	PerPage int
}

// UserSummary is one row of a user search result.
type UserSummary struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Location       string    `json:"location"`
	AvatarURL      string    `json:"avatar_url"`
	IsActive       bool      `json:"is_active"`
	IsVerified     bool      `json:"is_verified"`
	IsBanned       bool      `json:"is_banned"`
	DateJoined     time.Time `json:"date_joined"`
	PostsCount     int       `json:"posts_count"`
	WarningsCount  int       `json:"warnings_count"`
	FollowersCount int       `json:"followers_count"`
}

// UserSearchResult is the paginated result of a user search.
type UserSearchResult struct {
	Items      []UserSummary `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// SearchUsers searches users with the given filters.
//
// GET users/search/
func (c *Client) SearchUsers(ctx context.Context, filters UserSearchFilters) (UserSearchResult, error) {
	query := url.Values{}
	setNonEmpty(query, "keyword", filters.Keyword)
	setNonEmpty(query, "status", filters.Status)
	setNonEmpty(query, "state", filters.State)
	setNonEmpty(query, "verified", filters.Verified)
	setPositive(query, "page", filters.Page)
	setPositive(query, "per_page", filters.PerPage)

	data, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   "users/search/",
		query:  query,
	})
	if err != nil {
		return UserSearchResult{}, err
	}

	var result UserSearchResult
	if err := decode(data, &result); err != nil {
		return UserSearchResult{}, err
	}
	return result, nil
}

// UserStats are the aggregate counters on a user detail view.
type UserStats struct {
	PostsCount     int `json:"posts_count"`
	CommentsCount  int `json:"comments_count"`
	LikesGiven     int `json:"likes_given"`
	LikesReceived  int `json:"likes_received"`
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	WarningsCount  int `json:"warnings_count"`
	TotalWarnings  int `json:"total_warnings"`
}

// BanInfo describes a user's current ban record, if any.
type BanInfo struct {
	IsBanned  bool       `json:"is_banned"`
	BanType   string     `json:"ban_type"`
	BannedAt  *time.Time `json:"banned_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	Reason    string     `json:"reason"`
	Admin     string     `json:"admin"`
}

// UserWarning is one warning issued against a user.
type UserWarning struct {
	ID          int64     `json:"id"`
	WarningType string    `json:"warning_type"`
	Severity    string    `json:"severity"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	AdminName   string    `json:"admin__username"`
}

// UserDetail is the full admin view of a single user.
type UserDetail struct {
	ID             int64            `json:"id"`
	Username       string           `json:"username"`
	Email          string           `json:"email"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	FullName       string           `json:"full_name"`
	PhoneNumber    string           `json:"phone_number"`
	City           string           `json:"city"`
	State          string           `json:"state"`
	Bio            string           `json:"bio"`
	IsActive       bool             `json:"is_active"`
	IsVerified     bool             `json:"is_verified"`
	DateJoined     time.Time        `json:"date_joined"`
	LastLogin      *time.Time       `json:"last_login"`
	ProfilePicture string           `json:"profile_picture"`
	Stats          UserStats        `json:"stats"`
	RecentPosts    []map[string]any `json:"recent_posts"`
	RecentComments []map[string]any `json:"recent_comments"`
	Warnings       []UserWarning    `json:"warnings"`
	BanInfo        BanInfo          `json:"ban_info"`
}

// UserDetail fetches detailed information about one user.
//
// GET users/{id}/
func (c *Client) UserDetail(ctx context.Context, userID int64) (UserDetail, error) {
	data, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("users/%d/", userID),
	})
	if err != nil {
		return UserDetail{}, err
	}

	var detail UserDetail
	if err := decode(data, &detail); err != nil {
		return UserDetail{}, err
	}
	return detail, nil
}

// TimelineParams are the parameters for [Client.UserTimeline]. Zero values
// are omitted; the server defaults to 30 days, page 1.
type TimelineParams struct {
	Days int
	Page int
}

// TimelineEntry is one activity item in a user's timeline: a post, a
// comment, or a warning.
type TimelineEntry struct {
	Type      string         `json:"type"`
	ID        int64          `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"metadata"`
}

// TimelineResult is the paginated result of a timeline fetch.
type TimelineResult struct {
	Items      []TimelineEntry `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// UserTimeline fetches a user's recent activity, newest first.
//
// GET users/{id}/timeline/
func (c *Client) UserTimeline(ctx context.Context, userID int64, params TimelineParams) (TimelineResult, error) {
	query := url.Values{}
	setPositive(query, "days", params.Days)
	setPositive(query, "page", params.Page)

	data, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("users/%d/timeline/", userID),
		query:  query,
	})
	if err != nil {
		return TimelineResult{}, err
	}

	var result TimelineResult
	if err := decode(data, &result); err != nil {
		return TimelineResult{}, err
	}
	return result, nil
}

// setNonEmpty adds key=value to the query unless value is empty.
func setNonEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// setPositive adds key=value to the query unless value is zero or negative.
func setPositive(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
