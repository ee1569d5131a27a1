package adminclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed admin API call into a fixed vocabulary.
//
// The kind determines two things: whether the request pipeline will retry
// the call, and which user-facing message should be shown for the failure.
// Using a string type keeps kinds readable in logs and JSON output.
type Kind string

const (
	// KindAuthRequired indicates the admin session is missing or expired.
	// This is the only kind with a mandated side effect: the client invokes
	// its AuthHandler and any running Poller stops permanently.
	KindAuthRequired Kind = "auth-required"

	// KindPermissionDenied indicates the authenticated admin lacks the
	// permission required by the endpoint (HTTP 403).
	KindPermissionDenied Kind = "permission-denied"

	// KindValidation indicates the server rejected the request parameters
	// (HTTP 400).
	KindValidation Kind = "validation"

	// KindRateLimited indicates the server throttled the request (HTTP 429).
	KindRateLimited Kind = "rate-limited"

	// KindServerError indicates a 5xx response from the admin API.
	KindServerError Kind = "server-error"

	// KindNetworkError indicates the request never produced an HTTP
	// response: DNS failure, connection refused, or timeout.
	KindNetworkError Kind = "network-error"

	// KindRequestFailed is the catch-all for failures that fit no other
	// kind, including HTTP 404 and malformed response envelopes.
	KindRequestFailed Kind = "request-failed"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Message returns the fixed user-facing notification text for this kind.
//
// The mapping is intentionally static; callers rendering notifications
// should use this rather than the raw error text, which may contain
// server internals.
func (k Kind) Message() string {
	switch k {
	case KindAuthRequired:
		return "Your session has expired. Please log in again."
	case KindPermissionDenied:
		return "You do not have permission to perform this action."
	case KindValidation:
		return "The request was invalid. Please check your input."
	case KindRateLimited:
		return "Too many requests. Please slow down and try again."
	case KindServerError:
		return "The server encountered an error. Please try again later."
	case KindNetworkError:
		return "Could not reach the server. Check your connection."
	default:
		return "The request failed. Please try again."
	}
}

// Retryable reports whether the request pipeline may retry a failure of
// this kind. Only transient failures qualify; auth, permission, and
// validation failures are attempted exactly once.
func (k Kind) Retryable() bool {
	switch k {
	case KindRateLimited, KindServerError, KindNetworkError:
		return true
	default:
		return false
	}
}

// Error is a classified admin API failure.
//
// Error carries the classification kind, the server-provided message (when
// the response envelope included one), the HTTP status code (zero for
// transport failures), and the wrapped cause.
type Error struct {
	// Kind is the fixed-vocabulary classification of the failure.
	Kind Kind

	// Message is the server-provided error message, if any.
	Message string

	// StatusCode is the HTTP status code, or zero if the request failed
	// before a response arrived.
	StatusCode int

	// Attempts is the number of attempts made before the failure was
	// surfaced. Zero means the retry layer was not involved.
	Attempts int

	cause error
}

// NewError creates a classified [Error] with the given kind, message, and
// wrapped cause. Either message or cause may be empty/nil.
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.cause != nil {
		msg = e.cause.Error()
	}
	if msg == "" {
		msg = e.Kind.Message()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("admin api: %s (%s, status %d)", msg, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("admin api: %s (%s)", msg, e.Kind)
}

// Unwrap returns the underlying cause, enabling errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the classification kind from err.
//
// Returns [KindRequestFailed] if err is not a classified [*Error], so the
// result is always a valid kind for message lookup.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindRequestFailed
}

// IsRetryable reports whether err represents a transient failure that the
// retry layer is allowed to re-attempt.
func IsRetryable(err error) bool {
	return KindOf(err).Retryable()
}

// ClassifyStatus maps an HTTP status code to a classification kind.
//
// 2xx codes classify as [KindRequestFailed] since a successful status
// should never reach classification; the caller decides success first.
func ClassifyStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindAuthRequired
	case status == http.StatusForbidden:
		return KindPermissionDenied
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServerError
	default:
		return KindRequestFailed
	}
}
