// Package transport provides the low-level HTTP executor used by the
// admin API client.
//
// The executor performs exactly one network call per invocation: it applies
// the per-request timeout, sends the request, and returns a structured
// [Response] with the body, status code, and latency. It knows nothing about
// retries, concurrency limits, or the admin API response envelope; those
// concerns belong to the adminclient package, which layers them on top.
package transport
