// Package adminclient is a Go client SDK for the GupShup admin panel API.
//
// The SDK wraps every admin endpoint (dashboard statistics, analytics, user
// search and detail, the moderation queue, bulk actions, data export, and
// live updates) behind a typed facade. All facade methods funnel through a
// shared request pipeline:
//
//	facade method → concurrency gate → retry/backoff → HTTP executor
//
// The gate bounds simultaneous in-flight requests (default 5). The retry
// layer re-attempts transient failures (rate limits, 5xx, network errors)
// with linear backoff, up to a fixed ceiling (default 3 attempts). Every
// failure is classified once into a fixed [Kind] vocabulary that decides
// both retry eligibility and the user-facing message.
//
// # Quick Start
//
// Create a client with functional options and call facade methods:
//
//	client, err := adminclient.New("https://gupshup.example.com",
//	    adminclient.WithTokenSource(adminclient.StaticTokenSource(token)),
//	    adminclient.WithMaxConcurrent(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stats, err := client.DashboardStats(ctx, adminclient.DashboardStatsParams{Days: 7})
//
// # Live Updates
//
// For dashboards that need continuous updates, [Poller] repeatedly fetches
// the live-updates endpoint and delivers payloads to a callback, growing
// its interval on consecutive failures:
//
//	p, err := adminclient.NewPoller(client)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.Start(ctx, func(u adminclient.LiveUpdates) {
//	    render(u)
//	})
//	defer p.Stop()
//
// # Authentication Failures
//
// Authentication failures are special: the first auth-required error stops
// any running poller and invokes the handler registered with
// [WithAuthHandler], so the embedding application can prompt for login.
// All other error kinds are returned to the caller; [KindOf] and
// [Kind.Message] map them to user-facing notifications.
//
// # Architecture
//
// The root package holds the facade, the gate, the retry loop, and error
// classification. Supporting packages:
//
//   - internal/transport: single-shot HTTP executor with pooled connections
//   - internal/store: in-memory snapshot storage with pub/sub for watchers
//   - config: YAML configuration for the CLI
//
// The internal packages are not part of the public API and may change
// without notice.
package adminclient
