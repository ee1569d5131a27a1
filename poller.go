package adminclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPollInterval    = 30 * time.Second
	defaultPollMaxInterval = 300 * time.Second
	defaultBackoffFactor   = 1.5
)

// pollerConfig holds mutable state during Poller construction.
type pollerConfig struct {
	interval    time.Duration
	maxInterval time.Duration
	factor      float64
	logger      *slog.Logger
}

// PollerOption configures a [Poller] during construction.
type PollerOption func(*pollerConfig) error

// WithInterval sets the base polling interval. Defaults to 30 seconds.
//
// Returns an error if the duration is zero or negative.
func WithInterval(d time.Duration) PollerOption {
	return func(cfg *pollerConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithMaxInterval sets the ceiling the interval grows towards under
// consecutive failures. Defaults to 300 seconds.
//
// Returns an error if the duration is zero or negative.
func WithMaxInterval(d time.Duration) PollerOption {
	return func(cfg *pollerConfig) error {
		if d <= 0 {
			return errors.New("max poll interval must be positive")
		}
		cfg.maxInterval = d
		return nil
	}
}

// WithBackoffFactor sets the multiplier applied to the interval after each
// failed fetch. Defaults to 1.5.
//
// Returns an error if the factor is not greater than 1.
func WithBackoffFactor(f float64) PollerOption {
	return func(cfg *pollerConfig) error {
		if f <= 1 {
			return errors.New("backoff factor must be greater than 1")
		}
		cfg.factor = f
		return nil
	}
}

// WithPollerLogger sets a custom [slog.Logger] for the poller. Defaults to
// the client's logger.
//
// Returns an error if the logger is nil.
func WithPollerLogger(logger *slog.Logger) PollerOption {
	return func(cfg *pollerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// Poller periodically fetches live updates and delivers them to a
// callback, simulating real-time dashboard refresh over plain polling.
//
// The poller fetches immediately on [Poller.Start], then waits the current
// interval between fetches. Each successful fetch carries the previous
// payload's timestamp so the server returns only newer events. On failure
// the interval is multiplied by the backoff factor up to the configured
// maximum; it never shrinks until the poller is stopped and started again.
//
// Fetch and callback run on a single goroutine, so overlapping fetches are
// structurally impossible: a tick that fires while a slow fetch is still
// running is simply absorbed.
//
// All lifecycle methods are safe for concurrent use.
type Poller struct {
	client      *Client
	interval    time.Duration
	maxInterval time.Duration
	factor      float64
	logger      *slog.Logger

	mu         sync.Mutex
	running    bool
	cancel     context.CancelFunc
	current    time.Duration
	lastUpdate time.Time
	wg         sync.WaitGroup
}

// NewPoller creates a [Poller] that fetches through client.
//
// Defaults, overridable via options:
//   - Interval: 30 seconds
//   - Max interval: 300 seconds
//   - Backoff factor: 1.5
//
// Returns an error if client is nil or any option is invalid.
func NewPoller(client *Client, opts ...PollerOption) (*Poller, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}

	cfg := &pollerConfig{
		interval:    defaultPollInterval,
		maxInterval: defaultPollMaxInterval,
		factor:      defaultBackoffFactor,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.maxInterval < cfg.interval {
		return nil, fmt.Errorf("max interval %s is below base interval %s", cfg.maxInterval, cfg.interval)
	}

	logger := cfg.logger
	if logger == nil {
		logger = client.logger
	}

	return &Poller{
		client:      client,
		interval:    cfg.interval,
		maxInterval: cfg.maxInterval,
		factor:      cfg.factor,
		logger:      logger,
	}, nil
}

// Start begins polling in a background goroutine.
//
// The first fetch happens immediately. The poller runs until [Poller.Stop]
// is called, the context is cancelled, or a fetch fails with
// [KindAuthRequired]. Starting again after Stop re-arms the poller with a
// fresh interval and no last-update watermark.
//
// Returns an error if callback is nil or the poller is already running.
func (p *Poller) Start(ctx context.Context, callback func(LiveUpdates)) error {
	if callback == nil {
		return errors.New("callback is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return errors.New("poller already running")
	}
	p.running = true
	p.current = p.interval
	p.lastUpdate = time.Time{}

	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	p.client.registerPoller(p)

	go func() {
		defer p.wg.Done()
		defer p.client.unregisterPoller(p)
		p.loop(pollCtx, callback)
	}()

	return nil
}

// Stop halts polling and waits for any in-flight fetch (and callback) to
// complete. After Stop returns, the callback will not be invoked again.
//
// Stop is idempotent and safe to call before Start.
func (p *Poller) Stop() {
	p.stopAsync()
	p.wg.Wait()
}

// stopAsync cancels the poll loop without waiting for it to exit. Used on
// auth failures, where the stopping goroutine may be the loop itself.
func (p *Poller) stopAsync() {
	p.mu.Lock()
	if p.running {
		p.running = false
		p.cancel()
	}
	p.mu.Unlock()
}

// Interval returns the current effective interval, including any failure
// backoff growth.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// loop is the single poll goroutine: fetch, deliver, sleep, repeat.
func (p *Poller) loop(ctx context.Context, callback func(LiveUpdates)) {
	for {
		p.fetchOnce(ctx, callback)

		if ctx.Err() != nil {
			return
		}

		timer := time.NewTimer(p.Interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// fetchOnce performs one live-updates fetch and delivers the payload.
func (p *Poller) fetchOnce(ctx context.Context, callback func(LiveUpdates)) {
	p.mu.Lock()
	since := p.lastUpdate
	p.mu.Unlock()

	updates, err := p.client.FetchLiveUpdates(ctx, since)
	if err != nil {
		if KindOf(err) == KindAuthRequired {
			// the client has already cancelled this poller via its auth
			// side effect; just record why the loop is ending
			p.logger.Warn("live updates stopped: authentication required")
			return
		}
		if ctx.Err() != nil {
			return
		}
		grown := p.growInterval()
		p.logger.Warn("live updates fetch failed, backing off",
			"kind", KindOf(err).String(),
			"error", err,
			"next_interval", grown.String(),
		)
		return
	}

	watermark := updates.Timestamp
	if watermark.IsZero() {
		watermark = time.Now()
	}
	p.mu.Lock()
	p.lastUpdate = watermark
	p.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	p.safeDeliver(callback, updates)
}

// growInterval multiplies the current interval by the backoff factor,
// capped at the maximum, and returns the new value. The interval only ever
// grows; Start resets it.
func (p *Poller) growInterval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := time.Duration(float64(p.current) * p.factor)
	if next > p.maxInterval {
		next = p.maxInterval
	}
	if next > p.current {
		p.current = next
	}
	return p.current
}

// safeDeliver invokes the callback with panic recovery. A panicking
// callback is logged with a correlation ID and does not kill the poll
// loop.
func (p *Poller) safeDeliver(callback func(LiveUpdates), updates LiveUpdates) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("live updates callback panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	callback(updates)
}
