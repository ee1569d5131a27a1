package adminclient

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// gate bounds the number of simultaneous in-flight requests.
//
// gate is a thin wrapper over a weighted semaphore, which gives blocked
// acquirers FIFO wakeup rather than the free-for-all of a poll-and-sleep
// wait. The active counter is tracked separately so callers can observe
// the in-flight count without touching semaphore internals.
type gate struct {
	sem      *semaphore.Weighted
	capacity int64
	active   atomic.Int64
}

func newGate(capacity int) *gate {
	return &gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}
}

// acquire blocks until a slot is free or ctx is cancelled. On success it
// returns a release function that must be called exactly once; calling it
// more than once is a no-op. Release on every exit path is the caller's
// responsibility — a leaked slot permanently shrinks the gate.
func (g *gate) acquire(ctx context.Context) (func(), error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	g.active.Add(1)

	var once sync.Once
	release := func() {
		once.Do(func() {
			g.active.Add(-1)
			g.sem.Release(1)
		})
	}
	return release, nil
}

// inFlight returns the number of currently active requests.
func (g *gate) inFlight() int64 {
	return g.active.Load()
}
