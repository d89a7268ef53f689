package module

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/rotorz/capri/internal/output"
)

// DefaultMaxFetches bounds concurrent fetches when no limit is given.
const DefaultMaxFetches = 4

// Async adapts a SyncHost into an AsyncHost: each fetch runs on its own
// goroutine, at most limit at a time, and delivery happens on the loop.
type Async struct {
	host SyncHost
	loop *Loop
	sem  *semaphore.Weighted
}

// NewAsync wraps host. limit <= 0 selects DefaultMaxFetches.
func NewAsync(host SyncHost, loop *Loop, limit int64) *Async {
	if limit <= 0 {
		limit = DefaultMaxFetches
	}
	return &Async{
		host: host,
		loop: loop,
		sem:  semaphore.NewWeighted(limit),
	}
}

// Loop returns the loop deliveries are posted to.
func (a *Async) Loop() *Loop {
	return a.loop
}

// FetchAsync implements AsyncHost.
func (a *Async) FetchAsync(name string, deliver func(*Source, error) error) {
	a.loop.Go(func(ctx context.Context) func() error {
		if err := a.sem.Acquire(ctx, 1); err != nil {
			return func() error {
				return deliver(nil, fmt.Errorf("fetching module %q: %w", name, err))
			}
		}
		defer a.sem.Release(1)

		output.Debug("fetching module", "name", name)
		src, err := a.host.Fetch(name)
		return func() error { return deliver(src, err) }
	})
}
