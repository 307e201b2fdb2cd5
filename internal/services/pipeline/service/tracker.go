package service

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker counts in-flight candidate runs and lets shutdown wait for them
// with a deadline. The zero value is ready to use
type Tracker struct {
	wg       sync.WaitGroup
	inFlight atomic.Int64
}

// Go runs fn on its own goroutine and tracks it until it returns
func (t *Tracker) Go(fn func()) {
	t.wg.Add(1)
	t.inFlight.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.inFlight.Add(-1)
		fn()
	}()
}

// InFlight reports how many tracked runs have not finished yet
func (t *Tracker) InFlight() int64 { return t.inFlight.Load() }

// Wait blocks until every tracked run finishes or ctx expires, whichever
// comes first. It returns ctx.Err() on expiry; runs still in flight keep
// going, they are just no longer waited on
func (t *Tracker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
