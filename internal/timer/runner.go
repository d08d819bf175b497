package timer

import (
	"context"
	"sync"
	"time"
)

// Ticker is a periodic tick source that must be stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker wraps time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

// Runner drives a tick function from an owned ticker on one goroutine. The
// ticker is stopped on every exit path: Stop, Close, a tick function that
// returns false, and cancellation of the start context.
type Runner struct {
	newTicker TickerFunc
	interval  time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a runner ticking every interval. A nil newTicker uses
// real time.
func NewRunner(interval time.Duration, newTicker TickerFunc) *Runner {
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	return &Runner{newTicker: newTicker, interval: interval}
}

// Start launches the loop, replacing any loop already running. tick is
// called with the interval on every tick; returning false ends the loop.
func (r *Runner) Start(ctx context.Context, tick func(time.Duration) bool) {
	r.Stop()

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t := r.newTicker(r.interval)
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				if !tick(r.interval) {
					return
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Close is Stop, for use with defer.
func (r *Runner) Close() error {
	r.Stop()
	return nil
}
