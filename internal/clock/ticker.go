package clock

import (
	"sync"
	"time"
)

// Ticker invokes a callback once per second, used to refresh the displayed
// "now". It exists for display only — no correctness-relevant computation
// waits on it.
//
// Start is idempotent (a second call is a no-op while running) and Stop is
// safe to call repeatedly or before Start.
type Ticker struct {
	mu   sync.Mutex
	stop chan struct{}
	fn   func(time.Time)
	now  NowFunc
}

// NewTicker builds a Ticker that calls fn with the current KST instant on
// every tick. A nil now falls back to Now.
func NewTicker(now NowFunc, fn func(time.Time)) *Ticker {
	if now == nil {
		now = Now
	}
	return &Ticker{fn: fn, now: now}
}

// Start begins ticking once per second until Stop is called.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.fn(t.now())
			}
		}
	}()
}

// Stop halts ticking. Safe to call more than once or without Start.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}
