// Package ticker implements the repeating-callback schedulers the countdown
// engine runs on.
package ticker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// Compile-time interface check.
var _ domain.Scheduler = (*Ticker)(nil)

// Ticker schedules callbacks on wall-clock time. Each Every call runs its own
// goroutine driven by a time.Ticker until the handle is cancelled or the
// parent context ends.
type Ticker struct {
	ctx  context.Context
	log  *logger.Logger
	live atomic.Int32
}

// New creates a ticker whose loops stop when ctx is cancelled.
func New(ctx context.Context, log *logger.Logger) *Ticker {
	return &Ticker{ctx: ctx, log: log}
}

// Every calls fn every d on a background goroutine. fn must not block for
// long; the UI posts a message and returns.
func (t *Ticker) Every(d time.Duration, fn func()) domain.Handle {
	ctx, cancel := context.WithCancel(t.ctx)
	h := &handle{cancel: cancel}

	t.live.Add(1)
	go t.loop(ctx, h, d, fn)

	t.log.Debug("ticker: scheduled every %s", d)
	return h
}

// Live returns the number of loops still running.
func (t *Ticker) Live() int { return int(t.live.Load()) }

func (t *Ticker) loop(ctx context.Context, h *handle, d time.Duration, fn func()) {
	defer t.live.Add(-1)

	tk := time.NewTicker(d)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Debug("ticker: loop stopped")
			return
		case <-tk.C:
			if h.stopped.Load() {
				return
			}
			fn()
		}
	}
}

type handle struct {
	once    sync.Once
	cancel  context.CancelFunc
	stopped atomic.Bool
}

// Cancel stops the loop. Safe to call more than once and from inside the
// callback itself.
func (h *handle) Cancel() {
	h.once.Do(func() {
		h.stopped.Store(true)
		h.cancel()
	})
}
