// Package engine implements the countdown state machine.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// Source supplies the configured duration. The input manager satisfies it.
type Source interface {
	TotalSeconds() int
}

// TickID identifies the tick stream a callback belongs to. Ticks carrying
// a stale ID (from a stream that was cancelled) are ignored.
type TickID uint64

// Option configures the engine.
type Option func(*Engine)

// WithInterval sets the tick period. One tick always removes one second
// from the remaining time; a shorter interval only speeds the clock up.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.interval = d
	}
}

// WithAlerter sets what fires when the countdown reaches zero.
func WithAlerter(a domain.Alerter) Option {
	return func(e *Engine) {
		e.alerter = a
	}
}

// WithOnChange registers the redraw hook. It runs after every state change,
// outside the engine lock.
func WithOnChange(fn func(domain.Snapshot)) Option {
	return func(e *Engine) {
		e.onChange = fn
	}
}

// WithDispatch overrides how scheduler callbacks reach the engine. The
// default calls TickFor directly on the scheduler goroutine; a UI passes a
// function that posts the ID to its event loop and calls TickFor there.
func WithDispatch(fn func(TickID)) Option {
	return func(e *Engine) {
		e.dispatch = fn
	}
}

// WithContext sets the context handed to the alerter.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) {
		e.ctx = ctx
	}
}

// Engine owns the total and remaining seconds, the run state, and at most
// one live tick handle.
type Engine struct {
	source   Source
	sched    domain.Scheduler
	alerter  domain.Alerter
	log      *logger.Logger
	interval time.Duration
	onChange func(domain.Snapshot)
	dispatch func(TickID)
	ctx      context.Context

	mu        sync.Mutex
	total     int
	remaining int
	state     domain.RunState
	handle    domain.Handle
	stream    TickID
	alerts    int
}

// New creates an engine with total and remaining taken from source.
func New(source Source, sched domain.Scheduler, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		sched:    sched,
		log:      log,
		interval: time.Second,
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dispatch == nil {
		e.dispatch = func(id TickID) { e.TickFor(id) }
	}

	e.total = source.TotalSeconds()
	e.remaining = e.total
	return e
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{Total: e.total, Remaining: e.remaining, State: e.state}
}

// Alerts returns how many times the countdown has reached zero.
func (e *Engine) Alerts() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alerts
}

// Start begins ticking from Idle. The total is re-read from the source; a
// zero total refuses to start. A finished or out-of-range remaining value
// is reset to the total, otherwise a paused countdown resumes.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.state == domain.Running {
		e.mu.Unlock()
		return domain.ErrAlreadyRunning
	}

	e.total = e.source.TotalSeconds()
	if e.total <= 0 {
		e.mu.Unlock()
		e.log.Debug("engine: refusing to start a zero-length countdown")
		return domain.ErrZeroDuration
	}
	if e.remaining <= 0 || e.remaining > e.total {
		e.remaining = e.total
	}

	e.cancelLocked()
	e.stream++
	id := e.stream
	e.state = domain.Running
	e.handle = e.sched.Every(e.interval, func() { e.dispatch(id) })

	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.log.Info("engine: started (%ds of %ds left)", snap.Remaining, snap.Total)
	e.notify(snap)
	return nil
}

// Pause stops ticking and keeps the remaining time.
func (e *Engine) Pause() error {
	e.mu.Lock()
	if e.state != domain.Running {
		e.mu.Unlock()
		return domain.ErrNotRunning
	}
	e.cancelLocked()
	e.state = domain.Idle
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.log.Info("engine: paused at %ds", snap.Remaining)
	e.notify(snap)
	return nil
}

// Toggle starts from Idle and pauses from Running.
func (e *Engine) Toggle() error {
	if e.Snapshot().Running() {
		return e.Pause()
	}
	return e.Start()
}

// Reset re-reads the total, refills the remaining time and returns to Idle
// from any state.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.total = e.source.TotalSeconds()
	e.remaining = e.total
	e.cancelLocked()
	e.state = domain.Idle
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.log.Info("engine: reset to %ds", snap.Total)
	e.notify(snap)
}

// InputsChanged recomputes total and remaining from the source. Ignored
// while running. Reports whether anything was recomputed.
func (e *Engine) InputsChanged() bool {
	e.mu.Lock()
	if e.state == domain.Running {
		e.mu.Unlock()
		return false
	}
	e.total = e.source.TotalSeconds()
	e.remaining = e.total
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
	return true
}

// Tick removes one second. Reaching exactly zero stops the countdown and
// fires the alert once. Nothing happens when no time is left.
func (e *Engine) Tick() {
	e.mu.Lock()
	e.tickLocked()
}

// TickFor ticks only if id belongs to the live tick stream. Late ticks from
// a cancelled stream are dropped. Reports whether the tick was applied.
func (e *Engine) TickFor(id TickID) bool {
	e.mu.Lock()
	if id != e.stream || e.state != domain.Running {
		e.mu.Unlock()
		e.log.Debug("engine: dropping stale tick %d", id)
		return false
	}
	e.tickLocked()
	return true
}

// tickLocked is entered with e.mu held and releases it.
func (e *Engine) tickLocked() {
	if e.remaining <= 0 {
		e.mu.Unlock()
		return
	}

	e.remaining--
	finished := e.remaining == 0
	if finished {
		e.cancelLocked()
		e.state = domain.Idle
		e.alerts++
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
	if finished {
		e.log.Info("engine: countdown finished")
		e.fireAlert()
	}
}

// Close cancels any live tick stream.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
	e.state = domain.Idle
}

func (e *Engine) cancelLocked() {
	if e.handle != nil {
		e.handle.Cancel()
		e.handle = nil
	}
}

func (e *Engine) notify(snap domain.Snapshot) {
	if e.onChange != nil {
		e.onChange(snap)
	}
}

// fireAlert plays the alert without waiting for it. A missing or broken
// audio device is an accepted degraded mode, so the error is dropped.
func (e *Engine) fireAlert() {
	if e.alerter == nil {
		return
	}
	a, ctx := e.alerter, e.ctx
	go func() {
		if err := a.Alert(ctx); err != nil {
			e.log.Debug("engine: alert failed: %v", err)
		}
	}()
}
