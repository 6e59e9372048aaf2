package ticker

import (
	"sync"
	"time"

	"github.com/hammamikhairi/countdown/internal/domain"
)

// Compile-time interface check.
var _ domain.Scheduler = (*Manual)(nil)

// Manual is a scheduler that only fires when told to. Used to drive the
// engine deterministically.
type Manual struct {
	mu      sync.Mutex
	entries []*manualHandle
	created int
	last    time.Duration
}

// NewManual creates an idle manual scheduler.
func NewManual() *Manual { return &Manual{} }

// Every registers fn; it runs on each Advance until cancelled.
func (m *Manual) Every(d time.Duration, fn func()) domain.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := &manualHandle{owner: m, fn: fn, interval: d}
	m.entries = append(m.entries, h)
	m.created++
	m.last = d
	return h
}

// Advance fires every live callback n times, in registration order.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		for _, h := range m.snapshot() {
			if !h.cancelled() {
				h.fn()
			}
		}
	}
}

// Live returns the number of handles not yet cancelled.
func (m *Manual) Live() int {
	n := 0
	for _, h := range m.snapshot() {
		if !h.cancelled() {
			n++
		}
	}
	return n
}

// Created returns how many callbacks have ever been scheduled.
func (m *Manual) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

// LastInterval returns the interval of the most recent registration.
func (m *Manual) LastInterval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *Manual) snapshot() []*manualHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*manualHandle, len(m.entries))
	copy(out, m.entries)
	return out
}

type manualHandle struct {
	owner    *Manual
	fn       func()
	interval time.Duration
	done     bool
}

// Cancel marks the handle done and drops it from the live set.
func (h *manualHandle) Cancel() {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	if h.done {
		return
	}
	h.done = true
	entries := h.owner.entries
	for i, e := range entries {
		if e == h {
			h.owner.entries = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
}

func (h *manualHandle) cancelled() bool {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	return h.done
}
