package input

import (
	"context"
	"errors"
	"strconv"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// Keys under which the last-used field values are stored.
const (
	KeyMinutes = "timer:minutes"
	KeySeconds = "timer:seconds"
)

// Defaults used when nothing has been persisted yet.
const (
	DefaultMinutes = 1
	DefaultSeconds = 0
)

// Manager owns the two input fields. Every edit is clamped in place and
// written through to the store. Store failures are logged and otherwise
// ignored; the fields always hold a valid value.
type Manager struct {
	store   domain.PrefsStore
	log     *logger.Logger
	minutes int
	seconds int
}

// NewManager creates a manager holding the default values. Call Load to
// pick up persisted values.
func NewManager(store domain.PrefsStore, log *logger.Logger) *Manager {
	return &Manager{
		store:   store,
		log:     log,
		minutes: DefaultMinutes,
		seconds: DefaultSeconds,
	}
}

// Load reads the persisted values. Missing entries and read failures leave
// the defaults in place.
func (m *Manager) Load(ctx context.Context) {
	m.minutes = m.loadField(ctx, KeyMinutes, DefaultMinutes, MinMinutes, MaxMinutes)
	m.seconds = m.loadField(ctx, KeySeconds, DefaultSeconds, MinSeconds, MaxSeconds)
	m.log.Debug("input: loaded %dm %ds", m.minutes, m.seconds)
}

func (m *Manager) loadField(ctx context.Context, key string, def, min, max int) int {
	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.log.Warn("input: reading %s: %v", key, err)
		}
		return def
	}
	return ClampInt(raw, min, max)
}

// Minutes returns the clamped minutes value.
func (m *Manager) Minutes() int { return m.minutes }

// Seconds returns the clamped seconds value.
func (m *Manager) Seconds() int { return m.seconds }

// MinutesText returns the minutes value as shown in its field.
func (m *Manager) MinutesText() string { return strconv.Itoa(m.minutes) }

// SecondsText returns the seconds value as shown in its field.
func (m *Manager) SecondsText() string { return strconv.Itoa(m.seconds) }

// TotalSeconds returns minutes*60 + seconds.
func (m *Manager) TotalSeconds() int {
	return m.minutes*60 + m.seconds
}

// SetMinutes clamps raw into the minutes field, persists both fields and
// returns the normalized value.
func (m *Manager) SetMinutes(ctx context.Context, raw string) int {
	m.minutes = ClampInt(raw, MinMinutes, MaxMinutes)
	m.persist(ctx)
	return m.minutes
}

// SetSeconds clamps raw into the seconds field, persists both fields and
// returns the normalized value.
func (m *Manager) SetSeconds(ctx context.Context, raw string) int {
	m.seconds = ClampInt(raw, MinSeconds, MaxSeconds)
	m.persist(ctx)
	return m.seconds
}

// StepMinutes adds delta to the minutes field, staying within bounds.
func (m *Manager) StepMinutes(ctx context.Context, delta int) int {
	return m.SetMinutes(ctx, strconv.Itoa(m.minutes+delta))
}

// StepSeconds adds delta to the seconds field, staying within bounds.
func (m *Manager) StepSeconds(ctx context.Context, delta int) int {
	return m.SetSeconds(ctx, strconv.Itoa(m.seconds+delta))
}

// Reset restores the defaults and persists them.
func (m *Manager) Reset(ctx context.Context) {
	m.minutes = DefaultMinutes
	m.seconds = DefaultSeconds
	m.persist(ctx)
}

func (m *Manager) persist(ctx context.Context) {
	if err := m.store.Set(ctx, KeyMinutes, m.MinutesText()); err != nil {
		m.log.Warn("input: saving %s: %v", KeyMinutes, err)
	}
	if err := m.store.Set(ctx, KeySeconds, m.SecondsText()); err != nil {
		m.log.Warn("input: saving %s: %v", KeySeconds, err)
	}
}
