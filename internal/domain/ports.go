package domain

import (
	"context"
	"time"
)

// PrefsStore persists the last-used input values as string key/value
// pairs. Implementations can be in-memory, a YAML file, or SQLite.
type PrefsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Alerter signals the end of a countdown. Implementations may play a tone,
// ring the terminal bell, or do nothing at all.
type Alerter interface {
	Alert(ctx context.Context) error
}

// Scheduler runs fn repeatedly every d until the returned handle is
// cancelled.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

// Handle cancels a scheduled repeating callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}
