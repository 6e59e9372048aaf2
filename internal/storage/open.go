package storage

import (
	"fmt"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default locations, one per persistent backend so switching backends never
// points one at the other's file.
const (
	DefaultFilePath   = "~/.config/countdown/prefs.yaml"
	DefaultSQLitePath = "~/.config/countdown/prefs.db"
)

// ResolvePath returns path, or the backend's default location when path is
// empty. The memory backend has no location.
func ResolvePath(backend, path string) string {
	if path != "" {
		return path
	}
	switch backend {
	case BackendFile, "":
		return DefaultFilePath
	case BackendSQLite:
		return DefaultSQLitePath
	default:
		return ""
	}
}

// Open returns the store for the named backend. An empty path selects the
// backend's default location; the memory backend ignores it.
func Open(backend, path string, log *logger.Logger) (domain.PrefsStore, error) {
	path = ResolvePath(backend, path)
	switch backend {
	case BackendMemory:
		return NewMemoryStore(log), nil
	case BackendFile, "":
		return NewFileStore(path, log)
	case BackendSQLite:
		return NewSQLiteStore(path, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
