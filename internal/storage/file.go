package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/countdown/internal/config"
	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// Compile-time interface check.
var _ domain.PrefsStore = (*FileStore)(nil)

// FileStore keeps preferences in a small YAML document of string keys to
// string values. The whole document is rewritten on every Set.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	log    *logger.Logger
}

// NewFileStore opens the YAML store at path. A leading ~ expands to the home
// directory. A missing file is treated as empty and is created on the first
// Set.
func NewFileStore(path string, log *logger.Logger) (*FileStore, error) {
	expanded, err := config.ExpandTilde(path)
	if err != nil {
		return nil, err
	}

	s := &FileStore{
		path:   expanded,
		values: make(map[string]string),
		log:    log,
	}
	if err := s.load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Path returns the resolved file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() error {
	s.log.Debug("file store: loading %s", s.path)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	s.values = values
	return nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

// Set stores value under key and writes the document to disk.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.save(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) save() error {
	s.log.Debug("file store: saving %s", s.path)
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding prefs: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Close is a no-op; every Set is already on disk.
func (s *FileStore) Close() error { return nil }
