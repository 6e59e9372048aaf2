// Package config loads the widget settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvStore     = "COUNTDOWN_STORE"
	EnvStorePath = "COUNTDOWN_STORE_PATH"
	EnvAlert     = "COUNTDOWN_ALERT"
	EnvLogLevel  = "COUNTDOWN_LOG_LEVEL"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "~/.config/countdown/config.yaml"

// Config is the full widget configuration.
type Config struct {
	Store        StoreConfig   `yaml:"store"`
	Alert        AlertConfig   `yaml:"alert"`
	Log          LogConfig     `yaml:"log"`
	TickInterval time.Duration `yaml:"tick_interval" validate:"gt=0"`
}

// StoreConfig selects where the last-used field values live. An empty Path
// means the backend's own default location.
type StoreConfig struct {
	Backend string `yaml:"backend" validate:"oneof=memory file sqlite"`
	Path    string `yaml:"path"`
}

// AlertConfig tunes the completion alert.
type AlertConfig struct {
	Mode       string  `yaml:"mode" validate:"oneof=tone bell none"`
	SampleRate int     `yaml:"sample_rate" validate:"min=8000,max=192000"`
	Volume     float64 `yaml:"volume" validate:"min=0,max=1"`
}

// LogConfig sets the log verbosity and destination.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=off normal verbose"`
	File  string `yaml:"file"`
}

// Default returns a config that works with no file present.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "file",
		},
		Alert: AlertConfig{
			Mode:       "tone",
			SampleRate: 44100,
			Volume:     1,
		},
		Log: LogConfig{
			Level: "normal",
			File:  "~/.cache/countdown/countdown.log",
		},
		TickInterval: time.Second,
	}
}

// Load reads the YAML file at path over the defaults, then applies .env and
// environment overrides and validates the result. An empty path means
// DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	expanded, err := ExpandTilde(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", expanded, err)
		}
	}

	_ = godotenv.Load()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from COUNTDOWN_* variables when set.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvStore)); v != "" {
		c.Store.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorePath)); v != "" {
		c.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAlert)); v != "" {
		c.Alert.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func validate() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
