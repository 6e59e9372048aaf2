package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/countdown/internal/config"
	"github.com/hammamikhairi/countdown/internal/input"
	"github.com/hammamikhairi/countdown/internal/logger"
	"github.com/hammamikhairi/countdown/internal/storage"
)

// run executes the CLI in-process with an isolated working directory and
// config path, returning stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	base := []string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--log-file", "stderr",
		"--quiet",
	}
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(base, args...))

	err := cmd.Execute()
	return out.String(), err
}

// seed stores field values the way an edit in the widget does.
func seed(t *testing.T, backend, path, minutes, seconds string) {
	t.Helper()
	ctx := context.Background()
	log := logger.New(logger.LevelOff, nil)

	st, err := storage.Open(backend, path, log)
	require.NoError(t, err)
	in := input.NewManager(st, log)
	in.SetMinutes(ctx, minutes)
	in.SetSeconds(ctx, seconds)
	require.NoError(t, st.Close())
}

func TestPrefsShowDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	store := filepath.Join(dir, "prefs.yaml")

	out, err := run(t, dir, "prefs", "show", "--store", "file", "--store-path", store)
	require.NoError(t, err)
	assert.Contains(t, out, "minutes: 1\n")
	assert.Contains(t, out, "seconds: 0\n")
	assert.Contains(t, out, "01:00")
	assert.Contains(t, out, store)
}

func TestPrefsShowReadsStoreAndClearResets(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			store := filepath.Join(dir, "prefs."+backend)

			seed(t, backend, store, "25", "75")

			out, err := run(t, dir, "prefs", "show", "--store", backend, "--store-path", store)
			require.NoError(t, err)
			assert.Contains(t, out, "minutes: 25\n")
			assert.Contains(t, out, "seconds: 59\n")
			assert.Contains(t, out, "25:59")

			out, err = run(t, dir, "prefs", "clear", "--store", backend, "--store-path", store)
			require.NoError(t, err)
			assert.Contains(t, out, "01:00")

			out, err = run(t, dir, "prefs", "show", "--store", backend, "--store-path", store)
			require.NoError(t, err)
			assert.Contains(t, out, "minutes: 1\n")
		})
	}
}

func TestConfigFileIsHonoured(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	store := filepath.Join(dir, "from-config.yaml")

	cfg := "store:\n  backend: file\n  path: " + store + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o600))

	out, err := run(t, dir, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, store)
}

func TestInvalidFlagsAreRejected(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := run(t, dir, "prefs", "show", "--store", "redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	_, err = run(t, dir, "beep", "--alert", "siren", "--store", "memory")
	require.Error(t, err)
}

func TestBeepDisabled(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := run(t, dir, "beep", "--alert", "none", "--store", "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestBeepBell(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, dir, "beep", "--alert", "bell", "--store", "memory")
	require.NoError(t, err)
	assert.Equal(t, "\a", out)
}

func TestOpenLogFallsBack(t *testing.T) {
	var fallback bytes.Buffer

	w, closeFn := openLog("stderr", &fallback)
	closeFn()
	assert.Same(t, &fallback, w)

	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "countdown.log")
	w, closeFn = openLog(path, &fallback)
	defer closeFn()
	assert.NotSame(t, &fallback, w)
	assert.FileExists(t, path)
}

func TestSwitchingBackendsOnDefaultPaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	seed(t, "sqlite", "", "7", "0")
	seed(t, "file", "", "3", "0")

	out, err := run(t, dir, "prefs", "show", "--store", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "minutes: 7\n")
	assert.Contains(t, out, "prefs.db")

	out, err = run(t, dir, "prefs", "show", "--store", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "minutes: 3\n")
	assert.Contains(t, out, "prefs.yaml")
}

func TestBellGoesThroughTerminalWriter(t *testing.T) {
	cfg := config.Default()
	cfg.Alert.Mode = "bell"

	var term bytes.Buffer
	a, release, err := newAlerter(cfg, &term, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	defer release()

	require.NoError(t, a.Alert(context.Background()))
	assert.Equal(t, "\a", term.String())
}
