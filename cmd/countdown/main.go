// Countdown is a terminal countdown timer.
//
// Usage:
//
//	countdown [--minutes N] [--seconds N] [--verbose] [--quiet]
//	countdown prefs show|clear
//	countdown beep
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/countdown/internal/alert"
	"github.com/hammamikhairi/countdown/internal/config"
	"github.com/hammamikhairi/countdown/internal/display"
	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/engine"
	"github.com/hammamikhairi/countdown/internal/input"
	"github.com/hammamikhairi/countdown/internal/logger"
	"github.com/hammamikhairi/countdown/internal/storage"
	"github.com/hammamikhairi/countdown/internal/ticker"
)

//nolint:gochecknoglobals // Populated at build time via -ldflags.
var (
	releaseVersion = "dev"
	commit         = "none"
)

// options holds the values bound to the persistent flags.
type options struct {
	configPath string
	logFile    string
	store      string
	storePath  string
	alertMode  string
	minutes    string
	seconds    string
	verbose    bool
	quiet      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "countdown",
		Short:         "A countdown timer for the terminal.",
		Long:          `Set minutes and seconds, start, pause and reset a countdown, and hear a beep when it reaches zero. The last-used values are remembered.`,
		Version:       releaseVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWidget(cmd, opts)
		},
	}
	root.Annotations = map[string]string{"commit": commit}
	root.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\n\" .DisplayName .Version (index .Annotations \"commit\")}}")

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath+")")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose/debug logging")
	f.BoolVar(&opts.quiet, "quiet", false, "disable all logging")
	f.StringVar(&opts.logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	f.StringVar(&opts.store, "store", "", "preference store backend: memory, file or sqlite")
	f.StringVar(&opts.storePath, "store-path", "", "path of the preference store")
	f.StringVar(&opts.alertMode, "alert", "", "alert on completion: tone, bell or none")

	root.Flags().StringVar(&opts.minutes, "minutes", "", "start with this many minutes (0-999)")
	root.Flags().StringVar(&opts.seconds, "seconds", "", "start with this many seconds (0-59)")

	root.AddCommand(newPrefsCmd(opts))
	root.AddCommand(newBeepCmd(opts))
	return root
}

// app is everything a command needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	store  domain.PrefsStore
	inputs *input.Manager
	closer []func()
}

func (a *app) Close() {
	for i := len(a.closer) - 1; i >= 0; i-- {
		a.closer[i]()
	}
}

// setup loads the config, applies flag overrides, then opens the log and
// the store and loads the persisted inputs.
func setup(ctx context.Context, cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, opts, cfg); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	logOut, closeLog := openLog(cfg.Log.File, cmd.ErrOrStderr())
	a.closer = append(a.closer, closeLog)

	// Third-party libraries log through the standard logger; keep them off
	// the terminal too.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.log = logger.New(level, logOut)

	store, err := storage.Open(cfg.Store.Backend, cfg.Store.Path, a.log)
	if err != nil {
		a.log.Warn("preferences will not persist: %v", err)
		store = storage.NewMemoryStore(a.log)
	}
	a.store = store
	a.closer = append(a.closer, func() {
		if err := store.Close(); err != nil {
			a.log.Warn("closing store: %v", err)
		}
	})

	a.inputs = input.NewManager(store, a.log)
	a.inputs.Load(ctx)
	return a, nil
}

// applyFlags lets explicitly set flags win over the config file and the
// environment.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Backend = opts.store
	}
	if flags.Changed("store-path") {
		cfg.Store.Path = opts.storePath
	}
	if flags.Changed("alert") {
		cfg.Alert.Mode = opts.alertMode
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if opts.verbose {
		cfg.Log.Level = logger.LevelVerbose.String()
	}
	if opts.quiet {
		cfg.Log.Level = logger.LevelOff.String()
	}
	return cfg.Validate()
}

// openLog opens the log file for appending. An empty name or "stderr" logs
// to fallback; so does a file that cannot be opened.
func openLog(name string, fallback io.Writer) (io.Writer, func()) {
	if name == "" || name == "stderr" {
		return fallback, func() {}
	}
	path, err := config.ExpandTilde(name)
	if err != nil {
		fmt.Fprintf(fallback, "warning: could not resolve log file %s: %v (falling back to stderr)\n", name, err)
		return fallback, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(fallback, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return fallback, func() {}
	}
	return f, func() { f.Close() }
}

// newAlerter builds the configured alerter and the hook that releases it.
// The bell is written through term, the writer the UI draws with.
func newAlerter(cfg *config.Config, term io.Writer, log *logger.Logger) (domain.Alerter, func(), error) {
	a, err := alert.New(alert.Settings{
		Mode:       cfg.Alert.Mode,
		SampleRate: cfg.Alert.SampleRate,
		Volume:     cfg.Alert.Volume,
		BellOut:    term,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	release := func() {}
	if b, ok := a.(*alert.Beeper); ok {
		release = b.Stop
	}
	return a, release, nil
}

func runWidget(cmd *cobra.Command, opts *options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	log := a.log

	// Seeding the fields behaves like typing into them.
	if cmd.Flags().Changed("minutes") {
		a.inputs.SetMinutes(ctx, opts.minutes)
	}
	if cmd.Flags().Changed("seconds") {
		a.inputs.SetSeconds(ctx, opts.seconds)
	}

	ui := display.NewUI(a.inputs, log)

	alerter, release, err := newAlerter(a.cfg, ui.Output(), log)
	if err != nil {
		return err
	}
	defer release()

	eng := engine.New(a.inputs, ticker.New(ctx, log), log,
		engine.WithInterval(a.cfg.TickInterval),
		engine.WithAlerter(alerter),
		engine.WithDispatch(ui.Dispatch),
		engine.WithContext(ctx),
	)
	defer eng.Close()

	log.Info("countdown starting (%dm %ds, store=%s, alert=%s)",
		a.inputs.Minutes(), a.inputs.Seconds(), a.cfg.Store.Backend, a.cfg.Alert.Mode)

	if err := ui.Run(ctx, eng); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("interrupted")
			return nil
		}
		return fmt.Errorf("running display: %w", err)
	}
	log.Info("goodbye")
	return nil
}
