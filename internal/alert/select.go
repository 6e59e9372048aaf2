package alert

import (
	"fmt"
	"io"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// Alert modes.
const (
	ModeTone = "tone"
	ModeBell = "bell"
	ModeNone = "none"
)

// Settings selects and tunes the alerter.
type Settings struct {
	Mode       string
	SampleRate int
	Volume     float64
	BellOut    io.Writer
}

// beeperFactory is swapped in tests; the real device can only be opened
// once per process.
var beeperFactory = func(rate int, log *logger.Logger, opts ...BeeperOption) (domain.Alerter, error) {
	return NewBeeper(rate, log, opts...)
}

// New builds the alerter for s.Mode. A tone that cannot be set up falls
// back to the silent alerter: no sound is an accepted degraded mode.
func New(s Settings, log *logger.Logger) (domain.Alerter, error) {
	switch s.Mode {
	case ModeTone, "":
		b, err := beeperFactory(s.SampleRate, log, WithVolume(s.Volume))
		if err != nil {
			log.Warn("audio unavailable, alerts are silent: %v", err)
			return NewNoOp(log), nil
		}
		return b, nil
	case ModeBell:
		if s.BellOut == nil {
			return nil, fmt.Errorf("bell alert needs an output")
		}
		return NewBell(s.BellOut), nil
	case ModeNone:
		return NewNoOp(log), nil
	default:
		return nil, fmt.Errorf("unknown alert mode %q", s.Mode)
	}
}
