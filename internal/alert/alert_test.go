package alert

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

func TestDefaultToneShape(t *testing.T) {
	tone := DefaultTone(44100)

	assert.Equal(t, 17640, tone.Samples())
	assert.InDelta(t, 0.001, tone.Gain(0), 1e-9)
	assert.InDelta(t, 0.2, tone.Gain(10*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.0001, tone.Gain(350*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.0001, tone.Gain(390*time.Millisecond), 1e-9)

	// Attack rises, decay falls.
	assert.Less(t, tone.Gain(2*time.Millisecond), tone.Gain(8*time.Millisecond))
	assert.Greater(t, tone.Gain(50*time.Millisecond), tone.Gain(200*time.Millisecond))
}

func TestTonePCM(t *testing.T) {
	tone := DefaultTone(8000)
	pcm := tone.PCM(1)
	require.Len(t, pcm, 2*tone.Samples())

	peak := 0
	for i := 0; i < len(pcm); i += 2 {
		s := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	// Envelope peaks at 0.2 of full scale.
	assert.LessOrEqual(t, peak, int(math.Ceil(0.2*math.MaxInt16)))
	assert.Greater(t, peak, int(math.Floor(0.1*math.MaxInt16)))

	silent := tone.PCM(0)
	assert.Equal(t, make([]byte, len(silent)), silent)
}

func TestBellWritesBEL(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)
	require.NoError(t, b.Alert(context.Background()))
	require.NoError(t, b.Alert(context.Background()))
	assert.Equal(t, "\a\a", buf.String())
}

func TestNoOp(t *testing.T) {
	n := NewNoOp(logger.New(logger.LevelOff, nil))
	assert.NoError(t, n.Alert(context.Background()))
}

func TestNewFallsBackWhenAudioMissing(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	orig := beeperFactory
	defer func() { beeperFactory = orig }()
	beeperFactory = func(int, *logger.Logger, ...BeeperOption) (domain.Alerter, error) {
		return nil, errors.Join(domain.ErrAudioUnavailable, errors.New("no device"))
	}

	a, err := New(Settings{Mode: ModeTone}, log)
	require.NoError(t, err)
	assert.IsType(t, &NoOp{}, a)
}

func TestNewModes(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	a, err := New(Settings{Mode: ModeBell, BellOut: &bytes.Buffer{}}, log)
	require.NoError(t, err)
	assert.IsType(t, &Bell{}, a)

	a, err = New(Settings{Mode: ModeNone}, log)
	require.NoError(t, err)
	assert.IsType(t, &NoOp{}, a)

	_, err = New(Settings{Mode: ModeBell}, log)
	require.Error(t, err)

	_, err = New(Settings{Mode: "siren"}, log)
	require.Error(t, err)
}
