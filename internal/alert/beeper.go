package alert

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

// Audio parameters for the beep.
const (
	DefaultSampleRate = 44100
	ChannelCount      = 1
)

// cleanupDelay bounds how long playback may overrun the tone before the
// player is torn down regardless.
const cleanupDelay = 100 * time.Millisecond

// Compile-time interface check.
var _ domain.Alerter = (*Beeper)(nil)

// Beeper plays the tone through the system audio device via oto.
type Beeper struct {
	ctx    *oto.Context
	log    *logger.Logger
	tone   Tone
	volume float64
	pcm    []byte

	mu     sync.Mutex
	active *oto.Player
}

// BeeperOption configures a Beeper.
type BeeperOption func(*Beeper)

// WithVolume scales the tone, 0 to 1.
func WithVolume(v float64) BeeperOption {
	return func(b *Beeper) {
		b.volume = v
	}
}

// WithTone replaces the default tone. Its sample rate must match the one
// passed to NewBeeper.
func WithTone(t Tone) BeeperOption {
	return func(b *Beeper) {
		b.tone = t
	}
}

// NewBeeper opens the audio device. Returns an error wrapping
// domain.ErrAudioUnavailable when there is no usable output. oto allows a
// single context per process, so create one Beeper and share it.
func NewBeeper(sampleRate int, log *logger.Logger, opts ...BeeperOption) (*Beeper, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAudioUnavailable, err)
	}
	<-readyChan

	b := &Beeper{
		ctx:    ctx,
		log:    log,
		tone:   DefaultTone(sampleRate),
		volume: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.pcm = b.tone.PCM(b.volume)

	log.Debug("beeper initialized (rate=%d, %d bytes of PCM)", sampleRate, len(b.pcm))
	return b, nil
}

// Alert plays the beep and waits for it to finish, at most the tone length
// plus a short grace period. A cancelled ctx stops playback early.
func (b *Beeper) Alert(ctx context.Context) error {
	player := b.ctx.NewPlayer(bytes.NewReader(b.pcm))

	b.mu.Lock()
	b.active = player
	b.mu.Unlock()

	player.Play()
	b.log.Debug("beeper: playing")

	deadline := time.NewTimer(b.tone.Duration + cleanupDelay)
	defer deadline.Stop()
	poll := time.NewTicker(10 * time.Millisecond)
	defer poll.Stop()

wait:
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			break wait
		case <-deadline.C:
			player.Pause()
			break wait
		case <-poll.C:
		}
	}

	b.mu.Lock()
	b.active = nil
	b.mu.Unlock()

	if err := player.Close(); err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	return ctx.Err()
}

// Stop interrupts a beep in progress, if any.
func (b *Beeper) Stop() {
	b.mu.Lock()
	active := b.active
	b.mu.Unlock()

	if active != nil {
		active.Pause()
		b.log.Debug("beeper: interrupted")
	}
}
