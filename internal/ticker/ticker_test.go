package ticker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/countdown/internal/domain"
	"github.com/hammamikhairi/countdown/internal/logger"
)

func TestTickerFiresAndCancels(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	tk := New(context.Background(), log)

	var fired atomic.Int32
	h := tk.Every(20*time.Millisecond, func() { fired.Add(1) })

	require.Eventually(t, func() bool { return fired.Load() >= 2 }, time.Second, 5*time.Millisecond)

	h.Cancel()
	h.Cancel() // idempotent
	require.Eventually(t, func() bool { return tk.Live() == 0 }, time.Second, 5*time.Millisecond)

	after := fired.Load()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, after, fired.Load(), "no callbacks after cancel")
}

func TestTickerCancelFromCallback(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	tk := New(context.Background(), log)

	var fired atomic.Int32
	handles := make(chan domain.Handle, 1)
	done := make(chan struct{})
	handles <- tk.Every(10*time.Millisecond, func() {
		if fired.Add(1) == 1 {
			(<-handles).Cancel()
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
	require.Eventually(t, func() bool { return tk.Live() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestTickerStopsWithParentContext(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ctx, cancel := context.WithCancel(context.Background())
	tk := New(ctx, log)

	tk.Every(10*time.Millisecond, func() {})
	tk.Every(10*time.Millisecond, func() {})
	assert.Equal(t, 2, tk.Live())

	cancel()
	require.Eventually(t, func() bool { return tk.Live() == 0 }, time.Second, 5*time.Millisecond)
}

func TestManual(t *testing.T) {
	m := NewManual()

	var a, b int
	ha := m.Every(time.Second, func() { a++ })
	m.Every(2*time.Second, func() { b++ })

	m.Advance(3)
	assert.Equal(t, 3, a)
	assert.Equal(t, 3, b)
	assert.Equal(t, 2, m.Live())
	assert.Equal(t, 2*time.Second, m.LastInterval())

	ha.Cancel()
	m.Advance(1)
	assert.Equal(t, 3, a)
	assert.Equal(t, 4, b)
	assert.Equal(t, 1, m.Live())
	assert.Equal(t, 2, m.Created())
}

func TestManualDropsCancelledHandles(t *testing.T) {
	m := NewManual()

	for i := 0; i < 100; i++ {
		h := m.Every(time.Second, func() {})
		h.Cancel()
		h.Cancel()
	}
	keep := 0
	m.Every(time.Second, func() { keep++ })

	m.Advance(2)
	assert.Equal(t, 2, keep)
	assert.Equal(t, 1, m.Live())
	assert.Len(t, m.snapshot(), 1)
	assert.Equal(t, 101, m.Created())
}
