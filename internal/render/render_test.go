package render

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/countdown/internal/domain"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{60, "01:00"},
		{61, "01:01"},
		{99*60 + 59, "99:59"},
		{100 * 60, "100:00"},
		{999*60 + 59, "999:59"},
		{-4, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "Format(%d)", tt.in)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for m := 0; m <= 999; m += 37 {
		for s := 0; s <= 59; s += 7 {
			want := fmt.Sprintf("%02d:%02d", m, s)
			assert.Equal(t, want, Format(m*60+s))
		}
	}
}

func TestProgressFraction(t *testing.T) {
	assert.Equal(t, 0.0, ProgressFraction(0, 0))
	assert.Equal(t, 0.0, ProgressFraction(0, 10))
	assert.Equal(t, 0.0, ProgressFraction(10, 10))
	assert.Equal(t, 0.5, ProgressFraction(10, 5))
	assert.Equal(t, 1.0, ProgressFraction(10, 0))
	assert.Equal(t, 0.0, ProgressFraction(10, 20), "clamped below")
	assert.Equal(t, 1.0, ProgressFraction(10, -5), "clamped above")
}

func TestProgressMonotone(t *testing.T) {
	const total = 97
	prev := -1.0
	for rem := total; rem >= 0; rem-- {
		f := ProgressFraction(total, rem)
		require.GreaterOrEqual(t, f, prev)
		require.False(t, math.IsNaN(f))
		prev = f
	}
	assert.Equal(t, 1.0, prev)
}

func TestTitleAndLabel(t *testing.T) {
	assert.Equal(t, "Timer", Title(false, 30))
	assert.Equal(t, "⏳ 00:30 • Timer", Title(true, 30))
	assert.Equal(t, "Start", ToggleLabel(false))
	assert.Equal(t, "Pause", ToggleLabel(true))
}

func TestProject(t *testing.T) {
	v := Project(domain.Snapshot{Total: 60, Remaining: 15, State: domain.Running})
	assert.Equal(t, View{
		Time:           "00:15",
		Progress:       0.75,
		Title:          "⏳ 00:15 • Timer",
		ToggleLabel:    "Pause",
		InputsDisabled: true,
	}, v)

	done := Project(domain.Snapshot{Total: 5, Remaining: 0, State: domain.Idle})
	assert.True(t, done.Finished)
	assert.Equal(t, "Start", done.ToggleLabel)
	assert.False(t, done.InputsDisabled)
	assert.Equal(t, 1.0, done.Progress)
}

func TestRing(t *testing.T) {
	count := func(lines []string, r rune) int {
		return strings.Count(strings.Join(lines, ""), string(r))
	}

	empty := Ring(0, 3)
	require.Len(t, empty, 7)
	for _, l := range empty {
		assert.Equal(t, 13, len([]rune(l)))
	}
	assert.Zero(t, count(empty, ringDone))
	assert.NotZero(t, count(empty, ringLeft))

	full := Ring(1, 3)
	assert.Zero(t, count(full, ringLeft))

	half := Ring(0.5, 3)
	assert.NotZero(t, count(half, ringDone))
	assert.NotZero(t, count(half, ringLeft))

	assert.Equal(t, Ring(0, 2), Ring(math.NaN(), 2))
}
