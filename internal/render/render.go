// Package render projects engine state onto the strings and numbers a
// front end draws: the MM:SS display, the progress fraction, the window
// title, and the control labels.
package render

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/countdown/internal/domain"
)

// Control labels and titles.
const (
	LabelStart = "Start"
	LabelPause = "Pause"
	LabelReset = "Reset"
	BaseTitle  = "Timer"
)

// View is everything the UI needs for one frame.
type View struct {
	Time           string
	Progress       float64
	Title          string
	ToggleLabel    string
	InputsDisabled bool
	Finished       bool
}

// Format renders seconds as MM:SS. Minutes are padded to two digits but
// never truncated, so 999 minutes renders as "999:00".
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ProgressFraction is the elapsed share of total, clamped to [0, 1]. It is
// 0 when total is 0 or the result is not finite.
func ProgressFraction(total, remaining int) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(total-remaining) / float64(total)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}

// Title is the window title: an hourglass and the remaining time while
// running, the plain name otherwise.
func Title(running bool, remaining int) string {
	if running {
		return fmt.Sprintf("⏳ %s • %s", Format(remaining), BaseTitle)
	}
	return BaseTitle
}

// ToggleLabel is the start/pause button text.
func ToggleLabel(running bool) string {
	if running {
		return LabelPause
	}
	return LabelStart
}

// Project builds the frame for a snapshot.
func Project(s domain.Snapshot) View {
	running := s.Running()
	return View{
		Time:           Format(s.Remaining),
		Progress:       ProgressFraction(s.Total, s.Remaining),
		Title:          Title(running, s.Remaining),
		ToggleLabel:    ToggleLabel(running),
		InputsDisabled: running,
		Finished:       s.Finished(),
	}
}
