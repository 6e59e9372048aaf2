// Package domain holds the countdown types and the ports the engine and
// front ends depend on.
package domain

// RunState is the engine's lifecycle state. A paused countdown is Idle with
// a non-zero remaining value.
type RunState int

const (
	Idle RunState = iota
	Running
)

// String returns a human-readable run state.
func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the engine state, in whole seconds.
type Snapshot struct {
	Total     int
	Remaining int
	State     RunState
}

// Running reports whether the snapshot was taken while ticking.
func (s Snapshot) Running() bool { return s.State == Running }

// Paused reports whether a started countdown is on hold.
func (s Snapshot) Paused() bool {
	return s.State == Idle && s.Remaining > 0 && s.Remaining < s.Total
}

// Finished reports whether the countdown ran down to zero.
func (s Snapshot) Finished() bool {
	return s.State == Idle && s.Total > 0 && s.Remaining == 0
}
