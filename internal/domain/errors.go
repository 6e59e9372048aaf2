package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrZeroDuration     = errors.New("countdown duration is zero")
	ErrAlreadyRunning   = errors.New("countdown is already running")
	ErrNotRunning       = errors.New("countdown is not running")
	ErrAudioUnavailable = errors.New("audio output unavailable")
)
