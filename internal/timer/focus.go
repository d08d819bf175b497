package timer

import (
	"fmt"
	"time"
)

// DefaultFocusMinutes is the preset selected when none is given.
const DefaultFocusMinutes = 10

// FocusStatus is the focus timer state.
type FocusStatus string

const (
	FocusIdle      FocusStatus = "idle"
	FocusRunning   FocusStatus = "running"
	FocusPaused    FocusStatus = "paused"
	FocusCompleted FocusStatus = "completed"
)

// Focus is a study countdown.
type Focus struct {
	duration  time.Duration
	remaining time.Duration
	status    FocusStatus
}

// FocusState is a snapshot of the countdown.
type FocusState struct {
	Status    FocusStatus `json:"status"`
	Duration  int         `json:"duration_seconds"`
	Remaining int         `json:"remaining_seconds"`
	Display   string      `json:"display"`
	Progress  float64     `json:"progress"`
}

// NewFocus creates an idle countdown of minutes, or the default when
// minutes is zero.
func NewFocus(minutes int) (*Focus, error) {
	f := &Focus{}
	if err := f.Reset(minutes); err != nil {
		return nil, err
	}
	return f, nil
}

// Reset returns to idle with a new duration.
func (f *Focus) Reset(minutes int) error {
	if minutes == 0 {
		minutes = DefaultFocusMinutes
	}
	if minutes < 0 {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, minutes)
	}
	f.duration = time.Duration(minutes) * time.Minute
	f.remaining = f.duration
	f.status = FocusIdle
	return nil
}

// Start runs an idle or paused countdown.
func (f *Focus) Start() error {
	switch f.status {
	case FocusIdle, FocusPaused:
		f.status = FocusRunning
		return nil
	case FocusRunning:
		return nil
	}
	return fmt.Errorf("%w: start from %s", ErrInvalidTransition, f.status)
}

// Pause holds a running countdown.
func (f *Focus) Pause() error {
	if f.status != FocusRunning {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, f.status)
	}
	f.status = FocusPaused
	return nil
}

// Tick counts down by d. Reaching zero completes the timer.
func (f *Focus) Tick(d time.Duration) {
	if f.status != FocusRunning || d <= 0 {
		return
	}
	f.remaining -= d
	if f.remaining <= 0 {
		f.remaining = 0
		f.status = FocusCompleted
	}
}

// Status returns the current state.
func (f *Focus) Status() FocusStatus {
	return f.status
}

// State snapshots the countdown.
func (f *Focus) State() FocusState {
	secs := ceilSeconds(f.remaining)
	progress := 0.0
	if f.duration > 0 {
		progress = 1 - float64(f.remaining)/float64(f.duration)
	}
	return FocusState{
		Status:    f.status,
		Duration:  int(f.duration / time.Second),
		Remaining: secs,
		Display:   fmt.Sprintf("%02d:%02d", secs/60, secs%60),
		Progress:  progress,
	}
}
