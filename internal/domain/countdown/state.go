// Package countdown implements the countdown timer as a pure reducer.
//
// A State never changes in place: every operation returns the next State.
// The once-per-second driver lives in internal/runner and calls Tick; the
// reducer holds no timers, goroutines or callbacks, so there is no captured
// state that can go stale between ticks.
package countdown

import (
	"errors"
	"fmt"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
)

// ErrNothingToCount is returned by Start when no time remains.
// A finished countdown has to be Reset before it can run again.
var ErrNothingToCount = errors.New("countdown has no time remaining")

// State is the transient countdown state.
type State struct {
	RemainingSeconds int  `json:"remaining_seconds"`
	Running          bool `json:"running"`
}

// TickResult describes what a single Tick did.
type TickResult struct {
	State State
	// Decremented is true when the tick removed a second and time still remains.
	Decremented bool
	// Expired is true when this tick brought the countdown to zero.
	Expired bool
}

// New returns a stopped countdown of the given length.
func New(minutes int) (State, error) {
	return State{}.Reset(minutes)
}

// Reset sets the remaining time to minutes*60 and stops the countdown.
func (s State) Reset(minutes int) (State, error) {
	if err := domain.ValidateMinutes(minutes); err != nil {
		return s, err
	}
	return State{RemainingSeconds: minutes * 60, Running: false}, nil
}

// Start sets the countdown running. Starting a running countdown is a no-op.
func (s State) Start() (State, error) {
	if s.RemainingSeconds <= 0 {
		return State{}, ErrNothingToCount
	}
	s.Running = true
	return s, nil
}

// Pause stops the countdown and keeps the remaining time.
func (s State) Pause() State {
	s.Running = false
	return s
}

// Tick advances a running countdown by one second.
//
// Behaviour:
//   - not running: no-op, nothing reported
//   - remaining > 1: one second is removed, Decremented is set
//   - remaining <= 1: remaining is clamped to 0, running stops, Expired is set
func (s State) Tick() TickResult {
	if !s.Running {
		return TickResult{State: s}
	}

	remaining := s.RemainingSeconds - 1
	if remaining <= 0 {
		return TickResult{
			State:   State{RemainingSeconds: 0, Running: false},
			Expired: true,
		}
	}

	s.RemainingSeconds = remaining
	return TickResult{State: s, Decremented: true}
}

// Expired reports whether the countdown reached zero.
func (s State) Expired() bool {
	return s.RemainingSeconds <= 0
}

// Display renders the remaining time as MM:SS. Minutes are zero padded to two
// digits and grow to three for durations of 100 minutes or more.
func (s State) Display() string {
	remaining := s.RemainingSeconds
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}
