package domain

import (
	"errors"
	"fmt"
	"time"
)

const SchemaVersion = 1

type Status string

const (
	StatusStopped Status = "stopped"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

var ErrInvalidTransition = errors.New("invalid ride transition")

// TransitionError reports an operation that the current status does not allow.
type TransitionError struct {
	Op   string
	From Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s ride", e.Op, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// State is the single active ride. Accumulated holds the closed running
// intervals; LastResume opens the current one and is zero unless Running.
// StopPending marks a pause made by BeginStop, the only pause AbortStop undoes.
type State struct {
	RideID      string        `json:"ride_id"`
	Status      Status        `json:"status"`
	StartedAt   time.Time     `json:"started_at"`
	Accumulated time.Duration `json:"accumulated"`
	LastResume  time.Time     `json:"last_resume"`
	StopPending bool          `json:"stop_pending,omitempty"`
}

// Finished is what a stopped ride leaves behind.
type Finished struct {
	RideID    string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}

func Idle() State {
	return State{Status: StatusStopped}
}

func (s State) Current() Status {
	if s.Status == "" {
		return StatusStopped
	}
	return s.Status
}

// Start begins a new ride from Stopped, or resumes a Paused one. rideID is
// only used for a new ride.
func (s State) Start(rideID string, now time.Time) (State, error) {
	switch s.Current() {
	case StatusStopped:
		return State{RideID: rideID, Status: StatusRunning, StartedAt: now, LastResume: now}, nil
	case StatusPaused:
		return s.Resume(now)
	default:
		return s, &TransitionError{Op: "start", From: s.Current()}
	}
}

func (s State) Pause(now time.Time) (State, error) {
	if s.Current() != StatusRunning {
		return s, &TransitionError{Op: "pause", From: s.Current()}
	}
	next := s
	next.Accumulated += interval(s.LastResume, now)
	next.LastResume = time.Time{}
	next.Status = StatusPaused
	return next, nil
}

func (s State) Resume(now time.Time) (State, error) {
	if s.Current() != StatusPaused {
		return s, &TransitionError{Op: "resume", From: s.Current()}
	}
	next := s
	next.LastResume = now
	next.Status = StatusRunning
	next.StopPending = false
	return next, nil
}

// BeginStop pauses a running ride while the stop awaits confirmation. A ride
// the rider already paused is returned unchanged.
func (s State) BeginStop(now time.Time) (State, error) {
	switch s.Current() {
	case StatusRunning:
		next, err := s.Pause(now)
		if err != nil {
			return s, err
		}
		next.StopPending = true
		return next, nil
	case StatusPaused:
		return s, nil
	default:
		return s, &TransitionError{Op: "stop", From: s.Current()}
	}
}

// AbortStop undoes the pause made by BeginStop. Without one it leaves the
// ride as it is.
func (s State) AbortStop(now time.Time) (State, error) {
	if s.Current() == StatusStopped {
		return s, &TransitionError{Op: "abort stopping", From: s.Current()}
	}
	if !s.StopPending {
		return s, nil
	}
	return s.Resume(now)
}

// Stop closes any open interval and returns the idle state with the
// finished ride.
func (s State) Stop(now time.Time) (State, Finished, error) {
	switch s.Current() {
	case StatusRunning, StatusPaused:
	default:
		return s, Finished{}, &TransitionError{Op: "stop", From: s.Current()}
	}
	return Idle(), Finished{
		RideID:    s.RideID,
		StartedAt: s.StartedAt,
		EndedAt:   now,
		Duration:  s.Elapsed(now),
	}, nil
}

// Elapsed is the running time as of now. It never mutates the state.
func (s State) Elapsed(now time.Time) time.Duration {
	if s.Current() != StatusRunning {
		return s.Accumulated
	}
	return s.Accumulated + interval(s.LastResume, now)
}

// interval clamps to zero when the clock moved backwards.
func interval(from, to time.Time) time.Duration {
	if d := to.Sub(from); d > 0 {
		return d
	}
	return 0
}
