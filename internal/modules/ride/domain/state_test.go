package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gocycling/internal/modules/ride/domain"
)

var t0 = time.Date(2026, 5, 3, 7, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return t0.Add(time.Duration(sec) * time.Second) }

func TestPauseResumeStopScenario(t *testing.T) {
	t.Parallel()
	s, err := domain.Idle().Start("ride-1", at(0))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s, err = s.Pause(at(30)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if s.Accumulated != 30*time.Second {
		t.Fatalf("accumulated after pause = %v", s.Accumulated)
	}
	if got := s.Elapsed(at(35)); got != 30*time.Second {
		t.Fatalf("elapsed while paused = %v", got)
	}
	if s, err = s.Resume(at(40)); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got := s.Elapsed(at(55)); got != 45*time.Second {
		t.Fatalf("live elapsed = %v", got)
	}
	next, finished, err := s.Stop(at(70))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if finished.Duration != 60*time.Second || finished.RideID != "ride-1" || !finished.StartedAt.Equal(at(0)) || !finished.EndedAt.Equal(at(70)) {
		t.Fatalf("unexpected finished ride %+v", finished)
	}
	if next != domain.Idle() {
		t.Fatalf("state after stop should be idle, got %+v", next)
	}
}

func TestStopFromPausedAddsNothing(t *testing.T) {
	t.Parallel()
	s, _ := domain.Idle().Start("r", at(0))
	s, _ = s.Pause(at(20))
	_, finished, err := s.Stop(at(500))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if finished.Duration != 20*time.Second {
		t.Fatalf("duration = %v, want 20s", finished.Duration)
	}
}

func TestStartWhilePausedResumes(t *testing.T) {
	t.Parallel()
	s, _ := domain.Idle().Start("r", at(0))
	s, _ = s.Pause(at(10))
	s, err := s.Start("other", at(15))
	if err != nil {
		t.Fatalf("start from paused: %v", err)
	}
	if s.RideID != "r" || s.Accumulated != 10*time.Second || s.Status != domain.StatusRunning {
		t.Fatalf("start from paused must keep the ride, got %+v", s)
	}
}

func TestAbortStopUndoesOnlyItsOwnPause(t *testing.T) {
	t.Parallel()
	running, _ := domain.Idle().Start("r", at(0))

	pending, err := running.BeginStop(at(30))
	if err != nil {
		t.Fatalf("begin stop: %v", err)
	}
	if pending.Current() != domain.StatusPaused || !pending.StopPending {
		t.Fatalf("begin stop should pause and mark the stop, got %+v", pending)
	}
	resumed, err := pending.AbortStop(at(40))
	if err != nil {
		t.Fatalf("abort stop: %v", err)
	}
	if resumed.Current() != domain.StatusRunning || resumed.StopPending || resumed.Accumulated != 30*time.Second {
		t.Fatalf("abort should resume the pending stop, got %+v", resumed)
	}

	paused, _ := running.Pause(at(10))
	same, err := paused.BeginStop(at(20))
	if err != nil {
		t.Fatalf("begin stop while paused: %v", err)
	}
	if same != paused {
		t.Fatalf("begin stop changed a paused ride: %+v", same)
	}
	kept, err := same.AbortStop(at(25))
	if err != nil {
		t.Fatalf("abort stop while paused: %v", err)
	}
	if kept != paused || kept.Elapsed(at(90)) != 10*time.Second {
		t.Fatalf("abort resumed a ride paused by the rider: %+v", kept)
	}

	if _, err := domain.Idle().AbortStop(at(0)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("abort stop with no ride: %v", err)
	}
}

func TestInvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()
	running, _ := domain.Idle().Start("r", at(0))
	paused, _ := running.Pause(at(5))

	cases := []struct {
		name  string
		state domain.State
		apply func(domain.State) (domain.State, error)
	}{
		{"start while running", running, func(s domain.State) (domain.State, error) { return s.Start("x", at(9)) }},
		{"pause while stopped", domain.Idle(), func(s domain.State) (domain.State, error) { return s.Pause(at(9)) }},
		{"pause while paused", paused, func(s domain.State) (domain.State, error) { return s.Pause(at(9)) }},
		{"resume while running", running, func(s domain.State) (domain.State, error) { return s.Resume(at(9)) }},
		{"resume while stopped", domain.Idle(), func(s domain.State) (domain.State, error) { return s.Resume(at(9)) }},
		{"stop while stopped", domain.Idle(), func(s domain.State) (domain.State, error) {
			next, _, err := s.Stop(at(9))
			return next, err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := tc.apply(tc.state)
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Fatalf("expected invalid transition, got %v", err)
			}
			var te *domain.TransitionError
			if !errors.As(err, &te) || te.From != tc.state.Current() {
				t.Fatalf("expected transition error from %s, got %v", tc.state.Current(), err)
			}
			if next != tc.state {
				t.Fatalf("state changed: %+v -> %+v", tc.state, next)
			}
		})
	}
}

func TestBackwardsClockClampsToZero(t *testing.T) {
	t.Parallel()
	s, _ := domain.Idle().Start("r", at(100))
	if got := s.Elapsed(at(50)); got != 0 {
		t.Fatalf("elapsed before start = %v", got)
	}
	s, _ = s.Pause(at(90))
	if s.Accumulated != 0 {
		t.Fatalf("accumulated = %v, want 0", s.Accumulated)
	}
}

func TestZeroValueStateIsStopped(t *testing.T) {
	t.Parallel()
	var s domain.State
	if s.Current() != domain.StatusStopped {
		t.Fatalf("zero state = %s", s.Current())
	}
	if _, err := s.Start("r", at(0)); err != nil {
		t.Fatalf("start from zero state: %v", err)
	}
}

func TestSampleValidate(t *testing.T) {
	t.Parallel()
	valid := []domain.Sample{{Meters: 0}, {Meters: 12.5}, {Lat: 51.5, Lon: -0.12, HasFix: true}}
	for _, s := range valid {
		if err := s.Validate(); err != nil {
			t.Fatalf("%+v: %v", s, err)
		}
	}
	invalid := []domain.Sample{{Meters: -1}, {Lat: 91, HasFix: true}, {Lon: 181, HasFix: true}}
	for _, s := range invalid {
		if err := s.Validate(); err == nil {
			t.Fatalf("%+v should be rejected", s)
		}
	}
}

// Each step encodes an operation (step % 4) and the seconds since the
// previous step (step / 4).
func TestAccumulatedEqualsRunningIntervals(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("elapsed equals the sum of running intervals", prop.ForAll(
		func(steps []int) bool {
			state := domain.Idle()
			now := t0
			var expected time.Duration
			var runningSince time.Time
			running := false

			for _, step := range steps {
				now = now.Add(time.Duration(step/4) * time.Second)
				var (
					next domain.State
					err  error
				)
				switch step % 4 {
				case 0:
					next, err = state.Start("r", now)
				case 1:
					next, err = state.Pause(now)
				case 2:
					next, err = state.Resume(now)
				case 3:
					var finished domain.Finished
					next, finished, err = state.Stop(now)
					if err == nil {
						want := expected
						if running {
							want += now.Sub(runningSince)
						}
						if finished.Duration != want {
							return false
						}
					}
				}
				if err != nil {
					if next != state {
						return false
					}
					continue
				}
				switch {
				case next.Current() == domain.StatusStopped:
					expected, running = 0, false
				case next.Current() == domain.StatusRunning && !running:
					if state.Current() == domain.StatusStopped {
						expected = 0
					}
					running, runningSince = true, now
				case next.Current() == domain.StatusPaused && running:
					expected += now.Sub(runningSince)
					running = false
				}
				state = next
			}
			want := expected
			if running {
				want += now.Sub(runningSince)
			}
			return state.Elapsed(now) == want
		},
		gen.SliceOf(gen.IntRange(0, 399)),
	))

	properties.TestingRun(t)
}
