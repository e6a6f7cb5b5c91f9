package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gocycling/internal/modules/ride/domain"
	"gocycling/internal/modules/ride/dto"
	ridein "gocycling/internal/modules/ride/port/in"
	rideout "gocycling/internal/modules/ride/port/out"
	"gocycling/internal/modules/ride/service"
	apperrors "gocycling/internal/platform/errors"
	"gocycling/internal/platform/units"
)

// Interactor serializes every transition as load, apply, save.
type Interactor struct {
	mu       sync.Mutex
	svc      *service.TimerService
	store    rideout.StateStore
	sampler  rideout.DistanceSampler
	recorder rideout.RideRecorder
}

func NewInteractor(svc *service.TimerService, store rideout.StateStore, sampler rideout.DistanceSampler, recorder rideout.RideRecorder) ridein.Usecase {
	return &Interactor{svc: svc, store: store, sampler: sampler, recorder: recorder}
}

func (i *Interactor) Start(ctx context.Context) (dto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	state, err := i.load(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	next, err := i.svc.Start(state)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	if state.Current() == domain.StatusStopped && i.sampler != nil {
		if err := i.sampler.Reset(ctx, next.RideID); err != nil {
			return dto.StatusOutput{}, fmt.Errorf("reset sampler: %w", err)
		}
	}
	if err := i.store.Save(ctx, next); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(ctx, next)
}

func (i *Interactor) Pause(ctx context.Context) (dto.StatusOutput, error) {
	return i.apply(ctx, i.svc.Pause)
}

func (i *Interactor) Resume(ctx context.Context) (dto.StatusOutput, error) {
	return i.apply(ctx, i.svc.Resume)
}

// AbortStop resumes only a ride that BeginStop paused.
func (i *Interactor) AbortStop(ctx context.Context) (dto.StatusOutput, error) {
	return i.apply(ctx, i.svc.AbortStop)
}

func (i *Interactor) BeginStop(ctx context.Context) (dto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.beginStop(ctx)
}

func (i *Interactor) beginStop(ctx context.Context) (dto.StatusOutput, error) {
	state, err := i.load(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	next, err := i.svc.BeginStop(state)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	if next != state {
		if err := i.store.Save(ctx, next); err != nil {
			return dto.StatusOutput{}, err
		}
	}
	return i.status(ctx, next)
}

// Stop without confirmation behaves like BeginStop. A confirmed stop records
// the ride and clears the active state; if recording fails the state is kept
// so the stop can be retried.
func (i *Interactor) Stop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !input.Confirmed {
		status, err := i.beginStop(ctx)
		if err != nil {
			return dto.StopOutput{}, err
		}
		return dto.StopOutput{RideID: status.RideID, Status: status}, nil
	}

	state, err := i.load(ctx)
	if err != nil {
		return dto.StopOutput{}, err
	}
	_, finished, err := i.svc.Stop(state)
	if err != nil {
		return dto.StopOutput{}, err
	}
	distance, err := i.distance(ctx, domain.Progress{RideID: finished.RideID, Elapsed: finished.Duration})
	if err != nil {
		return dto.StopOutput{}, err
	}
	completed := domain.CompletedRide{
		ID:        finished.RideID,
		StartedAt: finished.StartedAt,
		Duration:  finished.Duration,
		Distance:  distance,
	}
	path := ""
	if i.recorder != nil {
		if path, err = i.recorder.Record(ctx, completed); err != nil {
			return dto.StopOutput{}, fmt.Errorf("record ride: %w", err)
		}
	}
	if err := i.store.Clear(ctx); err != nil {
		return dto.StopOutput{}, err
	}
	return dto.StopOutput{
		Committed:    true,
		RideID:       completed.ID,
		StartedAt:    completed.StartedAt,
		Duration:     completed.Duration,
		Distance:     completed.Distance,
		AverageSpeed: units.AverageSpeed(completed.Distance, completed.Duration),
		NotePath:     path,
		Status:       dto.StatusOutput{Status: string(domain.StatusStopped)},
	}, nil
}

// Status is read-only and safe to poll.
func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	state, err := i.load(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(ctx, state)
}

func (i *Interactor) Track(ctx context.Context, input dto.TrackInput) (dto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	sample := domain.Sample{Meters: input.Meters}
	if input.Lat != nil || input.Lon != nil {
		if input.Lat == nil || input.Lon == nil {
			return dto.StatusOutput{}, fmt.Errorf("%w: both lat and lon are required", apperrors.ErrInvalidInput)
		}
		sample = domain.Sample{Lat: *input.Lat, Lon: *input.Lon, HasFix: true}
	}
	if err := sample.Validate(); err != nil {
		return dto.StatusOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if i.sampler == nil {
		return dto.StatusOutput{}, apperrors.ErrSamplerNotConfigured
	}

	state, err := i.load(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	if state.Current() != domain.StatusRunning {
		return dto.StatusOutput{}, &domain.TransitionError{Op: "track", From: state.Current()}
	}
	if err := i.sampler.Add(ctx, sample); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(ctx, state)
}

func (i *Interactor) Sampler(ctx context.Context) (dto.SamplerOutput, error) {
	if i.sampler == nil {
		return dto.SamplerOutput{}, apperrors.ErrSamplerNotConfigured
	}
	info, err := i.sampler.Describe(ctx)
	if err != nil {
		return dto.SamplerOutput{}, err
	}
	return dto.SamplerOutput{Name: info.Name, Version: info.Version}, nil
}

func (i *Interactor) apply(ctx context.Context, transition func(domain.State) (domain.State, error)) (dto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	state, err := i.load(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	next, err := transition(state)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	if err := i.store.Save(ctx, next); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(ctx, next)
}

func (i *Interactor) load(ctx context.Context) (domain.State, error) {
	state, err := i.store.Load(ctx)
	if errors.Is(err, apperrors.ErrNoActiveRide) {
		return domain.Idle(), nil
	}
	if err != nil {
		return domain.State{}, err
	}
	return state, nil
}

func (i *Interactor) status(ctx context.Context, state domain.State) (dto.StatusOutput, error) {
	elapsed := state.Elapsed(i.svc.Now())
	out := dto.StatusOutput{
		RideID:       state.RideID,
		Status:       string(state.Current()),
		StartedAt:    state.StartedAt,
		Elapsed:      elapsed,
		PausedByStop: state.StopPending,
	}
	if state.Current() == domain.StatusStopped {
		return out, nil
	}
	distance, err := i.distance(ctx, domain.Progress{RideID: state.RideID, Elapsed: elapsed})
	if err != nil {
		return dto.StatusOutput{}, err
	}
	out.Distance = distance
	out.AverageSpeed = units.AverageSpeed(distance, elapsed)
	return out, nil
}

func (i *Interactor) distance(ctx context.Context, progress domain.Progress) (float64, error) {
	if i.sampler == nil {
		return 0, nil
	}
	meters, err := i.sampler.Distance(ctx, progress)
	if err != nil {
		return 0, fmt.Errorf("sample distance: %w", err)
	}
	return meters, nil
}
