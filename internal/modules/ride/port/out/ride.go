package out

import (
	"context"

	"gocycling/internal/modules/ride/domain"
)

// StateStore persists the active ride between invocations. Load returns
// apperrors.ErrNoActiveRide when nothing is stored.
type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
	Clear(ctx context.Context) error
}

// DistanceSampler supplies the distance covered by the active ride.
type DistanceSampler interface {
	Describe(ctx context.Context) (domain.SamplerInfo, error)
	Reset(ctx context.Context, rideID string) error
	Add(ctx context.Context, sample domain.Sample) error
	Distance(ctx context.Context, progress domain.Progress) (float64, error)
}

// RideRecorder stores a completed ride and returns where its note was
// written. Recording the same ride id twice must be harmless.
type RideRecorder interface {
	Record(ctx context.Context, ride domain.CompletedRide) (string, error)
}
