package out

import (
	"context"

	historydto "gocycling/internal/modules/history/dto"
	historyin "gocycling/internal/modules/history/port/in"
	"gocycling/internal/modules/ride/domain"
	rideout "gocycling/internal/modules/ride/port/out"
)

// HistoryRecorder hands completed rides to the history module.
type HistoryRecorder struct {
	history historyin.Usecase
}

func NewHistoryRecorder(history historyin.Usecase) rideout.RideRecorder {
	return &HistoryRecorder{history: history}
}

func (r *HistoryRecorder) Record(ctx context.Context, ride domain.CompletedRide) (string, error) {
	out, err := r.history.Record(ctx, historydto.RecordInput{
		ID:        ride.ID,
		StartedAt: ride.StartedAt,
		Duration:  ride.Duration,
		Distance:  ride.Distance,
	})
	if err != nil {
		return "", err
	}
	return out.NotePath, nil
}
