package in

import (
	"context"

	"gocycling/internal/modules/ride/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Resume(ctx context.Context) (dto.StatusOutput, error)
	// BeginStop pauses a running ride while the rider confirms.
	BeginStop(ctx context.Context) (dto.StatusOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error)
	// AbortStop undoes the pause made by BeginStop and leaves a ride the
	// rider paused themselves untouched.
	AbortStop(ctx context.Context) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Track(ctx context.Context, input dto.TrackInput) (dto.StatusOutput, error)
	Sampler(ctx context.Context) (dto.SamplerOutput, error)
}
