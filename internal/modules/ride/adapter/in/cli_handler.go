package in

import (
	"context"

	"gocycling/internal/modules/ride/dto"
	ridein "gocycling/internal/modules/ride/port/in"
)

type CLIHandler struct {
	usecase ridein.Usecase
}

func NewCLIHandler(usecase ridein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) BeginStop(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.BeginStop(ctx)
}

func (h CLIHandler) Stop(ctx context.Context, confirmed bool) (dto.StopOutput, error) {
	return h.usecase.Stop(ctx, dto.StopInput{Confirmed: confirmed})
}

func (h CLIHandler) AbortStop(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.AbortStop(ctx)
}

func (h CLIHandler) TrackMeters(ctx context.Context, meters float64) (dto.StatusOutput, error) {
	return h.usecase.Track(ctx, dto.TrackInput{Meters: meters})
}

func (h CLIHandler) TrackFix(ctx context.Context, lat, lon float64) (dto.StatusOutput, error) {
	return h.usecase.Track(ctx, dto.TrackInput{Lat: &lat, Lon: &lon})
}

func (h CLIHandler) Sampler(ctx context.Context) (dto.SamplerOutput, error) {
	return h.usecase.Sampler(ctx)
}
