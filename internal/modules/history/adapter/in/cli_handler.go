package in

import (
	"context"

	"gocycling/internal/modules/history/dto"
	historyin "gocycling/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, sort string, save bool) (dto.ListOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Sort: sort, Save: save})
}

func (h CLIHandler) Show(ctx context.Context, id string) (dto.RideOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string, confirmed bool) (dto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, dto.DeleteInput{ID: id, Confirmed: confirmed})
}

func (h CLIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
