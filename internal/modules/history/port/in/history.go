package in

import (
	"context"

	"gocycling/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.RideOutput, error)
	List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error)
	Get(ctx context.Context, id string) (dto.RideOutput, error)
	Delete(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
