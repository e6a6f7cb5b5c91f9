package in

import (
	"context"

	"gocycling/internal/modules/preferences/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.PreferencesOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.PreferencesOutput, error)
}
