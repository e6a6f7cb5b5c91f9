package in

import (
	"context"

	"gocycling/internal/modules/preferences/dto"
	prefsin "gocycling/internal/modules/preferences/port/in"
)

type CLIHandler struct {
	usecase prefsin.Usecase
}

func NewCLIHandler(usecase prefsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) (dto.PreferencesOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.PreferencesOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) SetSort(ctx context.Context, sort string) (dto.PreferencesOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{Sort: &sort})
}
