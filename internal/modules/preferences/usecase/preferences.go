package usecase

import (
	"context"

	"gocycling/internal/modules/preferences/domain"
	"gocycling/internal/modules/preferences/dto"
	prefsin "gocycling/internal/modules/preferences/port/in"
	"gocycling/internal/modules/preferences/service"
)

type Interactor struct {
	svc *service.PreferencesService
}

func NewInteractor(svc *service.PreferencesService) prefsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.PreferencesOutput, error) {
	prefs, err := i.svc.Get(ctx)
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return toOutput(prefs), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.PreferencesOutput, error) {
	prefs, err := i.svc.Update(ctx, input)
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return toOutput(prefs), nil
}

func toOutput(p domain.Preferences) dto.PreferencesOutput {
	return dto.PreferencesOutput{
		Units:                string(p.Units),
		Sort:                 string(p.Sort),
		SortLabel:            p.Sort.Label(),
		DeletionConfirmation: p.DeletionConfirmation,
		DeletionEnabled:      p.DeletionEnabled,
		DeletionMode:         string(p.DeletionMode()),
		Colour:               string(p.Colour),
		LargeMetrics:         p.LargeMetrics,
	}
}
