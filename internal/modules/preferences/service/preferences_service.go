package service

import (
	"context"
	"fmt"

	historydomain "gocycling/internal/modules/history/domain"
	"gocycling/internal/modules/preferences/domain"
	"gocycling/internal/modules/preferences/dto"
	prefsout "gocycling/internal/modules/preferences/port/out"
	apperrors "gocycling/internal/platform/errors"
	"gocycling/internal/platform/units"
)

type PreferencesService struct {
	store prefsout.Store
}

func NewPreferencesService(store prefsout.Store) *PreferencesService {
	return &PreferencesService{store: store}
}

func (s *PreferencesService) Get(ctx context.Context) (domain.Preferences, error) {
	return s.store.Load(ctx)
}

func (s *PreferencesService) Update(ctx context.Context, patch dto.UpdateInput) (domain.Preferences, error) {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return domain.Preferences{}, err
	}
	if patch.Units != nil {
		system, err := units.ParseSystem(*patch.Units)
		if err != nil {
			return domain.Preferences{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		prefs.Units = system
	}
	if patch.Sort != nil {
		choice, err := historydomain.ParseSortChoice(*patch.Sort)
		if err != nil {
			return domain.Preferences{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		prefs.Sort = choice
	}
	if patch.Colour != nil {
		colour, err := domain.ParseColour(*patch.Colour)
		if err != nil {
			return domain.Preferences{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		prefs.Colour = colour
	}
	if patch.DeletionConfirmation != nil {
		prefs.DeletionConfirmation = *patch.DeletionConfirmation
	}
	if patch.DeletionEnabled != nil {
		prefs.DeletionEnabled = *patch.DeletionEnabled
	}
	if patch.LargeMetrics != nil {
		prefs.LargeMetrics = *patch.LargeMetrics
	}
	if err := prefs.Validate(); err != nil {
		return domain.Preferences{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}
