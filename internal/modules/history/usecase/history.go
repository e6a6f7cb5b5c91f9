package usecase

import (
	"context"
	"fmt"
	"strings"

	"gocycling/internal/modules/history/domain"
	"gocycling/internal/modules/history/dto"
	historyin "gocycling/internal/modules/history/port/in"
	"gocycling/internal/modules/history/service"
	prefsdto "gocycling/internal/modules/preferences/dto"
	prefsin "gocycling/internal/modules/preferences/port/in"
	apperrors "gocycling/internal/platform/errors"
)

type Interactor struct {
	svc   *service.HistoryService
	prefs prefsin.Usecase
}

func NewInteractor(svc *service.HistoryService, prefs prefsin.Usecase) historyin.Usecase {
	return &Interactor{svc: svc, prefs: prefs}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.RideOutput, error) {
	ride, path, err := i.svc.Record(ctx, domain.Ride{
		ID:        input.ID,
		StartedAt: input.StartedAt,
		Duration:  input.Duration,
		Distance:  input.Distance,
	})
	if err != nil {
		return dto.RideOutput{}, err
	}
	out := toOutput(ride)
	out.NotePath = path
	return out, nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error) {
	choice := domain.DefaultSort
	if strings.TrimSpace(input.Sort) != "" {
		parsed, err := domain.ParseSortChoice(input.Sort)
		if err != nil {
			return dto.ListOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		choice = parsed
		if input.Save && i.prefs != nil {
			sort := string(choice)
			if _, err := i.prefs.Update(ctx, prefsdto.UpdateInput{Sort: &sort}); err != nil {
				return dto.ListOutput{}, err
			}
		}
	} else if i.prefs != nil {
		prefs, err := i.prefs.Get(ctx)
		if err != nil {
			return dto.ListOutput{}, err
		}
		choice = domain.SortChoice(prefs.Sort)
	}

	rides, err := i.svc.List(ctx, choice)
	if err != nil {
		return dto.ListOutput{}, err
	}
	out := dto.ListOutput{Sort: string(choice), SortLabel: choice.Label(), Rides: make([]dto.RideOutput, 0, len(rides))}
	for _, c := range domain.SortChoices() {
		out.Options = append(out.Options, dto.SortOption{Key: string(c), Label: c.Label()})
	}
	for _, ride := range rides {
		out.Rides = append(out.Rides, toOutput(ride))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.RideOutput, error) {
	if strings.TrimSpace(id) == "" {
		return dto.RideOutput{}, fmt.Errorf("%w: ride id is required", apperrors.ErrInvalidInput)
	}
	ride, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.RideOutput{}, err
	}
	out := toOutput(ride)
	out.NotePath = i.svc.NotePath(ride)
	return out, nil
}

// Delete applies the rider's deletion preferences before touching storage.
// Without a preferences collaborator deletes go through immediately.
func (i *Interactor) Delete(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return dto.DeleteOutput{}, fmt.Errorf("%w: ride id is required", apperrors.ErrInvalidInput)
	}
	decision := prefsdto.DeletionImmediate
	if i.prefs != nil {
		prefs, err := i.prefs.Get(ctx)
		if err != nil {
			return dto.DeleteOutput{}, err
		}
		decision = prefs.DeletionMode
	}
	out := dto.DeleteOutput{ID: input.ID, Decision: decision}

	switch decision {
	case prefsdto.DeletionSkip:
		return out, nil
	case prefsdto.DeletionPrompt:
		if !input.Confirmed {
			return out, apperrors.ErrConfirmationRequired
		}
	}
	removed, err := i.svc.Delete(ctx, input.ID)
	if err != nil {
		return dto.DeleteOutput{}, err
	}
	out.Deleted = removed
	return out, nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	summary, err := i.svc.Summary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Count:         summary.Count,
		TotalDistance: summary.TotalDistance,
		TotalDuration: summary.TotalDuration,
		AverageSpeed:  summary.AverageSpeed(),
		LongestRide:   summary.LongestRide,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Rides: n}, nil
}

func toOutput(ride domain.Ride) dto.RideOutput {
	return dto.RideOutput{
		ID:           ride.ID,
		StartedAt:    ride.StartedAt,
		Duration:     ride.Duration,
		Distance:     ride.Distance,
		AverageSpeed: ride.AverageSpeed(),
		RecordedAt:   ride.RecordedAt,
	}
}
