package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	hclog "github.com/hashicorp/go-hclog"

	"gocycling/internal/modules/history/domain"
	historyout "gocycling/internal/modules/history/port/out"
	"gocycling/internal/platform/clock"
	apperrors "gocycling/internal/platform/errors"
	"gocycling/internal/platform/logging"
)

type HistoryService struct {
	clock   clock.Clock
	store   historyout.RideStore
	journal historyout.RideJournal
	logger  hclog.Logger
}

func NewHistoryService(clock clock.Clock, store historyout.RideStore, journal historyout.RideJournal, logger hclog.Logger) *HistoryService {
	return &HistoryService{clock: clock, store: store, journal: journal, logger: logging.OrDiscard(logger)}
}

// Record writes the journal note before indexing so that a failed index can
// be rebuilt by Reindex. A ride id that is already indexed is returned as
// stored; its note and row are never rewritten.
func (s *HistoryService) Record(ctx context.Context, ride domain.Ride) (domain.Ride, string, error) {
	if err := ride.Validate(); err != nil {
		return domain.Ride{}, "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	existing, err := s.store.FindByID(ctx, ride.ID)
	switch {
	case err == nil:
		s.logger.Debug("ride already recorded", "ride_id", existing.ID, "seq", existing.Seq)
		return existing, s.NotePath(existing), nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return domain.Ride{}, "", err
	}
	if ride.RecordedAt.IsZero() {
		ride.RecordedAt = s.clock.Now()
	}
	path := ""
	if s.journal != nil {
		written, err := s.journal.Write(ctx, ride)
		if err != nil {
			return domain.Ride{}, "", err
		}
		path = written
	}
	stored, err := s.store.Insert(ctx, ride)
	if err != nil {
		return domain.Ride{}, "", err
	}
	s.logger.Info("ride recorded", "ride_id", stored.ID, "seq", stored.Seq, "duration", stored.Duration, "distance_m", stored.Distance)
	return stored, path, nil
}

// List sorts a point-in-time copy of the stored rides.
func (s *HistoryService) List(ctx context.Context, choice domain.SortChoice) ([]domain.Ride, error) {
	if err := choice.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	rides, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Sort(rides, choice), nil
}

func (s *HistoryService) Get(ctx context.Context, id string) (domain.Ride, error) {
	return s.store.FindByID(ctx, id)
}

func (s *HistoryService) NotePath(ride domain.Ride) string {
	if s.journal == nil {
		return ""
	}
	return s.journal.PathFor(ride)
}

// Delete removes a ride and its note. A missing id is not an error.
func (s *HistoryService) Delete(ctx context.Context, id string) (bool, error) {
	ride, err := s.store.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if s.journal != nil {
		if err := s.journal.Remove(ctx, ride); err != nil {
			return false, err
		}
	}
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	s.logger.Info("ride deleted", "ride_id", id)
	return removed, nil
}

func (s *HistoryService) Summary(ctx context.Context) (domain.Summary, error) {
	rides, err := s.store.List(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(rides), nil
}

// Reindex rebuilds the store from journal notes, replaying them in the order
// they were recorded.
func (s *HistoryService) Reindex(ctx context.Context) (int, error) {
	if s.journal == nil {
		return 0, fmt.Errorf("ride journal is not configured")
	}
	rides, err := s.journal.List(ctx)
	if err != nil {
		return 0, err
	}
	slices.SortStableFunc(rides, func(a, b domain.Ride) int {
		if c := a.RecordedAt.Compare(b.RecordedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if err := s.store.Reset(ctx); err != nil {
		return 0, err
	}
	for _, ride := range rides {
		if _, err := s.store.Insert(ctx, ride); err != nil {
			return 0, fmt.Errorf("reindex ride %s: %w", ride.ID, err)
		}
	}
	s.logger.Info("history reindexed", "rides", len(rides))
	return len(rides), nil
}
