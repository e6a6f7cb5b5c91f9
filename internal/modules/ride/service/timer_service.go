package service

import (
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"gocycling/internal/modules/ride/domain"
	"gocycling/internal/platform/clock"
	"gocycling/internal/platform/id"
	"gocycling/internal/platform/logging"
)

// TimerService applies state transitions at the current clock time.
type TimerService struct {
	clock  clock.Clock
	idGen  id.Generator
	logger hclog.Logger
}

func NewTimerService(clock clock.Clock, idGen id.Generator, logger hclog.Logger) *TimerService {
	return &TimerService{clock: clock, idGen: idGen, logger: logging.OrDiscard(logger)}
}

func (s *TimerService) Now() time.Time {
	return s.clock.Now()
}

func (s *TimerService) Start(state domain.State) (domain.State, error) {
	rideID := ""
	if state.Current() == domain.StatusStopped {
		rideID = s.idGen.New()
	}
	next, err := state.Start(rideID, s.clock.Now())
	if err != nil {
		return state, err
	}
	s.logger.Debug("ride started", "ride_id", next.RideID, "from", state.Current())
	return next, nil
}

func (s *TimerService) Pause(state domain.State) (domain.State, error) {
	next, err := state.Pause(s.clock.Now())
	if err != nil {
		return state, err
	}
	s.logger.Debug("ride paused", "ride_id", next.RideID, "accumulated", next.Accumulated)
	return next, nil
}

func (s *TimerService) Resume(state domain.State) (domain.State, error) {
	next, err := state.Resume(s.clock.Now())
	if err != nil {
		return state, err
	}
	s.logger.Debug("ride resumed", "ride_id", next.RideID)
	return next, nil
}

func (s *TimerService) Stop(state domain.State) (domain.State, domain.Finished, error) {
	next, finished, err := state.Stop(s.clock.Now())
	if err != nil {
		return state, domain.Finished{}, err
	}
	s.logger.Debug("ride stopped", "ride_id", finished.RideID, "duration", finished.Duration)
	return next, finished, nil
}

func (s *TimerService) BeginStop(state domain.State) (domain.State, error) {
	next, err := state.BeginStop(s.clock.Now())
	if err != nil {
		return state, err
	}
	s.logger.Debug("ride stop pending", "ride_id", next.RideID, "paused_by_stop", next.StopPending)
	return next, nil
}

func (s *TimerService) AbortStop(state domain.State) (domain.State, error) {
	next, err := state.AbortStop(s.clock.Now())
	if err != nil {
		return state, err
	}
	s.logger.Debug("ride stop aborted", "ride_id", next.RideID, "status", next.Current())
	return next, nil
}
