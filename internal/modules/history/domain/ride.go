package domain

import (
	"fmt"
	"strings"
	"time"

	"gocycling/internal/platform/units"
)

const SchemaVersion = 1

// Ride is a completed cycling session. Distance is stored in meters and
// Duration excludes paused intervals.
type Ride struct {
	ID         string
	Seq        int64
	StartedAt  time.Time
	Duration   time.Duration
	Distance   float64
	RecordedAt time.Time
}

func (r Ride) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("ride id is required")
	}
	if r.StartedAt.IsZero() {
		return fmt.Errorf("ride start time is required")
	}
	if r.Duration < 0 {
		return fmt.Errorf("ride duration must be non-negative")
	}
	if r.Distance < 0 {
		return fmt.Errorf("ride distance must be non-negative")
	}
	return nil
}

// AverageSpeed is in meters per second; a zero-duration ride reports 0.
func (r Ride) AverageSpeed() float64 {
	return units.AverageSpeed(r.Distance, r.Duration)
}

type Summary struct {
	Count         int
	TotalDistance float64
	TotalDuration time.Duration
	LongestRide   float64
}

func (s Summary) AverageSpeed() float64 {
	return units.AverageSpeed(s.TotalDistance, s.TotalDuration)
}

func Summarize(rides []Ride) Summary {
	out := Summary{Count: len(rides)}
	for _, r := range rides {
		out.TotalDistance += r.Distance
		out.TotalDuration += r.Duration
		if r.Distance > out.LongestRide {
			out.LongestRide = r.Distance
		}
	}
	return out
}
