package domain

import (
	"fmt"
	"math"
	"time"

	"gocycling/internal/platform/geo"
)

// Sample is one reading from a position source: either a distance delta in
// meters or a GPS fix.
type Sample struct {
	Meters float64
	Lat    float64
	Lon    float64
	HasFix bool
}

func (s Sample) Validate() error {
	if s.HasFix {
		if !geo.ValidFix(s.Lat, s.Lon) {
			return fmt.Errorf("invalid fix %.6f,%.6f", s.Lat, s.Lon)
		}
		return nil
	}
	if s.Meters < 0 || math.IsNaN(s.Meters) || math.IsInf(s.Meters, 0) {
		return fmt.Errorf("distance delta must be a non-negative number")
	}
	return nil
}

// Progress is what a sampler may need to report distance for a ride.
type Progress struct {
	RideID  string
	Elapsed time.Duration
}

// CompletedRide is handed to the recorder once a ride stops.
type CompletedRide struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Distance  float64
}

type SamplerInfo struct {
	Name    string
	Version string
}
