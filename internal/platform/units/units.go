// Package units renders canonical ride values (seconds, meters, m/s) for
// display. Stored values are never converted in place.
package units

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

const (
	metersPerKilometer = 1000.0
	metersPerMile      = 1609.344
	mpsToKPH           = 3.6
	mpsToMPH           = 2.2369362920544
)

func (s System) Validate() error {
	switch s {
	case Metric, Imperial:
		return nil
	default:
		return fmt.Errorf("unsupported unit system %q", string(s))
	}
}

func ParseSystem(raw string) (System, error) {
	s := System(strings.ToLower(strings.TrimSpace(raw)))
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// FormatDuration renders d as HH:MM:SS. Hours are not capped at 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := total / 60 % 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// AverageSpeed is meters per second, 0 when no time has elapsed.
func AverageSpeed(meters float64, d time.Duration) float64 {
	secs := d.Seconds()
	if secs <= 0 {
		return 0
	}
	return meters / secs
}

func FormatDistance(meters float64, system System) string {
	if system == Imperial {
		return fmt.Sprintf("%.2f mi", meters/metersPerMile)
	}
	return fmt.Sprintf("%.2f km", meters/metersPerKilometer)
}

func FormatSpeed(mps float64, system System) string {
	if math.IsNaN(mps) || math.IsInf(mps, 0) {
		mps = 0
	}
	if system == Imperial {
		return fmt.Sprintf("%.2f mph", mps*mpsToMPH)
	}
	return fmt.Sprintf("%.2f km/h", mps*mpsToKPH)
}

func FormatAverageSpeed(meters float64, d time.Duration, system System) string {
	return FormatSpeed(AverageSpeed(meters, d), system)
}

func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 at 3:04 PM")
}

// FormatRelative renders t relative to now, e.g. "3 days ago".
func FormatRelative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
