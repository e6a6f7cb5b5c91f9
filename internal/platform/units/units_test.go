package units_test

import (
	"testing"
	"time"

	"gocycling/internal/platform/units"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{3725 * time.Second, "01:02:05"},
		{3725*time.Second + 900*time.Millisecond, "01:02:05"},
		{100 * time.Hour, "100:00:00"},
		{-5 * time.Second, "00:00:00"},
	}
	for _, tc := range cases {
		if got := units.FormatDuration(tc.in); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAverageSpeedGuardsZeroDuration(t *testing.T) {
	t.Parallel()
	for _, meters := range []float64{0, 1, 12345.6} {
		if got := units.AverageSpeed(meters, 0); got != 0 {
			t.Fatalf("expected 0 for zero duration, got %v", got)
		}
	}
	if got := units.AverageSpeed(1000, 100*time.Second); got != 10 {
		t.Fatalf("expected 10 m/s, got %v", got)
	}
}

func TestFormatDistanceAndSpeed(t *testing.T) {
	t.Parallel()
	if got := units.FormatDistance(1500, units.Metric); got != "1.50 km" {
		t.Fatalf("metric distance: %q", got)
	}
	if got := units.FormatDistance(1609.344, units.Imperial); got != "1.00 mi" {
		t.Fatalf("imperial distance: %q", got)
	}
	if got := units.FormatSpeed(10, units.Metric); got != "36.00 km/h" {
		t.Fatalf("metric speed: %q", got)
	}
	if got := units.FormatSpeed(10, units.Imperial); got != "22.37 mph" {
		t.Fatalf("imperial speed: %q", got)
	}
	if got := units.FormatAverageSpeed(5000, 0, units.Metric); got != "0.00 km/h" {
		t.Fatalf("zero-duration average: %q", got)
	}
}

func TestParseSystem(t *testing.T) {
	t.Parallel()
	if s, err := units.ParseSystem(" Imperial "); err != nil || s != units.Imperial {
		t.Fatalf("expected imperial, got %q %v", s, err)
	}
	if _, err := units.ParseSystem("furlongs"); err == nil {
		t.Fatalf("unknown system should fail")
	}
}

func TestFormatRelative(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	if got := units.FormatRelative(now.Add(-3*24*time.Hour), now); got != "3 days ago" {
		t.Fatalf("unexpected relative date %q", got)
	}
}
