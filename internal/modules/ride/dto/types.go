package dto

import "time"

type StatusOutput struct {
	RideID       string
	Status       string
	StartedAt    time.Time
	Elapsed      time.Duration
	Distance     float64
	AverageSpeed float64
	// PausedByStop is set while a stop awaits confirmation on a ride that
	// was running. Only then does AbortStop resume it.
	PausedByStop bool
}

type StopInput struct {
	// Confirmed commits the stop. Without it Stop only pauses and asks for
	// confirmation.
	Confirmed bool
}

type StopOutput struct {
	Committed    bool
	RideID       string
	StartedAt    time.Time
	Duration     time.Duration
	Distance     float64
	AverageSpeed float64
	NotePath     string
	// Status is set when the stop is still awaiting confirmation.
	Status StatusOutput
}

type TrackInput struct {
	Meters float64
	Lat    *float64
	Lon    *float64
}

type SamplerOutput struct {
	Name    string
	Version string
}
