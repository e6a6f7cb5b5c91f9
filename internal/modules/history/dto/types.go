package dto

import "time"

type RecordInput struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Distance  float64
}

type RideOutput struct {
	ID           string
	StartedAt    time.Time
	Duration     time.Duration
	Distance     float64
	AverageSpeed float64
	RecordedAt   time.Time
	NotePath     string
}

type ListInput struct {
	// Sort is a sort choice key; empty means the rider's saved preference.
	Sort string
	// Save persists Sort as the new preference.
	Save bool
}

type SortOption struct {
	Key   string
	Label string
}

type ListOutput struct {
	Sort      string
	SortLabel string
	// Options lists every sort choice in the order they are offered.
	Options []SortOption
	Rides   []RideOutput
}

type DeleteInput struct {
	ID        string
	Confirmed bool
}

type DeleteOutput struct {
	ID      string
	Deleted bool
	// Decision is one of the preferences dto deletion modes.
	Decision string
}

type SummaryOutput struct {
	Count         int
	TotalDistance float64
	TotalDuration time.Duration
	AverageSpeed  float64
	LongestRide   float64
}

type ReindexOutput struct {
	Rides int
}
