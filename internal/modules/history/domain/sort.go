package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortChoice string

const (
	SortDateDesc     SortChoice = "date_desc"
	SortDateAsc      SortChoice = "date_asc"
	SortDistanceDesc SortChoice = "distance_desc"
	SortDistanceAsc  SortChoice = "distance_asc"
	SortTimeDesc     SortChoice = "time_desc"
	SortTimeAsc      SortChoice = "time_asc"

	DefaultSort = SortDateDesc
)

// sortChoices keeps the order the choices are offered to the rider.
var sortChoices = []SortChoice{
	SortDateDesc,
	SortDateAsc,
	SortDistanceDesc,
	SortDistanceAsc,
	SortTimeDesc,
	SortTimeAsc,
}

var sortLabels = map[SortChoice]string{
	SortDateDesc:     "Date Descending (Default)",
	SortDateAsc:      "Date Ascending",
	SortDistanceDesc: "Distance Descending",
	SortDistanceAsc:  "Distance Ascending",
	SortTimeDesc:     "Time Descending",
	SortTimeAsc:      "Time Ascending",
}

func SortChoices() []SortChoice {
	return slices.Clone(sortChoices)
}

func ParseSortChoice(raw string) (SortChoice, error) {
	c := SortChoice(strings.ToLower(strings.TrimSpace(raw)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c SortChoice) Validate() error {
	if _, ok := sortLabels[c]; !ok {
		return fmt.Errorf("unsupported sort choice %q", string(c))
	}
	return nil
}

func (c SortChoice) Label() string {
	if label, ok := sortLabels[c]; ok {
		return label
	}
	return string(c)
}

// Next cycles through the choices in offer order.
func (c SortChoice) Next() SortChoice {
	idx := slices.Index(sortChoices, c)
	return sortChoices[(idx+1)%len(sortChoices)]
}

// Sort returns a new slice ordered by choice. Rides with equal keys keep
// insertion order (ascending Seq) whatever the direction, so repeated calls
// yield identical output. The input slice is not modified.
func Sort(rides []Ride, choice SortChoice) []Ride {
	out := slices.Clone(rides)
	key := keyFor(choice)
	desc := choice == SortDateDesc || choice == SortDistanceDesc || choice == SortTimeDesc
	slices.SortStableFunc(out, func(a, b Ride) int {
		c := key(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return out
}

func keyFor(choice SortChoice) func(a, b Ride) int {
	switch choice {
	case SortDistanceAsc, SortDistanceDesc:
		return func(a, b Ride) int { return cmp.Compare(a.Distance, b.Distance) }
	case SortTimeAsc, SortTimeDesc:
		return func(a, b Ride) int { return cmp.Compare(a.Duration, b.Duration) }
	default:
		return func(a, b Ride) int { return a.StartedAt.Compare(b.StartedAt) }
	}
}
