package domain_test

import (
	"slices"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gocycling/internal/modules/history/domain"
)

var base = time.Date(2026, 4, 23, 9, 0, 0, 0, time.UTC)

func scenarioRides() []domain.Ride {
	return []domain.Ride{
		{ID: "a", Seq: 1, StartedAt: base, Duration: 120 * time.Second, Distance: 1000},
		{ID: "b", Seq: 2, StartedAt: base.Add(time.Hour), Duration: 60 * time.Second, Distance: 500},
		{ID: "c", Seq: 3, StartedAt: base.Add(2 * time.Hour), Duration: 90 * time.Second, Distance: 2000},
	}
}

func TestSortScenario(t *testing.T) {
	t.Parallel()
	rides := scenarioRides()

	byTime := domain.Sort(rides, domain.SortTimeAsc)
	if got := durations(byTime); !slices.Equal(got, []time.Duration{60 * time.Second, 90 * time.Second, 120 * time.Second}) {
		t.Fatalf("time asc order: %v", got)
	}
	byDistance := domain.Sort(rides, domain.SortDistanceDesc)
	if got := distances(byDistance); !slices.Equal(got, []float64{2000, 1000, 500}) {
		t.Fatalf("distance desc order: %v", got)
	}
	byDate := domain.Sort(rides, domain.SortDateDesc)
	if byDate[0].ID != "c" || byDate[2].ID != "a" {
		t.Fatalf("date desc order: %v", ids(byDate))
	}
	if rides[0].ID != "a" || rides[1].ID != "b" {
		t.Fatalf("input slice must not be reordered: %v", ids(rides))
	}
}

func TestSortTiesKeepInsertionOrder(t *testing.T) {
	t.Parallel()
	rides := []domain.Ride{
		{ID: "first", Seq: 1, StartedAt: base, Duration: time.Minute, Distance: 700},
		{ID: "second", Seq: 2, StartedAt: base, Duration: time.Minute, Distance: 700},
		{ID: "third", Seq: 3, StartedAt: base, Duration: time.Minute, Distance: 700},
	}
	for _, choice := range domain.SortChoices() {
		got := ids(domain.Sort(rides, choice))
		if !slices.Equal(got, []string{"first", "second", "third"}) {
			t.Fatalf("%s should keep insertion order on ties, got %v", choice, got)
		}
	}
}

func TestSortChoiceParsingAndLabels(t *testing.T) {
	t.Parallel()
	c, err := domain.ParseSortChoice(" Distance_Desc ")
	if err != nil || c != domain.SortDistanceDesc {
		t.Fatalf("parse distance_desc: %q %v", c, err)
	}
	if _, err := domain.ParseSortChoice("speed_asc"); err == nil {
		t.Fatalf("unknown sort choice should fail")
	}
	if domain.DefaultSort.Label() != "Date Descending (Default)" {
		t.Fatalf("unexpected default label %q", domain.DefaultSort.Label())
	}
	seen := map[domain.SortChoice]bool{}
	c = domain.DefaultSort
	for range domain.SortChoices() {
		seen[c] = true
		c = c.Next()
	}
	if len(seen) != 6 || c != domain.DefaultSort {
		t.Fatalf("Next should cycle through all six choices, saw %d", len(seen))
	}
}

func TestSortProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	choiceGen := gen.OneConstOf(
		domain.SortDateDesc, domain.SortDateAsc,
		domain.SortDistanceDesc, domain.SortDistanceAsc,
		domain.SortTimeDesc, domain.SortTimeAsc,
	)

	properties.Property("list is a permutation of the stored set", prop.ForAll(
		func(keys []int, choice domain.SortChoice) bool {
			rides := ridesFromKeys(keys)
			got := ids(domain.Sort(rides, choice))
			want := ids(rides)
			slices.Sort(got)
			slices.Sort(want)
			return slices.Equal(got, want)
		},
		gen.SliceOf(gen.IntRange(0, 5)),
		choiceGen,
	))

	properties.Property("sorting is idempotent", prop.ForAll(
		func(keys []int, choice domain.SortChoice) bool {
			once := domain.Sort(ridesFromKeys(keys), choice)
			twice := domain.Sort(once, choice)
			return slices.Equal(ids(once), ids(twice))
		},
		gen.SliceOf(gen.IntRange(0, 5)),
		choiceGen,
	))

	properties.Property("equal keys preserve insertion order", prop.ForAll(
		func(keys []int, choice domain.SortChoice) bool {
			sorted := domain.Sort(ridesFromKeys(keys), choice)
			for i := 1; i < len(sorted); i++ {
				prev, cur := sorted[i-1], sorted[i]
				if sameKey(prev, cur, choice) && prev.Seq > cur.Seq {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		choiceGen,
	))

	properties.TestingRun(t)
}

func TestAverageSpeedAndSummary(t *testing.T) {
	t.Parallel()
	if got := (domain.Ride{Distance: 4200}).AverageSpeed(); got != 0 {
		t.Fatalf("zero duration should yield 0, got %v", got)
	}
	if got := (domain.Ride{Distance: 600, Duration: time.Minute}).AverageSpeed(); got != 10 {
		t.Fatalf("expected 10 m/s, got %v", got)
	}
	summary := domain.Summarize(scenarioRides())
	if summary.Count != 3 || summary.TotalDistance != 3500 || summary.TotalDuration != 270*time.Second {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.LongestRide != 2000 {
		t.Fatalf("unexpected longest ride %v", summary.LongestRide)
	}
	if (domain.Summary{}).AverageSpeed() != 0 {
		t.Fatalf("empty summary should have zero speed")
	}
}

func TestRideValidate(t *testing.T) {
	t.Parallel()
	ok := domain.Ride{ID: "r", StartedAt: base, Duration: time.Second, Distance: 1}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid ride: %v", err)
	}
	for name, mutate := range map[string]func(*domain.Ride){
		"missing id":        func(r *domain.Ride) { r.ID = " " },
		"missing start":     func(r *domain.Ride) { r.StartedAt = time.Time{} },
		"negative duration": func(r *domain.Ride) { r.Duration = -time.Second },
		"negative distance": func(r *domain.Ride) { r.Distance = -1 },
	} {
		r := ok
		mutate(&r)
		if err := r.Validate(); err == nil {
			t.Fatalf("%s should fail validation", name)
		}
	}
}

// ridesFromKeys builds rides whose date, distance and duration all derive
// from a small key so that ties are frequent.
func ridesFromKeys(keys []int) []domain.Ride {
	out := make([]domain.Ride, 0, len(keys))
	for i, k := range keys {
		out = append(out, domain.Ride{
			ID:        string(rune('a'+i%26)) + string(rune('A'+i/26%26)),
			Seq:       int64(i + 1),
			StartedAt: base.Add(time.Duration(k) * time.Hour),
			Duration:  time.Duration((k*7)%4) * time.Minute,
			Distance:  float64((k * 3) % 5 * 100),
		})
	}
	return out
}

func sameKey(a, b domain.Ride, choice domain.SortChoice) bool {
	switch choice {
	case domain.SortDistanceAsc, domain.SortDistanceDesc:
		return a.Distance == b.Distance
	case domain.SortTimeAsc, domain.SortTimeDesc:
		return a.Duration == b.Duration
	default:
		return a.StartedAt.Equal(b.StartedAt)
	}
}

func ids(rides []domain.Ride) []string {
	out := make([]string, 0, len(rides))
	for _, r := range rides {
		out = append(out, r.ID)
	}
	return out
}

func durations(rides []domain.Ride) []time.Duration {
	out := make([]time.Duration, 0, len(rides))
	for _, r := range rides {
		out = append(out, r.Duration)
	}
	return out
}

func distances(rides []domain.Ride) []float64 {
	out := make([]float64, 0, len(rides))
	for _, r := range rides {
		out = append(out, r.Distance)
	}
	return out
}
