package out

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gocycling/internal/modules/history/domain"
	"gocycling/internal/platform/markdown"
	"gocycling/internal/platform/units"
)

type noteMeta struct {
	SchemaVersion int     `yaml:"schema_version"`
	ID            string  `yaml:"id"`
	StartedAt     string  `yaml:"started_at"`
	RecordedAt    string  `yaml:"recorded_at"`
	DurationSec   float64 `yaml:"duration_seconds"`
	DistanceM     float64 `yaml:"distance_m"`
}

// VaultRideJournal writes one markdown note per ride under
// <dir>/YYYY/MM/DD/.
type VaultRideJournal struct {
	dir string
}

func NewVaultRideJournal(dir string) *VaultRideJournal {
	return &VaultRideJournal{dir: dir}
}

func (j *VaultRideJournal) PathFor(ride domain.Ride) string {
	date := ride.StartedAt.UTC()
	short := ride.ID
	if len(short) > 8 {
		short = short[:8]
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), short)
	return filepath.Join(j.dir, date.Format("2006"), date.Format("01"), date.Format("02"), name)
}

func (j *VaultRideJournal) Write(_ context.Context, ride domain.Ride) (string, error) {
	path := j.PathFor(ride)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	meta := noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            ride.ID,
		StartedAt:     ride.StartedAt.UTC().Format(time.RFC3339Nano),
		RecordedAt:    ride.RecordedAt.UTC().Format(time.RFC3339Nano),
		DurationSec:   ride.Duration.Seconds(),
		DistanceM:     ride.Distance,
	}
	body := fmt.Sprintf("# Ride %s\n\n- Time: %s\n- Distance: %s\n- Average speed: %s\n",
		units.FormatDate(ride.StartedAt),
		units.FormatDuration(ride.Duration),
		units.FormatDistance(ride.Distance, units.Metric),
		units.FormatAverageSpeed(ride.Distance, ride.Duration, units.Metric),
	)
	rendered, err := markdown.Encode(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write ride note: %w", err)
	}
	return path, nil
}

func (j *VaultRideJournal) Remove(_ context.Context, ride domain.Ride) error {
	if err := os.Remove(j.PathFor(ride)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove ride note: %w", err)
	}
	return nil
}

// List decodes every note in the journal. Files without a ride id in their
// frontmatter are skipped.
func (j *VaultRideJournal) List(_ context.Context) ([]domain.Ride, error) {
	out := []domain.Ride{}
	err := filepath.WalkDir(j.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == j.dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		ride, ok, err := readNote(path)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, ride)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk ride journal: %w", err)
	}
	return out, nil
}

func readNote(path string) (domain.Ride, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Ride{}, false, fmt.Errorf("read ride note: %w", err)
	}
	meta := noteMeta{}
	if _, err := markdown.Decode(string(raw), &meta); err != nil {
		return domain.Ride{}, false, fmt.Errorf("decode %s: %w", path, err)
	}
	if meta.ID == "" {
		return domain.Ride{}, false, nil
	}
	ride := domain.Ride{
		ID:       meta.ID,
		Duration: time.Duration(math.Round(meta.DurationSec * float64(time.Second))),
		Distance: meta.DistanceM,
	}
	if ride.StartedAt, err = time.Parse(time.RFC3339Nano, meta.StartedAt); err != nil {
		return domain.Ride{}, false, fmt.Errorf("parse started_at in %s: %w", path, err)
	}
	if ride.RecordedAt, err = time.Parse(time.RFC3339Nano, meta.RecordedAt); err != nil {
		return domain.Ride{}, false, fmt.Errorf("parse recorded_at in %s: %w", path, err)
	}
	return ride, true, nil
}
