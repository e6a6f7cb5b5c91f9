package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gocycling/internal/modules/ride/domain"
	rideout "gocycling/internal/modules/ride/port/out"
	"gocycling/internal/platform/geo"
)

type fix struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type trackDocument struct {
	RideID  string  `json:"ride_id"`
	Meters  float64 `json:"meters"`
	Samples int     `json:"samples"`
	LastFix *fix    `json:"last_fix,omitempty"`
}

// TrackSampler accumulates distance from samples fed through `ride track`.
// Consecutive GPS fixes are joined by great-circle distance.
type TrackSampler struct {
	mu   sync.Mutex
	path string
}

func NewTrackSampler(path string) rideout.DistanceSampler {
	return &TrackSampler{path: path}
}

func (s *TrackSampler) Describe(context.Context) (domain.SamplerInfo, error) {
	return domain.SamplerInfo{Name: "track", Version: "builtin"}, nil
}

func (s *TrackSampler) Reset(_ context.Context, rideID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(trackDocument{RideID: rideID})
}

func (s *TrackSampler) Add(_ context.Context, sample domain.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if sample.HasFix {
		if doc.LastFix != nil {
			doc.Meters += geo.HaversineM(doc.LastFix.Lat, doc.LastFix.Lon, sample.Lat, sample.Lon)
		}
		doc.LastFix = &fix{Lat: sample.Lat, Lon: sample.Lon}
	} else {
		doc.Meters += sample.Meters
	}
	doc.Samples++
	return s.write(doc)
}

// Distance reports 0 for a track that belongs to another ride.
func (s *TrackSampler) Distance(_ context.Context, progress domain.Progress) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return 0, err
	}
	if doc.RideID != "" && progress.RideID != "" && doc.RideID != progress.RideID {
		return 0, nil
	}
	return doc.Meters, nil
}

func (s *TrackSampler) read() (trackDocument, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return trackDocument{}, nil
		}
		return trackDocument{}, fmt.Errorf("read track: %w", err)
	}
	doc := trackDocument{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return trackDocument{}, fmt.Errorf("decode track: %w", err)
	}
	return doc, nil
}

func (s *TrackSampler) write(doc trackDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create track dir: %w", err)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal track: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write track: %w", err)
	}
	return nil
}
