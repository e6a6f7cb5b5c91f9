package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	historydomain "gocycling/internal/modules/history/domain"
	"gocycling/internal/modules/preferences/domain"
	prefsout "gocycling/internal/modules/preferences/port/out"
	"gocycling/internal/platform/units"
)

type document struct {
	SchemaVersion        int    `yaml:"schema_version"`
	Units                string `yaml:"units"`
	Sort                 string `yaml:"sort"`
	DeletionConfirmation bool   `yaml:"deletion_confirmation"`
	DeletionEnabled      bool   `yaml:"deletion_enabled"`
	Colour               string `yaml:"colour"`
	LargeMetrics         bool   `yaml:"large_metrics"`
}

type YAMLStore struct {
	mu   sync.Mutex
	path string
}

func NewYAMLStore(path string) prefsout.Store {
	return &YAMLStore{path: path}
}

func (s *YAMLStore) Load(_ context.Context) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := toDocument(domain.Default())
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Default(), nil
		}
		return domain.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return domain.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	prefs := domain.Preferences{
		Units:                units.System(doc.Units),
		Sort:                 historydomain.SortChoice(doc.Sort),
		DeletionConfirmation: doc.DeletionConfirmation,
		DeletionEnabled:      doc.DeletionEnabled,
		Colour:               domain.Colour(doc.Colour),
		LargeMetrics:         doc.LargeMetrics,
	}
	if err := prefs.Validate(); err != nil {
		return domain.Preferences{}, fmt.Errorf("invalid preferences in %s: %w", s.path, err)
	}
	return prefs, nil
}

func (s *YAMLStore) Save(_ context.Context, prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	payload, err := yaml.Marshal(toDocument(prefs))
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

func toDocument(p domain.Preferences) document {
	return document{
		SchemaVersion:        domain.SchemaVersion,
		Units:                string(p.Units),
		Sort:                 string(p.Sort),
		DeletionConfirmation: p.DeletionConfirmation,
		DeletionEnabled:      p.DeletionEnabled,
		Colour:               string(p.Colour),
		LargeMetrics:         p.LargeMetrics,
	}
}
