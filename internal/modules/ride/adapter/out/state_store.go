package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gocycling/internal/modules/ride/domain"
	rideout "gocycling/internal/modules/ride/port/out"
	apperrors "gocycling/internal/platform/errors"
)

type stateDocument struct {
	SchemaVersion int `json:"schema_version"`
	domain.State
}

func encodeState(state domain.State) ([]byte, error) {
	payload, err := json.MarshalIndent(stateDocument{SchemaVersion: domain.SchemaVersion, State: state}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ride state: %w", err)
	}
	return payload, nil
}

// decodeState maps an empty or stopped document to ErrNoActiveRide.
func decodeState(payload []byte) (domain.State, error) {
	doc := stateDocument{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.State{}, fmt.Errorf("decode ride state: %w", err)
	}
	if doc.RideID == "" || doc.State.Current() == domain.StatusStopped {
		return domain.State{}, apperrors.ErrNoActiveRide
	}
	return doc.State, nil
}

type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) rideout.StateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Save(_ context.Context, state domain.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create ride state dir: %w", err)
	}
	payload, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write ride state: %w", err)
	}
	return nil
}

func (s *FileStateStore) Load(_ context.Context) (domain.State, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.State{}, apperrors.ErrNoActiveRide
		}
		return domain.State{}, fmt.Errorf("read ride state: %w", err)
	}
	return decodeState(payload)
}

func (s *FileStateStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear ride state: %w", err)
	}
	return nil
}
