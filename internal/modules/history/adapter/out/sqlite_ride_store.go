package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gocycling/internal/modules/history/domain"
	apperrors "gocycling/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

type SQLiteRideStore struct {
	db *sql.DB
}

func NewSQLiteRideStore(dbPath string) (*SQLiteRideStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	store := &SQLiteRideStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRideStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS rides (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  started_at TEXT NOT NULL,
  duration_ns INTEGER NOT NULL,
  distance_m REAL NOT NULL,
  recorded_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create rides table: %w", err)
	}
	return nil
}

func (s *SQLiteRideStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteRideStore) Insert(ctx context.Context, ride domain.Ride) (domain.Ride, error) {
	const stmt = `
INSERT INTO rides (id, started_at, duration_ns, distance_m, recorded_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING;
`
	_, err := s.db.ExecContext(ctx, stmt,
		ride.ID,
		ride.StartedAt.UTC().Format(timeLayout),
		int64(ride.Duration),
		ride.Distance,
		ride.RecordedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return domain.Ride{}, fmt.Errorf("insert ride: %w", err)
	}
	return s.FindByID(ctx, ride.ID)
}

func (s *SQLiteRideStore) List(ctx context.Context) ([]domain.Ride, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, id, started_at, duration_ns, distance_m, recorded_at FROM rides ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list rides: %w", err)
	}
	defer rows.Close()

	out := []domain.Ride{}
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rides: %w", err)
	}
	return out, nil
}

func (s *SQLiteRideStore) FindByID(ctx context.Context, id string) (domain.Ride, error) {
	row := s.db.QueryRowContext(ctx, `SELECT seq, id, started_at, duration_ns, distance_m, recorded_at FROM rides WHERE id = ?`, id)
	ride, err := scanRide(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Ride{}, fmt.Errorf("ride %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Ride{}, err
	}
	return ride, nil
}

func (s *SQLiteRideStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rides WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete ride: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete ride rows: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteRideStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rides`); err != nil {
		return fmt.Errorf("reset rides: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRide(row scanner) (domain.Ride, error) {
	var (
		ride                  domain.Ride
		startedAt, recordedAt string
		durationNS            int64
	)
	if err := row.Scan(&ride.Seq, &ride.ID, &startedAt, &durationNS, &ride.Distance, &recordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Ride{}, err
		}
		return domain.Ride{}, fmt.Errorf("scan ride: %w", err)
	}
	var err error
	if ride.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return domain.Ride{}, fmt.Errorf("parse started_at for %s: %w", ride.ID, err)
	}
	if ride.RecordedAt, err = time.Parse(timeLayout, recordedAt); err != nil {
		return domain.Ride{}, fmt.Errorf("parse recorded_at for %s: %w", ride.ID, err)
	}
	ride.Duration = time.Duration(durationNS)
	return ride, nil
}
