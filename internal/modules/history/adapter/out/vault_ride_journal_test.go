package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	historyout "gocycling/internal/modules/history/adapter/out"
)

func TestVaultRideJournalWriteListRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "rides")
	journal := historyout.NewVaultRideJournal(dir)

	r := ride("0f3a9c2e-1111-2222-3333-444455556666", 30, 1234567891*time.Nanosecond, 2500.5)
	path, err := journal.Write(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2026", "03", "01", "093000-0f3a9c2e.md"), path)
	assert.Equal(t, path, journal.PathFor(r))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "---\n"))
	assert.Contains(t, string(raw), "schema_version: 1")
	assert.Contains(t, string(raw), "- Distance: 2.50 km")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026", "notes.md"), []byte("plain note\n"), 0o644))

	rides, err := journal.List(ctx)
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, r.ID, rides[0].ID)
	assert.Equal(t, r.Duration, rides[0].Duration)
	assert.InDelta(t, r.Distance, rides[0].Distance, 1e-9)
	assert.True(t, r.StartedAt.Equal(rides[0].StartedAt))
	assert.True(t, r.RecordedAt.Equal(rides[0].RecordedAt))

	require.NoError(t, journal.Remove(ctx, r))
	require.NoError(t, journal.Remove(ctx, r))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestVaultRideJournalListMissingDir(t *testing.T) {
	t.Parallel()
	journal := historyout.NewVaultRideJournal(filepath.Join(t.TempDir(), "absent"))
	rides, err := journal.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rides)
}
