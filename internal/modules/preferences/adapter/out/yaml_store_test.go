package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	historydomain "gocycling/internal/modules/history/domain"
	prefsout "gocycling/internal/modules/preferences/adapter/out"
	"gocycling/internal/modules/preferences/domain"
	"gocycling/internal/platform/units"
)

func TestYAMLStoreDefaultsWhenMissing(t *testing.T) {
	t.Parallel()
	store := prefsout.NewYAMLStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	prefs, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Default(), prefs)
}

func TestYAMLStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	store := prefsout.NewYAMLStore(path)
	want := domain.Preferences{
		Units:                units.Imperial,
		Sort:                 historydomain.SortTimeAsc,
		DeletionConfirmation: false,
		DeletionEnabled:      true,
		Colour:               domain.ColourOrange,
		LargeMetrics:         true,
	}
	require.NoError(t, store.Save(context.Background(), want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), "sort: time_asc"), string(raw))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestYAMLStorePartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units: imperial\n"), 0o644))
	got, err := prefsout.NewYAMLStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, units.Imperial, got.Units)
	require.True(t, got.DeletionConfirmation)
	require.True(t, got.DeletionEnabled)
	require.Equal(t, historydomain.DefaultSort, got.Sort)
}

func TestYAMLStoreRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort: fastest\n"), 0o644))
	_, err := prefsout.NewYAMLStore(path).Load(context.Background())
	require.Error(t, err)
}
