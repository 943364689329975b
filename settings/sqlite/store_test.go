package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/jrsteele09/nexus-dashboard/settings/settingstest"
	"github.com/jrsteele09/nexus-dashboard/settings/sqlite"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(path, clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreContract(t *testing.T) {
	settingstest.RunRepoContract(t, func(t *testing.T) settings.Repo {
		return openStore(t, filepath.Join(t.TempDir(), "settings.db"))
	})
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ", clockwork.NewRealClock())
	require.Error(t, err)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.db")

	first, err := sqlite.Open(path, clockwork.NewRealClock())
	require.NoError(t, err)
	require.NoError(t, first.Merge(ctx, "G1", settingstest.Doc("welcome", `{"enabled":true}`)))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	doc, err := second.Get(ctx, "G1")
	require.NoError(t, err)
	settingstest.RequireDocEqual(t, settingstest.Doc("welcome", `{"enabled":true}`), doc)
}
