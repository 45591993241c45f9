package state_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molviz-labs/molsel/internal/state"
)

func newTestStore(t *testing.T) *state.SQLiteStore {
	t.Helper()
	store := state.NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndGetSelection(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.SaveSelection("active_site", "byres around 4.5 resn HEM", 42)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "active_site", saved.Name)
	assert.Equal(t, "byres around 4.5 resn HEM", saved.Expression)
	assert.Equal(t, 42, saved.AtomCount)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.GetSelection("active_site")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.Expression, got.Expression)
}

func TestSaveSelectionUpsertsByName(t *testing.T) {
	store := newTestStore(t)

	first, err := store.SaveSelection("site", "chain A", 10)
	require.NoError(t, err)

	second, err := store.SaveSelection("site", "chain A and name CA", 3)
	require.NoError(t, err)

	// The original row is updated in place.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "chain A and name CA", second.Expression)
	assert.Equal(t, 3, second.AtomCount)

	all, err := store.ListSelections()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetSelectionNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetSelection("missing")
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestListSelectionsOrderedByName(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"zinc_sites", "active_site", "interface"} {
		_, err := store.SaveSelection(name, "all", 1)
		require.NoError(t, err)
	}

	all, err := store.ListSelections()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "active_site", all[0].Name)
	assert.Equal(t, "interface", all[1].Name)
	assert.Equal(t, "zinc_sites", all[2].Name)
}

func TestDeleteSelection(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveSelection("doomed", "none", 0)
	require.NoError(t, err)

	require.NoError(t, store.DeleteSelection("doomed"))
	_, err = store.GetSelection("doomed")
	assert.ErrorIs(t, err, state.ErrNotFound)

	assert.ErrorIs(t, store.DeleteSelection("doomed"), state.ErrNotFound)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.db")

	store := state.NewSQLiteStore()
	require.NoError(t, store.Open(path))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())

	_, err := store.SaveSelection("s", "all", 13)
	require.NoError(t, err)
}

func TestStoreInterfaceCompliance(t *testing.T) {
	var _ state.Store = (*state.SQLiteStore)(nil)
}
