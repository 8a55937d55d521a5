package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

func newTestLibraryStore(t *testing.T) *LibraryStore {
	t.Helper()
	ls := NewLibraryStore(t.TempDir(), "", nil)
	require.NoError(t, ls.Initialize())
	return ls
}

func TestInitializeCreatesDefaultLibrary(t *testing.T) {
	ls := newTestLibraryStore(t)

	libs := ls.List()
	require.Len(t, libs, 1)
	assert.Equal(t, DefaultLibraryID, libs[0].ID)
	assert.Equal(t, "Default", libs[0].Name)

	current, err := ls.Current()
	require.NoError(t, err)
	assert.Equal(t, DefaultLibraryID, current.ID)

	// Re-running is idempotent.
	require.NoError(t, ls.Initialize())
	assert.Len(t, ls.List(), 1)
}

func TestInitializeMigratesLegacyFile(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(t.TempDir(), "2fa_data.json")
	require.NoError(t, os.WriteFile(legacy,
		[]byte(`{"accounts": [{"email": "old@b.com", "id": 1}], "next_id": 2}`), 0600))

	ls := NewLibraryStore(dir, legacy, nil)
	require.NoError(t, ls.Initialize())

	current, err := ls.Current()
	require.NoError(t, err)
	state := ls.LoadState(current)
	require.Len(t, state.Accounts, 1)
	assert.Equal(t, "old@b.com", state.Accounts[0].Email)
}

func TestCreateAndSwitch(t *testing.T) {
	ls := newTestLibraryStore(t)

	lib, err := ls.Create("Work")
	require.NoError(t, err)
	assert.Len(t, lib.ID, 8)
	assert.Equal(t, "library_"+lib.ID+".json", lib.File)

	// New library starts out empty and readable.
	state := ls.LoadState(lib)
	assert.Empty(t, state.Accounts)

	switched, err := ls.Switch(lib.ID)
	require.NoError(t, err)
	assert.Equal(t, lib.ID, switched.ID)

	current, err := ls.Current()
	require.NoError(t, err)
	assert.Equal(t, lib.ID, current.ID)
}

func TestSwitchUnknownLibrary(t *testing.T) {
	ls := newTestLibraryStore(t)
	_, err := ls.Switch("nope")
	require.ErrorIs(t, err, ErrLibraryNotFound)
}

func TestDeleteLastLibraryRefused(t *testing.T) {
	ls := newTestLibraryStore(t)
	_, err := ls.Delete(DefaultLibraryID, false)
	require.ErrorIs(t, err, ErrLastLibrary)
	assert.Len(t, ls.List(), 1)
}

func TestDeleteCurrentFallsBackToFirst(t *testing.T) {
	ls := newTestLibraryStore(t)
	lib, err := ls.Create("Work")
	require.NoError(t, err)
	_, err = ls.Switch(lib.ID)
	require.NoError(t, err)

	_, err = ls.Delete(lib.ID, false)
	require.NoError(t, err)

	current, err := ls.Current()
	require.NoError(t, err)
	assert.Equal(t, DefaultLibraryID, current.ID)

	_, err = os.Stat(ls.FilePath(lib))
	assert.True(t, os.IsNotExist(err), "hard delete removes the state file")
}

func TestSoftDeleteRestorePurge(t *testing.T) {
	ls := newTestLibraryStore(t)
	lib, err := ls.Create("Work")
	require.NoError(t, err)
	_, err = ls.Switch(lib.ID)
	require.NoError(t, err)

	backup, err := ls.Delete(lib.ID, true)
	require.NoError(t, err)
	require.NotNil(t, backup)
	assert.Equal(t, lib.ID, backup.Library.ID)
	assert.Equal(t, 1, backup.Index)
	assert.True(t, backup.WasCurrent)

	// File survives a soft delete.
	_, err = os.Stat(ls.FilePath(lib))
	require.NoError(t, err)
	assert.Len(t, ls.List(), 1)

	restored, err := ls.Restore(backup)
	require.NoError(t, err)
	assert.Equal(t, lib.ID, restored.ID)

	libs := ls.List()
	require.Len(t, libs, 2)
	assert.Equal(t, lib.ID, libs[1].ID, "restored at its original position")

	current, err := ls.Current()
	require.NoError(t, err)
	assert.Equal(t, lib.ID, current.ID, "current flag restored")

	backup, err = ls.Delete(lib.ID, true)
	require.NoError(t, err)
	ls.PurgeFile(backup)
	_, err = os.Stat(ls.FilePath(lib))
	assert.True(t, os.IsNotExist(err))
}

func TestRenameLibrary(t *testing.T) {
	ls := newTestLibraryStore(t)
	lib, err := ls.Create("Work")
	require.NoError(t, err)

	renamed, err := ls.Rename(lib.ID, "Personal")
	require.NoError(t, err)
	assert.Equal(t, "Personal", renamed.Name)

	got, err := ls.Get(lib.ID)
	require.NoError(t, err)
	assert.Equal(t, "Personal", got.Name)

	_, err = ls.Rename("nope", "x")
	require.ErrorIs(t, err, ErrLibraryNotFound)
}

func TestReorderLibraries(t *testing.T) {
	ls := newTestLibraryStore(t)
	lib, err := ls.Create("Work")
	require.NoError(t, err)

	require.NoError(t, ls.Reorder(lib.ID, -1))
	libs := ls.List()
	require.Len(t, libs, 2)
	assert.Equal(t, lib.ID, libs[0].ID)

	// Moving past the top is a no-op.
	require.NoError(t, ls.Reorder(lib.ID, -1))
	assert.Equal(t, lib.ID, ls.List()[0].ID)

	require.ErrorIs(t, ls.Reorder("nope", 1), ErrLibraryNotFound)
}

func TestLoadStateResilient(t *testing.T) {
	ls := newTestLibraryStore(t)
	lib, err := ls.Create("Work")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(ls.FilePath(lib), []byte("{broken"), 0600))
	state := ls.LoadState(lib)
	require.NotNil(t, state)
	assert.Empty(t, state.Accounts)
}

func TestSaveLoadLibraryState(t *testing.T) {
	ls := newTestLibraryStore(t)
	lib, err := ls.Create("Work")
	require.NoError(t, err)

	state := model.NewState()
	state.Accounts = []model.Account{{Email: "a@b.com", ID: 1}}
	state.NextIDCounter = 2
	require.NoError(t, ls.SaveState(lib, state))

	loaded := ls.LoadState(lib)
	require.Len(t, loaded.Accounts, 1)
	assert.Equal(t, "a@b.com", loaded.Accounts[0].Email)
	assert.Equal(t, 2, loaded.NextIDCounter)
}
