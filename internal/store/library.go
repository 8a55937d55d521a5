package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

// ErrLibraryNotFound marks lookups by unknown library id.
var ErrLibraryNotFound = errors.New("library not found")

// ErrLastLibrary is returned when deleting the only remaining library.
var ErrLastLibrary = errors.New("cannot delete the last library")

const (
	libraryIndexFile = "libraries.json"

	// DefaultLibraryID identifies the library created on first run.
	DefaultLibraryID   = "default"
	defaultLibraryName = "Default"
)

// LibraryInfo is one entry in the library index.
type LibraryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	File string `json:"file"`
}

type libraryIndex struct {
	Current   string        `json:"current"`
	Libraries []LibraryInfo `json:"libraries"`
}

// DeletedLibraryBackup supports undo of a soft library deletion: the
// file is kept on disk while the entry leaves the index.
type DeletedLibraryBackup struct {
	Library    LibraryInfo
	Index      int
	WasCurrent bool
}

// LibraryStore manages multiple independent state files under one data
// directory, addressed through a small index file that also records
// which library is current.
type LibraryStore struct {
	dir        string
	legacyFile string
	log        *zap.Logger
}

// NewLibraryStore constructs a store rooted at dir. legacyFile, when
// non-empty, points at a pre-library data file migrated into the default
// library on first run.
func NewLibraryStore(dir, legacyFile string, log *zap.Logger) *LibraryStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &LibraryStore{dir: dir, legacyFile: legacyFile, log: log}
}

// FilePath returns the absolute path of a library's state file.
func (ls *LibraryStore) FilePath(lib LibraryInfo) string {
	return filepath.Join(ls.dir, lib.File)
}

// Initialize ensures the data directory and the default library exist,
// migrating a legacy data file into the default library when present.
func (ls *LibraryStore) Initialize() error {
	if err := os.MkdirAll(ls.dir, 0700); err != nil {
		return err
	}

	index := ls.loadIndex()
	for _, lib := range index.Libraries {
		if lib.ID == DefaultLibraryID {
			return nil
		}
	}

	def := LibraryInfo{ID: DefaultLibraryID, Name: defaultLibraryName, File: DefaultLibraryID + ".json"}
	index.Libraries = append([]LibraryInfo{def}, index.Libraries...)
	if index.Current == "" {
		index.Current = DefaultLibraryID
	}
	if err := ls.saveIndex(index); err != nil {
		return err
	}

	ls.migrateLegacy(def)
	return nil
}

// migrateLegacy copies the pre-library data file into a library that has
// no file yet. Migration failure is logged, never fatal.
func (ls *LibraryStore) migrateLegacy(lib LibraryInfo) {
	if ls.legacyFile == "" {
		return
	}
	data, err := os.ReadFile(ls.legacyFile)
	if err != nil {
		return
	}
	if _, err := os.Stat(ls.FilePath(lib)); err == nil {
		return
	}
	if err := writeAtomic(ls.FilePath(lib), data); err != nil {
		ls.log.Warn("failed to migrate legacy data", zap.Error(err))
		return
	}
	ls.log.Info("migrated legacy data file", zap.String("library", lib.Name))
}

// List returns all libraries in index order.
func (ls *LibraryStore) List() []LibraryInfo {
	return ls.loadIndex().Libraries
}

// Current returns the active library. Falls back to the first entry if
// the recorded current id is stale.
func (ls *LibraryStore) Current() (LibraryInfo, error) {
	index := ls.loadIndex()
	for _, lib := range index.Libraries {
		if lib.ID == index.Current {
			return lib, nil
		}
	}
	if len(index.Libraries) > 0 {
		return index.Libraries[0], nil
	}
	return LibraryInfo{}, ErrLibraryNotFound
}

// Get returns a library by id.
func (ls *LibraryStore) Get(id string) (LibraryInfo, error) {
	for _, lib := range ls.loadIndex().Libraries {
		if lib.ID == id {
			return lib, nil
		}
	}
	return LibraryInfo{}, fmt.Errorf("%w: %s", ErrLibraryNotFound, id)
}

// Switch makes the library with the given id current.
func (ls *LibraryStore) Switch(id string) (LibraryInfo, error) {
	lib, err := ls.Get(id)
	if err != nil {
		return LibraryInfo{}, err
	}
	index := ls.loadIndex()
	index.Current = id
	if err := ls.saveIndex(index); err != nil {
		return LibraryInfo{}, err
	}
	ls.log.Info("switched library", zap.String("name", lib.Name))
	return lib, nil
}

// Create adds a new library with a fresh empty state file.
func (ls *LibraryStore) Create(name string) (LibraryInfo, error) {
	if err := os.MkdirAll(ls.dir, 0700); err != nil {
		return LibraryInfo{}, err
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	lib := LibraryInfo{ID: id, Name: name, File: "library_" + id + ".json"}

	data, err := encodeState(model.NewState())
	if err != nil {
		return LibraryInfo{}, err
	}
	if err := writeAtomic(ls.FilePath(lib), data); err != nil {
		return LibraryInfo{}, err
	}

	index := ls.loadIndex()
	index.Libraries = append(index.Libraries, lib)
	if err := ls.saveIndex(index); err != nil {
		return LibraryInfo{}, err
	}

	ls.log.Info("created library", zap.String("name", name), zap.String("id", id))
	return lib, nil
}

// Rename changes a library's display name.
func (ls *LibraryStore) Rename(id, newName string) (LibraryInfo, error) {
	index := ls.loadIndex()
	for i := range index.Libraries {
		if index.Libraries[i].ID == id {
			index.Libraries[i].Name = newName
			if err := ls.saveIndex(index); err != nil {
				return LibraryInfo{}, err
			}
			ls.log.Info("renamed library", zap.String("id", id), zap.String("name", newName))
			return index.Libraries[i], nil
		}
	}
	return LibraryInfo{}, fmt.Errorf("%w: %s", ErrLibraryNotFound, id)
}

// Reorder moves a library up (-1) or down (+1) in the index. Moves past
// either end are silently ignored.
func (ls *LibraryStore) Reorder(id string, direction int) error {
	index := ls.loadIndex()
	pos := -1
	for i, lib := range index.Libraries {
		if lib.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrLibraryNotFound, id)
	}

	target := pos + direction
	if target < 0 || target >= len(index.Libraries) {
		return nil
	}
	index.Libraries[pos], index.Libraries[target] = index.Libraries[target], index.Libraries[pos]
	return ls.saveIndex(index)
}

// Delete removes a library from the index. The last remaining library
// cannot be deleted. With keepFile the state file stays on disk and a
// backup record for undo is returned; otherwise the file is removed.
// When the current library is deleted, the first remaining one becomes
// current.
func (ls *LibraryStore) Delete(id string, keepFile bool) (*DeletedLibraryBackup, error) {
	index := ls.loadIndex()
	if len(index.Libraries) <= 1 {
		return nil, ErrLastLibrary
	}

	pos := -1
	for i, lib := range index.Libraries {
		if lib.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, fmt.Errorf("%w: %s", ErrLibraryNotFound, id)
	}

	lib := index.Libraries[pos]
	backup := &DeletedLibraryBackup{
		Library:    lib,
		Index:      pos,
		WasCurrent: index.Current == id,
	}
	index.Libraries = append(index.Libraries[:pos], index.Libraries[pos+1:]...)

	if !keepFile {
		if err := os.Remove(ls.FilePath(lib)); err != nil && !os.IsNotExist(err) {
			ls.log.Warn("failed to delete library file", zap.Error(err))
		}
	}
	if index.Current == id {
		index.Current = index.Libraries[0].ID
	}
	if err := ls.saveIndex(index); err != nil {
		return nil, err
	}

	ls.log.Info("deleted library", zap.String("name", lib.Name), zap.Bool("soft", keepFile))
	if keepFile {
		return backup, nil
	}
	return nil, nil
}

// Restore re-inserts a soft-deleted library at its original position and
// restores its current flag.
func (ls *LibraryStore) Restore(backup *DeletedLibraryBackup) (LibraryInfo, error) {
	index := ls.loadIndex()
	if backup.Index <= len(index.Libraries) {
		index.Libraries = append(index.Libraries[:backup.Index],
			append([]LibraryInfo{backup.Library}, index.Libraries[backup.Index:]...)...)
	} else {
		index.Libraries = append(index.Libraries, backup.Library)
	}
	if backup.WasCurrent {
		index.Current = backup.Library.ID
	}
	if err := ls.saveIndex(index); err != nil {
		return LibraryInfo{}, err
	}
	ls.log.Info("restored library", zap.String("name", backup.Library.Name))
	return backup.Library, nil
}

// PurgeFile deletes the kept state file once the undo window closes.
func (ls *LibraryStore) PurgeFile(backup *DeletedLibraryBackup) {
	if err := os.Remove(ls.FilePath(backup.Library)); err != nil && !os.IsNotExist(err) {
		ls.log.Warn("failed to delete library file", zap.Error(err))
		return
	}
	ls.log.Info("permanently deleted library file", zap.String("file", backup.Library.File))
}

// LoadState reads a library's state. A missing or unreadable file yields
// a fresh empty state; libraries are resilient on load.
func (ls *LibraryStore) LoadState(lib LibraryInfo) *model.State {
	state, err := NewDataStore(ls.FilePath(lib), ls.log).Load()
	if err != nil {
		ls.log.Error("failed to load library state", zap.String("library", lib.Name), zap.Error(err))
		return model.NewState()
	}
	return state
}

// SaveState writes a library's state.
func (ls *LibraryStore) SaveState(lib LibraryInfo, state *model.State) error {
	return NewDataStore(ls.FilePath(lib), ls.log).Save(state)
}

func (ls *LibraryStore) loadIndex() libraryIndex {
	data, err := os.ReadFile(filepath.Join(ls.dir, libraryIndexFile))
	if err != nil {
		return libraryIndex{Current: DefaultLibraryID}
	}
	var index libraryIndex
	if err := json.Unmarshal(data, &index); err != nil {
		ls.log.Warn("failed to parse library index", zap.Error(err))
		return libraryIndex{Current: DefaultLibraryID}
	}
	return index
}

func (ls *LibraryStore) saveIndex(index libraryIndex) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(ls.dir, libraryIndexFile), data)
}
