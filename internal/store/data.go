// Package store persists application state: whole-file JSON data files,
// timestamped snapshots with retention, and the multi-library index.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

// ErrLoad marks a data file that exists but cannot be read or parsed.
var ErrLoad = errors.New("failed to load data")

// ErrSave marks a failed state write.
var ErrSave = errors.New("failed to save data")

// DataStore loads and saves one library's whole state as a single JSON
// document.
type DataStore struct {
	path string
	log  *zap.Logger
}

// NewDataStore constructs a store over the given file path.
func NewDataStore(path string, log *zap.Logger) *DataStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &DataStore{path: path, log: log}
}

// Path returns the backing file path.
func (d *DataStore) Path() string { return d.path }

// Exists reports whether the data file is present.
func (d *DataStore) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// Load reads the state. A missing file yields a fresh empty state;
// a malformed file yields ErrLoad.
func (d *DataStore) Load() (*model.State, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			d.log.Info("data file not found, starting empty", zap.String("path", d.path))
			return model.NewState(), nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, d.path, err)
	}

	state, err := decodeState(data)
	if err != nil {
		d.log.Error("invalid data file", zap.String("path", d.path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, d.path, err)
	}

	d.log.Info("loaded state",
		zap.String("path", d.path), zap.Int("accounts", len(state.Accounts)))
	return state, nil
}

// Save overwrites the data file with the full state, using a temp file
// and an atomic rename so a crash mid-write cannot corrupt it.
func (d *DataStore) Save(state *model.State) error {
	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSave, d.path, err)
	}
	if err := writeAtomic(d.path, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSave, d.path, err)
	}
	d.log.Info("saved state",
		zap.String("path", d.path), zap.Int("accounts", len(state.Accounts)))
	return nil
}

func decodeState(data []byte) (*model.State, error) {
	state := model.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	state.Normalize()
	return state, nil
}

// encodeState marshals a state with empty lists kept as [] rather than
// null, matching the persisted file format.
func encodeState(state *model.State) ([]byte, error) {
	out := *state
	if out.Accounts == nil {
		out.Accounts = []model.Account{}
	}
	if out.Trash == nil {
		out.Trash = []model.Account{}
	}
	if out.Groups == nil {
		out.Groups = []model.Group{}
	}
	return json.MarshalIndent(&out, "", "  ")
}

// writeAtomic writes data to a temp file next to path, syncs it, then
// renames it into place.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
