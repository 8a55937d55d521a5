package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

// ErrSnapshot marks a failed snapshot write or read.
var ErrSnapshot = errors.New("snapshot operation failed")

const (
	backupPrefix     = "2fa_data_backup_"
	archivePrefix    = "archive_"
	archiveIndexFile = "archive_index.json"
	snapshotTSLayout = "20060102_150405"
)

// SnapshotInfo describes one snapshot in the index.
type SnapshotInfo struct {
	Filename     string    `json:"filename"`
	Timestamp    time.Time `json:"timestamp"`
	AccountCount int       `json:"account_count"`
	GroupCount   int       `json:"group_count"`
}

// Snapshots is the single mechanism behind both backups and archives:
// timestamped state snapshots in a directory with filename-sorted
// retention pruning. The backup instance copies the raw data file before
// destructive operations; the archive instance serializes state on exit,
// keeps an index with counts, and can compress with zstd.
type Snapshots struct {
	dir      string
	prefix   string
	keep     int
	indexed  bool
	compress bool
	log      *zap.Logger
}

// NewBackups returns the pre-destructive-operation instance: plain
// timestamped copies, no index.
func NewBackups(dir string, keep int, log *zap.Logger) *Snapshots {
	if log == nil {
		log = zap.NewNop()
	}
	return &Snapshots{dir: dir, prefix: backupPrefix, keep: keep, log: log}
}

// NewArchives returns the periodic/on-exit instance: serialized state
// snapshots with an index file and optional zstd compression.
func NewArchives(dir string, keep int, compress bool, log *zap.Logger) *Snapshots {
	if log == nil {
		log = zap.NewNop()
	}
	return &Snapshots{
		dir: dir, prefix: archivePrefix, keep: keep,
		indexed: true, compress: compress, log: log,
	}
}

// CopyFile snapshots an existing data file by copying it under a
// timestamped name, then prunes old snapshots. A missing source is a
// logged no-op, not an error.
func (s *Snapshots) CopyFile(src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("data file not found, skipping backup", zap.String("path", src))
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	name := s.prefix + time.Now().Format(snapshotTSLayout) + ".json"
	path := filepath.Join(s.dir, name)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	s.prune()
	s.log.Info("created backup", zap.String("file", name))
	return path, nil
}

// Write serializes the state into a new snapshot, updates the index, and
// prunes old entries.
func (s *Snapshots) Write(state *model.State) (SnapshotInfo, error) {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return SnapshotInfo{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	data, err := encodeState(state)
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	now := time.Now()
	name := s.prefix + now.Format(snapshotTSLayout) + ".json"
	if s.compress {
		name += ".zst"
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return SnapshotInfo{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	if err := writeAtomic(filepath.Join(s.dir, name), data); err != nil {
		return SnapshotInfo{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	info := SnapshotInfo{
		Filename:     name,
		Timestamp:    now,
		AccountCount: len(state.Accounts),
		GroupCount:   len(state.Groups),
	}
	if s.indexed {
		index := s.loadIndex()
		index = append([]SnapshotInfo{info}, index...)
		s.saveIndex(index)
	}

	s.prune()
	s.log.Info("created archive",
		zap.String("file", name), zap.Int("accounts", info.AccountCount))
	return info, nil
}

// Read loads a snapshot back into a state.
func (s *Snapshots) Read(filename string) (*model.State, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	if strings.HasSuffix(filename, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
		}
		data, err = dec.DecodeAll(data, nil)
		dec.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
		}
	}

	state, err := decodeState(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSnapshot, filename, err)
	}
	return state, nil
}

// List returns known snapshots, newest first. For the indexed instance,
// entries whose file has disappeared are filtered out; otherwise the
// directory listing is the source of truth.
func (s *Snapshots) List() []SnapshotInfo {
	if s.indexed {
		index := s.loadIndex()
		kept := index[:0]
		for _, info := range index {
			if _, err := os.Stat(filepath.Join(s.dir, info.Filename)); err == nil {
				kept = append(kept, info)
			}
		}
		return kept
	}

	names := s.listFiles()
	infos := make([]SnapshotInfo, 0, len(names))
	for _, name := range names {
		info := SnapshotInfo{Filename: name}
		if ts, err := time.ParseInLocation(snapshotTSLayout,
			strings.TrimSuffix(strings.TrimPrefix(name, s.prefix), ".json"), time.Local); err == nil {
			info.Timestamp = ts
		}
		infos = append(infos, info)
	}
	return infos
}

// Delete removes one snapshot and its index entry.
func (s *Snapshots) Delete(filename string) error {
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	if s.indexed {
		index := s.loadIndex()
		kept := index[:0]
		for _, info := range index {
			if info.Filename != filename {
				kept = append(kept, info)
			}
		}
		s.saveIndex(kept)
	}
	s.log.Info("deleted snapshot", zap.String("file", filename))
	return nil
}

// Latest returns the newest snapshot, if any.
func (s *Snapshots) Latest() (SnapshotInfo, bool) {
	infos := s.List()
	if len(infos) == 0 {
		return SnapshotInfo{}, false
	}
	return infos[0], true
}

// listFiles returns snapshot filenames sorted newest first. Filenames
// embed timestamps, so lexical order is chronological.
func (s *Snapshots) listFiles() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), s.prefix) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

// prune removes snapshots beyond the retention count. Losing an old
// snapshot is not user-critical, so failures are logged and swallowed.
func (s *Snapshots) prune() {
	if s.keep <= 0 {
		return
	}

	if s.indexed {
		index := s.loadIndex()
		if len(index) <= s.keep {
			return
		}
		for _, info := range index[s.keep:] {
			if err := os.Remove(filepath.Join(s.dir, info.Filename)); err != nil && !os.IsNotExist(err) {
				s.log.Warn("failed to remove old archive",
					zap.String("file", info.Filename), zap.Error(err))
			} else {
				s.log.Debug("removed old archive", zap.String("file", info.Filename))
			}
		}
		s.saveIndex(index[:s.keep])
		return
	}

	names := s.listFiles()
	for _, name := range names[min(s.keep, len(names)):] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.log.Warn("failed to remove old backup", zap.String("file", name), zap.Error(err))
		} else {
			s.log.Debug("removed old backup", zap.String("file", name))
		}
	}
}

type snapshotIndex struct {
	Archives []SnapshotInfo `json:"archives"`
}

func (s *Snapshots) loadIndex() []SnapshotInfo {
	data, err := os.ReadFile(filepath.Join(s.dir, archiveIndexFile))
	if err != nil {
		return nil
	}
	var index snapshotIndex
	if err := json.Unmarshal(data, &index); err != nil {
		s.log.Warn("failed to parse archive index", zap.Error(err))
		return nil
	}
	return index.Archives
}

func (s *Snapshots) saveIndex(infos []SnapshotInfo) {
	data, err := json.MarshalIndent(snapshotIndex{Archives: infos}, "", "  ")
	if err != nil {
		s.log.Error("failed to encode archive index", zap.Error(err))
		return
	}
	if err := writeAtomic(filepath.Join(s.dir, archiveIndexFile), data); err != nil {
		s.log.Error("failed to save archive index", zap.Error(err))
	}
}
