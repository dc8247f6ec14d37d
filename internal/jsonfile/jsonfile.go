// Package jsonfile implements the JSON-file storage adapter for Daybook.
// The registry and journal are persisted as two whole-blob JSON files in
// the data directory, written atomically with the temp-file, fsync,
// rename pattern.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/quietgrove/daybook/pkg/types"
)

const (
	habitsFile  = "habits.json"
	journalFile = "journal.json"
)

// Storage persists the two Daybook blobs as JSON files under a data
// directory.
type Storage struct {
	dataDir string
	closed  bool
}

// Open creates the data directory if needed and returns a Storage
// rooted there.
func Open(dataDir string) (*Storage, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Storage{dataDir: dataDir}, nil
}

// LoadHabits reads the registry blob. Returns ErrNoData if the file does
// not exist and ErrCorruptBlob if it cannot be decoded.
func (s *Storage) LoadHabits() ([]types.Habit, error) {
	if s.closed {
		return nil, types.ErrClosed
	}
	data, err := os.ReadFile(filepath.Join(s.dataDir, habitsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrNoData
		}
		return nil, fmt.Errorf("read habits: %w", err)
	}
	var habits []types.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("%w: habits: %v", types.ErrCorruptBlob, err)
	}
	return habits, nil
}

// SaveHabits atomically replaces the registry blob.
func (s *Storage) SaveHabits(habits []types.Habit) error {
	if s.closed {
		return types.ErrClosed
	}
	if habits == nil {
		habits = []types.Habit{}
	}
	data, err := json.MarshalIndent(habits, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal habits: %w", err)
	}
	return writeAtomic(filepath.Join(s.dataDir, habitsFile), data)
}

// LoadJournal reads the journal blob. Returns ErrNoData if the file does
// not exist and ErrCorruptBlob if it cannot be decoded.
func (s *Storage) LoadJournal() (*types.Journal, error) {
	if s.closed {
		return nil, types.ErrClosed
	}
	data, err := os.ReadFile(filepath.Join(s.dataDir, journalFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrNoData
		}
		return nil, fmt.Errorf("read journal: %w", err)
	}
	var journal types.Journal
	if err := json.Unmarshal(data, &journal); err != nil {
		return nil, fmt.Errorf("%w: journal: %v", types.ErrCorruptBlob, err)
	}
	if journal.Months == nil {
		journal.Months = map[string]*types.MonthRecord{}
	}
	return &journal, nil
}

// SaveJournal atomically replaces the journal blob.
func (s *Storage) SaveJournal(journal *types.Journal) error {
	if s.closed {
		return types.ErrClosed
	}
	data, err := json.MarshalIndent(journal, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}
	return writeAtomic(filepath.Join(s.dataDir, journalFile), data)
}

// Close marks the storage closed. Idempotent; there are no open handles
// between operations.
func (s *Storage) Close() error {
	s.closed = true
	return nil
}

// writeAtomic writes data to path using the temp-file, fsync, rename
// pattern so a crash never leaves a partially written blob.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".daybook-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
