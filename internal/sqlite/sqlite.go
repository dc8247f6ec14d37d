// Package sqlite implements the SQLite storage adapter for Daybook.
// The registry and journal keep their whole-blob semantics: each is
// stored as a single JSON value in a two-row key-value table, replaced
// in full on every save.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/quietgrove/daybook/pkg/types"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

const (
	keyHabits  = "habits"
	keyJournal = "journal"
)

// Storage persists the two Daybook blobs in a SQLite database file.
type Storage struct {
	db *sql.DB
}

// Open creates the data directory if needed, opens (or creates) the
// database file inside it, and ensures the schema exists.
func Open(dataDir string) (*Storage, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "daybook.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// LoadHabits reads the registry blob. Returns ErrNoData if the row does
// not exist and ErrCorruptBlob if it cannot be decoded.
func (s *Storage) LoadHabits() ([]types.Habit, error) {
	data, err := s.loadBlob(keyHabits)
	if err != nil {
		return nil, err
	}
	var habits []types.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("%w: habits: %v", types.ErrCorruptBlob, err)
	}
	return habits, nil
}

// SaveHabits replaces the registry blob.
func (s *Storage) SaveHabits(habits []types.Habit) error {
	if habits == nil {
		habits = []types.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("marshal habits: %w", err)
	}
	return s.saveBlob(keyHabits, data)
}

// LoadJournal reads the journal blob. Returns ErrNoData if the row does
// not exist and ErrCorruptBlob if it cannot be decoded.
func (s *Storage) LoadJournal() (*types.Journal, error) {
	data, err := s.loadBlob(keyJournal)
	if err != nil {
		return nil, err
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

// SaveJournal replaces the journal blob.
func (s *Storage) SaveJournal(journal *types.Journal) error {
	data, err := json.Marshal(journal)
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}
	return s.saveBlob(keyJournal, data)
}

// Close closes the database. Idempotent.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Storage) loadBlob(key string) ([]byte, error) {
	if s.db == nil {
		return nil, types.ErrClosed
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *Storage) saveBlob(key string, data []byte) error {
	if s.db == nil {
		return types.ErrClosed
	}
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
