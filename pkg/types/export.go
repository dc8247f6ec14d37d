package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is the current export snapshot format version.
const SnapshotVersion = 1

// Snapshot is the self-contained export form of a tracker: the full
// habit registry and journal plus provenance fields. An external
// import/export surface round-trips this without reaching into the
// store's internals.
type Snapshot struct {
	Habits     []Habit   `json:"habits"`
	Journal    *Journal  `json:"data"`
	ExportDate time.Time `json:"exportDate"`
	Version    int       `json:"version"`
}

// MarshalSnapshot serializes the registry and journal into a snapshot
// blob stamped with the current time and format version.
func MarshalSnapshot(habits []Habit, journal *Journal) ([]byte, error) {
	snap := Snapshot{
		Habits:     habits,
		Journal:    journal,
		ExportDate: time.Now().UTC(),
		Version:    SnapshotVersion,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot blob. Returns ErrCorruptBlob for
// undecodable data and ErrSnapshotVersion for a version newer than this
// build understands.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}
	if snap.Journal == nil {
		snap.Journal = NewJournal()
	}
	return &snap, nil
}
