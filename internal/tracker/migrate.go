// Load-time journal reconciliation. An older schema generation keyed
// per-day habit values by the habit's position in the registry list, so
// reordering or deleting a habit silently corrupted unrelated days. The
// current schema keys by stable habit id; this pass auto-heals stores
// written under the positional scheme and prunes keys that resolve to
// nothing. It runs once per load and is idempotent: a second pass finds
// no work.
package tracker

import (
	"strconv"

	"github.com/quietgrove/daybook/pkg/types"
)

// MigrationReport summarizes what a reconcile pass changed.
type MigrationReport struct {
	// Remapped counts entries whose legacy positional key was
	// converted to the corresponding habit id.
	Remapped int
	// Dropped counts entries whose key resolved to neither a current
	// id nor a valid position. Dropping is irrecoverable.
	Dropped int
}

// Changed reports whether the pass modified the journal.
func (r MigrationReport) Changed() bool {
	return r.Remapped > 0 || r.Dropped > 0
}

// NeedsReconcile is the cheap pre-scan: it reports whether any day's
// habit map contains a key that is not a current habit id, or whether
// the journal was written under the legacy (version 0) schema.
func NeedsReconcile(journal *types.Journal, habits []types.Habit) bool {
	if journal.Version < types.JournalVersion {
		return true
	}
	valid := validIDSet(habits)
	for _, m := range journal.Months {
		for _, d := range m.Days {
			for key := range d.Habits {
				if !valid[key] {
					return true
				}
			}
		}
	}
	return false
}

// Reconcile rebuilds every day's habit map against the current registry:
// keys that are current ids pass through with their values untouched,
// keys that parse as a valid position into the registry list are remapped
// to that habit's id, and everything else is dropped. Valid ids always
// win: a positional key resolving to an id that already holds a value is
// dropped rather than overwriting it, keeping the result independent of
// map iteration order. All other day fields are left as they are. The
// journal is stamped with the current schema version.
func Reconcile(journal *types.Journal, habits []types.Habit) MigrationReport {
	valid := validIDSet(habits)
	var report MigrationReport

	for _, m := range journal.Months {
		for _, d := range m.Days {
			if d.Habits == nil {
				continue
			}
			rebuilt := make(map[string]types.HabitValue, len(d.Habits))
			for key, value := range d.Habits {
				if valid[key] {
					rebuilt[key] = value
				}
			}
			for key, value := range d.Habits {
				if valid[key] {
					continue
				}
				idx, ok := parseIndex(key)
				if !ok || idx >= len(habits) {
					report.Dropped++
					continue
				}
				if _, taken := rebuilt[habits[idx].ID]; taken {
					report.Dropped++
					continue
				}
				rebuilt[habits[idx].ID] = value
				report.Remapped++
			}
			d.Habits = rebuilt
		}
	}

	journal.Version = types.JournalVersion
	return report
}

// validIDSet returns the set of current habit ids.
func validIDSet(habits []types.Habit) map[string]bool {
	set := make(map[string]bool, len(habits))
	for _, h := range habits {
		set[h.ID] = true
	}
	return set
}

// parseIndex interprets a stored key as a legacy positional index:
// a small non-negative integer.
func parseIndex(key string) (int, bool) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
