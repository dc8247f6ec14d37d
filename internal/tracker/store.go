// Package tracker implements the Daybook core: the habit registry, the
// day-record journal and its mutation API, the load-time reconcile pass,
// and the derived metrics. A Tracker owns the single in-memory state and
// persists whole blobs through an injected types.Storage on every
// mutation.
package tracker

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/quietgrove/daybook/pkg/types"
)

// MomentMaxLen is the maximum moment length in runes.
const MomentMaxLen = 200

// RatingMax is the top of the sleep-quality and mood scales.
const RatingMax = 5

// Tracker is the application's single stateful core. All mutations are
// synchronous: compute the new in-memory state, then write the whole
// affected blob back through storage. A failed save leaves the in-memory
// state as the session's source of truth (best-effort durability).
type Tracker struct {
	storage types.Storage
	habits  []types.Habit
	journal *types.Journal

	report  MigrationReport
	loadErr error
}

// Open loads the registry and journal from storage, seeds defaults into
// an empty registry, and runs the reconcile pass exactly once. A corrupt
// blob degrades to empty defaults; the error is retained and reported by
// LoadError rather than failing the session, and the reconcile pass is
// skipped so the surviving blob is never rewritten against placeholder
// state.
func Open(storage types.Storage) (*Tracker, error) {
	t := &Tracker{storage: storage}

	habits, err := storage.LoadHabits()
	switch {
	case err == nil:
		t.habits = habits
	case errors.Is(err, types.ErrNoData):
		t.habits = DefaultHabits()
		if err := storage.SaveHabits(t.habits); err != nil {
			return nil, fmt.Errorf("seed habits: %w", err)
		}
	case errors.Is(err, types.ErrCorruptBlob):
		t.habits = DefaultHabits()
		t.loadErr = err
	default:
		return nil, fmt.Errorf("load habits: %w", err)
	}

	journal, err := storage.LoadJournal()
	switch {
	case err == nil:
		t.journal = journal
	case errors.Is(err, types.ErrNoData):
		t.journal = types.NewJournal()
	case errors.Is(err, types.ErrCorruptBlob):
		t.journal = types.NewJournal()
		t.loadErr = errors.Join(t.loadErr, err)
	default:
		return nil, fmt.Errorf("load journal: %w", err)
	}

	// One-shot reconcile: repair legacy positional keys and drop
	// orphans, persisting only when the pre-scan found work to do.
	// The pass never runs on a degraded load: against a placeholder
	// registry every journal key looks foreign, and reconciling would
	// destroy real history over a registry-side problem.
	switch {
	case t.loadErr != nil:
	case NeedsReconcile(t.journal, t.habits):
		t.report = Reconcile(t.journal, t.habits)
		if err := storage.SaveJournal(t.journal); err != nil {
			return nil, fmt.Errorf("save reconciled journal: %w", err)
		}
	default:
		t.journal.Version = types.JournalVersion
	}

	return t, nil
}

// Close releases the underlying storage.
func (t *Tracker) Close() error {
	return t.storage.Close()
}

// LoadError returns the retained corrupt-blob error from Open, or nil.
func (t *Tracker) LoadError() error {
	return t.loadErr
}

// Migration returns the report from the load-time reconcile pass. A zero
// report means the journal was already in the current schema.
func (t *Tracker) Migration() MigrationReport {
	return t.report
}

// Journal returns the in-memory journal. Callers must treat it as
// read-only; all writes go through the setter methods.
func (t *Tracker) Journal() *types.Journal {
	return t.journal
}

// Day returns the record for a day, or an empty record if none exists.
// Never creates storage.
func (t *Tracker) Day(year int, month time.Month, day int) *types.DayRecord {
	return t.journal.Day(year, month, day)
}

// Month returns the record for a month, or empty defaults if none
// exists. Never creates storage.
func (t *Tracker) Month(year int, month time.Month) *types.MonthRecord {
	return t.journal.Month(year, month)
}

// SetHabitValue records a boolean completion for a habit on a day.
// Writes are habit-id-agnostic: a stale or foreign id is stored as given
// and only cleaned up by the next load-time reconcile.
func (t *Tracker) SetHabitValue(year int, month time.Month, day int, habitID string, done bool) error {
	return t.setHabit(year, month, day, habitID, types.BoolValue(done))
}

// SetHabitNumber records a numeric quantity for a habit on a day.
func (t *Tracker) SetHabitNumber(year int, month time.Month, day int, habitID string, n float64) error {
	return t.setHabit(year, month, day, habitID, types.NumberValue(n))
}

func (t *Tracker) setHabit(year int, month time.Month, day int, habitID string, v types.HabitValue) error {
	if !types.ValidDate(year, month, day) {
		return fmt.Errorf("%w: %04d-%02d-%02d", types.ErrDateInvalid, year, month, day)
	}
	rec := t.journal.EnsureDay(year, month, day)
	if rec.Habits == nil {
		rec.Habits = map[string]types.HabitValue{}
	}
	rec.Habits[habitID] = v
	return t.persistJournal()
}

// ClearHabitValue removes a habit's entry for a day, returning the day
// to the "no data" state for that habit. Clearing an absent entry is a
// no-op that still succeeds.
func (t *Tracker) ClearHabitValue(year int, month time.Month, day int, habitID string) error {
	if !types.ValidDate(year, month, day) {
		return fmt.Errorf("%w: %04d-%02d-%02d", types.ErrDateInvalid, year, month, day)
	}
	m, ok := t.journal.Months[types.MonthKey(year, month)]
	if !ok {
		return nil
	}
	rec, ok := m.Days[day]
	if !ok || rec.Habits == nil {
		return nil
	}
	if _, ok := rec.Habits[habitID]; !ok {
		return nil
	}
	delete(rec.Habits, habitID)
	return t.persistJournal()
}

// SetMoment records the day's free-text moment. An empty string is a
// recorded empty moment, distinct from no entry.
func (t *Tracker) SetMoment(year int, month time.Month, day int, text string) error {
	if !types.ValidDate(year, month, day) {
		return fmt.Errorf("%w: %04d-%02d-%02d", types.ErrDateInvalid, year, month, day)
	}
	if utf8.RuneCountInString(text) > MomentMaxLen {
		return fmt.Errorf("%w: %d runes (max %d)", types.ErrMomentTooLong, utf8.RuneCountInString(text), MomentMaxLen)
	}
	rec := t.journal.EnsureDay(year, month, day)
	rec.Moment = &text
	return t.persistJournal()
}

// SetSleep records sleep quality (0-5) and, optionally, hours slept.
// Pass hours < 0 to record quality only.
func (t *Tracker) SetSleep(year int, month time.Month, day int, quality, hours float64) error {
	if !types.ValidDate(year, month, day) {
		return fmt.Errorf("%w: %04d-%02d-%02d", types.ErrDateInvalid, year, month, day)
	}
	if quality < 0 || quality > RatingMax {
		return fmt.Errorf("%w: quality %v", types.ErrRatingRange, quality)
	}
	if hours > 24 {
		return fmt.Errorf("%w: %v", types.ErrHoursRange, hours)
	}
	rec := t.journal.EnsureDay(year, month, day)
	q := quality
	rec.SleepQuality = &q
	if hours >= 0 {
		h := hours
		rec.SleepHours = &h
	}
	return t.persistJournal()
}

// SetMood records the day's mood rating (0-5).
func (t *Tracker) SetMood(year int, month time.Month, day int, mood float64) error {
	if !types.ValidDate(year, month, day) {
		return fmt.Errorf("%w: %04d-%02d-%02d", types.ErrDateInvalid, year, month, day)
	}
	if mood < 0 || mood > RatingMax {
		return fmt.Errorf("%w: mood %v", types.ErrRatingRange, mood)
	}
	rec := t.journal.EnsureDay(year, month, day)
	m := mood
	rec.Mood = &m
	return t.persistJournal()
}

// SetGoals replaces the month's goal slots and their completion flags.
// Both slices must have exactly types.GoalSlots entries.
func (t *Tracker) SetGoals(year int, month time.Month, goals []string, completion []bool) error {
	if len(goals) != types.GoalSlots || len(completion) != types.GoalSlots {
		return fmt.Errorf("%w: got %d goals, %d flags", types.ErrGoalsMismatch, len(goals), len(completion))
	}
	m := t.journal.EnsureMonth(year, month)
	m.Goals = append([]string(nil), goals...)
	m.GoalsCompletion = append([]bool(nil), completion...)
	return t.persistJournal()
}

// Snapshot serializes the registry and journal into an export blob.
func (t *Tracker) Snapshot() ([]byte, error) {
	return types.MarshalSnapshot(t.habits, t.journal)
}

// Import replaces the registry and journal from a snapshot blob, runs
// the reconcile pass over the imported journal, and persists both blobs.
func (t *Tracker) Import(data []byte) (MigrationReport, error) {
	snap, err := types.UnmarshalSnapshot(data)
	if err != nil {
		return MigrationReport{}, err
	}

	t.habits = snap.Habits
	t.journal = snap.Journal
	report := MigrationReport{}
	if NeedsReconcile(t.journal, t.habits) {
		report = Reconcile(t.journal, t.habits)
	} else {
		t.journal.Version = types.JournalVersion
	}
	t.report = report

	if err := t.storage.SaveHabits(t.habits); err != nil {
		return report, fmt.Errorf("save habits: %w", err)
	}
	return report, t.persistJournal()
}

// persistJournal writes the whole journal blob back to storage. This is
// the deliberate full-store write performed after every mutation.
func (t *Tracker) persistJournal() error {
	if err := t.storage.SaveJournal(t.journal); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	return nil
}
