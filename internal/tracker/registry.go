// Habit registry operations: the ordered list of tracked-habit
// definitions and its explicit edits. Registry edits never touch the
// journal; stale habit ids left behind by a removal are cleaned up
// lazily by the load-time reconcile pass, not here.
package tracker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quietgrove/daybook/pkg/types"
)

// newHabitID returns a fresh UUIDv7 habit id. Falls back to UUIDv4 if
// the system clock is unavailable for v7 generation.
func newHabitID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Habits returns the registry in display order. The returned slice is a
// copy; callers may not mutate registry state through it.
func (t *Tracker) Habits() []types.Habit {
	out := make([]types.Habit, len(t.habits))
	copy(out, t.habits)
	return out
}

// Habit returns the habit with the given id.
// Returns ErrHabitNotFound if no such habit exists.
func (t *Tracker) Habit(id string) (types.Habit, error) {
	for _, h := range t.habits {
		if h.ID == id {
			return h, nil
		}
	}
	return types.Habit{}, types.ErrHabitNotFound
}

// AddHabit appends a new habit to the registry. A draft without an ID is
// assigned a fresh one; a caller-supplied ID that collides with an
// existing habit is rejected with ErrDuplicateHabit.
func (t *Tracker) AddHabit(draft types.Habit) (types.Habit, error) {
	if err := draft.Validate(); err != nil {
		return types.Habit{}, err
	}
	if draft.ID == "" {
		draft.ID = newHabitID()
	}
	for _, h := range t.habits {
		if h.ID == draft.ID {
			return types.Habit{}, fmt.Errorf("%w: %s", types.ErrDuplicateHabit, draft.ID)
		}
	}
	t.habits = append(t.habits, draft)
	if err := t.storage.SaveHabits(t.habits); err != nil {
		return draft, fmt.Errorf("save habits: %w", err)
	}
	return draft, nil
}

// UpdateHabit merges non-nil patch fields into the habit with the given
// id. The id itself is immutable. Returns ErrHabitNotFound if no such
// habit exists; the registry is unchanged on any error.
func (t *Tracker) UpdateHabit(id string, patch types.HabitPatch) (types.Habit, error) {
	idx := -1
	for i, h := range t.habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.Habit{}, fmt.Errorf("%w: %s", types.ErrHabitNotFound, id)
	}

	updated := t.habits[idx]
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Abbreviation != nil {
		updated.Abbreviation = *patch.Abbreviation
	}
	if patch.Kind != nil {
		updated.Kind = *patch.Kind
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}
	if patch.FlameCount != nil {
		updated.FlameCount = *patch.FlameCount
	}
	if err := updated.Validate(); err != nil {
		return types.Habit{}, err
	}

	t.habits[idx] = updated
	if err := t.storage.SaveHabits(t.habits); err != nil {
		return updated, fmt.Errorf("save habits: %w", err)
	}
	return updated, nil
}

// RemoveHabit deletes the habit with the given id. Removing an absent id
// succeeds silently. Historical day records referencing the id are left
// in place.
func (t *Tracker) RemoveHabit(id string) error {
	for i, h := range t.habits {
		if h.ID == id {
			t.habits = append(t.habits[:i], t.habits[i+1:]...)
			if err := t.storage.SaveHabits(t.habits); err != nil {
				return fmt.Errorf("save habits: %w", err)
			}
			return nil
		}
	}
	return nil
}

// ReorderHabits moves the habit at index from to index to. Order is
// display order only; day records are keyed by id and unaffected.
func (t *Tracker) ReorderHabits(from, to int) error {
	n := len(t.habits)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: %d -> %d with %d habits", types.ErrIndexRange, from, to, n)
	}
	if from == to {
		return nil
	}
	h := t.habits[from]
	t.habits = append(t.habits[:from], t.habits[from+1:]...)
	t.habits = append(t.habits[:to], append([]types.Habit{h}, t.habits[to:]...)...)
	if err := t.storage.SaveHabits(t.habits); err != nil {
		return fmt.Errorf("save habits: %w", err)
	}
	return nil
}
