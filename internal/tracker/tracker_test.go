package tracker

import (
	"github.com/quietgrove/daybook/pkg/types"
)

// memStorage is an in-memory types.Storage for tests. It counts saves so
// tests can assert on the persist-on-every-mutation behavior, and can be
// primed to fail or report corruption.
type memStorage struct {
	habits  []types.Habit
	journal *types.Journal

	habitSaves   int
	journalSaves int

	loadHabitsErr  error
	loadJournalErr error
	saveErr        error
}

func (m *memStorage) LoadHabits() ([]types.Habit, error) {
	if m.loadHabitsErr != nil {
		return nil, m.loadHabitsErr
	}
	if m.habits == nil {
		return nil, types.ErrNoData
	}
	return m.habits, nil
}

func (m *memStorage) SaveHabits(habits []types.Habit) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.habits = habits
	m.habitSaves++
	return nil
}

func (m *memStorage) LoadJournal() (*types.Journal, error) {
	if m.loadJournalErr != nil {
		return nil, m.loadJournalErr
	}
	if m.journal == nil {
		return nil, types.ErrNoData
	}
	return m.journal, nil
}

func (m *memStorage) SaveJournal(journal *types.Journal) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.journal = journal
	m.journalSaves++
	return nil
}

func (m *memStorage) Close() error { return nil }

// threeHabits is a minimal registry used across tests.
func threeHabits() []types.Habit {
	return []types.Habit{
		{ID: "a1", Name: "ALPHA", Kind: types.KindGoal, FlameCount: 3},
		{ID: "b1", Name: "BRAVO", Kind: types.KindCritical, FlameCount: 5},
		{ID: "c1", Name: "CHARLIE", Kind: types.KindNumber},
	}
}
