package types

// Storage is the persistence collaborator for the tracker: synchronous,
// whole-blob load and save of the two stored objects. Load methods return
// ErrNoData when nothing has been stored yet, and ErrCorruptBlob when the
// stored bytes cannot be decoded.
type Storage interface {
	// LoadHabits returns the stored habit registry.
	LoadHabits() ([]Habit, error)

	// SaveHabits replaces the stored habit registry.
	SaveHabits(habits []Habit) error

	// LoadJournal returns the stored journal.
	LoadJournal() (*Journal, error)

	// SaveJournal replaces the stored journal.
	SaveJournal(journal *Journal) error

	// Close releases storage resources. Idempotent.
	Close() error
}
