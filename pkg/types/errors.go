package types

import "errors"

// Registry errors.
var (
	ErrHabitNotFound  = errors.New("habit not found")
	ErrDuplicateHabit = errors.New("duplicate habit id")
	ErrInvalidKind    = errors.New("invalid habit kind")
	ErrInvalidName    = errors.New("habit name must not be empty")
	ErrIndexRange     = errors.New("index out of range")
)

// Journal mutation errors.
var (
	ErrMomentTooLong = errors.New("moment exceeds maximum length")
	ErrRatingRange   = errors.New("rating outside 0-5 scale")
	ErrHoursRange    = errors.New("sleep hours outside 0-24 range")
	ErrGoalsMismatch = errors.New("goals and completion must both have 3 entries")
	ErrDateInvalid   = errors.New("invalid calendar date")
)

// Storage errors.
var (
	ErrNoData      = errors.New("no stored data")
	ErrCorruptBlob = errors.New("stored blob is not valid data")
	ErrClosed      = errors.New("storage is closed")
)

// Snapshot errors.
var (
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
)
