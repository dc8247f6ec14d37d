package types

import "strings"

// Habit kinds. The kind decides how a habit is scored: critical and goal
// habits count completions, avoid habits invert (unmarked is success), and
// number habits track a numeric quantity instead of a checkbox.
const (
	KindCritical = "critical"
	KindGoal     = "goal"
	KindAvoid    = "avoid"
	KindNumber   = "number"
)

// validKinds is the set of recognized habit kinds.
var validKinds = map[string]bool{
	KindCritical: true,
	KindGoal:     true,
	KindAvoid:    true,
	KindNumber:   true,
}

// ValidKind reports whether kind is a recognized habit kind.
func ValidKind(kind string) bool {
	return validKinds[kind]
}

// Habit is a tracked-habit definition. The ID is assigned once at creation
// and never reused or recomputed from position; day records reference
// habits by this ID only, so renaming or reordering never touches history.
type Habit struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Kind         string `json:"type"`
	Description  string `json:"description,omitempty"`
	Color        string `json:"color,omitempty"`
	FlameCount   int    `json:"flameCount,omitempty"`
}

// Validate checks that the habit is well-formed. It returns a sentinel
// error from this package on failure.
func (h Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrInvalidName
	}
	if !validKinds[h.Kind] {
		return ErrInvalidKind
	}
	return nil
}

// Numeric reports whether the habit records a numeric quantity rather
// than a boolean completion.
func (h Habit) Numeric() bool {
	return h.Kind == KindNumber
}

// Flames returns the habit's flame count, defaulting to 3 when unset.
// The flame count sizes the momentum display and caps the score.
func (h Habit) Flames() int {
	if h.FlameCount <= 0 {
		return 3
	}
	return h.FlameCount
}

// HabitPatch holds optional field updates for Registry.Update. Nil fields
// are left unchanged. There is deliberately no ID field: ids are immutable.
type HabitPatch struct {
	Name         *string
	Abbreviation *string
	Kind         *string
	Description  *string
	Color        *string
	FlameCount   *int
}
