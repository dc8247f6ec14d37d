package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// JournalVersion is the current journal schema version. Version 1 keys
// per-day habit values by habit ID. Version 0 (a stored blob with no
// version field) marks the legacy era in which values were keyed by the
// habit's position in the registry list.
const JournalVersion = 1

// GoalSlots is the fixed number of monthly goal slots.
const GoalSlots = 3

// HabitValue is a recorded value for one habit on one day: either a
// boolean completion or, for number-kind habits, a numeric quantity.
// Absence of a HabitValue in a day's habit map means "no data", which is
// distinct from a recorded false or zero.
type HabitValue struct {
	Done    bool
	Number  float64
	Numeric bool
}

// BoolValue returns a boolean completion value.
func BoolValue(done bool) HabitValue {
	return HabitValue{Done: done}
}

// NumberValue returns a numeric quantity value.
func NumberValue(n float64) HabitValue {
	return HabitValue{Number: n, Numeric: true}
}

// Completed reports whether the value counts as a completion. Numeric
// values count when non-zero.
func (v HabitValue) Completed() bool {
	if v.Numeric {
		return v.Number != 0
	}
	return v.Done
}

// MarshalJSON writes the value in its wire form: a bare JSON boolean for
// completions, a bare JSON number for quantities.
func (v HabitValue) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Done)
}

// UnmarshalJSON reads either wire form.
func (v *HabitValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = HabitValue{Done: b}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = HabitValue{Number: n, Numeric: true}
		return nil
	}
	return fmt.Errorf("%w: habit value must be bool or number", ErrCorruptBlob)
}

// DayRecord holds everything recorded for a single day. Pointer fields
// distinguish "not recorded" (nil) from a recorded zero or empty string.
type DayRecord struct {
	Habits       map[string]HabitValue `json:"habits,omitempty"`
	Moment       *string               `json:"moment,omitempty"`
	SleepQuality *float64              `json:"sleepQuality,omitempty"`
	SleepHours   *float64              `json:"sleepHours,omitempty"`
	Mood         *float64              `json:"mood,omitempty"`
}

// Empty reports whether the record holds no data at all.
func (d *DayRecord) Empty() bool {
	return len(d.Habits) == 0 && d.Moment == nil &&
		d.SleepQuality == nil && d.SleepHours == nil && d.Mood == nil
}

// MonthRecord holds the sparse day map plus the month's goal slots.
// Goals and GoalsCompletion are parallel; both have GoalSlots entries
// whenever set.
type MonthRecord struct {
	Days            map[int]*DayRecord `json:"days,omitempty"`
	Goals           []string           `json:"goals,omitempty"`
	GoalsCompletion []bool             `json:"goalsCompletion,omitempty"`
}

// Journal is the full day-record store: a sparse mapping from month key
// to month record, tagged with the schema version it was written under.
type Journal struct {
	Version int                     `json:"version"`
	Months  map[string]*MonthRecord `json:"months,omitempty"`
}

// NewJournal returns an empty journal at the current schema version.
func NewJournal() *Journal {
	return &Journal{Version: JournalVersion, Months: map[string]*MonthRecord{}}
}

// MonthKey renders the storage key for a month: a four-digit year, a
// dash, and a zero-based month index (the wire format the journal has
// always used).
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%d", year, int(month)-1)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidDate reports whether the day exists in the given month.
func ValidDate(year int, month time.Month, day int) bool {
	return month >= time.January && month <= time.December &&
		day >= 1 && day <= DaysIn(year, month)
}

// Day returns the record for a day, or an empty record if none exists.
// It never creates storage; callers must treat the result as read-only.
func (j *Journal) Day(year int, month time.Month, day int) *DayRecord {
	if m, ok := j.Months[MonthKey(year, month)]; ok {
		if d, ok := m.Days[day]; ok {
			return d
		}
	}
	return &DayRecord{}
}

// Month returns the record for a month, or an empty record with default
// goal slots if none exists. It never creates storage.
func (j *Journal) Month(year int, month time.Month) *MonthRecord {
	if m, ok := j.Months[MonthKey(year, month)]; ok {
		return m
	}
	return &MonthRecord{
		Goals:           make([]string, GoalSlots),
		GoalsCompletion: make([]bool, GoalSlots),
	}
}

// EnsureMonth returns the month record, materializing it on first use.
func (j *Journal) EnsureMonth(year int, month time.Month) *MonthRecord {
	if j.Months == nil {
		j.Months = map[string]*MonthRecord{}
	}
	key := MonthKey(year, month)
	m, ok := j.Months[key]
	if !ok {
		m = &MonthRecord{}
		j.Months[key] = m
	}
	return m
}

// EnsureDay returns the day record, materializing the month and day
// levels on first use. Sibling fields are never touched.
func (j *Journal) EnsureDay(year int, month time.Month, day int) *DayRecord {
	m := j.EnsureMonth(year, month)
	if m.Days == nil {
		m.Days = map[int]*DayRecord{}
	}
	d, ok := m.Days[day]
	if !ok {
		d = &DayRecord{}
		m.Days[day] = d
	}
	return d
}
