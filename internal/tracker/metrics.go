// Derived metrics: pure read-only computations over the journal and
// registry. Everything here is safe to recompute on demand; nothing
// mutates the journal. Days with no recorded value for a habit are
// excluded from denominators, never counted as failures.
package tracker

import (
	"math"
	"time"

	"github.com/quietgrove/daybook/pkg/types"
)

// CompletionRate returns the habit's completion percentage over the day
// span [fromDay, toDay] of a month, rounded to the nearest integer. The
// denominator counts only days with a recorded value for the habit; with
// no recorded days the rate is 0.
func CompletionRate(journal *types.Journal, habitID string, year int, month time.Month, fromDay, toDay int) int {
	recorded, completed := 0, 0
	for day := fromDay; day <= toDay; day++ {
		v, ok := journal.Day(year, month, day).Habits[habitID]
		if !ok {
			continue
		}
		recorded++
		if v.Completed() {
			completed++
		}
	}
	if recorded == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(recorded) * 100))
}

// NumericAverage returns the arithmetic mean of a number-kind habit's
// recorded values over the day span, or 0 with no recorded days.
func NumericAverage(journal *types.Journal, habitID string, year int, month time.Month, fromDay, toDay int) float64 {
	count, sum := 0, 0.0
	for day := fromDay; day <= toDay; day++ {
		v, ok := journal.Day(year, month, day).Habits[habitID]
		if !ok || !v.Numeric {
			continue
		}
		sum += v.Number
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// FlameMomentum returns the habit's flame score for a month: the
// completion rate over the trailing min(14, daysInMonth) days scaled to
// the habit's flame count and clamped to [0, flameCount].
func FlameMomentum(journal *types.Journal, habit types.Habit, year int, month time.Month) int {
	flames := habit.Flames()
	daysInMonth := types.DaysIn(year, month)
	window := 14
	if daysInMonth < window {
		window = daysInMonth
	}

	completed := 0
	for i := 0; i < window; i++ {
		day := daysInMonth - i
		if day < 1 {
			break
		}
		if v, ok := journal.Day(year, month, day).Habits[habit.ID]; ok && v.Completed() {
			completed++
		}
	}
	if window == 0 {
		return 0
	}

	score := int(math.Round(float64(completed) / float64(window) * float64(flames)))
	if score > flames {
		score = flames
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Weekly momentum consistency multipliers. An unbroken week is rewarded,
// three or more lapses are penalized, anything between is neutral.
const (
	streakBonus   = 1.2
	lapsePenalty  = 0.8
	weeklyWindow  = 7
	momentumScale = 10
)

// WeeklyMomentum returns the habit's momentum over the 7 days ending at
// end: (successes/7) x 10 x consistency multiplier. For avoid-kind habits
// success is inverted: a day with the habit unmarked counts as a success,
// and a day explicitly marked counts as a gap. Days with no recorded
// value do not count as successes but for non-avoid habits they also do
// not count as gaps; only present-but-negative days do.
func WeeklyMomentum(journal *types.Journal, habit types.Habit, end time.Time) float64 {
	successes, gaps := 0, 0
	for i := 0; i < weeklyWindow; i++ {
		d := end.AddDate(0, 0, -i)
		v, ok := journal.Day(d.Year(), d.Month(), d.Day()).Habits[habit.ID]

		if habit.Kind == types.KindAvoid {
			// Unmarked means the habit was avoided.
			if !ok || !v.Completed() {
				successes++
			} else {
				gaps++
			}
			continue
		}

		if ok && v.Completed() {
			successes++
		} else if ok {
			gaps++
		}
	}

	multiplier := 1.0
	if gaps == 0 {
		multiplier = streakBonus
	} else if gaps >= 3 {
		multiplier = lapsePenalty
	}

	return float64(successes) / float64(weeklyWindow) * momentumScale * multiplier
}

// SleepAverage returns the mean recorded sleep quality over the trailing
// 7 days ending at endDay of a month. The second return is false when the
// window holds no recordings; a recorded all-zero week averages to 0, true.
func SleepAverage(journal *types.Journal, year int, month time.Month, endDay int) (float64, bool) {
	return trailingAverage(journal, year, month, endDay, func(d *types.DayRecord) *float64 {
		return d.SleepQuality
	})
}

// MoodAverage returns the mean recorded mood over the trailing 7 days
// ending at endDay of a month. The second return is false when the window
// holds no recordings.
func MoodAverage(journal *types.Journal, year int, month time.Month, endDay int) (float64, bool) {
	return trailingAverage(journal, year, month, endDay, func(d *types.DayRecord) *float64 {
		return d.Mood
	})
}

func trailingAverage(journal *types.Journal, year int, month time.Month, endDay int, field func(*types.DayRecord) *float64) (float64, bool) {
	count, sum := 0, 0.0
	for i := 0; i < weeklyWindow; i++ {
		day := endDay - i
		if day < 1 {
			break
		}
		if v := field(journal.Day(year, month, day)); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// GoalsProgress returns how many of the month's goal slots are marked
// complete, alongside the slot count.
func GoalsProgress(month *types.MonthRecord) (done, total int) {
	total = types.GoalSlots
	for _, c := range month.GoalsCompletion {
		if c {
			done++
		}
	}
	return done, total
}
