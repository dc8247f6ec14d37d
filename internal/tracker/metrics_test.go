package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quietgrove/daybook/pkg/types"
)

func TestCompletionRateExcludesAbsentDays(t *testing.T) {
	j := types.NewJournal()
	j.EnsureDay(2024, time.March, 1).Habits = map[string]types.HabitValue{"a1": types.BoolValue(true)}
	// Day 2 has no entry for a1 at all.
	j.EnsureDay(2024, time.March, 3).Habits = map[string]types.HabitValue{"a1": types.BoolValue(false)}

	// 1 of 2 recorded days, not 1 of 3.
	assert.Equal(t, 50, CompletionRate(j, "a1", 2024, time.March, 1, 3))
}

func TestCompletionRateNoData(t *testing.T) {
	j := types.NewJournal()
	assert.Equal(t, 0, CompletionRate(j, "a1", 2024, time.March, 1, 31))
}

func TestCompletionRateCountsNumericNonZero(t *testing.T) {
	j := types.NewJournal()
	j.EnsureDay(2024, time.March, 1).Habits = map[string]types.HabitValue{"c1": types.NumberValue(12)}
	j.EnsureDay(2024, time.March, 2).Habits = map[string]types.HabitValue{"c1": types.NumberValue(0)}

	assert.Equal(t, 50, CompletionRate(j, "c1", 2024, time.March, 1, 2))
}

func TestNumericAverage(t *testing.T) {
	j := types.NewJournal()
	j.EnsureDay(2024, time.March, 1).Habits = map[string]types.HabitValue{"c1": types.NumberValue(10)}
	j.EnsureDay(2024, time.March, 2).Habits = map[string]types.HabitValue{"c1": types.NumberValue(20)}
	// A boolean entry under the same id is not a numeric recording.
	j.EnsureDay(2024, time.March, 3).Habits = map[string]types.HabitValue{"c1": types.BoolValue(true)}

	assert.InDelta(t, 15.0, NumericAverage(j, "c1", 2024, time.March, 1, 31), 1e-9)
}

func TestNumericAverageNoData(t *testing.T) {
	j := types.NewJournal()
	assert.Equal(t, 0.0, NumericAverage(j, "c1", 2024, time.March, 1, 31))
}

func TestFlameMomentum(t *testing.T) {
	habit := types.Habit{ID: "a1", Name: "ALPHA", Kind: types.KindGoal, FlameCount: 4}

	tests := []struct {
		name          string
		completedDays []int
		want          int
	}{
		{
			name: "no data scores zero",
			want: 0,
		},
		{
			name:          "full window scores full flames",
			completedDays: []int{18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31},
			want:          4,
		},
		{
			name:          "half window rounds",
			completedDays: []int{25, 26, 27, 28, 29, 30, 31},
			want:          2, // round(7/14 * 4)
		},
		{
			name:          "days before the window are ignored",
			completedDays: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			want:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := types.NewJournal()
			for _, day := range tt.completedDays {
				j.EnsureDay(2024, time.March, day).Habits = map[string]types.HabitValue{
					"a1": types.BoolValue(true),
				}
			}
			got := FlameMomentum(j, habit, 2024, time.March)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, habit.Flames(), "never exceeds the flame count")
		})
	}
}

func TestFlameMomentumDefaultFlames(t *testing.T) {
	habit := types.Habit{ID: "a1", Name: "ALPHA", Kind: types.KindGoal}
	j := types.NewJournal()
	for day := 18; day <= 31; day++ {
		j.EnsureDay(2024, time.March, day).Habits = map[string]types.HabitValue{
			"a1": types.BoolValue(true),
		}
	}
	assert.Equal(t, 3, FlameMomentum(j, habit, 2024, time.March))
}

func TestFlameMomentumShortMonthWindow(t *testing.T) {
	// February 2023 has 28 days; the window is still 14 trailing days.
	habit := types.Habit{ID: "a1", Name: "ALPHA", Kind: types.KindGoal, FlameCount: 2}
	j := types.NewJournal()
	for day := 15; day <= 28; day++ {
		j.EnsureDay(2023, time.February, day).Habits = map[string]types.HabitValue{
			"a1": types.BoolValue(true),
		}
	}
	assert.Equal(t, 2, FlameMomentum(j, habit, 2023, time.February))
}

func weekEnd() time.Time {
	return time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
}

func markWeek(j *types.Journal, habitID string, done map[int]bool) {
	// Keys are offsets back from the window end: 0 is the end day.
	for offset, v := range done {
		d := weekEnd().AddDate(0, 0, -offset)
		j.EnsureDay(d.Year(), d.Month(), d.Day()).Habits = map[string]types.HabitValue{
			habitID: types.BoolValue(v),
		}
	}
}

func TestWeeklyMomentum(t *testing.T) {
	goalHabit := types.Habit{ID: "a1", Name: "ALPHA", Kind: types.KindGoal}
	avoidHabit := types.Habit{ID: "v1", Name: "VICE", Kind: types.KindAvoid}

	tests := []struct {
		name  string
		habit types.Habit
		done  map[int]bool
		want  float64
	}{
		{
			name:  "unbroken week earns the streak bonus",
			habit: goalHabit,
			done:  map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true},
			want:  12.0, // 7/7 * 10 * 1.2
		},
		{
			name:  "three lapses earn the penalty",
			habit: goalHabit,
			done:  map[int]bool{0: true, 1: true, 2: true, 3: true, 4: false, 5: false, 6: false},
			want:  4.0 / 7.0 * 10 * 0.8,
		},
		{
			name:  "absent days are not gaps",
			habit: goalHabit,
			done:  map[int]bool{0: true, 1: true, 2: true, 3: true},
			want:  4.0 / 7.0 * 10 * 1.2, // 3 days unrecorded, zero gaps
		},
		{
			name:  "one lapse is neutral",
			habit: goalHabit,
			done:  map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: false},
			want:  5.0 / 7.0 * 10 * 1.0,
		},
		{
			name:  "avoid habit untouched all week is a perfect streak",
			habit: avoidHabit,
			done:  map[int]bool{},
			want:  12.0,
		},
		{
			name:  "avoid habit marked counts as a gap",
			habit: avoidHabit,
			done:  map[int]bool{0: true, 1: true, 2: true},
			want:  4.0 / 7.0 * 10 * 0.8,
		},
		{
			name:  "avoid habit explicitly unmarked is a success",
			habit: avoidHabit,
			done:  map[int]bool{0: false, 1: false, 2: false, 3: false, 4: false, 5: false, 6: false},
			want:  12.0,
		},
		{
			name:  "no data scores zero for goal habits",
			habit: goalHabit,
			done:  map[int]bool{},
			want:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := types.NewJournal()
			markWeek(j, tt.habit.ID, tt.done)
			assert.InDelta(t, tt.want, WeeklyMomentum(j, tt.habit, weekEnd()), 1e-9)
		})
	}
}

func TestWeeklyMomentumSpansMonthBoundary(t *testing.T) {
	habit := types.Habit{ID: "a1", Name: "ALPHA", Kind: types.KindGoal}
	j := types.NewJournal()
	// March 1-3 plus February 26-29 (2024 is a leap year).
	for _, d := range []time.Time{
		time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 27, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
	} {
		j.EnsureDay(d.Year(), d.Month(), d.Day()).Habits = map[string]types.HabitValue{
			"a1": types.BoolValue(true),
		}
	}

	end := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 12.0, WeeklyMomentum(j, habit, end), 1e-9)
}

func TestSleepAndMoodAverages(t *testing.T) {
	j := types.NewJournal()
	q4, q2, q0 := 4.0, 2.0, 0.0
	m5 := 5.0
	j.EnsureDay(2024, time.March, 20).SleepQuality = &q4
	j.EnsureDay(2024, time.March, 19).SleepQuality = &q2
	j.EnsureDay(2024, time.March, 18).SleepQuality = &q0
	j.EnsureDay(2024, time.March, 20).Mood = &m5
	// Day 10 is outside the 7-day window ending on day 20.
	j.EnsureDay(2024, time.March, 10).SleepQuality = &q4

	sleep, ok := SleepAverage(j, 2024, time.March, 20)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, sleep, 1e-9, "recorded zero counts in the mean")

	mood, ok := MoodAverage(j, 2024, time.March, 20)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, mood, 1e-9)

	_, ok = MoodAverage(j, 2024, time.March, 10)
	assert.False(t, ok, "empty window reports no data")
}

func TestSleepAverageAllZeroWindowIsData(t *testing.T) {
	j := types.NewJournal()
	zero := 0.0
	for day := 14; day <= 20; day++ {
		j.EnsureDay(2024, time.March, day).SleepQuality = &zero
	}

	avg, ok := SleepAverage(j, 2024, time.March, 20)
	assert.True(t, ok, "a week of recorded zeros is data, not absence")
	assert.Equal(t, 0.0, avg)
}

func TestGoalsProgress(t *testing.T) {
	done, total := GoalsProgress(&types.MonthRecord{GoalsCompletion: []bool{true, false, true}})
	assert.Equal(t, 2, done)
	assert.Equal(t, types.GoalSlots, total)

	done, total = GoalsProgress(&types.MonthRecord{})
	assert.Equal(t, 0, done)
	assert.Equal(t, types.GoalSlots, total)
}
