// Seed data for fresh stores.
package tracker

import "github.com/quietgrove/daybook/pkg/types"

// seedHabits is the default habit set installed into an empty registry
// on first open. Ids are generated fresh per installation.
var seedHabits = []types.Habit{
	{Name: "DAILY PRAYERS", Abbreviation: "PR", Kind: types.KindCritical, Description: "Complete daily prayer routine", FlameCount: 5},
	{Name: "WALKING 30MIN", Abbreviation: "WK", Kind: types.KindGoal, Description: "Walk for at least 30 minutes", FlameCount: 3},
	{Name: "SOCIAL MEDIA", Abbreviation: "SM", Kind: types.KindAvoid, Description: "Limit mindless scrolling and consumption", FlameCount: 1},
	{Name: "OVERSLEEPING", Abbreviation: "SL", Kind: types.KindAvoid, Description: "Avoid sleeping past intended wake time", FlameCount: 2},
	{Name: "EXERCISE", Abbreviation: "EX", Kind: types.KindGoal, Description: "At least 30 minutes of physical activity", FlameCount: 4},
	{Name: "READING", Abbreviation: "RD", Kind: types.KindGoal, Description: "Read for personal growth or entertainment", FlameCount: 3},
	{Name: "SELFCARE", Abbreviation: "SC", Kind: types.KindGoal, Description: "Personal care and wellness activities", FlameCount: 2},
	{Name: "QURAN TIME", Abbreviation: "QU", Kind: types.KindCritical, Description: "Daily Quran reading and reflection", FlameCount: 5},
	{Name: "DEEPWORK SESSION", Abbreviation: "DW", Kind: types.KindGoal, Description: "Focused work session without distractions", FlameCount: 4},
}

// DefaultHabits returns the seed habit set with freshly generated ids.
func DefaultHabits() []types.Habit {
	out := make([]types.Habit, len(seedHabits))
	copy(out, seedHabits)
	for i := range out {
		out[i].ID = newHabitID()
	}
	return out
}
