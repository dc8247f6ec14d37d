// Stats command: completion rates, averages, and momentum scores.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietgrove/daybook/internal/tracker"
	"github.com/quietgrove/daybook/pkg/types"
)

// habitStats is the per-habit stats payload for --json output.
type habitStats struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Kind           string  `json:"type"`
	CompletionRate int     `json:"completionRate"`
	Average        float64 `json:"average,omitempty"`
	Flames         int     `json:"flames"`
	FlameCount     int     `json:"flameCount"`
	WeeklyMomentum float64 `json:"weeklyMomentum"`
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [habit]",
		Short: "Show habit statistics for the target month",
		Long: "Show completion rate, numeric averages, flame momentum, and the\n" +
			"7-day momentum score, for one habit or for all of them.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := targetDate()
			if err != nil {
				return err
			}
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			habits := t.Habits()
			if len(args) == 1 {
				h, err := findHabit(habits, args[0])
				if err != nil {
					return err
				}
				habits = []types.Habit{h}
			}

			y, m, _ := date.Date()
			journal := t.Journal()
			daysInMonth := types.DaysIn(y, m)

			stats := make([]habitStats, 0, len(habits))
			for _, h := range habits {
				s := habitStats{
					ID:             h.ID,
					Name:           h.Name,
					Kind:           h.Kind,
					CompletionRate: tracker.CompletionRate(journal, h.ID, y, m, 1, daysInMonth),
					Flames:         tracker.FlameMomentum(journal, h, y, m),
					FlameCount:     h.Flames(),
					WeeklyMomentum: tracker.WeeklyMomentum(journal, h, date),
				}
				if h.Numeric() {
					s.Average = tracker.NumericAverage(journal, h.ID, y, m, 1, daysInMonth)
				}
				stats = append(stats, s)
			}

			if flags.jsonMode {
				return printJSON(cmd, stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n\n", m, y)
			for _, s := range stats {
				fmt.Fprintf(out, "%s [%s]\n", s.Name, s.Kind)
				fmt.Fprintf(out, "  completion: %d%%\n", s.CompletionRate)
				if s.Kind == types.KindNumber {
					fmt.Fprintf(out, "  average:    %.2f\n", s.Average)
				}
				fmt.Fprintf(out, "  momentum:   %s %d/%d  weekly %.1f\n",
					strings.Repeat("*", s.Flames), s.Flames, s.FlameCount, s.WeeklyMomentum)
			}

			_, _, d := date.Date()
			if sleep, ok := tracker.SleepAverage(journal, y, m, d); ok {
				fmt.Fprintf(out, "\n7-day sleep quality: %.1f\n", sleep)
			}
			if mood, ok := tracker.MoodAverage(journal, y, m, d); ok {
				fmt.Fprintf(out, "7-day mood: %.1f\n", mood)
			}
			return nil
		},
	}
}
