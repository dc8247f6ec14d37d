// Month summary command.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietgrove/daybook/internal/tracker"
	"github.com/quietgrove/daybook/pkg/types"
)

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show the target month's records",
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

			y, m, _ := date.Date()
			month := t.Month(y, m)
			if flags.jsonMode {
				return printJSON(cmd, month)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n\n", m, y)

			habits := t.Habits()
			days := make([]int, 0, len(month.Days))
			for day := range month.Days {
				days = append(days, day)
			}
			sort.Ints(days)

			for _, day := range days {
				rec := month.Days[day]
				if rec.Empty() {
					continue
				}
				fmt.Fprintf(out, "%02d: %s\n", day, formatDay(rec, habits))
			}

			if len(days) == 0 {
				fmt.Fprintln(out, "No records this month.")
			}

			done, total := tracker.GoalsProgress(month)
			fmt.Fprintf(out, "\nGoals: %d/%d completed\n", done, total)
			return nil
		},
	}
}

// formatDay renders a one-line summary of a day record, using habit
// abbreviations where available.
func formatDay(rec *types.DayRecord, habits []types.Habit) string {
	var parts []string

	for _, h := range habits {
		v, ok := rec.Habits[h.ID]
		if !ok {
			continue
		}
		label := h.Abbreviation
		if label == "" {
			label = h.Name
		}
		switch {
		case v.Numeric:
			parts = append(parts, fmt.Sprintf("%s=%v", label, v.Number))
		case v.Done:
			parts = append(parts, label)
		default:
			parts = append(parts, "!"+label)
		}
	}

	if rec.SleepQuality != nil {
		s := fmt.Sprintf("sleep=%v", *rec.SleepQuality)
		if rec.SleepHours != nil {
			s += fmt.Sprintf(" (%vh)", *rec.SleepHours)
		}
		parts = append(parts, s)
	}
	if rec.Mood != nil {
		parts = append(parts, fmt.Sprintf("mood=%v", *rec.Mood))
	}
	if rec.Moment != nil && *rec.Moment != "" {
		parts = append(parts, fmt.Sprintf("%q", *rec.Moment))
	}

	return strings.Join(parts, "  ")
}
