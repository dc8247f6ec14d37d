// Day-record commands: check, record, moment, sleep, mood.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var undo, clear bool
	cmd := &cobra.Command{
		Use:   "check <habit>",
		Short: "Mark a habit done for the day",
		Long: "Record a completion for the named habit on the target date.\n" +
			"Use --undo to record an explicit non-completion, or --clear to\n" +
			"remove the day's entry entirely (back to \"no data\").",
		Args: cobra.ExactArgs(1),
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

			habit, err := findHabit(t.Habits(), args[0])
			if err != nil {
				return err
			}

			y, m, d := date.Date()
			switch {
			case clear:
				err = t.ClearHabitValue(y, m, d, habit.ID)
			default:
				err = t.SetHabitValue(y, m, d, habit.ID, !undo)
			}
			if err != nil {
				return err
			}

			state := "done"
			if undo {
				state = "not done"
			}
			if clear {
				state = "cleared"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s on %s\n", habit.Name, state, date.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "record the habit as explicitly not done")
	cmd.Flags().BoolVar(&clear, "clear", false, "remove the day's entry for this habit")
	return cmd
}

func newRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record <habit> <value>",
		Short: "Record a numeric value for a habit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q (expected a number)", args[1])
			}
			date, err := targetDate()
			if err != nil {
				return err
			}
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			habit, err := findHabit(t.Habits(), args[0])
			if err != nil {
				return err
			}

			y, m, d := date.Date()
			if err := t.SetHabitNumber(y, m, d, habit.ID, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v on %s\n", habit.Name, value, date.Format("2006-01-02"))
			return nil
		},
	}
}

func newMomentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moment <text>...",
		Short: "Record the day's memorable moment",
		Args:  cobra.MinimumNArgs(1),
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

			y, m, d := date.Date()
			if err := t.SetMoment(y, m, d, strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moment recorded for %s\n", date.Format("2006-01-02"))
			return nil
		},
	}
}

func newSleepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sleep <quality> [hours]",
		Short: "Record sleep quality (0-5) and optional hours",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quality, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid quality %q (expected a number)", args[0])
			}
			hours := -1.0
			if len(args) == 2 {
				hours, err = strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid hours %q (expected a number)", args[1])
				}
			}
			date, err := targetDate()
			if err != nil {
				return err
			}
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			y, m, d := date.Date()
			if err := t.SetSleep(y, m, d, quality, hours); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sleep recorded for %s\n", date.Format("2006-01-02"))
			return nil
		},
	}
}

func newMoodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mood <rating>",
		Short: "Record the day's mood (0-5)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mood, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid mood %q (expected a number)", args[0])
			}
			date, err := targetDate()
			if err != nil {
				return err
			}
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			y, m, d := date.Date()
			if err := t.SetMood(y, m, d, mood); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mood recorded for %s\n", date.Format("2006-01-02"))
			return nil
		},
	}
}
