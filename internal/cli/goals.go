// Monthly goals commands.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quietgrove/daybook/internal/tracker"
	"github.com/quietgrove/daybook/pkg/types"
)

func newGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage the month's three goals",
	}
	cmd.AddCommand(newGoalsSetCmd())
	cmd.AddCommand(newGoalsDoneCmd())
	cmd.AddCommand(newGoalsShowCmd())
	return cmd
}

func newGoalsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <goal1> <goal2> <goal3>",
		Short: "Set the month's goal slots",
		Long:  "Replace all three goal slots for the target month. Completion flags for changed slots reset.",
		Args:  cobra.ExactArgs(types.GoalSlots),
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
			current := t.Month(y, m)
			completion := make([]bool, types.GoalSlots)
			for i := 0; i < types.GoalSlots; i++ {
				// Keep the flag only when the slot text is unchanged.
				if i < len(current.Goals) && i < len(current.GoalsCompletion) && current.Goals[i] == args[i] {
					completion[i] = current.GoalsCompletion[i]
				}
			}

			if err := t.SetGoals(y, m, args, completion); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goals set for %s\n", date.Format("2006-01"))
			return nil
		},
	}
}

func newGoalsDoneCmd() *cobra.Command {
	var undone bool
	cmd := &cobra.Command{
		Use:   "done <slot>",
		Short: "Mark a goal slot (1-3) complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil || slot < 1 || slot > types.GoalSlots {
				return fmt.Errorf("invalid slot %q (expected 1-%d)", args[0], types.GoalSlots)
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

			y, m, _ := date.Date()
			month := t.Month(y, m)
			goals := append([]string(nil), month.Goals...)
			completion := append([]bool(nil), month.GoalsCompletion...)
			for len(goals) < types.GoalSlots {
				goals = append(goals, "")
			}
			for len(completion) < types.GoalSlots {
				completion = append(completion, false)
			}
			completion[slot-1] = !undone

			if err := t.SetGoals(y, m, goals, completion); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal %d marked %s\n", slot, doneWord(!undone))
			return nil
		},
	}
	cmd.Flags().BoolVar(&undone, "undo", false, "mark the slot incomplete instead")
	return cmd
}

func newGoalsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the month's goals and progress",
		Args:  cobra.NoArgs,
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
				return printJSON(cmd, struct {
					Goals      []string `json:"goals"`
					Completion []bool   `json:"goalsCompletion"`
				}{month.Goals, month.GoalsCompletion})
			}

			for i := 0; i < types.GoalSlots; i++ {
				text, mark := "", " "
				if i < len(month.Goals) {
					text = month.Goals[i]
				}
				if i < len(month.GoalsCompletion) && month.GoalsCompletion[i] {
					mark = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] %s\n", i+1, mark, text)
			}
			done, total := tracker.GoalsProgress(month)
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d goals completed\n", done, total)
			return nil
		},
	}
}

func doneWord(done bool) string {
	if done {
		return "done"
	}
	return "not done"
}
