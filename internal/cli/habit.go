// Habit registry commands: add, list, update, remove, reorder.
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quietgrove/daybook/pkg/types"
)

// habitFlags holds the field flags shared by add and update.
type habitFlags struct {
	abbreviation string
	kind         string
	description  string
	color        string
	flameCount   int
	name         string
}

func registerHabitFieldFlags(cmd *cobra.Command, f *habitFlags) {
	cmd.Flags().StringVar(&f.abbreviation, "abbr", "", "short label shown in compact views")
	cmd.Flags().StringVar(&f.kind, "kind", "", "habit kind: critical, goal, avoid, or number")
	cmd.Flags().StringVar(&f.description, "description", "", "longer description")
	cmd.Flags().StringVar(&f.color, "color", "", "display color")
	cmd.Flags().IntVar(&f.flameCount, "flames", 0, "momentum flame count (window size hint)")
}

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage tracked habits",
	}
	cmd.AddCommand(newHabitAddCmd())
	cmd.AddCommand(newHabitListCmd())
	cmd.AddCommand(newHabitUpdateCmd())
	cmd.AddCommand(newHabitRemoveCmd())
	cmd.AddCommand(newHabitReorderCmd())
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var f habitFlags
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			kind := f.kind
			if kind == "" {
				kind = types.KindGoal
			}
			habit, err := t.AddHabit(types.Habit{
				Name:         args[0],
				Abbreviation: f.abbreviation,
				Kind:         kind,
				Description:  f.description,
				Color:        f.color,
				FlameCount:   f.flameCount,
			})
			if err != nil {
				return err
			}
			if flags.jsonMode {
				return printJSON(cmd, habit)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added habit %q (%s)\n", habit.Name, habit.ID)
			return nil
		},
	}
	registerHabitFieldFlags(cmd, &f)
	return cmd
}

func newHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			habits := t.Habits()
			if flags.jsonMode {
				return printJSON(cmd, habits)
			}
			for i, h := range habits {
				flameInfo := ""
				if !h.Numeric() {
					flameInfo = fmt.Sprintf(" flames=%d", h.Flames())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. [%s] %s (%s)%s\n", i, h.Kind, h.Name, h.ID, flameInfo)
			}
			return nil
		},
	}
}

func newHabitUpdateCmd() *cobra.Command {
	var f habitFlags
	cmd := &cobra.Command{
		Use:   "update <habit>",
		Short: "Update habit fields",
		Long:  "Update the named habit. Only flags that are set change fields; the id never changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			habit, err := findHabit(t.Habits(), args[0])
			if err != nil {
				return err
			}

			var patch types.HabitPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &f.name
			}
			if cmd.Flags().Changed("abbr") {
				patch.Abbreviation = &f.abbreviation
			}
			if cmd.Flags().Changed("kind") {
				patch.Kind = &f.kind
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &f.description
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &f.color
			}
			if cmd.Flags().Changed("flames") {
				patch.FlameCount = &f.flameCount
			}

			updated, err := t.UpdateHabit(habit.ID, patch)
			if err != nil {
				return err
			}
			if flags.jsonMode {
				return printJSON(cmd, updated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated habit %q\n", updated.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.name, "name", "", "display name")
	registerHabitFieldFlags(cmd, &f)
	return cmd
}

func newHabitRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <habit>",
		Short: "Remove a habit",
		Long: "Remove the named habit from the registry. Historical day records\n" +
			"referencing it are kept and pruned on a later load.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			habit, err := findHabit(t.Habits(), args[0])
			if err != nil {
				return err
			}
			if err := t.RemoveHabit(habit.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed habit %q\n", habit.Name)
			return nil
		},
	}
}

func newHabitReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <from> <to>",
		Short: "Move a habit to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid from index %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid to index %q", args[1])
			}

			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			if err := t.ReorderHabits(from, to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved habit from %d to %d\n", from, to)
			return nil
		},
	}
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
