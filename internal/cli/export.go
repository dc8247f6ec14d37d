// Export and import commands: snapshot round-trip through a file.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export all data to a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			data, err := t.Snapshot()
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data from a snapshot file",
		Long: "Replace the habit registry and journal with the snapshot's contents.\n" +
			"The imported journal is reconciled against the imported registry.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			t, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			report, err := t.Import(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported from %s\n", args[0])
			if report.Changed() {
				fmt.Fprintf(cmd.OutOrStdout(), "Reconciled: %d entries remapped, %d dropped\n",
					report.Remapped, report.Dropped)
			}
			return nil
		},
	}
}
