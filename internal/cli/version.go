package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the daybook release version, overridable at build time with
// -ldflags "-X github.com/quietgrove/daybook/internal/cli.Version=...".
var Version = "0.2.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "daybook v%s\n", Version)
		},
	}
}
