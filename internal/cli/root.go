// Package cli implements the daybook command-line interface: the cobra
// command tree, configuration loading, and shared helpers for resolving
// the storage backend and dates.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietgrove/daybook/internal/jsonfile"
	"github.com/quietgrove/daybook/internal/sqlite"
	"github.com/quietgrove/daybook/internal/tracker"
	"github.com/quietgrove/daybook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	date      string
}

var flags rootFlags

// NewRootCmd creates the top-level "daybook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "daybook",
		Short: "A local habit, mood, and sleep tracker",
		Long: "Daybook tracks daily habit completions, memorable moments, sleep,\n" +
			"mood, and monthly goals. All data stays in local storage.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .daybook)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .daybook-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&flags.date, "date", "", "target date as YYYY-MM-DD (default: today)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newHabitCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newRecordCmd())
	root.AddCommand(newMomentCmd())
	root.AddCommand(newSleepCmd())
	root.AddCommand(newMoodCmd())
	root.AddCommand(newGoalsCmd())
	root.AddCommand(newMonthCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("DAYBOOK_CONFIG_DIR"); v != "" {
		return v
	}
	return ".daybook"
}

// openTracker loads config, opens the configured storage backend, and
// returns the tracker with its load-time reconcile already applied.
// Corrupt-blob load warnings are printed to stderr; the session proceeds
// with empty defaults per the durability policy.
func openTracker(cmd *cobra.Command) (*tracker.Tracker, error) {
	cfg, err := loadConfig(resolveConfigDir())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dataDir := flags.dataDir
	if dataDir == "" {
		dataDir = cfg.GetString(cfgKeyDataDir)
	}
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	var storage types.Storage
	switch backend := cfg.GetString(cfgKeyBackend); backend {
	case backendSQLite:
		storage, err = sqlite.Open(dataDir)
	case backendJSONFile, "":
		storage, err = jsonfile.Open(dataDir)
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: %s, %s)", backend, backendJSONFile, backendSQLite)
	}
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	t, err := tracker.Open(storage)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("open tracker: %w", err)
	}
	if warn := t.LoadError(); warn != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s; starting from empty data\n", warn)
	}
	if report := t.Migration(); report.Changed() {
		fmt.Fprintf(cmd.ErrOrStderr(), "migrated journal: %d entries remapped, %d dropped\n",
			report.Remapped, report.Dropped)
	}
	return t, nil
}

// targetDate resolves the --date flag, defaulting to today.
func targetDate() (time.Time, error) {
	if flags.date == "" {
		return time.Now(), nil
	}
	d, err := time.Parse("2006-01-02", flags.date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", flags.date)
	}
	return d, nil
}

// findHabit resolves a habit argument against the registry by id, exact
// name, or abbreviation (case-sensitive id first, then names).
func findHabit(habits []types.Habit, arg string) (types.Habit, error) {
	for _, h := range habits {
		if h.ID == arg {
			return h, nil
		}
	}
	for _, h := range habits {
		if h.Name == arg || h.Abbreviation == arg {
			return h, nil
		}
	}
	return types.Habit{}, fmt.Errorf("%w: %q", types.ErrHabitNotFound, arg)
}
