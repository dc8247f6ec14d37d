package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
}

func newInitCmd() *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize daybook storage",
		Long: "Create the configuration and data directories, write a default\n" +
			"config.yaml, and seed the default habit set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, backend)
		},
	}
	cmd.Flags().StringVar(&backend, "backend", defaultBackend, "storage backend (jsonfile or sqlite)")
	return cmd
}

func runInit(cmd *cobra.Command, backend string) error {
	if backend != backendJSONFile && backend != backendSQLite {
		return fmt.Errorf("unknown backend %q (valid: %s, %s)", backend, backendJSONFile, backendSQLite)
	}

	configDir := resolveConfigDir()
	dataDir := flags.dataDir
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, backend, dataDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Opening the tracker seeds the default habits into empty storage.
	t, err := openTracker(cmd)
	if err != nil {
		return err
	}
	if err := t.Close(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Daybook initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with the chosen values if the
// file does not exist. If it already exists, the function returns nil
// (idempotent).
func writeConfigIfMissing(path, backend, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		Backend: backend,
		DataDir: dataDir,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
