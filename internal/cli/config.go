// Config loading for the daybook CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"

	backendJSONFile = "jsonfile"
	backendSQLite   = "sqlite"

	defaultBackend = backendJSONFile
	defaultDataDir = ".daybook-db"
)

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config directory or config.yaml is not an error; the
// defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
