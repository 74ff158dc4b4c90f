// Root command for the coffer CLI.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cofferhq/coffer/internal/paths"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagVerbose   bool
)

// cfg is the configuration loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var cfg *viper.Viper

// configDataDir holds the data_dir value from config.yaml.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:     "coffer",
	Short:   "Coffer is a personal finance tracker",
	Version: version,
	Long: `Coffer keeps expenses, tasks, and user accounts in CSV tables and
serves them over an HTTP API, together with financial calculators and
currency conversion backed by a live exchange rate service.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for version so it never touches the filesystem.
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		loaded, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		cfg = loaded
		configDataDir = cfg.GetString(cfgKeyDataDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log at debug level with the development encoder")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > COFFER_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > COFFER_DATA_DIR env > platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
