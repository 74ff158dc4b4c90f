// Init command for the coffer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cofferhq/coffer/internal/csvstore"
	"github.com/cofferhq/coffer/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize coffer storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve the config directory (flag > env > default) and make sure
		// it exists with a default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		if err := ensureConfigDir(configDir); err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}

		// Opening the store creates the data directory and writes the empty
		// CSV tables with their header rows.
		dataDir, err := resolveDataDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		store, err := csvstore.Open(types.Config{DataDir: dataDir}, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		defer store.Close()

		fmt.Println("Coffer initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
