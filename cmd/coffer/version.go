// Version command for the coffer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the release version reported by the version command and the
// --version flag.
const version = "v0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the coffer version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("coffer", version)
	},
}
