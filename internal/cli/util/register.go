// Package util provides utility CLI commands for eslint-watch:
// history and version.
package util

import (
	"github.com/spf13/cobra"
)

// Register adds all utility commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
