// Package config provides the eslint-watch configuration commands:
// config (show, path, init) and doctor.
package config

import (
	"github.com/spf13/cobra"
)

// Register adds all configuration commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
