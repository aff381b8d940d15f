// Package cli provides the Cobra command tree for eslint-watch: the run and
// watch inspection commands, configuration commands (config, doctor) and
// utilities (history, version).
package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/schoolboyqueue/eslint-watch/internal/cli/config"
	"github.com/schoolboyqueue/eslint-watch/internal/cli/inspect"
	"github.com/schoolboyqueue/eslint-watch/internal/cli/shared"
	"github.com/schoolboyqueue/eslint-watch/internal/cli/util"
	cfgpkg "github.com/schoolboyqueue/eslint-watch/internal/config"
	clierrors "github.com/schoolboyqueue/eslint-watch/internal/errors"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eslint-watch",
		Short: "Run ESLint on the files you change",
		Long: `eslint-watch runs ESLint on JavaScript files as they are added or modified,
prints a one-line summary and shows a desktop notification with the result.

Files that failed are remembered and, with keep_failed, inspected again on
the next change until they pass.`,
		Example: `  # Inspect every configured path once
  eslint-watch run

  # Inspect specific files
  eslint-watch run src/app.js src/lib

  # Watch the current directory
  eslint-watch watch

  # Check the setup
  eslint-watch doctor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
		},
	}

	// Define command groups in display order
	cmd.AddGroup(&cobra.Group{ID: shared.GroupGettingStarted, Title: "Getting Started:"})
	cmd.AddGroup(&cobra.Group{ID: shared.GroupInspection, Title: "Inspection:"})
	cmd.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
	})
	cmd.SetHelpCommandGroupID(shared.GroupConfiguration)
	cmd.SetCompletionCommandGroupID(shared.GroupConfiguration)

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", cfgpkg.ProjectConfigPath, "Path to the project config file")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Register commands from subpackages
	inspect.Register(cmd)
	config.Register(cmd)
	util.Register(cmd)

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(context.Background(), rootCmd, os.Args[1:])
}

func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil && !shared.IsExitError(err) {
		clierrors.FprintError(cmd.ErrOrStderr(), err)
	}
	return shared.ExitCodeFor(err)
}
