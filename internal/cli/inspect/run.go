package inspect

import (
	"context"

	"github.com/schoolboyqueue/eslint-watch/internal/cli/shared"
	clierrors "github.com/schoolboyqueue/eslint-watch/internal/errors"
	"github.com/schoolboyqueue/eslint-watch/internal/plugin"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Inspect files once",
	Long: `Run ESLint once and print a summary.

With no paths every file matching default_paths is inspected. Exit status is
0 when ESLint passes, 1 when it reports problems, and 3 for configuration
errors.`,
	Example: `  # Inspect everything
  eslint-watch run

  # Inspect two files
  eslint-watch run src/app.js src/util.js`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := shared.NewSession(cmd)
		if err != nil {
			return err
		}
		return runOnce(cmd, sess.Plugin, args)
	},
}

func init() {
	runCmd.GroupID = shared.GroupInspection
}

func runOnce(cmd *cobra.Command, p *plugin.Plugin, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var err error
	if len(args) == 0 {
		err = p.RunAll(ctx)
	} else {
		if len(plugin.CleanPaths(args)) == 0 {
			return clierrors.NewArgumentErrorWithUsage(
				"none of the given paths exist",
				cmd.UseLine(),
				"Check the paths are relative to the current directory",
			)
		}
		err = p.RunOnModifications(ctx, args)
	}

	switch {
	case err == nil:
		return nil
	case err == plugin.ErrTaskFailed:
		return shared.NewExitError(shared.ExitLintFailed)
	default:
		return shared.RunError(err)
	}
}
