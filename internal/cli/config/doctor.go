package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolboyqueue/eslint-watch/internal/cli/shared"
	cfgpkg "github.com/schoolboyqueue/eslint-watch/internal/config"
	"github.com/schoolboyqueue/eslint-watch/internal/health"
	"github.com/schoolboyqueue/eslint-watch/internal/notify"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"doc"},
		Short:   "Check that eslint-watch can run in this project (doc)",
		Long: `Run health checks against the effective configuration.

This command checks:
  - The lint command resolves through path_prepend or PATH
  - The state directory is writable (history is kept there)
  - A desktop notifier is available for the configured output type

A missing notifier is reported as a warning. Any other failed check
exits with status 4.`,
		Example: `  # Check the current project
  eslint-watch doctor

  # Run before starting a watch
  eslint-watch doctor && eslint-watch watch`,
		GroupID:       shared.GroupConfiguration,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runDoctor(cmd, cfg, notify.NewSender())
		},
	}
}

func runDoctor(cmd *cobra.Command, cfg *cfgpkg.Configuration, sender notify.Sender) error {
	report := health.RunHealthChecks(cfg, sender)
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
	if !report.Passed {
		return shared.NewExitError(shared.ExitMissingDependency)
	}
	return nil
}
