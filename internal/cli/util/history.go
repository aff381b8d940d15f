package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schoolboyqueue/eslint-watch/internal/cli/shared"
	clierrors "github.com/schoolboyqueue/eslint-watch/internal/errors"
	"github.com/schoolboyqueue/eslint-watch/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past inspections",
	Long: `View a log of inspections with timestamp, trigger, status, summary and duration.
Entries are listed newest first.`,
	Example: `  # Last ten inspections
  eslint-watch history -n 10

  # Only inspections that found problems
  eslint-watch history --status failed`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		return runHistoryWithStateDir(cmd, cfg.StateDir)
	},
}

func init() {
	historyCmd.GroupID = shared.GroupInspection
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to the N most recent entries")
	historyCmd.Flags().Bool("clear", false, "Clear all history")
	historyCmd.Flags().String("status", "", "Filter by status (passed, failed, error)")
}

// runHistoryWithStateDir runs the history command against stateDir.
func runHistoryWithStateDir(cmd *cobra.Command, stateDir string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	statusFilter, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return clierrors.NewArgumentError(fmt.Sprintf("limit must be positive, got %d", limit))
	}
	switch statusFilter {
	case "", history.StatusPassed, history.StatusFailed, history.StatusError:
	default:
		return clierrors.NewArgumentError(
			fmt.Sprintf("unknown status %q", statusFilter),
			"Use one of: passed, failed, error",
		)
	}

	if clearFlag {
		if err := history.ClearHistory(stateDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := history.Filter(histFile.Entries, statusFilter, limit)
	if len(entries) == 0 {
		if statusFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No matching entries for status '%s'.\n", statusFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No history available.")
		}
		return nil
	}

	displayEntries(cmd.OutOrStdout(), entries)
	return nil
}

func displayEntries(out io.Writer, entries []history.HistoryEntry) {
	c := shared.NewColors()

	for _, entry := range entries {
		detail := entry.Summary
		if entry.Status == history.StatusError {
			detail = entry.Error
		}

		fmt.Fprintf(out, "%s  %s  %-13s  %5d  %s  %s\n",
			c.Cyan(entry.Timestamp.Format("2006-01-02 15:04:05")),
			formatStatus(entry.Status, c),
			entry.Trigger,
			entry.Paths,
			c.Dim(fmt.Sprintf("%8s", entry.Duration)),
			detail,
		)
		if len(entry.FailedPaths) > 0 {
			fmt.Fprintf(out, "    %s\n", c.Dim(strings.Join(entry.FailedPaths, " ")))
		}
	}
}

// formatStatus returns a color-coded, fixed-width status.
func formatStatus(status string, c *shared.Colors) string {
	padded := fmt.Sprintf("%-6s", status)
	switch status {
	case history.StatusPassed:
		return c.Green(padded)
	case history.StatusFailed:
		return c.Yellow(padded)
	case history.StatusError:
		return c.Red(padded)
	default:
		return padded
	}
}
