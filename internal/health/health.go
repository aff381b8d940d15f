// Package health checks that eslint-watch can run here: the lint command
// resolves, the state directory is writable and notifications can be shown.
package health

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/schoolboyqueue/eslint-watch/internal/config"
	"github.com/schoolboyqueue/eslint-watch/internal/lint"
	"github.com/schoolboyqueue/eslint-watch/internal/notify"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Warning marks a failed check that does not fail the report.
	Warning bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed && !c.Warning {
		r.Passed = false
	}
}

// RunHealthChecks runs all health checks for cfg and returns a report.
func RunHealthChecks(cfg *config.Configuration, sender notify.Sender) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 3),
		Passed: true,
	}
	report.add(CheckLintCommand(cfg.LintOptions()))
	report.add(CheckStateDir(cfg.StateDir))
	report.add(CheckNotifications(cfg.Notification, cfg.Notify, sender))
	return report
}

// CheckLintCommand checks that the configured lint command can be found.
func CheckLintCommand(opts lint.Options) CheckResult {
	path, err := lint.LookupCommand(opts)
	if err != nil {
		return CheckResult{
			Name:    "Lint command",
			Passed:  false,
			Message: fmt.Sprintf("%q not found in %s or PATH", opts.Command, strings.Join(opts.PathPrepend, ", ")),
		}
	}
	return CheckResult{
		Name:    "Lint command",
		Passed:  true,
		Message: path,
	}
}

// CheckStateDir checks that history can be written.
func CheckStateDir(dir string) CheckResult {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CheckResult{Name: "State directory", Message: fmt.Sprintf("cannot create %s: %v", dir, err)}
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return CheckResult{Name: "State directory", Message: fmt.Sprintf("%s is not writable: %v", dir, err)}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return CheckResult{Name: "State directory", Passed: true, Message: dir}
}

// CheckNotifications reports whether the configured output can be delivered.
// A missing notifier is only a warning.
func CheckNotifications(mode notify.Mode, cfg notify.NotificationConfig, sender notify.Sender) CheckResult {
	name := "Notifications"
	if mode == notify.ModeOff {
		return CheckResult{Name: name, Passed: true, Message: "disabled"}
	}

	var ok bool
	switch cfg.Type {
	case notify.OutputSound:
		ok = sender.SoundAvailable()
	case notify.OutputBoth:
		ok = sender.VisualAvailable() && sender.SoundAvailable()
	default:
		ok = sender.VisualAvailable()
	}
	if !ok {
		return CheckResult{
			Name:    name,
			Warning: true,
			Message: fmt.Sprintf("no %s notifier available on %s", cfg.Type, notify.Platform()),
		}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s, %s", mode, cfg.Type)}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	var b strings.Builder
	for _, check := range report.Checks {
		switch {
		case check.Passed:
			fmt.Fprintf(&b, "%s %s: %s\n", green("✓"), check.Name, check.Message)
		case check.Warning:
			fmt.Fprintf(&b, "%s Warning: %s: %s\n", yellow("!"), check.Name, check.Message)
		default:
			fmt.Fprintf(&b, "%s Error: %s: %s\n", red("✗"), check.Name, check.Message)
		}
	}
	return b.String()
}
