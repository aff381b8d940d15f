// Package health tests the setup checks behind eslint-watch doctor.
// Related: internal/health/health.go
// Tags: health, doctor, lint-command, state-dir, notifications

package health

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolboyqueue/eslint-watch/internal/config"
	"github.com/schoolboyqueue/eslint-watch/internal/lint"
	"github.com/schoolboyqueue/eslint-watch/internal/notify"
)

type fakeSender struct {
	visual bool
	sound  bool
}

func (s fakeSender) SendVisual(notify.Notification) error { return nil }
func (s fakeSender) SendSound(string) error               { return nil }
func (s fakeSender) VisualAvailable() bool                { return s.visual }
func (s fakeSender) SoundAvailable() bool                 { return s.sound }

func fakeCommand(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "eslint")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	return dir, path
}

func TestCheckLintCommand(t *testing.T) {
	t.Parallel()

	dir, path := fakeCommand(t)

	found := CheckLintCommand(lint.Options{Command: "eslint", PathPrepend: []string{dir}})
	assert.True(t, found.Passed)
	assert.Equal(t, "Lint command", found.Name)
	assert.Equal(t, path, found.Message)

	missing := CheckLintCommand(lint.Options{Command: "eslint-watch-missing", PathPrepend: []string{dir}})
	assert.False(t, missing.Passed)
	assert.False(t, missing.Warning)
	assert.Contains(t, missing.Message, `"eslint-watch-missing" not found`)
}

func TestCheckStateDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "state")
	result := CheckStateDir(dir)
	assert.True(t, result.Passed)
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file should be removed")

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		return
	}
	locked := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(locked, 0o500))
	result = CheckStateDir(locked)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "not writable")
}

func TestCheckNotifications(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mode        notify.Mode
		output      notify.OutputType
		sender      fakeSender
		wantPassed  bool
		wantWarning bool
	}{
		"off skips the sender":       {mode: notify.ModeOff, output: notify.OutputVisual, wantPassed: true},
		"visual available":           {mode: notify.ModeFailed, output: notify.OutputVisual, sender: fakeSender{visual: true}, wantPassed: true},
		"visual missing":             {mode: notify.ModeFailed, output: notify.OutputVisual, sender: fakeSender{sound: true}, wantWarning: true},
		"sound available":            {mode: notify.ModeAlways, output: notify.OutputSound, sender: fakeSender{sound: true}, wantPassed: true},
		"both needs both":            {mode: notify.ModeAlways, output: notify.OutputBoth, sender: fakeSender{visual: true}, wantWarning: true},
		"both available":             {mode: notify.ModeAlways, output: notify.OutputBoth, sender: fakeSender{visual: true, sound: true}, wantPassed: true},
		"empty type falls to visual": {mode: notify.ModeFailed, sender: fakeSender{visual: true}, wantPassed: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := CheckNotifications(tt.mode, notify.NotificationConfig{Type: tt.output}, tt.sender)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Equal(t, tt.wantWarning, result.Warning)
		})
	}
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	dir, _ := fakeCommand(t)
	cfg := &config.Configuration{
		Command:      "eslint",
		PathPrepend:  []string{dir},
		StateDir:     filepath.Join(t.TempDir(), "state"),
		Notification: notify.ModeFailed,
		Notify:       notify.NotificationConfig{Type: notify.OutputVisual},
	}

	t.Run("warning does not fail the report", func(t *testing.T) {
		report := RunHealthChecks(cfg, fakeSender{})
		require.Len(t, report.Checks, 3)
		assert.True(t, report.Passed)
		assert.Equal(t, "Lint command", report.Checks[0].Name)
		assert.Equal(t, "State directory", report.Checks[1].Name)
		assert.Equal(t, "Notifications", report.Checks[2].Name)
		assert.True(t, report.Checks[2].Warning)
	})

	t.Run("missing command fails the report", func(t *testing.T) {
		broken := *cfg
		broken.Command = "eslint-watch-missing"
		report := RunHealthChecks(&broken, fakeSender{visual: true})
		assert.False(t, report.Passed)
		assert.False(t, report.Checks[0].Passed)
	})
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		report   *HealthReport
		expected []string
	}{
		"all checks pass": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "Lint command", Passed: true, Message: "/usr/bin/eslint"},
					{Name: "State directory", Passed: true, Message: "/tmp/state"},
				},
				Passed: true,
			},
			expected: []string{"✓ Lint command: /usr/bin/eslint", "✓ State directory: /tmp/state"},
		},
		"error and warning": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "Lint command", Message: `"eslint" not found`},
					{Name: "Notifications", Warning: true, Message: "no visual notifier"},
				},
			},
			expected: []string{`✗ Error: Lint command: "eslint" not found`, "! Warning: Notifications: no visual notifier"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			output := FormatReport(tt.report)
			for _, want := range tt.expected {
				assert.Contains(t, output, want)
			}
			assert.Equal(t, len(tt.report.Checks), strings.Count(output, "\n"))
		})
	}
}
