package util

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolboyqueue/eslint-watch/internal/cli/shared"
	"github.com/schoolboyqueue/eslint-watch/internal/history"
)

func init() {
	color.NoColor = true
}

func newHistoryCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "history"}
	cmd.Flags().IntP("limit", "n", 0, "")
	cmd.Flags().Bool("clear", false, "")
	cmd.Flags().String("status", "", "")
	require.NoError(t, cmd.Flags().Parse(args))

	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

func seedHistory(t *testing.T, dir string) {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, history.SaveHistory(dir, &history.HistoryFile{Entries: []history.HistoryEntry{
		{ID: "a", Timestamp: base, Trigger: history.TriggerAll, Paths: 1, Status: history.StatusPassed, Summary: "12 files inspected, no error detected, no warning detected", Duration: "1.2s"},
		{ID: "b", Timestamp: base.Add(time.Minute), Trigger: history.TriggerModifications, Paths: 2, Status: history.StatusFailed, Summary: "2 files inspected, 3 errors detected, 1 warning detected", FailedPaths: []string{"src/a.js", "src/b.js"}, Duration: "350ms"},
		{ID: "c", Timestamp: base.Add(2 * time.Minute), Trigger: history.TriggerAdditions, Paths: 1, Status: history.StatusError, Error: "lint command \"eslint\" could not be started", Duration: "4ms"},
	}}))
}

func TestRegister(t *testing.T) {
	root := &cobra.Command{Use: "test"}
	require.NotPanics(t, func() { Register(root) })

	names := make(map[string]string)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = cmd.GroupID
	}
	assert.Equal(t, shared.GroupInspection, names["history"])
	assert.Equal(t, shared.GroupGettingStarted, names["version"])
}

func TestRunHistory(t *testing.T) {
	tests := map[string]struct {
		args      []string
		want      []string
		notWant   []string
		wantLines int
	}{
		"all entries newest first": {
			want:      []string{"error", "failed", "passed", "src/a.js src/b.js", "could not be started"},
			wantLines: 4,
		},
		"status filter": {
			args:      []string{"--status", "failed"},
			want:      []string{"2 files inspected, 3 errors detected, 1 warning detected", "modifications"},
			notWant:   []string{"passed"},
			wantLines: 2,
		},
		"limit": {
			args:      []string{"-n", "1"},
			want:      []string{"additions"},
			notWant:   []string{"modifications"},
			wantLines: 1,
		},
		"passed only": {
			args:      []string{"--status", "passed", "-n", "0"},
			want:      []string{"12 files inspected, no error detected, no warning detected"},
			wantLines: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			seedHistory(t, dir)

			cmd, out := newHistoryCmd(t, tt.args...)
			require.NoError(t, runHistoryWithStateDir(cmd, dir))

			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out.String(), w)
			}
			assert.Equal(t, tt.wantLines, strings.Count(out.String(), "\n"))
		})
	}
}

func TestRunHistory_Order(t *testing.T) {
	dir := t.TempDir()
	seedHistory(t, dir)

	cmd, out := newHistoryCmd(t)
	require.NoError(t, runHistoryWithStateDir(cmd, dir))

	s := out.String()
	assert.Less(t, strings.Index(s, "additions"), strings.Index(s, "modifications"))
	assert.Less(t, strings.Index(s, "modifications"), strings.Index(s, "all "))
}

func TestRunHistory_Empty(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"no history":      {want: "No history available."},
		"no status match": {args: []string{"--status", "error"}, want: "No matching entries for status 'error'."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, out := newHistoryCmd(t, tt.args...)
			require.NoError(t, runHistoryWithStateDir(cmd, t.TempDir()))
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestRunHistory_Clear(t *testing.T) {
	dir := t.TempDir()
	seedHistory(t, dir)

	cmd, out := newHistoryCmd(t, "--clear")
	require.NoError(t, runHistoryWithStateDir(cmd, dir))
	assert.Equal(t, "History cleared.\n", out.String())

	hf, err := history.LoadHistory(dir)
	require.NoError(t, err)
	assert.Empty(t, hf.Entries)
}

func TestRunHistory_InvalidFlags(t *testing.T) {
	tests := map[string][]string{
		"negative limit": {"-n", "-1"},
		"unknown status": {"--status", "running"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, _ := newHistoryCmd(t, args...)
			err := runHistoryWithStateDir(cmd, t.TempDir())
			require.Error(t, err)
			assert.Equal(t, shared.ExitInvalidArguments, shared.ExitCodeFor(err))
		})
	}
}

func TestPrintPlainVersion(t *testing.T) {
	var out bytes.Buffer
	printPlainVersion(&out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "eslint-watch "+Version, lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "go: go"))
}

func TestPrintPrettyVersion(t *testing.T) {
	tests := map[string]int{
		"wide terminal":   120,
		"narrow terminal": 40,
		"tiny terminal":   10,
	}

	for name, width := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			require.NotPanics(t, func() { printPrettyVersion(&out, width) })
			assert.Contains(t, out.String(), shared.BoxTopLeft)
			assert.Contains(t, out.String(), "Version")
			assert.Contains(t, out.String(), shared.Tagline)
		})
	}
}

func TestTruncateCommit(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"long hash":  {in: "0123456789abcdef", want: "01234567"},
		"short hash": {in: "abc", want: "abc"},
		"unknown":    {in: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateCommit(tt.in))
		})
	}
}
