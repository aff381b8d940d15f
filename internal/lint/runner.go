package lint

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Notifier receives the outcome of every inspection whose report was read.
type Notifier interface {
	OnInspectionComplete(passed bool, summary string)
}

// Result is everything one inspection produced.
type Result struct {
	// Passed is true when the lint command exited with status 0.
	Passed bool

	// Argv is the command line that was executed.
	Argv []string

	// Report is the parsed JSON report.
	Report Report

	// Summary is Report.Summary().
	Summary string

	// FailedPaths is Report.FailedPaths().
	FailedPaths []string

	// Duration is the wall time of the subprocess and report read.
	Duration time.Duration
}

// Runner runs ESLint and interprets its report.
type Runner struct {
	opts     Options
	executor Executor
	notifier Notifier
	tempDir  string
}

// NewRunner creates a Runner that executes commands with ExecExecutor.
func NewRunner(opts Options) *Runner {
	return &Runner{
		opts:     opts,
		executor: &ExecExecutor{},
	}
}

// WithExecutor replaces the command executor.
func (r *Runner) WithExecutor(e Executor) *Runner {
	r.executor = e
	return r
}

// WithNotifier sets the receiver of inspection outcomes.
func (r *Runner) WithNotifier(n Notifier) *Runner {
	r.notifier = n
	return r
}

// WithTempDir sets the directory report files are created in. The default
// is os.TempDir().
func (r *Runner) WithTempDir(dir string) *Runner {
	r.tempDir = dir
	return r
}

// Options returns the runner's options.
func (r *Runner) Options() Options {
	return r.opts
}

// Run inspects paths (or the default paths when empty) and returns the
// outcome. The exit status decides Passed; the report is read whatever the
// status, and is deleted once read.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	// Reject bad options before creating anything on disk.
	if _, err := ParseExtraArgs(r.opts.ExtraArgs); err != nil {
		return nil, err
	}

	reportPath, err := r.createReportFile()
	if err != nil {
		return nil, fmt.Errorf("creating report file: %w", err)
	}
	defer os.Remove(reportPath)

	argv, err := BuildCommand(paths, r.opts, reportPath)
	if err != nil {
		return nil, err
	}
	argv[0] = resolveCommand(argv[0], r.opts.PathPrepend)
	env := commandEnv(os.Environ(), r.opts.PathPrepend)

	start := time.Now()
	code, err := r.executor.Execute(ctx, argv, env)
	if err != nil {
		return nil, &SubprocessError{Op: "lint.Runner.Run", Command: argv[0], ExitCode: code, Err: err}
	}

	report, err := ReadReport(reportPath)
	if err != nil {
		if code != 0 && code != 1 {
			// ESLint uses 2 for configuration and internal errors; the
			// missing report is a symptom, not the cause.
			return nil, &SubprocessError{Op: "lint.Runner.Run", Command: argv[0], ExitCode: code}
		}
		return nil, err
	}

	passed := code == 0
	result := &Result{
		Passed:      passed,
		Argv:        argv,
		Report:      report,
		Summary:     report.Summary(),
		FailedPaths: report.FailedPaths(),
		Duration:    time.Since(start),
	}

	if r.notifier != nil {
		r.notifier.OnInspectionComplete(passed, result.Summary)
	}
	return result, nil
}

func (r *Runner) createReportFile() (string, error) {
	f, err := os.CreateTemp(r.tempDir, "eslint-watch-report-*.json")
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
