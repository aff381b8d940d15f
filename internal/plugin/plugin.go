// Package plugin ties the lint runner to the watch session: it decides what
// to inspect on start, on demand, and when files change, and remembers which
// files failed last time.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/schoolboyqueue/eslint-watch/internal/history"
	"github.com/schoolboyqueue/eslint-watch/internal/lint"
	"github.com/schoolboyqueue/eslint-watch/internal/ui"
)

// ErrTaskFailed is returned when an inspection did not pass, either because
// the lint tool reported problems or because the run itself errored. Run
// errors are wrapped alongside it.
var ErrTaskFailed = errors.New("task has failed")

// Runner runs one inspection. *lint.Runner implements it.
type Runner interface {
	Run(ctx context.Context, paths []string) (*lint.Result, error)
}

// RunnerFactory builds a fresh Runner for each inspection.
type RunnerFactory func(opts lint.Options) Runner

// ErrorNotifier is told about runs that could not complete.
type ErrorNotifier interface {
	OnError(err error)
}

// HistoryRecorder persists one entry per inspection.
type HistoryRecorder interface {
	RecordInspection(trigger string, paths int, passed bool, summary string, failed []string, runErr error, duration time.Duration) (history.HistoryEntry, error)
}

// MetricsRecorder receives inspection outcomes.
type MetricsRecorder interface {
	ObserveReport(trigger string, passed bool, files, errs, warnings, failed int, d time.Duration)
	ObserveError(trigger, kind string, d time.Duration)
}

// Progress is shown around each inspection.
type Progress interface {
	Start(paths []string)
	Succeed(summary string)
	Fail(msg string)
}

// Options are the session settings.
type Options struct {
	AllOnStart bool
	KeepFailed bool
	Lint       lint.Options
}

// Plugin holds the session state. Inspections are expected to be
// serialized by the caller.
type Plugin struct {
	opts      Options
	log       *ui.Logger
	newRunner RunnerFactory
	notifier  ErrorNotifier
	history   HistoryRecorder
	metrics   MetricsRecorder
	progress  Progress
	workDir   string

	mu          sync.Mutex
	failedPaths []string
}

// New creates a Plugin that builds plain lint.Runners. Use the With methods
// to attach notification, history, metrics and progress.
func New(opts Options, log *ui.Logger) *Plugin {
	if log == nil {
		log = ui.Discard()
	}
	wd, _ := os.Getwd()
	return &Plugin{
		opts:        opts,
		log:         log,
		newRunner:   func(o lint.Options) Runner { return lint.NewRunner(o) },
		workDir:     wd,
		failedPaths: []string{},
	}
}

// WithRunnerFactory replaces how runners are built.
func (p *Plugin) WithRunnerFactory(f RunnerFactory) *Plugin {
	p.newRunner = f
	return p
}

// WithErrorNotifier sets who hears about errored runs.
func (p *Plugin) WithErrorNotifier(n ErrorNotifier) *Plugin {
	p.notifier = n
	return p
}

// WithHistory records every inspection.
func (p *Plugin) WithHistory(h HistoryRecorder) *Plugin {
	p.history = h
	return p
}

// WithMetrics records every inspection.
func (p *Plugin) WithMetrics(m MetricsRecorder) *Plugin {
	p.metrics = m
	return p
}

// WithProgress shows progress around every inspection.
func (p *Plugin) WithProgress(pr Progress) *Plugin {
	p.progress = pr
	return p
}

// WithWorkDir sets the directory paths are displayed relative to.
func (p *Plugin) WithWorkDir(dir string) *Plugin {
	p.workDir = dir
	return p
}

// Start announces the session and inspects everything when AllOnStart is set.
func (p *Plugin) Start(ctx context.Context) error {
	p.log.Info("eslint-watch is running")
	if p.opts.AllOnStart {
		return p.RunAll(ctx)
	}
	return nil
}

// Reload forgets the failed paths of earlier runs.
func (p *Plugin) Reload(_ context.Context) error {
	p.mu.Lock()
	p.failedPaths = []string{}
	p.mu.Unlock()
	p.log.Info("Forgot failed paths")
	return nil
}

// RunAll inspects the default paths.
func (p *Plugin) RunAll(ctx context.Context) error {
	p.log.Info("Inspecting all JavaScript files")
	return p.inspect(ctx, history.TriggerAll, nil)
}

// RunOnAdditions inspects newly created files.
func (p *Plugin) RunOnAdditions(ctx context.Context, paths []string) error {
	return p.runPartially(ctx, history.TriggerAdditions, paths)
}

// RunOnModifications inspects changed files.
func (p *Plugin) RunOnModifications(ctx context.Context, paths []string) error {
	return p.runPartially(ctx, history.TriggerModifications, paths)
}

// FailedPaths returns the paths that had messages in the last readable report.
func (p *Plugin) FailedPaths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.failedPaths...)
}

func (p *Plugin) runPartially(ctx context.Context, trigger string, paths []string) error {
	candidates := append([]string{}, paths...)
	if p.opts.KeepFailed {
		candidates = append(candidates, p.FailedPaths()...)
	}
	cleaned := CleanPaths(candidates)
	if len(cleaned) == 0 {
		p.log.Debug("nothing to inspect for %d %s", len(paths), trigger)
		return nil
	}

	displayed := make([]string, len(cleaned))
	for i, path := range cleaned {
		displayed[i] = SmartPath(path, p.workDir)
	}
	p.log.Info("Inspecting JS code style: %s", strings.Join(displayed, " "))

	return p.inspect(ctx, trigger, cleaned)
}

func (p *Plugin) inspect(ctx context.Context, trigger string, paths []string) error {
	if p.progress != nil {
		p.progress.Start(paths)
	}

	started := time.Now()
	result, err := p.newRunner(p.opts.Lint).Run(ctx, paths)
	elapsed := time.Since(started)

	if err != nil {
		p.log.Error("The following error occurred while running eslint-watch: %s %s (%T)", lint.Operation(err), err, err)
		if p.progress != nil {
			p.progress.Fail(err.Error())
		}
		if p.notifier != nil {
			p.notifier.OnError(err)
		}
		if p.metrics != nil {
			p.metrics.ObserveError(trigger, errorKind(err), elapsed)
		}
		p.recordHistory(trigger, paths, false, "", nil, err, elapsed)
		return fmt.Errorf("%w: %w", ErrTaskFailed, err)
	}

	p.mu.Lock()
	p.failedPaths = append([]string{}, result.FailedPaths...)
	p.mu.Unlock()

	if p.progress != nil {
		if result.Passed {
			p.progress.Succeed(result.Summary)
		} else {
			p.progress.Fail(result.Summary)
		}
	}
	if p.metrics != nil {
		totals := result.Report.Totals()
		p.metrics.ObserveReport(trigger, result.Passed, totals.Files, totals.Errors, totals.Warnings, len(result.FailedPaths), elapsed)
	}
	p.recordHistory(trigger, paths, result.Passed, result.Summary, result.FailedPaths, nil, elapsed)
	p.log.Debug("%s in %s", strings.Join(result.Argv, " "), elapsed.Round(time.Millisecond))

	if !result.Passed {
		return ErrTaskFailed
	}
	return nil
}

func (p *Plugin) recordHistory(trigger string, paths []string, passed bool, summary string, failed []string, runErr error, d time.Duration) {
	if p.history == nil {
		return
	}
	if _, err := p.history.RecordInspection(trigger, len(paths), passed, summary, failed, runErr, d); err != nil {
		p.log.Warning("failed to record history: %v", err)
	}
}

// errorKind labels run errors for metrics.
func errorKind(err error) string {
	var subErr *lint.SubprocessError
	var repErr *lint.ReportParseError
	switch {
	case lint.IsConfigurationError(err):
		return "configuration"
	case errors.As(err, &subErr):
		return "subprocess"
	case errors.As(err, &repErr):
		return "report"
	default:
		return "other"
	}
}
