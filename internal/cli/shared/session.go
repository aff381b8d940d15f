package shared

import (
	"errors"
	"io/fs"
	"os/exec"

	"github.com/schoolboyqueue/eslint-watch/internal/config"
	clierrors "github.com/schoolboyqueue/eslint-watch/internal/errors"
	"github.com/schoolboyqueue/eslint-watch/internal/history"
	"github.com/schoolboyqueue/eslint-watch/internal/lint"
	"github.com/schoolboyqueue/eslint-watch/internal/notify"
	"github.com/schoolboyqueue/eslint-watch/internal/plugin"
	"github.com/schoolboyqueue/eslint-watch/internal/progress"
	"github.com/schoolboyqueue/eslint-watch/internal/ui"
	"github.com/spf13/cobra"
)

// Session is what the run and watch commands share: the loaded
// configuration and a plugin wired to notifications, history and progress.
type Session struct {
	Config   *config.Configuration
	Log      *ui.Logger
	Notifier *notify.Handler
	History  *history.Writer
	Plugin   *plugin.Plugin
}

// LoadConfig loads the configuration named by the --config flag.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, ConfigError(err)
	}
	return cfg, nil
}

// NewLogger returns a stderr logger honoring --debug.
func NewLogger(cmd *cobra.Command) *ui.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return ui.NewStderr(debug)
}

// NewSession loads configuration and wires the plugin.
func NewSession(cmd *cobra.Command) (*Session, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := NewLogger(cmd)
	return NewSessionWithConfig(cfg, log), nil
}

// NewSessionWithConfig wires the plugin for an already loaded configuration.
func NewSessionWithConfig(cfg *config.Configuration, log *ui.Logger) *Session {
	handler := notify.NewHandler(cfg.Notification, cfg.Notify)
	writer := history.NewWriter(cfg.StateDir, cfg.MaxHistory)

	p := plugin.New(plugin.Options{
		AllOnStart: cfg.AllOnStart,
		KeepFailed: cfg.KeepFailed,
		Lint:       cfg.LintOptions(),
	}, log).
		WithRunnerFactory(func(o lint.Options) plugin.Runner {
			return lint.NewRunner(o).WithNotifier(handler)
		}).
		WithErrorNotifier(handler).
		WithHistory(writer)

	if cfg.ShowProgress {
		if caps := progress.DetectTerminalCapabilities(); caps.IsTTY {
			p.WithProgress(progress.NewProgressDisplay(caps))
		}
	}

	log.Debug("notification=%s command=%s state_dir=%s", cfg.Notification, cfg.Command, cfg.StateDir)

	return &Session{
		Config:   cfg,
		Log:      log,
		Notifier: handler,
		History:  writer,
		Plugin:   p,
	}
}

// ConfigError converts a configuration load failure into a CLIError.
func ConfigError(err error) *clierrors.CLIError {
	var cfgErr *lint.ConfigurationError
	if errors.As(err, &cfgErr) {
		cliErr := clierrors.InvalidExtraArgs(cfgErr.Message)
		cliErr.Err = err
		return cliErr
	}
	return clierrors.ConfigLoadFailed(err)
}

// RunError converts an inspection error into a CLIError with remediation.
// ErrTaskFailed on its own (problems were reported) is returned unchanged.
func RunError(err error) error {
	if err == nil || err == plugin.ErrTaskFailed {
		return err
	}

	var cfgErr *lint.ConfigurationError
	var subErr *lint.SubprocessError
	var repErr *lint.ReportParseError
	switch {
	case errors.As(err, &cfgErr):
		return ConfigError(cfgErr)
	case errors.As(err, &subErr) && (errors.Is(subErr, exec.ErrNotFound) || errors.Is(subErr, fs.ErrNotExist)):
		cliErr := clierrors.LintCommandNotFound(subErr.Command)
		cliErr.Err = err
		return cliErr
	case errors.As(err, &repErr):
		return clierrors.ReportUnreadable(repErr.Path, repErr.Err)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}

// ExitCodeFor maps a command error to the process exit status.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if IsExitError(err) {
		return ExitCode(err)
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependency
		}
	}
	return ExitRuntimeError
}
