package inspect

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/schoolboyqueue/eslint-watch/internal/cli/shared"
	"github.com/schoolboyqueue/eslint-watch/internal/lint"
	"github.com/schoolboyqueue/eslint-watch/internal/metrics"
	"github.com/schoolboyqueue/eslint-watch/internal/ui"
	"github.com/schoolboyqueue/eslint-watch/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Inspect files as they change",
	Long: `Watch a directory tree and run ESLint on files as they are added or changed.

Press enter to inspect everything, r to forget failed paths, q to quit.
With keep_failed set, files that failed last time are inspected again along
with the changed ones until they pass.`,
	Example: `  # Watch the current directory
  eslint-watch watch

  # Watch src without the interactive console
  eslint-watch watch src --no-console`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWatch,
}

func init() {
	watchCmd.GroupID = shared.GroupInspection
	watchCmd.Flags().Bool("no-console", false, "Disable the interactive console")
}

// lifecycle is the part of *plugin.Plugin the watch loop drives.
type lifecycle interface {
	Start(ctx context.Context) error
	Reload(ctx context.Context) error
	RunAll(ctx context.Context) error
	RunOnAdditions(ctx context.Context, paths []string) error
	RunOnModifications(ctx context.Context, paths []string) error
}

func runWatch(cmd *cobra.Command, args []string) error {
	sess, err := shared.NewSession(cmd)
	if err != nil {
		return err
	}
	cfg := sess.Config
	log := sess.Log

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.MetricsAddr != "" {
		rec := metrics.NewRecorder()
		addr, errCh, err := rec.Serve(ctx, cfg.MetricsAddr)
		if err != nil {
			return shared.RunError(err)
		}
		sess.Plugin.WithMetrics(rec)
		log.Info("Serving metrics on http://%s/metrics", addr)
		go func() {
			if err, ok := <-errCh; ok && err != nil {
				log.Warning("metrics server stopped: %v", err)
			}
		}()
	}

	w, err := watch.New(root, watch.Options{
		Patterns: cfg.WatchPatterns,
		Ignore:   cfg.IgnorePatterns,
		Debounce: cfg.Debounce,
	})
	if err != nil {
		return shared.RunError(err)
	}
	w.OnError(func(err error) { log.Warning("watcher: %v", err) })
	if err := w.Start(ctx); err != nil {
		return shared.RunError(err)
	}
	defer w.Stop()
	log.Debug("watching %s for %v", w.Root(), cfg.WatchPatterns)

	shared.PrintBanner(cmd.ErrOrStderr())

	var commands <-chan ConsoleCommand
	var handled chan<- struct{}
	if noConsole, _ := cmd.Flags().GetBool("no-console"); !noConsole {
		c, err := newConsole(cancel)
		if err != nil {
			log.Warning("interactive console unavailable: %v", err)
		} else {
			defer c.Close()
			go c.run()
			commands = c.Commands()
			handled = c.Handled()
		}
	}

	return shared.RunError(serve(ctx, sess.Plugin, w.Batches(), commands, handled, log))
}

// serve runs the plugin until ctx ends, the console quits, or a
// configuration error makes further runs pointless. Batches and console
// commands are handled one at a time on this goroutine. Each finished
// command is acknowledged on handled when it is non-nil.
func serve(ctx context.Context, p lifecycle, batches <-chan watch.Batch, commands <-chan ConsoleCommand, handled chan<- struct{}, log *ui.Logger) error {
	if err := settle(p.Start(ctx)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopped watching")
			return nil

		case batch, ok := <-batches:
			if !ok {
				return nil
			}
			if len(batch.Additions) > 0 {
				if err := settle(p.RunOnAdditions(ctx, batch.Additions)); err != nil {
					return err
				}
			}
			if len(batch.Modifications) > 0 {
				if err := settle(p.RunOnModifications(ctx, batch.Modifications)); err != nil {
					return err
				}
			}

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			var err error
			switch cmd {
			case CmdRunAll:
				err = p.RunAll(ctx)
			case CmdReload:
				err = p.Reload(ctx)
			case CmdQuit:
				log.Info("Bye")
				return nil
			}
			if err := settle(err); err != nil {
				return err
			}
			if handled != nil {
				select {
				case handled <- struct{}{}:
				default:
				}
			}
		}
	}
}

// settle decides whether an inspection error ends the session. Problems
// found by ESLint and failed runs have already been logged; only
// configuration errors stop watching.
func settle(err error) error {
	if err != nil && lint.IsConfigurationError(err) {
		return err
	}
	return nil
}
