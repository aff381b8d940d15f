package lint

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Executor runs a lint command line to completion and reports its exit code.
// An error means the process could not be run at all.
type Executor interface {
	Execute(ctx context.Context, argv []string, env []string) (exitCode int, err error)
}

// ExecExecutor runs commands with os/exec, without a shell. Output goes to
// Stdout and Stderr, which default to the current process's streams. The
// child gets no stdin; the watch console owns the terminal.
type ExecExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Execute implements Executor.
func (e *ExecExecutor) Execute(ctx context.Context, argv []string, env []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command line")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = env
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return exitErr.ExitCode(), ctx.Err()
		}
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// resolveCommand looks for name in dirs before falling back to PATH lookup
// at execution time. Names containing a path separator are returned as is.
func resolveCommand(name string, dirs []string) string {
	if strings.ContainsRune(name, os.PathSeparator) || strings.Contains(name, "/") {
		return name
	}

	candidates := []string{name}
	if runtime.GOOS == "windows" {
		candidates = append(candidates, name+".cmd", name+".exe")
	}

	for _, dir := range dirs {
		for _, c := range candidates {
			path := filepath.Join(absDir(dir), c)
			if isExecutable(path) {
				return path
			}
		}
	}
	return name
}

// LookupCommand returns the executable the runner would start for opts,
// searching PathPrepend before PATH.
func LookupCommand(opts Options) (string, error) {
	name := opts.Command
	if name == "" {
		name = DefaultCommand
	}
	resolved := resolveCommand(name, opts.PathPrepend)
	if resolved != name {
		return resolved, nil
	}
	return exec.LookPath(name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}

// commandEnv returns base with dirs prepended to PATH.
func commandEnv(base []string, dirs []string) []string {
	env := append([]string(nil), base...)
	if len(dirs) == 0 {
		return env
	}

	prefix := make([]string, 0, len(dirs))
	for _, d := range dirs {
		prefix = append(prefix, absDir(d))
	}
	joined := strings.Join(prefix, string(os.PathListSeparator))

	for i, kv := range env {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.EqualFold(key, "PATH") {
			if value != "" {
				joined += string(os.PathListSeparator) + value
			}
			env[i] = key + "=" + joined
			return env
		}
	}
	return append(env, "PATH="+joined)
}

func absDir(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
