// Package lint builds ESLint command lines, runs them, and interprets the
// JSON report they produce.
//
// A Runner performs one inspection per Run call. Everything derived from a
// run (argument vector, report path, parsed report) is returned in a Result;
// nothing is cached between calls.
package lint

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// DefaultCommand is the lint executable used when none is configured.
const DefaultCommand = "eslint"

// DefaultPaths are inspected when a run is given no explicit paths.
var DefaultPaths = []string{"**/*.js", "**/*.es6"}

// Options carries the settings a Runner needs from the user configuration.
type Options struct {
	// Command is the lint executable name or path.
	Command string

	// ExtraArgs is the raw `cli` option: a []string, a []any of strings,
	// a shell-quoted string, or nil.
	ExtraArgs any

	// DefaultPaths replace an empty path list.
	DefaultPaths []string

	// PathPrepend lists directories searched for Command and prepended to
	// the child's PATH.
	PathPrepend []string
}

// DefaultOptions returns Options with the stock command and glob patterns.
func DefaultOptions() Options {
	return Options{
		Command:      DefaultCommand,
		DefaultPaths: append([]string(nil), DefaultPaths...),
	}
}

// ParseExtraArgs converts the raw `cli` option into discrete arguments.
// Strings are split using shell quoting rules.
func ParseExtraArgs(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		args := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &ConfigurationError{
					Op:      "lint.ParseExtraArgs",
					Option:  "cli",
					Message: fmt.Sprintf("element %d must be a string, got %T", i, item),
				}
			}
			args = append(args, s)
		}
		return args, nil
	case string:
		return splitWords(v)
	default:
		return nil, &ConfigurationError{
			Op:      "lint.ParseExtraArgs",
			Option:  "cli",
			Message: fmt.Sprintf("must be either an array or string, got %T", raw),
		}
	}
}

// BuildCommand returns the argument vector for one lint run. argv[0] is the
// command. The JSON report is directed to reportPath; paths come last, or
// opts.DefaultPaths when paths is empty.
func BuildCommand(paths []string, opts Options, reportPath string) ([]string, error) {
	extra, err := ParseExtraArgs(opts.ExtraArgs)
	if err != nil {
		return nil, err
	}

	command := opts.Command
	if command == "" {
		command = DefaultCommand
	}

	targets := paths
	if len(targets) == 0 {
		targets = opts.DefaultPaths
	}

	argv := make([]string, 0, 5+len(extra)+len(targets))
	argv = append(argv, command, "-f", "json", "-o", reportPath)
	argv = append(argv, extra...)
	argv = append(argv, targets...)
	return argv, nil
}

// shellOperators are characters go-shellwords stops at or evaluates. The
// `cli` string is never run by a shell, so outside quotes they are plain
// word characters.
const shellOperators = ";&|<>()`"

// splitWords splits s into words using shell quoting rules.
func splitWords(s string) ([]string, error) {
	p := shellwords.NewParser()
	args, err := p.Parse(escapeOperators(s))
	if err != nil {
		return nil, &ConfigurationError{
			Op:      "lint.ParseExtraArgs",
			Option:  "cli",
			Message: fmt.Sprintf("could not be split: %v", err),
		}
	}
	if p.Position != -1 {
		return nil, &ConfigurationError{
			Op:      "lint.ParseExtraArgs",
			Option:  "cli",
			Message: fmt.Sprintf("stopped at offset %d", p.Position),
		}
	}
	if args == nil {
		args = []string{}
	}
	return args, nil
}

// escapeOperators backslash-escapes shellOperators that appear outside
// quotes.
func escapeOperators(s string) string {
	var b strings.Builder
	var escaped, single, double bool
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !single:
			escaped = true
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case !single && !double && strings.ContainsRune(shellOperators, r):
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
