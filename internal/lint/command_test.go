// Package lint_test tests ESLint command line assembly and `cli` option parsing.
// Related: internal/lint/command.go
// Tags: lint, command, args, shell-quoting, configuration-error
package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtraArgs(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw      any
		expected []string
	}{
		"nil yields no args": {
			raw:      nil,
			expected: []string{},
		},
		"string is split on whitespace": {
			raw:      "--fix --quiet",
			expected: []string{"--fix", "--quiet"},
		},
		"string honors quotes": {
			raw:      `--rule 'no-console: off' --ext ".js,.es6"`,
			expected: []string{"--rule", "no-console: off", "--ext", ".js,.es6"},
		},
		"pipe inside a word is kept": {
			raw:      "--ignore-pattern foo|bar --fix",
			expected: []string{"--ignore-pattern", "foo|bar", "--fix"},
		},
		"semicolon does not end the args": {
			raw:      "--rule a;b --quiet",
			expected: []string{"--rule", "a;b", "--quiet"},
		},
		"trailing ampersand is a word": {
			raw:      "--fix &",
			expected: []string{"--fix", "&"},
		},
		"redirects and parens are literal": {
			raw:      "--ignore-pattern (a)>b --format=json",
			expected: []string{"--ignore-pattern", "(a)>b", "--format=json"},
		},
		"quoted and escaped operators are literal": {
			raw:      `--rule 'a|b' "c;d" e\&f`,
			expected: []string{"--rule", "a|b", "c;d", "e&f"},
		},
		"empty string yields no args": {
			raw:      "",
			expected: []string{},
		},
		"string slice is used as is": {
			raw:      []string{"--fix", "--max-warnings", "0"},
			expected: []string{"--fix", "--max-warnings", "0"},
		},
		"decoded JSON list of strings": {
			raw:      []any{"--cache", "--cache-location", ".cache/eslint"},
			expected: []string{"--cache", "--cache-location", ".cache/eslint"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			args, err := ParseExtraArgs(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestParseExtraArgs_InvalidTypes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw any
	}{
		"integer":              {raw: 42},
		"float from JSON":      {raw: 42.0},
		"bool":                 {raw: true},
		"map":                  {raw: map[string]any{"fix": true}},
		"list with non-string": {raw: []any{"--fix", 3}},
		"unterminated quote":   {raw: `--rule 'no-console`},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseExtraArgs(tt.raw)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "cli", cfgErr.Option)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestBuildCommand_PathsComeLastInOrder(t *testing.T) {
	t.Parallel()

	paths := []string{"src/b.js", "src/a.js", "lib"}
	opts := DefaultOptions()
	opts.ExtraArgs = "--fix"

	argv, err := BuildCommand(paths, opts, "/tmp/report.json")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(argv), len(paths))
	assert.Equal(t, paths, argv[len(argv)-len(paths):])
	assert.Equal(t, []string{"eslint", "-f", "json", "-o", "/tmp/report.json", "--fix", "src/b.js", "src/a.js", "lib"}, argv)
}

func TestBuildCommand_EmptyPathsUseDefaults(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		paths []string
	}{
		"nil paths":   {paths: nil},
		"empty paths": {paths: []string{}},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			argv, err := BuildCommand(tt.paths, DefaultOptions(), "/tmp/r.json")
			require.NoError(t, err)
			assert.Equal(t, []string{"**/*.js", "**/*.es6"}, argv[len(argv)-2:])
		})
	}
}

func TestBuildCommand_CustomCommandAndDefaults(t *testing.T) {
	t.Parallel()

	opts := Options{
		Command:      "npx",
		ExtraArgs:    []string{"eslint"},
		DefaultPaths: []string{"app/**/*.js"},
	}

	argv, err := BuildCommand(nil, opts, "out.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"npx", "-f", "json", "-o", "out.json", "eslint", "app/**/*.js"}, argv)
}

func TestBuildCommand_EmptyCommandFallsBackToEslint(t *testing.T) {
	t.Parallel()

	argv, err := BuildCommand([]string{"a.js"}, Options{}, "r.json")
	require.NoError(t, err)
	assert.Equal(t, DefaultCommand, argv[0])
}

func TestBuildCommand_InvalidExtraArgs(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.ExtraArgs = 7

	argv, err := BuildCommand([]string{"a.js"}, opts, "r.json")
	assert.Nil(t, argv)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "must be either an array or string")
}

func TestBuildCommand_FilenamesAreNotSplit(t *testing.T) {
	t.Parallel()

	paths := []string{"weird name; rm -rf.js", "$(touch x).js"}
	argv, err := BuildCommand(paths, DefaultOptions(), "r.json")
	require.NoError(t, err)
	assert.Equal(t, paths, argv[len(argv)-2:])
}
