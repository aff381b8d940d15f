package errors

import "fmt"

// LintCommandNotFound is returned when the lint executable cannot be run.
func LintCommandNotFound(command string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("lint command %q could not be started", command),
		"Install ESLint in the project: npm install --save-dev eslint",
		"Or set \"command\" in .eslint-watch/config.json to the executable to use",
		"Check \"path_prepend\" if the command lives outside PATH",
	)
}

// InvalidExtraArgs is returned when the `cli` option has an unsupported type.
func InvalidExtraArgs(detail string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("invalid cli option: %s", detail),
		`Use a list, e.g. "cli": ["--fix", "--quiet"]`,
		`Or a shell-quoted string, e.g. "cli": "--fix --quiet"`,
	)
}

// ReportUnreadable is returned when the JSON report cannot be read or parsed.
func ReportUnreadable(path string, cause error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("could not read lint report %s: %v", path, cause),
		Remediation: []string{
			"Make sure the configured command accepts ESLint's -f json -o <file> flags",
			"Run the command by hand to see its own error output",
		},
		Err: cause,
	}
}

// ConfigLoadFailed is returned when configuration cannot be loaded.
func ConfigLoadFailed(cause error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("loading configuration: %v", cause),
		Remediation: []string{
			"Check .eslint-watch/config.json and ~/.eslint-watch/config.json for JSON syntax errors",
			"Run 'eslint-watch config show' to see the effective configuration",
		},
		Err: cause,
	}
}
