package lint

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an option that cannot be turned into a command line.
// No lint run is attempted when one is returned.
type ConfigurationError struct {
	Op      string
	Option  string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(":%s option %s", e.Option, e.Message)
}

// SubprocessError reports that the lint command could not be started or
// ended outside its normal pass/fail exit codes.
type SubprocessError struct {
	Op       string
	Command  string
	ExitCode int
	Err      error
}

func (e *SubprocessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("running %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("running %s: unexpected exit code %d", e.Command, e.ExitCode)
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// ReportParseError reports a missing or malformed JSON report file.
// Nothing derived from the report can be trusted when one is returned.
type ReportParseError struct {
	Op   string
	Path string
	Err  error
}

func (e *ReportParseError) Error() string {
	return fmt.Sprintf("reading report %s: %v", e.Path, e.Err)
}

func (e *ReportParseError) Unwrap() error { return e.Err }

// Operation returns the operation that produced err, or "" if err is not
// one of the lint error types.
func Operation(err error) string {
	var cfgErr *ConfigurationError
	var subErr *SubprocessError
	var repErr *ReportParseError
	switch {
	case errors.As(err, &cfgErr):
		return cfgErr.Op
	case errors.As(err, &subErr):
		return subErr.Op
	case errors.As(err, &repErr):
		return repErr.Op
	default:
		return ""
	}
}

// IsConfigurationError reports whether err is, or wraps, a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
