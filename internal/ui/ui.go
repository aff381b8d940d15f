// Package ui writes the timestamped console lines eslint-watch prints
// between lint runs.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level is the severity shown after the clock stamp.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARN"
	LevelError   Level = "ERROR"
	LevelDebug   Level = "DEBUG"
)

// Logger prints one line per message: "HH:MM:SS LEVEL - message".
// It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	debug bool
	now   func() time.Time
}

// New returns a Logger writing to out. Debug lines are dropped unless debug is set.
func New(out io.Writer, debug bool) *Logger {
	return &Logger{out: out, debug: debug, now: time.Now}
}

// NewStderr returns a Logger on stderr, keeping stdout for the lint tool.
func NewStderr(debug bool) *Logger {
	return New(os.Stderr, debug)
}

// Discard returns a Logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, false)
}

// DebugEnabled reports whether Debug lines are printed.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

func (l *Logger) Info(format string, args ...any) {
	l.print(LevelInfo, color.New(color.FgGreen), format, args...)
}

func (l *Logger) Warning(format string, args ...any) {
	l.print(LevelWarning, color.New(color.FgYellow), format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.print(LevelError, color.New(color.FgRed, color.Bold), format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.print(LevelDebug, color.New(color.FgCyan), format, args...)
}

func (l *Logger) print(level Level, c *color.Color, format string, args ...any) {
	dim := color.New(color.Faint).SprintFunc()
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s - %s\n", dim(l.now().Format("15:04:05")), c.Sprint(level), msg)
}
