package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay shows the state of one inspection at a time.
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	out          io.Writer
}

// NewProgressDisplay creates a new progress display with the given terminal capabilities
func NewProgressDisplay(caps TerminalCapabilities) *ProgressDisplay {
	return &ProgressDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          os.Stderr,
	}
}

// SetOutput redirects marks and the spinner. Stderr by default so the
// lint tool's stdout is left alone.
func (p *ProgressDisplay) SetOutput(w io.Writer) {
	p.out = w
}

// Start begins showing progress for an inspection of paths (all files when empty).
func (p *ProgressDisplay) Start(paths []string) {
	p.StopSpinner()

	msg := truncate(buildRunMessage(paths), p.capabilities.Width)
	if !p.capabilities.IsTTY {
		// Non-interactive mode: Just print the message
		fmt.Fprintln(p.out, msg)
		return
	}

	p.spinner = spinner.New(
		spinner.CharSets[p.symbols.SpinnerSet],
		100*time.Millisecond,
		spinner.WithWriter(p.out),
	)
	p.spinner.Suffix = " " + msg
	p.spinner.Start()
}

// Succeed stops the spinner and prints the summary with a checkmark.
func (p *ProgressDisplay) Succeed(summary string) {
	p.StopSpinner()
	fmt.Fprintf(p.out, "%s %s\n", checkmark(p.symbols, p.capabilities.SupportsColor), oneLine(summary))
}

// Fail stops the spinner and prints msg with a failure mark.
func (p *ProgressDisplay) Fail(msg string) {
	p.StopSpinner()
	fmt.Fprintf(p.out, "%s %s\n", failureMark(p.symbols, p.capabilities.SupportsColor), oneLine(msg))
}

// StopSpinner stops the spinner without showing completion/failure
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
