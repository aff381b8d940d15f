package progress

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// buildRunMessage describes what is being inspected.
func buildRunMessage(paths []string) string {
	switch len(paths) {
	case 0:
		return "Inspecting all files"
	case 1:
		return "Inspecting " + paths[0]
	default:
		return fmt.Sprintf("Inspecting %d paths", len(paths))
	}
}

// truncate shortens s to width columns, keeping room for the spinner glyph.
func truncate(s string, width int) string {
	limit := width - 4
	if width <= 0 || limit <= 3 || len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor && symbols.Checkmark == "✓" {
		return color.New(color.FgGreen).Sprint(symbols.Checkmark)
	}
	return symbols.Checkmark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor && symbols.Failure == "✗" {
		return color.New(color.FgRed).Sprint(symbols.Failure)
	}
	return symbols.Failure
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
