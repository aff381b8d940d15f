package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Writer appends inspection entries with automatic pruning.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain; 0 keeps everything.
	MaxEntries int

	mu  sync.Mutex
	now func() time.Time
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
		now:        time.Now,
	}
}

// Record appends entry, filling ID and Timestamp when unset, and prunes the
// oldest entries beyond MaxEntries. It returns the stored entry.
func (w *Writer) Record(entry HistoryEntry) (HistoryEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = w.clock()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	history, err := LoadHistory(w.StateDir)
	if err != nil {
		return entry, fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, history); err != nil {
		return entry, fmt.Errorf("saving history: %w", err)
	}

	return entry, nil
}

// RecordInspection is a convenience wrapper building the entry from an
// inspection's outcome. A non-nil runErr produces a StatusError entry.
func (w *Writer) RecordInspection(trigger string, paths int, passed bool, summary string, failed []string, runErr error, duration time.Duration) (HistoryEntry, error) {
	entry := HistoryEntry{
		Trigger:     trigger,
		Paths:       paths,
		Summary:     summary,
		FailedPaths: failed,
		Duration:    duration.Round(time.Millisecond).String(),
	}
	switch {
	case runErr != nil:
		entry.Status = StatusError
		entry.Summary = ""
		entry.FailedPaths = nil
		entry.Error = runErr.Error()
	case passed:
		entry.Status = StatusPassed
	default:
		entry.Status = StatusFailed
	}
	return w.Record(entry)
}

func (w *Writer) clock() time.Time {
	if w.now == nil {
		return time.Now()
	}
	return w.now()
}
