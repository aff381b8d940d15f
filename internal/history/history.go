// Package history stores a record of each inspection in a YAML file under
// the state directory.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// HistoryFileName is the name of the history file.
	HistoryFileName = "history.yaml"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// Status constants for history entries.
const (
	// StatusPassed means the lint tool exited 0.
	StatusPassed = "passed"
	// StatusFailed means the lint tool reported problems.
	StatusFailed = "failed"
	// StatusError means the inspection could not complete (bad report, missing command).
	StatusError = "error"
)

// Trigger constants name what started an inspection.
const (
	TriggerAll           = "all"
	TriggerAdditions     = "additions"
	TriggerModifications = "modifications"
)

// HistoryEntry is one inspection.
type HistoryEntry struct {
	// ID is a random UUID.
	ID        string    `yaml:"id"`
	Timestamp time.Time `yaml:"timestamp"`
	// Trigger is all, additions or modifications.
	Trigger string `yaml:"trigger"`
	// Paths is the number of paths handed to the lint tool; 0 means the default globs.
	Paths  int    `yaml:"paths"`
	Status string `yaml:"status"`
	// Summary is the one-line result text, empty for StatusError.
	Summary     string   `yaml:"summary,omitempty"`
	FailedPaths []string `yaml:"failed_paths,omitempty"`
	// Error holds the error text for StatusError entries.
	Error string `yaml:"error,omitempty"`
	// Duration is the execution duration in Go duration format (e.g., "1.52s").
	Duration string `yaml:"duration"`
}

// HistoryFile represents the YAML file containing all history entries.
type HistoryFile struct {
	// Entries is ordered oldest first.
	Entries []HistoryEntry `yaml:"entries"`
}

// LoadHistory loads the history file from the given state directory.
// Returns empty history if file doesn't exist.
// Handles corrupted files by backing them up and creating a fresh history.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	historyPath := filepath.Join(stateDir, HistoryFileName)

	data, err := os.ReadFile(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &HistoryFile{Entries: []HistoryEntry{}}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		if backupErr := backupCorruptedFile(historyPath); backupErr != nil {
			return nil, fmt.Errorf("backing up corrupted history file: %w", backupErr)
		}
		return &HistoryFile{Entries: []HistoryEntry{}}, nil
	}

	if history.Entries == nil {
		history.Entries = []HistoryEntry{}
	}

	return &history, nil
}

// backupCorruptedFile renames a corrupted file with a .backup suffix.
func backupCorruptedFile(path string) error {
	backupPath := path + BackupSuffix
	if err := os.Rename(path, backupPath); err != nil {
		return fmt.Errorf("renaming corrupted file to backup: %w", err)
	}
	return nil
}

// SaveHistory saves the history file to the given state directory using atomic writes.
// Creates parent directories if needed.
func SaveHistory(stateDir string, history *HistoryFile) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	historyPath := filepath.Join(stateDir, HistoryFileName)
	tmpPath := historyPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temp history file: %w", err)
	}

	if err := os.Rename(tmpPath, historyPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp history file: %w", err)
	}

	return nil
}

// ClearHistory removes all entries from the history file.
func ClearHistory(stateDir string) error {
	return SaveHistory(stateDir, &HistoryFile{Entries: []HistoryEntry{}})
}

// Filter returns the newest entries first, keeping only those with the
// given status (all when empty), at most limit of them (all when <= 0).
func Filter(entries []HistoryEntry, status string, limit int) []HistoryEntry {
	out := []HistoryEntry{}
	for i := len(entries) - 1; i >= 0; i-- {
		if status != "" && entries[i].Status != status {
			continue
		}
		out = append(out, entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
