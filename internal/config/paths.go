package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigPath is the project config file, relative to the working directory.
const ProjectConfigPath = ".eslint-watch/config.json"

// UserConfigDir returns the per-user eslint-watch directory (~/.eslint-watch).
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".eslint-watch"), nil
}

// UserConfigPath returns the user config file path.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// WriteDefaultConfig writes the default template to path. An existing file
// is left alone unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
