package plugin

import (
	"os"
	"path/filepath"
	"strings"
)

// CleanPaths makes paths absolute, drops duplicates and paths that do not
// exist, and drops any path inside another listed directory. Order is kept.
func CleanPaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	abs := make([]string, 0, len(paths))
	for _, path := range paths {
		a, err := filepath.Abs(path)
		if err != nil || seen[a] {
			continue
		}
		seen[a] = true
		abs = append(abs, a)
	}

	var dirs []string
	existing := make([]string, 0, len(abs))
	for _, path := range abs {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, path)
		}
		existing = append(existing, path)
	}

	cleaned := make([]string, 0, len(existing))
	for _, path := range existing {
		if !insideOtherDir(path, dirs) {
			cleaned = append(cleaned, path)
		}
	}
	return cleaned
}

func insideOtherDir(path string, dirs []string) bool {
	for _, dir := range dirs {
		if dir == path {
			continue
		}
		if strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// SmartPath returns path relative to workDir when it lies under it.
func SmartPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
