package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"all_on_start":    false,
		"keep_failed":     false,
		"notification":    "failed",
		"command":         "eslint",
		"default_paths":   []string{"**/*.js", "**/*.es6"},
		"path_prepend":    []string{"node_modules/.bin"},
		"watch_patterns":  []string{"**/*.js", "**/*.es6"},
		"ignore_patterns": []string{"node_modules", ".git", "dist", "build", "coverage"},
		"debounce":        "200ms",
		"show_progress":   false,
		"state_dir":       "~/.eslint-watch/state",
		"max_history":     500,
		"metrics_addr":    "",
		"notify.type":     "visual",
	}
}

// GetDefaultConfigTemplate returns a JSON config file matching
// GetDefaults. It is written by `eslint-watch config init`.
func GetDefaultConfigTemplate() string {
	return `{
  "all_on_start": false,
  "keep_failed": false,
  "notification": "failed",
  "cli": "",
  "command": "eslint",
  "default_paths": ["**/*.js", "**/*.es6"],
  "path_prepend": ["node_modules/.bin"],
  "watch_patterns": ["**/*.js", "**/*.es6"],
  "ignore_patterns": ["node_modules", ".git", "dist", "build", "coverage"],
  "debounce": "200ms",
  "show_progress": false,
  "state_dir": "~/.eslint-watch/state",
  "max_history": 500,
  "metrics_addr": "",
  "notify": {
    "type": "visual",
    "sound_file": ""
  }
}
`
}
