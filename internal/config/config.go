// Package config loads eslint-watch settings from defaults, the user and
// project config files, and ESLINT_WATCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/schoolboyqueue/eslint-watch/internal/lint"
	"github.com/schoolboyqueue/eslint-watch/internal/notify"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ESLINT_WATCH_"

// Configuration is the effective eslint-watch configuration. It is not
// modified after Load returns.
type Configuration struct {
	AllOnStart bool `koanf:"all_on_start" yaml:"all_on_start"`
	KeepFailed bool `koanf:"keep_failed" yaml:"keep_failed"`

	// Notification is normalized from the raw `notification` value, which
	// may be a string or a boolean.
	Notification notify.Mode `koanf:"-" yaml:"notification"`

	// CLI is the raw `cli` value; ExtraArgs is its parsed form.
	CLI       any      `koanf:"cli" yaml:"cli,omitempty"`
	ExtraArgs []string `koanf:"-" yaml:"-"`

	Command      string   `koanf:"command" yaml:"command" validate:"required"`
	DefaultPaths []string `koanf:"default_paths" yaml:"default_paths" validate:"min=1,dive,required"`
	PathPrepend  []string `koanf:"path_prepend" yaml:"path_prepend"`

	WatchPatterns  []string      `koanf:"watch_patterns" yaml:"watch_patterns" validate:"min=1,dive,required"`
	IgnorePatterns []string      `koanf:"ignore_patterns" yaml:"ignore_patterns"`
	Debounce       time.Duration `koanf:"debounce" yaml:"debounce" validate:"min=0,max=1m"`

	ShowProgress bool   `koanf:"show_progress" yaml:"show_progress"`
	StateDir     string `koanf:"state_dir" yaml:"state_dir" validate:"required"`
	MaxHistory   int    `koanf:"max_history" yaml:"max_history" validate:"min=0,max=100000"`
	MetricsAddr  string `koanf:"metrics_addr" yaml:"metrics_addr,omitempty" validate:"omitempty,hostname_port"`

	Notify notify.NotificationConfig `koanf:"notify" yaml:"notify"`
}

// Load loads configuration from the user config, the project config at
// projectConfigPath (skipped if missing), and the environment.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying default %s: %w", key, err)
		}
	}

	if userPath, err := UserConfigPath(); err == nil {
		if err := loadFileIfExists(k, userPath); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if projectConfigPath != "" {
		if err := loadFileIfExists(k, projectConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load project config: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Environment values arrive as strings, so list options accept
	// comma-separated values there.
	var cfg Configuration
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	mode, err := notify.ParseMode(k.Get("notification"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	cfg.Notification = mode

	// A bad `cli` value is reported now rather than on the first run.
	extra, err := lint.ParseExtraArgs(cfg.CLI)
	if err != nil {
		return nil, err
	}
	cfg.ExtraArgs = extra

	if cfg.Notify.Type == "" {
		cfg.Notify.Type = notify.OutputVisual
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)

	return &cfg, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return k.Load(file.Provider(path), json.Parser())
}

// LintOptions returns the settings the lint runner needs.
func (c *Configuration) LintOptions() lint.Options {
	return lint.Options{
		Command:      c.Command,
		ExtraArgs:    append([]string{}, c.ExtraArgs...),
		DefaultPaths: append([]string(nil), c.DefaultPaths...),
		PathPrepend:  append([]string(nil), c.PathPrepend...),
	}
}

// envTransform converts environment variable names to config keys.
// A double underscore separates nested keys.
// Example: ESLINT_WATCH_KEEP_FAILED -> keep_failed, ESLINT_WATCH_NOTIFY__TYPE -> notify.type
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
