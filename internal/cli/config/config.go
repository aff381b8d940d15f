package config

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/schoolboyqueue/eslint-watch/internal/cli/shared"
	cfgpkg "github.com/schoolboyqueue/eslint-watch/internal/config"
	clierrors "github.com/schoolboyqueue/eslint-watch/internal/errors"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create eslint-watch configuration",
		Long: `Inspect and create eslint-watch configuration.

Configuration precedence (highest to lowest):
  1. Environment variables (ESLINT_WATCH_*, "__" separates nested keys)
  2. Project config (.eslint-watch/config.json)
  3. User config (~/.eslint-watch/config.json)
  4. Built-in defaults`,
		GroupID: shared.GroupConfiguration,
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigPathCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Example: `  # Show merged settings
  eslint-watch config show

  # Check an environment override
  ESLINT_WATCH_KEEP_FAILED=true eslint-watch config show`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return writeConfigYAML(cmd.OutOrStdout(), cfg)
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the user and project config file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userPath, err := cfgpkg.UserConfigPath()
			if err != nil {
				return err
			}
			projectPath, _ := cmd.Flags().GetString("config")
			if projectPath == "" {
				projectPath = cfgpkg.ProjectConfigPath
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user:    %s%s\n", userPath, existsMarker(userPath))
			fmt.Fprintf(out, "project: %s%s\n", projectPath, existsMarker(projectPath))
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write a config file containing every option at its default value.

By default the project config (.eslint-watch/config.json) is created.
Use --user to create ~/.eslint-watch/config.json instead.
An existing file is left unchanged unless --force is given.`,
		Example: `  # Create .eslint-watch/config.json
  eslint-watch config init

  # Create the user config, replacing any existing one
  eslint-watch config init --user --force`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConfigInit,
	}
	cmd.Flags().BoolP("user", "u", false, "Create the user config (~/.eslint-watch/config.json)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")

	path := cfgpkg.ProjectConfigPath
	if user {
		p, err := cfgpkg.UserConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := cfgpkg.WriteDefaultConfig(path, force); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "creating config",
			"Use --force to overwrite the existing file")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", color.GreenString("✓"), path)
	return nil
}

func writeConfigYAML(w io.Writer, cfg *cfgpkg.Configuration) error {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	// Durations encode as nanoseconds; show them the way they are written.
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == "debounce" {
			doc.Content[i+1].SetString(cfg.Debounce.String())
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return enc.Close()
}

func existsMarker(path string) string {
	if fileExists(path) {
		return ""
	}
	return color.New(color.Faint).Sprint(" (not found)")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
