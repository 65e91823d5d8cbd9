package faunad

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/faunadata/fauna/internal/config"
	"github.com/faunadata/fauna/internal/ui"
	"github.com/spf13/cobra"
)

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the server configuration file",
	}
	cmd.AddCommand(configInitCmd(), configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with default values",
		Long: `Write a config file with every setting at its default value.

The format follows the file extension: .yaml/.yml, .json or .toml.
Without a path the file is written to ~/.config/fauna/faunad.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("failed to determine config path: %w", err)
				}
				path = defaultPath
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			abs, _ := filepath.Abs(path)
			ui.Success("Wrote default config to %s", abs)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func configShowCmd() *cobra.Command {
	var configPath string
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, .env files and FAUNA_* environment overrides are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.LoadEnvFiles()
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the server config file")
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format: yaml, json or toml")
	return cmd
}
