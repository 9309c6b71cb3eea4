// File: cmd/config.go
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/ghosttype-cli/internal/config"
)

// newConfigCmd groups the configuration management subcommands.
func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the configuration file.",
	}
	cmd.AddCommand(newConfigPathCmd(o))
	cmd.AddCommand(newConfigInitCmd(o))
	cmd.AddCommand(newConfigShowCmd(o))
	return cmd
}

// newConfigPathCmd prints where the config file lives. It never reads or
// writes the file, so it is safe to call from scripts.
func newConfigPathCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the resolved config file path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(o.cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCmd(o *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a fresh default configuration file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(o.cfgFile)
			if err != nil {
				return err
			}
			if _, statErr := os.Stat(path); statErr == nil && !force {
				return fmt.Errorf("config file %s already exists, rerun with --force to overwrite", path)
			} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
				return statErr
			}
			if err := config.Write(path, config.NewDefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(o.cfgFile)
			if err != nil {
				return err
			}
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			if loaded.Healed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", loaded.Warning)
			}
			out, err := yaml.Marshal(loaded.Config)
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
