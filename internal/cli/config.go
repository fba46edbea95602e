package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/sadopc/tasktracker/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tasktracker configuration",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config: %w", err)
			}
			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			data, err := yaml.Marshal(newConfigView(cfg))
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", root.configFile(), data)
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), root.configFile())
		},
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)
	return cmd
}

func (o *rootOptions) configFile() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultPath()
}

// configView renders durations the way they are written in the file.
type configView struct {
	DBPath       string `yaml:"db_path"`
	LogPath      string `yaml:"log_path"`
	SaveAckDelay string `yaml:"save_ack_delay"`
	ClockTick    string `yaml:"clock_tick"`
	ExportDir    string `yaml:"export_dir"`
}

func newConfigView(c *config.Config) configView {
	return configView{
		DBPath:       c.DBPath,
		LogPath:      c.LogPath,
		SaveAckDelay: c.SaveAckDelay.String(),
		ClockTick:    c.ClockTick.String(),
		ExportDir:    c.ExportDir,
	}
}
