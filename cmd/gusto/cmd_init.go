package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"gusto/internal/config"
)

var initForce bool

// initCmd writes a starter config into the workspace
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .gusto/config.yaml in the workspace",
	Long: `Creates <workspace>/.gusto/config.yaml with the default settings and
solution history switched on. An existing file is left alone unless --force
is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: orSolve(runInit),
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.ArbitraryArgs,
	RunE:  orSolve(runConfig),
}

func runInit(cmd *cobra.Command, args []string) error {
	ws := resolveWorkspace()
	path := configPath
	if path == "" {
		path = config.DefaultPath(ws)
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(path); err == nil && !initForce {
		writeLine(out, "Config already exists at %s (use --force to overwrite).", path)
		return nil
	}

	c := config.DefaultConfig()
	c.History.Enabled = true
	if err := c.Save(path); err != nil {
		return err
	}
	logger.Info("Initialized workspace", zap.String("config", path))

	writeLine(out, "✓ Wrote %s", path)
	writeLine(out, "  History: %s", c.HistoryPath(ws))
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	c, err := activeConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
