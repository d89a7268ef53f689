package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/cmdtypes"
	"github.com/rotorz/capri/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the capri CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}

// configPath returns the resolved config path, resolving it when the root
// command did not run.
func configPath(cfg *cmdtypes.GlobalConfig) (string, error) {
	if cfg != nil && cfg.ConfigPath != "" {
		return config.ExpandPath(cfg.ConfigPath)
	}
	res, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{})
	if err != nil {
		return "", err
	}
	return config.ExpandPath(res.ConfigPath)
}
