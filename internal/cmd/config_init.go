package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/cmdtypes"
	"github.com/rotorz/capri/internal/config"
	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the capri CLI configuration.

Writes ~/.capri/config.yaml (or the path given by --config / CAPRI_CONFIG)
with every key set to its default:
  root         Module root directory
  extension    Default module extension
  async        Fetch modules in the background
  maxFetches   Concurrent fetch limit for async loading
  log          Logging options

Examples:
  # Initialize configuration
  capri config init

  # Overwrite existing configuration
  capri config init --force`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := configPath(cfg)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine config path")
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := config.RenderTemplate(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("rendering config template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark("Configuration initialized: "+output.StyleNoun.Render(path)))
	fmt.Fprintln(w, "Validate with: capri config vet")
	return nil
}
