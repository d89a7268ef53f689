package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/cmdtypes"
	"github.com/rotorz/capri/internal/config"
	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the capri CLI configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Values satisfy the configuration schema

The config path is resolved using precedence:
  --config flag > CAPRI_CONFIG env > ~/.capri/config.yaml`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := configPath(cfg)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	output.Debug("validating config", "path", path)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: path,
			Hint:     "Run 'capri config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatVetCheck("Config file found", path))

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var schemaErr *config.SchemaError
		if errors.As(err, &schemaErr) {
			stderr := c.ErrOrStderr()
			fmt.Fprintln(stderr, "Error: config validation failed")
			fmt.Fprintf(stderr, "  File: %s\n\n", path)
			for _, issue := range schemaErr.Issues {
				fmt.Fprintf(stderr, "  %s\n", issue)
			}
			return &ExitError{Err: err, Code: ExitValidationError, Printed: true}
		}
		return NewExitError(fmt.Errorf("validating config: %w", err), ExitValidationError)
	}

	fmt.Fprintln(w, output.FormatVetCheck("Schema validation passed", "#Config"))
	return nil
}
