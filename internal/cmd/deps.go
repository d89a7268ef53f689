package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/cmdtypes"
	"github.com/rotorz/capri/internal/cmdutil"
)

// NewDepsCmd creates the deps command.
func NewDepsCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <entry>",
		Short: "Print the dependency graph of a module",
		Long: `Load an entry module and print its dependency tree and load order.

The entry is resolved against --root; the default extension is appended
when the name has none.

Examples:
  # Dependency tree of app/main.js
  capri deps app/main --root ./src

  # Machine-readable graph
  capri deps app/main -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDeps(c, cfg, args[0])
		},
	}
}

func runDeps(c *cobra.Command, cfg *cmdtypes.GlobalConfig, entry string) error {
	settings := cfg.EffectiveSettings()
	rt, err := cmdutil.NewRuntime(settings)
	if err != nil {
		return err
	}

	loadErr := cmdutil.Load(c.Context(), rt, entry, settings.Async)

	report := cmdutil.BuildDepsReport(rt, entry)
	if err := cmdutil.WriteReport(c.OutOrStdout(), cfg.Output, report, report.Text); err != nil {
		return err
	}

	if loadErr != nil {
		cmdutil.PrintLoadError("loading failed", loadErr)
		return printed(loadErr)
	}
	return nil
}
