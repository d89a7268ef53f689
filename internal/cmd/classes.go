package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/cmdtypes"
	"github.com/rotorz/capri/internal/cmdutil"
)

// NewClassesCmd creates the classes command.
func NewClassesCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "classes <entry>",
		Short: "Print the class hierarchy defined by a module graph",
		Long: `Load an entry module and print every class and interface it defined.

The hierarchy is rooted at the implicit capri.Object class. The table lists
each class with its base class, abstract flag and implemented interfaces.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runClasses(c, cfg, args[0])
		},
	}
}

func runClasses(c *cobra.Command, cfg *cmdtypes.GlobalConfig, entry string) error {
	settings := cfg.EffectiveSettings()
	rt, err := cmdutil.NewRuntime(settings)
	if err != nil {
		return err
	}

	if err := cmdutil.Load(c.Context(), rt, entry, settings.Async); err != nil {
		cmdutil.PrintLoadError("loading failed", err)
		return printed(err)
	}

	report := cmdutil.BuildClassReport(rt)
	return cmdutil.WriteReport(c.OutOrStdout(), cfg.Output, report, report.Text)
}
