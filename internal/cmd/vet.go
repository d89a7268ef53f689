package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/cmdtypes"
	"github.com/rotorz/capri/internal/cmdutil"
	"github.com/rotorz/capri/internal/output"
)

// NewVetCmd creates the vet command.
func NewVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet <entry>",
		Short: "Validate a module graph",
		Long: `Load an entry module and report every problem found on the way.

Checks performed:
  1. Every required module can be found and compiled
  2. Manifest modules pass the manifest schema
  3. Class definitions resolve their base class and interfaces
  4. Classes satisfy their interfaces and abstract contracts
  5. Every module finishes loading (no dependency cycles)

Native methods referenced by manifests but not bound are reported as
warnings; calling them fails with "not implemented".`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runVet(c, cfg, args[0])
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig, entry string) error {
	settings := cfg.EffectiveSettings()
	rt, err := cmdutil.NewRuntime(settings)
	if err != nil {
		return err
	}

	loadErr := cmdutil.Load(c.Context(), rt, entry, settings.Async)
	report := cmdutil.BuildDepsReport(rt, entry)

	w := c.OutOrStdout()
	for _, m := range report.Modules {
		fmt.Fprintln(w, output.FormatModuleLine(m.Name, m.Status))
	}

	if loadErr != nil {
		cmdutil.PrintLoadError("vet failed", loadErr)
		return printed(loadErr)
	}

	if unbound := rt.Natives().Unbound(); len(unbound) > 0 {
		output.Warn("native methods are not bound", "refs", strings.Join(unbound, ", "))
	}

	classes := cmdutil.BuildClassReport(rt)
	fmt.Fprintln(w, output.FormatCheckmark(output.StyleSummary.Render(
		fmt.Sprintf("%d modules loaded, %d classes and %d interfaces defined",
			len(report.Order), len(classes.Classes)-1, len(classes.Interfaces)))))
	return nil
}
