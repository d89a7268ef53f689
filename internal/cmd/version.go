package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show capri CLI version information.

Displays:
  - capri version, commit, and build date
  - Go toolchain and CUE SDK versions`,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}
