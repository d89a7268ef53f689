package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/output"
	"github.com/rotorz/capri/internal/templates"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var (
		opts templates.Options
		list bool
	)

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a starter module project",
		Long: `Create a starter module project from a template.

Templates:
  script    Script modules only
  classes   YAML manifests defining a class hierarchy (default)
  cue       CUE manifests defining a class hierarchy

The project name defaults to the directory name and prefixes the native
method references the manifests declare.

Examples:
  # Create ./shapes from the default template
  capri init shapes

  # Use CUE manifests in the current directory
  capri init --template cue --name shapes

  # List templates
  capri init --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if list {
				return runInitList(c)
			}
			opts.TargetDir = "."
			if len(args) == 1 {
				opts.TargetDir = args[0]
			}
			return runInit(c, afero.NewOsFs(), opts)
		},
	}

	c.Flags().StringVarP(&opts.Template, "template", "t", templates.DefaultTemplateName,
		"Template: "+strings.Join(templates.Names(), ", "))
	c.Flags().StringVar(&opts.Name, "name", "", "Project name (default: directory name)")
	c.Flags().BoolVarP(&opts.Force, "force", "f", false, "Write into a non-empty directory")
	c.Flags().BoolVar(&list, "list", false, "List available templates")

	return c
}

func runInit(c *cobra.Command, fsys afero.Fs, opts templates.Options) error {
	res, err := templates.NewGenerator(fsys, opts).Generate()
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created %s project in %s",
		output.StyleNoun.Render(res.Template), output.StyleNoun.Render(res.TargetDir))))
	root := &output.TreeNode{Label: res.TargetDir}
	for _, f := range res.Files {
		root.Add(f)
	}
	fmt.Fprintln(w, output.RenderTree(root))
	fmt.Fprintf(w, "\nValidate with: capri --root %s vet %s\n", res.TargetDir, res.Entry)
	return nil
}

func runInitList(c *cobra.Command) error {
	tbl := output.NewTable("TEMPLATE", "DEFAULT", "DESCRIPTION")
	for _, t := range templates.List() {
		def := ""
		if t.Default {
			def = "yes"
		}
		tbl.Row(t.Name, def, t.Description)
	}
	fmt.Fprintln(c.OutOrStdout(), tbl.String())
	return nil
}
