package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rotorz/capri/internal/cmdtypes"
	"github.com/rotorz/capri/internal/config"
	"github.com/rotorz/capri/internal/output"
	"github.com/rotorz/capri/internal/version"
)

// rootFlags holds the raw global flag values.
type rootFlags struct {
	config     string
	root       string
	ext        string
	async      bool
	maxFetches int
	verbose    bool
	timestamps bool
	output     string
}

// NewRootCmd creates the root command for the capri CLI.
func NewRootCmd() *cobra.Command {
	var (
		flags rootFlags
		cfg   cmdtypes.GlobalConfig
	)

	rootCmd := &cobra.Command{
		Use:   "capri",
		Short: "Module loader and class system inspector",
		Long: `capri loads a graph of modules from a root directory and reports on it.

Script modules (.js by default) contribute their dependency graph.
Manifest modules (.yaml, .yml, .toml, .cue, .json) additionally define
classes and interfaces, which are validated as they are defined.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, &flags, &cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "Path to config file (env: CAPRI_CONFIG)")
	pf.StringVar(&flags.root, "root", "", "Module root directory (env: CAPRI_ROOT)")
	pf.StringVar(&flags.ext, "ext", "", "Default module extension (env: CAPRI_EXTENSION)")
	pf.BoolVar(&flags.async, "async", false, "Fetch modules in the background (env: CAPRI_ASYNC)")
	pf.IntVar(&flags.maxFetches, "max-fetches", 0, "Concurrent fetch limit with --async (env: CAPRI_MAX_FETCHES)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")
	pf.StringVarP(&flags.output, "output", "o", "text", "Output format: text, json, yaml")

	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewDepsCmd(&cfg))
	rootCmd.AddCommand(NewClassesCmd(&cfg))
	rootCmd.AddCommand(NewVetCmd(&cfg))
	rootCmd.AddCommand(NewConfigCmd(&cfg))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals resolves configuration and sets up logging.
func initializeGlobals(c *cobra.Command, f *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	format, err := output.ParseOutputFormat(f.output)
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: f.config,
	})
	if err != nil {
		return err
	}

	// Commands that do not need the config file still run when it is broken;
	// config vet reports the problem.
	loaded, err := config.NewLoader().Load(pathResult.ConfigPath)
	if err != nil {
		output.Debug("config load error", "path", pathResult.ConfigPath, "error", err)
		loaded = nil
	}

	resolveFlags := config.Flags{
		Root:       f.root,
		Extension:  f.ext,
		MaxFetches: f.maxFetches,
	}
	if c.Flags().Changed("async") {
		resolveFlags.Async = output.BoolPtr(f.async)
	}
	if c.Flags().Changed("timestamps") {
		resolveFlags.Timestamps = output.BoolPtr(f.timestamps)
	}

	settings, err := config.Resolve(config.ResolveOptions{
		Flags:  resolveFlags,
		Config: loaded,
	})
	if err != nil {
		return err
	}

	output.SetupLogging(output.LogConfig{
		Verbose:    f.verbose,
		Timestamps: settings.Timestamps,
	})

	*cfg = cmdtypes.GlobalConfig{
		ConfigPath:   pathResult.ConfigPath,
		ConfigSource: pathResult.Source,
		Config:       loaded,
		Settings:     settings,
		Output:       format,
		Verbose:      f.verbose,
	}

	if f.verbose {
		info := version.Get()
		output.Debug("initializing CLI",
			"version", info.Version,
			"config", pathResult.ConfigPath,
			"config_source", pathResult.Source,
			"output", format,
		)
		config.LogResolvedValues(settings.Values)
	}

	return nil
}
