// Package cmdtypes provides shared types for the cmd package and its helper
// packages. It is separate from internal/cmd so that internal/cmdutil can use
// the resolved configuration without importing the commands.
package cmdtypes

import (
	"github.com/rotorz/capri/internal/config"
	"github.com/rotorz/capri/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ConfigSource tells where ConfigPath came from.
	ConfigSource config.ConfigSource

	// Config holds the values read from the config file, nil if unreadable.
	Config *config.Config

	// Settings is the effective configuration after precedence.
	Settings *config.Settings

	// Output is the --output format.
	Output output.OutputFormat

	Verbose bool
}

// EffectiveSettings returns Settings, or the built-in defaults when
// resolution has not run (commands executed directly in tests).
func (g *GlobalConfig) EffectiveSettings() *config.Settings {
	if g != nil && g.Settings != nil {
		return g.Settings
	}
	s, err := config.Resolve(config.ResolveOptions{})
	if err != nil {
		return &config.Settings{
			Root:       config.DefaultRoot,
			Extension:  config.DefaultExtension,
			MaxFetches: config.DefaultMaxFetches,
		}
	}
	return s
}
