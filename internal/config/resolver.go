package config

import (
	"fmt"
	"os"
	"strconv"

	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records one configuration value and where it came from.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) CAPRI_CONFIG env, (3) ~/.capri/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	defaultPath, err := DefaultConfigFile()
	if err != nil {
		return result, err
	}

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// Flags carries command-line values. Zero values and nil pointers mean the
// flag was not given.
type Flags struct {
	Root       string
	Extension  string
	Async      *bool
	MaxFetches int
	Timestamps *bool
}

// ResolveOptions contains the inputs of Resolve.
type ResolveOptions struct {
	Flags Flags

	// Config holds values read from the config file only.
	Config *Config
}

// Settings is the effective configuration after precedence is applied.
type Settings struct {
	Root       string
	Extension  string
	Async      bool
	MaxFetches int

	// Timestamps is nil when no source set it.
	Timestamps *bool

	// Values records the resolution of every key.
	Values []ResolvedValue
}

type candidate struct {
	source ConfigSource
	value  any
	set    bool
}

func pick(key string, cands ...candidate) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: map[ConfigSource]any{}}
	chosen := false
	for _, c := range cands {
		if !c.set {
			continue
		}
		if !chosen {
			rv.Value, rv.Source, chosen = c.value, c.source, true
			continue
		}
		rv.Shadowed[c.source] = c.value
	}
	return rv
}

// Resolve applies precedence flag > env > config > default to every key.
func Resolve(opts ResolveOptions) (*Settings, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	f := opts.Flags

	envAsync, hasEnvAsync, err := envBool(EnvAsync)
	if err != nil {
		return nil, err
	}
	envTimestamps, hasEnvTimestamps, err := envBool(EnvTimestamps)
	if err != nil {
		return nil, err
	}
	envMax, hasEnvMax, err := envInt(EnvMaxFetches)
	if err != nil {
		return nil, err
	}
	envRoot := os.Getenv(EnvRoot)
	envExt := os.Getenv(EnvExtension)

	root := pick("root",
		candidate{SourceFlag, f.Root, f.Root != ""},
		candidate{SourceEnv, envRoot, envRoot != ""},
		candidate{SourceConfig, cfg.Root, cfg.Root != ""},
		candidate{SourceDefault, DefaultRoot, true},
	)
	ext := pick("extension",
		candidate{SourceFlag, f.Extension, f.Extension != ""},
		candidate{SourceEnv, envExt, envExt != ""},
		candidate{SourceConfig, cfg.Extension, cfg.Extension != ""},
		candidate{SourceDefault, DefaultExtension, true},
	)
	async := pick("async",
		candidate{SourceFlag, deref(f.Async), f.Async != nil},
		candidate{SourceEnv, envAsync, hasEnvAsync},
		candidate{SourceConfig, cfg.Async, cfg.Async},
		candidate{SourceDefault, false, true},
	)
	maxFetches := pick("maxFetches",
		candidate{SourceFlag, f.MaxFetches, f.MaxFetches > 0},
		candidate{SourceEnv, envMax, hasEnvMax},
		candidate{SourceConfig, cfg.MaxFetches, cfg.MaxFetches > 0},
		candidate{SourceDefault, DefaultMaxFetches, true},
	)
	timestamps := pick("log.timestamps",
		candidate{SourceFlag, deref(f.Timestamps), f.Timestamps != nil},
		candidate{SourceEnv, envTimestamps, hasEnvTimestamps},
		candidate{SourceConfig, deref(cfg.Log.Timestamps), cfg.Log.Timestamps != nil},
	)

	s := &Settings{
		Root:       root.Value.(string),
		Extension:  ext.Value.(string),
		Async:      async.Value.(bool),
		MaxFetches: maxFetches.Value.(int),
		Values:     []ResolvedValue{root, ext, async, maxFetches, timestamps},
	}
	if v, ok := timestamps.Value.(bool); ok {
		s.Timestamps = &v
	}
	return s, nil
}

// Lookup returns the resolution record for key.
func (s *Settings) Lookup(key string) (ResolvedValue, bool) {
	for _, v := range s.Values {
		if v.Key == key {
			return v, true
		}
	}
	return ResolvedValue{}, false
}

func deref(b *bool) bool {
	return b != nil && *b
}

func envBool(name string) (bool, bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, oerrors.NewValidationError(
			fmt.Sprintf("invalid boolean %q", raw), name, "", "Use true or false")
	}
	return v, true, nil
}

func envInt(name string) (int, bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, false, oerrors.NewValidationError(
			fmt.Sprintf("invalid positive integer %q", raw), name, "", "")
	}
	return v, true, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
