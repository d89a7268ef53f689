package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Environment variables read by Resolve and ResolveConfigPath.
const (
	EnvConfig     = "CAPRI_CONFIG"
	EnvRoot       = "CAPRI_ROOT"
	EnvExtension  = "CAPRI_EXTENSION"
	EnvAsync      = "CAPRI_ASYNC"
	EnvMaxFetches = "CAPRI_MAX_FETCHES"
	EnvTimestamps = "CAPRI_LOG_TIMESTAMPS"
)

type options struct {
	fs afero.Fs
}

// Option configures a Loader or Validator.
type Option func(*options)

// WithFs reads config files from fsys instead of the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) { o.fs = fsys }
}

func newOptions(opts []Option) options {
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Loader reads the config file. Only file values are returned; the
// environment is layered on by Resolve so every value keeps its source.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	return &Loader{fs: newOptions(opts).fs}
}

// Load reads the config file at path. An empty path resolves through
// ResolveConfigPath. A missing file yields an empty Config.
func (l *Loader) Load(path string) (*Config, error) {
	path, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(l.fs)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadWithDefaults loads the config file and fills unset values with
// their defaults.
func (l *Loader) LoadWithDefaults(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults()
}

// Exists reports whether the config file at path exists.
func (l *Loader) Exists(path string) (bool, error) {
	path, err := l.resolve(path)
	if err != nil {
		return false, err
	}
	return afero.Exists(l.fs, path)
}

func (l *Loader) resolve(path string) (string, error) {
	if path == "" {
		res, err := ResolveConfigPath(ResolveConfigPathOptions{})
		if err != nil {
			return "", fmt.Errorf("resolving config path: %w", err)
		}
		path = res.ConfigPath
	}
	return ExpandPath(path)
}

// ConfigFileExists reports whether the config file at path exists on the
// OS filesystem.
func ConfigFileExists(path string) (bool, error) {
	return NewLoader().Exists(path)
}
