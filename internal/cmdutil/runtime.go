// Package cmdutil provides shared command utilities: runtime construction
// from resolved settings, graph loading with progress, and the reports the
// deps, classes and vet commands print.
package cmdutil

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/rotorz/capri/internal/config"
	"github.com/rotorz/capri/internal/output"
	"github.com/rotorz/capri/pkg/capri"
)

// NewRuntime creates a runtime reading modules from the OS filesystem below
// s.Root.
func NewRuntime(s *config.Settings) (*capri.Runtime, error) {
	return NewRuntimeFS(afero.NewOsFs(), s)
}

// NewRuntimeFS creates a runtime reading modules from fsys below s.Root.
func NewRuntimeFS(fsys afero.Fs, s *config.Settings) (*capri.Runtime, error) {
	opts := []capri.Option{
		capri.WithFS(fsys, s.Root),
		capri.WithExtension(s.Extension),
	}
	if s.Async {
		opts = append(opts, capri.WithAsync(s.MaxFetches))
	}
	rt, err := capri.NewRuntime(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating runtime: %w", err)
	}
	return rt, nil
}

// Load loads entry. An asynchronous graph shows a spinner on a terminal.
func Load(ctx context.Context, rt *capri.Runtime, entry string, async bool) error {
	output.Debug("loading entry module", "entry", entry, "async", async)
	if !async {
		_, err := rt.Load(ctx, entry)
		return err
	}
	return output.RunWithSpinner(ctx, fmt.Sprintf("Loading %s...", entry), func(ctx context.Context) error {
		_, err := rt.Load(ctx, entry)
		return err
	})
}
