// Package capri bundles the module loader and the class system behind one
// Runtime: a global namespace, the definition dispatcher with the class and
// interface kinds installed, the class table and the module registry.
package capri

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/rotorz/capri/internal/define"
	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/manifest"
	"github.com/rotorz/capri/internal/module"
	"github.com/rotorz/capri/internal/namespace"
	"github.com/rotorz/capri/internal/oop"
	"github.com/rotorz/capri/internal/output"
)

// Re-exported so embedders need not import internal packages.
type (
	Class        = oop.Class
	Interface    = oop.Interface
	Object       = oop.Object
	Body         = oop.Body
	Factory      = module.Factory
	Require      = module.Require
	Callback     = module.Callback
	Source       = module.Source
	Record       = module.Record
	Natives      = manifest.Natives
	Namespace    = namespace.Node
)

type options struct {
	fs         afero.Fs
	root       string
	ext        string
	async      bool
	maxFetches int64
	host       module.SyncHost
	natives    *manifest.Natives
}

// Option configures a Runtime.
type Option func(*options)

// WithFS reads modules from fsys below root. Script files use the default
// extension; manifest files (.yaml, .yml, .toml, .cue, .json) are compiled
// into class and interface definitions.
func WithFS(fsys afero.Fs, root string) Option {
	return func(o *options) { o.fs, o.root = fsys, root }
}

// WithHost acquires modules from h instead of a filesystem.
func WithHost(h module.SyncHost) Option {
	return func(o *options) { o.host = h }
}

// WithExtension sets the default module extension.
func WithExtension(ext string) Option {
	return func(o *options) { o.ext = ext }
}

// WithAsync acquires modules in the background, at most maxFetches at a
// time. Call Wait to drive loading to completion.
func WithAsync(maxFetches int) Option {
	return func(o *options) { o.async, o.maxFetches = true, int64(maxFetches) }
}

// WithNatives binds manifest native references through n.
func WithNatives(n *manifest.Natives) Option {
	return func(o *options) { o.natives = n }
}

// NewNatives creates an empty native binding table.
func NewNatives() *Natives { return manifest.NewNatives() }

// Runtime is one isolated capri environment.
type Runtime struct {
	root       *namespace.Node
	dispatcher *define.Dispatcher
	table      *oop.Table
	registry   *module.Registry
	loop       *module.Loop
	natives    *manifest.Natives
}

// NewRuntime creates a runtime. Without WithFS or WithHost, modules must be
// supplied through DefineNamed or Module.
func NewRuntime(opts ...Option) (*Runtime, error) {
	o := &options{ext: module.DefaultExtension, natives: manifest.NewNatives()}
	for _, opt := range opts {
		opt(o)
	}

	host := o.host
	if host == nil && o.fs != nil {
		loader, err := manifest.NewLoader()
		if err != nil {
			return nil, fmt.Errorf("creating manifest loader: %w", err)
		}
		fsHost := module.NewFSHost(o.fs, o.root)
		if o.ext != "" {
			fsHost.Register(o.ext, module.ScriptCompiler{})
		}
		manifest.NewCompiler(loader, o.natives).RegisterWith(fsHost)
		host = fsHost
	}

	rt := &Runtime{
		root:    namespace.New(""),
		table:   oop.NewTable(),
		natives: o.natives,
	}
	rt.dispatcher = define.New(rt.root)
	oop.Install(rt.dispatcher, rt.table)

	regOpts := []module.Option{module.WithExtension(o.ext)}
	switch {
	case host != nil && o.async:
		rt.loop = module.NewLoop()
		regOpts = append(regOpts, module.WithAsyncHost(module.NewAsync(host, rt.loop, o.maxFetches)))
	case host != nil:
		regOpts = append(regOpts, module.WithHost(host))
	}
	rt.registry = module.New(rt.dispatcher, regOpts...)

	output.Debug("runtime created", "root", o.root, "ext", o.ext, "async", o.async)
	return rt, nil
}

// Root returns the global namespace.
func (rt *Runtime) Root() *namespace.Node { return rt.root }

// Dispatcher returns the definition dispatcher.
func (rt *Runtime) Dispatcher() *define.Dispatcher { return rt.dispatcher }

// Table returns the class and interface descriptor table.
func (rt *Runtime) Table() *oop.Table { return rt.table }

// Registry returns the module registry.
func (rt *Runtime) Registry() *module.Registry { return rt.registry }

// Natives returns the manifest native binding table.
func (rt *Runtime) Natives() *manifest.Natives { return rt.natives }

// Define runs a definition: (ns, "kind Name", body) or ("kind Name", body).
func (rt *Runtime) Define(args ...any) (any, error) {
	return rt.dispatcher.Define(args...)
}

// Require loads name relative to the main module.
func (rt *Runtime) Require(name string, cb module.Callback) (any, error) {
	return rt.registry.Require(nil, name, cb)
}

// Run calls delegate once every module in deps has loaded.
func (rt *Runtime) Run(deps []string, delegate func(require module.Require) error) error {
	return rt.registry.Run(deps, delegate)
}

// Module queues an anonymous module definition for the next delivered
// source that has no factory of its own.
func (rt *Runtime) Module(factory module.Factory, requires ...string) {
	rt.registry.DefineModule(factory, requires...)
}

// DefineNamed defines the module name from a factory.
func (rt *Runtime) DefineNamed(name string, factory module.Factory, requires ...string) error {
	if requires == nil {
		requires = []string{}
	}
	return rt.registry.DefineNamed(name, &module.Source{Requires: requires, Factory: factory})
}

// Wait drives asynchronous loading until no work remains. It returns
// immediately for a synchronous runtime.
func (rt *Runtime) Wait(ctx context.Context) error {
	if rt.loop == nil {
		return nil
	}
	return rt.loop.RunUntilIdle(ctx)
}

// Load requires entry, waits for loading to settle and reports modules
// that never loaded. The error wraps ErrPending when the graph stalled.
func (rt *Runtime) Load(ctx context.Context, entry string) (any, error) {
	var exports any
	_, err := rt.Require(entry, func(v any) error {
		exports = v
		return nil
	})
	if werr := rt.Wait(ctx); werr != nil {
		err = errors.Join(err, werr)
	}
	if err != nil {
		return nil, err
	}

	if stalled := rt.registry.Stalled(); len(stalled) > 0 {
		names := make([]string, len(stalled))
		for i, rec := range stalled {
			names[i] = rec.Name()
		}
		return nil, oerrors.Wrapf(oerrors.ErrPending, "modules never loaded: %s", strings.Join(names, ", "))
	}
	return exports, nil
}

// Class returns the class registered under a qualified id.
func (rt *Runtime) Class(qid string) (*oop.Class, bool) {
	return rt.table.Class(qid)
}

// Is reports whether value is an instance or subclass of kind.
func Is(value, kind any) bool {
	return oop.Is(value, kind)
}
