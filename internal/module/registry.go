// Package module implements the module registry: records keyed by
// canonical name, dependency-first loading, factory execution under a
// restored current-module scope, and FIFO completion callbacks.
package module

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rotorz/capri/internal/define"
	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/output"
)

// DefaultExtension is appended to module references without one.
const DefaultExtension = ".js"

// Option configures a Registry.
type Option func(*Registry)

// WithExtension sets the default extension. "" disables appending.
func WithExtension(ext string) Option {
	return func(r *Registry) { r.ext = ext }
}

// WithHost acquires unknown modules synchronously from h.
func WithHost(h SyncHost) Option {
	return func(r *Registry) { r.syncHost, r.asyncHost = h, nil }
}

// WithAsyncHost acquires unknown modules in the background through h.
func WithAsyncHost(h AsyncHost) Option {
	return func(r *Registry) { r.asyncHost, r.syncHost = h, nil }
}

type anonymous struct {
	factory  Factory
	requires []string
}

// Registry tracks module records. Factories run on the caller's goroutine,
// or on the loop goroutine with an asynchronous host.
type Registry struct {
	mu        sync.Mutex
	definer   define.Definer
	ext       string
	syncHost  SyncHost
	asyncHost AsyncHost
	records   map[string]*Record
	order     []string
	current   *Record
	main      *Record
	anonymous []anonymous
}

// New creates a registry handing d to module factories. When d is a
// *define.Dispatcher its scope follows the executing module.
func New(d define.Definer, opts ...Option) *Registry {
	r := &Registry{
		definer: d,
		ext:     DefaultExtension,
		records: map[string]*Record{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.main = newRecord("", r.ext)
	r.main.state = Loaded

	if disp, ok := d.(*define.Dispatcher); ok {
		disp.SetScope(func() define.Scope {
			if cur := r.Current(); cur != nil {
				return cur
			}
			return nil
		})
	}
	return r
}

// Extension returns the default extension.
func (r *Registry) Extension() string { return r.ext }

// Main returns the top-level record that relative references from
// application code resolve against.
func (r *Registry) Main() *Record { return r.main }

// Current returns the record whose factory is executing, or nil.
func (r *Registry) Current() *Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// enter makes rec the current module and returns the restore function.
func (r *Registry) enter(rec *Record) func() {
	r.mu.Lock()
	prior := r.current
	r.current = rec
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.current = prior
		r.mu.Unlock()
	}
}

// Require resolves name relative to from (the main record when nil). A
// loaded module's exports are returned and cb runs immediately. Otherwise
// cb is queued, acquisition starts for an unseen module, and the result is
// nil until the module loads.
func (r *Registry) Require(from *Record, name string, cb Callback) (any, error) {
	if from == nil {
		from = r.main
	}
	name = Resolve(name, from.name, r.ext)

	r.mu.Lock()
	rec, seen := r.records[name]
	if seen && rec.state == Loaded {
		value := rec.value
		r.mu.Unlock()
		if cb != nil {
			return value, cb(value)
		}
		return value, nil
	}
	if !seen {
		rec = newRecord(name, r.ext)
		r.records[name] = rec
	}
	if cb != nil {
		rec.callbacks = append(rec.callbacks, cb)
	}
	r.mu.Unlock()

	if seen {
		return nil, nil
	}
	output.Debug("requiring module", "name", name, "from", from.name)
	return r.acquire(rec)
}

func (r *Registry) acquire(rec *Record) (any, error) {
	switch {
	case r.asyncHost != nil:
		r.asyncHost.FetchAsync(rec.name, func(src *Source, err error) error {
			if err != nil {
				return r.fail(rec, err)
			}
			return r.Load(rec, src)
		})
		return nil, nil

	case r.syncHost != nil:
		src, err := r.syncHost.Fetch(rec.name)
		if err != nil {
			return nil, r.fail(rec, err)
		}
		if err := r.Load(rec, src); err != nil {
			return nil, err
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if rec.state == Loaded {
			return rec.value, nil
		}
		return nil, nil
	}

	return nil, r.fail(rec, oerrors.NewNotFoundError(
		fmt.Sprintf("module %q is not defined and no host is configured", rec.name), rec.name, ""))
}

func (r *Registry) fail(rec *Record, err error) error {
	r.mu.Lock()
	rec.err = err
	r.mu.Unlock()
	return fmt.Errorf("loading module %q: %w", rec.name, err)
}

// Load delivers a module's source, resolves its dependencies and runs its
// factory once they are all loaded.
func (r *Registry) Load(rec *Record, src *Source) error {
	if src.Script != nil {
		src.Script()
	}

	r.mu.Lock()
	if rec.state == Loaded {
		r.mu.Unlock()
		return oerrors.Wrapf(oerrors.ErrAlreadyLoaded, "module %q already loaded", rec.name)
	}
	if src.Factory == nil && len(r.anonymous) > 0 {
		next := r.anonymous[0]
		r.anonymous = r.anonymous[1:]
		src.Factory = next.factory
		if src.Requires == nil {
			src.Requires = next.requires
		}
	}
	rec.state = Loading
	rec.err = nil
	r.mu.Unlock()

	if src.Factory == nil {
		return r.fail(rec, oerrors.Wrap(oerrors.ErrNotFound, "source defines no module factory"))
	}

	deps, err := src.Dependencies()
	if err != nil {
		return r.fail(rec, err)
	}
	resolved := make([]string, len(deps))
	for i, d := range deps {
		resolved[i] = Resolve(d, rec.name, r.ext)
	}
	r.mu.Lock()
	rec.deps = resolved
	r.mu.Unlock()

	factory := src.Factory
	if len(resolved) == 0 {
		return r.execute(rec, factory)
	}

	remaining := len(resolved)
	var errs []error
	for _, dep := range resolved {
		_, err := r.Require(rec, dep, func(any) error {
			remaining--
			if remaining == 0 {
				return r.execute(rec, factory)
			}
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) execute(rec *Record, factory Factory) error {
	restore := r.enter(rec)
	defer restore()

	log := output.ModuleLogger(rec.moduleName)
	require := func(name string, cb Callback) (any, error) {
		return r.Require(rec, name, cb)
	}

	v, err := factory(require, r.definer, rec.exports)
	if err != nil {
		r.mu.Lock()
		rec.err = err
		r.mu.Unlock()
		return fmt.Errorf("executing module %q: %w", rec.name, err)
	}

	r.mu.Lock()
	if v != nil {
		rec.value = v
	}
	rec.state = Loaded
	callbacks := rec.callbacks
	rec.callbacks = nil
	r.order = append(r.order, rec.name)
	value := rec.value
	r.mu.Unlock()

	log.Debug("loaded module", "deps", len(rec.deps), "callbacks", len(callbacks))

	var errs []error
	for _, cb := range callbacks {
		if err := cb(value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DefineModule queues an anonymous module definition. It is taken by the
// next delivered source that carries no factory.
func (r *Registry) DefineModule(factory Factory, requires ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if requires == nil {
		requires = []string{}
	}
	r.anonymous = append(r.anonymous, anonymous{factory: factory, requires: requires})
}

// DefineNamed loads src as the module name, resolved relative to the main
// record. Several named modules may be defined from one place.
func (r *Registry) DefineNamed(name string, src *Source) error {
	name = Resolve(name, r.main.name, r.ext)

	r.mu.Lock()
	rec, ok := r.records[name]
	if !ok {
		rec = newRecord(name, r.ext)
		r.records[name] = rec
	}
	r.mu.Unlock()

	src.Name = name
	return r.Load(rec, src)
}

// Run requires deps from the main record and calls delegate with the main
// require once all of them are loaded.
func (r *Registry) Run(deps []string, delegate func(require Require) error) error {
	require := func(name string, cb Callback) (any, error) {
		return r.Require(r.main, name, cb)
	}
	if len(deps) == 0 {
		return delegate(require)
	}

	remaining := len(deps)
	var errs []error
	for _, dep := range deps {
		_, err := r.Require(r.main, dep, func(any) error {
			remaining--
			if remaining == 0 {
				return delegate(require)
			}
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the record for a module reference.
func (r *Registry) Lookup(name string) (*Record, bool) {
	name = Resolve(name, r.main.name, r.ext)
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[name]
	return rec, ok
}

// Records returns every record sorted by name.
func (r *Registry) Records() []*Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Order returns module names in the order their factories completed.
func (r *Registry) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Stalled returns the records that never reached Loaded.
func (r *Registry) Stalled() []*Record {
	var out []*Record
	for _, rec := range r.Records() {
		if rec.State() != Loaded {
			out = append(out, rec)
		}
	}
	return out
}
