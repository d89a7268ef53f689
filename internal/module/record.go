package module

import (
	"strings"

	"github.com/rotorz/capri/internal/namespace"
)

// State is the load state of a module record.
type State int

const (
	// Pending means the module was requested but its source is not available.
	Pending State = iota
	// Loading means the source arrived and dependencies are being resolved.
	Loading
	// Loaded means the factory ran and the exports are final.
	Loaded
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Record tracks one module. Its fields are guarded by the owning
// registry's lock.
type Record struct {
	name       string
	moduleName string
	state      State
	exports    *namespace.Node
	value      any
	deps       []string
	callbacks  []Callback
	err        error
}

func newRecord(name, ext string) *Record {
	exports := namespace.New("exports")
	moduleName := name
	if ext != "" {
		moduleName = strings.TrimSuffix(name, ext)
	}
	return &Record{
		name:       name,
		moduleName: moduleName,
		exports:    exports,
		value:      exports,
	}
}

// Name returns the canonical module name.
func (r *Record) Name() string { return r.name }

// ModuleName returns the name used in qualified ids: the canonical name
// without the registry's default extension.
func (r *Record) ModuleName() string { return r.moduleName }

// Exports returns the exports container handed to the factory.
func (r *Record) Exports() *namespace.Node { return r.exports }

// Value returns what require yields: the factory's return value when it
// returned one, else the exports container.
func (r *Record) Value() any { return r.value }

// State returns the load state.
func (r *Record) State() State { return r.state }

// Deps returns the resolved dependency names.
func (r *Record) Deps() []string { return append([]string(nil), r.deps...) }

// Err returns the error that stopped the module from loading, if any.
func (r *Record) Err() error { return r.err }
