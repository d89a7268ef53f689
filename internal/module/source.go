package module

import (
	"github.com/rotorz/capri/internal/define"
	"github.com/rotorz/capri/internal/namespace"
)

// Require loads a module relative to the requiring module. It returns the
// exports when the module is already loaded; otherwise it returns nil and
// invokes cb once the module finishes loading.
type Require func(name string, cb Callback) (any, error)

// Callback receives a module's final exports.
type Callback func(exports any) error

// Factory is a module body. A non-nil return value replaces the exports.
type Factory func(require Require, define define.Definer, exports *namespace.Node) (any, error)

// Source is a module body delivered by a host.
type Source struct {
	// Name is the canonical module name. Optional for named definitions.
	Name string

	// Text is the textual form of the module, scanned for require calls
	// when Requires is nil.
	Text string

	// Requires is the explicit dependency list, relative to Name.
	Requires []string

	// Factory runs once every dependency is loaded. A source without a
	// factory takes the next anonymous definition queued by DefineModule.
	Factory Factory

	// Script, when set, runs as the source is delivered to the registry,
	// before the anonymous definition queue is consulted.
	Script func()
}

// Dependencies returns the explicit dependency list, or the result of
// scanning Text when none was declared.
func (s *Source) Dependencies() ([]string, error) {
	if s.Requires != nil || s.Text == "" {
		return s.Requires, nil
	}
	return ExtractRequires(s.Text)
}

// SyncHost acquires module sources synchronously.
type SyncHost interface {
	Fetch(name string) (*Source, error)
}

// AsyncHost acquires module sources in the background and hands them to
// deliver on the registry's loop.
type AsyncHost interface {
	FetchAsync(name string, deliver func(*Source, error) error)
}

// Compiler turns raw module file contents into a Source.
type Compiler interface {
	Compile(name string, data []byte) (*Source, error)
}

// CompilerFunc adapts a function to Compiler.
type CompilerFunc func(name string, data []byte) (*Source, error)

// Compile calls f.
func (f CompilerFunc) Compile(name string, data []byte) (*Source, error) {
	return f(name, data)
}

// ScriptCompiler yields inert sources whose dependencies come from scanning
// the script text. The factory does nothing; only the dependency graph is
// recovered.
type ScriptCompiler struct{}

// Compile implements Compiler.
func (ScriptCompiler) Compile(name string, data []byte) (*Source, error) {
	return &Source{
		Name: name,
		Text: string(data),
		Factory: func(Require, define.Definer, *namespace.Node) (any, error) {
			return nil, nil
		},
	}, nil
}
