// Package define routes definition requests ("class Car", "interface IFoo")
// to pluggable handlers keyed by kind.
package define

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/namespace"
	"github.com/rotorz/capri/internal/output"
)

// Handler builds a definition of one kind. ns is the target namespace and
// name the definition's leaf name.
type Handler func(ctx *Context, ns *namespace.Node, name string, body any) (any, error)

// Definer is the definition entry point handed to module factories.
type Definer interface {
	Define(args ...any) (any, error)
}

// Scope exposes the module whose factory is currently executing.
type Scope interface {
	ModuleName() string
	Exports() *namespace.Node
}

// Context carries the module scope active when a definition is made.
type Context struct {
	// Module is the executing module's name, or "" outside any module.
	Module string

	// Exports is the executing module's exports container, or nil.
	Exports *namespace.Node

	// Root is the global namespace.
	Root *namespace.Node

	// Dispatcher is the dispatcher that invoked the handler.
	Dispatcher *Dispatcher
}

// Qualify returns the qualified id of path within the context's module.
func (c *Context) Qualify(path string) string {
	return namespace.Qualify(c.Module, path)
}

// Lookup resolves a dotted reference, first in the module's exports and then
// in the global namespace.
func (c *Context) Lookup(ref string) (any, bool) {
	if c.Exports != nil {
		if v, ok := c.Exports.Lookup(ref); ok {
			return v, true
		}
	}
	if c.Root != nil {
		return c.Root.Lookup(ref)
	}
	return nil, false
}

// Dispatcher maps definition kinds to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	root     *namespace.Node
	handlers map[string]Handler
	scope    func() Scope
}

// New creates a dispatcher publishing into root by default.
func New(root *namespace.Node) *Dispatcher {
	return &Dispatcher{
		root:     root,
		handlers: map[string]Handler{},
	}
}

// Root returns the global namespace.
func (d *Dispatcher) Root() *namespace.Node {
	return d.root
}

// Register associates a handler with a kind. The last registration wins.
func (d *Dispatcher) Register(kind string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = h
	output.Debug("registered definition kind", "kind", kind)
}

// Kinds returns the registered kinds, sorted.
func (d *Dispatcher) Kinds() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	kinds := make([]string, 0, len(d.handlers))
	for k := range d.handlers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// SetScope installs the source of the current module scope.
func (d *Dispatcher) SetScope(fn func() Scope) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scope = fn
}

// Context returns the definition context for the current module scope.
func (d *Dispatcher) Context() *Context {
	d.mu.RLock()
	scopeFn := d.scope
	d.mu.RUnlock()

	ctx := &Context{Root: d.root, Dispatcher: d}
	if scopeFn == nil {
		return ctx
	}
	if s := scopeFn(); s != nil {
		ctx.Module = s.ModuleName()
		ctx.Exports = s.Exports()
	}
	return ctx
}

// Define accepts (ns, "kind Name", body) or ("kind Name", body). ns may be a
// dotted path created under the global namespace, a *namespace.Node, or nil
// for the default: the executing module's exports, else the global
// namespace.
func (d *Dispatcher) Define(args ...any) (any, error) {
	var nsArg, kindArg, body any
	switch len(args) {
	case 3:
		nsArg, kindArg, body = args[0], args[1], args[2]
	case 2:
		kindArg, body = args[0], args[1]
	case 1:
		kindArg = args[0]
	default:
		return nil, oerrors.Wrap(oerrors.ErrInvalidArgument, "expected definition string")
	}

	spec, ok := kindArg.(string)
	if !ok {
		return nil, oerrors.Wrap(oerrors.ErrInvalidArgument, "expected definition string")
	}
	if body == nil {
		return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "missing body of definition %q", spec)
	}

	// Tokens after the name are ignored.
	fields := strings.Fields(spec)
	if len(fields) < 2 {
		return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "definition string %q must be \"kind Name\"", spec)
	}
	kind, name := fields[0], fields[1]

	d.mu.RLock()
	h, ok := d.handlers[kind]
	d.mu.RUnlock()
	if !ok {
		return nil, oerrors.Wrapf(oerrors.ErrUnknownDefinitionKind, "unknown definition type %q", kind)
	}

	ctx := d.Context()
	ns, err := d.target(ctx, nsArg)
	if err != nil {
		return nil, err
	}

	output.Debug("defining", "kind", kind, "name", name, "module", ctx.Module, "namespace", ns.String())
	return h(ctx, ns, name, body)
}

func (d *Dispatcher) target(ctx *Context, nsArg any) (*namespace.Node, error) {
	switch ns := nsArg.(type) {
	case nil:
	case string:
		if ns != "" {
			node, _ := d.root.Resolve(ns, true)
			return node, nil
		}
	case *namespace.Node:
		if ns != nil {
			return ns, nil
		}
	default:
		return nil, oerrors.Wrap(oerrors.ErrInvalidArgument, fmt.Sprintf("namespace must be a path or node, got %T", nsArg))
	}
	if ctx.Exports != nil {
		return ctx.Exports, nil
	}
	return d.root, nil
}
