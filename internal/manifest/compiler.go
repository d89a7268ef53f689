package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotorz/capri/internal/define"
	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/module"
	"github.com/rotorz/capri/internal/namespace"
	"github.com/rotorz/capri/internal/oop"
)

// Compiler turns manifest files into module sources. It implements
// module.Compiler.
type Compiler struct {
	loader  *Loader
	natives *Natives
}

// NewCompiler creates a compiler binding native references through natives.
// A nil natives stubs every reference.
func NewCompiler(loader *Loader, natives *Natives) *Compiler {
	if natives == nil {
		natives = NewNatives()
	}
	return &Compiler{loader: loader, natives: natives}
}

// Natives returns the binding table.
func (c *Compiler) Natives() *Natives { return c.natives }

// RegisterWith registers the compiler on h for every manifest extension.
func (c *Compiler) RegisterWith(h *module.FSHost) {
	for _, ext := range Extensions {
		h.Register(ext, c)
	}
}

// Compile implements module.Compiler.
func (c *Compiler) Compile(name string, data []byte) (*module.Source, error) {
	m, err := c.loader.Parse(name, data)
	if err != nil {
		return nil, err
	}
	return c.Source(name, m), nil
}

// Source builds the module source for an already parsed manifest. Its
// dependency list is the manifest's requires, ordered by alias.
func (c *Compiler) Source(name string, m *Manifest) *module.Source {
	aliases := make([]string, 0, len(m.Requires))
	for alias := range m.Requires {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	requires := make([]string, len(aliases))
	for i, alias := range aliases {
		requires[i] = m.Requires[alias]
	}

	return &module.Source{
		Name:     name,
		Requires: requires,
		Factory:  c.factory(name, m, aliases),
	}
}

func (c *Compiler) factory(name string, m *Manifest, aliases []string) module.Factory {
	return func(require module.Require, d define.Definer, _ *namespace.Node) (any, error) {
		if d == nil {
			return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "manifest %q needs a definer", name)
		}

		b := &binder{natives: c.natives, deps: make(map[string]any, len(aliases))}
		for _, alias := range aliases {
			v, err := require(m.Requires[alias], nil)
			if err != nil {
				return nil, fmt.Errorf("requiring %s (%s): %w", alias, m.Requires[alias], err)
			}
			b.deps[alias] = v
		}

		var exported any
		for i, def := range m.Define {
			body, err := b.body(def)
			if err != nil {
				return nil, fmt.Errorf("define[%d] %s: %w", i, def.Kind, err)
			}

			var ns any
			if def.Namespace != "" {
				ns = def.Namespace
			}
			v, err := d.Define(ns, def.Kind, body)
			if err != nil {
				return nil, err
			}
			if m.Exports != "" && def.Name() == m.Exports {
				exported = v
			}
		}

		if m.Exports != "" && exported == nil {
			return nil, oerrors.NewNotFoundError(
				fmt.Sprintf("exported definition %q is not defined", m.Exports),
				name,
				"exports must name one of the define entries",
			)
		}
		return exported, nil
	}
}

// binder converts manifest bodies into oop bodies.
type binder struct {
	natives *Natives
	deps    map[string]any
}

func (b *binder) body(def Definition) (any, error) {
	if def.IsInterface() {
		return b.interfaceBody(def.Body.Extends, def.Body.Members, def.Body.Static), nil
	}

	body := oop.Body{
		Extends:    b.ref(def.Body.Extends),
		Implements: b.refs(def.Body.Implements),
		Members:    make(map[string]any, len(def.Body.Members)),
		Static:     make(map[string]any, len(def.Body.Static)),
	}

	switch a := def.Body.Abstract.(type) {
	case nil:
	case bool:
		body.Abstract = a
	case map[string]any:
		members, _ := a["members"].(map[string]any)
		static, _ := a["static"].(map[string]any)
		contract := b.interfaceBody(a["extends"], members, static)
		body.Contract = &contract
	default:
		return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "abstract must be a bool or contract, got %T", a)
	}

	for key, v := range def.Body.Members {
		body.Members[key] = b.member(v)
	}
	for key, v := range def.Body.Static {
		body.Static[key] = b.staticMember(v)
	}
	return body, nil
}

func (b *binder) interfaceBody(extends any, members, static map[string]any) oop.InterfaceBody {
	ib := oop.InterfaceBody{
		Extends: b.refs(extends),
		Members: make(map[string]string, len(members)),
	}
	for k, v := range members {
		ib.Members[k] = fmt.Sprint(v)
	}
	if len(static) > 0 {
		ib.Static = make(map[string]string, len(static))
		for k, v := range static {
			ib.Static[k] = fmt.Sprint(v)
		}
	}
	return ib
}

// ref resolves "alias" and "alias#dotted.path" against the required
// modules. Anything else is returned as written for the class builder to
// look up.
func (b *binder) ref(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	alias, path, hasPath := strings.Cut(s, "#")
	dep, ok := b.deps[alias]
	if !ok {
		return s
	}
	if !hasPath {
		return dep
	}
	if node, ok := dep.(*namespace.Node); ok {
		if member, ok := node.Lookup(path); ok {
			return member
		}
	}
	return s
}

func (b *binder) refs(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(t))
		for i, r := range t {
			out[i] = b.ref(r)
		}
		return out
	}
	return b.ref(v)
}

func (b *binder) member(v any) any {
	spec, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if ref, ok := spec["native"].(string); ok {
		return b.natives.method(ref)
	}
	get, hasGet := spec["get"].(string)
	set, hasSet := spec["set"].(string)
	if !hasGet && !hasSet {
		return v
	}
	var acc oop.Accessor
	if hasGet {
		acc.Get = b.natives.getter(get)
	}
	if hasSet {
		acc.Set = b.natives.setter(set)
	}
	return acc
}

func (b *binder) staticMember(v any) any {
	spec, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if ref, ok := spec["native"].(string); ok {
		return b.natives.static(ref)
	}
	get, hasGet := spec["get"].(string)
	set, hasSet := spec["set"].(string)
	if !hasGet && !hasSet {
		return v
	}
	var acc oop.StaticAccessor
	if hasGet {
		acc.Get = b.natives.staticGetter(get)
	}
	if hasSet {
		acc.Set = b.natives.staticSetter(set)
	}
	return acc
}
