package oop

import (
	"fmt"

	"github.com/rotorz/capri/internal/define"
	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/namespace"
	"github.com/rotorz/capri/internal/output"
)

// DefineClass builds a class named name (optionally dotted) inside ns and
// registers it once it validates. ctx supplies the module scope; it may be
// nil for definitions outside any module.
func (t *Table) DefineClass(ctx *define.Context, ns *namespace.Node, name string, body Body) (*Class, error) {
	leaf, target, qid, err := t.placement(ctx, ns, name)
	if err != nil {
		return nil, err
	}

	base, err := t.resolveBase(ctx, body.Extends)
	if err != nil {
		return nil, err
	}

	c := &Class{
		table:    t,
		name:     leaf,
		qid:      qid,
		abstract: body.Abstract || body.Contract != nil,
		super:    base,
		members:  map[string]any{},
		static:   map[string]any{},
	}

	c.construct = body.Construct
	if c.construct == nil {
		if v, ok := body.Members["__construct"]; ok {
			m, ok := asMethod(v)
			if !ok {
				return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "__construct of %s must be a method, got %T", qid, v)
			}
			c.construct = m
		}
	}

	declared, err := t.resolveInterfaces(ctx, body.Implements)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", qid, err)
	}
	var contract *Interface
	if body.Contract != nil {
		extends, err := t.resolveInterfaces(ctx, body.Contract.Extends)
		if err != nil {
			return nil, fmt.Errorf("abstract contract of %s: %w", qid, err)
		}
		contract = newInterface(leaf+contractSuffix, qid+contractSuffix, *body.Contract, extends)
		contract.contract = true
		declared = append(declared, contract)
	}
	c.interfaces = gatherInterfaces(base.interfaces, declared)

	base.mu.RLock()
	for k, v := range base.static {
		if _, ok := v.(StaticMethod); ok {
			c.static[k] = v
		}
	}
	base.mu.RUnlock()

	c.Add(body)

	initFn := body.Init
	if initFn == nil {
		initFn, err = staticInit(qid, body.Static["__init"])
		if err != nil {
			return nil, err
		}
	}
	if initFn != nil {
		if err := initFn(c); err != nil {
			return nil, fmt.Errorf("initializing %s: %w", qid, err)
		}
	}

	if err := Validate(c); err != nil {
		return nil, err
	}

	target.Set(leaf, c)
	t.putClass(c)
	if contract != nil {
		t.putInterface(contract)
	}
	base.addSubclass(qid)

	output.Debug("defined class", "class", qid, "super", base.qid, "abstract", c.abstract, "interfaces", len(c.Interfaces()))
	return c, nil
}

// DefineInterface builds and registers an interface named name inside ns.
func (t *Table) DefineInterface(ctx *define.Context, ns *namespace.Node, name string, body InterfaceBody) (*Interface, error) {
	leaf, target, qid, err := t.placement(ctx, ns, name)
	if err != nil {
		return nil, err
	}

	extends, err := t.resolveInterfaces(ctx, body.Extends)
	if err != nil {
		return nil, fmt.Errorf("interface %s: %w", qid, err)
	}

	i := newInterface(leaf, qid, body, extends)
	target.Set(leaf, i)
	t.putInterface(i)

	output.Debug("defined interface", "interface", qid, "extends", len(extends))
	return i, nil
}

func (t *Table) placement(ctx *define.Context, ns *namespace.Node, name string) (string, *namespace.Node, string, error) {
	leaf := namespace.ID(name)
	if leaf == "" {
		return "", nil, "", oerrors.Wrapf(oerrors.ErrInvalidArgument, "invalid definition name %q", name)
	}
	if ns == nil {
		if ctx == nil || ctx.Root == nil {
			return "", nil, "", oerrors.Wrap(oerrors.ErrInvalidArgument, "no namespace to define into")
		}
		ns = ctx.Root
	}
	target, _ := ns.Resolve(namespace.BaseName(name), true)

	qid := name
	if ctx != nil {
		qid = ctx.Qualify(name)
	}
	return leaf, target, qid, nil
}

func (t *Table) resolveRef(ctx *define.Context, ref string) (any, bool) {
	if namespace.ModuleName(ref) != "" {
		return t.Lookup(ref)
	}
	if ctx != nil {
		if v, ok := ctx.Lookup(ref); ok {
			return v, true
		}
	}
	return t.Lookup(ref)
}

func (t *Table) resolveBase(ctx *define.Context, extends any) (*Class, error) {
	switch b := extends.(type) {
	case nil:
		return t.root, nil
	case *Class:
		if b == nil {
			return t.root, nil
		}
		return b, nil
	case string:
		if b == "" {
			return t.root, nil
		}
		v, ok := t.resolveRef(ctx, b)
		if c, isClass := v.(*Class); ok && isClass {
			return c, nil
		}
		return nil, oerrors.Wrapf(oerrors.ErrInvalidBaseClass, "cannot extend class from non-class %q (%s)", b, kindOf(v, ok))
	}
	return nil, oerrors.Wrapf(oerrors.ErrInvalidBaseClass, "cannot extend class from non-class %T", extends)
}

func (t *Table) resolveInterfaces(ctx *define.Context, implements any) ([]*Interface, error) {
	var refs []any
	switch v := implements.(type) {
	case nil:
		return nil, nil
	case []any:
		refs = v
	case []string:
		for _, s := range v {
			refs = append(refs, s)
		}
	case []*Interface:
		for _, i := range v {
			refs = append(refs, i)
		}
	default:
		refs = []any{v}
	}

	out := make([]*Interface, 0, len(refs))
	for _, ref := range refs {
		switch r := ref.(type) {
		case *Interface:
			if r == nil {
				return nil, oerrors.Wrap(oerrors.ErrMissingInterface, "interface <nil> was not defined")
			}
			out = append(out, r)
		case string:
			v, ok := t.resolveRef(ctx, r)
			i, isInterface := v.(*Interface)
			if !ok || !isInterface {
				return nil, oerrors.Wrapf(oerrors.ErrMissingInterface, "interface %q was not defined", r)
			}
			out = append(out, i)
		default:
			return nil, oerrors.Wrapf(oerrors.ErrMissingInterface, "interface %v was not defined", ref)
		}
	}
	return out, nil
}

// gatherInterfaces returns the inherited interfaces followed by each
// declared interface and everything it extends, without duplicates.
func gatherInterfaces(inherited, declared []*Interface) []*Interface {
	out := append([]*Interface(nil), inherited...)
	seen := make(map[*Interface]bool, len(out))
	for _, i := range out {
		seen[i] = true
	}
	for _, d := range declared {
		for _, i := range d.closure() {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	return out
}

func staticInit(qid string, v any) (func(*Class) error, error) {
	switch f := v.(type) {
	case nil:
		return nil, nil
	case func(*Class) error:
		return f, nil
	case StaticMethod:
		return func(c *Class) error { _, err := f(c); return err }, nil
	case func(*Class, ...any) (any, error):
		return func(c *Class) error { _, err := f(c); return err }, nil
	}
	return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "static __init of %s must be a function, got %T", qid, v)
}
