package oop

import (
	"fmt"
	"sync"

	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/namespace"
)

// Class is a class descriptor. Instance members are looked up by explicit
// delegation to the superclass; static members are copied, not delegated.
type Class struct {
	mu sync.RWMutex

	table    *Table
	name     string
	qid      string
	abstract bool
	super    *Class

	// subclasses holds qualified ids resolved through table.
	subclasses []string

	interfaces []*Interface
	construct  Method
	members    map[string]any
	static     map[string]any
}

// Name returns the leaf class name.
func (c *Class) Name() string { return c.name }

// FullName returns the qualified id.
func (c *Class) FullName() string { return c.qid }

// Namespace returns the dotted path enclosing the class.
func (c *Class) Namespace() string { return namespace.BaseName(c.qid) }

// ModuleName returns the defining module, or "".
func (c *Class) ModuleName() string { return namespace.ModuleName(c.qid) }

// IsAbstract reports whether the class cannot be instantiated.
func (c *Class) IsAbstract() bool { return c.abstract }

// Super returns the base class, or nil for the root class.
func (c *Class) Super() *Class { return c.super }

// SubClasses returns the classes currently extending c.
func (c *Class) SubClasses() []*Class {
	c.mu.RLock()
	ids := append([]string(nil), c.subclasses...)
	c.mu.RUnlock()

	out := make([]*Class, 0, len(ids))
	for _, id := range ids {
		sub, ok := c.table.Class(id)
		if ok && sub.super == c {
			out = append(out, sub)
		}
	}
	return out
}

func (c *Class) addSubclass(qid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.subclasses {
		if id == qid {
			return
		}
	}
	c.subclasses = append(c.subclasses, qid)
}

// Is reports an is-a relationship. kind may be a *Class, an *Interface or
// a qualified id.
func (c *Class) Is(kind any) bool {
	if id, ok := kind.(string); ok {
		v, found := c.table.Lookup(id)
		if !found {
			return false
		}
		kind = v
	}

	switch k := kind.(type) {
	case *Class:
		for t := c; t != nil; t = t.super {
			if t == k {
				return true
			}
		}
	case *Interface:
		for _, i := range c.interfaces {
			if i == k {
				return true
			}
		}
	}
	return false
}

// Interfaces returns the implemented interfaces, excluding generated
// abstract contracts.
func (c *Class) Interfaces() []*Interface {
	out := make([]*Interface, 0, len(c.interfaces))
	for _, i := range c.interfaces {
		if !i.contract {
			out = append(out, i)
		}
	}
	return out
}

// Add copies members onto the class. Static members are back-filled onto
// existing subclasses that do not define the same key.
func (c *Class) Add(body Body) {
	c.mu.Lock()
	for k, v := range body.Static {
		if isReserved(k) {
			continue
		}
		c.static[k] = normalizeStatic(v)
	}
	for k, v := range body.Members {
		if isReserved(k) {
			continue
		}
		c.members[k] = normalizeMember(v)
	}
	c.mu.Unlock()

	for _, k := range sortedKeys(body.Static) {
		if isReserved(k) {
			continue
		}
		v, _ := c.Static(k)
		c.backfill(k, v)
	}
}

func (c *Class) backfill(key string, value any) {
	for _, sub := range c.SubClasses() {
		sub.mu.Lock()
		if _, ok := sub.static[key]; !ok {
			sub.static[key] = value
		}
		sub.mu.Unlock()
		sub.backfill(key, value)
	}
}

// New constructs an instance, running the nearest constructor on the
// chain.
func (c *Class) New(args ...any) (*Object, error) {
	if c.abstract {
		return nil, oerrors.Wrapf(oerrors.ErrInstantiateAbstract, "cannot instantiate abstract class %q", c.qid)
	}
	obj := &Object{class: c, fields: map[string]any{}}
	if ctor := c.Constructor(); ctor != nil {
		if _, err := ctor(obj, args...); err != nil {
			return nil, fmt.Errorf("constructing %s: %w", c.qid, err)
		}
	}
	return obj, nil
}

// Constructor returns the nearest constructor on the chain, or nil.
func (c *Class) Constructor() Method {
	for t := c; t != nil; t = t.super {
		if t.construct != nil {
			return t.construct
		}
	}
	return nil
}

// Member returns an instance member, walking the superclass chain.
func (c *Class) Member(name string) (any, bool) {
	for t := c; t != nil; t = t.super {
		t.mu.RLock()
		v, ok := t.members[name]
		t.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Method returns the named method, walking the superclass chain.
func (c *Class) Method(name string) (Method, bool) {
	v, ok := c.Member(name)
	if !ok {
		return nil, false
	}
	m, ok := v.(Method)
	return m, ok
}

// Static returns a static member of the class.
func (c *Class) Static(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.static[name]
	return v, ok
}

// StaticKeys returns the sorted static member names.
func (c *Class) StaticKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.static)
}

// MemberKeys returns the sorted names of members defined directly on c.
func (c *Class) MemberKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.members)
}

// CallStatic invokes a static method bound to c.
func (c *Class) CallStatic(name string, args ...any) (any, error) {
	v, ok := c.Static(name)
	if !ok {
		return nil, oerrors.Wrapf(oerrors.ErrNotFound, "static member %q of %s", name, c.qid)
	}
	m, ok := v.(StaticMethod)
	if !ok {
		return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "static member %q of %s is not a function", name, c.qid)
	}
	return m(c, args...)
}

// String returns the qualified id.
func (c *Class) String() string { return c.qid }

// Chain returns c followed by its ancestors up to the root.
func (c *Class) Chain() []string {
	var ids []string
	for t := c; t != nil; t = t.super {
		ids = append(ids, t.qid)
	}
	return ids
}
