package oop

import (
	"fmt"
	"sync"

	oerrors "github.com/rotorz/capri/internal/errors"
)

// Object is an instance of a Class. Own fields shadow class members.
type Object struct {
	mu     sync.RWMutex
	class  *Class
	fields map[string]any
}

// Class returns the object's class.
func (o *Object) Class() *Class { return o.class }

// ClassName returns the leaf name of the object's class.
func (o *Object) ClassName() string { return o.class.name }

// FullClassName returns the qualified id of the object's class.
func (o *Object) FullClassName() string { return o.class.qid }

// Is reports whether the object's class is kind.
func (o *Object) Is(kind any) bool { return o.class.Is(kind) }

// Get reads a member: an own field first, then a class member, invoking
// accessor getters.
func (o *Object) Get(name string) (any, error) {
	o.mu.RLock()
	v, ok := o.fields[name]
	o.mu.RUnlock()
	if ok {
		return v, nil
	}

	m, ok := o.class.Member(name)
	if !ok {
		return nil, oerrors.Wrapf(oerrors.ErrNotFound, "member %q of %s", name, o.class.qid)
	}
	if acc, ok := m.(Accessor); ok {
		if acc.Get == nil {
			return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "property %q of %s has no getter", name, o.class.qid)
		}
		return acc.Get(o)
	}
	return m, nil
}

// Set writes a member through an accessor setter when the chain defines
// one, else stores an own field.
func (o *Object) Set(name string, value any) error {
	if m, ok := o.class.Member(name); ok {
		if acc, ok := m.(Accessor); ok {
			if acc.Set == nil {
				return oerrors.Wrapf(oerrors.ErrInvalidArgument, "property %q of %s has no setter", name, o.class.qid)
			}
			return acc.Set(o, value)
		}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields[name] = value
	return nil
}

// Field reads an own field without consulting the class.
func (o *Object) Field(name string) (any, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.fields[name]
	return v, ok
}

// Call invokes a method on the object.
func (o *Object) Call(name string, args ...any) (any, error) {
	v, err := o.Get(name)
	if err != nil {
		return nil, err
	}
	m, ok := asMethod(v)
	if !ok {
		return nil, oerrors.Wrapf(oerrors.ErrInvalidArgument, "member %q of %s is not a function", name, o.class.qid)
	}
	return m(o, args...)
}

// CallSuper invokes the implementation of name found above from in the
// chain. from is the class whose method is overriding.
func (o *Object) CallSuper(from *Class, name string, args ...any) (any, error) {
	if from == nil || from.super == nil {
		return nil, oerrors.Wrapf(oerrors.ErrNotFound, "super member %q of %s", name, o.class.qid)
	}
	if name == "__construct" {
		ctor := from.super.Constructor()
		if ctor == nil {
			return nil, nil
		}
		return ctor(o, args...)
	}
	m, ok := from.super.Method(name)
	if !ok {
		return nil, oerrors.Wrapf(oerrors.ErrNotFound, "super method %q of %s", name, from.qid)
	}
	return m(o, args...)
}

// String renders "[qid : superQid]".
func (o *Object) String() string {
	if o.class.super != nil {
		return fmt.Sprintf("[%s : %s]", o.class.qid, o.class.super.qid)
	}
	return fmt.Sprintf("[%s]", o.class.qid)
}

func asMethod(v any) (Method, bool) {
	m, ok := normalizeMember(v).(Method)
	return m, ok
}
