package manifest

import (
	"sort"
	"sync"

	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/oop"
	"github.com/rotorz/capri/internal/output"
)

// Natives binds the native references named in manifests to Go functions.
// A reference with no binding resolves to a stub that fails with
// ErrNotImplemented when called.
type Natives struct {
	mu            sync.RWMutex
	methods       map[string]oop.Method
	statics       map[string]oop.StaticMethod
	getters       map[string]oop.Getter
	setters       map[string]oop.Setter
	staticGetters map[string]oop.StaticGetter
	staticSetters map[string]oop.StaticSetter
	unbound       map[string]bool
}

// NewNatives creates an empty binding table.
func NewNatives() *Natives {
	return &Natives{
		methods:       map[string]oop.Method{},
		statics:       map[string]oop.StaticMethod{},
		getters:       map[string]oop.Getter{},
		setters:       map[string]oop.Setter{},
		staticGetters: map[string]oop.StaticGetter{},
		staticSetters: map[string]oop.StaticSetter{},
		unbound:       map[string]bool{},
	}
}

// BindMethod binds an instance method.
func (n *Natives) BindMethod(ref string, fn oop.Method) *Natives {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.methods[ref] = fn
	return n
}

// BindStatic binds a static method.
func (n *Natives) BindStatic(ref string, fn oop.StaticMethod) *Natives {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statics[ref] = fn
	return n
}

// BindGetter binds an instance property getter.
func (n *Natives) BindGetter(ref string, fn oop.Getter) *Natives {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.getters[ref] = fn
	return n
}

// BindSetter binds an instance property setter.
func (n *Natives) BindSetter(ref string, fn oop.Setter) *Natives {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.setters[ref] = fn
	return n
}

// BindStaticGetter binds a static property getter.
func (n *Natives) BindStaticGetter(ref string, fn oop.StaticGetter) *Natives {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.staticGetters[ref] = fn
	return n
}

// BindStaticSetter binds a static property setter.
func (n *Natives) BindStaticSetter(ref string, fn oop.StaticSetter) *Natives {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.staticSetters[ref] = fn
	return n
}

// Unbound returns the references that were requested but never bound.
func (n *Natives) Unbound() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0, len(n.unbound))
	for ref := range n.unbound {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

func (n *Natives) miss(ref string) error {
	n.mu.Lock()
	n.unbound[ref] = true
	n.mu.Unlock()
	output.Debug("native reference is not bound", "ref", ref)
	return oerrors.Wrapf(oerrors.ErrNotImplemented, "native %q is not bound", ref)
}

func (n *Natives) method(ref string) oop.Method {
	n.mu.RLock()
	fn, ok := n.methods[ref]
	n.mu.RUnlock()
	if ok {
		return fn
	}
	err := n.miss(ref)
	return func(*oop.Object, ...any) (any, error) { return nil, err }
}

func (n *Natives) static(ref string) oop.StaticMethod {
	n.mu.RLock()
	fn, ok := n.statics[ref]
	n.mu.RUnlock()
	if ok {
		return fn
	}
	err := n.miss(ref)
	return func(*oop.Class, ...any) (any, error) { return nil, err }
}

func (n *Natives) getter(ref string) oop.Getter {
	n.mu.RLock()
	fn, ok := n.getters[ref]
	n.mu.RUnlock()
	if ok {
		return fn
	}
	err := n.miss(ref)
	return func(*oop.Object) (any, error) { return nil, err }
}

func (n *Natives) setter(ref string) oop.Setter {
	n.mu.RLock()
	fn, ok := n.setters[ref]
	n.mu.RUnlock()
	if ok {
		return fn
	}
	err := n.miss(ref)
	return func(*oop.Object, any) error { return err }
}

func (n *Natives) staticGetter(ref string) oop.StaticGetter {
	n.mu.RLock()
	fn, ok := n.staticGetters[ref]
	n.mu.RUnlock()
	if ok {
		return fn
	}
	err := n.miss(ref)
	return func(*oop.Class) (any, error) { return nil, err }
}

func (n *Natives) staticSetter(ref string) oop.StaticSetter {
	n.mu.RLock()
	fn, ok := n.staticSetters[ref]
	n.mu.RUnlock()
	if ok {
		return fn
	}
	err := n.miss(ref)
	return func(*oop.Class, any) error { return err }
}
