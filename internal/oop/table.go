package oop

import (
	"sort"
	"sync"
)

// RootID is the qualified id of the implicit root class.
const RootID = "capri.Object"

// Table holds class and interface descriptors keyed by qualified id.
type Table struct {
	mu         sync.RWMutex
	root       *Class
	classes    map[string]*Class
	interfaces map[string]*Interface
}

// NewTable creates a table holding only the root class.
func NewTable() *Table {
	t := &Table{
		classes:    map[string]*Class{},
		interfaces: map[string]*Interface{},
	}
	t.root = &Class{
		table:    t,
		name:     "Object",
		qid:      RootID,
		abstract: true,
		members:  rootMembers(),
		static:   map[string]any{},
	}
	t.classes[RootID] = t.root
	return t
}

func rootMembers() map[string]any {
	return map[string]any{
		"getClass": Method(func(this *Object, _ ...any) (any, error) {
			return this.Class(), nil
		}),
		"getClassName": Method(func(this *Object, _ ...any) (any, error) {
			return this.ClassName(), nil
		}),
		"getFullClassName": Method(func(this *Object, _ ...any) (any, error) {
			return this.FullClassName(), nil
		}),
		"toString": Method(func(this *Object, _ ...any) (any, error) {
			return this.String(), nil
		}),
	}
}

// Root returns the implicit abstract root class.
func (t *Table) Root() *Class {
	return t.root
}

// Class returns the class registered under qid.
func (t *Table) Class(qid string) (*Class, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.classes[qid]
	return c, ok
}

// Interface returns the interface registered under qid.
func (t *Table) Interface(qid string) (*Interface, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i, ok := t.interfaces[qid]
	return i, ok
}

// Lookup returns the class or interface registered under qid.
func (t *Table) Lookup(qid string) (any, bool) {
	if c, ok := t.Class(qid); ok {
		return c, true
	}
	if i, ok := t.Interface(qid); ok {
		return i, true
	}
	return nil, false
}

// Classes returns all classes sorted by qualified id, the root included.
func (t *Table) Classes() []*Class {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Class, 0, len(t.classes))
	for _, id := range sortedKeys(t.classes) {
		out = append(out, t.classes[id])
	}
	return out
}

// Interfaces returns all interfaces sorted by qualified id. Generated
// abstract contracts are included.
func (t *Table) Interfaces() []*Interface {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Interface, 0, len(t.interfaces))
	for _, id := range sortedKeys(t.interfaces) {
		out = append(out, t.interfaces[id])
	}
	return out
}

// IDs returns every registered qualified id, sorted.
func (t *Table) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.classes)+len(t.interfaces))
	for id := range t.classes {
		ids = append(ids, id)
	}
	for id := range t.interfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (t *Table) putClass(c *Class) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.classes[c.qid] = c
}

func (t *Table) putInterface(i *Interface) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interfaces[i.qid] = i
}
