// Package namespace implements the dotted-path container tree that classes,
// interfaces and module exports are published into.
package namespace

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"dario.cat/mergo"

	oerrors "github.com/rotorz/capri/internal/errors"
)

// Node is a named container holding members and child namespaces.
type Node struct {
	mu       sync.RWMutex
	name     string
	parent   *Node
	children map[string]*Node
	members  map[string]any
}

// New creates a detached root node. The global namespace and every module's
// exports container are roots.
func New(name string) *Node {
	return &Node{
		name:     name,
		children: map[string]*Node{},
		members:  map[string]any{},
	}
}

// Name returns the node's own segment name.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Path returns the dotted path of n below its root. Roots return "".
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Resolve walks a dotted path below n. With create set, missing segments are
// created; otherwise an absent segment yields (nil, false). An empty path
// resolves to n itself.
func (n *Node) Resolve(path string, create bool) (*Node, bool) {
	if path == "" {
		return n, true
	}
	node := n
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}
		next := node.child(seg, create)
		if next == nil {
			return nil, false
		}
		node = next
	}
	return node, true
}

func (n *Node) child(name string, create bool) *Node {
	n.mu.RLock()
	c, ok := n.children[name]
	n.mu.RUnlock()
	if ok || !create {
		return c
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if c, ok := n.children[name]; ok {
		return c
	}
	c = New(name)
	c.parent = n
	n.children[name] = c
	return c
}

// Lookup resolves a dotted reference to a member. "a.b.C" finds member C of
// node a.b; when no such member exists the child node a.b.C is returned.
func (n *Node) Lookup(path string) (any, bool) {
	if path == "" {
		return n, true
	}
	parent, leaf := BaseName(path), ID(path)
	node, ok := n.Resolve(parent, false)
	if !ok {
		return nil, false
	}
	if v, ok := node.Get(leaf); ok {
		return v, true
	}
	if c := node.child(leaf, false); c != nil {
		return c, true
	}
	return nil, false
}

// Get returns a member stored directly on n.
func (n *Node) Get(key string) (any, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.members[key]
	return v, ok
}

// Set stores a member directly on n.
func (n *Node) Set(key string, value any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.members[key] = value
}

// Delete removes a member from n.
func (n *Node) Delete(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.members, key)
}

// Members returns a snapshot of the members stored on n.
func (n *Node) Members() map[string]any {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]any, len(n.members))
	for k, v := range n.members {
		out[k] = v
	}
	return out
}

// Keys returns the sorted member names of n.
func (n *Node) Keys() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	keys := make([]string, 0, len(n.members))
	for k := range n.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Children returns the child nodes of n sorted by name.
func (n *Node) Children() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Walk visits every member below n depth-first, passing the dotted path of
// each member relative to n.
func (n *Node) Walk(fn func(path string, value any)) {
	n.walk("", fn)
}

func (n *Node) walk(prefix string, fn func(string, any)) {
	for _, k := range n.Keys() {
		v, _ := n.Get(k)
		fn(join(prefix, k), v)
	}
	for _, c := range n.Children() {
		c.walk(join(prefix, c.name), fn)
	}
}

// Extend shallow-merges members into n. Existing members are only replaced
// when overwrite is set.
func (n *Node) Extend(members map[string]any, overwrite bool) error {
	if members == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	// Members are replaced whole, never merged field by field, so replaced
	// keys are dropped from the destination before merging.
	overlay := make(map[string]any, len(members))
	merged := make(map[string]any, len(n.members)+len(members))
	for k, v := range n.members {
		merged[k] = v
	}
	for k, v := range members {
		if _, exists := merged[k]; exists && !overwrite {
			continue
		}
		delete(merged, k)
		overlay[k] = v
	}
	if err := mergo.Merge(&merged, overlay); err != nil {
		return fmt.Errorf("extending namespace %q: %w: %w", n.Path(), oerrors.ErrInvalidArgument, err)
	}
	for k, v := range overlay {
		// mergo skips nil sources
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	n.members = merged
	return nil
}

// String returns the node's dotted path, or "<root>" for a root node.
func (n *Node) String() string {
	if p := n.Path(); p != "" {
		return p
	}
	if n.name != "" {
		return n.name
	}
	return "<root>"
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
