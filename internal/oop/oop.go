// Package oop builds classes and interfaces on top of the definition
// dispatcher: single inheritance through explicit superclass delegation,
// transitive interface closure, structural interface validation and static
// member propagation.
package oop

import (
	"github.com/rotorz/capri/internal/define"
	"github.com/rotorz/capri/internal/namespace"
)

// Install registers the "class" and "interface" kinds on d, recording
// descriptors in t.
func Install(d *define.Dispatcher, t *Table) {
	d.Register("class", func(ctx *define.Context, ns *namespace.Node, name string, body any) (any, error) {
		b, err := asBody(body)
		if err != nil {
			return nil, err
		}
		return t.DefineClass(ctx, ns, name, b)
	})
	d.Register("interface", func(ctx *define.Context, ns *namespace.Node, name string, body any) (any, error) {
		b, err := asInterfaceBody(body)
		if err != nil {
			return nil, err
		}
		return t.DefineInterface(ctx, ns, name, b)
	})
}

// Is reports whether value is an object of kind. kind may be a *Class, an
// *Interface or a qualified id.
func Is(value, kind any) bool {
	switch v := value.(type) {
	case *Object:
		return v != nil && v.Is(kind)
	case *Class:
		return v != nil && v.Is(kind)
	}
	return false
}
