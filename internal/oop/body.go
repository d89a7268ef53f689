package oop

import (
	"fmt"
	"strings"

	oerrors "github.com/rotorz/capri/internal/errors"
)

// Body describes a class definition.
type Body struct {
	// Abstract marks the class as not instantiable.
	Abstract bool

	// Contract, when set, makes the class abstract and generates an interface
	// its concrete subclasses must satisfy.
	Contract *InterfaceBody

	// Extends is the base class: a *Class or a dotted / qualified reference.
	// nil extends the root class.
	Extends any

	// Implements is an interface reference or a list of them.
	Implements any

	// Construct is the constructor. When nil, Members["__construct"] is used.
	Construct Method

	// Members are instance members: methods, accessors or plain values.
	Members map[string]any

	// Static are class members copied forward onto existing subclasses.
	Static map[string]any

	// Init runs once, bound to the new class, after members are applied.
	// When nil, Static["__init"] is used.
	Init func(c *Class) error
}

// InterfaceBody describes an interface definition. Member tags are
// "function", "get", "set" or "get set"; any other tag only requires the
// member to be present.
type InterfaceBody struct {
	Extends any
	Members map[string]string
	Static  map[string]string
}

var reservedKeys = map[string]bool{
	"abstract":   true,
	"extends":    true,
	"implements": true,
	"static":     true,
}

func isReserved(key string) bool {
	return reservedKeys[key] || strings.HasPrefix(key, "__")
}

// asBody accepts a Body, *Body or a loosely-typed map with the keys
// abstract, extends, implements, static and member names.
func asBody(v any) (Body, error) {
	switch b := v.(type) {
	case Body:
		return b, nil
	case *Body:
		if b == nil {
			return Body{}, oerrors.Wrap(oerrors.ErrInvalidArgument, "missing body of class")
		}
		return *b, nil
	case map[string]any:
		return bodyFromMap(b)
	}
	return Body{}, oerrors.Wrapf(oerrors.ErrInvalidArgument, "class body must be a Body or map, got %T", v)
}

func bodyFromMap(m map[string]any) (Body, error) {
	body := Body{
		Extends:    m["extends"],
		Implements: m["implements"],
		Members:    map[string]any{},
	}

	switch a := m["abstract"].(type) {
	case nil:
	case bool:
		body.Abstract = a
	case InterfaceBody:
		body.Contract = &a
	case *InterfaceBody:
		body.Contract = a
	case map[string]any:
		contract, err := interfaceBodyFromMap(a)
		if err != nil {
			return Body{}, fmt.Errorf("abstract contract: %w", err)
		}
		body.Contract = &contract
	default:
		return Body{}, oerrors.Wrapf(oerrors.ErrInvalidArgument, "abstract must be a bool or contract, got %T", a)
	}

	if s, ok := m["static"]; ok {
		static, ok := s.(map[string]any)
		if !ok {
			return Body{}, oerrors.Wrapf(oerrors.ErrInvalidArgument, "static must be a map, got %T", s)
		}
		body.Static = static
	}

	for k, v := range m {
		if k == "__construct" || !isReserved(k) {
			body.Members[k] = v
		}
	}
	return body, nil
}

func asInterfaceBody(v any) (InterfaceBody, error) {
	switch b := v.(type) {
	case InterfaceBody:
		return b, nil
	case *InterfaceBody:
		if b == nil {
			return InterfaceBody{}, oerrors.Wrap(oerrors.ErrInvalidArgument, "missing body of interface")
		}
		return *b, nil
	case map[string]any:
		return interfaceBodyFromMap(b)
	}
	return InterfaceBody{}, oerrors.Wrapf(oerrors.ErrInvalidArgument, "interface body must be an InterfaceBody or map, got %T", v)
}

func interfaceBodyFromMap(m map[string]any) (InterfaceBody, error) {
	body := InterfaceBody{
		Extends: m["extends"],
		Members: map[string]string{},
	}
	for k, v := range m {
		switch k {
		case "extends":
			continue
		case "static":
			static, ok := v.(map[string]any)
			if !ok {
				return InterfaceBody{}, oerrors.Wrapf(oerrors.ErrInvalidArgument, "static must be a map, got %T", v)
			}
			body.Static = map[string]string{}
			for sk, sv := range static {
				body.Static[sk] = fmt.Sprint(sv)
			}
		default:
			body.Members[k] = fmt.Sprint(v)
		}
	}
	return body, nil
}
