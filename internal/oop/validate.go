package oop

import (
	oerrors "github.com/rotorz/capri/internal/errors"
)

// Validate checks a class against every interface it implements. Abstract
// classes are exempt; their concrete subclasses are validated instead.
func Validate(c *Class) error {
	if c.abstract {
		return nil
	}
	for _, i := range c.interfaces {
		if err := validateInterface(c, i); err != nil {
			return err
		}
	}
	return nil
}

func validateInterface(c *Class, i *Interface) error {
	for _, key := range sortedKeys(i.members) {
		v, ok := c.Member(key)
		if err := check(c, i, key, i.members[key], v, ok, false); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(i.static) {
		v, ok := c.Static(key)
		if err := check(c, i, key, i.static[key], v, ok, true); err != nil {
			return err
		}
	}
	return nil
}

func check(c *Class, i *Interface, key string, req requirement, v any, present, static bool) error {
	fail := func(cause error, expected, found string) error {
		id := i.qid
		if i.contract {
			id = i.contractOwner()
		}
		return &oerrors.InterfaceError{
			ClassID:     c.qid,
			InterfaceID: id,
			Member:      key,
			Expected:    expected,
			Found:       found,
			Static:      static,
			Abstract:    i.contract,
			Cause:       cause,
		}
	}
	missing := func(expected string) error {
		return fail(oerrors.ErrMissingInterfaceMember, expected, "undefined")
	}
	found := kindOf(v, present)

	switch req.kind {
	case RequireFunction:
		if isFunction(v, static) {
			return nil
		}
		if found == "undefined" {
			return missing("function")
		}
		return fail(oerrors.ErrInvalidInterfaceMember, "function", found)

	case RequireGetter, RequireSetter, RequireGetterAndSetter:
		if found == "undefined" {
			return missing(req.kind.String())
		}
		needGet := req.kind == RequireGetter || req.kind == RequireGetterAndSetter
		needSet := req.kind == RequireSetter || req.kind == RequireGetterAndSetter
		get, set, ok := accessorHalves(v, static)
		if !ok {
			// A plain value or method has neither half.
			if needGet {
				return missing("property getter")
			}
			return missing("property setter")
		}
		if needGet && !get {
			return missing("property getter")
		}
		if needSet && !set {
			return missing("property setter")
		}
		return nil

	default:
		if found == "undefined" {
			expected := req.tag
			if expected == "" {
				expected = req.kind.String()
			}
			return missing(expected)
		}
		return nil
	}
}

func isFunction(v any, static bool) bool {
	if static {
		_, ok := v.(StaticMethod)
		return ok
	}
	_, ok := v.(Method)
	return ok
}

func accessorHalves(v any, static bool) (get, set, ok bool) {
	if static {
		a, ok := v.(StaticAccessor)
		return a.Get != nil, a.Set != nil, ok
	}
	a, ok := v.(Accessor)
	return a.Get != nil, a.Set != nil, ok
}
