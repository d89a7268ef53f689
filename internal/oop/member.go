package oop

// Method is an instance method. this is the receiving object.
type Method func(this *Object, args ...any) (any, error)

// StaticMethod is a class-level method bound to the class it is called on.
type StaticMethod func(c *Class, args ...any) (any, error)

// Getter reads an accessor property.
type Getter func(this *Object) (any, error)

// Setter writes an accessor property.
type Setter func(this *Object, value any) error

// Accessor is a getter/setter pair. Either half may be nil.
type Accessor struct {
	Get Getter
	Set Setter
}

// StaticGetter reads a static accessor property.
type StaticGetter func(c *Class) (any, error)

// StaticSetter writes a static accessor property.
type StaticSetter func(c *Class, value any) error

// StaticAccessor is a static getter/setter pair.
type StaticAccessor struct {
	Get StaticGetter
	Set StaticSetter
}

// normalizeMember converts unnamed function literals to the named member
// types so later type switches see one representation.
func normalizeMember(v any) any {
	switch m := v.(type) {
	case func(*Object, ...any) (any, error):
		return Method(m)
	case func(*Object) (any, error):
		return Accessor{Get: Getter(m)}
	case *Accessor:
		if m == nil {
			return nil
		}
		return *m
	}
	return v
}

func normalizeStatic(v any) any {
	switch m := v.(type) {
	case func(*Class, ...any) (any, error):
		return StaticMethod(m)
	case func(*Class) (any, error):
		return StaticAccessor{Get: StaticGetter(m)}
	case *StaticAccessor:
		if m == nil {
			return nil
		}
		return *m
	}
	return v
}

// kindOf describes a member value in validation messages.
func kindOf(v any, present bool) string {
	if !present || v == nil {
		return "undefined"
	}
	switch v.(type) {
	case Method, StaticMethod:
		return "function"
	case Accessor, StaticAccessor:
		return "property"
	case *Class:
		return "class"
	}
	return "value"
}
