package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrInvalidArgument indicates a malformed call shape to define or a namespace function.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownDefinitionKind indicates the dispatcher has no handler for a kind.
	ErrUnknownDefinitionKind = errors.New("unknown definition kind")

	// ErrInvalidBaseClass indicates an extends reference resolved to a non-class.
	ErrInvalidBaseClass = errors.New("invalid base class")

	// ErrMissingInterface indicates an implements entry could not be resolved.
	ErrMissingInterface = errors.New("missing interface")

	// ErrMissingInterfaceMember indicates a class lacks a member its interface requires.
	ErrMissingInterfaceMember = errors.New("missing interface member")

	// ErrInvalidInterfaceMember indicates a class member has the wrong kind for its interface.
	ErrInvalidInterfaceMember = errors.New("invalid interface member")

	// ErrInstantiateAbstract indicates an attempt to construct an abstract class.
	ErrInstantiateAbstract = errors.New("cannot instantiate abstract class")

	// ErrAlreadyLoaded indicates a duplicate load of a module record.
	ErrAlreadyLoaded = errors.New("module already loaded")

	// ErrNotFound indicates a module, member or source was not found.
	ErrNotFound = errors.New("not found")

	// ErrNotImplemented indicates a declared method has no implementation bound.
	ErrNotImplemented = errors.New("not implemented")

	// ErrPending indicates a module was required but has not finished loading.
	ErrPending = errors.New("module pending")

	// ErrValidation indicates a configuration or manifest schema failure.
	ErrValidation = errors.New("validation error")
)
