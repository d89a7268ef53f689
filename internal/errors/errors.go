// Package errors provides the error taxonomy shared by the capri packages.
package errors

import (
	"fmt"
	"strings"
)

// DetailError is a failure with a category, a location (module name or
// file path) and an optional hint for the user. It unwraps to Cause, which
// is normally one of the sentinels.
type DetailError struct {
	Type     string
	Message  string
	Location string
	Field    string
	Hint     string
	Cause    error
}

// Error renders "type in location (field): message", followed by the hint
// on its own line.
func (e *DetailError) Error() string {
	var b strings.Builder
	b.WriteString(e.Type)
	if e.Location != "" {
		b.WriteString(" in ")
		b.WriteString(e.Location)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\n  hint: ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// Wrapf formats a message and wraps it with a sentinel error type.
func Wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

// InterfaceError reports a class that does not satisfy an interface contract.
type InterfaceError struct {
	// ClassID is the qualified id of the class being validated.
	ClassID string

	// InterfaceID is the qualified id of the interface.
	InterfaceID string

	// Member is the required member name.
	Member string

	// Expected describes the required kind (function, getter, ...).
	Expected string

	// Found describes what the class provides ("undefined" when absent).
	Found string

	// Static is true when the requirement lives in the static section.
	Static bool

	// Abstract is true when the interface was generated from an abstract class contract.
	Abstract bool

	// Cause is ErrMissingInterfaceMember or ErrInvalidInterfaceMember.
	Cause error
}

// Error implements the error interface.
func (e *InterfaceError) Error() string {
	scope := ""
	if e.Static {
		scope = "static "
	}

	from := fmt.Sprintf(" in class %q from interface %q", e.ClassID, e.InterfaceID)
	if e.Abstract {
		from = fmt.Sprintf(" in class %q from abstract class %q", e.ClassID, e.InterfaceID)
	}

	if e.Found == "" || e.Found == "undefined" {
		return fmt.Sprintf("missing required %s%s %q%s", scope, e.Expected, e.Member, from)
	}
	return fmt.Sprintf("found %s%s %q but expected %s%s", scope, e.Found, e.Member, e.Expected, from)
}

// Unwrap returns the sentinel cause.
func (e *InterfaceError) Unwrap() error {
	return e.Cause
}
