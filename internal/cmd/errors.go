package cmd

import (
	"errors"

	oerrors "github.com/rotorz/capri/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// printed wraps err with the exit code derived from it, marked as reported.
func printed(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitCodeFromError(err), Printed: true}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation),
		errors.Is(err, oerrors.ErrInvalidArgument),
		errors.Is(err, oerrors.ErrUnknownDefinitionKind),
		errors.Is(err, oerrors.ErrInvalidBaseClass),
		errors.Is(err, oerrors.ErrMissingInterface),
		errors.Is(err, oerrors.ErrMissingInterfaceMember),
		errors.Is(err, oerrors.ErrInvalidInterfaceMember),
		errors.Is(err, oerrors.ErrInstantiateAbstract),
		errors.Is(err, oerrors.ErrAlreadyLoaded):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, oerrors.ErrPending):
		return ExitStalled
	default:
		return ExitGeneralError
	}
}
