package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	oerrors "github.com/rotorz/capri/internal/errors"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error returns success", err: nil, expected: ExitSuccess},
		{name: "validation error", err: oerrors.ErrValidation, expected: ExitValidationError},
		{name: "interface member", err: &oerrors.InterfaceError{Cause: oerrors.ErrMissingInterfaceMember}, expected: ExitValidationError},
		{name: "invalid base class", err: oerrors.Wrap(oerrors.ErrInvalidBaseClass, "bad"), expected: ExitValidationError},
		{name: "definition shape", err: oerrors.ErrInvalidArgument, expected: ExitValidationError},
		{name: "not found detail", err: oerrors.NewNotFoundError("gone", "x.js", ""), expected: ExitNotFound},
		{name: "pending", err: fmt.Errorf("wait: %w", oerrors.ErrPending), expected: ExitStalled},
		{name: "joined keeps validation first", err: errors.Join(oerrors.ErrNotFound, oerrors.ErrValidation), expected: ExitValidationError},
		{name: "unknown error returns general error", err: errors.New("something went wrong"), expected: ExitGeneralError},
		{name: "exit error with custom code", err: NewExitError(errors.New("custom error"), 42), expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	original := errors.New("original error")
	exitErr := NewExitError(original, ExitValidationError)

	assert.Equal(t, "original error", exitErr.Error())
	assert.ErrorIs(t, exitErr, original)
	assert.False(t, exitErr.Printed)

	p := printed(oerrors.ErrPending)
	assert.True(t, p.Printed)
	assert.Equal(t, ExitStalled, p.Code)
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Validation Error", ExitCodeName(ExitValidationError))
	assert.Equal(t, "Stalled", ExitCodeName(ExitStalled))
	assert.Equal(t, "Unknown", ExitCodeName(99))
}
