// Package cmd provides the capri command implementations.
package cmd

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates a definition, interface or schema
	// validation failure.
	ExitValidationError = 2

	// ExitNotFound indicates a module or config file was not found.
	ExitNotFound = 5

	// ExitStalled indicates modules that never finished loading.
	ExitStalled = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitNotFound:
		return "Not Found"
	case ExitStalled:
		return "Stalled"
	default:
		return "Unknown"
	}
}
