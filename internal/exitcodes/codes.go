package exitcodes

import (
	"fmt"
	"os"
)

// Standard exit codes for accelctl
const (
	// Success indicates successful command completion
	Success = 0

	// GeneralError indicates a general/unknown error
	GeneralError = 1

	// InvalidArgs indicates invalid command-line arguments or flags
	InvalidArgs = 2

	// PreconditionFailed indicates a precondition was not met
	// (e.g., unknown component, missing log file, empty package URL)
	PreconditionFailed = 3

	// NetworkError indicates a remote-fetch or download failure
	// (e.g., release feed unreachable, download timed out)
	NetworkError = 4

	// InstallError indicates the package manager rejected an install
	InstallError = 5
)

// Exit terminates the program with the given code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError prints error message to stderr and exits with the given code
func ExitWithError(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

// CodeForError returns the appropriate exit code for an error.
// Unwraps ErrorWithCode for explicit codes, otherwise returns GeneralError.
func CodeForError(err error) int {
	if err == nil {
		return Success
	}
	if ec, ok := err.(*ErrorWithCode); ok {
		return ec.Code
	}
	return GeneralError
}
