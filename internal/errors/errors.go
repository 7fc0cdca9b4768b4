package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit statuses of globcheck.
const (
	ExitSuccess = 0
	// ExitUser covers failed validations and anything the caller can fix:
	// bad flags, unreadable documents, a broken config file.
	ExitUser = 1
	// ExitSystem covers I/O failures outside the caller's input.
	ExitSystem = 2
)

var (
	// ErrNotFound marks a document or config file that does not exist.
	ErrNotFound = crdb.New("not found")

	// ErrInvalidConfig marks a config file that failed validation.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrValidationFailed is returned once the report has been written and at
	// least one document did not pass. main prints nothing more for it.
	ErrValidationFailed = crdb.New("validation failed")
)

// ExitError carries the exit status for an error, and a next step to print
// after the message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError returns an ExitError without a suggestion. err may be nil.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError returns an ExitError with status ExitUser.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError returns an ExitError with status ExitSystem.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError reports a config file that could not be loaded and points
// at the command that shows where it was read from.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Run: globcheck config")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
