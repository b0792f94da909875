package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorConfig     = 2   // Indicates a configuration error (flags, results directory).
	ExitErrorData       = 3   // Indicates a malformed input file.
	ExitErrorFilesystem = 4   // Indicates a read or write failure on a file.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ConfigurationError reports that the results directory cannot be used:
// it does not exist, is not a directory, or cannot be listed.
type ConfigurationError struct {
	// Path is the directory that was scanned.
	Path string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a formatted message naming the directory.
func (e ConfigurationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("results directory %q is unusable", e.Path)
	}
	return fmt.Sprintf("results directory %q is unusable: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ConfigurationError) Unwrap() error { return e.Cause }

// DataFormatError reports an input CSV that does not have the expected shape:
// a required column is missing, a cell is not numeric, or the file is not
// valid CSV. Row is 1-based and counts the header; zero means the error is
// not tied to a row.
type DataFormatError struct {
	Path    string
	Row     int
	Column  string
	Message string
	Cause   error
}

// Error returns a formatted message with as much location as is known.
func (e DataFormatError) Error() string {
	loc := e.Path
	if e.Row > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Row)
	}
	if e.Column != "" {
		loc = fmt.Sprintf("%s (column %q)", loc, e.Column)
	}
	if e.Cause != nil {
		return fmt.Sprintf("data format error in %s: %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("data format error in %s: %s", loc, e.Message)
}

// Unwrap returns the underlying cause.
func (e DataFormatError) Unwrap() error { return e.Cause }

// FilesystemError wraps a failure to open, create, write or save a file.
type FilesystemError struct {
	// Op is a short verb describing the failed operation ("open", "create", "save").
	Op string
	// Path is the file involved.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted message describing the failed operation.
func (e FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e FilesystemError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by a run to the process exit code.
// A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		cfgErr  ConfigError
		dirErr  ConfigurationError
		dataErr DataFormatError
		fsErr   FilesystemError
	)
	switch {
	case IsContextError(err):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &dirErr):
		return ExitErrorConfig
	case errors.As(err, &dataErr):
		return ExitErrorData
	case errors.As(err, &fsErr):
		return ExitErrorFilesystem
	default:
		return ExitErrorGeneric
	}
}
