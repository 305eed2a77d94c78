package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the run exceeded its deadline.
	ExitErrorWorker   = 3   // Indicates at least one worker unit failed.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
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
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// GenerationError reports that the content generator failed to construct an
// instance or to produce the record at a given index.
type GenerationError struct {
	Group string
	// Index is the 1-based artifact position, or 0 when construction failed.
	Index int
	Cause error
}

// Error returns the cause message verbatim.
func (e GenerationError) Error() string { return e.Cause.Error() }

// Unwrap returns the underlying generator error.
func (e GenerationError) Unwrap() error { return e.Cause }

// WriteError reports a failed directory creation or artifact write.
type WriteError struct {
	Path  string
	Cause error
}

// Error returns the cause message verbatim.
func (e WriteError) Error() string { return e.Cause.Error() }

// Unwrap returns the underlying filesystem error.
func (e WriteError) Unwrap() error { return e.Cause }

// ErrWorkerCrashed is the generic reason used when a worker unit stops
// without reporting a result.
var ErrWorkerCrashed = errors.New("worker crashed without reporting a result")

// JobError is the coordinator-side failure of a worker unit that reported
// an error. Reason holds the unit's message verbatim.
type JobError struct {
	Group  string
	Range  string
	Reason string
}

// Error returns a message naming the job and carrying its reason.
func (e *JobError) Error() string {
	return fmt.Sprintf("job %s [%s] failed: %s", e.Group, e.Range, e.Reason)
}

// WorkerCrashError is the failure of a worker unit that stopped without
// reporting a result. It is treated like a JobError with a generic reason.
type WorkerCrashError struct {
	Group string
	Range string
}

// Error returns a message naming the job and the generic crash reason.
func (e *WorkerCrashError) Error() string {
	return fmt.Sprintf("job %s [%s] failed: %s", e.Group, e.Range, ErrWorkerCrashed)
}

// Unwrap lets errors.Is(err, ErrWorkerCrashed) match crash failures.
func (e *WorkerCrashError) Unwrap() error { return ErrWorkerCrashed }

// NewWorkerCrashError builds the error for a unit that crashed.
func NewWorkerCrashError(group, rng string) *WorkerCrashError {
	return &WorkerCrashError{Group: group, Range: rng}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// Returns nil if err is nil.
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

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var (
		configErr ConfigError
		jobErr    *JobError
		crashErr  *WorkerCrashError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &jobErr), errors.As(err, &crashErr):
		return ExitErrorWorker
	default:
		return ExitErrorGeneric
	}
}

// HandleRunError prints a user-facing description of err to out and returns
// the matching exit code. A nil error prints nothing.
func HandleRunError(err error, out io.Writer) int {
	code := ExitCode(err)
	switch code {
	case ExitSuccess:
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The run did not finish in time: %v\n", err)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Status: Canceled: %v\n", err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Configuration error: %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. %v\n", err)
	}
	return code
}
