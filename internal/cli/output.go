package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/baus/internal/config"
	"github.com/roach88/baus/internal/engine"
	"github.com/roach88/baus/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Unclassified failure (e.g. flag parsing)
	ExitCommandError = 2 // Command error (bad configuration, unreadable or malformed cache, I/O)
	ExitFatal        = 3 // Host environment fault (system clock before the Unix epoch)
)

// Error codes used in JSON error responses.
const (
	ErrCodeGeneric = "E001" // Generic/unknown error
	ErrCodeIO      = "E002" // Cache file could not be created, read, or written
	ErrCodeFormat  = "E003" // Cache file is not a valid score mapping
	ErrCodeConfig  = "E004" // Invalid flags or profile file
	ErrCodeClock   = "E005" // System clock before the Unix epoch
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitCommandError or ExitFatal)
	Message string // Error message naming the failed operation
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// wrapRunError classifies an error from the core: clock faults are fatal,
// everything else is a command error.
func wrapRunError(message string, err error) *ExitError {
	if engine.IsClockError(err) {
		return WrapExitError(ExitFatal, message, err)
	}
	return WrapExitError(ExitCommandError, message, err)
}

// errorCode maps an error onto a JSON error code.
func errorCode(err error) string {
	switch {
	case engine.IsClockError(err):
		return ErrCodeClock
	case store.IsFormatError(err):
		return ErrCodeFormat
	case store.IsIOError(err):
		return ErrCodeIO
	case errors.Is(err, config.ErrInvalidConfig):
		return ErrCodeConfig
	default:
		return ErrCodeGeneric
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// TextWriter is a command result with a plain text form.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data TextWriter) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	return data.WriteText(f.Writer)
}

// Error writes a JSON error response. In text mode it writes nothing:
// the returned command error is printed on stderr by main.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format != "json" {
		return nil
	}
	return json.NewEncoder(f.Writer).Encode(CLIResponse{
		Status: "error",
		Error: &CLIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// isValidFormat checks if the format is valid.
func isValidFormat(format string) bool {
	return format == "text" || format == "json"
}
