package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/engine"
)

// Exit codes for CLI commands.
const (
	ExitSuccess          = 0 // Successful execution
	ExitFailure          = 1 // Scenario failures, lossy round trips, unknown EPSG codes
	ExitCommandError     = 2 // Command error (unreadable files, bad flags, store failures)
	ExitTranslationError = 3 // A managed object could not cross the boundary
	ExitConversionError  = 4 // The conversion engine refused the call
)

// Error codes for CLI responses that are not translation or conversion codes.
const (
	ErrCodeInvalidInput = "E_INVALID_INPUT"
	ErrCodeNotFound     = "E_NOT_FOUND"
	ErrCodeStore        = "E_STORE"
	ErrCodeLossy        = "E_LOSSY_ROUNDTRIP"
	ErrCodeTestFailed   = "E_TEST_FAILED"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message
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

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool

	// Precision is the number of decimal places used for doubles in text output.
	Precision int32
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // translation/conversion code or E_*
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// Fail reports err through the formatter and returns the ExitError the
// command should return. Translation and conversion errors keep their own
// codes and exit statuses; anything else is a command error.
func (f *OutputFormatter) Fail(message string, err error) error {
	var te *bridge.TranslationError
	if errors.As(err, &te) {
		details := map[string]string{"operation": string(te.Op)}
		if te.Class != "" {
			details["class"] = te.Class
		}
		if te.Field != "" {
			details["field"] = te.Field
		}
		_ = f.Error(string(te.Code), te.Message, details)
		return WrapExitError(ExitTranslationError, message, err)
	}

	var ce *engine.ConversionError
	if errors.As(err, &ce) {
		details := map[string]string{}
		if ce.Direction != "" {
			details["direction"] = string(ce.Direction)
		}
		for k, v := range ce.Details {
			details[k] = v
		}
		_ = f.Error(string(ce.Code), ce.Message, details)
		return WrapExitError(ExitConversionError, message, err)
	}

	_ = f.Error(ErrCodeInvalidInput, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(ExitCommandError, message, err)
}
