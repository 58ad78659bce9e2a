package engine

import (
	"errors"
	"fmt"
)

// ConversionErrorCode categorizes failures raised by a Converter.
type ConversionErrorCode string

const (
	// CodeParameterMismatch: the converter cannot map between the source
	// and target parameter sets.
	CodeParameterMismatch ConversionErrorCode = "PARAMETER_MISMATCH"

	// CodeCoordinateMismatch: the input coordinates are not of the
	// coordinate type the parameters describe.
	CodeCoordinateMismatch ConversionErrorCode = "COORDINATE_MISMATCH"

	// CodeEngineFailure: any other converter failure.
	CodeEngineFailure ConversionErrorCode = "ENGINE_FAILURE"
)

// ConversionError is a failure of the native conversion engine. It is kept
// apart from bridge.TranslationError so callers can tell a bad boundary
// object from a conversion the engine refused.
type ConversionError struct {
	Code      ConversionErrorCode
	Message   string
	Direction Direction
	Details   map[string]string
	Err       error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Direction != "" {
		msg = fmt.Sprintf("%s (direction=%s)", msg, e.Direction)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// IsConversionError reports whether err wraps a *ConversionError.
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}

// ConversionCode returns the code of the *ConversionError wrapped by err.
func ConversionCode(err error) (ConversionErrorCode, bool) {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return "", false
}

// NewParameterMismatch reports source and target parameters the converter
// cannot relate.
func NewParameterMismatch(source, target string) *ConversionError {
	return &ConversionError{
		Code:    CodeParameterMismatch,
		Message: fmt.Sprintf("cannot convert from %s to %s", source, target),
		Details: map[string]string{
			"source": source,
			"target": target,
		},
	}
}

// NewCoordinateMismatch reports coordinates whose type differs from the
// parameters they are converted under.
func NewCoordinateMismatch(want, got string) *ConversionError {
	return &ConversionError{
		Code:    CodeCoordinateMismatch,
		Message: fmt.Sprintf("coordinates are %s, parameters describe %s", got, want),
		Details: map[string]string{
			"want": want,
			"got":  got,
		},
	}
}
