package bridge

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes translation failures.
type ErrorCode string

const (
	// CodeUnsupportedVariant: the discriminator maps to no known variant, or
	// a native value's type does not belong to its variant.
	CodeUnsupportedVariant ErrorCode = "UNSUPPORTED_VARIANT"

	// CodeMalformedCoordinate: a coordinate object lacks a component field
	// or carries an invalid component.
	CodeMalformedCoordinate ErrorCode = "MALFORMED_COORDINATE"

	// CodeUnsupportedAccuracyShape: the accuracy object is neither circular
	// nor three-axis, or mixes both.
	CodeUnsupportedAccuracyShape ErrorCode = "UNSUPPORTED_ACCURACY_SHAPE"

	// CodeConstructionFailure: the managed runtime could not resolve or
	// instantiate the target class.
	CodeConstructionFailure ErrorCode = "CONSTRUCTION_FAILURE"

	// CodeBoundaryFault: the field-access protocol itself failed, e.g. a
	// field read against an object whose schema does not match.
	CodeBoundaryFault ErrorCode = "BOUNDARY_FAULT"
)

// Sentinels for errors.Is. A *TranslationError matches the sentinel of its code.
var (
	ErrUnsupportedVariant       = errors.New("unsupported variant")
	ErrMalformedCoordinate      = errors.New("malformed coordinate")
	ErrUnsupportedAccuracyShape = errors.New("unsupported accuracy shape")
	ErrConstructionFailure      = errors.New("construction failure")
	ErrBoundaryFault            = errors.New("boundary fault")
)

var codeSentinels = map[ErrorCode]error{
	CodeUnsupportedVariant:       ErrUnsupportedVariant,
	CodeMalformedCoordinate:      ErrMalformedCoordinate,
	CodeUnsupportedAccuracyShape: ErrUnsupportedAccuracyShape,
	CodeConstructionFailure:      ErrConstructionFailure,
	CodeBoundaryFault:            ErrBoundaryFault,
}

// Operation names one translation direction. Values are used as metric
// labels and journal entries.
type Operation string

const (
	OpParametersFromManaged  Operation = "parameters_from_managed"
	OpCoordinatesFromManaged Operation = "coordinates_from_managed"
	OpAccuracyFromManaged    Operation = "accuracy_from_managed"
	OpParametersToManaged    Operation = "parameters_to_managed"
	OpCoordinatesToManaged   Operation = "coordinates_to_managed"
	OpAccuracyToManaged      Operation = "accuracy_to_managed"
)

// Operations lists every operation in a stable order.
var Operations = []Operation{
	OpParametersFromManaged,
	OpCoordinatesFromManaged,
	OpAccuracyFromManaged,
	OpParametersToManaged,
	OpCoordinatesToManaged,
	OpAccuracyToManaged,
}

// Inbound reports whether op reads a managed object.
func (op Operation) Inbound() bool {
	switch op {
	case OpParametersFromManaged, OpCoordinatesFromManaged, OpAccuracyFromManaged:
		return true
	}
	return false
}

// ParseOperation accepts an operation name.
func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// TranslationError is returned by every bridge operation.
type TranslationError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Op is the operation that failed.
	Op Operation

	// Class is the managed class involved, when known.
	Class string

	// Field is the managed field involved, when known.
	Field string

	// Message is a human-readable description.
	Message string

	// Err is the underlying managed runtime error, if any.
	Err error
}

func (e *TranslationError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	switch {
	case e.Class != "" && e.Field != "":
		msg += fmt.Sprintf(" (class=%s, field=%s)", e.Class, e.Field)
	case e.Class != "":
		msg += fmt.Sprintf(" (class=%s)", e.Class)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TranslationError) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Code.
func (e *TranslationError) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

// CodeOf returns the translation error code of err, if err is (or wraps)
// a *TranslationError.
func CodeOf(err error) (ErrorCode, bool) {
	var te *TranslationError
	if errors.As(err, &te) {
		return te.Code, true
	}
	return "", false
}

// IsTranslationError reports whether err is a boundary translation failure.
func IsTranslationError(err error) bool {
	_, ok := CodeOf(err)
	return ok
}

func newError(code ErrorCode, op Operation, class, field, format string, args ...any) *TranslationError {
	return &TranslationError{
		Code:    code,
		Op:      op,
		Class:   class,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Outcome is the metric label for a translation result: "ok", the error
// code of a TranslationError, or "error" for any other failure.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code, ok := CodeOf(err); ok {
		return string(code)
	}
	return "error"
}
