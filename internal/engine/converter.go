package engine

import (
	"context"

	"github.com/roach88/ccsbridge/internal/ccs"
)

// Converter transforms native coordinates and accuracy from one coordinate
// system to another. The transformation maths lives outside this module;
// implementations wrap it.
type Converter interface {
	Convert(ctx context.Context, req Request) (ccs.Coordinates, ccs.Accuracy, error)
}

// Request is one native conversion.
type Request struct {
	Source      ccs.Parameters
	Target      ccs.Parameters
	Coordinates ccs.Coordinates
	Accuracy    ccs.Accuracy
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(ctx context.Context, req Request) (ccs.Coordinates, ccs.Accuracy, error)

// Convert calls f.
func (f ConverterFunc) Convert(ctx context.Context, req Request) (ccs.Coordinates, ccs.Accuracy, error) {
	return f(ctx, req)
}

// Identity converts between equal parameter sets only, returning its input
// unchanged. It stands in for a real engine in tests and in the CLI.
type Identity struct{}

// Convert returns the request's coordinates and accuracy when Source equals
// Target and the coordinates match the source coordinate type.
func (Identity) Convert(ctx context.Context, req Request) (ccs.Coordinates, ccs.Accuracy, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, &ConversionError{Code: CodeEngineFailure, Message: "conversion cancelled", Err: err}
	}
	if req.Source != req.Target {
		return nil, nil, NewParameterMismatch(describeParameters(req.Source), describeParameters(req.Target))
	}
	if req.Coordinates.CoordinateType() != req.Source.CoordinateType() {
		return nil, nil, NewCoordinateMismatch(req.Source.CoordinateType().String(), req.Coordinates.CoordinateType().String())
	}
	return req.Coordinates, req.Accuracy, nil
}

// describeParameters renders p as canonical JSON for error details.
func describeParameters(p ccs.Parameters) string {
	m, err := ccs.Describe(p)
	if err != nil {
		return p.CoordinateType().String()
	}
	b, err := ccs.MarshalCanonical(m)
	if err != nil {
		return p.CoordinateType().String()
	}
	return string(b)
}
