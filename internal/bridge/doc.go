// Package bridge translates coordinate-system data between managed objects
// (internal/managed) and native values (internal/ccs).
//
// Inbound operations read a managed object through managed.Env and return a
// native value:
//
//	ParametersFromManaged   coordinate-system parameters
//	CoordinatesFromManaged  coordinate tuples
//	AccuracyFromManaged     accuracy estimates
//
// Outbound operations construct a new managed object from a native value:
//
//	ParametersToManaged
//	CoordinatesToManaged
//	AccuracyToManaged
//
// Parameters and coordinates are dispatched on the int "coordinateType" field
// every parameters and coordinate class inherits. Accuracy is dispatched on
// the object's class. Each variant has its own reader and builder, so the
// field set for a variant is listed exactly once in each direction.
//
// Every failure is a *TranslationError carrying one of five codes; match
// them with errors.Is against ErrUnsupportedVariant, ErrMalformedCoordinate,
// ErrUnsupportedAccuracyShape, ErrConstructionFailure and ErrBoundaryFault.
// No operation returns a partially populated value alongside an error.
//
// Operations hold no state. They are safe to call concurrently as long as
// the Env is.
package bridge
