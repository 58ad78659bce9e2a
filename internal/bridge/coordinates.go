package bridge

import (
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
)

// CoordinatesFromManaged reads a managed coordinate tuple.
//
// The coordinateType and warningMessage header is read first; the coordinate
// type selects the tuple shape and the components are read in the shape's
// axis order. A component field the object's class does not declare fails
// with CodeMalformedCoordinate and no tuple is returned. An object that is
// not a CoordinateTuple fails with CodeBoundaryFault.
func CoordinatesFromManaged(env managed.Env, obj *managed.Object) (ccs.Coordinates, error) {
	const op = OpCoordinatesFromManaged
	if err := checkInput(env, obj, op); err != nil {
		return nil, err
	}
	if err := checkRoot(env, obj, op, ClassCoordinateTuple); err != nil {
		return nil, err
	}

	r := newFieldReader(env, obj, op, CodeBoundaryFault)
	header := ccs.Tuple{
		Type:           ccs.CoordinateType(r.intField(FieldCoordinateType)),
		WarningMessage: r.stringField(FieldWarningMessage),
	}
	if r.err != nil {
		return nil, r.err
	}
	shape, ok := ccs.ShapeOf(header.Type)
	if !ok {
		return nil, newError(CodeUnsupportedVariant, op, r.class, FieldCoordinateType,
			"coordinate type %d has no coordinate variant", int32(header.Type))
	}

	r.missing = CodeMalformedCoordinate
	var c ccs.Coordinates
	switch shape {
	case ccs.ShapeGeodetic:
		c = ccs.GeodeticCoordinates{
			Tuple:     header,
			Longitude: r.doubleField(FieldLongitude),
			Latitude:  r.doubleField(FieldLatitude),
			Height:    r.doubleField(FieldHeight),
		}
	case ccs.ShapeCartesian:
		c = ccs.CartesianCoordinates{
			Tuple: header,
			X:     r.doubleField(FieldX),
			Y:     r.doubleField(FieldY),
			Z:     r.doubleField(FieldZ),
		}
	case ccs.ShapeMapProjection:
		c = ccs.MapProjectionCoordinates{
			Tuple:    header,
			Easting:  r.doubleField(FieldEasting),
			Northing: r.doubleField(FieldNorthing),
		}
	case ccs.ShapeUTM:
		utm := ccs.UTMCoordinates{
			Tuple:      header,
			Zone:       r.longField(FieldZone),
			Hemisphere: ccs.Hemisphere(r.charField(FieldHemisphere)),
			Easting:    r.doubleField(FieldEasting),
			Northing:   r.doubleField(FieldNorthing),
		}
		checkHemisphere(r, utm.Hemisphere)
		c = utm
	case ccs.ShapeUPS:
		ups := ccs.UPSCoordinates{
			Tuple:      header,
			Hemisphere: ccs.Hemisphere(r.charField(FieldHemisphere)),
			Easting:    r.doubleField(FieldEasting),
			Northing:   r.doubleField(FieldNorthing),
		}
		checkHemisphere(r, ups.Hemisphere)
		c = ups
	case ccs.ShapeSpherical:
		c = ccs.SphericalCoordinates{
			Tuple:     header,
			Azimuth:   r.doubleField(FieldAzimuth),
			ElevAngle: r.doubleField(FieldElevAngle),
			Radius:    r.doubleField(FieldRadius),
		}
	case ccs.ShapeGridReference:
		c = ccs.GridReferenceCoordinates{
			Tuple:            header,
			CoordinateString: r.stringField(FieldCoordinateString),
			Precision:        r.longField(FieldPrecision),
		}
	default:
		return nil, newError(CodeUnsupportedVariant, op, r.class, FieldCoordinateType,
			"no reader for %s", shape)
	}

	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}

func checkHemisphere(r *fieldReader, h ccs.Hemisphere) {
	if r.err == nil && !h.Valid() {
		r.fail(CodeMalformedCoordinate, FieldHemisphere, "hemisphere must be 'N' or 'S'", nil)
	}
}

// CoordinatesToManaged constructs a managed coordinate tuple of the class
// matching c's coordinate type, writing components in the same axis order
// CoordinatesFromManaged reads them.
func CoordinatesToManaged(env managed.Env, c ccs.Coordinates) (*managed.Object, error) {
	const op = OpCoordinatesToManaged
	if env == nil {
		return nil, newError(CodeBoundaryFault, op, "", "", "nil env")
	}
	if err := ccs.CheckCoordinates(c); err != nil {
		return nil, &TranslationError{Code: CodeUnsupportedVariant, Op: op, Message: err.Error()}
	}

	fields := map[string]managed.Value{
		FieldCoordinateType: managed.Int(c.CoordinateType()),
		FieldWarningMessage: managed.String(c.Warning()),
	}
	switch v := c.(type) {
	case ccs.GeodeticCoordinates:
		fields[FieldLongitude] = managed.Double(v.Longitude)
		fields[FieldLatitude] = managed.Double(v.Latitude)
		fields[FieldHeight] = managed.Double(v.Height)
	case ccs.CartesianCoordinates:
		fields[FieldX] = managed.Double(v.X)
		fields[FieldY] = managed.Double(v.Y)
		fields[FieldZ] = managed.Double(v.Z)
	case ccs.MapProjectionCoordinates:
		fields[FieldEasting] = managed.Double(v.Easting)
		fields[FieldNorthing] = managed.Double(v.Northing)
	case ccs.UTMCoordinates:
		fields[FieldZone] = managed.Long(v.Zone)
		fields[FieldHemisphere] = managed.Char(v.Hemisphere)
		fields[FieldEasting] = managed.Double(v.Easting)
		fields[FieldNorthing] = managed.Double(v.Northing)
	case ccs.UPSCoordinates:
		fields[FieldHemisphere] = managed.Char(v.Hemisphere)
		fields[FieldEasting] = managed.Double(v.Easting)
		fields[FieldNorthing] = managed.Double(v.Northing)
	case ccs.SphericalCoordinates:
		fields[FieldAzimuth] = managed.Double(v.Azimuth)
		fields[FieldElevAngle] = managed.Double(v.ElevAngle)
		fields[FieldRadius] = managed.Double(v.Radius)
	case ccs.GridReferenceCoordinates:
		fields[FieldCoordinateString] = managed.String(v.CoordinateString)
		fields[FieldPrecision] = managed.Long(v.Precision)
	default:
		return nil, newError(CodeUnsupportedVariant, op, "", "", "unsupported coordinates type %T", c)
	}

	className, _ := CoordinatesClass(c.CoordinateType())
	return construct(env, op, className, fields)
}
