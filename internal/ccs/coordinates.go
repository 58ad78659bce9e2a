package ccs

import "fmt"

// Shape names a Coordinates variant.
type Shape int

const (
	ShapeGeodetic Shape = iota
	ShapeCartesian
	ShapeMapProjection
	ShapeUTM
	ShapeUPS
	ShapeSpherical
	ShapeGridReference
)

var shapeNames = [...]string{
	ShapeGeodetic:      "GeodeticCoordinates",
	ShapeCartesian:     "CartesianCoordinates",
	ShapeMapProjection: "MapProjectionCoordinates",
	ShapeUTM:           "UTMCoordinates",
	ShapeUPS:           "UPSCoordinates",
	ShapeSpherical:     "SphericalCoordinates",
	ShapeGridReference: "GridReferenceCoordinates",
}

func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ShapeOf returns the coordinate tuple shape used by a coordinate type.
func ShapeOf(t CoordinateType) (Shape, bool) {
	if !t.Valid() {
		return 0, false
	}
	switch t {
	case Geodetic:
		return ShapeGeodetic, true
	case Geocentric, LocalCartesian:
		return ShapeCartesian, true
	case UTM:
		return ShapeUTM, true
	case UPS:
		return ShapeUPS, true
	case LocalSpherical, Spherical:
		return ShapeSpherical, true
	case MGRS, USNG, F16GRS, BritishNationalGrid, GARS, GEOREF:
		return ShapeGridReference, true
	default:
		return ShapeMapProjection, true
	}
}

// Coordinates is a sealed interface over the coordinate tuple variants.
//
// Components returns the numeric axes in the variant's fixed axis order;
// AxisNames returns the matching names. Grid references have no numeric axes.
type Coordinates interface {
	CoordinateType() CoordinateType
	Shape() Shape
	Warning() string
	Components() []float64
	AxisNames() []string
	coordinates() // Sealed
}

// CheckCoordinates reports an error when the coordinate type of c does not use
// c's shape.
func CheckCoordinates(c Coordinates) error {
	if c == nil {
		return fmt.Errorf("nil coordinates")
	}
	s, ok := ShapeOf(c.CoordinateType())
	if !ok {
		return fmt.Errorf("unknown coordinate type %d", int32(c.CoordinateType()))
	}
	if s != c.Shape() {
		return fmt.Errorf("coordinate type %s requires %s, got %s", c.CoordinateType(), s, c.Shape())
	}
	return nil
}

// Tuple is the header shared by every coordinate variant.
type Tuple struct {
	Type           CoordinateType
	WarningMessage string
}

func (t Tuple) CoordinateType() CoordinateType { return t.Type }
func (t Tuple) Warning() string                { return t.WarningMessage }

// GeodeticCoordinates axis order: longitude, latitude, height.
type GeodeticCoordinates struct {
	Tuple
	Longitude float64
	Latitude  float64
	Height    float64
}

func (GeodeticCoordinates) Shape() Shape { return ShapeGeodetic }
func (c GeodeticCoordinates) Components() []float64 {
	return []float64{c.Longitude, c.Latitude, c.Height}
}
func (GeodeticCoordinates) AxisNames() []string { return []string{"longitude", "latitude", "height"} }
func (GeodeticCoordinates) coordinates()        {}

// CartesianCoordinates axis order: x, y, z.
type CartesianCoordinates struct {
	Tuple
	X float64
	Y float64
	Z float64
}

func (CartesianCoordinates) Shape() Shape            { return ShapeCartesian }
func (c CartesianCoordinates) Components() []float64 { return []float64{c.X, c.Y, c.Z} }
func (CartesianCoordinates) AxisNames() []string     { return []string{"x", "y", "z"} }
func (CartesianCoordinates) coordinates()            {}

// MapProjectionCoordinates axis order: easting, northing.
type MapProjectionCoordinates struct {
	Tuple
	Easting  float64
	Northing float64
}

func (MapProjectionCoordinates) Shape() Shape            { return ShapeMapProjection }
func (c MapProjectionCoordinates) Components() []float64 { return []float64{c.Easting, c.Northing} }
func (MapProjectionCoordinates) AxisNames() []string     { return []string{"easting", "northing"} }
func (MapProjectionCoordinates) coordinates()            {}

// UTMCoordinates axis order: easting, northing. Zone and hemisphere are not axes.
type UTMCoordinates struct {
	Tuple
	Zone       int64
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

func (UTMCoordinates) Shape() Shape            { return ShapeUTM }
func (c UTMCoordinates) Components() []float64 { return []float64{c.Easting, c.Northing} }
func (UTMCoordinates) AxisNames() []string     { return []string{"easting", "northing"} }
func (UTMCoordinates) coordinates()            {}

// UPSCoordinates axis order: easting, northing.
type UPSCoordinates struct {
	Tuple
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

func (UPSCoordinates) Shape() Shape            { return ShapeUPS }
func (c UPSCoordinates) Components() []float64 { return []float64{c.Easting, c.Northing} }
func (UPSCoordinates) AxisNames() []string     { return []string{"easting", "northing"} }
func (UPSCoordinates) coordinates()            {}

// SphericalCoordinates axis order: azimuth, elevation angle, radius.
type SphericalCoordinates struct {
	Tuple
	Azimuth   float64
	ElevAngle float64
	Radius    float64
}

func (SphericalCoordinates) Shape() Shape { return ShapeSpherical }
func (c SphericalCoordinates) Components() []float64 {
	return []float64{c.Azimuth, c.ElevAngle, c.Radius}
}
func (SphericalCoordinates) AxisNames() []string {
	return []string{"azimuth", "elevation_angle", "radius"}
}
func (SphericalCoordinates) coordinates() {}

// GridReferenceCoordinates holds an alphanumeric grid reference (MGRS, USNG,
// BNG, GARS, GEOREF) and its precision.
type GridReferenceCoordinates struct {
	Tuple
	CoordinateString string
	Precision        int64
}

func (GridReferenceCoordinates) Shape() Shape          { return ShapeGridReference }
func (GridReferenceCoordinates) Components() []float64 { return nil }
func (GridReferenceCoordinates) AxisNames() []string   { return nil }
func (GridReferenceCoordinates) coordinates()          {}
