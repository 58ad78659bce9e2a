package bridge

import (
	"fmt"

	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
)

// Managed class names.
const (
	ClassCoordinateSystemParameters                   = "geotrans3/parameters/CoordinateSystemParameters"
	ClassGeodeticParameters                           = "geotrans3/parameters/GeodeticParameters"
	ClassMapProjection3Parameters                     = "geotrans3/parameters/MapProjection3Parameters"
	ClassMapProjection4Parameters                     = "geotrans3/parameters/MapProjection4Parameters"
	ClassMapProjection5Parameters                     = "geotrans3/parameters/MapProjection5Parameters"
	ClassMapProjection6Parameters                     = "geotrans3/parameters/MapProjection6Parameters"
	ClassEquidistantCylindricalParameters             = "geotrans3/parameters/EquidistantCylindricalParameters"
	ClassLocalCartesianParameters                     = "geotrans3/parameters/LocalCartesianParameters"
	ClassLocalSphericalParameters                     = "geotrans3/parameters/LocalSphericalParameters"
	ClassMercatorStandardParallelParameters           = "geotrans3/parameters/MercatorStandardParallelParameters"
	ClassMercatorScaleFactorParameters                = "geotrans3/parameters/MercatorScaleFactorParameters"
	ClassNeysParameters                               = "geotrans3/parameters/NeysParameters"
	ClassObliqueMercatorParameters                    = "geotrans3/parameters/ObliqueMercatorParameters"
	ClassPolarStereographicStandardParallelParameters = "geotrans3/parameters/PolarStereographicStandardParallelParameters"
	ClassPolarStereographicScaleFactorParameters      = "geotrans3/parameters/PolarStereographicScaleFactorParameters"
	ClassUTMParameters                                = "geotrans3/parameters/UTMParameters"

	ClassCoordinateTuple          = "geotrans3/coordinates/CoordinateTuple"
	ClassGeodeticCoordinates      = "geotrans3/coordinates/GeodeticCoordinates"
	ClassCartesianCoordinates     = "geotrans3/coordinates/CartesianCoordinates"
	ClassMapProjectionCoordinates = "geotrans3/coordinates/MapProjectionCoordinates"
	ClassUTMCoordinates           = "geotrans3/coordinates/UTMCoordinates"
	ClassUPSCoordinates           = "geotrans3/coordinates/UPSCoordinates"
	ClassSphericalCoordinates     = "geotrans3/coordinates/SphericalCoordinates"
	ClassMGRSorUSNGCoordinates    = "geotrans3/coordinates/MGRSorUSNGCoordinates"
	ClassBNGCoordinates           = "geotrans3/coordinates/BNGCoordinates"
	ClassGARSCoordinates          = "geotrans3/coordinates/GARSCoordinates"
	ClassGEOREFCoordinates        = "geotrans3/coordinates/GEOREFCoordinates"

	ClassAccuracy         = "geotrans3/coordinates/Accuracy"
	ClassCircularAccuracy = "geotrans3/coordinates/CircularAccuracy"
)

// Managed field names.
const (
	FieldCoordinateType    = "coordinateType"
	FieldWarningMessage    = "warningMessage"
	FieldEllipsoidCode     = "ellipsoidCode"
	FieldHeightType        = "heightType"
	FieldCentralMeridian   = "centralMeridian"
	FieldOriginLatitude    = "originLatitude"
	FieldScaleFactor       = "scaleFactor"
	FieldStandardParallel  = "standardParallel"
	FieldStandardParallel1 = "standardParallel1"
	FieldStandardParallel2 = "standardParallel2"
	FieldFalseEasting      = "falseEasting"
	FieldFalseNorthing     = "falseNorthing"
	FieldLongitude1        = "longitude1"
	FieldLatitude1         = "latitude1"
	FieldLongitude2        = "longitude2"
	FieldLatitude2         = "latitude2"
	FieldHemisphere        = "hemisphere"
	FieldZone              = "zone"
	FieldOverride          = "override"
	FieldLongitude         = "longitude"
	FieldLatitude          = "latitude"
	FieldHeight            = "height"
	FieldOrientation       = "orientation"
	FieldX                 = "x"
	FieldY                 = "y"
	FieldZ                 = "z"
	FieldEasting           = "easting"
	FieldNorthing          = "northing"
	FieldAzimuth           = "azimuth"
	FieldElevAngle         = "elevAngle"
	FieldRadius            = "radius"
	FieldCoordinateString  = "coordinateString"
	FieldPrecision         = "precision"
	FieldCircularError90   = "circularError90"
	FieldLinearError90     = "linearError90"
	FieldSphericalError90  = "sphericalError90"
)

type classSpec struct {
	name   string
	super  string
	fields []managed.FieldDecl
}

func double(name string) managed.FieldDecl {
	return managed.FieldDecl{Name: name, Kind: managed.KindDouble}
}

// catalogue lists every class the bridge reads or constructs, superclasses
// before subclasses.
var catalogue = []classSpec{
	{ClassCoordinateSystemParameters, "", []managed.FieldDecl{{Name: FieldCoordinateType, Kind: managed.KindInt}}},
	{ClassGeodeticParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		{Name: FieldEllipsoidCode, Kind: managed.KindString},
		{Name: FieldHeightType, Kind: managed.KindInt},
	}},
	{ClassMapProjection3Parameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassMapProjection4Parameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldOriginLatitude), double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassMapProjection5Parameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldOriginLatitude), double(FieldScaleFactor),
		double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassMapProjection6Parameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldOriginLatitude), double(FieldStandardParallel1),
		double(FieldStandardParallel2), double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassEquidistantCylindricalParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldStandardParallel), double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassLocalCartesianParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldLongitude), double(FieldLatitude), double(FieldHeight), double(FieldOrientation),
	}},
	{ClassLocalSphericalParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldLongitude), double(FieldLatitude), double(FieldHeight), double(FieldOrientation),
	}},
	{ClassMercatorStandardParallelParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldStandardParallel), double(FieldScaleFactor),
		double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassMercatorScaleFactorParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldScaleFactor), double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassNeysParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldOriginLatitude), double(FieldStandardParallel1),
		double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassObliqueMercatorParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldOriginLatitude), double(FieldLongitude1), double(FieldLatitude1),
		double(FieldLongitude2), double(FieldLatitude2), double(FieldFalseEasting),
		double(FieldFalseNorthing), double(FieldScaleFactor),
	}},
	{ClassPolarStereographicStandardParallelParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldStandardParallel), double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassPolarStereographicScaleFactorParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		double(FieldCentralMeridian), double(FieldScaleFactor),
		{Name: FieldHemisphere, Kind: managed.KindChar},
		double(FieldFalseEasting), double(FieldFalseNorthing),
	}},
	{ClassUTMParameters, ClassCoordinateSystemParameters, []managed.FieldDecl{
		{Name: FieldZone, Kind: managed.KindLong},
		{Name: FieldOverride, Kind: managed.KindLong},
	}},

	{ClassCoordinateTuple, "", []managed.FieldDecl{
		{Name: FieldCoordinateType, Kind: managed.KindInt},
		{Name: FieldWarningMessage, Kind: managed.KindString},
	}},
	{ClassGeodeticCoordinates, ClassCoordinateTuple, []managed.FieldDecl{
		double(FieldLongitude), double(FieldLatitude), double(FieldHeight),
	}},
	{ClassCartesianCoordinates, ClassCoordinateTuple, []managed.FieldDecl{
		double(FieldX), double(FieldY), double(FieldZ),
	}},
	{ClassMapProjectionCoordinates, ClassCoordinateTuple, []managed.FieldDecl{
		double(FieldEasting), double(FieldNorthing),
	}},
	{ClassUTMCoordinates, ClassCoordinateTuple, []managed.FieldDecl{
		{Name: FieldZone, Kind: managed.KindLong},
		{Name: FieldHemisphere, Kind: managed.KindChar},
		double(FieldEasting), double(FieldNorthing),
	}},
	{ClassUPSCoordinates, ClassCoordinateTuple, []managed.FieldDecl{
		{Name: FieldHemisphere, Kind: managed.KindChar},
		double(FieldEasting), double(FieldNorthing),
	}},
	{ClassSphericalCoordinates, ClassCoordinateTuple, []managed.FieldDecl{
		double(FieldAzimuth), double(FieldElevAngle), double(FieldRadius),
	}},
	{ClassMGRSorUSNGCoordinates, ClassCoordinateTuple, gridFields()},
	{ClassBNGCoordinates, ClassCoordinateTuple, gridFields()},
	{ClassGARSCoordinates, ClassCoordinateTuple, gridFields()},
	{ClassGEOREFCoordinates, ClassCoordinateTuple, gridFields()},

	{ClassAccuracy, "", []managed.FieldDecl{
		double(FieldCircularError90), double(FieldLinearError90), double(FieldSphericalError90),
	}},
	{ClassCircularAccuracy, "", []managed.FieldDecl{double(FieldCircularError90)}},
}

func gridFields() []managed.FieldDecl {
	return []managed.FieldDecl{
		{Name: FieldCoordinateString, Kind: managed.KindString},
		{Name: FieldPrecision, Kind: managed.KindLong},
	}
}

// RegisterClasses defines every GEOTRANS class the bridge uses on rt.
// Calling it twice on the same runtime is a no-op.
func RegisterClasses(rt *managed.Runtime) error {
	for _, c := range catalogue {
		if _, err := rt.DefineClass(c.name, c.super, c.fields...); err != nil {
			return fmt.Errorf("register %s: %w", c.name, err)
		}
	}
	return nil
}

// NewRuntime returns a managed runtime with the GEOTRANS classes registered.
func NewRuntime() *managed.Runtime {
	rt := managed.NewRuntime()
	if err := RegisterClasses(rt); err != nil {
		// The catalogue is static; a failure here is a programming error.
		panic(err)
	}
	return rt
}

// ParametersClass returns the managed class used for a parameters family.
func ParametersClass(f ccs.Family) (string, bool) {
	switch f {
	case ccs.FamilyTypeOnly:
		return ClassCoordinateSystemParameters, true
	case ccs.FamilyGeodetic:
		return ClassGeodeticParameters, true
	case ccs.FamilyMapProjection3:
		return ClassMapProjection3Parameters, true
	case ccs.FamilyMapProjection4:
		return ClassMapProjection4Parameters, true
	case ccs.FamilyMapProjection5:
		return ClassMapProjection5Parameters, true
	case ccs.FamilyMapProjection6:
		return ClassMapProjection6Parameters, true
	case ccs.FamilyEquidistantCylindrical:
		return ClassEquidistantCylindricalParameters, true
	case ccs.FamilyLocalCartesian:
		return ClassLocalCartesianParameters, true
	case ccs.FamilyLocalSpherical:
		return ClassLocalSphericalParameters, true
	case ccs.FamilyMercatorStandardParallel:
		return ClassMercatorStandardParallelParameters, true
	case ccs.FamilyMercatorScaleFactor:
		return ClassMercatorScaleFactorParameters, true
	case ccs.FamilyNeys:
		return ClassNeysParameters, true
	case ccs.FamilyObliqueMercator:
		return ClassObliqueMercatorParameters, true
	case ccs.FamilyPolarStereographicStandardParallel:
		return ClassPolarStereographicStandardParallelParameters, true
	case ccs.FamilyPolarStereographicScaleFactor:
		return ClassPolarStereographicScaleFactorParameters, true
	case ccs.FamilyUTM:
		return ClassUTMParameters, true
	default:
		return "", false
	}
}

// CoordinatesClass returns the managed class used for coordinates of type t.
func CoordinatesClass(t ccs.CoordinateType) (string, bool) {
	shape, ok := ccs.ShapeOf(t)
	if !ok {
		return "", false
	}
	switch shape {
	case ccs.ShapeGeodetic:
		return ClassGeodeticCoordinates, true
	case ccs.ShapeCartesian:
		return ClassCartesianCoordinates, true
	case ccs.ShapeMapProjection:
		return ClassMapProjectionCoordinates, true
	case ccs.ShapeUTM:
		return ClassUTMCoordinates, true
	case ccs.ShapeUPS:
		return ClassUPSCoordinates, true
	case ccs.ShapeSpherical:
		return ClassSphericalCoordinates, true
	case ccs.ShapeGridReference:
		switch t {
		case ccs.BritishNationalGrid:
			return ClassBNGCoordinates, true
		case ccs.GARS:
			return ClassGARSCoordinates, true
		case ccs.GEOREF:
			return ClassGEOREFCoordinates, true
		default:
			return ClassMGRSorUSNGCoordinates, true
		}
	}
	return "", false
}

// AccuracyClass returns the managed class used for an accuracy shape.
func AccuracyClass(s ccs.AccuracyShape) (string, bool) {
	switch s {
	case ccs.AccuracyCircular:
		return ClassCircularAccuracy, true
	case ccs.AccuracyThreeAxis:
		return ClassAccuracy, true
	default:
		return "", false
	}
}
