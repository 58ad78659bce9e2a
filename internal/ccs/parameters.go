package ccs

import "fmt"

// Family names a Parameters variant. Each coordinate type belongs to exactly
// one family.
type Family int

const (
	FamilyTypeOnly Family = iota
	FamilyGeodetic
	FamilyMapProjection3
	FamilyMapProjection4
	FamilyMapProjection5
	FamilyMapProjection6
	FamilyEquidistantCylindrical
	FamilyLocalCartesian
	FamilyLocalSpherical
	FamilyMercatorStandardParallel
	FamilyMercatorScaleFactor
	FamilyNeys
	FamilyObliqueMercator
	FamilyPolarStereographicStandardParallel
	FamilyPolarStereographicScaleFactor
	FamilyUTM
)

var familyNames = [...]string{
	FamilyTypeOnly:                           "TypeOnlyParameters",
	FamilyGeodetic:                           "GeodeticParameters",
	FamilyMapProjection3:                     "MapProjection3Parameters",
	FamilyMapProjection4:                     "MapProjection4Parameters",
	FamilyMapProjection5:                     "MapProjection5Parameters",
	FamilyMapProjection6:                     "MapProjection6Parameters",
	FamilyEquidistantCylindrical:             "EquidistantCylindricalParameters",
	FamilyLocalCartesian:                     "LocalCartesianParameters",
	FamilyLocalSpherical:                     "LocalSphericalParameters",
	FamilyMercatorStandardParallel:           "MercatorStandardParallelParameters",
	FamilyMercatorScaleFactor:                "MercatorScaleFactorParameters",
	FamilyNeys:                               "NeysParameters",
	FamilyObliqueMercator:                    "ObliqueMercatorParameters",
	FamilyPolarStereographicStandardParallel: "PolarStereographicStandardParallelParameters",
	FamilyPolarStereographicScaleFactor:      "PolarStereographicScaleFactorParameters",
	FamilyUTM:                                "UTMParameters",
}

func (f Family) String() string {
	if f >= 0 && int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// FamilyOf returns the parameters family of a coordinate type.
// The second result is false for unknown coordinate types.
func FamilyOf(t CoordinateType) (Family, bool) {
	switch t {
	case BritishNationalGrid, GARS, Geocentric, GEOREF, MGRS, F16GRS,
		NewZealandMapGrid, UPS, USNG, WebMercator, Spherical:
		return FamilyTypeOnly, true
	case Geodetic:
		return FamilyGeodetic, true
	case Eckert4, Eckert6, MillerCylindrical, Mollweide, Sinusoidal, VanDerGrinten:
		return FamilyMapProjection3, true
	case AzimuthalEquidistant, Bonne, Cassini, CylindricalEqualArea, Gnomonic,
		Orthographic, Polyconic, Stereographic:
		return FamilyMapProjection4, true
	case LambertConformalConic1, TransverseCylindricalEqualArea, TransverseMercator:
		return FamilyMapProjection5, true
	case Albers, LambertConformalConic2:
		return FamilyMapProjection6, true
	case EquidistantCylindrical:
		return FamilyEquidistantCylindrical, true
	case LocalCartesian:
		return FamilyLocalCartesian, true
	case LocalSpherical:
		return FamilyLocalSpherical, true
	case MercatorStandardParallel:
		return FamilyMercatorStandardParallel, true
	case MercatorScaleFactor:
		return FamilyMercatorScaleFactor, true
	case Neys:
		return FamilyNeys, true
	case ObliqueMercator:
		return FamilyObliqueMercator, true
	case PolarStereographicStandardParallel:
		return FamilyPolarStereographicStandardParallel, true
	case PolarStereographicScaleFactor:
		return FamilyPolarStereographicScaleFactor, true
	case UTM:
		return FamilyUTM, true
	default:
		return 0, false
	}
}

// Parameters is a sealed interface over the coordinate-system parameter
// variants declared in this package.
type Parameters interface {
	CoordinateType() CoordinateType
	Family() Family
	parameters() // Sealed
}

// CheckParameters reports an error when the coordinate type carried by p does
// not belong to p's family.
func CheckParameters(p Parameters) error {
	if p == nil {
		return fmt.Errorf("nil parameters")
	}
	f, ok := FamilyOf(p.CoordinateType())
	if !ok {
		return fmt.Errorf("unknown coordinate type %d", int32(p.CoordinateType()))
	}
	if f != p.Family() {
		return fmt.Errorf("coordinate type %s requires %s, got %s", p.CoordinateType(), f, p.Family())
	}
	return nil
}

// TypeOnlyParameters configures coordinate systems that need nothing beyond
// their type (grid references, geocentric, UPS, ...).
type TypeOnlyParameters struct {
	Type CoordinateType
}

func (p TypeOnlyParameters) CoordinateType() CoordinateType { return p.Type }
func (TypeOnlyParameters) Family() Family                   { return FamilyTypeOnly }
func (TypeOnlyParameters) parameters()                      {}

// GeodeticParameters configures geodetic (longitude/latitude/height) coordinates.
// EllipsoidCode may be empty when the datum supplies the ellipsoid.
type GeodeticParameters struct {
	EllipsoidCode string
	HeightType    HeightType
}

func (GeodeticParameters) CoordinateType() CoordinateType { return Geodetic }
func (GeodeticParameters) Family() Family                 { return FamilyGeodetic }
func (GeodeticParameters) parameters()                    {}

// MapProjection3Parameters: central meridian and false origin.
type MapProjection3Parameters struct {
	Type            CoordinateType
	CentralMeridian float64
	FalseEasting    float64
	FalseNorthing   float64
}

func (p MapProjection3Parameters) CoordinateType() CoordinateType { return p.Type }
func (MapProjection3Parameters) Family() Family                   { return FamilyMapProjection3 }
func (MapProjection3Parameters) parameters()                      {}

// MapProjection4Parameters adds an origin latitude to MapProjection3Parameters.
type MapProjection4Parameters struct {
	Type            CoordinateType
	CentralMeridian float64
	OriginLatitude  float64
	FalseEasting    float64
	FalseNorthing   float64
}

func (p MapProjection4Parameters) CoordinateType() CoordinateType { return p.Type }
func (MapProjection4Parameters) Family() Family                   { return FamilyMapProjection4 }
func (MapProjection4Parameters) parameters()                      {}

// MapProjection5Parameters adds a scale factor to MapProjection4Parameters.
type MapProjection5Parameters struct {
	Type            CoordinateType
	CentralMeridian float64
	OriginLatitude  float64
	ScaleFactor     float64
	FalseEasting    float64
	FalseNorthing   float64
}

func (p MapProjection5Parameters) CoordinateType() CoordinateType { return p.Type }
func (MapProjection5Parameters) Family() Family                   { return FamilyMapProjection5 }
func (MapProjection5Parameters) parameters()                      {}

// MapProjection6Parameters configures two-standard-parallel conics.
type MapProjection6Parameters struct {
	Type              CoordinateType
	CentralMeridian   float64
	OriginLatitude    float64
	StandardParallel1 float64
	StandardParallel2 float64
	FalseEasting      float64
	FalseNorthing     float64
}

func (p MapProjection6Parameters) CoordinateType() CoordinateType { return p.Type }
func (MapProjection6Parameters) Family() Family                   { return FamilyMapProjection6 }
func (MapProjection6Parameters) parameters()                      {}

type EquidistantCylindricalParameters struct {
	CentralMeridian  float64
	StandardParallel float64
	FalseEasting     float64
	FalseNorthing    float64
}

func (EquidistantCylindricalParameters) CoordinateType() CoordinateType {
	return EquidistantCylindrical
}
func (EquidistantCylindricalParameters) Family() Family { return FamilyEquidistantCylindrical }
func (EquidistantCylindricalParameters) parameters()    {}

// LocalCartesianParameters places a local cartesian frame at an origin.
type LocalCartesianParameters struct {
	Longitude   float64
	Latitude    float64
	Height      float64
	Orientation float64
}

func (LocalCartesianParameters) CoordinateType() CoordinateType { return LocalCartesian }
func (LocalCartesianParameters) Family() Family                 { return FamilyLocalCartesian }
func (LocalCartesianParameters) parameters()                    {}

// LocalSphericalParameters places a local spherical frame at an origin.
type LocalSphericalParameters struct {
	Longitude   float64
	Latitude    float64
	Height      float64
	Orientation float64
}

func (LocalSphericalParameters) CoordinateType() CoordinateType { return LocalSpherical }
func (LocalSphericalParameters) Family() Family                 { return FamilyLocalSpherical }
func (LocalSphericalParameters) parameters()                    {}

type MercatorStandardParallelParameters struct {
	CentralMeridian  float64
	StandardParallel float64
	ScaleFactor      float64
	FalseEasting     float64
	FalseNorthing    float64
}

func (MercatorStandardParallelParameters) CoordinateType() CoordinateType {
	return MercatorStandardParallel
}
func (MercatorStandardParallelParameters) Family() Family { return FamilyMercatorStandardParallel }
func (MercatorStandardParallelParameters) parameters()    {}

type MercatorScaleFactorParameters struct {
	CentralMeridian float64
	ScaleFactor     float64
	FalseEasting    float64
	FalseNorthing   float64
}

func (MercatorScaleFactorParameters) CoordinateType() CoordinateType { return MercatorScaleFactor }
func (MercatorScaleFactorParameters) Family() Family                 { return FamilyMercatorScaleFactor }
func (MercatorScaleFactorParameters) parameters()                    {}

// NeysParameters: StandardParallel1 is 71 or 74 degrees, expressed in radians.
type NeysParameters struct {
	CentralMeridian   float64
	OriginLatitude    float64
	StandardParallel1 float64
	FalseEasting      float64
	FalseNorthing     float64
}

func (NeysParameters) CoordinateType() CoordinateType { return Neys }
func (NeysParameters) Family() Family                 { return FamilyNeys }
func (NeysParameters) parameters()                    {}

// ObliqueMercatorParameters defines the central line through two points.
type ObliqueMercatorParameters struct {
	OriginLatitude float64
	Longitude1     float64
	Latitude1      float64
	Longitude2     float64
	Latitude2      float64
	FalseEasting   float64
	FalseNorthing  float64
	ScaleFactor    float64
}

func (ObliqueMercatorParameters) CoordinateType() CoordinateType { return ObliqueMercator }
func (ObliqueMercatorParameters) Family() Family                 { return FamilyObliqueMercator }
func (ObliqueMercatorParameters) parameters()                    {}

type PolarStereographicStandardParallelParameters struct {
	CentralMeridian  float64
	StandardParallel float64
	FalseEasting     float64
	FalseNorthing    float64
}

func (PolarStereographicStandardParallelParameters) CoordinateType() CoordinateType {
	return PolarStereographicStandardParallel
}
func (PolarStereographicStandardParallelParameters) Family() Family {
	return FamilyPolarStereographicStandardParallel
}
func (PolarStereographicStandardParallelParameters) parameters() {}

type PolarStereographicScaleFactorParameters struct {
	CentralMeridian float64
	ScaleFactor     float64
	Hemisphere      Hemisphere
	FalseEasting    float64
	FalseNorthing   float64
}

func (PolarStereographicScaleFactorParameters) CoordinateType() CoordinateType {
	return PolarStereographicScaleFactor
}
func (PolarStereographicScaleFactorParameters) Family() Family {
	return FamilyPolarStereographicScaleFactor
}
func (PolarStereographicScaleFactorParameters) parameters() {}

// UTMParameters: Zone 0 lets the engine pick the zone; Override non-zero
// forces Zone.
type UTMParameters struct {
	Zone     int64
	Override int64
}

func (UTMParameters) CoordinateType() CoordinateType { return UTM }
func (UTMParameters) Family() Family                 { return FamilyUTM }
func (UTMParameters) parameters()                    {}
