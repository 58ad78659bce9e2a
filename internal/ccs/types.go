package ccs

import (
	"fmt"
	"strings"
)

// CoordinateType identifies a coordinate system. The numeric values are the
// ones carried by the managed coordinateType field and must stay stable.
type CoordinateType int32

const (
	Albers CoordinateType = iota
	AzimuthalEquidistant
	BritishNationalGrid
	Bonne
	Cassini
	CylindricalEqualArea
	Eckert4
	Eckert6
	EquidistantCylindrical
	Geocentric
	Geodetic
	GEOREF
	GARS
	Gnomonic
	LambertConformalConic1
	LambertConformalConic2
	LocalCartesian
	MercatorStandardParallel
	MercatorScaleFactor
	MGRS
	MillerCylindrical
	Mollweide
	NewZealandMapGrid
	Neys
	ObliqueMercator
	Orthographic
	PolarStereographicStandardParallel
	PolarStereographicScaleFactor
	Polyconic
	Sinusoidal
	Stereographic
	TransverseCylindricalEqualArea
	TransverseMercator
	VanDerGrinten
	UPS
	USNG
	UTM
	F16GRS
	WebMercator
	LocalSpherical
	Spherical
)

type coordinateTypeInfo struct {
	code string
	name string
}

var coordinateTypes = map[CoordinateType]coordinateTypeInfo{
	Albers:                             {"ALBERS", "Albers Equal Area Conic"},
	AzimuthalEquidistant:               {"AZIMUTHAL", "Azimuthal Equidistant (S)"},
	BritishNationalGrid:                {"BNG", "British National Grid (BNG)"},
	Bonne:                              {"BONNE", "Bonne"},
	Cassini:                            {"CASSINI", "Cassini"},
	CylindricalEqualArea:               {"CYLEQA", "Cylindrical Equal Area"},
	Eckert4:                            {"ECKERT4", "Eckert IV (S)"},
	Eckert6:                            {"ECKERT6", "Eckert VI (S)"},
	EquidistantCylindrical:             {"EQDCYL", "Equidistant Cylindrical (S)"},
	Geocentric:                         {"GEOCENTRIC", "Geocentric"},
	Geodetic:                           {"GEODETIC", "Geodetic"},
	GEOREF:                             {"GEOREF", "GEOREF"},
	GARS:                               {"GARS", "Global Area Reference System (GARS)"},
	Gnomonic:                           {"GNOMONIC", "Gnomonic (S)"},
	LambertConformalConic1:             {"LAMBERT_1", "Lambert Conformal Conic (1 Standard Parallel)"},
	LambertConformalConic2:             {"LAMBERT_2", "Lambert Conformal Conic (2 Standard Parallel)"},
	LocalCartesian:                     {"LOCCART", "Local Cartesian"},
	MercatorStandardParallel:           {"MERCATOR_SP", "Mercator (Standard Parallel)"},
	MercatorScaleFactor:                {"MERCATOR_SF", "Mercator (Scale Factor)"},
	MGRS:                               {"MGRS", "Military Grid Reference System (MGRS)"},
	MillerCylindrical:                  {"MILLER", "Miller Cylindrical (S)"},
	Mollweide:                          {"MOLLWEIDE", "Mollweide (S)"},
	NewZealandMapGrid:                  {"NZMG", "New Zealand Map Grid (NZMG)"},
	Neys:                               {"NEYS", "Ney's (Modified Lambert Conformal Conic)"},
	ObliqueMercator:                    {"OMERC", "Oblique Mercator"},
	Orthographic:                       {"ORTHOGRAPHIC", "Orthographic (S)"},
	PolarStereographicStandardParallel: {"POLARSTEREO_SP", "Polar Stereographic (Standard Parallel)"},
	PolarStereographicScaleFactor:      {"POLARSTEREO_SF", "Polar Stereographic (Scale Factor)"},
	Polyconic:                          {"POLYCONIC", "Polyconic"},
	Sinusoidal:                         {"SINUSOIDAL", "Sinusoidal"},
	Stereographic:                      {"STEREOGRAPHIC", "Stereographic (S)"},
	TransverseCylindricalEqualArea:     {"TRCYLEQA", "Transverse Cylindrical Equal Area"},
	TransverseMercator:                 {"TRANMERC", "Transverse Mercator"},
	VanDerGrinten:                      {"GRINTEN", "Van der Grinten"},
	UPS:                                {"UPS", "Universal Polar Stereographic (UPS)"},
	USNG:                               {"USNG", "United States National Grid (USNG)"},
	UTM:                                {"UTM", "Universal Transverse Mercator (UTM)"},
	F16GRS:                             {"F16GRS", "F-16 Grid Reference System"},
	WebMercator:                        {"WEBMERCATOR", "Web Mercator"},
	LocalSpherical:                     {"LOCSPHER", "Local Spherical"},
	Spherical:                          {"SPHERICAL", "Spherical"},
}

// Valid reports whether t is a known coordinate type.
func (t CoordinateType) Valid() bool {
	_, ok := coordinateTypes[t]
	return ok
}

// String returns the short code, e.g. "UTM".
func (t CoordinateType) String() string {
	if info, ok := coordinateTypes[t]; ok {
		return info.code
	}
	return fmt.Sprintf("CoordinateType(%d)", int32(t))
}

// Name returns the display name, e.g. "Universal Transverse Mercator (UTM)".
func (t CoordinateType) Name() string {
	if info, ok := coordinateTypes[t]; ok {
		return info.name
	}
	return t.String()
}

// ParseCoordinateType accepts a short code or a display name, case-insensitively.
func ParseCoordinateType(s string) (CoordinateType, error) {
	want := strings.TrimSpace(s)
	for t, info := range coordinateTypes {
		if strings.EqualFold(info.code, want) || strings.EqualFold(info.name, want) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown coordinate type %q", s)
}

// HeightType selects the vertical reference of geodetic heights.
type HeightType int32

const (
	NoHeight HeightType = iota
	EllipsoidHeight
	MSLEGM96FifteenMinBilinear
	MSLEGM96VariableNaturalSpline
	MSLEGM84TenDegBilinear
	MSLEGM84TenDegNaturalSpline
	MSLEGM84ThirtyMinBilinear
	MSLEGM2008TwoPointFiveMinBicubicSpline
)

var heightTypeCodes = map[HeightType]string{
	NoHeight:                               "NO_HEIGHT",
	EllipsoidHeight:                        "ELLIPSOID",
	MSLEGM96FifteenMinBilinear:             "MSL_EGM96_15M_BL",
	MSLEGM96VariableNaturalSpline:          "MSL_EGM96_VG_NS",
	MSLEGM84TenDegBilinear:                 "MSL_EGM84_10D_BL",
	MSLEGM84TenDegNaturalSpline:            "MSL_EGM84_10D_NS",
	MSLEGM84ThirtyMinBilinear:              "MSL_EGM84_30M_BL",
	MSLEGM2008TwoPointFiveMinBicubicSpline: "MSL_EGM2008_TWOPOINTFIVEM_BCS",
}

// Valid reports whether h is a known height type.
func (h HeightType) Valid() bool {
	_, ok := heightTypeCodes[h]
	return ok
}

func (h HeightType) String() string {
	if code, ok := heightTypeCodes[h]; ok {
		return code
	}
	return fmt.Sprintf("HeightType(%d)", int32(h))
}

// ParseHeightType accepts a height type code. "ELLIPSOID_HEIGHT" is accepted
// as an alias of "ELLIPSOID".
func ParseHeightType(s string) (HeightType, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	if want == "ELLIPSOID_HEIGHT" {
		return EllipsoidHeight, nil
	}
	for h, code := range heightTypeCodes {
		if code == want {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown height type %q", s)
}

// Hemisphere is 'N' or 'S'.
type Hemisphere rune

const (
	North Hemisphere = 'N'
	South Hemisphere = 'S'
)

// Valid reports whether h is North or South.
func (h Hemisphere) Valid() bool {
	return h == North || h == South
}

func (h Hemisphere) String() string {
	return string(rune(h))
}
