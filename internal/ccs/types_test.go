package ccs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryCoordinateTypeHasFamilyAndShape(t *testing.T) {
	for ct := range coordinateTypes {
		_, ok := FamilyOf(ct)
		assert.True(t, ok, "no family for %s", ct)
		_, ok = ShapeOf(ct)
		assert.True(t, ok, "no shape for %s", ct)
	}
}

func TestUnknownCoordinateType(t *testing.T) {
	ct := CoordinateType(999)
	assert.False(t, ct.Valid())
	assert.Equal(t, "CoordinateType(999)", ct.String())

	_, ok := FamilyOf(ct)
	assert.False(t, ok)
	_, ok = ShapeOf(ct)
	assert.False(t, ok)
}

func TestParseCoordinateType(t *testing.T) {
	ct, err := ParseCoordinateType("utm")
	require.NoError(t, err)
	assert.Equal(t, UTM, ct)

	ct, err = ParseCoordinateType("Transverse Mercator")
	require.NoError(t, err)
	assert.Equal(t, TransverseMercator, ct)

	_, err = ParseCoordinateType("Plate Carree")
	assert.Error(t, err)
}

func TestParseHeightType(t *testing.T) {
	h, err := ParseHeightType("ELLIPSOID")
	require.NoError(t, err)
	assert.Equal(t, EllipsoidHeight, h)

	h, err = ParseHeightType("ellipsoid_height")
	require.NoError(t, err)
	assert.Equal(t, EllipsoidHeight, h)

	_, err = ParseHeightType("GEOID")
	assert.Error(t, err)
}

func TestCheckParameters(t *testing.T) {
	require.NoError(t, CheckParameters(MapProjection3Parameters{Type: Mollweide}))
	require.NoError(t, CheckParameters(TypeOnlyParameters{Type: MGRS}))

	err := CheckParameters(MapProjection3Parameters{Type: TransverseMercator})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MapProjection5Parameters")

	err = CheckParameters(TypeOnlyParameters{Type: CoordinateType(-1)})
	require.Error(t, err)

	assert.Error(t, CheckParameters(nil))
}

func TestCheckCoordinates(t *testing.T) {
	require.NoError(t, CheckCoordinates(CartesianCoordinates{Tuple: Tuple{Type: Geocentric}}))

	err := CheckCoordinates(MapProjectionCoordinates{Tuple: Tuple{Type: Geodetic}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GeodeticCoordinates")
}

func TestComponentsAxisOrder(t *testing.T) {
	g := GeodeticCoordinates{Tuple: Tuple{Type: Geodetic}, Longitude: 1, Latitude: 2, Height: 3}
	assert.Equal(t, []float64{1, 2, 3}, g.Components())
	assert.Equal(t, []string{"longitude", "latitude", "height"}, g.AxisNames())

	m := MapProjectionCoordinates{Tuple: Tuple{Type: Mollweide}, Easting: 10, Northing: 20}
	assert.Equal(t, []float64{10, 20}, m.Components())

	grid := GridReferenceCoordinates{Tuple: Tuple{Type: MGRS}, CoordinateString: "18SUJ2337006519", Precision: 5}
	assert.Nil(t, grid.Components())
}

func TestParametersComparable(t *testing.T) {
	var a, b Parameters = UTMParameters{Zone: 1}, UTMParameters{Zone: 1}
	assert.True(t, a == b)

	b = UTMParameters{Zone: 2}
	assert.False(t, a == b)
}

func TestDescribeOmitsIrrelevantFields(t *testing.T) {
	m, err := Describe(GeodeticParameters{EllipsoidCode: "WE", HeightType: EllipsoidHeight})
	require.NoError(t, err)
	assert.Len(t, m, 4)
	assert.NotContains(t, m, "central_meridian")
	assert.NotContains(t, m, "false_easting")

	m, err = Describe(UTMCoordinates{Tuple: Tuple{Type: UTM, WarningMessage: "zone override"}, Zone: 18, Hemisphere: North, Easting: 1, Northing: 2})
	require.NoError(t, err)
	assert.Equal(t, "N", m["hemisphere"])
	assert.Equal(t, "zone override", m["warning"])
	assert.Equal(t, 1.0, m["easting"])

	_, err = Describe(42)
	assert.Error(t, err)
}

func TestUnknownAccuracy(t *testing.T) {
	a := UnknownAccuracy()
	assert.Equal(t, AccuracyThreeAxis, a.Shape())
	assert.Equal(t, -1.0, a.CircularError())
}
