package ccs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"zulu":  "z",
		"alpha": "a",
		"mike":  int64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"a","mike":3,"zulu":"z"}`, string(data))
}

func TestMarshalCanonicalFloats(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5"},
		{0.5, "0.5"},
		{-12.25, "-12.25"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1e+21"},
		{500000, "500000"},
	}

	for _, tt := range tests {
		data, err := MarshalCanonical(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data), "input %v", tt.in)
	}
}

func TestMarshalCanonicalRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := MarshalCanonical(f)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-finite")
	}
}

func TestMarshalCanonicalRejectsNull(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"a": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null")
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	data, err := MarshalCanonical("<a&b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a&b>"`, string(data))
}

func TestMarshalCanonicalLineSeparatorUnescaped(t *testing.T) {
	data, err := MarshalCanonical("a\u2028b")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(data))

	// A literal backslash followed by u2028 text stays escaped.
	data, err = MarshalCanonical(`a\u2028b`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(data))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// "e" + combining acute accent normalizes to U+00E9.
	data, err := MarshalCanonical("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(data))
}

func TestMarshalCanonicalNativeValues(t *testing.T) {
	data, err := MarshalCanonical(ThreeAxisAccuracy{CE90: 5, LE90: 10, SE90: 12})
	require.NoError(t, err)
	assert.Equal(t,
		`{"circular_error_90":5,"linear_error_90":10,"spherical_error_90":12,"variant":"ThreeAxisAccuracy"}`,
		string(data))

	data, err = MarshalCanonical(GeodeticParameters{EllipsoidCode: "WE", HeightType: EllipsoidHeight})
	require.NoError(t, err)
	assert.Equal(t,
		`{"coordinate_type":"GEODETIC","ellipsoid_code":"WE","height_type":"ELLIPSOID","variant":"GeodeticParameters"}`,
		string(data))
}

func TestSortedKeysUTF16Order(t *testing.T) {
	// U+10000 encodes as surrogate 0xD800 in UTF-16, which sorts before U+FFFD.
	// UTF-8 byte order would put U+FFFD first.
	keys := SortedKeys(map[string]int{"\uFFFD": 1, "\U00010000": 2})
	assert.Equal(t, []string{"\U00010000", "\uFFFD"}, keys)
}

func TestValueIDStable(t *testing.T) {
	a := UTMParameters{Zone: 17, Override: 1}
	id1, err := ValueID(a)
	require.NoError(t, err)
	id2, err := ValueID(UTMParameters{Zone: 17, Override: 1})
	require.NoError(t, err)
	id3, err := ValueID(UTMParameters{Zone: 18, Override: 1})
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
	assert.Len(t, id1, 64)
}

func TestTranslationIDDependsOnSeq(t *testing.T) {
	a, err := TranslationID("call-1", 1, "accuracy_from_managed")
	require.NoError(t, err)
	b, err := TranslationID("call-1", 2, "accuracy_from_managed")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
