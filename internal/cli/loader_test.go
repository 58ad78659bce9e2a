package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/managed"
)

func TestOpenDocuments_JSONNamed(t *testing.T) {
	docs, err := openDocuments("testdata/mismatch.json")
	require.NoError(t, err)

	rt := bridge.NewRuntime()
	obj, err := docs.Object(rt, "target")
	require.NoError(t, err)
	assert.Equal(t, bridge.ClassUTMParameters, obj.Class().Name())

	zone, ok := obj.Field("zone")
	require.True(t, ok)
	assert.Equal(t, managed.Long(18), zone)
}

func TestOpenDocuments_SingleNamedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
only:
  class: geotrans3/coordinates/CircularAccuracy
  fields: {circularError90: 4}
`), 0644))

	docs, err := openDocuments(path)
	require.NoError(t, err)
	obj, err := docs.Object(bridge.NewRuntime(), "")
	require.NoError(t, err)
	assert.Equal(t, bridge.ClassCircularAccuracy, obj.Class().Name())
}

func TestOpenDocuments_CUE(t *testing.T) {
	docs, err := openDocuments("testdata/conversion.cue")
	require.NoError(t, err)

	obj, err := docs.Object(bridge.NewRuntime(), "coordinates")
	require.NoError(t, err)
	assert.Equal(t, bridge.ClassGeodeticCoordinates, obj.Class().Name())
}

func TestOpenDocuments_TopLevelSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- class: x\n"), 0644))

	_, err := openDocuments(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top level must be a mapping")
}

func TestInferKind(t *testing.T) {
	rt := bridge.NewRuntime()
	_, err := rt.DefineClass("test/Unrelated", "", managed.FieldDecl{Name: "x", Kind: managed.KindDouble})
	require.NoError(t, err)

	tests := []struct {
		class   string
		want    string
		wantErr bool
	}{
		{bridge.ClassUTMParameters, kindParameters, false},
		{bridge.ClassCoordinateSystemParameters, kindParameters, false},
		{bridge.ClassGeodeticCoordinates, kindCoordinates, false},
		{bridge.ClassAccuracy, kindAccuracy, false},
		{bridge.ClassCircularAccuracy, kindAccuracy, false},
		{"test/Unrelated", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			obj, err := managed.Decode(rt, managed.Document{Class: tt.class})
			require.NoError(t, err)

			got, err := inferKind(rt, obj)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "use --as")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInboundOp(t *testing.T) {
	op, err := inboundOp(kindCoordinates)
	require.NoError(t, err)
	assert.Equal(t, bridge.OpCoordinatesFromManaged, op)

	op, err = inboundOp(kindAccuracy)
	require.NoError(t, err)
	assert.Equal(t, bridge.OpAccuracyFromManaged, op)

	_, err = inboundOp("grid")
	require.Error(t, err)
}
