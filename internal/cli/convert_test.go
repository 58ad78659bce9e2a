package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccsbridge/internal/engine"
	"github.com/roach88/ccsbridge/internal/store"
)

func TestConvert_Text(t *testing.T) {
	db := tempDB(t)
	out, _, err := execute(t, "--db", db, "convert", "testdata/conversion.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "(source_to_target)")
	assert.Contains(t, out, "coordinates geotrans3/coordinates/GeodeticCoordinates\n")
	assert.Contains(t, out, "    longitude: -77.036500\n")
	assert.Contains(t, out, "    height: 17.000000\n")
	assert.Contains(t, out, "accuracy geotrans3/coordinates/Accuracy\n")
	assert.Contains(t, out, "    circular_error_90: 5.000000\n")
}

func TestConvert_JournalsCall(t *testing.T) {
	db := tempDB(t)
	_, _, err := execute(t, "--db", db, "convert", "testdata/conversion.cue", "--reverse")
	require.NoError(t, err)

	ctx := context.Background()
	st, err := store.Open(db)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	calls, err := st.ListCalls(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, store.StatusOK, calls[0].Status)
	assert.Equal(t, string(engine.TargetToSource), calls[0].Direction)

	_, translations, err := st.ReadCall(ctx, calls[0].ID)
	require.NoError(t, err)
	var ops []string
	for _, tr := range translations {
		ops = append(ops, tr.Operation)
	}
	assert.Equal(t, []string{
		"coordinates_from_managed",
		"accuracy_from_managed",
		"coordinates_to_managed",
		"accuracy_to_managed",
	}, ops)
}

func TestConvert_JSONWithFixedCallID(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	opts := &ConvertOptions{
		RootOptions: &RootOptions{Format: "json", DBPath: tempDB(t)},
		Source:      "source",
		Target:      "target",
		Coordinates: "coordinates",
		Accuracy:    "accuracy",
		IDGenerator: engine.NewFixedGenerator("call-fixed-1"),
	}
	require.NoError(t, runConvert(context.Background(), opts, "testdata/conversion.yaml", cmd))

	resp, data := decodeData(t, buf.String())
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "call-fixed-1", data["call_id"])
	assert.Equal(t, "source_to_target", data["direction"])

	coords, ok := data["coordinates"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GeodeticCoordinates", coords["variant"])
	assert.Equal(t, 38.8977, coords["latitude"])

	objects, ok := data["objects"].([]any)
	require.True(t, ok)
	assert.Len(t, objects, 2)
}

func TestConvert_ConversionError(t *testing.T) {
	db := tempDB(t)
	out, _, err := execute(t, "--db", db, "--format", "json", "convert", "testdata/mismatch.json")
	require.Error(t, err)
	assert.Equal(t, ExitConversionError, GetExitCode(err))

	resp, _ := decodeData(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PARAMETER_MISMATCH", resp.Error.Code)

	st, err := store.Open(db)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	calls, err := st.ListCalls(context.Background(), store.StatusConversionError, 0)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "PARAMETER_MISMATCH", calls[0].ErrorCode)
}

func TestConvert_TranslationErrorInParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  class: geotrans3/parameters/CoordinateSystemParameters
  fields: {coordinateType: 999}
target:
  class: geotrans3/parameters/CoordinateSystemParameters
  fields: {coordinateType: 999}
coordinates:
  class: geotrans3/coordinates/CircularAccuracy
accuracy:
  class: geotrans3/coordinates/CircularAccuracy
`), 0644))

	out, _, err := execute(t, "--db", tempDB(t), "convert", path)
	require.Error(t, err)
	assert.Equal(t, ExitTranslationError, GetExitCode(err))
	assert.Contains(t, out, "Error [UNSUPPORTED_VARIANT]")
}

func TestConvert_CustomDocumentNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
wgs84:
  class: geotrans3/parameters/GeodeticParameters
  fields: {coordinateType: 10, ellipsoidCode: WE, heightType: 1}
point:
  class: geotrans3/coordinates/GeodeticCoordinates
  fields: {coordinateType: 10, longitude: 2.2945, latitude: 48.8584, height: 35}
ce90:
  class: geotrans3/coordinates/CircularAccuracy
  fields: {circularError90: 3}
`), 0644))

	out, _, err := execute(t, "--db", tempDB(t), "convert", path,
		"--source", "wgs84", "--target", "wgs84", "--coordinates", "point", "--accuracy", "ce90")
	require.NoError(t, err)
	assert.Contains(t, out, "latitude: 48.858400")
	assert.Contains(t, out, "circular_error_90: 3.000000")
}

func TestConvert_JournalDisabled(t *testing.T) {
	db := filepath.Join(t.TempDir(), "never.db")
	cfg := writeConfig(t, "store:\n  path: "+db+"\n  journal: false\n")

	_, _, err := execute(t, "--config", cfg, "convert", "testdata/conversion.yaml")
	require.NoError(t, err)

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr), "store should not be created when journaling is off")
}

func TestConvert_MissingDocument(t *testing.T) {
	_, _, err := execute(t, "--db", tempDB(t), "convert", "testdata/utm.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `failed to load document "source"`)
}
