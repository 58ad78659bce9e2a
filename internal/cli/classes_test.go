package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/managed"
)

func TestClasses_Text(t *testing.T) {
	out, _, err := execute(t, "classes")
	require.NoError(t, err)

	assert.Contains(t, out, bridge.ClassUTMCoordinates+" extends "+bridge.ClassCoordinateTuple+"\n")
	assert.Contains(t, out, "  zone long\n")
	assert.Contains(t, out, "  hemisphere char\n")
	assert.Contains(t, out, bridge.ClassGeodeticParameters+" extends "+bridge.ClassCoordinateSystemParameters+"\n")
	assert.Contains(t, out, "  ellipsoidCode String\n")
	assert.Contains(t, out, managed.ObjectClassName+"\n")
}

func TestClasses_JSONWithPrefix(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "classes", "--prefix", "geotrans3/coordinates/")
	require.NoError(t, err)

	var resp struct {
		Status string                  `json:"status"`
		Data   []managed.ClassDocument `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	var names []string
	for _, doc := range resp.Data {
		assert.True(t, strings.HasPrefix(doc.Name, "geotrans3/coordinates/"), doc.Name)
		names = append(names, doc.Name)
	}
	assert.Contains(t, names, bridge.ClassCircularAccuracy)
	assert.Contains(t, names, bridge.ClassGEOREFCoordinates)
	assert.NotContains(t, names, bridge.ClassUTMParameters)

	for _, doc := range resp.Data {
		if doc.Name == bridge.ClassCircularAccuracy {
			assert.Equal(t, []managed.FieldDocument{{Name: "circularError90", Kind: "double"}}, doc.Fields)
		}
	}
}

func TestClasses_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, "classes", "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
