package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ccsbridge", cmd.Use)
	assert.Contains(t, cmd.Long, "managed")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"translate"},
		{"roundtrip"},
		{"convert"},
		{"classes"},
		{"epsg"},
		{"epsg", "import"},
		{"epsg", "lookup"},
		{"journal"},
		{"test"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("db"))
}

func TestConvertCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	convertCmd, _, err := cmd.Find([]string{"convert"})
	require.NoError(t, err)

	for _, name := range []string{"reverse", "source", "target", "coordinates", "accuracy"} {
		assert.NotNil(t, convertCmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "source", convertCmd.Flags().Lookup("source").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "classes")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", "/nonexistent/ccsbridge.yaml", "classes")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestConfigOutputSettings(t *testing.T) {
	t.Run("format from config", func(t *testing.T) {
		cfg := writeConfig(t, "output:\n  format: json\n")
		out, _, err := execute(t, "--config", cfg, "translate", "testdata/utm.yaml")
		require.NoError(t, err)

		resp, data := decodeData(t, out)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "coordinates_from_managed", data["operation"])
	})

	t.Run("flag overrides config", func(t *testing.T) {
		cfg := writeConfig(t, "output:\n  format: json\n")
		out, _, err := execute(t, "--config", cfg, "--format", "text", "translate", "testdata/utm.yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "variant: UTMCoordinates")
	})

	t.Run("precision", func(t *testing.T) {
		cfg := writeConfig(t, "output:\n  precision: 2\n")
		out, _, err := execute(t, "--config", cfg, "translate", "testdata/utm.yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "easting: 500000.00\n")
		assert.Contains(t, out, "northing: 4649776.22\n")
	})
}

func TestMetricsOutput(t *testing.T) {
	cfg := writeConfig(t, "metrics:\n  enabled: true\n")
	_, stderr, err := execute(t, "--config", cfg, "translate", "testdata/utm.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, `ccsbridge_bridge_translations_total{code="ok",operation="coordinates_from_managed"} 1`)
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, stderr, err := execute(t, "-v", "translate", "testdata/utm.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "translated")
	assert.NotContains(t, out, "level=DEBUG")
}
