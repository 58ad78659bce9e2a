package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/engine"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E_NOT_FOUND", "EPSG code 9999 not found", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, "E_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "EPSG code 9999 not found", resp.Error.Message)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := map[string]string{"operation": "coordinates_from_managed", "field": "latitude"}
	err := formatter.Error("MALFORMED_COORDINATE", "missing field", details)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("12 classes")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "12 classes")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("UNSUPPORTED_VARIANT", "unknown coordinate type 999", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [UNSUPPORTED_VARIANT]")
	assert.Contains(t, buf.String(), "unknown coordinate type 999")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"class": "test/MixedAccuracy"}
	err := formatter.Error("UNSUPPORTED_ACCURACY_SHAPE", "ambiguous accuracy", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [UNSUPPORTED_ACCURACY_SHAPE]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Loading %s", "conversion.cue")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Loading conversion.cue")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestCLIResponse_JSON(t *testing.T) {
	resp := CLIResponse{
		Status: "ok",
		Data:   map[string]int{"count": 42},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded CLIResponse
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, "ok", decoded.Status)
}

func TestCLIError_JSON(t *testing.T) {
	cliErr := CLIError{
		Code:    "PARAMETER_MISMATCH",
		Message: "source and target parameters differ",
		Details: map[string]string{"direction": "source_to_target"},
	}

	data, err := json.Marshal(cliErr)
	require.NoError(t, err)

	var decoded CLIError
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, "PARAMETER_MISMATCH", decoded.Code)
	assert.Equal(t, "source and target parameters differ", decoded.Message)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))
	assert.Equal(t, ExitConversionError, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitConversionError, "x"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestOutputFormatter_Fail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantExit int
		wantCode string
	}{
		{
			name: "translation error",
			err: fmt.Errorf("wrapped: %w", &bridge.TranslationError{
				Code:    bridge.CodeMalformedCoordinate,
				Op:      bridge.OpCoordinatesFromManaged,
				Class:   "test/GeodeticWithoutLatitude",
				Field:   "latitude",
				Message: "field missing",
			}),
			wantExit: ExitTranslationError,
			wantCode: "MALFORMED_COORDINATE",
		},
		{
			name:     "conversion error",
			err:      engine.NewParameterMismatch("GEODETIC", "UTM"),
			wantExit: ExitConversionError,
			wantCode: "PARAMETER_MISMATCH",
		},
		{
			name:     "other error",
			err:      errors.New("no such file"),
			wantExit: ExitCommandError,
			wantCode: ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: buf}

			err := formatter.Fail("command failed", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.ErrorIs(t, err, tt.err)

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestOutputFormatter_FailTranslationDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	_ = formatter.Fail("translation failed", &bridge.TranslationError{
		Code:    bridge.CodeUnsupportedVariant,
		Op:      bridge.OpParametersFromManaged,
		Class:   bridge.ClassCoordinateSystemParameters,
		Message: "unknown coordinate type 999",
	})

	assert.Contains(t, buf.String(), "Error [UNSUPPORTED_VARIANT]: unknown coordinate type 999")
	assert.Contains(t, buf.String(), "class:"+bridge.ClassCoordinateSystemParameters)
	assert.Contains(t, buf.String(), "operation:parameters_from_managed")
}
