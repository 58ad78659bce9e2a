package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ccsbridge/internal/managed"
)

// faultyEnv fails reads of one field, as a broken field-access call would.
type faultyEnv struct {
	managed.Env
	failField string
}

var errFieldAccess = errors.New("field access raised an exception")

func (e faultyEnv) GetField(obj *managed.Object, name string, kind managed.Kind) (managed.Value, error) {
	if name == e.failField {
		return nil, errFieldAccess
	}
	return e.Env.GetField(obj, name, kind)
}

// wrongKindEnv answers every read with a String, whatever was requested.
type wrongKindEnv struct {
	managed.Env
}

func (wrongKindEnv) GetField(*managed.Object, string, managed.Kind) (managed.Value, error) {
	return managed.String("surprise"), nil
}

func newObject(t *testing.T, rt *managed.Runtime, className string, fields map[string]managed.Value) *managed.Object {
	t.Helper()
	class, err := rt.FindClass(className)
	require.NoError(t, err)
	obj, err := rt.NewObject(class, fields)
	require.NoError(t, err)
	return obj
}

func requireCode(t *testing.T, err error, code ErrorCode) *TranslationError {
	t.Helper()
	require.Error(t, err)
	var te *TranslationError
	require.ErrorAs(t, err, &te)
	require.Equal(t, code, te.Code, "error: %v", err)
	return te
}
