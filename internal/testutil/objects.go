// Package testutil holds helpers shared by package tests: deterministic
// call IDs and builders for managed objects.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
)

// ToManaged translates a native parameters, coordinates or accuracy value
// into a managed object of rt, failing the test on error.
func ToManaged(t testing.TB, rt *managed.Runtime, v any) *managed.Object {
	t.Helper()
	var (
		obj *managed.Object
		err error
	)
	switch val := v.(type) {
	case ccs.Parameters:
		obj, err = bridge.ParametersToManaged(rt, val)
	case ccs.Coordinates:
		obj, err = bridge.CoordinatesToManaged(rt, val)
	case ccs.Accuracy:
		obj, err = bridge.AccuracyToManaged(rt, val)
	default:
		t.Fatalf("ToManaged: unsupported type %T", v)
	}
	require.NoError(t, err)
	return obj
}

// NewObject builds an object of a registered class, failing the test on
// error.
func NewObject(t testing.TB, rt *managed.Runtime, class string, fields map[string]managed.Value) *managed.Object {
	t.Helper()
	c, err := rt.FindClass(class)
	require.NoError(t, err)
	obj, err := rt.NewObject(c, fields)
	require.NoError(t, err)
	return obj
}
