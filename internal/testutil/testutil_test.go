package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
)

func TestFixedCallIDGenerator(t *testing.T) {
	gen := NewFixedCallIDGenerator("call-123")
	assert.Equal(t, "call-123", gen.Generate())
	assert.Equal(t, "call-123", gen.Generate())

	assert.Equal(t, DefaultCallID, NewFixedCallIDGenerator("").Generate())
}

func TestFixedCallIDGenerator_Concurrent(t *testing.T) {
	gen := NewFixedCallIDGenerator("shared")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "shared", gen.Generate())
			}
		}()
	}
	wg.Wait()
}

func TestToManaged(t *testing.T) {
	rt := bridge.NewRuntime()

	obj := ToManaged(t, rt, ccs.CircularAccuracy{CE90: 7})
	assert.Equal(t, bridge.ClassCircularAccuracy, obj.Class().Name())

	obj = ToManaged(t, rt, ccs.UTMParameters{Zone: 31})
	assert.Equal(t, bridge.ClassUTMParameters, obj.Class().Name())

	obj = ToManaged(t, rt, ccs.GridReferenceCoordinates{Tuple: ccs.Tuple{Type: ccs.MGRS}, CoordinateString: "18SUJ2348306479", Precision: 5})
	assert.Equal(t, bridge.ClassMGRSorUSNGCoordinates, obj.Class().Name())
}

func TestNewObject(t *testing.T) {
	rt := bridge.NewRuntime()
	obj := NewObject(t, rt, bridge.ClassCircularAccuracy, map[string]managed.Value{
		bridge.FieldCircularError90: managed.Double(2.5),
	})
	v, ok := obj.Field(bridge.FieldCircularError90)
	assert.True(t, ok)
	assert.Equal(t, managed.Double(2.5), v)
}
