package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccsbridge/internal/store"
)

var sampleTrace = []TraceEvent{
	{Seq: 1, Step: "p", Operation: "parameters_from_managed", Variant: "UTMParameters",
		Value: map[string]any{"zone": int32(18), "override": int32(0)}},
	{Seq: 2, Step: "c", Operation: "coordinates_from_managed", Error: "MALFORMED_COORDINATE"},
	{Seq: 3, Step: "c2", Operation: "coordinates_from_managed", Variant: "UTMCoordinates",
		Value: map[string]any{"easting": 500000.0}},
	{Seq: 4, Step: "out", Operation: "coordinates_to_managed", Variant: "UTMCoordinates"},
}

func TestAssertTraceContains(t *testing.T) {
	tests := []struct {
		name  string
		a     Assertion
		found bool
	}{
		{"operation only", Assertion{Op: "coordinates_to_managed"}, true},
		{"variant", Assertion{Op: "parameters_from_managed", Variant: "UTMParameters"}, true},
		{"wrong variant", Assertion{Op: "parameters_from_managed", Variant: "GeodeticParameters"}, false},
		{"error code", Assertion{Op: "coordinates_from_managed", Error: "MALFORMED_COORDINATE"}, true},
		{"value subset int", Assertion{Op: "parameters_from_managed", Value: map[string]any{"zone": 18}}, true},
		{"value subset float as int", Assertion{Op: "coordinates_from_managed", Value: map[string]any{"easting": 500000}}, true},
		{"value mismatch", Assertion{Op: "parameters_from_managed", Value: map[string]any{"zone": 19}}, false},
		{"value key absent", Assertion{Op: "parameters_from_managed", Value: map[string]any{"hemisphere": "N"}}, false},
		{"absent operation", Assertion{Op: "accuracy_from_managed"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.a.Type = AssertTraceContains
			err := assertTraceContains(sampleTrace, tt.a)
			if tt.found {
				assert.NoError(t, err)
				return
			}
			var ae *AssertionError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, "not found in trace", ae.Actual)
		})
	}
}

func TestAssertTraceOrder(t *testing.T) {
	ok := Assertion{Type: AssertTraceOrder, Ops: []string{"parameters_from_managed", "coordinates_to_managed"}}
	assert.NoError(t, assertTraceOrder(sampleTrace, ok))

	reversed := Assertion{Type: AssertTraceOrder, Ops: []string{"coordinates_to_managed", "coordinates_from_managed"}}
	err := assertTraceOrder(sampleTrace, reversed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coordinates_to_managed (pos 4) should be before coordinates_from_managed (pos 2)")

	missing := Assertion{Type: AssertTraceOrder, Ops: []string{"accuracy_to_managed"}}
	err = assertTraceOrder(sampleTrace, missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing operation: accuracy_to_managed")
}

func TestAssertTraceCount(t *testing.T) {
	assert.NoError(t, assertTraceCount(sampleTrace, Assertion{Op: "coordinates_from_managed", Count: 2}))
	assert.NoError(t, assertTraceCount(sampleTrace, Assertion{Op: "coordinates_from_managed", Error: "MALFORMED_COORDINATE", Count: 1}))
	assert.NoError(t, assertTraceCount(sampleTrace, Assertion{Op: "accuracy_from_managed", Count: 0}))

	err := assertTraceCount(sampleTrace, Assertion{Op: "coordinates_from_managed", Count: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: 3 occurrences of coordinates_from_managed")
	assert.Contains(t, err.Error(), "Actual: 2 occurrences")
}

func TestAssertionError_ListsTrace(t *testing.T) {
	err := assertTraceCount(sampleTrace, Assertion{Op: "accuracy_to_managed", Count: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Full trace:")
	assert.Contains(t, err.Error(), "[1] p parameters_from_managed -> UTMParameters")
	assert.Contains(t, err.Error(), "[2] c coordinates_from_managed -> MALFORMED_COORDINATE")
}

func TestAssertJournalCount(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	for i, op := range []string{"accuracy_from_managed", "accuracy_to_managed", "accuracy_from_managed"} {
		require.NoError(t, st.WriteTranslation(ctx, store.Translation{
			ID:        "t" + string(rune('a'+i)),
			CallID:    "call-1",
			Seq:       int64(i + 1),
			Operation: op,
		}))
	}

	assert.NoError(t, assertJournalCount(ctx, st, "call-1", Assertion{Count: 3}))
	assert.NoError(t, assertJournalCount(ctx, st, "call-1", Assertion{Op: "accuracy_from_managed", Count: 2}))
	assert.NoError(t, assertJournalCount(ctx, st, "call-2", Assertion{Count: 0}))

	err = assertJournalCount(ctx, st, "call-1", Assertion{Op: "accuracy_to_managed", Count: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 accuracy_to_managed translations journaled")
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult("call-1")
	result.Trace = sampleTrace

	errs := EvaluateAssertions(context.Background(), result, []Assertion{
		{Type: AssertTraceCount, Op: "coordinates_to_managed", Count: 1},
		{Type: AssertTraceContains, Op: "accuracy_to_managed"},
		{Type: AssertJournalCount, Count: 0},
		{Type: "bogus"},
	}, nil)

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "trace_contains")
	assert.Contains(t, errs[1], "journal_count requires a store")
	assert.Contains(t, errs[2], `unknown assertion type "bogus"`)
}
