package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/epsg"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func translation(t *testing.T, callID string, seq int64, op string) Translation {
	t.Helper()
	id, err := ccs.TranslationID(callID, seq, op)
	require.NoError(t, err)
	return Translation{
		ID:        id,
		CallID:    callID,
		Seq:       seq,
		Operation: op,
		Class:     "geotrans3/coordinates/GeodeticCoordinates",
		Variant:   "geodetic",
		ValueID:   "value-" + op,
		Value:     `{"height":0,"latitude":0.5,"longitude":0.25}`,
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("foreign_keys", "1"); err != nil {
		t.Error(err)
	}
}

func TestOpen_SchemaIndexes(t *testing.T) {
	s := createTestStore(t)

	rows, err := s.Query(context.Background(),
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"idx_calls_status", "idx_translations_call"}, names)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteCall(context.Background(), Call{ID: "call-1", Direction: "source_to_target", Status: StatusOK, Seq: 1}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	calls, err := s.ListCalls(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "call-1", calls[0].ID)
}

func TestClose_Nil(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}

func TestWriteTranslation_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	tr := translation(t, "call-1", 1, "coordinates_from_managed")
	require.NoError(t, s.WriteTranslation(ctx, tr))
	require.NoError(t, s.WriteTranslation(ctx, tr))

	got, err := s.ReadTranslations(ctx, "call-1")
	require.NoError(t, err)
	if diff := cmp.Diff([]Translation{tr}, got); diff != "" {
		t.Errorf("ReadTranslations() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTranslation_RequiresIDs(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteTranslation(context.Background(), Translation{CallID: "call-1"})
	assert.Error(t, err)
	err = s.WriteTranslation(context.Background(), Translation{ID: "x"})
	assert.Error(t, err)
}

func TestReadTranslations_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	third := translation(t, "call-1", 3, "coordinates_to_managed")
	first := translation(t, "call-1", 1, "parameters_from_managed")
	second := translation(t, "call-1", 2, "coordinates_from_managed")
	other := translation(t, "call-2", 1, "parameters_from_managed")

	for _, tr := range []Translation{third, other, first, second} {
		require.NoError(t, s.WriteTranslation(ctx, tr))
	}

	got, err := s.ReadTranslations(ctx, "call-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].Seq, got[1].Seq, got[2].Seq})
}

func TestReadTranslations_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)
	got, err := s.ReadTranslations(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWriteTranslation_FailedCrossing(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	tr := translation(t, "call-1", 1, "accuracy_from_managed")
	tr.Variant = ""
	tr.ValueID = ""
	tr.Value = ""
	tr.ErrorCode = "UNSUPPORTED_ACCURACY_SHAPE"
	tr.ErrorMessage = "mixed accuracy fields"
	require.NoError(t, s.WriteTranslation(ctx, tr))

	got, err := s.ReadTranslations(ctx, "call-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "UNSUPPORTED_ACCURACY_SHAPE", got[0].ErrorCode)
	assert.Empty(t, got[0].Value)
}

func TestReadCall(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	call := Call{
		ID:         "0190a000-0000-7000-8000-000000000001",
		Direction:  "source_to_target",
		SourceType: "Geodetic",
		TargetType: "UTM",
		Status:     StatusConversionError,
		ErrorCode:  "PARAMETER_MISMATCH",
		Error:      "identity converter requires equal parameters",
		Seq:        4,
	}
	require.NoError(t, s.WriteCall(ctx, call))
	tr := translation(t, call.ID, 1, "parameters_from_managed")
	require.NoError(t, s.WriteTranslation(ctx, tr))

	gotCall, gotTranslations, err := s.ReadCall(ctx, call.ID)
	require.NoError(t, err)
	assert.Equal(t, call, gotCall)
	assert.Equal(t, []Translation{tr}, gotTranslations)
}

func TestReadCall_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, _, err := s.ReadCall(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCallNotFound)
}

func TestListCalls(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ids := []string{
		"0190a000-0000-7000-8000-000000000001",
		"0190a000-0000-7000-8000-000000000003",
		"0190a000-0000-7000-8000-000000000002",
	}
	statuses := []string{StatusOK, StatusTranslationError, StatusOK}
	for i, id := range ids {
		require.NoError(t, s.WriteCall(ctx, Call{ID: id, Direction: "source_to_target", Status: statuses[i], Seq: int64(i + 1)}))
	}

	t.Run("newest first", func(t *testing.T) {
		calls, err := s.ListCalls(ctx, "", 10)
		require.NoError(t, err)
		require.Len(t, calls, 3)
		assert.Equal(t, ids[1], calls[0].ID)
		assert.Equal(t, ids[2], calls[1].ID)
		assert.Equal(t, ids[0], calls[2].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		calls, err := s.ListCalls(ctx, StatusOK, 10)
		require.NoError(t, err)
		require.Len(t, calls, 2)
		for _, c := range calls {
			assert.Equal(t, StatusOK, c.Status)
		}
	})

	t.Run("limit", func(t *testing.T) {
		calls, err := s.ListCalls(ctx, "", 1)
		require.NoError(t, err)
		assert.Len(t, calls, 1)
	})
}

func TestImportEPSG(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	entries := []epsg.Entry{
		{Code: "4326", Attributes: map[string]string{"Coordinate System": "Geodetic", "Datum": "WGE"}, Line: 2},
		{Code: "32631", Attributes: map[string]string{"Coordinate System": "UTM", "Zone": "31"}, Line: 3},
	}
	n, err := s.ImportEPSG(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, ok, err := s.LookupEPSG(ctx, "32631")
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff(entries[1], got); diff != "" {
		t.Errorf("LookupEPSG() mismatch (-want +got):\n%s", diff)
	}

	var raw string
	require.NoError(t, s.db.QueryRow(`SELECT attributes FROM epsg_codes WHERE code = '4326'`).Scan(&raw))
	assert.Equal(t, `{"Coordinate System":"Geodetic","Datum":"WGE"}`, raw)
}

func TestImportEPSG_Upsert(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.ImportEPSG(ctx, []epsg.Entry{{Code: "4326", Attributes: map[string]string{"Datum": "WGE"}, Line: 2}})
	require.NoError(t, err)
	_, err = s.ImportEPSG(ctx, []epsg.Entry{{Code: "4326", Attributes: map[string]string{"Datum": "WGC"}, Line: 9}})
	require.NoError(t, err)

	got, ok, err := s.LookupEPSG(ctx, "4326")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "WGC", got.Attributes["Datum"])
	assert.Equal(t, 9, got.Line)

	count, err := s.CountEPSG(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLookupEPSG_Unknown(t *testing.T) {
	s := createTestStore(t)
	_, ok, err := s.LookupEPSG(context.Background(), "9999")
	require.NoError(t, err)
	assert.False(t, ok)
}
