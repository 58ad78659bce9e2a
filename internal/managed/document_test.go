package managed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const pointYAML = `
classes:
  - name: test/Tuple
    fields:
      - {name: kind, kind: int}
      - {name: zone, kind: J}
  - name: test/Point
    super: test/Tuple
    fields:
      - {name: x, kind: double}
      - {name: hemisphere, kind: char}
      - {name: valid, kind: boolean}
      - {name: note, kind: String}
class: test/Point
fields:
  kind: 3
  zone: 18
  x: 5
  hemisphere: "N"
  valid: true
  note: hello
`

func TestDecodeYAMLDocument(t *testing.T) {
	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(pointYAML), &doc))

	rt := NewRuntime()
	obj, err := Decode(rt, doc)
	require.NoError(t, err)

	want := map[string]Value{
		"kind":       Int(3),
		"zone":       Long(18),
		"x":          Double(5),
		"hemisphere": Char('N'),
		"valid":      Boolean(true),
		"note":       String("hello"),
	}
	if diff := cmp.Diff(want, obj.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(pointYAML), &doc))
	rt := NewRuntime()
	obj, err := Decode(rt, doc)
	require.NoError(t, err)

	encoded := Encode(obj)
	assert.Empty(t, encoded.Classes)

	again, err := Decode(rt, encoded)
	require.NoError(t, err)
	assert.Equal(t, obj.Fields(), again.Fields())
	assert.Same(t, obj.Class(), again.Class())
}

func TestDecodeErrors(t *testing.T) {
	rt := NewRuntime()
	_, err := rt.DefineClass("test/Acc", "", FieldDecl{Name: "ce", Kind: KindDouble}, FieldDecl{Name: "n", Kind: KindInt})
	require.NoError(t, err)

	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"missing class", Document{}, "class is required"},
		{"unknown class", Document{Class: "test/Nope"}, "class not found"},
		{"undeclared field", Document{Class: "test/Acc", Fields: map[string]any{"le": 1.0}}, "field not declared"},
		{"wrong kind", Document{Class: "test/Acc", Fields: map[string]any{"ce": "x"}}, "expected double"},
		{"fractional int", Document{Class: "test/Acc", Fields: map[string]any{"n": 1.5}}, "expected integer"},
		{"int overflow", Document{Class: "test/Acc", Fields: map[string]any{"n": int64(1) << 40}}, "overflows int"},
		{"bad class kind", Document{Classes: []ClassDocument{{Name: "test/F", Fields: []FieldDocument{{Name: "f", Kind: "float"}}}}, Class: "test/F"}, "unknown field kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(rt, tt.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var de *DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestDecodeFailureLeavesRuntimeUnchanged(t *testing.T) {
	rt := NewRuntime()
	before := len(rt.Classes())

	doc := Document{
		Classes: []ClassDocument{
			{Name: "test/Base", Fields: []FieldDocument{{Name: "n", Kind: "int"}}},
			{Name: "test/Leaf", Super: "test/Base", Fields: []FieldDocument{{Name: "x", Kind: "double"}}},
		},
		Class:  "test/Leaf",
		Fields: map[string]any{"x": "not a number"},
	}
	_, err := Decode(rt, doc)
	require.ErrorIs(t, err, ErrFieldKind)

	assert.Len(t, rt.Classes(), before)
	_, err = rt.FindClass("test/Base")
	assert.ErrorIs(t, err, ErrClassNotFound)

	// The same declarations with valid fields register both classes, and the
	// object's class is the one now held by rt.
	doc.Fields = map[string]any{"x": 2.5, "n": 1}
	obj, err := Decode(rt, doc)
	require.NoError(t, err)
	leaf, err := rt.FindClass("test/Leaf")
	require.NoError(t, err)
	assert.Same(t, leaf, obj.Class())
	_, err = rt.GetField(obj, "x", KindDouble)
	assert.NoError(t, err)
}

func TestDecodeConflictingStagedClass(t *testing.T) {
	rt := NewRuntime()
	staged := rt.stage()
	_, err := staged.DefineClass("test/Racy", "", FieldDecl{Name: "a", Kind: KindInt})
	require.NoError(t, err)
	_, err = rt.DefineClass("test/Racy", "", FieldDecl{Name: "a", Kind: KindInt})
	require.NoError(t, err)

	assert.ErrorIs(t, rt.commit(staged), ErrClassConflict)
}

func TestCoerce(t *testing.T) {
	v, err := Coerce(KindLong, float64(42))
	require.NoError(t, err)
	assert.Equal(t, Long(42), v)

	v, err = Coerce(KindDouble, 7)
	require.NoError(t, err)
	assert.Equal(t, Double(7), v)

	_, err = Coerce(KindChar, "NS")
	assert.Error(t, err)

	_, err = Coerce(KindBoolean, "true")
	assert.Error(t, err)
}
