package valuecodec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/value"
	"github.com/aledsdavies/docpipe/internal/valuecodec"
)

func TestMarshalUnmarshalValueRoundTrip(t *testing.T) {
	cases := []value.Value{
		value.Null,
		value.Bool(true),
		value.Int(42),
		value.Float(3.5),
		value.String("hello"),
		value.Bytes([]byte{1, 2, 3}),
		value.Array([]value.Value{value.Int(1), value.String("a")}),
		value.Map(map[string]value.Value{"a": value.Int(1)}),
		value.Vector([]float64{1, 2, 3}),
	}
	for _, v := range cases {
		data, err := valuecodec.MarshalValue(v)
		require.NoError(t, err)
		got, err := valuecodec.UnmarshalValue(data)
		require.NoError(t, err)
		assert.True(t, value.Equal(v, got), "round-tripped value must equal original")
	}
}

func TestMarshalValueIsCanonicalAcrossMapKeyOrder(t *testing.T) {
	a := value.Map(map[string]value.Value{"b": value.Int(2), "a": value.Int(1)})
	b := value.Map(map[string]value.Value{"a": value.Int(1), "b": value.Int(2)})

	da, err := valuecodec.MarshalValue(a)
	require.NoError(t, err)
	db, err := valuecodec.MarshalValue(b)
	require.NoError(t, err)
	assert.Equal(t, da, db, "canonical CBOR must sort map keys regardless of insertion order")
}

func TestFingerprintIsDeterministic(t *testing.T) {
	v := value.String("stable")
	f1, err := valuecodec.Fingerprint(v)
	require.NoError(t, err)
	f2, err := valuecodec.Fingerprint(v)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
}

func TestFingerprintDiffersOnDifferentValues(t *testing.T) {
	f1, err := valuecodec.Fingerprint(value.Int(1))
	require.NoError(t, err)
	f2, err := valuecodec.Fingerprint(value.Int(2))
	require.NoError(t, err)
	assert.NotEqual(t, f1, f2)
}

func TestMarshalUnmarshalDocumentRoundTrip(t *testing.T) {
	key := document.Key{
		Database: value.DatabaseID{ProjectID: "proj", DatabaseID: "(default)"},
		Path:     []string{"items", "doc-1"},
	}
	d := document.NewFoundDocument(key, value.Timestamp{Seconds: 100, Nanos: 5}, map[string]value.Value{
		"name": value.String("widget"),
	})
	data, err := valuecodec.MarshalDocument(d)
	require.NoError(t, err)
	got, err := valuecodec.UnmarshalDocument(data)
	require.NoError(t, err)

	fieldStrings := func(doc document.Document) map[string]string {
		out := make(map[string]string, len(doc.Fields))
		for k, v := range doc.Fields {
			out[k] = v.String()
		}
		return out
	}
	if diff := cmp.Diff(fieldStrings(d), fieldStrings(got)); diff != "" {
		t.Errorf("round-tripped fields differ (-want +got):\n%s", diff)
	}
	assert.Equal(t, d.Key, got.Key)
	assert.Equal(t, d.Version, got.Version)
	assert.Equal(t, d.State, got.State)
}

func TestMarshalUnmarshalNoDocumentRoundTrip(t *testing.T) {
	key := document.Key{
		Database: value.DatabaseID{ProjectID: "proj", DatabaseID: "(default)"},
		Path:     []string{"items", "gone"},
	}
	d := document.NewNoDocument(key, value.Timestamp{Seconds: 1})
	data, err := valuecodec.MarshalDocument(d)
	require.NoError(t, err)
	got, err := valuecodec.UnmarshalDocument(data)
	require.NoError(t, err)
	assert.Equal(t, document.NoDocument, got.State)
}
