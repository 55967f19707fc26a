package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/value"
)

func testCtx() document.EvaluateContext {
	return document.NewEvaluateContext(document.DefaultSerializer{})
}

func testDoc(fields map[string]value.Value) document.Document {
	key := document.Key{
		Database: value.DatabaseID{ProjectID: "proj", DatabaseID: "(default)"},
		Path:     []string{"items", "doc-1"},
	}
	return document.NewFoundDocument(key, value.Timestamp{Seconds: 1000}, fields)
}

// requireValue asserts r is a Value outcome and returns its payload.
func requireValue(t *testing.T, r eval.Result) value.Value {
	t.Helper()
	require.True(t, r.IsValue(), "expected Value outcome, got outcome %v (err=%v)", r.Outcome(), r.Err())
	return r.Value()
}
