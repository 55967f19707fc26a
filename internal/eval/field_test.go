package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func TestFieldNamePseudoField(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.FieldOf(document.NameField))
	v := requireValue(t, r)
	_, ok := v.AsReference()
	assert.True(t, ok)
}

func TestFieldUpdateTimePseudoField(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.FieldOf(document.UpdateTimeField))
	v := requireValue(t, r)
	ts, ok := v.AsTimestamp()
	assert.True(t, ok)
	assert.Equal(t, int64(1000), ts.Seconds)
}

func TestFieldMissingIsUnset(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.FieldOf("nope"))
	assert.True(t, r.IsUnset())
}

func TestFieldDottedPathNavigatesNestedMaps(t *testing.T) {
	ev := eval.NewEvaluator()
	doc := testDoc(map[string]value.Value{
		"address": value.Map(map[string]value.Value{
			"city": value.String("springfield"),
		}),
	})
	r := ev.Evaluate(testCtx(), doc, expr.FieldOf("address.city"))
	v := requireValue(t, r)
	s, _ := v.AsString()
	assert.Equal(t, "springfield", s)
}

func TestFieldDottedPathThroughNonMapIsUnset(t *testing.T) {
	ev := eval.NewEvaluator()
	doc := testDoc(map[string]value.Value{"age": value.Int(5)})
	r := ev.Evaluate(testCtx(), doc, expr.FieldOf("age.years"))
	assert.True(t, r.IsUnset())
}

func TestFieldHoldingNullIsNullNotUnset(t *testing.T) {
	ev := eval.NewEvaluator()
	doc := testDoc(map[string]value.Value{"middle_name": value.Null})
	r := ev.Evaluate(testCtx(), doc, expr.FieldOf("middle_name"))
	assert.True(t, r.IsNull())
}

func TestFieldOnNonFoundDocumentIsUnset(t *testing.T) {
	ev := eval.NewEvaluator()
	key := document.Key{
		Database: value.DatabaseID{ProjectID: "proj", DatabaseID: "(default)"},
		Path:     []string{"items", "missing"},
	}
	doc := document.NewNoDocument(key, value.Timestamp{Seconds: 0})
	r := ev.Evaluate(testCtx(), doc, expr.FieldOf("any"))
	assert.True(t, r.IsUnset())
}
