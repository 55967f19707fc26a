package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func TestArrayContainsCoercesNumbers(t *testing.T) {
	ev := eval.NewEvaluator()
	arr := expr.ConstantOf(value.Array([]value.Value{value.Int(1), value.Int(2)}))
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_contains", arr, expr.ConstantOf(value.Float(2.0))))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv)
}

func TestArrayContainsSearchValueNullIsNull(t *testing.T) {
	ev := eval.NewEvaluator()
	arr := expr.ConstantOf(value.Array([]value.Value{value.Null}))
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_contains", arr, expr.ConstantOf(value.Null)))
	assert.True(t, r.IsNull(), "array_contains(arr, null) must be Null, even when arr contains null")

	empty := expr.ConstantOf(value.Array(nil))
	r = ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_contains", empty, expr.ConstantOf(value.Null)))
	assert.True(t, r.IsNull(), "array_contains(empty_arr, null) must be Null")
}

func TestArrayContainsBothNullIsNull(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_contains",
		expr.ConstantOf(value.Null), expr.ConstantOf(value.Null)))
	assert.True(t, r.IsNull())
}

func TestArrayContainsAllNonArrayListIsError(t *testing.T) {
	ev := eval.NewEvaluator()
	arr := expr.ConstantOf(value.Array([]value.Value{value.Int(1)}))
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_contains_all", arr, expr.ConstantOf(value.Int(1))))
	assert.True(t, r.IsError())
}

func TestArrayContainsAllBothNullIsNull(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_contains_all",
		expr.ConstantOf(value.Null), expr.ConstantOf(value.Null)))
	assert.True(t, r.IsNull())
}

func TestArrayContainsAnyBothNullIsNull(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_contains_any",
		expr.ConstantOf(value.Null), expr.ConstantOf(value.Null)))
	assert.True(t, r.IsNull())
}

func TestArrayContainsAnySkipsNullEntries(t *testing.T) {
	ev := eval.NewEvaluator()
	arr := expr.ConstantOf(value.Array([]value.Value{value.Int(1)}))
	list := expr.ConstantOf(value.Array([]value.Value{value.Null, value.Int(1)}))
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_contains_any", arr, list))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv)
}

func TestArrayLengthNullPreserving(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("array_length", expr.ConstantOf(value.Null)))
	assert.True(t, r.IsNull())
}

func TestMapGetFoundAndMissing(t *testing.T) {
	ev := eval.NewEvaluator()
	m := expr.ConstantOf(value.Map(map[string]value.Value{"a": value.Int(1)}))

	found := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("map_get", m, expr.ConstantOf(value.String("a"))))
	v := requireValue(t, found)
	n, _ := v.AsNumber()
	assert.Equal(t, int64(1), n.Int())

	missing := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("map_get", m, expr.ConstantOf(value.String("b"))))
	assert.True(t, missing.IsUnset())
}
