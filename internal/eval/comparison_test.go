package eval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func TestComparisonCrossTypeAlwaysFalseExceptNeq(t *testing.T) {
	ev := eval.NewEvaluator()
	doc := testDoc(nil)
	a := expr.ConstantOf(value.Int(5))
	b := expr.ConstantOf(value.String("5"))

	for _, name := range []string{"eq", "lt", "lte", "gt", "gte"} {
		r := ev.Evaluate(testCtx(), doc, expr.Call(name, a, b))
		v := requireValue(t, r)
		bv, _ := v.AsBool()
		assert.False(t, bv, "%s across types must be false", name)
	}
	r := ev.Evaluate(testCtx(), doc, expr.Call("neq", a, b))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv, "neq across types must be true")
}

func TestComparisonNumericCoercion(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("eq",
		expr.ConstantOf(value.Int(1)),
		expr.ConstantOf(value.Float(1.0)),
	))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv)
}

func TestComparisonNaNNeverTrue(t *testing.T) {
	ev := eval.NewEvaluator()
	doc := testDoc(nil)
	nan := expr.ConstantOf(value.Float(math.NaN()))
	five := expr.ConstantOf(value.Int(5))

	for _, name := range []string{"eq", "lt", "lte", "gt", "gte"} {
		r := ev.Evaluate(testCtx(), doc, expr.Call(name, nan, five))
		v := requireValue(t, r)
		bv, _ := v.AsBool()
		assert.False(t, bv, "%s against NaN must be false", name)
	}
	r := ev.Evaluate(testCtx(), doc, expr.Call("neq", nan, five))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv, "neq against NaN must be true")
}

func TestComparisonNullYieldsNull(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("eq",
		expr.ConstantOf(value.Null),
		expr.ConstantOf(value.Int(1)),
	))
	assert.True(t, r.IsNull())
}
