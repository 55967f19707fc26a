package eval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func TestArithmeticIntegerOverflow(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("add",
		expr.ConstantOf(value.Int(math.MaxInt64)),
		expr.ConstantOf(value.Int(1)),
	))
	assert.True(t, r.IsError())
}

func TestArithmeticFloatPromotion(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("add",
		expr.ConstantOf(value.Int(1)),
		expr.ConstantOf(value.Float(0.5)),
	))
	v := requireValue(t, r)
	n, ok := v.AsNumber()
	assert.True(t, ok)
	assert.True(t, n.IsFloat())
	assert.Equal(t, 1.5, n.Real())
}

func TestArithmeticBothNullPreserves(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("add",
		expr.ConstantOf(value.Null),
		expr.ConstantOf(value.Null),
	))
	assert.True(t, r.IsNull())
}

func TestArithmeticOneNullIsError(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("add",
		expr.ConstantOf(value.Null),
		expr.ConstantOf(value.Int(1)),
	))
	assert.True(t, r.IsError())
}

func TestDivideIntegerByZero(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("divide",
		expr.ConstantOf(value.Int(1)),
		expr.ConstantOf(value.Int(0)),
	))
	assert.True(t, r.IsError())
}

func TestDivideFloatByZeroProducesInf(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("divide",
		expr.ConstantOf(value.Float(1)),
		expr.ConstantOf(value.Float(0)),
	))
	v := requireValue(t, r)
	n, _ := v.AsNumber()
	assert.True(t, math.IsInf(n.Real(), 1))
}

func TestModSignFollowsDividend(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("mod",
		expr.ConstantOf(value.Int(-7)),
		expr.ConstantOf(value.Int(3)),
	))
	v := requireValue(t, r)
	n, _ := v.AsNumber()
	assert.Equal(t, int64(-1), n.Int())
}
