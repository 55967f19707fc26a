package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func boolExpr(b bool) expr.Expression { return expr.ConstantOf(value.Bool(b)) }

func TestLogicalAndFalseDominates(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("and", boolExpr(true), boolExpr(false), expr.ConstantOf(value.Int(1))))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.False(t, bv, "false must dominate even with a non-boolean operand present")
}

func TestLogicalOrTrueDominates(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("or", boolExpr(false), boolExpr(true), expr.ConstantOf(value.Int(1))))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv, "true must dominate even with a non-boolean operand present")
}

func TestLogicalXorOddCount(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("xor", boolExpr(true), boolExpr(true), boolExpr(true)))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv)
}

func TestCondShortCircuits(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("cond", boolExpr(true),
		expr.ConstantOf(value.Int(1)),
		expr.Call("divide", expr.ConstantOf(value.Int(1)), expr.ConstantOf(value.Int(0))),
	))
	v := requireValue(t, r)
	n, _ := v.AsNumber()
	assert.Equal(t, int64(1), n.Int())
}

func TestEqAnyNullInListYieldsNull(t *testing.T) {
	ev := eval.NewEvaluator()
	list := expr.ConstantOf(value.Array([]value.Value{value.Null, value.String("alice")}))
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("eq_any", expr.ConstantOf(value.String("bob")), list))
	assert.True(t, r.IsNull())
}

func TestNotEqAnySkipsNullInList(t *testing.T) {
	ev := eval.NewEvaluator()
	list := expr.ConstantOf(value.Array([]value.Value{value.Null, value.String("alice")}))
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("not_eq_any", expr.ConstantOf(value.String("bob")), list))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv)
}

func TestIsErrorSwallowsErrors(t *testing.T) {
	ev := eval.NewEvaluator()
	bad := expr.Call("divide", expr.ConstantOf(value.Int(1)), expr.ConstantOf(value.Int(0)))
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("is_error", bad))
	v := requireValue(t, r)
	bv, _ := v.AsBool()
	assert.True(t, bv)
}

func TestExistsDistinguishesUnsetFromNull(t *testing.T) {
	ev := eval.NewEvaluator()
	doc := testDoc(map[string]value.Value{"present_null": value.Null})

	present := ev.Evaluate(testCtx(), doc, expr.Call("exists", expr.FieldOf("present_null")))
	v := requireValue(t, present)
	bv, _ := v.AsBool()
	assert.True(t, bv, "a field holding null still exists")

	absent := ev.Evaluate(testCtx(), doc, expr.Call("exists", expr.FieldOf("missing")))
	v = requireValue(t, absent)
	bv, _ = v.AsBool()
	assert.False(t, bv)
}

func TestLogicalMaximumSkipsErrorAndNull(t *testing.T) {
	ev := eval.NewEvaluator()
	bad := expr.Call("divide", expr.ConstantOf(value.Int(1)), expr.ConstantOf(value.Int(0)))
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("logical_maximum",
		expr.ConstantOf(value.Int(3)), expr.ConstantOf(value.Null), bad, expr.ConstantOf(value.Int(9))))
	v := requireValue(t, r)
	n, _ := v.AsNumber()
	assert.Equal(t, int64(9), n.Int())
}

func TestLogicalMaximumAllAbsentIsNull(t *testing.T) {
	ev := eval.NewEvaluator()
	r := ev.Evaluate(testCtx(), testDoc(nil), expr.Call("logical_maximum", expr.ConstantOf(value.Null)))
	assert.True(t, r.IsNull())
}
