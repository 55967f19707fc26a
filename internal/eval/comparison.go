package eval

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func init() {
	register("eq", comparisonFunc(false, func(o value.Ordering, nan bool) bool { return !nan && o == value.OrderEqual }))
	register("neq", comparisonFunc(true, func(o value.Ordering, nan bool) bool { return nan || o != value.OrderEqual }))
	register("lt", comparisonFunc(false, func(o value.Ordering, nan bool) bool { return !nan && o == value.OrderLess }))
	register("lte", comparisonFunc(false, func(o value.Ordering, nan bool) bool { return !nan && (o == value.OrderLess || o == value.OrderEqual) }))
	register("gt", comparisonFunc(false, func(o value.Ordering, nan bool) bool { return !nan && o == value.OrderGreater }))
	register("gte", comparisonFunc(false, func(o value.Ordering, nan bool) bool { return !nan && (o == value.OrderGreater || o == value.OrderEqual) }))
}

// comparisonFunc wires a relational operator into the universal
// propagation rules plus the comparison-specific null handling of §4.2:
// both-Null yields Null for every relational operator; one-Null also
// yields Null (eq(null, v) is Null). crossTypeResult is the fixed boolean
// this operator returns when the two operands have different type orders
// — false for every operator except neq, which is true (§4.2: "different
// type_order -> eq returns false, neq returns true, ordering operators
// return false"). decide receives the canonical Ordering and whether
// either operand is NaN, for the same-type-order case.
func comparisonFunc(crossTypeResult bool, decide func(o value.Ordering, nan bool) bool) Func {
	return func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
		if len(args) != 2 {
			return ErrorResult(typeError("comparison function requires exactly 2 arguments, got %d", len(args)))
		}
		results := e.evalArgs(ctx, doc, args)
		if r, propagated := propagate(results); propagated {
			return r
		}
		if results[0].IsNull() || results[1].IsNull() {
			return NullResult()
		}

		a, b := results[0].Value(), results[1].Value()
		if a.TypeOrder() != b.TypeOrder() {
			return ValueResult(value.Bool(crossTypeResult))
		}

		nan := a.IsNaN() || b.IsNaN()
		return ValueResult(value.Bool(decide(value.Compare(a, b), nan)))
	}
}
