package eval

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func init() {
	register("and", logicalAnd)
	register("or", logicalOr)
	register("xor", logicalXor)
	register("not", logicalNot)
	register("cond", cond)
	register("eq_any", eqAny)
	register("not_eq_any", notEqAny)
	register("is_null", isNull)
	register("is_nan", isNaN)
	register("is_error", isError)
	register("exists", exists)
	register("logical_maximum", logicalExtreme(true))
	register("logical_minimum", logicalExtreme(false))
}

// logicalAnd: true iff all operands are true, false if any operand is
// false, Error otherwise. All arguments are evaluated (§4.2) — unlike a
// short-circuit "and", every operand's side effects (there are none in a
// pure evaluator, but the false-dominance rule still requires scanning
// everything) are observed before concluding.
func logicalAnd(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	sawError, sawFalse := false, false
	for _, a := range args {
		b, ok := e.Evaluate(ctx, doc, a).AsBoolean()
		if !ok {
			sawError = true
			continue
		}
		if !b {
			sawFalse = true
		}
	}
	if sawFalse {
		return ValueResult(value.Bool(false))
	}
	if sawError {
		return ErrorResult(typeError("and: all operands must be boolean"))
	}
	return ValueResult(value.Bool(true))
}

func logicalOr(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	sawError := false
	for _, a := range args {
		b, ok := e.Evaluate(ctx, doc, a).AsBoolean()
		if !ok {
			sawError = true
			continue
		}
		if b {
			return ValueResult(value.Bool(true))
		}
	}
	if sawError {
		return ErrorResult(typeError("or: all operands must be boolean"))
	}
	return ValueResult(value.Bool(false))
}

// logicalXor: true iff the count of true operands is odd; any non-boolean,
// Error, or Unset operand makes the result Error.
func logicalXor(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	trueCount := 0
	for _, a := range args {
		b, ok := e.Evaluate(ctx, doc, a).AsBoolean()
		if !ok {
			return ErrorResult(typeError("xor: all operands must be boolean"))
		}
		if b {
			trueCount++
		}
	}
	return ValueResult(value.Bool(trueCount%2 == 1))
}

func logicalNot(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 1 {
		return ErrorResult(typeError("not requires exactly 1 argument, got %d", len(args)))
	}
	b, ok := e.Evaluate(ctx, doc, args[0]).AsBoolean()
	if !ok {
		return ErrorResult(typeError("not: operand must be boolean"))
	}
	return ValueResult(value.Bool(!b))
}

// cond evaluates its condition; if Error/Unset/non-boolean the whole call
// is Error. The unselected branch is never evaluated (§4.2).
func cond(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 3 {
		return ErrorResult(typeError("cond requires exactly 3 arguments, got %d", len(args)))
	}
	b, ok := e.Evaluate(ctx, doc, args[0]).AsBoolean()
	if !ok {
		return ErrorResult(typeError("cond: condition must be boolean"))
	}
	if b {
		return e.Evaluate(ctx, doc, args[1])
	}
	return e.Evaluate(ctx, doc, args[2])
}

// eqAny: true iff some element of list equals v; otherwise Null if v or
// any element of list is Null (SQL-style three-valued); empty list is false.
func eqAny(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 2 {
		return ErrorResult(typeError("eq_any requires exactly 2 arguments, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if results[0].IsNull() {
		return NullResult()
	}
	list, ok := results[1].Value().AsArray()
	if !ok {
		if results[1].IsNull() {
			return NullResult()
		}
		return ErrorResult(typeError("eq_any: second argument must be an array"))
	}
	v := results[0].Value()
	sawNull := false
	for _, item := range list {
		if item.IsNull() {
			sawNull = true
			continue
		}
		if value.Equal(v, item) {
			return ValueResult(value.Bool(true))
		}
	}
	if sawNull {
		return NullResult()
	}
	return ValueResult(value.Bool(false))
}

// notEqAny: Null elements in list are skipped; false iff v equals any
// non-null element of list; Null if v itself is Null.
func notEqAny(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 2 {
		return ErrorResult(typeError("not_eq_any requires exactly 2 arguments, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if results[0].IsNull() {
		return NullResult()
	}
	list, ok := results[1].Value().AsArray()
	if !ok {
		return ErrorResult(typeError("not_eq_any: second argument must be an array"))
	}
	v := results[0].Value()
	for _, item := range list {
		if item.IsNull() {
			continue
		}
		if value.Equal(v, item) {
			return ValueResult(value.Bool(false))
		}
	}
	return ValueResult(value.Bool(true))
}

// isNull: true iff x is the Null variant; Error if x is Error/Unset;
// otherwise false. This is one of the propagation exemptions (§4.2).
func isNull(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 1 {
		return ErrorResult(typeError("is_null requires exactly 1 argument, got %d", len(args)))
	}
	r := e.Evaluate(ctx, doc, args[0])
	switch {
	case r.IsError():
		return r
	case r.IsUnset():
		return ErrorResult(errUnsetArgument)
	case r.IsNull():
		return ValueResult(value.Bool(true))
	default:
		return ValueResult(value.Bool(false))
	}
}

// isNaN: Error if non-numeric; true iff x is NaN; else false. Null
// argument yields Null.
func isNaN(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 1 {
		return ErrorResult(typeError("is_nan requires exactly 1 argument, got %d", len(args)))
	}
	r := e.Evaluate(ctx, doc, args[0])
	if r.IsError() {
		return r
	}
	if r.IsUnset() {
		return ErrorResult(errUnsetArgument)
	}
	if r.IsNull() {
		return NullResult()
	}
	n, ok := r.Value().AsNumber()
	if !ok {
		return ErrorResult(typeError("is_nan: argument must be numeric"))
	}
	return ValueResult(value.Bool(n.IsNaN()))
}

// isError always returns Boolean: the only builtin that swallows errors.
func isError(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 1 {
		return ErrorResult(typeError("is_error requires exactly 1 argument, got %d", len(args)))
	}
	r := e.Evaluate(ctx, doc, args[0])
	return ValueResult(value.Bool(r.IsError()))
}

// exists: true iff the field resolves to a value (including Null), false
// if Unset, Error only if the argument itself is Error.
func exists(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 1 {
		return ErrorResult(typeError("exists requires exactly 1 argument, got %d", len(args)))
	}
	r := e.Evaluate(ctx, doc, args[0])
	switch {
	case r.IsError():
		return r
	case r.IsUnset():
		return ValueResult(value.Bool(false))
	default:
		return ValueResult(value.Bool(true))
	}
}

// logicalExtreme builds logical_maximum (max=true) and logical_minimum
// (max=false): skip Error and Unset arguments entirely; if only Null and
// skipped arguments remain, return Null. NaN is the minimum of the numeric
// class (CompareNumbers' sort rule): for logical_maximum it wins only when
// no other number remains, and for logical_minimum it wins over every
// other number. Ties break by operand order — the first operand achieving
// the extreme wins.
func logicalExtreme(max bool) Func {
	return func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
		var best value.Value
		haveBest := false

		for _, a := range args {
			r := e.Evaluate(ctx, doc, a)
			if r.IsError() || r.IsUnset() || r.IsNull() {
				continue
			}
			v := r.Value()
			if !haveBest {
				best = v
				haveBest = true
				continue
			}
			if extremeWins(max, best, v) {
				best = v
			}
		}

		if !haveBest {
			return NullResult()
		}
		return ValueResult(best)
	}
}

// extremeWins reports whether candidate should replace current as the
// running extreme. NaN sorts as the minimum of the Number class
// (CompareNumbers), so for logical_maximum a NaN candidate never displaces
// a non-NaN current, and for logical_minimum a NaN candidate always wins
// over a non-NaN current.
func extremeWins(max bool, current, candidate value.Value) bool {
	c := value.Compare(current, candidate)
	if max {
		return c == value.OrderLess
	}
	return c == value.OrderGreater
}
