package eval

import (
	"math"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func init() {
	register("add", binaryArithmetic(func(a, b value.Number) (value.Number, error) { return arith(a, b, value.AddInt, func(x, y float64) float64 { return x + y }) }))
	register("subtract", binaryArithmetic(func(a, b value.Number) (value.Number, error) { return arith(a, b, value.SubInt, func(x, y float64) float64 { return x - y }) }))
	register("multiply", binaryArithmetic(func(a, b value.Number) (value.Number, error) { return arith(a, b, value.MulInt, func(x, y float64) float64 { return x * y }) }))
	register("divide", binaryArithmetic(divideNumbers))
	register("mod", binaryArithmetic(moduloNumbers))
}

// binaryArithmetic wires a two-argument numeric op into the universal
// propagation rules: non-null/non-error/non-unset numeric operands only,
// null-preserving for binary arithmetic only when BOTH arguments are Null
// (§4.2 rule 4), Error/Unset propagate, non-numeric is Error.
func binaryArithmetic(op func(a, b value.Number) (value.Number, error)) Func {
	return func(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
		if len(args) != 2 {
			return ErrorResult(typeError("arithmetic function requires exactly 2 arguments, got %d", len(args)))
		}
		results := e.evalArgs(ctx, doc, args)
		if r, propagated := propagate(results); propagated {
			return r
		}
		if allNull(results) {
			return NullResult()
		}
		if results[0].IsNull() || results[1].IsNull() {
			return ErrorResult(typeError("arithmetic on null is not defined unless both operands are null"))
		}

		an, ok := results[0].Value().AsNumber()
		if !ok {
			return ErrorResult(typeError("arithmetic operand must be a number"))
		}
		bn, ok := results[1].Value().AsNumber()
		if !ok {
			return ErrorResult(typeError("arithmetic operand must be a number"))
		}

		result, err := op(an, bn)
		if err != nil {
			return ErrorResult(err)
		}
		return ValueResult(value.NumberValue(result))
	}
}

// arith dispatches to checked integer arithmetic when both operands are
// integers, otherwise computes in IEEE-754 float64 (§4.2).
func arith(a, b value.Number, intOp func(int64, int64) (int64, bool), floatOp func(float64, float64) float64) (value.Number, error) {
	if a.IsInt() && b.IsInt() {
		r, overflow := intOp(a.Int(), b.Int())
		if overflow {
			return value.Number{}, typeError("integer arithmetic overflow")
		}
		return value.NumberFromInt(r), nil
	}
	return value.NumberFromFloat(floatOp(a.Real(), b.Real())), nil
}

func divideNumbers(a, b value.Number) (value.Number, error) {
	if a.IsInt() && b.IsInt() {
		if b.Int() == 0 {
			return value.Number{}, typeError("integer division by zero")
		}
		q, overflow, _ := value.DivInt(a.Int(), b.Int())
		if overflow {
			return value.Number{}, typeError("integer division overflow")
		}
		return value.NumberFromInt(q), nil
	}
	// Float division: IEEE-754 semantics, including division by zero
	// producing +/-Inf and 0.0/0.0 producing NaN.
	return value.NumberFromFloat(a.Real() / b.Real()), nil
}

func moduloNumbers(a, b value.Number) (value.Number, error) {
	if a.IsInt() && b.IsInt() {
		if b.Int() == 0 {
			return value.Number{}, typeError("integer modulo by zero")
		}
		r, divByZero := value.ModInt(a.Int(), b.Int())
		if divByZero {
			return value.Number{}, typeError("integer modulo by zero")
		}
		return value.NumberFromInt(r), nil
	}
	// fmod semantics: sign of the dividend.
	return value.NumberFromFloat(math.Mod(a.Real(), b.Real())), nil
}
