package eval

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

func init() {
	register("array_contains", arrayContains)
	register("array_contains_all", arrayContainsAll)
	register("array_contains_any", arrayContainsAny)
	register("array_length", arrayLength)
	register("map_get", mapGet)
}

func arrayContains(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 2 {
		return ErrorResult(typeError("array_contains requires exactly 2 arguments, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if results[0].IsNull() && results[1].IsNull() {
		return NullResult()
	}
	arr, ok := results[0].Value().AsArray()
	if !ok {
		return ErrorResult(typeError("array_contains: first argument must be an array"))
	}
	if results[1].IsNull() {
		return NullResult()
	}
	needle := results[1].Value()
	return ValueResult(value.Bool(containsValue(arr, needle)))
}

func arrayContainsAll(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 2 {
		return ErrorResult(typeError("array_contains_all requires exactly 2 arguments, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if results[0].IsNull() && results[1].IsNull() {
		return NullResult()
	}
	arr, ok := results[0].Value().AsArray()
	if !ok {
		return ErrorResult(typeError("array_contains_all: first argument must be an array"))
	}
	list, ok := results[1].Value().AsArray()
	if !ok {
		return ErrorResult(typeError("array_contains_all: second argument must be an array"))
	}
	for _, want := range list {
		if want.IsNull() {
			// Null in list does not match Null in arr.
			return ValueResult(value.Bool(false))
		}
		if !containsValue(arr, want) {
			return ValueResult(value.Bool(false))
		}
	}
	return ValueResult(value.Bool(true))
}

func arrayContainsAny(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 2 {
		return ErrorResult(typeError("array_contains_any requires exactly 2 arguments, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if results[0].IsNull() && results[1].IsNull() {
		return NullResult()
	}
	arr, ok := results[0].Value().AsArray()
	if !ok {
		return ErrorResult(typeError("array_contains_any: first argument must be an array"))
	}
	list, ok := results[1].Value().AsArray()
	if !ok {
		return ErrorResult(typeError("array_contains_any: second argument must be an array"))
	}
	for _, want := range list {
		if want.IsNull() {
			continue // Null entries are skipped on both sides and never match.
		}
		if containsValue(arr, want) {
			return ValueResult(value.Bool(true))
		}
	}
	return ValueResult(value.Bool(false))
}

func arrayLength(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 1 {
		return ErrorResult(typeError("array_length requires exactly 1 argument, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if results[0].IsNull() {
		return NullResult()
	}
	arr, ok := results[0].Value().AsArray()
	if !ok {
		return ErrorResult(typeError("array_length: argument must be an array"))
	}
	return ValueResult(value.Int(int64(len(arr))))
}

func mapGet(e *Evaluator, ctx document.EvaluateContext, doc document.Document, args []expr.Expression) Result {
	if len(args) != 2 {
		return ErrorResult(typeError("map_get requires exactly 2 arguments, got %d", len(args)))
	}
	results := e.evalArgs(ctx, doc, args)
	if r, propagated := propagate(results); propagated {
		return r
	}
	if results[0].IsNull() || results[1].IsNull() {
		return Unset()
	}
	key, ok := results[1].Value().AsString()
	if !ok {
		return ErrorResult(typeError("map_get: key must be a string"))
	}
	found, ok := lookupMap(results[0].Value(), key)
	if !ok {
		return Unset()
	}
	if found.IsNull() {
		return NullResult()
	}
	return ValueResult(found)
}

// containsValue reports whether elem equals some element of arr under
// value equality, which coerces int/float and never matches NaN or Null.
func containsValue(arr []value.Value, elem value.Value) bool {
	if elem.IsNull() || elem.IsNaN() {
		return false
	}
	for _, v := range arr {
		if value.Equal(v, elem) {
			return true
		}
	}
	return false
}
