package eval

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/invariant"
)

// Evaluator evaluates expr.Expression trees against documents using a
// function Registry. The zero Registry is never valid; use NewEvaluator to
// get the default builtin table, or supply a custom Registry for testing a
// function in isolation.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator builds an Evaluator backed by the default builtin registry.
func NewEvaluator() *Evaluator {
	return &Evaluator{registry: Default}
}

// NewEvaluatorWithRegistry builds an Evaluator backed by a custom registry.
func NewEvaluatorWithRegistry(r *Registry) *Evaluator {
	invariant.NotNil(r, "registry")
	return &Evaluator{registry: r}
}

// Evaluate maps expression e against (ctx, doc) to a Result, per §4.2.
func (e *Evaluator) Evaluate(ctx document.EvaluateContext, doc document.Document, node expr.Expression) Result {
	switch n := node.(type) {
	case expr.Field:
		return evaluateField(ctx, doc, n)
	case expr.Constant:
		return ValueResult(n.Value)
	case expr.FunctionCall:
		return e.evaluateCall(ctx, doc, n)
	default:
		invariant.Invariant(false, "unknown expression node type %T", node)
		return ErrorResult(nil)
	}
}

func (e *Evaluator) evaluateCall(ctx document.EvaluateContext, doc document.Document, call expr.FunctionCall) Result {
	fn, ok := e.registry.Lookup(call.Name)
	if !ok {
		return ErrorResult(unknownFunctionError(call.Name))
	}
	return fn(e, ctx, doc, call.Args)
}

// evalArgs evaluates every argument left-to-right, for functions that want
// the universal propagation rules applied before their own logic runs.
func (e *Evaluator) evalArgs(ctx document.EvaluateContext, doc document.Document, args []expr.Expression) []Result {
	out := make([]Result, len(args))
	for i, a := range args {
		out[i] = e.Evaluate(ctx, doc, a)
	}
	return out
}

// propagate implements rule 2/3 of the universal propagation table (§4.2):
// any Error or Unset argument makes the whole call Error. It returns
// (propagatedResult, true) when propagation fires, or (zero, false) when
// the caller should proceed to its own semantics.
func propagate(results []Result) (Result, bool) {
	for _, r := range results {
		if r.IsError() {
			return r, true
		}
	}
	for _, r := range results {
		if r.IsUnset() {
			return ErrorResult(errUnsetArgument), true
		}
	}
	return Result{}, false
}

// allNull reports whether every result is Null.
func allNull(results []Result) bool {
	for _, r := range results {
		if !r.IsNull() {
			return false
		}
	}
	return true
}
