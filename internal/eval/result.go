// Package eval implements the expression evaluator: it maps an expr.Expression
// plus (document.EvaluateContext, document.Document) to an EvaluateResult,
// per §5.3 of SPEC_FULL.md. The evaluator is a pure function — it never
// blocks, suspends, or retries (§1 of SPEC_FULL.md).
package eval

import "github.com/aledsdavies/docpipe/internal/value"

// Outcome tags an EvaluateResult's variant. There are four, not two:
// Error and Unset are kept distinct from Null throughout, because
// conflating "missing" with "null" breaks exists() and eq_any().
type Outcome uint8

const (
	OutcomeError Outcome = iota
	OutcomeUnset
	OutcomeNull
	OutcomeValue
)

// Result is the tagged union EvaluateResult of §4.2.
type Result struct {
	outcome Outcome
	value   value.Value
	err     error
}

// ErrorResult builds an Error outcome. err is retained for diagnostics only
// — it never changes control flow outside is_error() and is never a Go
// panic/exception (§7).
func ErrorResult(err error) Result { return Result{outcome: OutcomeError, err: err} }

// Unset builds the Unset outcome (field missing).
func Unset() Result { return Result{outcome: OutcomeUnset} }

// NullResult builds the Null outcome.
func NullResult() Result { return Result{outcome: OutcomeNull} }

// ValueResult builds a Value outcome. Given the Null literal value it
// returns the Null outcome instead, so a Result never carries Null as a
// Value.
func ValueResult(v value.Value) Result {
	if v.IsNull() {
		return NullResult()
	}
	return Result{outcome: OutcomeValue, value: v}
}

// Outcome reports which variant r holds.
func (r Result) Outcome() Outcome { return r.outcome }

// IsError reports whether r is the Error outcome.
func (r Result) IsError() bool { return r.outcome == OutcomeError }

// IsUnset reports whether r is the Unset outcome.
func (r Result) IsUnset() bool { return r.outcome == OutcomeUnset }

// IsNull reports whether r is the Null outcome.
func (r Result) IsNull() bool { return r.outcome == OutcomeNull }

// IsValue reports whether r carries a Value.
func (r Result) IsValue() bool { return r.outcome == OutcomeValue }

// Value returns the carried value.Value; only meaningful when IsValue()
// is true.
func (r Result) Value() value.Value { return r.value }

// Err returns the carried diagnostic error; only meaningful when IsError()
// is true.
func (r Result) Err() error { return r.err }

// AsBoolean reports the Boolean payload and whether r is a Value outcome
// carrying a Boolean — the shape predicates (Where, and/or/not/cond, ...)
// use pervasively: any other outcome is treated as "not a boolean".
func (r Result) AsBoolean() (bool, bool) {
	if r.outcome != OutcomeValue {
		return false, false
	}
	return r.value.AsBool()
}
