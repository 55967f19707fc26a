// Package stage implements the pipeline operator set of §5.4 of
// SPEC_FULL.md: source stages, Where, Sort, Limit, Offset, and the mandatory
// stage-rewriting pass. The left-fold runner is docpipe.Run in the root
// package. Like expr.Expression, Stage is a sum type sealed to this
// package's concrete types.
package stage

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/expr"
)

// Stage is implemented only by the concrete operator types in this package.
type Stage interface {
	isStage()

	// Evaluate runs the stage over the current document vector and returns
	// the next vector. Stages never mutate the slice they are given.
	Evaluate(ev *eval.Evaluator, ctx document.EvaluateContext, docs []document.Document) []document.Document
}

// Direction is the sort direction of one Sort ordering term.
type Direction uint8

const (
	Ascending Direction = iota
	Descending
)

// OrderTerm pairs an expression with the direction to sort its evaluated
// value by.
type OrderTerm struct {
	Expr      expr.Expression
	Direction Direction
}

// nameOrderTerm is the canonical terminal ordering the rewriter appends:
// (__name__, Ascending).
func nameOrderTerm() OrderTerm {
	return OrderTerm{Expr: expr.FieldOf(document.NameField), Direction: Ascending}
}

// hasNameField reports whether terms already contains an ordering on
// __name__, used by the rewriter to avoid appending a duplicate.
func hasNameField(terms []OrderTerm) bool {
	for _, t := range terms {
		if f, ok := t.Expr.(expr.Field); ok && f.Path == document.NameField {
			return true
		}
	}
	return false
}
