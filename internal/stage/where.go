package stage

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/expr"
)

// Where emits a document iff Predicate evaluates to the Boolean true. Any
// other outcome — false, Null, Error, Unset, or a non-boolean Value —
// discards the document (§4.3). A pipeline may carry more than one Where in
// sequence; each is independent and the rewriter does not merge them
// (§5.4 of SPEC_FULL.md).
type Where struct {
	Predicate expr.Expression
}

func (Where) isStage() {}

func (s Where) Evaluate(ev *eval.Evaluator, ctx document.EvaluateContext, docs []document.Document) []document.Document {
	out := make([]document.Document, 0, len(docs))
	for _, d := range docs {
		b, ok := ev.Evaluate(ctx, d, s.Predicate).AsBoolean()
		if ok && b {
			out = append(out, d)
		}
	}
	return out
}
