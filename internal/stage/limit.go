package stage

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/eval"
)

// Limit truncates to the first N documents (§4.3).
type Limit struct {
	N uint32
}

func (Limit) isStage() {}

func (s Limit) Evaluate(ev *eval.Evaluator, ctx document.EvaluateContext, docs []document.Document) []document.Document {
	n := int(s.N)
	if n > len(docs) {
		n = len(docs)
	}
	out := make([]document.Document, n)
	copy(out, docs[:n])
	return out
}

// Offset skips the first N documents (§4.3).
type Offset struct {
	N uint32
}

func (Offset) isStage() {}

func (s Offset) Evaluate(ev *eval.Evaluator, ctx document.EvaluateContext, docs []document.Document) []document.Document {
	n := int(s.N)
	if n > len(docs) {
		n = len(docs)
	}
	out := make([]document.Document, len(docs)-n)
	copy(out, docs[n:])
	return out
}
