package stage

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/eval"
)

// CollectionSource emits every input document whose key's parent collection
// path equals Path exactly — a strict collection scope, excluding
// subcollections (§4.3).
type CollectionSource struct {
	Path []string
}

func (CollectionSource) isStage() {}

func (s CollectionSource) Evaluate(ev *eval.Evaluator, ctx document.EvaluateContext, docs []document.Document) []document.Document {
	out := make([]document.Document, 0, len(docs))
	for _, d := range docs {
		if collectionPathEqual(d.Key.CollectionPath(), s.Path) {
			out = append(out, d)
		}
	}
	return out
}

func collectionPathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CollectionGroupSource emits every input document whose key's last
// collection segment equals ID, at any depth (§4.3).
type CollectionGroupSource struct {
	ID string
}

func (CollectionGroupSource) isStage() {}

func (s CollectionGroupSource) Evaluate(ev *eval.Evaluator, ctx document.EvaluateContext, docs []document.Document) []document.Document {
	out := make([]document.Document, 0, len(docs))
	for _, d := range docs {
		if d.Key.CollectionID() == s.ID {
			out = append(out, d)
		}
	}
	return out
}

// DatabaseSource emits every input document unchanged.
type DatabaseSource struct{}

func (DatabaseSource) isStage() {}

func (DatabaseSource) Evaluate(ev *eval.Evaluator, ctx document.EvaluateContext, docs []document.Document) []document.Document {
	out := make([]document.Document, len(docs))
	copy(out, docs)
	return out
}
