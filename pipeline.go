// Package docpipe is the public surface of the document-pipeline
// evaluation engine: a pure, synchronous, in-memory evaluator for document
// pipelines (§1 of SPEC_FULL.md). Transport, auth, persistence, mutation
// queues, and the surrounding SDK's query-builder surface are external
// collaborators; this package exposes Pipeline, EvaluateContext, Run, their
// constructors, and the type aliases below.
package docpipe

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/stage"
)

// Re-exported document and stage types that appear in this package's API.
// Expressions (internal/expr), values (internal/value), and the concrete
// stage types (internal/stage) are not re-exported.
type (
	Document          = document.Document
	DocumentKey       = document.Key
	DocumentState     = document.State
	Serializer        = document.Serializer
	DefaultSerializer = document.DefaultSerializer
	EvaluateContext   = document.EvaluateContext
	Stage             = stage.Stage
	OrderTerm         = stage.OrderTerm
	Direction         = stage.Direction
)

const (
	Ascending  = stage.Ascending
	Descending = stage.Descending
)

const (
	Found      = document.Found
	NoDocument = document.NoDocument
	Unknown    = document.Unknown
)

// NewEvaluateContext builds an EvaluateContext around the given serializer.
func NewEvaluateContext(s Serializer) EvaluateContext {
	return document.NewEvaluateContext(s)
}

// Pipeline is an immutable stage list plus its rewritten form, computed
// once at construction (§6). AddingStage returns a new Pipeline with a
// fresh rewrite; it never mutates the receiver.
type Pipeline struct {
	stages     []Stage
	rewritten  []Stage
	serializer Serializer
}

// NewPipeline builds a Pipeline from the caller-supplied stage list and
// serializer, computing the rewritten stage list immediately (§4.3, §6).
func NewPipeline(stages []Stage, serializer Serializer) *Pipeline {
	cp := make([]Stage, len(stages))
	copy(cp, stages)
	return &Pipeline{
		stages:     cp,
		rewritten:  stage.Rewrite(cp),
		serializer: serializer,
	}
}

// Stages returns the caller-supplied stage list, not the rewritten one.
func (p *Pipeline) Stages() []Stage {
	cp := make([]Stage, len(p.stages))
	copy(cp, p.stages)
	return cp
}

// RewrittenStages returns the rewritten stage list used by Run.
func (p *Pipeline) RewrittenStages() []Stage {
	cp := make([]Stage, len(p.rewritten))
	copy(cp, p.rewritten)
	return cp
}

// AddingStage returns a new Pipeline with stage appended to the
// caller-supplied list and a fresh rewrite applied (§6).
func (p *Pipeline) AddingStage(s Stage) *Pipeline {
	next := make([]Stage, len(p.stages)+1)
	copy(next, p.stages)
	next[len(p.stages)] = s
	return NewPipeline(next, p.serializer)
}

// Run executes p against inputs: a left fold of the rewritten stage list
// over the input document vector (§4.4). Execution is single-threaded and
// synchronous; stages see the full buffer at each step.
func Run(p *Pipeline, inputs []Document) []Document {
	ctx := NewEvaluateContext(p.serializer)
	ev := eval.NewEvaluator()

	current := make([]Document, len(inputs))
	copy(current, inputs)

	for _, s := range p.rewritten {
		current = s.Evaluate(ev, ctx, current)
	}
	return current
}
