package document

import "github.com/aledsdavies/docpipe/internal/value"

// Serializer is the external collaborator consumed by the evaluator to
// synthesize the __name__ and __update_time__ pseudo-fields (the Serializer
// hook of §2 of SPEC_FULL.md). It is borrowed immutably by an EvaluateContext; the core
// never owns or mutates it, and it must round-trip with whatever wire
// format the surrounding SDK uses for references.
type Serializer interface {
	EncodeKey(key Key) value.Value
	EncodeVersion(version value.Timestamp) value.Value
}

// DefaultSerializer encodes keys as Reference values and versions as
// Timestamp values directly, with no wire-format indirection. It is the
// serializer fixtures and the demo CLI use when no external encoding is
// supplied.
type DefaultSerializer struct{}

// EncodeKey implements Serializer.
func (DefaultSerializer) EncodeKey(key Key) value.Value {
	return value.ReferenceValue(key.Reference())
}

// EncodeVersion implements Serializer.
func (DefaultSerializer) EncodeVersion(version value.Timestamp) value.Value {
	return value.TimestampValue(version)
}

// EvaluateContext borrows a Serializer for the duration of one evaluation.
// It carries no other state — there is nothing else for the core to hold,
// per §6: no cancellation, no I/O, no retries.
type EvaluateContext struct {
	Serializer Serializer
}

// NewEvaluateContext constructs a context around the given serializer.
func NewEvaluateContext(s Serializer) EvaluateContext {
	return EvaluateContext{Serializer: s}
}
