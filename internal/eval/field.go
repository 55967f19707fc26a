package eval

import (
	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/value"
)

// evaluateField resolves a Field expression against the current document,
// synthesizing the two pseudo-fields and otherwise navigating the dotted
// path through the field map (§4.2).
func evaluateField(ctx document.EvaluateContext, doc document.Document, f expr.Field) Result {
	switch f.Path {
	case document.NameField:
		ref := ctx.Serializer.EncodeKey(doc.Key)
		return ValueResult(ref)
	case document.UpdateTimeField:
		ts := ctx.Serializer.EncodeVersion(doc.Version)
		return ValueResult(ts)
	}

	if doc.State != document.Found {
		return Unset()
	}

	segments := f.Segments()
	if len(segments) == 0 {
		return Unset()
	}

	current, ok := doc.Fields[segments[0]]
	if !ok {
		return Unset()
	}
	for _, seg := range segments[1:] {
		m, isMap := current.AsMap()
		if !isMap {
			return Unset()
		}
		next, ok := m[seg]
		if !ok {
			return Unset()
		}
		current = next
	}

	if current.IsNull() {
		return NullResult()
	}
	return ValueResult(current)
}

// lookupMap is the map_get helper: it applies one key to a Value, which
// must be a Map.
func lookupMap(v value.Value, key string) (value.Value, bool) {
	m, ok := v.AsMap()
	if !ok {
		return value.Value{}, false
	}
	found, ok := m[key]
	return found, ok
}
