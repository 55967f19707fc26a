package stage

import (
	"sort"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/eval"
	"github.com/aledsdavies/docpipe/internal/value"
)

// Sort stably orders documents by the lexicographic tuple of Terms. For
// each term, Error/Unset/Null evaluations all map to a single "absent"
// sentinel that sorts before every present value in ascending order (and
// after, in descending) — §4.3.
type Sort struct {
	Terms []OrderTerm
}

func (Sort) isStage() {}

func (s Sort) Evaluate(ev *eval.Evaluator, ctx document.EvaluateContext, docs []document.Document) []document.Document {
	keys := make([][]sortKey, len(docs))
	for i, d := range docs {
		keys[i] = make([]sortKey, len(s.Terms))
		for j, term := range s.Terms {
			keys[i][j] = evaluateSortKey(ev, ctx, d, term)
		}
	}

	// Sort indices rather than documents so each keys[i] stays paired with
	// docs[i] while the sort moves elements around.
	order := make([]int, len(docs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		i, j := order[x], order[y]
		for t := range s.Terms {
			c := compareSortKeys(keys[i][t], keys[j][t])
			if c == 0 {
				continue
			}
			if s.Terms[t].Direction == Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	out := make([]document.Document, len(docs))
	for k, i := range order {
		out[k] = docs[i]
	}
	return out
}

// sortKey is the per-term comparison unit: either the absent sentinel or a
// present value.
type sortKey struct {
	absent bool
	v      value.Value
}

func evaluateSortKey(ev *eval.Evaluator, ctx document.EvaluateContext, d document.Document, term OrderTerm) sortKey {
	r := ev.Evaluate(ctx, d, term.Expr)
	if r.IsError() || r.IsUnset() || r.IsNull() {
		return sortKey{absent: true}
	}
	return sortKey{v: r.Value()}
}

// compareSortKeys orders two keys for ascending comparison (direction is
// applied by the caller): absent sorts before every present value, two
// absents compare equal, two present values compare by §4.1.
func compareSortKeys(a, b sortKey) int {
	switch {
	case a.absent && b.absent:
		return 0
	case a.absent:
		return -1
	case b.absent:
		return 1
	default:
		switch value.Compare(a.v, b.v) {
		case value.OrderLess:
			return -1
		case value.OrderGreater:
			return 1
		default:
			return 0
		}
	}
}
