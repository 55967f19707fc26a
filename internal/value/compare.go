package value

import (
	"bytes"
	"sort"
)

// Equal implements Value equality (§4.1): reflexive except NaN, numeric
// coercion across int/float, maps equal iff same key set and all values
// equal, arrays equal iff same length and positional equality, references
// equal iff same database-id and path, timestamps compare by
// (seconds, nanos).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBoolean:
		return a.boolean == b.boolean
	case KindNumber:
		return NumbersEqual(a.number, b.number)
	case KindTimestamp:
		return CompareTimestamps(a.timestamp, b.timestamp) == OrderEqual
	case KindString:
		return a.str == b.str
	case KindBytes:
		return bytes.Equal(a.bytes, b.bytes)
	case KindReference:
		return a.ref.Equal(b.ref)
	case KindGeoPoint:
		return a.geo == b.geo
	case KindArray:
		if len(a.array) != len(b.array) {
			return false
		}
		for i := range a.array {
			if !Equal(a.array[i], b.array[i]) {
				return false
			}
		}
		return true
	case KindVector:
		if len(a.vector) != len(b.vector) {
			return false
		}
		for i := range a.vector {
			if a.vector[i] != b.vector[i] {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.mapv) != len(b.mapv) {
			return false
		}
		for k, av := range a.mapv {
			bv, ok := b.mapv[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare implements the canonical ordering comparator shared by Sort and
// the relational operators (§4.1). Different type orders compare by rank;
// same-rank values compare by variant-specific rules. Numbers use the
// sort-specific NaN-sinks-to-minimum rule of CompareNumbers — callers that
// need predicate semantics (NaN never compares true) must check IsNaN
// themselves before calling Compare, exactly as the evaluator's comparison
// operators do (§4.2).
func Compare(a, b Value) Ordering {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return OrderLess
		}
		return OrderGreater
	}

	switch a.kind {
	case KindNull:
		return OrderEqual
	case KindBoolean:
		return compareBool(a.boolean, b.boolean)
	case KindNumber:
		return CompareNumbers(a.number, b.number)
	case KindTimestamp:
		return CompareTimestamps(a.timestamp, b.timestamp)
	case KindString:
		return orderingFromInt(compareStrings(a.str, b.str))
	case KindBytes:
		return orderingFromInt(bytes.Compare(a.bytes, b.bytes))
	case KindReference:
		return a.ref.Compare(b.ref)
	case KindGeoPoint:
		return a.geo.Compare(b.geo)
	case KindArray:
		return compareArrays(a.array, b.array)
	case KindVector:
		return compareVectors(a.vector, b.vector)
	case KindMap:
		return compareMaps(a.mapv, b.mapv)
	default:
		return OrderIncomparable
	}
}

func compareBool(a, b bool) Ordering {
	if a == b {
		return OrderEqual
	}
	if !a && b {
		return OrderLess
	}
	return OrderGreater
}

// compareStrings is byte-wise lexicographic, which for well-formed UTF-8 is
// equivalent to Unicode code-point order (§4.1).
func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareArrays(a, b []Value) Ordering {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != OrderEqual {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return OrderLess
	case len(a) > len(b):
		return OrderGreater
	default:
		return OrderEqual
	}
}

func compareVectors(a, b []float64) Ordering {
	for i := 0; i < len(a) && i < len(b); i++ {
		na, nb := NumberFromFloat(a[i]), NumberFromFloat(b[i])
		if c := CompareNumbers(na, nb); c != OrderEqual {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return OrderLess
	case len(a) > len(b):
		return OrderGreater
	default:
		return OrderEqual
	}
}

// compareMaps compares sorted (key, value) pairs lexicographically, keys
// compared as strings (§4.1).
func compareMaps(a, b map[string]Value) Ordering {
	aKeys := sortedKeys(a)
	bKeys := sortedKeys(b)

	for i := 0; i < len(aKeys) && i < len(bKeys); i++ {
		if c := compareStrings(aKeys[i], bKeys[i]); c != 0 {
			return orderingFromInt(c)
		}
		if c := Compare(a[aKeys[i]], b[bKeys[i]]); c != OrderEqual {
			return c
		}
	}
	switch {
	case len(aKeys) < len(bKeys):
		return OrderLess
	case len(aKeys) > len(bKeys):
		return OrderGreater
	default:
		return OrderEqual
	}
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
