// Package value implements the tagged-union document value type shared by
// the expression evaluator, the stage operators, and the canonical sort
// order. A Value is immutable once constructed; Array and Map variants own
// copies of their children so callers may freely alias a Value across
// evaluations without synchronization.
package value

import (
	"fmt"
)

// Kind identifies the variant held by a Value. The numeric order of these
// constants is the type-order rank used for cross-type comparison — do not
// reorder them.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindTimestamp
	KindString
	KindBytes
	KindReference
	KindGeoPoint
	KindArray
	KindVector
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindTimestamp:
		return "timestamp"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindReference:
		return "reference"
	case KindGeoPoint:
		return "geopoint"
	case KindArray:
		return "array"
	case KindVector:
		return "vector"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a recursive sum type over every document value kind in §3 of the
// specification. Only the field matching Kind is meaningful; callers use the
// As* accessors rather than reaching into the struct directly so the
// representation can change without breaking callers.
type Value struct {
	kind Kind

	boolean   bool
	number    Number
	timestamp Timestamp
	str       string
	bytes     []byte
	ref       Reference
	geo       GeoPoint
	array     []Value
	vector    []float64 // Vector payload: a tagged numeric array
	mapv      map[string]Value
}

// Null is the singular Null value.
var Null = Value{kind: KindNull}

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Int constructs an integer Number value.
func Int(n int64) Value { return Value{kind: KindNumber, number: NumberFromInt(n)} }

// Float constructs a floating-point Number value.
func Float(f float64) Value { return Value{kind: KindNumber, number: NumberFromFloat(f)} }

// NumberValue wraps an already-built Number.
func NumberValue(n Number) Value { return Value{kind: KindNumber, number: n} }

// String constructs a String value. The caller is responsible for supplying
// well-formed UTF-8; ill-formed input is accepted at construction and only
// rejected by the string functions that require validity (§4.2).
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bytes constructs a Bytes value. The slice is copied to preserve immutability.
func Bytes(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBytes, bytes: cp}
}

// TimestampValue constructs a Timestamp value.
func TimestampValue(ts Timestamp) Value { return Value{kind: KindTimestamp, timestamp: ts} }

// ReferenceValue constructs a Reference value.
func ReferenceValue(r Reference) Value { return Value{kind: KindReference, ref: r} }

// GeoPointValue constructs a GeoPoint value. Returns an error if the
// coordinates are out of range ([-90,90] latitude, [-180,180] longitude) —
// construction fails loudly rather than silently clamping (§5.1 of
// SPEC_FULL.md).
func GeoPointValue(lat, lng float64) (Value, error) {
	g, err := NewGeoPoint(lat, lng)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindGeoPoint, geo: g}, nil
}

// Array constructs an Array value from a copy of elements.
func Array(elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, array: cp}
}

// Vector constructs a Vector value from a copy of a numeric payload.
func Vector(nums []float64) Value {
	cp := make([]float64, len(nums))
	copy(cp, nums)
	return Value{kind: KindVector, vector: cp}
}

// Map constructs a Map value from a copy of the field set.
func Map(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Value{kind: KindMap, mapv: cp}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// TypeOrder returns the cross-type comparison rank from §4.1.
func (v Value) TypeOrder() int { return int(v.kind) }

// IsNull reports whether v is the Null variant. Per §3, IsNull(NaN) is
// false — NaN is a Number, not Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNaN reports whether v is a Number holding NaN.
func (v Value) IsNaN() bool {
	return v.kind == KindNumber && v.number.IsNaN()
}

// AsBool returns the boolean payload and whether v is a Boolean.
func (v Value) AsBool() (bool, bool) { return v.boolean, v.kind == KindBoolean }

// AsNumber returns the Number payload and whether v is a Number.
func (v Value) AsNumber() (Number, bool) { return v.number, v.kind == KindNumber }

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsBytes returns the bytes payload and whether v is Bytes.
func (v Value) AsBytes() ([]byte, bool) { return v.bytes, v.kind == KindBytes }

// AsTimestamp returns the timestamp payload and whether v is a Timestamp.
func (v Value) AsTimestamp() (Timestamp, bool) { return v.timestamp, v.kind == KindTimestamp }

// AsReference returns the reference payload and whether v is a Reference.
func (v Value) AsReference() (Reference, bool) { return v.ref, v.kind == KindReference }

// AsGeoPoint returns the geopoint payload and whether v is a GeoPoint.
func (v Value) AsGeoPoint() (GeoPoint, bool) { return v.geo, v.kind == KindGeoPoint }

// AsArray returns the array payload and whether v is an Array.
func (v Value) AsArray() ([]Value, bool) { return v.array, v.kind == KindArray }

// AsVector returns the vector payload and whether v is a Vector.
func (v Value) AsVector() ([]float64, bool) { return v.vector, v.kind == KindVector }

// AsMap returns the map payload and whether v is a Map.
func (v Value) AsMap() (map[string]Value, bool) { return v.mapv, v.kind == KindMap }

// String renders a debug representation; it is not used for any semantic
// comparison and has no stability guarantee across versions.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		return fmt.Sprintf("%t", v.boolean)
	case KindNumber:
		return v.number.String()
	case KindTimestamp:
		return v.timestamp.String()
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindBytes:
		return fmt.Sprintf("bytes(%x)", v.bytes)
	case KindReference:
		return v.ref.String()
	case KindGeoPoint:
		return fmt.Sprintf("geo(%g,%g)", v.geo.Latitude, v.geo.Longitude)
	case KindArray:
		return fmt.Sprintf("array(len=%d)", len(v.array))
	case KindVector:
		return fmt.Sprintf("vector(len=%d)", len(v.vector))
	case KindMap:
		return fmt.Sprintf("map(len=%d)", len(v.mapv))
	default:
		return "<invalid>"
	}
}
