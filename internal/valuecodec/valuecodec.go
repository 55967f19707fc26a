// Package valuecodec implements canonical CBOR encoding of value.Value and
// document.Document, grounded on the teacher's two-pass
// "canonicalize, then hash" approach in core/planfmt/canonical.go — applied
// here to document values instead of execution plans. It provides
// Marshal/Unmarshal for values and documents and Fingerprint, a hash of a
// value's encoding. Nothing else in this module calls it; the fixture
// package reads YAML, not CBOR.
package valuecodec

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/value"
)

// canonicalEncMode is shared by every Marshal call so encodings are
// byte-for-byte stable across runs (map keys sorted, deterministic integer
// widths), matching CanonicalPlan.MarshalBinary's approach.
var canonicalEncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	m, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("valuecodec: building canonical CBOR encoder: %v", err))
	}
	return m
}

// wireValue is the on-the-wire shape of a value.Value. Only the fields
// matching Kind are meaningful, mirroring Value's own internal layout.
type wireValue struct {
	Kind uint8

	Bool      bool        `cbor:",omitempty"`
	IsFloat   bool        `cbor:",omitempty"`
	Int       int64       `cbor:",omitempty"`
	Float     float64     `cbor:",omitempty"`
	Str       string      `cbor:",omitempty"`
	Bytes     []byte      `cbor:",omitempty"`
	TsSeconds int64       `cbor:",omitempty"`
	TsNanos   int32       `cbor:",omitempty"`
	RefProj   string      `cbor:",omitempty"`
	RefDB     string      `cbor:",omitempty"`
	RefPath   []string    `cbor:",omitempty"`
	GeoLat    float64     `cbor:",omitempty"`
	GeoLng    float64     `cbor:",omitempty"`
	Array     []wireValue `cbor:",omitempty"`
	Vector    []float64   `cbor:",omitempty"`
	Map       map[string]wireValue `cbor:",omitempty"`
}

func toWire(v value.Value) wireValue {
	w := wireValue{Kind: uint8(v.Kind())}
	switch v.Kind() {
	case value.KindBoolean:
		w.Bool, _ = v.AsBool()
	case value.KindNumber:
		n, _ := v.AsNumber()
		w.IsFloat = n.IsFloat()
		if n.IsFloat() {
			w.Float = n.Float()
		} else {
			w.Int = n.Int()
		}
	case value.KindTimestamp:
		ts, _ := v.AsTimestamp()
		w.TsSeconds, w.TsNanos = ts.Seconds, ts.Nanos
	case value.KindString:
		w.Str, _ = v.AsString()
	case value.KindBytes:
		w.Bytes, _ = v.AsBytes()
	case value.KindReference:
		ref, _ := v.AsReference()
		w.RefProj, w.RefDB = ref.Database.ProjectID, ref.Database.DatabaseID
		w.RefPath = ref.Path
	case value.KindGeoPoint:
		geo, _ := v.AsGeoPoint()
		w.GeoLat, w.GeoLng = geo.Latitude, geo.Longitude
	case value.KindArray:
		arr, _ := v.AsArray()
		w.Array = make([]wireValue, len(arr))
		for i, e := range arr {
			w.Array[i] = toWire(e)
		}
	case value.KindVector:
		vec, _ := v.AsVector()
		w.Vector = append([]float64(nil), vec...)
	case value.KindMap:
		m, _ := v.AsMap()
		w.Map = make(map[string]wireValue, len(m))
		for k, e := range m {
			w.Map[k] = toWire(e)
		}
	}
	return w
}

func fromWire(w wireValue) (value.Value, error) {
	switch value.Kind(w.Kind) {
	case value.KindNull:
		return value.Null, nil
	case value.KindBoolean:
		return value.Bool(w.Bool), nil
	case value.KindNumber:
		if w.IsFloat {
			return value.Float(w.Float), nil
		}
		return value.Int(w.Int), nil
	case value.KindTimestamp:
		ts, err := value.NewTimestamp(w.TsSeconds, w.TsNanos)
		if err != nil {
			return value.Value{}, fmt.Errorf("valuecodec: decoding timestamp: %w", err)
		}
		return value.TimestampValue(ts), nil
	case value.KindString:
		return value.String(w.Str), nil
	case value.KindBytes:
		return value.Bytes(w.Bytes), nil
	case value.KindReference:
		return value.ReferenceValue(value.Reference{
			Database: value.DatabaseID{ProjectID: w.RefProj, DatabaseID: w.RefDB},
			Path:     w.RefPath,
		}), nil
	case value.KindGeoPoint:
		g, err := value.GeoPointValue(w.GeoLat, w.GeoLng)
		if err != nil {
			return value.Value{}, fmt.Errorf("valuecodec: decoding geopoint: %w", err)
		}
		return g, nil
	case value.KindArray:
		elems := make([]value.Value, len(w.Array))
		for i, e := range w.Array {
			v, err := fromWire(e)
			if err != nil {
				return value.Value{}, fmt.Errorf("valuecodec: decoding array element %d: %w", i, err)
			}
			elems[i] = v
		}
		return value.Array(elems), nil
	case value.KindVector:
		return value.Vector(w.Vector), nil
	case value.KindMap:
		fields := make(map[string]value.Value, len(w.Map))
		for k, e := range w.Map {
			v, err := fromWire(e)
			if err != nil {
				return value.Value{}, fmt.Errorf("valuecodec: decoding map key %q: %w", k, err)
			}
			fields[k] = v
		}
		return value.Map(fields), nil
	default:
		return value.Value{}, fmt.Errorf("valuecodec: unknown wire kind %d", w.Kind)
	}
}

// MarshalValue encodes v to canonical CBOR.
func MarshalValue(v value.Value) ([]byte, error) {
	data, err := canonicalEncMode.Marshal(toWire(v))
	if err != nil {
		return nil, fmt.Errorf("valuecodec: encoding value: %w", err)
	}
	return data, nil
}

// UnmarshalValue decodes canonical CBOR into a value.Value.
func UnmarshalValue(data []byte) (value.Value, error) {
	var w wireValue
	if err := cbor.Unmarshal(data, &w); err != nil {
		return value.Value{}, fmt.Errorf("valuecodec: decoding value: %w", err)
	}
	return fromWire(w)
}

// Fingerprint computes the SHA-256 hash of v's canonical CBOR encoding.
// Equal fingerprints mean equal encodings, not value.Equal: Int(1) and
// Float(1.0) are Equal but fingerprint differently, and a NaN fingerprints
// the same as itself although value.Equal never matches NaN.
func Fingerprint(v value.Value) ([32]byte, error) {
	data, err := MarshalValue(v)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// wireDocument is the on-the-wire shape of a document.Document.
type wireDocument struct {
	ProjectID   string
	DatabaseID  string
	Path        []string
	VersionSecs int64
	VersionNan  int32
	State       uint8
	Fields      map[string]wireValue `cbor:",omitempty"`
}

// MarshalDocument encodes d to canonical CBOR.
func MarshalDocument(d document.Document) ([]byte, error) {
	w := wireDocument{
		ProjectID:   d.Key.Database.ProjectID,
		DatabaseID:  d.Key.Database.DatabaseID,
		Path:        d.Key.Path,
		VersionSecs: d.Version.Seconds,
		VersionNan:  d.Version.Nanos,
		State:       uint8(d.State),
	}
	if d.State == document.Found {
		w.Fields = make(map[string]wireValue, len(d.Fields))
		for k, v := range d.Fields {
			w.Fields[k] = toWire(v)
		}
	}
	data, err := canonicalEncMode.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("valuecodec: encoding document: %w", err)
	}
	return data, nil
}

// UnmarshalDocument decodes canonical CBOR into a document.Document.
func UnmarshalDocument(data []byte) (document.Document, error) {
	var w wireDocument
	if err := cbor.Unmarshal(data, &w); err != nil {
		return document.Document{}, fmt.Errorf("valuecodec: decoding document: %w", err)
	}
	key := document.Key{
		Database: value.DatabaseID{ProjectID: w.ProjectID, DatabaseID: w.DatabaseID},
		Path:     w.Path,
	}
	version, err := value.NewTimestamp(w.VersionSecs, w.VersionNan)
	if err != nil {
		return document.Document{}, fmt.Errorf("valuecodec: decoding document version: %w", err)
	}

	switch document.State(w.State) {
	case document.NoDocument:
		return document.NewNoDocument(key, version), nil
	case document.Unknown:
		return document.NewUnknownDocument(key, version), nil
	default:
		fields := make(map[string]value.Value, len(w.Fields))
		for k, wv := range w.Fields {
			v, err := fromWire(wv)
			if err != nil {
				return document.Document{}, fmt.Errorf("valuecodec: decoding field %q: %w", k, err)
			}
			fields[k] = v
		}
		return document.NewFoundDocument(key, version, fields), nil
	}
}
