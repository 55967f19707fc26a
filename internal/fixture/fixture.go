// Package fixture loads human-authored YAML document sets for tests,
// grounded on the "unmarshal into structs, validate, return" loader shape
// of aretext's app/config.go (there: a rule-set config file; here: a
// document fixture file consumed by the cmd/docpipe demo CLI).
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/docpipe/internal/document"
	"github.com/aledsdavies/docpipe/internal/value"
)

// Set is the collection of fixture documents loaded from one YAML file.
type Set struct {
	Documents []document.Document
}

type fileDoc struct {
	Documents []documentDoc `yaml:"documents"`
}

type documentDoc struct {
	ProjectID  string              `yaml:"project_id"`
	DatabaseID string              `yaml:"database_id"`
	Path       []string            `yaml:"path"`
	Version    versionDoc          `yaml:"version"`
	State      string              `yaml:"state"`
	Fields     map[string]valueDoc `yaml:"fields"`
}

type versionDoc struct {
	Seconds int64 `yaml:"seconds"`
	Nanos   int32 `yaml:"nanos"`
}

type valueDoc struct {
	Kind    string              `yaml:"kind"`
	Value   yaml.Node           `yaml:"value"`
	Seconds int64               `yaml:"seconds"`
	Nanos   int32               `yaml:"nanos"`
	Project string              `yaml:"project_id"`
	DB      string              `yaml:"database_id"`
	Path    []string            `yaml:"path"`
	Lat     float64             `yaml:"lat"`
	Lng     float64             `yaml:"lng"`
}

// Load parses a YAML fixture document into a Set.
func Load(data []byte) (Set, error) {
	var fd fileDoc
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return Set{}, fmt.Errorf("fixture: yaml.Unmarshal: %w", err)
	}

	docs := make([]document.Document, len(fd.Documents))
	for i, dd := range fd.Documents {
		d, err := buildDocument(dd)
		if err != nil {
			return Set{}, fmt.Errorf("fixture: document %d: %w", i, err)
		}
		docs[i] = d
	}
	return Set{Documents: docs}, nil
}

func buildDocument(dd documentDoc) (document.Document, error) {
	key := document.Key{
		Database: value.DatabaseID{ProjectID: dd.ProjectID, DatabaseID: dd.DatabaseID},
		Path:     dd.Path,
	}
	if err := key.Validate(); err != nil {
		return document.Document{}, fmt.Errorf("invalid key: %w", err)
	}

	version, err := value.NewTimestamp(dd.Version.Seconds, dd.Version.Nanos)
	if err != nil {
		return document.Document{}, fmt.Errorf("invalid version: %w", err)
	}

	switch dd.State {
	case "", "found":
		fields := make(map[string]value.Value, len(dd.Fields))
		for name, vd := range dd.Fields {
			v, err := buildValue(vd)
			if err != nil {
				return document.Document{}, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = v
		}
		return document.NewFoundDocument(key, version, fields), nil
	case "no_document":
		return document.NewNoDocument(key, version), nil
	case "unknown":
		return document.NewUnknownDocument(key, version), nil
	default:
		return document.Document{}, fmt.Errorf("unrecognized state %q", dd.State)
	}
}

func buildValue(vd valueDoc) (value.Value, error) {
	switch vd.Kind {
	case "null":
		return value.Null, nil
	case "boolean":
		var b bool
		if err := vd.Value.Decode(&b); err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	case "int":
		var n int64
		if err := vd.Value.Decode(&n); err != nil {
			return value.Value{}, err
		}
		return value.Int(n), nil
	case "float":
		var f float64
		if err := vd.Value.Decode(&f); err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil
	case "string":
		var s string
		if err := vd.Value.Decode(&s); err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	case "bytes":
		var b []byte
		if err := vd.Value.Decode(&b); err != nil {
			return value.Value{}, err
		}
		return value.Bytes(b), nil
	case "timestamp":
		ts, err := value.NewTimestamp(vd.Seconds, vd.Nanos)
		if err != nil {
			return value.Value{}, err
		}
		return value.TimestampValue(ts), nil
	case "reference":
		return value.ReferenceValue(value.Reference{
			Database: value.DatabaseID{ProjectID: vd.Project, DatabaseID: vd.DB},
			Path:     vd.Path,
		}), nil
	case "geopoint":
		return value.GeoPointValue(vd.Lat, vd.Lng)
	case "array":
		var nodes []yaml.Node
		if err := vd.Value.Decode(&nodes); err != nil {
			return value.Value{}, err
		}
		elems := make([]value.Value, len(nodes))
		for i, n := range nodes {
			var inner valueDoc
			if err := n.Decode(&inner); err != nil {
				return value.Value{}, fmt.Errorf("array element %d: %w", i, err)
			}
			v, err := buildValue(inner)
			if err != nil {
				return value.Value{}, fmt.Errorf("array element %d: %w", i, err)
			}
			elems[i] = v
		}
		return value.Array(elems), nil
	case "vector":
		var nums []float64
		if err := vd.Value.Decode(&nums); err != nil {
			return value.Value{}, err
		}
		return value.Vector(nums), nil
	case "map":
		var raw map[string]valueDoc
		if err := vd.Value.Decode(&raw); err != nil {
			return value.Value{}, err
		}
		fields := make(map[string]value.Value, len(raw))
		for k, inner := range raw {
			v, err := buildValue(inner)
			if err != nil {
				return value.Value{}, fmt.Errorf("map key %q: %w", k, err)
			}
			fields[k] = v
		}
		return value.Map(fields), nil
	default:
		return value.Value{}, fmt.Errorf("unrecognized value kind %q", vd.Kind)
	}
}
