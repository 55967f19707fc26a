// Package pipelinefmt implements the JSON pipeline-definition format: a
// stage list plus orderings, validated against an embedded JSON Schema
// before being turned into []stage.Stage (§4 of SPEC_FULL.md). The
// evaluator core itself never depends on this package — it only ever
// consumes an already-built []stage.Stage; this format exists for test
// fixtures and the cmd/docpipe demo CLI.
package pipelinefmt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/aledsdavies/docpipe/internal/expr"
	"github.com/aledsdavies/docpipe/internal/stage"
	"github.com/aledsdavies/docpipe/internal/value"
)

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaOnce sync.Once
	compiledSchemaErr  error
)

func getSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		url := "schema://pipeline.json"
		if err := compiler.AddResource(url, strings.NewReader(schemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("pipelinefmt: adding schema resource: %w", err)
			return
		}
		s, err := compiler.Compile(url)
		if err != nil {
			compiledSchemaErr = fmt.Errorf("pipelinefmt: compiling schema: %w", err)
			return
		}
		compiledSchema = s
	})
	return compiledSchema, compiledSchemaErr
}

// Validate checks raw JSON against the pipeline-definition schema without
// building any stages.
func Validate(data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("pipelinefmt: invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("pipelinefmt: schema validation failed: %w", err)
	}
	return nil
}

type pipelineDoc struct {
	Stages []json.RawMessage `json:"stages"`
}

type stageDoc struct {
	Type      string          `json:"type"`
	Path      []string        `json:"path"`
	ID        string          `json:"id"`
	Predicate json.RawMessage `json:"predicate"`
	Terms     []termDoc       `json:"terms"`
	N         uint32          `json:"n"`
}

type termDoc struct {
	Expr      json.RawMessage `json:"expr"`
	Direction string          `json:"direction"`
}

// Parse validates data against the schema, then decodes it into a stage
// list ready for docpipe.NewPipeline. It does not rewrite the stages —
// rewriting happens at Pipeline construction, per §4.3.
func Parse(data []byte) ([]stage.Stage, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc pipelineDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("pipelinefmt: decoding pipeline document: %w", err)
	}

	stages := make([]stage.Stage, len(doc.Stages))
	for i, raw := range doc.Stages {
		var sd stageDoc
		if err := json.Unmarshal(raw, &sd); err != nil {
			return nil, fmt.Errorf("pipelinefmt: decoding stage %d: %w", i, err)
		}
		s, err := buildStage(sd)
		if err != nil {
			return nil, fmt.Errorf("pipelinefmt: stage %d: %w", i, err)
		}
		stages[i] = s
	}
	return stages, nil
}

func buildStage(sd stageDoc) (stage.Stage, error) {
	switch sd.Type {
	case "collection_source":
		return stage.CollectionSource{Path: sd.Path}, nil
	case "collection_group_source":
		return stage.CollectionGroupSource{ID: sd.ID}, nil
	case "database_source":
		return stage.DatabaseSource{}, nil
	case "where":
		pred, err := decodeExpr(sd.Predicate)
		if err != nil {
			return nil, fmt.Errorf("predicate: %w", err)
		}
		return stage.Where{Predicate: pred}, nil
	case "sort":
		terms := make([]stage.OrderTerm, len(sd.Terms))
		for i, t := range sd.Terms {
			e, err := decodeExpr(t.Expr)
			if err != nil {
				return nil, fmt.Errorf("term %d: %w", i, err)
			}
			dir := stage.Ascending
			if t.Direction == "desc" {
				dir = stage.Descending
			}
			terms[i] = stage.OrderTerm{Expr: e, Direction: dir}
		}
		return stage.Sort{Terms: terms}, nil
	case "limit":
		return stage.Limit{N: sd.N}, nil
	case "offset":
		return stage.Offset{N: sd.N}, nil
	default:
		return nil, fmt.Errorf("unrecognized stage type %q", sd.Type)
	}
}

type exprDoc struct {
	Kind  string          `json:"kind"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
	Name  string          `json:"name"`
	Args  []json.RawMessage `json:"args"`
}

func decodeExpr(raw json.RawMessage) (expr.Expression, error) {
	var ed exprDoc
	if err := json.Unmarshal(raw, &ed); err != nil {
		return nil, fmt.Errorf("decoding expression: %w", err)
	}
	switch ed.Kind {
	case "field":
		return expr.FieldOf(ed.Path), nil
	case "constant":
		v, err := decodeValue(ed.Value)
		if err != nil {
			return nil, fmt.Errorf("constant: %w", err)
		}
		return expr.ConstantOf(v), nil
	case "call":
		args := make([]expr.Expression, len(ed.Args))
		for i, a := range ed.Args {
			e, err := decodeExpr(a)
			if err != nil {
				return nil, fmt.Errorf("call %s arg %d: %w", ed.Name, i, err)
			}
			args[i] = e
		}
		return expr.Call(ed.Name, args...), nil
	default:
		return nil, fmt.Errorf("unrecognized expression kind %q", ed.Kind)
	}
}

type valueDoc struct {
	Kind    string            `json:"kind"`
	Value   json.RawMessage   `json:"value"`
	Seconds int64             `json:"seconds"`
	Nanos   int32             `json:"nanos"`
	Project string            `json:"project_id"`
	DB      string            `json:"database_id"`
	Path    []string          `json:"path"`
	Lat     float64           `json:"lat"`
	Lng     float64           `json:"lng"`
}

func decodeValue(raw json.RawMessage) (value.Value, error) {
	if len(raw) == 0 {
		return value.Value{}, fmt.Errorf("missing value")
	}
	var vd valueDoc
	if err := json.Unmarshal(raw, &vd); err != nil {
		return value.Value{}, fmt.Errorf("decoding value: %w", err)
	}
	switch vd.Kind {
	case "null":
		return value.Null, nil
	case "boolean":
		var b bool
		if err := json.Unmarshal(vd.Value, &b); err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	case "int":
		var n int64
		if err := json.Unmarshal(vd.Value, &n); err != nil {
			return value.Value{}, err
		}
		return value.Int(n), nil
	case "float":
		var f float64
		if err := json.Unmarshal(vd.Value, &f); err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil
	case "string":
		var s string
		if err := json.Unmarshal(vd.Value, &s); err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	case "bytes":
		var s string
		if err := json.Unmarshal(vd.Value, &s); err != nil {
			return value.Value{}, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return value.Value{}, fmt.Errorf("decoding base64 bytes: %w", err)
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
		var raws []json.RawMessage
		if err := json.Unmarshal(vd.Value, &raws); err != nil {
			return value.Value{}, err
		}
		elems := make([]value.Value, len(raws))
		for i, r := range raws {
			v, err := decodeValue(r)
			if err != nil {
				return value.Value{}, fmt.Errorf("array element %d: %w", i, err)
			}
			elems[i] = v
		}
		return value.Array(elems), nil
	case "vector":
		var nums []float64
		if err := json.Unmarshal(vd.Value, &nums); err != nil {
			return value.Value{}, err
		}
		return value.Vector(nums), nil
	case "map":
		var raws map[string]json.RawMessage
		if err := json.Unmarshal(vd.Value, &raws); err != nil {
			return value.Value{}, err
		}
		fields := make(map[string]value.Value, len(raws))
		for k, r := range raws {
			v, err := decodeValue(r)
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
