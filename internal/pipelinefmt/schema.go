package pipelinefmt

// schemaJSON is the embedded JSON Schema that every pipeline definition
// document is validated against before being turned into []stage.Stage,
// grounded on the teacher's "validate, then build" two-step in
// core/types/validation.go (there: decorator parameters against a
// generated schema; here: a whole pipeline document against a fixed one).
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["stages"],
  "additionalProperties": false,
  "properties": {
    "stages": {
      "type": "array",
      "items": { "$ref": "#/$defs/stage" }
    }
  },
  "$defs": {
    "stage": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {
          "type": "string",
          "enum": [
            "collection_source",
            "collection_group_source",
            "database_source",
            "where",
            "sort",
            "limit",
            "offset"
          ]
        },
        "path": { "type": "array", "items": { "type": "string" } },
        "id": { "type": "string" },
        "predicate": { "$ref": "#/$defs/expr" },
        "terms": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["expr"],
            "properties": {
              "expr": { "$ref": "#/$defs/expr" },
              "direction": { "type": "string", "enum": ["asc", "desc"] }
            }
          }
        },
        "n": { "type": "integer", "minimum": 0 }
      }
    },
    "expr": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": { "type": "string", "enum": ["field", "constant", "call"] },
        "path": { "type": "string" },
        "value": {},
        "name": { "type": "string" },
        "args": {
          "type": "array",
          "items": { "$ref": "#/$defs/expr" }
        }
      }
    }
  }
}`
