package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "mockhttp-fixtures.schema.json"

// Schema is the JSON schema every fixture file must satisfy.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["expectations"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": ["string", "number"]},
    "expectations": {
      "type": "array",
      "items": {"$ref": "#/$defs/expectation"}
    }
  },
  "$defs": {
    "stringMap": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "expectation": {
      "type": "object",
      "required": ["url"],
      "additionalProperties": false,
      "properties": {
        "id": {"type": "string"},
        "name": {"type": "string"},
        "url": {"type": "string", "minLength": 1},
        "method": {"type": "string", "minLength": 1},
        "headers": {"$ref": "#/$defs/headers"},
        "body": {"$ref": "#/$defs/body"},
        "response": {"$ref": "#/$defs/response"}
      }
    },
    "headers": {
      "type": "object",
      "required": ["mode"],
      "additionalProperties": false,
      "properties": {
        "mode": {"enum": ["any", "exact", "none"]},
        "values": {"$ref": "#/$defs/stringMap"}
      }
    },
    "body": {
      "type": "object",
      "required": ["mode"],
      "additionalProperties": false,
      "properties": {
        "mode": {"enum": ["ignore", "any", "exact", "none", "jsonpath"]},
        "value": true,
        "conditions": {"type": "object"}
      }
    },
    "response": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "status": {"type": "integer", "minimum": 0, "maximum": 999},
        "headers": {"$ref": "#/$defs/stringMap"},
        "body": true
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(Schema)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Problem is one schema violation.
type Problem struct {
	// Location is the JSON pointer of the offending value, e.g.
	// "/expectations/0/body/mode".
	Location string
	Message  string
}

func (p Problem) String() string {
	if p.Location == "" {
		return p.Message
	}
	return p.Location + ": " + p.Message
}

// SchemaError lists the schema violations of one document.
type SchemaError struct {
	Problems []Problem
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// ValidateDocument checks a decoded YAML or JSON document against Schema.
func ValidateDocument(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so YAML scalars arrive as JSON types.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		se := &SchemaError{}
		collectProblems(verr, se)
		return se
	}
	return nil
}

func collectProblems(err *jsonschema.ValidationError, se *SchemaError) {
	if len(err.Causes) == 0 {
		se.Problems = append(se.Problems, Problem{Location: err.InstanceLocation, Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collectProblems(cause, se)
	}
}
